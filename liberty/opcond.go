package liberty

import "github.com/opensta-go/opensta/units"

// OperatingConditions is a named (process, voltage, temperature,
// WireloadTree) point, typically the library's default PVT corner plus
// the wireload tree selection that goes with it.
type OperatingConditions struct {
	name        string
	process     float64
	voltage     float64
	temperature float64
	tree        units.WireloadTree
}

func NewOperatingConditions(name string, process, voltage, temperature float64, tree units.WireloadTree) *OperatingConditions {
	return &OperatingConditions{name: name, process: process, voltage: voltage, temperature: temperature, tree: tree}
}

func (o *OperatingConditions) Name() string               { return o.name }
func (o *OperatingConditions) Process() float64            { return o.process }
func (o *OperatingConditions) Voltage() float64            { return o.voltage }
func (o *OperatingConditions) Temperature() float64        { return o.temperature }
func (o *OperatingConditions) WireloadTree() units.WireloadTree { return o.tree }

// AsPvt drops the wireload tree, producing the (process,voltage,temperature)
// triple used by delay calculation.
func (o *OperatingConditions) AsPvt(sf *ScaleFactors) *Pvt {
	return NewPvt(o.process, o.voltage, o.temperature, sf)
}
