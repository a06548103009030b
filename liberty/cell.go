package liberty

import "github.com/opensta-go/opensta/funcexpr"

// ClockGateType and SwitchCellType classify specialized cells; LevelShifterType
// classifies isolation/level-shifting cells. These are closed Liberty
// vocabularies represented as small int enums rather than subclasses, per
// the same "global singleton / compile-time table" convention as units.
type ClockGateType int

const (
	ClockGateTypeNone ClockGateType = iota
	ClockGateTypeLatchPosedge
	ClockGateTypeLatchNegedge
	ClockGateTypeOther
)

type SwitchCellType int

const (
	SwitchCellTypeNone SwitchCellType = iota
	SwitchCellTypeCoarseGrain
	SwitchCellTypeFineGrain
)

type LevelShifterType int

const (
	LevelShifterTypeNone LevelShifterType = iota
	LevelShifterTypeHL
	LevelShifterTypeLH
	LevelShifterTypeHLLH
)

// Cell is a Liberty cell (standard cell, macro, or vendor-specific view).
type Cell struct {
	library *Library
	name    string
	area    float64

	ports       []*Port
	portsByName map[string]*Port
	arcSets     []*TimingArcSet
	internalPowers []*InternalPower
	leakagePowers  []*LeakagePower
	sequentials    []*Sequential
	busDcls        map[string]*BusDcl

	dontUse                bool
	isMacro                bool
	isMemory               bool
	isPad                  bool
	isClockCell            bool
	isLevelShifter         bool
	isIsolationCell        bool
	alwaysOn               bool
	interfaceTiming        bool
	hasInternalPorts       bool
	hasInferredRegTimingArcs bool
	isDisabledConstraint   bool

	clockGateType    ClockGateType
	switchCellType   SwitchCellType
	levelShifterType LevelShifterType

	leakagePower   *float64
	ocvArcDepth    *float64
	footprint      string
	userFuncClass  string

	testCell *Cell
	sceneTwins []*Cell // index 0 is this cell
}

// NewCell creates an empty cell owned by library.
func NewCell(library *Library, name string) *Cell {
	c := &Cell{
		library:     library,
		name:        name,
		portsByName: make(map[string]*Port),
		busDcls:     make(map[string]*BusDcl),
	}
	c.sceneTwins = []*Cell{c}
	return c
}

func (c *Cell) Library() *Library { return c.library }
func (c *Cell) Name() string      { return c.name }
func (c *Cell) Area() float64     { return c.area }
func (c *Cell) SetArea(a float64) { c.area = a }

// AddPort registers a port (scalar, bus, or bundle) on the cell, indexing
// it and any bus member bits by name.
func (c *Cell) AddPort(p *Port) {
	c.ports = append(c.ports, p)
	c.portsByName[p.Name()] = p
	if p.IsBus() {
		for i := 0; i < p.MemberCount(); i++ {
			m := p.Member(i)
			c.portsByName[m.Name()] = m
		}
	}
}

// FindPort looks up a port (or bus member bit) by name. Implements
// funcexpr.PortLookup so the function-string parser can resolve names
// directly against a cell.
func (c *Cell) FindPort(name string) funcexpr.Port {
	if p, ok := c.portsByName[name]; ok {
		return p
	}
	return nil
}

// FindPortPtr is FindPort with the concrete *Port type, for callers that
// need more than the funcexpr.Port name-only view.
func (c *Cell) FindPortPtr(name string) *Port {
	return c.portsByName[name]
}

func (c *Cell) Ports() []*Port { return c.ports }

func (c *Cell) AddBusDcl(d *BusDcl) { c.busDcls[d.Name()] = d }
func (c *Cell) FindBusDcl(name string) *BusDcl { return c.busDcls[name] }

// AddArcSet registers set on the cell, assigning it a stable intra-cell
// index (its position in arcSets).
func (c *Cell) AddArcSet(set *TimingArcSet) {
	set.cellIndex = len(c.arcSets)
	set.cell = c
	c.arcSets = append(c.arcSets, set)
}

func (c *Cell) ArcSets() []*TimingArcSet { return c.arcSets }

// ArcSet looks up a timing arc set by the stable index it was registered
// with.
func (c *Cell) ArcSet(index int) *TimingArcSet {
	if index < 0 || index >= len(c.arcSets) {
		return nil
	}
	return c.arcSets[index]
}

func (c *Cell) AddInternalPower(p *InternalPower) {
	c.internalPowers = append(c.internalPowers, p)
}
func (c *Cell) InternalPowers() []*InternalPower { return c.internalPowers }

func (c *Cell) AddLeakagePower(p *LeakagePower) {
	c.leakagePowers = append(c.leakagePowers, p)
}
func (c *Cell) LeakagePowers() []*LeakagePower { return c.leakagePowers }

func (c *Cell) AddSequential(s *Sequential) { c.sequentials = append(c.sequentials, s) }
func (c *Cell) Sequentials() []*Sequential  { return c.sequentials }

// HasSequentials is true iff the cell owns any Sequential descriptors.
func (c *Cell) HasSequentials() bool { return len(c.sequentials) > 0 }

func (c *Cell) DontUse() bool     { return c.dontUse }
func (c *Cell) SetDontUse(v bool) { c.dontUse = v }
func (c *Cell) IsMacro() bool     { return c.isMacro }
func (c *Cell) SetIsMacro(v bool) { c.isMacro = v }
func (c *Cell) IsPad() bool       { return c.isPad }
func (c *Cell) SetIsPad(v bool)   { c.isPad = v }
func (c *Cell) IsMemory() bool       { return c.isMemory }
func (c *Cell) SetIsMemory(v bool)   { c.isMemory = v }
func (c *Cell) AlwaysOn() bool       { return c.alwaysOn }
func (c *Cell) SetAlwaysOn(v bool)   { c.alwaysOn = v }
func (c *Cell) InterfaceTiming() bool     { return c.interfaceTiming }
func (c *Cell) SetInterfaceTiming(v bool) { c.interfaceTiming = v }
func (c *Cell) Footprint() string       { return c.footprint }
func (c *Cell) SetFootprint(v string)   { c.footprint = v }
func (c *Cell) UserFuncClass() string     { return c.userFuncClass }
func (c *Cell) SetUserFuncClass(v string) { c.userFuncClass = v }

func (c *Cell) LeakagePowerTotal() *float64       { return c.leakagePower }
func (c *Cell) SetLeakagePowerTotal(v float64)    { c.leakagePower = &v }
func (c *Cell) OcvArcDepth() *float64             { return c.ocvArcDepth }
func (c *Cell) SetOcvArcDepth(v float64)          { c.ocvArcDepth = &v }

func (c *Cell) TestCell() *Cell        { return c.testCell }
func (c *Cell) SetTestCell(t *Cell)    { c.testCell = t }

// SceneTwin returns the cell's twin for the given scene/corner index, or
// this cell itself for scene 0 or an index without a registered twin.
func (c *Cell) SceneTwin(scene int) *Cell {
	if scene < 0 || scene >= len(c.sceneTwins) || c.sceneTwins[scene] == nil {
		return c
	}
	return c.sceneTwins[scene]
}

// SetSceneTwin registers twin as this cell's corner projection at the
// given scene index.
func (c *Cell) SetSceneTwin(scene int, twin *Cell) {
	for len(c.sceneTwins) <= scene {
		c.sceneTwins = append(c.sceneTwins, nil)
	}
	c.sceneTwins[scene] = twin
}

// inputOutputPorts returns the cell's ports classified strictly as input
// or output, used by IsBuffer/IsInverter/BufferPorts.
func (c *Cell) inputOutputPorts() (inputs, outputs []*Port) {
	for _, p := range c.ports {
		switch p.Direction() {
		case DirInput:
			inputs = append(inputs, p)
		case DirOutput:
			outputs = append(outputs, p)
		}
	}
	return
}

// IsBuffer reports whether the cell has exactly one input and one output
// port, and the output's function is exactly the input port (no
// inversion).
func (c *Cell) IsBuffer() bool {
	in, out, ok := c.soleInputOutput()
	if !ok {
		return false
	}
	return out.Function() != nil && out.Function().Op() == funcexpr.OpPort && out.Function().Port() == in
}

// IsInverter reports whether the cell has exactly one input and one
// output port, and the output's function is NOT of the input.
func (c *Cell) IsInverter() bool {
	in, out, ok := c.soleInputOutput()
	if !ok {
		return false
	}
	fn := out.Function()
	return fn != nil && fn.Op() == funcexpr.OpNot && fn.Left() != nil &&
		fn.Left().Op() == funcexpr.OpPort && fn.Left().Port() == in
}

func (c *Cell) soleInputOutput() (in, out *Port, ok bool) {
	inputs, outputs := c.inputOutputPorts()
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, nil, false
	}
	return inputs[0], outputs[0], true
}

// BufferPorts returns the cell's sole input and output ports, valid when
// IsBuffer or IsInverter is true.
func (c *Cell) BufferPorts() (in, out *Port) {
	in, out, _ = c.soleInputOutput()
	return
}
