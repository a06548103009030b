package liberty

import (
	"path"
	"sort"

	"github.com/opensta-go/opensta/table"
	"github.com/opensta-go/opensta/units"
)

// Library is the root of a Liberty cell library: its cells, table
// templates, wireloads, operating conditions, scale factors, driver
// waveforms, and OCV derates, plus the handful of library-wide defaults
// (default PVT, default pin limits, supply voltages) delay calculation
// consults when a cell or port doesn't specify its own.
type Library struct {
	name     string
	filename string
	units    *units.Units

	cells       []*Cell
	cellsByName map[string]*Cell

	templates map[templateKey]*table.Template

	wireloads          map[string]*Wireload
	wireloadSelections map[string]*WireloadSelection
	opconds            map[string]*OperatingConditions
	scaleFactorSets    map[string]*ScaleFactors
	ocvDerates         map[string]*OcvDerate
	busDcls            map[string]*BusDcl

	defaultWireloadSelection *WireloadSelection
	defaultWireload          *Wireload
	defaultWireloadMode      units.WireloadMode
	defaultOperatingConditions *OperatingConditions
	defaultOcvDerate         *OcvDerate
	defaultScaleFactors      *ScaleFactors

	nominalProcess     float64
	nominalVoltage     float64
	nominalTemperature float64

	pvtInputThreshold  [2]float64 // rise, fall
	pvtOutputThreshold [2]float64
	slewLowerThreshold [2]float64
	slewUpperThreshold [2]float64
	slewDerateFromLibrary float64

	defaultInputPinCap   float64
	defaultOutputPinCap  float64
	defaultBidirectPinCap float64
	defaultIntrinsic     [2]float64 // rise, fall
	defaultOutputPinRes  [2]float64
	defaultBidirectPinRes [2]float64
	defaultMaxSlew       float64
	defaultMaxCapacitance float64
	defaultMaxFanout     float64
	defaultFanoutLoad    float64

	energyScale float64

	supplyVoltages map[string]float64

	buffersCache   []*Cell
	invertersCache []*Cell
}

type templateKey struct {
	name string
	kind table.TemplateType
}

// NewLibrary creates an empty library, installing the unit defaults
// (time=1ns, cap=1pF, ...) the reader relies on before any *_unit
// attribute override.
func NewLibrary(name, filename string) *Library {
	return &Library{
		name:               name,
		filename:           filename,
		units:              units.DefaultUnits(),
		cellsByName:        make(map[string]*Cell),
		templates:          make(map[templateKey]*table.Template),
		wireloads:          make(map[string]*Wireload),
		wireloadSelections: make(map[string]*WireloadSelection),
		opconds:            make(map[string]*OperatingConditions),
		scaleFactorSets:    make(map[string]*ScaleFactors),
		ocvDerates:         make(map[string]*OcvDerate),
		busDcls:            make(map[string]*BusDcl),
		supplyVoltages:     make(map[string]float64),
	}
}

func (l *Library) Name() string     { return l.name }
func (l *Library) Filename() string { return l.filename }
func (l *Library) Units() *units.Units { return l.units }

// FinishUnits captures energy_scale = volt * cap on endLibrary.
func (l *Library) FinishUnits() {
	l.energyScale = l.units.EnergyScale()
}

func (l *Library) EnergyScale() float64 { return l.energyScale }

// AddCell registers cell under the library, indexed by name.
func (l *Library) AddCell(c *Cell) {
	l.cells = append(l.cells, c)
	l.cellsByName[c.Name()] = c
	l.buffersCache = nil
	l.invertersCache = nil
}

// FindCell looks up a cell by exact name.
func (l *Library) FindCell(name string) *Cell { return l.cellsByName[name] }

// FindCellsMatching returns every cell whose name matches the glob pattern
// pattern (path.Match semantics), in deterministic registration order.
func (l *Library) FindCellsMatching(pattern string) []*Cell {
	var out []*Cell
	for _, c := range l.cells {
		if ok, _ := path.Match(pattern, c.Name()); ok {
			out = append(out, c)
		}
	}
	return out
}

// Cells returns every cell in deterministic registration order.
func (l *Library) Cells() []*Cell { return l.cells }

func (l *Library) AddTemplate(t *table.Template) {
	l.templates[templateKey{t.Name(), t.Kind()}] = t
}

func (l *Library) FindTemplate(name string, kind table.TemplateType) *table.Template {
	return l.templates[templateKey{name, kind}]
}

func (l *Library) AddWireload(w *Wireload) { l.wireloads[w.Name()] = w }
func (l *Library) FindWireload(name string) *Wireload { return l.wireloads[name] }

func (l *Library) AddWireloadSelection(s *WireloadSelection) {
	l.wireloadSelections[s.Name()] = s
}
func (l *Library) FindWireloadSelection(name string) *WireloadSelection {
	return l.wireloadSelections[name]
}

func (l *Library) AddOperatingConditions(o *OperatingConditions) { l.opconds[o.Name()] = o }
func (l *Library) FindOperatingConditions(name string) *OperatingConditions {
	return l.opconds[name]
}

func (l *Library) AddScaleFactors(s *ScaleFactors) { l.scaleFactorSets[s.Name()] = s }
func (l *Library) FindScaleFactors(name string) *ScaleFactors { return l.scaleFactorSets[name] }

func (l *Library) AddOcvDerate(o *OcvDerate) { l.ocvDerates[o.Name()] = o }
func (l *Library) FindOcvDerate(name string) *OcvDerate { return l.ocvDerates[name] }

func (l *Library) AddBusDcl(d *BusDcl) { l.busDcls[d.Name()] = d }
func (l *Library) FindBusDcl(name string) *BusDcl { return l.busDcls[name] }

// Default selectors.
func (l *Library) DefaultWireloadSelection() *WireloadSelection { return l.defaultWireloadSelection }
func (l *Library) SetDefaultWireloadSelection(s *WireloadSelection) { l.defaultWireloadSelection = s }
func (l *Library) DefaultWireload() *Wireload          { return l.defaultWireload }
func (l *Library) SetDefaultWireload(w *Wireload)      { l.defaultWireload = w }
func (l *Library) DefaultWireloadMode() units.WireloadMode { return l.defaultWireloadMode }
func (l *Library) SetDefaultWireloadMode(m units.WireloadMode) { l.defaultWireloadMode = m }
func (l *Library) DefaultOperatingConditions() *OperatingConditions { return l.defaultOperatingConditions }
func (l *Library) SetDefaultOperatingConditions(o *OperatingConditions) { l.defaultOperatingConditions = o }
func (l *Library) DefaultOcvDerate() *OcvDerate        { return l.defaultOcvDerate }
func (l *Library) SetDefaultOcvDerate(o *OcvDerate)    { l.defaultOcvDerate = o }
func (l *Library) DefaultScaleFactors() *ScaleFactors  { return l.defaultScaleFactors }
func (l *Library) SetDefaultScaleFactors(s *ScaleFactors) { l.defaultScaleFactors = s }

// Nominal PVT.
func (l *Library) NominalProcess() float64     { return l.nominalProcess }
func (l *Library) SetNominalProcess(v float64) { l.nominalProcess = v }
func (l *Library) NominalVoltage() float64     { return l.nominalVoltage }
func (l *Library) SetNominalVoltage(v float64) { l.nominalVoltage = v }
func (l *Library) NominalTemperature() float64 { return l.nominalTemperature }
func (l *Library) SetNominalTemperature(v float64) { l.nominalTemperature = v }

// PVT thresholds.
func (l *Library) PvtInputThreshold(rf *units.RiseFall) float64 { return l.pvtInputThreshold[rf.Index()] }
func (l *Library) SetPvtInputThreshold(rf *units.RiseFall, v float64) { l.pvtInputThreshold[rf.Index()] = v }
func (l *Library) PvtOutputThreshold(rf *units.RiseFall) float64 { return l.pvtOutputThreshold[rf.Index()] }
func (l *Library) SetPvtOutputThreshold(rf *units.RiseFall, v float64) { l.pvtOutputThreshold[rf.Index()] = v }
func (l *Library) SlewLowerThreshold(rf *units.RiseFall) float64 { return l.slewLowerThreshold[rf.Index()] }
func (l *Library) SetSlewLowerThreshold(rf *units.RiseFall, v float64) { l.slewLowerThreshold[rf.Index()] = v }
func (l *Library) SlewUpperThreshold(rf *units.RiseFall) float64 { return l.slewUpperThreshold[rf.Index()] }
func (l *Library) SetSlewUpperThreshold(rf *units.RiseFall, v float64) { l.slewUpperThreshold[rf.Index()] = v }
func (l *Library) SlewDerateFromLibrary() float64     { return l.slewDerateFromLibrary }
func (l *Library) SetSlewDerateFromLibrary(v float64) { l.slewDerateFromLibrary = v }

// Default pin caps/resistances/limits.
func (l *Library) DefaultInputPinCap() float64    { return l.defaultInputPinCap }
func (l *Library) SetDefaultInputPinCap(v float64) { l.defaultInputPinCap = v }
func (l *Library) DefaultOutputPinCap() float64   { return l.defaultOutputPinCap }
func (l *Library) SetDefaultOutputPinCap(v float64) { l.defaultOutputPinCap = v }
func (l *Library) DefaultBidirectPinCap() float64 { return l.defaultBidirectPinCap }
func (l *Library) SetDefaultBidirectPinCap(v float64) { l.defaultBidirectPinCap = v }
func (l *Library) DefaultIntrinsic(rf *units.RiseFall) float64 { return l.defaultIntrinsic[rf.Index()] }
func (l *Library) SetDefaultIntrinsic(rf *units.RiseFall, v float64) { l.defaultIntrinsic[rf.Index()] = v }
func (l *Library) DefaultOutputPinRes(rf *units.RiseFall) float64 { return l.defaultOutputPinRes[rf.Index()] }
func (l *Library) SetDefaultOutputPinRes(rf *units.RiseFall, v float64) { l.defaultOutputPinRes[rf.Index()] = v }
func (l *Library) DefaultBidirectPinRes(rf *units.RiseFall) float64 { return l.defaultBidirectPinRes[rf.Index()] }
func (l *Library) SetDefaultBidirectPinRes(rf *units.RiseFall, v float64) { l.defaultBidirectPinRes[rf.Index()] = v }
func (l *Library) DefaultMaxSlew() float64         { return l.defaultMaxSlew }
func (l *Library) SetDefaultMaxSlew(v float64)     { l.defaultMaxSlew = v }
func (l *Library) DefaultMaxCapacitance() float64  { return l.defaultMaxCapacitance }
func (l *Library) SetDefaultMaxCapacitance(v float64) { l.defaultMaxCapacitance = v }
func (l *Library) DefaultMaxFanout() float64       { return l.defaultMaxFanout }
func (l *Library) SetDefaultMaxFanout(v float64)   { l.defaultMaxFanout = v }
func (l *Library) DefaultFanoutLoad() float64      { return l.defaultFanoutLoad }
func (l *Library) SetDefaultFanoutLoad(v float64)  { l.defaultFanoutLoad = v }

// ScaleFactor computes the library's default scale-factor product for
// (type, rf) at pvt, via the library's default ScaleFactors set.
func (l *Library) ScaleFactor(t *units.ScaleFactorType, rf *units.RiseFall, pvt *Pvt) float64 {
	if l.defaultScaleFactors == nil {
		return 1.0
	}
	return l.defaultScaleFactors.Scale(t, rf, pvt)
}

// AddSupplyVoltage records a named supply rail voltage.
func (l *Library) AddSupplyVoltage(name string, v float64) { l.supplyVoltages[name] = v }

// SupplyExists reports whether name has a recorded supply voltage.
func (l *Library) SupplyExists(name string) bool {
	_, ok := l.supplyVoltages[name]
	return ok
}

// SupplyVoltage looks up a named supply rail voltage.
func (l *Library) SupplyVoltage(name string) (float64, bool) {
	v, ok := l.supplyVoltages[name]
	return v, ok
}

// Buffers returns the library's buffer cells (IsBuffer()==true), ordered
// by area then name for stable reporting, lazily computed and cached until
// the next AddCell.
func (l *Library) Buffers() []*Cell {
	if l.buffersCache == nil {
		l.buffersCache = l.cellsMatching((*Cell).IsBuffer)
	}
	return l.buffersCache
}

// Inverters returns the library's inverter cells, same ordering contract
// as Buffers.
func (l *Library) Inverters() []*Cell {
	if l.invertersCache == nil {
		l.invertersCache = l.cellsMatching((*Cell).IsInverter)
	}
	return l.invertersCache
}

func (l *Library) cellsMatching(pred func(*Cell) bool) []*Cell {
	var out []*Cell
	for _, c := range l.cells {
		if pred(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Area() != out[j].Area() {
			return out[i].Area() < out[j].Area()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// CheckSlewDegradationAxes validates that t's axis variables belong to the
// set Liberty allows for a per-rise/fall wire-slew degradation table:
// output_pin_transition and/or connect_delay.
func CheckSlewDegradationAxes(t table.Table) bool {
	allowed := map[table.AxisVariable]bool{
		table.AxisOutputPinTransition: true,
		table.AxisConnectDelay:        true,
	}
	axes := []*table.Axis{t.Axis1(), t.Axis2(), t.Axis3()}
	for _, a := range axes {
		if a == nil {
			continue
		}
		if !allowed[a.Variable()] {
			return false
		}
	}
	return true
}
