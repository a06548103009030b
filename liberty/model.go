package liberty

import (
	"github.com/opensta-go/opensta/table"
	"github.com/opensta-go/opensta/units"
)

// TimingModel is the marker interface every arc/check timing model variant
// implements: LinearModel, TableModel, GateTableModel, CheckTableModel.
type TimingModel interface {
	isTimingModel()
}

// LinearModel is the simplest gate delay model: d = intrinsic +
// driveResistance * load. Checks that use a LinearModel carry only the
// intrinsic term.
type LinearModel struct {
	intrinsic       float64
	driveResistance float64
}

func NewLinearModel(intrinsic, driveResistance float64) *LinearModel {
	return &LinearModel{intrinsic: intrinsic, driveResistance: driveResistance}
}

func (*LinearModel) isTimingModel() {}

func (m *LinearModel) IntrinsicDelay() float64   { return m.intrinsic }
func (m *LinearModel) DriveResistance() float64  { return m.driveResistance }

// GateDelay computes d = intrinsic + driveResistance*loadCap.
func (m *LinearModel) GateDelay(loadCap float64) float64 {
	return m.intrinsic + m.driveResistance*loadCap
}

// TableModel wraps a table.Model (shared Table + Template + scale factor
// bookkeeping) as a liberty TimingModel.
type TableModel struct {
	*table.Model
}

func NewTableModel(m *table.Model) *TableModel { return &TableModel{Model: m} }
func (*TableModel) isTimingModel()             {}

// Pvt is the process/voltage/temperature triple used during delay
// calculation; it implements table.Pvt via ScaleFactor.
type Pvt struct {
	process     float64
	voltage     float64
	temperature float64
	scaleFactors *ScaleFactors
}

func NewPvt(process, voltage, temperature float64, sf *ScaleFactors) *Pvt {
	return &Pvt{process: process, voltage: voltage, temperature: temperature, scaleFactors: sf}
}

func (p *Pvt) Process() float64     { return p.process }
func (p *Pvt) Voltage() float64     { return p.voltage }
func (p *Pvt) Temperature() float64 { return p.temperature }

// ScaleFactor implements table.Pvt: looks up the scale factor for
// (scaleFactorType, rf) from the Pvt's attached ScaleFactors, defaulting
// to 1.0 when none is attached.
func (p *Pvt) ScaleFactor(t *units.ScaleFactorType, rf *units.RiseFall) float64 {
	if p.scaleFactors == nil {
		return 1.0
	}
	return p.scaleFactors.Scale(t, rf, p)
}

// GateTableModel composes up to four TableModels (delay, slew, delay
// sigma, slew sigma) plus optional receiver model / output waveforms.
type GateTableModel struct {
	delay      *TableModel
	slew       *TableModel
	delaySigma *TableModel
	slewSigma  *TableModel
}

func NewGateTableModel(delay, slew, delaySigma, slewSigma *TableModel) *GateTableModel {
	return &GateTableModel{delay: delay, slew: slew, delaySigma: delaySigma, slewSigma: slewSigma}
}

func (*GateTableModel) isTimingModel() {}

func (m *GateTableModel) Delay() *TableModel      { return m.delay }
func (m *GateTableModel) Slew() *TableModel       { return m.slew }
func (m *GateTableModel) DelaySigma() *TableModel { return m.delaySigma }
func (m *GateTableModel) SlewSigma() *TableModel  { return m.slewSigma }

// GateDelay computes (delay, outputSlew) for the given pvt/input-slew/
// load-cap operating point. pocv selects which sigma table (if any) to
// additionally report; this implementation returns the nominal values and
// leaves on-chip-variation sigma consumption to the caller via DelaySigma/
// SlewSigma directly, matching the narrow "external collaborator" scope
// this package has for OCV-aware delay calculation.
func (m *GateTableModel) GateDelay(pvt *Pvt, inputSlew, loadCap float64) (delay, outputSlew float64) {
	if m.delay != nil {
		delay = m.delay.FindValue(pvt, inputSlew, loadCap, 0)
	}
	if m.slew != nil {
		outputSlew = m.slew.FindValue(pvt, inputSlew, loadCap, 0)
	}
	return delay, outputSlew
}

// CheckAxes validates that table's axis variables are drawn from the set
// Liberty allows for gate delay/slew tables at this table's order.
func (m *GateTableModel) CheckAxes(t table.Table) bool {
	return checkAxesAllowed(t, gateTableAllowedAxes)
}

// CheckTableModel is a single TableModel evaluated against
// (data_slew, clk_slew, related_out_load) for setup/hold/recovery/removal/
// nochange timing checks.
type CheckTableModel struct {
	*TableModel
}

func NewCheckTableModel(m *TableModel) *CheckTableModel { return &CheckTableModel{TableModel: m} }
func (*CheckTableModel) isTimingModel()                 {}

// CheckAxes validates the table's axis variables against the check-table
// allowed set (constrained/related pin transition, related-out load).
func (m *CheckTableModel) CheckAxes(t table.Table) bool {
	return checkAxesAllowed(t, checkTableAllowedAxes)
}

var gateTableAllowedAxes = map[table.AxisVariable]bool{
	table.AxisInputNetTransition:        true,
	table.AxisTotalOutputNetCapacitance: true,
	table.AxisInputTransitionTime:       true,
}

var checkTableAllowedAxes = map[table.AxisVariable]bool{
	table.AxisRelatedPinTransition:                true,
	table.AxisConstrainedPinTransition:             true,
	table.AxisRelatedOutTotalOutputNetCapacitance:  true,
}

func checkAxesAllowed(t table.Table, allowed map[table.AxisVariable]bool) bool {
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
