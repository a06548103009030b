package liberty

import (
	"testing"

	"github.com/opensta-go/opensta/table"
	"github.com/opensta-go/opensta/units"
)

func TestLinearModelGateDelay(t *testing.T) {
	m := NewLinearModel(0.05, 200)
	if got := m.GateDelay(0.01); got != 0.05+200*0.01 {
		t.Errorf("GateDelay() = %v, want %v", got, 0.05+200*0.01)
	}
}

func TestPvtScaleFactorDefaultsToOneWithNoScaleFactors(t *testing.T) {
	pvt := NewPvt(1.0, 1.0, 25.0, nil)
	got := pvt.ScaleFactor(units.FindScaleFactorType("cell"), units.Rise())
	if got != 1.0 {
		t.Errorf("ScaleFactor() = %v, want 1.0", got)
	}
}

func TestPvtScaleFactorAppliesProcessDerating(t *testing.T) {
	sf := NewScaleFactors("wc", 1.0, 1.0, 25.0)
	sf.SetK(units.FindScaleFactorType("cell"), units.ScaleFactorPvtProcess(), units.Rise(), 0.1)
	pvt := NewPvt(1.5, 1.0, 25.0, sf)

	got := pvt.ScaleFactor(units.FindScaleFactorType("cell"), units.Rise())
	want := 1 + 0.1*(1.5-1.0)
	if got != want {
		t.Errorf("ScaleFactor() = %v, want %v", got, want)
	}
}

func TestScaleFactorsCombinesAllThreeAxes(t *testing.T) {
	sf := NewScaleFactors("wc", 1.0, 1.0, 25.0)
	cellType := units.FindScaleFactorType("cell")
	sf.SetK(cellType, units.ScaleFactorPvtProcess(), nil, 0.1)
	sf.SetK(cellType, units.ScaleFactorPvtVolt(), nil, -0.2)
	sf.SetK(cellType, units.ScaleFactorPvtTemp(), nil, 0.01)
	pvt := NewPvt(1.5, 0.9, 125.0, sf)

	got := sf.Scale(cellType, nil, pvt)
	want := (1 + 0.1*0.5) * (1 - 0.2*(-0.1)) * (1 + 0.01*100.0)
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Scale() = %v, want %v", got, want)
	}
}

func TestGateTableModelCheckAxesRejectsWrongVariable(t *testing.T) {
	axis := table.NewAxis(table.AxisRelatedPinTransition, []float64{0.1, 0.2})
	tbl := table.NewTable1([]float64{1.0, 2.0}, axis)
	m := NewGateTableModel(NewTableModel(table.NewModel(tbl, nil, nil, nil, false)), nil, nil, nil)
	if m.CheckAxes(tbl) {
		t.Fatal("expected rejection: related_pin_transition is not a gate-table axis")
	}
}

func TestCheckTableModelCheckAxesAcceptsAllowedVariable(t *testing.T) {
	axis := table.NewAxis(table.AxisRelatedPinTransition, []float64{0.1, 0.2})
	tbl := table.NewTable1([]float64{1.0, 2.0}, axis)
	m := NewCheckTableModel(NewTableModel(table.NewModel(tbl, nil, nil, nil, false)))
	if !m.CheckAxes(tbl) {
		t.Fatal("expected acceptance: related_pin_transition is a check-table axis")
	}
}

func TestGateTableModelGateDelay(t *testing.T) {
	slewAxis := table.NewAxis(table.AxisInputNetTransition, []float64{0.0, 1.0})
	capAxis := table.NewAxis(table.AxisTotalOutputNetCapacitance, []float64{0.0, 1.0})
	delayTbl := table.NewTable2([][]float64{{0.1, 0.2}, {0.3, 0.4}}, slewAxis, capAxis)
	delayModel := NewTableModel(table.NewModel(delayTbl, nil, nil, nil, true))
	gtm := NewGateTableModel(delayModel, nil, nil, nil)

	pvt := NewPvt(1.0, 1.0, 25.0, nil)
	delay, slew := gtm.GateDelay(pvt, 0.5, 0.5)
	if delay != 0.25 {
		t.Errorf("delay = %v, want 0.25 (center of 0.1..0.4)", delay)
	}
	if slew != 0 {
		t.Errorf("slew = %v, want 0 (no slew table)", slew)
	}
}
