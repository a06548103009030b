package table

import (
	"math"
	"testing"
)

func TestTable0Constant(t *testing.T) {
	tbl := NewTable0(0.25)
	if tbl.Order() != 0 {
		t.Fatalf("expected order 0, got %d", tbl.Order())
	}
	for _, x := range []float64{-1, 0, 100} {
		if got := tbl.FindValue(x, x, x); got != 0.25 {
			t.Errorf("FindValue(%v) = %v, want 0.25", x, got)
		}
	}
}

func TestTable1LinearInterpolation(t *testing.T) {
	axis := NewAxis(AxisInputNetTransition, []float64{0.0, 1.0, 2.0})
	tbl := NewTable1([]float64{0.0, 10.0, 30.0}, axis)

	if got := tbl.FindValue(0.5, 0, 0); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("midpoint interp = %v, want 5.0", got)
	}
	if got := tbl.FindValue(1.5, 0, 0); math.Abs(got-20.0) > 1e-9 {
		t.Errorf("second-segment interp = %v, want 20.0", got)
	}
}

func TestTable1ExtrapolationContinuesEndSlope(t *testing.T) {
	axis := NewAxis(AxisInputNetTransition, []float64{0.0, 1.0})
	tbl := NewTable1([]float64{0.0, 10.0}, axis)

	if got := tbl.FindValue(2.0, 0, 0); math.Abs(got-20.0) > 1e-9 {
		t.Errorf("extrapolation above max = %v, want 20.0 (slope continued)", got)
	}
	if got := tbl.FindValue(-1.0, 0, 0); math.Abs(got-(-10.0)) > 1e-9 {
		t.Errorf("extrapolation below min = %v, want -10.0 (slope continued)", got)
	}
}

func TestTable1FindValueClip(t *testing.T) {
	axis := NewAxis(AxisInputNetTransition, []float64{1.0, 2.0, 3.0})
	tbl := NewTable1([]float64{5.0, 10.0, 15.0}, axis)

	if got := tbl.FindValueClip(0.0); got != 0.0 {
		t.Errorf("below-min clip = %v, want 0.0", got)
	}
	if got := tbl.FindValueClip(10.0); got != 15.0 {
		t.Errorf("above-max clip = %v, want 15.0 (last stored value)", got)
	}
	if got := tbl.FindValueClip(2.0); got != 10.0 {
		t.Errorf("in-range exact = %v, want 10.0", got)
	}
}

func TestTable2Bilinear(t *testing.T) {
	axis1 := NewAxis(AxisInputNetTransition, []float64{0.0, 1.0})
	axis2 := NewAxis(AxisTotalOutputNetCapacitance, []float64{0.0, 1.0})
	values := [][]float64{
		{0.0, 10.0},
		{20.0, 40.0},
	}
	tbl := NewTable2(values, axis1, axis2)

	if got := tbl.FindValue(0.5, 0.5, 0); math.Abs(got-17.5) > 1e-9 {
		t.Errorf("bilinear midpoint = %v, want 17.5", got)
	}
	if got := tbl.FindValue(0, 0, 0); got != 0.0 {
		t.Errorf("corner (0,0) = %v, want 0.0", got)
	}
	if got := tbl.FindValue(1, 1, 0); got != 40.0 {
		t.Errorf("corner (1,1) = %v, want 40.0", got)
	}
}

func TestTable2DegeneratesWhenAxisHasOnePoint(t *testing.T) {
	axis1 := NewAxis(AxisInputNetTransition, []float64{0.0})
	axis2 := NewAxis(AxisTotalOutputNetCapacitance, []float64{0.0, 1.0})
	values := [][]float64{{3.0, 7.0}}
	tbl := NewTable2(values, axis1, axis2)

	if got := tbl.FindValue(99.0, 0.5, 0); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("degenerate 1-D interp along axis2 = %v, want 5.0", got)
	}
}

func TestTable3Trilinear(t *testing.T) {
	axis1 := NewAxis(AxisInputNetTransition, []float64{0.0, 1.0})
	axis2 := NewAxis(AxisTotalOutputNetCapacitance, []float64{0.0, 1.0})
	axis3 := NewAxis(AxisRelatedPinTransition, []float64{0.0, 1.0})
	values := [][][]float64{
		{{0.0, 1.0}, {2.0, 3.0}},
		{{4.0, 5.0}, {6.0, 7.0}},
	}
	tbl := NewTable3(values, axis1, axis2, axis3)

	if got := tbl.FindValue(0, 0, 0); got != 0.0 {
		t.Errorf("corner (0,0,0) = %v, want 0.0", got)
	}
	if got := tbl.FindValue(1, 1, 1); got != 7.0 {
		t.Errorf("corner (1,1,1) = %v, want 7.0", got)
	}
	if got := tbl.FindValue(0.5, 0.5, 0.5); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("center of cube = %v, want 3.5", got)
	}
}
