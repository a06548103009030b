// Package table implements the 0-3 axis lookup tables Liberty timing,
// power and OCV-derate models are tabulated over: axis construction,
// linear/bilinear/trilinear interpolation with end-segment extrapolation,
// and the clip-below-zero convention findValueClip preserves exactly.
package table

import "github.com/opensta-go/opensta/units"

// AxisVariable enumerates the named independent variables a TableAxis can
// represent. Each has a stable display string and a semantic dimension
// used to pick the right Unit to scale its sample values by.
type AxisVariable int

const (
	AxisInputNetTransition AxisVariable = iota
	AxisTotalOutputNetCapacitance
	AxisInputTransitionTime
	AxisRelatedPinTransition
	AxisConstrainedPinTransition
	AxisOutputPinTransition
	AxisConnectDelay
	AxisRelatedOutTotalOutputNetCapacitance
	AxisEqualOrOppositeOutputNetCapacitance
	AxisTime
	AxisIvOutputVoltage
	AxisInputNoiseWidth
	AxisInputNoiseHeight
	AxisInputVoltage
	AxisOutputVoltage
	AxisPathDepth
	AxisPathDistance
	AxisNormalizedVoltage
	AxisUnknown
)

var axisVariableNames = map[AxisVariable]string{
	AxisInputNetTransition:                  "input_net_transition",
	AxisTotalOutputNetCapacitance:           "total_output_net_capacitance",
	AxisInputTransitionTime:                 "input_transition_time",
	AxisRelatedPinTransition:                "related_pin_transition",
	AxisConstrainedPinTransition:            "constrained_pin_transition",
	AxisOutputPinTransition:                 "output_pin_transition",
	AxisConnectDelay:                        "connect_delay",
	AxisRelatedOutTotalOutputNetCapacitance: "related_out_total_output_net_capacitance",
	AxisEqualOrOppositeOutputNetCapacitance: "equal_or_opposite_output_net_capacitance",
	AxisTime:                  "time",
	AxisIvOutputVoltage:       "iv_output_voltage",
	AxisInputNoiseWidth:       "input_noise_width",
	AxisInputNoiseHeight:      "input_noise_height",
	AxisInputVoltage:          "input_voltage",
	AxisOutputVoltage:         "output_voltage",
	AxisPathDepth:             "path_depth",
	AxisPathDistance:          "path_distance",
	AxisNormalizedVoltage:     "normalized_voltage",
	AxisUnknown:               "unknown",
}

var axisVariableByName = func() map[string]AxisVariable {
	m := make(map[string]AxisVariable, len(axisVariableNames))
	for v, name := range axisVariableNames {
		m[name] = v
	}
	return m
}()

// String returns the axis variable's canonical Liberty display name.
func (v AxisVariable) String() string {
	if name, ok := axisVariableNames[v]; ok {
		return name
	}
	return "unknown"
}

// FindAxisVariable looks up an AxisVariable by its Liberty name.
func FindAxisVariable(name string) AxisVariable {
	if v, ok := axisVariableByName[name]; ok {
		return v
	}
	return AxisUnknown
}

// Unit returns the semantic dimension of this axis variable, used to pick
// the Units field its sample values should be scaled through. Returns nil
// for scalar (dimensionless) variables such as path_depth.
func (v AxisVariable) Unit(u *units.Units) *units.Unit {
	switch v {
	case AxisTotalOutputNetCapacitance,
		AxisRelatedOutTotalOutputNetCapacitance,
		AxisEqualOrOppositeOutputNetCapacitance:
		return u.CapacitanceUnit()
	case AxisInputNetTransition, AxisInputTransitionTime, AxisRelatedPinTransition,
		AxisConstrainedPinTransition, AxisOutputPinTransition, AxisConnectDelay,
		AxisTime, AxisInputNoiseWidth:
		return u.TimeUnit()
	case AxisIvOutputVoltage, AxisInputVoltage, AxisOutputVoltage,
		AxisInputNoiseHeight, AxisNormalizedVoltage:
		return u.VoltageUnit()
	case AxisPathDistance:
		return u.DistanceUnit()
	default:
		return u.ScalarUnit()
	}
}

// Axis is a single independent-variable axis of a lookup table: the
// variable it represents, plus its sorted sample points.
type Axis struct {
	variable AxisVariable
	values   []float64
}

// NewAxis creates an axis over the given variable and sample points. values
// must already be sorted ascending; the Liberty reader is responsible for
// sorting or rejecting unsorted index values.
func NewAxis(variable AxisVariable, values []float64) *Axis {
	return &Axis{variable: variable, values: values}
}

// Variable returns the axis's independent variable.
func (a *Axis) Variable() AxisVariable { return a.variable }

// Size returns the number of sample points.
func (a *Axis) Size() int { return len(a.values) }

// Value returns the i'th sample point.
func (a *Axis) Value(i int) float64 { return a.values[i] }

// Min returns the first (smallest) sample point.
func (a *Axis) Min() float64 { return a.values[0] }

// Max returns the last (largest) sample point.
func (a *Axis) Max() float64 { return a.values[len(a.values)-1] }

// InBounds reports whether x falls within [min,max]; an axis with a single
// point is never "in bounds" since there is no interval to be inside of.
func (a *Axis) InBounds(x float64) bool {
	if len(a.values) <= 1 {
		return false
	}
	return x >= a.Min() && x <= a.Max()
}

// FindIndex returns the index of the lower bound of the segment containing
// x, clamped to [0, size-2] so it is always safe to use as the left side of
// an interpolation between index and index+1.
func (a *Axis) FindIndex(x float64) int {
	n := len(a.values)
	if n <= 1 {
		return 0
	}
	if x <= a.values[0] {
		return 0
	}
	if x >= a.values[n-1] {
		return n - 2
	}
	// Binary search for the last index whose value is <= x.
	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if a.values[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo > n-2 {
		lo = n - 2
	}
	return lo
}

// FindIndexExact returns the index of a sample point exactly equal to x (or
// the boundary index of the segment containing x when no sample matches),
// plus whether an exact match was found.
func (a *Axis) FindIndexExact(x float64) (index int, exists bool) {
	for i, v := range a.values {
		if v == x {
			return i, true
		}
	}
	return a.FindIndex(x), false
}

// FindClosestIndex returns the index of the sample point nearest to x,
// breaking ties toward the upper index.
func (a *Axis) FindClosestIndex(x float64) int {
	n := len(a.values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return 0
	}
	lo := a.FindIndex(x)
	hi := lo + 1
	mid := (a.values[lo] + a.values[hi]) / 2
	if x >= mid {
		return hi
	}
	return lo
}
