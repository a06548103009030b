package units

import "math"

// MinMax is the binary min/max enumeration used throughout delay
// calculation to pick the worst-case direction for a quantity.
type MinMax struct {
	index     int
	name      string
	initValue float64 // the "worst" starting value for a min/max reduction
}

var (
	minMaxMin = &MinMax{index: 0, name: "min", initValue: math.MaxFloat64}
	minMaxMax = &MinMax{index: 1, name: "max", initValue: -math.MaxFloat64}

	minMaxAllVals = []*MinMax{minMaxMin, minMaxMax}
)

// MinMaxIndexCount sizes per-min/max arrays.
const MinMaxIndexCount = 2

func Min() *MinMax { return minMaxMin }
func Max() *MinMax { return minMaxMax }

// MinMaxRange returns both values in index order.
func MinMaxRange() []*MinMax { return minMaxAllVals }

func (m *MinMax) Index() int      { return m.index }
func (m *MinMax) Name() string    { return m.name }
func (m *MinMax) InitValue() float64 { return m.initValue }

// Opposite returns max for min and vice versa.
func (m *MinMax) Opposite() *MinMax {
	if m == minMaxMin {
		return minMaxMax
	}
	return minMaxMin
}

// Compare returns true if a is "more extreme" than b in this direction
// (a < b for min, a > b for max).
func (m *MinMax) Compare(a, b float64) bool {
	if m == minMaxMin {
		return a < b
	}
	return a > b
}

// Better picks the more extreme of a and b according to this direction.
func (m *MinMax) Better(a, b float64) float64 {
	if m.Compare(a, b) {
		return a
	}
	return b
}

// FindMinMax looks up min/max by name.
func FindMinMax(name string) *MinMax {
	switch name {
	case "min":
		return minMaxMin
	case "max":
		return minMaxMax
	default:
		return nil
	}
}

// MinMaxIndex returns min/max by array index (0 or 1).
func MinMaxIndex(index int) *MinMax {
	if index == 0 {
		return minMaxMin
	}
	return minMaxMax
}

// MinMaxAll adds the "all" (both) value to MinMax, used for analysis modes
// and cond_use policy where either, or both, directions may be requested.
type MinMaxAll struct {
	name string
	mm   *MinMax // nil when representing "all"
}

var (
	minMaxAllMin = &MinMaxAll{name: "min", mm: minMaxMin}
	minMaxAllMax = &MinMaxAll{name: "max", mm: minMaxMax}
	minMaxAllAll = &MinMaxAll{name: "all", mm: nil}
)

func MinMaxAllMin() *MinMaxAll { return minMaxAllMin }
func MinMaxAllMax() *MinMaxAll { return minMaxAllMax }
func MinMaxAllAll() *MinMaxAll { return minMaxAllAll }

// FindMinMaxAll looks up a MinMaxAll by name ("min", "max", "all").
func FindMinMaxAll(name string) *MinMaxAll {
	switch name {
	case "min":
		return minMaxAllMin
	case "max":
		return minMaxAllMax
	case "all":
		return minMaxAllAll
	default:
		return nil
	}
}

// Name returns "min", "max", or "all".
func (m *MinMaxAll) Name() string { return m.name }

// AsMinMax returns the single MinMax this represents, or nil for "all".
func (m *MinMaxAll) AsMinMax() *MinMax { return m.mm }

// Matches reports whether mm is included.
func (m *MinMaxAll) Matches(mm *MinMax) bool {
	return m.mm == nil || m.mm == mm
}

// EarlyLate is the binary early/late enumeration OCV derating and timing
// checks distinguish between; it parallels MinMax but is spelled
// differently in Liberty (rise/fall early/late derate groups vs. min/max
// delay calculation).
type EarlyLate struct {
	index int
	name  string
}

var (
	earlyLateEarly = &EarlyLate{index: 0, name: "early"}
	earlyLateLate  = &EarlyLate{index: 1, name: "late"}

	earlyLateAllVals = []*EarlyLate{earlyLateEarly, earlyLateLate}
)

const EarlyLateIndexCount = 2

func Early() *EarlyLate { return earlyLateEarly }
func Late() *EarlyLate  { return earlyLateLate }

// EarlyLateRange returns both values in index order.
func EarlyLateRange() []*EarlyLate { return earlyLateAllVals }

func (e *EarlyLate) Index() int   { return e.index }
func (e *EarlyLate) Name() string { return e.name }

// Opposite returns late for early and vice versa.
func (e *EarlyLate) Opposite() *EarlyLate {
	if e == earlyLateEarly {
		return earlyLateLate
	}
	return earlyLateEarly
}

// FindEarlyLate looks up early/late by name.
func FindEarlyLate(name string) *EarlyLate {
	switch name {
	case "early":
		return earlyLateEarly
	case "late":
		return earlyLateLate
	default:
		return nil
	}
}

// EarlyLateAll adds "all" to EarlyLate, mirroring MinMaxAll.
type EarlyLateAll struct {
	name string
	el   *EarlyLate
}

var (
	earlyLateAllEarly = &EarlyLateAll{name: "early", el: earlyLateEarly}
	earlyLateAllLate  = &EarlyLateAll{name: "late", el: earlyLateLate}
	earlyLateAllAll   = &EarlyLateAll{name: "all", el: nil}
)

func EarlyLateAllEarly() *EarlyLateAll { return earlyLateAllEarly }
func EarlyLateAllLate() *EarlyLateAll  { return earlyLateAllLate }
func EarlyLateAllAll() *EarlyLateAll   { return earlyLateAllAll }

// FindEarlyLateAll looks up an EarlyLateAll by name ("early", "late",
// "all").
func FindEarlyLateAll(name string) *EarlyLateAll {
	switch name {
	case "early":
		return earlyLateAllEarly
	case "late":
		return earlyLateAllLate
	case "all":
		return earlyLateAllAll
	default:
		return nil
	}
}

func (e *EarlyLateAll) Name() string          { return e.name }
func (e *EarlyLateAll) AsEarlyLate() *EarlyLate { return e.el }

func (e *EarlyLateAll) Matches(el *EarlyLate) bool {
	return e.el == nil || e.el == el
}
