// Package units implements the scalar unit system, rise/fall/transition,
// min/max/early-late enumerations and PVT scale-factor taxonomy that the
// Liberty and SDF readers scale every numeric value against.
package units

import "fmt"

// Unit converts between an internal SI value and a user-facing value
// scaled for display, such as "1ns" or "1pF".
type Unit struct {
	scale  float64
	suffix string
	digits int
}

// NewUnit creates a Unit with the given display scale (multiplying an SI
// value by 1/scale gives the user value), suffix and number of digits used
// when formatting.
func NewUnit(scale float64, suffix string, digits int) *Unit {
	return &Unit{scale: scale, suffix: suffix, digits: digits}
}

// Scale returns the unit's display scale.
func (u *Unit) Scale() float64 { return u.scale }

// SetScale updates the display scale, as when a Liberty file's *_unit
// attribute overrides the library default.
func (u *Unit) SetScale(scale float64) { u.scale = scale }

// Suffix returns the unit's display suffix, e.g. "ns" or "pF".
func (u *Unit) Suffix() string { return u.suffix }

// Digits returns the number of fractional digits used for display.
func (u *Unit) Digits() int { return u.digits }

// StaToUser converts an internal (SI) value to a user-facing value.
func (u *Unit) StaToUser(value float64) float64 { return value / u.scale }

// UserToSta converts a user-facing value to an internal (SI) value.
func (u *Unit) UserToSta(value float64) float64 { return value * u.scale }

// AsString formats value (already in user units) with the unit's digit
// count and suffix.
func (u *Unit) AsString(value float64) string {
	return fmt.Sprintf("%.*f%s", u.digits, value, u.suffix)
}

// Units is the set of named units a library or delay-calculation corner
// carries: the six dimensional units (time, capacitance, resistance,
// voltage, current, power), one non-dimensional distance unit, and a
// dimensionless scalar unit used for the axis variables that have no
// physical unit.
type Units struct {
	time        *Unit
	capacitance *Unit
	resistance  *Unit
	voltage     *Unit
	current     *Unit
	power       *Unit
	distance    *Unit
	scalar      *Unit
}

// DefaultUnits returns the Liberty-standard defaults a library starts with
// before any *_unit attribute overrides them: 1ns, 1pF, 1kOhm, 1V, 1mA, 1mW,
// 1u (micron), dimensionless scalar.
func DefaultUnits() *Units {
	return &Units{
		time:        NewUnit(1e-9, "s", 5),
		capacitance: NewUnit(1e-12, "F", 6),
		resistance:  NewUnit(1e3, "ohm", 4),
		voltage:     NewUnit(1.0, "V", 3),
		current:     NewUnit(1e-3, "A", 4),
		power:       NewUnit(1e-3, "W", 4),
		distance:    NewUnit(1e-6, "m", 4),
		scalar:      NewUnit(1.0, "", 6),
	}
}

func (u *Units) TimeUnit() *Unit        { return u.time }
func (u *Units) CapacitanceUnit() *Unit { return u.capacitance }
func (u *Units) ResistanceUnit() *Unit  { return u.resistance }
func (u *Units) VoltageUnit() *Unit     { return u.voltage }
func (u *Units) CurrentUnit() *Unit     { return u.current }
func (u *Units) PowerUnit() *Unit       { return u.power }
func (u *Units) DistanceUnit() *Unit    { return u.distance }
func (u *Units) ScalarUnit() *Unit      { return u.scalar }

// Find looks up one of the seven named units (or "scalar") by name.
func (u *Units) Find(name string) *Unit {
	switch name {
	case "time":
		return u.time
	case "capacitance":
		return u.capacitance
	case "resistance":
		return u.resistance
	case "voltage":
		return u.voltage
	case "current":
		return u.current
	case "power":
		return u.power
	case "distance":
		return u.distance
	case "scalar":
		return u.scalar
	default:
		return nil
	}
}

// EnergyScale returns the derived energy unit scale (voltage * capacitance),
// computed once a library's unit attributes have all been read.
func (u *Units) EnergyScale() float64 {
	return u.voltage.Scale() * u.capacitance.Scale()
}
