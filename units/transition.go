package units

// Transition enumerates the 12 SDF edge specifiers (the two ordinary
// rise/fall transitions plus the ten tristate/unknown combinations) and a
// 13th wildcard value, rise_fall, that matches either rise or fall. Each
// concrete (non-wildcard) transition has a unique "triple index" in [0,11]
// used to pick the right slot out of an SDF (min:typ:max) triple list when
// more than one triple is given for a timing arc set.
type Transition struct {
	name        string
	tripleIndex int
	asRiseFall  *RiseFall // nil if this transition has no rise/fall projection
}

var (
	tr01 = &Transition{name: "01", tripleIndex: 0, asRiseFall: riseFallRise}
	tr10 = &Transition{name: "10", tripleIndex: 1, asRiseFall: riseFallFall}
	tr0Z = &Transition{name: "0Z", tripleIndex: 2, asRiseFall: riseFallRise}
	trZ1 = &Transition{name: "Z1", tripleIndex: 3, asRiseFall: riseFallRise}
	tr1Z = &Transition{name: "1Z", tripleIndex: 4, asRiseFall: riseFallFall}
	trZ0 = &Transition{name: "Z0", tripleIndex: 5, asRiseFall: riseFallFall}
	tr0X = &Transition{name: "0X", tripleIndex: 6, asRiseFall: riseFallRise}
	trX1 = &Transition{name: "X1", tripleIndex: 7, asRiseFall: riseFallRise}
	tr1X = &Transition{name: "1X", tripleIndex: 8, asRiseFall: riseFallFall}
	trX0 = &Transition{name: "X0", tripleIndex: 9, asRiseFall: riseFallFall}
	trXZ = &Transition{name: "XZ", tripleIndex: 10, asRiseFall: nil}
	trZX = &Transition{name: "ZX", tripleIndex: 11, asRiseFall: nil}

	// TransitionRiseFall is the wildcard that matches either edge; it has
	// no triple index of its own because it is never a concrete SDF edge.
	trRiseFall = &Transition{name: "rise_fall", tripleIndex: -1, asRiseFall: nil}

	allTransitions = []*Transition{tr01, tr10, tr0Z, trZ1, tr1Z, trZ0, tr0X, trX1, tr1X, trX0, trXZ, trZX}

	transitionByName = map[string]*Transition{
		"01": tr01, "10": tr10,
		"0Z": tr0Z, "Z1": trZ1, "1Z": tr1Z, "Z0": trZ0,
		"0X": tr0X, "X1": trX1, "1X": tr1X, "X0": trX0,
		"XZ": trXZ, "ZX": trZX,
		"rise_fall": trRiseFall,
		"^":         tr01,
		"v":         tr10,
	}
)

// TransitionRise returns the 01 transition, equal in identity to the rise
// RiseFall's concrete transition.
func TransitionRise() *Transition { return tr01 }

// TransitionFall returns the 10 transition.
func TransitionFall() *Transition { return tr10 }

// TransitionRiseFall returns the rise_fall wildcard.
func TransitionRiseFall() *Transition { return trRiseFall }

// FindTransition looks up a transition by its init-final string ("01",
// "0Z", ...), short rise/fall name ("^","v"), or "rise_fall".
func FindTransition(name string) *Transition {
	return transitionByName[name]
}

// AllTransitions returns the 12 concrete transitions in triple-index order.
func AllTransitions() []*Transition { return allTransitions }

// FromRiseFall converts a RiseFall to its concrete Transition.
func FromRiseFall(rf *RiseFall) *Transition {
	if rf == riseFallRise {
		return tr01
	}
	return tr10
}

// Name returns the transition's canonical string ("01", "0Z", "rise_fall",
// ...).
func (t *Transition) Name() string { return t.name }

// AsRiseFall projects this transition onto RiseFall, returning nil for the
// wildcard and for the ambiguous XZ/ZX cases that have no well-defined
// final level.
func (t *Transition) AsRiseFall() *RiseFall { return t.asRiseFall }

// SdfTripleIndex returns this transition's index in [0,11] into an SDF
// (min:typ:max) triple list; the wildcard has no single index and returns
// -1.
func (t *Transition) SdfTripleIndex() int { return t.tripleIndex }

// Matches reports whether t equals other, or either is the rise_fall
// wildcard and the other has a rise/fall projection.
func (t *Transition) Matches(other *Transition) bool {
	if t == other {
		return true
	}
	if t == trRiseFall {
		return other.asRiseFall != nil
	}
	if other == trRiseFall {
		return t.asRiseFall != nil
	}
	return false
}
