package units

// RiseFall is the closed two-element enumeration of signal edges. The two
// instances are process-wide singletons; callers compare by pointer.
type RiseFall struct {
	index     int
	shortName string
	longName  string
}

var (
	riseFallRise = &RiseFall{index: 0, shortName: "^", longName: "rise"}
	riseFallFall = &RiseFall{index: 1, shortName: "v", longName: "fall"}

	riseFallAll = []*RiseFall{riseFallRise, riseFallFall}
)

// RiseFallIndexCount is the number of RiseFall values, for sizing
// per-rise/fall arrays.
const RiseFallIndexCount = 2

// Rise returns the singleton rise edge.
func Rise() *RiseFall { return riseFallRise }

// Fall returns the singleton fall edge.
func Fall() *RiseFall { return riseFallFall }

// RiseFallRange returns both edges in index order, for range loops.
func RiseFallRange() []*RiseFall { return riseFallAll }

// Index returns 0 for rise, 1 for fall.
func (rf *RiseFall) Index() int { return rf.index }

// ShortName returns "^" or "v".
func (rf *RiseFall) ShortName() string { return rf.shortName }

// Name returns "rise" or "fall".
func (rf *RiseFall) Name() string { return rf.longName }

// Opposite returns fall for rise and vice versa.
func (rf *RiseFall) Opposite() *RiseFall {
	if rf == riseFallRise {
		return riseFallFall
	}
	return riseFallRise
}

// FindRiseFall looks up rise/fall by long or short name.
func FindRiseFall(name string) *RiseFall {
	switch name {
	case "rise", "^", "01":
		return riseFallRise
	case "fall", "v", "10":
		return riseFallFall
	default:
		return nil
	}
}

// RiseFallIndex returns rise/fall by array index (0 or 1).
func RiseFallIndex(index int) *RiseFall {
	if index == 0 {
		return riseFallRise
	}
	return riseFallFall
}

// RiseFallBoth represents {rise, fall, rise_fall} as used by Liberty
// attributes like rf_type whose value can name a single edge or both.
type RiseFallBoth struct {
	name string
	rf   *RiseFall // nil when representing "both"
}

var (
	riseFallBothRise     = &RiseFallBoth{name: "rise", rf: riseFallRise}
	riseFallBothFall     = &RiseFallBoth{name: "fall", rf: riseFallFall}
	riseFallBothRiseFall = &RiseFallBoth{name: "rise_fall", rf: nil}
)

// RiseFallBothRise returns the rise-only RiseFallBoth.
func RiseFallBothRise() *RiseFallBoth { return riseFallBothRise }

// RiseFallBothFall returns the fall-only RiseFallBoth.
func RiseFallBothFall() *RiseFallBoth { return riseFallBothFall }

// RiseFallBothAll returns the rise-and-fall RiseFallBoth.
func RiseFallBothAll() *RiseFallBoth { return riseFallBothRiseFall }

// FindRiseFallBoth looks up a RiseFallBoth by name.
func FindRiseFallBoth(name string) *RiseFallBoth {
	switch name {
	case "rise":
		return riseFallBothRise
	case "fall":
		return riseFallBothFall
	case "rise_fall", "":
		return riseFallBothRiseFall
	default:
		return nil
	}
}

// AsRiseFall returns the single RiseFall this represents, or nil if it
// represents both.
func (b *RiseFallBoth) AsRiseFall() *RiseFall { return b.rf }

// Name returns the display name.
func (b *RiseFallBoth) Name() string { return b.name }

// MatchesRiseFall reports whether rf is included.
func (b *RiseFallBoth) MatchesRiseFall(rf *RiseFall) bool {
	return b.rf == nil || b.rf == rf
}

// MatchesTransition reports whether t's RiseFall projection (if any) is
// included; a tristate/unknown transition with no RiseFall projection never
// matches.
func (b *RiseFallBoth) MatchesTransition(t *Transition) bool {
	rf := t.AsRiseFall()
	return rf != nil && b.MatchesRiseFall(rf)
}
