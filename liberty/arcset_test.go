package liberty

import (
	"testing"

	"github.com/opensta-go/opensta/funcexpr"
	"github.com/opensta-go/opensta/units"
)

func TestWireArcSetHasTwoArcsAndNoCell(t *testing.T) {
	set := WireArcSet()
	if set.Cell() != nil {
		t.Fatal("WireArcSet must not belong to any cell")
	}
	if set.ArcCount() != 2 {
		t.Fatalf("ArcCount() = %d, want 2", set.ArcCount())
	}
	if set.Role() != RoleWire() {
		t.Fatal("expected the wire role")
	}
}

func TestArcSetSenseUnanimousPositive(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "BUF1")
	in, out := buildPorts(t, cell, "A", "Z")
	b := NewBuilder()
	set := b.MakeCombinationalArcs(cell, in, out, true, false, RoleCombinational(), &TimingArcAttrs{Sense: "positive_unate"})

	if got := set.Sense(); got != funcexpr.SensePositiveUnate {
		t.Errorf("Sense() = %v, want positive unate", got)
	}
}

func TestArcSetSenseMixedIsNonUnate(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "XOR2")
	a := NewPort(cell, "A")
	z := NewPort(cell, "Z")
	cell.AddPort(a)
	cell.AddPort(z)
	set := NewTimingArcSet(a, z, nil, RoleCombinational())
	set.AddArc(units.TransitionRise(), units.TransitionRise(), nil)
	set.AddArc(units.TransitionFall(), units.TransitionRise(), nil)

	if got := set.Sense(); got != funcexpr.SenseNonUnate {
		t.Errorf("Sense() = %v, want non unate", got)
	}
}

func TestArcSetOrderingLexicographic(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "ND2")
	a := NewPort(cell, "A")
	bPort := NewPort(cell, "B")
	z := NewPort(cell, "Z")
	cell.AddPort(a)
	cell.AddPort(bPort)
	cell.AddPort(z)

	s1 := NewTimingArcSet(bPort, z, nil, RoleCombinational())
	s2 := NewTimingArcSet(a, z, nil, RoleCombinational())

	if !ArcSetLess(s2, s1) {
		t.Fatal("expected arc set from A to sort before arc set from B")
	}
	if ArcSetLess(s1, s2) {
		t.Fatal("ordering must not be symmetric here")
	}
}

func TestSortArcSetsStable(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "ND3")
	a := NewPort(cell, "A")
	bPort := NewPort(cell, "B")
	c := NewPort(cell, "C")
	z := NewPort(cell, "Z")
	for _, p := range []*Port{a, bPort, c, z} {
		cell.AddPort(p)
	}
	sets := []*TimingArcSet{
		NewTimingArcSet(c, z, nil, RoleCombinational()),
		NewTimingArcSet(a, z, nil, RoleCombinational()),
		NewTimingArcSet(bPort, z, nil, RoleCombinational()),
	}
	SortArcSets(sets)
	wantOrder := []string{"A", "B", "C"}
	for i, want := range wantOrder {
		if sets[i].From().Name() != want {
			t.Errorf("sets[%d].From() = %s, want %s", i, sets[i].From().Name(), want)
		}
	}
}

func TestCondMatchesEmptySdfCondMatchesAnything(t *testing.T) {
	if !CondMatches("", "A & B") {
		t.Fatal("empty SDF cond must match any library cond")
	}
}

func TestCondMatchesIgnoresWhitespace(t *testing.T) {
	if !CondMatches("A&B", "A  &   B") {
		t.Fatal("expected whitespace-insensitive match")
	}
	if CondMatches("A&B", "A&C") {
		t.Fatal("expected mismatch on differing conditions")
	}
}

func TestArcSenseFromEdges(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "BUF1")
	in, out := buildPorts(t, cell, "A", "Z")
	set := NewTimingArcSet(in, out, nil, RoleCombinational())
	riseRise := set.AddArc(units.TransitionRise(), units.TransitionRise(), nil)
	fallRise := set.AddArc(units.TransitionFall(), units.TransitionRise(), nil)

	if riseRise.Sense() != funcexpr.SensePositiveUnate {
		t.Errorf("rise->rise arc sense = %v, want positive unate", riseRise.Sense())
	}
	if fallRise.Sense() != funcexpr.SenseNegativeUnate {
		t.Errorf("fall->rise arc sense = %v, want negative unate", fallRise.Sense())
	}
}

func TestArcsFromAndArcTo(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "BUF1")
	in, out := buildPorts(t, cell, "A", "Z")
	b := NewBuilder()
	set := b.MakeCombinationalArcs(cell, in, out, true, true, RoleCombinational(), &TimingArcAttrs{Sense: "positive_unate"})

	fromRise := set.ArcsFrom(units.Rise())
	if len(fromRise) != 1 {
		t.Fatalf("len(ArcsFrom(rise)) = %d, want 1", len(fromRise))
	}
	toFall := set.ArcTo(units.Fall())
	if toFall == nil || toFall.ToEdge() != units.TransitionFall() {
		t.Fatal("ArcTo(fall) did not return a fall-edge arc")
	}
}
