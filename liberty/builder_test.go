package liberty

import (
	"testing"

	"github.com/opensta-go/opensta/units"
)

func TestBuilderMakeCellRegistersOnLibrary(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	b := NewBuilder()
	c := b.MakeCell(lib, "INV1", "test.lib")
	if lib.FindCell("INV1") != c {
		t.Fatal("MakeCell did not register the cell on the library")
	}
}

func TestBuilderMakeBusPortRegistersMemberBits(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	b := NewBuilder()
	c := b.MakeCell(lib, "REG8", "test.lib")
	dcl := NewBusDcl("Q", 7, 0)
	bus := b.MakeBusPort(c, "Q", 7, 0, dcl)
	if c.FindPortPtr("Q[3]") == nil {
		t.Fatal("expected Q[3] to be indexed on the cell")
	}
	if bus.BusDcl() != dcl {
		t.Fatal("expected the bus port to keep its declaration")
	}
}

func TestBuilderMakeCombinationalArcsBuildsFourArcsForBothEdges(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	c := NewCell(lib, "XOR2")
	a := NewPort(c, "A")
	z := NewPort(c, "Z")
	c.AddPort(a)
	c.AddPort(z)

	b := NewBuilder()
	set := b.MakeCombinationalArcs(c, a, z, true, true, RoleCombinational(), nil)
	if set.ArcCount() != 4 {
		t.Fatalf("ArcCount() = %d, want 4", set.ArcCount())
	}
	if c.ArcSet(0) != set {
		t.Fatal("expected the arc set to be registered on the cell")
	}
}

func TestBuilderMakeRegLatchArcsSharesFromEdge(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	c := NewCell(lib, "DFF1")
	clk := NewPort(c, "CK")
	q := NewPort(c, "Q")
	c.AddPort(clk)
	c.AddPort(q)

	b := NewBuilder()
	set := b.MakeRegLatchArcs(c, clk, q, units.Rise(), nil)
	if set.Role() != RoleRegClkToQ() {
		t.Fatal("expected the reg-clk-to-q role")
	}
	for _, arc := range set.Arcs() {
		if arc.FromEdge() != units.TransitionRise() {
			t.Errorf("FromEdge() = %v, want rise for every arc", arc.FromEdge())
		}
	}
}

func TestBuilderMakePresetClrArcsSharesToEdge(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	c := NewCell(lib, "DFF1")
	clr := NewPort(c, "CDN")
	q := NewPort(c, "Q")
	c.AddPort(clr)
	c.AddPort(q)

	b := NewBuilder()
	set := b.MakePresetClrArcs(c, clr, q, units.Fall(), nil)
	for _, arc := range set.Arcs() {
		if arc.ToEdge() != units.TransitionFall() {
			t.Errorf("ToEdge() = %v, want fall for every arc", arc.ToEdge())
		}
	}
}

func TestBuilderMakeClockTreePathArcsSelectsRoleByMinMax(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	c := NewCell(lib, "CLKBUF")
	z := NewPort(c, "Z")
	c.AddPort(z)

	b := NewBuilder()
	minSet := b.MakeClockTreePathArcs(c, z, units.Min(), nil)
	if minSet.Role() != RoleClockTreePathMin() {
		t.Fatal("expected the min clock-tree-path role")
	}
	maxSet := b.MakeClockTreePathArcs(c, z, units.Max(), nil)
	if maxSet.Role() != RoleClockTreePathMax() {
		t.Fatal("expected the max clock-tree-path role")
	}
}

func TestBuilderMakeMinPulseWidthArcsCoversBothEdges(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	c := NewCell(lib, "DFF1")
	clk := NewPort(c, "CK")
	c.AddPort(clk)

	b := NewBuilder()
	set := b.MakeMinPulseWidthArcs(c, nil, clk, nil, nil)
	if set.Role() != RoleMinPulseWidth() {
		t.Fatal("expected the min_pulse_width role")
	}
	if set.ArcCount() != 2 {
		t.Fatalf("ArcCount() = %d, want 2", set.ArcCount())
	}
}

func TestBuilderMakeLeakagePowerRegistersOnCell(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	c := NewCell(lib, "INV1")
	b := NewBuilder()
	lp := NewLeakagePower(nil, "VDD", 1.2e-9)
	b.MakeLeakagePower(c, lp)
	if len(c.LeakagePowers()) != 1 || c.LeakagePowers()[0] != lp {
		t.Fatal("expected the leakage power entry to be registered")
	}
}

func TestBuilderMakeInternalPowerRegistersOnCell(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	c := NewCell(lib, "INV1")
	a := NewPort(c, "A")
	z := NewPort(c, "ZN")
	c.AddPort(a)
	c.AddPort(z)

	b := NewBuilder()
	p := b.MakeInternalPower(c, z, a, nil)
	if len(c.InternalPowers()) != 1 || c.InternalPowers()[0] != p {
		t.Fatal("expected the internal power entry to be registered")
	}
}
