package liberty

import (
	"testing"

	"github.com/opensta-go/opensta/units"
)

func TestNewBusPortCreatesDescendingMemberBits(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "BUF8")
	bus := NewBusPort(cell, "Z", 7, 0, NewBusDcl("Z", 7, 0))
	if bus.MemberCount() != 8 {
		t.Fatalf("MemberCount() = %d, want 8", bus.MemberCount())
	}
	if bus.Member(0).Name() != "Z[7]" || bus.Member(7).Name() != "Z[0]" {
		t.Fatalf("unexpected member names: %s, %s", bus.Member(0).Name(), bus.Member(7).Name())
	}
	if bus.BitWidth() != 8 {
		t.Fatalf("BitWidth() = %d, want 8", bus.BitWidth())
	}
}

func TestNewBusPortAscending(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "BUF3")
	bus := NewBusPort(cell, "A", 0, 2, NewBusDcl("A", 0, 2))
	want := []string{"A[0]", "A[1]", "A[2]"}
	for i, name := range want {
		if bus.Member(i).Name() != name {
			t.Errorf("Member(%d) = %s, want %s", i, bus.Member(i).Name(), name)
		}
	}
}

func TestCapacitanceIsOneValue(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "INV1")
	p := NewPort(cell, "A")
	p.SetCapacitance(units.Rise(), units.Min(), 1.0)
	p.SetCapacitance(units.Rise(), units.Max(), 1.0)
	p.SetCapacitance(units.Fall(), units.Min(), 1.0)
	p.SetCapacitance(units.Fall(), units.Max(), 1.0)
	if !p.CapacitanceIsOneValue() {
		t.Fatal("expected all four cells equal")
	}
	p.SetCapacitance(units.Fall(), units.Max(), 2.0)
	if p.CapacitanceIsOneValue() {
		t.Fatal("expected cells to differ after override")
	}
}

func TestCapacitanceMinMaxMerge(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "INV1")
	p := NewPort(cell, "A")
	p.SetCapacitance(units.Rise(), units.Max(), 1.0)
	p.SetCapacitance(units.Fall(), units.Max(), 2.0)
	if got := p.CapacitanceMinMax(units.Max()); got != 2.0 {
		t.Errorf("CapacitanceMinMax(max) = %v, want 2.0", got)
	}
	p.SetCapacitance(units.Rise(), units.Min(), 0.5)
	p.SetCapacitance(units.Fall(), units.Min(), 0.3)
	if got := p.CapacitanceMinMax(units.Min()); got != 0.3 {
		t.Errorf("CapacitanceMinMax(min) = %v, want 0.3", got)
	}
}

func TestDriveResistanceSelectsLargest(t *testing.T) {
	lib := NewLibrary("test", "test.lib")
	cell := NewCell(lib, "BUF1")
	in := NewPort(cell, "A")
	out := NewPort(cell, "Z")
	cell.AddPort(in)
	cell.AddPort(out)

	b := NewBuilder()
	setRise := b.MakeCombinationalArcs(cell, in, out, true, false, RoleCombinational(), nil)
	setRise.Arcs()[0].SetModel(NewLinearModel(0.01, 100))
	setRise.Arcs()[1].SetModel(NewLinearModel(0.02, 250))

	if got := out.DriveResistance(); got != 0 {
		t.Errorf("DriveResistance on output port with no outgoing arc = %v, want 0", got)
	}
	if got := in.DriveResistance(); got != 250 {
		t.Errorf("DriveResistance() = %v, want 250", got)
	}
}
