package liberty

import (
	"testing"

	"github.com/opensta-go/opensta/funcexpr"
	"github.com/opensta-go/opensta/table"
)

func TestLibraryAddCellInvalidatesCaches(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	b := NewBuilder()

	inv := b.MakeCell(lib, "INV1", "test.lib")
	in, out := buildPorts(t, inv, "A", "ZN")
	out.SetFunction(funcexpr.MakeNot(funcexpr.MakePort(in)))
	inv.SetArea(1.0)

	if got := lib.Inverters(); len(got) != 1 || got[0] != inv {
		t.Fatalf("Inverters() = %v, want [%v]", got, inv)
	}

	buf := b.MakeCell(lib, "BUF1", "test.lib")
	bIn, bOut := buildPorts(t, buf, "A", "Z")
	bOut.SetFunction(funcexpr.MakePort(bIn))
	buf.SetArea(2.0)

	if got := lib.Buffers(); len(got) != 1 || got[0] != buf {
		t.Fatalf("Buffers() = %v, want [%v]", got, buf)
	}
	// adding another cell must invalidate the cached inverter list
	other := b.MakeCell(lib, "AND2", "test.lib")
	other.SetArea(3.0)
	if got := lib.Inverters(); len(got) != 1 || got[0] != inv {
		t.Fatalf("Inverters() after AddCell = %v, want [%v]", got, inv)
	}
}

func TestLibraryBuffersOrderedByAreaThenName(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	b := NewBuilder()

	mkBuffer := func(name string, area float64) *Cell {
		c := b.MakeCell(lib, name, "test.lib")
		in, out := buildPorts(t, c, "A", "Z")
		out.SetFunction(funcexpr.MakePort(in))
		c.SetArea(area)
		return c
	}

	big := mkBuffer("BUFX4", 4.0)
	small := mkBuffer("BUFX1", 1.0)
	sameAreaA := mkBuffer("BUFX2A", 2.0)
	sameAreaB := mkBuffer("BUFX2B", 2.0)

	got := lib.Buffers()
	want := []*Cell{small, sameAreaA, sameAreaB, big}
	if len(got) != len(want) {
		t.Fatalf("len(Buffers()) = %d, want %d", len(got), len(want))
	}
	for i, c := range want {
		if got[i] != c {
			t.Errorf("Buffers()[%d] = %s, want %s", i, got[i].Name(), c.Name())
		}
	}
}

func TestFindCellsMatchingGlob(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	b := NewBuilder()
	b.MakeCell(lib, "BUFX1", "test.lib")
	b.MakeCell(lib, "BUFX2", "test.lib")
	b.MakeCell(lib, "INVX1", "test.lib")

	matches := lib.FindCellsMatching("BUFX*")
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
}

func TestFinishUnitsCapturesEnergyScale(t *testing.T) {
	lib := NewLibrary("testlib", "test.lib")
	lib.FinishUnits()
	want := lib.Units().EnergyScale()
	if lib.EnergyScale() != want {
		t.Errorf("EnergyScale() = %v, want %v", lib.EnergyScale(), want)
	}
}

func TestCheckSlewDegradationAxesRejectsWrongVariable(t *testing.T) {
	axis := table.NewAxis(table.AxisInputNetTransition, []float64{0.1, 0.2})
	tbl := table.NewTable1([]float64{1.0, 2.0}, axis)
	if CheckSlewDegradationAxes(tbl) {
		t.Fatal("expected rejection of an input_net_transition axis")
	}
}

func TestCheckSlewDegradationAxesAcceptsAllowedVariable(t *testing.T) {
	axis := table.NewAxis(table.AxisOutputPinTransition, []float64{0.1, 0.2})
	tbl := table.NewTable1([]float64{1.0, 2.0}, axis)
	if !CheckSlewDegradationAxes(tbl) {
		t.Fatal("expected acceptance of an output_pin_transition axis")
	}
}
