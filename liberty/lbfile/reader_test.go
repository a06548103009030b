package lbfile

import (
	"strings"
	"testing"

	"github.com/opensta-go/opensta/liberty"
)

func readTestLibrary(t *testing.T, src string) *liberty.Library {
	t.Helper()
	toks, err := Tokenize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stmts, err := ParseFile("test.lib", toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := NewReader(liberty.NewBuilder(), nil)
	lib, err := r.Read("test.lib", stmts)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return lib
}

const invLib = `
library (testlib) {
	time_unit : "1ns";
	capacitive_load_unit (1, pf);
	voltage_unit : "1V";
	current_unit : "1mA";
	pulling_resistance_unit : "1kohm";
	leakage_power_unit : "1nW";
	nom_process : 1;
	nom_voltage : 1.1;
	nom_temperature : 25;

	cell (INV1) {
		area : 1.0;
		cell_leakage_power : 0.002;
		pin (A) {
			direction : input;
			capacitance : 0.001;
		}
		pin (Z) {
			direction : output;
			function : "A'";
			timing () {
				related_pin : "A";
				timing_sense : negative_unate;
				cell_rise (delay_template_3x3) {
					index_1 ("0.01, 0.05, 0.1");
					index_2 ("0.01, 0.05, 0.1");
					values ("0.05, 0.06, 0.07", "0.06, 0.07, 0.08", "0.07, 0.08, 0.09");
				}
				cell_fall (delay_template_3x3) {
					index_1 ("0.01, 0.05, 0.1");
					index_2 ("0.01, 0.05, 0.1");
					values ("0.04, 0.05, 0.06", "0.05, 0.06, 0.07", "0.06, 0.07, 0.08");
				}
			}
		}
		leakage_power () {
			when : "A";
			value : 0.0021;
		}
		leakage_power () {
			when : "!A";
			value : 0.0019;
		}
	}
}
`

func TestReaderBuildsCombinationalInverter(t *testing.T) {
	lib := readTestLibrary(t, invLib)
	cell := lib.FindCell("INV1")
	if cell == nil {
		t.Fatal("expected INV1 to be registered on the library")
	}
	if cell.Area() != 1.0 {
		t.Errorf("Area() = %v, want 1.0", cell.Area())
	}
	a := cell.FindPortPtr("A")
	z := cell.FindPortPtr("Z")
	if a == nil || z == nil {
		t.Fatal("expected pins A and Z")
	}
	if z.Function() == nil {
		t.Fatal("expected Z's function expression to be parsed")
	}
	if len(cell.ArcSets()) != 1 {
		t.Fatalf("ArcSets() = %d, want 1", len(cell.ArcSets()))
	}
	set := cell.ArcSet(0)
	if set.ArcCount() != 2 {
		t.Fatalf("ArcCount() = %d, want 2", set.ArcCount())
	}
	for _, arc := range set.Arcs() {
		if arc.GateTableModel() == nil {
			t.Error("expected every arc to carry a gate table model")
		}
	}
	if len(cell.LeakagePowers()) != 2 {
		t.Fatalf("LeakagePowers() = %d, want 2", len(cell.LeakagePowers()))
	}
}

const dffLib = `
library (testlib) {
	time_unit : "1ns";
	capacitive_load_unit (1, pf);
	voltage_unit : "1V";
	current_unit : "1mA";
	pulling_resistance_unit : "1kohm";
	leakage_power_unit : "1nW";

	cell (DFF1) {
		area : 2.0;
		ff (IQ, IQN) {
			clocked_on : "CK";
			next_state : "D";
		}
		pin (CK) {
			direction : input;
			clock : true;
		}
		pin (D) {
			direction : input;
		}
		pin (Q) {
			direction : output;
			function : "IQ";
			timing () {
				related_pin : "CK";
				timing_type : rising_edge;
				cell_rise (delay_template_2x2) {
					index_1 ("0.01, 0.1");
					index_2 ("0.01, 0.1");
					values ("0.10, 0.11", "0.11, 0.12");
				}
			}
			timing () {
				related_pin : "D";
				timing_type : setup_rising;
				rise_constraint (constraint_template_2x2) {
					index_1 ("0.01, 0.1");
					index_2 ("0.01, 0.1");
					values ("0.02, 0.03", "0.03, 0.04");
				}
			}
		}
	}
}
`

func TestReaderBuildsSequentialFlipFlop(t *testing.T) {
	lib := readTestLibrary(t, dffLib)
	cell := lib.FindCell("DFF1")
	if cell == nil {
		t.Fatal("expected DFF1 to be registered on the library")
	}
	if len(cell.Sequentials()) != 1 {
		t.Fatalf("Sequentials() = %d, want 1", len(cell.Sequentials()))
	}
	seq := cell.Sequentials()[0]
	if seq.Clock() == nil || seq.Data() == nil {
		t.Fatal("expected the sequential's clock and data expressions to resolve")
	}
	q := cell.FindPortPtr("Q")
	if q == nil || q.Function() == nil {
		t.Fatal("expected Q's function to resolve against the virtual IQ port")
	}

	var sawRegClk, sawSetup bool
	for _, set := range cell.ArcSets() {
		switch set.Role() {
		case liberty.RoleRegClkToQ():
			sawRegClk = true
		case liberty.RoleSetupRise():
			sawSetup = true
			if set.ArcCount() != 1 {
				t.Errorf("setup ArcCount() = %d, want 1", set.ArcCount())
			}
		}
	}
	if !sawRegClk {
		t.Error("expected a reg-clk-to-q arc set")
	}
	if !sawSetup {
		t.Error("expected a setup-rising check arc set")
	}
}

const busLib = `
library (testlib) {
	time_unit : "1ns";
	capacitive_load_unit (1, pf);
	voltage_unit : "1V";
	current_unit : "1mA";
	pulling_resistance_unit : "1kohm";
	leakage_power_unit : "1nW";

	type (byte8) {
		bit_width : 8;
		bit_from : 7;
		bit_to : 0;
	}

	cell (REG8) {
		area : 8.0;
		bus (D) {
			bus_type : byte8;
			direction : input;
		}
		bus (Q) {
			bus_type : byte8;
			direction : output;
		}
		bundle (EN2) {
			members ("D[0], D[1]");
			direction : input;
		}
	}
}
`

func TestReaderBuildsBusAndBundlePorts(t *testing.T) {
	lib := readTestLibrary(t, busLib)
	cell := lib.FindCell("REG8")
	if cell == nil {
		t.Fatal("expected REG8 to be registered on the library")
	}
	d := cell.FindPortPtr("D")
	if d == nil {
		t.Fatal("expected the D bus port itself to be findable")
	}
	if d.BusDcl() == nil {
		t.Fatal("expected D's bus declaration to resolve from its bus_type attribute")
	}
	if cell.FindPortPtr("D[3]") == nil {
		t.Fatal("expected D[3] to be indexed on the cell")
	}
	if d.MemberCount() != 8 {
		t.Fatalf("MemberCount() = %d, want 8", d.MemberCount())
	}
	for i := 0; i < d.MemberCount(); i++ {
		if d.Member(i).Direction() != liberty.DirInput {
			t.Errorf("member %d direction not propagated from the bus group", i)
		}
	}
	bundle := cell.FindPortPtr("EN2")
	if bundle == nil {
		t.Fatal("expected the EN2 bundle port to be findable")
	}
}
