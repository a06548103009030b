package funcexpr

import "testing"

// testPort is a minimal Port for table-driven tests.
type testPort struct {
	name  string
	width int
	bits  []Port
}

func (p *testPort) Name() string { return p.name }
func (p *testPort) BitWidth() int {
	if p.width == 0 {
		return 1
	}
	return p.width
}
func (p *testPort) Bit(i int) Port { return p.bits[i] }

type portSet map[string]Port

func (s portSet) FindPort(name string) Port { return s[name] }

func TestEquivReflexiveAndOverCopy(t *testing.T) {
	a := &testPort{name: "A"}
	b := &testPort{name: "B"}
	e := MakeAnd(MakeNot(MakePort(a)), MakeXor(MakePort(b), MakeOne()))

	if !Equiv(e, e) {
		t.Fatal("expression should be equivalent to itself")
	}
	if !Equiv(e, Copy(e)) {
		t.Fatal("expression should be equivalent to its deep copy")
	}
}

func TestLessIsTransitiveTotalOrder(t *testing.T) {
	a := &testPort{name: "A"}
	b := &testPort{name: "B"}
	c := &testPort{name: "C"}

	exprs := []*Expr{
		nil,
		MakeZero(),
		MakeOne(),
		MakePort(a),
		MakePort(b),
		MakeNot(MakePort(a)),
		MakeAnd(MakePort(a), MakePort(b)),
		MakeOr(MakePort(a), MakePort(c)),
	}
	for i := range exprs {
		for j := range exprs {
			for k := range exprs {
				x, y, z := exprs[i], exprs[j], exprs[k]
				if Less(x, y) && Less(y, z) && !Less(x, z) {
					t.Fatalf("transitivity violated for indices %d,%d,%d", i, j, k)
				}
				if Less(x, y) && Less(y, x) {
					t.Fatalf("antisymmetry violated for indices %d,%d", i, j)
				}
			}
		}
	}
}

func TestMakeNotDoubleNegationUnwraps(t *testing.T) {
	a := &testPort{name: "A"}
	e := MakePort(a)
	notNot := MakeNot(MakeNot(e))
	if notNot != e {
		t.Fatalf("MakeNot(MakeNot(x)) should return x unchanged, got op %v", notNot.Op())
	}
}

func TestHasPort(t *testing.T) {
	a := &testPort{name: "A"}
	b := &testPort{name: "B"}
	e := MakeAnd(MakePort(a), MakeOne())
	if !HasPort(e, a) {
		t.Error("expected HasPort(e, a) true")
	}
	if HasPort(e, b) {
		t.Error("expected HasPort(e, b) false")
	}
}

// TestFunctionParseDeferred checks that pin(Z) with function "A*B" on a
// cell with ports A, B parses to AND(port(A), port(B)) and both operands
// are positive unate.
func TestFunctionParseDeferred(t *testing.T) {
	a := &testPort{name: "A"}
	b := &testPort{name: "B"}
	ports := portSet{"A": a, "B": b}

	e, err := Parse("A*B", ports)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := MakeAnd(MakePort(a), MakePort(b))
	if !Equiv(e, want) {
		t.Fatalf("Z.function() = %s, want AND(A,B)", e.ToString())
	}
	if PortTimingSense(e, a) != SensePositiveUnate {
		t.Errorf("portTimingSense(A) = %v, want positive_unate", PortTimingSense(e, a))
	}
	if PortTimingSense(e, b) != SensePositiveUnate {
		t.Errorf("portTimingSense(B) = %v, want positive_unate", PortTimingSense(e, b))
	}
}

func TestPortTimingSenseNot(t *testing.T) {
	a := &testPort{name: "A"}
	ports := portSet{"A": a}
	e, err := Parse("!A", ports)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if PortTimingSense(e, a) != SenseNegativeUnate {
		t.Errorf("portTimingSense(A) of !A = %v, want negative_unate", PortTimingSense(e, a))
	}
}

func TestPortTimingSenseXor(t *testing.T) {
	a := &testPort{name: "A"}
	b := &testPort{name: "B"}
	ports := portSet{"A": a, "B": b}
	e, err := Parse("A^B", ports)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if PortTimingSense(e, a) != SenseNonUnate {
		t.Errorf("portTimingSense(A) of A^B = %v, want non_unate", PortTimingSense(e, a))
	}
}

func TestCheckSizeAndBitSubExpr(t *testing.T) {
	a0 := &testPort{name: "A[0]"}
	a1 := &testPort{name: "A[1]"}
	bus := &testPort{name: "A", width: 2, bits: []Port{a0, a1}}
	e := MakePort(bus)
	if !CheckSize(e, 2) {
		t.Error("expected CheckSize(e, 2) true for a 2-bit bus port")
	}
	if CheckSize(e, 1) {
		t.Error("expected CheckSize(e, 1) false for a 2-bit bus port")
	}
	bit0 := BitSubExpr(e, 0)
	if bit0.Op() != OpPort || bit0.Port() != a0 {
		t.Errorf("BitSubExpr(e, 0) = %s, want A[0]", bit0.ToString())
	}
}

func TestParseParenthesesAndPrecedence(t *testing.T) {
	a := &testPort{name: "A"}
	b := &testPort{name: "B"}
	c := &testPort{name: "C"}
	ports := portSet{"A": a, "B": b, "C": c}

	e, err := Parse("A+B*C", ports)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := MakeOr(MakePort(a), MakeAnd(MakePort(b), MakePort(c)))
	if !Equiv(e, want) {
		t.Fatalf("A+B*C parsed as %s, want A+(B*C)", e.ToString())
	}

	e2, err := Parse("(A+B)*C", ports)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want2 := MakeAnd(MakeOr(MakePort(a), MakePort(b)), MakePort(c))
	if !Equiv(e2, want2) {
		t.Fatalf("(A+B)*C parsed as %s, want (A+B)*C", e2.ToString())
	}
}
