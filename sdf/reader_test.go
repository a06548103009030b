package sdf

import (
	"strings"
	"testing"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/sta"
	"github.com/opensta-go/opensta/units"
)

// invFixture builds a one-cell (A -> Z, combinational) design: a library
// cell with a two-arc arc set (01->01 and 10->10, neither carrying a delay
// model), wired into a fake network/graph with one instance "u1" of cell
// "INV1".
type invFixture struct {
	network *sta.FakeNetwork
	graph   *sta.FakeGraph
	set     *liberty.TimingArcSet
	edge    *sta.FakeEdge
	lib     *liberty.Library
}

func newInvFixture(t *testing.T) *invFixture {
	t.Helper()
	lib := liberty.NewLibrary("testlib", "test.lib")
	cell := liberty.NewCell(lib, "INV1")
	a := liberty.NewPort(cell, "A")
	a.SetDirection(liberty.DirInput)
	z := liberty.NewPort(cell, "Z")
	z.SetDirection(liberty.DirOutput)
	cell.AddPort(a)
	cell.AddPort(z)

	set := liberty.NewTimingArcSet(a, z, nil, liberty.RoleCombinational())
	set.AddArc(units.TransitionRise(), units.TransitionRise(), nil)
	set.AddArc(units.TransitionFall(), units.TransitionFall(), nil)
	cell.AddArcSet(set)

	network := sta.NewFakeNetwork()
	inst := &sta.FakeInstance{InstName: "u1", Cell: "INV1"}
	network.AddInstance(inst)

	pinA := &sta.FakePin{PinName: "u1/A"}
	pinZ := &sta.FakePin{PinName: "u1/Z"}
	network.AddPin(pinA)
	network.AddPin(pinZ)
	network.AddInstancePin("u1", pinA)
	network.AddInstancePin("u1", pinZ)

	graph := sta.NewFakeGraph()
	loadA, drvrA := graph.AddPin(pinA)
	loadZ, drvrZ := graph.AddPin(pinZ)
	_ = loadA
	_ = drvrZ

	edge := &sta.FakeEdge{From_: drvrA, To_: loadZ, Set: set}
	graph.AddEdge(edge, loadZ)

	return &invFixture{network: network, graph: graph, set: set, edge: edge, lib: lib}
}

func newOptions() Options {
	return Options{ArcMinIndex: 0, ArcMaxIndex: 1, AnalysisType: AnalysisBcWc}
}

func TestReaderIOPathWritesRiseAndFallDelays(t *testing.T) {
	fx := newInvFixture(t)
	report := &sta.FakeReport{}

	sdfText := `
(DELAYFILE
  (SDFVERSION "3.0")
  (DIVIDER /)
  (TIMESCALE 1ns)
  (CELL
    (CELLTYPE "INV1")
    (INSTANCE u1)
    (DELAY
      (ABSOLUTE
        (IOPATH A Z (0.3:0.3:0.3)(0.4:0.4:0.4))
      )
    )
  )
)
`
	toks, err := Tokenize(strings.NewReader(sdfText))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	groups, err := ParseFile("test.sdf", toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := NewReader("test.sdf", fx.network, fx.graph, fx.lib, report, newOptions())
	if err := r.Read(groups); err != nil {
		t.Fatalf("Read: %v", err)
	}

	riseArc := fx.set.Arcs()[0] // 01 -> 01
	fallArc := fx.set.Arcs()[1] // 10 -> 10

	const eps = 1e-15
	if got := fx.graph.ArcDelay(fx.edge, riseArc.Index(), 0); abs(got-0.3e-9) > eps {
		t.Errorf("rise min delay = %v, want 0.3ns", got)
	}
	if got := fx.graph.ArcDelay(fx.edge, riseArc.Index(), 1); abs(got-0.3e-9) > eps {
		t.Errorf("rise max delay = %v, want 0.3ns", got)
	}
	if got := fx.graph.ArcDelay(fx.edge, fallArc.Index(), 0); abs(got-0.4e-9) > eps {
		t.Errorf("fall min delay = %v, want 0.4ns", got)
	}
	if !fx.graph.IsArcDelayAnnotated(fx.edge, riseArc.Index(), 0) || !fx.graph.IsArcDelayAnnotated(fx.edge, fallArc.Index(), 1) {
		t.Error("expected both arcs annotated")
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestReaderInterconnectHierarchicalPinIsError(t *testing.T) {
	network := sta.NewFakeNetwork()
	graph := sta.NewFakeGraph()
	report := &sta.FakeReport{}

	pinA := &sta.FakePin{PinName: "top/u1/a", Hierarchical: true}
	pinB := &sta.FakePin{PinName: "top/u1/b"}
	network.AddPin(pinA)
	network.AddPin(pinB)
	loadB, _ := graph.AddPin(pinB)
	_ = loadB

	sdfText := `
(DELAYFILE
  (CELL
    (DELAY
      (ABSOLUTE
        (INTERCONNECT top/u1/a top/u1/b (0.1:0.1:0.1))
      )
    )
  )
)
`
	toks, err := Tokenize(strings.NewReader(sdfText))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	groups, err := ParseFile("test.sdf", toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	r := NewReader("test.sdf", network, graph, nil, report, newOptions())
	if err := r.Read(groups); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(report.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", report.Errors)
	}
	if !strings.Contains(report.Errors[0], "is a hierarchical pin") {
		t.Errorf("error = %q, want mention of hierarchical pin", report.Errors[0])
	}
	if len(graph.InEdges(loadB)) != 0 {
		t.Error("graph must not be altered by a hierarchical-pin INTERCONNECT")
	}
}

func TestReaderInstanceWildcardIsError(t *testing.T) {
	network := sta.NewFakeNetwork()
	graph := sta.NewFakeGraph()
	report := &sta.FakeReport{}

	sdfText := `
(DELAYFILE
  (CELL
    (INSTANCE *)
    (DELAY (ABSOLUTE (IOPATH A Z (0.1:0.1:0.1))))
  )
)
`
	toks, _ := Tokenize(strings.NewReader(sdfText))
	groups, err := ParseFile("test.sdf", toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := NewReader("test.sdf", network, graph, nil, report, newOptions())
	if err := r.Read(groups); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "wildcards not supported") {
		t.Fatalf("errors = %v, want one wildcard error", report.Errors)
	}
}

func TestReaderTimescaleUnsupportedIsError(t *testing.T) {
	network := sta.NewFakeNetwork()
	graph := sta.NewFakeGraph()
	report := &sta.FakeReport{}

	sdfText := `(DELAYFILE (TIMESCALE 7ns))`
	toks, _ := Tokenize(strings.NewReader(sdfText))
	groups, err := ParseFile("test.sdf", toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := NewReader("test.sdf", network, graph, nil, report, newOptions())
	if err := r.Read(groups); err == nil {
		t.Fatal("expected an error for an unsupported TIMESCALE multiplier")
	}
}

func TestReaderNochangeWarnsAndDoesNotAnnotate(t *testing.T) {
	fx := newInvFixture(t)
	report := &sta.FakeReport{}

	// The fixture's combinational arc set is enough: NOCHANGE is rejected
	// with a warning before any check arc set is looked up.
	sdfText := `
(DELAYFILE
  (CELL
    (CELLTYPE "INV1")
    (INSTANCE u1)
    (TIMINGCHECK
      (NOCHANGE (posedge A) (posedge Z) (0.1:0.1:0.1)(0.1:0.1:0.1))
    )
  )
)
`
	toks, _ := Tokenize(strings.NewReader(sdfText))
	groups, err := ParseFile("test.sdf", toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := NewReader("test.sdf", fx.network, fx.graph, fx.lib, report, newOptions())
	if err := r.Read(groups); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected a not-supported warning for NOCHANGE")
	}
}
