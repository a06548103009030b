package sta

import (
	"fmt"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/units"
)

// The Fake* types below are a minimal in-memory Network/Graph used by the
// sdf package's tests (and available to any caller that wants to drive the
// SDF reader/writer without a real elaborated netlist). They are not part
// of the external-collaborator contract itself — just a test double for it.

// FakePin is a pin or top-level port identified by its hierarchical name.
type FakePin struct {
	PinName       string
	Hierarchical  bool
	TopLevelPort  bool
}

func (p *FakePin) Name() string { return p.PinName }

// FakeInstance is a leaf instance with a cell-type name.
type FakeInstance struct {
	InstName string
	Cell     string
}

func (i *FakeInstance) Name() string     { return i.InstName }
func (i *FakeInstance) CellName() string { return i.Cell }

// FakeVertex wraps a single pin as a graph vertex.
type FakeVertex struct {
	Pin_ Pin
}

func (v *FakeVertex) Pin() Pin { return v.Pin_ }

// FakeDelaySlot holds one (min,max) pair of annotated/unannotated delay
// values for a single timing arc on a single edge.
type FakeDelaySlot struct {
	Value      [2]float64
	Annotated  [2]bool
}

// FakeEdge is a directed edge between two vertices, driven by one
// TimingArcSet and carrying one FakeDelaySlot per timing arc index (IOPATH
// edges typically have two arcs, rise and fall; wire edges have two as
// well per the wire arc set).
type FakeEdge struct {
	From_, To_ Vertex
	Set        *liberty.TimingArcSet
	Arcs       []*FakeDelaySlot
	Incremental bool
}

func (e *FakeEdge) From() Vertex                  { return e.From_ }
func (e *FakeEdge) To() Vertex                    { return e.To_ }
func (e *FakeEdge) ArcSet() *liberty.TimingArcSet { return e.Set }
func (e *FakeEdge) SetDelayAnnotationIsIncremental(v bool) { e.Incremental = v }

func (e *FakeEdge) arc(i int) *FakeDelaySlot {
	for len(e.Arcs) <= i {
		e.Arcs = append(e.Arcs, &FakeDelaySlot{})
	}
	return e.Arcs[i]
}

// FakePeriodCheck records a period-check annotation for a pin.
type FakePeriodCheck struct {
	Value     [2]float64
	Annotated [2]bool
}

// FakeGraph is a small adjacency-list timing graph sufficient to exercise
// every SDF reader/writer code path against known-shape fixtures.
type FakeGraph struct {
	loadVertex map[string]Vertex
	drvrVertex map[string]Vertex
	inEdges    map[Vertex][]Edge
	periods    map[string]*FakePeriodCheck
	mpw        map[Vertex]map[int]*mpwEntry
}

type mpwEntry struct {
	edge  Edge
	index int
}

func NewFakeGraph() *FakeGraph {
	return &FakeGraph{
		loadVertex: make(map[string]Vertex),
		drvrVertex: make(map[string]Vertex),
		inEdges:    make(map[Vertex][]Edge),
		periods:    make(map[string]*FakePeriodCheck),
		mpw:        make(map[Vertex]map[int]*mpwEntry),
	}
}

// AddPin registers load/driver vertices for a pin; the two are distinct
// FakeVertex values for the same pin.
func (g *FakeGraph) AddPin(p Pin) (load, drvr Vertex) {
	load = &FakeVertex{Pin_: p}
	drvr = &FakeVertex{Pin_: p}
	g.loadVertex[p.Name()] = load
	g.drvrVertex[p.Name()] = drvr
	return
}

// AddEdge connects an edge into to's in-edge list.
func (g *FakeGraph) AddEdge(e Edge, to Vertex) {
	g.inEdges[to] = append(g.inEdges[to], e)
}

// SetMinPulseWidthArc registers the edge/arc-index pair MinPulseWidthArc
// should return for (vertex, rf).
func (g *FakeGraph) SetMinPulseWidthArc(v Vertex, rf *units.RiseFall, e Edge, arcIndex int) {
	m, ok := g.mpw[v]
	if !ok {
		m = make(map[int]*mpwEntry)
		g.mpw[v] = m
	}
	m[rf.Index()] = &mpwEntry{edge: e, index: arcIndex}
}

func (g *FakeGraph) PinLoadVertex(p Pin) Vertex { return g.loadVertex[p.Name()] }
func (g *FakeGraph) PinDrvrVertex(p Pin) Vertex { return g.drvrVertex[p.Name()] }
func (g *FakeGraph) InEdges(v Vertex) []Edge     { return g.inEdges[v] }

func (g *FakeGraph) ArcDelay(e Edge, arcIndex, slot int) float64 {
	return e.(*FakeEdge).arc(arcIndex).Value[slot]
}

func (g *FakeGraph) SetArcDelay(e Edge, arcIndex, slot int, v float64) {
	e.(*FakeEdge).arc(arcIndex).Value[slot] = v
}

func (g *FakeGraph) SetArcDelayAnnotated(e Edge, arcIndex, slot int, v bool) {
	e.(*FakeEdge).arc(arcIndex).Annotated[slot] = v
}

func (g *FakeGraph) IsArcDelayAnnotated(e Edge, arcIndex, slot int) bool {
	return e.(*FakeEdge).arc(arcIndex).Annotated[slot]
}

func (g *FakeGraph) SetPeriodCheckAnnotation(p Pin, slot int, v float64) {
	pc, ok := g.periods[p.Name()]
	if !ok {
		pc = &FakePeriodCheck{}
		g.periods[p.Name()] = pc
	}
	pc.Value[slot] = v
	pc.Annotated[slot] = true
}

func (g *FakeGraph) PeriodCheck(p Pin) *FakePeriodCheck { return g.periods[p.Name()] }

func (g *FakeGraph) PeriodCheckValue(p Pin, slot int) float64 {
	pc, ok := g.periods[p.Name()]
	if !ok {
		return 0
	}
	return pc.Value[slot]
}

func (g *FakeGraph) IsPeriodCheckAnnotated(p Pin, slot int) bool {
	pc, ok := g.periods[p.Name()]
	if !ok {
		return false
	}
	return pc.Annotated[slot]
}

func (g *FakeGraph) MinPulseWidthArc(v Vertex, rf *units.RiseFall) (Edge, int, bool) {
	m, ok := g.mpw[v]
	if !ok {
		return nil, 0, false
	}
	e, ok := m[rf.Index()]
	if !ok {
		return nil, 0, false
	}
	return e.edge, e.index, true
}

// FakeNetwork is a name-indexed Network double.
type FakeNetwork struct {
	pins      map[string]Pin
	instances map[string]Instance
	instOrder []Instance
	instPins  map[string][]Pin
	divider   byte
	escape    byte
}

func NewFakeNetwork() *FakeNetwork {
	return &FakeNetwork{
		pins:      make(map[string]Pin),
		instances: make(map[string]Instance),
		instPins:  make(map[string][]Pin),
		divider:   '/',
		escape:    '\\',
	}
}

func (n *FakeNetwork) AddPin(p Pin) { n.pins[p.Name()] = p }
func (n *FakeNetwork) AddInstance(i Instance) {
	n.instances[i.Name()] = i
	n.instOrder = append(n.instOrder, i)
}
func (n *FakeNetwork) SetDivider(d byte) { n.divider = d }
func (n *FakeNetwork) SetEscape(e byte)  { n.escape = e }

// AddInstancePin registers p as belonging to the named instance, in
// addition to (not instead of) AddPin's path-keyed lookup.
func (n *FakeNetwork) AddInstancePin(instName string, p Pin) {
	n.instPins[instName] = append(n.instPins[instName], p)
}

func (n *FakeNetwork) FindPin(name string) Pin           { return n.pins[name] }
func (n *FakeNetwork) FindInstance(name string) Instance { return n.instances[name] }
func (n *FakeNetwork) InstancePins(inst Instance) []Pin  { return n.instPins[inst.Name()] }
func (n *FakeNetwork) PathName(inst Instance) string     { return inst.Name() }
func (n *FakeNetwork) CellName(inst Instance) string     { return inst.CellName() }
func (n *FakeNetwork) PathDivider() byte                 { return n.divider }
func (n *FakeNetwork) PathEscape() byte                  { return n.escape }

// LeafInstances returns every instance added via AddInstance, in
// registration order.
func (n *FakeNetwork) LeafInstances() []Instance { return n.instOrder }

func (n *FakeNetwork) IsHierarchical(p Pin) bool {
	if fp, ok := p.(*FakePin); ok {
		return fp.Hierarchical
	}
	return false
}

func (n *FakeNetwork) IsTopLevelPort(p Pin) bool {
	if fp, ok := p.(*FakePin); ok {
		return fp.TopLevelPort
	}
	return false
}

// FakeDcalcAnalysisPt is a trivial (index, min/max) analysis point.
type FakeDcalcAnalysisPt struct {
	Idx int
	MM  *units.MinMax
}

func (a *FakeDcalcAnalysisPt) Index() int          { return a.Idx }
func (a *FakeDcalcAnalysisPt) MinMax() *units.MinMax { return a.MM }

// FakeReport collects warnings/errors for test assertions instead of
// writing them anywhere.
type FakeReport struct {
	Warnings []string
	Errors   []string
}

func (r *FakeReport) Warn(id string, format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *FakeReport) Error(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	r.Errors = append(r.Errors, msg)
	return fmt.Errorf("%s", msg)
}
