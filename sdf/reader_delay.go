package sdf

import (
	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/sta"
	"github.com/opensta-go/opensta/units"
)

// delayGroup implements one (DELAY (ABSOLUTE ...) (INCREMENT ...)) section.
func (r *Reader) delayGroup(g *Group) {
	for _, child := range g.groupArgs() {
		switch child.Keyword {
		case "ABSOLUTE":
			if !r.opts.IncrementalOnly {
				r.processDelaySection(child, false)
			}
		case "INCREMENT":
			r.processDelaySection(child, true)
		default:
			r.delayEntry(child, r.opts.IncrementalOnly, "")
		}
	}
}

func (r *Reader) processDelaySection(section *Group, incremental bool) {
	for _, child := range section.groupArgs() {
		r.delayEntry(child, incremental, "")
	}
}

// delayEntry dispatches one delay construct, unwrapping a COND/CONDELSE
// wrapper down to the IOPATH/INTERCONNECT/PORT/DEVICE it guards.
func (r *Reader) delayEntry(g *Group, incremental bool, sdfCond string) {
	switch g.Keyword {
	case "IOPATH":
		r.ioPath(g, incremental, sdfCond)
	case "INTERCONNECT":
		r.interconnect(g, incremental)
	case "PORT":
		r.portDelay(g, incremental)
	case "DEVICE":
		r.device(g, incremental)
	case "COND", "CONDELSE":
		cond, inner := splitCond(g)
		if inner != nil {
			r.delayEntry(inner, incremental, cond)
		}
	}
}

// splitCond separates a COND group's conditional expression text from its
// guarded delay construct. The expression is matched verbatim (after
// whitespace normalization, via liberty.CondMatches) against the library's
// sdf_cond string rather than evaluated as a boolean expression, the same
// literal-equality convention CondMatches already implements for Liberty's
// side of a conditional arc.
func splitCond(g *Group) (cond string, inner *Group) {
	var text string
	for _, a := range g.Args {
		if a.IsGroup() {
			switch a.Nested.Keyword {
			case "IOPATH", "INTERCONNECT", "PORT", "DEVICE":
				inner = a.Nested
			default:
				text += "(" + a.Nested.Keyword + ")"
			}
			continue
		}
		text += a.Text
	}
	return text, inner
}

// edgeSpec is a bare port name or a (posedge X)/(negedge X) guarded one.
type edgeSpec struct {
	name string
	rf   *units.RiseFall
}

func parseEdgeSpec(a Arg) (edgeSpec, bool) {
	if !a.IsGroup() {
		return edgeSpec{name: a.Text}, true
	}
	g := a.Nested
	args := g.textArgs()
	if len(args) == 0 {
		return edgeSpec{}, false
	}
	switch g.Keyword {
	case "posedge":
		return edgeSpec{name: args[0], rf: units.Rise()}, true
	case "negedge":
		return edgeSpec{name: args[0], rf: units.Fall()}, true
	default:
		return edgeSpec{}, false
	}
}

// parseIOPathArgs splits an IOPATH/INTERCONNECT-shaped group's args into its
// leading from/to port specs and trailing delay triples, in argument order.
func parseIOPathArgs(g *Group) (from, to edgeSpec, triples []Triple, ok bool) {
	var specs []edgeSpec
	for _, a := range g.Args {
		if len(specs) < 2 {
			spec, good := parseEdgeSpec(a)
			if !good {
				return edgeSpec{}, edgeSpec{}, nil, false
			}
			specs = append(specs, spec)
			continue
		}
		if !a.IsGroup() || !isTripleGroup(a.Nested) {
			continue
		}
		t, err := parseTriple(a.Nested.Keyword)
		if err != nil {
			continue
		}
		triples = append(triples, t)
	}
	if len(specs) != 2 {
		return edgeSpec{}, edgeSpec{}, nil, false
	}
	return specs[0], specs[1], triples, true
}

func scaleTriples(ts []Triple, f float64) []Triple {
	out := make([]Triple, len(ts))
	for i, t := range ts {
		out[i] = t.Scale(f)
	}
	return out
}

// mapTripleSlot picks which of an IOPATH's delay triples applies to arc,
// following the SDF convention that two triples are (rise,fall) of the
// output edge, six or twelve are ordered by Transition.SdfTripleIndex.
func mapTripleSlot(arc *liberty.TimingArc, n int) int {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		if rf := arc.ToEdge().AsRiseFall(); rf != nil {
			return rf.Index()
		}
		return 0
	default:
		idx := arc.ToEdge().SdfTripleIndex()
		if idx < 0 || idx >= n {
			return 0
		}
		return idx
	}
}

// ioPath implements the IOPATH rule: find the driven pin's in-edges,
// match the one whose arc set's from port and sdf_cond agree with this
// construct, and write delays onto each of its arcs. A single triple
// broadcasts to every matched arc; two are indexed by the arc's
// toEdge.sdfTripleIndex(); zero or more than two triples is an error.
func (r *Reader) ioPath(g *Group, incremental bool, sdfCond string) {
	from, to, triples, ok := parseIOPathArgs(g)
	if !ok {
		r.report.Warn("sdf-iopath", "%s:%d: malformed IOPATH", r.file, g.LineNo)
		return
	}
	if len(triples) == 0 {
		r.report.Error("%s:%d: IOPATH %s -> %s has no delay triples", r.file, g.LineNo, from.name, to.name)
		return
	}
	if len(triples) > 2 {
		r.report.Error("%s:%d: IOPATH %s -> %s has more than two delay triples", r.file, g.LineNo, from.name, to.name)
		return
	}
	fromPin := r.findPin(from.name)
	toPin := r.findPin(to.name)
	if fromPin == nil || toPin == nil {
		r.report.Warn("sdf-iopath", "%s:%d: IOPATH %s -> %s: pin not found", r.file, g.LineNo, from.name, to.name)
		return
	}
	toVertex := r.graph.PinLoadVertex(toPin)
	if toVertex == nil {
		return
	}
	scaled := scaleTriples(triples, r.timescale)
	matched := false
	for _, edge := range r.graph.InEdges(toVertex) {
		set := edge.ArcSet()
		if !iopathFromMatches(set, edge, from.name, fromPin) {
			continue
		}
		if set.Condelse() {
			if sdfCond != "" {
				continue
			}
		} else if !liberty.CondMatches(sdfCond, set.SdfCond()) {
			continue
		}
		matched = true
		r.writeIOPathArcs(edge, set, scaled, from.rf, incremental)
	}
	if matched || sdfCond == "" || r.opts.CondUse == nil {
		return
	}
	// cond_use fallback: this conditional SDF arc had no library condition
	// to match. Take the first from/to-matching arc set regardless of
	// cond and merge into the cond_use-selected slot(s) instead of
	// failing, per the documented-fragile reference behavior.
	for _, edge := range r.graph.InEdges(toVertex) {
		set := edge.ArcSet()
		if !iopathFromMatches(set, edge, from.name, fromPin) {
			continue
		}
		r.writeIOPathArcsFiltered(edge, set, scaled, from.rf, incremental, r.opts.CondUse.AsMinMax())
		return
	}
}

func iopathFromMatches(set *liberty.TimingArcSet, edge sta.Edge, fromName string, fromPin sta.Pin) bool {
	if set == nil || set.Role().SdfRole() != "IOPATH" || set.Role().IsWire() {
		return false
	}
	if set.From() == nil || set.From().Name() != fromName {
		return false
	}
	return edge.From() != nil && edge.From().Pin() != nil && edge.From().Pin().Name() == fromPin.Name()
}

func (r *Reader) writeIOPathArcs(edge sta.Edge, set *liberty.TimingArcSet, triples []Triple, fromRF *units.RiseFall, incremental bool) {
	r.writeIOPathArcsFiltered(edge, set, triples, fromRF, incremental, nil)
}

func (r *Reader) writeIOPathArcsFiltered(edge sta.Edge, set *liberty.TimingArcSet, triples []Triple, fromRF *units.RiseFall, incremental bool, only *units.MinMax) {
	for _, arc := range set.Arcs() {
		if fromRF != nil {
			rf := arc.FromEdge().AsRiseFall()
			if rf == nil || rf != fromRF {
				continue
			}
		}
		var t Triple
		if len(triples) == 1 {
			t = triples[0]
		} else {
			idx := arc.ToEdge().SdfTripleIndex()
			if idx < 0 || idx >= len(triples) {
				continue
			}
			t = triples[idx]
		}
		r.writeTripleFiltered(edge, arc.Index(), t, incremental, only)
	}
}

// interconnect implements the net-delay rule: annotate the wire arc set
// singleton's two arcs on the edge directly connecting driver to load. A
// hierarchical pin on either end is an error that aborts this annotation.
func (r *Reader) interconnect(g *Group, incremental bool) {
	from, to, triples, ok := parseIOPathArgs(g)
	if !ok {
		r.report.Warn("sdf-interconnect", "%s:%d: malformed INTERCONNECT", r.file, g.LineNo)
		return
	}
	fromPin := r.findPin(from.name)
	toPin := r.findPin(to.name)
	if fromPin == nil || toPin == nil {
		r.report.Warn("sdf-interconnect", "%s:%d: INTERCONNECT %s -> %s: pin not found", r.file, g.LineNo, from.name, to.name)
		return
	}
	if r.network.IsHierarchical(fromPin) {
		r.report.Error("%s:%d: pin %s is a hierarchical pin.", r.file, g.LineNo, from.name)
		return
	}
	if r.network.IsHierarchical(toPin) {
		r.report.Error("%s:%d: pin %s is a hierarchical pin.", r.file, g.LineNo, to.name)
		return
	}
	fromVertex := r.graph.PinDrvrVertex(fromPin)
	toVertex := r.graph.PinLoadVertex(toPin)
	if fromVertex == nil || toVertex == nil {
		return
	}
	scaled := scaleTriples(triples, r.timescale)
	set := liberty.WireArcSet()
	for _, edge := range r.graph.InEdges(toVertex) {
		if edge.ArcSet() != set {
			continue
		}
		if edge.From() != fromVertex {
			continue
		}
		r.annotateArcSet(edge, set, scaled, nil, incremental)
	}
}

// portDelay implements a bare (PORT port (triple)(triple)) section, the
// external net delay driving a primary input with no recorded driver pin.
func (r *Reader) portDelay(g *Group, incremental bool) {
	args := g.textArgs()
	if len(args) == 0 {
		r.report.Warn("sdf-port", "%s:%d: PORT with no port name", r.file, g.LineNo)
		return
	}
	pin := r.findPin(args[0])
	if pin == nil {
		r.report.Warn("sdf-port", "%s:%d: port %q not found", r.file, g.LineNo, args[0])
		return
	}
	vertex := r.graph.PinLoadVertex(pin)
	if vertex == nil {
		return
	}
	triples := tripleArgs(g)
	scaled := scaleTriples(triples, r.timescale)
	set := liberty.WireArcSet()
	for _, edge := range r.graph.InEdges(vertex) {
		if edge.ArcSet() != set {
			continue
		}
		r.annotateArcSet(edge, set, scaled, nil, incremental)
	}
}

// device implements (DEVICE port (triple)...), annotating every IOPATH
// in-edge of the named pin, or — with no port named — of every pin of the
// current instance.
func (r *Reader) device(g *Group, incremental bool) {
	args := g.textArgs()
	triples := tripleArgs(g)
	if len(triples) == 0 {
		return
	}
	scaled := scaleTriples(triples, r.timescale)
	if len(args) == 0 {
		if r.curInstance == nil {
			return
		}
		for _, pin := range r.network.InstancePins(r.curInstance) {
			r.deviceAnnotatePin(pin, scaled, incremental)
		}
		return
	}
	pin := r.findPin(args[0])
	if pin == nil {
		r.report.Warn("sdf-device", "%s:%d: port %q not found", r.file, g.LineNo, args[0])
		return
	}
	r.deviceAnnotatePin(pin, scaled, incremental)
}

func (r *Reader) deviceAnnotatePin(pin sta.Pin, scaled []Triple, incremental bool) {
	vertex := r.graph.PinLoadVertex(pin)
	if vertex == nil {
		return
	}
	for _, edge := range r.graph.InEdges(vertex) {
		set := edge.ArcSet()
		if set == nil || set.Role().SdfRole() != "IOPATH" {
			continue
		}
		r.annotateArcSet(edge, set, scaled, nil, incremental)
	}
}

func tripleArgs(g *Group) []Triple {
	var out []Triple
	for _, gr := range g.groupArgs() {
		if !isTripleGroup(gr) {
			continue
		}
		if t, err := parseTriple(gr.Keyword); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// annotateArcSet writes one triple per arc in set onto edge, picking each
// arc's triple by mapTripleSlot and, when toRF is non-nil (IOPATH's `to`
// port carried a posedge/negedge guard), restricting to arcs whose toEdge
// matches that edge.
func (r *Reader) annotateArcSet(edge sta.Edge, set *liberty.TimingArcSet, triples []Triple, toRF *units.RiseFall, incremental bool) {
	if len(triples) == 0 {
		return
	}
	for _, arc := range set.Arcs() {
		if toRF != nil {
			rf := arc.ToEdge().AsRiseFall()
			if rf == nil || rf != toRF {
				continue
			}
		}
		slot := mapTripleSlot(arc, len(triples))
		r.writeTriple(edge, arc.Index(), triples[slot], incremental)
	}
}

// writeTriple collapses t onto the graph's two annotated delay slots and
// writes them.
func (r *Reader) writeTriple(e sta.Edge, arcIndex int, t Triple, sectionIncremental bool) {
	r.writeTripleFiltered(e, arcIndex, t, sectionIncremental, nil)
}

// writeTripleFiltered is writeTriple restricted to a single min/max slot —
// the cond_use merge policy writes only the requested direction, leaving
// the other slot's existing annotation untouched.
func (r *Reader) writeTripleFiltered(e sta.Edge, arcIndex int, t Triple, sectionIncremental bool, only *units.MinMax) {
	if !t.HasAny() {
		return
	}
	minVal, maxVal, ok := r.collapseTriple(t)
	if !ok {
		return
	}
	if only == nil || only == units.Min() {
		r.applySlot(e, arcIndex, r.opts.ArcMinIndex, minVal, sectionIncremental)
	}
	if only == nil || only == units.Max() {
		r.applySlot(e, arcIndex, r.opts.ArcMaxIndex, maxVal, sectionIncremental)
	}
	// The annotation-is-incremental flag tracks the reader-wide
	// IncrementalOnly option, not this DELAY section's own ABSOLUTE/
	// INCREMENT keyword used just above to pick sectionIncremental.
	e.SetDelayAnnotationIsIncremental(r.opts.IncrementalOnly)
}

func (r *Reader) collapseTriple(t Triple) (min, max float64, ok bool) {
	pick := func(primary, fallback *float64) (float64, bool) {
		if primary != nil {
			return *primary, true
		}
		if fallback != nil {
			return *fallback, true
		}
		return 0, false
	}
	if r.opts.AnalysisType == AnalysisSingle {
		v, has := pick(t.Typ, firstNonNil(t.Min, t.Max))
		if !has {
			return 0, 0, false
		}
		return v, v, true
	}
	mn, minHas := pick(t.Min, t.Typ)
	mx, maxHas := pick(t.Max, t.Typ)
	if !minHas && !maxHas {
		return 0, 0, false
	}
	if !minHas {
		mn = mx
	}
	if !maxHas {
		mx = mn
	}
	return mn, mx, true
}

func firstNonNil(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func (r *Reader) applySlot(e sta.Edge, arcIndex, slot int, v float64, incremental bool) {
	if incremental {
		v += r.graph.ArcDelay(e, arcIndex, slot)
	}
	r.graph.SetArcDelay(e, arcIndex, slot, v)
	r.graph.SetArcDelayAnnotated(e, arcIndex, slot, true)
}
