package sdf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/sta"
	"github.com/opensta-go/opensta/units"
)

// WriteOptions configures a Writer, mirroring spec.md §4.8's parameter
// list: which scene's arc-delay slots to read, a precision, and the
// emit_typ/emit_timestamp/emit_timescale flags. Gzip output is the
// caller's concern (wrap the io.Writer), matching how lbfile.Open handles
// decompression transparently on read but write_liberty-style callers
// choose their own sink.
type WriteOptions struct {
	Divider       byte
	Precision     int
	EmitTyp       bool
	EmitTimestamp bool
	EmitTimescale bool
	ArcMinIndex   int
	ArcMaxIndex   int
	Design        string
	Vendor        string
	Program       string
	Version       string
	Voltage       string
	Process       string
	Temperature   string
	// Timestamp, if EmitTimestamp is set, is printed verbatim as the DATE
	// field; callers stamp it themselves since this package may not call
	// time.Now (it must stay deterministic for golden-file tests).
	Timestamp string
}

// Writer emits an elaborated graph's annotated arc delays and timing
// checks back out as SDF text, the reverse of Reader. It covers the two
// annotation shapes spec.md §4.8 enumerates: per-cell IOPATH delays and
// TIMINGCHECK entries. INTERCONNECT/PORT/DEVICE annotations are not
// re-emitted — see DESIGN.md's Open Question note on writer scope.
type Writer struct {
	network sta.Network
	graph   sta.Graph
	opts    WriteOptions
}

// NewWriter creates a Writer over network/graph with opts.
func NewWriter(network sta.Network, graph sta.Graph, opts WriteOptions) *Writer {
	return &Writer{network: network, graph: graph, opts: opts}
}

// WriteFile creates (or truncates) path and writes the graph's annotated
// delays to it.
func WriteFile(path string, network sta.Network, graph sta.Graph, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sdf: creating %s: %w", path, err)
	}
	defer f.Close()
	w := NewWriter(network, graph, opts)
	return w.Write(f)
}

func (w *Writer) divider() byte {
	if w.opts.Divider == 0 {
		return '/'
	}
	return w.opts.Divider
}

// Write emits the full (DELAYFILE ...) document to out.
func (w *Writer) Write(out io.Writer) error {
	bw := &bufWriter{w: out}
	w.writeHeader(bw)
	for _, inst := range w.network.LeafInstances() {
		w.writeCell(bw, inst)
	}
	bw.printf(")\n")
	return bw.err
}

type bufWriter struct {
	w   io.Writer
	err error
}

func (b *bufWriter) printf(format string, args ...any) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.w, format, args...)
}

func (w *Writer) writeHeader(b *bufWriter) {
	b.printf("(DELAYFILE\n")
	b.printf("  (SDFVERSION \"3.0\")\n")
	if w.opts.Design != "" {
		b.printf("  (DESIGN %q)\n", w.opts.Design)
	}
	if w.opts.EmitTimestamp && w.opts.Timestamp != "" {
		b.printf("  (DATE %q)\n", w.opts.Timestamp)
	}
	if w.opts.Vendor != "" {
		b.printf("  (VENDOR %q)\n", w.opts.Vendor)
	}
	if w.opts.Program != "" {
		b.printf("  (PROGRAM %q)\n", w.opts.Program)
	}
	if w.opts.Version != "" {
		b.printf("  (VERSION %q)\n", w.opts.Version)
	}
	b.printf("  (DIVIDER %s)\n", string(w.divider()))
	if w.opts.Voltage != "" {
		b.printf("  (VOLTAGE %s)\n", w.opts.Voltage)
	}
	if w.opts.Process != "" {
		b.printf("  (PROCESS %q)\n", w.opts.Process)
	}
	if w.opts.Temperature != "" {
		b.printf("  (TEMPERATURE %s)\n", w.opts.Temperature)
	}
	if w.opts.EmitTimescale {
		b.printf("  (TIMESCALE 1ns)\n")
	}
}

// writeCell emits one (CELL ...) section for inst if it has any annotated
// IOPATH arc or timing check; instances with nothing annotated are
// skipped entirely.
func (w *Writer) writeCell(b *bufWriter, inst sta.Instance) {
	ioGroups := w.collectIOPaths(inst)
	checks := w.collectChecks(inst)
	if len(ioGroups) == 0 && len(checks) == 0 {
		return
	}
	b.printf("  (CELL\n")
	b.printf("    (CELLTYPE %q)\n", w.network.CellName(inst))
	b.printf("    (INSTANCE %s)\n", sdfInstancePath(w.network.PathName(inst), w.network.PathDivider(), w.divider()))
	if len(ioGroups) > 0 {
		b.printf("    (DELAY\n")
		b.printf("      (ABSOLUTE\n")
		for _, g := range ioGroups {
			w.writeIOGroup(b, g)
		}
		b.printf("      )\n")
		b.printf("    )\n")
	}
	if len(checks) > 0 {
		b.printf("    (TIMINGCHECK\n")
		for _, c := range checks {
			w.writeCheck(b, c)
		}
		b.printf("    )\n")
	}
	b.printf("  )\n")
}

func sdfInstancePath(path string, netDiv, sdfDiv byte) string {
	if netDiv == sdfDiv {
		return path
	}
	return strings.ReplaceAll(path, string(netDiv), string(sdfDiv))
}

// ioGroup is one emitted IOPATH entry: a matched set of a timing arc
// set's arcs sharing a `from` edge qualifier, ready to render as one or
// two delay triples.
type ioGroup struct {
	fromName, toName string
	fromRF           *units.RiseFall
	triples          []string // already-formatted, in toEdge.SdfTripleIndex order
}

func (w *Writer) collectIOPaths(inst sta.Instance) []ioGroup {
	seen := map[sta.Edge]bool{}
	var groups []ioGroup
	for _, pin := range w.network.InstancePins(inst) {
		vtx := w.graph.PinLoadVertex(pin)
		if vtx == nil {
			continue
		}
		for _, edge := range w.graph.InEdges(vtx) {
			if seen[edge] {
				continue
			}
			set := edge.ArcSet()
			if set == nil || set.Role().IsWire() || set.Role().SdfRole() != "IOPATH" || set.Role().IsTimingCheck() {
				continue
			}
			seen[edge] = true
			groups = append(groups, w.ioGroupsForEdge(edge, set)...)
		}
	}
	return groups
}

// roleNeedsFromEdge reports whether this role's IOPATH entries split by
// the triggering edge on the `from` pin (sequential clock-to-output and
// clear/preset paths only fire on one edge of their controlling signal),
// as opposed to combinational/tristate arcs where a single IOPATH entry
// carries both the rise and fall triples.
func roleNeedsFromEdge(role *liberty.TimingRole) bool {
	return role == liberty.RoleRegClkToQ() || role == liberty.RoleLatchDtoQ() || role == liberty.RolePresetClear()
}

func (w *Writer) ioGroupsForEdge(edge sta.Edge, set *liberty.TimingArcSet) []ioGroup {
	type bucket struct {
		fromRF *units.RiseFall
		arcs   []*liberty.TimingArc
	}
	var buckets []*bucket
	find := func(rf *units.RiseFall) *bucket {
		for _, bk := range buckets {
			if bk.fromRF == rf {
				return bk
			}
		}
		bk := &bucket{fromRF: rf}
		buckets = append(buckets, bk)
		return bk
	}
	split := roleNeedsFromEdge(set.Role())
	for _, arc := range set.Arcs() {
		annotated := w.graph.IsArcDelayAnnotated(edge, arc.Index(), w.opts.ArcMinIndex) ||
			w.graph.IsArcDelayAnnotated(edge, arc.Index(), w.opts.ArcMaxIndex)
		if !annotated {
			continue
		}
		var key *units.RiseFall
		if split {
			key = arc.FromEdge().AsRiseFall()
		}
		bk := find(key)
		bk.arcs = append(bk.arcs, arc)
	}
	var out []ioGroup
	for _, bk := range buckets {
		if len(bk.arcs) == 0 {
			continue
		}
		sort.Slice(bk.arcs, func(i, j int) bool {
			return bk.arcs[i].ToEdge().SdfTripleIndex() < bk.arcs[j].ToEdge().SdfTripleIndex()
		})
		g := ioGroup{fromName: set.From().Name(), toName: set.To().Name(), fromRF: bk.fromRF}
		for _, arc := range bk.arcs {
			g.triples = append(g.triples, w.tripleFor(edge, arc.Index()))
		}
		out = append(out, g)
	}
	return out
}

func (w *Writer) tripleFor(edge sta.Edge, arcIndex int) string {
	minV := w.graph.ArcDelay(edge, arcIndex, w.opts.ArcMinIndex)
	maxV := w.graph.ArcDelay(edge, arcIndex, w.opts.ArcMaxIndex)
	return w.formatTriple(minV, maxV)
}

func (w *Writer) formatTriple(minV, maxV float64) string {
	prec := w.opts.Precision
	if prec <= 0 {
		prec = 3
	}
	fmtV := func(v float64) string { return strconv.FormatFloat(v*1e9, 'f', prec, 64) }
	if w.opts.EmitTyp {
		typV := (minV + maxV) / 2
		return fmt.Sprintf("(%s:%s:%s)", fmtV(minV), fmtV(typV), fmtV(maxV))
	}
	return fmt.Sprintf("(%s::%s)", fmtV(minV), fmtV(maxV))
}

func edgeSpecString(name string, rf *units.RiseFall) string {
	switch rf {
	case units.Rise():
		return "(posedge " + name + ")"
	case units.Fall():
		return "(negedge " + name + ")"
	default:
		return name
	}
}

func (w *Writer) writeIOGroup(b *bufWriter, g ioGroup) {
	b.printf("        (IOPATH %s %s %s)\n",
		edgeSpecString(g.fromName, g.fromRF), g.toName, strings.Join(g.triples, " "))
}

// checkEntry is one TIMINGCHECK construct ready to render.
type checkEntry struct {
	keyword     string
	cond        string
	relatedName string
	relatedRF   *units.RiseFall
	dataName    string
	dataRF      *units.RiseFall
	triple      string
}

func (w *Writer) collectChecks(inst sta.Instance) []checkEntry {
	var out []checkEntry
	seen := map[sta.Edge]bool{}
	for _, pin := range w.network.InstancePins(inst) {
		vtx := w.graph.PinLoadVertex(pin)
		if vtx == nil {
			continue
		}
		for _, edge := range w.graph.InEdges(vtx) {
			if seen[edge] {
				continue
			}
			set := edge.ArcSet()
			if set == nil || !set.Role().IsTimingCheck() || set.Role() == liberty.RoleWidth() || set.Role() == liberty.RolePeriod() || set.Role() == liberty.RoleNochange() {
				continue
			}
			seen[edge] = true
			for _, arc := range set.Arcs() {
				if !w.graph.IsArcDelayAnnotated(edge, arc.Index(), w.opts.ArcMinIndex) &&
					!w.graph.IsArcDelayAnnotated(edge, arc.Index(), w.opts.ArcMaxIndex) {
					continue
				}
				out = append(out, checkEntry{
					keyword:     set.Role().SdfRole(),
					cond:        set.SdfCond(),
					relatedName: set.From().Name(),
					relatedRF:   arc.FromEdge().AsRiseFall(),
					dataName:    set.To().Name(),
					dataRF:      arc.ToEdge().AsRiseFall(),
					triple:      w.tripleFor(edge, arc.Index()),
				})
			}
		}
	}
	out = append(out, w.collectWidthChecks(inst)...)
	out = append(out, w.collectPeriodChecks(inst)...)
	return out
}

func (w *Writer) collectWidthChecks(inst sta.Instance) []checkEntry {
	var out []checkEntry
	for _, pin := range w.network.InstancePins(inst) {
		vtx := w.graph.PinLoadVertex(pin)
		if vtx == nil {
			continue
		}
		for _, rf := range []*units.RiseFall{units.Rise(), units.Fall()} {
			edge, arcIndex, ok := w.graph.MinPulseWidthArc(vtx, rf)
			if !ok {
				continue
			}
			if !w.graph.IsArcDelayAnnotated(edge, arcIndex, w.opts.ArcMinIndex) &&
				!w.graph.IsArcDelayAnnotated(edge, arcIndex, w.opts.ArcMaxIndex) {
				continue
			}
			out = append(out, checkEntry{
				keyword:   "WIDTH",
				dataName:  pin.Name(),
				dataRF:    rf,
				triple:    w.tripleFor(edge, arcIndex),
			})
		}
	}
	return out
}

func (w *Writer) collectPeriodChecks(inst sta.Instance) []checkEntry {
	var out []checkEntry
	for _, pin := range w.network.InstancePins(inst) {
		if !w.graph.IsPeriodCheckAnnotated(pin, w.opts.ArcMinIndex) && !w.graph.IsPeriodCheckAnnotated(pin, w.opts.ArcMaxIndex) {
			continue
		}
		minV := w.graph.PeriodCheckValue(pin, w.opts.ArcMinIndex)
		maxV := w.graph.PeriodCheckValue(pin, w.opts.ArcMaxIndex)
		out = append(out, checkEntry{
			keyword:  "PERIOD",
			dataName: pin.Name(),
			triple:   w.formatTriple(minV, maxV),
		})
	}
	return out
}

func (w *Writer) writeCheck(b *bufWriter, c checkEntry) {
	var body string
	switch c.keyword {
	case "WIDTH":
		body = fmt.Sprintf("(WIDTH %s %s)", edgeSpecString(c.dataName, c.dataRF), c.triple)
	case "PERIOD":
		body = fmt.Sprintf("(PERIOD %s %s)", c.dataName, c.triple)
	default:
		body = fmt.Sprintf("(%s %s %s %s)", c.keyword,
			edgeSpecString(c.relatedName, c.relatedRF), edgeSpecString(c.dataName, c.dataRF), c.triple)
	}
	if c.cond != "" {
		body = fmt.Sprintf("(COND %s %s)", c.cond, body)
	}
	b.printf("      %s\n", body)
}
