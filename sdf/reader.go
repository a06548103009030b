package sdf

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/sta"
	"github.com/opensta-go/opensta/units"
)

// AnalysisType governs how a timing-check's (min:typ:max) triple collapses
// onto the graph's min/max annotation slots.
type AnalysisType int

const (
	AnalysisSingle AnalysisType = iota
	AnalysisBcWc
	AnalysisOcv
)

// FindAnalysisType looks up an AnalysisType by its spec name.
func FindAnalysisType(name string) (AnalysisType, bool) {
	switch name {
	case "single":
		return AnalysisSingle, true
	case "bc_wc":
		return AnalysisBcWc, true
	case "ocv":
		return AnalysisOcv, true
	default:
		return 0, false
	}
}

// Options configures a Reader, mirroring SdfReader's constructor parameter
// list: which graph delay slots to write, how to collapse triples, whether
// to translate SDF-divider paths to the network's own, whether to skip
// ABSOLUTE sections, and the cond_use fallback policy.
type Options struct {
	ArcMinIndex        int
	ArcMaxIndex        int
	AnalysisType       AnalysisType
	UnescapedDividers  bool
	IncrementalOnly    bool
	// CondUse is nil for the "null" policy (no fallback — an unmatched
	// conditional SDF arc is simply skipped); otherwise it names which
	// direction(s) to merge an unmatched conditional arc into.
	CondUse *units.MinMaxAll
}

// Reader annotates arc delays onto an elaborated timing graph from a
// parsed SDF file, the semantic-layer counterpart to lbfile.Reader.
type Reader struct {
	file    string
	network sta.Network
	graph   sta.Graph
	lib     *liberty.Library
	report  sta.Report
	opts    Options

	sdfDivider byte

	timescale float64 // seconds multiplier; defaults to 1ns per SDF convention

	curInstance sta.Instance
	curCellName string
	curInstErr  bool // true if this CELL's INSTANCE failed to resolve
}

// NewReader creates a Reader. lib resolves CELLTYPE names and their timing
// arc sets; network and graph are the elaborated-design collaborators
// being annotated; report receives line-accurate diagnostics.
func NewReader(file string, network sta.Network, graph sta.Graph, lib *liberty.Library, report sta.Report, opts Options) *Reader {
	return &Reader{
		file:       file,
		network:    network,
		graph:      graph,
		lib:        lib,
		report:     report,
		opts:       opts,
		sdfDivider: '/',
		timescale:  1e-9,
	}
}

// ReadFile opens, tokenizes, parses and annotates path.
func ReadFile(path string, network sta.Network, graph sta.Graph, lib *liberty.Library, report sta.Report, opts Options) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sdf: opening %s: %w", path, err)
	}
	defer f.Close()

	toks, err := Tokenize(f)
	if err != nil {
		return fmt.Errorf("sdf: tokenizing %s: %w", path, err)
	}
	groups, err := ParseFile(path, toks)
	if err != nil {
		return err
	}
	r := NewReader(path, network, graph, lib, report, opts)
	return r.Read(groups)
}

// Read drives the reader over an already-parsed group list, annotating
// every (CELL ...) section's delays and timing checks onto the graph.
func (r *Reader) Read(groups []*Group) error {
	for _, g := range groups {
		if g.Keyword != "DELAYFILE" {
			continue
		}
		return r.delayFile(g)
	}
	return fmt.Errorf("sdf: %s: no DELAYFILE group found", r.file)
}

func (r *Reader) delayFile(g *Group) error {
	for _, a := range g.Args {
		if !a.IsGroup() {
			continue
		}
		child := a.Nested
		switch child.Keyword {
		case "TIMESCALE":
			if err := r.setTimescale(child); err != nil {
				return err
			}
		case "DIVIDER":
			r.setDivider(child)
		case "CELL":
			r.cellGroup(child)
		default:
			// SDFVERSION, DESIGN, DATE, VENDOR, PROGRAM, VERSION,
			// VOLTAGE, PROCESS, TEMPERATURE: header metadata, not
			// consumed by annotation.
		}
	}
	return nil
}

// setTimescale implements the TIMESCALE rule: mult in {1,10,100},
// unit in {us,ns,ps}; anything else errors and aborts the whole read.
func (r *Reader) setTimescale(g *Group) error {
	args := g.textArgs()
	var multStr, unit string
	switch len(args) {
	case 1:
		multStr, unit = splitTimescaleToken(args[0])
	case 2:
		multStr, unit = args[0], args[1]
	default:
		return r.timescaleErr(g.LineNo, strings.Join(args, " "))
	}
	mult, err := strconv.ParseFloat(multStr, 64)
	if err != nil || (mult != 1 && mult != 10 && mult != 100) {
		return r.timescaleErr(g.LineNo, strings.Join(args, " "))
	}
	var unitScale float64
	switch strings.ToLower(unit) {
	case "us":
		unitScale = 1e-6
	case "ns":
		unitScale = 1e-9
	case "ps":
		unitScale = 1e-12
	default:
		return r.timescaleErr(g.LineNo, strings.Join(args, " "))
	}
	r.timescale = mult * unitScale
	return nil
}

func (r *Reader) timescaleErr(line int, got string) error {
	return r.report.Error("%s:%d: unsupported TIMESCALE %q", r.file, line, got)
}

func splitTimescaleToken(s string) (mult, unit string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func (r *Reader) setDivider(g *Group) {
	args := g.textArgs()
	if len(args) == 0 || len(args[0]) == 0 {
		return
	}
	r.sdfDivider = args[0][0]
}

// cellGroup implements one (CELL (CELLTYPE ...) (INSTANCE ...) (DELAY
// ...) (TIMINGCHECK ...)) section.
func (r *Reader) cellGroup(g *Group) {
	r.curInstance = nil
	r.curCellName = ""
	r.curInstErr = false
	for _, a := range g.Args {
		if !a.IsGroup() {
			continue
		}
		child := a.Nested
		switch child.Keyword {
		case "CELLTYPE":
			if args := child.textArgs(); len(args) > 0 {
				r.curCellName = args[0]
			}
		case "INSTANCE":
			r.setInstance(child)
		case "DELAY":
			if !r.curInstErr {
				r.delayGroup(child)
			}
		case "TIMINGCHECK":
			if !r.curInstErr {
				r.timingCheckGroup(child)
			}
		}
	}
	if !r.curInstErr && r.curInstance != nil && r.curCellName != "" {
		if got := r.network.CellName(r.curInstance); got != r.curCellName {
			r.report.Warn("sdf-celltype", "%s:%d: CELLTYPE %q does not match instance %s's cell %q",
				r.file, g.LineNo, r.curCellName, r.curInstance.Name(), got)
		}
		if r.lib != nil && r.lib.FindCell(r.curCellName) == nil {
			r.report.Warn("sdf-celltype", "%s:%d: CELLTYPE %q not found in library", r.file, g.LineNo, r.curCellName)
		}
	}
	r.cellFinish()
}

func (r *Reader) setInstance(g *Group) {
	args := g.textArgs()
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if path == "*" {
		r.report.Error("%s:%d: INSTANCE wildcards not supported", r.file, g.LineNo)
		r.curInstErr = true
		return
	}
	if r.opts.UnescapedDividers {
		path = unescape(path, r.sdfDivider, r.network.PathDivider(), r.network.PathEscape())
	}
	inst := r.network.FindInstance(path)
	if inst == nil {
		r.report.Warn("sdf-instance", "%s:%d: instance %q not found", r.file, g.LineNo, path)
		r.curInstErr = true
		return
	}
	r.curInstance = inst
}

func (r *Reader) cellFinish() {
	r.curInstance = nil
	r.curCellName = ""
	r.curInstErr = false
}

// pinPath joins the current instance's path and a bare pin name with the
// network's own divider, the way the reader resolves SDF's flat
// instance-relative port names against the network's hierarchical names.
func (r *Reader) pinPath(portName string) string {
	if r.curInstance == nil {
		return portName
	}
	instPath := r.network.PathName(r.curInstance)
	if instPath == "" {
		return portName
	}
	return instPath + string(r.network.PathDivider()) + portName
}

func (r *Reader) findPin(portName string) sta.Pin {
	return r.network.FindPin(r.pinPath(portName))
}
