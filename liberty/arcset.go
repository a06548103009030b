package liberty

import (
	"sort"
	"strings"

	"github.com/opensta-go/opensta/funcexpr"
	"github.com/opensta-go/opensta/units"
)

// TimingArcSet groups the TimingArcs sharing a common (from, to,
// related_out, role, attrs) context — typically one rise arc and one fall
// arc for a combinational path, or a single check arc for setup/hold.
type TimingArcSet struct {
	cell         *Cell
	cellIndex    int
	from         *Port
	to           *Port
	relatedOut   *Port
	role         *TimingRole
	timingType   TimingType
	cond         *funcexpr.Expr
	sdfCond      string
	sdfCondStart string
	sdfCondEnd   string
	modeName     string
	modeValue    string
	ocvArcDepth  float64
	condelse     bool

	arcs []*TimingArc
}

// wireArcSet is the process-wide singleton representing interconnect
// delay, with exactly two arcs (rise, fall) and no owning cell.
var wireArcSet = newWireArcSet()

func newWireArcSet() *TimingArcSet {
	set := &TimingArcSet{role: RoleWire(), cellIndex: -1}
	set.arcs = []*TimingArc{
		{set: set, index: 0, fromEdge: units.TransitionRise(), toEdge: units.TransitionRise()},
		{set: set, index: 1, fromEdge: units.TransitionFall(), toEdge: units.TransitionFall()},
	}
	return set
}

// WireArcSet returns the process-wide wire arc set singleton.
func WireArcSet() *TimingArcSet { return wireArcSet }

// NewTimingArcSet creates an arc set on cell. Use AddArcSet to register it
// (which assigns the stable cell index).
func NewTimingArcSet(from, to, relatedOut *Port, role *TimingRole) *TimingArcSet {
	return &TimingArcSet{from: from, to: to, relatedOut: relatedOut, role: role}
}

func (s *TimingArcSet) Cell() *Cell           { return s.cell }
func (s *TimingArcSet) CellIndex() int        { return s.cellIndex }
func (s *TimingArcSet) From() *Port           { return s.from }
func (s *TimingArcSet) To() *Port             { return s.to }
func (s *TimingArcSet) RelatedOut() *Port     { return s.relatedOut }
func (s *TimingArcSet) Role() *TimingRole     { return s.role }
func (s *TimingArcSet) TimingType() TimingType { return s.timingType }
func (s *TimingArcSet) SetTimingType(t TimingType) { s.timingType = t }
func (s *TimingArcSet) Cond() *funcexpr.Expr  { return s.cond }
func (s *TimingArcSet) SetCond(e *funcexpr.Expr) { s.cond = e }
func (s *TimingArcSet) SdfCond() string       { return s.sdfCond }
func (s *TimingArcSet) SetSdfCond(v string)   { s.sdfCond = v }
func (s *TimingArcSet) SdfCondStart() string  { return s.sdfCondStart }
func (s *TimingArcSet) SetSdfCondStart(v string) { s.sdfCondStart = v }
func (s *TimingArcSet) SdfCondEnd() string    { return s.sdfCondEnd }
func (s *TimingArcSet) SetSdfCondEnd(v string) { s.sdfCondEnd = v }
func (s *TimingArcSet) ModeName() string      { return s.modeName }
func (s *TimingArcSet) ModeValue() string     { return s.modeValue }
func (s *TimingArcSet) SetMode(name, value string) { s.modeName, s.modeValue = name, value }
func (s *TimingArcSet) OcvArcDepth() float64  { return s.ocvArcDepth }
func (s *TimingArcSet) SetOcvArcDepth(v float64) { s.ocvArcDepth = v }
func (s *TimingArcSet) Condelse() bool        { return s.condelse }
func (s *TimingArcSet) SetCondelse(v bool)    { s.condelse = v }
func (s *TimingArcSet) Arcs() []*TimingArc    { return s.arcs }
func (s *TimingArcSet) ArcCount() int         { return len(s.arcs) }

// AddArc appends arc to the set, assigning it the next per-set index.
func (s *TimingArcSet) AddArc(fromEdge, toEdge *units.Transition, model TimingModel) *TimingArc {
	a := &TimingArc{set: s, index: len(s.arcs), fromEdge: fromEdge, toEdge: toEdge, model: model}
	s.arcs = append(s.arcs, a)
	return a
}

// Sense derives the arc set's overall TimingSense from its arcs: unanimous
// agreement across arcs on rise-to-rise/fall-to-fall (or the opposite)
// collapses to unate; any disagreement is non_unate.
func (s *TimingArcSet) Sense() funcexpr.TimingSense {
	sawPositive, sawNegative := false, false
	for _, a := range s.arcs {
		switch a.Sense() {
		case funcexpr.SensePositiveUnate:
			sawPositive = true
		case funcexpr.SenseNegativeUnate:
			sawNegative = true
		default:
			return funcexpr.SenseNonUnate
		}
	}
	switch {
	case sawPositive && sawNegative:
		return funcexpr.SenseNonUnate
	case sawPositive:
		return funcexpr.SensePositiveUnate
	case sawNegative:
		return funcexpr.SenseNegativeUnate
	default:
		return funcexpr.SenseNone
	}
}

// ArcsFrom returns up to two arcs whose fromEdge matches rf (projected to
// a Transition via units.FromRiseFall), covering the "rise-in" or
// "fall-in" half of the arc set.
func (s *TimingArcSet) ArcsFrom(rf *units.RiseFall) []*TimingArc {
	tr := units.FromRiseFall(rf)
	var out []*TimingArc
	for _, a := range s.arcs {
		if a.fromEdge.Matches(tr) {
			out = append(out, a)
			if len(out) == 2 {
				break
			}
		}
	}
	return out
}

// ArcTo returns the first arc whose toEdge matches rf.
func (s *TimingArcSet) ArcTo(rf *units.RiseFall) *TimingArc {
	tr := units.FromRiseFall(rf)
	for _, a := range s.arcs {
		if a.toEdge.Matches(tr) {
			return a
		}
	}
	return nil
}

func portName(p *Port) string {
	if p == nil {
		return ""
	}
	return p.Name()
}

// ArcSetLess implements a stable lexicographic ordering over
// (from_port, to_port, related_out, role, attrs).
func ArcSetLess(a, b *TimingArcSet) bool {
	if portName(a.from) != portName(b.from) {
		return portName(a.from) < portName(b.from)
	}
	if portName(a.to) != portName(b.to) {
		return portName(a.to) < portName(b.to)
	}
	if portName(a.relatedOut) != portName(b.relatedOut) {
		return portName(a.relatedOut) < portName(b.relatedOut)
	}
	if a.role.Name() != b.role.Name() {
		return a.role.Name() < b.role.Name()
	}
	return a.timingType < b.timingType
}

// ArcSetEquiv answers identity of (from,to,related_out,role,attrs) plus arc
// membership.
func ArcSetEquiv(a, b *TimingArcSet) bool {
	if a.from != b.from || a.to != b.to || a.relatedOut != b.relatedOut || a.role != b.role {
		return false
	}
	if len(a.arcs) != len(b.arcs) {
		return false
	}
	for i := range a.arcs {
		if !ArcEquiv(a.arcs[i], b.arcs[i]) {
			return false
		}
	}
	return true
}

// SortArcSets sorts arc sets in place using ArcSetLess, for stable
// reporting order.
func SortArcSets(sets []*TimingArcSet) {
	sort.Slice(sets, func(i, j int) bool { return ArcSetLess(sets[i], sets[j]) })
}

// CondMatches implements the SDF convention
// cond_match(sdfCond, libCond) = sdfCond == "" OR equal(sdfCond, libCond),
// ignoring whitespace during comparison.
func CondMatches(sdfCond, libCond string) bool {
	if sdfCond == "" {
		return true
	}
	return stripSpace(sdfCond) == stripSpace(libCond)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// TimingArc is one concrete (fromEdge, toEdge, model) triple inside a
// TimingArcSet.
type TimingArc struct {
	set      *TimingArcSet
	index    int
	fromEdge *units.Transition
	toEdge   *units.Transition
	model    TimingModel
}

func (a *TimingArc) Set() *TimingArcSet         { return a.set }
func (a *TimingArc) Index() int                 { return a.index }
func (a *TimingArc) From() *Port                { return a.set.from }
func (a *TimingArc) To() *Port                  { return a.set.to }
func (a *TimingArc) FromEdge() *units.Transition { return a.fromEdge }
func (a *TimingArc) ToEdge() *units.Transition  { return a.toEdge }
func (a *TimingArc) Role() *TimingRole          { return a.set.role }
func (a *TimingArc) Model() TimingModel         { return a.model }
func (a *TimingArc) SetModel(m TimingModel)     { a.model = m }

// Sense derives the arc's unateness from its edges: rise-to-rise or
// fall-to-fall is positive unate, rise-to-fall or fall-to-rise is negative
// unate; anything involving a tristate/unknown edge is non-unate.
func (a *TimingArc) Sense() funcexpr.TimingSense {
	fromRf, toRf := a.fromEdge.AsRiseFall(), a.toEdge.AsRiseFall()
	if fromRf == nil || toRf == nil {
		return funcexpr.SenseNonUnate
	}
	if fromRf == toRf {
		return funcexpr.SensePositiveUnate
	}
	return funcexpr.SenseNegativeUnate
}

// DriveResistance and IntrinsicDelay proxy to the arc's model when it is a
// LinearModel (checks and table-based gate arcs return 0).
func (a *TimingArc) DriveResistance() float64 {
	if lm, ok := a.model.(*LinearModel); ok {
		return lm.DriveResistance()
	}
	return 0
}

func (a *TimingArc) IntrinsicDelay() float64 {
	if lm, ok := a.model.(*LinearModel); ok {
		return lm.IntrinsicDelay()
	}
	return 0
}

// GateTableModel downcasts the arc's model to *GateTableModel, or nil.
func (a *TimingArc) GateTableModel() *GateTableModel {
	if gm, ok := a.model.(*GateTableModel); ok {
		return gm
	}
	return nil
}

func (a *TimingArc) ToString() string {
	return portName(a.From()) + "->" + portName(a.To()) + " " + a.fromEdge.Name() + "/" + a.toEdge.Name()
}

// ArcEquiv is structural: same edges, role, and model pointer.
func ArcEquiv(a, b *TimingArc) bool {
	return a.fromEdge == b.fromEdge && a.toEdge == b.toEdge && a.Role() == b.Role() && a.model == b.model
}
