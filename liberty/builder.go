package liberty

import (
	"github.com/opensta-go/opensta/funcexpr"
	"github.com/opensta-go/opensta/units"
)

// Builder mediates construction of every model object a Liberty reader
// produces, so a vendor-specific reader can subclass it (in Go: wrap it
// and override the make* methods it cares about) to attach extra fields
// to cells, ports, or arc sets without forking the reader's dispatch
// tables.
type Builder struct{}

// NewBuilder creates the default model builder.
func NewBuilder() *Builder { return &Builder{} }

// MakeCell constructs an empty cell and registers it on library.
func (b *Builder) MakeCell(library *Library, name, filename string) *Cell {
	c := NewCell(library, name)
	library.AddCell(c)
	return c
}

// MakePort constructs a scalar port and registers it on cell.
func (b *Builder) MakePort(cell *Cell, name string) *Port {
	p := NewPort(cell, name)
	cell.AddPort(p)
	return p
}

// MakeBusPort constructs a bus port (with member bits from..to) and
// registers it on cell.
func (b *Builder) MakeBusPort(cell *Cell, busName string, from, to int, dcl *BusDcl) *Port {
	p := NewBusPort(cell, busName, from, to, dcl)
	cell.AddPort(p)
	return p
}

// MakeBundlePort constructs a bundle port referencing existing members.
func (b *Builder) MakeBundlePort(cell *Cell, name string, members []*Port) *Port {
	p := NewBundlePort(cell, name, members)
	cell.AddPort(p)
	return p
}

// TimingArcAttrs carries every attribute a `timing` group can accumulate
// before the reader knows which TimingRole/TimingType combination selects
// the right arc-building path.
type TimingArcAttrs struct {
	Role         *TimingRole
	TimingType   TimingType
	Sense        string // "positive_unate", "negative_unate", "non_unate", ""
	Cond         *funcexpr.Expr
	SdfCond      string
	SdfCondStart string
	SdfCondEnd   string
	ModeName     string
	ModeValue    string
	OcvArcDepth  float64
	Condelse     bool
	Models       map[*units.Transition]TimingModel
}

// NewTimingArcAttrs creates an empty attrs accumulator for a timing group.
func NewTimingArcAttrs() *TimingArcAttrs {
	return &TimingArcAttrs{Models: make(map[*units.Transition]TimingModel)}
}

func (b *Builder) applyAttrs(set *TimingArcSet, attrs *TimingArcAttrs) {
	if attrs == nil {
		return
	}
	set.SetTimingType(attrs.TimingType)
	set.SetCond(attrs.Cond)
	set.SetSdfCond(attrs.SdfCond)
	set.SetSdfCondStart(attrs.SdfCondStart)
	set.SetSdfCondEnd(attrs.SdfCondEnd)
	set.SetMode(attrs.ModeName, attrs.ModeValue)
	set.SetOcvArcDepth(attrs.OcvArcDepth)
	set.SetCondelse(attrs.Condelse)
}

// MakeTimingArcSet creates and registers a plain arc set (no related-out
// port) on cell under role, applying attrs.
func (b *Builder) MakeTimingArcSet(cell *Cell, from, to *Port, role *TimingRole, attrs *TimingArcAttrs) *TimingArcSet {
	set := NewTimingArcSet(from, to, nil, role)
	b.applyAttrs(set, attrs)
	cell.AddArcSet(set)
	return set
}

// MakeTimingArcSetRelated creates and registers an arc set with a
// related_out port (used by three-state and differential-output arcs).
func (b *Builder) MakeTimingArcSetRelated(cell *Cell, from, to, relatedOut *Port, role *TimingRole, attrs *TimingArcAttrs) *TimingArcSet {
	set := NewTimingArcSet(from, to, relatedOut, role)
	b.applyAttrs(set, attrs)
	cell.AddArcSet(set)
	return set
}

// MakeTimingArc adds one concrete arc to set, bound to model.
func (b *Builder) MakeTimingArc(set *TimingArcSet, fromEdge, toEdge *units.Transition, model TimingModel) *TimingArc {
	return set.AddArc(fromEdge, toEdge, model)
}

// modelFor looks up the model attrs recorded for a transition, defaulting
// to nil (an arc with no model is legal during staged construction before
// the table/intrinsic statements are all read).
func modelFor(attrs *TimingArcAttrs, t *units.Transition) TimingModel {
	if attrs == nil {
		return nil
	}
	return attrs.Models[t]
}

// MakeCombinationalArcs builds the combinational (or three-state) arc set
// for a from->to path: toRise/toFall select which output edges get arcs,
// and attrs.Sense selects the input edges: "positive_unate" builds only
// the same-edge arcs, "negative_unate" only the opposite-edge arcs, and
// any other sense (or nil attrs) builds both. The port's function is not
// consulted.
func (b *Builder) MakeCombinationalArcs(cell *Cell, from, to *Port, toRise, toFall bool, role *TimingRole, attrs *TimingArcAttrs) *TimingArcSet {
	set := b.MakeTimingArcSet(cell, from, to, role, attrs)
	sense := ""
	if attrs != nil {
		sense = attrs.Sense
	}
	sameEdge, oppositeEdge := sense != "negative_unate", sense != "positive_unate"
	if toRise {
		if sameEdge {
			b.MakeTimingArc(set, units.TransitionRise(), units.TransitionRise(), modelFor(attrs, units.TransitionRise()))
		}
		if oppositeEdge {
			b.MakeTimingArc(set, units.TransitionFall(), units.TransitionRise(), modelFor(attrs, units.TransitionRise()))
		}
	}
	if toFall {
		if oppositeEdge {
			b.MakeTimingArc(set, units.TransitionRise(), units.TransitionFall(), modelFor(attrs, units.TransitionFall()))
		}
		if sameEdge {
			b.MakeTimingArc(set, units.TransitionFall(), units.TransitionFall(), modelFor(attrs, units.TransitionFall()))
		}
	}
	return set
}

// MakeFromTransitionArcs builds an arc set whose arcs all share a single
// fromEdge (used by clock-tree-path and similar single-input-edge roles).
func (b *Builder) MakeFromTransitionArcs(cell *Cell, from, to, relatedOut *Port, fromRf *units.RiseFall, role *TimingRole, attrs *TimingArcAttrs) *TimingArcSet {
	set := b.MakeTimingArcSetRelated(cell, from, to, relatedOut, role, attrs)
	fromEdge := units.FromRiseFall(fromRf)
	b.MakeTimingArc(set, fromEdge, units.TransitionRise(), modelFor(attrs, units.TransitionRise()))
	b.MakeTimingArc(set, fromEdge, units.TransitionFall(), modelFor(attrs, units.TransitionFall()))
	return set
}

// MakeLatchDtoQArcs builds a latch's D-to-Q transparent-window arc set.
func (b *Builder) MakeLatchDtoQArcs(cell *Cell, from, to *Port, attrs *TimingArcAttrs) *TimingArcSet {
	return b.MakeCombinationalArcs(cell, from, to, true, true, RoleLatchDtoQ(), attrs)
}

// MakeRegLatchArcs builds a register's clock-edge-to-Q arc set: one arc
// from the clock's active edge to each output edge.
func (b *Builder) MakeRegLatchArcs(cell *Cell, from, to *Port, fromRf *units.RiseFall, attrs *TimingArcAttrs) *TimingArcSet {
	return b.MakeFromTransitionArcs(cell, from, to, nil, fromRf, RoleRegClkToQ(), attrs)
}

// MakePresetClrArcs builds a preset/clear arc set, whose single output
// edge is given by toRf.
func (b *Builder) MakePresetClrArcs(cell *Cell, from, to *Port, toRf *units.RiseFall, attrs *TimingArcAttrs) *TimingArcSet {
	set := b.MakeTimingArcSet(cell, from, to, RolePresetClear(), attrs)
	toEdge := units.FromRiseFall(toRf)
	b.MakeTimingArc(set, units.TransitionRise(), toEdge, modelFor(attrs, toEdge))
	b.MakeTimingArc(set, units.TransitionFall(), toEdge, modelFor(attrs, toEdge))
	return set
}

// MakeTristateEnableArcs and MakeTristateDisableArcs build the arc sets
// governing when a tristate output's driver turns on/off.
func (b *Builder) MakeTristateEnableArcs(cell *Cell, from, to *Port, toRise, toFall bool, attrs *TimingArcAttrs) *TimingArcSet {
	return b.MakeCombinationalArcs(cell, from, to, toRise, toFall, RoleTristateEnable(), attrs)
}

func (b *Builder) MakeTristateDisableArcs(cell *Cell, from, to *Port, toRise, toFall bool, attrs *TimingArcAttrs) *TimingArcSet {
	return b.MakeCombinationalArcs(cell, from, to, toRise, toFall, RoleTristateDisable(), attrs)
}

// MakeClockTreePathArcs builds the min or max clock-tree-path arc set used
// when a cell's timing group marks itself as part of the ideal clock
// network rather than ordinary combinational logic.
func (b *Builder) MakeClockTreePathArcs(cell *Cell, to *Port, mm *units.MinMax, attrs *TimingArcAttrs) *TimingArcSet {
	role := RoleClockTreePathMax()
	if mm == units.Min() {
		role = RoleClockTreePathMin()
	}
	return b.MakeTimingArcSet(cell, nil, to, role, attrs)
}

// RoleClockTreePathMin and RoleClockTreePathMax expose the two roles
// MakeClockTreePathArcs selects between.
func RoleClockTreePathMin() *TimingRole { return roleClockTreePathMin }
func RoleClockTreePathMax() *TimingRole { return roleClockTreePathMax }

// MakeMinPulseWidthArcs builds a single-pin minimum-pulse-width check arc
// set on to_port (from_port, related_out are accepted for dispatch-table
// symmetry with the other make* methods but min_pulse_width checks are
// single-pin).
func (b *Builder) MakeMinPulseWidthArcs(cell *Cell, from, to, relatedOut *Port, attrs *TimingArcAttrs) *TimingArcSet {
	set := b.MakeTimingArcSetRelated(cell, from, to, relatedOut, RoleMinPulseWidth(), attrs)
	b.MakeTimingArc(set, units.TransitionRise(), units.TransitionRise(), modelFor(attrs, units.TransitionRise()))
	b.MakeTimingArc(set, units.TransitionFall(), units.TransitionFall(), modelFor(attrs, units.TransitionFall()))
	return set
}

// MakeInternalPower constructs and registers an internal-power arc on
// cell.
func (b *Builder) MakeInternalPower(cell *Cell, port, relatedPort *Port, when *funcexpr.Expr) *InternalPower {
	p := NewInternalPower(port, relatedPort, when)
	cell.AddInternalPower(p)
	return p
}

// MakeLeakagePower constructs and registers a leakage-power entry on cell.
func (b *Builder) MakeLeakagePower(cell *Cell, lp *LeakagePower) *LeakagePower {
	cell.AddLeakagePower(lp)
	return lp
}
