package sdf

import (
	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/units"
)

// timingCheckGroup implements one (TIMINGCHECK (SETUP ...) (HOLD ...) ...)
// section. NOCHANGE and anything else unrecognized is reported and skipped
// rather than aborting the CELL (an INSTANCE wildcard, by contrast, is a
// hard error).
func (r *Reader) timingCheckGroup(g *Group) {
	for _, child := range g.groupArgs() {
		switch child.Keyword {
		case "SETUP":
			r.edgeCheck(child, liberty.RoleSetupRise().GenericRole())
		case "HOLD":
			r.edgeCheck(child, liberty.RoleHoldRise().GenericRole())
		case "RECOVERY":
			r.edgeCheck(child, liberty.RoleRecoveryRise().GenericRole())
		case "REMOVAL":
			r.edgeCheck(child, liberty.RoleRemovalRise().GenericRole())
		case "SKEW":
			r.edgeCheck(child, liberty.RoleSkew())
		case "SETUPHOLD":
			r.pairedCheck(child, liberty.RoleSetupRise().GenericRole(), liberty.RoleHoldRise().GenericRole())
		case "RECREM":
			r.pairedCheck(child, liberty.RoleRecoveryRise().GenericRole(), liberty.RoleRemovalRise().GenericRole())
		case "WIDTH":
			r.widthCheck(child)
		case "PERIOD":
			r.periodCheck(child)
		case "NOCHANGE":
			r.report.Warn("sdf-nochange", "%s:%d: NOCHANGE timing checks are not supported", r.file, child.LineNo)
		default:
			r.report.Warn("sdf-timingcheck", "%s:%d: unsupported timing check %s", r.file, child.LineNo, child.Keyword)
		}
	}
}

// edgeCheck implements the single-value two-pin checks: SETUP, HOLD,
// RECOVERY, REMOVAL, SKEW.
func (r *Reader) edgeCheck(g *Group, role *liberty.TimingRole) {
	cond, data, related, triples, ok := parseCheckArgs(g)
	if !ok || len(triples) == 0 {
		r.report.Warn("sdf-timingcheck", "%s:%d: malformed %s", r.file, g.LineNo, g.Keyword)
		return
	}
	r.writeCheckEdge(g, cond, data, related, role, triples[:1])
}

// pairedCheck implements the two-value two-pin checks: SETUPHOLD, RECREM.
func (r *Reader) pairedCheck(g *Group, role1, role2 *liberty.TimingRole) {
	cond, data, related, triples, ok := parseCheckArgs(g)
	if !ok || len(triples) < 2 {
		r.report.Warn("sdf-timingcheck", "%s:%d: malformed %s", r.file, g.LineNo, g.Keyword)
		return
	}
	r.writeCheckEdge(g, cond, data, related, role1, triples[0:1])
	r.writeCheckEdge(g, cond, data, related, role2, triples[1:2])
}

// parseCheckArgs splits a TIMINGCHECK entry's args into an optional leading
// (COND expr), its data/related port specs, and trailing delay triples.
func parseCheckArgs(g *Group) (cond string, data, related edgeSpec, triples []Triple, ok bool) {
	args := g.Args
	i := 0
	if i < len(args) && args[i].IsGroup() && args[i].Nested.Keyword == "COND" {
		cond = condText(args[i].Nested)
		i++
	}
	var specs []edgeSpec
	for ; i < len(args); i++ {
		a := args[i]
		if len(specs) < 2 {
			spec, good := parseEdgeSpec(a)
			if !good {
				return "", edgeSpec{}, edgeSpec{}, nil, false
			}
			specs = append(specs, spec)
			continue
		}
		if a.IsGroup() && isTripleGroup(a.Nested) {
			if t, err := parseTriple(a.Nested.Keyword); err == nil {
				triples = append(triples, t)
			}
		}
	}
	if len(specs) != 2 {
		return "", edgeSpec{}, edgeSpec{}, nil, false
	}
	return cond, specs[0], specs[1], triples, true
}

func condText(g *Group) string {
	var text string
	for _, a := range g.Args {
		if a.IsGroup() {
			text += "(" + a.Nested.Keyword + ")"
			continue
		}
		text += a.Text
	}
	return text
}

// writeCheckEdge locates the check edge into data's pin whose arc set's
// generic role, sdf_cond, and (fromEdge, toEdge) agree with related/data's
// edge specs, and writes the one triple onto each matching arc.
func (r *Reader) writeCheckEdge(g *Group, cond string, data, related edgeSpec, role *liberty.TimingRole, triples []Triple) {
	dataPin := r.findPin(data.name)
	relatedPin := r.findPin(related.name)
	if dataPin == nil || relatedPin == nil {
		r.report.Warn("sdf-timingcheck", "%s:%d: %s: pin not found", r.file, g.LineNo, g.Keyword)
		return
	}
	toVertex := r.graph.PinLoadVertex(dataPin)
	if toVertex == nil {
		return
	}
	scaled := scaleTriples(triples, r.timescale)
	for _, edge := range r.graph.InEdges(toVertex) {
		set := edge.ArcSet()
		if set == nil || set.Role().GenericRole() != role {
			continue
		}
		if set.From() == nil || set.From().Name() != related.name {
			continue
		}
		if edge.From() == nil || edge.From().Pin() == nil || edge.From().Pin().Name() != relatedPin.Name() {
			continue
		}
		if !liberty.CondMatches(cond, set.SdfCond()) {
			continue
		}
		for _, arc := range set.Arcs() {
			if related.rf != nil {
				if rf := arc.FromEdge().AsRiseFall(); rf == nil || rf != related.rf {
					continue
				}
			}
			if data.rf != nil {
				if rf := arc.ToEdge().AsRiseFall(); rf == nil || rf != data.rf {
					continue
				}
			}
			if len(scaled) == 0 {
				continue
			}
			r.writeTriple(edge, arc.Index(), scaled[0], false)
		}
	}
}

// widthCheck implements WIDTH, a single-pin pulse-width check resolved
// through the graph's dedicated min-pulse-width lookup rather than an
// ordinary in-edge search.
func (r *Reader) widthCheck(g *Group) {
	if len(g.Args) == 0 {
		r.report.Warn("sdf-timingcheck", "%s:%d: malformed WIDTH", r.file, g.LineNo)
		return
	}
	spec, ok := parseEdgeSpec(g.Args[0])
	if !ok {
		r.report.Warn("sdf-timingcheck", "%s:%d: malformed WIDTH", r.file, g.LineNo)
		return
	}
	triples := tripleArgs(g)
	if len(triples) == 0 {
		return
	}
	pin := r.findPin(spec.name)
	if pin == nil {
		r.report.Warn("sdf-timingcheck", "%s:%d: port %q not found", r.file, g.LineNo, spec.name)
		return
	}
	vertex := r.graph.PinLoadVertex(pin)
	if vertex == nil {
		return
	}
	rf := spec.rf
	if rf == nil {
		rf = units.Rise()
	}
	edge, arcIndex, ok := r.graph.MinPulseWidthArc(vertex, rf)
	if !ok {
		return
	}
	scaled := scaleTriples(triples, r.timescale)
	r.writeTriple(edge, arcIndex, scaled[0], false)
}

// periodCheck implements PERIOD, a single-pin minimum-clock-period check
// annotated directly onto the pin rather than a graph edge.
func (r *Reader) periodCheck(g *Group) {
	args := g.textArgs()
	if len(args) == 0 {
		r.report.Warn("sdf-timingcheck", "%s:%d: malformed PERIOD", r.file, g.LineNo)
		return
	}
	triples := tripleArgs(g)
	if len(triples) == 0 {
		return
	}
	pin := r.findPin(args[0])
	if pin == nil {
		r.report.Warn("sdf-timingcheck", "%s:%d: port %q not found", r.file, g.LineNo, args[0])
		return
	}
	scaled := scaleTriples(triples, r.timescale)
	minVal, maxVal, ok := r.collapseTriple(scaled[0])
	if !ok {
		return
	}
	r.graph.SetPeriodCheckAnnotation(pin, r.opts.ArcMinIndex, minVal)
	r.graph.SetPeriodCheckAnnotation(pin, r.opts.ArcMaxIndex, maxVal)
}
