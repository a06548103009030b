package lbfile

import (
	"strings"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/table"
	"github.com/opensta-go/opensta/units"
)

// pendingTimingGroup accumulates one `timing` group's attributes and table
// children while the rest of the cell is still being read; its related_pin
// names and raw cond string can only be resolved once the full port set is
// known, so finishTimingGroup (called from finishCell) does the actual
// TimingArcSet construction.
type pendingTimingGroup struct {
	toPort          *liberty.Port
	relatedPinNames []string
	rawCond         string
	lineNo          int

	attrs *liberty.TimingArcAttrs

	delayModel map[*units.Transition]*liberty.TableModel
	slewModel  map[*units.Transition]*liberty.TableModel
	checkModel map[*units.Transition]*liberty.TableModel

	intrinsic [2]*float64 // rise, fall
	driveRes  [2]*float64
}

func newPendingTimingGroup(to *liberty.Port, lineNo int) *pendingTimingGroup {
	return &pendingTimingGroup{
		toPort:     to,
		lineNo:     lineNo,
		attrs:      liberty.NewTimingArcAttrs(),
		delayModel: make(map[*units.Transition]*liberty.TableModel),
		slewModel:  make(map[*units.Transition]*liberty.TableModel),
		checkModel: make(map[*units.Transition]*liberty.TableModel),
	}
}

// readTiming reads a `timing` group nested in a pin, queuing a
// pendingTimingGroup for resolution at finishCell.
func (r *Reader) readTiming(cs *cellState, to *liberty.Port, g *Group) {
	tg := newPendingTimingGroup(to, g.LineNo)

	for _, child := range g.Children {
		switch a := child.(type) {
		case *SimpleAttr:
			r.readTimingAttr(tg, a)
		case *ComplexAttr:
			r.readTimingComplexAttr(tg, a)
		case *Group:
			r.readTimingTableGroup(cs.cell.Library(), tg, a)
		}
	}

	cs.pendingTimingGroups = append(cs.pendingTimingGroups, tg)
}

func (r *Reader) readTimingAttr(tg *pendingTimingGroup, a *SimpleAttr) {
	switch a.Name {
	case "related_pin":
		tg.relatedPinNames = append(tg.relatedPinNames, relatedPinNames(a.Value.String())...)
	case "related_bus_pins":
		tg.relatedPinNames = append(tg.relatedPinNames, relatedPinNames(a.Value.String())...)
	case "timing_sense":
		tg.attrs.Sense = a.Value.String()
	case "timing_type":
		tg.attrs.TimingType = liberty.FindTimingType(a.Value.String())
	case "sdf_cond":
		tg.attrs.SdfCond = a.Value.String()
	case "sdf_cond_start":
		tg.attrs.SdfCondStart = a.Value.String()
	case "sdf_cond_end":
		tg.attrs.SdfCondEnd = a.Value.String()
	case "cond":
		tg.rawCond = a.Value.String()
	case "condelse":
		tg.attrs.Condelse = true
	case "ocv_arc_depth":
		if f, ok := a.Value.Float(); ok {
			tg.attrs.OcvArcDepth = f
		}
	case "intrinsic_rise":
		if f, ok := a.Value.Float(); ok {
			tg.intrinsic[0] = &f
		}
	case "intrinsic_fall":
		if f, ok := a.Value.Float(); ok {
			tg.intrinsic[1] = &f
		}
	case "rise_resistance":
		if f, ok := a.Value.Float(); ok {
			tg.driveRes[0] = &f
		}
	case "fall_resistance":
		if f, ok := a.Value.Float(); ok {
			tg.driveRes[1] = &f
		}
	}
}

func (r *Reader) readTimingComplexAttr(tg *pendingTimingGroup, a *ComplexAttr) {
	if a.Name == "mode" && len(a.Values) == 2 {
		tg.attrs.ModeName = a.Values[0].String()
		tg.attrs.ModeValue = a.Values[1].String()
	}
}

// timingTableKind says whether a table sub-group belongs to the delay,
// slew, or check family; timingGroupTransitions maps each sub-group's name
// to the output transition it supplies a model for and its kind.
type timingTableKind int

const (
	timingTableDelay timingTableKind = iota
	timingTableSlew
	timingTableCheck
)

var timingGroupTransitions = map[string]struct {
	rf   *units.RiseFall
	kind timingTableKind
}{
	"cell_rise":         {units.Rise(), timingTableDelay},
	"cell_fall":         {units.Fall(), timingTableDelay},
	"propagation_rise":  {units.Rise(), timingTableDelay},
	"propagation_fall":  {units.Fall(), timingTableDelay},
	"rise_transition":   {units.Rise(), timingTableSlew},
	"fall_transition":   {units.Fall(), timingTableSlew},
	"rise_constraint":   {units.Rise(), timingTableCheck},
	"fall_constraint":   {units.Fall(), timingTableCheck},
}

func (r *Reader) readTimingTableGroup(lib *liberty.Library, tg *pendingTimingGroup, g *Group) {
	info, ok := timingGroupTransitions[g.Type]
	if !ok {
		return
	}
	edge := units.FromRiseFall(info.rf)
	switch info.kind {
	case timingTableDelay:
		m := r.readTableGroup(lib, g, table.TemplateDelay, units.FindScaleFactorType("cell"), info.rf)
		if m != nil {
			tg.delayModel[edge] = m
		}
	case timingTableSlew:
		m := r.readTableGroup(lib, g, table.TemplateDelay, units.FindScaleFactorType("transition"), info.rf)
		if m != nil {
			tg.slewModel[edge] = m
		}
	case timingTableCheck:
		var sfName string
		switch tg.attrs.TimingType {
		case liberty.TimingTypeHoldRising, liberty.TimingTypeHoldFalling:
			sfName = "hold"
		case liberty.TimingTypeRecoveryRising, liberty.TimingTypeRecoveryFalling:
			sfName = "recovery"
		case liberty.TimingTypeRemovalRising, liberty.TimingTypeRemovalFalling:
			sfName = "removal"
		default:
			sfName = "setup"
		}
		m := r.readTableGroup(lib, g, table.TemplateDelay, units.FindScaleFactorType(sfName), info.rf)
		if m != nil {
			tg.checkModel[edge] = m
		}
	}
}

// finishTimingGroup resolves the related pin(s) and deferred cond
// expression, assembles the per-transition models accumulated while
// reading the group's table children, and builds the right TimingArcSet(s)
// for the group's TimingType.
func (r *Reader) finishTimingGroup(cs *cellState, tg *pendingTimingGroup) {
	cell := cs.cell
	if tg.rawCond != "" {
		tg.attrs.Cond = r.parseFunc(tg.rawCond, cell, tg.lineNo)
	}

	if len(tg.relatedPinNames) == 0 {
		r.warnf(tg.lineNo, "timing group on %q has no related_pin", tg.toPort.Name())
		return
	}

	for _, name := range tg.relatedPinNames {
		from := cell.FindPortPtr(name)
		if from == nil {
			r.warnf(tg.lineNo, "timing group on %q: unknown related_pin %q", tg.toPort.Name(), name)
			continue
		}
		r.buildTimingArcSet(cs, from, tg)
	}
}

func (r *Reader) buildTimingArcSet(cs *cellState, from *liberty.Port, tg *pendingTimingGroup) {
	cell := cs.cell
	to := tg.toPort
	attrs := tg.attrs

	seenEdges := make(map[*units.Transition]bool, 2)
	for edge := range tg.delayModel {
		seenEdges[edge] = true
	}
	for edge := range tg.slewModel {
		seenEdges[edge] = true
	}
	for edge := range seenEdges {
		attrs.Models[edge] = combineGateModel(tg.delayModel[edge], tg.slewModel[edge])
	}
	if linear := linearModelFor(tg, units.TransitionRise()); linear != nil {
		attrs.Models[units.TransitionRise()] = linear
	}
	if linear := linearModelFor(tg, units.TransitionFall()); linear != nil {
		attrs.Models[units.TransitionFall()] = linear
	}

	switch attrs.TimingType {
	case liberty.TimingTypeThreeStateEnable:
		sense := strings.Contains(attrs.Sense, "negative")
		r.builder.MakeTristateEnableArcs(cell, from, to, !sense, sense, attrs)
	case liberty.TimingTypeThreeStateDisable:
		sense := strings.Contains(attrs.Sense, "negative")
		r.builder.MakeTristateDisableArcs(cell, from, to, !sense, sense, attrs)
	case liberty.TimingTypeRisingEdge:
		r.builder.MakeRegLatchArcs(cell, from, to, units.Rise(), attrs)
	case liberty.TimingTypeFallingEdge:
		r.builder.MakeRegLatchArcs(cell, from, to, units.Fall(), attrs)
	case liberty.TimingTypeSetupRising, liberty.TimingTypeHoldRising,
		liberty.TimingTypeRecoveryRising, liberty.TimingTypeRemovalRising:
		r.makeCheckArc(cell, from, to, units.Rise(), attrs, checkModelFor(tg, units.Rise()))
	case liberty.TimingTypeSetupFalling, liberty.TimingTypeHoldFalling,
		liberty.TimingTypeRecoveryFalling, liberty.TimingTypeRemovalFalling:
		r.makeCheckArc(cell, from, to, units.Fall(), attrs, checkModelFor(tg, units.Fall()))
	case liberty.TimingTypeSkew, liberty.TimingTypeNochange:
		r.makeCheckArc(cell, from, to, units.Rise(), attrs, checkModelFor(tg, units.Rise()))
	case liberty.TimingTypeMinPulseWidth:
		r.builder.MakeMinPulseWidthArcs(cell, from, to, nil, attrs)
	case liberty.TimingTypeMinimumPeriod:
		set := r.builder.MakeTimingArcSetRelated(cell, from, to, nil, liberty.RolePeriod(), attrs)
		edge := units.TransitionRise()
		r.builder.MakeTimingArc(set, edge, edge, checkModelFor(tg, units.Rise()))
	default:
		toRise, toFall := true, true
		switch attrs.TimingType {
		case liberty.TimingTypeCombinationalRise:
			toFall = false
		case liberty.TimingTypeCombinationalFall:
			toRise = false
		}
		r.builder.MakeCombinationalArcs(cell, from, to, toRise, toFall, liberty.RoleCombinational(), attrs)
	}
}

// makeCheckArc builds a single-transition check arc set using the role
// liberty.FindTimingRole resolves from the timing_type name, since the
// Builder exposes no dedicated check-arc convenience beyond min-pulse-width.
func (r *Reader) makeCheckArc(cell *liberty.Cell, from, to *liberty.Port, rf *units.RiseFall, attrs *liberty.TimingArcAttrs, model liberty.TimingModel) {
	role := checkRoleFor(attrs.TimingType)
	set := r.builder.MakeTimingArcSetRelated(cell, from, to, nil, role, attrs)
	edge := units.FromRiseFall(rf)
	r.builder.MakeTimingArc(set, edge, edge, model)
}

func checkRoleFor(t liberty.TimingType) *liberty.TimingRole {
	switch t {
	case liberty.TimingTypeSetupRising:
		return liberty.RoleSetupRise()
	case liberty.TimingTypeSetupFalling:
		return liberty.RoleSetupFall()
	case liberty.TimingTypeHoldRising:
		return liberty.RoleHoldRise()
	case liberty.TimingTypeHoldFalling:
		return liberty.RoleHoldFall()
	case liberty.TimingTypeRecoveryRising:
		return liberty.RoleRecoveryRise()
	case liberty.TimingTypeRecoveryFalling:
		return liberty.RoleRecoveryFall()
	case liberty.TimingTypeRemovalRising:
		return liberty.RoleRemovalRise()
	case liberty.TimingTypeRemovalFalling:
		return liberty.RoleRemovalFall()
	case liberty.TimingTypeSkew:
		return liberty.RoleSkew()
	case liberty.TimingTypeNochange:
		return liberty.RoleNochange()
	default:
		return liberty.RoleSetupRise()
	}
}

func checkModelFor(tg *pendingTimingGroup, rf *units.RiseFall) liberty.TimingModel {
	if m, ok := tg.checkModel[units.FromRiseFall(rf)]; ok {
		return liberty.NewCheckTableModel(m)
	}
	return nil
}

// combineGateModel pairs a delay table with its matching slew table into a
// single GateTableModel, the shape a combinational/tristate arc's model
// must take. Either half may be absent (a library that tabulates only
// delay, or only a wire's slew degradation curve).
func combineGateModel(delay, slew *liberty.TableModel) liberty.TimingModel {
	if delay == nil && slew == nil {
		return nil
	}
	return liberty.NewGateTableModel(delay, slew, nil, nil)
}

// linearModelFor builds a LinearModel from intrinsic_rise/fall plus
// rise/fall_resistance when present and no table-based delay model was
// read for that edge, matching the simplest arcs Liberty allows.
func linearModelFor(tg *pendingTimingGroup, edge *units.Transition) *liberty.LinearModel {
	if _, ok := tg.delayModel[edge]; ok {
		return nil
	}
	idx := 0
	if edge == units.TransitionFall() {
		idx = 1
	}
	if tg.intrinsic[idx] == nil {
		return nil
	}
	res := 0.0
	if tg.driveRes[idx] != nil {
		res = *tg.driveRes[idx]
	}
	return liberty.NewLinearModel(*tg.intrinsic[idx], res)
}
