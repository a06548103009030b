package lbfile

import (
	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/table"
	"github.com/opensta-go/opensta/units"
)

// pendingInternalPower accumulates one `internal_power` group. Its rise/
// fall tables don't cross-reference other ports so they're built eagerly;
// only the related_pin name and `when` condition are deferred to
// finishCell, once the cell's full port set is known.
type pendingInternalPower struct {
	port            *liberty.Port
	relatedPinNames []string
	rawWhen         string
	relatedPgPin    string
	lineNo          int

	riseModel *liberty.TableModel
	fallModel *liberty.TableModel
}

// pendingLeakagePower accumulates one `leakage_power` group.
type pendingLeakagePower struct {
	rawWhen      string
	relatedPgPin string
	value        float64
	lineNo       int
}

// readInternalPower reads an `internal_power` group nested either directly
// under a cell (port nil) or under a pin (port set to the owning pin).
func (r *Reader) readInternalPower(cs *cellState, g *Group, port, relatedPort *liberty.Port) {
	ip := &pendingInternalPower{port: port, lineNo: g.LineNo}
	if relatedPort != nil {
		ip.relatedPinNames = append(ip.relatedPinNames, relatedPort.Name())
	}

	for _, child := range g.Children {
		switch a := child.(type) {
		case *SimpleAttr:
			switch a.Name {
			case "related_pin":
				ip.relatedPinNames = append(ip.relatedPinNames, relatedPinNames(a.Value.String())...)
			case "when":
				ip.rawWhen = a.Value.String()
			case "related_power_pin", "related_ground_pin":
				ip.relatedPgPin = a.Value.String()
			}
		case *Group:
			switch a.Type {
			case "rise_power":
				ip.riseModel = r.readTableGroup(cs.cell.Library(), a, table.TemplatePower, units.FindScaleFactorType("internal_power"), units.Rise())
			case "fall_power":
				ip.fallModel = r.readTableGroup(cs.cell.Library(), a, table.TemplatePower, units.FindScaleFactorType("internal_power"), units.Fall())
			}
		}
	}

	cs.pendingInternalPowers = append(cs.pendingInternalPowers, ip)
}

func (r *Reader) finishInternalPower(cs *cellState, ip *pendingInternalPower) {
	cell := cs.cell
	var relatedPort *liberty.Port
	if len(ip.relatedPinNames) > 0 {
		relatedPort = cell.FindPortPtr(ip.relatedPinNames[0])
	}

	whenExpr := r.parseFunc(ip.rawWhen, cell, ip.lineNo)
	p := r.builder.MakeInternalPower(cell, ip.port, relatedPort, whenExpr)
	if ip.relatedPgPin != "" {
		p.SetRelatedPgPin(ip.relatedPgPin)
	}
	if ip.riseModel != nil {
		p.SetTable(units.Rise(), ip.riseModel)
	}
	if ip.fallModel != nil {
		p.SetTable(units.Fall(), ip.fallModel)
	}
}

// readCellLeakagePower reads a cell-level `leakage_power` group, deferring
// its `when` condition the same way internal_power does.
func (r *Reader) readCellLeakagePower(cs *cellState, g *Group) {
	lp := &pendingLeakagePower{lineNo: g.LineNo}
	for _, child := range g.Children {
		a, ok := child.(*SimpleAttr)
		if !ok {
			continue
		}
		switch a.Name {
		case "when":
			lp.rawWhen = a.Value.String()
		case "related_pg_pin":
			lp.relatedPgPin = a.Value.String()
		case "value":
			if f, ok := a.Value.Float(); ok {
				lp.value = f
			}
		}
	}
	cs.pendingLeakagePowers = append(cs.pendingLeakagePowers, lp)
}

func (r *Reader) finishLeakagePower(cs *cellState, lp *pendingLeakagePower) {
	whenExpr := r.parseFunc(lp.rawWhen, cs.cell, lp.lineNo)
	entry := liberty.NewLeakagePower(whenExpr, lp.relatedPgPin, lp.value)
	r.builder.MakeLeakagePower(cs.cell, entry)
}
