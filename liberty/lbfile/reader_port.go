package lbfile

import (
	"strings"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/units"
)

func (r *Reader) readPin(cs *cellState, g *Group) {
	for _, name := range g.Names {
		port := r.builder.MakePort(cs.cell, name)
		r.readPortBody(cs, port, g)
	}
}

func (r *Reader) readBus(cs *cellState, g *Group) {
	if len(g.Names) == 0 {
		return
	}
	name := g.Names[0]
	from, to := 0, 0
	var dcl *liberty.BusDcl
	for _, child := range g.Children {
		a, ok := child.(*SimpleAttr)
		if !ok || a.Name != "bus_type" {
			continue
		}
		dcl = cs.cell.Library().FindBusDcl(a.Value.String())
		if dcl != nil {
			from, to = dcl.From(), dcl.To()
		}
	}
	port := r.builder.MakeBusPort(cs.cell, name, from, to, dcl)
	r.readPortBody(cs, port, g)
	for i := 0; i < port.MemberCount(); i++ {
		r.applyPortAttrsFrom(cs, port.Member(i), g)
	}
}

func (r *Reader) readBundle(cs *cellState, g *Group) {
	if len(g.Names) == 0 {
		return
	}
	var members []*liberty.Port
	for _, child := range g.Children {
		a, ok := child.(*ComplexAttr)
		if !ok || a.Name != "members" {
			continue
		}
		for _, v := range a.Values {
			if m := cs.cell.FindPortPtr(v.String()); m != nil {
				members = append(members, m)
			}
		}
	}
	port := r.builder.MakeBundlePort(cs.cell, g.Names[0], members)
	r.readPortBody(cs, port, g)
}

// readPortBody applies every simple/complex attribute on g to port and
// recurses into timing/internal_power sub-groups, which attach to port as
// the "to" pin of their arc or power table.
func (r *Reader) readPortBody(cs *cellState, port *liberty.Port, g *Group) {
	r.applyPortAttrsFrom(cs, port, g)
	for _, child := range g.Children {
		sub, ok := child.(*Group)
		if !ok {
			continue
		}
		switch sub.Type {
		case "timing":
			r.readTiming(cs, port, sub)
		case "internal_power":
			r.readInternalPower(cs, sub, port, nil)
		}
	}
}

func (r *Reader) applyPortAttrsFrom(cs *cellState, port *liberty.Port, g *Group) {
	for _, child := range g.Children {
		switch a := child.(type) {
		case *SimpleAttr:
			r.applyPortAttr(cs, port, a)
		case *ComplexAttr:
			r.applyPortComplexAttr(port, a)
		}
	}
}

func (r *Reader) applyPortAttr(cs *cellState, port *liberty.Port, a *SimpleAttr) {
	switch a.Name {
	case "direction", "pin_direction":
		port.SetDirection(liberty.FindPortDirection(a.Value.String()))
	case "function":
		raw := a.Value.String()
		line := a.LineNo
		cs.pendingFuncs = append(cs.pendingFuncs, func() error {
			port.SetFunction(r.parseFunc(raw, cs.cell, line))
			return nil
		})
	case "three_state":
		raw := a.Value.String()
		line := a.LineNo
		cs.pendingFuncs = append(cs.pendingFuncs, func() error {
			port.SetTristateEnable(r.parseFunc(raw, cs.cell, line))
			return nil
		})
	case "clock":
		port.SetIsClock(simpleBool(a))
	case "is_pad":
		port.SetIsPad(simpleBool(a))
	case "capacitance":
		if f, ok := a.Value.Float(); ok {
			setCapAll(port, f)
		}
	case "rise_capacitance":
		if f, ok := a.Value.Float(); ok {
			setCapRf(port, units.Rise(), f)
		}
	case "fall_capacitance":
		if f, ok := a.Value.Float(); ok {
			setCapRf(port, units.Fall(), f)
		}
	case "max_transition":
		if f, ok := a.Value.Float(); ok {
			port.SetSlewLimit(units.Max(), f)
		}
	case "min_transition":
		if f, ok := a.Value.Float(); ok {
			port.SetSlewLimit(units.Min(), f)
		}
	case "max_capacitance":
		if f, ok := a.Value.Float(); ok {
			port.SetCapacitanceLimit(units.Max(), f)
		}
	case "min_capacitance":
		if f, ok := a.Value.Float(); ok {
			port.SetCapacitanceLimit(units.Min(), f)
		}
	case "max_fanout":
		if f, ok := a.Value.Float(); ok {
			port.SetFanoutLimit(units.Max(), f)
		}
	case "min_fanout":
		if f, ok := a.Value.Float(); ok {
			port.SetFanoutLimit(units.Min(), f)
		}
	case "fanout_load":
		if f, ok := a.Value.Float(); ok {
			port.SetFanoutLoad(f)
		}
	case "min_period":
		if f, ok := a.Value.Float(); ok {
			port.SetMinPeriod(f)
		}
	case "min_pulse_width_high":
		if f, ok := a.Value.Float(); ok {
			port.SetMinPulseWidth(units.Rise(), f)
		}
	case "min_pulse_width_low":
		if f, ok := a.Value.Float(); ok {
			port.SetMinPulseWidth(units.Fall(), f)
		}
	}
}

func (r *Reader) applyPortComplexAttr(port *liberty.Port, a *ComplexAttr) {
	if len(a.Values) != 2 {
		return
	}
	minV, okMin := a.Values[0].Float()
	maxV, okMax := a.Values[1].Float()
	if !okMin || !okMax {
		return
	}
	switch a.Name {
	case "rise_capacitance_range":
		port.SetCapacitance(units.Rise(), units.Min(), minV)
		port.SetCapacitance(units.Rise(), units.Max(), maxV)
	case "fall_capacitance_range":
		port.SetCapacitance(units.Fall(), units.Min(), minV)
		port.SetCapacitance(units.Fall(), units.Max(), maxV)
	}
}

func setCapAll(port *liberty.Port, v float64) {
	for _, rf := range units.RiseFallRange() {
		for _, mm := range units.MinMaxRange() {
			port.SetCapacitance(rf, mm, v)
		}
	}
}

func setCapRf(port *liberty.Port, rf *units.RiseFall, v float64) {
	for _, mm := range units.MinMaxRange() {
		port.SetCapacitance(rf, mm, v)
	}
}

// relatedPinNames splits a Liberty related_pin value, which may name a
// single pin or a space-separated list.
func relatedPinNames(s string) []string {
	return strings.Fields(s)
}
