package lbfile

import (
	"github.com/opensta-go/opensta/liberty"
)

// readCell implements beginCell/endCell: it creates the cell, walks its
// children through the cell-scoped dispatch tables (accumulating deferred
// work on the cellState), then runs the four-step finishing pipeline:
// parseCellFuncs, makeCellSequentials, finishPortGroups, makeLeakagePowers.
func (r *Reader) readCell(lib *liberty.Library, g *Group) error {
	if len(g.Names) == 0 {
		r.warnf(g.LineNo, "cell group with no name ignored")
		return nil
	}
	cell := r.builder.MakeCell(lib, g.Names[0], r.file)
	cs := r.pushCell(cell)

	for _, child := range g.Children {
		switch s := child.(type) {
		case *Group:
			r.readCellGroup(cs, s)
		case *SimpleAttr:
			r.readCellAttr(cs, s)
		case *ComplexAttr, *Define, *Variable:
			// No cell-level complex attrs, defines, or variables carry
			// model-building meaning here.
		}
	}

	r.finishCell(cs)
	r.popCell()
	return nil
}

func (r *Reader) readCellGroup(cs *cellState, g *Group) {
	switch g.Type {
	case "pin":
		r.readPin(cs, g)
	case "bus":
		r.readBus(cs, g)
	case "bundle":
		r.readBundle(cs, g)
	case "ff", "ff_bank":
		r.readSequential(cs, g, true)
	case "latch", "latch_bank":
		r.readSequential(cs, g, false)
	case "leakage_power":
		r.readCellLeakagePower(cs, g)
	case "internal_power":
		r.readInternalPower(cs, g, nil, nil)
	case "test_cell":
		r.readTestCell(cs, g)
	default:
		r.warnf(g.LineNo, "unknown cell group %q ignored", g.Type)
	}
}

func (r *Reader) readCellAttr(cs *cellState, a *SimpleAttr) {
	c := cs.cell
	switch a.Name {
	case "area":
		if f, ok := a.Value.Float(); ok {
			c.SetArea(f)
		}
	case "dont_use":
		c.SetDontUse(simpleBool(a))
	case "is_macro_cell", "is_macro":
		c.SetIsMacro(simpleBool(a))
	case "is_pad":
		c.SetIsPad(simpleBool(a))
	case "is_memory_cell", "is_memory":
		c.SetIsMemory(simpleBool(a))
	case "always_on":
		c.SetAlwaysOn(simpleBool(a))
	case "interface_timing":
		c.SetInterfaceTiming(simpleBool(a))
	case "cell_footprint":
		c.SetFootprint(a.Value.String())
	case "user_function_class":
		c.SetUserFuncClass(a.Value.String())
	case "cell_leakage_power":
		if f, ok := a.Value.Float(); ok {
			c.SetLeakagePowerTotal(f)
		}
	}
}

func (r *Reader) readTestCell(cs *cellState, g *Group) {
	sub := r.builder.MakeCell(cs.cell.Library(), cs.cell.Name()+"$test_cell", r.file)
	subState := r.pushCell(sub)
	for _, child := range g.Children {
		if sg, ok := child.(*Group); ok {
			r.readCellGroup(subState, sg)
		}
	}
	r.finishCell(subState)
	r.popCell()
	cs.cell.SetTestCell(sub)
}

// finishCell runs the deferred parseCellFuncs -> makeCellSequentials ->
// finishPortGroups -> makeLeakagePowers pipeline once every pin, bus,
// bundle, ff/latch, internal_power and leakage_power child statement has
// been read, so every cross-reference (a function string naming a
// later-declared pin, a sequential referencing its own virtual Q/QN ports)
// resolves against a complete port set.
func (r *Reader) finishCell(cs *cellState) {
	for _, fn := range cs.pendingFuncs {
		if err := fn(); err != nil {
			r.warnf(0, "%v", err)
		}
	}
	for _, fn := range cs.pendingSequentials {
		if err := fn(); err != nil {
			r.warnf(0, "%v", err)
		}
	}
	for _, tg := range cs.pendingTimingGroups {
		r.finishTimingGroup(cs, tg)
	}
	for _, ip := range cs.pendingInternalPowers {
		r.finishInternalPower(cs, ip)
	}
	for _, lp := range cs.pendingLeakagePowers {
		r.finishLeakagePower(cs, lp)
	}
}
