package lbfile

import (
	"strconv"

	"github.com/opensta-go/opensta/liberty"
)

// readSequential handles ff/ff_bank (isRegister=true) and latch/latch_bank
// (isRegister=false) groups. The Q/QN output ports the group names are
// created eagerly, in document order, so that a pin's function string
// declared later in the same cell (or even earlier, since parseCellFuncs
// itself is deferred to finishCell) can resolve them. Only the sequential's
// own clocked_on/next_state/enable/data_in/clear/preset expressions are
// deferred, since those may reference sibling pins not yet read.
func (r *Reader) readSequential(cs *cellState, g *Group, isRegister bool) {
	if len(g.Names) < 2 {
		r.warnf(g.LineNo, "%s group needs at least Q and QN names", g.Type)
		return
	}
	isBank := g.Type == "ff_bank" || g.Type == "latch_bank"
	size := 1
	if isBank && len(g.Names) >= 3 {
		if n, err := strconv.Atoi(g.Names[2]); err == nil {
			size = n
		}
	}

	outPort := r.makeVirtualPort(cs.cell, g.Names[0])
	outInvPort := r.makeVirtualPort(cs.cell, g.Names[1])

	seq := liberty.NewSequential(isRegister, isBank, outPort, outInvPort, size)
	cs.cell.AddSequential(seq)

	var rawClockOrEnable, rawDataOrNext, rawClear, rawPreset string
	var clrVar1, clrVar2 string
	for _, child := range g.Children {
		a, ok := child.(*SimpleAttr)
		if !ok {
			continue
		}
		switch a.Name {
		case "clocked_on", "enable":
			rawClockOrEnable = a.Value.String()
		case "next_state", "data_in":
			rawDataOrNext = a.Value.String()
		case "clear":
			rawClear = a.Value.String()
		case "preset":
			rawPreset = a.Value.String()
		case "clear_preset_var1":
			clrVar1 = a.Value.String()
		case "clear_preset_var2":
			clrVar2 = a.Value.String()
		}
	}
	seq.SetClrPresetVar1(clrVar1)
	seq.SetClrPresetVar2(clrVar2)

	cell := cs.cell
	line := g.LineNo
	cs.pendingSequentials = append(cs.pendingSequentials, func() error {
		if rawClockOrEnable != "" {
			seq.SetClock(r.parseFunc(rawClockOrEnable, cell, line))
		}
		if rawDataOrNext != "" {
			seq.SetData(r.parseFunc(rawDataOrNext, cell, line))
		}
		if rawClear != "" {
			seq.SetClear(r.parseFunc(rawClear, cell, line))
		}
		if rawPreset != "" {
			seq.SetPreset(r.parseFunc(rawPreset, cell, line))
		}
		return nil
	})
}

// makeVirtualPort creates an internal-direction port for a sequential's Q/QN
// output, the pair pin function strings reference before any real output
// pin is declared.
func (r *Reader) makeVirtualPort(cell *liberty.Cell, name string) *liberty.Port {
	if p := cell.FindPortPtr(name); p != nil {
		return p
	}
	p := r.builder.MakePort(cell, name)
	p.SetDirection(liberty.DirInternal)
	return p
}
