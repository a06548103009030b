package liberty

import (
	"github.com/opensta-go/opensta/funcexpr"
	"github.com/opensta-go/opensta/units"
)

// PortDirection enumerates a Liberty pin's direction attribute.
type PortDirection int

const (
	DirInput PortDirection = iota
	DirOutput
	DirBidirect
	DirTristate
	DirInternal
	DirPower
	DirGround
	DirUnknown
)

var portDirectionNames = map[string]PortDirection{
	"input":    DirInput,
	"output":   DirOutput,
	"inout":    DirBidirect,
	"tristate": DirTristate,
	"internal": DirInternal,
	"power":    DirPower,
	"ground":   DirGround,
}

// FindPortDirection looks up a PortDirection by its Liberty attribute
// string.
func FindPortDirection(name string) PortDirection {
	if d, ok := portDirectionNames[name]; ok {
		return d
	}
	return DirUnknown
}

// ClockGateRole distinguishes the special ports of an integrated clock
// gating cell.
type ClockGateRole int

const (
	ClockGateRoleNone ClockGateRole = iota
	ClockGateRoleClock
	ClockGateRoleEnable
	ClockGateRoleOutClock
)

// capRiseFallMinMax stores one float per (RiseFall, MinMax) combination —
// the representation capacitance, a four-cell grid on LibertyPort.
type capRiseFallMinMax [2][2]float64

func (c *capRiseFallMinMax) value(rf *units.RiseFall, mm *units.MinMax) float64 {
	return c[rf.Index()][mm.Index()]
}

func (c *capRiseFallMinMax) set(rf *units.RiseFall, mm *units.MinMax, v float64) {
	c[rf.Index()][mm.Index()] = v
}

// isOneValue is true iff all four cells are equal.
func (c *capRiseFallMinMax) isOneValue() bool {
	first := c[0][0]
	for _, row := range c {
		for _, v := range row {
			if v != first {
				return false
			}
		}
	}
	return true
}

// minMaxMerge reduces the rise/fall pair for a given min/max to a single
// value using mm's own comparison rule (min keeps the smaller, max the
// larger), matching the capacitance "min/max-merged" accessor.
func (c *capRiseFallMinMax) minMaxMerge(mm *units.MinMax) float64 {
	r := c[units.Rise().Index()][mm.Index()]
	f := c[units.Fall().Index()][mm.Index()]
	if mm.Compare(r, f) {
		return r
	}
	return f
}

// Port is a Liberty pin: scalar, bus, bundle, or an internal/power/ground
// pin with no timing relevance of its own.
type Port struct {
	cell      *Cell
	name      string
	direction PortDirection
	function  *funcexpr.Expr
	tristateEnable *funcexpr.Expr

	// bus/bundle
	busDcl  *BusDcl // non-nil if this port is a bus
	members []*Port // member bits (bus) or member ports (bundle), in order

	capacitance capRiseFallMinMax
	slewLimit   [2]float64 // [min,max]
	capLimit    [2]float64
	fanoutLimit [2]float64
	fanoutLoad  float64
	minPeriod   float64
	minPulseWidth [2]float64 // rise, fall

	isClock             bool
	isRegClk             bool
	isRegOutput          bool
	isCheckClk           bool
	isLatchData          bool
	isPllFeedback        bool
	isPad                bool
	isSwitch             bool
	isDisabledConstraint bool
	isolationCellData    bool
	isolationCellEnable  bool
	levelShifterData     bool
	clockGateRole        ClockGateRole
	pulseClkTrigger      *units.Transition
	pulseClkSense        *units.RiseFallBoth
}

// NewPort creates a scalar port on cell. Bus/bundle ports are created via
// NewBusPort/NewBundlePort.
func NewPort(cell *Cell, name string) *Port {
	return &Port{cell: cell, name: name, direction: DirUnknown}
}

// NewBusPort creates a bus port with one member bit per index in
// [from,to] (descending if from > to, matching Liberty's bus_type
// convention), each a scalar *Port.
func NewBusPort(cell *Cell, name string, from, to int, dcl *BusDcl) *Port {
	p := &Port{cell: cell, name: name, direction: DirUnknown, busDcl: dcl}
	step := 1
	if from > to {
		step = -1
	}
	for i := from; ; i += step {
		p.members = append(p.members, NewPort(cell, busBitName(name, i)))
		if i == to {
			break
		}
	}
	return p
}

func busBitName(name string, bit int) string {
	return name + "[" + itoa(bit) + "]"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// NewBundlePort creates a bundle port referencing existing member ports.
func NewBundlePort(cell *Cell, name string, members []*Port) *Port {
	return &Port{cell: cell, name: name, direction: DirUnknown, members: members}
}

func (p *Port) Cell() *Cell               { return p.cell }
func (p *Port) Name() string              { return p.name }
func (p *Port) Direction() PortDirection  { return p.direction }
func (p *Port) SetDirection(d PortDirection) { p.direction = d }
func (p *Port) Function() *funcexpr.Expr  { return p.function }
func (p *Port) SetFunction(e *funcexpr.Expr) { p.function = e }
func (p *Port) TristateEnable() *funcexpr.Expr { return p.tristateEnable }
func (p *Port) SetTristateEnable(e *funcexpr.Expr) { p.tristateEnable = e }
func (p *Port) IsBus() bool               { return p.busDcl != nil }
func (p *Port) IsBundle() bool            { return p.busDcl == nil && len(p.members) > 0 }
func (p *Port) BusDcl() *BusDcl           { return p.busDcl }
func (p *Port) MemberCount() int          { return len(p.members) }
func (p *Port) Member(i int) *Port        { return p.members[i] }

// BitWidth implements funcexpr.BusPort.
func (p *Port) BitWidth() int {
	if len(p.members) == 0 {
		return 1
	}
	return len(p.members)
}

// Bit implements funcexpr.BusPort.
func (p *Port) Bit(i int) funcexpr.Port { return p.members[i] }

func (p *Port) Capacitance(rf *units.RiseFall, mm *units.MinMax) float64 {
	return p.capacitance.value(rf, mm)
}
func (p *Port) SetCapacitance(rf *units.RiseFall, mm *units.MinMax, v float64) {
	p.capacitance.set(rf, mm, v)
}
func (p *Port) CapacitanceIsOneValue() bool { return p.capacitance.isOneValue() }
func (p *Port) CapacitanceMinMax(mm *units.MinMax) float64 {
	return p.capacitance.minMaxMerge(mm)
}

func (p *Port) SlewLimit(mm *units.MinMax) float64      { return p.slewLimit[mm.Index()] }
func (p *Port) SetSlewLimit(mm *units.MinMax, v float64) { p.slewLimit[mm.Index()] = v }
func (p *Port) CapacitanceLimit(mm *units.MinMax) float64 { return p.capLimit[mm.Index()] }
func (p *Port) SetCapacitanceLimit(mm *units.MinMax, v float64) { p.capLimit[mm.Index()] = v }
func (p *Port) FanoutLimit(mm *units.MinMax) float64     { return p.fanoutLimit[mm.Index()] }
func (p *Port) SetFanoutLimit(mm *units.MinMax, v float64) { p.fanoutLimit[mm.Index()] = v }
func (p *Port) FanoutLoad() float64                       { return p.fanoutLoad }
func (p *Port) SetFanoutLoad(v float64)                   { p.fanoutLoad = v }
func (p *Port) MinPeriod() float64                        { return p.minPeriod }
func (p *Port) SetMinPeriod(v float64)                    { p.minPeriod = v }
func (p *Port) MinPulseWidth(rf *units.RiseFall) float64  { return p.minPulseWidth[rf.Index()] }
func (p *Port) SetMinPulseWidth(rf *units.RiseFall, v float64) { p.minPulseWidth[rf.Index()] = v }

func (p *Port) IsClock() bool      { return p.isClock }
func (p *Port) SetIsClock(v bool)  { p.isClock = v }
func (p *Port) IsRegClk() bool     { return p.isRegClk }
func (p *Port) SetIsRegClk(v bool) { p.isRegClk = v }
func (p *Port) IsPad() bool        { return p.isPad }
func (p *Port) SetIsPad(v bool)    { p.isPad = v }

// DriveResistance returns the largest driver resistance seen on any
// output-path LinearModel timing arc model sourced from this port.
func (p *Port) DriveResistance() float64 {
	best := 0.0
	for _, set := range p.cell.ArcSets() {
		if set.From() != p {
			continue
		}
		for _, arc := range set.Arcs() {
			if lm, ok := arc.Model().(*LinearModel); ok {
				if lm.DriveResistance() > best {
					best = lm.DriveResistance()
				}
			}
		}
	}
	return best
}

// BusDcl is a named bus_type declaration (bus_dcl group or the library's
// bundle/bus naming style).
type BusDcl struct {
	name string
	from int
	to   int
}

func NewBusDcl(name string, from, to int) *BusDcl { return &BusDcl{name: name, from: from, to: to} }
func (b *BusDcl) Name() string                    { return b.name }
func (b *BusDcl) From() int                       { return b.from }
func (b *BusDcl) To() int                         { return b.to }
