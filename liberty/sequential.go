package liberty

import "github.com/opensta-go/opensta/funcexpr"

// Sequential records how to build a flip-flop, latch, or register bank's
// logical model; graph elaboration (external to this package) consumes it
// to wire up clock-to-Q and D-to-Q timing arcs.
type Sequential struct {
	isRegister  bool
	isBank      bool
	outPort     *Port
	outInvPort  *Port
	size        int
	clock       *funcexpr.Expr
	data        *funcexpr.Expr
	clear       *funcexpr.Expr
	preset      *funcexpr.Expr
	clrPresetVar1 string
	clrPresetVar2 string
}

// NewSequential creates a Sequential descriptor. isRegister distinguishes
// an edge-triggered register from a level-sensitive latch; isBank marks a
// register-bank (multi-bit) group.
func NewSequential(isRegister, isBank bool, outPort, outInvPort *Port, size int) *Sequential {
	return &Sequential{isRegister: isRegister, isBank: isBank, outPort: outPort, outInvPort: outInvPort, size: size}
}

func (s *Sequential) IsRegister() bool    { return s.isRegister }
func (s *Sequential) IsBank() bool        { return s.isBank }
func (s *Sequential) OutPort() *Port      { return s.outPort }
func (s *Sequential) OutInvPort() *Port   { return s.outInvPort }
func (s *Sequential) Size() int           { return s.size }

func (s *Sequential) Clock() *funcexpr.Expr { return s.clock }
func (s *Sequential) SetClock(e *funcexpr.Expr) { s.clock = e }
func (s *Sequential) Data() *funcexpr.Expr  { return s.data }
func (s *Sequential) SetData(e *funcexpr.Expr) { s.data = e }
func (s *Sequential) Clear() *funcexpr.Expr { return s.clear }
func (s *Sequential) SetClear(e *funcexpr.Expr) { s.clear = e }
func (s *Sequential) Preset() *funcexpr.Expr { return s.preset }
func (s *Sequential) SetPreset(e *funcexpr.Expr) { s.preset = e }

func (s *Sequential) ClrPresetVar1() string     { return s.clrPresetVar1 }
func (s *Sequential) SetClrPresetVar1(v string) { s.clrPresetVar1 = v }
func (s *Sequential) ClrPresetVar2() string     { return s.clrPresetVar2 }
func (s *Sequential) SetClrPresetVar2(v string) { s.clrPresetVar2 = v }
