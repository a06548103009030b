package liberty

import (
	"github.com/opensta-go/opensta/funcexpr"
	"github.com/opensta-go/opensta/units"
)

// InternalPower is a cell's internal (switching) power arc: a port,
// optional related port and `when` condition, an optional related power/
// ground pin name, and a TableModel per rise/fall.
type InternalPower struct {
	port          *Port
	relatedPort   *Port
	when          *funcexpr.Expr
	relatedPgPin  string
	tables        [2]*TableModel // indexed by RiseFall
}

func NewInternalPower(port, relatedPort *Port, when *funcexpr.Expr) *InternalPower {
	return &InternalPower{port: port, relatedPort: relatedPort, when: when}
}

func (p *InternalPower) Port() *Port            { return p.port }
func (p *InternalPower) RelatedPort() *Port     { return p.relatedPort }
func (p *InternalPower) When() *funcexpr.Expr   { return p.when }
func (p *InternalPower) RelatedPgPin() string   { return p.relatedPgPin }
func (p *InternalPower) SetRelatedPgPin(v string) { p.relatedPgPin = v }

func (p *InternalPower) SetTable(rf *units.RiseFall, m *TableModel) { p.tables[rf.Index()] = m }
func (p *InternalPower) Table(rf *units.RiseFall) *TableModel       { return p.tables[rf.Index()] }

// Power evaluates the rise/fall table (a constant for an order-0 table) at
// the given input slew and load cap.
func (p *InternalPower) Power(pvt *Pvt, rf *units.RiseFall, inputSlew, loadCap float64) float64 {
	m := p.tables[rf.Index()]
	if m == nil {
		return 0
	}
	return m.FindValue(pvt, inputSlew, loadCap, 0)
}

// LeakagePower is a single `(when, related_pg_pin, value)` leakage entry.
// CellLeakageTotal sums every entry; entries are not selected by their
// `when` condition.
type LeakagePower struct {
	when         *funcexpr.Expr
	relatedPgPin string
	value        float64
}

func NewLeakagePower(when *funcexpr.Expr, relatedPgPin string, value float64) *LeakagePower {
	return &LeakagePower{when: when, relatedPgPin: relatedPgPin, value: value}
}

func (l *LeakagePower) When() *funcexpr.Expr  { return l.when }
func (l *LeakagePower) RelatedPgPin() string  { return l.relatedPgPin }
func (l *LeakagePower) Value() float64        { return l.value }

// CellLeakageTotal sums every LeakagePower entry on the cell, for cells
// with no per-state leakage selection applied.
func CellLeakageTotal(c *Cell) float64 {
	total := 0.0
	for _, lp := range c.LeakagePowers() {
		total += lp.Value()
	}
	return total
}
