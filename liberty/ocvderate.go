package liberty

import "github.com/opensta-go/opensta/units"

// OcvDerate is a named on-chip-variation derating factor set: a 3-D map
// from (RiseFall, EarlyLate, PathType) to a shared delay-multiplying
// table.Model.
type OcvDerate struct {
	name   string
	tables map[ocvKey]*TableModel
}

type ocvKey struct {
	rf *units.RiseFall
	el *units.EarlyLate
	pt *units.PathType
}

func NewOcvDerate(name string) *OcvDerate {
	return &OcvDerate{name: name, tables: make(map[ocvKey]*TableModel)}
}

func (o *OcvDerate) Name() string { return o.name }

func (o *OcvDerate) SetTable(rf *units.RiseFall, el *units.EarlyLate, pt *units.PathType, m *TableModel) {
	o.tables[ocvKey{rf, el, pt}] = m
}

func (o *OcvDerate) Table(rf *units.RiseFall, el *units.EarlyLate, pt *units.PathType) *TableModel {
	return o.tables[ocvKey{rf, el, pt}]
}

// Derate returns the derating multiplier for the given operating point and
// depth, defaulting to 1.0 (no derating) when no table is registered.
func (o *OcvDerate) Derate(pvt *Pvt, rf *units.RiseFall, el *units.EarlyLate, pt *units.PathType, depth float64) float64 {
	m := o.Table(rf, el, pt)
	if m == nil {
		return 1.0
	}
	return m.FindValue(pvt, depth, 0, 0)
}
