package table

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/opensta-go/opensta/units"
)

// Pvt is the minimal process/voltage/temperature collaborator TableModel
// needs to pull a scale factor: implemented concretely by the liberty
// package's OperatingConditions, kept here as a narrow interface so table
// has no dependency on liberty (avoiding an import cycle).
type Pvt interface {
	ScaleFactor(t *units.ScaleFactorType, rf *units.RiseFall) float64
}

// Model wraps a shared Table with the scale-factor bookkeeping Liberty
// timing/power tables need: which ScaleFactorType and RiseFall apply, and
// whether the table's values were already baked from a scaled Template (in
// which case PVT scaling must not be applied a second time).
type Model struct {
	table        Table
	template     *Template
	sfType       *units.ScaleFactorType
	rf           *units.RiseFall
	isScaled     bool
}

// NewModel wraps table under template, recording which scale factor and
// transition edge apply when computing values. isScaled marks a table
// already expressed in scaled (fully derived) units, so FindValue must not
// apply the PVT scale factor again.
func NewModel(table Table, template *Template, sfType *units.ScaleFactorType, rf *units.RiseFall, isScaled bool) *Model {
	return &Model{table: table, template: template, sfType: sfType, rf: rf, isScaled: isScaled}
}

func (m *Model) Table() Table         { return m.table }
func (m *Model) Template() *Template  { return m.template }

// FindValue looks up the table at (x1,x2,x3) and, unless the table is
// already scaled, multiplies by pvt's scale factor for this model's
// ScaleFactorType/RiseFall combination.
func (m *Model) FindValue(pvt Pvt, x1, x2, x3 float64) float64 {
	v := m.table.FindValue(x1, x2, x3)
	if m.isScaled || pvt == nil {
		return v
	}
	return v * pvt.ScaleFactor(m.sfType, m.rf)
}

// ReportValue formats a single lookup as a human-readable line, using
// go-humanize to render the axis/result magnitudes the way a diagnostic
// CLI report would.
func (m *Model) ReportValue(x1, x2, x3 float64, result float64) string {
	var b strings.Builder
	b.WriteString(m.template.Name())
	b.WriteByte(' ')
	for i := 0; i < m.table.Order(); i++ {
		x := []float64{x1, x2, x3}[i]
		fmt.Fprintf(&b, "%s=%s ", m.template.Variable(i).String(), humanize.Ftoa(x))
	}
	fmt.Fprintf(&b, "-> %s", humanize.Ftoa(result))
	return b.String()
}

// Report dumps every stored cell of the underlying table, indexed by its
// axis coordinates, as a diagnostic multi-line string.
func (m *Model) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, order %d)\n", m.template.Name(), m.template.Kind(), m.table.Order())
	switch t := m.table.(type) {
	case *Table0:
		fmt.Fprintf(&b, "  %s\n", humanize.Ftoa(t.value))
	case *Table1:
		for i := 0; i < t.axis1.Size(); i++ {
			fmt.Fprintf(&b, "  [%s] = %s\n", humanize.Ftoa(t.axis1.Value(i)), humanize.Ftoa(t.values[i]))
		}
	case *Table2:
		for i := 0; i < t.axis1.Size(); i++ {
			for j := 0; j < t.axis2.Size(); j++ {
				fmt.Fprintf(&b, "  [%s][%s] = %s\n", humanize.Ftoa(t.axis1.Value(i)), humanize.Ftoa(t.axis2.Value(j)), humanize.Ftoa(t.values[i][j]))
			}
		}
	case *Table3:
		for i := 0; i < t.axis1.Size(); i++ {
			for j := 0; j < t.axis2.Size(); j++ {
				for k := 0; k < t.axis3.Size(); k++ {
					fmt.Fprintf(&b, "  [%s][%s][%s] = %s\n",
						humanize.Ftoa(t.axis1.Value(i)), humanize.Ftoa(t.axis2.Value(j)), humanize.Ftoa(t.axis3.Value(k)),
						humanize.Ftoa(t.values[i][j][k]))
				}
			}
		}
	}
	return b.String()
}
