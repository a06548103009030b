package lbfile

import (
	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/table"
	"github.com/opensta-go/opensta/units"
)

// readTableGroup reads one table-shaped group (cell_rise, rise_transition,
// rise_constraint, rise_power, an ocv_derate_factor's cell_rise, and so on)
// into a liberty.TableModel, resolving its lu_table_template by name (or
// synthesizing an ad-hoc one from the index variables actually present, for
// vendor libraries that inline a table without declaring a template).
func (r *Reader) readTableGroup(lib *liberty.Library, g *Group, kind table.TemplateType, sfType *units.ScaleFactorType, rf *units.RiseFall) *liberty.TableModel {
	var tpl *table.Template
	if len(g.Names) > 0 {
		tpl = lib.FindTemplate(g.Names[0], kind)
	}

	var axes [3]*table.Axis
	var valueRows [][]float64
	for _, child := range g.Children {
		a, ok := child.(*ComplexAttr)
		if !ok {
			continue
		}
		switch a.Name {
		case "index_1":
			axes[0] = table.NewAxis(templateVar(tpl, 0), complexAttrFloats(a))
		case "index_2":
			axes[1] = table.NewAxis(templateVar(tpl, 1), complexAttrFloats(a))
		case "index_3":
			axes[2] = table.NewAxis(templateVar(tpl, 2), complexAttrFloats(a))
		case "values":
			for _, v := range a.Values {
				valueRows = append(valueRows, parseFloatList(v.String()))
			}
		}
	}

	if tpl == nil {
		tpl = synthTemplate(g, axes)
	}

	t := buildTable(axes, valueRows)
	if t == nil {
		return nil
	}
	return liberty.NewTableModel(table.NewModel(t, tpl, sfType, rf, false))
}

func templateVar(tpl *table.Template, axis int) table.AxisVariable {
	if tpl == nil {
		return table.AxisUnknown
	}
	return tpl.Variable(axis)
}

// synthTemplate builds an ad-hoc, unnamed template from whichever axes were
// actually populated, for a table group whose named template could not be
// found in the library (a malformed or vendor-extended .lib file).
func synthTemplate(g *Group, axes [3]*table.Axis) *table.Template {
	var vars []table.AxisVariable
	for _, a := range axes {
		if a == nil {
			break
		}
		vars = append(vars, a.Variable())
	}
	name := "anon"
	if len(g.Names) > 0 {
		name = g.Names[0]
	}
	return table.NewTemplate(name, table.TemplateDelay, vars...)
}

// buildTable assembles the order-appropriate table.Table from the axes
// actually present and the flattened value rows read from `values`. An
// order-3 table's single `values` complex attribute is conventionally one
// row per (axis1, axis2) pair, each row holding axis3.Size() entries, which
// is how a 3-index Liberty table is always laid out on the wire.
func buildTable(axes [3]*table.Axis, rows [][]float64) table.Table {
	switch {
	case axes[0] == nil:
		if len(rows) == 0 || len(rows[0]) == 0 {
			return nil
		}
		return table.NewTable0(rows[0][0])
	case axes[1] == nil:
		if len(rows) == 0 {
			return nil
		}
		return table.NewTable1(rows[0], axes[0])
	case axes[2] == nil:
		return table.NewTable2(rows, axes[0], axes[1])
	default:
		n1, n2, n3 := axes[0].Size(), axes[1].Size(), axes[2].Size()
		values := make([][][]float64, n1)
		row := 0
		for i := 0; i < n1; i++ {
			values[i] = make([][]float64, n2)
			for j := 0; j < n2; j++ {
				if row >= len(rows) {
					values[i][j] = make([]float64, n3)
					continue
				}
				values[i][j] = rows[row]
				row++
			}
		}
		return table.NewTable3(values, axes[0], axes[1], axes[2])
	}
}
