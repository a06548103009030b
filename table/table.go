package table

// Table is a shared, reference-counted-in-spirit (garbage-collected in this
// implementation, see DESIGN.md) lookup table of order 0 through 3. The
// four concrete shapes implement this single interface so TableModel can
// hold any of them uniformly.
type Table interface {
	// Order returns the number of axes: 0, 1, 2, or 3.
	Order() int
	// Axis1, Axis2, Axis3 return the table's axes; nil beyond Order().
	Axis1() *Axis
	Axis2() *Axis
	Axis3() *Axis
	// Value returns the raw stored cell at (i,j,k); indices beyond Order()
	// are ignored.
	Value(i, j, k int) float64
	// FindValue interpolates (or extrapolates, for order 1-3, past either
	// axis end) the table's value at (x1,x2,x3).
	FindValue(x1, x2, x3 float64) float64
}

// Table0 is a constant table: no axes, a single value.
type Table0 struct {
	value float64
}

// NewTable0 creates a constant (order-0) table.
func NewTable0(value float64) *Table0 { return &Table0{value: value} }

func (t *Table0) Order() int                       { return 0 }
func (t *Table0) Axis1() *Axis                      { return nil }
func (t *Table0) Axis2() *Axis                      { return nil }
func (t *Table0) Axis3() *Axis                      { return nil }
func (t *Table0) Value(i, j, k int) float64         { return t.value }
func (t *Table0) FindValue(x1, x2, x3 float64) float64 { return t.value }

// Table1 is a single-axis table with linear interpolation and, via
// FindValueClip, a clip-to-zero-below / clip-to-last-above mode used by wire
// slew degradation tables.
type Table1 struct {
	values []float64
	axis1  *Axis
}

// NewTable1 creates a single-axis table. len(values) must equal
// axis1.Size().
func NewTable1(values []float64, axis1 *Axis) *Table1 {
	return &Table1{values: values, axis1: axis1}
}

func (t *Table1) Order() int           { return 1 }
func (t *Table1) Axis1() *Axis         { return t.axis1 }
func (t *Table1) Axis2() *Axis         { return nil }
func (t *Table1) Axis3() *Axis         { return nil }
func (t *Table1) Value(i, j, k int) float64 { return t.values[i] }

// FindValue returns the value at x1, linearly interpolated between
// bracketing samples. If the axis has only one point, that sole value is
// returned regardless of x1. Extrapolation past either end continues the
// end segment's slope exactly, performing no clamping.
func (t *Table1) FindValue(x1, x2, x3 float64) float64 {
	n := t.axis1.Size()
	if n == 1 {
		return t.values[0]
	}
	i := t.axis1.FindIndex(x1)
	x0, x1s := t.axis1.Value(i), t.axis1.Value(i+1)
	y0, y1s := t.values[i], t.values[i+1]
	return interp1(x1, x0, x1s, y0, y1s)
}

// FindValueClip behaves like FindValue inside [min,max], but clips an x1
// below the axis minimum to 0.0 (not to the first table value — this
// unusual rule is intentional) and an x1 above the maximum to the last
// stored value.
func (t *Table1) FindValueClip(x1 float64) float64 {
	n := t.axis1.Size()
	if n == 0 {
		return 0.0
	}
	if x1 < t.axis1.Min() {
		return 0.0
	}
	if x1 > t.axis1.Max() {
		return t.values[n-1]
	}
	return t.FindValue(x1, 0, 0)
}

func interp1(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	frac := (x - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}

// Table2 is a two-axis table with bilinear interpolation, degenerating to
// the Table1 case along whichever axis has only one sample point.
type Table2 struct {
	values [][]float64 // values[i][j], i over axis1, j over axis2
	axis1  *Axis
	axis2  *Axis
}

// NewTable2 creates a two-axis table. values must be shaped
// [axis1.Size()][axis2.Size()].
func NewTable2(values [][]float64, axis1, axis2 *Axis) *Table2 {
	return &Table2{values: values, axis1: axis1, axis2: axis2}
}

func (t *Table2) Order() int           { return 2 }
func (t *Table2) Axis1() *Axis         { return t.axis1 }
func (t *Table2) Axis2() *Axis         { return t.axis2 }
func (t *Table2) Axis3() *Axis         { return nil }
func (t *Table2) Value(i, j, k int) float64 { return t.values[i][j] }

func (t *Table2) FindValue(x1, x2, x3 float64) float64 {
	n1, n2 := t.axis1.Size(), t.axis2.Size()
	if n1 == 1 && n2 == 1 {
		return t.values[0][0]
	}
	if n1 == 1 {
		row := t.values[0]
		return interpAlong(t.axis2, row, x2)
	}
	if n2 == 1 {
		col := make([]float64, n1)
		for i := range col {
			col[i] = t.values[i][0]
		}
		return interpAlong(t.axis1, col, x1)
	}
	i := t.axis1.FindIndex(x1)
	j := t.axis2.FindIndex(x2)
	x1a, x1b := t.axis1.Value(i), t.axis1.Value(i+1)
	x2a, x2b := t.axis2.Value(j), t.axis2.Value(j+1)
	v00, v01 := t.values[i][j], t.values[i][j+1]
	v10, v11 := t.values[i+1][j], t.values[i+1][j+1]
	lo := interp1(x2, x2a, x2b, v00, v01)
	hi := interp1(x2, x2a, x2b, v10, v11)
	return interp1(x1, x1a, x1b, lo, hi)
}

// interpAlong linearly interpolates a 1-D slice of values sampled at axis's
// points, at x.
func interpAlong(axis *Axis, values []float64, x float64) float64 {
	n := axis.Size()
	if n == 1 {
		return values[0]
	}
	i := axis.FindIndex(x)
	return interp1(x, axis.Value(i), axis.Value(i+1), values[i], values[i+1])
}

// Table3 is a three-axis table with trilinear interpolation, degenerating
// to Table2/Table1 behavior along any axis with a single sample point.
type Table3 struct {
	values [][][]float64 // values[i][j][k]
	axis1  *Axis
	axis2  *Axis
	axis3  *Axis
}

// NewTable3 creates a three-axis table. values must be shaped
// [axis1.Size()][axis2.Size()][axis3.Size()].
func NewTable3(values [][][]float64, axis1, axis2, axis3 *Axis) *Table3 {
	return &Table3{values: values, axis1: axis1, axis2: axis2, axis3: axis3}
}

func (t *Table3) Order() int           { return 3 }
func (t *Table3) Axis1() *Axis         { return t.axis1 }
func (t *Table3) Axis2() *Axis         { return t.axis2 }
func (t *Table3) Axis3() *Axis         { return t.axis3 }
func (t *Table3) Value(i, j, k int) float64 { return t.values[i][j][k] }

func (t *Table3) FindValue(x1, x2, x3 float64) float64 {
	n3 := t.axis3.Size()
	if n3 == 1 {
		t2 := NewTable2(sliceAtK(t.values, 0), t.axis1, t.axis2)
		return t2.FindValue(x1, x2, x3)
	}
	k := t.axis3.FindIndex(x3)
	x3a, x3b := t.axis3.Value(k), t.axis3.Value(k+1)
	lo := NewTable2(sliceAtK(t.values, k), t.axis1, t.axis2).FindValue(x1, x2, x3)
	hi := NewTable2(sliceAtK(t.values, k+1), t.axis1, t.axis2).FindValue(x1, x2, x3)
	return interp1(x3, x3a, x3b, lo, hi)
}

func sliceAtK(values [][][]float64, k int) [][]float64 {
	out := make([][]float64, len(values))
	for i, row := range values {
		out[i] = make([]float64, len(row))
		for j, cell := range row {
			out[i][j] = cell[k]
		}
	}
	return out
}
