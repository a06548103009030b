package lbfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opensta-go/opensta/funcexpr"
	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/table"
	"github.com/opensta-go/opensta/units"
	"go.uber.org/zap"
)

// Reader walks a parsed Stmt tree and drives a liberty.Builder to construct
// a Library, the way caddyfile's Dispenser-driven directive registry walks
// tokens and calls into config-object setters, except here the dispatch
// tables are keyed by Liberty group type and attribute name rather than
// directive name.
type Reader struct {
	builder *liberty.Builder
	logger  *zap.Logger
	file    string

	lib   *liberty.Library
	cells []*cellState
}

// NewReader creates a Reader that builds model objects through builder,
// logging unknown/malformed constructs to logger.
func NewReader(builder *liberty.Builder, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{builder: builder, logger: logger.Named("lbfile")}
}

// ReadFile opens, tokenizes, parses and reads path into a new Library.
func ReadFile(path string, builder *liberty.Builder, logger *zap.Logger) (*liberty.Library, error) {
	f, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("lbfile: opening %s: %w", path, err)
	}
	defer f.Close()

	toks, err := Tokenize(f)
	if err != nil {
		return nil, fmt.Errorf("lbfile: tokenizing %s: %w", path, err)
	}
	stmts, err := ParseFile(path, toks)
	if err != nil {
		return nil, err
	}
	r := NewReader(builder, logger)
	return r.Read(path, stmts)
}

// Read drives the reader over an already-parsed statement list, returning
// the library built from the first top-level `library(...)` group.
func (r *Reader) Read(file string, stmts []Stmt) (*liberty.Library, error) {
	r.file = file
	for _, s := range stmts {
		g, ok := s.(*Group)
		if !ok || g.Type != "library" {
			continue
		}
		return r.readLibrary(g)
	}
	return nil, fmt.Errorf("lbfile: %s: no library(...) group found", file)
}

// cellState accumulates the cross-reference work a cell's `function`,
// `cond`, sequential, internal_power and leakage_power statements defer
// until the rest of the cell's ports and sub-groups are known, resolved by
// the parseCellFuncs -> makeCellSequentials -> finishPortGroups ->
// makeLeakagePowers pipeline.
type cellState struct {
	cell *liberty.Cell

	pendingFuncs       []func() error
	pendingSequentials []func() error
	pendingTimingGroups []*pendingTimingGroup
	pendingInternalPowers []*pendingInternalPower
	pendingLeakagePowers  []*pendingLeakagePower
}

func (r *Reader) curCell() *cellState {
	if len(r.cells) == 0 {
		return nil
	}
	return r.cells[len(r.cells)-1]
}

func (r *Reader) pushCell(c *liberty.Cell) *cellState {
	cs := &cellState{cell: c}
	r.cells = append(r.cells, cs)
	return cs
}

func (r *Reader) popCell() {
	r.cells = r.cells[:len(r.cells)-1]
}

func (r *Reader) warnf(line int, format string, args ...any) {
	r.logger.Warn(fmt.Sprintf(format, args...), zap.String("file", r.file), zap.Int("line", line))
}

// readLibrary implements beginLibrary/endLibrary: it builds the Library,
// walks every child statement through the group/attribute dispatch tables,
// then finishes the unit-derived energy scale and resolves deferred
// default-name references (default_wire_load and friends can name a
// wire_load group that appears later in the file).
func (r *Reader) readLibrary(g *Group) (*liberty.Library, error) {
	name := ""
	if len(g.Names) > 0 {
		name = g.Names[0]
	}
	lib := liberty.NewLibrary(name, r.file)
	r.lib = lib

	var deferredDefaults []func()
	for _, child := range g.Children {
		switch s := child.(type) {
		case *Group:
			if err := r.readLibraryGroup(lib, s); err != nil {
				return nil, err
			}
		case *SimpleAttr:
			if fn := r.readLibraryDefaultName(lib, s); fn != nil {
				deferredDefaults = append(deferredDefaults, fn)
				continue
			}
			r.readLibraryAttr(lib, s)
		case *ComplexAttr:
			r.readLibraryComplexAttr(lib, s)
		case *Define, *Variable:
			// Vendor attribute declarations and bare variable assignments
			// outside scaling_factors carry no library-level meaning.
		}
	}
	for _, fn := range deferredDefaults {
		fn()
	}
	lib.FinishUnits()
	return lib, nil
}

func (r *Reader) readLibraryGroup(lib *liberty.Library, g *Group) error {
	switch g.Type {
	case "cell":
		return r.readCell(lib, g)
	case "type":
		r.readBusType(lib, g)
	case "lu_table_template":
		r.readTemplate(lib, g, table.TemplateDelay)
	case "power_lut_template":
		r.readTemplate(lib, g, table.TemplatePower)
	case "output_current_template":
		r.readTemplate(lib, g, table.TemplateOutputCurrent)
	case "ocv_table_template":
		r.readTemplate(lib, g, table.TemplateOcv)
	case "operating_conditions":
		r.readOperatingConditions(lib, g)
	case "wire_load":
		r.readWireload(lib, g)
	case "wire_load_selection":
		r.readWireloadSelection(lib, g)
	case "scaling_factors":
		r.readScalingFactors(lib, g)
	case "ocv_derate":
		r.readOcvDerate(lib, g)
	default:
		r.warnf(g.LineNo, "unknown library group %q ignored", g.Type)
	}
	return nil
}

// readLibraryDefaultName handles the handful of library attrs that name a
// group defined elsewhere in the file (default_wire_load, ...), returning a
// closure to resolve the reference once every group has been read, or nil
// if attr isn't one of those.
func (r *Reader) readLibraryDefaultName(lib *liberty.Library, a *SimpleAttr) func() {
	name := a.Value.String()
	switch a.Name {
	case "default_wire_load":
		return func() { lib.SetDefaultWireload(lib.FindWireload(name)) }
	case "default_wire_load_selection":
		return func() { lib.SetDefaultWireloadSelection(lib.FindWireloadSelection(name)) }
	case "default_operating_condition":
		return func() {
			oc := lib.FindOperatingConditions(name)
			lib.SetDefaultOperatingConditions(oc)
			if oc != nil {
				lib.SetDefaultScaleFactors(lib.FindScaleFactors(name))
			}
		}
	case "default_wire_load_mode":
		return func() { lib.SetDefaultWireloadMode(units.FindWireloadMode(name)) }
	default:
		return nil
	}
}

var libraryUnitAttrs = map[string]string{
	"time_unit":                "time",
	"voltage_unit":             "voltage",
	"current_unit":             "current",
	"pulling_resistance_unit":  "resistance",
	"capacitive_load_unit":     "capacitance",
	"power_unit":               "power",
	"leakage_power_unit":       "power",
	"distance_unit":            "distance",
}

func (r *Reader) readLibraryAttr(lib *liberty.Library, a *SimpleAttr) {
	if category, ok := libraryUnitAttrs[a.Name]; ok {
		r.setUnit(lib, category, a)
		return
	}
	f, isNum := a.Value.Float()
	switch a.Name {
	case "nom_process":
		lib.SetNominalProcess(f)
	case "nom_voltage":
		lib.SetNominalVoltage(f)
	case "nom_temperature":
		lib.SetNominalTemperature(f)
	case "input_threshold_pct_rise":
		lib.SetPvtInputThreshold(units.Rise(), f)
	case "input_threshold_pct_fall":
		lib.SetPvtInputThreshold(units.Fall(), f)
	case "output_threshold_pct_rise":
		lib.SetPvtOutputThreshold(units.Rise(), f)
	case "output_threshold_pct_fall":
		lib.SetPvtOutputThreshold(units.Fall(), f)
	case "slew_lower_threshold_pct_rise":
		lib.SetSlewLowerThreshold(units.Rise(), f)
	case "slew_lower_threshold_pct_fall":
		lib.SetSlewLowerThreshold(units.Fall(), f)
	case "slew_upper_threshold_pct_rise":
		lib.SetSlewUpperThreshold(units.Rise(), f)
	case "slew_upper_threshold_pct_fall":
		lib.SetSlewUpperThreshold(units.Fall(), f)
	case "slew_derate_from_library":
		lib.SetSlewDerateFromLibrary(f)
	case "default_input_pin_cap":
		lib.SetDefaultInputPinCap(f)
	case "default_output_pin_cap":
		lib.SetDefaultOutputPinCap(f)
	case "default_inout_pin_cap":
		lib.SetDefaultBidirectPinCap(f)
	case "default_max_transition":
		lib.SetDefaultMaxSlew(f)
	case "default_max_capacitance":
		lib.SetDefaultMaxCapacitance(f)
	case "default_max_fanout":
		lib.SetDefaultMaxFanout(f)
	case "default_fanout_load":
		lib.SetDefaultFanoutLoad(f)
	default:
		if !isNum {
			// Unknown string-valued attribute: silently skipped, matching
			// Liberty's tolerant-reader convention for vendor extensions.
			return
		}
	}
}

func (r *Reader) readLibraryComplexAttr(lib *liberty.Library, a *ComplexAttr) {
	if a.Name == "voltage_map" && len(a.Values) == 2 {
		if v, ok := a.Values[1].Float(); ok {
			lib.AddSupplyVoltage(a.Values[0].String(), v)
		}
	}
}

// setUnit parses a Liberty *_unit value such as "1ns" or "1.0pF" into a
// scale, applying it to the named unit category.
func (r *Reader) setUnit(lib *liberty.Library, category string, a *SimpleAttr) {
	u := lib.Units().Find(category)
	if u == nil {
		return
	}
	scale, ok := parseUnitScale(a.Value.String())
	if !ok {
		r.warnf(a.LineNo, "malformed %s value %q", a.Name, a.Value.String())
		return
	}
	u.SetScale(scale)
}

// parseUnitScale turns a unit string like "1.0ns" or "10ohm" into its SI
// scale: the numeric prefix times the suffix's metric prefix, so "1ns"
// gives 1e-9, "1kohm" gives 1e3 and "1V" gives 1.
func parseUnitScale(s string) (float64, bool) {
	i := 0
	for i < len(s) && (s[i] == '.' || s[i] == '-' || s[i] == '+' || (s[i] >= '0' && s[i] <= '9') || s[i] == 'e' || s[i] == 'E') {
		i++
	}
	if i == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false
	}
	if suffix := s[i:]; len(suffix) > 1 {
		switch suffix[0] {
		case 'f':
			v *= 1e-15
		case 'p':
			v *= 1e-12
		case 'n':
			v *= 1e-9
		case 'u':
			v *= 1e-6
		case 'm':
			v *= 1e-3
		case 'k':
			v *= 1e3
		}
	}
	return v, true
}

func (r *Reader) readBusType(lib *liberty.Library, g *Group) {
	if len(g.Names) == 0 {
		return
	}
	name := g.Names[0]
	width := 0
	from, to := -1, -1
	for _, child := range g.Children {
		a, ok := child.(*SimpleAttr)
		if !ok {
			continue
		}
		f, _ := a.Value.Float()
		switch a.Name {
		case "bit_width":
			width = int(f)
		case "bit_from":
			from = int(f)
		case "bit_to":
			to = int(f)
		}
	}
	if from == -1 || to == -1 {
		if width <= 0 {
			return
		}
		from, to = width-1, 0
	}
	lib.AddBusDcl(liberty.NewBusDcl(name, from, to))
}

func (r *Reader) readTemplate(lib *liberty.Library, g *Group, kind table.TemplateType) {
	if len(g.Names) == 0 {
		return
	}
	var vars [3]table.AxisVariable
	order := 0
	for _, child := range g.Children {
		a, ok := child.(*SimpleAttr)
		if !ok {
			continue
		}
		idx := -1
		switch a.Name {
		case "variable_1":
			idx = 0
		case "variable_2":
			idx = 1
		case "variable_3":
			idx = 2
		}
		if idx == -1 {
			continue
		}
		vars[idx] = table.FindAxisVariable(a.Value.String())
		if idx+1 > order {
			order = idx + 1
		}
	}
	lib.AddTemplate(table.NewTemplate(g.Names[0], kind, vars[:order]...))
}

func (r *Reader) readOperatingConditions(lib *liberty.Library, g *Group) {
	if len(g.Names) == 0 {
		return
	}
	var process, voltage, temperature float64
	tree := units.WireloadTreeUnknown
	for _, child := range g.Children {
		a, ok := child.(*SimpleAttr)
		if !ok {
			continue
		}
		switch a.Name {
		case "process":
			process, _ = a.Value.Float()
		case "voltage":
			voltage, _ = a.Value.Float()
		case "temperature":
			temperature, _ = a.Value.Float()
		case "tree_type":
			tree = units.FindWireloadTree(a.Value.String())
		}
	}
	lib.AddOperatingConditions(liberty.NewOperatingConditions(g.Names[0], process, voltage, temperature, tree))
}

func (r *Reader) readWireload(lib *liberty.Library, g *Group) {
	if len(g.Names) == 0 {
		return
	}
	var resistance, capacitance, slope float64
	var fanouts []struct {
		n int
		l float64
	}
	for _, child := range g.Children {
		switch a := child.(type) {
		case *SimpleAttr:
			switch a.Name {
			case "resistance":
				resistance, _ = a.Value.Float()
			case "capacitance":
				capacitance, _ = a.Value.Float()
			case "slope":
				slope, _ = a.Value.Float()
			}
		case *ComplexAttr:
			if a.Name == "fanout_length" && len(a.Values) == 2 {
				n, _ := a.Values[0].Float()
				l, _ := a.Values[1].Float()
				fanouts = append(fanouts, struct {
					n int
					l float64
				}{int(n), l})
			}
		}
	}
	w := liberty.NewWireload(g.Names[0], resistance, capacitance, slope)
	for _, fo := range fanouts {
		w.SetFanoutLength(fo.n, fo.l)
	}
	lib.AddWireload(w)
}

func (r *Reader) readWireloadSelection(lib *liberty.Library, g *Group) {
	if len(g.Names) == 0 {
		return
	}
	sel := liberty.NewWireloadSelection(g.Names[0])
	for _, child := range g.Children {
		a, ok := child.(*ComplexAttr)
		if !ok || a.Name != "wire_load_from_area" || len(a.Values) != 3 {
			continue
		}
		minArea, _ := a.Values[0].Float()
		maxArea, _ := a.Values[1].Float()
		w := lib.FindWireload(a.Values[2].String())
		sel.AddRange(minArea, maxArea, w)
	}
	lib.AddWireloadSelection(sel)
}

// readScalingFactors implements the scale-factor-name grammar
// `k_<pvtaxis>_<type>[_rise|_fall]` for the scaling_factors group.
func (r *Reader) readScalingFactors(lib *liberty.Library, g *Group) {
	name := "scaling"
	if len(g.Names) > 0 {
		name = g.Names[0]
	}
	sf := liberty.NewScaleFactors(name, lib.NominalProcess(), lib.NominalVoltage(), lib.NominalTemperature())
	for _, child := range g.Children {
		v, ok := child.(*Variable)
		if !ok {
			continue
		}
		axis, sfType, rf, ok := parseScaleFactorName(v.Name)
		if !ok {
			r.warnf(v.LineNo, "unrecognized scaling_factors name %q ignored", v.Name)
			continue
		}
		sf.SetK(sfType, axis, rf, v.Value)
	}
	lib.AddScaleFactors(sf)
	if lib.DefaultScaleFactors() == nil {
		lib.SetDefaultScaleFactors(sf)
	}
}

func parseScaleFactorName(name string) (axis *units.ScaleFactorPvt, sfType *units.ScaleFactorType, rf *units.RiseFall, ok bool) {
	rest := strings.TrimPrefix(name, "k_")
	if rest == name {
		return nil, nil, nil, false
	}
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return nil, nil, nil, false
	}
	switch parts[0] {
	case "process":
		axis = units.ScaleFactorPvtProcess()
	case "volt":
		axis = units.ScaleFactorPvtVolt()
	case "temp":
		axis = units.ScaleFactorPvtTemp()
	default:
		return nil, nil, nil, false
	}
	typeName := parts[1]
	switch {
	case strings.HasSuffix(typeName, "_rise"):
		rf = units.Rise()
		typeName = strings.TrimSuffix(typeName, "_rise")
	case strings.HasSuffix(typeName, "_fall"):
		rf = units.Fall()
		typeName = strings.TrimSuffix(typeName, "_fall")
	case strings.HasSuffix(typeName, "_low"):
		rf = units.Rise()
		typeName = strings.TrimSuffix(typeName, "_low")
	case strings.HasSuffix(typeName, "_high"):
		rf = units.Fall()
		typeName = strings.TrimSuffix(typeName, "_high")
	case strings.HasPrefix(typeName, "rise_"):
		rf = units.Rise()
		typeName = strings.TrimPrefix(typeName, "rise_")
	case strings.HasPrefix(typeName, "fall_"):
		rf = units.Fall()
		typeName = strings.TrimPrefix(typeName, "fall_")
	}
	sfType = units.FindScaleFactorType(typeName)
	if sfType == nil {
		return nil, nil, nil, false
	}
	return axis, sfType, rf, true
}

func (r *Reader) readOcvDerate(lib *liberty.Library, g *Group) {
	if len(g.Names) == 0 {
		return
	}
	od := liberty.NewOcvDerate(g.Names[0])
	for _, child := range g.Children {
		sub, ok := child.(*Group)
		if !ok || sub.Type != "ocv_derate_factor" {
			continue
		}
		r.readOcvDerateFactor(lib, od, sub)
	}
	lib.AddOcvDerate(od)
}

func (r *Reader) readOcvDerateFactor(lib *liberty.Library, od *liberty.OcvDerate, g *Group) {
	var rfb *units.RiseFallBoth = units.RiseFallBothAll()
	var elb *units.EarlyLateAll = units.EarlyLateAllAll()
	pt := units.PathTypeData()
	for _, child := range g.Children {
		a, ok := child.(*SimpleAttr)
		if !ok {
			continue
		}
		switch a.Name {
		case "rf_type":
			if v := units.FindRiseFallBoth(a.Value.String()); v != nil {
				rfb = v
			}
		case "derate_type":
			if v := units.FindEarlyLateAll(a.Value.String()); v != nil {
				elb = v
			}
		case "path_type":
			if v := units.FindPathType(a.Value.String()); v != nil {
				pt = v
			}
		}
	}
	for _, child := range g.Children {
		sub, ok := child.(*Group)
		if !ok {
			continue
		}
		var rf *units.RiseFall
		switch sub.Type {
		case "cell_rise", "propagation_rise":
			rf = units.Rise()
		case "cell_fall", "propagation_fall":
			rf = units.Fall()
		default:
			continue
		}
		if specific := rfb.AsRiseFall(); specific != nil {
			rf = specific
		}
		m := r.readTableGroup(lib, sub, table.TemplateOcv, units.FindScaleFactorType("cell"), rf)
		if m == nil {
			continue
		}
		for _, rfv := range rfIterate(rfb, rf) {
			for _, elv := range earlyLateIterate(elb) {
				od.SetTable(rfv, elv, pt, m)
			}
		}
	}
}

func rfIterate(rfb *units.RiseFallBoth, fallback *units.RiseFall) []*units.RiseFall {
	if specific := rfb.AsRiseFall(); specific != nil {
		return []*units.RiseFall{specific}
	}
	return []*units.RiseFall{fallback}
}

func earlyLateIterate(elb *units.EarlyLateAll) []*units.EarlyLate {
	if specific := elb.AsEarlyLate(); specific != nil {
		return []*units.EarlyLate{specific}
	}
	return units.EarlyLateRange()
}

// ---- generic helpers shared across the remaining reader_*.go files ----

func complexAttrFloats(a *ComplexAttr) []float64 {
	if len(a.Values) == 0 {
		return nil
	}
	return parseFloatList(a.Values[0].String())
}

func parseFloatList(s string) []float64 {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err == nil {
			out = append(out, f)
		}
	}
	return out
}

func simpleBool(a *SimpleAttr) bool {
	s := a.Value.String()
	return s == "true" || s == "1"
}

// parseFunc parses a Liberty function string against lookup, logging (not
// failing) on a malformed expression, matching the reader's tolerant
// attitude toward a single bad cell in an otherwise good library.
func (r *Reader) parseFunc(raw string, lookup funcexpr.PortLookup, line int) *funcexpr.Expr {
	if raw == "" {
		return nil
	}
	e, err := funcexpr.Parse(raw, lookup)
	if err != nil {
		r.warnf(line, "function %q: %v", raw, err)
		return nil
	}
	return e
}
