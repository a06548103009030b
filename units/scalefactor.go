package units

// ScaleFactorPvt is the three-axis PVT space scale factors are tabulated
// over: process, voltage, temperature.
type ScaleFactorPvt struct {
	index int
	name  string
}

var (
	sfPvtProcess = &ScaleFactorPvt{index: 0, name: "process"}
	sfPvtVolt    = &ScaleFactorPvt{index: 1, name: "volt"}
	sfPvtTemp    = &ScaleFactorPvt{index: 2, name: "temp"}

	scaleFactorPvtAll = []*ScaleFactorPvt{sfPvtProcess, sfPvtVolt, sfPvtTemp}
)

// ScaleFactorPvtIndexCount sizes per-PVT-axis arrays.
const ScaleFactorPvtIndexCount = 3

func ScaleFactorPvtProcess() *ScaleFactorPvt { return sfPvtProcess }
func ScaleFactorPvtVolt() *ScaleFactorPvt    { return sfPvtVolt }
func ScaleFactorPvtTemp() *ScaleFactorPvt    { return sfPvtTemp }

// ScaleFactorPvtRange returns all three axes in index order.
func ScaleFactorPvtRange() []*ScaleFactorPvt { return scaleFactorPvtAll }

func (p *ScaleFactorPvt) Index() int   { return p.index }
func (p *ScaleFactorPvt) Name() string { return p.name }

// ScaleFactorType names one of the ~20 categories a scale_factors group can
// carry a scale for. Each carries the naming conventions the Liberty reader
// needs to parse its rise/fall suffix or prefix or low/high suffix.
type ScaleFactorType struct {
	index           int
	name            string
	hasRiseFallSuffix bool // e.g. cell_rise / cell_fall
	hasRiseFallPrefix bool // e.g. rise_pin_cap / fall_pin_cap
	hasLowHighSuffix  bool // e.g. min_pulse_width_low / ..._high
}

var scaleFactorTypes = []*ScaleFactorType{
	{name: "cell"},
	{name: "hold", hasRiseFallSuffix: true},
	{name: "setup", hasRiseFallSuffix: true},
	{name: "recovery", hasRiseFallSuffix: true},
	{name: "removal", hasRiseFallSuffix: true},
	{name: "nochange", hasRiseFallSuffix: true},
	{name: "skew", hasRiseFallSuffix: true},
	{name: "min_period"},
	{name: "leakage_power"},
	{name: "internal_power"},
	{name: "transition", hasRiseFallSuffix: true},
	{name: "min_pulse_width", hasLowHighSuffix: true},
	{name: "pin_cap", hasRiseFallPrefix: true},
	{name: "wire_cap"},
	{name: "slope"},
	{name: "fanout_length"},
	{name: "min_period_extension"},
	{name: "width", hasLowHighSuffix: true},
	{name: "period"},
	{name: "constraint", hasRiseFallSuffix: true},
}

var scaleFactorTypeByName = map[string]*ScaleFactorType{}

func init() {
	for i, t := range scaleFactorTypes {
		t.index = i
		scaleFactorTypeByName[t.name] = t
	}
}

// ScaleFactorTypeCount is the number of distinct scale factor categories.
func ScaleFactorTypeCount() int { return len(scaleFactorTypes) }

// FindScaleFactorType looks up a scale factor category by name.
func FindScaleFactorType(name string) *ScaleFactorType {
	return scaleFactorTypeByName[name]
}

// ScaleFactorTypeRange returns every category in stable index order.
func ScaleFactorTypeRange() []*ScaleFactorType { return scaleFactorTypes }

func (t *ScaleFactorType) Index() int              { return t.index }
func (t *ScaleFactorType) Name() string            { return t.name }
func (t *ScaleFactorType) HasRiseFallSuffix() bool { return t.hasRiseFallSuffix }
func (t *ScaleFactorType) HasRiseFallPrefix() bool { return t.hasRiseFallPrefix }
func (t *ScaleFactorType) HasLowHighSuffix() bool  { return t.hasLowHighSuffix }

// PathType distinguishes a clock path from a data path, used by OCV derate
// tables, which are indexed in part by path type.
type PathType struct {
	name string
}

var (
	pathTypeClk  = &PathType{name: "clk"}
	pathTypeData = &PathType{name: "data"}
)

func PathTypeClk() *PathType  { return pathTypeClk }
func PathTypeData() *PathType { return pathTypeData }

// FindPathType looks up clk/data by name.
func FindPathType(name string) *PathType {
	switch name {
	case "clk":
		return pathTypeClk
	case "data":
		return pathTypeData
	default:
		return nil
	}
}

func (p *PathType) Name() string { return p.name }

// WireloadTree enumerates the RC-tree topology a wireload model assumes.
type WireloadTree int

const (
	WireloadTreeBestCase WireloadTree = iota
	WireloadTreeBalanced
	WireloadTreeWorstCase
	WireloadTreeUnknown
)

func (t WireloadTree) String() string {
	switch t {
	case WireloadTreeBestCase:
		return "best_case"
	case WireloadTreeBalanced:
		return "balanced"
	case WireloadTreeWorstCase:
		return "worst_case"
	default:
		return "unknown"
	}
}

// FindWireloadTree looks up a WireloadTree by its Liberty name.
func FindWireloadTree(name string) WireloadTree {
	switch name {
	case "best_case":
		return WireloadTreeBestCase
	case "balanced":
		return WireloadTreeBalanced
	case "worst_case":
		return WireloadTreeWorstCase
	default:
		return WireloadTreeUnknown
	}
}

// WireloadMode enumerates how wireload capacitance is applied across
// hierarchy: at the top level only, on every enclosed net, or split into
// segments.
type WireloadMode int

const (
	WireloadModeTop WireloadMode = iota
	WireloadModeEnclosed
	WireloadModeSegmented
	WireloadModeUnknown
)

func (m WireloadMode) String() string {
	switch m {
	case WireloadModeTop:
		return "top"
	case WireloadModeEnclosed:
		return "enclosed"
	case WireloadModeSegmented:
		return "segmented"
	default:
		return "unknown"
	}
}

// FindWireloadMode looks up a WireloadMode by its Liberty name.
func FindWireloadMode(name string) WireloadMode {
	switch name {
	case "top":
		return WireloadModeTop
	case "enclosed":
		return WireloadModeEnclosed
	case "segmented":
		return WireloadModeSegmented
	default:
		return WireloadModeUnknown
	}
}
