package table

// TemplateType distinguishes the handful of Liberty template groups that
// share the same axis/variable machinery but are scoped to different
// attribute namespaces (delay tables vs. power tables vs. output-current
// waveforms vs. OCV derating factors).
type TemplateType int

const (
	TemplateDelay TemplateType = iota
	TemplatePower
	TemplateOutputCurrent
	TemplateOcv
)

func (t TemplateType) String() string {
	switch t {
	case TemplateDelay:
		return "delay"
	case TemplatePower:
		return "power"
	case TemplateOutputCurrent:
		return "output_current"
	case TemplateOcv:
		return "ocv"
	default:
		return "unknown"
	}
}

// Template is a named, reusable axis-variable layout (lu_table_template,
// power_lut_template, etc.) that concrete Table instances are built against.
// Multiple TableModels across a library share the same *Template pointer;
// Go's garbage collector retires it once the last referencing model is gone
// (see DESIGN.md's Open Question on reference counting).
type Template struct {
	name     string
	kind     TemplateType
	variable [3]AxisVariable
	order    int
}

// NewTemplate creates a named template with 0 to 3 axis variables, in
// order. Extra AxisUnknown entries beyond the template's declared order are
// ignored.
func NewTemplate(name string, kind TemplateType, variables ...AxisVariable) *Template {
	tpl := &Template{name: name, kind: kind, order: len(variables)}
	for i, v := range variables {
		if i < 3 {
			tpl.variable[i] = v
		}
	}
	return tpl
}

func (tpl *Template) Name() string         { return tpl.name }
func (tpl *Template) Kind() TemplateType   { return tpl.kind }
func (tpl *Template) Order() int           { return tpl.order }
func (tpl *Template) Variable(axis int) AxisVariable {
	if axis < 0 || axis >= 3 {
		return AxisUnknown
	}
	return tpl.variable[axis]
}
