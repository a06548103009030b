// Package sdf implements the SDF (Standard Delay Format) back-annotation
// layer: a lexer/parser for SDF's nested-parenthesis syntax, a Reader that
// locates timing arcs in an elaborated graph (via the sta package's
// collaborator interfaces) and overwrites their delays, and a Writer that
// emits the graph's annotated delays back out as SDF text.
package sdf

// Group is one parenthesized SDF construct: `(KEYWORD arg arg ...)`, where
// each arg is either a bare/quoted token or another nested Group — SDF's
// triples `(0.3:0.3:0.3)`, edge specs `(posedge CLK)`, and top-level
// sections all share this one shape, unlike Liberty's five-way Stmt split,
// because SDF's grammar is uniformly parenthesized.
type Group struct {
	Keyword string
	Args    []Arg
	LineNo  int
}

// Arg is one argument inside a Group: either a bare/quoted text token or a
// nested Group.
type Arg struct {
	Text    string
	Quoted  bool
	Nested  *Group
}

func (a Arg) IsGroup() bool { return a.Nested != nil }

// Text args in order, skipping nested groups.
func (g *Group) textArgs() []string {
	var out []string
	for _, a := range g.Args {
		if !a.IsGroup() {
			out = append(out, a.Text)
		}
	}
	return out
}

// groupArgs returns the Group-valued args, in order.
func (g *Group) groupArgs() []*Group {
	var out []*Group
	for _, a := range g.Args {
		if a.IsGroup() {
			out = append(out, a.Nested)
		}
	}
	return out
}

// find returns the first nested group with the given keyword, or nil.
func (g *Group) find(keyword string) *Group {
	for _, a := range g.Args {
		if a.IsGroup() && a.Nested.Keyword == keyword {
			return a.Nested
		}
	}
	return nil
}
