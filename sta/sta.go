// Package sta declares the external-collaborator interfaces for the
// hierarchical network, the elaborated timing graph, and the
// analysis-corner lookup the SDF reader/writer annotate against. The
// graph, path search, and delay calculator themselves are out of scope —
// this package only gives the sdf package something concrete to compile
// and test against.
package sta

import (
	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/units"
)

// Pin is an external network terminal: a top-level port or a leaf
// instance's pin.
type Pin interface {
	Name() string
}

// Instance is a leaf or hierarchical instance in the elaborated netlist.
type Instance interface {
	Name() string
	CellName() string
}

// Network is the hierarchical-netlist collaborator: pin/instance/port
// lookup and hierarchy-escaping conventions.
type Network interface {
	FindPin(name string) Pin
	FindInstance(name string) Instance
	InstancePins(inst Instance) []Pin
	PathName(inst Instance) string
	CellName(inst Instance) string
	IsHierarchical(pin Pin) bool
	IsTopLevelPort(pin Pin) bool
	PathDivider() byte
	PathEscape() byte
	// LeafInstances enumerates every leaf instance in the elaborated
	// design, the order sdf.Writer walks to find annotated arcs worth
	// emitting.
	LeafInstances() []Instance
}

// Vertex is one endpoint (driver or load) of a pin in the timing graph.
type Vertex interface {
	Pin() Pin
}

// Edge is a directed timing-graph edge between two vertices, driven by one
// TimingArcSet (the wire arc-set singleton for interconnect edges, or a
// cell's own arc set for IOPATH/check edges) whose arcs index the edge's
// per-(min,max) delay slots.
type Edge interface {
	From() Vertex
	To() Vertex
	ArcSet() *liberty.TimingArcSet
	SetDelayAnnotationIsIncremental(v bool)
}

// DcalcAnalysisPt is one delay-calculation analysis point (corner x
// min/max), used to pick which arc-delay slot an SDF triple value writes.
type DcalcAnalysisPt interface {
	Index() int
	MinMax() *units.MinMax
}

// Graph is the elaborated timing graph: vertex/edge iteration and the
// arc-delay read/write operations the SDF reader and writer drive.
type Graph interface {
	PinLoadVertex(p Pin) Vertex
	PinDrvrVertex(p Pin) Vertex
	InEdges(v Vertex) []Edge
	// ArcDelay/SetArcDelay/SetArcDelayAnnotated index delay storage by
	// (edge, arcIndex, dcalcAnalysisPtIndex), matching the graph's
	// per-(min,max)-analysis-point delay-slot layout.
	ArcDelay(e Edge, arcIndex, slot int) float64
	SetArcDelay(e Edge, arcIndex, slot int, v float64)
	SetArcDelayAnnotated(e Edge, arcIndex, slot int, v bool)
	IsArcDelayAnnotated(e Edge, arcIndex, slot int) bool
	SetPeriodCheckAnnotation(p Pin, slot int, v float64)
	PeriodCheckValue(p Pin, slot int) float64
	IsPeriodCheckAnnotated(p Pin, slot int) bool
	MinPulseWidthArc(v Vertex, rf *units.RiseFall) (edge Edge, arcIndex int, ok bool)
}

// Report is the line-accurate warn/error sink the SDF reader emits
// diagnostics through, mirroring Liberty's libWarn/libError split.
type Report interface {
	Warn(id string, format string, args ...any)
	Error(format string, args ...any) error
}
