package main

import (
	"fmt"
	"strings"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/sta"
	"github.com/opensta-go/opensta/units"
)

// parseCondUse maps a --cond-use flag value to the CondUse option: "" keeps
// the null (no-fallback) policy, matching Options.CondUse's doc comment.
func parseCondUse(s string) (*units.MinMaxAll, error) {
	if s == "" {
		return nil, nil
	}
	mm := units.FindMinMaxAll(s)
	if mm == nil {
		return nil, fmt.Errorf("unknown --cond-use %q, want min, max, or all", s)
	}
	return mm, nil
}

// parseInstanceFlag parses one "name=cell" --instance flag value.
func parseInstanceFlag(s string) (name, cell string, err error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid --instance %q, want name=cell", s)
	}
	return parts[0], parts[1], nil
}

// elaborateDesign builds a FakeNetwork/FakeGraph out of lib: one leaf
// instance per --instance flag, with one graph edge per timing arc set of
// its cell, directly connecting the arc set's from/to ports' pin vertices.
// This is the "elaborated netlist" the SDF reader/writer annotate against,
// standing in for the real graph builder spec.md §1 calls out of scope.
func elaborateDesign(lib *liberty.Library, instanceFlags []string) (*sta.FakeNetwork, *sta.FakeGraph, error) {
	network := sta.NewFakeNetwork()
	graph := sta.NewFakeGraph()

	for _, flag := range instanceFlags {
		instName, cellName, err := parseInstanceFlag(flag)
		if err != nil {
			return nil, nil, err
		}
		cell := lib.FindCell(cellName)
		if cell == nil {
			return nil, nil, fmt.Errorf("--instance %s: cell %q not found in library", flag, cellName)
		}
		inst := &sta.FakeInstance{InstName: instName, Cell: cellName}
		network.AddInstance(inst)

		pins := map[string]sta.Pin{}
		for _, port := range cell.Ports() {
			pinName := instName + "/" + port.Name()
			pin := &sta.FakePin{PinName: pinName}
			network.AddPin(pin)
			network.AddInstancePin(instName, pin)
			graph.AddPin(pin)
			pins[port.Name()] = pin
		}

		for _, set := range cell.ArcSets() {
			from, to := set.From(), set.To()
			if from == nil || to == nil {
				continue
			}
			fromPin, toPin := pins[from.Name()], pins[to.Name()]
			if fromPin == nil || toPin == nil {
				continue
			}
			edge := &sta.FakeEdge{From_: graph.PinDrvrVertex(fromPin), To_: graph.PinLoadVertex(toPin), Set: set}
			graph.AddEdge(edge, graph.PinLoadVertex(toPin))
		}
	}
	return network, graph, nil
}
