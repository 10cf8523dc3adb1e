// Package callgraph builds a per-file caller to callee graph from extracted
// function bodies and derives Henry-Kafura fan-in, fan-out and information flow.
package callgraph

import (
	"regexp"
	"sort"

	"github.com/DarthSidM/sqm-project/internal/extract"
)

var (
	methodCallPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	plainCallPattern  = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
)

// ignoredCallees are keywords and globals that look like calls but are not edges.
var ignoredCallees = map[string]bool{
	"if":      true,
	"for":     true,
	"while":   true,
	"switch":  true,
	"catch":   true,
	"return":  true,
	"new":     true,
	"console": true,
	"Math":    true,
	"Object":  true,
	"Array":   true,
}

// FunctionMetrics holds the coupling metrics of one detected function.
type FunctionMetrics struct {
	Name            string `json:"name"`
	FanIn           int    `json:"fanIn"`
	FanOut          int    `json:"fanOut"`
	InformationFlow int    `json:"informationFlow"`
}

// Graph is the set of distinct callees of every detected function in one file.
type Graph struct {
	// functions holds detected function names in source order
	functions []string
	callees   map[string]map[string]bool
}

// Build scans each function body for call syntax and records an edge per
// distinct callee. Self calls and ignored names never become edges.
func Build(functions []extract.Block) *Graph {
	g := &Graph{
		functions: make([]string, 0, len(functions)),
		callees:   make(map[string]map[string]bool, len(functions)),
	}

	for _, fn := range functions {
		g.functions = append(g.functions, fn.Name)
		set := make(map[string]bool)

		for _, m := range methodCallPattern.FindAllStringSubmatch(fn.Body, -1) {
			g.addEdge(set, fn.Name, m[1])
		}
		for _, m := range plainCallPattern.FindAllStringSubmatch(fn.Body, -1) {
			g.addEdge(set, fn.Name, m[1])
		}

		g.callees[fn.Name] = set
	}

	return g
}

func (g *Graph) addEdge(set map[string]bool, caller, callee string) {
	if callee == caller || ignoredCallees[callee] {
		return
	}
	set[callee] = true
}

// Callees returns the sorted distinct callees of a function.
func (g *Graph) Callees(name string) []string {
	set := g.callees[name]
	out := make([]string, 0, len(set))
	for callee := range set {
		out = append(out, callee)
	}
	sort.Strings(out)
	return out
}

// Edges returns every caller/callee pair, ordered by caller source position then callee.
func (g *Graph) Edges() [][2]string {
	var edges [][2]string
	for _, caller := range g.functions {
		for _, callee := range g.Callees(caller) {
			edges = append(edges, [2]string{caller, callee})
		}
	}
	return edges
}

// Metrics returns fan-in, fan-out and information flow for every detected
// function, in source order.
//
// Fan-out counts every distinct callee, detected or not. Fan-in counts the
// detected functions whose callee set contains the name.
func (g *Graph) Metrics() []FunctionMetrics {
	fanIn := make(map[string]int)
	for _, set := range g.callees {
		for callee := range set {
			fanIn[callee]++
		}
	}

	out := make([]FunctionMetrics, 0, len(g.functions))
	for _, name := range g.functions {
		in := fanIn[name]
		fanOut := len(g.callees[name])
		out = append(out, FunctionMetrics{
			Name:            name,
			FanIn:           in,
			FanOut:          fanOut,
			InformationFlow: InformationFlow(in, fanOut),
		})
	}
	return out
}

// InformationFlow is the Henry-Kafura coupling value (fanIn * fanOut)^2.
func InformationFlow(fanIn, fanOut int) int {
	p := fanIn * fanOut
	return p * p
}
