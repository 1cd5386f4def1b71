// Package evalgraph builds, per task or workflow, the directed dependency
// graph spec.md's ordering model describes: declarations, the command
// section, runtime/requirements/hints, and workflow-only conditional,
// scatter, and call statements, linked by reverse-dependency edges (u -> v
// means "v uses u"). A topological sort of the graph gives evaluation
// order; edges that would close a cycle are rejected and reported instead
// of inserted, so the graph is always a DAG once built.
package evalgraph

import (
	"github.com/dekarrin/wdl/internal/util"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// NodeKind discriminates what a Node represents.
type NodeKind int

const (
	InputDecl NodeKind = iota
	PrivateDecl
	OutputDecl
	Command
	Runtime
	Requirements
	Hints
	Conditional
	Scatter
	Call
)

func (k NodeKind) String() string {
	switch k {
	case InputDecl:
		return "input"
	case PrivateDecl:
		return "private"
	case OutputDecl:
		return "output"
	case Command:
		return "command"
	case Runtime:
		return "runtime"
	case Requirements:
		return "requirements"
	case Hints:
		return "hints"
	case Conditional:
		return "conditional"
	case Scatter:
		return "scatter"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// Node is one vertex of an evaluation graph. Name is the declaration,
// call-alias, or scatter-variable name this node is registered under; the
// singleton Command/Runtime/Requirements/Hints nodes use their NodeKind's
// string form as Name. Red is the originating CST node, used for span
// reporting.
type Node struct {
	Kind NodeKind
	Name string
	Red  *syntax.RedNode
}

// Graph is the dependency graph for a single task or workflow body.
type Graph struct {
	Nodes  []Node
	byName map[string]int
	out    [][]int // out[u] = every v such that edge u->v exists ("v uses u")
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{byName: map[string]int{}}
}

// AddNode registers n and returns its index. If a node with the same Name
// already exists, ok is false and the existing index is returned instead of
// adding a duplicate, leaving the "conflicting name" diagnostic to the
// caller, which knows the right message and span for the conflict.
func (g *Graph) AddNode(n Node) (index int, ok bool) {
	if existing, has := g.byName[n.Name]; has {
		return existing, false
	}
	index = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
	g.out = append(g.out, nil)
	g.byName[n.Name] = index
	return index, true
}

// Lookup returns the node index registered under name.
func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.byName[name]
	return i, ok
}

// AddEdge adds edge from->to ("to uses from"). If to is already reachable
// from from is unrelated; what's rejected is the edge that would make
// `from` reachable from `to`, since that is what closes a cycle. ok is
// false and the graph is left unchanged when the edge would create a
// cycle.
func (g *Graph) AddEdge(from, to int) (ok bool) {
	if from == to {
		return false
	}
	if g.reachable(to, from) {
		return false
	}
	g.out[from] = append(g.out[from], to)
	return true
}

func (g *Graph) reachable(from, to int) bool {
	seen := util.NewSet[int]()
	stack := []int{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen.Has(n) {
			continue
		}
		seen.Add(n)
		stack = append(stack, g.out[n]...)
	}
	return false
}

// TopoSort returns the graph's nodes in an order consistent with every edge
// (an edge u->v never has v appear before u). ok is false if the graph
// contains a cycle, which AddEdge should have already prevented; it is
// checked again here defensively rather than trusted blindly.
func (g *Graph) TopoSort() (order []int, ok bool) {
	indeg := make([]int, len(g.Nodes))
	for _, vs := range g.out {
		for _, v := range vs {
			indeg[v]++
		}
	}
	var queue []int
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, v := range g.out[n] {
			indeg[v]--
			if indeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}
	return order, len(order) == len(g.Nodes)
}
