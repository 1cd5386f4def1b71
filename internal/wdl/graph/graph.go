// Package graph owns the analyzer's one piece of shared mutable state: the
// document graph (spec.md sec 4.6) and the coordinator that serializes
// structural edits to it while letting independent documents parse and
// analyze concurrently (spec.md sec 5).
package graph

import (
	"sync"

	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

// NodeID identifies one document node in the graph. IDs are never reused
// within a Graph's lifetime, even across removal and GC.
type NodeID int

// ParseState is the outcome of the most recent attempt to produce a tree
// for a node.
type ParseState int

const (
	ParseStateUnparsed ParseState = iota
	ParseStateParsed
	ParseStateError
)

// Node is one document tracked by the graph: its URI, rootedness, the most
// recently fetched/edited source text and its LineIndex, parse and
// analysis results, and any edits still pending application.
type Node struct {
	ID     NodeID
	URI    string
	Rooted bool

	Source          string
	LineIndex       *source.LineIndex
	Pending         []Edit
	PendingEncoding source.Encoding
	// PendingFullText, when non-nil, supersedes Pending and Source entirely
	// on the next Parse: an open-document "full text" snapshot from the
	// editor rather than a range edit.
	PendingFullText *string

	ParseState  ParseState
	ParseErr    error
	Doc         ast.Document
	ParseDiags  []diag.Diagnostic

	Analysis *analysis.Analysis
}

// Graph is the document graph. All structural mutation (add, remove,
// dependency edges, gc) must go through a single goroutine or be guarded
// externally; Graph itself only provides the mutex, not a scheduler — see
// Coordinator for the serialized entry points spec.md sec 5 requires.
type Graph struct {
	mu sync.Mutex

	byURI  map[string]*Node
	byID   map[NodeID]*Node
	nextID NodeID

	// deps[from] is the set of nodes `from` directly depends on (e.g. via
	// import); dependents[to] is the reverse index, every node that
	// directly depends on `to`. Kept as two indices rather than one
	// "reverse edge" so bfs_dependents and gc need no graph transposition.
	deps       map[NodeID]map[NodeID]bool
	dependents map[NodeID]map[NodeID]bool
	cycles     map[[2]NodeID]bool
}

// New creates an empty document graph.
func New() *Graph {
	return &Graph{
		byURI:      map[string]*Node{},
		byID:       map[NodeID]*Node{},
		deps:       map[NodeID]map[NodeID]bool{},
		dependents: map[NodeID]map[NodeID]bool{},
		cycles:     map[[2]NodeID]bool{},
	}
}

// Add returns uri's node, creating it if absent (idempotent). If rooted is
// true, the node's Rooted flag is set (and stays set even if a later call
// passes false).
func (g *Graph) Add(uri string, rooted bool) NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.byURI[uri]; ok {
		if rooted {
			n.Rooted = true
		}
		return n.ID
	}
	n := &Node{ID: g.nextID, URI: uri, Rooted: rooted}
	g.byURI[uri] = n
	g.byID[n.ID] = n
	g.nextID++
	return n.ID
}

// Lookup returns the node for uri, if it exists.
func (g *Graph) Lookup(uri string) (*Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.byURI[uri]
	return n, ok
}

// Node returns the node for id, if it exists.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.byID[id]
	return n, ok
}

// RemoveRoot drops the root mark from every node whose URI has uriPrefix as
// a path prefix, resets each affected node to a fresh unparsed state, and
// returns every node whose analysis was invalidated (that node plus every
// transitive dependent) so the caller can schedule re-analysis or drop them
// entirely during the next gc.
func (g *Graph) RemoveRoot(uriPrefix string) []NodeID {
	g.mu.Lock()
	var affected []NodeID
	for uri, n := range g.byURI {
		if !hasPathPrefix(uri, uriPrefix) {
			continue
		}
		n.Rooted = false
		n.ParseState = ParseStateUnparsed
		n.Doc = ast.Document{}
		n.ParseDiags = nil
		n.Analysis = nil
		n.Pending = nil
		n.PendingFullText = nil
		affected = append(affected, n.ID)
	}
	g.mu.Unlock()

	invalidated := map[NodeID]bool{}
	for _, id := range affected {
		invalidated[id] = true
		g.BFSDependents(id, func(dep NodeID) {
			invalidated[dep] = true
		})
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for id := range invalidated {
		if n, ok := g.byID[id]; ok {
			n.Analysis = nil
		}
	}
	out := make([]NodeID, 0, len(invalidated))
	for id := range invalidated {
		out = append(out, id)
	}
	return out
}

func hasPathPrefix(uri, prefix string) bool {
	if uri == prefix {
		return true
	}
	if len(uri) > len(prefix) && uri[:len(prefix)] == prefix {
		sep := uri[len(prefix)]
		return sep == '/' || sep == '\\'
	}
	return false
}

// AddDependencyEdge records that `from` depends on `to` (e.g. from imports
// to). If doing so would close a cycle (to already transitively depends on
// from), the edge is refused, the pair is recorded in cycles, and ok is
// false.
func (g *Graph) AddDependencyEdge(from, to NodeID) (ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if from == to || g.reachableLocked(to, from) {
		g.cycles[[2]NodeID{from, to}] = true
		return false
	}
	addEdge(g.deps, from, to)
	addEdge(g.dependents, to, from)
	return true
}

// ContainsCycle reports whether adding a from->to dependency edge would
// close a cycle, without adding it.
func (g *Graph) ContainsCycle(from, to NodeID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if from == to {
		return true
	}
	return g.reachableLocked(to, from)
}

func (g *Graph) reachableLocked(from, to NodeID) bool {
	seen := map[NodeID]bool{}
	stack := []NodeID{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		for d := range g.deps[n] {
			stack = append(stack, d)
		}
	}
	return false
}

func addEdge(m map[NodeID]map[NodeID]bool, from, to NodeID) {
	set, ok := m[from]
	if !ok {
		set = map[NodeID]bool{}
		m[from] = set
	}
	set[to] = true
}

// BFSDependents visits, in breadth-first order, every node that
// transitively depends on root (not including root itself), for edit and
// removal propagation.
func (g *Graph) BFSDependents(root NodeID, visit func(NodeID)) {
	g.mu.Lock()
	dependents := make(map[NodeID]map[NodeID]bool, len(g.dependents))
	for k, v := range g.dependents {
		cp := make(map[NodeID]bool, len(v))
		for id := range v {
			cp[id] = true
		}
		dependents[k] = cp
	}
	g.mu.Unlock()

	seen := map[NodeID]bool{root: true}
	queue := []NodeID{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dep := range dependents[cur] {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			visit(dep)
			queue = append(queue, dep)
		}
	}
}

// GC removes every non-rooted node nothing depends on (zero incoming
// dependency edges), repeating until no further removal is possible: a
// removal can leave one of its own dependencies with no remaining
// dependents, newly exposing it as collectible.
func (g *Graph) GC() []NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var removed []NodeID
	for {
		var victim *NodeID
		for id, n := range g.byID {
			if n.Rooted {
				continue
			}
			if len(g.dependents[id]) > 0 {
				continue
			}
			v := id
			victim = &v
			break
		}
		if victim == nil {
			return removed
		}
		id := *victim
		n := g.byID[id]
		delete(g.byURI, n.URI)
		delete(g.byID, id)
		delete(g.dependents, id)

		// id depended on everything in deps[id]; with id gone, it is no
		// longer one of their dependents.
		for to := range g.deps[id] {
			if set, ok := g.dependents[to]; ok {
				delete(set, id)
				if len(set) == 0 {
					delete(g.dependents, to)
				}
			}
		}
		delete(g.deps, id)

		for pair := range g.cycles {
			if pair[0] == id || pair[1] == id {
				delete(g.cycles, pair)
			}
		}
		removed = append(removed, id)
	}
}

// AllNodes returns every node currently in the graph, in no particular
// order.
func (g *Graph) AllNodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Node, 0, len(g.byID))
	for _, n := range g.byID {
		out = append(out, n)
	}
	return out
}
