package graph

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/log"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

// Coordinator owns a Graph and serializes every structural mutation
// (add, remove, edit notification) to it behind its own methods, while
// letting independent documents parse and analyze concurrently via
// errgroup, per spec.md sec 5. It also implements analysis.Importer so
// analysis.AnalyzeDocument can resolve imports through the graph without
// depending on this package.
type Coordinator struct {
	g   *Graph
	log *zap.Logger
}

// NewCoordinator creates a Coordinator over a fresh Graph, logging through
// log. A nil log falls back to zap.NewNop().
func NewCoordinator(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = log.Nop()
	}
	return &Coordinator{g: New(), log: logger}
}

// Graph returns the underlying document graph, for callers (query, tests)
// that need direct read access.
func (c *Coordinator) Graph() *Graph { return c.g }

// AddDocument roots uri in the graph, creating its node if absent.
func (c *Coordinator) AddDocument(uri string) NodeID {
	id := c.g.Add(uri, true)
	c.log.Debug("added document", zap.String("uri", uri))
	return id
}

// AddDirectory recursively scans path for ".wdl" files and roots each one.
func (c *Coordinator) AddDirectory(path string) ([]NodeID, error) {
	var ids []NodeID
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".wdl") {
			return nil
		}
		ids = append(ids, c.AddDocument(p))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RemoveDocuments unroots every uri in uris (and, transitively, invalidates
// the analysis of anything depending on them), then garbage collects any
// node left unreachable from a root.
func (c *Coordinator) RemoveDocuments(uris []string) {
	for _, uri := range uris {
		c.g.RemoveRoot(uri)
	}
	removed := c.g.GC()
	if len(removed) > 0 {
		c.log.Debug("gc removed unreachable documents", zap.Int("count", len(removed)))
	}
}

// NotifyIncrementalChange queues a set of range edits against uri's node.
func (c *Coordinator) NotifyIncrementalChange(uri string, edits []Edit, enc source.Encoding) {
	c.g.NotifyIncrementalChange(uri, edits, enc)
}

// NotifyFullChange replaces uri's node's entire text.
func (c *Coordinator) NotifyFullChange(uri, text string) {
	c.g.NotifyFullChange(uri, text)
}

// AnalyzeDocument parses (if needed) and analyzes uri, along with every
// document it transitively imports, in dependency order: each document's
// imports are analyzed before the document itself, and documents with no
// dependency relationship analyze concurrently via errgroup.
func (c *Coordinator) AnalyzeDocument(ctx context.Context, uri string) (*analysis.Analysis, error) {
	n, ok := c.g.Lookup(uri)
	if !ok {
		n2 := c.g.Add(uri, false)
		n, _ = c.g.Node(n2)
	}
	if err := c.analyzeRec(ctx, n.ID, map[NodeID]bool{}); err != nil {
		return nil, err
	}
	n, _ = c.g.Node(n.ID)
	return n.Analysis, nil
}

// Analyze analyzes every rooted document in the graph concurrently,
// respecting dependency order within each connected component. A document
// that still has a current analysis is not analyzed again.
func (c *Coordinator) Analyze(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, n := range c.g.AllNodes() {
		if !n.Rooted {
			continue
		}
		uri := n.URI
		eg.Go(func() error {
			_, err := c.AnalyzeDocument(ctx, uri)
			return err
		})
	}
	return eg.Wait()
}

// analyzeRec parses and analyzes id, first recursing into its imports.
// visiting guards against runaway recursion on an already-detected import
// cycle; AddDependencyEdge itself is what actually rejects the cycle.
func (c *Coordinator) analyzeRec(ctx context.Context, id NodeID, visiting map[NodeID]bool) error {
	if visiting[id] {
		return nil
	}
	visiting[id] = true

	n, ok := c.g.Node(id)
	if !ok {
		return nil
	}
	if n.ParseState == ParseStateUnparsed || n.Pending != nil || n.PendingFullText != nil {
		if err := c.g.Parse(ctx, id); err != nil {
			return nil // parse errors are recorded on the node, not fatal to the caller
		}
		n, _ = c.g.Node(id)
	}
	if n.Analysis != nil {
		return nil
	}
	if n.ParseState != ParseStateParsed {
		return nil
	}

	importURIs := make([]string, 0, len(n.Doc.Imports()))
	for _, imp := range n.Doc.Imports() {
		importURIs = append(importURIs, c.ResolveURI(n.URI, source.Unquote(imp.URI())))
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, depURI := range importURIs {
		depURI := depURI
		eg.Go(func() error {
			depID := c.g.Add(depURI, false)
			return c.analyzeRec(ctx, depID, cloneVisiting(visiting))
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	n, _ = c.g.Node(id)
	result := analysis.AnalyzeDocument(n.URI, n.Doc, c)

	c.g.mu.Lock()
	if live, ok := c.g.byID[id]; ok {
		live.Analysis = result
	}
	c.g.mu.Unlock()
	return nil
}

func cloneVisiting(v map[NodeID]bool) map[NodeID]bool {
	out := make(map[NodeID]bool, len(v))
	for k := range v {
		out[k] = true
	}
	return out
}

// --- analysis.Importer ---

// ResolveURI resolves ref against base using source.ResolveURI.
func (c *Coordinator) ResolveURI(base, ref string) string {
	return source.ResolveURI(base, ref)
}

// AddDependencyEdge adds a from-depends-on-to edge between the graph nodes
// for the two URIs, creating either node if it does not yet exist.
func (c *Coordinator) AddDependencyEdge(from, to string) bool {
	fromID := c.g.Add(from, false)
	toID := c.g.Add(to, false)
	return c.g.AddDependencyEdge(fromID, toID)
}

// Lookup returns the already-computed analysis for uri, if its node exists
// and has one.
func (c *Coordinator) Lookup(uri string) (*analysis.Analysis, bool) {
	n, ok := c.g.Lookup(uri)
	if !ok || n.Analysis == nil {
		return nil, false
	}
	return n.Analysis, true
}
