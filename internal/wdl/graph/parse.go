package graph

import (
	"context"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/parser"
	"github.com/dekarrin/wdl/internal/wdl/source"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// Parse produces (or refreshes) id's tree: if the node has a pending full
// text snapshot or queued incremental edits, those are applied first;
// otherwise, if the node has never been fetched, its text is fetched via
// source.Fetch. The resulting text is lexed and parsed, and the node's
// ParseState, Doc, ParseDiags, Source, and LineIndex are updated.
//
// Diagnostics stored here are lex/parse-level only, never validation
// diagnostics: analysis.AnalyzeDocument runs its own validation pass and
// this keeps that replaceable without forcing a reparse, per spec.md sec
// 4.6/4.7's "stored separately" requirement.
func (g *Graph) Parse(ctx context.Context, id NodeID) error {
	g.mu.Lock()
	n, ok := g.byID[id]
	if !ok {
		g.mu.Unlock()
		return nil
	}
	text := n.Source
	haveText := n.LineIndex != nil
	pendingFull := n.PendingFullText
	pending := n.Pending
	enc := n.PendingEncoding
	uri := n.URI
	g.mu.Unlock()

	var err error
	switch {
	case pendingFull != nil:
		text = *pendingFull
	case len(pending) > 0:
		idx := source.NewLineIndex(text)
		text = applyEdits(text, idx, pending, enc)
	case !haveText:
		text, err = source.Fetch(ctx, uri)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok = g.byID[id]
	if !ok {
		return nil
	}
	if err != nil {
		n.ParseState = ParseStateError
		n.ParseErr = err
		return err
	}

	out := parser.Parse(text)
	green := parser.Build(out)
	red := syntax.NewRoot(green)
	doc, _ := ast.CastDocument(red)

	n.Source = text
	n.LineIndex = source.NewLineIndex(text)
	n.Pending = nil
	n.PendingFullText = nil
	n.Doc = doc
	n.ParseDiags = out.Diagnostics
	n.ParseState = ParseStateParsed
	n.ParseErr = nil
	n.Analysis = nil
	return nil
}
