// Package wdl is the top-level facade over the analysis toolkit: it wires
// the document graph coordinator, per-document analyzer, and editor
// queries behind the external operations of spec.md sec 6, converting
// between editor-facing line/column positions and the internal byte
// offsets every other package operates on.
package wdl

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/config"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/graph"
	"github.com/dekarrin/wdl/internal/wdl/query"
	"github.com/dekarrin/wdl/internal/wdl/source"
	"github.com/dekarrin/wdl/internal/wdl/werr"
)

// Analyzer is the toolkit's external entry point: one document graph plus
// its configuration, of which the unused-import severity is applied to
// analysis results. All methods are safe to call concurrently.
type Analyzer struct {
	coord *graph.Coordinator
	cfg   config.Config
}

// New creates an Analyzer. A zero-valued cfg is filled with defaults; a
// nil logger discards all log output.
func New(cfg config.Config, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		coord: graph.NewCoordinator(logger),
		cfg:   cfg.FillDefaults(),
	}
}

// AddDocument roots uri, per spec.md sec 6.
func (a *Analyzer) AddDocument(uri string) {
	a.coord.AddDocument(uri)
}

// AddDirectory recursively roots every ".wdl" file under path.
func (a *Analyzer) AddDirectory(path string) error {
	_, err := a.coord.AddDirectory(path)
	return err
}

// RemoveDocuments unroots every uri in uris and garbage collects anything
// left unreachable.
func (a *Analyzer) RemoveDocuments(uris []string) {
	a.coord.RemoveDocuments(uris)
}

// NotifyIncrementalChange queues range edits against uri, in the given
// position encoding, for application on the next analysis.
func (a *Analyzer) NotifyIncrementalChange(uri string, edits []graph.Edit, enc source.Encoding) {
	a.coord.NotifyIncrementalChange(uri, edits, enc)
}

// NotifyFullChange replaces uri's entire source text, discarding any
// queued incremental edits.
func (a *Analyzer) NotifyFullChange(uri, text string) {
	a.coord.NotifyFullChange(uri, text)
}

// AnalysisResult is one document's outcome from Analyze, per spec.md
// sec 6's AnalysisResult { uri, document?, parse_error? }.
type AnalysisResult struct {
	URI       string
	Analysis  *analysis.Analysis
	ParseErr  error
	LineIndex *source.LineIndex
}

// AnalyzeDocument parses (if needed) and analyzes uri and everything it
// transitively imports, applying the configured unused-import severity to
// the result before returning it.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, uri string) (*analysis.Analysis, error) {
	result, err := a.coord.AnalyzeDocument(ctx, uri)
	if err != nil {
		return nil, err
	}
	if result != nil {
		sev, sevErr := a.cfg.Diagnostics.Severity()
		if sevErr == nil {
			config.ApplyUnusedImportSeverity(result.Diagnostics, sev)
		}
	}
	return result, nil
}

// Analyze analyzes every rooted document that has no current analysis (a
// document whose analysis is still current keeps it), returning one
// AnalysisResult per root.
func (a *Analyzer) Analyze(ctx context.Context) ([]AnalysisResult, error) {
	if err := a.coord.Analyze(ctx); err != nil {
		return nil, err
	}
	sev, sevErr := a.cfg.Diagnostics.Severity()

	var results []AnalysisResult
	for _, n := range a.coord.Graph().AllNodes() {
		if !n.Rooted {
			continue
		}
		if sevErr == nil && n.Analysis != nil {
			config.ApplyUnusedImportSeverity(n.Analysis.Diagnostics, sev)
		}
		results = append(results, AnalysisResult{
			URI:       n.URI,
			Analysis:  n.Analysis,
			ParseErr:  n.ParseErr,
			LineIndex: n.LineIndex,
		})
	}
	return results, nil
}

// LineIndex returns uri's current LineIndex, for callers (cmd/wdlrepl,
// cmd/wdlcheck) that need to resolve spans back to line/column
// themselves, such as when rendering diagnostics.
func (a *Analyzer) LineIndex(uri string) (*source.LineIndex, bool) {
	n, ok := a.coord.Graph().Lookup(uri)
	if !ok {
		return nil, false
	}
	return n.LineIndex, n.LineIndex != nil
}

// resolveOffset finds uri's node and converts pos (in the given encoding)
// to a byte offset, failing if the node has never been parsed or analyzed.
func (a *Analyzer) resolveOffset(uri string, pos source.Position, enc source.Encoding) (*graph.Node, uint32, error) {
	n, ok := a.coord.Graph().Lookup(uri)
	if !ok || n.LineIndex == nil {
		return nil, 0, werr.New(fmt.Sprintf("document not loaded: %s", uri), werr.ErrNotFound)
	}
	return n, uint32(n.LineIndex.Offset(pos, enc)), nil
}

// GotoDefinition resolves the identifier at pos in uri to the span of its
// declaration. ok is false if uri has not been analyzed or no identifier
// resolves at pos.
func (a *Analyzer) GotoDefinition(uri string, pos source.Position, enc source.Encoding) (diag.Span, bool, error) {
	n, offset, err := a.resolveOffset(uri, pos, enc)
	if err != nil {
		return diag.Span{}, false, err
	}
	if n.Analysis == nil {
		return diag.Span{}, false, nil
	}
	span, ok := query.GotoDefinition(n.Doc, n.Analysis, offset)
	return span, ok, nil
}

// Hover answers a hover request at pos in uri.
func (a *Analyzer) Hover(uri string, pos source.Position, enc source.Encoding) (query.Hover, bool, error) {
	n, offset, err := a.resolveOffset(uri, pos, enc)
	if err != nil {
		return query.Hover{}, false, err
	}
	if n.Analysis == nil {
		return query.Hover{}, false, nil
	}
	h, ok := query.HoverInfo(n.Doc, n.Analysis, offset)
	return h, ok, nil
}

// SemanticTokens classifies every token in uri's current parse tree.
func (a *Analyzer) SemanticTokens(uri string) ([]query.SemanticToken, error) {
	n, ok := a.coord.Graph().Lookup(uri)
	if !ok || n.Doc.Red == nil {
		return nil, werr.New(fmt.Sprintf("document not loaded: %s", uri), werr.ErrNotFound)
	}
	return query.SemanticTokens(n.Doc.Red), nil
}
