package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dekarrin/wdl"
	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/query"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

// decodeDocParam decodes a {doc} path segment back to a document URI.
// URIs can contain characters (":", "/") that don't survive as a raw path
// segment, so callers base64url-encode them before placing them in the URL.
func decodeDocParam(val string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(val)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// APIPathPrefix is the prefix of every route this server answers.
const APIPathPrefix = "/api/v1"

// EndpointFunc handles one request and returns the result to write back.
type EndpointFunc func(req *http.Request) endpointResult

// API holds the analyzer the query endpoints are answered against.
type API struct {
	Analyzer *wdl.Analyzer
	Logger   *zap.Logger
}

func (api API) endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer api.panicTo500(w, req)
		result := ep(req)
		result.writeResponse(w, req, api.Logger)
	}
}

func (api API) panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		jsonErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\n%s", panicErr, string(debug.Stack())),
		).writeResponse(w, req, api.Logger)
	}
}

// requireDocParam reads the {doc} path segment and base64url-decodes it back
// to a document URI.
func requireDocParam(r *http.Request) (string, error) {
	val := chi.URLParam(r, "doc")
	if val == "" {
		return "", fmt.Errorf("doc: parameter does not exist")
	}
	uri, err := decodeDocParam(val)
	if err != nil {
		return "", fmt.Errorf("doc: %w", err)
	}
	return uri, nil
}

func requirePositionParams(r *http.Request) (source.Position, error) {
	lineStr := r.URL.Query().Get("line")
	colStr := r.URL.Query().Get("column")
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return source.Position{}, fmt.Errorf("line: %w", err)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return source.Position{}, fmt.Errorf("column: %w", err)
	}
	return source.Position{Line: line, Column: col}, nil
}

// HTTPOpenDocument returns a HandlerFunc that roots or replaces a
// document's full text and analyzes it.
func (api API) HTTPOpenDocument() http.HandlerFunc {
	return api.endpoint(api.epOpenDocument)
}

func (api API) epOpenDocument(req *http.Request) endpointResult {
	var body OpenDocumentRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}
	if body.URI == "" {
		return jsonBadRequest("uri: property is empty or missing from request", "empty uri")
	}

	api.Analyzer.AddDocument(body.URI)
	api.Analyzer.NotifyFullChange(body.URI, body.Text)

	a, err := api.Analyzer.AnalyzeDocument(req.Context(), body.URI)
	if err != nil {
		return jsonInternalServerError(err.Error())
	}

	idx, _ := api.Analyzer.LineIndex(body.URI)
	return jsonOK(analysisResponse(body.URI, idx, nil, a), "opened and analyzed %s", body.URI)
}

// HTTPCloseDocument returns a HandlerFunc that unroots a document.
func (api API) HTTPCloseDocument() http.HandlerFunc {
	return api.endpoint(api.epCloseDocument)
}

func (api API) epCloseDocument(req *http.Request) endpointResult {
	uri, err := requireDocParam(req)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}
	api.Analyzer.RemoveDocuments([]string{uri})
	return jsonNoContent("closed %s", uri)
}

// HTTPAnalyzeDocument returns a HandlerFunc that re-runs analysis on an
// already-open document and returns its diagnostics.
func (api API) HTTPAnalyzeDocument() http.HandlerFunc {
	return api.endpoint(api.epAnalyzeDocument)
}

func (api API) epAnalyzeDocument(req *http.Request) endpointResult {
	uri, err := requireDocParam(req)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	a, err := api.Analyzer.AnalyzeDocument(req.Context(), uri)
	if err != nil {
		return jsonInternalServerError(err.Error())
	}
	idx, ok := api.Analyzer.LineIndex(uri)
	if !ok {
		return jsonNotFound("document %s not open", uri)
	}
	return jsonOK(analysisResponse(uri, idx, nil, a), "analyzed %s", uri)
}

// HTTPHover returns a HandlerFunc answering a hover request at ?line=&column=.
func (api API) HTTPHover() http.HandlerFunc {
	return api.endpoint(api.epHover)
}

func (api API) epHover(req *http.Request) endpointResult {
	uri, err := requireDocParam(req)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}
	pos, err := requirePositionParams(req)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	h, ok, err := api.Analyzer.Hover(uri, pos, source.UTF8)
	if err != nil {
		return jsonNotFound(err.Error())
	}
	if !ok {
		return jsonNotFound("no hover info at %d:%d in %s", pos.Line, pos.Column, uri)
	}
	return jsonOK(HoverResponse{Span: spanModel(h.Span), Contents: h.Contents}, "hover at %d:%d in %s", pos.Line, pos.Column, uri)
}

// HTTPGotoDefinition returns a HandlerFunc answering a goto-definition
// request at ?line=&column=.
func (api API) HTTPGotoDefinition() http.HandlerFunc {
	return api.endpoint(api.epGotoDefinition)
}

func (api API) epGotoDefinition(req *http.Request) endpointResult {
	uri, err := requireDocParam(req)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}
	pos, err := requirePositionParams(req)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	span, ok, err := api.Analyzer.GotoDefinition(uri, pos, source.UTF8)
	if err != nil {
		return jsonNotFound(err.Error())
	}
	if !ok {
		return jsonNotFound("no definition at %d:%d in %s", pos.Line, pos.Column, uri)
	}
	return jsonOK(DefinitionResponse{Span: spanModel(span)}, "definition for %d:%d in %s", pos.Line, pos.Column, uri)
}

// HTTPSemanticTokens returns a HandlerFunc that classifies every token in
// an open document.
func (api API) HTTPSemanticTokens() http.HandlerFunc {
	return api.endpoint(api.epSemanticTokens)
}

func (api API) epSemanticTokens(req *http.Request) endpointResult {
	uri, err := requireDocParam(req)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	toks, err := api.Analyzer.SemanticTokens(uri)
	if err != nil {
		return jsonNotFound(err.Error())
	}

	resp := make([]SemanticTokenModel, len(toks))
	legend := query.LegendTypes()
	for i, t := range toks {
		typeName := "unknown"
		if int(t.Type) >= 0 && int(t.Type) < len(legend) {
			typeName = legend[t.Type]
		}
		resp[i] = SemanticTokenModel{Span: spanModel(t.Span), Type: typeName}
	}
	return jsonOK(resp, "tokenized %s", uri)
}

func spanModel(s diag.Span) SpanModel {
	return SpanModel{Start: s.Start, Length: s.Len}
}

func analysisResponse(uri string, idx *source.LineIndex, parseErr error, a *analysis.Analysis) AnalysisResponse {
	resp := AnalysisResponse{URI: uri}
	if parseErr != nil {
		resp.ParseError = parseErr.Error()
	}
	if a == nil {
		return resp
	}
	for _, d := range a.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, diagnosticModel(d, idx))
	}
	return resp
}

func diagnosticModel(d diag.Diagnostic, idx *source.LineIndex) DiagnosticModel {
	span := d.PrimaryOrFirstLabel()
	pos := source.Position{}
	if idx != nil {
		pos = idx.Position(int(span.Start), source.UTF8)
	}
	m := DiagnosticModel{
		Severity: d.Severity.String(),
		Message:  d.Message,
		Rule:     d.Rule,
		Position: PositionModel{Line: pos.Line, Column: pos.Column},
	}
	if d.Primary != nil {
		sm := spanModel(*d.Primary)
		m.Primary = &sm
	}
	for _, l := range d.Labels {
		m.Labels = append(m.Labels, LabelModel{Span: spanModel(l.Span), Message: l.Message})
	}
	return m
}
