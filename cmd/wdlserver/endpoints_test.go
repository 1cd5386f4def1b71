package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/wdl"
	"github.com/dekarrin/wdl/internal/wdl/config"
	wdlLog "github.com/dekarrin/wdl/internal/wdl/log"
)

func newTestAPI(t *testing.T) API {
	t.Helper()
	logger, err := wdlLog.New(false)
	require.NoError(t, err)
	return API{Analyzer: wdl.New(config.Config{}, logger), Logger: logger}
}

func docParam(uri string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(uri))
}

func withDocParam(req *http.Request, doc string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("doc", doc)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

const sampleDoc = `version 1.2
task greet {
  input { String name }
  command <<< >>>
  output { String out = name }
}
`

func TestOpenDocument_analyzesAndReturnsDiagnostics(t *testing.T) {
	api := newTestAPI(t)

	body, err := json.Marshal(OpenDocumentRequest{URI: "file:///greet.wdl", Text: sampleDoc})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	api.HTTPOpenDocument().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "file:///greet.wdl", resp.URI)
	assert.Empty(t, resp.Diagnostics)
}

func TestOpenDocument_rejectsMissingURI(t *testing.T) {
	api := newTestAPI(t)

	body, err := json.Marshal(OpenDocumentRequest{Text: sampleDoc})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	api.HTTPOpenDocument().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHover_returnsTaskSignatureForCallTarget(t *testing.T) {
	api := newTestAPI(t)
	uri := "file:///greet.wdl"
	api.Analyzer.AddDocument(uri)
	api.Analyzer.NotifyFullChange(uri, sampleDoc+"\nworkflow w {\n  call greet { input: name = \"x\" }\n}\n")
	_, err := api.Analyzer.AnalyzeDocument(context.Background(), uri)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docParam(uri)+"/hover?line=8&column=7", nil)
	req = withDocParam(req, docParam(uri))
	w := httptest.NewRecorder()

	api.HTTPHover().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HoverResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Contents, "task greet")
}

func TestHover_notFoundForUnopenedDocument(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docParam("file:///missing.wdl")+"/hover?line=0&column=0", nil)
	req = withDocParam(req, docParam("file:///missing.wdl"))
	w := httptest.NewRecorder()

	api.HTTPHover().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSemanticTokens_returnsClassifiedSpans(t *testing.T) {
	api := newTestAPI(t)
	uri := "file:///greet.wdl"
	api.Analyzer.AddDocument(uri)
	api.Analyzer.NotifyFullChange(uri, sampleDoc)
	_, err := api.Analyzer.AnalyzeDocument(context.Background(), uri)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docParam(uri)+"/tokens", nil)
	req = withDocParam(req, docParam(uri))
	w := httptest.NewRecorder()

	api.HTTPSemanticTokens().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []SemanticTokenModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp)
}

func TestCloseDocument_unroots(t *testing.T) {
	api := newTestAPI(t)
	uri := "file:///greet.wdl"
	api.Analyzer.AddDocument(uri)
	api.Analyzer.NotifyFullChange(uri, sampleDoc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+docParam(uri), nil)
	req = withDocParam(req, docParam(uri))
	w := httptest.NewRecorder()

	api.HTTPCloseDocument().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
