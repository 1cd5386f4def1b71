package main

// note that these are not the internal analysis types; they are the models
// sent to and received from clients of the HTTP/JSON transport.

// OpenDocumentRequest asks the server to root or replace a document's text.
type OpenDocumentRequest struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// PositionModel is a 0-based line/column pair, in UTF-8 code units.
type PositionModel struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SpanModel is a half-open byte range into a document's source text.
type SpanModel struct {
	Start  uint32 `json:"start"`
	Length uint32 `json:"length"`
}

// LabelModel attaches an explanatory message to a secondary span.
type LabelModel struct {
	Span    SpanModel `json:"span"`
	Message string    `json:"message"`
}

// DiagnosticModel is one finding, with its span resolved to line/column for
// the client's convenience.
type DiagnosticModel struct {
	Severity string        `json:"severity"`
	Message  string        `json:"message"`
	Rule     string        `json:"rule,omitempty"`
	Position PositionModel `json:"position"`
	Primary  *SpanModel    `json:"primary,omitempty"`
	Labels   []LabelModel  `json:"labels,omitempty"`
}

// AnalysisResponse is the result of analyzing one document.
type AnalysisResponse struct {
	URI         string            `json:"uri"`
	ParseError  string            `json:"parse_error,omitempty"`
	Diagnostics []DiagnosticModel `json:"diagnostics"`
}

// HoverResponse answers a hover request.
type HoverResponse struct {
	Span     SpanModel `json:"span"`
	Contents string    `json:"contents"`
}

// DefinitionResponse answers a goto-definition request.
type DefinitionResponse struct {
	Span SpanModel `json:"span"`
}

// SemanticTokenModel is one classified span, in source order.
type SemanticTokenModel struct {
	Span SpanModel `json:"span"`
	Type string    `json:"type"`
}
