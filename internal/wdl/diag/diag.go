// Package diag defines the diagnostic shape shared by every stage of
// analysis: lexing, parsing, validation, and per-document analysis never
// raise a Go error for a source-level problem, they append a Diagnostic to
// the document's accumulated list instead (see werr for the small set of
// conditions that really are fatal).
package diag

import "sort"

// Severity classifies how serious a Diagnostic is.
type Severity int

const (
	// Error indicates the document could not be fully analyzed as a
	// result.
	Error Severity = iota
	// Warning indicates a likely problem that does not block analysis.
	Warning
	// Note is an informational diagnostic, such as an unused import.
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range into a document's source text.
type Span struct {
	Start uint32
	Len   uint32
}

// End returns the exclusive end offset of the span.
func (s Span) End() uint32 {
	return s.Start + s.Len
}

// Contains reports whether offset falls within the span.
func (s Span) Contains(offset uint32) bool {
	return offset >= s.Start && offset < s.End()
}

// NewSpan constructs a Span from a start and exclusive end offset.
func NewSpan(start, end uint32) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, Len: end - start}
}

// Label attaches an explanatory message to a secondary span inside a
// Diagnostic, such as "the struct with the conflicting name is here".
type Label struct {
	Span    Span
	Message string
}

// Fix is a suggested, purely textual, fix hint. wdl does not apply fixes
// itself; this is surfaced so that an editor front end can offer it.
type Fix struct {
	Title          string
	Span           Span
	ReplacementTxt string
}

// Diagnostic is a single finding produced anywhere in the pipeline.
type Diagnostic struct {
	Severity Severity
	Message  string
	Rule     string // optional; empty if this diagnostic has no stable rule ID
	Labels   []Label
	Primary  *Span // optional primary highlight span
	FixHint  *Fix  // optional
}

// New creates a bare Diagnostic at the given severity.
func New(sev Severity, message string) Diagnostic {
	return Diagnostic{Severity: sev, Message: message}
}

// Errorf creates an Error-severity diagnostic.
func Errorf(message string) Diagnostic {
	return New(Error, message)
}

// Warningf creates a Warning-severity diagnostic.
func Warningf(message string) Diagnostic {
	return New(Warning, message)
}

// Notef creates a Note-severity diagnostic.
func Notef(message string) Diagnostic {
	return New(Note, message)
}

// WithRule sets the diagnostic's stable rule identifier and returns it for
// chaining.
func (d Diagnostic) WithRule(rule string) Diagnostic {
	d.Rule = rule
	return d
}

// WithPrimary sets the diagnostic's primary highlight span.
func (d Diagnostic) WithPrimary(span Span) Diagnostic {
	d.Primary = &span
	return d
}

// WithLabel appends a labeled secondary span and returns the diagnostic for
// chaining.
func (d Diagnostic) WithLabel(span Span, message string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

// WithFix attaches a fix hint.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.FixHint = &fix
	return d
}

// PrimaryOrFirstLabel returns the diagnostic's primary span if set,
// otherwise the span of its first label, otherwise the zero Span. Used to
// give every diagnostic a sortable position (spec.md 4.7 step 6).
func (d Diagnostic) PrimaryOrFirstLabel() Span {
	if d.Primary != nil {
		return *d.Primary
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Span
	}
	return Span{}
}

// SortBySpan sorts diagnostics by their primary span start, breaking ties by
// span length then message, so that output is deterministic across runs
// (spec.md sec 5 ordering guarantee 1).
func SortBySpan(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		si, sj := diags[i].PrimaryOrFirstLabel(), diags[j].PrimaryOrFirstLabel()
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.Len != sj.Len {
			return si.Len < sj.Len
		}
		return diags[i].Message < diags[j].Message
	})
}

// HasErrors returns whether any diagnostic in the slice is Error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
