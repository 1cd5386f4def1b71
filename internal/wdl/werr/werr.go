// Package werr holds the typed Error used for the handful of conditions
// spec.md sec 7 calls out as genuinely fatal to a caller rather than
// representable as a per-document diag.Diagnostic: the coordinator shutting
// down, the scheduler itself crashing, and the few control-flow errors
// (unsupported scheme, unsupported version) that a caller needs to branch
// on programmatically rather than just display.
package werr

import "errors"

var (
	// ErrNotFound indicates a requested document or declaration does not
	// exist in the graph.
	ErrNotFound = errors.New("not found")
	// ErrCycle indicates an operation was refused because it would
	// introduce a cycle into the document graph.
	ErrCycle = errors.New("would introduce a cycle")
	// ErrUnsupportedVersion indicates a document declared a WDL version
	// this toolkit does not implement.
	ErrUnsupportedVersion = errors.New("unsupported WDL version")
	// ErrUnsupportedScheme indicates a document URI used a scheme other
	// than file or http(s).
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")
	// ErrShuttingDown indicates the coordinator cannot accept new work
	// because it is shutting down.
	ErrShuttingDown = errors.New("coordinator is shutting down")
	// ErrFetchTimeout indicates an HTTPS source fetch exceeded its
	// deadline.
	ErrFetchTimeout = errors.New("source fetch timed out")
)

// Error is a typed error that carries a message plus zero or more cause
// errors. It is compatible with errors.Is/errors.As: calling errors.Is on an
// Error with any of its causes as the target returns true.
type Error struct {
	msg   string
	cause []error
}

// New creates an Error with the given message and optional causes.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.cause = make([]error, len(causes))
		copy(e.cause, causes)
	}
	return e
}

// Error returns the message, with the first cause's message appended if one
// is set and msg is non-empty; if msg is empty but a cause exists, the
// cause's message is returned directly.
func (e Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns the causes of e, or nil if none were set.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}
