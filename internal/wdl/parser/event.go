// Package parser implements a hand-written, error-recovering, event-driven
// descent parser for WDL. It does not build a tree directly; it emits a flat
// stream of events that a separate builder (builder.go) replays into a CST.
// This indirection is what lets parseExpression start parsing a primary
// expression optimistically and later promote it under a new outer node
// (e.g. turning a bare NameRef into the left operand of a binary
// expression) without having to retroactively edit already-emitted events,
// per sec 4.2/sec 9 ("forward_parent mechanism is required").
//
// Grounded on the precedence-climbing Pratt-style expression parser in
// github.com/dekarrin/tunaq's internal/tunascript/parser.go
// (parseExpression/nud/led), generalized from that package's flat
// left-to-right AST into a CST event stream, plus full WDL statement/section
// grammar.
package parser

import (
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/lexer"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// EventKind discriminates the three event shapes the parser can emit.
type EventKind int

const (
	// NodeStarted opens a new node. ForwardParent, if non-zero, is a relative
	// index (forward from this event) to another NodeStarted event that
	// this node should actually be nested under once the tree is built -
	// i.e. this node becomes the *child* of that later-started node. This
	// lets the parser start an expression as a bare primary and decide only
	// after seeing the next token that it is actually the left operand of a
	// binary expression.
	NodeStarted EventKind = iota
	// NodeFinished closes the most recently opened (and not yet closed)
	// node.
	NodeFinished
	// TokenEvent appends a single source token (including trivia) as a
	// leaf under the current node.
	TokenEvent
)

// Event is a single entry in the parser's output stream.
type Event struct {
	Kind EventKind

	// valid when Kind == NodeStarted
	NodeKind       syntax.Kind
	ForwardParent  int // relative index; 0 means "no forward parent"

	// valid when Kind == TokenEvent
	Token lexer.Token
}

// Output is everything a Parse produces: the event stream (for the CST
// builder) plus accumulated parse diagnostics.
type Output struct {
	Events      []Event
	Diagnostics []diag.Diagnostic
	Source      string
}
