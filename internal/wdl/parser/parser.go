package parser

import (
	"fmt"

	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/lexer"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// Marker refers to a NodeStarted event that has not yet been closed.
type Marker struct {
	pos int
}

// CompletedMarker refers to a node that has been closed with a real kind. It
// can be wrapped in a new outer node via precede, without touching any event
// already emitted for it or its children.
type CompletedMarker struct {
	startPos int
}

type parser struct {
	source string
	toks   []lexer.Token
	pos    int // index into toks, including trivia

	ev    []Event
	diags []diag.Diagnostic

	// version is the declared WDL version, defaulted to the newest
	// supported version until a version statement is parsed. It is only
	// checked for VersionUnknown, which wraps the rest of the document as
	// Unparsed; the grammar itself (task variable, hints section, directory
	// type, struct literals) is the same for every supported version.
	version Version
}

// Version is the declared WDL document version (sec 4.2). The parser uses it
// only to detect an unsupported version.
type Version int

const (
	VersionUnknown Version = iota
	Version1_0
	Version1_1
	Version1_2
)

func versionFromText(text string) (Version, bool) {
	switch text {
	case "1.0":
		return Version1_0, true
	case "1.1":
		return Version1_1, true
	case "1.2":
		return Version1_2, true
	default:
		return VersionUnknown, false
	}
}

// Parse lexes and parses a complete WDL document, returning the event stream
// a CST builder can replay plus any diagnostics raised during parsing.
func Parse(source string) Output {
	p := &parser{
		source:  source,
		toks:    lexer.Lex(source),
		version: Version1_2, // newest supported grammar until told otherwise
	}
	m := p.open()
	p.parseDocument()
	p.close(m, syntax.RootNode)
	return Output{Events: p.ev, Diagnostics: p.diags, Source: source}
}

// --- event plumbing ---

func (p *parser) open() Marker {
	pos := len(p.ev)
	p.ev = append(p.ev, Event{Kind: NodeStarted, NodeKind: syntax.Abandoned})
	return Marker{pos: pos}
}

func (p *parser) close(m Marker, kind syntax.Kind) CompletedMarker {
	p.ev[m.pos].NodeKind = kind
	p.ev = append(p.ev, Event{Kind: NodeFinished})
	return CompletedMarker{startPos: m.pos}
}

func (p *parser) abandon(m Marker) {
	p.ev[m.pos].NodeKind = syntax.Abandoned
	p.ev = append(p.ev, Event{Kind: NodeFinished})
}

// precede opens a new marker that will become the parent of cm once closed,
// without disturbing any event already emitted for cm (sec 4.2/sec 9).
func (p *parser) precede(cm CompletedMarker) Marker {
	newM := p.open()
	p.ev[cm.startPos].ForwardParent = newM.pos - cm.startPos
	return newM
}

// --- token stream ---

func (p *parser) bumpAny() {
	tok := p.toks[p.pos]
	p.ev = append(p.ev, Event{Kind: TokenEvent, Token: tok})
	p.pos++
}

func (p *parser) skipTrivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind.IsTrivia() {
		p.bumpAny()
	}
}

// bump consumes any leading trivia then the next significant token, if any.
func (p *parser) bump() {
	p.skipTrivia()
	if p.pos < len(p.toks) {
		p.bumpAny()
	}
}

// bumpAs consumes the next significant token like bump, but relabels its
// kind to kind in the emitted tree: used where the lexer's kind is ambiguous
// with its contextual meaning (the implicit `task` variable lexes as
// TaskKeyword but is emitted as TaskVariableKeyword).
func (p *parser) bumpAs(kind syntax.Kind) {
	p.skipTrivia()
	if p.pos >= len(p.toks) {
		return
	}
	tok := p.toks[p.pos]
	tok.Kind = kind
	p.ev = append(p.ev, Event{Kind: TokenEvent, Token: tok})
	p.pos++
}

// peekAt returns the nth significant token ahead (0 = next), without
// consuming anything.
func (p *parser) peekAt(n int) (lexer.Token, bool) {
	idx := p.pos
	count := 0
	for idx < len(p.toks) {
		if !p.toks[idx].Kind.IsTrivia() {
			if count == n {
				return p.toks[idx], true
			}
			count++
		}
		idx++
	}
	return lexer.Token{}, false
}

func (p *parser) peek() (syntax.Kind, bool) {
	t, ok := p.peekAt(0)
	if !ok {
		return syntax.Unknown, false
	}
	return t.Kind, true
}

func (p *parser) at(kind syntax.Kind) bool {
	k, ok := p.peek()
	return ok && k == kind
}

func (p *parser) atAny(kinds ...syntax.Kind) bool {
	k, ok := p.peek()
	if !ok {
		return false
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (p *parser) atEnd() bool {
	_, ok := p.peek()
	return !ok
}

// expect bumps the next significant token if it matches kind, else records a
// diagnostic and leaves the stream unconsumed so the caller's own recovery
// can decide how to proceed.
func (p *parser) expect(kind syntax.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	p.errHere("expected %s", kind)
	return false
}

func tokenAt(kind syntax.Kind, start, end uint32) lexer.Token {
	return lexer.Token{Kind: kind, Span: diag.NewSpan(start, end)}
}

func (p *parser) currentSpan() diag.Span {
	if t, ok := p.peekAt(0); ok {
		return t.Span
	}
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		return diag.NewSpan(last.Span.End(), 0)
	}
	return diag.NewSpan(0, 0)
}

func (p *parser) errHere(format string, args ...interface{}) {
	p.diags = append(p.diags, diag.Errorf(fmt.Sprintf(format, args...)).WithPrimary(p.currentSpan()))
}

// recoverUnexpected wraps exactly one offending token in an Abandoned node
// so error recovery always makes forward progress and the source text
// remains fully accounted for in the tree (sec 4.2).
func (p *parser) recoverUnexpected(context string) {
	if k, ok := p.peek(); ok {
		p.errHere("unexpected %s in %s", k, context)
	} else {
		p.errHere("unexpected end of input in %s", context)
	}
	m := p.open()
	if !p.atEnd() {
		p.bump()
	}
	p.abandon(m)
}
