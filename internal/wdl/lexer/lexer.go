package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

var keywords = map[string]syntax.Kind{
	"Array":          syntax.ArrayTypeKeyword,
	"Boolean":        syntax.BooleanTypeKeyword,
	"File":           syntax.FileTypeKeyword,
	"Float":          syntax.FloatTypeKeyword,
	"Int":            syntax.IntTypeKeyword,
	"Map":            syntax.MapTypeKeyword,
	"Object":         syntax.ObjectTypeKeyword,
	"Pair":           syntax.PairTypeKeyword,
	"String":         syntax.StringTypeKeyword,
	"Directory":      syntax.DirectoryTypeKeyword,
	"after":          syntax.AfterKeyword,
	"alias":          syntax.AliasKeyword,
	"as":             syntax.AsKeyword,
	"call":           syntax.CallKeyword,
	"command":        syntax.CommandKeyword,
	"else":           syntax.ElseKeyword,
	"false":          syntax.FalseKeyword,
	"if":             syntax.IfKeyword,
	"in":             syntax.InKeyword,
	"import":         syntax.ImportKeyword,
	"input":          syntax.InputKeyword,
	"meta":           syntax.MetaKeyword,
	"None":           syntax.NoneKeyword,
	"null":           syntax.NullKeyword,
	"object":         syntax.ObjectKeyword,
	"output":         syntax.OutputKeyword,
	"parameter_meta": syntax.ParameterMetaKeyword,
	"runtime":        syntax.RuntimeKeyword,
	"scatter":        syntax.ScatterKeyword,
	"struct":         syntax.StructKeyword,
	"task":           syntax.TaskKeyword,
	"then":           syntax.ThenKeyword,
	"true":           syntax.TrueKeyword,
	"version":        syntax.VersionKeyword,
	"workflow":       syntax.WorkflowKeyword,
	"hints":          syntax.HintsKeyword,
	"requirements":   syntax.RequirementsKeyword,
}

type modeKind int

const (
	modeDefault modeKind = iota
	modeString
	modeCommandBrace
	modeHeredoc
	modePlaceholder
)

type frame struct {
	mode        modeKind
	quote       byte // modeString only: '\'' or '"'
	allowDollar bool // modeString only: whether ${ in addition to ~{ opens a placeholder
	braceDepth  int  // modePlaceholder only: nesting of {} not belonging to the closing brace
}

type lexer struct {
	src    string
	pos    int
	out    []Token
	stack  []frame
	prevSignificant syntax.Kind // last non-trivia token kind emitted, for "command {"/"command <<<" detection
}

// Lex tokenizes source in full and returns every token, including trivia
// (whitespace, comments), in source order. The lexer never fails: malformed
// or unrecognized byte sequences are emitted as a syntax.Unknown token so
// that downstream stages can still recover (sec 4.1).
func Lex(source string) []Token {
	l := &lexer{src: source, stack: []frame{{mode: modeDefault}}}
	for l.pos < len(l.src) {
		l.step()
	}
	return l.out
}

func (l *lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *lexer) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *lexer) pop() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

func (l *lexer) emit(kind syntax.Kind, start int) {
	l.out = append(l.out, Token{Kind: kind, Span: spanOf(start, l.pos)})
	if !kind.IsTrivia() {
		l.prevSignificant = kind
	}
}

func spanOf(start, end int) diag.Span {
	return diag.Span{Start: uint32(start), Len: uint32(end - start)}
}

func (l *lexer) step() {
	switch l.top().mode {
	case modeDefault, modePlaceholder:
		l.stepDefault()
	case modeString:
		l.stepString()
	case modeCommandBrace, modeHeredoc:
		l.stepCommand()
	}
}

func (l *lexer) stepDefault() {
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case r == ' ' || r == '\t' || r == '\r' || r == '\n':
		l.pos += size
		for l.pos < len(l.src) {
			r2, sz2 := utf8.DecodeRuneInString(l.src[l.pos:])
			if r2 == ' ' || r2 == '\t' || r2 == '\r' || r2 == '\n' {
				l.pos += sz2
				continue
			}
			break
		}
		l.emit(syntax.Whitespace, start)
		return
	case r == '#':
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		l.emit(syntax.Comment, start)
		return
	case r == '"' || r == '\'':
		l.pos += size
		kind := syntax.DoubleQuote
		if r == '\'' {
			kind = syntax.SingleQuote
		}
		l.emit(kind, start)
		l.push(frame{mode: modeString, quote: byte(r), allowDollar: true})
		return
	case unicode.IsDigit(r) && l.prevSignificant == syntax.VersionKeyword:
		l.lexVersionNumber(start)
		return
	case unicode.IsDigit(r):
		l.lexNumber(start)
		return
	case isIdentStart(r):
		l.lexIdentOrKeyword(start)
		return
	case r == '}' && l.top().mode == modePlaceholder:
		if l.top().braceDepth > 0 {
			l.top().braceDepth--
			l.pos += size
			l.emit(syntax.CloseBrace, start)
			return
		}
		l.pos += size
		l.emit(syntax.CloseBrace, start)
		l.pop() // back to the containing string/command/heredoc frame
		return
	case r == '{':
		l.pos += size
		l.emit(syntax.OpenBrace, start)
		if l.top().mode == modePlaceholder {
			l.top().braceDepth++
		} else if l.prevSignificant == syntax.CommandKeyword {
			l.push(frame{mode: modeCommandBrace})
		}
		return
	}

	if kind, length, ok := matchOperator(l.src[l.pos:]); ok {
		l.pos += length
		l.emit(kind, start)
		if kind == syntax.OpenHeredoc {
			l.push(frame{mode: modeHeredoc})
		}
		return
	}

	// unrecognized byte; consume one rune as Unknown so the lexer always
	// makes forward progress.
	l.pos += size
	l.emit(syntax.Unknown, start)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *lexer) lexIdentOrKeyword(start int) {
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += sz
	}
	text := l.src[start:l.pos]

	if kw, ok := keywords[text]; ok {
		l.emit(kw, start)
		return
	}
	l.emit(syntax.Ident, start)
}

// lexVersionNumber consumes the version identifier immediately following a
// `version` keyword (e.g. "1.0", "1.1", "1.2") as a single dedicated token,
// distinct from a Float literal, since it is not an expression.
func (l *lexer) lexVersionNumber(start int) {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if (b >= '0' && b <= '9') || b == '.' {
			l.pos++
			continue
		}
		break
	}
	l.emit(syntax.VersionToken, start)
}

func (l *lexer) lexNumber(start int) {
	isFloat := false
	for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && unicode.IsDigit(rune(l.src[l.pos+1])) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && unicode.IsDigit(rune(l.src[p])) {
			isFloat = true
			l.pos = p
			for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	if isFloat {
		l.emit(syntax.Float, start)
	} else {
		l.emit(syntax.Integer, start)
	}
}

// stepString handles text inside a quoted string literal: accumulating
// literal text until an unescaped closing quote or a placeholder opener.
func (l *lexer) stepString() {
	f := l.top()
	start := l.pos

	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if b == f.quote {
			break
		}
		if b == '~' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' {
			break
		}
		if f.allowDollar && b == '$' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' {
			break
		}
		l.pos++
	}
	if l.pos > start {
		l.emit(syntax.LiteralStringText, start)
		return
	}

	// nothing accumulated: we're sitting on the closing quote or an opener.
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == f.quote {
		l.pos++
		kind := syntax.DoubleQuote
		if f.quote == '\'' {
			kind = syntax.SingleQuote
		}
		l.emit(kind, start)
		l.pop()
		return
	}
	l.lexPlaceholderOpen(start)
}

// stepCommand handles text inside a `command { ... }` or `command <<< ...
// >>>` body: accumulating literal command text until the section's closer
// or a placeholder opener (only `~{` is legal inside commands, sec 4.1).
func (l *lexer) stepCommand() {
	f := l.top()
	start := l.pos
	heredoc := f.mode == modeHeredoc

	for l.pos < len(l.src) {
		if !heredoc && l.src[l.pos] == '}' {
			break
		}
		if heredoc && strings.HasPrefix(l.src[l.pos:], ">>>") {
			break
		}
		if l.src[l.pos] == '~' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' {
			break
		}
		l.pos++
	}
	if l.pos > start {
		l.emit(syntax.LiteralCommandText, start)
		return
	}

	if l.pos >= len(l.src) {
		return
	}
	if !heredoc && l.src[l.pos] == '}' {
		l.pos++
		l.emit(syntax.CloseBrace, start)
		l.pop()
		return
	}
	if heredoc && strings.HasPrefix(l.src[l.pos:], ">>>") {
		l.pos += 3
		l.emit(syntax.CloseHeredoc, start)
		l.pop()
		return
	}
	l.lexPlaceholderOpen(start)
}

func (l *lexer) lexPlaceholderOpen(start int) {
	if l.src[l.pos] == '~' {
		l.pos += 2
		l.emit(syntax.PlaceholderOpenTilde, start)
	} else {
		l.pos += 2
		l.emit(syntax.PlaceholderOpenDollar, start)
	}
	l.push(frame{mode: modePlaceholder})
}

type opRule struct {
	lit  string
	kind syntax.Kind
}

// ordered longest-match-first so that e.g. "**" is preferred over "*".
var operatorRules = []opRule{
	{"<<<", syntax.OpenHeredoc},
	{"**", syntax.DoubleStar},
	{"==", syntax.Equal},
	{"!=", syntax.NotEqual},
	{"<=", syntax.LessEqual},
	{">=", syntax.GreaterEqual},
	{"&&", syntax.LogicalAnd},
	{"||", syntax.LogicalOr},
	{"[", syntax.OpenBracket},
	{"]", syntax.CloseBracket},
	{"(", syntax.OpenParen},
	{")", syntax.CloseParen},
	{"}", syntax.CloseBrace},
	{"=", syntax.Assignment},
	{":", syntax.Colon},
	{",", syntax.Comma},
	{"?", syntax.QuestionMark},
	{"!", syntax.Exclamation},
	{"+", syntax.Plus},
	{"-", syntax.Minus},
	{"*", syntax.Asterisk},
	{"/", syntax.Slash},
	{"%", syntax.Percent},
	{"<", syntax.Less},
	{">", syntax.Greater},
	{".", syntax.Dot},
}

func matchOperator(rest string) (syntax.Kind, int, bool) {
	for _, rule := range operatorRules {
		if strings.HasPrefix(rest, rule.lit) {
			return rule.kind, len(rule.lit), true
		}
	}
	return syntax.Unknown, 0, false
}
