// Package lexer turns WDL source text into a flat, non-restartable sequence
// of kinded tokens with byte spans. It cooperates through a handful of
// lexing modes (default, string, command-brace, heredoc, placeholder) so
// that the same operator/identifier rules apply inside string and command
// interpolation without a second grammar. Grounded on the mode-table
// lexer in github.com/dekarrin/tunaq's internal/tunascript/lexer.go,
// generalized from a single flat mode list to the nested mode stack WDL's
// string/command/heredoc/placeholder nesting requires.
package lexer

import (
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// Token is a single lexed unit: a kind plus the byte span it covers.
type Token struct {
	Kind syntax.Kind
	Span diag.Span
}

// Text returns the token's exact source text, given the full source it was
// lexed from.
func (t Token) Text(source string) string {
	return source[t.Span.Start:t.Span.End()]
}
