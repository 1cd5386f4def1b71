package lexer

import (
	"testing"

	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/stretchr/testify/assert"
)

func kindsOf(toks []Token) []syntax.Kind {
	out := make([]syntax.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func nonTrivia(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

func Test_Lex_kindSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []syntax.Kind
	}{
		{name: "empty", input: "", expect: nil},
		{name: "version statement", input: "version 1.1", expect: []syntax.Kind{
			syntax.VersionKeyword, syntax.VersionToken,
		}},
		{name: "task keyword and ident", input: "task greet", expect: []syntax.Kind{
			syntax.TaskKeyword, syntax.Ident,
		}},
		{name: "int literal", input: "42", expect: []syntax.Kind{syntax.Integer}},
		{name: "float literal", input: "4.2", expect: []syntax.Kind{syntax.Float}},
		{name: "exponent float", input: "4e10", expect: []syntax.Kind{syntax.Float}},
		{name: "operators", input: "a && b || !c", expect: []syntax.Kind{
			syntax.Ident, syntax.LogicalAnd, syntax.Ident, syntax.LogicalOr, syntax.Exclamation, syntax.Ident,
		}},
		{name: "comparison chain", input: "a <= b >= c", expect: []syntax.Kind{
			syntax.Ident, syntax.LessEqual, syntax.Ident, syntax.GreaterEqual, syntax.Ident,
		}},
		{name: "double star exponent", input: "a ** b", expect: []syntax.Kind{
			syntax.Ident, syntax.DoubleStar, syntax.Ident,
		}},
		{name: "simple string literal", input: `"hello"`, expect: []syntax.Kind{
			syntax.DoubleQuote, syntax.LiteralStringText, syntax.DoubleQuote,
		}},
		{name: "string with placeholder", input: `"hi ~{name}"`, expect: []syntax.Kind{
			syntax.DoubleQuote, syntax.LiteralStringText, syntax.PlaceholderOpenTilde, syntax.Ident, syntax.CloseBrace, syntax.DoubleQuote,
		}},
		{name: "string with dollar placeholder", input: `"hi ${name}"`, expect: []syntax.Kind{
			syntax.DoubleQuote, syntax.LiteralStringText, syntax.PlaceholderOpenDollar, syntax.Ident, syntax.CloseBrace, syntax.DoubleQuote,
		}},
		{name: "command brace section with tilde placeholder", input: "command { echo ~{x} }", expect: []syntax.Kind{
			syntax.CommandKeyword, syntax.OpenBrace, syntax.LiteralCommandText, syntax.PlaceholderOpenTilde, syntax.Ident, syntax.CloseBrace, syntax.LiteralCommandText, syntax.CloseBrace,
		}},
		{name: "heredoc command", input: "command <<< echo ~{x} >>>", expect: []syntax.Kind{
			syntax.CommandKeyword, syntax.OpenHeredoc, syntax.LiteralCommandText, syntax.PlaceholderOpenTilde, syntax.Ident, syntax.CloseBrace, syntax.LiteralCommandText, syntax.CloseHeredoc,
		}},
		{name: "unknown byte still produces a token", input: "\x01", expect: []syntax.Kind{syntax.Unknown}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := nonTrivia(Lex(tc.input))
			assert.Equal(t, tc.expect, kindsOf(toks))
		})
	}
}

func Test_Lex_roundTripsSourceText(t *testing.T) {
	inputs := []string{
		"version 1.1\n\nworkflow w {}\n",
		`task t { input { Int x = x } command <<<>>> }`,
		`"hi ~{name}, you owe ${amount}"`,
	}

	for _, src := range inputs {
		var rebuilt []byte
		for _, tok := range Lex(src) {
			rebuilt = append(rebuilt, tok.Text(src)...)
		}
		assert.Equal(t, src, string(rebuilt))
	}
}
