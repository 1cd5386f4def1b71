// Package query answers editor requests — goto-definition, hover, semantic
// tokens — against an already-published analysis.Analysis and its document
// tree, without mutating the document graph (spec.md sec 6).
package query

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// TokenType classifies a span of source for semantic highlighting. Values
// are in the fixed legend order spec.md sec 6 requires; an LSP transport
// sends LegendTypes() once at initialization and thereafter refers to
// tokens by index into it.
type TokenType int

const (
	TokenKeyword TokenType = iota
	TokenVariable
	TokenParameter
	TokenFunction
	TokenProperty
	TokenStruct
	TokenType_
	TokenString
	TokenNumber
	TokenOperator
	TokenNamespace
	TokenComment
	TokenMacro
)

// LegendTypes returns the fixed-order token type names an LSP client
// registers once per session.
func LegendTypes() []string {
	return []string{
		"keyword", "variable", "parameter", "function", "property",
		"struct", "type", "string", "number", "operator", "namespace",
		"comment", "macro",
	}
}

var keywordKinds = map[syntax.Kind]bool{
	syntax.AfterKeyword: true, syntax.AliasKeyword: true, syntax.AsKeyword: true,
	syntax.CallKeyword: true, syntax.CommandKeyword: true, syntax.ElseKeyword: true,
	syntax.FalseKeyword: true, syntax.IfKeyword: true, syntax.InKeyword: true,
	syntax.ImportKeyword: true, syntax.InputKeyword: true, syntax.MetaKeyword: true,
	syntax.NoneKeyword: true, syntax.NullKeyword: true, syntax.ObjectKeyword: true,
	syntax.OutputKeyword: true, syntax.ParameterMetaKeyword: true, syntax.RuntimeKeyword: true,
	syntax.ScatterKeyword: true, syntax.StructKeyword: true, syntax.TaskKeyword: true,
	syntax.ThenKeyword: true, syntax.TrueKeyword: true, syntax.VersionKeyword: true,
	syntax.WorkflowKeyword: true, syntax.HintsKeyword: true, syntax.RequirementsKeyword: true,
	syntax.TaskVariableKeyword: true,
}

var typeKeywordKinds = map[syntax.Kind]bool{
	syntax.ArrayTypeKeyword: true, syntax.BooleanTypeKeyword: true, syntax.FileTypeKeyword: true,
	syntax.FloatTypeKeyword: true, syntax.IntTypeKeyword: true, syntax.MapTypeKeyword: true,
	syntax.ObjectTypeKeyword: true, syntax.PairTypeKeyword: true, syntax.StringTypeKeyword: true,
	syntax.DirectoryTypeKeyword: true,
}

var operatorKinds = map[syntax.Kind]bool{
	syntax.Assignment: true, syntax.QuestionMark: true, syntax.Exclamation: true,
	syntax.Plus: true, syntax.Minus: true, syntax.LogicalOr: true, syntax.LogicalAnd: true,
	syntax.Asterisk: true, syntax.Slash: true, syntax.Percent: true, syntax.DoubleStar: true,
	syntax.Equal: true, syntax.NotEqual: true, syntax.LessEqual: true, syntax.GreaterEqual: true,
	syntax.Less: true, syntax.Greater: true,
}
