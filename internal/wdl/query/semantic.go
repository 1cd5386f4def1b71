package query

import (
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// SemanticToken is one classified span, in source order.
type SemanticToken struct {
	Span diag.Span
	Type TokenType
}

// SemanticTokens walks root and classifies comments, keywords, literals,
// placeholder openers, operators, and identifiers into the legend's fixed
// categories; whitespace and other punctuation (braces, brackets,
// parentheses, commas, colons) produce no token. An identifier is
// classified by its immediate parent node kind, since the grammar places
// every identifier this package cares about as a direct child of the node
// that gives it meaning (a struct's name directly under its
// StructDefinitionNode, a decl's name directly under its Bound/UnboundDecl,
// and so on); a decl's name additionally checks whether it sits inside an
// input section.
func SemanticTokens(root *syntax.RedNode) []SemanticToken {
	w := &tokenWalker{}
	syntax.Walk(root, w)
	return w.out
}

type tokenWalker struct {
	stack []*syntax.RedNode
	out   []SemanticToken
}

func (w *tokenWalker) VisitNode(n *syntax.RedNode, reason syntax.Reason) bool {
	if reason == syntax.Enter {
		w.stack = append(w.stack, n)
	} else {
		w.stack = w.stack[:len(w.stack)-1]
	}
	return true
}

func (w *tokenWalker) VisitToken(t *syntax.RedToken) {
	ty, ok := classify(t, w.stack)
	if !ok {
		return
	}
	w.out = append(w.out, SemanticToken{Span: t.Span(), Type: ty})
}

// ancestorIsInputSection reports whether the nearest enclosing
// Bound/UnboundDeclNode in stack sits inside an InputSectionNode rather
// than an OutputSectionNode or a workflow/task body.
func ancestorIsInputSection(stack []*syntax.RedNode) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].Kind() {
		case syntax.InputSectionNode:
			return true
		case syntax.OutputSectionNode, syntax.TaskDefinitionNode, syntax.WorkflowDefinitionNode:
			return false
		}
	}
	return false
}

func classify(t *syntax.RedToken, stack []*syntax.RedNode) (TokenType, bool) {
	var parent *syntax.RedNode
	if len(stack) > 0 {
		parent = stack[len(stack)-1]
	}
	kind := t.Kind()

	switch {
	case kind == syntax.Comment:
		return TokenComment, true
	case keywordKinds[kind]:
		return TokenKeyword, true
	case typeKeywordKinds[kind]:
		return TokenType_, true
	case kind == syntax.Integer || kind == syntax.Float:
		return TokenNumber, true
	case kind == syntax.SingleQuote || kind == syntax.DoubleQuote || kind == syntax.LiteralStringText || kind == syntax.LiteralCommandText:
		return TokenString, true
	case kind == syntax.PlaceholderOpenTilde || kind == syntax.PlaceholderOpenDollar:
		return TokenMacro, true
	case operatorKinds[kind] || kind == syntax.Dot:
		return TokenOperator, true
	}

	if kind != syntax.Ident {
		return 0, false
	}
	if parent == nil {
		return TokenVariable, true
	}

	switch parent.Kind() {
	case syntax.StructDefinitionNode, syntax.TypeRefNode:
		return TokenStruct, true
	case syntax.TaskDefinitionNode, syntax.WorkflowDefinitionNode, syntax.CallExprNode:
		return TokenFunction, true
	case syntax.ImportAliasNode, syntax.CallAliasNode:
		return TokenNamespace, true
	case syntax.CallTargetNode:
		return TokenNamespace, true
	case syntax.CallInputItemNode, syntax.RuntimeItemNode, syntax.RequirementsItemNode, syntax.TaskHintsItemNode,
		syntax.MetadataObjectItemNode, syntax.LiteralStructItemNode, syntax.LiteralMapItemNode:
		return TokenProperty, true
	case syntax.AccessExprNode:
		return TokenProperty, true
	case syntax.UnboundDeclNode, syntax.BoundDeclNode:
		if ancestorIsInputSection(stack[:len(stack)-1]) {
			return TokenParameter, true
		}
		return TokenVariable, true
	case syntax.ScatterStatementNode, syntax.NameRefNode:
		return TokenVariable, true
	case syntax.CallAfterNode:
		return TokenFunction, true
	default:
		return TokenVariable, true
	}
}
