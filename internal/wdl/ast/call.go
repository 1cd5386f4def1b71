package ast

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// CallStatement wraps a `call Namespace.Task as alias after other { ... }`
// statement.
type CallStatement struct{ Node }

// TargetParts returns the dotted call target segments, e.g. ["lib", "task"]
// for `call lib.task`.
func (c CallStatement) TargetParts() []string {
	target := c.Red.FirstChildNodeOfKind(syntax.CallTargetNode)
	if target == nil {
		return nil
	}
	var out []string
	for _, t := range target.ChildTokensOfKind(syntax.Ident) {
		out = append(out, t.Text())
	}
	return out
}

// Alias returns the call's `as` name, defaulting to the final target
// segment when absent, matching WDL's call-name resolution rule.
func (c CallStatement) Alias() string {
	if n := c.Red.FirstChildNodeOfKind(syntax.CallAliasNode); n != nil {
		if tok := n.FirstChildTokenOfKind(syntax.Ident); tok != nil {
			return tok.Text()
		}
	}
	parts := c.TargetParts()
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// After returns the names of calls this call must run after.
func (c CallStatement) After() []string {
	var out []string
	for _, n := range c.Red.ChildNodesOfKind(syntax.CallAfterNode) {
		if tok := n.FirstChildTokenOfKind(syntax.Ident); tok != nil {
			out = append(out, tok.Text())
		}
	}
	return out
}

// Inputs returns the call's explicit `name = expr` input bindings.
func (c CallStatement) Inputs() []CallInputItem {
	var out []CallInputItem
	for _, n := range c.Red.ChildNodesOfKind(syntax.CallInputItemNode) {
		out = append(out, CallInputItem{Node{Red: n}})
	}
	return out
}

// CallInputItem is one `name` or `name = expr` binding in a call's input
// block; when Expr is absent, the value is implicitly the enclosing scope's
// variable of the same name (input shorthand).
type CallInputItem struct{ Node }

func (i CallInputItem) Name() string {
	if tok := i.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

func (i CallInputItem) Expr() (Expr, bool) { return lastExprChild(i.Red) }

// ScatterStatement wraps `scatter (x in expr) { ... }`.
type ScatterStatement struct{ Node }

func (s ScatterStatement) Variable() string {
	if tok := s.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

func (s ScatterStatement) Iterable() (Expr, bool) { return firstExprChild(s.Red) }

func (s ScatterStatement) Body() []WorkflowStatement {
	return bodyStatements(s.Red)
}

// ConditionalStatement wraps `if (expr) { ... }`.
type ConditionalStatement struct{ Node }

func (s ConditionalStatement) Condition() (Expr, bool) { return firstExprChild(s.Red) }

func (s ConditionalStatement) Body() []WorkflowStatement {
	return bodyStatements(s.Red)
}

func bodyStatements(red *syntax.RedNode) []WorkflowStatement {
	var out []WorkflowStatement
	for _, c := range red.ChildNodes() {
		switch c.Kind() {
		case syntax.BoundDeclNode, syntax.UnboundDeclNode,
			syntax.CallStatementNode, syntax.ScatterStatementNode, syntax.ConditionalStatementNode:
			out = append(out, WorkflowStatement{Node{Red: c}})
		}
	}
	return out
}
