package ast

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// Expr wraps any expression node. Expression shape is discriminated by
// Kind(); use the AsXxx helpers or Operands/Operand for the common shapes
// (binary, unary, postfix) instead of re-deriving child order by hand.
type Expr struct{ Node }

var exprKinds = map[syntax.Kind]bool{
	syntax.LiteralIntegerNode: true, syntax.LiteralFloatNode: true, syntax.LiteralBooleanNode: true,
	syntax.LiteralNoneNode: true, syntax.LiteralNullNode: true, syntax.LiteralStringNode: true,
	syntax.LiteralPairNode: true, syntax.LiteralArrayNode: true, syntax.LiteralMapNode: true,
	syntax.LiteralObjectNode: true, syntax.LiteralStructNode: true,
	syntax.ParenthesizedExprNode: true, syntax.NameRefNode: true, syntax.IfExprNode: true,
	syntax.LogicalNotExprNode: true, syntax.NegationExprNode: true,
	syntax.LogicalOrExprNode: true, syntax.LogicalAndExprNode: true,
	syntax.EqualityExprNode: true, syntax.InequalityExprNode: true,
	syntax.LessExprNode: true, syntax.LessEqualExprNode: true, syntax.GreaterExprNode: true, syntax.GreaterEqualExprNode: true,
	syntax.AdditionExprNode: true, syntax.SubtractionExprNode: true,
	syntax.MultiplicationExprNode: true, syntax.DivisionExprNode: true, syntax.ModuloExprNode: true,
	syntax.ExponentiationExprNode: true, syntax.CallExprNode: true,
	syntax.IndexExprNode: true, syntax.AccessExprNode: true,
}

// IsExprKind reports whether kind denotes an expression node.
func IsExprKind(kind syntax.Kind) bool { return exprKinds[kind] }

func lastExprChild(red *syntax.RedNode) (Expr, bool) {
	var found *syntax.RedNode
	for _, c := range red.ChildNodes() {
		if IsExprKind(c.Kind()) {
			found = c
		}
	}
	if found == nil {
		return Expr{}, false
	}
	return Expr{Node{Red: found}}, true
}

func firstExprChild(red *syntax.RedNode) (Expr, bool) {
	for _, c := range red.ChildNodes() {
		if IsExprKind(c.Kind()) {
			return Expr{Node{Red: c}}, true
		}
	}
	return Expr{}, false
}

func exprChildAt(red *syntax.RedNode, index int) (Expr, bool) {
	i := 0
	for _, c := range red.ChildNodes() {
		if IsExprKind(c.Kind()) {
			if i == index {
				return Expr{Node{Red: c}}, true
			}
			i++
		}
	}
	return Expr{}, false
}

// IsBinary reports whether the expression is one of the binary operator
// kinds, for which Left/Right are valid.
func (e Expr) IsBinary() bool {
	switch e.Kind() {
	case syntax.LogicalOrExprNode, syntax.LogicalAndExprNode,
		syntax.EqualityExprNode, syntax.InequalityExprNode,
		syntax.LessExprNode, syntax.LessEqualExprNode, syntax.GreaterExprNode, syntax.GreaterEqualExprNode,
		syntax.AdditionExprNode, syntax.SubtractionExprNode,
		syntax.MultiplicationExprNode, syntax.DivisionExprNode, syntax.ModuloExprNode,
		syntax.ExponentiationExprNode:
		return true
	}
	return false
}

// Left returns a binary expression's left operand.
func (e Expr) Left() (Expr, bool) { return exprChildAt(e.Red, 0) }

// Right returns a binary expression's right operand.
func (e Expr) Right() (Expr, bool) { return exprChildAt(e.Red, 1) }

// IsUnary reports whether the expression is `!x` or `-x`.
func (e Expr) IsUnary() bool {
	return e.Kind() == syntax.LogicalNotExprNode || e.Kind() == syntax.NegationExprNode
}

// Operand returns a unary or parenthesized expression's inner expression.
func (e Expr) Operand() (Expr, bool) { return firstExprChild(e.Red) }

// Name returns the referenced identifier for a NameRefNode, or the member
// name for an AccessExprNode.
func (e Expr) Name() string {
	if tok := e.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	if tok := e.Red.FirstChildTokenOfKind(syntax.TaskVariableKeyword); tok != nil {
		return tok.Text()
	}
	return ""
}

// Target returns the base expression an AccessExprNode or IndexExprNode
// applies to.
func (e Expr) Target() (Expr, bool) { return firstExprChild(e.Red) }

// Condition/Then/Else decompose an IfExprNode.
func (e Expr) Condition() (Expr, bool) { return exprChildAt(e.Red, 0) }
func (e Expr) Then() (Expr, bool)      { return exprChildAt(e.Red, 1) }
func (e Expr) Else() (Expr, bool)      { return exprChildAt(e.Red, 2) }

// CallArgs returns the positional arguments of a CallExprNode (a stdlib
// function call such as read_lines(x)).
func (e Expr) CallArgs() []Expr {
	var out []Expr
	for _, c := range e.Red.ChildNodes() {
		if IsExprKind(c.Kind()) {
			out = append(out, Expr{Node{Red: c}})
		}
	}
	return out
}

// ArrayElements returns a LiteralArrayNode's element expressions.
func (e Expr) ArrayElements() []Expr { return e.CallArgs() }

// StructLiteralItems returns a LiteralStructNode's field initializers.
func (e Expr) StructLiteralItems() []StructLiteralItem {
	var out []StructLiteralItem
	for _, n := range e.Red.ChildNodesOfKind(syntax.LiteralStructItemNode) {
		out = append(out, StructLiteralItem{Node{Red: n}})
	}
	return out
}

// StructLiteralItem is one `name: expr` field of a struct literal.
type StructLiteralItem struct{ Node }

func (i StructLiteralItem) Name() string {
	if tok := i.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

func (i StructLiteralItem) Value() (Expr, bool) { return lastExprChild(i.Red) }

// Placeholder wraps a `~{...}`/`${...}` interpolation inside a string or
// command literal.
type Placeholder struct{ Node }

func (p Placeholder) Expr() (Expr, bool) { return lastExprChild(p.Red) }

func (p Placeholder) SepOption() (Expr, bool) {
	if n := p.Red.FirstChildNodeOfKind(syntax.PlaceholderSepOptionNode); n != nil {
		return lastExprChild(n)
	}
	return Expr{}, false
}

func (p Placeholder) DefaultOption() (Expr, bool) {
	if n := p.Red.FirstChildNodeOfKind(syntax.PlaceholderDefaultOptionNode); n != nil {
		return lastExprChild(n)
	}
	return Expr{}, false
}

func (p Placeholder) TrueFalseOptions() []*syntax.RedNode {
	return p.Red.ChildNodesOfKind(syntax.PlaceholderTrueFalseOptionNode)
}
