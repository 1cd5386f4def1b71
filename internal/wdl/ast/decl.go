package ast

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// Decl is either a BoundDecl or an UnboundDecl; use Kind() to discriminate
// or call AsBound/AsUnbound.
type Decl struct{ Node }

func (d Decl) AsBound() (BoundDecl, bool) {
	if d.Kind() != syntax.BoundDeclNode {
		return BoundDecl{}, false
	}
	return BoundDecl{d.Node}, true
}

func (d Decl) AsUnbound() (UnboundDecl, bool) {
	if d.Kind() != syntax.UnboundDeclNode {
		return UnboundDecl{}, false
	}
	return UnboundDecl{d.Node}, true
}

// Name returns the declared identifier, for either decl shape.
func (d Decl) Name() string {
	if tok := d.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

// TypeNode returns the declaration's type node (one of PrimitiveTypeNode,
// ArrayTypeNode, MapTypeNode, PairTypeNode, ObjectTypeNode, TypeRefNode).
func (d Decl) TypeNode() (*syntax.RedNode, bool) {
	for _, c := range d.Red.ChildNodes() {
		switch c.Kind() {
		case syntax.PrimitiveTypeNode, syntax.ArrayTypeNode, syntax.MapTypeNode, syntax.PairTypeNode, syntax.ObjectTypeNode, syntax.TypeRefNode:
			return c, true
		}
	}
	return nil, false
}

// UnboundDecl is a declaration with a type and a name but no initializer
// (struct members, task/workflow input parameters without a default).
type UnboundDecl struct{ Node }

func (d UnboundDecl) Name() string { return Decl{d.Node}.Name() }

// TypeNode returns the member's declared type node.
func (d UnboundDecl) TypeNode() (*syntax.RedNode, bool) { return Decl{d.Node}.TypeNode() }

// BoundDecl is a declaration with an initializer expression (private
// declarations, input parameters with defaults, output declarations).
type BoundDecl struct{ Node }

func (d BoundDecl) Name() string { return Decl{d.Node}.Name() }

// Expr returns the declaration's initializer expression.
func (d BoundDecl) Expr() (Expr, bool) {
	return lastExprChild(d.Red)
}
