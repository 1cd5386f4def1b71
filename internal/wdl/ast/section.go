package ast

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// InputSection wraps a task or workflow's input { ... } block.
type InputSection struct{ Node }

func (s InputSection) Decls() []Decl {
	var out []Decl
	for _, c := range s.Red.ChildNodes() {
		if c.Kind() == syntax.BoundDeclNode || c.Kind() == syntax.UnboundDeclNode {
			out = append(out, Decl{Node{Red: c}})
		}
	}
	return out
}

// OutputSection wraps a task or workflow's output { ... } block. Every
// output declaration is bound.
type OutputSection struct{ Node }

func (s OutputSection) Decls() []BoundDecl {
	var out []BoundDecl
	for _, n := range s.Red.ChildNodesOfKind(syntax.BoundDeclNode) {
		out = append(out, BoundDecl{Node{Red: n}})
	}
	return out
}

// CommandSection wraps a task's command block, which mixes literal text
// tokens with placeholders rather than declarations.
type CommandSection struct{ Node }

// Placeholders returns every interpolation in source order.
func (s CommandSection) Placeholders() []Placeholder {
	var out []Placeholder
	for _, n := range s.Red.ChildNodesOfKind(syntax.PlaceholderNode) {
		out = append(out, Placeholder{Node{Red: n}})
	}
	return out
}

// LiteralText concatenates the section's literal (non-interpolated) text,
// useful for a renderer that only needs to show the static script.
func (s CommandSection) LiteralText() string {
	var out string
	for _, t := range s.Red.ChildTokensOfKind(syntax.LiteralCommandText) {
		out += t.Text()
	}
	return out
}

// kvSection is the shared shape of runtime/requirements/hints sections:
// zero or more `ident: expr` items.
type kvSection struct{ Node }

func (s kvSection) items(itemKind syntax.Kind) []KVItem {
	var out []KVItem
	for _, n := range s.Red.ChildNodesOfKind(itemKind) {
		out = append(out, KVItem{Node{Red: n}})
	}
	return out
}

// KVItem is one `name: expr` entry in a runtime/requirements/hints section.
type KVItem struct{ Node }

func (i KVItem) Name() string {
	if tok := i.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

func (i KVItem) Value() (Expr, bool) { return lastExprChild(i.Red) }

// RuntimeSection wraps a task's legacy runtime { ... } block.
type RuntimeSection struct{ kvSection }

func (s RuntimeSection) Items() []KVItem { return s.items(syntax.RuntimeItemNode) }

// RequirementsSection wraps a task's requirements { ... } block (WDL 1.2+).
type RequirementsSection struct{ kvSection }

func (s RequirementsSection) Items() []KVItem { return s.items(syntax.RequirementsItemNode) }

// TaskHintsSection wraps a task's hints { ... } block (WDL 1.2+).
type TaskHintsSection struct{ kvSection }

func (s TaskHintsSection) Items() []KVItem { return s.items(syntax.TaskHintsItemNode) }
