// Package ast is a typed facade over the CST (internal/wdl/syntax): thin
// wrapper types that cast a *syntax.RedNode to its syntactic category by
// kind match, an O(1) operation since the kind is already known, rather than
// building and maintaining a second tree. This mirrors rust-analyzer's
// ast::AstNode trait, adapted to Go structs instead of a trait object.
package ast

import (
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// Node is the base wrapper every typed AST type embeds. It exposes the
// underlying red cursor for callers that need positions or raw text.
type Node struct {
	Red *syntax.RedNode
}

func (n Node) Kind() Kind       { return Kind(n.Red.Kind()) }
func (n Node) Text() string     { return n.Red.Text() }
func (n Node) Span() diag.Span  { return n.Red.Span() }

// Kind re-exports syntax.Kind so callers of this package do not need to
// import syntax directly for the common case of comparing node kinds.
type Kind = syntax.Kind

// Document is the root of a parsed WDL file: an optional version statement
// followed by imports, struct/task/workflow definitions.
type Document struct {
	Node
}

// CastDocument wraps a CST root node. Ok is false if red is not a RootNode.
func CastDocument(red *syntax.RedNode) (Document, bool) {
	if red == nil || red.Kind() != syntax.RootNode {
		return Document{}, false
	}
	return Document{Node{Red: red}}, true
}

// Version returns the document's declared version text, and whether a
// version statement was present at all.
func (d Document) Version() (string, bool) {
	vs := d.Red.FirstChildNodeOfKind(syntax.VersionStatementNode)
	if vs == nil {
		return "", false
	}
	tok := vs.FirstChildTokenOfKind(syntax.VersionToken)
	if tok == nil {
		return "", false
	}
	return tok.Text(), true
}

// Imports returns every import statement at document scope, in source
// order.
func (d Document) Imports() []ImportStatement {
	var out []ImportStatement
	for _, n := range d.Red.ChildNodesOfKind(syntax.ImportStatementNode) {
		out = append(out, ImportStatement{Node{Red: n}})
	}
	return out
}

// Structs returns every struct definition at document scope.
func (d Document) Structs() []StructDefinition {
	var out []StructDefinition
	for _, n := range d.Red.ChildNodesOfKind(syntax.StructDefinitionNode) {
		out = append(out, StructDefinition{Node{Red: n}})
	}
	return out
}

// Tasks returns every task definition at document scope.
func (d Document) Tasks() []TaskDefinition {
	var out []TaskDefinition
	for _, n := range d.Red.ChildNodesOfKind(syntax.TaskDefinitionNode) {
		out = append(out, TaskDefinition{Node{Red: n}})
	}
	return out
}

// Workflow returns the document's workflow definition, if any. A document
// with more than one is a validate-time diagnostic, not a parse error; this
// returns only the first so callers always have a well-defined result.
func (d Document) Workflow() (WorkflowDefinition, bool) {
	n := d.Red.FirstChildNodeOfKind(syntax.WorkflowDefinitionNode)
	if n == nil {
		return WorkflowDefinition{}, false
	}
	return WorkflowDefinition{Node{Red: n}}, true
}

// ImportStatement wraps an import statement node.
type ImportStatement struct{ Node }

// URI returns the literal string text (including quotes) of the imported
// document's URI.
func (i ImportStatement) URI() string {
	lit := i.Red.FirstChildNodeOfKind(syntax.LiteralStringNode)
	if lit == nil {
		return ""
	}
	return lit.Text()
}

// Alias returns the `as Ident` namespace alias, if present.
func (i ImportStatement) Alias() (string, bool) {
	// the first bare Ident child directly under the import (not nested in an
	// ImportAliasNode) is the `as` alias; it follows the URI string literal
	// node, so only an ImportAliasNode itself ends the search.
	for _, c := range i.Red.Children() {
		if c.Node != nil && c.Node.Kind() == syntax.ImportAliasNode {
			break
		}
		if c.Token != nil && c.Token.Kind() == syntax.Ident {
			return c.Token.Text(), true
		}
	}
	return "", false
}

// Aliases returns every `alias Old as New` rename the import declares.
func (i ImportStatement) Aliases() []ImportAlias {
	var out []ImportAlias
	for _, n := range i.Red.ChildNodesOfKind(syntax.ImportAliasNode) {
		out = append(out, ImportAlias{Node{Red: n}})
	}
	return out
}

// ImportAlias wraps a single `alias Old as New` clause.
type ImportAlias struct{ Node }

// Names returns (old, new). Both are empty if the node is malformed.
func (a ImportAlias) Names() (string, string) {
	idents := a.Red.ChildTokensOfKind(syntax.Ident)
	if len(idents) < 2 {
		return "", ""
	}
	return idents[0].Text(), idents[1].Text()
}

// StructDefinition wraps a struct definition node.
type StructDefinition struct{ Node }

func (s StructDefinition) Name() string {
	if tok := s.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

// Members returns the struct's fields in declaration order.
func (s StructDefinition) Members() []UnboundDecl {
	var out []UnboundDecl
	for _, n := range s.Red.ChildNodesOfKind(syntax.UnboundDeclNode) {
		out = append(out, UnboundDecl{Node{Red: n}})
	}
	return out
}

// TaskDefinition wraps a task definition node.
type TaskDefinition struct{ Node }

func (t TaskDefinition) Name() string {
	if tok := t.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

func (t TaskDefinition) Input() (InputSection, bool) {
	n := t.Red.FirstChildNodeOfKind(syntax.InputSectionNode)
	if n == nil {
		return InputSection{}, false
	}
	return InputSection{Node{Red: n}}, true
}

func (t TaskDefinition) Output() (OutputSection, bool) {
	n := t.Red.FirstChildNodeOfKind(syntax.OutputSectionNode)
	if n == nil {
		return OutputSection{}, false
	}
	return OutputSection{Node{Red: n}}, true
}

func (t TaskDefinition) Command() (CommandSection, bool) {
	n := t.Red.FirstChildNodeOfKind(syntax.CommandSectionNode)
	if n == nil {
		return CommandSection{}, false
	}
	return CommandSection{Node{Red: n}}, true
}

// PrivateDecls returns the task's top-level private declarations: bound
// declarations that are not inside the input or output section.
func (t TaskDefinition) PrivateDecls() []BoundDecl {
	var out []BoundDecl
	for _, c := range t.Red.Children() {
		if c.Node != nil && c.Node.Kind() == syntax.BoundDeclNode {
			out = append(out, BoundDecl{Node{Red: c.Node}})
		}
	}
	return out
}

func (t TaskDefinition) Runtime() (RuntimeSection, bool) {
	n := t.Red.FirstChildNodeOfKind(syntax.RuntimeSectionNode)
	if n == nil {
		return RuntimeSection{}, false
	}
	return RuntimeSection{kvSection{Node{Red: n}}}, true
}

func (t TaskDefinition) Requirements() (RequirementsSection, bool) {
	n := t.Red.FirstChildNodeOfKind(syntax.RequirementsSectionNode)
	if n == nil {
		return RequirementsSection{}, false
	}
	return RequirementsSection{kvSection{Node{Red: n}}}, true
}

func (t TaskDefinition) Hints() (TaskHintsSection, bool) {
	n := t.Red.FirstChildNodeOfKind(syntax.TaskHintsSectionNode)
	if n == nil {
		return TaskHintsSection{}, false
	}
	return TaskHintsSection{kvSection{Node{Red: n}}}, true
}

// WorkflowDefinition wraps a workflow definition node.
type WorkflowDefinition struct{ Node }

func (w WorkflowDefinition) Name() string {
	if tok := w.Red.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

func (w WorkflowDefinition) Input() (InputSection, bool) {
	n := w.Red.FirstChildNodeOfKind(syntax.InputSectionNode)
	if n == nil {
		return InputSection{}, false
	}
	return InputSection{Node{Red: n}}, true
}

func (w WorkflowDefinition) Output() (OutputSection, bool) {
	n := w.Red.FirstChildNodeOfKind(syntax.OutputSectionNode)
	if n == nil {
		return OutputSection{}, false
	}
	return OutputSection{Node{Red: n}}, true
}

// Body returns the workflow's top-level statements (private decls, call,
// scatter, conditional) in source order, skipping input/output/meta
// sections which have their own accessors.
func (w WorkflowDefinition) Body() []WorkflowStatement {
	return bodyStatements(w.Red)
}

// WorkflowStatement is any of the statement kinds that can appear directly
// in a workflow, scatter, or conditional body. Use Kind() to discriminate.
type WorkflowStatement struct{ Node }

func (s WorkflowStatement) AsCall() (CallStatement, bool) {
	if s.Kind() != syntax.CallStatementNode {
		return CallStatement{}, false
	}
	return CallStatement{s.Node}, true
}

func (s WorkflowStatement) AsScatter() (ScatterStatement, bool) {
	if s.Kind() != syntax.ScatterStatementNode {
		return ScatterStatement{}, false
	}
	return ScatterStatement{s.Node}, true
}

func (s WorkflowStatement) AsConditional() (ConditionalStatement, bool) {
	if s.Kind() != syntax.ConditionalStatementNode {
		return ConditionalStatement{}, false
	}
	return ConditionalStatement{s.Node}, true
}

func (s WorkflowStatement) AsDecl() (Decl, bool) {
	if s.Kind() != syntax.BoundDeclNode && s.Kind() != syntax.UnboundDeclNode {
		return Decl{}, false
	}
	return Decl{s.Node}, true
}
