package ast

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// TypedVisitor adapts syntax.Visitor's raw node/token callbacks to the
// handful of syntactic categories most consumers (validate, evalgraph,
// query) actually care about, casting each visited node through this
// package's typed wrappers. Every hook is optional; unset hooks simply do
// not fire. This is the concrete Visitor dispatch table sec 4.4 describes,
// built on top of syntax.Walk's pre-order traversal.
type TypedVisitor struct {
	OnDocument func(Document, syntax.Reason)
	OnImport   func(ImportStatement, syntax.Reason)
	OnStruct   func(StructDefinition, syntax.Reason)
	OnTask     func(TaskDefinition, syntax.Reason)
	OnWorkflow func(WorkflowDefinition, syntax.Reason)
	OnDecl     func(Decl, syntax.Reason)
	OnCall     func(CallStatement, syntax.Reason)
	OnScatter  func(ScatterStatement, syntax.Reason)
	OnIf       func(ConditionalStatement, syntax.Reason)
	OnExpr     func(Expr, syntax.Reason)
	OnToken    func(*syntax.RedToken)

	// OnOtherNode fires for any node kind none of the typed hooks above
	// cover (sections, call/import aliases, metadata, literals' item
	// nodes), so a visitor can still observe the full tree shape.
	OnOtherNode func(*syntax.RedNode, syntax.Reason)
}

// Walk runs the visitor over the tree rooted at root.
func (v TypedVisitor) Walk(root *syntax.RedNode) {
	syntax.Walk(root, typedDispatch{v})
}

type typedDispatch struct{ v TypedVisitor }

func (d typedDispatch) VisitNode(n *syntax.RedNode, reason syntax.Reason) bool {
	switch n.Kind() {
	case syntax.RootNode:
		if d.v.OnDocument != nil {
			if doc, ok := CastDocument(n); ok {
				d.v.OnDocument(doc, reason)
			}
		}
	case syntax.ImportStatementNode:
		if d.v.OnImport != nil {
			d.v.OnImport(ImportStatement{Node{Red: n}}, reason)
		}
	case syntax.StructDefinitionNode:
		if d.v.OnStruct != nil {
			d.v.OnStruct(StructDefinition{Node{Red: n}}, reason)
		}
	case syntax.TaskDefinitionNode:
		if d.v.OnTask != nil {
			d.v.OnTask(TaskDefinition{Node{Red: n}}, reason)
		}
	case syntax.WorkflowDefinitionNode:
		if d.v.OnWorkflow != nil {
			d.v.OnWorkflow(WorkflowDefinition{Node{Red: n}}, reason)
		}
	case syntax.BoundDeclNode, syntax.UnboundDeclNode:
		if d.v.OnDecl != nil {
			d.v.OnDecl(Decl{Node{Red: n}}, reason)
		}
	case syntax.CallStatementNode:
		if d.v.OnCall != nil {
			d.v.OnCall(CallStatement{Node{Red: n}}, reason)
		}
	case syntax.ScatterStatementNode:
		if d.v.OnScatter != nil {
			d.v.OnScatter(ScatterStatement{Node{Red: n}}, reason)
		}
	case syntax.ConditionalStatementNode:
		if d.v.OnIf != nil {
			d.v.OnIf(ConditionalStatement{Node{Red: n}}, reason)
		}
	default:
		if IsExprKind(n.Kind()) {
			if d.v.OnExpr != nil {
				d.v.OnExpr(Expr{Node{Red: n}}, reason)
			}
		} else if d.v.OnOtherNode != nil {
			d.v.OnOtherNode(n, reason)
		}
	}
	return true
}

func (d typedDispatch) VisitToken(t *syntax.RedToken) {
	if d.v.OnToken != nil {
		d.v.OnToken(t)
	}
}
