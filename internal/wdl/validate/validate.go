// Package validate is a pure tree walk over a parsed document that checks
// the shape invariants the rest of the toolkit relies on: exactly one
// command section per task, at most one workflow definition per document,
// legal placeholder option combinations, and representable numeric
// literals. It never needs resolved types; checks that do (an operand's
// declared type matching what `sep=`/`true=`/`false=` require) belong to the
// analysis package's expression type checker (checkPlaceholderTypes), which
// runs once declarations have resolved types.
package validate

import (
	"strconv"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// Validate walks doc and returns every diagnostic the structural checks
// produce. An empty result is the success signal.
func Validate(doc ast.Document) []diag.Diagnostic {
	version, _ := doc.Version()

	v := &validator{version: version}
	ast.TypedVisitor{
		OnTask: func(task ast.TaskDefinition, reason syntax.Reason) {
			if reason == syntax.Enter {
				v.checkTask(task)
			}
		},
		OnWorkflow: func(wf ast.WorkflowDefinition, reason syntax.Reason) {
			if reason == syntax.Enter {
				v.workflowCount++
			}
		},
		OnExpr: func(e ast.Expr, reason syntax.Reason) {
			if reason != syntax.Enter {
				return
			}
			switch e.Kind() {
			case syntax.LiteralIntegerNode:
				v.checkIntegerLiteral(e)
			case syntax.LiteralFloatNode:
				v.checkFloatLiteral(e)
			}
		},
		OnOtherNode: func(n *syntax.RedNode, reason syntax.Reason) {
			if reason == syntax.Enter && n.Kind() == syntax.PlaceholderNode {
				v.checkPlaceholder(ast.Placeholder{Node: ast.Node{Red: n}})
			}
		},
	}.Walk(doc.Red)

	if v.workflowCount > 1 {
		v.diags = append(v.diags, diag.Errorf(
			"a document may declare at most one workflow").
			WithRule("multiple-workflows").
			WithPrimary(doc.Span()))
	}

	diag.SortBySpan(v.diags)
	return v.diags
}

type validator struct {
	version       string
	workflowCount int
	diags         []diag.Diagnostic
}

func (v *validator) checkTask(task ast.TaskDefinition) {
	count := len(task.Red.ChildNodesOfKind(syntax.CommandSectionNode))
	switch {
	case count == 0:
		v.diags = append(v.diags, diag.Errorf(
			"task \""+task.Name()+"\" has no command section").
			WithRule("missing-command-section").
			WithPrimary(task.Span()))
	case count > 1:
		v.diags = append(v.diags, diag.Errorf(
			"task \""+task.Name()+"\" has more than one command section").
			WithRule("multiple-command-sections").
			WithPrimary(task.Span()))
	}
}

func (v *validator) checkIntegerLiteral(e ast.Expr) {
	text := e.Text()
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		v.diags = append(v.diags, diag.Errorf(
			"integer literal \""+text+"\" is not representable").
			WithRule("unrepresentable-literal").
			WithPrimary(e.Span()))
	}
}

func (v *validator) checkFloatLiteral(e ast.Expr) {
	text := e.Text()
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		v.diags = append(v.diags, diag.Errorf(
			"float literal \""+text+"\" is not representable").
			WithRule("unrepresentable-literal").
			WithPrimary(e.Span()))
	}
}
