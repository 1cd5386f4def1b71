package query

import (
	"strings"

	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// Hover is the rendered text and anchoring span for a hover request.
type Hover struct {
	Span     diag.Span
	Contents string
}

// HoverInfo answers a hover request at offset: for a call target naming a
// task, "task" plus its name and input signature; for one naming the local
// workflow, "workflow" plus its name; for a call target's namespace segment,
// the URI it was imported from; for a struct type reference, the struct and
// its type; for a reference to a call alias, the call's target; for a
// call-output member access, the output's type. Declarations, references to
// declarations, and names at their own definition site get no hover.
func HoverInfo(doc ast.Document, a *analysis.Analysis, offset uint32) (Hover, bool) {
	tok := doc.Red.TokenAtOffset(offset)
	if tok == nil || tok.Kind() != syntax.Ident || tok.Parent == nil {
		return Hover{}, false
	}
	name := tok.Text()
	parent := tok.Parent

	switch parent.Kind() {
	case syntax.CallTargetNode:
		idents := parent.ChildTokensOfKind(syntax.Ident)
		if len(idents) == 1 {
			if ta, ok := a.Tasks[name]; ok {
				return Hover{Span: tok.Span(), Contents: "task " + name + taskSignature(ta)}, true
			}
			if a.Workflow != nil && a.Workflow.Def.Name() == name {
				return Hover{Span: tok.Span(), Contents: "workflow " + name}, true
			}
		} else if len(idents) == 2 {
			nsName := idents[0].Text()
			ns, ok := a.Namespaces[nsName]
			if !ok {
				return Hover{}, false
			}
			if idents[0].Offset == tok.Offset {
				return Hover{Span: tok.Span(), Contents: "namespace " + nsName + " (" + ns.URI + ")"}, true
			}
			if ns.Dep != nil {
				if ta, ok := ns.Dep.Tasks[name]; ok {
					return Hover{Span: tok.Span(), Contents: "task " + name + taskSignature(ta)}, true
				}
			}
		}
	case syntax.TypeRefNode:
		if st, ok := a.Structs[name]; ok {
			return Hover{Span: tok.Span(), Contents: "struct " + name + structSignature(st)}, true
		}
	case syntax.NameRefNode:
		if a.Workflow != nil {
			if call, ok := a.Workflow.Calls[name]; ok {
				return Hover{Span: tok.Span(), Contents: "call " + name + " -> " + qualifiedTarget(call)}, true
			}
		}
	case syntax.AccessExprNode:
		if a.Workflow == nil {
			return Hover{}, false
		}
		base, ok := ast.Expr{Node: ast.Node{Red: parent}}.Target()
		if !ok || base.Kind() != syntax.NameRefNode {
			return Hover{}, false
		}
		call, ok := a.Workflow.Calls[base.Name()]
		if !ok {
			return Hover{}, false
		}
		if ty, ok := call.Outputs[name]; ok {
			return Hover{Span: tok.Span(), Contents: name + ": " + ty.String()}, true
		}
	}
	return Hover{}, false
}

func taskSignature(ta *analysis.TaskAnalysis) string {
	var sb strings.Builder
	sb.WriteString("(")
	first := true
	for n, ty := range ta.Inputs {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(n + ": " + ty.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func structSignature(st analysis.Struct) string {
	if st.Type == nil {
		return ""
	}
	return " " + st.Type.String()
}

func qualifiedTarget(call *analysis.CallAnalysis) string {
	if call.Namespace == "" {
		return call.Target
	}
	return call.Namespace + "." + call.Target
}
