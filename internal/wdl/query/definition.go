package query

import (
	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// GotoDefinition resolves the identifier at offset in doc to the span of
// its declaration, consulting a for cross-document and type information.
// It returns false for punctuation/literal tokens, unresolved names, or
// member-access targets this package does not yet track a declaration site
// for (struct-field access on a non-call expression).
func GotoDefinition(doc ast.Document, a *analysis.Analysis, offset uint32) (diag.Span, bool) {
	tok := doc.Red.TokenAtOffset(offset)
	if tok == nil || tok.Kind() != syntax.Ident || tok.Parent == nil {
		return diag.Span{}, false
	}
	name := tok.Text()
	parent := tok.Parent

	switch parent.Kind() {
	case syntax.CallTargetNode:
		return resolveCallTargetIdent(a, parent, tok)
	case syntax.TypeRefNode:
		if st, ok := a.Structs[name]; ok {
			return nameTokenSpan(st.Def.Red), true
		}
		return diag.Span{}, false
	case syntax.AccessExprNode:
		return resolveAccessMember(doc, a, parent, name)
	case syntax.NameRefNode:
		return resolveNameRef(a, tok, name)
	default:
		return diag.Span{}, false
	}
}

// nameTokenSpan returns the span of the first direct Ident child of n, the
// convention every definition node (struct/task/workflow/decl) uses for its
// own name.
func nameTokenSpan(n *syntax.RedNode) diag.Span {
	if tok := n.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Span()
	}
	return n.Span()
}

func resolveCallTargetIdent(a *analysis.Analysis, target *syntax.RedNode, tok *syntax.RedToken) (diag.Span, bool) {
	idents := target.ChildTokensOfKind(syntax.Ident)
	idx := -1
	for i, t := range idents {
		if t.Offset == tok.Offset {
			idx = i
			break
		}
	}
	if idx < 0 {
		return diag.Span{}, false
	}

	if len(idents) == 1 {
		name := idents[0].Text()
		if ta, ok := a.Tasks[name]; ok {
			return nameTokenSpan(ta.Def.Red), true
		}
		if a.Workflow != nil && a.Workflow.Def.Name() == name {
			return nameTokenSpan(a.Workflow.Def.Red), true
		}
		return diag.Span{}, false
	}

	nsName := idents[0].Text()
	ns, ok := a.Namespaces[nsName]
	if !ok {
		return diag.Span{}, false
	}
	if idx == 0 {
		return ns.Span, true
	}
	if ns.Dep == nil {
		return diag.Span{}, false
	}
	targetName := idents[1].Text()
	if ta, ok := ns.Dep.Tasks[targetName]; ok {
		return nameTokenSpan(ta.Def.Red), true
	}
	if ns.Dep.Workflow != nil && ns.Dep.Workflow.Def.Name() == targetName {
		return nameTokenSpan(ns.Dep.Workflow.Def.Red), true
	}
	return diag.Span{}, false
}

// resolveAccessMember handles `alias.output` member access on a resolved
// call, jumping to the output declaration in the callee's output section
// (which may live in a different document via ns.Dep). Struct-field access
// is not resolved to a declaration site; member access on anything else
// returns false.
func resolveAccessMember(doc ast.Document, a *analysis.Analysis, access *syntax.RedNode, member string) (diag.Span, bool) {
	if a.Workflow == nil {
		return diag.Span{}, false
	}
	base, ok := ast.Expr{Node: ast.Node{Red: access}}.Target()
	if !ok || base.Kind() != syntax.NameRefNode {
		return diag.Span{}, false
	}
	alias := base.Name()
	call, ok := a.Workflow.Calls[alias]
	if !ok {
		return diag.Span{}, false
	}

	var taskDef ast.TaskDefinition
	var haveTask bool
	if call.Namespace == "" {
		if ta, ok := a.Tasks[call.Target]; ok {
			taskDef, haveTask = ta.Def, true
		}
	} else if ns, ok := a.Namespaces[call.Namespace]; ok && ns.Dep != nil {
		if ta, ok := ns.Dep.Tasks[call.Target]; ok {
			taskDef, haveTask = ta.Def, true
		}
	}
	if !haveTask {
		return diag.Span{}, false
	}
	out, ok := taskDef.Output()
	if !ok {
		return diag.Span{}, false
	}
	for _, d := range out.Decls() {
		if d.Name() == member {
			return nameTokenSpan(d.Red), true
		}
	}
	return diag.Span{}, false
}

// resolveNameRef resolves a plain identifier reference to a call alias, a
// scatter loop variable, or an input/output/private declaration, via the
// position-scoped Scope vector (spec.md sec 3) of whichever task or
// workflow's span contains tok: a reference inside one scatter/conditional
// body only resolves against its own enclosing scopes, never a
// same-named declaration in a sibling block.
func resolveNameRef(a *analysis.Analysis, tok *syntax.RedToken, name string) (diag.Span, bool) {
	if a.Workflow != nil && containsOffset(a.Workflow.Def.Red, tok.Span()) {
		if span, ok := lookupInScopes(a.Workflow.Scopes, tok.Span().Start, name); ok {
			return span, true
		}
	}
	for _, task := range a.Tasks {
		if !containsOffset(task.Def.Red, tok.Span()) {
			continue
		}
		if span, ok := lookupInScopes(task.Scopes, tok.Span().Start, name); ok {
			return span, true
		}
	}
	return diag.Span{}, false
}

func lookupInScopes(scopes analysis.Scopes, offset uint32, name string) (diag.Span, bool) {
	idx, ok := scopes.FindByPosition(offset)
	if !ok {
		return diag.Span{}, false
	}
	entry, ok := scopes.Lookup(idx, name)
	if !ok {
		return diag.Span{}, false
	}
	return entry.Span, true
}

func containsOffset(n *syntax.RedNode, span diag.Span) bool {
	return n.Span().Start <= span.Start && span.End() <= n.Span().End()
}
