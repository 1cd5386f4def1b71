package analysis

import (
	"sort"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/dekarrin/wdl/internal/wdl/types"
)

// ScopeEntry records where one name was declared within a Scope, for
// hover/goto-definition, and its resolved type.
type ScopeEntry struct {
	Span diag.Span
	Type types.Type
}

// Scope is one name-visibility region within a task or workflow: the span
// of source its names are visible across, and Parent, the index of the
// immediately enclosing Scope in the owning Scopes vector (-1 for a
// task/workflow's own top-level scope), per spec.md sec 3.
type Scope struct {
	Parent int
	Span   diag.Span
	names  map[string]ScopeEntry
}

func newScope(parent int, span diag.Span) Scope {
	return Scope{Parent: parent, Span: span, names: map[string]ScopeEntry{}}
}

func (s *Scope) declare(name string, entry ScopeEntry) {
	s.names[name] = entry
}

// Scopes is a per-task/per-workflow vector of Scope. Scopes are appended in
// DFS pre-order as their bodies are walked, so the vector is already sorted
// by Span.Start and a child scope's Span always nests inside its Parent's.
type Scopes []Scope

// FindByPosition returns the index of the innermost Scope containing
// offset, per spec.md sec 8's find_scope_by_position property: binary
// search locates the last scope starting at or before offset, then walks
// outward through earlier entries until one actually contains offset
// (needed since a later, non-ancestor scope can also start before offset).
func (ss Scopes) FindByPosition(offset uint32) (int, bool) {
	idx := sort.Search(len(ss), func(i int) bool { return ss[i].Span.Start > offset }) - 1
	for idx >= 0 {
		if ss[idx].Span.Start <= offset && offset < ss[idx].Span.End() {
			return idx, true
		}
		idx--
	}
	return -1, false
}

// Lookup resolves name starting at scope idx and walking outward through
// Parent links, returning the innermost match.
func (ss Scopes) Lookup(idx int, name string) (ScopeEntry, bool) {
	for idx >= 0 {
		if e, ok := ss[idx].names[name]; ok {
			return e, true
		}
		idx = ss[idx].Parent
	}
	return ScopeEntry{}, false
}

// buildTaskScopes builds the single flat Scope covering a task: WDL tasks
// have no nested name-visibility blocks, so inputs, private decls, and
// outputs all share one scope spanning the whole task.
func buildTaskScopes(task ast.TaskDefinition, ta *TaskAnalysis, structTypes map[string]types.Type) Scopes {
	root := newScope(-1, task.Span())
	if in, ok := task.Input(); ok {
		for _, d := range in.Decls() {
			root.declare(d.Name(), ScopeEntry{Span: identSpan(d.Red, task.Span()), Type: ta.Inputs[d.Name()]})
		}
	}
	for _, d := range task.PrivateDecls() {
		root.declare(d.Name(), ScopeEntry{
			Span: identSpan(d.Red, d.Span()),
			Type: declaredType(ast.Decl{Node: d.Node}, structTypes),
		})
	}
	if out, ok := task.Output(); ok {
		for _, d := range out.Decls() {
			root.declare(d.Name(), ScopeEntry{Span: identSpan(d.Red, d.Span()), Type: ta.Outputs[d.Name()]})
		}
	}
	return Scopes{root}
}

// buildWorkflowScopes builds a workflow's Scope tree: one root scope for
// inputs/outputs/top-level statements, plus one nested scope per scatter
// and conditional body so a name declared inside one block is never
// visible to a sibling block with the same span-overlapping position but a
// different lexical parent.
func buildWorkflowScopes(wf ast.WorkflowDefinition, wa *WorkflowAnalysis, structTypes map[string]types.Type) Scopes {
	ss := Scopes{newScope(-1, wf.Span())}
	if in, ok := wf.Input(); ok {
		for _, d := range in.Decls() {
			ss[0].declare(d.Name(), ScopeEntry{Span: identSpan(d.Red, d.Span()), Type: wa.Inputs[d.Name()]})
		}
	}
	addWorkflowScopeStatements(&ss, 0, wf.Body(), wa, structTypes)
	if out, ok := wf.Output(); ok {
		for _, d := range out.Decls() {
			ss[0].declare(d.Name(), ScopeEntry{Span: identSpan(d.Red, d.Span()), Type: wa.Outputs[d.Name()]})
		}
	}
	return ss
}

func addWorkflowScopeStatements(ss *Scopes, parentIdx int, stmts []ast.WorkflowStatement, wa *WorkflowAnalysis, structTypes map[string]types.Type) {
	for _, s := range stmts {
		if d, ok := s.AsDecl(); ok {
			(*ss)[parentIdx].declare(d.Name(), ScopeEntry{
				Span: identSpan(d.Red, d.Span()),
				Type: declaredType(d, structTypes),
			})
			continue
		}
		if call, ok := s.AsCall(); ok {
			var ty types.Type
			if ca, ok := wa.Calls[call.Alias()]; ok {
				ty = types.NewCall(ca.Namespace, membersFromTypes(ca.Outputs))
			}
			(*ss)[parentIdx].declare(call.Alias(), ScopeEntry{Span: callTargetSpan(call), Type: ty})
			continue
		}
		if sc, ok := s.AsScatter(); ok {
			*ss = append(*ss, newScope(parentIdx, sc.Span()))
			childIdx := len(*ss) - 1
			(*ss)[childIdx].declare(sc.Variable(), ScopeEntry{Span: identSpan(sc.Red, sc.Span())})
			addWorkflowScopeStatements(ss, childIdx, sc.Body(), wa, structTypes)
			continue
		}
		if cond, ok := s.AsConditional(); ok {
			*ss = append(*ss, newScope(parentIdx, cond.Span()))
			childIdx := len(*ss) - 1
			addWorkflowScopeStatements(ss, childIdx, cond.Body(), wa, structTypes)
			continue
		}
	}
}

// identSpan returns n's first direct Ident child's span, falling back to
// fallback (typically the declaring node's own span) if n has none.
func identSpan(n *syntax.RedNode, fallback diag.Span) diag.Span {
	if tok := n.FirstChildTokenOfKind(syntax.Ident); tok != nil {
		return tok.Span()
	}
	return fallback
}

// callTargetSpan returns the span goto-definition on a call alias jumps to:
// the call's target name, not the alias itself, so "go to definition" on a
// call reference lands on the task/workflow it invokes.
func callTargetSpan(c ast.CallStatement) diag.Span {
	if n := c.Red.FirstChildNodeOfKind(syntax.CallTargetNode); n != nil {
		return identSpan(n, c.Span())
	}
	return c.Span()
}
