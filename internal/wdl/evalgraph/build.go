package evalgraph

import (
	"fmt"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// Result is a built graph plus whatever diagnostics its construction
// produced: conflicting names, self-references, and rejected cycle edges.
type Result struct {
	Graph *Graph
	Diags []diag.Diagnostic
}

// versionAllowsTaskVariable reports whether version permits the implicit
// "task" variable in a command/output section. Mirrors
// validate.versionAtLeast1_2; duplicated here rather than shared since the
// two packages have no other reason to depend on each other.
func versionAllowsTaskVariable(version string) bool {
	return version == "1.2"
}

// BuildTask constructs the evaluation graph for a task: input and private
// declarations, the command section, runtime/requirements/hints, and
// outputs, wired per spec.md sec 4.9. version is the document's declared
// WDL version string (e.g. "1.2"); it gates whether the implicit "task"
// variable is accepted in the command and output sections.
func BuildTask(task ast.TaskDefinition, version string) Result {
	b := &builder{g: NewGraph(), allowTaskVar: versionAllowsTaskVariable(version)}

	if in, ok := task.Input(); ok {
		for _, d := range in.Decls() {
			b.registerDecl(InputDecl, d)
		}
	}
	for _, d := range task.PrivateDecls() {
		b.registerDecl(PrivateDecl, ast.Decl{Node: d.Node})
	}

	var cmdIdx int
	var hasCmd bool
	if cmd, ok := task.Command(); ok {
		cmdIdx, _ = b.g.AddNode(Node{Kind: Command, Name: "command", Red: cmd.Red})
		hasCmd = true
		for _, ph := range cmd.Placeholders() {
			if e, ok := ph.Expr(); ok {
				b.addFreeNameEdges(e, cmdIdx, true)
			}
		}
	}

	if rt, ok := task.Runtime(); ok {
		b.addKVSection(Runtime, "runtime", rt.Node, rt.Items(), cmdIdx, hasCmd)
	}
	if req, ok := task.Requirements(); ok {
		b.addKVSection(Requirements, "requirements", req.Node, req.Items(), cmdIdx, hasCmd)
	}
	if hints, ok := task.Hints(); ok {
		b.addKVSection(Hints, "hints", hints.Node, hints.Items(), cmdIdx, hasCmd)
	}

	if out, ok := task.Output(); ok {
		for _, d := range out.Decls() {
			idx := b.registerDecl(OutputDecl, ast.Decl{Node: d.Node})
			if idx < 0 {
				continue
			}
			if hasCmd {
				b.g.AddEdge(cmdIdx, idx)
			}
			if e, ok := d.Expr(); ok {
				b.addFreeNameEdges(e, idx, true)
			}
		}
	}

	return Result{Graph: b.g, Diags: b.diags}
}

// addKVSection registers a runtime/requirements/hints section as a single
// node, wires command -> itself (so command depends on it, per spec.md's
// "runtime/requirements/hints -> command" edge direction) and wires every
// referenced declaration -> this node.
func (b *builder) addKVSection(kind NodeKind, name string, section ast.Node, items []ast.KVItem, cmdIdx int, hasCmd bool) {
	idx, added := b.g.AddNode(Node{Kind: kind, Name: name, Red: section.Red})
	if !added {
		return
	}
	if hasCmd {
		b.g.AddEdge(idx, cmdIdx)
	}
	for _, item := range items {
		if e, ok := item.Value(); ok {
			b.addFreeNameEdges(e, idx, false)
		}
	}
}

// BuildWorkflow constructs the evaluation graph for a workflow: input
// declarations, the statement body (private decls, calls, scatters,
// conditionals, recursively), and outputs.
func BuildWorkflow(wf ast.WorkflowDefinition) Result {
	b := &builder{g: NewGraph()}

	if in, ok := wf.Input(); ok {
		for _, d := range in.Decls() {
			b.registerDecl(InputDecl, d)
		}
	}

	b.addStatements(wf.Body())

	if out, ok := wf.Output(); ok {
		for _, d := range out.Decls() {
			idx := b.registerDecl(OutputDecl, ast.Decl{Node: d.Node})
			if idx < 0 {
				continue
			}
			if e, ok := d.Expr(); ok {
				b.addFreeNameEdges(e, idx, false)
			}
		}
	}

	return Result{Graph: b.g, Diags: b.diags}
}

func (b *builder) addStatements(stmts []ast.WorkflowStatement) {
	for _, s := range stmts {
		switch {
		case isDecl(s):
			d, _ := s.AsDecl()
			kind := PrivateDecl
			idx := b.registerDecl(kind, d)
			if idx < 0 {
				continue
			}
			if bound, ok := d.AsBound(); ok {
				if e, ok := bound.Expr(); ok {
					b.addFreeNameEdges(e, idx, false)
				}
			}
		case isCall(s):
			call, _ := s.AsCall()
			idx, added := b.g.AddNode(Node{Kind: Call, Name: call.Alias(), Red: call.Red})
			if !added {
				b.conflict(call.Alias(), call.Span())
				continue
			}
			for _, in := range call.Inputs() {
				if e, ok := in.Expr(); ok {
					b.addFreeNameEdges(e, idx, false)
				}
			}
		case isScatter(s):
			sc, _ := s.AsScatter()
			idx, added := b.g.AddNode(Node{Kind: Scatter, Name: "scatter:" + sc.Variable(), Red: sc.Red})
			if !added {
				b.conflict(sc.Variable(), sc.Span())
				continue
			}
			if it, ok := sc.Iterable(); ok {
				b.addFreeNameEdges(it, idx, false)
			}
			b.g.byName[sc.Variable()] = idx
			b.addStatements(sc.Body())
		case isConditional(s):
			cond, _ := s.AsConditional()
			idx, _ := b.g.AddNode(Node{Kind: Conditional, Name: conditionalNodeName(cond), Red: cond.Red})
			if c, ok := cond.Condition(); ok {
				b.addFreeNameEdges(c, idx, false)
			}
			b.addStatements(cond.Body())
		}
	}
}

func isDecl(s ast.WorkflowStatement) bool       { _, ok := s.AsDecl(); return ok }
func isCall(s ast.WorkflowStatement) bool       { _, ok := s.AsCall(); return ok }
func isScatter(s ast.WorkflowStatement) bool    { _, ok := s.AsScatter(); return ok }
func isConditional(s ast.WorkflowStatement) bool { _, ok := s.AsConditional(); return ok }

// conditionalNodeName gives each conditional a unique internal graph key;
// conditionals introduce no name of their own for other statements to
// reference.
func conditionalNodeName(c ast.ConditionalStatement) string {
	return fmt.Sprintf("if@%d", c.Span().Start)
}

type builder struct {
	g            *Graph
	diags        []diag.Diagnostic
	allowTaskVar bool
}

// registerDecl adds a decl node, returning -1 (and recording a
// conflicting-name diagnostic) if the name is already taken in this
// task/workflow.
func (b *builder) registerDecl(kind NodeKind, d ast.Decl) int {
	idx, added := b.g.AddNode(Node{Kind: kind, Name: d.Name(), Red: d.Red})
	if !added {
		b.conflict(d.Name(), d.Span())
		return -1
	}
	return idx
}

func (b *builder) conflict(name string, span diag.Span) {
	b.diags = append(b.diags, diag.Errorf(
		"\""+name+"\" conflicts with a previous declaration in this scope").
		WithRule("conflicting-name").
		WithPrimary(span))
}

// addFreeNameEdges walks e for every free NameRefNode it contains and, for
// each that resolves to a known node, adds an edge from that node to
// toIdx. inTaskSection marks call sites within a task's command/output
// sections, the only places the implicit "task" name is structurally
// legal; whether it is actually accepted there further depends on
// b.allowTaskVar (WDL >= 1.2, per spec.md sec 4.9), since it needs no edge
// since it always refers to the enclosing task itself.
func (b *builder) addFreeNameEdges(e ast.Expr, toIdx int, inTaskSection bool) {
	for _, ref := range freeNameRefs(e) {
		name := ref.Name()
		if name == "task" {
			switch {
			case !inTaskSection:
				b.diags = append(b.diags, diag.Errorf(
					"\"task\" is only available in a task's command and output sections").
					WithRule("task-variable-scope").
					WithPrimary(ref.Span()))
			case !b.allowTaskVar:
				b.diags = append(b.diags, diag.Errorf(
					"the implicit \"task\" variable requires WDL version 1.2 or later").
					WithRule("task-variable-version").
					WithPrimary(ref.Span()))
			}
			continue
		}
		idx, ok := b.g.Lookup(name)
		if !ok {
			b.diags = append(b.diags, diag.Errorf(
				"\""+name+"\" is not defined").
				WithRule("unknown-name").
				WithPrimary(ref.Span()))
			continue
		}
		if idx == toIdx {
			b.diags = append(b.diags, diag.Errorf(
				"\""+name+"\" is defined in terms of itself").
				WithRule("self-referential").
				WithLabel(b.g.Nodes[toIdx].Red.Span(), "declared here").
				WithPrimary(ref.Span()))
			continue
		}
		if !b.g.AddEdge(idx, toIdx) {
			b.diags = append(b.diags, diag.Errorf(
				"reference to \""+name+"\" would create a dependency cycle").
				WithRule("reference-cycle").
				WithLabel(b.g.Nodes[idx].Red.Span(), "the other declaration is here").
				WithPrimary(ref.Span()))
		}
	}
}

// freeNameRefs returns every NameRefNode inside e, in source order. Member
// access property names and function-call names are plain tokens, not
// NameRefNode, so a bare kind-match walk already excludes them.
func freeNameRefs(e ast.Expr) []ast.Expr {
	var out []ast.Expr
	v := ast.TypedVisitor{
		OnExpr: func(x ast.Expr, reason syntax.Reason) {
			if reason == syntax.Enter && x.Kind() == syntax.NameRefNode {
				out = append(out, x)
			}
		},
	}
	v.Walk(e.Red)
	return out
}
