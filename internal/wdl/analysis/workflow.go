package analysis

import (
	"strings"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/evalgraph"
	"github.com/dekarrin/wdl/internal/wdl/types"
)

// WorkflowAnalysis is the resolved shape of a document's workflow: its
// declared input/output types, its evaluation graph, and the resolved
// target and output type of every call it contains.
type WorkflowAnalysis struct {
	Def     ast.WorkflowDefinition
	Inputs  map[string]types.Type
	Outputs map[string]types.Type
	Calls   map[string]*CallAnalysis
	Graph   *evalgraph.Graph
	Order   []int
	Scopes  Scopes
}

// CallAnalysis is the resolved shape of one `call` statement: which
// task/workflow it targets (local, or through an imported namespace) and
// its output types, wrapped in Array[...] for each enclosing scatter and
// made optional if nested inside a conditional, per spec.md sec 4.7 step 4.
type CallAnalysis struct {
	Alias     string
	Namespace string
	Target    string
	Outputs   map[string]types.Type
}

// analyzeWorkflow builds the workflow's evaluation graph, resolves every
// call's target and output types, and finalizes the input/output tables.
func analyzeWorkflow(wf ast.WorkflowDefinition, localTasks map[string]*TaskAnalysis, namespaces map[string]*Namespace, structTypes map[string]types.Type) (*WorkflowAnalysis, []diag.Diagnostic) {
	res := evalgraph.BuildWorkflow(wf)
	diags := append([]diag.Diagnostic(nil), res.Diags...)

	wa := &WorkflowAnalysis{
		Def:     wf,
		Inputs:  map[string]types.Type{},
		Outputs: map[string]types.Type{},
		Calls:   map[string]*CallAnalysis{},
		Graph:   res.Graph,
	}

	env := make(typeEnv)
	if in, ok := wf.Input(); ok {
		for _, d := range in.Decls() {
			ty := declaredType(d, structTypes)
			wa.Inputs[d.Name()] = ty
			env[d.Name()] = ty
		}
	}

	w := &workflowWalker{localTasks: localTasks, namespaces: namespaces, calls: wa.Calls, env: env, structTypes: structTypes}
	w.walkStatements(wf.Body(), 0, false)

	if out, ok := wf.Output(); ok {
		for _, d := range out.Decls() {
			declared := declaredType(ast.Decl{Node: d.Node}, structTypes)
			wa.Outputs[d.Name()] = declared
			if expr, ok := d.Expr(); ok {
				actual := checkExpr(expr, w.env, &w.diags)
				w.diags = append(w.diags, checkCoercion(declared, actual, expr.Span(), "output \""+d.Name()+"\"", "type-mismatch")...)
			}
		}
	}
	diags = append(diags, w.diags...)
	wa.Scopes = buildWorkflowScopes(wf, wa, structTypes)

	if order, ok := res.Graph.TopoSort(); ok {
		wa.Order = order
	} else {
		diags = append(diags, diag.Errorf(
			"workflow \""+wf.Name()+"\" has an evaluation cycle that could not be fully ordered").
			WithRule("evaluation-cycle").
			WithPrimary(wf.Span()))
	}

	return wa, diags
}

type workflowWalker struct {
	localTasks  map[string]*TaskAnalysis
	namespaces  map[string]*Namespace
	calls       map[string]*CallAnalysis
	env         typeEnv
	structTypes map[string]types.Type
	diags       []diag.Diagnostic
}

func (w *workflowWalker) walkStatements(stmts []ast.WorkflowStatement, arrayDepth int, optional bool) {
	for _, s := range stmts {
		if d, ok := s.AsDecl(); ok {
			declared := declaredType(d, w.structTypes)
			w.env[d.Name()] = declared
			if bound, ok := d.AsBound(); ok {
				if expr, ok := bound.Expr(); ok {
					actual := checkExpr(expr, w.env, &w.diags)
					w.diags = append(w.diags, checkCoercion(declared, actual, expr.Span(), "declaration \""+d.Name()+"\"", "type-mismatch")...)
				}
			}
			continue
		}
		if call, ok := s.AsCall(); ok {
			w.resolveCall(call, arrayDepth, optional)
			continue
		}
		if sc, ok := s.AsScatter(); ok {
			var elemType types.Type
			if it, ok := sc.Iterable(); ok {
				itType := checkExpr(it, w.env, &w.diags)
				if itType.Kind() == types.Array {
					elemType = *itType.Elem
				}
			}
			w.env[sc.Variable()] = elemType
			w.walkStatements(sc.Body(), arrayDepth+1, optional)
			continue
		}
		if cond, ok := s.AsConditional(); ok {
			if c, ok := cond.Condition(); ok {
				condType := checkExpr(c, w.env, &w.diags)
				if !condType.IsUnion() && !types.CoercesTo(condType, types.NewPrimitive(types.Boolean, false)) {
					w.diags = append(w.diags, diag.Errorf(
						"conditional expression must be a Boolean, got "+condType.String()).
						WithRule("type-mismatch").
						WithPrimary(c.Span()))
				}
			}
			w.walkStatements(cond.Body(), arrayDepth, true)
			continue
		}
	}
}

// resolveCall looks `call` up against the current document's tasks first,
// then against imported namespaces, and records the (possibly wrapped)
// output types under the call's alias. An unresolved target produces an
// unknown-call-target diagnostic and leaves the call with no outputs.
func (w *workflowWalker) resolveCall(call ast.CallStatement, arrayDepth int, optional bool) {
	parts := call.TargetParts()
	alias := call.Alias()

	var outputs, inputs map[string]types.Type
	var nsName, targetName string

	switch len(parts) {
	case 1:
		targetName = parts[0]
		if ta, ok := w.localTasks[targetName]; ok {
			outputs, inputs = ta.Outputs, ta.Inputs
		}
	case 2:
		nsName, targetName = parts[0], parts[1]
		if ns, ok := w.namespaces[nsName]; ok {
			ns.Used = true
			if ns.Dep != nil {
				if ta, ok := ns.Dep.Tasks[targetName]; ok {
					outputs, inputs = ta.Outputs, ta.Inputs
				} else if ns.Dep.Workflow != nil && ns.Dep.Workflow.Def.Name() == targetName {
					outputs, inputs = ns.Dep.Workflow.Outputs, ns.Dep.Workflow.Inputs
				}
			}
		}
	}

	if outputs == nil {
		w.diags = append(w.diags, diag.Errorf(
			"call target \""+strings.Join(parts, ".")+"\" does not resolve to a known task or workflow").
			WithRule("unknown-call-target").
			WithPrimary(call.Span()))
	}

	for _, in := range call.Inputs() {
		expr, ok := in.Expr()
		if !ok {
			continue
		}
		actual := checkExpr(expr, w.env, &w.diags)
		declared, ok := inputs[in.Name()]
		if !ok {
			continue
		}
		w.diags = append(w.diags, checkCoercion(declared, actual, expr.Span(), "call input \""+in.Name()+"\"", "argument-type-mismatch")...)
	}

	wrapped := make(map[string]types.Type, len(outputs))
	for name, ty := range outputs {
		wrapped[name] = wrapCallOutput(ty, arrayDepth, optional)
	}

	w.calls[alias] = &CallAnalysis{Alias: alias, Namespace: nsName, Target: targetName, Outputs: wrapped}
	w.env[alias] = types.NewCall(nsName, membersFromTypes(wrapped))
}

func wrapCallOutput(ty types.Type, arrayDepth int, optional bool) types.Type {
	for i := 0; i < arrayDepth; i++ {
		ty = types.NewArray(ty, false, false)
	}
	if optional {
		ty = ty.AsOptional()
	}
	return ty
}
