package analysis

import (
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/evalgraph"
	"github.com/dekarrin/wdl/internal/wdl/types"
)

// TaskAnalysis is the resolved shape of one task: its declared input and
// output types, and the evaluation graph that orders its declarations,
// command, and runtime/requirements/hints sections.
type TaskAnalysis struct {
	Def     ast.TaskDefinition
	Inputs  map[string]types.Type
	Outputs map[string]types.Type
	Graph   *evalgraph.Graph
	Order   []int
	Scopes  Scopes
}

// analyzeTask builds a task's evaluation graph and its declared input/output
// type tables, per spec.md sec 4.7 step 3. version is the document's
// declared WDL version, threaded down to gate the implicit "task" variable
// (spec.md sec 4.9). structTypes supplies every struct name in scope (local
// and imported) for TypeRefNode resolution.
func analyzeTask(task ast.TaskDefinition, version string, structTypes map[string]types.Type) (*TaskAnalysis, []diag.Diagnostic) {
	res := evalgraph.BuildTask(task, version)
	diags := append([]diag.Diagnostic(nil), res.Diags...)

	ta := &TaskAnalysis{
		Def:     task,
		Inputs:  map[string]types.Type{},
		Outputs: map[string]types.Type{},
		Graph:   res.Graph,
	}

	if in, ok := task.Input(); ok {
		for _, d := range in.Decls() {
			ta.Inputs[d.Name()] = declaredType(d, structTypes)
		}
	}
	if out, ok := task.Output(); ok {
		for _, d := range out.Decls() {
			ta.Outputs[d.Name()] = declaredType(ast.Decl{Node: d.Node}, structTypes)
		}
	}

	diags = append(diags, checkTaskTypes(task, ta, structTypes)...)
	ta.Scopes = buildTaskScopes(task, ta, structTypes)

	if order, ok := res.Graph.TopoSort(); ok {
		ta.Order = order
	} else {
		diags = append(diags, diag.Errorf(
			"task \""+task.Name()+"\" has an evaluation cycle that could not be fully ordered").
			WithRule("evaluation-cycle").
			WithPrimary(task.Span()))
	}

	return ta, diags
}

// declaredType resolves a declaration node's type node to a types.Type,
// defaulting to Union (the zero value) for a malformed declaration with no
// type node, per spec.md sec 7's "name resolution" policy of defaulting to
// Union rather than failing the whole analysis.
func declaredType(d ast.Decl, structTypes map[string]types.Type) types.Type {
	tn, ok := d.TypeNode()
	if !ok {
		return types.Type{}
	}
	return resolveTypeNode(tn, structTypes)
}
