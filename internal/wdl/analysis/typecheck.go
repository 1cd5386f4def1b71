package analysis

import (
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/dekarrin/wdl/internal/wdl/types"
)

// typeEnv is the flat name -> type table an expression type-checking pass
// resolves free names against: the name-lookup half of spec.md sec 4.7's
// EvaluationContext. It is rebuilt fresh per task/workflow, mirroring
// evalgraph's per-task/workflow Graph rather than a single shared scope.
type typeEnv map[string]types.Type

// checkCoercion reports a diagnostic under rule if actual cannot coerce to
// declared, per spec.md sec 4.8's coercion rules. what names the site for
// the message (e.g. "declaration \"x\"", "call input \"y\"").
func checkCoercion(declared, actual types.Type, span diag.Span, what, rule string) []diag.Diagnostic {
	if types.CoercesTo(actual, declared) {
		return nil
	}
	return []diag.Diagnostic{diag.Errorf(
		what+" expects "+declared.String()+" but is assigned "+actual.String()).
		WithRule(rule).
		WithPrimary(span)}
}

// checkExpr infers e's type against env, appending a diagnostic to diags for
// every member access targeting a non-struct-shaped type or naming an
// unknown member. Expression shapes this pass cannot confidently type
// (stdlib calls, struct/object literals) default to Union, per spec.md sec
// 7's policy of proceeding with Union rather than guessing.
func checkExpr(e ast.Expr, env typeEnv, diags *[]diag.Diagnostic) types.Type {
	switch e.Kind() {
	case syntax.LiteralIntegerNode:
		return types.NewPrimitive(types.Int, false)
	case syntax.LiteralFloatNode:
		return types.NewPrimitive(types.Float, false)
	case syntax.LiteralBooleanNode:
		return types.NewPrimitive(types.Boolean, false)
	case syntax.LiteralStringNode:
		return types.NewPrimitive(types.String, false)
	case syntax.LiteralNoneNode, syntax.LiteralNullNode:
		return types.Type{}
	case syntax.ParenthesizedExprNode, syntax.NegationExprNode:
		if operand, ok := e.Operand(); ok {
			return checkExpr(operand, env, diags)
		}
		return types.Type{}
	case syntax.LogicalNotExprNode:
		if operand, ok := e.Operand(); ok {
			checkExpr(operand, env, diags)
		}
		return types.NewPrimitive(types.Boolean, false)
	case syntax.NameRefNode:
		if t, ok := env[e.Name()]; ok {
			return t
		}
		return types.Type{}
	case syntax.LogicalOrExprNode, syntax.LogicalAndExprNode,
		syntax.EqualityExprNode, syntax.InequalityExprNode,
		syntax.LessExprNode, syntax.LessEqualExprNode,
		syntax.GreaterExprNode, syntax.GreaterEqualExprNode:
		if l, ok := e.Left(); ok {
			checkExpr(l, env, diags)
		}
		if r, ok := e.Right(); ok {
			checkExpr(r, env, diags)
		}
		return types.NewPrimitive(types.Boolean, false)
	case syntax.AdditionExprNode, syntax.SubtractionExprNode,
		syntax.MultiplicationExprNode, syntax.DivisionExprNode,
		syntax.ModuloExprNode, syntax.ExponentiationExprNode:
		var l, r types.Type
		if le, ok := e.Left(); ok {
			l = checkExpr(le, env, diags)
		}
		if re, ok := e.Right(); ok {
			r = checkExpr(re, env, diags)
		}
		return arithmeticResultType(l, r)
	case syntax.IfExprNode:
		if c, ok := e.Condition(); ok {
			checkExpr(c, env, diags)
		}
		var thenType types.Type
		if then, ok := e.Then(); ok {
			thenType = checkExpr(then, env, diags)
		}
		if els, ok := e.Else(); ok {
			checkExpr(els, env, diags)
		}
		return thenType
	case syntax.IndexExprNode:
		target, ok := e.Target()
		if !ok {
			return types.Type{}
		}
		t := checkExpr(target, env, diags)
		switch t.Kind() {
		case types.Array, types.Map:
			return *t.Elem
		}
		return types.Type{}
	case syntax.AccessExprNode:
		return checkAccessExpr(e, env, diags)
	case syntax.CallExprNode:
		for _, a := range e.CallArgs() {
			checkExpr(a, env, diags)
		}
		return types.Type{}
	case syntax.LiteralArrayNode:
		var elem types.Type
		for i, el := range e.ArrayElements() {
			t := checkExpr(el, env, diags)
			if i == 0 {
				elem = t
			}
		}
		return types.NewArray(elem, false, false)
	default:
		return types.Type{}
	}
}

// arithmeticResultType applies WDL's numeric-promotion rule for the binary
// arithmetic operators: String if either side is String (concatenation),
// else Float if either side is Float, else Int. A Union operand makes the
// result Union rather than guessing.
func arithmeticResultType(l, r types.Type) types.Type {
	if l.IsUnion() || r.IsUnion() {
		return types.Type{}
	}
	if l.Kind() == types.String || r.Kind() == types.String {
		return types.NewPrimitive(types.String, false)
	}
	if l.Kind() == types.Float || r.Kind() == types.Float {
		return types.NewPrimitive(types.Float, false)
	}
	return types.NewPrimitive(types.Int, false)
}

// checkAccessExpr type-checks a.b, requiring a to type to a Struct, Object,
// Call, Pair, or one of the WDL 1.2 Task/Hints/Input/Output scopes, and b to
// name one of its members.
func checkAccessExpr(e ast.Expr, env typeEnv, diags *[]diag.Diagnostic) types.Type {
	target, ok := e.Target()
	if !ok {
		return types.Type{}
	}
	t := checkExpr(target, env, diags)
	if t.IsUnion() {
		return types.Type{}
	}
	member := e.Name()

	if t.Kind() == types.Pair {
		switch member {
		case "left":
			return *t.Left
		case "right":
			return *t.Elem
		}
	} else {
		for _, m := range t.Members {
			if m.Name == member {
				return m.Type
			}
		}
	}

	switch t.Kind() {
	case types.Struct, types.Object, types.Call, types.Task, types.Hints, types.Input, types.Output, types.Pair:
		*diags = append(*diags, diag.Errorf(
			"\""+member+"\" is not a member of "+t.String()).
			WithRule("invalid-member-access").
			WithPrimary(e.Span()))
	default:
		*diags = append(*diags, diag.Errorf(
			"member access requires a struct, object, pair, or call result, got "+t.String()).
			WithRule("invalid-member-access").
			WithPrimary(e.Span()))
	}
	return types.Type{}
}

// checkPlaceholderTypes enforces the operand-type half of placeholder
// option legality that checkPlaceholder (structural legality) leaves to
// this resolved-type pass: sep= requires the placeholder's expression to be
// an Array, true=/false= requires it to be a Boolean.
func checkPlaceholderTypes(ph ast.Placeholder, env typeEnv, diags *[]diag.Diagnostic) {
	expr, ok := ph.Expr()
	if !ok {
		return
	}
	t := checkExpr(expr, env, diags)

	if _, hasSep := ph.SepOption(); hasSep && !t.IsUnion() && t.Kind() != types.Array {
		*diags = append(*diags, diag.Errorf(
			"placeholder expression must be an Array to use sep=, got "+t.String()).
			WithRule("placeholder-option-type").
			WithPrimary(expr.Span()))
	}
	if len(ph.TrueFalseOptions()) > 0 && !t.IsUnion() && !types.CoercesTo(t, types.NewPrimitive(types.Boolean, false)) {
		*diags = append(*diags, diag.Errorf(
			"placeholder expression must be a Boolean to use true=/false=, got "+t.String()).
			WithRule("placeholder-option-type").
			WithPrimary(expr.Span()))
	}

	if sep, ok := ph.SepOption(); ok {
		checkExpr(sep, env, diags)
	}
	if def, ok := ph.DefaultOption(); ok {
		checkExpr(def, env, diags)
	}
}

// checkTaskTypes runs the expression type-checking pass over one task:
// private declaration initializers, runtime/requirements/hints values,
// command placeholders, and output initializers.
func checkTaskTypes(task ast.TaskDefinition, ta *TaskAnalysis, structTypes map[string]types.Type) []diag.Diagnostic {
	var diags []diag.Diagnostic
	env := make(typeEnv, len(ta.Inputs))
	for name, t := range ta.Inputs {
		env[name] = t
	}

	for _, d := range task.PrivateDecls() {
		declared := declaredType(ast.Decl{Node: d.Node}, structTypes)
		env[d.Name()] = declared
		if expr, ok := d.Expr(); ok {
			actual := checkExpr(expr, env, &diags)
			diags = append(diags, checkCoercion(declared, actual, expr.Span(), "declaration \""+d.Name()+"\"", "type-mismatch")...)
		}
	}

	if cmd, ok := task.Command(); ok {
		for _, ph := range cmd.Placeholders() {
			checkPlaceholderTypes(ph, env, &diags)
		}
	}
	if rt, ok := task.Runtime(); ok {
		for _, item := range rt.Items() {
			if v, ok := item.Value(); ok {
				checkExpr(v, env, &diags)
			}
		}
	}
	if req, ok := task.Requirements(); ok {
		for _, item := range req.Items() {
			if v, ok := item.Value(); ok {
				checkExpr(v, env, &diags)
			}
		}
	}
	if hints, ok := task.Hints(); ok {
		for _, item := range hints.Items() {
			if v, ok := item.Value(); ok {
				checkExpr(v, env, &diags)
			}
		}
	}
	if out, ok := task.Output(); ok {
		for _, d := range out.Decls() {
			declared := ta.Outputs[d.Name()]
			if expr, ok := d.Expr(); ok {
				actual := checkExpr(expr, env, &diags)
				diags = append(diags, checkCoercion(declared, actual, expr.Span(), "output \""+d.Name()+"\"", "type-mismatch")...)
			}
		}
	}
	return diags
}

// membersFromTypes converts a name -> type table (a call's wrapped output
// types, or a task's declared inputs/outputs) into member list form for
// constructing a types.Type via NewCall/NewTaskScope. Order is arbitrary;
// member lookup is always by name.
func membersFromTypes(m map[string]types.Type) []types.Member {
	out := make([]types.Member, 0, len(m))
	for name, t := range m {
		out = append(out, types.Member{Name: name, Type: t})
	}
	return out
}
