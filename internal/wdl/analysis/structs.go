package analysis

import (
	"github.com/dekarrin/wdl/internal/util"
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/dekarrin/wdl/internal/wdl/types"
)

// Struct is the analyzer's record of one struct definition: its
// declaration, the namespace it was imported through (empty for a locally
// defined struct), and its resolved Type, nil if resolution failed
// (recursive struct).
type Struct struct {
	Def       ast.StructDefinition
	Namespace string
	Type      *types.Type
}

// resolveStructs computes every local struct's Type, detecting recursion
// before attempting resolution so a cycle leaves every member of the cycle
// with Type == nil rather than stack-overflowing, and otherwise resolves in
// dependency order so a struct referencing another struct (acyclically)
// always sees its dependency's Type already computed.
func resolveStructs(defs []ast.StructDefinition, imported map[string]Struct) (map[string]Struct, []diag.Diagnostic) {
	result := make(map[string]Struct, len(defs)+len(imported))
	for name, s := range imported {
		result[name] = s
	}
	byName := make(map[string]ast.StructDefinition, len(defs))
	for _, d := range defs {
		result[d.Name()] = Struct{Def: d}
		byName[d.Name()] = d
	}

	cyclic := structsInCycles(byName)

	var diags []diag.Diagnostic
	resolved := map[string]types.Type{}
	for name, s := range imported {
		if s.Type != nil {
			resolved[name] = *s.Type
		}
	}

	var resolveOne func(name string) *types.Type
	resolveOne = func(name string) *types.Type {
		if ty, ok := resolved[name]; ok {
			return &ty
		}
		def, ok := byName[name]
		if !ok {
			return nil // unresolvedTypeRefDiagnostics reports this case
		}
		if cyclic[name] {
			return nil
		}
		members := make([]types.Member, 0, len(def.Members()))
		for _, m := range def.Members() {
			tn, ok := m.TypeNode()
			if !ok {
				continue
			}
			members = append(members, types.Member{Name: m.Name(), Type: resolveMemberTypeNode(tn, resolveOne)})
		}
		ty := types.NewStruct(name, members, false)
		resolved[name] = ty
		return &ty
	}

	for _, d := range defs {
		name := d.Name()
		if cyclic[name] {
			diags = append(diags, diag.Errorf(
				"struct \""+name+"\" is recursively defined").
				WithRule("recursive-struct").
				WithPrimary(d.Span()))
			result[name] = Struct{Def: d}
			continue
		}
		ty := resolveOne(name)
		result[name] = Struct{Def: d, Type: ty}
		for _, m := range d.Members() {
			if tn, ok := m.TypeNode(); ok {
				diags = append(diags, unresolvedTypeRefDiagnostics(tn, byName, imported)...)
			}
		}
	}
	return result, diags
}

// unresolvedTypeRefDiagnostics walks n (a member's type node) for every
// TypeRefNode naming neither a local nor an imported struct and reports it,
// mirroring referencedStructNames' walk but reporting the miss instead of
// silently ignoring it.
func unresolvedTypeRefDiagnostics(n *syntax.RedNode, byName map[string]ast.StructDefinition, imported map[string]Struct) []diag.Diagnostic {
	if n == nil {
		return nil
	}
	if n.Kind() == syntax.TypeRefNode {
		tok := n.FirstChildTokenOfKind(syntax.Ident)
		if tok == nil {
			return nil
		}
		name := tok.Text()
		if _, ok := byName[name]; ok {
			return nil
		}
		if _, ok := imported[name]; ok {
			return nil
		}
		return []diag.Diagnostic{diag.Errorf(
			"\""+name+"\" is not a known struct type").
			WithRule("unknown-type").
			WithPrimary(tok.Span())}
	}
	var out []diag.Diagnostic
	for _, c := range typeChildren(n) {
		out = append(out, unresolvedTypeRefDiagnostics(c, byName, imported)...)
	}
	return out
}

// structsInCycles returns the set of local struct names that participate
// in a reference cycle (directly or through a chain of other local
// structs), via member types that name another local struct either
// directly or nested inside Array/Map/Pair/optional.
func structsInCycles(byName map[string]ast.StructDefinition) map[string]bool {
	refs := make(map[string][]string, len(byName))
	for name, def := range byName {
		for _, m := range def.Members() {
			tn, ok := m.TypeNode()
			if !ok {
				continue
			}
			refs[name] = append(refs[name], referencedStructNames(tn, byName)...)
		}
	}

	cyclic := map[string]bool{}
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := map[string]int{}
	var visit func(name string, stack util.Set[string]) bool
	visit = func(name string, stack util.Set[string]) bool {
		if state[name] == done {
			return false
		}
		if stack.Has(name) {
			cyclic[name] = true
			return true
		}
		stack.Add(name)
		state[name] = visiting
		anyCycle := false
		for _, dep := range refs[name] {
			if visit(dep, stack) {
				cyclic[name] = true
				anyCycle = true
			}
		}
		stack.Remove(name)
		state[name] = done
		return anyCycle
	}
	for name := range byName {
		visit(name, util.NewSet[string]())
	}
	return cyclic
}

// referencedStructNames collects every local struct name a type node names,
// looking through Array/Map/Pair wrapping to find nested TypeRefNode
// occurrences.
func referencedStructNames(n *syntax.RedNode, byName map[string]ast.StructDefinition) []string {
	if n == nil {
		return nil
	}
	if n.Kind() == syntax.TypeRefNode {
		if tok := n.FirstChildTokenOfKind(syntax.Ident); tok != nil {
			if _, ok := byName[tok.Text()]; ok {
				return []string{tok.Text()}
			}
		}
		return nil
	}
	var out []string
	for _, c := range typeChildren(n) {
		out = append(out, referencedStructNames(c, byName)...)
	}
	return out
}

func resolveMemberTypeNode(tn *syntax.RedNode, resolveStruct func(string) *types.Type) types.Type {
	return resolveTypeNodeVia(tn, resolveStruct)
}
