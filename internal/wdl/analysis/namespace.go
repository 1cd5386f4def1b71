package analysis

import (
	"strings"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
)

// Namespace is the analyzer's record of one successfully imported document:
// its alias, source URI, and the struct/task/workflow exports it
// contributes to the importing document's scope.
type Namespace struct {
	Alias    string
	URI      string
	Span     diag.Span
	Used     bool
	Excepted bool
	Structs  map[string]Struct
	Dep      *Analysis
}

// Importer supplies the document-graph bookkeeping that import resolution
// needs but does not own: resolving a relative import URI, recording the
// dependency edge (refusing it if it would cycle), and looking up the
// dependency's already-computed Analysis. This is the seam between the
// per-document analyzer and the multi-document coordinator.
type Importer interface {
	ResolveURI(base, ref string) string
	AddDependencyEdge(from, to string) bool
	Lookup(uri string) (*Analysis, bool)
}

// resolveImports processes every import statement in doc in source order,
// per spec.md sec 4.7 step 1.
func resolveImports(uri string, doc ast.Document, imp Importer) (map[string]*Namespace, []diag.Diagnostic) {
	namespaces := make(map[string]*Namespace)
	var diags []diag.Diagnostic

	if imp == nil {
		return namespaces, diags
	}

	for _, stmt := range doc.Imports() {
		target := imp.ResolveURI(uri, unquote(stmt.URI()))
		alias, hasAlias := stmt.Alias()
		if !hasAlias {
			alias = defaultAlias(target)
		}

		if _, taken := namespaces[alias]; taken {
			diags = append(diags, diag.Errorf(
				"namespace \""+alias+"\" is imported more than once").
				WithRule("duplicate-namespace").
				WithPrimary(stmt.Span()))
			continue
		}

		if !imp.AddDependencyEdge(uri, target) {
			diags = append(diags, diag.Errorf(
				"importing \""+target+"\" would create an import cycle").
				WithRule("import-cycle").
				WithPrimary(stmt.Span()))
			continue
		}

		dep, ok := imp.Lookup(target)
		if !ok {
			diags = append(diags, diag.Errorf(
				"could not resolve import \""+target+"\"").
				WithRule("unresolved-import").
				WithPrimary(stmt.Span()))
			continue
		}

		renames := map[string]string{}
		for _, a := range stmt.Aliases() {
			old, new := a.Names()
			renames[old] = new
		}

		ns := &Namespace{
			Alias:   alias,
			URI:     target,
			Span:    stmt.Span(),
			Structs: map[string]Struct{},
			Dep:     dep,
		}
		for name, s := range dep.Structs {
			localName := name
			if renamed, ok := renames[name]; ok {
				localName = renamed
			}
			s.Namespace = alias
			ns.Structs[localName] = s
		}

		namespaces[alias] = ns
	}

	return namespaces, diags
}

func unquote(lit string) string {
	s := strings.TrimSpace(lit)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// defaultAlias derives the implicit namespace name WDL assigns an import
// with no `as` clause: the URI's final path segment, minus its extension.
func defaultAlias(uri string) string {
	base := uri
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".wdl")
	return base
}
