// Package analysis implements the per-document analyzer (spec.md sec 4.7):
// import resolution, struct resolution, and task/workflow evaluation
// ordering and type resolution, producing a single immutable Analysis per
// document. It depends on validate for the structural precondition and
// evalgraph for per-task/workflow evaluation order, but knows nothing about
// the multi-document coordinator beyond the Importer seam it consumes.
package analysis

import (
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/dekarrin/wdl/internal/wdl/types"
	"github.com/dekarrin/wdl/internal/wdl/validate"
	"github.com/google/uuid"
)

// Analysis is the complete, immutable result of analyzing one document.
// Every field is populated even when diagnostics report errors, so a caller
// always has something to query; declarations that could not be resolved
// default to the Union type rather than being omitted.
type Analysis struct {
	ID          uuid.UUID
	URI         string
	Version     string
	Diagnostics []diag.Diagnostic
	Namespaces  map[string]*Namespace
	Structs     map[string]Struct
	Tasks       map[string]*TaskAnalysis
	Workflow    *WorkflowAnalysis
}

// AnalyzeDocument runs the full per-document analysis pipeline: validate,
// imports, structs, tasks, workflow, unused-import diagnostics, then sorts
// every diagnostic by primary span before returning. imp may be nil for a
// document with no imports (or when running analysis standalone, e.g. in
// tests); any import statement then fails to resolve.
func AnalyzeDocument(uri string, doc ast.Document, imp Importer) *Analysis {
	id, _ := uuid.NewRandom()
	a := &Analysis{
		ID:      id,
		URI:     uri,
		Tasks:   map[string]*TaskAnalysis{},
		Structs: map[string]Struct{},
	}
	a.Version, _ = doc.Version()

	a.Diagnostics = validate.Validate(doc)
	if diag.HasErrors(a.Diagnostics) {
		diag.SortBySpan(a.Diagnostics)
		return a
	}

	namespaces, importDiags := resolveImports(uri, doc, imp)
	a.Namespaces = namespaces
	a.Diagnostics = append(a.Diagnostics, importDiags...)

	importedStructs, conflictDiags := mergeImportedStructs(namespaces)
	a.Diagnostics = append(a.Diagnostics, conflictDiags...)

	structs, structDiags := resolveStructs(doc.Structs(), importedStructs)
	a.Structs = structs
	a.Diagnostics = append(a.Diagnostics, structDiags...)

	structTypes := map[string]types.Type{}
	for name, s := range structs {
		if s.Type != nil {
			structTypes[name] = *s.Type
		}
	}

	localStructNames := map[string]bool{}
	for _, d := range doc.Structs() {
		localStructNames[d.Name()] = true
	}

	for _, task := range doc.Tasks() {
		ta, taskDiags := analyzeTask(task, a.Version, structTypes)
		a.Tasks[task.Name()] = ta
		a.Diagnostics = append(a.Diagnostics, taskDiags...)
	}

	if wf, ok := doc.Workflow(); ok {
		wa, wfDiags := analyzeWorkflow(wf, a.Tasks, namespaces, structTypes)
		a.Workflow = wa
		a.Diagnostics = append(a.Diagnostics, wfDiags...)
	}

	markImportedTypeUsage(doc, namespaces, localStructNames)
	a.Diagnostics = append(a.Diagnostics, unusedImportDiagnostics(doc, namespaces)...)

	diag.SortBySpan(a.Diagnostics)
	return a
}

// mergeImportedStructs flattens every namespace's struct exports into one
// table, diagnosing two namespaces that export the same name with
// incompatible definitions (Open Question (ii)).
func mergeImportedStructs(namespaces map[string]*Namespace) (map[string]Struct, []diag.Diagnostic) {
	merged := map[string]Struct{}
	var diags []diag.Diagnostic
	for _, ns := range namespaces {
		for name, s := range ns.Structs {
			prior, exists := merged[name]
			if exists && !structSignaturesMatch(prior, s) {
				diags = append(diags, diag.Errorf(
					"imported struct \""+name+"\" conflicts with a previous import of a differently-defined struct of the same name").
					WithRule("conflicting-struct-import").
					WithPrimary(ns.Span))
				continue
			}
			merged[name] = s
		}
	}
	return merged, diags
}

// markImportedTypeUsage marks every namespace used if the document
// references one of its imported struct names anywhere a type is spelled
// out. Call-target usage is marked separately during call resolution.
func markImportedTypeUsage(doc ast.Document, namespaces map[string]*Namespace, localStructNames map[string]bool) {
	owner := map[string]*Namespace{}
	for _, ns := range namespaces {
		for name := range ns.Structs {
			if !localStructNames[name] {
				owner[name] = ns
			}
		}
	}
	if len(owner) == 0 {
		return
	}
	ast.TypedVisitor{
		OnOtherNode: func(n *syntax.RedNode, reason syntax.Reason) {
			if reason != syntax.Enter || n.Kind() != syntax.TypeRefNode {
				return
			}
			tok := n.FirstChildTokenOfKind(syntax.Ident)
			if tok == nil {
				return
			}
			if ns, ok := owner[tok.Text()]; ok {
				ns.Used = true
			}
		},
	}.Walk(doc.Red)
}

// unusedImportDiagnostics implements spec.md sec 4.7 step 5: any namespace
// whose Used flag is still false and which was not explicitly excepted
// produces a Note-severity diagnostic on the import statement.
func unusedImportDiagnostics(doc ast.Document, namespaces map[string]*Namespace) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, stmt := range doc.Imports() {
		alias, hasAlias := stmt.Alias()
		if !hasAlias {
			alias = defaultAlias(unquote(stmt.URI()))
		}
		ns, ok := namespaces[alias]
		if !ok || ns.Used || ns.Excepted {
			continue
		}
		diags = append(diags, diag.Notef(
			"namespace \""+alias+"\" is imported but never used").
			WithRule("unused-import").
			WithPrimary(stmt.Span()))
	}
	return diags
}
