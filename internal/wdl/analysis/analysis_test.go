package analysis

import (
	"testing"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/parser"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, src string) ast.Document {
	t.Helper()
	out := parser.Parse(src)
	red := syntax.NewRoot(parser.Build(out))
	doc, ok := ast.CastDocument(red)
	require.True(t, ok)
	return doc
}

// fakeImporter resolves import URIs as-is (no relative-path joining) and
// looks dependencies up from a map pre-populated by the test, mimicking
// the document graph having already analyzed them in topological order.
type fakeImporter struct {
	docs     map[string]*Analysis
	cycleAt  map[string]bool // "from->to" pairs to report as cyclic
}

func (f *fakeImporter) ResolveURI(base, ref string) string { return ref }

func (f *fakeImporter) AddDependencyEdge(from, to string) bool {
	return !f.cycleAt[from+"->"+to]
}

func (f *fakeImporter) Lookup(uri string) (*Analysis, bool) {
	a, ok := f.docs[uri]
	return a, ok
}

func TestAnalyzeDocument_emptyWorkflow(t *testing.T) {
	doc := parseDoc(t, "version 1.1\nworkflow w {}\n")
	a := AnalyzeDocument("w.wdl", doc, nil)
	assert.Empty(t, a.Diagnostics)
	require.NotNil(t, a.Workflow)
	assert.Equal(t, "w", a.Workflow.Def.Name())
	assert.Empty(t, a.Workflow.Calls)
}

func TestAnalyzeDocument_selfReferenceDiagnostic(t *testing.T) {
	doc := parseDoc(t, "version 1.1\ntask t { input { Int x = x } command <<<>>> }\n")
	a := AnalyzeDocument("t.wdl", doc, nil)
	assert.True(t, hasRule(a.Diagnostics, "self-referential"))
}

func TestAnalyzeDocument_taskInputOutputTypes(t *testing.T) {
	src := `version 1.2
task greet {
  input {
    String name
  }
  command <<<
    echo ~{name}
  >>>
  output {
    String greeting = "hi " + name
  }
}
`
	doc := parseDoc(t, src)
	a := AnalyzeDocument("t.wdl", doc, nil)
	assert.Empty(t, a.Diagnostics)
	ta := a.Tasks["greet"]
	require.NotNil(t, ta)
	assert.Equal(t, "String", ta.Inputs["name"].String())
	assert.Equal(t, "String", ta.Outputs["greeting"].String())
}

func TestAnalyzeDocument_callOutputTypingAndWrapping(t *testing.T) {
	libSrc := `version 1.2
task t {
  output {
    String out = "x"
  }
  command <<<>>>
}
`
	lib := parseDoc(t, libSrc)
	libAnalysis := AnalyzeDocument("lib.wdl", lib, nil)
	require.Empty(t, libAnalysis.Diagnostics)

	mainSrc := `version 1.2
import "lib.wdl" as lib

workflow w {
  input {
    Array[String] names
  }
  call lib.t as direct
  scatter (n in names) {
    call lib.t as scattered
  }
  if (true) {
    call lib.t as conditional
  }
  output {
    String a = direct.out
    Array[String] b = scattered.out
    String? c = conditional.out
  }
}
`
	main := parseDoc(t, mainSrc)
	imp := &fakeImporter{docs: map[string]*Analysis{"lib.wdl": libAnalysis}}
	a := AnalyzeDocument("main.wdl", main, imp)
	assert.Empty(t, a.Diagnostics)

	require.NotNil(t, a.Workflow)
	direct := a.Workflow.Calls["direct"]
	require.NotNil(t, direct)
	assert.Equal(t, "String", direct.Outputs["out"].String())

	scattered := a.Workflow.Calls["scattered"]
	require.NotNil(t, scattered)
	assert.Equal(t, "Array[String]", scattered.Outputs["out"].String())

	conditional := a.Workflow.Calls["conditional"]
	require.NotNil(t, conditional)
	assert.Equal(t, "String?", conditional.Outputs["out"].String())

	ns := a.Namespaces["lib"]
	require.NotNil(t, ns)
	assert.True(t, ns.Used)
}

func TestAnalyzeDocument_unusedImport(t *testing.T) {
	libSrc := "version 1.2\ntask t { command <<<>>> }\n"
	lib := parseDoc(t, libSrc)
	libAnalysis := AnalyzeDocument("lib.wdl", lib, nil)

	mainSrc := "version 1.2\nimport \"lib.wdl\" as lib\nworkflow w {}\n"
	main := parseDoc(t, mainSrc)
	imp := &fakeImporter{docs: map[string]*Analysis{"lib.wdl": libAnalysis}}
	a := AnalyzeDocument("main.wdl", main, imp)
	assert.True(t, hasRule(a.Diagnostics, "unused-import"))
}

func TestAnalyzeDocument_importCycleDiagnostic(t *testing.T) {
	src := "version 1.2\nimport \"b.wdl\"\nworkflow w {}\n"
	doc := parseDoc(t, src)
	imp := &fakeImporter{
		docs:    map[string]*Analysis{},
		cycleAt: map[string]bool{"a.wdl->b.wdl": true},
	}
	a := AnalyzeDocument("a.wdl", doc, imp)
	assert.True(t, hasRule(a.Diagnostics, "import-cycle"))
}

func TestAnalyzeDocument_structResolutionAcrossMembers(t *testing.T) {
	src := `version 1.2
struct Inner {
  Int x
}
struct Outer {
  Inner i
  String name
}
workflow w {}
`
	doc := parseDoc(t, src)
	a := AnalyzeDocument("s.wdl", doc, nil)
	assert.Empty(t, a.Diagnostics)
	outer := a.Structs["Outer"]
	require.NotNil(t, outer.Type)
	assert.Equal(t, "Inner", outer.Type.Members[0].Type.String())
}

func TestAnalyzeDocument_recursiveStructDiagnosed(t *testing.T) {
	src := `version 1.2
struct A {
  B b
}
struct B {
  A a
}
workflow w {}
`
	doc := parseDoc(t, src)
	a := AnalyzeDocument("s.wdl", doc, nil)
	assert.True(t, hasRule(a.Diagnostics, "recursive-struct"))
	assert.Nil(t, a.Structs["A"].Type)
	assert.Nil(t, a.Structs["B"].Type)
}

func TestAnalyzeDocument_unknownNameDiagnosed(t *testing.T) {
	src := `version 1.2
task t {
  command <<<>>>
  output {
    String out = undeclared_name
  }
}
`
	doc := parseDoc(t, src)
	a := AnalyzeDocument("t.wdl", doc, nil)
	assert.True(t, hasRule(a.Diagnostics, "unknown-name"))
}

func TestAnalyzeDocument_unknownNameInWorkflow(t *testing.T) {
	src := `version 1.2
workflow w {
  output {
    Int result = missing
  }
}
`
	doc := parseDoc(t, src)
	a := AnalyzeDocument("w.wdl", doc, nil)
	assert.True(t, hasRule(a.Diagnostics, "unknown-name"))
}

func TestAnalyzeDocument_declarationCoercionMismatch(t *testing.T) {
	src := `version 1.2
task t {
  command <<<>>>
  output {
    Int out = "not an int"
  }
}
`
	doc := parseDoc(t, src)
	a := AnalyzeDocument("t.wdl", doc, nil)
	assert.True(t, hasRule(a.Diagnostics, "type-mismatch"))
}

func TestAnalyzeDocument_callArgumentCoercionMismatch(t *testing.T) {
	libSrc := `version 1.2
task t {
  input {
    Int n
  }
  command <<<>>>
}
`
	lib := parseDoc(t, libSrc)
	libAnalysis := AnalyzeDocument("lib.wdl", lib, nil)
	require.Empty(t, libAnalysis.Diagnostics)

	mainSrc := `version 1.2
import "lib.wdl" as lib

workflow w {
  call lib.t { input: n = "not an int" }
}
`
	main := parseDoc(t, mainSrc)
	imp := &fakeImporter{docs: map[string]*Analysis{"lib.wdl": libAnalysis}}
	a := AnalyzeDocument("main.wdl", main, imp)
	assert.True(t, hasRule(a.Diagnostics, "argument-type-mismatch"))
}

func TestAnalyzeDocument_placeholderSepRequiresArray(t *testing.T) {
	src := `version 1.2
task t {
  input {
    String name
  }
  command <<< echo ~{sep=", " name} >>>
}
`
	doc := parseDoc(t, src)
	a := AnalyzeDocument("t.wdl", doc, nil)
	assert.True(t, hasRule(a.Diagnostics, "placeholder-option-type"))
}

func hasRule(diags []diag.Diagnostic, rule string) bool {
	for _, d := range diags {
		if d.Rule == rule {
			return true
		}
	}
	return false
}
