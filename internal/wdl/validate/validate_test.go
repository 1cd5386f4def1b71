package validate

import (
	"testing"

	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/parser"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/stretchr/testify/assert"
)

func parseDoc(t *testing.T, src string) ast.Document {
	t.Helper()
	out := parser.Parse(src)
	red := syntax.NewRoot(parser.Build(out))
	doc, ok := ast.CastDocument(red)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	return doc
}

func TestValidate_cleanDocumentHasNoDiagnostics(t *testing.T) {
	src := `version 1.2
task greet {
  input {
    String name
  }
  command <<<
    echo hello ~{name}
  >>>
}
workflow w {
  call greet
}
`
	diags := Validate(parseDoc(t, src))
	assert.Empty(t, diags)
}

func TestValidate_taskMissingCommandSection(t *testing.T) {
	src := "version 1.2\ntask t {\n  input { String x }\n}\n"
	diags := Validate(parseDoc(t, src))
	assert.True(t, hasRule(diags, "missing-command-section"))
}

func TestValidate_multipleWorkflows(t *testing.T) {
	src := "version 1.2\nworkflow a {}\nworkflow b {}\n"
	diags := Validate(parseDoc(t, src))
	assert.True(t, hasRule(diags, "multiple-workflows"))
}

func TestValidate_placeholderSepWithDefaultConflicts(t *testing.T) {
	src := "version 1.2\ntask t {\n  input { Array[String] xs }\n  command <<<\n    ~{sep=\",\" default=\"x\" xs}\n  >>>\n}\n"
	diags := Validate(parseDoc(t, src))
	assert.True(t, hasRule(diags, "placeholder-option-conflict"))
}

func TestValidate_placeholderTrueFalseTogetherIsLegal(t *testing.T) {
	src := "version 1.2\ntask t {\n  input { Boolean b }\n  command <<<\n    ~{true=\"yes\" false=\"no\" b}\n  >>>\n}\n"
	diags := Validate(parseDoc(t, src))
	assert.False(t, hasRule(diags, "placeholder-option-conflict"))
}

func hasRule(diags []diag.Diagnostic, rule string) bool {
	for _, d := range diags {
		if d.Rule == rule {
			return true
		}
	}
	return false
}
