package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/parser"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

func parseDoc(t *testing.T, src string) ast.Document {
	t.Helper()
	out := parser.Parse(src)
	red := syntax.NewRoot(parser.Build(out))
	doc, ok := ast.CastDocument(red)
	require.True(t, ok)
	return doc
}

func offsetOf(src, substr string) uint32 {
	i := indexOf(src, substr)
	return uint32(i)
}

func indexOf(src, substr string) int {
	for i := 0; i+len(substr) <= len(src); i++ {
		if src[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestSemanticTokens_classifiesKeywordsAndDecl(t *testing.T) {
	src := `version 1.2
task t {
  input { String name }
  command <<< echo ~{name} >>>
  output { String out = name }
}
`
	doc := parseDoc(t, src)
	toks := SemanticTokens(doc.Red)
	require.NotEmpty(t, toks)

	var sawKeyword, sawParam, sawType, sawMacro bool
	for _, tok := range toks {
		switch tok.Type {
		case TokenKeyword:
			sawKeyword = true
		case TokenParameter:
			sawParam = true
		case TokenType_:
			sawType = true
		case TokenMacro:
			sawMacro = true
		}
	}
	assert.True(t, sawKeyword)
	assert.True(t, sawParam)
	assert.True(t, sawType)
	assert.True(t, sawMacro)
}

func TestGotoDefinition_taskInput(t *testing.T) {
	src := `version 1.2
task t {
  input { String name }
  command <<< >>>
  output { String out = name }
}
`
	doc := parseDoc(t, src)
	a := analysis.AnalyzeDocument("t.wdl", doc, nil)

	refOffset := offsetOf(src, "= name") + 2
	span, ok := GotoDefinition(doc, a, refOffset)
	require.True(t, ok)

	declOffset := offsetOf(src, "String name") + len("String ")
	assert.Equal(t, uint32(declOffset), span.Start)
}

func TestGotoDefinition_callTargetLocalTask(t *testing.T) {
	src := `version 1.2
task greet {
  command <<< >>>
  output { String out = "hi" }
}

workflow w {
  call greet
  output { String result = greet.out }
}
`
	doc := parseDoc(t, src)
	a := analysis.AnalyzeDocument("w.wdl", doc, nil)

	callOffset := offsetOf(src, "call greet") + len("call ")
	span, ok := GotoDefinition(doc, a, callOffset)
	require.True(t, ok)

	taskNameOffset := offsetOf(src, "task greet") + len("task ")
	assert.Equal(t, uint32(taskNameOffset), span.Start)
}

func TestGotoDefinition_callOutputAccess(t *testing.T) {
	src := `version 1.2
task greet {
  command <<< >>>
  output { String out = "hi" }
}

workflow w {
  call greet
  output { String result = greet.out }
}
`
	doc := parseDoc(t, src)
	a := analysis.AnalyzeDocument("w.wdl", doc, nil)

	memberOffset := offsetOf(src, "greet.out") + len("greet.")
	span, ok := GotoDefinition(doc, a, memberOffset)
	require.True(t, ok)

	outDeclOffset := offsetOf(src, "String out") + len("String ")
	assert.Equal(t, uint32(outDeclOffset), span.Start)
}

func TestHoverInfo_taskSignature(t *testing.T) {
	src := `version 1.2
task greet {
  input { String name }
  command <<< >>>
  output { String out = name }
}

workflow w {
  call greet { input: name = "x" }
}
`
	doc := parseDoc(t, src)
	a := analysis.AnalyzeDocument("w.wdl", doc, nil)

	callOffset := offsetOf(src, "call greet") + len("call ")
	h, ok := HoverInfo(doc, a, callOffset)
	require.True(t, ok)
	assert.Contains(t, h.Contents, "task greet")
	assert.Contains(t, h.Contents, "name: String")
}

func TestGotoDefinition_siblingScatterBlocksDoNotLeakDecls(t *testing.T) {
	src := `version 1.2
workflow w {
  Array[Int] xs = [1, 2]
  Array[Int] ys = [3, 4]
  scatter (i in xs) {
    Int dup = i + 1
    Int a = dup
  }
  scatter (i in ys) {
    Int dup = i * 2
    Int b = dup
  }
}
`
	doc := parseDoc(t, src)
	a := analysis.AnalyzeDocument("w.wdl", doc, nil)

	firstRefOffset := offsetOf(src, "Int a = dup") + len("Int a = ")
	span, ok := GotoDefinition(doc, a, firstRefOffset)
	require.True(t, ok)
	firstDeclOffset := offsetOf(src, "Int dup = i + 1") + len("Int ")
	assert.Equal(t, uint32(firstDeclOffset), span.Start)

	secondRefOffset := offsetOf(src, "Int b = dup") + len("Int b = ")
	span, ok = GotoDefinition(doc, a, secondRefOffset)
	require.True(t, ok)
	secondDeclOffset := offsetOf(src, "Int dup = i * 2") + len("Int ")
	assert.Equal(t, uint32(secondDeclOffset), span.Start)
}

func TestHoverInfo_callOutputType(t *testing.T) {
	src := `version 1.2
task greet {
  command <<< >>>
  output { String out = "hi" }
}

workflow w {
  call greet
  output { String result = greet.out }
}
`
	doc := parseDoc(t, src)
	a := analysis.AnalyzeDocument("w.wdl", doc, nil)

	memberOffset := offsetOf(src, "greet.out") + len("greet.")
	h, ok := HoverInfo(doc, a, memberOffset)
	require.True(t, ok)
	assert.Equal(t, "out: String", h.Contents)
}
