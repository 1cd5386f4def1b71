package evalgraph

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

func firstTask(t *testing.T, doc ast.Document) ast.TaskDefinition {
	t.Helper()
	tasks := doc.Tasks()
	require.Len(t, tasks, 1)
	return tasks[0]
}

func TestBuildTask_outputsDependOnCommand(t *testing.T) {
	src := `version 1.2
task t {
  input { String name }
  command <<<
    echo ~{name}
  >>>
  output {
    String greeting = "hi " + name
  }
}
`
	doc := parseDoc(t, src)
	res := BuildTask(firstTask(t, doc), "1.2")
	assert.Empty(t, res.Diags)

	cmdIdx, ok := res.Graph.Lookup("command")
	require.True(t, ok)
	outIdx, ok := res.Graph.Lookup("greeting")
	require.True(t, ok)
	nameIdx, ok := res.Graph.Lookup("name")
	require.True(t, ok)

	order, ok := res.Graph.TopoSort()
	require.True(t, ok)
	assert.Less(t, indexOf(order, nameIdx), indexOf(order, cmdIdx))
	assert.Less(t, indexOf(order, cmdIdx), indexOf(order, outIdx))
}

func TestBuildTask_selfReferenceIsDiagnosedAndEdgeDropped(t *testing.T) {
	src := "version 1.1\ntask t { input { Int x = x } command <<<>>> }\n"
	doc := parseDoc(t, src)
	res := BuildTask(firstTask(t, doc), "1.1")
	assert.True(t, hasRule(res.Diags, "self-referential"))
}

func TestBuildTask_runtimeDependsOnDeclAndCommandDependsOnRuntime(t *testing.T) {
	src := `version 1.2
task t {
  input { Int cpus }
  command <<<>>>
  runtime {
    cpu: cpus
  }
}
`
	doc := parseDoc(t, src)
	res := BuildTask(firstTask(t, doc), "1.2")
	assert.Empty(t, res.Diags)

	cpusIdx, _ := res.Graph.Lookup("cpus")
	rtIdx, _ := res.Graph.Lookup("runtime")
	cmdIdx, _ := res.Graph.Lookup("command")

	order, ok := res.Graph.TopoSort()
	require.True(t, ok)
	assert.Less(t, indexOf(order, cpusIdx), indexOf(order, rtIdx))
	assert.Less(t, indexOf(order, rtIdx), indexOf(order, cmdIdx))
}

func TestBuildWorkflow_callOutputReferenceAndScatterVariable(t *testing.T) {
	src := `version 1.2
workflow w {
  input {
    Array[String] names
  }
  scatter (n in names) {
    call greet { input: name = n }
  }
  output {
    Array[String] out = greet.result
  }
}
`
	doc := parseDoc(t, src)
	wf, ok := doc.Workflow()
	require.True(t, ok)
	res := BuildWorkflow(wf)
	assert.Empty(t, res.Diags)

	namesIdx, ok := res.Graph.Lookup("names")
	require.True(t, ok)
	callIdx, ok := res.Graph.Lookup("greet")
	require.True(t, ok)
	outIdx, ok := res.Graph.Lookup("out")
	require.True(t, ok)

	order, ok := res.Graph.TopoSort()
	require.True(t, ok)
	assert.Less(t, indexOf(order, namesIdx), indexOf(order, callIdx))
	assert.Less(t, indexOf(order, callIdx), indexOf(order, outIdx))
}

func TestBuildTask_conflictingDeclNames(t *testing.T) {
	src := "version 1.2\ntask t {\n  input { Int x }\n  Int x = 1\n  command <<<>>>\n}\n"
	doc := parseDoc(t, src)
	res := BuildTask(firstTask(t, doc), "1.2")
	assert.True(t, hasRule(res.Diags, "conflicting-name"))
}

func TestBuildTask_taskVariableRejectedBeforeVersion1_2(t *testing.T) {
	src := "version 1.1\ntask t {\n  command <<< >>>\n  output { String id = task.name }\n}\n"
	doc := parseDoc(t, src)
	res := BuildTask(firstTask(t, doc), "1.1")
	assert.True(t, hasRule(res.Diags, "task-variable-version"))
}

func TestBuildTask_taskVariableAcceptedAtVersion1_2(t *testing.T) {
	src := "version 1.2\ntask t {\n  command <<< >>>\n  output { String id = task.name }\n}\n"
	doc := parseDoc(t, src)
	res := BuildTask(firstTask(t, doc), "1.2")
	assert.False(t, hasRule(res.Diags, "task-variable-version"))
}

func TestBuildTask_unknownNameIsDiagnosed(t *testing.T) {
	src := "version 1.2\ntask t {\n  command <<<>>>\n  output { String greeting = missing }\n}\n"
	doc := parseDoc(t, src)
	res := BuildTask(firstTask(t, doc), "1.2")
	assert.True(t, hasRule(res.Diags, "unknown-name"))
}

func indexOf(order []int, v int) int {
	for i, n := range order {
		if n == v {
			return i
		}
	}
	return -1
}

func hasRule(diags []diag.Diagnostic, rule string) bool {
	for _, d := range diags {
		if d.Rule == rule {
			return true
		}
	}
	return false
}
