package ast

import (
	"testing"

	"github.com/dekarrin/wdl/internal/wdl/parser"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/stretchr/testify/assert"
)

func parseDoc(t *testing.T, source string) Document {
	t.Helper()
	out := parser.Parse(source)
	red := syntax.NewRoot(parser.Build(out))
	doc, ok := CastDocument(red)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	return doc
}

func Test_Document_versionAndDefinitions(t *testing.T) {
	src := `version 1.1

import "lib.wdl" as lib alias Foo as Bar

struct Person {
  String name
  Int age
}

task greet {
  input {
    String name
  }
  command <<<
    echo hello ~{name}
  >>>
  output {
    String out = "hi"
  }
}

workflow w {
  input {
    Person p
  }
  call greet { input: name = p.name }
  output {
    String result = greet.out
  }
}
`
	doc := parseDoc(t, src)

	version, ok := doc.Version()
	assert.True(t, ok)
	assert.Equal(t, "1.1", version)

	imports := doc.Imports()
	if assert.Len(t, imports, 1) {
		assert.Equal(t, `"lib.wdl"`, imports[0].URI())
		alias, ok := imports[0].Alias()
		assert.True(t, ok)
		assert.Equal(t, "lib", alias)
		aliases := imports[0].Aliases()
		if assert.Len(t, aliases, 1) {
			oldName, newName := aliases[0].Names()
			assert.Equal(t, "Foo", oldName)
			assert.Equal(t, "Bar", newName)
		}
	}

	structs := doc.Structs()
	if assert.Len(t, structs, 1) {
		assert.Equal(t, "Person", structs[0].Name())
		assert.Len(t, structs[0].Members(), 2)
	}

	tasks := doc.Tasks()
	if assert.Len(t, tasks, 1) {
		assert.Equal(t, "greet", tasks[0].Name())
		cmd, ok := tasks[0].Command()
		assert.True(t, ok)
		assert.Contains(t, cmd.LiteralText(), "echo hello")
		assert.Len(t, cmd.Placeholders(), 1)
	}

	wf, ok := doc.Workflow()
	assert.True(t, ok)
	assert.Equal(t, "w", wf.Name())

	body := wf.Body()
	if assert.Len(t, body, 1) {
		call, ok := body[0].AsCall()
		assert.True(t, ok)
		assert.Equal(t, []string{"greet"}, call.TargetParts())
		assert.Equal(t, "greet", call.Alias())
		inputs := call.Inputs()
		if assert.Len(t, inputs, 1) {
			assert.Equal(t, "name", inputs[0].Name())
			expr, ok := inputs[0].Expr()
			assert.True(t, ok)
			assert.Equal(t, syntax.AccessExprNode, expr.Kind())
		}
	}
}

func Test_Expr_binaryOperandAccess(t *testing.T) {
	src := "version 1.1\nworkflow w {\n  Int x = 1 + 2\n}\n"
	doc := parseDoc(t, src)
	wf, _ := doc.Workflow()
	body := wf.Body()
	if !assert.Len(t, body, 1) {
		return
	}
	decl, ok := body[0].AsDecl()
	if !assert.True(t, ok) {
		return
	}
	bound, ok := decl.AsBound()
	if !assert.True(t, ok) {
		return
	}
	expr, ok := bound.Expr()
	if !assert.True(t, ok) {
		return
	}
	assert.True(t, expr.IsBinary())
	left, ok := expr.Left()
	assert.True(t, ok)
	assert.Equal(t, syntax.LiteralIntegerNode, left.Kind())
	right, ok := expr.Right()
	assert.True(t, ok)
	assert.Equal(t, syntax.LiteralIntegerNode, right.Kind())
}

func Test_TypedVisitor_visitsEveryTaskAndCall(t *testing.T) {
	src := `version 1.1
task a { command <<<>>> }
task b { command <<<>>> }
workflow w {
  call a
  scatter (i in [1, 2]) {
    call b
  }
}
`
	doc := parseDoc(t, src)

	var taskNames []string
	var callTargets [][]string
	v := TypedVisitor{
		OnTask: func(task TaskDefinition, reason syntax.Reason) {
			if reason == syntax.Enter {
				taskNames = append(taskNames, task.Name())
			}
		},
		OnCall: func(call CallStatement, reason syntax.Reason) {
			if reason == syntax.Enter {
				callTargets = append(callTargets, call.TargetParts())
			}
		},
	}
	v.Walk(doc.Red)

	assert.Equal(t, []string{"a", "b"}, taskNames)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, callTargets)
}
