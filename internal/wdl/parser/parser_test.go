package parser

import (
	"testing"

	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/stretchr/testify/assert"
)

func parseToRoot(t *testing.T, source string) *syntax.RedNode {
	t.Helper()
	out := Parse(source)
	green := Build(out)
	return syntax.NewRoot(green)
}

func Test_Parse_roundTripsSourceText(t *testing.T) {
	inputs := []string{
		"version 1.1\n\nworkflow w {}\n",
		"version 1.0\ntask t {\n  input {\n    Int x\n  }\n  command <<<\n    echo ~{x}\n  >>>\n}\n",
		`version 1.2

struct Person {
  String name
  Int age
}

workflow w {
  input {
    Array[Int]+ xs
  }
  scatter (x in xs) {
    call greet { input: name = "a" }
  }
  output {
    Array[String] greetings = greet.out
  }
}
`,
	}

	for _, src := range inputs {
		out := Parse(src)
		green := Build(out)
		assert.Equal(t, src, green.Text())
	}
}

func Test_Parse_versionStatement(t *testing.T) {
	root := parseToRoot(t, "version 1.1\nworkflow w {}\n")
	ver := root.FirstChildNodeOfKind(syntax.VersionStatementNode)
	if assert.NotNil(t, ver) {
		tok := ver.FirstChildTokenOfKind(syntax.VersionToken)
		if assert.NotNil(t, tok) {
			assert.Equal(t, "1.1", tok.Text())
		}
	}
}

func Test_Parse_taskWithCommandAndOutput(t *testing.T) {
	src := `version 1.1
task greet {
  input {
    String name
  }
  command <<<
    echo hello ~{name}
  >>>
  output {
    String out = read_string(stdout())
  }
}
`
	root := parseToRoot(t, src)
	task := root.FirstChildNodeOfKind(syntax.TaskDefinitionNode)
	if !assert.NotNil(t, task) {
		return
	}
	assert.NotNil(t, task.FirstChildNodeOfKind(syntax.InputSectionNode))
	assert.NotNil(t, task.FirstChildNodeOfKind(syntax.CommandSectionNode))
	outputSection := task.FirstChildNodeOfKind(syntax.OutputSectionNode)
	if assert.NotNil(t, outputSection) {
		decl := outputSection.FirstChildNodeOfKind(syntax.BoundDeclNode)
		if assert.NotNil(t, decl) {
			call := decl.FirstChildNodeOfKind(syntax.CallExprNode)
			assert.NotNil(t, call)
		}
	}
}

func Test_Parse_binaryExprPrecedence(t *testing.T) {
	src := "version 1.1\nworkflow w {\n  Int x = 1 + 2 * 3\n}\n"
	root := parseToRoot(t, src)
	wf := root.FirstChildNodeOfKind(syntax.WorkflowDefinitionNode)
	if !assert.NotNil(t, wf) {
		return
	}
	decl := wf.FirstChildNodeOfKind(syntax.BoundDeclNode)
	if !assert.NotNil(t, decl) {
		return
	}
	add := decl.FirstChildNodeOfKind(syntax.AdditionExprNode)
	if assert.NotNil(t, add) {
		// the right operand of + must itself be the * expression, proving
		// precedence climbing nested it correctly rather than parsing
		// left-to-right.
		assert.NotNil(t, add.FirstChildNodeOfKind(syntax.MultiplicationExprNode))
	}
}

func Test_Parse_exponentiationIsRightAssociative(t *testing.T) {
	src := "version 1.1\nworkflow w {\n  Int x = 2 ** 3 ** 2\n}\n"
	root := parseToRoot(t, src)
	wf := root.FirstChildNodeOfKind(syntax.WorkflowDefinitionNode)
	decl := wf.FirstChildNodeOfKind(syntax.BoundDeclNode)
	if !assert.NotNil(t, decl) {
		return
	}
	outer := decl.FirstChildNodeOfKind(syntax.ExponentiationExprNode)
	if assert.NotNil(t, outer) {
		// right-associative: 2 ** (3 ** 2), so the nested exponentiation
		// node must be reachable from the outer one (its right operand),
		// not the other way around.
		assert.NotNil(t, outer.FirstChildNodeOfKind(syntax.ExponentiationExprNode))
	}
}

func Test_Parse_ifThenElseExpression(t *testing.T) {
	src := `version 1.1
workflow w {
  Int x = if true then 1 else 2
}
`
	root := parseToRoot(t, src)
	wf := root.FirstChildNodeOfKind(syntax.WorkflowDefinitionNode)
	decl := wf.FirstChildNodeOfKind(syntax.BoundDeclNode)
	if assert.NotNil(t, decl) {
		assert.NotNil(t, decl.FirstChildNodeOfKind(syntax.IfExprNode))
	}
}

func Test_Parse_scatterAndCallStatement(t *testing.T) {
	src := `version 1.1
workflow w {
  scatter (i in range(3)) {
    call t as aliased after other { input: x = i }
  }
}
`
	root := parseToRoot(t, src)
	wf := root.FirstChildNodeOfKind(syntax.WorkflowDefinitionNode)
	if !assert.NotNil(t, wf) {
		return
	}
	scatter := wf.FirstChildNodeOfKind(syntax.ScatterStatementNode)
	if !assert.NotNil(t, scatter) {
		return
	}
	call := scatter.FirstChildNodeOfKind(syntax.CallStatementNode)
	if assert.NotNil(t, call) {
		assert.NotNil(t, call.FirstChildNodeOfKind(syntax.CallAliasNode))
		assert.NotNil(t, call.FirstChildNodeOfKind(syntax.CallAfterNode))
		assert.NotNil(t, call.FirstChildNodeOfKind(syntax.CallInputItemNode))
	}
}

func Test_Parse_unsupportedVersionWrapsRemainderAsUnparsed(t *testing.T) {
	src := "version 99.9\nworkflow w {}\n"
	out := Parse(src)
	green := Build(out)
	assert.Equal(t, src, green.Text())
	assert.NotEmpty(t, out.Diagnostics)

	root := syntax.NewRoot(green)
	assert.Nil(t, root.FirstChildNodeOfKind(syntax.WorkflowDefinitionNode))
	tok := root.FirstChildTokenOfKind(syntax.Unparsed)
	assert.NotNil(t, tok)
}

func Test_Parse_malformedInputStillProducesATree(t *testing.T) {
	src := "version 1.1\nworkflow w { ) ( }\n"
	out := Parse(src)
	green := Build(out)
	assert.Equal(t, src, green.Text())
	assert.NotEmpty(t, out.Diagnostics)
}

func Test_Parse_placeholderWithSepOption(t *testing.T) {
	src := `version 1.1
task t {
  input {
    Array[String] names
  }
  command <<<
    echo ~{sep=", " names}
  >>>
}
`
	root := parseToRoot(t, src)
	task := root.FirstChildNodeOfKind(syntax.TaskDefinitionNode)
	if !assert.NotNil(t, task) {
		return
	}
	cmd := task.FirstChildNodeOfKind(syntax.CommandSectionNode)
	if !assert.NotNil(t, cmd) {
		return
	}
	ph := cmd.FirstChildNodeOfKind(syntax.PlaceholderNode)
	if assert.NotNil(t, ph) {
		assert.NotNil(t, ph.FirstChildNodeOfKind(syntax.PlaceholderSepOptionNode))
	}
}

func Test_Parse_implicitTaskVariableParsesAsTaskVariableKeyword(t *testing.T) {
	src := `version 1.2
task t {
  command <<<>>>
  output {
    Int code = task.return_code
  }
}
`
	root := parseToRoot(t, src)
	def := root.FirstChildNodeOfKind(syntax.TaskDefinitionNode)
	if !assert.NotNil(t, def) {
		return
	}
	out := def.FirstChildNodeOfKind(syntax.OutputSectionNode)
	if !assert.NotNil(t, out) {
		return
	}
	ref := findDescendantNodeOfKind(out, syntax.NameRefNode)
	if assert.NotNil(t, ref) {
		tok := ref.FirstChildTokenOfKind(syntax.TaskVariableKeyword)
		assert.NotNil(t, tok)
		assert.Nil(t, ref.FirstChildTokenOfKind(syntax.TaskKeyword))
	}
}

func findDescendantNodeOfKind(n *syntax.RedNode, kind syntax.Kind) *syntax.RedNode {
	for _, c := range n.ChildNodes() {
		if c.Kind() == kind {
			return c
		}
		if found := findDescendantNodeOfKind(c, kind); found != nil {
			return found
		}
	}
	return nil
}
