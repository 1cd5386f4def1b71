package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

func TestDiagnostics_includesLocationAndMessage(t *testing.T) {
	src := "task t {\n  command <<< >>>\n}\n"
	idx := source.NewLineIndex(src)
	d := diag.Errorf("something went wrong").WithRule("broken").WithPrimary(diag.NewSpan(14, 21))

	out := Diagnostics("t.wdl", idx, []diag.Diagnostic{d}, 0)
	assert.Contains(t, out, "t.wdl:2:")
	assert.Contains(t, out, "something went wrong")
	assert.Contains(t, out, "[broken]")
}

func TestDiagnostics_sortsByPosition(t *testing.T) {
	src := "aaaa bbbb\n"
	idx := source.NewLineIndex(src)
	first := diag.Errorf("first").WithPrimary(diag.NewSpan(0, 4))
	second := diag.Errorf("second").WithPrimary(diag.NewSpan(5, 9))

	out := Diagnostics("t.wdl", idx, []diag.Diagnostic{second, first}, 0)
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}

func TestTree_rendersNestedOrder(t *testing.T) {
	tree := EvalOrderTree("eval order", []string{"a", "b", "c"})
	out := Tree(tree)
	assert.Contains(t, out, "eval order")
	assert.Contains(t, out, "0: a")
	assert.Contains(t, out, "2: c")
}
