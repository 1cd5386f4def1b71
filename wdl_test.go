package wdl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/wdl/internal/wdl/config"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestAnalyzer_endToEnd(t *testing.T) {
	dir := t.TempDir()
	uri := writeFile(t, dir, "w.wdl", `version 1.2
task greet {
  input { String name }
  command <<< >>>
  output { String out = name }
}

workflow w {
  call greet { input: name = "x" }
  output { String result = greet.out }
}
`)

	a := New(config.Config{}, nil)
	a.AddDocument(uri)

	results, err := a.Analyze(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Analysis)
	assert.Empty(t, results[0].Analysis.Diagnostics)

	toks, err := a.SemanticTokens(uri)
	require.NoError(t, err)
	assert.NotEmpty(t, toks)

	pos := source.Position{Line: 8, Column: 7}
	h, ok, err := a.Hover(uri, pos, source.UTF8)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, h.Contents, "task greet")

	span, ok, err := a.GotoDefinition(uri, pos, source.UTF8)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Greater(t, span.Len, uint32(0))
}
