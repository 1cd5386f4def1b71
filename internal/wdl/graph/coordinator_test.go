package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCoordinator_AnalyzeDocument_resolvesImportsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.wdl", `version 1.2
task greet {
  input { String name }
  command <<< echo ~{name} >>>
  output { String out = "hi " + name }
}
`)
	mainURI := writeFile(t, dir, "main.wdl", `version 1.2
import "lib.wdl" as lib

workflow w {
  call lib.greet { input: name = "x" }
  output { String result = greet.out }
}
`)

	c := NewCoordinator(nil)
	c.AddDocument(mainURI)

	result, err := c.AnalyzeDocument(context.Background(), mainURI)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.Workflow)

	call, ok := result.Workflow.Calls["greet"]
	require.True(t, ok)
	assert.Equal(t, "lib", call.Namespace)
	assert.Equal(t, "greet", call.Target)

	ns, ok := result.Namespaces["lib"]
	require.True(t, ok)
	assert.True(t, ns.Used)
	require.NotNil(t, ns.Dep)
}

func TestCoordinator_RemoveDocuments_gcsUnreachableDeps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.wdl", `version 1.2
task t {
  command <<< >>>
}
`)
	mainURI := writeFile(t, dir, "main.wdl", `version 1.2
import "lib.wdl"

workflow w {
  call lib.t
}
`)

	c := NewCoordinator(nil)
	c.AddDocument(mainURI)
	_, err := c.AnalyzeDocument(context.Background(), mainURI)
	require.NoError(t, err)

	_, ok := c.Graph().Lookup(filepath.Join(dir, "lib.wdl"))
	require.True(t, ok)

	c.RemoveDocuments([]string{mainURI})

	_, ok = c.Graph().Lookup(mainURI)
	assert.False(t, ok)
	_, ok = c.Graph().Lookup(filepath.Join(dir, "lib.wdl"))
	assert.False(t, ok)
}
