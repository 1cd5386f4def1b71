package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/wdl/internal/wdl/source"
)

func TestGraph_Parse_fetchesAndBuildsDoc(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "main.wdl")
	require.NoError(t, os.WriteFile(p, []byte("version 1.2\nworkflow w {}\n"), 0o644))

	g := New()
	id := g.Add(p, true)
	require.NoError(t, g.Parse(context.Background(), id))

	n, ok := g.Node(id)
	require.True(t, ok)
	assert.Equal(t, ParseStateParsed, n.ParseState)
	v, ok := n.Doc.Version()
	require.True(t, ok)
	assert.Equal(t, "1.2", v)
}

func TestGraph_Parse_appliesFullTextOverFetch(t *testing.T) {
	g := New()
	id := g.Add("mem://doc.wdl", true)
	g.NotifyFullChange("mem://doc.wdl", "version 1.2\nworkflow w {}\n")

	require.NoError(t, g.Parse(context.Background(), id))

	n, _ := g.Node(id)
	assert.Equal(t, ParseStateParsed, n.ParseState)
	wf, ok := n.Doc.Workflow()
	require.True(t, ok)
	assert.Equal(t, "w", wf.Name())
}

func TestGraph_Parse_appliesIncrementalEdits(t *testing.T) {
	g := New()
	id := g.Add("mem://doc.wdl", true)
	g.NotifyFullChange("mem://doc.wdl", "version 1.2\nworkflow old {}\n")
	require.NoError(t, g.Parse(context.Background(), id))

	n, _ := g.Node(id)
	idx := n.LineIndex
	start := idx.Position(len("version 1.2\nworkflow "), source.UTF8)
	end := idx.Position(len("version 1.2\nworkflow old"), source.UTF8)

	g.NotifyIncrementalChange("mem://doc.wdl", []Edit{
		{Range: Range{Start: start, End: end}, Text: "renamed"},
	}, source.UTF8)
	require.NoError(t, g.Parse(context.Background(), id))

	n, _ = g.Node(id)
	wf, ok := n.Doc.Workflow()
	require.True(t, ok)
	assert.Equal(t, "renamed", wf.Name())
}
