package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/wdl/internal/wdl/diag"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "wdl.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad_defaultsWhenEmpty(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg = cfg.FillDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "1.2", cfg.DefaultVersion)
	assert.Equal(t, ConcurrencyAuto, cfg.Concurrency.Mode)

	sev, err := cfg.Diagnostics.Severity()
	require.NoError(t, err)
	assert.Equal(t, diag.Note, sev)
}

func TestLoad_fixedConcurrencyDecodesParams(t *testing.T) {
	path := writeConfig(t, `
default_version = "1.1"

[diagnostics]
unused_import_severity = "warning"

[fetch]
https_timeout_ms = 5000

[concurrency]
mode = "fixed"
[concurrency.params]
workers = 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "1.1", cfg.DefaultVersion)
	assert.Equal(t, 4, cfg.Concurrency.WorkerCount())
	assert.Equal(t, int64(5000), cfg.Fetch.Timeout().Milliseconds())

	sev, err := cfg.Diagnostics.Severity()
	require.NoError(t, err)
	assert.Equal(t, diag.Warning, sev)
}

func TestLoad_rejectsUnknownSeverity(t *testing.T) {
	path := writeConfig(t, `
[diagnostics]
unused_import_severity = "fatal"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestApplyUnusedImportSeverity_rewritesOnlyTaggedDiagnostics(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.Notef("namespace \"lib\" is imported but never used").WithRule("unused-import"),
		diag.Errorf("some other problem"),
	}
	out := ApplyUnusedImportSeverity(diags, diag.Warning)
	assert.Equal(t, diag.Warning, out[0].Severity)
	assert.Equal(t, diag.Error, out[1].Severity)
}
