// Package config loads the toolkit's TOML configuration file: default WDL
// version fallback, configurable diagnostic severities, HTTPS fetch
// timeout, and the document-graph coordinator's worker pool sizing.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/wdl/internal/wdl/diag"
)

// ConcurrencyMode selects how the coordinator's worker pool is sized.
type ConcurrencyMode string

const (
	ConcurrencyFixed ConcurrencyMode = "fixed"
	ConcurrencyAuto  ConcurrencyMode = "auto"
)

// ParseConcurrencyMode parses a string found in a config file into a
// ConcurrencyMode.
func ParseConcurrencyMode(s string) (ConcurrencyMode, error) {
	switch strings.ToLower(s) {
	case string(ConcurrencyFixed):
		return ConcurrencyFixed, nil
	case string(ConcurrencyAuto):
		return ConcurrencyAuto, nil
	default:
		return "", fmt.Errorf("concurrency mode not one of 'fixed' or 'auto': %q", s)
	}
}

// Concurrency configures the size of the document-graph coordinator's
// worker pool. Its Params field is decoded a second time, after Mode is
// known, into fixedParams or left unused for ConcurrencyAuto.
type Concurrency struct {
	Mode   ConcurrencyMode `toml:"mode"`
	Params toml.Primitive  `toml:"params"`

	fixed fixedParams
}

type fixedParams struct {
	Workers int `toml:"workers"`
}

// WorkerCount returns the resolved number of workers the coordinator should
// run, either the fixed value decoded from Params or runtime.NumCPU() for
// ConcurrencyAuto.
func (c Concurrency) WorkerCount() int {
	switch c.Mode {
	case ConcurrencyFixed:
		if c.fixed.Workers < 1 {
			return 1
		}
		return c.fixed.Workers
	case ConcurrencyAuto:
		return runtime.NumCPU()
	default:
		return runtime.NumCPU()
	}
}

// ParseSeverity parses a string found in a config file into a
// diag.Severity.
func ParseSeverity(s string) (diag.Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return diag.Error, nil
	case "warning":
		return diag.Warning, nil
	case "note":
		return diag.Note, nil
	default:
		return diag.Error, fmt.Errorf("severity not one of 'error', 'warning', or 'note': %q", s)
	}
}

// Diagnostics configures severities for diagnostics spec.md sec 4.7 step 5
// allows a caller to retune, currently just the unused-import note.
type Diagnostics struct {
	// UnusedImportSeverity is the severity raw string as read from the
	// config file. Use Severity to get the resolved diag.Severity.
	UnusedImportSeverity string `toml:"unused_import_severity"`
}

// Severity returns the resolved diag.Severity for UnusedImportSeverity, or
// diag.Note (the default, per spec.md sec 4.7 step 5) if unset.
func (d Diagnostics) Severity() (diag.Severity, error) {
	if d.UnusedImportSeverity == "" {
		return diag.Note, nil
	}
	return ParseSeverity(d.UnusedImportSeverity)
}

// Fetch configures remote source retrieval for https: document URIs.
type Fetch struct {
	// HTTPSTimeoutMillis is the configured HTTPS fetch timeout in
	// milliseconds, reported by Timeout. source.Fetch does not read it and
	// always applies source.FetchTimeout.
	HTTPSTimeoutMillis int `toml:"https_timeout_ms"`
}

// Timeout returns the configured HTTPS fetch timeout as a time.Duration, or
// a zero-valued Duration if unset (callers should fall back to
// source.FetchTimeout in that case).
func (f Fetch) Timeout() time.Duration {
	if f.HTTPSTimeoutMillis < 1 {
		var dur time.Duration
		return dur
	}
	return time.Millisecond * time.Duration(f.HTTPSTimeoutMillis)
}

// Config is the toolkit's full configuration.
type Config struct {
	// DefaultVersion is a WDL version string; if not provided, it defaults
	// to "1.2". The parser does not read it: a document with no `version`
	// statement is parsed with 1.2 grammar, and one with an unrecognized
	// version has its remainder wrapped as Unparsed.
	DefaultVersion string `toml:"default_version"`

	Diagnostics Diagnostics `toml:"diagnostics"`
	Fetch       Fetch       `toml:"fetch"`
	Concurrency Concurrency `toml:"concurrency"`
}

// Load reads and decodes the TOML document at path into a Config. It
// performs the second-stage Concurrency.Params decode once Mode is known,
// mirroring the discriminated-primitive pattern used for manifest flags
// elsewhere in this stack.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Concurrency.Mode == "" {
		cfg.Concurrency.Mode = ConcurrencyAuto
	}
	if _, err := ParseConcurrencyMode(string(cfg.Concurrency.Mode)); err != nil {
		return Config{}, fmt.Errorf("concurrency: %w", err)
	}

	if cfg.Concurrency.Mode == ConcurrencyFixed {
		var fixed fixedParams
		if md.IsDefined("concurrency", "params") {
			if err := md.PrimitiveDecode(cfg.Concurrency.Params, &fixed); err != nil {
				return Config{}, fmt.Errorf("concurrency params: %w", err)
			}
		}
		cfg.Concurrency.fixed = fixed
	}

	return cfg, nil
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg
	if newCFG.DefaultVersion == "" {
		newCFG.DefaultVersion = "1.2"
	}
	if newCFG.Diagnostics.UnusedImportSeverity == "" {
		newCFG.Diagnostics.UnusedImportSeverity = "note"
	}
	if newCFG.Concurrency.Mode == "" {
		newCFG.Concurrency.Mode = ConcurrencyAuto
	}
	return newCFG
}

// Validate returns an error if cfg has invalid field values set. Call
// FillDefaults first if defaults are intended to be used for unset fields.
func (cfg Config) Validate() error {
	if _, err := ParseSeverity(cfg.Diagnostics.UnusedImportSeverity); err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}
	if _, err := ParseConcurrencyMode(string(cfg.Concurrency.Mode)); err != nil {
		return fmt.Errorf("concurrency: %w", err)
	}
	if cfg.Fetch.HTTPSTimeoutMillis < 0 {
		return fmt.Errorf("fetch: https_timeout_ms must not be negative")
	}
	return nil
}

// ApplyUnusedImportSeverity rewrites the severity of every diagnostic
// tagged with the "unused-import" rule to sev, leaving every other
// diagnostic untouched.
func ApplyUnusedImportSeverity(diags []diag.Diagnostic, sev diag.Severity) []diag.Diagnostic {
	for i := range diags {
		if diags[i].Rule == "unused-import" {
			diags[i].Severity = sev
		}
	}
	return diags
}
