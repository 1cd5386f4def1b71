// Package render formats diagnostics and debug trees for terminal output,
// the way the teacher formats game state and NPC tables: width-wrapped text
// via rosed plus an ASCII tree-prefix scheme for nested structure.
package render

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

// DefaultWidth is the column width diagnostic messages are wrapped to when
// a caller does not override it.
const DefaultWidth = 100

// Diagnostics renders every diagnostic in diags against src (using idx to
// resolve spans to line/column), one per paragraph, sorted by position.
// uri labels the location line; width is the wrap column, or DefaultWidth
// if 0.
func Diagnostics(uri string, idx *source.LineIndex, diags []diag.Diagnostic, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	sorted := make([]diag.Diagnostic, len(diags))
	copy(sorted, diags)
	diag.SortBySpan(sorted)

	var out []string
	for _, d := range sorted {
		out = append(out, one(uri, idx, d, width))
	}
	return strings.Join(out, "\n")
}

func one(uri string, idx *source.LineIndex, d diag.Diagnostic, width int) string {
	loc := uri
	if d.Primary != nil {
		pos := idx.Position(int(d.Primary.Start), source.UTF8)
		loc = fmt.Sprintf("%s:%d:%d", uri, pos.Line+1, pos.Column+1)
	}

	header := fmt.Sprintf("%s: %s: %s", loc, d.Severity.String(), d.Message)
	if d.Rule != "" {
		header += " [" + d.Rule + "]"
	}
	body := rosed.Edit(header).Wrap(width).String()

	for _, lbl := range d.Labels {
		pos := idx.Position(int(lbl.Span.Start), source.UTF8)
		labelLine := fmt.Sprintf("%s:%d:%d: %s", uri, pos.Line+1, pos.Column+1, lbl.Message)
		wrapped := rosed.Edit(labelLine).Wrap(width - 2).String()
		body += "\n  " + strings.ReplaceAll(wrapped, "\n", "\n  ")
	}

	if d.FixHint != nil {
		fixLine := fmt.Sprintf("  fix: %s", d.FixHint.Title)
		body += "\n" + rosed.Edit(fixLine).Wrap(width).String()
	}

	return body
}
