package graph

import "github.com/dekarrin/wdl/internal/wdl/source"

// Range is a half-open position range in a document, in the encoding the
// editor notifying the edit is using.
type Range struct {
	Start source.Position
	End   source.Position
}

// Edit replaces the text under Range with Text, per spec.md sec 6's
// notify_incremental_change edit shape. A zero-width Range (Start == End)
// is a pure insertion; empty Text with a non-zero Range is a pure deletion.
type Edit struct {
	Range Range
	Text  string
}

// applyEdits applies edits in order against prevText using enc to interpret
// each edit's Range, rebuilding the LineIndex after every edit so the next
// edit's Range is read against the updated text. Edits are expected to
// already be in document order the way an editor emits them; each is
// applied against the result of the previous one.
func applyEdits(prevText string, idx *source.LineIndex, edits []Edit, enc source.Encoding) string {
	text := prevText
	li := idx
	for _, e := range edits {
		start := li.Offset(e.Range.Start, enc)
		end := li.Offset(e.Range.End, enc)
		if start > len(text) {
			start = len(text)
		}
		if end > len(text) {
			end = len(text)
		}
		if end < start {
			end = start
		}
		text = text[:start] + e.Text + text[end:]
		li = source.NewLineIndex(text)
	}
	return text
}

// NotifyIncrementalChange queues edits against uri's node for application on
// the next Parse, per spec.md sec 6. enc replaces the node's pending
// encoding, so every queued edit is read in the most recent encoding. An
// unknown uri is ignored.
func (g *Graph) NotifyIncrementalChange(uri string, edits []Edit, enc source.Encoding) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.byURI[uri]
	if !ok {
		return
	}
	n.Pending = append(n.Pending, edits...)
	n.PendingEncoding = enc
}

// NotifyFullChange replaces uri's node's entire source text, superseding any
// queued incremental edits, per spec.md sec 6.
func (g *Graph) NotifyFullChange(uri, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.byURI[uri]
	if !ok {
		return
	}
	t := text
	n.PendingFullText = &t
	n.Pending = nil
}
