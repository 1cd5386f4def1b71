/*
Wdlrepl is an interactive session for opening a WDL document, applying
incremental edits to it, and re-running analysis after each one.

Usage:

	wdlrepl [flags]

The flags are:

	-v, --verbose
		Log at debug level instead of info level.

Once started, the session reads commands from stdin through a readline
line editor:

	open PATH
		Load PATH's contents as a document and analyze it.

	edit LINE:COL-LINE:COL TEXT
		Replace the given (0-based, UTF-8 column) range with TEXT, then
		re-analyze the currently open document.

	diag
		Print the currently open document's diagnostics.

	hover LINE:COL
		Print hover info for the position.

	def LINE:COL
		Print the definition span for the identifier at the position.

	tokens
		Print every classified semantic token.

	help
		Print this command summary.

	quit
		Exit the session.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/wdl"
	"github.com/dekarrin/wdl/internal/wdl/config"
	"github.com/dekarrin/wdl/internal/wdl/graph"
	wdlLog "github.com/dekarrin/wdl/internal/wdl/log"
	"github.com/dekarrin/wdl/internal/wdl/render"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

func main() {
	verbose := false
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
		}
	}

	logger, err := wdlLog.New(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
	defer logger.Sync()

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "wdl> ",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: create readline config: %s\n", err.Error())
		os.Exit(1)
	}
	defer rl.Close()

	sess := &session{
		analyzer: wdl.New(config.Config{}, logger),
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !sess.dispatch(line) {
			return
		}
	}
}

type session struct {
	analyzer *wdl.Analyzer
	uri      string
}

func (s *session) dispatch(line string) bool {
	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	var rest string
	if len(fields) > 1 {
		rest = strings.TrimSpace(fields[1])
	}

	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		printHelp()
	case "open":
		s.open(rest)
	case "edit":
		s.edit(rest)
	case "diag":
		s.printDiagnostics()
	case "hover":
		s.hover(rest)
	case "def":
		s.gotoDefinition(rest)
	case "tokens":
		s.tokens()
	default:
		fmt.Printf("unknown command %q; type \"help\" for a list\n", cmd)
	}
	return true
}

func printHelp() {
	fmt.Println("open PATH | edit LINE:COL-LINE:COL TEXT | diag | hover LINE:COL | def LINE:COL | tokens | quit")
}

func (s *session) open(path string) {
	if path == "" {
		fmt.Println("usage: open PATH")
		return
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}
	s.uri = "file://" + path
	s.analyzer.AddDocument(s.uri)
	s.analyzer.NotifyFullChange(s.uri, string(contents))
	s.analyze()
}

func (s *session) edit(rest string) {
	if s.uri == "" {
		fmt.Println("no document open; use \"open PATH\" first")
		return
	}
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) != 2 {
		fmt.Println("usage: edit LINE:COL-LINE:COL TEXT")
		return
	}
	rng, ok := parseRange(parts[0])
	if !ok {
		fmt.Println("usage: edit LINE:COL-LINE:COL TEXT")
		return
	}
	s.analyzer.NotifyIncrementalChange(s.uri, []graph.Edit{{Range: rng, Text: parts[1]}}, source.UTF8)
	s.analyze()
}

func parseRange(s string) (graph.Range, bool) {
	ends := strings.SplitN(s, "-", 2)
	if len(ends) != 2 {
		return graph.Range{}, false
	}
	start, ok := parsePosition(ends[0])
	if !ok {
		return graph.Range{}, false
	}
	end, ok := parsePosition(ends[1])
	if !ok {
		return graph.Range{}, false
	}
	return graph.Range{Start: start, End: end}, true
}

func parsePosition(s string) (source.Position, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return source.Position{}, false
	}
	line, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return source.Position{}, false
	}
	return source.Position{Line: line, Column: col}, true
}

func (s *session) analyze() {
	if s.uri == "" {
		return
	}
	if _, err := s.analyzer.AnalyzeDocument(context.Background(), s.uri); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
	} else {
		fmt.Println("analyzed " + s.uri)
	}
}

func (s *session) printDiagnostics() {
	if !s.requireOpen() {
		return
	}
	a, err := s.analyzer.AnalyzeDocument(context.Background(), s.uri)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}
	if a == nil || len(a.Diagnostics) == 0 {
		fmt.Println("no diagnostics")
		return
	}
	idx, ok := s.analyzer.LineIndex(s.uri)
	if !ok {
		idx = source.NewLineIndex("")
	}
	fmt.Println(render.Diagnostics(s.uri, idx, a.Diagnostics, 0))
}

func (s *session) hover(rest string) {
	if !s.requireOpen() {
		return
	}
	pos, ok := parsePosition(rest)
	if !ok {
		fmt.Println("usage: hover LINE:COL")
		return
	}
	h, ok, err := s.analyzer.Hover(s.uri, pos, source.UTF8)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}
	if !ok {
		fmt.Println("no hover info at that position")
		return
	}
	fmt.Println(h.Contents)
}

func (s *session) gotoDefinition(rest string) {
	if !s.requireOpen() {
		return
	}
	pos, ok := parsePosition(rest)
	if !ok {
		fmt.Println("usage: def LINE:COL")
		return
	}
	span, ok, err := s.analyzer.GotoDefinition(s.uri, pos, source.UTF8)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}
	if !ok {
		fmt.Println("no definition found at that position")
		return
	}
	fmt.Printf("span: offset %d, length %d\n", span.Start, span.Len)
}

func (s *session) tokens() {
	if !s.requireOpen() {
		return
	}
	toks, err := s.analyzer.SemanticTokens(s.uri)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}
	for _, t := range toks {
		fmt.Printf("%d..%d\n", t.Span.Start, t.Span.End())
	}
}

func (s *session) requireOpen() bool {
	if s.uri == "" {
		fmt.Println("no document open; use \"open PATH\" first")
		return false
	}
	return true
}
