/*
Wdlcheck analyzes one or more WDL documents and prints their diagnostics.

It reads in the given files and directories, analyzes every document
rooted by them, and prints any diagnostics found to stdout. With --debug,
it additionally prints each task and workflow's resolved evaluation order.

Usage:

	wdlcheck [flags] PATH...

The flags are:

	-c, --config FILE
		Load toolkit configuration (severities, fetch timeout, worker pool
		size) from the given TOML file. If not given, built-in defaults are
		used.

	-v, --verbose
		Log at debug level instead of info level.

	--debug
		Print each task/workflow's resolved evaluation order alongside its
		diagnostics.

	-w, --width N
		Wrap diagnostic messages at N columns. Defaults to 100.

Every PATH given is added as a document if it names a file, or scanned
recursively for ".wdl" files if it names a directory.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/wdl"
	"github.com/dekarrin/wdl/internal/wdl/analysis"
	"github.com/dekarrin/wdl/internal/wdl/config"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/evalgraph"
	wdlLog "github.com/dekarrin/wdl/internal/wdl/log"
	"github.com/dekarrin/wdl/internal/wdl/render"
	"github.com/dekarrin/wdl/internal/wdl/source"
)

const (
	// ExitSuccess indicates every analyzed document was free of
	// error-severity diagnostics.
	ExitSuccess = iota

	// ExitAnalysisErrors indicates at least one document had an
	// error-severity diagnostic.
	ExitAnalysisErrors

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the analyzer.
	ExitInitError
)

var (
	returnCode  = ExitSuccess
	configPath  = pflag.StringP("config", "c", "", "TOML config file for diagnostic severities, fetch timeout, and worker pool size")
	verbose     = pflag.BoolP("verbose", "v", false, "Log at debug level")
	debugOutput = pflag.Bool("debug", false, "Print evaluation order for every task and workflow")
	width       = pflag.IntP("width", "w", render.DefaultWidth, "Wrap diagnostic messages at this column width")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()
	paths := pflag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: no PATH given")
		returnCode = ExitInitError
		return
	}

	cfg := config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		cfg = loaded
	}

	logger, err := wdlLog.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer logger.Sync()

	a := wdl.New(cfg, logger)
	for _, p := range paths {
		if info, statErr := os.Stat(p); statErr == nil && info.IsDir() {
			if addErr := a.AddDirectory(p); addErr != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", addErr.Error())
				returnCode = ExitInitError
				return
			}
			continue
		}
		a.AddDocument(p)
	}

	results, err := a.Analyze(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	for _, r := range results {
		if r.ParseErr != nil {
			fmt.Printf("%s: parse error: %s\n", r.URI, r.ParseErr.Error())
			returnCode = ExitAnalysisErrors
			continue
		}
		if r.Analysis == nil {
			continue
		}

		idx := r.LineIndex
		if idx == nil {
			idx = source.NewLineIndex("")
		}
		if len(r.Analysis.Diagnostics) > 0 {
			fmt.Println(render.Diagnostics(r.URI, idx, r.Analysis.Diagnostics, *width))
		}
		if diag.HasErrors(r.Analysis.Diagnostics) {
			returnCode = ExitAnalysisErrors
		}

		if *debugOutput {
			printDebugOrder(r.URI, r.Analysis)
		}
	}
}

// printDebugOrder prints each task's and the workflow's resolved
// evaluation order as a tree, for --debug.
func printDebugOrder(uri string, a *analysis.Analysis) {
	for name, ta := range a.Tasks {
		fmt.Println(render.Tree(evalOrderTree("task "+name, ta.Graph)))
	}
	if a.Workflow != nil {
		fmt.Println(render.Tree(evalOrderTree("workflow "+uri, a.Workflow.Graph)))
	}
}

func evalOrderTree(label string, g *evalgraph.Graph) render.TreeNode {
	order, ok := g.TopoSort()
	if !ok {
		return render.TreeNode{Label: label + " (cycle detected)"}
	}
	names := make([]string, len(order))
	for i, idx := range order {
		n := g.Nodes[idx]
		names[i] = n.Kind.String() + " " + n.Name
	}
	return render.EvalOrderTree(label, names)
}
