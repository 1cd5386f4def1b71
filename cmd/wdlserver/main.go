/*
Wdlserver exposes the toolkit's query operations over HTTP/JSON: open a
document, analyze it, and ask for hover, goto-definition, and semantic
token results against whatever was last analyzed. It is a thin transport
distinct from the Language Server Protocol; it exists for callers that
want the analyzer's results without speaking LSP.

Usage:

	wdlserver [flags]

The flags are:

	-a, --addr ADDR
		Address to listen on. Defaults to ":8080".

	-c, --config FILE
		Load toolkit configuration (severities, fetch timeout, worker pool
		size) from the given TOML file. If not given, built-in defaults are
		used.

	-v, --verbose
		Log at debug level instead of info level.

Routes, all under /api/v1:

	POST   /documents                       open or replace a document
	DELETE /documents/{doc}                 close a document
	POST   /documents/{doc}/analyze         re-analyze and return diagnostics
	GET    /documents/{doc}/hover           hover at ?line=&column=
	GET    /documents/{doc}/definition      goto-definition at ?line=&column=
	GET    /documents/{doc}/tokens          classify every semantic token

{doc} is a document URI, base64url-encoded with no padding.
*/
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"

	"github.com/dekarrin/wdl"
	"github.com/dekarrin/wdl/internal/wdl/config"
	wdlLog "github.com/dekarrin/wdl/internal/wdl/log"
)

var (
	addr       = pflag.StringP("addr", "a", ":8080", "Address to listen on")
	configPath = pflag.StringP("config", "c", "", "TOML config file for diagnostic severities, fetch timeout, and worker pool size")
	verbose    = pflag.BoolP("verbose", "v", false, "Log at debug level")
)

func main() {
	pflag.Parse()

	cfg := config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := wdlLog.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
	defer logger.Sync()

	api := API{
		Analyzer: wdl.New(cfg, logger),
		Logger:   logger,
	}

	router := chi.NewRouter()
	router.Route(APIPathPrefix, func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", api.HTTPOpenDocument())
			r.Route("/{doc}", func(r chi.Router) {
				r.Delete("/", api.HTTPCloseDocument())
				r.Post("/analyze", api.HTTPAnalyzeDocument())
				r.Get("/hover", api.HTTPHover())
				r.Get("/definition", api.HTTPGotoDefinition())
				r.Get("/tokens", api.HTTPSemanticTokens())
			})
		})
	})

	logger.Sugar().Infof("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, router); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}
