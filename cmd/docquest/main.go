// Command docquest runs the document pipeline stages against the configured
// artifact store without starting the HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/docquest/internal/config"
)

const usage = `usage: docquest <command> [flags]

commands:
  extract   split a text dump (and optionally a PDF) into raw blocks
  ingest    store a JSON array of raw blocks
  classify  classify the raw blocks
  blocks    print classified blocks with review state
  review    record a review decision for one block
  export    render the approved set
  status    report which artifacts exist
  reset     remove classification and review artifacts
  openapi   print the HTTP API's OpenAPI document
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config load failed:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, cmd, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "docquest:", err)
		os.Exit(1)
	}
}
