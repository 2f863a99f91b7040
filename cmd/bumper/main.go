// Package main provides the entry point for the bumper CLI tool.
package main

import (
	"context"
	"os"

	"github.com/valory-xyz/bumper/cmd/bumper/app"
	"github.com/valory-xyz/bumper/pkg/constants"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	// Create app instance
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Create context with signal handling so an interrupt aborts
	// in-flight HTTP requests instead of leaving them hanging
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	// Cap the invocation; unauthenticated fetches against a rate-limited
	// API can otherwise crawl for a very long time
	ctx, cancelTimeout := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancelTimeout()

	app.ExitOnError(application.Execute(ctx, os.Args[1:]))
}
