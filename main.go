// Package main implements the main entry point for a tape based esoteric language interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrobf/internal/cli"
	"github.com/retroenv/retrobf/internal/config"
	"github.com/retroenv/retrobf/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, interpreterOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	// the banner is only shown when debugging, logs go to stderr
	if opts.Debug {
		fileprocessor.PrintBanner(logger, opts, version, commit, date)
	}

	err = fileprocessor.ProcessFile(ctx, logger, opts, interpreterOptions, fileprocessor.StandardStreams())
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running failed", log.Err(err))
		os.Exit(1)
	}
}
