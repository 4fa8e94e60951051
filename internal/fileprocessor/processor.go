// Package fileprocessor handles running a source file with the process standard streams.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrobf/internal/options"
	"github.com/retroenv/retrobf/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// Streams are the input and output streams of a program run.
type Streams struct {
	Input  io.Reader
	Output io.Writer
}

// StandardStreams returns the process standard input and output.
func StandardStreams() Streams {
	return Streams{
		Input:  os.Stdin,
		Output: os.Stdout,
	}
}

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	interpreterOpts options.Interpreter, streams Streams) error {

	pipe := pipeline.New(logger)
	if _, err := pipe.Execute(ctx, opts, interpreterOpts, streams.Input, streams.Output); err != nil {
		return fmt.Errorf("processing file %s: %w", opts.Input, err)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrobf", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
