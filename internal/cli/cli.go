// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrobf/internal/options"
)

// ParseFlags parses command line flags and returns program and interpreter options
func ParseFlags() (options.Program, options.Interpreter, error) {
	return parseArgs(os.Args)
}

func parseArgs(osArgs []string) (options.Program, options.Interpreter, error) {
	flags := flag.NewFlagSet(osArgs[0], flag.ContinueOnError)
	// parse errors are reported once by UsageError.ShowUsage
	flags.SetOutput(io.Discard)

	var opts options.Program
	interpreterOptions := options.NewInterpreter()
	readOptionFlags(flags, &opts)
	readInterpreterOptionFlags(flags, &interpreterOptions)

	err := flags.Parse(osArgs[1:])
	args := flags.Args()
	if err != nil {
		return opts, interpreterOptions, &UsageError{flags: flags, msg: err.Error()}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, interpreterOptions, err
	}
	opts.Input = args[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, interpreterOptions, err
	}
	if err := validateInterpreterOptions(interpreterOptions); err != nil {
		return opts, interpreterOptions, err
	}

	return opts, interpreterOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage message and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("Error: %s\n\n", e.msg)
	}
	fmt.Printf("usage: retrobf [options] <source file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks that exactly one source file is passed and that no
// flags follow it.
func validateArgs(flags *flag.FlagSet, args []string) error {
	switch {
	case len(args) == 0:
		return &UsageError{flags: flags, msg: "include a source file to run"}

	case len(args) > 1:
		if args[1] != "" && args[1][0] == '-' {
			return &UsageError{
				flags: flags,
				msg: fmt.Sprintf("Potential argument %s found after source file, please pass the source file as last argument",
					args[1]),
			}
		}
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("expected exactly one source file, got %d arguments", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.DumpFormat = strings.ToLower(opts.DumpFormat)

	validFormats := []string{options.DumpListing, options.DumpSource}
	if !slices.Contains(validFormats, opts.DumpFormat) {
		return fmt.Errorf("unsupported dump format: %s. Valid options: %s",
			opts.DumpFormat, strings.Join(validFormats, ", "))
	}
	if opts.LineWidth < 0 {
		return fmt.Errorf("invalid line width %d, it can not be negative", opts.LineWidth)
	}
	return nil
}

// validateInterpreterOptions checks the tape layout before any file is read.
func validateInterpreterOptions(opts options.Interpreter) error {
	if opts.TapeSize <= 0 {
		return fmt.Errorf("invalid tape size %d, it has to be positive", opts.TapeSize)
	}
	if opts.Offset < 0 || opts.Offset >= opts.TapeSize {
		return fmt.Errorf("invalid pointer offset %d, valid range is 0-%d", opts.Offset, opts.TapeSize-1)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Dump, "dump", false, "print the parsed instruction listing instead of running the program")
	flags.BoolVar(&opts.Verify, "verify", false, "verify that the parsed program renders back to an identical instruction tree")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.StringVar(&opts.DumpFormat, "dump-format", options.DumpListing, "format of the -dump output (listing/source)")
	flags.IntVar(&opts.LineWidth, "line-width", 0, "wrap -dump source output after this many symbols, 0 disables wrapping")
}

func readInterpreterOptionFlags(flags *flag.FlagSet, opts *options.Interpreter) {
	flags.IntVar(&opts.TapeSize, "tape-size", opts.TapeSize, "number of tape cells")
	flags.IntVar(&opts.Offset, "offset", opts.Offset, "initial data pointer position on the tape")
	flags.Uint64Var(&opts.MaxSteps, "max-steps", 0, "abort after executing this many instructions, 0 is unlimited")
}
