// Package options contains the program options.
package options

import "github.com/retroenv/retrobf/internal/tape"

// Dump formats of the -dump output.
const (
	DumpListing = "listing"
	DumpSource  = "source"
)

// Parameters contains file path options.
type Parameters struct {
	Input string // source file to run
}

// Flags contains behavior options.
type Flags struct {
	Dump   bool // print the instruction tree instead of running it
	Verify bool // check that the rendered tree parses back to the same tree
	Debug  bool
	Quiet  bool
}

// OutputFlags contains formatting options of the -dump output.
type OutputFlags struct {
	DumpFormat string // DumpListing or DumpSource
	LineWidth  int    // wrap source dumps after this many symbols, 0 disables wrapping
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Interpreter defines options to control the program execution.
type Interpreter struct {
	TapeSize int    // number of tape cells
	Offset   int    // initial data pointer position
	MaxSteps uint64 // maximum number of executed instructions, 0 is unlimited
}

// NewInterpreter returns a new options instance with default options.
func NewInterpreter() Interpreter {
	return Interpreter{
		TapeSize: tape.DefaultSize,
		Offset:   tape.DefaultOffset,
	}
}
