// Package verification verifies that a rendered instruction tree recreates
// the tree it was rendered from.
package verification

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrobf/internal/instruction"
	"github.com/retroenv/retrobf/internal/lexer"
	"github.com/retroenv/retrobf/internal/parser"
	"github.com/retroenv/retrobf/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// ErrMismatch is returned when the reparsed tree differs from the input tree.
var ErrMismatch = errors.New("instruction tree mismatch")

// Verify renders the instructions as source, translates and parses the
// source again and compares the resulting tree with the input.
func Verify(logger *log.Logger, instructions []instruction.Instruction) error {
	source := writer.Source(instructions)

	reparsed, err := parser.Parse(lexer.Translate(source))
	if err != nil {
		return fmt.Errorf("parsing rendered source: %w", err)
	}

	if !instruction.Equal(instructions, reparsed) {
		expected := instruction.Count(instructions)
		got := instruction.Count(reparsed)
		logger.Error("Rendered source does not recreate the instruction tree",
			log.Int("expected", expected),
			log.Int("got", got))
		return fmt.Errorf("%w: %d instructions, got %d", ErrMismatch, expected, got)
	}

	logger.Debug("Verified instruction tree",
		log.Int("instructions", instruction.Count(reparsed)),
		log.Int("depth", instruction.Depth(reparsed)),
		log.Int("source_length", len(source)))
	return nil
}
