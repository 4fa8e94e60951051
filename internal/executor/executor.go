// Package executor runs an instruction tree against a tape.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrobf/internal/instruction"
	"github.com/retroenv/retrobf/internal/options"
	"github.com/retroenv/retrobf/internal/tape"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrInputExhausted is returned when a read instruction finds no more input.
	ErrInputExhausted = errors.New("input exhausted")
	// ErrStepLimit is returned when the configured instruction limit is exceeded.
	ErrStepLimit = errors.New("step limit exceeded")
)

// Stats contains counters of an execution.
type Stats struct {
	Steps        uint64 // executed instructions, a loop counts once per condition check
	BytesRead    uint64
	BytesWritten uint64
}

// Executor walks an instruction tree. It is not safe for concurrent use.
type Executor struct {
	logger  *log.Logger
	options options.Interpreter
	input   io.Reader
	output  io.Writer

	buf   [1]byte
	stats Stats
}

// New returns a new executor reading from input and writing to output.
func New(logger *log.Logger, opts options.Interpreter, input io.Reader, output io.Writer) *Executor {
	return &Executor{
		logger:  logger,
		options: opts,
		input:   input,
		output:  output,
	}
}

// Stats returns the counters of all executions so far.
func (e *Executor) Stats() Stats {
	return e.stats
}

// NewTape returns a zeroed tape using the configured size and pointer offset.
func (e *Executor) NewTape() (*tape.Tape, error) {
	t, err := tape.New(e.options.TapeSize, e.options.Offset)
	if err != nil {
		return nil, fmt.Errorf("creating tape: %w", err)
	}
	return t, nil
}

// Execute runs the instructions in order against the tape. Loops execute
// their body recursively against the same tape while the current cell is
// not zero. The context is checked before every loop iteration.
func (e *Executor) Execute(ctx context.Context, instructions []instruction.Instruction, t *tape.Tape) error {
	for _, ins := range instructions {
		if err := e.step(); err != nil {
			return err
		}

		switch ins.Kind {
		case instruction.MoveRight:
			if err := t.MoveRight(); err != nil {
				return fmt.Errorf("executing %s: %w", ins, err)
			}

		case instruction.MoveLeft:
			if err := t.MoveLeft(); err != nil {
				return fmt.Errorf("executing %s: %w", ins, err)
			}

		case instruction.Increment:
			t.Increment()

		case instruction.Decrement:
			t.Decrement()

		case instruction.Write:
			if err := e.write(t.Get()); err != nil {
				return err
			}

		case instruction.Read:
			b, err := e.read()
			if err != nil {
				return err
			}
			t.Set(b)

		case instruction.Loop:
			if err := e.loop(ctx, ins.Body, t); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unsupported instruction kind %d", ins.Kind)
		}
	}
	return nil
}

func (e *Executor) loop(ctx context.Context, body []instruction.Instruction, t *tape.Tape) error {
	for t.Get() != 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("executing loop at cell %d: %w", t.Pointer(), err)
		}
		if err := e.Execute(ctx, body, t); err != nil {
			return err
		}
		if err := e.step(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) step() error {
	e.stats.Steps++
	if e.options.MaxSteps > 0 && e.stats.Steps > e.options.MaxSteps {
		return fmt.Errorf("%w: %d", ErrStepLimit, e.options.MaxSteps)
	}
	return nil
}

func (e *Executor) write(b byte) error {
	e.buf[0] = b
	if _, err := e.output.Write(e.buf[:]); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	e.stats.BytesWritten++
	return nil
}

func (e *Executor) read() (byte, error) {
	_, err := io.ReadFull(e.input, e.buf[:])
	switch {
	case errors.Is(err, io.EOF):
		return 0, ErrInputExhausted
	case err != nil:
		return 0, fmt.Errorf("reading input: %w", err)
	}

	e.stats.BytesRead++
	e.logger.Debug("Read input byte", log.Int("value", int(e.buf[0])))
	return e.buf[0], nil
}
