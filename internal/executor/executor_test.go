package executor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrobf/internal/lexer"
	"github.com/retroenv/retrobf/internal/options"
	"github.com/retroenv/retrobf/internal/parser"
	"github.com/retroenv/retrobf/internal/tape"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type runResult struct {
	tape   *tape.Tape
	output string
	stats  Stats
	err    error
}

func run(t *testing.T, opts options.Interpreter, source, input string) runResult {
	t.Helper()

	code, err := parser.Parse(lexer.Translate(source))
	assert.NoError(t, err)

	var out bytes.Buffer
	e := New(log.NewTestLogger(t), opts, strings.NewReader(input), &out)
	tp, err := e.NewTape()
	assert.NoError(t, err)

	err = e.Execute(context.Background(), code, tp)
	return runResult{
		tape:   tp,
		output: out.String(),
		stats:  e.Stats(),
		err:    err,
	}
}

func TestExecute_Scenarios(t *testing.T) {
	opts := options.NewInterpreter()

	t.Run("increment and write", func(t *testing.T) {
		res := run(t, opts, "++.", "")
		assert.NoError(t, res.err)
		assert.Equal(t, "\x02", res.output)
		assert.Equal(t, byte(2), res.tape.Get())
		assert.Equal(t, tape.DefaultOffset, res.tape.Pointer())
	})

	t.Run("echo input byte", func(t *testing.T) {
		res := run(t, opts, ",.", "A")
		assert.NoError(t, res.err)
		assert.Equal(t, "A", res.output)
		assert.Equal(t, uint64(1), res.stats.BytesRead)
		assert.Equal(t, uint64(1), res.stats.BytesWritten)
	})

	t.Run("loop on zero cell is skipped", func(t *testing.T) {
		res := run(t, opts, "[]", "")
		assert.NoError(t, res.err)
		assert.Equal(t, byte(0), res.tape.Get())
		assert.Equal(t, uint64(1), res.stats.Steps)
	})

	t.Run("decrement to zero loop", func(t *testing.T) {
		res := run(t, opts, "+++[-]", "")
		assert.NoError(t, res.err)
		assert.Equal(t, byte(0), res.tape.Get())
	})

	t.Run("move value to next cell", func(t *testing.T) {
		res := run(t, opts, "+++++[->+<]", "")
		assert.NoError(t, res.err)

		cells := res.tape.Bytes()
		assert.Equal(t, byte(0), cells[tape.DefaultOffset])
		assert.Equal(t, byte(5), cells[tape.DefaultOffset+1])
		assert.Equal(t, tape.DefaultOffset, res.tape.Pointer())
	})

	t.Run("nested loops multiply", func(t *testing.T) {
		// 3 * 4 into the cell two to the right
		res := run(t, opts, "+++[>++++[>+<-]<-]", "")
		assert.NoError(t, res.err)

		cells := res.tape.Bytes()
		assert.Equal(t, byte(0), cells[tape.DefaultOffset])
		assert.Equal(t, byte(0), cells[tape.DefaultOffset+1])
		assert.Equal(t, byte(12), cells[tape.DefaultOffset+2])
	})

	t.Run("hello", func(t *testing.T) {
		source := "++++++++[>+++++++++<-]>.<+++++[>++++++<-]>-." // H then e
		res := run(t, opts, source, "")
		assert.NoError(t, res.err)
		assert.Equal(t, "He", res.output)
	})
}

func TestExecute_Wrapping(t *testing.T) {
	opts := options.NewInterpreter()

	res := run(t, opts, "-", "")
	assert.NoError(t, res.err)
	assert.Equal(t, byte(255), res.tape.Get())

	res = run(t, opts, "-+", "")
	assert.NoError(t, res.err)
	assert.Equal(t, byte(0), res.tape.Get())

	// 256 increments wrap back to zero
	res = run(t, opts, strings.Repeat("+", 256), "")
	assert.NoError(t, res.err)
	assert.Equal(t, byte(0), res.tape.Get())
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    options.Interpreter
		source  string
		input   string
		wantErr error
	}{
		{
			name:    "move left off the tape",
			opts:    options.Interpreter{TapeSize: 4, Offset: 0},
			source:  "<",
			wantErr: tape.ErrPointerOutOfBounds,
		},
		{
			name:    "move right off the tape",
			opts:    options.Interpreter{TapeSize: 4, Offset: 2},
			source:  ">>",
			wantErr: tape.ErrPointerOutOfBounds,
		},
		{
			name:    "scan right inside a loop",
			opts:    options.Interpreter{TapeSize: 16, Offset: 8},
			source:  "+[>+]",
			wantErr: tape.ErrPointerOutOfBounds,
		},
		{
			name:    "read without input",
			opts:    options.NewInterpreter(),
			source:  ",",
			wantErr: ErrInputExhausted,
		},
		{
			name:    "read past end of input",
			opts:    options.NewInterpreter(),
			source:  ",,",
			input:   "x",
			wantErr: ErrInputExhausted,
		},
		{
			name:    "step limit",
			opts:    options.Interpreter{TapeSize: 8, Offset: 0, MaxSteps: 100},
			source:  "+[]",
			wantErr: ErrStepLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.opts, tt.source, tt.input)
			assert.Error(t, res.err)
			assert.True(t, errors.Is(res.err, tt.wantErr))
		})
	}
}

func TestExecute_Cancel(t *testing.T) {
	code, err := parser.Parse(lexer.Translate("+[]"))
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(log.NewTestLogger(t), options.NewInterpreter(), strings.NewReader(""), &bytes.Buffer{})
	tp, err := e.NewTape()
	assert.NoError(t, err)

	err = e.Execute(ctx, code, tp)
	assert.True(t, errors.Is(err, context.Canceled))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestExecute_WriteError(t *testing.T) {
	code, err := parser.Parse(lexer.Translate("."))
	assert.NoError(t, err)

	e := New(log.NewTestLogger(t), options.NewInterpreter(), strings.NewReader(""), failingWriter{})
	tp, err := e.NewTape()
	assert.NoError(t, err)

	err = e.Execute(context.Background(), code, tp)
	assert.ErrorContains(t, err, "writing output: disk full")
}

func TestNewTape_InvalidOptions(t *testing.T) {
	e := New(log.NewTestLogger(t), options.Interpreter{TapeSize: 4, Offset: 4}, nil, nil)
	_, err := e.NewTape()
	assert.ErrorContains(t, err, "creating tape")
}
