package verification

import (
	"errors"
	"testing"

	"github.com/retroenv/retrobf/internal/instruction"
	"github.com/retroenv/retrobf/internal/lexer"
	"github.com/retroenv/retrobf/internal/parser"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestVerify(t *testing.T) {
	logger := log.NewTestLogger(t)

	sources := []string{
		"",
		"++.",
		"[]",
		"+[->+<]",
		"comment ++[>++[>+<-]<-] more comment",
	}
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			code, err := parser.Parse(lexer.Translate(source))
			assert.NoError(t, err)
			assert.NoError(t, Verify(logger, code))
		})
	}
}

func TestVerify_Mismatch(t *testing.T) {
	logger := log.NewTestLogger(t)

	// a tree the parser never builds: an unknown kind renders as a
	// non language symbol and is dropped when translating again
	code := []instruction.Instruction{
		instruction.New(instruction.Increment),
		{Kind: instruction.Kind(99)},
	}

	err := Verify(logger, code)
	assert.True(t, errors.Is(err, ErrMismatch))
}
