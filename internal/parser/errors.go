package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural problems, matched by errors.Is on an *Error.
var (
	ErrUnmatchedLoopStart = errors.New("unmatched loop start")
	ErrUnmatchedLoopEnd   = errors.New("unmatched loop end")
)

// Error is a structural parse error at an opcode position.
type Error struct {
	Kind     error // ErrUnmatchedLoopStart or ErrUnmatchedLoopEnd
	Position int   // opcode index
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Kind, e.Position)
}

func (e *Error) Unwrap() error {
	return e.Kind
}
