// Package tape implements the fixed-size byte tape and data pointer that
// programs operate on.
package tape

import (
	"errors"
	"fmt"
)

// Default tape layout. The pointer starts in the middle so that programs
// can move left from their starting cell.
const (
	DefaultSize   = 1024
	DefaultOffset = DefaultSize / 2
)

// ErrPointerOutOfBounds is returned when the data pointer would leave the tape.
var ErrPointerOutOfBounds = errors.New("data pointer out of bounds")

// Tape is a fixed-size byte buffer with a data pointer that always
// references a valid cell.
type Tape struct {
	cells   []byte
	pointer int
}

// New returns a zeroed tape of the given size with the data pointer at offset.
func New(size, offset int) (*Tape, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid tape size %d", size)
	}
	if offset < 0 || offset >= size {
		return nil, fmt.Errorf("pointer offset %d outside of tape size %d", offset, size)
	}
	return &Tape{
		cells:   make([]byte, size),
		pointer: offset,
	}, nil
}

// Size returns the number of cells.
func (t *Tape) Size() int {
	return len(t.cells)
}

// Pointer returns the data pointer index.
func (t *Tape) Pointer() int {
	return t.pointer
}

// Get returns the byte under the data pointer.
func (t *Tape) Get() byte {
	return t.cells[t.pointer]
}

// Set stores the byte under the data pointer.
func (t *Tape) Set(b byte) {
	t.cells[t.pointer] = b
}

// Increment adds one to the byte under the data pointer, wrapping 255 to 0.
func (t *Tape) Increment() {
	t.cells[t.pointer]++
}

// Decrement subtracts one from the byte under the data pointer, wrapping 0 to 255.
func (t *Tape) Decrement() {
	t.cells[t.pointer]--
}

// MoveRight advances the data pointer by one cell.
func (t *Tape) MoveRight() error {
	if t.pointer+1 >= len(t.cells) {
		return fmt.Errorf("%w: moving right from cell %d of %d", ErrPointerOutOfBounds, t.pointer, len(t.cells))
	}
	t.pointer++
	return nil
}

// MoveLeft moves the data pointer back by one cell.
func (t *Tape) MoveLeft() error {
	if t.pointer == 0 {
		return fmt.Errorf("%w: moving left from cell 0", ErrPointerOutOfBounds)
	}
	t.pointer--
	return nil
}

// Bytes returns a copy of all cells.
func (t *Tape) Bytes() []byte {
	b := make([]byte, len(t.cells))
	copy(b, t.cells)
	return b
}
