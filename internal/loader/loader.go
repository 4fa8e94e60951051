// Package loader handles source file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/retroenv/retrobf/internal/options"
)

// Loader handles loading source files from disk.
type Loader struct{}

// New creates a new source loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the complete source file named in the options.
func (l *Loader) Load(opts options.Program) (string, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", opts.Input, err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes converts raw file content to source text. The content has
// to be valid text, binary files are rejected.
func (l *Loader) LoadFromBytes(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("source is not valid UTF-8 text")
	}
	return string(data), nil
}
