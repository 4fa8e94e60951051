// Package lexer translates source text into opcodes.
package lexer

import (
	"github.com/retroenv/retrobf/internal/opcode"
)

// Translate converts the source into its opcode sequence. Characters that
// are not part of the language are comments and produce no opcode.
func Translate(source string) []opcode.Opcode {
	ops := make([]opcode.Opcode, 0, len(source))

	// the language symbols are all ASCII, iterating bytes skips every
	// byte of a multi byte rune as a comment.
	for i := 0; i < len(source); i++ {
		op, ok := opcode.FromSymbol(source[i])
		if !ok {
			continue
		}
		ops = append(ops, op)
	}
	return ops
}
