// Package parser builds the instruction tree from an opcode sequence.
package parser

import (
	"fmt"

	"github.com/retroenv/retrobf/internal/instruction"
	"github.com/retroenv/retrobf/internal/opcode"
)

// Parse converts the opcodes into an instruction tree. Every matched
// LoopStart/LoopEnd pair becomes a single loop instruction whose body is
// parsed recursively from the opcodes between the brackets.
func Parse(opcodes []opcode.Opcode) ([]instruction.Instruction, error) {
	code := make([]instruction.Instruction, 0, len(opcodes))
	var (
		depth     int // bracket nesting depth
		loopBegin int // position of the outermost unmatched loop start
	)

	for i, op := range opcodes {
		if depth == 0 {
			switch op {
			case opcode.LoopStart:
				loopBegin = i
				depth++

			case opcode.LoopEnd:
				return nil, &Error{Kind: ErrUnmatchedLoopEnd, Position: i}

			default:
				kind, ok := instruction.FromOpcode(op)
				if !ok {
					return nil, fmt.Errorf("unsupported opcode %d at position %d", op, i)
				}
				code = append(code, instruction.New(kind))
			}
			continue
		}

		switch op {
		case opcode.LoopStart:
			depth++

		case opcode.LoopEnd:
			depth--
			if depth > 0 {
				continue
			}

			body, err := Parse(opcodes[loopBegin+1 : i])
			if err != nil {
				return nil, err
			}
			code = append(code, instruction.NewLoop(body))
		}
	}

	if depth != 0 {
		return nil, &Error{Kind: ErrUnmatchedLoopStart, Position: loopBegin}
	}
	return code, nil
}
