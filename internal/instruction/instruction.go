// Package instruction defines the instruction tree that the parser builds
// and the executor walks.
package instruction

import "github.com/retroenv/retrobf/internal/opcode"

// Kind is the type of an instruction.
type Kind uint8

// Instruction kinds. Every kind except Loop corresponds to exactly one opcode.
const (
	MoveRight Kind = iota + 1
	MoveLeft
	Increment
	Decrement
	Write
	Read
	Loop
)

var kindNames = map[Kind]string{
	MoveRight: "MoveRight",
	MoveLeft:  "MoveLeft",
	Increment: "Increment",
	Decrement: "Decrement",
	Write:     "Write",
	Read:      "Read",
	Loop:      "Loop",
}

var kindOpcodes = map[Kind]opcode.Opcode{
	MoveRight: opcode.MoveRight,
	MoveLeft:  opcode.MoveLeft,
	Increment: opcode.Increment,
	Decrement: opcode.Decrement,
	Write:     opcode.Write,
	Read:      opcode.Read,
}

var opcodeKinds = func() map[opcode.Opcode]Kind {
	m := make(map[opcode.Opcode]Kind, len(kindOpcodes))
	for kind, op := range kindOpcodes {
		m[op] = kind
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Opcode returns the opcode that the kind is created from. Loop has no
// single opcode and returns false.
func (k Kind) Opcode() (opcode.Opcode, bool) {
	op, ok := kindOpcodes[k]
	return op, ok
}

// FromOpcode returns the kind of a non bracket opcode.
func FromOpcode(op opcode.Opcode) (Kind, bool) {
	kind, ok := opcodeKinds[op]
	return kind, ok
}

// Instruction is a node of the instruction tree. Body is only set for
// loops and is owned by the node.
type Instruction struct {
	Kind Kind
	Body []Instruction
}

// New returns a simple instruction of the given kind.
func New(kind Kind) Instruction {
	return Instruction{Kind: kind}
}

// NewLoop returns a loop instruction owning the given body.
func NewLoop(body []Instruction) Instruction {
	if body == nil {
		body = []Instruction{}
	}
	return Instruction{Kind: Loop, Body: body}
}

// IsLoop returns whether the instruction is a loop.
func (i Instruction) IsLoop() bool {
	return i.Kind == Loop
}

func (i Instruction) String() string {
	return i.Kind.String()
}

// Depth returns the maximum loop nesting depth of the sequence.
func Depth(seq []Instruction) int {
	var depth int
	for _, ins := range seq {
		if !ins.IsLoop() {
			continue
		}
		depth = max(depth, 1+Depth(ins.Body))
	}
	return depth
}

// Count returns the total number of instructions in the tree including
// all loop nodes and their bodies.
func Count(seq []Instruction) int {
	n := len(seq)
	for _, ins := range seq {
		if ins.IsLoop() {
			n += Count(ins.Body)
		}
	}
	return n
}

// Equal returns whether both sequences describe the same tree.
func Equal(a, b []Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
		if a[i].IsLoop() && !Equal(a[i].Body, b[i].Body) {
			return false
		}
	}
	return true
}
