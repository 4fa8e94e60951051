// Package opcode defines the opcodes produced by the lexer.
package opcode

// Opcode is a single translated source symbol.
type Opcode uint8

// Opcodes of the language, one per recognized source symbol.
const (
	MoveRight Opcode = iota + 1
	MoveLeft
	Increment
	Decrement
	Write
	Read
	LoopStart
	LoopEnd
)

var names = map[Opcode]string{
	MoveRight: "MoveRight",
	MoveLeft:  "MoveLeft",
	Increment: "Increment",
	Decrement: "Decrement",
	Write:     "Write",
	Read:      "Read",
	LoopStart: "LoopStart",
	LoopEnd:   "LoopEnd",
}

// Symbols maps every recognized source symbol to its opcode.
var Symbols = map[byte]Opcode{
	'>': MoveRight,
	'<': MoveLeft,
	'+': Increment,
	'-': Decrement,
	'.': Write,
	',': Read,
	'[': LoopStart,
	']': LoopEnd,
}

var symbols = func() map[Opcode]byte {
	m := make(map[Opcode]byte, len(Symbols))
	for sym, op := range Symbols {
		m[op] = sym
	}
	return m
}()

// FromSymbol returns the opcode for the given source symbol and whether
// the symbol is part of the language.
func FromSymbol(sym byte) (Opcode, bool) {
	op, ok := Symbols[sym]
	return op, ok
}

// Symbol returns the source symbol of the opcode or 0 for an unknown opcode.
func (o Opcode) Symbol() byte {
	return symbols[o]
}

func (o Opcode) String() string {
	if name, ok := names[o]; ok {
		return name
	}
	return "Unknown"
}
