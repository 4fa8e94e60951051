// Package writer renders an instruction tree as source code or as a listing.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrobf/internal/instruction"
)

const (
	indentWidth  = 2
	commentAlign = 30
)

// Options of the writer.
type Options struct {
	Listing       bool // one instruction run per line with loop labels instead of source
	LineWidth     int  // wrap source output after this many symbols, 0 disables wrapping
	ShowSymbols   bool // append the source symbols of a listing line as comment
	CommentHeader bool // write instruction count and loop depth as header comment
}

// Writer renders instruction trees.
type Writer struct {
	options Options
	writer  io.Writer

	loopLabel int
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write renders the instructions.
func (w *Writer) Write(instructions []instruction.Instruction) error {
	w.loopLabel = 0

	if w.options.CommentHeader {
		if err := w.writeCommentHeader(instructions); err != nil {
			return err
		}
	}

	if w.options.Listing {
		return w.writeListing(instructions, 1)
	}

	if err := w.writeSource(instructions); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// Source returns the canonical source of the instructions, containing only
// language symbols.
func Source(instructions []instruction.Instruction) string {
	var sb strings.Builder
	appendSource(&sb, instructions)
	return sb.String()
}

func appendSource(sb *strings.Builder, instructions []instruction.Instruction) {
	for _, ins := range instructions {
		if ins.IsLoop() {
			sb.WriteByte('[')
			appendSource(sb, ins.Body)
			sb.WriteByte(']')
			continue
		}
		sb.WriteByte(symbol(ins.Kind))
	}
}

func symbol(kind instruction.Kind) byte {
	op, ok := kind.Opcode()
	if !ok {
		return '?'
	}
	return op.Symbol()
}

func (w *Writer) writeCommentHeader(instructions []instruction.Instruction) error {
	if _, err := fmt.Fprintf(w.writer, "; instructions: %d\n", instruction.Count(instructions)); err != nil {
		return fmt.Errorf("writing instruction count: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; loop depth: %d\n\n", instruction.Depth(instructions)); err != nil {
		return fmt.Errorf("writing loop depth: %w", err)
	}
	return nil
}

func (w *Writer) writeSource(instructions []instruction.Instruction) error {
	source := Source(instructions)
	if w.options.LineWidth <= 0 {
		if _, err := io.WriteString(w.writer, source); err != nil {
			return fmt.Errorf("writing source: %w", err)
		}
		return nil
	}

	for len(source) > 0 {
		n := min(len(source), w.options.LineWidth)
		if _, err := io.WriteString(w.writer, source[:n]); err != nil {
			return fmt.Errorf("writing source: %w", err)
		}
		source = source[n:]
		if len(source) > 0 {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
	}
	return nil
}

func (w *Writer) writeListing(instructions []instruction.Instruction, depth int) error {
	for i := 0; i < len(instructions); {
		ins := instructions[i]
		if ins.IsLoop() {
			if err := w.writeLoop(ins, depth); err != nil {
				return err
			}
			i++
			continue
		}

		// bundle runs of the same instruction into one line
		run := 1
		for i+run < len(instructions) && instructions[i+run].Kind == ins.Kind {
			run++
		}

		code := ins.Kind.String()
		if run > 1 {
			code = fmt.Sprintf("%s x%d", code, run)
		}
		comment := ""
		if w.options.ShowSymbols {
			comment = strings.Repeat(string(symbol(ins.Kind)), run)
		}
		if err := w.writeCodeLine(depth, code, comment); err != nil {
			return err
		}
		i += run
	}
	return nil
}

func (w *Writer) writeLoop(ins instruction.Instruction, depth int) error {
	w.loopLabel++
	label := fmt.Sprintf("loop_%d", w.loopLabel)

	if err := w.writeCodeLine(depth-1, label+":", ""); err != nil {
		return err
	}
	if err := w.writeListing(ins.Body, depth+1); err != nil {
		return err
	}
	if err := w.writeCodeLine(depth-1, "end "+label, ""); err != nil {
		return err
	}
	return nil
}

func (w *Writer) writeCodeLine(depth int, code, comment string) error {
	line := strings.Repeat(" ", depth*indentWidth) + code

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "%-*s ; %s\n", commentAlign, line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}
