// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrobf/internal/executor"
	"github.com/retroenv/retrobf/internal/instruction"
	"github.com/retroenv/retrobf/internal/lexer"
	"github.com/retroenv/retrobf/internal/loader"
	"github.com/retroenv/retrobf/internal/options"
	"github.com/retroenv/retrobf/internal/parser"
	"github.com/retroenv/retrobf/internal/tape"
	"github.com/retroenv/retrobf/internal/verification"
	"github.com/retroenv/retrobf/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete load, translate, parse and execute workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// Result contains the final state of a pipeline run.
type Result struct {
	Instructions []instruction.Instruction
	Tape         *tape.Tape // nil if the program was not executed
	Stats        executor.Stats
}

// New creates a new interpreter pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the source file and runs it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, interpreterOpts options.Interpreter,
	input io.Reader, output io.Writer) (*Result, error) {

	source, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}

	return p.ExecuteWithSource(ctx, source, opts, interpreterOpts, input, output)
}

// ExecuteWithSource runs the pipeline with already loaded source text.
// This is useful for testing and programmatic usage where the source is already in memory.
func (p *Pipeline) ExecuteWithSource(ctx context.Context, source string, opts options.Program,
	interpreterOpts options.Interpreter, input io.Reader, output io.Writer) (*Result, error) {

	instructions, err := p.Compile(source)
	if err != nil {
		return nil, err
	}
	result := &Result{Instructions: instructions}

	if opts.Verify {
		if err := verification.Verify(p.logger, instructions); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	if opts.Dump {
		if err := p.dump(opts, instructions, output); err != nil {
			return nil, err
		}
		return result, nil
	}

	p.printInfo(opts, interpreterOpts, instructions)

	exec := executor.New(p.logger, interpreterOpts, input, output)
	t, err := exec.NewTape()
	if err != nil {
		return nil, err
	}
	result.Tape = t

	err = exec.Execute(ctx, instructions, t)
	result.Stats = exec.Stats()
	p.logger.Debug("Execution finished",
		log.Int("steps", int(result.Stats.Steps)),
		log.Int("bytes_read", int(result.Stats.BytesRead)),
		log.Int("bytes_written", int(result.Stats.BytesWritten)),
		log.Int("pointer", t.Pointer()),
		log.Int("used_cells", usedCells(t.Bytes())))
	if err != nil {
		return result, fmt.Errorf("executing program: %w", err)
	}
	return result, nil
}

// Compile translates and parses the source into an instruction tree.
func (p *Pipeline) Compile(source string) ([]instruction.Instruction, error) {
	opcodes := lexer.Translate(source)
	p.logger.Debug("Translated source",
		log.Int("characters", len(source)),
		log.Int("opcodes", len(opcodes)))

	instructions, err := parser.Parse(opcodes)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	return instructions, nil
}

// dump writes the instructions in the configured dump format instead of running them.
func (p *Pipeline) dump(opts options.Program, instructions []instruction.Instruction, output io.Writer) error {
	writerOpts := writer.Options{CommentHeader: true}
	switch opts.DumpFormat {
	case options.DumpSource:
		writerOpts.LineWidth = opts.LineWidth
	default:
		writerOpts.Listing = true
		writerOpts.ShowSymbols = true
	}

	if err := writer.New(output, writerOpts).Write(instructions); err != nil {
		return fmt.Errorf("writing %s dump: %w", opts.DumpFormat, err)
	}
	return nil
}

// usedCells returns the number of non zero tape cells.
func usedCells(cells []byte) int {
	var n int
	for _, b := range cells {
		if b != 0 {
			n++
		}
	}
	return n
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, interpreterOpts options.Interpreter,
	instructions []instruction.Instruction) {

	if opts.Quiet {
		return
	}

	p.logger.Debug("Running program",
		log.String("file", opts.Input),
		log.Int("instructions", instruction.Count(instructions)),
		log.Int("loop_depth", instruction.Depth(instructions)),
		log.Int("tape_size", interpreterOpts.TapeSize),
		log.Int("offset", interpreterOpts.Offset),
	)
}
