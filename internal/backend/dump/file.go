// Package dump writes compiled modules as readable control-flow graph text.
package dump

import (
	"fmt"
	"io"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/ir"
	"github.com/retroenv/aheuic/internal/writer"
)

// FileWriter writes the graph dump.
type FileWriter struct {
	module  *ir.Module
	options backend.Options
	writer  *writer.Writer
}

// New creates a new file writer.
// nolint: ireturn
func New(module *ir.Module, options backend.Options, mainWriter io.Writer) writer.BackendWriter {
	opts := writer.Options{
		CommentPrefix: "#",
		LabelFormat:   "%s:",
		Indent:        "\t",
		SourceComment: options.SourceComments,
	}
	return FileWriter{
		module:  module,
		options: options,
		writer:  writer.New(mainWriter, opts),
	}
}

// Write writes every block with its instructions and successors.
func (f FileWriter) Write() error {
	if f.options.CommentHeader {
		if err := f.writer.WriteCommentHeader(f.module); err != nil {
			return err
		}
	}

	fn := f.module.Main
	if err := f.writer.Line("function %s", fn.Name); err != nil {
		return err
	}

	for _, block := range fn.Blocks {
		if err := f.writer.EmptyLine(); err != nil {
			return err
		}
		if err := f.writeBlock(block); err != nil {
			return fmt.Errorf("writing block %s: %w", block.Name, err)
		}
	}
	return nil
}

func (f FileWriter) writeBlock(block *ir.Block) error {
	if err := f.writer.Label(block); err != nil {
		return err
	}
	for _, ins := range block.Instructions {
		if err := f.writer.Instruction("%s", ins); err != nil {
			return err
		}
	}
	return f.writer.Instruction("%s", block.Terminator)
}
