// Package writer implements common text output functionality of the backends.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/aheuic/internal/ir"
)

// BackendWriter defines a shared interface used by the different backend packages.
// Their constructors need to return this shared interface, having them return the actual type instead of
// the interface results in compiler errors for the constructor variable that they are assigned to.
type BackendWriter interface {
	Write() error
}

// Writer implements common text output functionality.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	CommentPrefix string // line comment marker of the output format
	LabelFormat   string // format of a block label line, gets the block name
	Indent        string // prefix of instruction lines
	SourceComment bool   // annotate blocks with the source cell
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Line writes a line without indentation.
func (w Writer) Line(format string, args ...any) error {
	if _, err := fmt.Fprintf(w.writer, format+"\n", args...); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// EmptyLine writes an empty line.
func (w Writer) EmptyLine() error {
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// Instruction writes an indented instruction line.
func (w Writer) Instruction(format string, args ...any) error {
	if _, err := fmt.Fprintf(w.writer, w.options.Indent+format+"\n", args...); err != nil {
		return fmt.Errorf("writing instruction: %w", err)
	}
	return nil
}

// Comment writes a comment line.
func (w Writer) Comment(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := fmt.Fprintf(w.writer, "%s %s\n", w.options.CommentPrefix, text); err != nil {
		return fmt.Errorf("writing comment: %w", err)
	}
	return nil
}

// Label writes the label of a block. If source comments are enabled the
// source cell of the block is appended.
func (w Writer) Label(block *ir.Block) error {
	label := fmt.Sprintf(w.options.LabelFormat, block.Name)
	if !w.options.SourceComment || block.Source == nil {
		return w.Line("%s", label)
	}

	src := block.Source
	return w.Line("%-32s %s (%d,%d) %s", label, w.options.CommentPrefix, src.X, src.Y, sourceChar(src.Char))
}

// WriteCommentHeader writes the module name, entry function and used
// runtime functions as comments to the output.
func (w Writer) WriteCommentHeader(module *ir.Module) error {
	if err := w.Comment("Module: %s", module.Name); err != nil {
		return err
	}
	if err := w.Comment("Entry function: %s", module.Main.Name); err != nil {
		return err
	}
	if err := w.Comment("Blocks: %d", len(module.Main.Blocks)); err != nil {
		return err
	}

	funcs := module.UsedFuncs()
	names := make([]string, 0, len(funcs))
	for _, fn := range funcs {
		names = append(names, fn.Name())
	}
	if len(names) > 0 {
		if err := w.Comment("Runtime functions: %s", strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return w.EmptyLine()
}

// sourceChar returns a printable form of a source character.
func sourceChar(c rune) string {
	if c < ' ' || c == 0x7f {
		return fmt.Sprintf("%U", c)
	}
	return string(c)
}
