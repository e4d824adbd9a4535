// Package qbe writes compiled modules as QBE intermediate language.
package qbe

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/ir"
	"github.com/retroenv/aheuic/internal/writer"
)

var tableDefinition = "data $%s = { %s }"

var functionDefinition = "export function $%s() {"

var predicates = map[ir.Predicate]string{
	ir.ULE: "culew",
	ir.EQ:  "ceqw",
}

// FileWriter writes the QBE IL file content.
type FileWriter struct {
	module  *ir.Module
	options backend.Options
	writer  *writer.Writer
}

type customWrite func() error

// New creates a new file writer.
// nolint: ireturn
func New(module *ir.Module, options backend.Options, mainWriter io.Writer) writer.BackendWriter {
	opts := writer.Options{
		CommentPrefix: "#",
		LabelFormat:   "@%s",
		Indent:        "\t",
		SourceComment: options.SourceComments,
	}
	return FileWriter{
		module:  module,
		options: options,
		writer:  writer.New(mainWriter, opts),
	}
}

// Write writes the permutation tables and the compiled function. Runtime
// functions need no declaration in QBE.
func (f FileWriter) Write() error {
	var writes []customWrite // nolint:prealloc

	if f.options.CommentHeader {
		writes = append(writes, func() error {
			return f.writer.WriteCommentHeader(f.module)
		})
	}
	writes = append(writes, f.writeTables, f.writeFunction)

	for _, write := range writes {
		if err := write(); err != nil {
			return err
		}
	}
	return nil
}

func (f FileWriter) writeTables() error {
	tables := f.module.UsedTables()
	for _, table := range tables {
		entries := table.Table()
		values := make([]string, len(entries))
		for i, v := range entries {
			values[i] = fmt.Sprintf("b %d", v)
		}
		if err := f.writer.Line(tableDefinition, table.Name(), strings.Join(values, ", ")); err != nil {
			return fmt.Errorf("writing table %s: %w", table.Name(), err)
		}
	}
	if len(tables) > 0 {
		return f.writer.EmptyLine()
	}
	return nil
}

func (f FileWriter) writeFunction() error {
	fn := f.module.Main
	if err := f.writer.Line(functionDefinition, fn.Name); err != nil {
		return fmt.Errorf("writing function header: %w", err)
	}

	for i, block := range fn.Blocks {
		if err := f.writeBlock(block, i == 0); err != nil {
			return fmt.Errorf("writing block %s: %w", block.Name, err)
		}
	}

	return f.writer.Line("}")
}

func (f FileWriter) writeBlock(block *ir.Block, entry bool) error {
	if err := f.writer.Label(block); err != nil {
		return err
	}

	// byte sized registers, alloc4 is the smallest stack allocation
	if entry {
		for _, reg := range ir.Registers {
			if err := f.writer.Instruction("%%%s =l alloc4 1", reg.Name()); err != nil {
				return err
			}
		}
	}

	for _, ins := range block.Instructions {
		if err := f.writeInstruction(ins); err != nil {
			return err
		}
	}
	return f.writeTerminator(block)
}

func (f FileWriter) writeInstruction(ins ir.Instruction) error {
	w := f.writer

	switch ins := ins.(type) {
	case *ir.Load:
		return w.Instruction("%s =w loadub %%%s", operand(ins.Dst), ins.Reg.Name())

	case *ir.Store:
		return w.Instruction("storeb %s, %%%s", operand(ins.Src), ins.Reg.Name())

	case *ir.Binary:
		return w.Instruction("%s =w %s %s, %s", operand(ins.Dst), ins.Op, operand(ins.X), operand(ins.Y))

	case *ir.Compare:
		return w.Instruction("%s =w %s %s, %s", operand(ins.Dst), predicates[ins.Pred], operand(ins.X), operand(ins.Y))

	case *ir.ZeroExtend:
		// comparison results are words already
		return w.Instruction("%s =w copy %s", operand(ins.Dst), operand(ins.Src))

	case *ir.Lookup:
		dst := operand(ins.Dst)
		if err := w.Instruction("%s_idx =l extuw %s", dst, operand(ins.Index)); err != nil {
			return err
		}
		if err := w.Instruction("%s_ptr =l add $%s, %s_idx", dst, ins.Table.Name(), dst); err != nil {
			return err
		}
		return w.Instruction("%s =w loadub %s_ptr", dst, dst)

	case *ir.Call:
		return f.writeCall(ins)

	default:
		return fmt.Errorf("unsupported instruction type %T", ins)
	}
}

func (f FileWriter) writeCall(call *ir.Call) error {
	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		args[i] = "w " + operand(arg)
	}

	invocation := fmt.Sprintf("call $%s(%s)", call.Func.Name(), strings.Join(args, ", "))
	if call.Dst == nil {
		return f.writer.Instruction("%s", invocation)
	}
	return f.writer.Instruction("%s =w %s", operand(*call.Dst), invocation)
}

func (f FileWriter) writeTerminator(block *ir.Block) error {
	w := f.writer

	switch t := block.Terminator.(type) {
	case *ir.Jump:
		return w.Instruction("jmp @%s", t.Target)

	case *ir.Branch:
		return w.Instruction("jnz %s, @%s, @%s", operand(t.Cond), t.Then, t.Else)

	case *ir.Switch:
		return f.writeSwitch(block.Name, t)

	case *ir.Return:
		return w.Instruction("ret")

	default:
		return fmt.Errorf("unsupported terminator type %T", t)
	}
}

// writeSwitch lowers a switch to a chain of compares, each case that does
// not match continues in a new block that tests the next case.
func (f FileWriter) writeSwitch(name string, t *ir.Switch) error {
	w := f.writer
	value := operand(t.Value)

	for i, c := range t.Cases {
		next := t.Default
		if i < len(t.Cases)-1 {
			next = fmt.Sprintf("%s_case%d", name, i+1)
		}

		match := fmt.Sprintf("%s_case%d", value, i)
		if err := w.Instruction("%s =w ceqw %s, %d", match, value, c.Value); err != nil {
			return err
		}
		if err := w.Instruction("jnz %s, @%s, @%s", match, c.Target, next); err != nil {
			return err
		}
		if next != t.Default {
			if err := w.Line("@%s", next); err != nil {
				return err
			}
		}
	}

	if len(t.Cases) == 0 {
		return w.Instruction("jmp @%s", t.Default)
	}
	return nil
}

// operand returns the QBE form of a value, all values are words.
func operand(v ir.Value) string {
	switch v := v.(type) {
	case ir.Const:
		return fmt.Sprintf("%d", v.Int)
	case ir.Temp:
		return "%" + v.String()
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}
