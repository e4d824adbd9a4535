// Package llvm writes compiled modules as LLVM textual IR.
package llvm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/aheuic/internal/abi"
	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/ir"
	"github.com/retroenv/aheuic/internal/writer"
)

var tableDefinition = "@%s = private unnamed_addr constant [4 x i8] [%s]"

var functionDefinition = "define void @%s() {"

// FileWriter writes the LLVM IR file content.
type FileWriter struct {
	module  *ir.Module
	options backend.Options
	writer  *writer.Writer
}

type lineWrite string

type customWrite func() error

// New creates a new file writer.
// nolint: ireturn
func New(module *ir.Module, options backend.Options, mainWriter io.Writer) writer.BackendWriter {
	opts := writer.Options{
		CommentPrefix: ";",
		LabelFormat:   "%s:",
		Indent:        "  ",
		SourceComment: options.SourceComments,
	}
	return FileWriter{
		module:  module,
		options: options,
		writer:  writer.New(mainWriter, opts),
	}
}

// Write writes the module header, the permutation tables, the runtime
// function declarations and the compiled function.
func (f FileWriter) Write() error {
	var writes []any // nolint:prealloc

	if f.options.CommentHeader {
		writes = append(writes, customWrite(func() error {
			return f.writer.WriteCommentHeader(f.module)
		}))
	}
	writes = append(writes,
		lineWrite(fmt.Sprintf("; ModuleID = '%s'", escape(f.module.Name))),
		lineWrite(fmt.Sprintf("source_filename = \"%s\"", escape(f.module.Name))),
		customWrite(f.writeTables),
		customWrite(f.writeDeclarations),
		customWrite(f.writeFunction),
	)

	for _, write := range writes {
		switch t := write.(type) {
		case lineWrite:
			if err := f.writer.Line("%s", t); err != nil {
				return err
			}

		case customWrite:
			if err := t(); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeTables writes the used permutation tables as constant globals.
func (f FileWriter) writeTables() error {
	tables := f.module.UsedTables()
	if len(tables) == 0 {
		return nil
	}
	if err := f.writer.EmptyLine(); err != nil {
		return err
	}

	for _, table := range tables {
		entries := table.Table()
		values := make([]string, len(entries))
		for i, v := range entries {
			values[i] = fmt.Sprintf("i8 %d", v)
		}
		if err := f.writer.Line(tableDefinition, table.Name(), strings.Join(values, ", ")); err != nil {
			return fmt.Errorf("writing table %s: %w", table.Name(), err)
		}
	}
	return nil
}

// writeDeclarations declares the used runtime functions.
func (f FileWriter) writeDeclarations() error {
	funcs := f.module.UsedFuncs()
	if len(funcs) == 0 {
		return nil
	}
	if err := f.writer.EmptyLine(); err != nil {
		return err
	}

	for _, fn := range funcs {
		sig := fn.Signature()
		params := make([]string, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = p.String()
		}
		if err := f.writer.Line("declare %s @%s(%s)", sig.Result, sig.Name, strings.Join(params, ", ")); err != nil {
			return fmt.Errorf("declaring %s: %w", sig.Name, err)
		}
	}
	return nil
}

func (f FileWriter) writeFunction() error {
	fn := f.module.Main
	if err := f.writer.EmptyLine(); err != nil {
		return err
	}
	if err := f.writer.Line(functionDefinition, fn.Name); err != nil {
		return fmt.Errorf("writing function header: %w", err)
	}

	for i, block := range fn.Blocks {
		if i > 0 {
			if err := f.writer.EmptyLine(); err != nil {
				return err
			}
		}
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

	// registers are stack slots of the function, allocated before first use
	if entry {
		for _, reg := range ir.Registers {
			if err := f.writer.Instruction("%%%s = alloca %s", reg.Name(), reg.Type()); err != nil {
				return err
			}
		}
	}

	for _, ins := range block.Instructions {
		if err := f.writeInstruction(ins); err != nil {
			return err
		}
	}
	return f.writeTerminator(block.Terminator)
}

//nolint:cyclop
func (f FileWriter) writeInstruction(ins ir.Instruction) error {
	w := f.writer

	switch ins := ins.(type) {
	case *ir.Load:
		return w.Instruction("%s = load %s, ptr %%%s", operand(ins.Dst), ins.Reg.Type(), ins.Reg.Name())

	case *ir.Store:
		return w.Instruction("store %s %s, ptr %%%s", ins.Reg.Type(), operand(ins.Src), ins.Reg.Name())

	case *ir.Binary:
		return w.Instruction("%s = %s i32 %s, %s", operand(ins.Dst), ins.Op, operand(ins.X), operand(ins.Y))

	case *ir.Compare:
		return w.Instruction("%s = icmp %s %s %s, %s", operand(ins.Dst), ins.Pred, ins.X.Type(), operand(ins.X), operand(ins.Y))

	case *ir.ZeroExtend:
		return w.Instruction("%s = zext %s to i32", operand(ins.Dst), typed(ins.Src))

	case *ir.Lookup:
		dst := operand(ins.Dst)
		if err := w.Instruction("%s.idx = zext %s to i64", dst, typed(ins.Index)); err != nil {
			return err
		}
		if err := w.Instruction("%s.ptr = getelementptr inbounds [4 x i8], ptr @%s, i64 0, i64 %s.idx",
			dst, ins.Table.Name(), dst); err != nil {
			return err
		}
		return w.Instruction("%s = load i8, ptr %s.ptr", dst, dst)

	case *ir.Call:
		return f.writeCall(ins)

	default:
		return fmt.Errorf("unsupported instruction type %T", ins)
	}
}

func (f FileWriter) writeCall(call *ir.Call) error {
	sig := call.Func.Signature()
	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		args[i] = fmt.Sprintf("%s %s", sig.Params[i], operand(arg))
	}

	invocation := fmt.Sprintf("call %s @%s(%s)", sig.Result, sig.Name, strings.Join(args, ", "))
	if call.Dst == nil {
		return f.writer.Instruction("%s", invocation)
	}
	return f.writer.Instruction("%s = %s", operand(*call.Dst), invocation)
}

func (f FileWriter) writeTerminator(t ir.Terminator) error {
	w := f.writer

	switch t := t.(type) {
	case *ir.Jump:
		return w.Instruction("br label %%%s", t.Target)

	case *ir.Branch:
		return w.Instruction("br %s, label %%%s, label %%%s", typed(t.Cond), t.Then, t.Else)

	case *ir.Switch:
		if err := w.Instruction("switch %s, label %%%s [", typed(t.Value), t.Default); err != nil {
			return err
		}
		for _, c := range t.Cases {
			if err := w.Instruction("  %s %d, label %%%s", t.Value.Type(), c.Value, c.Target); err != nil {
				return err
			}
		}
		return w.Instruction("]")

	case *ir.Return:
		return w.Instruction("ret void")

	default:
		return fmt.Errorf("unsupported terminator type %T", t)
	}
}

// escape returns the string with quotes, backslashes and non printable
// bytes escaped as LLVM hex sequences.
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' || c < 0x20 || c == 0x7f {
			fmt.Fprintf(&b, "\\%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// operand returns the LLVM form of a value without its type.
func operand(v ir.Value) string {
	switch v := v.(type) {
	case ir.Const:
		if v.Typ == abi.I1 {
			if v.Int != 0 {
				return "true"
			}
			return "false"
		}
		return fmt.Sprintf("%d", v.Int)
	case ir.Temp:
		return "%" + v.String()
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

// typed returns the LLVM form of a value prefixed with its type.
func typed(v ir.Value) string {
	return fmt.Sprintf("%s %s", v.Type(), operand(v))
}
