package ir

import (
	"fmt"

	"github.com/retroenv/aheuic/internal/abi"
)

// Builder appends instructions to a block of a function.
type Builder struct {
	fn    *Function
	block *Block
}

// NewBuilder returns a builder that appends to the given block.
func NewBuilder(fn *Function, block *Block) *Builder {
	return &Builder{
		fn:    fn,
		block: block,
	}
}

func (b *Builder) append(ins Instruction) {
	if b.block.Terminator != nil {
		panic(fmt.Sprintf("appending to terminated block %s", b.block.Name))
	}
	b.block.Instructions = append(b.block.Instructions, ins)
}

func (b *Builder) terminate(t Terminator) {
	if b.block.Terminator != nil {
		panic(fmt.Sprintf("block %s is already terminated", b.block.Name))
	}
	b.block.Terminator = t
}

// Load reads a register into a new temporary.
func (b *Builder) Load(reg Register) Temp {
	dst := b.fn.newTemp(reg.Type())
	b.append(&Load{Dst: dst, Reg: reg})
	return dst
}

// Store writes a value into a register.
func (b *Builder) Store(reg Register, v Value) {
	b.append(&Store{Reg: reg, Src: v})
}

// Binary computes an arithmetic operation on two i32 values.
func (b *Builder) Binary(op BinaryOp, x, y Value) Temp {
	dst := b.fn.newTemp(abi.I32)
	b.append(&Binary{Dst: dst, Op: op, X: x, Y: y})
	return dst
}

// Compare computes an i1 comparison result.
func (b *Builder) Compare(pred Predicate, x, y Value) Temp {
	dst := b.fn.newTemp(abi.I1)
	b.append(&Compare{Dst: dst, Pred: pred, X: x, Y: y})
	return dst
}

// ZeroExtend widens an i1 value to i32.
func (b *Builder) ZeroExtend(v Value) Temp {
	dst := b.fn.newTemp(abi.I32)
	b.append(&ZeroExtend{Dst: dst, Src: v})
	return dst
}

// Lookup reads a permutation table entry.
func (b *Builder) Lookup(table Permutation, index Value) Temp {
	dst := b.fn.newTemp(abi.I8)
	b.append(&Lookup{Dst: dst, Table: table, Index: index})
	return dst
}

// Call invokes a runtime function and returns its result. The returned
// temporary is only meaningful for functions with a result.
func (b *Builder) Call(fn abi.Func, args ...Value) Temp {
	sig := fn.Signature()
	if len(args) != len(sig.Params) {
		panic(fmt.Sprintf("call of %s with %d arguments, expected %d", sig.Name, len(args), len(sig.Params)))
	}

	call := &Call{Func: fn, Args: args}
	var dst Temp
	if sig.Result != abi.Void {
		dst = b.fn.newTemp(sig.Result)
		call.Dst = &dst
	}
	b.append(call)
	return dst
}

// Jump terminates the block with an unconditional branch.
func (b *Builder) Jump(target string) {
	b.terminate(&Jump{Target: target})
}

// Branch terminates the block with a conditional branch.
func (b *Builder) Branch(cond Value, then, otherwise string) {
	b.terminate(&Branch{Cond: cond, Then: then, Else: otherwise})
}

// Switch terminates the block with a multi-way dispatch.
func (b *Builder) Switch(v Value, def string, cases ...Case) {
	b.terminate(&Switch{Value: v, Default: def, Cases: cases})
}

// Return terminates the block and ends the program.
func (b *Builder) Return() {
	b.terminate(&Return{})
}
