package vm

import (
	"fmt"

	"github.com/retroenv/aheuic/internal/abi"
	"github.com/retroenv/aheuic/internal/host"
	"github.com/retroenv/aheuic/internal/ir"
)

// frame is the run-time state of one execution: all values are kept as
// 32 bit words and truncated to the width of their type.
type frame struct {
	host      *host.Host
	registers [len(ir.Registers)]uint32
	temps     []uint32
	steps     int
}

func truncate(typ abi.Type, v uint32) uint32 {
	switch typ {
	case abi.I1:
		return v & 1
	case abi.I8:
		return v & 0xff
	default:
		return v
	}
}

func (f *frame) value(v ir.Value) uint32 {
	switch v := v.(type) {
	case ir.Const:
		return truncate(v.Typ, uint32(v.Int))
	case ir.Temp:
		return f.temps[v.ID]
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

func (f *frame) set(dst ir.Temp, v uint32) {
	f.temps[dst.ID] = truncate(dst.Typ, v)
}

func (f *frame) execute(ins ir.Instruction) error {
	switch ins := ins.(type) {
	case *ir.Load:
		f.set(ins.Dst, f.registers[ins.Reg])

	case *ir.Store:
		f.registers[ins.Reg] = truncate(ins.Reg.Type(), f.value(ins.Src))

	case *ir.Binary:
		v, err := binary(ins.Op, f.value(ins.X), f.value(ins.Y))
		if err != nil {
			return err
		}
		f.set(ins.Dst, v)

	case *ir.Compare:
		f.set(ins.Dst, compare(ins.Pred, f.value(ins.X), f.value(ins.Y)))

	case *ir.ZeroExtend:
		f.set(ins.Dst, f.value(ins.Src))

	case *ir.Lookup:
		f.set(ins.Dst, uint32(ins.Table.Apply(uint8(f.value(ins.Index)))))

	case *ir.Call:
		return f.call(ins)

	default:
		return fmt.Errorf("unsupported instruction type %T", ins)
	}
	return nil
}

func binary(op ir.BinaryOp, x, y uint32) (uint32, error) {
	switch op {
	case ir.Add:
		return x + y, nil
	case ir.Sub:
		return x - y, nil
	case ir.Mul:
		return x * y, nil
	case ir.UDiv, ir.URem:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		if op == ir.UDiv {
			return x / y, nil
		}
		return x % y, nil
	default:
		return 0, fmt.Errorf("unsupported binary operation %d", op)
	}
}

func compare(pred ir.Predicate, x, y uint32) uint32 {
	var result bool
	switch pred {
	case ir.ULE:
		result = x <= y
	case ir.EQ:
		result = x == y
	}
	if result {
		return 1
	}
	return 0
}

func (f *frame) call(ins *ir.Call) error {
	args := make([]uint32, len(ins.Args))
	for i, arg := range ins.Args {
		args[i] = f.value(arg)
	}

	var (
		result int32
		err    error
	)
	switch ins.Func {
	case abi.ReadChar:
		result, err = f.host.ReadChar()
	case abi.WriteChar:
		err = f.host.WriteChar(int32(args[0]))
	case abi.ReadInt:
		result, err = f.host.ReadInt()
	case abi.WriteInt:
		err = f.host.WriteInt(int32(args[0]))
	case abi.Trace:
		f.host.Trace(int32(args[0]), int32(args[1]), int32(args[2]))
	case abi.Push:
		err = f.host.Push(uint8(args[0]), int32(args[1]))
	case abi.Pop:
		result, err = f.host.Pop(uint8(args[0]))
	case abi.Duplicate:
		err = f.host.Duplicate(uint8(args[0]))
	case abi.Swap:
		err = f.host.Swap(uint8(args[0]))
	default:
		return fmt.Errorf("unsupported runtime function %d", ins.Func)
	}
	if err != nil {
		return err
	}

	if ins.Dst != nil {
		f.set(*ins.Dst, uint32(result))
	}
	return nil
}

// successor returns the name of the next block, false if the program ends.
func (f *frame) successor(t ir.Terminator) (string, bool, error) {
	switch t := t.(type) {
	case *ir.Jump:
		return t.Target, true, nil

	case *ir.Branch:
		if f.value(t.Cond) != 0 {
			return t.Then, true, nil
		}
		return t.Else, true, nil

	case *ir.Switch:
		v := f.value(t.Value)
		for _, c := range t.Cases {
			if truncate(t.Value.Type(), uint32(c.Value)) == v {
				return c.Target, true, nil
			}
		}
		return t.Default, true, nil

	case *ir.Return:
		return "", false, nil

	default:
		return "", false, fmt.Errorf("unsupported terminator type %T", t)
	}
}
