package compiler

import (
	"fmt"

	"github.com/retroenv/aheuic/internal/abi"
	"github.com/retroenv/aheuic/internal/grid"
	"github.com/retroenv/aheuic/internal/hangul"
	"github.com/retroenv/aheuic/internal/ir"
)

// cell emits the block of a single grid cell.
type cell struct {
	grid    *grid.Grid
	pos     grid.Position
	syl     hangul.Syllable
	builder *ir.Builder
	trace   bool

	storage ir.Value // current storage index, loaded at the start of the block
}

func (c *cell) emit() error {
	b := c.builder
	if c.trace {
		b.Call(abi.Trace, ir.Int32(int64(c.pos.X)), ir.Int32(int64(c.pos.Y)), ir.Int32(int64(c.syl.Char)))
	}
	b.Store(ir.RegCompare, ir.Bool(false))
	c.storage = b.Load(ir.RegStorage)

	if c.syl.Initial == hangul.InitialH {
		b.Return()
		return nil
	}

	if c.syl.Initial == hangul.InitialCh && c.syl.Medial.Kind() != hangul.Directional {
		return fmt.Errorf("%w: vowel %s", ErrCompareNeedsDirection, c.syl.Medial)
	}

	c.emitOperation()
	return c.emitFlow()
}

// pop emits a pop from the current storage.
func (c *cell) pop() ir.Value {
	return c.builder.Call(abi.Pop, c.storage)
}

// push emits a push onto the current storage.
func (c *cell) push(v ir.Value) {
	c.builder.Call(abi.Push, c.storage, v)
}

// binary pops the operands v1 and v2, v1 being the front value, and pushes
// the result of the operation. Operations that do not commute take v2 as
// left operand.
func (c *cell) binary(op ir.BinaryOp) {
	v1 := c.pop()
	v2 := c.pop()
	switch op {
	case ir.Add, ir.Mul:
		c.push(c.builder.Binary(op, v1, v2))
	default:
		c.push(c.builder.Binary(op, v2, v1))
	}
}

//nolint:cyclop
func (c *cell) emitOperation() {
	b := c.builder
	final := c.syl.Final

	switch c.syl.Initial {
	case hangul.InitialN:
		c.binary(ir.UDiv)
	case hangul.InitialD:
		c.binary(ir.Add)
	case hangul.InitialTT:
		c.binary(ir.Mul)
	case hangul.InitialR:
		c.binary(ir.URem)
	case hangul.InitialT:
		c.binary(ir.Sub)

	case hangul.InitialM:
		v := c.pop()
		switch final {
		case hangul.FinalNG:
			b.Call(abi.WriteInt, v)
		case hangul.FinalH:
			b.Call(abi.WriteChar, v)
		}

	case hangul.InitialB:
		switch final {
		case hangul.FinalNG:
			c.push(b.Call(abi.ReadInt))
		case hangul.FinalH:
			c.push(b.Call(abi.ReadChar))
		default:
			c.push(ir.Int32(int64(final.Strokes())))
		}

	case hangul.InitialPP:
		b.Call(abi.Duplicate, c.storage)
	case hangul.InitialP:
		b.Call(abi.Swap, c.storage)

	case hangul.InitialS:
		b.Store(ir.RegStorage, ir.Int8(int64(final.Index())))

	case hangul.InitialSS:
		v := c.pop()
		b.Call(abi.Push, ir.Int8(int64(final.Index())), v)

	case hangul.InitialJ:
		v1 := c.pop()
		v2 := c.pop()
		cmp := b.Compare(ir.ULE, v2, v1)
		c.push(b.ZeroExtend(cmp))

	case hangul.InitialCh:
		v := c.pop()
		b.Store(ir.RegCompare, b.Compare(ir.EQ, v, ir.Int32(0)))

	default:
		// ㄱ ㄲ ㅇ ㅉ ㅋ and non syllables do nothing
	}
}

func (c *cell) emitFlow() error {
	medial := c.syl.Medial
	if medial.Kind() == hangul.Directional {
		return c.emitDirectional(vowelDirection(medial), medial.Steps())
	}
	return c.emitDispatch(vowelPermutation(medial))
}

// emitDirectional sets the flow to a fixed direction and branches to the
// reverse direction if the compare flag is set.
func (c *cell) emitDirectional(dir grid.Direction, steps int) error {
	forward, err := c.grid.Step(c.pos, dir, steps)
	if err != nil {
		return fmt.Errorf("moving forward: %w", err)
	}
	reverse, err := c.grid.Step(c.pos, dir.Opposite(), steps)
	if err != nil {
		return fmt.Errorf("moving in reverse: %w", err)
	}

	b := c.builder
	b.Store(ir.RegFlow, ir.Int8(int64(dir)))
	cmp := b.Load(ir.RegCompare)
	b.Branch(cmp, BlockName(reverse), BlockName(forward))
	return nil
}

// emitDispatch maps the flow register through the permutation and switches
// on the resulting direction. The neighbors are always taken from the
// current cell.
func (c *cell) emitDispatch(perm ir.Permutation) error {
	var targets [len(grid.Directions)]string
	for _, dir := range grid.Directions {
		next, err := c.grid.Next(c.pos, dir)
		if err != nil {
			return fmt.Errorf("moving %s: %w", dir, err)
		}
		targets[dir] = BlockName(next)
	}

	b := c.builder
	flow := b.Load(ir.RegFlow)
	flow = b.Lookup(perm, flow)
	b.Store(ir.RegFlow, flow)
	b.Switch(flow, targets[grid.Down],
		ir.Case{Value: int64(grid.Left), Target: targets[grid.Left]},
		ir.Case{Value: int64(grid.Right), Target: targets[grid.Right]},
		ir.Case{Value: int64(grid.Up), Target: targets[grid.Up]},
	)
	return nil
}

func vowelDirection(m hangul.Medial) grid.Direction {
	switch m {
	case hangul.MedialA, hangul.MedialYA:
		return grid.Right
	case hangul.MedialEO, hangul.MedialYEO:
		return grid.Left
	case hangul.MedialO, hangul.MedialYO:
		return grid.Up
	default:
		return grid.Down
	}
}

func vowelPermutation(m hangul.Medial) ir.Permutation {
	switch m {
	case hangul.MedialI:
		return ir.MirrorX
	case hangul.MedialEU:
		return ir.MirrorY
	case hangul.MedialUI:
		return ir.MirrorBoth
	default:
		return ir.Identity
	}
}
