// Package compiler translates a program grid into a control-flow graph with
// one basic block per grid cell.
package compiler

import (
	"errors"
	"fmt"

	"github.com/retroenv/aheuic/internal/grid"
	"github.com/retroenv/aheuic/internal/ir"
	"github.com/retroenv/retrogolib/log"
)

const (
	// EntryBlock is the name of the block that initializes the registers.
	EntryBlock = "aheui_top"
	// DefaultEntryName is the default name of the compiled function.
	DefaultEntryName = "aheui_main"
)

// ErrCompareNeedsDirection is returned for a compare with zero that is not
// followed by a vowel with a fixed direction.
var ErrCompareNeedsDirection = errors.New("compare with zero requires a directional vowel")

// Options of the compiler.
type Options struct {
	EntryName  string // name of the compiled function
	ModuleName string // identifier of the module, usually the source file name
	Trace      bool   // emit a trace call at the start of every cell
}

// Compiler compiles program grids.
type Compiler struct {
	logger  *log.Logger
	options Options
}

// New returns a new compiler.
func New(logger *log.Logger, options Options) *Compiler {
	if options.EntryName == "" {
		options.EntryName = DefaultEntryName
	}
	return &Compiler{
		logger:  logger,
		options: options,
	}
}

// BlockName returns the name of the block compiled from the cell at p.
func BlockName(p grid.Position) string {
	return fmt.Sprintf("aheui_bb_%d_%d", p.X, p.Y)
}

// Compile compiles the grid. Compilation stops at the first cell that can
// not be compiled.
func (c *Compiler) Compile(g *grid.Grid) (*ir.Module, error) {
	fn := ir.NewFunction(c.options.EntryName)
	entry := fn.NewBlock(EntryBlock, nil)

	positions := g.Positions()
	blocks := make([]*ir.Block, len(positions))
	for i, p := range positions {
		syl, _ := g.At(p)
		blocks[i] = fn.NewBlock(BlockName(p), &ir.Source{X: p.X, Y: p.Y, Char: syl.Char})
	}

	b := ir.NewBuilder(fn, entry)
	b.Store(ir.RegFlow, ir.Int8(int64(grid.Down)))
	b.Store(ir.RegStorage, ir.Int8(0))
	b.Store(ir.RegCompare, ir.Bool(false))
	b.Jump(BlockName(grid.Position{}))

	for i, p := range positions {
		syl, _ := g.At(p)
		cell := &cell{
			grid:    g,
			pos:     p,
			syl:     syl,
			builder: ir.NewBuilder(fn, blocks[i]),
			trace:   c.options.Trace,
		}
		if err := cell.emit(); err != nil {
			return nil, fmt.Errorf("compiling cell %s %s: %w", p, syl, err)
		}
	}

	if err := fn.Validate(); err != nil {
		return nil, fmt.Errorf("validating function: %w", err)
	}

	module := &ir.Module{
		Name: c.options.ModuleName,
		Main: fn,
	}
	c.logStats(g, module)
	return module, nil
}

func (c *Compiler) logStats(g *grid.Grid, m *ir.Module) {
	var halting int
	for _, b := range m.Main.Blocks {
		if _, ok := b.Terminator.(*ir.Return); ok {
			halting++
		}
	}
	reached := m.Main.Reachable()

	c.logger.Debug("Compiled program",
		log.String("module", m.Name),
		log.String("function", m.Main.Name),
		log.Int("rows", g.Height()),
		log.Int("cells", g.Cells()),
		log.Int("blocks", len(m.Main.Blocks)),
		log.Int("reachable", len(reached)),
		log.Int("halting", halting),
		log.Int("temporaries", m.Main.NumTemps()))
}
