// Package vm executes compiled modules in process, calling the Go host
// implementation of the runtime functions.
package vm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/aheuic/internal/host"
	"github.com/retroenv/aheuic/internal/ir"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrStepLimit is returned when a program executes more blocks than allowed.
	ErrStepLimit = errors.New("step limit reached")
	// ErrDivisionByZero is returned for a division or modulo by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Options of a single program run.
type Options struct {
	Input    io.Reader
	Output   io.Writer
	Prompt   io.Writer
	MaxSteps int // maximum number of executed blocks, 0 for no limit
}

// Result of a program run.
type Result struct {
	Steps int // number of executed blocks
}

// VM executes a module.
type VM struct {
	logger *log.Logger
	module *ir.Module
	blocks map[string]*ir.Block
}

// New returns a VM for the given module. The module is validated once.
func New(logger *log.Logger, module *ir.Module) (*VM, error) {
	if err := module.Main.Validate(); err != nil {
		return nil, fmt.Errorf("validating module: %w", err)
	}

	blocks := make(map[string]*ir.Block, len(module.Main.Blocks))
	for _, b := range module.Main.Blocks {
		blocks[b.Name] = b
	}

	return &VM{
		logger: logger,
		module: module,
		blocks: blocks,
	}, nil
}

// Run executes the module until it returns, fails or the context is
// canceled. Every run uses its own host and storage.
func (m *VM) Run(ctx context.Context, opts Options) (Result, error) {
	h := host.New(m.logger, host.Options{
		Input:  opts.Input,
		Output: opts.Output,
		Prompt: opts.Prompt,
	})
	f := &frame{
		host:  h,
		temps: make([]uint32, m.module.Main.NumTemps()),
	}

	err := m.run(ctx, f, opts.MaxSteps)
	if err != nil {
		m.logStorage(f)
	}
	if flushErr := h.Flush(); err == nil {
		err = flushErr
	}
	return Result{Steps: f.steps}, err
}

// logStorage logs the selected storage of a stopped program.
func (m *VM) logStorage(f *frame) {
	index := uint8(f.registers[ir.RegStorage])
	size, err := f.host.Storage().Len(index)
	if err != nil {
		return
	}
	m.logger.Debug("Program stopped",
		log.Int("steps", f.steps),
		log.Int("storage", int(index)),
		log.Int("values", size))
}

func (m *VM) run(ctx context.Context, f *frame, maxSteps int) error {
	b := m.module.Main.Entry()
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running block %s: %w", b.Name, err)
		}
		if maxSteps > 0 && f.steps >= maxSteps {
			return fmt.Errorf("%w: %d blocks executed", ErrStepLimit, f.steps)
		}
		f.steps++

		for _, ins := range b.Instructions {
			if err := f.execute(ins); err != nil {
				return fmt.Errorf("executing %s in block %s: %w", ins, b.Name, err)
			}
		}

		next, ok, err := f.successor(b.Terminator)
		if err != nil {
			return fmt.Errorf("terminating block %s: %w", b.Name, err)
		}
		if !ok {
			return nil
		}
		b = m.blocks[next]
	}
}
