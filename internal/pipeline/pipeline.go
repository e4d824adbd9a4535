// Package pipeline orchestrates the compilation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/backend/dump"
	"github.com/retroenv/aheuic/internal/backend/llvm"
	"github.com/retroenv/aheuic/internal/backend/qbe"
	"github.com/retroenv/aheuic/internal/compiler"
	"github.com/retroenv/aheuic/internal/host"
	"github.com/retroenv/aheuic/internal/ir"
	"github.com/retroenv/aheuic/internal/loader"
	"github.com/retroenv/aheuic/internal/options"
	"github.com/retroenv/aheuic/internal/vm"
	"github.com/retroenv/aheuic/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// FileWriterConstructor creates a backend writer for a compiled module.
type FileWriterConstructor func(module *ir.Module, options backend.Options, mainWriter io.Writer) writer.BackendWriter

// Pipeline orchestrates the complete compilation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new compilation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads and compiles the input file and writes the module using the
// selected backend to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, w io.Writer) (*ir.Module, error) {
	module, err := p.Compile(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.Write(module, opts, w); err != nil {
		return nil, err
	}
	return module, nil
}

// Compile loads and compiles the input file.
func (p *Pipeline) Compile(opts options.Program) (*ir.Module, error) {
	g, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}

	p.printInfo(opts)

	module, err := compiler.New(p.logger, opts.CompilerOptions()).Compile(g)
	if err != nil {
		return nil, fmt.Errorf("compiling: %w", err)
	}
	return module, nil
}

// Write serializes the module using the selected backend.
func (p *Pipeline) Write(module *ir.Module, opts options.Program, w io.Writer) error {
	newFileWriter, err := p.initializeBackend(opts.Backend)
	if err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}

	if err := newFileWriter(module, opts.BackendOptions(), w).Write(); err != nil {
		return fmt.Errorf("writing %s output: %w", opts.Backend, err)
	}
	return nil
}

// Run compiles the input file and executes it using the VM, reading from
// stdin and writing to stdout.
func (p *Pipeline) Run(ctx context.Context, opts options.Program) (vm.Result, error) {
	return p.RunWith(ctx, opts, options.Run{
		Input:    os.Stdin,
		Output:   os.Stdout,
		Prompt:   host.InteractivePrompt(),
		MaxSteps: opts.Steps,
	})
}

// RunWith compiles the input file and executes it using the given streams.
func (p *Pipeline) RunWith(ctx context.Context, opts options.Program, run options.Run) (vm.Result, error) {
	module, err := p.Compile(opts)
	if err != nil {
		return vm.Result{}, err
	}

	machine, err := vm.New(p.logger, module)
	if err != nil {
		return vm.Result{}, fmt.Errorf("creating vm: %w", err)
	}

	result, err := machine.Run(ctx, vm.Options{
		Input:    run.Input,
		Output:   run.Output,
		Prompt:   run.Prompt,
		MaxSteps: run.MaxSteps,
	})
	if err != nil {
		return result, fmt.Errorf("running: %w", err)
	}

	p.logger.Debug("Program finished", log.Int("steps", result.Steps))
	return result, nil
}

// initializeBackend returns the file writer constructor for the specified backend.
func (p *Pipeline) initializeBackend(backendName string) (FileWriterConstructor, error) {
	name, err := backend.Normalize(backendName)
	if err != nil {
		return nil, err
	}

	switch name {
	case backend.LLVM:
		return llvm.New, nil
	case backend.QBE:
		return qbe.New, nil
	default:
		return dump.New, nil
	}
}

func (p *Pipeline) printInfo(opts options.Program) {
	if opts.Quiet {
		return
	}

	if opts.Run {
		p.logger.Info("Running Aheui program", log.String("file", opts.Input))
		return
	}
	p.logger.Info("Compiling Aheui program",
		log.String("file", opts.Input),
		log.String("backend", opts.Backend),
	)
}
