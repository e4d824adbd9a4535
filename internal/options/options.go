// Package options contains the program options.
package options

import (
	"io"
	"path/filepath"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/compiler"
)

// ConsoleOutput is the output name that writes the output to stdout.
const ConsoleOutput = "-"

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input Aheui source file"`
	Output string `flag:"o" usage:"output file (default: <input>.<ext>, - for console)"`
	Entry  string `flag:"m" usage:"name of the compiled function" default:"aheui_main"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.aheui)"`
}

// Flags contains behavior options.
type Flags struct {
	Backend string `flag:"b" usage:"output format: llvm, qbe, ir" default:"llvm"`
	Run     bool   `flag:"run" usage:"execute the program instead of writing output"`
	Steps   int    `flag:"steps" usage:"maximum number of executed blocks for -run, 0 for no limit"`
	Verify  bool   `flag:"verify" usage:"verify output using the external backend tool"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoTrace    bool `flag:"notrace" usage:"omit trace calls at the start of every cell"`
	NoComments bool `flag:"nocomments" usage:"omit module and source cell comments"`
}

// Program options of the compiler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// CompilerOptions returns the compiler options for the program options.
func (p Program) CompilerOptions() compiler.Options {
	return compiler.Options{
		EntryName:  p.Entry,
		ModuleName: filepath.Base(p.Input),
		Trace:      !p.NoTrace,
	}
}

// BackendOptions returns the backend options for the program options.
func (p Program) BackendOptions() backend.Options {
	return backend.Options{
		CommentHeader:  !p.NoComments,
		SourceComments: !p.NoComments,
	}
}

// Run defines options to control a program execution.
type Run struct {
	Input    io.Reader
	Output   io.Writer
	Prompt   io.Writer // receives input prompts, nil for none
	MaxSteps int
}
