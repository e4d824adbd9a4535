// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/config"
	"github.com/retroenv/aheuic/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args, config.EnvironmentDefaults())
}

func parseArgs(args []string, defaults config.Defaults) (options.Program, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	var opts options.Program
	readOptionFlags(flags, &opts, defaults)

	err := flags.Parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return opts, &UsageError{flags: flags}
	}
	positional := flags.Args()
	if err != nil || (len(positional) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(positional); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(positional) > 0 {
		opts.Input = positional[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: aheuic [options] <file to compile>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to compile, please pass the file to compile as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	name, err := backend.Normalize(opts.Backend)
	if err != nil {
		return fmt.Errorf("unsupported backend: %w", err)
	}
	opts.Backend = name

	if opts.Entry == "" {
		return errors.New("entry function name can not be empty")
	}
	if opts.Steps < 0 {
		return fmt.Errorf("invalid step limit %d", opts.Steps)
	}
	return nil
}

// validateOptionCombinations checks for incompatible option combinations
func validateOptionCombinations(opts options.Program) error {
	if opts.Verify {
		if _, ok := backend.Verifier(opts.Backend); !ok {
			return fmt.Errorf("output of backend %s can not be verified", opts.Backend)
		}
		if opts.Run {
			return errors.New("-verify can not be combined with -run")
		}
	}
	if opts.Run && opts.Batch != "" {
		return errors.New("-run can not be combined with -batch")
	}
	if opts.Steps > 0 && !opts.Run {
		return errors.New("-steps requires -run")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, defaults config.Defaults) {
	flags.StringVar(&opts.Input, "i", "", "name of the input Aheui source file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, defaults to the input name with the backend extension appended, - prints on console")
	flags.StringVar(&opts.Entry, "m", defaults.Entry, "name of the compiled function")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.aheui")
	flags.StringVar(&opts.Backend, "b", defaults.Backend, "backend of the generated output (llvm/qbe/ir)")
	flags.BoolVar(&opts.Run, "run", false, "execute the program instead of writing the output")
	flags.IntVar(&opts.Steps, "steps", 0, "maximum number of blocks executed by -run, 0 for no limit")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the generated output using llvm-as or qbe")
	flags.BoolVar(&opts.Debug, "debug", defaults.Debug, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoTrace, "notrace", defaults.NoTrace, "do not emit trace calls at the start of every cell")
	flags.BoolVar(&opts.NoComments, "nocomments", false, "do not output module and source cell comments")
}
