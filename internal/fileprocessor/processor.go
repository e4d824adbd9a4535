// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/options"
	"github.com/retroenv/aheuic/internal/pipeline"
	"github.com/retroenv/aheuic/internal/verification"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	p := pipeline.New(logger)

	if opts.Run {
		if _, err := p.Run(ctx, opts); err != nil {
			return fmt.Errorf("executing %s: %w", opts.Input, err)
		}
		return nil
	}

	// the output file is only created for programs that compile
	module, err := p.Compile(opts)
	if err != nil {
		return err
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	err = p.Write(module, opts, writer)
	if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
		if closeErr := closer.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}
	if err != nil {
		return err
	}

	if opts.Verify {
		if err := verification.VerifyOutput(ctx, logger, opts); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		if !opts.Quiet {
			logger.Info("Verification successful", log.String("file", opts.Output))
		}
	}

	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates the output filename for a given input
// file by appending the extension of the backend.
func GenerateOutputFilename(inputFile, backendName string) (string, error) {
	ext, err := backend.Extension(backendName)
	if err != nil {
		return "", err
	}
	return inputFile + "." + ext, nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" || opts.Output == options.ConsoleOutput {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("aheuic - Aheui compiler", log.String("version", buildinfo.Version(version, commit, date)))
}
