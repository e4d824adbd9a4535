// Package verification verifies the generated output by passing it to the
// external tool of the backend.
package verification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ErrToolNotInstalled is returned if the external tool can not be found.
var ErrToolNotInstalled = errors.New("tool is not installed")

// VerifyOutput checks that the output file is accepted by the external tool
// of the backend.
func VerifyOutput(ctx context.Context, logger *log.Logger, opts options.Program) error {
	if opts.Output == "" || opts.Output == options.ConsoleOutput {
		return errors.New("can not verify console output")
	}

	tool, ok := backend.Verifier(opts.Backend)
	if !ok {
		return fmt.Errorf("output of backend %s can not be verified", opts.Backend)
	}
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotInstalled, tool)
	}

	outputFile, err := os.CreateTemp("", "aheuic.*.out")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	_ = outputFile.Close()
	defer func() {
		_ = os.Remove(outputFile.Name())
	}()

	args := toolArguments(opts.Backend, opts.Output, outputFile.Name())
	cmd := exec.CommandContext(ctx, tool, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("verifying file using %s: %s: %w", tool, strings.TrimSpace(string(out)), err)
	}

	logger.Debug("Verified output", log.String("tool", tool), log.String("file", opts.Output))
	return nil
}

func toolArguments(backendName, inputFile, outputFile string) []string {
	switch backendName {
	case backend.QBE:
		return []string{"-o", outputFile, inputFile}
	default:
		return []string{inputFile, "-o", outputFile}
	}
}
