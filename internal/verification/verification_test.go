package verification

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/retroenv/aheuic/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func programOptions(backendName, output string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Output: output},
		Flags:      options.Flags{Backend: backendName},
	}
}

// installTool creates a fake external tool that exits with the given code.
func installTool(t *testing.T, name string, exitCode int) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\necho checked\nexit " + string(rune('0'+exitCode)) + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0700); err != nil {
		t.Fatalf("Failed to create tool: %v", err)
	}
	t.Setenv("PATH", dir)
}

func TestVerifyOutput(t *testing.T) {
	logger := log.NewTestLogger(t)
	ctx := context.Background()

	t.Run("console output", func(t *testing.T) {
		err := VerifyOutput(ctx, logger, programOptions("llvm", "-"))
		assert.ErrorContains(t, err, "console output")
	})

	t.Run("unsupported backend", func(t *testing.T) {
		err := VerifyOutput(ctx, logger, programOptions("ir", "out.ir"))
		assert.ErrorContains(t, err, "can not be verified")
	})

	t.Run("tool not installed", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		err := VerifyOutput(ctx, logger, programOptions("llvm", "out.ll"))
		assert.True(t, errors.Is(err, ErrToolNotInstalled))
	})

	t.Run("tool accepts output", func(t *testing.T) {
		installTool(t, "qbe", 0)
		assert.NoError(t, VerifyOutput(ctx, logger, programOptions("qbe", "out.ssa")))
	})

	t.Run("tool rejects output", func(t *testing.T) {
		installTool(t, "llvm-as", 1)
		err := VerifyOutput(ctx, logger, programOptions("llvm", "out.ll"))
		assert.ErrorContains(t, err, "checked")
	})
}

func TestToolArguments(t *testing.T) {
	assert.Equal(t, []string{"in.ll", "-o", "out"}, toolArguments("llvm", "in.ll", "out"))
	assert.Equal(t, []string{"-o", "out", "in.ssa"}, toolArguments("qbe", "in.ssa", "out"))
}
