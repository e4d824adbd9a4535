package fileprocessor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/aheuic/internal/compiler"
	"github.com/retroenv/aheuic/internal/config"
	"github.com/retroenv/aheuic/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "hello.aheui")
	assert.NoError(t, os.WriteFile(input, []byte("박망희"), 0600))

	tests := []struct {
		name     string
		backend  string
		contains string
	}{
		{name: "llvm", backend: "llvm", contains: "declare void @aheui_putint(i32)"},
		{name: "qbe", backend: "qbe", contains: "call $aheui_putint("},
		{name: "ir", backend: "ir", contains: "aheui_bb_1_0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := GenerateOutputFilename(input, tt.backend)
			assert.NoError(t, err)

			opts := options.Program{
				Parameters: options.Parameters{Input: input, Output: output, Entry: compiler.DefaultEntryName},
				Flags:      options.Flags{Backend: tt.backend, Quiet: true},
			}
			assert.NoError(t, ProcessFile(context.Background(), logger, opts))

			data, err := os.ReadFile(output)
			assert.NoError(t, err)
			assert.Contains(t, string(data), tt.contains)
		})
	}
}

func TestProcessFileError(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "invalid.aheui")
	assert.NoError(t, os.WriteFile(input, []byte{0xff, 0xfe}, 0600))

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "out.ll"), Entry: compiler.DefaultEntryName},
		Flags:      options.Flags{Backend: "llvm", Quiet: true},
	}
	err := ProcessFile(context.Background(), logger, opts)
	assert.ErrorContains(t, err, "UTF-8")
}

func TestProcessFileKeepsOutputOnCompileError(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.aheui")
	assert.NoError(t, os.WriteFile(input, []byte("바치\n"), 0600))

	tests := []struct {
		name     string
		existing string // previous output content, empty for none
	}{
		{name: "no previous output"},
		{name: "previous output", existing: "; previous output\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "bad.aheui.ll")
			if tt.existing != "" {
				assert.NoError(t, os.WriteFile(output, []byte(tt.existing), 0600))
			}

			opts := options.Program{
				Parameters: options.Parameters{Input: input, Output: output, Entry: compiler.DefaultEntryName},
				Flags:      options.Flags{Backend: "llvm", Quiet: true},
			}
			err := ProcessFile(context.Background(), logger, opts)
			assert.True(t, errors.Is(err, compiler.ErrCompareNeedsDirection))

			data, err := os.ReadFile(output)
			if tt.existing == "" {
				assert.True(t, errors.Is(err, os.ErrNotExist))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.existing, string(data))
		})
	}
}

// redirectStdio replaces stdin with an empty file and stdout with a pipe,
// the returned function restores both and returns the written output.
func redirectStdio(t *testing.T) func() string {
	t.Helper()

	stdin, err := os.Open(os.DevNull)
	assert.NoError(t, err)
	reader, writer, err := os.Pipe()
	assert.NoError(t, err)

	origStdin, origStdout := os.Stdin, os.Stdout
	os.Stdin, os.Stdout = stdin, writer

	return func() string {
		os.Stdin, os.Stdout = origStdin, origStdout
		_ = writer.Close()
		_ = stdin.Close()
		data, err := io.ReadAll(reader)
		assert.NoError(t, err)
		_ = reader.Close()
		return string(data)
	}
}

func TestRunStdoutHoldsProgramOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "add.aheui")
	assert.NoError(t, os.WriteFile(input, []byte("반받다망희"), 0600))

	restore := redirectStdio(t)
	// created after the redirect so that stdout logging would be captured
	logger := config.CreateLogger(false, false)
	opts := options.Program{
		Parameters: options.Parameters{Input: input, Entry: compiler.DefaultEntryName},
		Flags:      options.Flags{Backend: "llvm", Run: true},
	}
	PrintBanner(logger, opts, "dev", "", "")
	err := ProcessFile(context.Background(), logger, opts)
	out := restore()

	assert.NoError(t, err)
	assert.Equal(t, "5", out)
}

func TestConsoleOutputHoldsOnlyIR(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hello.aheui")
	assert.NoError(t, os.WriteFile(input, []byte("박망희"), 0600))

	restore := redirectStdio(t)
	logger := config.CreateLogger(false, false)
	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: options.ConsoleOutput, Entry: compiler.DefaultEntryName},
		Flags:      options.Flags{Backend: "llvm"},
	}
	PrintBanner(logger, opts, "dev", "", "")
	err := ProcessFile(context.Background(), logger, opts)
	out := restore()

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "; Module: hello.aheui\n"))
	assert.False(t, strings.Contains(out, "INFO"))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.aheui", "b.aheui", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("희"), 0600))
	}

	t.Run("single input", func(t *testing.T) {
		files, err := GetFilesToProcess(&options.Program{Parameters: options.Parameters{Input: "x.aheui"}})
		assert.NoError(t, err)
		assert.Equal(t, []string{"x.aheui"}, files)
	})

	t.Run("batch pattern", func(t *testing.T) {
		pattern := filepath.Join(dir, "*.aheui")
		files, err := GetFilesToProcess(&options.Program{Parameters: options.Parameters{Batch: pattern}})
		assert.NoError(t, err)
		assert.Len(t, files, 2)
		for _, file := range files {
			assert.True(t, strings.HasSuffix(file, ".aheui"))
		}
	})

	t.Run("batch without matches", func(t *testing.T) {
		pattern := filepath.Join(dir, "*.none")
		_, err := GetFilesToProcess(&options.Program{Parameters: options.Parameters{Batch: pattern}})
		assert.ErrorContains(t, err, "no files match")
	})
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		backend  string
		expected string
	}{
		{input: "hello.aheui", backend: "llvm", expected: "hello.aheui.ll"},
		{input: "hello.aheui", backend: "qbe", expected: "hello.aheui.ssa"},
		{input: "dir/prog", backend: "ir", expected: "dir/prog.ir"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			name, err := GenerateOutputFilename(tt.input, tt.backend)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}

	_, err := GenerateOutputFilename("hello.aheui", "asm")
	assert.ErrorContains(t, err, "unknown backend")
}
