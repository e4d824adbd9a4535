// Package host implements the runtime functions called by compiled programs
// on top of Go readers and writers.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/aheuic/internal/storage"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// ErrInvalidInput is returned when the input can not be read as an integer.
var ErrInvalidInput = errors.New("invalid input")

// EOF is the value read by the input functions at the end of the input.
const EOF int32 = -1

// Options configures the streams of a host.
type Options struct {
	Input  io.Reader
	Output io.Writer
	Prompt io.Writer // receives input prompts, nil disables them
}

// Host implements the runtime functions for a single program execution.
type Host struct {
	logger  *log.Logger
	storage *storage.Storage
	input   *bufio.Reader
	output  *bufio.Writer
	prompt  io.Writer
}

// New creates a new host with an empty storage set.
func New(logger *log.Logger, opts Options) *Host {
	input := opts.Input
	if input == nil {
		input = eofReader{}
	}
	output := opts.Output
	if output == nil {
		output = io.Discard
	}

	return &Host{
		logger:  logger,
		storage: storage.New(),
		input:   bufio.NewReader(input),
		output:  bufio.NewWriter(output),
		prompt:  opts.Prompt,
	}
}

// InteractivePrompt returns stderr if stdin is a terminal, nil otherwise.
func InteractivePrompt() io.Writer {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return os.Stderr
	}
	return nil
}

// Storage returns the storage set of the host.
func (h *Host) Storage() *storage.Storage {
	return h.storage
}

// Flush writes any buffered output.
func (h *Host) Flush() error {
	if err := h.output.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func (h *Host) showPrompt(text string) error {
	if h.prompt == nil {
		return nil
	}
	// output has to be visible before the user is asked for input
	if err := h.Flush(); err != nil {
		return err
	}
	if _, err := fmt.Fprint(h.prompt, text); err != nil {
		return fmt.Errorf("writing prompt: %w", err)
	}
	return nil
}

// ReadChar reads a single unicode character, EOF at the end of the input.
func (h *Host) ReadChar() (int32, error) {
	if err := h.showPrompt("input an unicode character: "); err != nil {
		return 0, err
	}

	r, _, err := h.input.ReadRune()
	if errors.Is(err, io.EOF) {
		return EOF, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading character: %w", err)
	}
	return r, nil
}

// ReadInt reads a decimal integer, EOF at the end of the input.
// Leading whitespace is skipped, the rest of the line after the number is
// discarded.
func (h *Host) ReadInt() (int32, error) {
	if err := h.showPrompt("input an integer: "); err != nil {
		return 0, err
	}

	var value int32
	_, err := fmt.Fscan(h.input, &value)
	switch {
	case err == nil:
		if err := h.discardLine(); err != nil {
			return 0, err
		}
		return value, nil
	case errors.Is(err, io.EOF):
		return EOF, nil
	default:
		return 0, fmt.Errorf("%w: reading integer: %w", ErrInvalidInput, err)
	}
}

func (h *Host) discardLine() error {
	_, err := h.input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading line: %w", err)
	}
	return nil
}

// WriteChar writes the value as unicode character.
func (h *Host) WriteChar(c int32) error {
	if _, err := h.output.WriteRune(c); err != nil {
		return fmt.Errorf("writing character: %w", err)
	}
	return nil
}

// WriteInt writes the value as signed decimal integer.
func (h *Host) WriteInt(v int32) error {
	if _, err := fmt.Fprintf(h.output, "%d", v); err != nil {
		return fmt.Errorf("writing integer: %w", err)
	}
	return nil
}

// Trace logs the execution of a program cell.
func (h *Host) Trace(x, y, c int32) {
	h.logger.Debug("Trace",
		log.Int("x", int(x)),
		log.Int("y", int(y)),
		log.String("char", string(rune(c))))
}

// Push adds a value to a storage.
func (h *Host) Push(index uint8, v int32) error {
	return h.storage.Push(index, v)
}

// Pop removes a value from a storage.
func (h *Host) Pop(index uint8) (int32, error) {
	return h.storage.Pop(index)
}

// Duplicate copies the front value of a storage.
func (h *Host) Duplicate(index uint8) error {
	return h.storage.Duplicate(index)
}

// Swap exchanges the two front values of a storage.
func (h *Host) Swap(index uint8) error {
	return h.storage.Swap(index)
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
