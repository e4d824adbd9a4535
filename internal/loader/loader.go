// Package loader handles source file loading operations.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/retroenv/aheuic/internal/grid"
	"github.com/retroenv/aheuic/internal/options"
)

// ErrInvalidUTF8 is returned for source files that are not UTF-8 encoded.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Loader handles loading source files from disk.
type Loader struct{}

// New creates a new source loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the input file of the options and parses it into a grid.
func (l *Loader) Load(opts options.Program) (*grid.Grid, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	g, err := l.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", opts.Input, err)
	}
	return g, nil
}

// LoadFromBytes parses a source held in memory. A leading byte order mark
// is skipped.
func (l *Loader) LoadFromBytes(data []byte) (*grid.Grid, error) {
	data = bytes.TrimPrefix(data, byteOrderMark)
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	g, err := grid.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	return g, nil
}
