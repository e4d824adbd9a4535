// Package backend defines the available code emission backends.
package backend

import (
	"errors"
	"fmt"
	"strings"
)

const (
	LLVM = "llvm"
	QBE  = "qbe"
	Dump = "ir"
)

// Default is the backend used when none is selected.
const Default = LLVM

// ErrUnknown is returned for an unsupported backend name.
var ErrUnknown = errors.New("unknown backend")

// Options of the backends.
type Options struct {
	CommentHeader  bool // write module information as comments
	SourceComments bool // annotate blocks with their source cell
}

// Names lists all backends.
var Names = []string{LLVM, QBE, Dump}

var extensions = map[string]string{
	LLVM: "ll",
	QBE:  "ssa",
	Dump: "ir",
}

var verifiers = map[string]string{
	LLVM: "llvm-as",
	QBE:  "qbe",
}

// Normalize returns the canonical name of a backend.
func Normalize(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := extensions[name]; !ok {
		return "", fmt.Errorf("%w '%s', supported: %s", ErrUnknown, name, strings.Join(Names, ", "))
	}
	return name, nil
}

// Extension returns the output file extension of a backend.
func Extension(name string) (string, error) {
	name, err := Normalize(name)
	if err != nil {
		return "", err
	}
	return extensions[name], nil
}

// Verifier returns the external tool that checks the output of a backend,
// false if the output can not be verified.
func Verifier(name string) (string, bool) {
	tool, ok := verifiers[name]
	return tool, ok
}
