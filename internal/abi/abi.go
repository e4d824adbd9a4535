// Package abi defines the runtime functions that compiled programs call.
package abi

// Type is the machine type of a runtime function parameter or result.
type Type uint8

const (
	Void Type = iota
	I1
	I8
	I32
)

var typeNames = [...]string{"void", "i1", "i8", "i32"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "invalid"
}

// Func identifies a runtime function.
type Func uint8

const (
	ReadChar Func = iota
	WriteChar
	ReadInt
	WriteInt
	Trace
	Push
	Pop
	Duplicate
	Swap
)

// Signature describes the symbol name and types of a runtime function.
type Signature struct {
	Name   string
	Params []Type
	Result Type
}

var signatures = [...]Signature{
	ReadChar:  {Name: "aheui_getchar", Result: I32},
	WriteChar: {Name: "aheui_putchar", Params: []Type{I32}, Result: Void},
	ReadInt:   {Name: "aheui_getint", Result: I32},
	WriteInt:  {Name: "aheui_putint", Params: []Type{I32}, Result: Void},
	Trace:     {Name: "aheui_trace", Params: []Type{I32, I32, I32}, Result: Void},
	Push:      {Name: "aheui_push", Params: []Type{I8, I32}, Result: Void},
	Pop:       {Name: "aheui_pop", Params: []Type{I8}, Result: I32},
	Duplicate: {Name: "aheui_dup", Params: []Type{I8}, Result: Void},
	Swap:      {Name: "aheui_swap", Params: []Type{I8}, Result: Void},
}

// Funcs lists all runtime functions in declaration order.
var Funcs = [...]Func{ReadChar, WriteChar, ReadInt, WriteInt, Trace, Push, Pop, Duplicate, Swap}

// Signature returns the signature of the function.
func (f Func) Signature() Signature {
	return signatures[f]
}

// Name returns the linker symbol of the function.
func (f Func) Name() string {
	return signatures[f].Name
}

func (f Func) String() string {
	return f.Name()
}
