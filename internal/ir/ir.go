// Package ir contains the control-flow graph produced by the compiler.
//
// A Module holds a single Function made of basic blocks. Every block carries
// a list of instructions operating on typed temporaries and a terminator that
// names its successor blocks. The run-time state of the program that crosses
// block boundaries lives in named registers that are loaded and stored
// explicitly.
package ir

import (
	"errors"
	"fmt"

	"github.com/retroenv/aheuic/internal/abi"
	"github.com/retroenv/retrogolib/set"
)

// ErrInvalidFunction is returned by Validate for malformed functions.
var ErrInvalidFunction = errors.New("invalid function")

// Register is a named run-time memory cell of a function.
type Register uint8

const (
	RegFlow    Register = iota // current direction of travel
	RegStorage                 // index of the selected storage
	RegCompare                 // one-shot result of a compare with zero
)

// Registers lists all registers in allocation order.
var Registers = [...]Register{RegFlow, RegStorage, RegCompare}

var registerInfo = [...]struct {
	name string
	typ  abi.Type
}{
	RegFlow:    {"aheui_flow", abi.I8},
	RegStorage: {"aheui_cur", abi.I8},
	RegCompare: {"aheui_comp", abi.I1},
}

// Name returns the symbol of the register.
func (r Register) Name() string {
	return registerInfo[r].name
}

// Type returns the machine type of the register.
func (r Register) Type() abi.Type {
	return registerInfo[r].typ
}

func (r Register) String() string {
	return r.Name()
}

// Source describes the program cell that a block was compiled from.
type Source struct {
	X    int
	Y    int
	Char rune
}

// Block is a basic block.
type Block struct {
	Name         string
	Source       *Source // nil for synthetic blocks
	Instructions []Instruction
	Terminator   Terminator
}

// Successors returns the names of the blocks that control can continue at.
func (b *Block) Successors() []string {
	if b.Terminator == nil {
		return nil
	}
	return b.Terminator.Successors()
}

// Function is a list of blocks, the first block is the entry.
type Function struct {
	Name   string
	Blocks []*Block

	index map[string]*Block
	temps int
}

// NewFunction creates an empty function.
func NewFunction(name string) *Function {
	return &Function{
		Name:  name,
		index: make(map[string]*Block),
	}
}

// NewBlock appends a new block to the function.
// Block names have to be unique, a duplicate name is a programming error.
func (f *Function) NewBlock(name string, source *Source) *Block {
	if _, ok := f.index[name]; ok {
		panic(fmt.Sprintf("duplicate block name %s", name))
	}
	b := &Block{
		Name:   name,
		Source: source,
	}
	f.Blocks = append(f.Blocks, b)
	f.index[name] = b
	return b
}

// Block returns the block with the given name.
func (f *Function) Block(name string) (*Block, bool) {
	b, ok := f.index[name]
	return b, ok
}

// Entry returns the entry block or nil for an empty function.
func (f *Function) Entry() *Block {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// NumTemps returns the number of temporaries allocated in the function.
func (f *Function) NumTemps() int {
	return f.temps
}

func (f *Function) newTemp(typ abi.Type) Temp {
	t := Temp{Typ: typ, ID: f.temps}
	f.temps++
	return t
}

// Validate checks that every block is terminated and that all branch
// targets exist.
func (f *Function) Validate() error {
	if len(f.Blocks) == 0 {
		return fmt.Errorf("%w: %s has no blocks", ErrInvalidFunction, f.Name)
	}
	for _, b := range f.Blocks {
		if b.Terminator == nil {
			return fmt.Errorf("%w: block %s is not terminated", ErrInvalidFunction, b.Name)
		}
		for _, target := range b.Successors() {
			if _, ok := f.index[target]; !ok {
				return fmt.Errorf("%w: block %s branches to unknown block %s", ErrInvalidFunction, b.Name, target)
			}
		}
	}
	return nil
}

// Reachable returns the set of block names reachable from the entry block.
func (f *Function) Reachable() set.Set[string] {
	reached := set.New[string]()
	entry := f.Entry()
	if entry == nil {
		return reached
	}

	queue := []*Block{entry}
	reached.Add(entry.Name)
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		for _, name := range b.Successors() {
			if reached.Contains(name) {
				continue
			}
			next, ok := f.index[name]
			if !ok {
				continue
			}
			reached.Add(name)
			queue = append(queue, next)
		}
	}
	return reached
}

// Module is the unit handed to a backend.
type Module struct {
	Name string // source name, used as module identifier
	Main *Function
}

// UsedFuncs returns the runtime functions called by the module in
// declaration order.
func (m *Module) UsedFuncs() []abi.Func {
	used := set.New[abi.Func]()
	for _, b := range m.Main.Blocks {
		for _, ins := range b.Instructions {
			if call, ok := ins.(*Call); ok {
				used.Add(call.Func)
			}
		}
	}

	var funcs []abi.Func
	for _, fn := range abi.Funcs {
		if used.Contains(fn) {
			funcs = append(funcs, fn)
		}
	}
	return funcs
}

// UsedTables returns the permutation tables referenced by the module in
// table order.
func (m *Module) UsedTables() []Permutation {
	used := set.New[Permutation]()
	for _, b := range m.Main.Blocks {
		for _, ins := range b.Instructions {
			if lookup, ok := ins.(*Lookup); ok {
				used.Add(lookup.Table)
			}
		}
	}

	var tables []Permutation
	for _, p := range Permutations {
		if used.Contains(p) {
			tables = append(tables, p)
		}
	}
	return tables
}
