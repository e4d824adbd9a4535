package ir

import (
	"fmt"
	"strings"

	"github.com/retroenv/aheuic/internal/abi"
)

// Value is an operand of an instruction.
type Value interface {
	fmt.Stringer
	Type() abi.Type
}

// Const is an integer constant.
type Const struct {
	Typ abi.Type
	Int int64
}

// Type returns the type of the constant.
func (c Const) Type() abi.Type { return c.Typ }

func (c Const) String() string {
	return fmt.Sprintf("%s %d", c.Typ, c.Int)
}

// Int32 returns a constant of type i32.
func Int32(v int64) Const { return Const{Typ: abi.I32, Int: v} }

// Int8 returns a constant of type i8.
func Int8(v int64) Const { return Const{Typ: abi.I8, Int: v} }

// Bool returns a constant of type i1.
func Bool(v bool) Const {
	c := Const{Typ: abi.I1}
	if v {
		c.Int = 1
	}
	return c
}

// Temp is a temporary that is assigned exactly once.
type Temp struct {
	Typ abi.Type
	ID  int
}

// Type returns the type of the temporary.
func (t Temp) Type() abi.Type { return t.Typ }

func (t Temp) String() string {
	return fmt.Sprintf("t%d", t.ID)
}

// Instruction is a non terminating operation of a block.
type Instruction interface {
	fmt.Stringer
	instruction()
}

// BinaryOp is an arithmetic operation on two i32 values.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	UDiv // unsigned division
	URem // unsigned remainder
)

var binaryOpNames = [...]string{"add", "sub", "mul", "udiv", "urem"}

func (op BinaryOp) String() string {
	return binaryOpNames[op]
}

// Predicate is an integer comparison.
type Predicate uint8

const (
	ULE Predicate = iota // unsigned less or equal
	EQ
)

var predicateNames = [...]string{"ule", "eq"}

func (p Predicate) String() string {
	return predicateNames[p]
}

// Load reads a register.
type Load struct {
	Dst Temp
	Reg Register
}

// Store writes a register.
type Store struct {
	Reg Register
	Src Value
}

// Binary computes Dst = X op Y.
type Binary struct {
	Dst Temp
	Op  BinaryOp
	X   Value
	Y   Value
}

// Compare computes the i1 result of X pred Y.
type Compare struct {
	Dst  Temp
	Pred Predicate
	X    Value
	Y    Value
}

// ZeroExtend widens an i1 value to i32.
type ZeroExtend struct {
	Dst Temp
	Src Value
}

// Lookup reads the entry Index of a permutation table.
type Lookup struct {
	Dst   Temp
	Table Permutation
	Index Value
}

// Call invokes a runtime function. Dst is nil for functions without result.
type Call struct {
	Dst  *Temp
	Func abi.Func
	Args []Value
}

func (*Load) instruction()       {}
func (*Store) instruction()      {}
func (*Binary) instruction()     {}
func (*Compare) instruction()    {}
func (*ZeroExtend) instruction() {}
func (*Lookup) instruction()     {}
func (*Call) instruction()       {}

func (i *Load) String() string {
	return fmt.Sprintf("%s = load %s", i.Dst, i.Reg)
}

func (i *Store) String() string {
	return fmt.Sprintf("store %s, %s", i.Reg, i.Src)
}

func (i *Binary) String() string {
	return fmt.Sprintf("%s = %s %s, %s", i.Dst, i.Op, i.X, i.Y)
}

func (i *Compare) String() string {
	return fmt.Sprintf("%s = icmp %s %s, %s", i.Dst, i.Pred, i.X, i.Y)
}

func (i *ZeroExtend) String() string {
	return fmt.Sprintf("%s = zext %s", i.Dst, i.Src)
}

func (i *Lookup) String() string {
	return fmt.Sprintf("%s = lookup %s[%s]", i.Dst, i.Table, i.Index)
}

func (i *Call) String() string {
	args := make([]string, len(i.Args))
	for j, arg := range i.Args {
		args[j] = arg.String()
	}
	call := fmt.Sprintf("call %s(%s)", i.Func, strings.Join(args, ", "))
	if i.Dst == nil {
		return call
	}
	return fmt.Sprintf("%s = %s", i.Dst, call)
}

// Terminator ends a block.
type Terminator interface {
	fmt.Stringer
	Successors() []string
}

// Jump continues unconditionally at Target.
type Jump struct {
	Target string
}

// Branch continues at Then if Cond is true and at Else otherwise.
type Branch struct {
	Cond Value
	Then string
	Else string
}

// Case is a switch destination.
type Case struct {
	Value  int64
	Target string
}

// Switch dispatches on Value to the matching case or to Default.
type Switch struct {
	Value   Value
	Default string
	Cases   []Case
}

// Return ends the execution of the program.
type Return struct{}

// Successors returns the jump target.
func (t *Jump) Successors() []string { return []string{t.Target} }

// Successors returns both branch targets, the true target first.
func (t *Branch) Successors() []string { return []string{t.Then, t.Else} }

// Successors returns all case targets followed by the default target.
func (t *Switch) Successors() []string {
	targets := make([]string, 0, len(t.Cases)+1)
	for _, c := range t.Cases {
		targets = append(targets, c.Target)
	}
	return append(targets, t.Default)
}

// Successors returns nil, a returning block has no successors.
func (t *Return) Successors() []string { return nil }

func (t *Jump) String() string {
	return "br " + t.Target
}

func (t *Branch) String() string {
	return fmt.Sprintf("br %s, %s, %s", t.Cond, t.Then, t.Else)
}

func (t *Switch) String() string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "switch %s, %s [", t.Value, t.Default)
	for i, c := range t.Cases {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "%d: %s", c.Value, c.Target)
	}
	buf.WriteString("]")
	return buf.String()
}

func (t *Return) String() string {
	return "ret"
}
