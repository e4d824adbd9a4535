package ir

import "fmt"

// Permutation is a constant 4 entry table that maps a flow register value
// to a new flow register value.
type Permutation uint8

const (
	Identity   Permutation = iota // keeps the flow
	MirrorX                       // swaps left and right
	MirrorY                       // swaps up and down
	MirrorBoth                    // swaps both pairs
)

// Permutations lists all tables in table order.
var Permutations = [...]Permutation{Identity, MirrorX, MirrorY, MirrorBoth}

var permutationTables = [...][4]uint8{
	Identity:   {0, 1, 2, 3},
	MirrorX:    {1, 0, 2, 3},
	MirrorY:    {0, 1, 3, 2},
	MirrorBoth: {1, 0, 3, 2},
}

// Table returns the table entries.
func (p Permutation) Table() [4]uint8 {
	return permutationTables[p]
}

// Apply maps a flow value through the table.
func (p Permutation) Apply(v uint8) uint8 {
	return permutationTables[p][v&3]
}

// Name returns the global symbol of the table.
func (p Permutation) Name() string {
	return fmt.Sprintf("aheui_fl%d", p)
}

func (p Permutation) String() string {
	return p.Name()
}
