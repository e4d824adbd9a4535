// Package grid models an Aheui program as a ragged toroidal grid of syllables.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/aheuic/internal/hangul"
)

var (
	// ErrEmptyEntryRow is returned for programs whose first row has no cell.
	ErrEmptyEntryRow = errors.New("first row of the program is empty")
	// ErrNoRow is returned when a vertical move finds no row wide enough.
	ErrNoRow = errors.New("no row found in direction")
)

// Position is a cell of the grid.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid holds the decoded rows of a program. It is immutable after creation.
type Grid struct {
	rows [][]hangul.Syllable
}

// New creates a grid from decoded rows. The rows are copied.
func New(rows [][]hangul.Syllable) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyEntryRow
	}

	g := &Grid{
		rows: make([][]hangul.Syllable, len(rows)),
	}
	for y, row := range rows {
		g.rows[y] = append([]hangul.Syllable(nil), row...)
	}
	return g, nil
}

// Parse decodes the source text line by line. A trailing carriage return is
// removed from every line and no row is created after a final newline.
func Parse(source string) (*Grid, error) {
	lines := strings.Split(source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	rows := make([][]hangul.Syllable, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		row := make([]hangul.Syllable, 0, len(line))
		for _, r := range line {
			row = append(row, hangul.Decode(r))
		}
		rows = append(rows, row)
	}

	g, err := New(rows)
	if err != nil {
		return nil, fmt.Errorf("parsing program: %w", err)
	}
	return g, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.rows)
}

// Width returns the length of the given row, 0 for rows out of range.
func (g *Grid) Width(y int) int {
	if y < 0 || y >= len(g.rows) {
		return 0
	}
	return len(g.rows[y])
}

// Valid returns whether the position addresses a cell.
func (g *Grid) Valid(p Position) bool {
	return p.X >= 0 && p.X < g.Width(p.Y)
}

// At returns the syllable at the given position.
func (g *Grid) At(p Position) (hangul.Syllable, bool) {
	if !g.Valid(p) {
		return hangul.Syllable{}, false
	}
	return g.rows[p.Y][p.X], true
}

// Positions returns all cell positions in row-major order.
func (g *Grid) Positions() []Position {
	var positions []Position
	for y, row := range g.rows {
		for x := range row {
			positions = append(positions, Position{X: x, Y: y})
		}
	}
	return positions
}

// Cells returns the number of cells of the grid.
func (g *Grid) Cells() int {
	var count int
	for _, row := range g.rows {
		count += len(row)
	}
	return count
}

// Next returns the position one step from p in the given direction.
// Horizontal moves wrap within the row, vertical moves skip rows that are
// too short and wrap around the top and bottom of the grid.
func (g *Grid) Next(p Position, dir Direction) (Position, error) {
	if !g.Valid(p) {
		return Position{}, fmt.Errorf("invalid position %s", p)
	}

	switch dir {
	case Left:
		width := len(g.rows[p.Y])
		return Position{X: (p.X + width - 1) % width, Y: p.Y}, nil

	case Right:
		width := len(g.rows[p.Y])
		return Position{X: (p.X + 1) % width, Y: p.Y}, nil

	case Up, Down:
		height := len(g.rows)
		delta := 1
		if dir == Up {
			delta = height - 1
		}

		y := p.Y
		for range height {
			y = (y + delta) % height
			if p.X < len(g.rows[y]) {
				return Position{X: p.X, Y: y}, nil
			}
		}
		return Position{}, fmt.Errorf("moving %s from %s: %w", dir, p, ErrNoRow)

	default:
		return Position{}, fmt.Errorf("unsupported direction %d", dir)
	}
}

// Step applies Next the given number of times.
func (g *Grid) Step(p Position, dir Direction, steps int) (Position, error) {
	var err error
	for range steps {
		p, err = g.Next(p, dir)
		if err != nil {
			return Position{}, err
		}
	}
	return p, nil
}
