// internal/maze/types.go
//
// Core type definitions for maze levels.
// Defines:
//   - Cell: the kind of a single grid square (wall/floor/start/goal).
//   - Position: a (column, row) coordinate.
//   - Grid: an immutable rectangular array of cells.
//   - Level: a named grid, one per stage of the game.

package maze

// Cell represents the kind of a single square in a grid.
type Cell byte

const (
	Wall  Cell = '#'
	Floor Cell = ' '
	Start Cell = 'S'
	Goal  Cell = 'E'
)

// parseCell maps a level-file character to a Cell.
// Both ' ' and '.' mean floor; both 'E' and 'G' mean goal.
func parseCell(r byte) (Cell, bool) {
	switch r {
	case '#':
		return Wall, true
	case ' ', '.':
		return Floor, true
	case 'S':
		return Start, true
	case 'E', 'G':
		return Goal, true
	}
	return 0, false
}

// Position is a grid coordinate: X is the column, Y is the row.
type Position struct {
	X int
	Y int
}

// Shift returns p moved by (dx, dy).
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DefaultStart is used when a grid carries no Start marker.
var DefaultStart = Position{X: 1, Y: 1}

// Grid is an immutable rectangular array of cells indexed [row][col].
type Grid struct {
	cells [][]Cell
}

// Width is the number of columns.
func (g *Grid) Width() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Height is the number of rows.
func (g *Grid) Height() int { return len(g.cells) }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Y >= 0 && p.Y < g.Height() && p.X >= 0 && p.X < g.Width()
}

// At returns the cell at p, or Wall when p is out of bounds.
func (g *Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[p.Y][p.X]
}

// Start scans row-major for the Start marker and falls back to DefaultStart.
func (g *Grid) Start() Position {
	for y, row := range g.cells {
		for x, c := range row {
			if c == Start {
				return Position{X: x, Y: y}
			}
		}
	}
	return DefaultStart
}

// IsGoal reports whether p is a Goal cell.
func (g *Grid) IsGoal(p Position) bool { return g.At(p) == Goal }

// Rows returns the grid as strings, one per row.
func (g *Grid) Rows() []string {
	out := make([]string, len(g.cells))
	for y, row := range g.cells {
		b := make([]byte, len(row))
		for x, c := range row {
			b[x] = byte(c)
		}
		out[y] = string(b)
	}
	return out
}

// Level is a single stage: a name plus its grid.
type Level struct {
	Name string
	Grid *Grid
}
