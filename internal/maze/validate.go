package maze

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel wraps every load-time level problem.
var ErrInvalidLevel = errors.New("invalid level")

// IsLegal reports whether the player may stand on p: inside the grid and not a wall.
func IsLegal(g *Grid, p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.cells[p.Y][p.X] != Wall
}

// Parse builds a Level from raw rows and validates it.
//
// Rules:
//   - At least one row; all rows the same length.
//   - Only known cell characters.
//   - Exactly one Start and at least one Goal.
//   - Some Goal reachable from Start.
func Parse(name string, rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: no rows", ErrInvalidLevel, name)
	}
	width := len(rows[0])
	cells := make([][]Cell, len(rows))
	starts, goals := 0, 0
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: %s: row %d has length %d, want %d", ErrInvalidLevel, name, y, len(row), width)
		}
		cells[y] = make([]Cell, width)
		for x := 0; x < width; x++ {
			c, ok := parseCell(row[x])
			if !ok {
				return nil, fmt.Errorf("%w: %s: unknown cell %q at (%d,%d)", ErrInvalidLevel, name, row[x], x, y)
			}
			switch c {
			case Start:
				starts++
			case Goal:
				goals++
			}
			cells[y][x] = c
		}
	}
	if starts != 1 {
		return nil, fmt.Errorf("%w: %s: want exactly one start, found %d", ErrInvalidLevel, name, starts)
	}
	if goals == 0 {
		return nil, fmt.Errorf("%w: %s: no goal", ErrInvalidLevel, name)
	}
	g := &Grid{cells: cells}
	if !goalReachable(g) {
		return nil, fmt.Errorf("%w: %s: goal not reachable from start", ErrInvalidLevel, name)
	}
	return &Level{Name: name, Grid: g}, nil
}

// goalReachable runs a BFS from Start over legal cells.
func goalReachable(g *Grid) bool {
	start := g.Start()
	seen := map[Position]bool{start: true}
	queue := []Position{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if g.IsGoal(p) {
			return true
		}
		for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			n := p.Shift(d[0], d[1])
			if !seen[n] && IsLegal(g, n) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}
