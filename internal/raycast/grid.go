// Package raycast implements the grid raycasting core: casting rays through a
// tile map, sweeping a field of view, and projecting the hits into draw
// commands. Everything here is a pure function of (pose, grid, config).
package raycast

import (
	"errors"
	"fmt"
	"math"
)

// Cell is the value of one map tile. Zero is empty; any other value is a
// solid wall and identifies its type.
type Cell int

// Solid reports whether the cell blocks rays.
func (c Cell) Solid() bool {
	return c != 0
}

// ErrEmptyGrid is returned when a grid has no rows or no columns.
var ErrEmptyGrid = errors.New("raycast: grid has no cells")

// Grid is an immutable rectangular occupancy map.
// Cells are stored in row-major order: index = y*width + x.
type Grid struct {
	width    int
	height   int
	cellSize float64
	cells    []Cell
}

// NewGrid builds a grid from rows of cells. All rows must have the same
// length and cellSize must be positive. The rows are copied.
func NewGrid(rows [][]Cell, cellSize float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("raycast: cell size must be positive, got %v", cellSize)
	}

	width := len(rows[0])
	g := &Grid{
		width:    width,
		height:   len(rows),
		cellSize: cellSize,
		cells:    make([]Cell, 0, width*len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("raycast: row %d has %d cells, expected %d", y, len(row), width)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// CellSize returns the world-unit edge length of one cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// At returns the cell at the given column and row, or 0 out of bounds.
func (g *Grid) At(x, y int) Cell {
	if OutOfMapBounds(x, y, g) {
		return 0
	}
	return g.cells[y*g.width+x]
}

// Solid reports whether the cell at (x, y) is a wall.
// Out-of-bounds cells are not solid.
func (g *Grid) Solid(x, y int) bool {
	return g.At(x, y).Solid()
}

// SolidAt reports whether the world point (wx, wy) lies in a wall cell.
// Points outside the map count as solid so movement stays inside it.
func (g *Grid) SolidAt(wx, wy float64) bool {
	cx, okX := cellIndex(wx, g.cellSize)
	cy, okY := cellIndex(wy, g.cellSize)
	if !okX || !okY || OutOfMapBounds(cx, cy, g) {
		return true
	}
	return g.cells[cy*g.width+cx].Solid()
}

// Diagonal returns the length of the map diagonal in world units.
func (g *Grid) Diagonal() float64 {
	return math.Hypot(float64(g.width), float64(g.height)) * g.cellSize
}

// Rows returns a copy of the grid as rows of cells.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for y := range rows {
		rows[y] = append([]Cell(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return rows
}

// cellIndex converts a world coordinate to a cell index. It reports false
// for NaN or values too large to index, which callers treat as out of map.
func cellIndex(v, cellSize float64) (int, bool) {
	c := math.Floor(v / cellSize)
	if math.IsNaN(c) || c < math.MinInt32 || c > math.MaxInt32 {
		return 0, false
	}
	return int(c), true
}
