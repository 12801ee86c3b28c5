// Package maps loads raycaster maps from YAML files and keeps the
// catalog of built-in maps.
// This package depends on raycast but raycast does not depend on maps.
package maps

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-raycaster/internal/maps/formats"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// DefaultCellSize is used for maps that do not set cell_size.
const DefaultCellSize = 64

// ErrNotFound is returned when no map has the requested ID.
var ErrNotFound = errors.New("maps: map not found")

// Map represents a complete map definition.
type Map struct {
	ID       string
	Name     string
	CellSize float64 // world units per cell; 0 means DefaultCellSize
	Cells    [][]raycast.Cell
	// Start position in cells and facing in radians.
	StartX, StartY float64
	StartAngle     float64
	Metadata       map[string]string
	FilePath       string
}

// Info is the catalog view of a map.
type Info struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"` // "builtin" or the file path
}

// Width returns the number of columns of the widest row.
func (m Map) Width() int {
	w := 0
	for _, row := range m.Cells {
		w = max(w, len(row))
	}
	return w
}

// Height returns the number of rows.
func (m Map) Height() int {
	return len(m.Cells)
}

// EffectiveCellSize returns CellSize, or DefaultCellSize when unset.
func (m Map) EffectiveCellSize() float64 {
	if m.CellSize > 0 {
		return m.CellSize
	}
	return DefaultCellSize
}

// Grid builds the raycast grid. Ragged rows are rejected.
func (m Map) Grid() (*raycast.Grid, error) {
	g, err := raycast.NewGrid(m.Cells, m.EffectiveCellSize())
	if err != nil {
		return nil, fmt.Errorf("maps: %s: %w", m.ID, err)
	}
	return g, nil
}

// StartPose returns the start position in world units.
func (m Map) StartPose() raycast.Pose {
	cs := m.EffectiveCellSize()
	return raycast.Pose{X: m.StartX * cs, Y: m.StartY * cs, Angle: m.StartAngle}
}

// Info returns the catalog entry for the map.
func (m Map) Info() Info {
	src := m.FilePath
	if src == "" {
		src = "builtin"
	}
	return Info{ID: m.ID, Name: m.Name, Width: m.Width(), Height: m.Height(), Source: src}
}

// Clone returns a copy that shares no cell storage with m.
func (m Map) Clone() Map {
	c := m
	c.Cells = make([][]raycast.Cell, len(m.Cells))
	for y, row := range m.Cells {
		c.Cells[y] = append([]raycast.Cell(nil), row...)
	}
	if m.Metadata != nil {
		c.Metadata = make(map[string]string, len(m.Metadata))
		for k, v := range m.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// fromParsed converts a parsed file and checks that it forms a valid
// grid with the start inside an empty cell.
func fromParsed(p formats.Map, path string) (Map, error) {
	m := Map{
		ID:       p.ID,
		Name:     p.Name,
		CellSize: p.CellSize,
		Cells:    make([][]raycast.Cell, len(p.Cells)),
		Metadata: p.Metadata,
		FilePath: path,
	}
	for y, row := range p.Cells {
		m.Cells[y] = make([]raycast.Cell, len(row))
		for x, v := range row {
			m.Cells[y][x] = raycast.Cell(v)
		}
	}

	g, err := m.Grid()
	if err != nil {
		return Map{}, err
	}

	switch {
	case p.Start != nil:
		m.StartX, m.StartY = p.Start.X, p.Start.Y
		m.StartAngle = raycast.Radians(p.Start.AngleDegrees)
	case p.Marker != nil:
		m.StartX, m.StartY = float64(p.Marker[0])+0.5, float64(p.Marker[1])+0.5
	default:
		x, y, ok := firstEmpty(g)
		if !ok {
			return Map{}, fmt.Errorf("maps: %s: no empty cell to start in", m.ID)
		}
		m.StartX, m.StartY = float64(x)+0.5, float64(y)+0.5
	}

	start := m.StartPose()
	if g.SolidAt(start.X, start.Y) {
		return Map{}, fmt.Errorf("maps: %s: start (%.2f, %.2f) is inside a wall", m.ID, m.StartX, m.StartY)
	}
	return m, nil
}

func firstEmpty(g *raycast.Grid) (int, int, bool) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.Solid(x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
