// Package formats provides map file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tile characters understood in map rows.
const (
	TileEmpty  = '.'
	TileSpace  = ' '
	TileWall   = '#'
	TileMarker = '@' // empty cell where the player starts
)

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	CellSize float64           `yaml:"cell_size,omitempty"`
	Start    *YAMLStart        `yaml:"start,omitempty"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLStart is the player start, in cells.
type YAMLStart struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	AngleDegrees float64 `yaml:"angle_degrees"`
}

// Map represents a parsed map ready for use.
type Map struct {
	ID       string
	Name     string
	CellSize float64
	Cells    [][]int // 0 empty, >0 wall id
	Start    *YAMLStart
	Marker   *[2]int // column and row of the '@' tile, if any
	Metadata map[string]string
}

// ParseYAML parses a YAML map file.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ym.ID == "" {
		return Map{}, fmt.Errorf("map has no id")
	}
	if len(ym.Rows) == 0 {
		return Map{}, fmt.Errorf("map %s has no rows", ym.ID)
	}

	m := Map{
		ID:       ym.ID,
		Name:     ym.Name,
		CellSize: ym.CellSize,
		Start:    ym.Start,
		Cells:    make([][]int, len(ym.Rows)),
		Metadata: ym.Metadata,
	}
	if m.Name == "" {
		m.Name = m.ID
	}

	for y, row := range ym.Rows {
		cells := make([]int, 0, len(row))
		for _, r := range row {
			x := len(cells)
			switch {
			case r == TileEmpty || r == TileSpace:
				cells = append(cells, 0)
			case r == TileMarker:
				if m.Marker != nil {
					return Map{}, fmt.Errorf("row %d: second start marker", y)
				}
				m.Marker = &[2]int{x, y}
				cells = append(cells, 0)
			case r == TileWall:
				cells = append(cells, 1)
			case r >= '1' && r <= '9':
				cells = append(cells, int(r-'0'))
			default:
				return Map{}, fmt.Errorf("row %d col %d: unknown tile %q", y, x, r)
			}
		}
		m.Cells[y] = cells
	}

	return m, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
