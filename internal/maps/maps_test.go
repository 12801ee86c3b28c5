package maps

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

func writeMap(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestBuiltinMaps(t *testing.T) {
	for _, id := range []string{"arena", "maze", "open"} {
		t.Run(id, func(t *testing.T) {
			if !Exists(id) {
				t.Fatalf("builtin map %q not registered", id)
			}
			m, err := Get(id)
			if err != nil {
				t.Fatal(err)
			}
			g, err := m.Grid()
			if err != nil {
				t.Fatalf("Grid() error: %v", err)
			}
			start := m.StartPose()
			if g.SolidAt(start.X, start.Y) {
				t.Error("start pose is inside a wall")
			}
			if m.Info().Source != "builtin" {
				t.Errorf("source = %q, expected builtin", m.Info().Source)
			}
		})
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestArenaMarkerStart(t *testing.T) {
	m, err := Get("arena")
	if err != nil {
		t.Fatal(err)
	}
	if m.StartX != 4.5 || m.StartY != 4.5 {
		t.Errorf("start = (%v, %v), expected the marker cell center (4.5, 4.5)", m.StartX, m.StartY)
	}
	p := m.StartPose()
	if p.X != 4.5*DefaultCellSize || p.Y != 4.5*DefaultCellSize {
		t.Errorf("start pose = %+v", p)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	a, _ := Get("arena")
	a.Cells[1][1] = 9
	b, _ := Get("arena")
	if b.Cells[1][1] != 0 {
		t.Error("mutating a returned map changed the catalog")
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, expected ErrNotFound", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate ID should panic")
		}
	}()
	Register(Map{ID: "arena"})
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeMap(t, dir, "b.yaml", "id: beta\nrows: [\"###\", \"#.#\", \"###\"]\n")
	writeMap(t, dir, "a.yml", "id: alpha\nstart: {x: 1.5, y: 1.5, angle_degrees: 180}\nrows: [\"###\", \"#.#\", \"###\"]\n")
	writeMap(t, dir, "ragged.yaml", "id: ragged\nrows: [\"###\", \"#.\"]\n")
	writeMap(t, dir, "walled.yaml", "id: walled\nrows: [\"##\", \"##\"]\n")
	writeMap(t, dir, "notes.txt", "id: ignored\n")

	l := NewLoader(dir)
	ids, err := l.ListIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "beta" {
		t.Fatalf("ListIDs() = %v, expected [alpha beta]", ids)
	}

	alpha, err := l.LoadByID("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(alpha.StartAngle-math.Pi) > 1e-12 {
		t.Errorf("start angle = %v, expected π", alpha.StartAngle)
	}
	if alpha.FilePath != filepath.Join(dir, "a.yml") {
		t.Errorf("file path = %q", alpha.FilePath)
	}

	beta, _ := l.LoadByID("beta")
	if beta.StartX != 1.5 || beta.StartY != 1.5 {
		t.Errorf("beta start = (%v, %v), expected first empty cell", beta.StartX, beta.StartY)
	}

	if _, err := l.LoadByID("ragged"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ragged map should be skipped, got %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"ragged rows", "r.yaml", "id: r\nrows: [\"###\", \"#.\"]\n"},
		{"start in wall", "s.yaml", "id: s\nstart: {x: 0.5, y: 0.5}\nrows: [\"#.\"]\n"},
		{"no empty cell", "w.yaml", "id: w\nrows: [\"#\"]\n"},
		{"bad extension", "m.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeMap(t, dir, tt.file, tt.content)
			if _, err := LoadFile(p); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	custom := writeMap(t, dir, "arena.yaml", "id: arena\nname: Custom Arena\ncell_size: 32\nrows: [\"####\", \"#..#\", \"####\"]\n")

	m, err := Resolve("arena", dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Custom Arena" {
		t.Errorf("dir map should shadow builtin, got %q", m.Name)
	}

	m, err = Resolve("maze", dir)
	if err != nil || m.ID != "maze" {
		t.Errorf("Resolve(maze) = %v, %v; expected builtin fallback", m.ID, err)
	}

	m, err = Resolve(custom, "")
	if err != nil || m.CellSize != 32 {
		t.Errorf("Resolve(path) = %+v, %v", m, err)
	}

	if _, err := Resolve("missing", dir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(missing) error = %v", err)
	}

	infos, err := ListAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, info := range infos {
		if info.ID == "arena" {
			found = true
			if info.Source != custom {
				t.Errorf("arena source = %q, expected %q", info.Source, custom)
			}
		}
	}
	if !found {
		t.Error("ListAll missing arena")
	}
}

func TestGridMatchesCells(t *testing.T) {
	m := Map{ID: "x", CellSize: 10, Cells: [][]raycast.Cell{{1, 0}, {0, 2}}}
	g, err := m.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if g.CellSize() != 10 || g.At(1, 1) != 2 || g.Solid(1, 0) {
		t.Error("grid does not match map cells")
	}
}
