package maps

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var (
	catalog = make(map[string]Map)
	mu      sync.RWMutex
)

func init() {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("maps: reading builtin maps: %v", err))
	}
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("maps: reading %s: %v", name, err))
		}
		m, err := parse(data, path.Ext(name), name)
		if err != nil {
			panic(fmt.Sprintf("maps: builtin %s: %v", name, err))
		}
		m.FilePath = ""
		Register(m)
	}
}

// Register adds a map to the catalog.
// Panics if a map with the same ID is already registered.
func Register(m Map) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := catalog[m.ID]; exists {
		panic(fmt.Sprintf("maps: map %q already registered", m.ID))
	}
	catalog[m.ID] = m.Clone()
}

// List returns information about all registered maps, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(catalog))
	for _, m := range catalog {
		result = append(result, m.Info())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns a copy of a registered map.
func Get(id string) (Map, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := catalog[id]
	if !ok {
		return Map{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return m.Clone(), nil
}

// Exists checks if a map with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := catalog[id]
	return ok
}

// Resolve finds a map by file path, by ID in dir, or by ID in the
// catalog, in that order. Maps in dir shadow built-in maps.
func Resolve(id, dir string) (Map, error) {
	if isSupportedExtension(path.Ext(id)) {
		if _, err := os.Stat(id); err == nil {
			return LoadFile(id)
		}
	}
	if dir != "" {
		m, err := NewLoader(dir).LoadByID(id)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Map{}, err
		}
	}
	return Get(id)
}

// ListAll merges the catalog with the maps in dir, sorted by ID.
// A map in dir replaces a built-in map with the same ID.
func ListAll(dir string) ([]Info, error) {
	byID := make(map[string]Info)
	for _, info := range List() {
		byID[info.ID] = info
	}
	if dir != "" {
		found, err := NewLoader(dir).LoadAll()
		if err != nil {
			return nil, err
		}
		for _, m := range found {
			byID[m.ID] = m.Info()
		}
	}

	result := make([]Info, 0, len(byID))
	for _, info := range byID {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
