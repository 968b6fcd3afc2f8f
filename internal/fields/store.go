// Package fields persists user-drawn field polygons as a single name-keyed
// JSON document on disk.
package fields

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/frnietz/agroclimate/internal/geo"
)

var (
	// ErrFieldNotFound is returned when the named field does not exist.
	ErrFieldNotFound = errors.New("field not found")
	// ErrFieldExists is returned when adding or renaming onto a taken name.
	ErrFieldExists = errors.New("field already exists")
)

// Store is a file-backed mapping from field name to polygon. Writes replace
// the whole document atomically (temp file + rename); the store assumes a
// single writer and serializes in-process access with a mutex.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store persisting to the given file path. The parent
// directory is created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the whole mapping. A missing or unreadable file loads as empty.
func (s *Store) Load() (map[string]geo.Polygon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (map[string]geo.Polygon, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]geo.Polygon{}, nil
		}
		return nil, fmt.Errorf("read fields file: %w", err)
	}

	out := map[string]geo.Polygon{}
	if err := json.Unmarshal(data, &out); err != nil {
		// A corrupt document is treated as empty rather than blocking all
		// field operations.
		return map[string]geo.Polygon{}, nil
	}
	return out, nil
}

// Save replaces the persisted mapping with the given one.
func (s *Store) Save(data map[string]geo.Polygon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(data)
}

func (s *Store) save(data map[string]geo.Polygon) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return fmt.Errorf("write fields file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace fields file: %w", err)
	}
	return nil
}

// Add stores a polygon under a new name.
func (s *Store) Add(name string, poly geo.Polygon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[name]; ok {
		return fmt.Errorf("%w: %q", ErrFieldExists, name)
	}
	data[name] = poly
	return s.save(data)
}

// Get returns the polygon stored under name.
func (s *Store) Get(name string) (geo.Polygon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return geo.Polygon{}, err
	}
	poly, ok := data[name]
	if !ok {
		return geo.Polygon{}, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return poly, nil
}

// Rename moves a polygon from old to new.
func (s *Store) Rename(old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	poly, ok := data[old]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, old)
	}
	if _, taken := data[new]; taken && new != old {
		return fmt.Errorf("%w: %q", ErrFieldExists, new)
	}
	delete(data, old)
	data[new] = poly
	return s.save(data)
}

// Delete removes the named polygon.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[name]; !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	delete(data, name)
	return s.save(data)
}

// List returns the stored field names in sorted order.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
