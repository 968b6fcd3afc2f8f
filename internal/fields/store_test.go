package fields

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/frnietz/agroclimate/internal/geo"
)

func testPolygon(t *testing.T) geo.Polygon {
	t.Helper()
	poly, err := geo.ParseGeoJSON([]byte(`{
		"type": "Polygon",
		"coordinates": [[[38.0,40.0],[38.5,40.0],[38.5,40.5],[38.0,40.5],[38.0,40.0]]]
	}`))
	if err != nil {
		t.Fatalf("parse polygon: %v", err)
	}
	return poly
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "data", "fields.json"))
}

func TestStoreAddGet(t *testing.T) {
	store := newTestStore(t)
	poly := testPolygon(t)

	if err := store.Add("orchard-1", poly); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := store.Get("orchard-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, poly) {
		t.Errorf("stored polygon mismatch: got %+v want %+v", got, poly)
	}
}

func TestStoreAddDuplicate(t *testing.T) {
	store := newTestStore(t)
	poly := testPolygon(t)

	if err := store.Add("orchard-1", poly); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add("orchard-1", poly); !errors.Is(err, ErrFieldExists) {
		t.Errorf("expected ErrFieldExists, got %v", err)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get("nope"); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestStoreRename(t *testing.T) {
	store := newTestStore(t)
	poly := testPolygon(t)

	if err := store.Add("old", poly); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Rename("old", "new"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := store.Get("old"); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("old name should be gone, got %v", err)
	}
	if _, err := store.Get("new"); err != nil {
		t.Errorf("new name should resolve: %v", err)
	}

	if err := store.Rename("missing", "anything"); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("expected ErrFieldNotFound, got %v", err)
	}

	if err := store.Add("other", poly); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Rename("new", "other"); !errors.Is(err, ErrFieldExists) {
		t.Errorf("expected ErrFieldExists, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add("orchard-1", testPolygon(t)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Delete("orchard-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete("orchard-1"); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestStoreListSorted(t *testing.T) {
	store := newTestStore(t)
	poly := testPolygon(t)

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := store.Add(name, poly); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestStoreMissingFileLoadsEmpty(t *testing.T) {
	store := newTestStore(t)
	data, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty map, got %v", data)
	}
}

func TestStoreCorruptFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewStore(path)
	data, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty map for corrupt file, got %v", data)
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.json")
	poly := testPolygon(t)

	if err := NewStore(path).Add("orchard-1", poly); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := NewStore(path).Get("orchard-1")
	if err != nil {
		t.Fatalf("get from fresh store: %v", err)
	}
	if !reflect.DeepEqual(got, poly) {
		t.Errorf("reloaded polygon mismatch")
	}
}
