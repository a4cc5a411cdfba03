package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "growthlog.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Documents(t *testing.T) {
	store := setupSQLiteStore(t)
	testProviderDocuments(t, store)
}

func TestSQLiteStore_LoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growthlog.db")

	first := NewSQLiteStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := first.Put("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	second := NewSQLiteStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer second.Close()

	got, err := second.Get("k")
	if err != nil || string(got) != `{"a":1}` {
		t.Errorf("Get() after reload = %s, %v", got, err)
	}
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() should fail when the database does not exist")
	}
}

func TestSQLiteStore_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growthlog.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := store.GetDB().Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatalf("bumping schema version: %v", err)
	}
	store.Close()

	reopened := NewSQLiteStore(path)
	defer reopened.Close()
	if err := reopened.Load(); err == nil {
		t.Error("Load() should refuse a schema newer than the binary")
	}
}

func TestSQLiteStore_NotLoaded(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "growthlog.db"))
	if _, err := store.Get("k"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get() before Load error = %v, want %v", err, ErrNotLoaded)
	}
}

func TestMigrationRunner(t *testing.T) {
	store := setupSQLiteStore(t)

	runner, err := MigrationRunner(store)
	if err != nil {
		t.Fatalf("MigrationRunner() failed: %v", err)
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion() failed: %v", err)
	}
	if current != latest {
		t.Errorf("current version = %d, want %d", current, latest)
	}

	if _, err := MigrationRunner(NewSQLiteStore(filepath.Join(t.TempDir(), "x.db"))); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("unloaded store error = %v, want %v", err, ErrNotLoaded)
	}
	if _, err := MigrationRunner(NewJSONStore(filepath.Join(t.TempDir(), "x.json"))); !errors.Is(err, ErrNoSchema) {
		t.Errorf("JSON store error = %v, want %v", err, ErrNoSchema)
	}
}
