package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/growthlog/internal/migration"
	"github.com/julianstephens/growthlog/internal/utils"
)

// ErrNoSchema is returned by MigrationRunner for backends without a SQL schema.
var ErrNoSchema = errors.New("storage backend has no schema")

// NewProvider picks a backend for target:
//   - postgres:// or postgresql:// URLs open a PostgresStore
//   - paths ending in .json open a JSONStore
//   - any other path opens a SQLiteStore
//
// Connection strings typed on the command line must not embed a password.
// Strings read from the OS keyring or environment are trusted as-is.
func NewProvider(target string, trusted bool) (Provider, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("no storage location configured")
	}

	if IsPostgresConnString(target) {
		if !trusted {
			if _, err := ValidateConnString(target); err != nil {
				return nil, err
			}
		}
		return NewPostgresStore(target), nil
	}

	path, err := utils.ExpandHome(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

// IsFileBacked reports whether p stores its documents in a local file that
// can be watched and backed up.
func IsFileBacked(p Provider) bool {
	switch p.(type) {
	case *JSONStore, *SQLiteStore:
		return true
	}
	return false
}

// MigrationRunner returns a runner over the loaded database behind p.
func MigrationRunner(p Provider) (*migration.Runner, error) {
	switch s := p.(type) {
	case *SQLiteStore:
		if s.db == nil {
			return nil, ErrNotLoaded
		}
		return s.runner()
	case *PostgresStore:
		if s.db == nil {
			return nil, ErrNotLoaded
		}
		return s.runner()
	}
	return nil, ErrNoSchema
}
