package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/growthlog/internal/migration"
)

// documentTable runs the documents-table queries shared by the SQL backends.
type documentTable struct {
	db      *sql.DB
	dialect migration.Dialect
}

func (t documentTable) getSQL() string {
	if t.dialect == migration.Postgres {
		return "SELECT value FROM documents WHERE key = $1"
	}
	return "SELECT value FROM documents WHERE key = ?"
}

func (t documentTable) putSQL() string {
	if t.dialect == migration.Postgres {
		return `INSERT INTO documents (key, value, updated_at) VALUES ($1, $2::jsonb, $3)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	}
	return `INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
}

func (t documentTable) deleteSQL() string {
	if t.dialect == migration.Postgres {
		return "DELETE FROM documents WHERE key = $1"
	}
	return "DELETE FROM documents WHERE key = ?"
}

func (t documentTable) get(key string) ([]byte, error) {
	if t.db == nil {
		return nil, ErrNotLoaded
	}

	var value []byte
	err := t.db.QueryRow(t.getSQL(), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	return value, nil
}

func (t documentTable) put(key string, value []byte) error {
	if t.db == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("document %s is not valid JSON", key)
	}

	var updatedAt any = time.Now().UTC().Format(time.RFC3339)
	if t.dialect == migration.Postgres {
		updatedAt = time.Now().UTC()
	}
	if _, err := t.db.Exec(t.putSQL(), key, string(value), updatedAt); err != nil {
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}
	return nil
}

func (t documentTable) delete(key string) error {
	if t.db == nil {
		return ErrNotLoaded
	}

	res, err := t.db.Exec(t.deleteSQL(), key)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t documentTable) keys() ([]string, error) {
	if t.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := t.db.Query("SELECT key FROM documents ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
