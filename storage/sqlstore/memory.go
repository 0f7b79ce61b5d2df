package sqlstore

import (
	"database/sql"

	"github.com/poiesic/hansard/storage"
)

// NewMemoryStore opens an in-memory SQLite store for testing.
// The pool is pinned to one connection so the database outlives each call.
func NewMemoryStore(opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s, err := newStore(db, storage.SQLite, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
