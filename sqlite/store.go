// Package sqlite reads the ledger from the SQLite database of the
// bookkeeping application (the alr_* tables). The store never writes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/etnz/alere"
)

// DefaultPoolSize is the number of connections shared by concurrent readers.
const DefaultPoolSize = 8

// Options configures a Store.
type Options struct {
	PoolSize int // DefaultPoolSize when 0
}

// Store is an alere.Store over a SQLite file.
type Store struct {
	db *sql.DB
}

var _ alere.Store = (*Store)(nil)

// Open opens the database at path in query only mode. The file must exist.
func Open(path string, opts Options) (*Store, error) {
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_query_only=true&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	db.SetMaxOpenConns(opts.PoolSize)
	db.SetMaxIdleConns(opts.PoolSize)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the pool.
func (s *Store) Close() error { return s.db.Close() }

// Open implements alere.Store: the reader holds one connection of the pool
// until it is closed.
func (s *Store) Open(ctx context.Context) (alere.Reader, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire a connection: %w", err)
	}
	return &reader{conn: conn}, nil
}
