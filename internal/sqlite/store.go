// Package sqlite implements the stockbook storage backend on a single SQLite
// database file.
//
// One Store owns one database file, one lazily opened connection, an
// in-process memoization cache and the schema migration state. All SQL
// issued by the typed domain operations flows through the generic helpers in
// db.go, which keep the cache coherent on writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Connection pragmas applied on every open.
var connPragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA cache_size = 10000",
}

// Store is the embedded data store. A Store is safe for concurrent use:
// Restore and Close take the write lock, everything else shares the read
// lock, and the cache synchronizes itself.
type Store struct {
	mu  sync.RWMutex
	cfg types.Config
	log *logrus.Logger

	connMu sync.Mutex // guards lazy open/close of db
	db     *sql.DB

	cache *memoCache

	// queries counts statements actually sent to the engine.
	// Cached reads served from memory do not increment it.
	queries atomic.Int64
}

// Open constructs a Store against cfg.Path, creating the schema on first run
// and applying any pending migrations. A migration failure closes the
// connection and fails construction.
func Open(cfg types.Config) (*Store, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		cfg:   cfg,
		log:   cfg.Logger,
		cache: newMemoCache(cfg.CacheTTL, cfg.MaxCacheEntries),
	}

	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if err := s.initSchema(db); err != nil {
		s.closeConn()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if err := s.applyMigrations(db); err != nil {
		s.closeConn()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	s.log.WithField("path", cfg.Path).Info("store opened")
	return s, nil
}

// Path returns the live database file path.
func (s *Store) Path() string { return s.cfg.Path }

// conn returns the live connection, opening it on first call. Repeated calls
// return the same handle.
func (s *Store) conn() (*sql.DB, error) {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	if dir := filepath.Dir(s.cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Single logical connection; SQLite serializes writers at the file level.
	db.SetMaxOpenConns(1)

	for _, pragma := range connPragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	s.db = db
	return db, nil
}

// closeConn closes and discards the handle if open. No-op when closed.
func (s *Store) closeConn() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Close releases the database connection. Safe to call more than once; the
// next operation reopens lazily.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.closeConn(); err != nil {
		return err
	}
	s.log.Debug("database connection closed")
	return nil
}
