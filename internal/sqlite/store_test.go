package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// newTestStore opens a store against a fresh database under t.TempDir.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return newTestStoreAt(t, filepath.Join(t.TempDir(), "test.db"))
}

func newTestStoreAt(t *testing.T, path string) *Store {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	s, err := Open(types.Config{
		Path:   path,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.db")

	s := newTestStoreAt(t, path)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.Query("PRAGMA foreign_keys")
	if err != nil {
		t.Fatalf("querying pragma: %v", err)
	}
	if len(rows) != 1 || rows[0].Int("foreign_keys") != 1 {
		t.Errorf("foreign_keys not enabled: %+v", rows)
	}

	rows, err = s.Query("PRAGMA journal_mode")
	if err != nil {
		t.Fatalf("querying pragma: %v", err)
	}
	if len(rows) != 1 || rows[0].String("journal_mode") != "wal" {
		t.Errorf("journal_mode = %v, want wal", rows)
	}
}

func TestClose_Idempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestClose_ReopensLazily(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddCustomer(&types.Customer{Name: "Ada"}); err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	rows, err := s.ListCustomers()
	if err != nil {
		t.Fatalf("read after Close should reopen, got %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d customers, want 1", len(rows))
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(types.Config{Path: "x.db", CacheTTL: -1})
	if err != types.ErrTTLInvalid {
		t.Errorf("expected ErrTTLInvalid, got %v", err)
	}
}
