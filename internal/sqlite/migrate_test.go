package sqlite

import (
	"path/filepath"
	"testing"
)

func TestMigrations_AppliedOnFirstOpen(t *testing.T) {
	s := newTestStore(t)

	db, err := s.conn()
	if err != nil {
		t.Fatalf("conn failed: %v", err)
	}
	v, err := currentVersion(db)
	if err != nil {
		t.Fatalf("currentVersion failed: %v", err)
	}
	if v != targetVersion {
		t.Errorf("schema version = %d, want %d", v, targetVersion)
	}

	// Version 1 has no script and must not be recorded.
	rows, err := s.Query("SELECT version FROM schema_version ORDER BY version")
	if err != nil {
		t.Fatalf("querying schema_version: %v", err)
	}
	want := []int64{2, 3, 4}
	if len(rows) != len(want) {
		t.Fatalf("got %d version rows, want %d", len(rows), len(want))
	}
	for i, r := range rows {
		if r.Int("version") != want[i] {
			t.Errorf("version[%d] = %d, want %d", i, r.Int("version"), want[i])
		}
	}
}

func TestMigrations_IdempotentAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s1 := newTestStoreAt(t, path)
	rows, err := s1.Query("SELECT COUNT(*) AS n FROM schema_version")
	if err != nil {
		t.Fatalf("counting versions: %v", err)
	}
	firstCount := rows[0].Int("n")
	if err := s1.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2 := newTestStoreAt(t, path)
	rows, err = s2.Query("SELECT COUNT(*) AS n FROM schema_version")
	if err != nil {
		t.Fatalf("counting versions: %v", err)
	}
	if rows[0].Int("n") != firstCount {
		t.Errorf("second open applied migrations: %d rows, want %d", rows[0].Int("n"), firstCount)
	}
}

func TestMigrations_BackupLogExtendedColumns(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.Query("PRAGMA table_info(backup_log)")
	if err != nil {
		t.Fatalf("table_info failed: %v", err)
	}
	cols := make(map[string]bool, len(rows))
	for _, r := range rows {
		cols[r.String("name")] = true
	}
	for _, want := range []string{"checksum", "compressed", "metadata", "verified", "verification_date", "cloud_url", "cloud_provider"} {
		if !cols[want] {
			t.Errorf("backup_log missing column %q", want)
		}
	}
}

func TestSplitScript(t *testing.T) {
	stmts := splitScript("CREATE TABLE a (x INT);\nCREATE TABLE b (y INT);")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2: %v", len(stmts), stmts)
	}
}
