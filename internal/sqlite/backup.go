package sqlite

import (
	"archive/zip"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

const (
	backupPrefix  = "stockbook_backup"
	sidecarSuffix = ".meta.json"
	checksumChunk = 4096
	backupTimeFmt = "20060102_150405"
)

// backupMetadata is the JSON sidecar written next to every backup.
type backupMetadata struct {
	Filename   string           `json:"filename"`
	Timestamp  string           `json:"timestamp"`
	Checksum   string           `json:"checksum"`
	DBVersion  int              `json:"db_version"`
	Compressed bool             `json:"compressed"`
	Tables     map[string]int64 `json:"tables"`
}

// Backup physically copies the live database into dir using the engine's
// online backup (VACUUM INTO, safe against the live connection), computes a
// streamed SHA-256 checksum, writes a metadata sidecar, optionally zips both
// into one archive, and records the backup in backup_log. Returns the final
// artifact path. No backup_log row is written if the copy itself fails.
func (s *Store) Backup(dir string, compress bool) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	// Backups taken within the same second get a numeric suffix; VACUUM INTO
	// refuses to overwrite an existing file.
	base := fmt.Sprintf("%s_%s", backupPrefix, time.Now().Format(backupTimeFmt))
	filename := base + ".db"
	dbPath := filepath.Join(dir, filename)
	for i := 2; fileExists(dbPath) || fileExists(dbPath+".zip"); i++ {
		filename = fmt.Sprintf("%s_%d.db", base, i)
		dbPath = filepath.Join(dir, filename)
	}

	if err := vacuumInto(db, dbPath); err != nil {
		return "", fmt.Errorf("copying database: %w", err)
	}

	checksum, err := fileChecksum(dbPath)
	if err != nil {
		return "", fmt.Errorf("hashing backup: %w", err)
	}

	version, err := currentVersion(db)
	if err != nil {
		return "", err
	}
	meta := backupMetadata{
		Filename:   filename,
		Timestamp:  time.Now().Format(time.RFC3339),
		Checksum:   checksum,
		DBVersion:  version,
		Compressed: compress,
		Tables:     s.tableCounts(db),
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	sidecarPath := dbPath + sidecarSuffix
	if err := os.WriteFile(sidecarPath, metaJSON, 0o644); err != nil {
		return "", fmt.Errorf("writing metadata sidecar: %w", err)
	}

	finalPath := dbPath
	if compress {
		zipPath := dbPath + ".zip"
		if err := zipFiles(zipPath, dbPath, sidecarPath); err != nil {
			return "", fmt.Errorf("compressing backup: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return "", err
		}
		if err := os.Remove(sidecarPath); err != nil {
			return "", err
		}
		finalPath = zipPath
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return "", err
	}

	if _, err := s.insertInto(db, types.TableBackupLog, types.Fields{
		"filename":   filepath.Base(finalPath),
		"location":   dir,
		"size":       info.Size(),
		"timestamp":  time.Now().Format(time.RFC3339),
		"checksum":   checksum,
		"compressed": boolToInt(compress),
		"metadata":   string(metaJSON),
		"verified":   0,
	}); err != nil {
		return "", fmt.Errorf("recording backup: %w", err)
	}
	s.invalidate(types.TableBackupLog)

	s.log.WithFields(map[string]any{
		"path":     finalPath,
		"size":     info.Size(),
		"checksum": checksum,
	}).Info("database backed up")
	return finalPath, nil
}

// ListBackups returns backup_log rows newest first. Cached with the short
// TTL.
func (s *Store) ListBackups(limit int) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	key := cacheKey("listBackups", types.TableBackupLog, limit)
	return cached(s.cache, key, volatileTTL, func() ([]types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}
		return s.queryRows(db, "SELECT * FROM backup_log ORDER BY backup_id DESC LIMIT ?", limit)
	})
}

// tableCounts returns the row count of every known table. A count failure
// for one table records -1 for that table instead of aborting the backup.
func (s *Store) tableCounts(db *sql.DB) map[string]int64 {
	counts := make(map[string]int64, len(types.KnownTables))
	for _, table := range types.KnownTables {
		var n int64
		s.queries.Add(1)
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			s.log.WithError(err).WithField("table", table).Error("counting rows for backup metadata")
			counts[table] = -1
			continue
		}
		counts[table] = n
	}
	return counts
}

// vacuumInto writes a consistent copy of the database to path. The path is
// inlined as a quoted literal; VACUUM INTO refuses to overwrite.
func vacuumInto(x dbtx, path string) error {
	quoted := strings.ReplaceAll(path, "'", "''")
	_, err := x.Exec(fmt.Sprintf("VACUUM INTO '%s'", quoted))
	return err
}

// fileChecksum streams the file through SHA-256 in fixed-size chunks and
// returns the hex digest. The file is never loaded whole into memory.
func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, checksumChunk)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// zipFiles writes the named files into one deflate-compressed archive.
func zipFiles(zipPath string, files ...string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, file := range files {
		w, err := zw.Create(filepath.Base(file))
		if err != nil {
			return err
		}
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
