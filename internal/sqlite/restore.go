package sqlite

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// VerifyBackup recomputes the checksum of a backup artifact and compares it
// against the sidecar's recorded value. Archives are extracted to a scratch
// directory that is always removed. A mismatch or a missing sidecar or
// checksum yields false; unreadable files yield an error. A passing check
// opportunistically marks the matching backup_log row verified.
func (s *Store) VerifyBackup(path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ok, err := verifyArtifact(path)
	if err != nil || !ok {
		if err == nil {
			s.log.WithField("path", path).Error("backup integrity check failed")
		}
		return false, err
	}

	s.markBackupVerified(filepath.Base(path))
	s.log.WithField("path", path).Info("backup integrity verified")
	return true, nil
}

// Restore replaces the live database with the backup at path. With verify
// set, a failed integrity check aborts before anything is touched. The live
// connection is closed for the swap and reopened no matter the outcome, so
// the store is never left unusable; the cache is cleared because pre-restore
// state is no longer valid. Failures are logged and reported as false.
func (s *Store) Restore(path string, verify bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if verify {
		ok, err := verifyArtifact(path)
		if err != nil {
			s.log.WithError(err).WithField("path", path).Error("restore: verifying backup")
			return false
		}
		if !ok {
			s.log.WithField("path", path).Error("restore aborted: integrity check failed")
			return false
		}
	}

	dbPath, _, cleanup, err := locateBackup(path)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Error("restore: locating backup database")
		return false
	}
	defer cleanup()

	if err := s.closeConn(); err != nil {
		s.log.WithError(err).Error("restore: closing live connection")
		return false
	}

	// The connection is reopened whatever happens below.
	restored := false
	defer func() {
		if _, err := s.conn(); err != nil {
			s.log.WithError(err).Error("restore: reopening live connection")
			return
		}
		if restored {
			s.cache.invalidate("")
			s.markBackupVerified(filepath.Base(path))
		}
	}()

	if err := swapDatabase(dbPath, s.cfg.Path); err != nil {
		s.log.WithError(err).WithField("path", path).Error("restore: swapping database file")
		return false
	}

	restored = true
	s.log.WithField("path", path).Info("database restored")
	return true
}

// swapDatabase copies the backup database over the live path using the
// engine's backup mechanism: a source connection VACUUMs into a scratch file
// which is then renamed into place. WAL side-files of the old database are
// removed so the restored file is read cleanly.
func swapDatabase(srcPath, livePath string) error {
	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		return fmt.Errorf("opening backup database: %w", err)
	}
	defer src.Close()

	scratch := livePath + ".restore"
	os.Remove(scratch)
	if err := vacuumInto(src, scratch); err != nil {
		return fmt.Errorf("copying backup database: %w", err)
	}
	if err := src.Close(); err != nil {
		return err
	}

	os.Remove(livePath + "-wal")
	os.Remove(livePath + "-shm")
	if err := os.Rename(scratch, livePath); err != nil {
		os.Remove(scratch)
		return fmt.Errorf("replacing live database: %w", err)
	}
	return nil
}

// verifyArtifact checks the artifact at path against its sidecar checksum.
// Pure file operation; touches no store state.
func verifyArtifact(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, err
	}

	dbPath, sidecarPath, cleanup, err := locateBackup(path)
	if err != nil {
		return false, err
	}
	defer cleanup()

	if sidecarPath == "" {
		return false, nil
	}
	raw, err := os.ReadFile(sidecarPath)
	if err != nil {
		return false, err
	}
	var meta backupMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return false, fmt.Errorf("parsing metadata sidecar: %w", err)
	}
	if meta.Checksum == "" {
		return false, nil
	}

	actual, err := fileChecksum(dbPath)
	if err != nil {
		return false, err
	}
	return actual == meta.Checksum, nil
}

// locateBackup resolves the database file and metadata sidecar inside a
// backup artifact. Zip archives are extracted to a scratch directory; the
// returned cleanup removes it and must always be called. For plain backups
// the sidecar path is "" when no sidecar exists alongside.
func locateBackup(path string) (dbPath, sidecarPath string, cleanup func(), err error) {
	cleanup = func() {}

	if !strings.HasSuffix(path, ".zip") {
		sidecar := path + sidecarSuffix
		if _, err := os.Stat(sidecar); err != nil {
			sidecar = ""
		}
		return path, sidecar, cleanup, nil
	}

	scratch := filepath.Join(os.TempDir(), "stockbook-extract-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o700); err != nil {
		return "", "", cleanup, err
	}
	cleanup = func() { os.RemoveAll(scratch) }

	if err := unzip(path, scratch); err != nil {
		cleanup()
		return "", "", func() {}, fmt.Errorf("extracting archive: %w", err)
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		cleanup()
		return "", "", func() {}, err
	}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, sidecarSuffix):
			sidecarPath = filepath.Join(scratch, name)
		case strings.HasSuffix(name, ".db"):
			dbPath = filepath.Join(scratch, name)
		}
	}
	if dbPath == "" {
		cleanup()
		return "", "", func() {}, fmt.Errorf("no database file in archive %s", path)
	}
	return dbPath, sidecarPath, cleanup, nil
}

// unzip extracts every archive entry into dir, refusing paths that escape it.
func unzip(zipPath, dir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		dest := filepath.Join(dir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// markBackupVerified stamps the newest backup_log row for filename as
// verified. Best effort; failures are logged only.
func (s *Store) markBackupVerified(filename string) {
	db, err := s.conn()
	if err != nil {
		s.log.WithError(err).Warn("could not update backup verification status")
		return
	}
	row, err := s.queryOne(db,
		"SELECT backup_id FROM backup_log WHERE filename = ? ORDER BY backup_id DESC LIMIT 1", filename)
	if err != nil {
		return
	}
	_, err = s.updateWhere(db, types.TableBackupLog, types.Fields{
		"verified":          1,
		"verification_date": time.Now().Format(time.RFC3339),
	}, "backup_id = ?", row.Int("backup_id"))
	if err != nil {
		s.log.WithError(err).Warn("could not update backup verification status")
		return
	}
	s.invalidate(types.TableBackupLog)
}
