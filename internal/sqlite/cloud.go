package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// UploadBackup pushes the backup artifact at path to the Uploader configured
// at construction and attaches the resulting URL and provider name to the
// matching backup_log row. Returns ErrNoUploader when none was configured.
func (s *Store) UploadBackup(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg.Uploader == nil {
		return "", types.ErrNoUploader
	}
	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	filename := filepath.Base(path)
	objectName := fmt.Sprintf("backups/%s/%s", uuid.NewString(), filename)

	url, err := s.cfg.Uploader.Upload(ctx, path, objectName)
	if err != nil {
		return "", fmt.Errorf("uploading backup: %w", err)
	}

	db, err := s.conn()
	if err != nil {
		return url, err
	}
	row, err := s.queryOne(db,
		"SELECT backup_id FROM backup_log WHERE filename = ? ORDER BY backup_id DESC LIMIT 1", filename)
	if err != nil {
		s.log.WithError(err).Warn("could not attach upload URL to backup record")
		return url, nil
	}
	if _, err := s.updateWhere(db, types.TableBackupLog, types.Fields{
		"cloud_url":      url,
		"cloud_provider": s.cfg.Uploader.Provider(),
	}, "backup_id = ?", row.Int("backup_id")); err != nil {
		s.log.WithError(err).Warn("could not attach upload URL to backup record")
		return url, nil
	}
	s.invalidate(types.TableBackupLog)

	s.log.WithFields(map[string]any{
		"path":     path,
		"url":      url,
		"provider": s.cfg.Uploader.Provider(),
	}).Info("backup uploaded")
	return url, nil
}
