// Package cloud provides remote-storage uploaders for backup artifacts.
package cloud

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
)

// GCSUploader uploads backup artifacts to a Google Cloud Storage bucket.
// Credentials come from the ambient application-default environment.
type GCSUploader struct {
	bucket string
	client *storage.Client
}

// NewGCSUploader opens a storage client against bucket.
func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSUploader{bucket: bucket, client: client}, nil
}

// Upload streams the file at localPath into the bucket under objectName and
// returns the public object URL.
func (u *GCSUploader) Upload(ctx context.Context, localPath, objectName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("writing object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing object %s: %w", objectName, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName), nil
}

// Provider names this uploader for backup_log records.
func (u *GCSUploader) Provider() string { return "gcs" }

// Close releases the underlying storage client.
func (u *GCSUploader) Close() error { return u.client.Close() }
