package types

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Defaults applied by DefaultConfig and by Config.Normalize for zero fields.
const (
	DefaultDBPath          = "data/database.db"
	DefaultTTL             = 5 * time.Minute
	DefaultMaxCacheEntries = 100
)

// Uploader pushes a backup artifact to remote storage. Implementations are
// injected at store construction; the store never discovers one at runtime.
type Uploader interface {
	// Upload stores the file at localPath under objectName and returns the
	// URL of the uploaded object.
	Upload(ctx context.Context, localPath, objectName string) (string, error)

	// Provider names the remote storage provider, e.g. "gcs".
	Provider() string
}

// Config holds construction parameters for a store instance.
type Config struct {
	// Path is the database file location. The parent directory is created
	// on first open if absent.
	Path string

	// CacheTTL is the default time-to-live for cached reads.
	CacheTTL time.Duration

	// MaxCacheEntries bounds the memoization cache.
	MaxCacheEntries int

	// Logger receives structured store logs. Defaults to logrus.New().
	Logger *logrus.Logger

	// Uploader, when set, enables remote backup uploads.
	Uploader Uploader
}

// DefaultConfig returns a Config with all defaults filled in.
func DefaultConfig() Config {
	return Config{
		Path:            DefaultDBPath,
		CacheTTL:        DefaultTTL,
		MaxCacheEntries: DefaultMaxCacheEntries,
	}
}

// Normalize fills zero-valued fields with defaults.
func (c Config) Normalize() Config {
	if c.Path == "" {
		c.Path = DefaultDBPath
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = DefaultTTL
	}
	if c.MaxCacheEntries == 0 {
		c.MaxCacheEntries = DefaultMaxCacheEntries
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	return c
}

// Validate checks that the Config is well-formed. Call after Normalize.
func (c Config) Validate() error {
	if c.Path == "" {
		return ErrPathEmpty
	}
	if c.CacheTTL < 0 {
		return ErrTTLInvalid
	}
	if c.MaxCacheEntries < 0 {
		return ErrCacheSizeInvalid
	}
	return nil
}
