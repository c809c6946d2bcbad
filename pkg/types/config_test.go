package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigNormalize(t *testing.T) {
	c := Config{}.Normalize()

	if c.Path != DefaultDBPath {
		t.Errorf("Path = %q, want %q", c.Path, DefaultDBPath)
	}
	if c.CacheTTL != DefaultTTL {
		t.Errorf("CacheTTL = %v, want %v", c.CacheTTL, DefaultTTL)
	}
	if c.MaxCacheEntries != DefaultMaxCacheEntries {
		t.Errorf("MaxCacheEntries = %d, want %d", c.MaxCacheEntries, DefaultMaxCacheEntries)
	}
	if c.Logger == nil {
		t.Error("Logger not defaulted")
	}

	// Explicit values survive.
	c = Config{Path: "x.db", CacheTTL: time.Second, MaxCacheEntries: 5}.Normalize()
	if c.Path != "x.db" || c.CacheTTL != time.Second || c.MaxCacheEntries != 5 {
		t.Errorf("explicit values overwritten: %+v", c)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"empty path", Config{}, ErrPathEmpty},
		{"negative ttl", Config{Path: "x.db", CacheTTL: -time.Second}, ErrTTLInvalid},
		{"negative cache size", Config{Path: "x.db", MaxCacheEntries: -1}, ErrCacheSizeInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
