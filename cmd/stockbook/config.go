package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/stockbook/internal/cloud"
	"github.com/mesh-intelligence/stockbook/internal/paths"
	"github.com/mesh-intelligence/stockbook/internal/sqlite"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys. Each is also readable from the environment with the
	// STOCKBOOK_ prefix, e.g. STOCKBOOK_DB_PATH.
	cfgKeyDBPath     = "db_path"
	cfgKeyCacheTTL   = "cache_ttl"
	cfgKeyMaxEntries = "max_cache_entries"
	cfgKeyLogLevel   = "log_level"
	cfgKeyGCSBucket  = "gcs_bucket"
)

// cfg holds the loaded configuration for all subcommands.
var cfg *viper.Viper

// loadConfig reads config.yaml from the config directory. A missing file is
// not an error; defaults and environment variables still apply.
func loadConfig() error {
	v := viper.New()
	v.SetDefault(cfgKeyCacheTTL, types.DefaultTTL)
	v.SetDefault(cfgKeyMaxEntries, types.DefaultMaxCacheEntries)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(resolveConfigDir())
	v.SetEnvPrefix("stockbook")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	cfg = v
	return nil
}

func resolveConfigDir() string {
	if flagConfigDir != "" {
		return flagConfigDir
	}
	if env := os.Getenv("STOCKBOOK_CONFIG_DIR"); env != "" {
		return env
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ".stockbook"
	}
	return filepath.Join(cwd, ".stockbook")
}

// openStore constructs the store from flags, config file and environment.
func openStore() (*sqlite.Store, error) {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.GetString(cfgKeyLogLevel)); err == nil {
		logger.SetLevel(level)
	}

	sc := types.Config{
		Path:            paths.ResolveDBPath(flagDB, cfg.GetString(cfgKeyDBPath)),
		CacheTTL:        cfg.GetDuration(cfgKeyCacheTTL),
		MaxCacheEntries: cfg.GetInt(cfgKeyMaxEntries),
		Logger:          logger,
	}

	if bucket := cfg.GetString(cfgKeyGCSBucket); bucket != "" {
		up, err := cloud.NewGCSUploader(context.Background(), bucket)
		if err != nil {
			return nil, fmt.Errorf("configuring uploader: %w", err)
		}
		sc.Uploader = up
	}

	return sqlite.Open(sc)
}
