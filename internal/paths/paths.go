// Package paths resolves the database file location from the layered
// configuration sources used by the CLI.
package paths

import (
	"os"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// EnvDBPath is the environment variable naming the database file.
const EnvDBPath = "STOCKBOOK_DB_PATH"

// ResolveDBPath returns the database path following the precedence
// flag > config file > environment > default.
func ResolveDBPath(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return env
	}
	return types.DefaultDBPath
}
