package main

import (
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

// Global flag values.
var (
	flagDB        string
	flagConfigDir string
	flagJSON      bool
	flagUser      string
)

var rootCmd = &cobra.Command{
	Use:     "stockbook",
	Short:   "Stockbook is an embedded inventory and finance data store",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database file (default: data/database.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.stockbook)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "cli", "acting user recorded in the audit log")

	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(saleCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(auditCmd)
}
