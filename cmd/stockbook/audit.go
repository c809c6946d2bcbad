package main

import (
	"github.com/spf13/cobra"
)

var (
	flagAuditEntity string
	flagAuditLimit  int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List audit-log entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ListAuditLog(flagAuditEntity, flagAuditLimit)
		if err != nil {
			return err
		}
		return printRows(rows)
	},
}

func init() {
	auditCmd.Flags().StringVar(&flagAuditEntity, "entity", "", "filter by entity type")
	auditCmd.Flags().IntVar(&flagAuditLimit, "limit", 50, "maximum rows")
}
