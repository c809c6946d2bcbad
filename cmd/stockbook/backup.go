package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, verify, restore, list and upload backups",
}

var (
	flagBackupDir    string
	flagNoCompress   bool
	flagSkipVerify   bool
	flagBackupLimit  int
	flagBackupUpload bool
)

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a checksummed backup of the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		path, err := s.Backup(flagBackupDir, !flagNoCompress)
		if err != nil {
			return err
		}
		fmt.Println(path)

		if flagBackupUpload {
			url, err := s.UploadBackup(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Println(url)
		}
		return nil
	},
}

var backupVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify a backup against its recorded checksum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ok, err := s.VerifyBackup(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("integrity check failed for %s", args[0])
		}
		fmt.Println("backup verified")
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Restore the database from a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if !s.Restore(args[0], !flagSkipVerify) {
			return fmt.Errorf("restore failed for %s", args[0])
		}
		fmt.Println("database restored")
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded backups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ListBackups(flagBackupLimit)
		if err != nil {
			return err
		}
		return printRows(rows)
	},
}

var backupUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a backup artifact to remote storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		url, err := s.UploadBackup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	backupCreateCmd.Flags().StringVar(&flagBackupDir, "dir", "data/backups", "backup directory")
	backupCreateCmd.Flags().BoolVar(&flagNoCompress, "no-compress", false, "skip zip compression")
	backupCreateCmd.Flags().BoolVar(&flagBackupUpload, "upload", false, "upload the artifact after creation")

	backupRestoreCmd.Flags().BoolVar(&flagSkipVerify, "skip-verify", false, "restore without an integrity check")

	backupListCmd.Flags().IntVar(&flagBackupLimit, "limit", 20, "maximum rows")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupVerifyCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupUploadCmd)
}
