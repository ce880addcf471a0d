package calo

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var backupOut string

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			out = filepath.Join(filepath.Dir(path), "backups", fmt.Sprintf("calo-%s.db", time.Now().Format("2006-01-02-150405")))
		}
		info, err := store.CreateBackup(path, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes, sha256 %s)\n", info.Path, info.SizeBytes, info.Checksum)
		return nil
	},
}

var backupForce bool

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-path>",
	Short: "Restore the database from a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := store.RestoreBackup(args[0], path, backupForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored database from %s\n", args[0])
		return nil
	},
}

var backupListDir string

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := backupListDir
		if dir == "" {
			path, err := resolveDBPath()
			if err != nil {
				return err
			}
			dir = filepath.Join(filepath.Dir(path), "backups")
		}
		backups, err := store.ListBackups(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "PATH\tSIZE\tCREATED\tSHA256")
		for _, b := range backups {
			fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", b.Path, b.SizeBytes, b.CreatedAt.Format(time.RFC3339), b.Checksum)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupRestoreCmd, backupListCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup file path")
	backupRestoreCmd.Flags().BoolVar(&backupForce, "force", false, "Overwrite an existing database")
	backupListCmd.Flags().StringVar(&backupListDir, "dir", "", "Backup directory")
}
