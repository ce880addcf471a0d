package calo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data, err := store.ExportSnapshot(sqldb, time.Now())
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			raw = append(raw, '\n')
			if exportOut == "" {
				_, err := cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := os.WriteFile(exportOut, raw, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importIn string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a previously exported JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := store.ImportSnapshot(sqldb, raw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := store.ClearAll(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all data.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, clearCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file")
	_ = importCmd.MarkFlagRequired("in")
}
