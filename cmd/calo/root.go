package calo

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "calo",
	Short: "calo tracks meals, nutrition goals, and activity from your terminal",
	Long:  "calo is a local-first calorie lens CLI with simulated food recognition, nutrition goals, activity suggestions, and daily progress tracking.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
