package calo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			stats, err := store.ComputeStatistics(sqldb, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total meals: %d\n", stats.TotalMeals)
			fmt.Fprintf(out, "Days tracked: %d\n", stats.TotalDays)
			fmt.Fprintf(out, "Average calories/day: %d\n", stats.AverageCaloriesPerDay)
			fmt.Fprintf(out, "Most logged meal: %s\n", stats.MostLoggedMealType)
			fmt.Fprintf(out, "Streak: %d days\n", stats.StreakDays)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
