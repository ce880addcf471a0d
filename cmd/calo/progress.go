package calo

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/nutrition"
	"github.com/calolens/calo-cli/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show daily and weekly nutrition progress",
}

var progressDate string

var progressDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show progress for a single day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(progressDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			day, err := store.DailyProgressByDate(sqldb, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if day == nil {
				fmt.Fprintf(out, "No progress recorded for %s\n", date)
				return nil
			}

			fmt.Fprintf(out, "Date: %s\n", day.Date)
			fmt.Fprintf(out, "Consumed: %d / %d kcal\n", day.CaloriesConsumed, day.CaloriesGoal)
			fmt.Fprintf(out, "Meals: %d\n", len(day.Meals))
			printNutrition(out, day.Nutrition)

			goals := nutrition.MacroGoals(day.CaloriesGoal)
			prog := nutrition.GoalProgress(day.Nutrition, goals)
			fmt.Fprintf(out, "Goal progress: calories %d%%, protein %d%%, carbs %d%%, fat %d%%, fiber %d%%, sodium %d%%\n",
				prog.Calories, prog.Protein, prog.Carbs, prog.Fat, prog.Fiber, prog.Sodium)
			fmt.Fprintf(out, "Quality score: %d/100\n", nutrition.QualityScore(day.Nutrition, goals))

			if burn := nutrition.CaloriesToBurn(day.CaloriesConsumed, day.CaloriesGoal); burn > 0 {
				fmt.Fprintf(out, "Over goal by %d kcal; try 'calo suggest --calories %d'\n", burn, burn)
			}
			return nil
		})
	},
}

var progressWeekStart string

var progressWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show progress for a seven-day window",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDateOrToday(progressWeekStart)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			days, err := store.WeeklyProgress(sqldb, start)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tKCAL\tGOAL\tMEALS\tQUALITY")
			for _, day := range days {
				goals := nutrition.MacroGoals(day.CaloriesGoal)
				fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%d\n",
					day.Date, day.CaloriesConsumed, day.CaloriesGoal, len(day.Meals),
					nutrition.QualityScore(day.Nutrition, goals))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressDayCmd, progressWeekCmd)

	progressDayCmd.Flags().StringVar(&progressDate, "date", "", "Date YYYY-MM-DD (default today)")
	progressWeekCmd.Flags().StringVar(&progressWeekStart, "start", "", "Week start YYYY-MM-DD (default today)")
}
