package calo

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/activity"
	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/store"
)

var (
	suggestCalories    int
	suggestCategories  []string
	suggestIntensities []string
	suggestMaxDuration int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest activities to burn a calorie target",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			profile, err := requireProfile(sqldb)
			if err != nil {
				return err
			}

			var prefs *activity.Preferences
			if len(suggestCategories) > 0 || len(suggestIntensities) > 0 || suggestMaxDuration > 0 {
				prefs = &activity.Preferences{
					Categories:     suggestCategories,
					Intensities:    suggestIntensities,
					MaxDurationMin: suggestMaxDuration,
				}
			}
			suggestions, err := activity.Suggest(cat, suggestCalories, *profile, prefs)
			if err != nil {
				return err
			}
			printSuggestions(cmd, suggestions)
			return nil
		})
	},
}

var suggestQuickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Show quick suggestions for common calorie amounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			profile, err := requireProfile(sqldb)
			if err != nil {
				return err
			}
			groups, err := activity.QuickSuggestions(cat, *profile)
			if err != nil {
				return err
			}
			for _, amount := range activity.QuickCalorieAmounts {
				key := fmt.Sprintf("%dcal", amount)
				fmt.Fprintf(cmd.OutOrStdout(), "== %d kcal ==\n", amount)
				printSuggestions(cmd, groups[key])
			}
			return nil
		})
	},
}

func requireProfile(sqldb *sql.DB) (*model.UserProfile, error) {
	profile, err := store.GetProfile(sqldb)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("no profile exists; run 'calo profile create' first")
	}
	return profile, nil
}

func printSuggestions(cmd *cobra.Command, suggestions []model.ActivitySuggestion) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "ACTIVITY\tCATEGORY\tINTENSITY\tMIN\tKCAL\tMATCH")
	for _, s := range suggestions {
		fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%d\t%d%%\n",
			s.Activity.Name.EN, s.Activity.Category, s.Activity.Intensity,
			s.DurationMin, s.TotalCalories, s.MatchPercentage)
	}
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.AddCommand(suggestQuickCmd)

	suggestCmd.Flags().IntVar(&suggestCalories, "calories", 0, "Calorie target to burn")
	suggestCmd.Flags().StringSliceVar(&suggestCategories, "category", nil, "Restrict to categories (cardio, strength, sports, dance, fitness, daily)")
	suggestCmd.Flags().StringSliceVar(&suggestIntensities, "intensity", nil, "Restrict to intensities (low, medium, high)")
	suggestCmd.Flags().IntVar(&suggestMaxDuration, "max-duration", 0, "Skip activities needing more minutes than this")
	_ = suggestCmd.MarkFlagRequired("calories")
}
