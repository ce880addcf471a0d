package calo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/nutrition"
	"github.com/calolens/calo-cli/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile",
}

var (
	profileName     string
	profileAge      int
	profileGender   string
	profileWeight   float64
	profileHeight   float64
	profileActivity string
	profileGoal     string
	profileLanguage string
	profileCalories int
)

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := model.UserProfile{
			ID:                uuid.NewString(),
			Name:              profileName,
			Age:               profileAge,
			Gender:            profileGender,
			WeightKg:          profileWeight,
			HeightCm:          profileHeight,
			ActivityLevel:     profileActivity,
			Goal:              profileGoal,
			PreferredLanguage: profileLanguage,
			CreatedAt:         time.Now(),
		}
		if cmd.Flags().Changed("calories") {
			p.DailyCalorieGoal = profileCalories
		} else {
			goal, err := nutrition.CalorieGoal(p)
			if err != nil {
				return err
			}
			p.DailyCalorieGoal = goal
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := store.SaveProfile(sqldb, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (daily goal %d kcal)\n", p.ID, p.DailyCalorieGoal)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile and derived nutrition targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := store.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("no profile exists; run 'calo profile create' first")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\n", p.ID)
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "Age: %d\n", p.Age)
			fmt.Fprintf(out, "Gender: %s\n", p.Gender)
			fmt.Fprintf(out, "Weight: %.1f kg\n", p.WeightKg)
			fmt.Fprintf(out, "Height: %.1f cm\n", p.HeightCm)
			fmt.Fprintf(out, "Activity: %s\n", p.ActivityLevel)
			fmt.Fprintf(out, "Goal: %s\n", p.Goal)
			fmt.Fprintf(out, "Language: %s\n", p.PreferredLanguage)

			bmr, err := nutrition.BMR(*p)
			if err != nil {
				return err
			}
			tdee, err := nutrition.TDEE(*p)
			if err != nil {
				return err
			}
			goals := nutrition.MacroGoals(p.DailyCalorieGoal)
			fmt.Fprintf(out, "BMR: %.0f kcal\n", bmr)
			fmt.Fprintf(out, "TDEE: %d kcal\n", tdee)
			fmt.Fprintf(out, "Daily goal: %d kcal\n", p.DailyCalorieGoal)
			fmt.Fprintf(out, "Protein: %d-%d g\n", goals.Protein.MinG, goals.Protein.MaxG)
			fmt.Fprintf(out, "Carbs: %d-%d g\n", goals.Carbs.MinG, goals.Carbs.MaxG)
			fmt.Fprintf(out, "Fat: %d-%d g\n", goals.Fat.MinG, goals.Fat.MaxG)
			fmt.Fprintf(out, "Fiber: %d g\n", goals.FiberG)
			fmt.Fprintf(out, "Sodium limit: %d mg\n", goals.SodiumMg)
			fmt.Fprintf(out, "Water: %d ml\n", nutrition.WaterIntake(p.DailyCalorieGoal))
			return nil
		})
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := store.ProfileUpdate{}
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = &profileName
		}
		if flags.Changed("age") {
			in.Age = &profileAge
		}
		if flags.Changed("gender") {
			in.Gender = &profileGender
		}
		if flags.Changed("weight") {
			in.WeightKg = &profileWeight
		}
		if flags.Changed("height") {
			in.HeightCm = &profileHeight
		}
		if flags.Changed("activity") {
			in.ActivityLevel = &profileActivity
		}
		if flags.Changed("goal") {
			in.Goal = &profileGoal
		}
		if flags.Changed("language") {
			in.PreferredLanguage = &profileLanguage
		}
		if flags.Changed("calories") {
			in.DailyCalorieGoal = &profileCalories
		}

		return withDB(func(sqldb *sql.DB) error {
			p, err := store.UpdateProfile(sqldb, in)
			if err != nil {
				return err
			}
			// Body or goal changes shift the calorie target unless the user
			// pinned one explicitly.
			if !flags.Changed("calories") {
				goal, err := nutrition.CalorieGoal(*p)
				if err != nil {
					return err
				}
				if goal != p.DailyCalorieGoal {
					p, err = store.UpdateProfile(sqldb, store.ProfileUpdate{DailyCalorieGoal: &goal})
					if err != nil {
						return err
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated profile (daily goal %d kcal)\n", p.DailyCalorieGoal)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileCreateCmd, profileShowCmd, profileUpdateCmd)

	for _, c := range []*cobra.Command{profileCreateCmd, profileUpdateCmd} {
		c.Flags().StringVar(&profileName, "name", "", "Display name")
		c.Flags().IntVar(&profileAge, "age", 0, "Age in years")
		c.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
		c.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
		c.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
		c.Flags().StringVar(&profileActivity, "activity", "", "Activity level: sedentary, lightly_active, moderately_active, very_active")
		c.Flags().StringVar(&profileGoal, "goal", "", "Goal: lose, maintain, or gain")
		c.Flags().StringVar(&profileLanguage, "language", "en", "Preferred language: en or ar")
		c.Flags().IntVar(&profileCalories, "calories", 0, "Daily calorie goal override")
	}
	for _, flag := range []string{"name", "age", "gender", "weight", "height", "activity", "goal"} {
		_ = profileCreateCmd.MarkFlagRequired(flag)
	}
}
