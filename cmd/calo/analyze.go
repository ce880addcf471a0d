package calo

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/recognize"
	"github.com/calolens/calo-cli/internal/store"
)

var (
	analyzeImage    string
	analyzeSeed     int64
	analyzeSave     bool
	analyzeMealType string
	analyzeProgress bool
	analyzeFast     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a meal photo and report recognized foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		var image []byte
		if analyzeImage != "" {
			b, err := os.ReadFile(analyzeImage)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			image = b
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		analyzer := recognize.New(cat, analyzerOptions()...)
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if analyzeProgress {
			type analyzeResult struct {
				result *model.FoodAnalysisResult
				err    error
			}
			done := make(chan analyzeResult, 1)
			go func() {
				r, err := analyzer.Analyze(ctx, image)
				done <- analyzeResult{r, err}
			}()
			for state := range analyzer.AnalyzeProgressive(ctx, image) {
				fmt.Fprintf(out, "[%3d%%] %s\n", state.Progress, state.Message.EN)
			}
			res := <-done
			if res.err != nil {
				return res.err
			}
			return reportAnalysis(cmd, res.result)
		}

		result, err := analyzer.Analyze(ctx, image)
		if err != nil {
			return err
		}
		return reportAnalysis(cmd, result)
	},
}

func analyzerOptions() []recognize.Option {
	opts := []recognize.Option{}
	if analyzeSeed != 0 {
		opts = append(opts, recognize.WithRand(rand.New(rand.NewSource(analyzeSeed))))
	}
	if analyzeFast {
		opts = append(opts, analyzerOptionsFast()...)
	}
	return opts
}

func analyzerOptionsFast() []recognize.Option {
	return []recognize.Option{
		recognize.WithSleep(func(ctx context.Context, _ time.Duration) error {
			return ctx.Err()
		}),
	}
}

func reportAnalysis(cmd *cobra.Command, result *model.FoodAnalysisResult) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "FOOD\tGRAMS\tKCAL\tCONFIDENCE")
	for _, f := range result.Foods {
		fmt.Fprintf(out, "%s\t%.0f\t%d\t%.0f%% (%s)\n",
			f.Name.EN, f.EstimatedGrams, f.Nutrition.Calories, f.Confidence*100, recognize.ConfidenceLevel(f.Confidence))
	}
	fmt.Fprintln(out, "---")
	printNutrition(out, result.TotalNutrition)
	fmt.Fprintf(out, "Overall confidence: %.0f%% (%s)\n", result.Confidence*100, recognize.ConfidenceLevel(result.Confidence))
	fmt.Fprintf(out, "Processed in %d ms\n", result.ProcessTimeMs)

	if !analyzeSave {
		return nil
	}
	// A failed save must not discard the analysis the user already sees.
	if err := saveAnalysis(result); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not save meal: %v\n", err)
		return nil
	}
	fmt.Fprintln(out, "Saved meal to history.")
	return nil
}

func saveAnalysis(result *model.FoodAnalysisResult) error {
	return withDB(func(sqldb *sql.DB) error {
		profile, err := store.GetProfile(sqldb)
		if err != nil {
			return err
		}
		if profile == nil {
			return fmt.Errorf("no profile exists; run 'calo profile create' first")
		}

		now := time.Now()
		mealType := analyzeMealType
		if mealType == "" {
			mealType = defaultMealType(now)
		}
		entry := model.MealEntry{
			ID:             store.NewIDNow(),
			UserID:         profile.ID,
			Timestamp:      now,
			MealType:       mealType,
			Foods:          result.Foods,
			TotalNutrition: result.TotalNutrition,
			ImageRef:       analyzeImage,
		}
		if err := store.SaveMealEntry(sqldb, entry); err != nil {
			return err
		}

		date := now.Format("2006-01-02")
		day, err := store.DailyProgressByDate(sqldb, date)
		if err != nil {
			return err
		}
		if day == nil {
			day = &model.DailyProgress{Date: date, CaloriesGoal: profile.DailyCalorieGoal}
		}
		day.Meals = append(day.Meals, entry)
		return store.SaveDailyProgress(sqldb, *day)
	})
}

// defaultMealType infers the meal slot from the wall clock.
func defaultMealType(t time.Time) string {
	switch h := t.Hour(); {
	case h < 11:
		return "breakfast"
	case h < 16:
		return "lunch"
	case h < 21:
		return "dinner"
	default:
		return "snack"
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeImage, "image", "", "Path to meal photo (payload is never inspected)")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "Random seed for reproducible results")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the result as a meal entry")
	analyzeCmd.Flags().StringVar(&analyzeMealType, "meal-type", "", "Meal type: breakfast, lunch, dinner, or snack")
	analyzeCmd.Flags().BoolVar(&analyzeProgress, "progress", false, "Show staged progress updates")
	analyzeCmd.Flags().BoolVar(&analyzeFast, "fast", false, "Skip simulated processing delays")
}
