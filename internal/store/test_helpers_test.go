package store_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/calolens/calo-cli/internal/db"
	"github.com/calolens/calo-cli/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calo.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func testProfile() model.UserProfile {
	return model.UserProfile{
		ID:                "a1b2c3",
		Name:              "Sara",
		Age:               30,
		Gender:            model.GenderFemale,
		WeightKg:          65,
		HeightCm:          168,
		ActivityLevel:     model.ActivityModeratelyActive,
		Goal:              model.GoalMaintain,
		DailyCalorieGoal:  2100,
		PreferredLanguage: "en",
		CreatedAt:         time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local),
	}
}

func testMealEntry(id string, at time.Time, mealType string, calories int) model.MealEntry {
	return model.MealEntry{
		ID:        id,
		UserID:    "a1b2c3",
		Timestamp: at,
		MealType:  mealType,
		Foods: []model.RecognizedFood{
			{
				FoodID:         "hummus",
				Name:           model.LocalizedString{EN: "Hummus", AR: "حمص"},
				Confidence:     0.91,
				EstimatedGrams: 100,
				Nutrition: model.NutritionInfo{
					Calories: calories,
					ProteinG: 7.9,
					CarbsG:   14.3,
					FatG:     9.6,
					FiberG:   6,
					SugarG:   0.3,
					SodiumMg: 379,
				},
			},
		},
	}
}
