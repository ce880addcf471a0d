package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/calolens/calo-cli/internal/model"
)

// Statistics summarizes the whole log.
type Statistics struct {
	TotalMeals            int    `json:"total_meals"`
	TotalDays             int    `json:"total_days"`
	AverageCaloriesPerDay int    `json:"average_calories_per_day"`
	MostLoggedMealType    string `json:"most_logged_meal_type"`
	StreakDays            int    `json:"streak_days"`
}

// ComputeStatistics derives usage statistics from the stored data. The
// streak is counted backwards from today, so a snapshot for today extends
// it and a missing day ends it.
func ComputeStatistics(db *sql.DB, today time.Time) (Statistics, error) {
	var stats Statistics

	if err := db.QueryRow(`SELECT COUNT(*) FROM meal_entries`).Scan(&stats.TotalMeals); err != nil {
		return stats, fmt.Errorf("count meal entries: %w", err)
	}

	var consumedSum int
	err := db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(calories_consumed), 0) FROM daily_progress`).
		Scan(&stats.TotalDays, &consumedSum)
	if err != nil {
		return stats, fmt.Errorf("sum daily progress: %w", err)
	}
	if stats.TotalDays > 0 {
		stats.AverageCaloriesPerDay = int(math.Round(float64(consumedSum) / float64(stats.TotalDays)))
	}

	mostLogged, err := mostLoggedMealType(db)
	if err != nil {
		return stats, err
	}
	stats.MostLoggedMealType = mostLogged

	streak, err := streakDays(db, today)
	if err != nil {
		return stats, err
	}
	stats.StreakDays = streak

	return stats, nil
}

// mostLoggedMealType picks the meal type with the highest entry count.
// Ties resolve in canonical meal order, and an empty log reads as breakfast.
func mostLoggedMealType(db *sql.DB) (string, error) {
	rows, err := db.Query(`SELECT meal_type, COUNT(*) FROM meal_entries GROUP BY meal_type`)
	if err != nil {
		return "", fmt.Errorf("count meal types: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var mealType string
		var n int
		if err := rows.Scan(&mealType, &n); err != nil {
			return "", fmt.Errorf("scan meal type count: %w", err)
		}
		counts[mealType] = n
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate meal type counts: %w", err)
	}

	best := model.MealTypes[0]
	for _, t := range model.MealTypes {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best, nil
}

func streakDays(db *sql.DB, today time.Time) (int, error) {
	rows, err := db.Query(`SELECT date FROM daily_progress`)
	if err != nil {
		return 0, fmt.Errorf("list progress dates: %w", err)
	}
	defer rows.Close()

	recorded := make(map[string]bool)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return 0, fmt.Errorf("scan progress date: %w", err)
		}
		recorded[date] = true
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate progress dates: %w", err)
	}

	streak := 0
	day := today
	for recorded[dateOf(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}
