package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/nutrition"
)

// retentionDays caps how many daily snapshots are kept; the oldest rows
// beyond the cap are pruned on every save.
const retentionDays = 90

// SaveDailyProgress upserts a day snapshot. The calorie and nutrient totals
// are always recomputed from the attached meals, so a stale caller value can
// never be persisted.
func SaveDailyProgress(db *sql.DB, p model.DailyProgress) error {
	if _, err := parseDate(p.Date); err != nil {
		return err
	}
	if p.CaloriesGoal < 0 {
		return fmt.Errorf("calories goal must be non-negative, got %d", p.CaloriesGoal)
	}

	totals := make([]model.NutritionInfo, 0, len(p.Meals))
	for i := range p.Meals {
		p.Meals[i].TotalNutrition = mealTotals(p.Meals[i])
		totals = append(totals, p.Meals[i].TotalNutrition)
	}
	p.Nutrition = nutrition.Sum(totals)
	p.CaloriesConsumed = p.Nutrition.Calories

	if err := upsertDailyProgress(db, p); err != nil {
		return err
	}

	// Retention prune keeps only the newest snapshots.
	_, err := db.Exec(`
DELETE FROM daily_progress
WHERE date NOT IN (SELECT date FROM daily_progress ORDER BY date DESC LIMIT ?)
`, retentionDays)
	if err != nil {
		return fmt.Errorf("prune daily progress: %w", err)
	}
	return nil
}

func upsertDailyProgress(q dbtx, p model.DailyProgress) error {
	nutritionJSON, err := json.Marshal(p.Nutrition)
	if err != nil {
		return fmt.Errorf("encode daily nutrition: %w", err)
	}
	mealsJSON, err := json.Marshal(p.Meals)
	if err != nil {
		return fmt.Errorf("encode daily meals: %w", err)
	}
	_, err = q.Exec(`
INSERT INTO daily_progress(date, calories_consumed, calories_goal, nutrition_json, meals_json)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  calories_consumed=excluded.calories_consumed,
  calories_goal=excluded.calories_goal,
  nutrition_json=excluded.nutrition_json,
  meals_json=excluded.meals_json
`, p.Date, p.CaloriesConsumed, p.CaloriesGoal, string(nutritionJSON), string(mealsJSON))
	if err != nil {
		return fmt.Errorf("save daily progress %s: %w", p.Date, err)
	}
	return nil
}

func scanDailyProgress(rows *sql.Rows) (model.DailyProgress, error) {
	var p model.DailyProgress
	var nutritionJSON, mealsJSON string
	if err := rows.Scan(&p.Date, &p.CaloriesConsumed, &p.CaloriesGoal, &nutritionJSON, &mealsJSON); err != nil {
		return p, fmt.Errorf("scan daily progress: %w", err)
	}
	if err := json.Unmarshal([]byte(nutritionJSON), &p.Nutrition); err != nil {
		return p, fmt.Errorf("decode daily nutrition for %s: %w", p.Date, err)
	}
	if err := json.Unmarshal([]byte(mealsJSON), &p.Meals); err != nil {
		return p, fmt.Errorf("decode daily meals for %s: %w", p.Date, err)
	}
	return p, nil
}

func queryDailyProgress(q dbtx, where, order string, args ...any) ([]model.DailyProgress, error) {
	rows, err := q.Query(`
SELECT date, calories_consumed, calories_goal, nutrition_json, meals_json
FROM daily_progress
`+where+`
ORDER BY date `+order+`
`, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily progress: %w", err)
	}
	defer rows.Close()

	days := make([]model.DailyProgress, 0)
	for rows.Next() {
		p, err := scanDailyProgress(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily progress: %w", err)
	}
	return days, nil
}

// AllDailyProgress returns every retained snapshot, newest first.
func AllDailyProgress(db *sql.DB) ([]model.DailyProgress, error) {
	return queryDailyProgress(db, "", "DESC")
}

// DailyProgressByDate returns the snapshot for a calendar day, or nil when
// none was recorded.
func DailyProgressByDate(db *sql.DB, date string) (*model.DailyProgress, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	days, err := queryDailyProgress(db, `WHERE date = ?`, "ASC", date)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}
	return &days[0], nil
}

// WeeklyProgress returns the snapshots for the seven days starting at
// weekStart, oldest first. Days without a snapshot are simply absent.
func WeeklyProgress(db *sql.DB, weekStart string) ([]model.DailyProgress, error) {
	start, err := parseDate(weekStart)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 6)
	return queryDailyProgress(db, `WHERE date >= ? AND date <= ?`, "ASC", dateOf(start), dateOf(end))
}
