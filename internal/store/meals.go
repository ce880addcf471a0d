package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/nutrition"
)

var validMealTypes = func() map[string]bool {
	m := make(map[string]bool, len(model.MealTypes))
	for _, t := range model.MealTypes {
		m[t] = true
	}
	return m
}()

func validateMealEntry(e model.MealEntry) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("meal entry id is required")
	}
	if !validMealTypes[e.MealType] {
		return fmt.Errorf("invalid meal type %q (expected one of %s)", e.MealType, strings.Join(model.MealTypes, ", "))
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("meal entry timestamp is required")
	}
	return nil
}

// mealTotals recomputes the entry aggregate from its foods so the stored
// total always matches the food list.
func mealTotals(e model.MealEntry) model.NutritionInfo {
	if len(e.Foods) == 0 {
		return e.TotalNutrition
	}
	parts := make([]model.NutritionInfo, 0, len(e.Foods))
	for _, f := range e.Foods {
		parts = append(parts, f.Nutrition)
	}
	return nutrition.Sum(parts)
}

// SaveMealEntry appends a meal entry to the log.
func SaveMealEntry(db *sql.DB, e model.MealEntry) error {
	if err := validateMealEntry(e); err != nil {
		return err
	}
	e.TotalNutrition = mealTotals(e)
	return insertMealEntry(db, e)
}

func insertMealEntry(q dbtx, e model.MealEntry) error {
	foods, err := json.Marshal(e.Foods)
	if err != nil {
		return fmt.Errorf("encode meal foods: %w", err)
	}
	t := e.TotalNutrition
	_, err = q.Exec(`
INSERT INTO meal_entries(id, user_id, logged_at, meal_type, foods_json, calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, sodium_mg, image_ref, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.UserID, e.Timestamp.Format(time.RFC3339), e.MealType, string(foods),
		t.Calories, t.ProteinG, t.CarbsG, t.FatG, t.FiberG, t.SugarG, t.SodiumMg, e.ImageRef, e.Notes)
	if err != nil {
		return fmt.Errorf("save meal entry %s: %w", e.ID, err)
	}
	return nil
}

const mealEntryColumns = `id, user_id, logged_at, meal_type, foods_json, calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, sodium_mg, image_ref, notes`

func scanMealEntry(rows *sql.Rows) (model.MealEntry, error) {
	var e model.MealEntry
	var loggedAt, foodsJSON string
	t := &e.TotalNutrition
	err := rows.Scan(&e.ID, &e.UserID, &loggedAt, &e.MealType, &foodsJSON,
		&t.Calories, &t.ProteinG, &t.CarbsG, &t.FatG, &t.FiberG, &t.SugarG, &t.SodiumMg, &e.ImageRef, &e.Notes)
	if err != nil {
		return e, fmt.Errorf("scan meal entry: %w", err)
	}
	e.Timestamp, err = time.Parse(time.RFC3339, loggedAt)
	if err != nil {
		return e, fmt.Errorf("parse meal entry logged_at: %w", err)
	}
	if err := json.Unmarshal([]byte(foodsJSON), &e.Foods); err != nil {
		return e, fmt.Errorf("decode meal foods for %s: %w", e.ID, err)
	}
	return e, nil
}

func queryMealEntries(q dbtx, where string, args ...any) ([]model.MealEntry, error) {
	rows, err := q.Query(`
SELECT `+mealEntryColumns+`
FROM meal_entries
`+where+`
ORDER BY logged_at ASC, seq ASC
`, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.MealEntry, 0)
	for rows.Next() {
		e, err := scanMealEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal entries: %w", err)
	}
	return entries, nil
}

// MealEntries returns every logged entry in chronological order.
func MealEntries(db *sql.DB) ([]model.MealEntry, error) {
	return queryMealEntries(db, "")
}

// MealEntriesByDate returns the entries logged on a calendar day.
func MealEntriesByDate(db *sql.DB, date string) ([]model.MealEntry, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return nil, err
	}
	return queryMealEntries(db, `WHERE logged_at >= ? AND logged_at < ?`, start, end)
}

// MealEntriesByRange returns entries logged between two calendar days,
// both ends inclusive.
func MealEntriesByRange(db *sql.DB, from, to string) ([]model.MealEntry, error) {
	start, _, err := dayBounds(from)
	if err != nil {
		return nil, err
	}
	_, end, err := dayBounds(to)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("range start %s is after end %s", from, to)
	}
	return queryMealEntries(db, `WHERE logged_at >= ? AND logged_at < ?`, start, end)
}

// UpdateMealEntry replaces a stored entry wholesale, matched by id.
func UpdateMealEntry(db *sql.DB, e model.MealEntry) error {
	if err := validateMealEntry(e); err != nil {
		return err
	}
	e.TotalNutrition = mealTotals(e)
	foods, err := json.Marshal(e.Foods)
	if err != nil {
		return fmt.Errorf("encode meal foods: %w", err)
	}
	t := e.TotalNutrition
	res, err := db.Exec(`
UPDATE meal_entries
SET user_id = ?, logged_at = ?, meal_type = ?, foods_json = ?,
    calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, fiber_g = ?, sugar_g = ?, sodium_mg = ?,
    image_ref = ?, notes = ?
WHERE id = ?
`, e.UserID, e.Timestamp.Format(time.RFC3339), e.MealType, string(foods),
		t.Calories, t.ProteinG, t.CarbsG, t.FatG, t.FiberG, t.SugarG, t.SodiumMg, e.ImageRef, e.Notes, e.ID)
	if err != nil {
		return fmt.Errorf("update meal entry %s: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meal entry %s: %w", e.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("meal entry %s not found", e.ID)
	}
	return nil
}

// DeleteMealEntry removes an entry by id.
func DeleteMealEntry(db *sql.DB, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("meal entry id is required")
	}
	res, err := db.Exec(`DELETE FROM meal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal entry %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("meal entry %s not found", id)
	}
	return nil
}
