package store_test

import (
	"testing"
	"time"

	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/store"
)

func testDay(date string, calories int) model.DailyProgress {
	at, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	return model.DailyProgress{
		Date:         date,
		CaloriesGoal: 2100,
		Meals: []model.MealEntry{
			testMealEntry("m-"+date, at.Add(12*time.Hour), "lunch", calories),
		},
	}
}

func TestSaveDailyProgressRecomputesTotals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	p := testDay("2026-02-10", 600)
	// A stale consumed value must be recomputed from the meals.
	p.CaloriesConsumed = 12345
	p.Nutrition = model.NutritionInfo{Calories: 12345}
	if err := store.SaveDailyProgress(db, p); err != nil {
		t.Fatalf("save daily progress: %v", err)
	}

	got, err := store.DailyProgressByDate(db, "2026-02-10")
	if err != nil {
		t.Fatalf("get daily progress: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if got.CaloriesConsumed != 600 {
		t.Fatalf("expected recomputed consumed 600, got %d", got.CaloriesConsumed)
	}
	if got.Nutrition.Calories != 600 || got.Nutrition.ProteinG != 7.9 {
		t.Fatalf("nutrition not recomputed: %+v", got.Nutrition)
	}
	if got.CaloriesGoal != 2100 {
		t.Fatalf("goal snapshot changed: %d", got.CaloriesGoal)
	}
	if len(got.Meals) != 1 || got.Meals[0].ID != "m-2026-02-10" {
		t.Fatalf("meals not round-tripped: %+v", got.Meals)
	}
}

func TestSaveDailyProgressUpsert(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	if err := store.SaveDailyProgress(db, testDay("2026-02-10", 600)); err != nil {
		t.Fatalf("save first snapshot: %v", err)
	}

	updated := testDay("2026-02-10", 600)
	updated.Meals = append(updated.Meals, testMealEntry("m2", time.Date(2026, 2, 10, 19, 0, 0, 0, time.Local), "dinner", 550))
	if err := store.SaveDailyProgress(db, updated); err != nil {
		t.Fatalf("save updated snapshot: %v", err)
	}

	got, err := store.DailyProgressByDate(db, "2026-02-10")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if got.CaloriesConsumed != 1150 {
		t.Fatalf("expected 1150 consumed after upsert, got %d", got.CaloriesConsumed)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM daily_progress`).Scan(&count); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row after upsert, got %d", count)
	}
}

func TestDailyProgressRetention(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 95; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		if err := store.SaveDailyProgress(db, testDay(date, 500)); err != nil {
			t.Fatalf("save day %s: %v", date, err)
		}
	}

	days, err := store.AllDailyProgress(db)
	if err != nil {
		t.Fatalf("list all progress: %v", err)
	}
	if len(days) != 90 {
		t.Fatalf("expected 90 retained snapshots, got %d", len(days))
	}
	// Newest first, and the five oldest days are gone.
	newest := start.AddDate(0, 0, 94).Format("2006-01-02")
	oldestKept := start.AddDate(0, 0, 5).Format("2006-01-02")
	if days[0].Date != newest {
		t.Fatalf("expected newest %s first, got %s", newest, days[0].Date)
	}
	if days[len(days)-1].Date != oldestKept {
		t.Fatalf("expected oldest kept %s, got %s", oldestKept, days[len(days)-1].Date)
	}
}

func TestDailyProgressByDateMissing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	got, err := store.DailyProgressByDate(db, "2026-02-10")
	if err != nil {
		t.Fatalf("get missing snapshot: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing day, got %+v", got)
	}

	if _, err := store.DailyProgressByDate(db, "not-a-date"); err == nil {
		t.Fatal("expected error for bad date")
	}
}

func TestWeeklyProgress(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	// Snapshots for Mon, Wed and the following Mon; the week query must
	// return only the first two, oldest first.
	for _, date := range []string{"2026-02-09", "2026-02-11", "2026-02-16"} {
		if err := store.SaveDailyProgress(db, testDay(date, 400)); err != nil {
			t.Fatalf("save day %s: %v", date, err)
		}
	}

	week, err := store.WeeklyProgress(db, "2026-02-09")
	if err != nil {
		t.Fatalf("weekly progress: %v", err)
	}
	if len(week) != 2 {
		t.Fatalf("expected 2 days in week, got %d", len(week))
	}
	if week[0].Date != "2026-02-09" || week[1].Date != "2026-02-11" {
		t.Fatalf("unexpected week order: %s, %s", week[0].Date, week[1].Date)
	}
}

func TestSaveDailyProgressValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	p := testDay("2026-02-10", 100)
	p.Date = "Feb 10"
	if err := store.SaveDailyProgress(db, p); err == nil {
		t.Fatal("expected error for bad date")
	}

	p = testDay("2026-02-10", 100)
	p.CaloriesGoal = -1
	if err := store.SaveDailyProgress(db, p); err == nil {
		t.Fatal("expected error for negative goal")
	}
}

func TestSaveDailyProgressEmptyMeals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	p := model.DailyProgress{Date: "2026-02-10", CaloriesGoal: 2000, CaloriesConsumed: 500}
	if err := store.SaveDailyProgress(db, p); err != nil {
		t.Fatalf("save empty day: %v", err)
	}
	got, err := store.DailyProgressByDate(db, "2026-02-10")
	if err != nil {
		t.Fatalf("get empty day: %v", err)
	}
	if got.CaloriesConsumed != 0 {
		t.Fatalf("expected zero consumed for day without meals, got %d", got.CaloriesConsumed)
	}
}
