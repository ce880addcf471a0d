package store_test

import (
	"testing"
	"time"

	"github.com/calolens/calo-cli/internal/store"
)

func TestComputeStatisticsEmptyStore(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	stats, err := store.ComputeStatistics(db, time.Now())
	if err != nil {
		t.Fatalf("compute statistics: %v", err)
	}
	if stats.TotalMeals != 0 || stats.TotalDays != 0 || stats.AverageCaloriesPerDay != 0 || stats.StreakDays != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.MostLoggedMealType != "breakfast" {
		t.Fatalf("expected breakfast default, got %s", stats.MostLoggedMealType)
	}
}

func TestComputeStatistics(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	today := time.Date(2026, 2, 12, 15, 0, 0, 0, time.Local)

	// Two lunches, one dinner: lunch wins.
	entries := []struct {
		id       string
		mealType string
		at       time.Time
	}{
		{"m1", "lunch", today.AddDate(0, 0, -2)},
		{"m2", "lunch", today.AddDate(0, 0, -1)},
		{"m3", "dinner", today},
	}
	for _, e := range entries {
		if err := store.SaveMealEntry(db, testMealEntry(e.id, e.at, e.mealType, 500)); err != nil {
			t.Fatalf("save %s: %v", e.id, err)
		}
	}

	// Consecutive snapshots for the last three days, with a hole before.
	for i := 0; i < 3; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		if err := store.SaveDailyProgress(db, testDay(date, 500+100*i)); err != nil {
			t.Fatalf("save day %s: %v", date, err)
		}
	}
	// An older, non-adjacent day does not extend the streak.
	if err := store.SaveDailyProgress(db, testDay("2026-02-01", 800)); err != nil {
		t.Fatalf("save old day: %v", err)
	}

	stats, err := store.ComputeStatistics(db, today)
	if err != nil {
		t.Fatalf("compute statistics: %v", err)
	}
	if stats.TotalMeals != 3 {
		t.Fatalf("expected 3 meals, got %d", stats.TotalMeals)
	}
	if stats.TotalDays != 4 {
		t.Fatalf("expected 4 days, got %d", stats.TotalDays)
	}
	// (500+600+700+800)/4 = 650
	if stats.AverageCaloriesPerDay != 650 {
		t.Fatalf("expected average 650, got %d", stats.AverageCaloriesPerDay)
	}
	if stats.MostLoggedMealType != "lunch" {
		t.Fatalf("expected lunch, got %s", stats.MostLoggedMealType)
	}
	if stats.StreakDays != 3 {
		t.Fatalf("expected streak 3, got %d", stats.StreakDays)
	}
}

func TestStatisticsStreakBrokenToday(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	today := time.Date(2026, 2, 12, 15, 0, 0, 0, time.Local)
	// Only yesterday is recorded; with nothing for today the streak is 0.
	if err := store.SaveDailyProgress(db, testDay("2026-02-11", 500)); err != nil {
		t.Fatalf("save day: %v", err)
	}

	stats, err := store.ComputeStatistics(db, today)
	if err != nil {
		t.Fatalf("compute statistics: %v", err)
	}
	if stats.StreakDays != 0 {
		t.Fatalf("expected streak 0, got %d", stats.StreakDays)
	}
}

func TestStatisticsMealTypeTieBreak(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	today := time.Date(2026, 2, 12, 0, 0, 0, 0, time.Local)
	// One dinner and one snack each: canonical order prefers dinner.
	if err := store.SaveMealEntry(db, testMealEntry("m1", today.Add(19*time.Hour), "dinner", 500)); err != nil {
		t.Fatalf("save dinner: %v", err)
	}
	if err := store.SaveMealEntry(db, testMealEntry("m2", today.Add(22*time.Hour), "snack", 150)); err != nil {
		t.Fatalf("save snack: %v", err)
	}

	stats, err := store.ComputeStatistics(db, today)
	if err != nil {
		t.Fatalf("compute statistics: %v", err)
	}
	if stats.MostLoggedMealType != "dinner" {
		t.Fatalf("expected dinner on tie, got %s", stats.MostLoggedMealType)
	}
}
