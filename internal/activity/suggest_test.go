package activity_test

import (
	"testing"

	"github.com/calolens/calo-cli/internal/activity"
	"github.com/calolens/calo-cli/internal/catalog"
	"github.com/calolens/calo-cli/internal/model"
)

func testProfile() model.UserProfile {
	return model.UserProfile{
		Age:           30,
		Gender:        model.GenderMale,
		WeightKg:      70,
		HeightCm:      175,
		ActivityLevel: model.ActivityModeratelyActive,
		Goal:          model.GoalMaintain,
	}
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func TestSuggestReturnsTopEightSorted(t *testing.T) {
	t.Parallel()
	cat := loadCatalog(t)

	suggestions, err := activity.Suggest(cat, 300, testProfile(), nil)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) != 8 {
		t.Fatalf("expected 8 suggestions, got %d", len(suggestions))
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].MatchPercentage > suggestions[i-1].MatchPercentage {
			t.Fatalf("suggestions not sorted by match percentage")
		}
	}
	for _, s := range suggestions {
		if s.MatchPercentage < 0 || s.MatchPercentage > 100 {
			t.Fatalf("match percentage out of range: %d", s.MatchPercentage)
		}
		if s.DurationMin <= 0 {
			t.Fatalf("expected positive duration, got %d", s.DurationMin)
		}
	}
}

func TestSuggestRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	cat := loadCatalog(t)

	if _, err := activity.Suggest(cat, 0, testProfile(), nil); err == nil {
		t.Fatalf("expected error for zero target calories")
	}
	p := testProfile()
	p.WeightKg = 0
	if _, err := activity.Suggest(cat, 300, p, nil); err == nil {
		t.Fatalf("expected error for zero weight")
	}
}

func TestSuggestCategoryAndIntensityFilters(t *testing.T) {
	t.Parallel()
	cat := loadCatalog(t)

	suggestions, err := activity.Suggest(cat, 200, testProfile(), &activity.Preferences{
		Categories:  []string{"cardio"},
		Intensities: []string{model.IntensityLow},
	})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) == 0 {
		t.Fatalf("expected low-intensity cardio suggestions")
	}
	for _, s := range suggestions {
		if s.Activity.Category != "cardio" || s.Activity.Intensity != model.IntensityLow {
			t.Fatalf("filter leaked activity %s (%s/%s)", s.Activity.ID, s.Activity.Category, s.Activity.Intensity)
		}
	}
}

func TestSuggestMaxDurationCutoff(t *testing.T) {
	t.Parallel()
	cat := loadCatalog(t)

	suggestions, err := activity.Suggest(cat, 500, testProfile(), &activity.Preferences{MaxDurationMin: 45})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	for _, s := range suggestions {
		if s.DurationMin > 45 {
			t.Fatalf("activity %s exceeds max duration: %d", s.Activity.ID, s.DurationMin)
		}
	}
}

func TestDurationMonotonicInTarget(t *testing.T) {
	t.Parallel()
	cat := loadCatalog(t)
	profile := testProfile()

	durations := map[string]int{}
	for _, target := range []int{100, 200, 400, 800} {
		suggestions, err := activity.Suggest(cat, target, profile, nil)
		if err != nil {
			t.Fatalf("suggest %d: %v", target, err)
		}
		for _, s := range suggestions {
			if prev, ok := durations[s.Activity.ID]; ok && s.DurationMin < prev {
				t.Fatalf("duration for %s decreased from %d to %d as target rose", s.Activity.ID, prev, s.DurationMin)
			}
			durations[s.Activity.ID] = s.DurationMin
		}
	}
}

func TestWeightScalingHalvesDuration(t *testing.T) {
	t.Parallel()
	cat := loadCatalog(t)

	light := testProfile()
	light.WeightKg = 70
	heavy := testProfile()
	heavy.WeightKg = 140

	// Pick a target that divides evenly for the jogging rate (8 kcal/min at
	// 70kg, 16 at 140kg) so ceil rounding stays exact.
	lightOut, err := activity.Suggest(cat, 480, light, &activity.Preferences{Categories: []string{"cardio"}})
	if err != nil {
		t.Fatalf("suggest light: %v", err)
	}
	heavyOut, err := activity.Suggest(cat, 480, heavy, &activity.Preferences{Categories: []string{"cardio"}})
	if err != nil {
		t.Fatalf("suggest heavy: %v", err)
	}

	lightJog := findSuggestion(t, lightOut, "jogging")
	heavyJog := findSuggestion(t, heavyOut, "jogging")
	if lightJog.DurationMin != 60 || heavyJog.DurationMin != 30 {
		t.Fatalf("expected 60/30 min, got %d/%d", lightJog.DurationMin, heavyJog.DurationMin)
	}
}

func findSuggestion(t *testing.T, list []model.ActivitySuggestion, id string) model.ActivitySuggestion {
	t.Helper()
	for _, s := range list {
		if s.Activity.ID == id {
			return s
		}
	}
	t.Fatalf("suggestion %s not found", id)
	return model.ActivitySuggestion{}
}

func TestQuickSuggestions(t *testing.T) {
	t.Parallel()
	cat := loadCatalog(t)

	quick, err := activity.QuickSuggestions(cat, testProfile())
	if err != nil {
		t.Fatalf("quick suggestions: %v", err)
	}
	for _, key := range []string{"100cal", "200cal", "300cal", "500cal"} {
		suggestions, ok := quick[key]
		if !ok {
			t.Fatalf("missing quick suggestions for %s", key)
		}
		if len(suggestions) == 0 || len(suggestions) > 3 {
			t.Fatalf("expected 1-3 suggestions for %s, got %d", key, len(suggestions))
		}
		for _, s := range suggestions {
			if s.DurationMin > 60 {
				t.Fatalf("quick suggestion %s exceeds 60 min", s.Activity.ID)
			}
			switch s.Activity.Category {
			case "cardio", "fitness", "sports":
			default:
				t.Fatalf("quick suggestion outside allowed categories: %s", s.Activity.Category)
			}
		}
	}
}
