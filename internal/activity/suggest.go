package activity

import (
	"fmt"
	"math"
	"sort"

	"github.com/calolens/calo-cli/internal/catalog"
	"github.com/calolens/calo-cli/internal/model"
)

// Rates in the activity catalog are calibrated for a 70 kg person.
const baselineWeightKg = 70

const maxSuggestions = 8

// Preferences narrow the candidate set before scoring. Zero values mean
// no restriction.
type Preferences struct {
	Categories     []string
	Intensities    []string
	MaxDurationMin int
}

var categoryPoints = map[string]float64{
	"sports":   25,
	"dance":    22,
	"cardio":   20,
	"fitness":  20,
	"strength": 18,
	"daily":    15,
}

var preferredIntensities = map[string][]string{
	model.ActivitySedentary:        {model.IntensityLow},
	model.ActivityLightlyActive:    {model.IntensityLow, model.IntensityMedium},
	model.ActivityModeratelyActive: {model.IntensityMedium},
	model.ActivityVeryActive:       {model.IntensityMedium, model.IntensityHigh},
}

// Suggest scores every catalog activity against the calorie target and
// returns the best matches, at most eight, sorted by match percentage.
// Ties keep catalog order.
func Suggest(cat *catalog.Catalog, targetCalories int, profile model.UserProfile, prefs *Preferences) ([]model.ActivitySuggestion, error) {
	if targetCalories <= 0 {
		return nil, fmt.Errorf("target calories must be > 0")
	}
	if profile.WeightKg <= 0 {
		return nil, fmt.Errorf("profile weight must be > 0")
	}

	suggestions := make([]model.ActivitySuggestion, 0)
	for _, act := range cat.Activities {
		if prefs != nil && !matchesFilter(act, prefs) {
			continue
		}

		adjustedRate := act.CaloriesPerMinute * profile.WeightKg / baselineWeightKg
		duration := int(math.Ceil(float64(targetCalories) / adjustedRate))
		if prefs != nil && prefs.MaxDurationMin > 0 && duration > prefs.MaxDurationMin {
			continue
		}

		suggestions = append(suggestions, model.ActivitySuggestion{
			Activity:        act,
			DurationMin:     duration,
			TotalCalories:   int(math.Round(adjustedRate * float64(duration))),
			MatchPercentage: matchPercentage(act, duration, profile, targetCalories),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].MatchPercentage > suggestions[j].MatchPercentage
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

func matchesFilter(act model.Activity, prefs *Preferences) bool {
	if len(prefs.Categories) > 0 && !contains(prefs.Categories, act.Category) {
		return false
	}
	if len(prefs.Intensities) > 0 && !contains(prefs.Intensities, act.Intensity) {
		return false
	}
	return true
}

// matchPercentage averages four factor scores and rescales the mean to a
// 0-100 percentage, clamped at 100.
func matchPercentage(act model.Activity, duration int, profile model.UserProfile, targetCalories int) int {
	var score float64
	factors := 0

	// Duration factor: moderate sessions score best.
	switch {
	case duration >= 10 && duration <= 45:
		score += 30
	case duration >= 5 && duration <= 60:
		score += 20
	default:
		score += 10
	}
	factors++

	if contains(preferredIntensities[profile.ActivityLevel], act.Intensity) {
		score += 25
	} else {
		score += 10
	}
	factors++

	// Calorie accuracy uses the unadjusted catalog rate.
	accuracy := math.Abs(float64(targetCalories) - act.CaloriesPerMinute*float64(duration))
	switch {
	case accuracy <= float64(targetCalories)*0.1:
		score += 25
	case accuracy <= float64(targetCalories)*0.2:
		score += 20
	default:
		score += 15
	}
	factors++

	if pts, ok := categoryPoints[act.Category]; ok {
		score += pts
	} else {
		score += 15
	}
	factors++

	pct := int(math.Round(score / float64(factors) * 4))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// QuickCalorieAmounts are the preset targets offered on the dashboard.
var QuickCalorieAmounts = []int{100, 200, 300, 500}

// QuickSuggestions computes the top three burn options for each preset
// calorie amount, limited to an hour of cardio, fitness, or sports.
func QuickSuggestions(cat *catalog.Catalog, profile model.UserProfile) (map[string][]model.ActivitySuggestion, error) {
	prefs := &Preferences{
		Categories:     []string{"cardio", "fitness", "sports"},
		MaxDurationMin: 60,
	}

	out := make(map[string][]model.ActivitySuggestion, len(QuickCalorieAmounts))
	for _, calories := range QuickCalorieAmounts {
		suggestions, err := Suggest(cat, calories, profile, prefs)
		if err != nil {
			return nil, err
		}
		if len(suggestions) > 3 {
			suggestions = suggestions[:3]
		}
		out[fmt.Sprintf("%dcal", calories)] = suggestions
	}
	return out, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
