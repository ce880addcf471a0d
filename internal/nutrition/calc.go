package nutrition

import (
	"fmt"
	"math"

	"github.com/calolens/calo-cli/internal/model"
)

// Activity level multipliers applied to BMR when deriving TDEE.
var activityMultipliers = map[string]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
}

// round rounds half away from zero; round1 keeps one fractional digit.
func round(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Scale converts a food's per-100g baseline to the nutrition of a portion.
func Scale(food model.FoodItem, grams float64) (model.NutritionInfo, error) {
	if grams < 0 {
		return model.NutritionInfo{}, fmt.Errorf("grams must be >= 0, got %.1f", grams)
	}
	multiplier := grams / 100
	return model.NutritionInfo{
		Calories: round(food.Per100g.Calories * multiplier),
		ProteinG: round1(food.Per100g.ProteinG * multiplier),
		CarbsG:   round1(food.Per100g.CarbsG * multiplier),
		FatG:     round1(food.Per100g.FatG * multiplier),
		FiberG:   round1(food.Per100g.FiberG * multiplier),
		SugarG:   round1(food.Per100g.SugarG * multiplier),
		SodiumMg: round(food.Per100g.SodiumMg * multiplier),
	}, nil
}

// Sum adds nutrition records component-wise. The result is independent of
// the order of the list; an empty list yields an all-zero record.
func Sum(list []model.NutritionInfo) model.NutritionInfo {
	var total model.NutritionInfo
	var protein, carbs, fat, fiber, sugar float64
	for _, n := range list {
		total.Calories += n.Calories
		protein += n.ProteinG
		carbs += n.CarbsG
		fat += n.FatG
		fiber += n.FiberG
		sugar += n.SugarG
		total.SodiumMg += n.SodiumMg
	}
	total.ProteinG = round1(protein)
	total.CarbsG = round1(carbs)
	total.FatG = round1(fat)
	total.FiberG = round1(fiber)
	total.SugarG = round1(sugar)
	return total
}

func validateProfile(p model.UserProfile) error {
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		return fmt.Errorf("invalid gender %q", p.Gender)
	}
	if p.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	return nil
}

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation.
func BMR(p model.UserProfile) (float64, error) {
	if err := validateProfile(p); err != nil {
		return 0, err
	}
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, nil
}

// TDEE scales BMR by the profile's activity level multiplier.
func TDEE(p model.UserProfile) (int, error) {
	bmr, err := BMR(p)
	if err != nil {
		return 0, err
	}
	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		return 0, fmt.Errorf("invalid activity level %q", p.ActivityLevel)
	}
	return round(bmr * mult), nil
}

// CalorieGoal is TDEE shifted by 500 kcal toward the profile's goal,
// roughly one pound per week of weight change.
func CalorieGoal(p model.UserProfile) (int, error) {
	tdee, err := TDEE(p)
	if err != nil {
		return 0, err
	}
	switch p.Goal {
	case model.GoalLose:
		return tdee - 500, nil
	case model.GoalGain:
		return tdee + 500, nil
	case model.GoalMaintain:
		return tdee, nil
	default:
		return 0, fmt.Errorf("invalid goal %q", p.Goal)
	}
}

// MacroGoals derives the daily macro targets from a calorie goal using a
// 25/45/30 protein/carb/fat split with a ±20% band per macro, 14g of fiber
// per 1000 kcal, and the fixed 2300mg sodium ceiling.
func MacroGoals(dailyCalories int) model.NutritionGoals {
	proteinCal := float64(dailyCalories) * 0.25
	carbCal := float64(dailyCalories) * 0.45
	fatCal := float64(dailyCalories) * 0.30

	return model.NutritionGoals{
		Calories: dailyCalories,
		Protein: model.MacroRange{
			MinG: round(proteinCal * 0.8 / 4),
			MaxG: round(proteinCal * 1.2 / 4),
		},
		Carbs: model.MacroRange{
			MinG: round(carbCal * 0.8 / 4),
			MaxG: round(carbCal * 1.2 / 4),
		},
		Fat: model.MacroRange{
			MinG: round(fatCal * 0.8 / 9),
			MaxG: round(fatCal * 1.2 / 9),
		},
		FiberG:   round(float64(dailyCalories) / 1000 * 14),
		SodiumMg: 2300,
	}
}

func percentOf(consumed, target float64) int {
	if target <= 0 {
		return 0
	}
	return round(consumed / target * 100)
}

func midpoint(r model.MacroRange) float64 {
	return float64(r.MinG+r.MaxG) / 2
}

// GoalProgress reports consumption against goals as whole percentages.
// Ranged macros divide by the midpoint of their band; percentages above
// 100 are not clamped.
func GoalProgress(consumed model.NutritionInfo, goals model.NutritionGoals) model.GoalProgress {
	return model.GoalProgress{
		Calories: percentOf(float64(consumed.Calories), float64(goals.Calories)),
		Protein:  percentOf(consumed.ProteinG, midpoint(goals.Protein)),
		Carbs:    percentOf(consumed.CarbsG, midpoint(goals.Carbs)),
		Fat:      percentOf(consumed.FatG, midpoint(goals.Fat)),
		Fiber:    percentOf(consumed.FiberG, float64(goals.FiberG)),
		Sodium:   percentOf(float64(consumed.SodiumMg), float64(goals.SodiumMg)),
	}
}

type idealBand struct {
	min int
	max int
}

// QualityScore rates a day's nutrition 0-100: full marks per component
// inside its ideal progress band, proportional decay outside it, and the
// unweighted mean over the six components.
func QualityScore(consumed model.NutritionInfo, goals model.NutritionGoals) int {
	progress := GoalProgress(consumed, goals)

	components := []struct {
		value int
		band  idealBand
	}{
		{progress.Calories, idealBand{90, 110}},
		{progress.Protein, idealBand{80, 120}},
		{progress.Carbs, idealBand{80, 120}},
		{progress.Fat, idealBand{80, 120}},
		{progress.Fiber, idealBand{100, 150}},
	}

	var total float64
	for _, c := range components {
		total += bandScore(c.value, c.band)
	}
	total += sodiumScore(progress.Sodium)

	return round(total / 6)
}

func bandScore(value int, band idealBand) float64 {
	switch {
	case value >= band.min && value <= band.max:
		return 100
	case value < band.min:
		return math.Max(0, float64(value)/float64(band.min)*100)
	default:
		return math.Max(0, 100-float64(value-band.max)/float64(band.max)*50)
	}
}

// Sodium scores full up to 80% of the ceiling and decays by the excess.
func sodiumScore(value int) float64 {
	if value <= 80 {
		return 100
	}
	return math.Max(0, float64(100-(value-80)))
}

// CaloriesToBurn is the surplus over the daily goal, floored at zero.
func CaloriesToBurn(consumed, goal int) int {
	if consumed <= goal {
		return 0
	}
	return consumed - goal
}

// ExerciseCalories estimates calories burned as MET x weight (kg) x hours.
func ExerciseCalories(met, weightKg float64, durationMin int) int {
	return round(met * weightKg * float64(durationMin) / 60)
}

// WaterIntake recommends daily water in ml: 1ml per calorie, 2L minimum.
func WaterIntake(dailyCalories int) int {
	if dailyCalories < 2000 {
		return 2000
	}
	return dailyCalories
}
