package model

import "time"

// LocalizedString pairs the English and Arabic renderings of a catalog name.
type LocalizedString struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// NutritionInfo holds a computed nutrition record. Gram-level macros carry
// one fractional digit; calories and sodium are whole numbers.
type NutritionInfo struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
	SodiumMg int     `json:"sodium_mg"`
}

// NutritionPer100g is the catalog baseline a portion is scaled from.
type NutritionPer100g struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
	SodiumMg float64 `json:"sodium_mg"`
}

type Portion struct {
	Name  LocalizedString `json:"name"`
	Grams float64         `json:"grams"`
}

type FoodItem struct {
	ID             string           `json:"id"`
	Name           LocalizedString  `json:"name"`
	Category       string           `json:"category"`
	Per100g        NutritionPer100g `json:"per_100g"`
	CommonPortions []Portion        `json:"common_portions"`
}

// BoundingBox is a normalized image region; all fields are in [0,1].
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type RecognizedFood struct {
	FoodID         string          `json:"food_id"`
	Name           LocalizedString `json:"name"`
	Confidence     float64         `json:"confidence"`
	EstimatedGrams float64         `json:"estimated_grams"`
	Nutrition      NutritionInfo   `json:"nutrition"`
	BoundingBox    *BoundingBox    `json:"bounding_box,omitempty"`
}

type FoodAnalysisResult struct {
	Foods          []RecognizedFood `json:"foods"`
	TotalNutrition NutritionInfo    `json:"total_nutrition"`
	Confidence     float64          `json:"confidence"`
	ProcessTimeMs  int              `json:"process_time_ms"`
}

type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceLow      ConfidenceLevel = "low"
)

// AnalysisState is one staged update of a progressive analysis run.
type AnalysisState struct {
	Stage     string          `json:"stage"`
	Progress  int             `json:"progress"`
	Message   LocalizedString `json:"message"`
	Analyzing bool            `json:"analyzing"`
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

type UserProfile struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	WeightKg          float64   `json:"weight_kg"`
	HeightCm          float64   `json:"height_cm"`
	ActivityLevel     string    `json:"activity_level"`
	Goal              string    `json:"goal"`
	DailyCalorieGoal  int       `json:"daily_calorie_goal"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
}

// MealTypes lists the valid meal types in their canonical order. The order
// doubles as the tie-break rule for most-logged-meal-type statistics.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

type MealEntry struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	Timestamp      time.Time        `json:"timestamp"`
	MealType       string           `json:"meal_type"`
	Foods          []RecognizedFood `json:"foods"`
	TotalNutrition NutritionInfo    `json:"total_nutrition"`
	ImageRef       string           `json:"image_ref,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// DailyProgress is the per-calendar-day snapshot of consumption vs. goal.
// Date is an ISO calendar day (YYYY-MM-DD).
type DailyProgress struct {
	Date             string        `json:"date"`
	CaloriesConsumed int           `json:"calories_consumed"`
	CaloriesGoal     int           `json:"calories_goal"`
	Nutrition        NutritionInfo `json:"nutrition"`
	Meals            []MealEntry   `json:"meals"`
}

type AppSettings struct {
	Language      string `json:"language"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	AutoAnalysis  bool   `json:"auto_analysis"`
	SaveToHistory bool   `json:"save_to_history"`
	ShareData     bool   `json:"share_data"`
}

const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

type Activity struct {
	ID          string          `json:"id"`
	Name        LocalizedString `json:"name"`
	Description LocalizedString `json:"description"`
	Category    string          `json:"category"`
	// CaloriesPerMinute is the burn rate baseline for a 70 kg person.
	CaloriesPerMinute float64 `json:"calories_per_minute"`
	Intensity         string  `json:"intensity"`
}

type ActivitySuggestion struct {
	Activity        Activity `json:"activity"`
	DurationMin     int      `json:"duration_min"`
	TotalCalories   int      `json:"total_calories"`
	MatchPercentage int      `json:"match_percentage"`
}

type BarcodeProduct struct {
	Barcode         string          `json:"barcode"`
	Name            LocalizedString `json:"name"`
	Brand           string          `json:"brand"`
	Nutrition       NutritionInfo   `json:"nutrition"`
	ServingSize     float64         `json:"serving_size"`
	ServingSizeUnit string          `json:"serving_size_unit"`
}

type MacroRange struct {
	MinG int `json:"min_g"`
	MaxG int `json:"max_g"`
}

type NutritionGoals struct {
	Calories int        `json:"calories"`
	Protein  MacroRange `json:"protein"`
	Carbs    MacroRange `json:"carbs"`
	Fat      MacroRange `json:"fat"`
	FiberG   int        `json:"fiber_g"`
	SodiumMg int        `json:"sodium_mg"`
}

// GoalProgress holds per-nutrient progress as whole percentages of the
// daily goal. Values above 100 are not clamped.
type GoalProgress struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
	Sodium   int `json:"sodium"`
}
