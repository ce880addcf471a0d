package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/calolens/calo-cli/internal/model"
)

var validActivityLevels = map[string]bool{
	model.ActivitySedentary:        true,
	model.ActivityLightlyActive:    true,
	model.ActivityModeratelyActive: true,
	model.ActivityVeryActive:       true,
}

var validGoals = map[string]bool{
	model.GoalLose:     true,
	model.GoalMaintain: true,
	model.GoalGain:     true,
}

func validateProfile(p model.UserProfile) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive, got %d", p.Age)
	}
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		return fmt.Errorf("invalid gender %q", p.Gender)
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight must be positive, got %g", p.WeightKg)
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be positive, got %g", p.HeightCm)
	}
	if !validActivityLevels[p.ActivityLevel] {
		return fmt.Errorf("invalid activity level %q", p.ActivityLevel)
	}
	if !validGoals[p.Goal] {
		return fmt.Errorf("invalid goal %q", p.Goal)
	}
	return nil
}

// SaveProfile writes the single profile slot, replacing any previous profile.
func SaveProfile(db *sql.DB, p model.UserProfile) error {
	if err := validateProfile(p); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = "en"
	}
	return saveProfile(db, p)
}

func saveProfile(q dbtx, p model.UserProfile) error {
	_, err := q.Exec(`
INSERT INTO user_profile(slot, id, name, age, gender, weight_kg, height_cm, activity_level, goal, daily_calorie_goal, preferred_language, created_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
  id=excluded.id,
  name=excluded.name,
  age=excluded.age,
  gender=excluded.gender,
  weight_kg=excluded.weight_kg,
  height_cm=excluded.height_cm,
  activity_level=excluded.activity_level,
  goal=excluded.goal,
  daily_calorie_goal=excluded.daily_calorie_goal,
  preferred_language=excluded.preferred_language,
  created_at=excluded.created_at
`, p.ID, p.Name, p.Age, p.Gender, p.WeightKg, p.HeightCm, p.ActivityLevel, p.Goal, p.DailyCalorieGoal, p.PreferredLanguage, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile, or nil when none has been created.
func GetProfile(db *sql.DB) (*model.UserProfile, error) {
	return getProfile(db)
}

func getProfile(q dbtx) (*model.UserProfile, error) {
	var p model.UserProfile
	var createdAt string
	err := q.QueryRow(`
SELECT id, name, age, gender, weight_kg, height_cm, activity_level, goal, daily_calorie_goal, preferred_language, created_at
FROM user_profile
WHERE slot = 1
`).Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.WeightKg, &p.HeightCm, &p.ActivityLevel, &p.Goal, &p.DailyCalorieGoal, &p.PreferredLanguage, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse profile created_at: %w", err)
	}
	return &p, nil
}

// ProfileUpdate carries a partial update; nil fields keep their stored value.
type ProfileUpdate struct {
	Name              *string
	Age               *int
	Gender            *string
	WeightKg          *float64
	HeightCm          *float64
	ActivityLevel     *string
	Goal              *string
	DailyCalorieGoal  *int
	PreferredLanguage *string
}

// UpdateProfile applies a partial update to the stored profile and returns
// the merged result. The profile id and creation time are immutable.
func UpdateProfile(db *sql.DB, in ProfileUpdate) (*model.UserProfile, error) {
	p, err := GetProfile(db)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no profile exists; create one first")
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.WeightKg != nil {
		p.WeightKg = *in.WeightKg
	}
	if in.HeightCm != nil {
		p.HeightCm = *in.HeightCm
	}
	if in.ActivityLevel != nil {
		p.ActivityLevel = *in.ActivityLevel
	}
	if in.Goal != nil {
		p.Goal = *in.Goal
	}
	if in.DailyCalorieGoal != nil {
		p.DailyCalorieGoal = *in.DailyCalorieGoal
	}
	if in.PreferredLanguage != nil {
		p.PreferredLanguage = *in.PreferredLanguage
	}

	if err := SaveProfile(db, *p); err != nil {
		return nil, err
	}
	return p, nil
}
