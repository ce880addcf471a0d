package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/calolens/calo-cli/internal/model"
)

// ExportData is the JSON document produced by export and consumed by import.
type ExportData struct {
	Profile       *model.UserProfile    `json:"profile,omitempty"`
	MealEntries   []model.MealEntry     `json:"meal_entries"`
	DailyProgress []model.DailyProgress `json:"daily_progress"`
	Settings      *model.AppSettings    `json:"settings,omitempty"`
	ExportedAt    time.Time             `json:"exported_at"`
}

// importDoc mirrors ExportData but distinguishes an absent section from an
// empty one, so a partial document only touches the sections it carries.
type importDoc struct {
	Profile       *model.UserProfile     `json:"profile"`
	MealEntries   *[]model.MealEntry     `json:"meal_entries"`
	DailyProgress *[]model.DailyProgress `json:"daily_progress"`
	Settings      *model.AppSettings     `json:"settings"`
}

// ExportSnapshot captures the full store as a single document.
func ExportSnapshot(db *sql.DB, now time.Time) (*ExportData, error) {
	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}
	entries, err := MealEntries(db)
	if err != nil {
		return nil, err
	}
	days, err := AllDailyProgress(db)
	if err != nil {
		return nil, err
	}
	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Profile:       profile,
		MealEntries:   entries,
		DailyProgress: days,
		Settings:      &settings,
		ExportedAt:    now,
	}, nil
}

// ImportSnapshot replaces each section present in the document with its
// imported counterpart, inside a single transaction. A document that fails
// validation leaves the store untouched.
func ImportSnapshot(db *sql.DB, raw []byte) error {
	var doc importDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode import document: %w", err)
	}

	if doc.Profile != nil {
		if err := validateProfile(*doc.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	if doc.MealEntries != nil {
		for _, e := range *doc.MealEntries {
			if err := validateMealEntry(e); err != nil {
				return fmt.Errorf("import meal entry: %w", err)
			}
		}
	}
	if doc.DailyProgress != nil {
		for _, p := range *doc.DailyProgress {
			if _, err := parseDate(p.Date); err != nil {
				return fmt.Errorf("import daily progress: %w", err)
			}
		}
	}
	if doc.Settings != nil {
		if !validLanguages[doc.Settings.Language] {
			return fmt.Errorf("import settings: invalid language %q", doc.Settings.Language)
		}
		if !validThemes[doc.Settings.Theme] {
			return fmt.Errorf("import settings: invalid theme %q", doc.Settings.Theme)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if doc.Profile != nil {
		if _, err := tx.Exec(`DELETE FROM user_profile`); err != nil {
			return fmt.Errorf("replace profile: %w", err)
		}
		if err := saveProfile(tx, *doc.Profile); err != nil {
			return err
		}
	}
	if doc.MealEntries != nil {
		if _, err := tx.Exec(`DELETE FROM meal_entries`); err != nil {
			return fmt.Errorf("replace meal entries: %w", err)
		}
		for _, e := range *doc.MealEntries {
			e.TotalNutrition = mealTotals(e)
			if err := insertMealEntry(tx, e); err != nil {
				return err
			}
		}
	}
	if doc.DailyProgress != nil {
		if _, err := tx.Exec(`DELETE FROM daily_progress`); err != nil {
			return fmt.Errorf("replace daily progress: %w", err)
		}
		for _, p := range *doc.DailyProgress {
			if err := upsertDailyProgress(tx, p); err != nil {
				return err
			}
		}
	}
	if doc.Settings != nil {
		if err := saveSettings(tx, *doc.Settings); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

// ClearAll wipes every stored record. Settings revert to their defaults.
func ClearAll(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"meal_entries", "daily_progress", "user_profile", "app_settings"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear tx: %w", err)
	}
	return nil
}
