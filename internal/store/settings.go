package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/calolens/calo-cli/internal/model"
)

const (
	settingLanguage      = "language"
	settingTheme         = "theme"
	settingNotifications = "notifications"
	settingAutoAnalysis  = "auto_analysis"
	settingSaveToHistory = "save_to_history"
	settingShareData     = "share_data"
)

// DefaultSettings returns the settings applied before the user changes
// anything.
func DefaultSettings() model.AppSettings {
	return model.AppSettings{
		Language:      "en",
		Theme:         "system",
		Notifications: true,
		AutoAnalysis:  true,
		SaveToHistory: true,
		ShareData:     false,
	}
}

// GetSettings returns the stored settings merged over the defaults, so a
// key that was never written still reads as its default.
func GetSettings(db *sql.DB) (model.AppSettings, error) {
	return getSettings(db)
}

func getSettings(q dbtx) (model.AppSettings, error) {
	s := DefaultSettings()
	rows, err := q.Query(`SELECT key, value FROM app_settings`)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return s, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case settingLanguage:
			s.Language = value
		case settingTheme:
			s.Theme = value
		case settingNotifications:
			s.Notifications = value == "true"
		case settingAutoAnalysis:
			s.AutoAnalysis = value == "true"
		case settingSaveToHistory:
			s.SaveToHistory = value == "true"
		case settingShareData:
			s.ShareData = value == "true"
		}
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("iterate settings: %w", err)
	}
	return s, nil
}

// SettingsUpdate carries a partial settings change; nil fields keep their
// stored value.
type SettingsUpdate struct {
	Language      *string
	Theme         *string
	Notifications *bool
	AutoAnalysis  *bool
	SaveToHistory *bool
	ShareData     *bool
}

var validLanguages = map[string]bool{"en": true, "ar": true}
var validThemes = map[string]bool{"light": true, "dark": true, "system": true}

// UpdateSettings merges a partial update into the stored settings and
// returns the result.
func UpdateSettings(db *sql.DB, in SettingsUpdate) (model.AppSettings, error) {
	s, err := GetSettings(db)
	if err != nil {
		return s, err
	}
	if in.Language != nil {
		if !validLanguages[*in.Language] {
			return s, fmt.Errorf("invalid language %q (expected en or ar)", *in.Language)
		}
		s.Language = *in.Language
	}
	if in.Theme != nil {
		if !validThemes[*in.Theme] {
			return s, fmt.Errorf("invalid theme %q (expected light, dark or system)", *in.Theme)
		}
		s.Theme = *in.Theme
	}
	if in.Notifications != nil {
		s.Notifications = *in.Notifications
	}
	if in.AutoAnalysis != nil {
		s.AutoAnalysis = *in.AutoAnalysis
	}
	if in.SaveToHistory != nil {
		s.SaveToHistory = *in.SaveToHistory
	}
	if in.ShareData != nil {
		s.ShareData = *in.ShareData
	}
	if err := saveSettings(db, s); err != nil {
		return s, err
	}
	return s, nil
}

// SaveSettings writes a complete settings record, as used by import.
func SaveSettings(db *sql.DB, s model.AppSettings) error {
	if !validLanguages[s.Language] {
		return fmt.Errorf("invalid language %q (expected en or ar)", s.Language)
	}
	if !validThemes[s.Theme] {
		return fmt.Errorf("invalid theme %q (expected light, dark or system)", s.Theme)
	}
	return saveSettings(db, s)
}

func saveSettings(q dbtx, s model.AppSettings) error {
	pairs := []struct {
		key   string
		value string
	}{
		{settingLanguage, s.Language},
		{settingTheme, s.Theme},
		{settingNotifications, strconv.FormatBool(s.Notifications)},
		{settingAutoAnalysis, strconv.FormatBool(s.AutoAnalysis)},
		{settingSaveToHistory, strconv.FormatBool(s.SaveToHistory)},
		{settingShareData, strconv.FormatBool(s.ShareData)},
	}
	for _, kv := range pairs {
		_, err := q.Exec(`
INSERT INTO app_settings(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP
`, kv.key, kv.value)
		if err != nil {
			return fmt.Errorf("save setting %s: %w", kv.key, err)
		}
	}
	return nil
}
