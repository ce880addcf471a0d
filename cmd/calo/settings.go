package calo

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage app settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			s, err := store.GetSettings(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Language: %s\n", s.Language)
			fmt.Fprintf(out, "Theme: %s\n", s.Theme)
			fmt.Fprintf(out, "Notifications: %t\n", s.Notifications)
			fmt.Fprintf(out, "Auto analysis: %t\n", s.AutoAnalysis)
			fmt.Fprintf(out, "Save to history: %t\n", s.SaveToHistory)
			fmt.Fprintf(out, "Share data: %t\n", s.ShareData)
			return nil
		})
	},
}

var (
	settingsLanguage      string
	settingsTheme         string
	settingsNotifications bool
	settingsAutoAnalysis  bool
	settingsSaveHistory   bool
	settingsShareData     bool
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := store.SettingsUpdate{}
		flags := cmd.Flags()
		if flags.Changed("language") {
			in.Language = &settingsLanguage
		}
		if flags.Changed("theme") {
			in.Theme = &settingsTheme
		}
		if flags.Changed("notifications") {
			in.Notifications = &settingsNotifications
		}
		if flags.Changed("auto-analysis") {
			in.AutoAnalysis = &settingsAutoAnalysis
		}
		if flags.Changed("save-to-history") {
			in.SaveToHistory = &settingsSaveHistory
		}
		if flags.Changed("share-data") {
			in.ShareData = &settingsShareData
		}
		if in == (store.SettingsUpdate{}) {
			return fmt.Errorf("no settings given; see 'calo settings set --help'")
		}

		return withDB(func(sqldb *sql.DB) error {
			s, err := store.UpdateSettings(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings updated (language %s, theme %s)\n", s.Language, s.Theme)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	settingsSetCmd.Flags().StringVar(&settingsLanguage, "language", "", "Language: en or ar")
	settingsSetCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme: light, dark, or system")
	settingsSetCmd.Flags().BoolVar(&settingsNotifications, "notifications", true, "Enable notifications")
	settingsSetCmd.Flags().BoolVar(&settingsAutoAnalysis, "auto-analysis", true, "Analyze photos automatically")
	settingsSetCmd.Flags().BoolVar(&settingsSaveHistory, "save-to-history", true, "Save analyzed meals to history")
	settingsSetCmd.Flags().BoolVar(&settingsShareData, "share-data", false, "Share anonymized data")
}
