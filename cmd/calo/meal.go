package calo

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/store"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage logged meals",
}

var (
	mealListDate string
	mealListFrom string
	mealListTo   string
)

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			var entries []model.MealEntry
			var err error
			switch {
			case mealListFrom != "" || mealListTo != "":
				if mealListFrom == "" || mealListTo == "" {
					return fmt.Errorf("both --from and --to are required for a range")
				}
				entries, err = store.MealEntriesByRange(sqldb, mealListFrom, mealListTo)
			case mealListDate != "":
				entries, err = store.MealEntriesByDate(sqldb, mealListDate)
			default:
				entries, err = store.MealEntries(sqldb)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tTYPE\tFOODS\tKCAL\tNOTES")
			for _, e := range entries {
				names := make([]string, 0, len(e.Foods))
				for _, f := range e.Foods {
					names = append(names, f.Name.EN)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d\t%s\n",
					e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), e.MealType,
					strings.Join(names, ", "), e.TotalNutrition.Calories, e.Notes)
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := store.DeleteMealEntry(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

var mealNoteText string

var mealNoteCmd = &cobra.Command{
	Use:   "note <id>",
	Short: "Attach a note to a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := store.MealEntries(sqldb)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if e.ID != args[0] {
					continue
				}
				e.Notes = mealNoteText
				if err := store.UpdateMealEntry(sqldb, e); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated note on meal %s\n", e.ID)
				return nil
			}
			return fmt.Errorf("meal entry %s not found", args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealListCmd, mealDeleteCmd, mealNoteCmd)

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Filter by date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealListFrom, "from", "", "Range start YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealListTo, "to", "", "Range end YYYY-MM-DD (inclusive)")

	mealNoteCmd.Flags().StringVar(&mealNoteText, "text", "", "Note text")
	_ = mealNoteCmd.MarkFlagRequired("text")
}
