package calo

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/calolens/calo-cli/internal/app"
	"github.com/calolens/calo-cli/internal/catalog"
	"github.com/calolens/calo-cli/internal/db"
	"github.com/calolens/calo-cli/internal/model"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := os.Getenv("CALO_DB"); env != "" {
		return env, nil
	}
	return app.DefaultDBPath()
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func parseDateOrToday(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

func printNutrition(w io.Writer, n model.NutritionInfo) {
	fmt.Fprintf(w, "Calories: %d kcal\n", n.Calories)
	fmt.Fprintf(w, "Protein: %.1f g\n", n.ProteinG)
	fmt.Fprintf(w, "Carbs: %.1f g\n", n.CarbsG)
	fmt.Fprintf(w, "Fat: %.1f g\n", n.FatG)
	fmt.Fprintf(w, "Fiber: %.1f g\n", n.FiberG)
	fmt.Fprintf(w, "Sugar: %.1f g\n", n.SugarG)
	fmt.Fprintf(w, "Sodium: %d mg\n", n.SodiumMg)
}
