package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// dbtx lets the store helpers run against either a *sql.DB or an open
// transaction, so import can replace sections atomically.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

const dateLayout = "2006-01-02"

func parseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	t, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

// dayBounds returns [start, end) RFC3339 bounds for a calendar day.
func dayBounds(date string) (string, string, error) {
	start, err := parseDate(date)
	if err != nil {
		return "", "", err
	}
	end := start.AddDate(0, 0, 1)
	return start.Format(time.RFC3339), end.Format(time.RFC3339), nil
}

func dateOf(t time.Time) string {
	return t.Format(dateLayout)
}
