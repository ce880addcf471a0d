package calo

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func timeAtHour(hour int) time.Time {
	return time.Date(2026, 2, 10, hour, 0, 0, 0, time.Local)
}

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calo.db")
	for i := 0; i < 2; i++ {
		buf := &bytes.Buffer{}
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs([]string{"--db", path, "init"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestDefaultMealType(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{8, "breakfast"},
		{12, "lunch"},
		{19, "dinner"},
		{23, "snack"},
	}
	for _, tc := range cases {
		got := defaultMealType(timeAtHour(tc.hour))
		if got != tc.want {
			t.Errorf("hour %d: expected %s, got %s", tc.hour, tc.want, got)
		}
	}
}
