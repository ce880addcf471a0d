package store_test

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/calolens/calo-cli/internal/store"
)

func TestNewIDDeterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	a := store.NewID(now, rand.New(rand.NewSource(1)))
	b := store.NewID(now, rand.New(rand.NewSource(1)))
	if a != b {
		t.Fatalf("same clock and seed produced different ids: %s vs %s", a, b)
	}
	c := store.NewID(now, rand.New(rand.NewSource(2)))
	if a == c {
		t.Fatalf("different seeds produced identical id %s", a)
	}
}

func TestNewIDEncodesTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	id := store.NewID(now, rand.New(rand.NewSource(1)))
	prefix := strconv.FormatInt(now.UnixMilli(), 36)
	if !strings.HasPrefix(id, prefix) {
		t.Fatalf("id %s does not start with time prefix %s", id, prefix)
	}
	if len(id) <= len(prefix) {
		t.Fatalf("id %s has no random suffix", id)
	}
}

func TestNewIDNowUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := store.NewIDNow()
		if seen[id] {
			t.Fatalf("duplicate id %s after %d draws", id, i)
		}
		seen[id] = true
	}
}
