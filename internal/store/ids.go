package store

import (
	"math/rand"
	"strconv"
	"time"
)

// NewID builds a sortable meal-entry id from base36 unix millis plus a
// random base36 suffix. Collisions need two entries in the same
// millisecond with the same random draw.
func NewID(now time.Time, rng *rand.Rand) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + strconv.FormatInt(rng.Int63(), 36)
}

func NewIDNow() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(rand.Int63(), 36)
}
