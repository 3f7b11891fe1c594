package report

import "github.com/aellis6/base-reports/internal/types"

// HoldBucket is one row of the hold-time breakdown table.
type HoldBucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// holdBucketBounds are minutes; each range is right-open and the last
// is unbounded.
var holdBucketBounds = []struct {
	label string
	lo    float64
	hi    float64 // exclusive; <0 means unbounded
}{
	{"0-5 min", 0, 5},
	{"5-10 min", 5, 10},
	{"10-15 min", 10, 15},
	{"15-30 min", 15, 30},
	{"30+ min", 30, -1},
}

// HoldBuckets bins hold time into the five fixed minute ranges. All
// five buckets are always present; counts sum to len(subset). A
// negative hold value, which the ingest coercion lets through, clamps
// into the first bucket.
func HoldBuckets(subset []types.CallRecord) []HoldBucket {
	counts := make([]int, len(holdBucketBounds))
	for _, rec := range subset {
		minutes := rec.HoldTime / 60
		if minutes < 0 {
			minutes = 0
		}
		for i, b := range holdBucketBounds {
			if minutes >= b.lo && (b.hi < 0 || minutes < b.hi) {
				counts[i]++
				break
			}
		}
	}

	total := len(subset)
	out := make([]HoldBucket, len(holdBucketBounds))
	for i, b := range holdBucketBounds {
		bucket := HoldBucket{Label: b.label, Count: counts[i]}
		if total > 0 {
			bucket.Percent = round2(float64(counts[i]) / float64(total) * 100)
		}
		out[i] = bucket
	}
	return out
}
