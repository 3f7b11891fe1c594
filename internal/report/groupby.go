package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aellis6/base-reports/internal/types"
)

// GroupCount is a per-group call count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// GroupMean is a per-group mean, in display units.
type GroupMean struct {
	Key            string  `json:"key"`
	AvgHoldMinutes float64 `json:"avgHoldMinutes"`
}

// CountBy counts calls grouped by one categorical dimension. Groups
// with no rows are omitted; ordering follows the dimension's natural
// order (weekdays Monday-first, shifts in operational order, hours
// numerically, everything else lexically).
func CountBy(subset []types.CallRecord, dim string) ([]GroupCount, error) {
	if _, ok := dimValue(types.CallRecord{}, dim); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, dim)
	}

	counts := make(map[string]int)
	for _, rec := range subset {
		key, _ := dimValue(rec, dim)
		counts[key]++
	}

	out := make([]GroupCount, 0, len(counts))
	for _, key := range orderedKeys(counts, dim) {
		out = append(out, GroupCount{Key: key, Count: counts[key]})
	}
	return out, nil
}

// MeanHoldMinutesBy averages hold time per group. Hold time stays in
// seconds internally; the result is converted to minutes for display.
func MeanHoldMinutesBy(subset []types.CallRecord, dim string) ([]GroupMean, error) {
	if _, ok := dimValue(types.CallRecord{}, dim); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, dim)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range subset {
		key, _ := dimValue(rec, dim)
		sums[key] += rec.HoldTime
		counts[key]++
	}

	out := make([]GroupMean, 0, len(counts))
	for _, key := range orderedKeys(counts, dim) {
		out = append(out, GroupMean{
			Key:            key,
			AvgHoldMinutes: round2(sums[key] / float64(counts[key]) / 60),
		})
	}
	return out, nil
}

func orderedKeys(counts map[string]int, dim string) []string {
	switch dim {
	case DimDayOfWeek:
		var keys []string
		for _, day := range types.WeekdayOrder {
			if _, ok := counts[day]; ok {
				keys = append(keys, day)
			}
		}
		return keys
	case DimShift:
		var keys []string
		for _, s := range types.AllShifts {
			if _, ok := counts[string(s)]; ok {
				keys = append(keys, string(s))
			}
		}
		return keys
	case DimHour:
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
		return keys
	default:
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}
}
