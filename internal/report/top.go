package report

import (
	"fmt"
	"sort"

	"github.com/aellis6/base-reports/internal/types"
)

// TopEntry is one row of a top-N extremes listing.
type TopEntry struct {
	AgentName string  `json:"agentName"`
	Seconds   float64 `json:"seconds"`
	Minutes   float64 `json:"minutes"`
}

// TopByField returns the n rows with the largest value of the named
// numeric field. Ties keep original row order. Fewer than n rows simply
// yields a shorter list.
func TopByField(subset []types.CallRecord, field string, n int) ([]TopEntry, error) {
	if _, ok := metricValue(types.CallRecord{}, field); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	values := make([]float64, len(subset))
	order := make([]int, len(subset))
	for i, rec := range subset {
		v, _ := metricValue(rec, field)
		values[i] = v
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	if n > len(order) {
		n = len(order)
	}
	out := make([]TopEntry, 0, n)
	for _, i := range order[:n] {
		out = append(out, TopEntry{
			AgentName: subset[i].AgentName,
			Seconds:   values[i],
			Minutes:   round2(values[i] / 60),
		})
	}
	return out, nil
}
