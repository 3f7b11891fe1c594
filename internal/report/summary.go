package report

import "github.com/aellis6/base-reports/internal/types"

// Summary holds the headline KPI row shown on every report page.
type Summary struct {
	TotalCalls           int     `json:"totalCalls"`
	AvgHoldMinutes       float64 `json:"avgHoldMinutes"`
	PctAnsweredUnder5Min float64 `json:"pctAnsweredUnder5Min"`
	PctAbandoned         float64 `json:"pctAbandoned"`
}

// Summarize computes the headline KPIs for a subset.
func Summarize(subset []types.CallRecord) Summary {
	if len(subset) == 0 {
		return Summary{}
	}

	var holdTotal float64
	var under5, abandoned int
	for _, rec := range subset {
		holdTotal += rec.HoldTime
		if rec.HoldTime < 300 {
			under5++
		}
		if rec.Abandoned {
			abandoned++
		}
	}

	n := float64(len(subset))
	return Summary{
		TotalCalls:           len(subset),
		AvgHoldMinutes:       round2(holdTotal / n / 60),
		PctAnsweredUnder5Min: round2(float64(under5) / n * 100),
		PctAbandoned:         round2(float64(abandoned) / n * 100),
	}
}

// WeeklyComparison compares the latest seven days of a subset against
// the seven days before them. Delta is nil when the prior week has no
// calls to compare against.
type WeeklyComparison struct {
	ThisWeek int  `json:"thisWeek"`
	LastWeek int  `json:"lastWeek"`
	Delta    *int `json:"delta"`
}

// CompareWeeks anchors the current week on the subset's latest call.
func CompareWeeks(subset []types.CallRecord) WeeklyComparison {
	if len(subset) == 0 {
		return WeeklyComparison{}
	}

	latest := subset[0].StartTime
	for _, rec := range subset[1:] {
		if rec.StartTime.After(latest) {
			latest = rec.StartTime
		}
	}

	thisWeekStart := latest.AddDate(0, 0, -6)
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)
	lastWeekEnd := thisWeekStart.AddDate(0, 0, -1)

	var cmp WeeklyComparison
	for _, rec := range subset {
		t := rec.StartTime
		if !t.Before(thisWeekStart) && !t.After(latest) {
			cmp.ThisWeek++
		}
		if !t.Before(lastWeekStart) && !t.After(lastWeekEnd) {
			cmp.LastWeek++
		}
	}
	if cmp.LastWeek > 0 {
		d := cmp.ThisWeek - cmp.LastWeek
		cmp.Delta = &d
	}
	return cmp
}
