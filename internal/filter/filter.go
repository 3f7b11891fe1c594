// Package filter reduces the working dataset to the subset every
// report view reads, by AND-ing five independent predicates.
package filter

import (
	"fmt"
	"sort"
	"time"

	"github.com/aellis6/base-reports/internal/types"
)

// WeekendsOnly is the special weekday option that overrides the
// explicit weekday selection with {Saturday, Sunday}.
const WeekendsOnly = "Weekends Only"

const dateLayout = "2006-01-02"

// Criteria carries raw filter selections as submitted, before they are
// finalized into a FilterSelection.
type Criteria struct {
	StartDate  string   `json:"startDate"` // YYYY-MM-DD, inclusive
	EndDate    string   `json:"endDate"`   // YYYY-MM-DD, inclusive
	Days       []string `json:"days"`      // may contain WeekendsOnly
	Shifts     []string `json:"shifts"`
	Categories []string `json:"categories"`
	Agents     []string `json:"agents"`
}

// Apply evaluates the criteria against the working dataset and returns
// the matching subset, in original row order, together with the
// finalized selection that produced it. An empty set on any dimension
// matches no rows. Only malformed dates are an error.
func Apply(working []types.CallRecord, c Criteria) ([]types.CallRecord, types.FilterSelection, error) {
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return nil, types.FilterSelection{}, fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return nil, types.FilterSelection{}, fmt.Errorf("invalid end date %q: %w", c.EndDate, err)
	}

	weekendsOnly := false
	days := make(map[string]bool, len(c.Days))
	for _, d := range c.Days {
		if d == WeekendsOnly {
			weekendsOnly = true
			continue
		}
		days[d] = true
	}

	shifts := make(map[types.Shift]bool, len(c.Shifts))
	for _, s := range c.Shifts {
		shifts[types.Shift(s)] = true
	}
	categories := make(map[types.Category]bool, len(c.Categories))
	for _, cat := range c.Categories {
		categories[types.Category(cat)] = true
	}
	agents := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		agents[a] = true
	}

	subset := make([]types.CallRecord, 0, len(working))
	for _, rec := range working {
		d := dateOnly(rec.StartTime)
		if d.Before(start) || d.After(end) {
			continue
		}
		if weekendsOnly {
			if rec.DayOfWeek != "Saturday" && rec.DayOfWeek != "Sunday" {
				continue
			}
		} else if !days[rec.DayOfWeek] {
			continue
		}
		if !shifts[rec.Shift] || !categories[rec.Category] || !agents[rec.AgentName] {
			continue
		}
		subset = append(subset, rec)
	}

	sel := types.FilterSelection{
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		Days:         append([]string(nil), c.Days...),
		WeekendsOnly: weekendsOnly,
		Shifts:       sortedShifts(shifts),
		Categories:   sortedCategories(categories),
		Agents:       sortedStrings(agents),
	}
	return subset, sel, nil
}

// Reset restores the filtered dataset to the full working dataset and
// rebuilds the default selection from its natural extents. No predicate
// runs; the default category subset is advisory for the next submission.
func Reset(working []types.CallRecord) ([]types.CallRecord, types.FilterSelection) {
	sel := types.FilterSelection{
		Days:       append([]string(nil), types.WeekdayOrder...),
		Categories: []types.Category{types.CategoryAutomation, types.CategoryReturnedAutomation},
	}

	if len(working) == 0 {
		return nil, sel
	}

	minT, maxT := working[0].StartTime, working[0].StartTime
	shifts := make(map[types.Shift]bool)
	agents := make(map[string]bool)
	for _, rec := range working {
		if rec.StartTime.Before(minT) {
			minT = rec.StartTime
		}
		if rec.StartTime.After(maxT) {
			maxT = rec.StartTime
		}
		shifts[rec.Shift] = true
		agents[rec.AgentName] = true
	}

	sel.StartDate = minT.Format(dateLayout)
	sel.EndDate = maxT.Format(dateLayout)
	sel.Shifts = sortedShifts(shifts)
	sel.Agents = sortedStrings(agents)

	subset := make([]types.CallRecord, len(working))
	copy(subset, working)
	return subset, sel
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortedShifts(set map[types.Shift]bool) []types.Shift {
	out := make([]types.Shift, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedCategories(set map[types.Category]bool) []types.Category {
	out := make([]types.Category, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedStrings(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
