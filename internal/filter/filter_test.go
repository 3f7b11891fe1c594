package filter_test

import (
	"testing"
	"time"

	"github.com/aellis6/base-reports/internal/filter"
	"github.com/aellis6/base-reports/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, start time.Time, shift types.Shift, cat types.Category, agent string) types.CallRecord {
	return types.CallRecord{
		CallID:    id,
		StartTime: start,
		DayOfWeek: start.Weekday().String(),
		Shift:     shift,
		Category:  cat,
		AgentName: agent,
	}
}

// Monday 2025-06-02 through Sunday 2025-06-08.
func sampleWeek() []types.CallRecord {
	day := func(d int, hour int) time.Time {
		return time.Date(2025, 6, d, hour, 0, 0, 0, time.UTC)
	}
	return []types.CallRecord{
		record("mon", day(2, 9), types.ShiftPreload, types.CategoryAutomation, "Alice"),
		record("tue", day(3, 14), types.ShiftTwilight, types.CategoryAutomation, "Bob"),
		record("wed", day(4, 22), types.ShiftNight, types.CategoryCBRESFR, "Alice"),
		record("sat", day(7, 9), types.ShiftPreload, types.CategoryAutomation, "Alice"),
		record("sun", day(8, 14), types.ShiftTwilight, types.CategoryOther, "Carol"),
	}
}

func allCriteria() filter.Criteria {
	return filter.Criteria{
		StartDate:  "2025-06-02",
		EndDate:    "2025-06-08",
		Days:       append([]string(nil), types.WeekdayOrder...),
		Shifts:     []string{string(types.ShiftPreload), string(types.ShiftTwilight), string(types.ShiftNight)},
		Categories: []string{string(types.CategoryAutomation), string(types.CategoryCBRESFR), string(types.CategoryOther)},
		Agents:     []string{"Alice", "Bob", "Carol"},
	}
}

func ids(records []types.CallRecord) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.CallID
	}
	return out
}

func TestApplyAllMatch(t *testing.T) {
	subset, sel, err := filter.Apply(sampleWeek(), allCriteria())
	require.NoError(t, err)
	assert.Equal(t, []string{"mon", "tue", "wed", "sat", "sun"}, ids(subset))
	assert.False(t, sel.WeekendsOnly)
	assert.Equal(t, "2025-06-02", sel.StartDate)
	assert.Equal(t, "2025-06-08", sel.EndDate)
}

func TestApplyDateRangeInclusive(t *testing.T) {
	c := allCriteria()
	c.StartDate = "2025-06-03"
	c.EndDate = "2025-06-07"

	subset, _, err := filter.Apply(sampleWeek(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"tue", "wed", "sat"}, ids(subset))
}

func TestApplyInvalidDates(t *testing.T) {
	c := allCriteria()
	c.StartDate = "06/02/2025"
	_, _, err := filter.Apply(sampleWeek(), c)
	assert.Error(t, err)

	c = allCriteria()
	c.EndDate = ""
	_, _, err = filter.Apply(sampleWeek(), c)
	assert.Error(t, err)
}

func TestApplyDayPredicate(t *testing.T) {
	c := allCriteria()
	c.Days = []string{"Monday", "Saturday"}

	subset, _, err := filter.Apply(sampleWeek(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"mon", "sat"}, ids(subset))
}

func TestApplyWeekendsOnlyOverridesDays(t *testing.T) {
	c := allCriteria()
	// Explicit weekdays are ignored once Weekends Only is present
	c.Days = []string{"Monday", "Tuesday", filter.WeekendsOnly}

	subset, sel, err := filter.Apply(sampleWeek(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"sat", "sun"}, ids(subset))
	assert.True(t, sel.WeekendsOnly)
}

func TestApplyEmptySelectionMatchesNothing(t *testing.T) {
	working := sampleWeek()

	for name, mutate := range map[string]func(c *filter.Criteria){
		"Days":       func(c *filter.Criteria) { c.Days = nil },
		"Shifts":     func(c *filter.Criteria) { c.Shifts = nil },
		"Categories": func(c *filter.Criteria) { c.Categories = nil },
		"Agents":     func(c *filter.Criteria) { c.Agents = nil },
	} {
		t.Run(name, func(t *testing.T) {
			c := allCriteria()
			mutate(&c)
			subset, _, err := filter.Apply(working, c)
			require.NoError(t, err)
			assert.Empty(t, subset)
		})
	}
}

func TestApplyNarrowingIsMonotonic(t *testing.T) {
	working := sampleWeek()

	wide, _, err := filter.Apply(working, allCriteria())
	require.NoError(t, err)

	c := allCriteria()
	c.Agents = []string{"Alice"}
	narrow, _, err := filter.Apply(working, c)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(narrow), len(wide))
	for _, rec := range narrow {
		assert.Equal(t, "Alice", rec.AgentName)
	}
}

func TestApplyIsIdempotentOverWorking(t *testing.T) {
	working := sampleWeek()
	c := allCriteria()

	first, _, err := filter.Apply(working, c)
	require.NoError(t, err)
	second, _, err := filter.Apply(working, c)
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
}

func TestReset(t *testing.T) {
	working := sampleWeek()

	subset, sel := filter.Reset(working)

	assert.Len(t, subset, len(working))
	assert.Equal(t, "2025-06-02", sel.StartDate)
	assert.Equal(t, "2025-06-08", sel.EndDate)
	assert.Equal(t, types.WeekdayOrder, sel.Days)
	assert.False(t, sel.WeekendsOnly)
	assert.ElementsMatch(t, []types.Shift{types.ShiftPreload, types.ShiftTwilight, types.ShiftNight}, sel.Shifts)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, sel.Agents)
	// The default category selection is the automation pair regardless
	// of what the data contains
	assert.Equal(t, []types.Category{types.CategoryAutomation, types.CategoryReturnedAutomation}, sel.Categories)

	// The returned subset is a copy, not an alias
	subset[0].CallID = "mutated"
	assert.Equal(t, "mon", working[0].CallID)
}

func TestResetEmptyWorking(t *testing.T) {
	subset, sel := filter.Reset(nil)
	assert.Empty(t, subset)
	assert.Equal(t, "", sel.StartDate)
	assert.Equal(t, types.WeekdayOrder, sel.Days)
}
