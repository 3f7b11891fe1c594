package report_test

import (
	"testing"
	"time"

	"github.com/aellis6/base-reports/internal/report"
	"github.com/aellis6/base-reports/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTransfers(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

	subset := []types.CallRecord{
		// Two legs of the same call, three real queue stops = 2 hops
		{
			CallID: "C100", HoldTime: 60, TalkDuration: 120, StartTime: start,
			Traversed: "Queue 901; Queue 304",
		},
		{
			CallID: "C100", HoldTime: 30, TalkDuration: 60, StartTime: start.Add(2 * time.Minute),
			Traversed: "Queue 901; Queue 304; Queue 316",
		},
		// Single queue stop, zero hops
		{
			CallID: "C200", HoldTime: 300, TalkDuration: 0, StartTime: start,
			Traversed: "Queue 901",
		},
		// 999 entries are ignored when counting stops
		{
			CallID: "C300", HoldTime: 10, TalkDuration: 20, StartTime: start,
			Traversed: "Queue 901; Queue 999",
		},
		// No traversal log at all
		{
			CallID: "C400", HoldTime: 45, TalkDuration: 90, StartTime: start,
		},
	}

	rep := report.AnalyzeTransfers(subset)

	assert.Equal(t, 1, rep.Multi.Calls)
	assert.Equal(t, 3, rep.Few.Calls)

	// C100: hold 90s = 1.5 min, total (90+180)s = 4.5 min
	assert.Equal(t, 1.5, rep.Multi.TotalHoldMinutes)
	assert.Equal(t, 1.5, rep.Multi.AvgHoldMinutes)
	assert.Equal(t, 4.5, rep.Multi.AvgTotalCallMinutes)

	require.Len(t, rep.Details, 1)
	detail := rep.Details[0]
	assert.Equal(t, "C100", detail.CallID)
	assert.Equal(t, 2, detail.Hops)
	assert.Equal(t, "Monday", detail.DayOfWeek)
	assert.Equal(t, "09:30:00", detail.CallTime)
	assert.NotContains(t, detail.QueuesTraversed, "999")

	// Hop distribution over unique calls: three at 0 hops, one at 2
	assert.Equal(t, []report.GroupCount{
		{Key: "0", Count: 3},
		{Key: "2", Count: 1},
	}, rep.Distribution)
}

func TestAnalyzeTransfersKeepsWorstHopsAcrossLegs(t *testing.T) {
	subset := []types.CallRecord{
		{CallID: "C1", Traversed: "Queue 1; Queue 2; Queue 3; Queue 4"},
		{CallID: "C1", Traversed: "Queue 1"},
	}

	rep := report.AnalyzeTransfers(subset)
	require.Len(t, rep.Details, 1)
	assert.Equal(t, 3, rep.Details[0].Hops)
}

func TestAnalyzeTransfersEmpty(t *testing.T) {
	rep := report.AnalyzeTransfers(nil)
	assert.Equal(t, 0, rep.Multi.Calls)
	assert.Equal(t, 0, rep.Few.Calls)
	assert.Empty(t, rep.Details)
	assert.Empty(t, rep.Distribution)
}
