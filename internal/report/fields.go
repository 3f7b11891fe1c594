// Package report computes the aggregate views consumed by the
// dashboard pages. Every function is pure over a filtered subset and
// returns a defined empty result for an empty subset.
package report

import (
	"errors"
	"math"
	"strconv"

	"github.com/aellis6/base-reports/internal/types"
)

// ErrUnknownField is returned when a requested dimension or metric does
// not exist on call records. The aggregation is aborted; no partial
// table is produced.
var ErrUnknownField = errors.New("unknown field")

// Report field names, matching the column names of the source export so
// saved report definitions stay portable.
const (
	FieldHoldTime      = "Hold Time (s)"
	FieldTalkDuration  = "Talk Duration"
	FieldTotalDuration = "Total Duration"
	FieldTotalCallTime = "Total Call Time (s)" // hold + talk, derived

	DimCategory  = "Call Category"
	DimShift     = "Shift"
	DimDayOfWeek = "DayOfWeek"
	DimHour      = "Hour"
	DimQueueID   = "Queue ID"
	DimAgentName = "AgentName"
	DimExtension = "Extension"
	DimAbandoned = "Abandoned"
)

// dimValue extracts a grouping key; ok is false for unknown dimensions.
func dimValue(rec types.CallRecord, dim string) (string, bool) {
	switch dim {
	case DimCategory:
		return string(rec.Category), true
	case DimShift:
		return string(rec.Shift), true
	case DimDayOfWeek:
		return rec.DayOfWeek, true
	case DimHour:
		return strconv.Itoa(rec.Hour), true
	case DimQueueID:
		return rec.QueueID, true
	case DimAgentName:
		return rec.AgentName, true
	case DimExtension:
		return rec.Extension, true
	case DimAbandoned:
		return strconv.FormatBool(rec.Abandoned), true
	default:
		return "", false
	}
}

// metricValue extracts a numeric metric; ok is false for unknown metrics.
func metricValue(rec types.CallRecord, metric string) (float64, bool) {
	switch metric {
	case FieldHoldTime:
		return rec.HoldTime, true
	case FieldTalkDuration:
		return rec.TalkDuration, true
	case FieldTotalDuration:
		return rec.TotalDuration, true
	case FieldTotalCallTime:
		return rec.HoldTime + rec.TalkDuration, true
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
