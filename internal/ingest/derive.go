package ingest

import (
	"strings"
	"time"

	"github.com/aellis6/base-reports/internal/types"
)

// Shift boundaries as seconds past midnight. Each boundary belongs to
// the shift beginning there.
const (
	preloadStart  = 4*3600 + 30*60  // 04:30:00
	twilightStart = 12*3600 + 30*60 // 12:30:00
	nightStart    = 20*3600 + 30*60 // 20:30:00
)

// ShiftFor places a start time into one of the three fixed shifts.
func ShiftFor(t time.Time) types.Shift {
	sec := t.Hour()*3600 + t.Minute()*60 + t.Second()
	switch {
	case sec >= preloadStart && sec < twilightStart:
		return types.ShiftPreload
	case sec >= twilightStart && sec < nightStart:
		return types.ShiftTwilight
	default:
		return types.ShiftNight
	}
}

// CategoryFor derives the call category from the queue id and the From
// field. It is a pure function: identical inputs always yield the same
// category.
func CategoryFor(queueID, from string) types.Category {
	switch queueID {
	case "304":
		return types.CategoryCBRESFR
	case "316":
		return types.CategoryCBRELegacy
	case "901":
		// A 901 leg is only flagged as a returned call when the queue
		// also reads 999, which cannot hold inside this branch. The
		// product rule is carried verbatim until routing clarifies
		// which field the 999 check was meant to read.
		if strings.Contains(strings.ToLower(from), "return") && queueID == "999" {
			return types.CategoryReturnedAutomation
		}
		return types.CategoryAutomation
	case "854", "910":
		return types.CategoryManagers
	default:
		return types.CategoryOther
	}
}
