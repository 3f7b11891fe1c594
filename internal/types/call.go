package types

import "time"

// Category classifies a call leg by the queue it was routed to.
type Category string

const (
	CategoryCBRESFR            Category = "CBRE SFR"
	CategoryCBRELegacy         Category = "CBRE Legacy"
	CategoryAutomation         Category = "Automation"
	CategoryReturnedAutomation Category = "Returned Automation"
	CategoryManagers           Category = "Managers"
	CategoryOther              Category = "Other"
)

// Shift is one of the three fixed 8-hour operational windows.
type Shift string

const (
	ShiftPreload  Shift = "Preload (4:30am - 12:29pm)"
	ShiftTwilight Shift = "Twilight (12:30pm - 8:29pm)"
	ShiftNight    Shift = "Night (8:30pm - 4:29am)"
)

// AllShifts lists the shifts in operational order.
var AllShifts = []Shift{ShiftPreload, ShiftTwilight, ShiftNight}

// WeekdayOrder lists day names Monday-first, the order every report uses.
var WeekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// CallRecord is one enriched call-log row. A Call ID is not unique per
// call: a call that hops queues produces one row per leg, all sharing
// the same Call ID.
type CallRecord struct {
	CallID    string `json:"callId"`
	QueueID   string `json:"queueId"`
	Extension string `json:"extension"`
	From      string `json:"from"`
	To        string `json:"to"`
	WhoHungUp string `json:"whoHungUp"`
	Traversed string `json:"traversed"` // semicolon-delimited queue-hop log

	StartTime time.Time `json:"startTime"`

	TotalDuration float64 `json:"totalDuration"` // seconds
	TalkDuration  float64 `json:"talkDuration"`  // seconds
	HoldTime      float64 `json:"holdTime"`      // seconds

	Abandoned bool `json:"abandoned"`

	// Derived at ingest time; never mutated afterwards.
	Hour      int      `json:"hour"`
	DayOfWeek string   `json:"dayOfWeek"`
	Shift     Shift    `json:"shift"`
	Category  Category `json:"category"`
	AgentName string   `json:"agentName"`
}
