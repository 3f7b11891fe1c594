package types

// IncidentRecord is one wholesale snapshot of the weekly incident
// figures entered by hand from the service management center. Saving a
// new record replaces the previous one; no history is kept.
type IncidentRecord struct {
	TotalResolved     int `json:"totalResolved"`
	ResolvedLevel3    int `json:"resolvedLevel3"`
	ResolvedLevel4    int `json:"resolvedLevel4"`
	ResolvedLevel5    int `json:"resolvedLevel5"`
	OpenedAndResolved int `json:"openedAndResolved"` // opened and resolved within the same week

	EastCases     int `json:"eastCases"`
	WestCases     int `json:"westCases"`
	NationalCases int `json:"nationalCases"`

	SecondLevelDefects int `json:"secondLevelDefects"`
	TSGDefects         int `json:"tsgDefects"`
	AutomationP5       int `json:"automationP5"`

	MTTRMinutes float64 `json:"mttrMinutes"`

	TopIssues []string `json:"topIssues"` // up to four free-text labels, most frequent first
}

// POATargets holds the team-configured goal values that reports compare
// actuals against.
type POATargets struct {
	ConventionalDefectPct float64 `json:"conventionalDefectPct"`
	TSGDefectPct          float64 `json:"tsgDefectPct"`
	BaseDefectPct         float64 `json:"baseDefectPct"`
	FacilitySFRWaitPct    float64 `json:"facilitySfrWaitPct"`
	AutomationWaitPct     float64 `json:"automationWaitPct"`
	ConventionalMTTRHours float64 `json:"conventionalMttrHours"`
	AutomationMTTRHours   float64 `json:"automationMttrHours"`
}

// DefaultPOATargets are the targets in effect until the team overrides them.
func DefaultPOATargets() POATargets {
	return POATargets{
		ConventionalDefectPct: 5.0,
		TSGDefectPct:          5.0,
		BaseDefectPct:         5.0,
		FacilitySFRWaitPct:    90.0,
		AutomationWaitPct:     90.0,
		ConventionalMTTRHours: 2.0,
		AutomationMTTRHours:   1.0,
	}
}
