package incidents

import (
	"fmt"

	"github.com/aellis6/base-reports/internal/types"
)

// Actuals are the quarterly figures compared against POA targets. Wait
// percentage comes from the call-log summary; the rest derive from the
// incident snapshot.
type Actuals struct {
	AutoDefectPct     float64 `json:"autoDefectPct"`
	AutomationWaitPct float64 `json:"automationWaitPct"`
	MTTRHours         float64 `json:"mttrHours"`
}

// HealthRow is one POA health-check verdict.
type HealthRow struct {
	Metric string `json:"metric"`
	Target string `json:"target"`
	Actual string `json:"actual"`
	Met    bool   `json:"met"`
}

// HealthCheck compares actuals against the configured POA targets.
// Defects and MTTR must come in at or under target; wait percentage at
// or over it.
func HealthCheck(poa types.POATargets, actual Actuals) []HealthRow {
	return []HealthRow{
		{
			Metric: "Automation Defects",
			Target: fmt.Sprintf("%.0f%%", poa.TSGDefectPct),
			Actual: fmt.Sprintf("%.0f%%", actual.AutoDefectPct),
			Met:    actual.AutoDefectPct <= poa.TSGDefectPct,
		},
		{
			Metric: "Automation Wait Time",
			Target: fmt.Sprintf("%.0f%%", poa.AutomationWaitPct),
			Actual: fmt.Sprintf("%.0f%%", actual.AutomationWaitPct),
			Met:    actual.AutomationWaitPct >= poa.AutomationWaitPct,
		},
		{
			Metric: "Automation MTTR",
			Target: fmt.Sprintf("%.0f Hrs", poa.AutomationMTTRHours),
			Actual: fmt.Sprintf("%.1f Hrs", actual.MTTRHours),
			Met:    actual.MTTRHours <= poa.AutomationMTTRHours,
		},
	}
}
