package api

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/aellis6/base-reports/internal/incidents"
	"github.com/aellis6/base-reports/internal/metrics"
	"github.com/aellis6/base-reports/internal/report"
	"github.com/aellis6/base-reports/internal/session"
	"github.com/aellis6/base-reports/internal/types"
	"github.com/rs/zerolog"
)

// IncidentHandler manages the hand-entered incident snapshot and the
// POA targets it is measured against.
type IncidentHandler struct {
	session *session.Store
	store   *incidents.Store
	logger  zerolog.Logger
}

// NewIncidentHandler creates a new IncidentHandler
func NewIncidentHandler(sess *session.Store, store *incidents.Store, logger zerolog.Logger) *IncidentHandler {
	return &IncidentHandler{
		session: sess,
		store:   store,
		logger:  logger.With().Str("component", "incidents").Logger(),
	}
}

// HandleSave handles POST /api/incidents: replaces the incident
// snapshot. Consistency warnings are returned alongside the save, never
// instead of it.
func (h *IncidentHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var rec types.IncidentRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid incident record")
		return
	}

	warnings := h.store.Save(rec)
	metrics.Get().RecordIncidentSave()
	h.logger.Info().
		Int("total_resolved", rec.TotalResolved).
		Int("warnings", len(warnings)).
		Msg("incident snapshot saved")

	writeJSON(w, http.StatusOK, map[string]any{
		"saved":    true,
		"warnings": warnings,
	})
}

// kpiValue renders a ratio as its value or null when the denominator
// was zero or no snapshot exists.
func kpiValue(v float64, err error) *float64 {
	if err != nil {
		return nil
	}
	rounded := math.Round(v*100) / 100
	return &rounded
}

// HandleSummary handles GET /api/incidents/summary: the manual KPIs,
// breakdown tables, and the POA health check.
func (h *IncidentHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	rec, saved := h.store.Snapshot()

	resp := map[string]any{
		"saved": saved,
	}
	if savedAt, ok := h.store.SavedAt(); ok {
		resp["savedAt"] = savedAt.Format(time.RFC3339)
	}
	if saved {
		resp["record"] = rec
	}

	resp["pctResolvedThirdLevel"] = kpiValue(h.store.PctResolvedThirdLevel())
	resp["pctResolvedWithin7Days"] = kpiValue(h.store.PctResolvedWithin7Days())
	resp["pctTotalDefects"] = kpiValue(h.store.PctTotalDefects())

	if rows, err := h.store.LevelBreakdown(); err == nil {
		resp["levelBreakdown"] = rows
	}
	if rows, err := h.store.DefectBreakdown(); err == nil {
		resp["defectBreakdown"] = rows
	}

	resp["health"] = h.healthRows(rec, saved)

	writeJSON(w, http.StatusOK, resp)
}

// healthRows builds the POA health check from the incident snapshot and
// the filtered call data. Without a snapshot the defect and MTTR rows
// compare against zero actuals, which is what the dashboard shows too.
func (h *IncidentHandler) healthRows(rec types.IncidentRecord, saved bool) []incidents.HealthRow {
	actual := incidents.Actuals{}
	if saved {
		if pct, err := h.store.PctTotalDefects(); err == nil {
			actual.AutoDefectPct = pct
		}
		actual.MTTRHours = rec.MTTRMinutes / 60
	}
	if h.session.HasDataset() {
		subset, _ := h.session.Filtered()
		actual.AutomationWaitPct = report.Summarize(subset).PctAnsweredUnder5Min
	}
	return incidents.HealthCheck(h.session.POATargets(), actual)
}

// HandleGetPOA handles GET /api/poa.
func (h *IncidentHandler) HandleGetPOA(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.POATargets())
}

// HandlePutPOA handles PUT /api/poa: replaces the goal values.
func (h *IncidentHandler) HandlePutPOA(w http.ResponseWriter, r *http.Request) {
	var poa types.POATargets
	if err := json.NewDecoder(r.Body).Decode(&poa); err != nil {
		writeError(w, http.StatusBadRequest, "invalid POA targets")
		return
	}
	h.session.SetPOATargets(poa)
	h.logger.Info().Msg("POA targets updated")
	writeJSON(w, http.StatusOK, poa)
}
