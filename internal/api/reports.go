package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aellis6/base-reports/internal/metrics"
	"github.com/aellis6/base-reports/internal/report"
	"github.com/aellis6/base-reports/internal/session"
	"github.com/aellis6/base-reports/internal/types"
	"github.com/rs/zerolog"
)

// ReportHandler serves the aggregate views over the filtered subset.
type ReportHandler struct {
	session *session.Store
	logger  zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(sess *session.Store, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		session: sess,
		logger:  logger.With().Str("component", "reports").Logger(),
	}
}

// subset returns the filtered records, failing the request when no
// dataset has been uploaded yet.
func (h *ReportHandler) subset(w http.ResponseWriter) ([]types.CallRecord, bool) {
	if !h.session.HasDataset() {
		writeError(w, http.StatusConflict, "no dataset loaded")
		return nil, false
	}
	metrics.Get().RecordReportRequest()
	subset, _ := h.session.Filtered()
	return subset, true
}

// HandleSummary handles GET /api/reports/summary.
func (h *ReportHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.subset(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Summarize(subset))
}

// HandleWeekly handles GET /api/reports/weekly: this week's volume
// against the prior seven days.
func (h *ReportHandler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.subset(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.CompareWeeks(subset))
}

// HandleHoldBuckets handles GET /api/reports/hold-buckets.
func (h *ReportHandler) HandleHoldBuckets(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.subset(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.HoldBuckets(subset))
}

// HandleTop handles GET /api/reports/top?field=...&n=...: the calls
// with the largest value of the given field, labeled by agent.
func (h *ReportHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.subset(w)
	if !ok {
		return
	}

	field := r.URL.Query().Get("field")
	if field == "" {
		field = report.FieldHoldTime
	}
	n := 3
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	entries, err := report.TopByField(subset, field, n)
	if err != nil {
		if errors.Is(err, report.ErrUnknownField) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown field %q", field))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleByDay handles GET /api/reports/by-day: call counts and mean
// hold minutes per weekday.
func (h *ReportHandler) HandleByDay(w http.ResponseWriter, r *http.Request) {
	h.grouped(w, report.DimDayOfWeek)
}

// HandleByShift handles GET /api/reports/by-shift.
func (h *ReportHandler) HandleByShift(w http.ResponseWriter, r *http.Request) {
	h.grouped(w, report.DimShift)
}

// HandleCategories handles GET /api/reports/categories.
func (h *ReportHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.grouped(w, report.DimCategory)
}

func (h *ReportHandler) grouped(w http.ResponseWriter, dim string) {
	subset, ok := h.subset(w)
	if !ok {
		return
	}

	counts, err := report.CountBy(subset, dim)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	means, err := report.MeanHoldMinutesBy(subset, dim)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"counts":         counts,
		"avgHoldMinutes": means,
	})
}

// HandleTransfers handles GET /api/reports/transfers.
func (h *ReportHandler) HandleTransfers(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.subset(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.AnalyzeTransfers(subset))
}

// customReportRequest is the body of POST /api/reports/custom.
type customReportRequest struct {
	Dimensions []string       `json:"dimensions"`
	Metrics    []string       `json:"metrics"`
	Aggregate  report.AggFunc `json:"aggregate"`
}

// HandleCustom handles POST /api/reports/custom: an ad-hoc cross-tab
// over the filtered subset. With ?format=csv the table is streamed as a
// file download instead of JSON.
func (h *ReportHandler) HandleCustom(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.subset(w)
	if !ok {
		return
	}

	var req customReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid report definition")
		return
	}

	table, err := report.CrossTab(subset, req.Dimensions, req.Metrics, req.Aggregate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		metrics.Get().RecordExportDownload()
		name := fmt.Sprintf("custom_report_%s.csv", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if err := report.WriteCSV(w, table); err != nil {
			h.logger.Error().Err(err).Msg("csv export failed mid-stream")
		}
		return
	}

	writeJSON(w, http.StatusOK, table)
}
