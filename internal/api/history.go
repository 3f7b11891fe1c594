package api

import (
	"context"
	"net/http"

	"github.com/aellis6/base-reports/internal/history"
	"github.com/rs/zerolog"
)

// HistoryHandler serves the weekly trend charts from the relational
// archive. A nil source means no archive is configured; the endpoints
// report the series as unavailable rather than failing.
type HistoryHandler struct {
	source *history.Source
	logger zerolog.Logger
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(source *history.Source, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		source: source,
		logger: logger.With().Str("component", "history").Logger(),
	}
}

// HandleWeeklyHold handles GET /api/history/weekly-hold.
func (h *HistoryHandler) HandleWeeklyHold(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r.Context(), func(ctx context.Context) ([]history.WeeklyPoint, error) {
		return h.source.WeeklyAvgHold(ctx)
	})
}

// HandleWeeklyTopHold handles GET /api/history/weekly-top-hold.
func (h *HistoryHandler) HandleWeeklyTopHold(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r.Context(), func(ctx context.Context) ([]history.WeeklyPoint, error) {
		return h.source.WeeklyTopHoldAvg(ctx)
	})
}

func (h *HistoryHandler) serve(w http.ResponseWriter, ctx context.Context, fetch func(context.Context) ([]history.WeeklyPoint, error)) {
	if h.source == nil {
		writeJSON(w, http.StatusOK, map[string]any{"state": "unavailable"})
		return
	}

	points, err := fetch(ctx)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"state": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":  "ok",
		"points": points,
	})
}
