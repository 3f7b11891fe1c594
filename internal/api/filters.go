package api

import (
	"encoding/json"
	"net/http"

	"github.com/aellis6/base-reports/internal/filter"
	"github.com/aellis6/base-reports/internal/metrics"
	"github.com/aellis6/base-reports/internal/session"
	"github.com/aellis6/base-reports/internal/websocket"
	"github.com/rs/zerolog"
)

// FilterHandler applies and resets the active filter selection.
type FilterHandler struct {
	session *session.Store
	hub     *websocket.Hub
	logger  zerolog.Logger
}

// NewFilterHandler creates a new FilterHandler
func NewFilterHandler(sess *session.Store, hub *websocket.Hub, logger zerolog.Logger) *FilterHandler {
	return &FilterHandler{
		session: sess,
		hub:     hub,
		logger:  logger.With().Str("component", "filters").Logger(),
	}
}

// previewRows caps the sample rows returned with the dataset summary.
const previewRows = 20

// HandleDataset handles GET /api/dataset: the active-filter summary
// banner shown on every page, plus a preview of the filtered subset.
func (h *FilterHandler) HandleDataset(w http.ResponseWriter, r *http.Request) {
	if !h.session.HasDataset() {
		writeError(w, http.StatusConflict, "no dataset loaded")
		return
	}

	filtered, _ := h.session.Filtered()
	if len(filtered) > previewRows {
		filtered = filtered[:previewRows]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": h.session.ActiveSummary(),
		"preview": filtered,
	})
}

// HandleApply handles POST /api/filters: runs the submitted criteria
// over the working dataset and swaps in the resulting subset.
func (h *FilterHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	if !h.session.HasDataset() {
		writeError(w, http.StatusConflict, "no dataset loaded")
		return
	}

	var criteria filter.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter criteria")
		return
	}

	subset, sel, err := filter.Apply(h.session.Working(), criteria)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.session.SetFiltered(subset, sel)
	metrics.Get().RecordFilterApplication()
	h.logger.Info().
		Int("matched", len(subset)).
		Int("total", len(h.session.Working())).
		Msg("filters applied")
	h.hub.NotifyRefresh("filters", h.session.DatasetID())

	writeJSON(w, http.StatusOK, h.session.ActiveSummary())
}

// HandleReset handles POST /api/filters/reset: restores the full
// working dataset and the default selection.
func (h *FilterHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if !h.session.HasDataset() {
		writeError(w, http.StatusConflict, "no dataset loaded")
		return
	}

	subset, sel := filter.Reset(h.session.Working())
	h.session.SetFiltered(subset, sel)
	metrics.Get().RecordFilterReset()
	h.logger.Info().Int("rows", len(subset)).Msg("filters reset")
	h.hub.NotifyRefresh("filters", h.session.DatasetID())

	writeJSON(w, http.StatusOK, h.session.ActiveSummary())
}
