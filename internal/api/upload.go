package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/aellis6/base-reports/internal/agents"
	"github.com/aellis6/base-reports/internal/filter"
	"github.com/aellis6/base-reports/internal/ingest"
	"github.com/aellis6/base-reports/internal/metrics"
	"github.com/aellis6/base-reports/internal/session"
	"github.com/aellis6/base-reports/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UploadHandler ingests call-log and extension-mapping uploads.
type UploadHandler struct {
	session   *session.Store
	resolver  *agents.Resolver
	hub       *websocket.Hub
	maxUpload int64
	logger    zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(sess *session.Store, resolver *agents.Resolver, hub *websocket.Hub, maxUpload int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		session:   sess,
		resolver:  resolver,
		hub:       hub,
		maxUpload: maxUpload,
		logger:    logger.With().Str("component", "upload").Logger(),
	}
}

// HandleUpload handles POST /api/upload. The multipart field "calllog"
// carries the call-log export; an optional "agentmap" field carries the
// extension mapping and is loaded before names are resolved. A
// byte-identical re-upload skips re-derivation.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("calllog")
	if err != nil {
		writeError(w, http.StatusBadRequest, "calllog file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	fingerprint := session.Fingerprint(data)
	if h.session.MatchesFingerprint(fingerprint) {
		metrics.Get().RecordUploadMemoized()
		h.logger.Info().Str("dataset_id", h.session.DatasetID()).Msg("upload unchanged, reusing working dataset")
		writeJSON(w, http.StatusOK, map[string]any{
			"datasetId": h.session.DatasetID(),
			"rows":      len(h.session.Working()),
			"dropped":   h.session.DroppedRows(),
			"memoized":  true,
		})
		return
	}

	if mapFile, _, err := r.FormFile("agentmap"); err == nil {
		defer mapFile.Close()
		if m, err := ingest.DecodeAgentMap(mapFile); err != nil {
			writeError(w, http.StatusBadRequest, "invalid agent mapping file")
			return
		} else if len(m) > 0 {
			h.resolver.SetCustomMap(m)
		}
	}

	records, dropped, err := ingest.DecodeCallLog(bytes.NewReader(data), h.resolver.Resolve)
	if err != nil {
		var schemaErr *ingest.SchemaError
		if errors.As(err, &schemaErr) {
			metrics.Get().RecordUploadRejected()
			h.logger.Warn().Strs("missing", schemaErr.Missing).Msg("upload rejected, schema mismatch")
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":          schemaErr.Error(),
				"missingColumns": schemaErr.Missing,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New().String()
	_, sel := filter.Reset(records)
	h.session.ReplaceDataset(id, records, dropped, fingerprint, sel)

	metrics.Get().RecordUpload(len(records), dropped)
	h.logger.Info().
		Str("dataset_id", id).
		Int("rows", len(records)).
		Int("dropped", dropped).
		Msg("call data uploaded")
	h.hub.NotifyRefresh("dataset", id)

	writeJSON(w, http.StatusOK, map[string]any{
		"datasetId": id,
		"rows":      len(records),
		"dropped":   dropped,
		"memoized":  false,
	})
}

// HandleAgentMap handles POST /api/agentmap: loads a custom extension
// mapping and re-resolves agent names over the working dataset.
func (h *UploadHandler) HandleAgentMap(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("agentmap")
	if err != nil {
		writeError(w, http.StatusBadRequest, "agentmap file is required")
		return
	}
	defer file.Close()

	m, err := ingest.DecodeAgentMap(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent mapping file")
		return
	}
	if len(m) == 0 {
		writeError(w, http.StatusBadRequest, "agent mapping file has no usable rows")
		return
	}

	h.resolver.SetCustomMap(m)
	h.session.ReassignAgentNames(h.resolver.Resolve)
	h.logger.Info().Int("entries", len(m)).Msg("custom agent mapping loaded")
	h.hub.NotifyRefresh("agentmap", h.session.DatasetID())

	writeJSON(w, http.StatusOK, map[string]any{"entries": len(m)})
}
