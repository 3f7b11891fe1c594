// Package metrics keeps lightweight in-process counters for the
// operational stats endpoint.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Metrics holds all application counters.
type Metrics struct {
	mu sync.RWMutex

	// Upload pipeline
	UploadsTotal       int64
	UploadsRejected    int64
	UploadsMemoized    int64
	RowsIngestedTotal  int64
	RowsDroppedTotal   int64

	// Filtering and reporting
	FilterApplications int64
	FilterResets       int64
	ReportRequests     int64
	ExportDownloads    int64

	// Manual entry
	IncidentSaves int64

	// WebSocket
	WSConnectionsTotal int64
	WSNoticesTotal     int64
	activeConnections  int64

	startTime time.Time
}

var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{startTime: time.Now()}
	})
	return instance
}

// RecordUpload counts one processed upload with its row outcomes.
func (m *Metrics) RecordUpload(rows, dropped int) {
	m.mu.Lock()
	m.UploadsTotal++
	m.RowsIngestedTotal += int64(rows)
	m.RowsDroppedTotal += int64(dropped)
	m.mu.Unlock()
}

// RecordUploadRejected counts a schema-rejected upload.
func (m *Metrics) RecordUploadRejected() {
	m.mu.Lock()
	m.UploadsRejected++
	m.mu.Unlock()
}

// RecordUploadMemoized counts an upload skipped as byte-identical.
func (m *Metrics) RecordUploadMemoized() {
	m.mu.Lock()
	m.UploadsMemoized++
	m.mu.Unlock()
}

// RecordFilterApplication counts one filter submission.
func (m *Metrics) RecordFilterApplication() {
	m.mu.Lock()
	m.FilterApplications++
	m.mu.Unlock()
}

// RecordFilterReset counts one filter reset.
func (m *Metrics) RecordFilterReset() {
	m.mu.Lock()
	m.FilterResets++
	m.mu.Unlock()
}

// RecordReportRequest counts one report view request.
func (m *Metrics) RecordReportRequest() {
	m.mu.Lock()
	m.ReportRequests++
	m.mu.Unlock()
}

// RecordExportDownload counts one CSV export.
func (m *Metrics) RecordExportDownload() {
	m.mu.Lock()
	m.ExportDownloads++
	m.mu.Unlock()
}

// RecordIncidentSave counts one manual-entry save.
func (m *Metrics) RecordIncidentSave() {
	m.mu.Lock()
	m.IncidentSaves++
	m.mu.Unlock()
}

// RecordWSConnect counts a dashboard client connecting.
func (m *Metrics) RecordWSConnect() {
	m.mu.Lock()
	m.WSConnectionsTotal++
	m.activeConnections++
	m.mu.Unlock()
}

// RecordWSDisconnect counts a dashboard client disconnecting.
func (m *Metrics) RecordWSDisconnect() {
	m.mu.Lock()
	m.activeConnections--
	m.mu.Unlock()
}

// RecordWSNotice counts one refresh notice broadcast.
func (m *Metrics) RecordWSNotice() {
	m.mu.Lock()
	m.WSNoticesTotal++
	m.mu.Unlock()
}

// Snapshot returns the counters as a JSON-friendly map.
func (m *Metrics) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]any{
		"uploadsTotal":       m.UploadsTotal,
		"uploadsRejected":    m.UploadsRejected,
		"uploadsMemoized":    m.UploadsMemoized,
		"rowsIngestedTotal":  m.RowsIngestedTotal,
		"rowsDroppedTotal":   m.RowsDroppedTotal,
		"filterApplications": m.FilterApplications,
		"filterResets":       m.FilterResets,
		"reportRequests":     m.ReportRequests,
		"exportDownloads":    m.ExportDownloads,
		"incidentSaves":      m.IncidentSaves,
		"wsConnectionsTotal": m.WSConnectionsTotal,
		"wsNoticesTotal":     m.WSNoticesTotal,
		"wsActiveClients":    m.activeConnections,
		"uptimeSeconds":      int64(time.Since(m.startTime).Seconds()),
	}
}

// Handler serves the counters at the internal stats endpoint.
func (m *Metrics) Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m.Snapshot())
}
