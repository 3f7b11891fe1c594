// Package session holds the per-session pipeline state: the working
// dataset, the current filtered subset and selection, and the POA
// targets. A re-upload or re-filter replaces state wholesale; nothing
// is updated incrementally.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/aellis6/base-reports/internal/types"
)

// Store is the single mutable session object passed to every handler.
// The pipeline itself is one synchronous pass per interaction; the
// mutex only serializes interactions arriving on separate connections.
type Store struct {
	mu sync.RWMutex

	datasetID   string
	fingerprint string
	working     []types.CallRecord
	dropped     int

	filtered  []types.CallRecord
	selection types.FilterSelection

	poa types.POATargets
}

// NewStore creates an empty session with default POA targets.
func NewStore() *Store {
	return &Store{poa: types.DefaultPOATargets()}
}

// Fingerprint hashes upload bytes so an unchanged re-upload can skip
// re-derivation.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReplaceDataset swaps in a freshly derived working dataset. The
// filtered subset is reset to the full dataset under the given default
// selection; any previously filtered subset is gone.
func (s *Store) ReplaceDataset(id string, records []types.CallRecord, dropped int, fingerprint string, sel types.FilterSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasetID = id
	s.working = records
	s.dropped = dropped
	s.fingerprint = fingerprint
	s.filtered = records
	s.selection = sel
}

// MatchesFingerprint reports whether an upload is byte-identical to the
// one that produced the current working dataset.
func (s *Store) MatchesFingerprint(fingerprint string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprint != "" && s.fingerprint == fingerprint
}

// HasDataset reports whether a working dataset is loaded.
func (s *Store) HasDataset() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.working) > 0
}

// DatasetID returns the current dataset's identifier.
func (s *Store) DatasetID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasetID
}

// DroppedRows reports how many upload rows were discarded at ingest.
func (s *Store) DroppedRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

// Working returns the full working dataset.
func (s *Store) Working() []types.CallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.working
}

// Filtered returns the current filtered subset and the selection that
// produced it.
func (s *Store) Filtered() ([]types.CallRecord, types.FilterSelection) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered, s.selection
}

// SetFiltered replaces the filtered subset and its selection.
func (s *Store) SetFiltered(subset []types.CallRecord, sel types.FilterSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered = subset
	s.selection = sel
}

// ReassignAgentNames re-resolves agent names over the working and
// filtered datasets, after a new extension mapping is loaded.
func (s *Store) ReassignAgentNames(resolve func(string) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.working {
		s.working[i].AgentName = resolve(s.working[i].Extension)
	}
	for i := range s.filtered {
		s.filtered[i].AgentName = resolve(s.filtered[i].Extension)
	}
}

// POATargets returns the configured goal values.
func (s *Store) POATargets() types.POATargets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.poa
}

// SetPOATargets replaces the goal values.
func (s *Store) SetPOATargets(poa types.POATargets) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poa = poa
}

// ActiveSummary describes the active filters and their effect for the
// summary banner shown on every page.
func (s *Store) ActiveSummary() types.FilterSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agentsTotal := make(map[string]bool)
	for _, rec := range s.working {
		agentsTotal[rec.AgentName] = true
	}

	return types.FilterSummary{
		DatasetID:      s.datasetID,
		DateRange:      [2]string{s.selection.StartDate, s.selection.EndDate},
		Days:           s.selection.Days,
		Shifts:         s.selection.Shifts,
		Categories:     s.selection.Categories,
		AgentsSelected: len(s.selection.Agents),
		AgentsTotal:    len(agentsTotal),
		FilteredRows:   len(s.filtered),
		TotalRows:      len(s.working),
		DroppedRows:    s.dropped,
	}
}
