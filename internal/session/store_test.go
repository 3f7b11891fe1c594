package session

import (
	"testing"
	"time"

	"github.com/aellis6/base-reports/internal/types"
)

func sampleRecords() []types.CallRecord {
	return []types.CallRecord{
		{CallID: "C1", Extension: "100", AgentName: "Old Name", StartTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
		{CallID: "C2", Extension: "104", AgentName: "Old Name", StartTime: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)},
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("hello"))
	b := Fingerprint([]byte("hello"))
	c := Fingerprint([]byte("world"))

	if a != b {
		t.Error("identical bytes must produce identical fingerprints")
	}
	if a == c {
		t.Error("different bytes must produce different fingerprints")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestReplaceDataset(t *testing.T) {
	s := NewStore()

	if s.HasDataset() {
		t.Error("fresh store should have no dataset")
	}
	if s.MatchesFingerprint(Fingerprint([]byte("x"))) {
		t.Error("fresh store should match no fingerprint")
	}

	records := sampleRecords()
	fp := Fingerprint([]byte("upload-bytes"))
	s.ReplaceDataset("ds-1", records, 3, fp, types.FilterSelection{StartDate: "2025-06-02"})

	if !s.HasDataset() {
		t.Error("expected dataset after replace")
	}
	if s.DatasetID() != "ds-1" {
		t.Errorf("expected ds-1, got %s", s.DatasetID())
	}
	if !s.MatchesFingerprint(fp) {
		t.Error("expected fingerprint to match")
	}
	if s.MatchesFingerprint(Fingerprint([]byte("other"))) {
		t.Error("unexpected fingerprint match")
	}

	filtered, sel := s.Filtered()
	if len(filtered) != len(records) {
		t.Errorf("filtered should start as the full dataset, got %d rows", len(filtered))
	}
	if sel.StartDate != "2025-06-02" {
		t.Errorf("selection not stored, got %q", sel.StartDate)
	}
}

func TestSetFiltered(t *testing.T) {
	s := NewStore()
	records := sampleRecords()
	s.ReplaceDataset("ds-1", records, 0, "fp", types.FilterSelection{})

	s.SetFiltered(records[:1], types.FilterSelection{Agents: []string{"Alice"}})

	filtered, sel := s.Filtered()
	if len(filtered) != 1 {
		t.Errorf("expected 1 filtered row, got %d", len(filtered))
	}
	if len(sel.Agents) != 1 {
		t.Error("selection not replaced")
	}

	summary := s.ActiveSummary()
	if summary.FilteredRows != 1 || summary.TotalRows != 2 {
		t.Errorf("unexpected summary rows: %d/%d", summary.FilteredRows, summary.TotalRows)
	}
}

func TestReassignAgentNames(t *testing.T) {
	s := NewStore()
	s.ReplaceDataset("ds-1", sampleRecords(), 0, "fp", types.FilterSelection{})

	s.ReassignAgentNames(func(ext string) string { return "Agent " + ext })

	for _, rec := range s.Working() {
		if rec.AgentName != "Agent "+rec.Extension {
			t.Errorf("working row not reassigned: %s", rec.AgentName)
		}
	}
	filtered, _ := s.Filtered()
	for _, rec := range filtered {
		if rec.AgentName != "Agent "+rec.Extension {
			t.Errorf("filtered row not reassigned: %s", rec.AgentName)
		}
	}
}

func TestPOATargets(t *testing.T) {
	s := NewStore()

	def := s.POATargets()
	if def != types.DefaultPOATargets() {
		t.Error("fresh store should carry default POA targets")
	}

	custom := def
	custom.AutomationMTTRHours = 2.5
	s.SetPOATargets(custom)

	if got := s.POATargets(); got.AutomationMTTRHours != 2.5 {
		t.Errorf("expected 2.5, got %v", got.AutomationMTTRHours)
	}
}

func TestActiveSummaryDroppedRows(t *testing.T) {
	s := NewStore()
	s.ReplaceDataset("ds-1", sampleRecords(), 7, "fp", types.FilterSelection{})

	summary := s.ActiveSummary()
	if summary.DroppedRows != 7 {
		t.Errorf("expected 7 dropped rows, got %d", summary.DroppedRows)
	}
	if summary.AgentsTotal != 1 {
		t.Errorf("expected 1 distinct agent, got %d", summary.AgentsTotal)
	}
	if summary.DatasetID != "ds-1" {
		t.Errorf("unexpected dataset id %s", summary.DatasetID)
	}
}
