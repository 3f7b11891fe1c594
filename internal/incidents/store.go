// Package incidents holds the operator-entered weekly incident figures
// and derives percentage KPIs from them.
package incidents

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aellis6/base-reports/internal/types"
)

// ErrNoData means a ratio's denominator is zero or no record has been
// saved this session. Callers display a "no data" state instead of a
// number; it never bubbles up as a failure.
var ErrNoData = errors.New("incident data not available")

// Store keeps the latest incident snapshot. Each save overwrites the
// previous record wholesale; no history is retained.
type Store struct {
	mu      sync.RWMutex
	rec     types.IncidentRecord
	saved   bool
	savedAt time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Save replaces the snapshot and returns consistency warnings. A level
// 3+4+5 sum that disagrees with the resolved total is flagged in either
// direction but never blocks the save.
func (s *Store) Save(rec types.IncidentRecord) []string {
	var warnings []string
	levelSum := rec.ResolvedLevel3 + rec.ResolvedLevel4 + rec.ResolvedLevel5
	if levelSum > rec.TotalResolved {
		warnings = append(warnings, fmt.Sprintf(
			"total resolved (%d) is less than the sum of 3rd, 4th and 5th level resolutions (%d); check the inputs",
			rec.TotalResolved, levelSum))
	}
	if levelSum < rec.TotalResolved {
		warnings = append(warnings, fmt.Sprintf(
			"total resolved (%d) is greater than the sum of 3rd, 4th and 5th level resolutions (%d); check the inputs",
			rec.TotalResolved, levelSum))
	}

	s.mu.Lock()
	s.rec = rec
	s.saved = true
	s.savedAt = time.Now()
	s.mu.Unlock()
	return warnings
}

// Snapshot returns the latest record and whether one has been saved.
func (s *Store) Snapshot() (types.IncidentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec, s.saved
}

// SavedAt reports when the snapshot was last saved.
func (s *Store) SavedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savedAt, s.saved
}

// PctResolvedThirdLevel is level-3 count over the level 3+4+5 sum.
func (s *Store) PctResolvedThirdLevel() (float64, error) {
	rec, ok := s.Snapshot()
	if !ok {
		return 0, ErrNoData
	}
	total := rec.ResolvedLevel3 + rec.ResolvedLevel4 + rec.ResolvedLevel5
	if total == 0 {
		return 0, ErrNoData
	}
	return float64(rec.ResolvedLevel3) / float64(total) * 100, nil
}

// PctResolvedWithin7Days is opened-and-resolved over total resolved.
func (s *Store) PctResolvedWithin7Days() (float64, error) {
	rec, ok := s.Snapshot()
	if !ok || rec.TotalResolved == 0 {
		return 0, ErrNoData
	}
	return float64(rec.OpenedAndResolved) / float64(rec.TotalResolved) * 100, nil
}

// PctTotalDefects is 2nd-level plus TSG defects over total resolved.
func (s *Store) PctTotalDefects() (float64, error) {
	rec, ok := s.Snapshot()
	if !ok || rec.TotalResolved == 0 {
		return 0, ErrNoData
	}
	return float64(rec.SecondLevelDefects+rec.TSGDefects) / float64(rec.TotalResolved) * 100, nil
}

// BreakdownRow is one row of a count-and-percent table.
type BreakdownRow struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// LevelBreakdown tables resolutions by support level. Level 3 is the
// operator floor, 4 management, 5 the vendor.
func (s *Store) LevelBreakdown() ([]BreakdownRow, error) {
	rec, ok := s.Snapshot()
	if !ok {
		return nil, ErrNoData
	}
	return breakdown([]string{"Level 3", "Level 4", "Level 5"},
		[]int{rec.ResolvedLevel3, rec.ResolvedLevel4, rec.ResolvedLevel5}), nil
}

// DefectBreakdown tables defects by type: BaSE (2nd level), TSG, and
// low-priority P5s.
func (s *Store) DefectBreakdown() ([]BreakdownRow, error) {
	rec, ok := s.Snapshot()
	if !ok {
		return nil, ErrNoData
	}
	return breakdown([]string{"Base", "TSG", "P5"},
		[]int{rec.SecondLevelDefects, rec.TSGDefects, rec.AutomationP5}), nil
}

func breakdown(labels []string, counts []int) []BreakdownRow {
	total := 0
	for _, c := range counts {
		total += c
	}
	rows := make([]BreakdownRow, len(labels))
	for i := range labels {
		rows[i] = BreakdownRow{Label: labels[i], Count: counts[i]}
		if total > 0 {
			rows[i].Percent = float64(counts[i]) / float64(total) * 100
		}
	}
	return rows
}
