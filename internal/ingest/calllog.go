// Package ingest validates raw call-log uploads and derives the
// categorical and time-based features every report is built on.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aellis6/base-reports/internal/types"
)

// RequiredColumns must all be present in an uploaded call log. The
// upload is rejected wholesale when any are missing.
var RequiredColumns = []string{
	"Call ID",
	"Start Time",
	"From",
	"To",
	"Total Duration",
	"Talk Duration",
	"Who Hung Up",
	"Abandoned",
	"Hold Time (s)",
	"Queue ID",
	"Extension",
}

// ErrMissingColumns is wrapped by SchemaError for errors.Is checks.
var ErrMissingColumns = errors.New("missing required columns")

// SchemaError reports which required columns an upload lacks.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("file structure mismatch: missing required columns: %s",
		strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumns }

// startTimeLayouts are tried in order when parsing Start Time values.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"01/02/2006 15:04:05",
	"2006-01-02 15:04",
}

// DecodeCallLog reads a delimited call-log export, validates its
// header, and returns the enriched working dataset. Rows whose Start
// Time does not parse are dropped; dropped reports how many. All other
// bad values are coerced, never fatal. resolve maps an extension to an
// agent display name and must not be nil.
func DecodeCallLog(r io.Reader, resolve func(string) string) (records []types.CallRecord, dropped int, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, 0, &SchemaError{Missing: missing}
	}

	field := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading call log: %w", err)
		}

		start, ok := parseStartTime(field(row, "Start Time"))
		if !ok {
			dropped++
			continue
		}

		rec := types.CallRecord{
			CallID:        strings.TrimSpace(field(row, "Call ID")),
			QueueID:       strings.TrimSpace(field(row, "Queue ID")),
			Extension:     strings.TrimSpace(field(row, "Extension")),
			From:          field(row, "From"),
			To:            field(row, "To"),
			WhoHungUp:     field(row, "Who Hung Up"),
			StartTime:     start,
			TotalDuration: coerceSeconds(field(row, "Total Duration")),
			TalkDuration:  coerceSeconds(field(row, "Talk Duration")),
			HoldTime:      coerceSeconds(field(row, "Hold Time (s)")),
			Abandoned:     strings.EqualFold(strings.TrimSpace(field(row, "Abandoned")), "true"),
		}
		if i, ok := idx["Traversed"]; ok && i < len(row) {
			rec.Traversed = row[i]
		}

		rec.Hour = start.Hour()
		rec.DayOfWeek = start.Weekday().String()
		rec.Shift = ShiftFor(start)
		rec.Category = CategoryFor(rec.QueueID, rec.From)
		rec.AgentName = resolve(rec.Extension)

		records = append(records, rec)
	}

	return records, dropped, nil
}

func parseStartTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// coerceSeconds parses a duration field; anything non-numeric counts as zero.
func coerceSeconds(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
