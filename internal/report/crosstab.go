package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aellis6/base-reports/internal/types"
)

// AggFunc names the aggregation applied to each metric of a cross-tab.
type AggFunc string

const (
	AggSum   AggFunc = "sum"
	AggMean  AggFunc = "mean"
	AggCount AggFunc = "count"
	AggMax   AggFunc = "max"
	AggMin   AggFunc = "min"
)

// countColumn is always appended to a cross-tab.
const countColumn = "Number of Calls"

// Table is a rendered report table: dimension cells are strings, metric
// cells float64, the trailing count cell int.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// CrossTab groups the subset by the given dimensions and aggregates
// the given metrics with fn, always appending a count-of-calls column.
// Any unknown dimension, metric, or function aborts the whole request
// with ErrUnknownField; no partial table is returned.
func CrossTab(subset []types.CallRecord, dims, metrics []string, fn AggFunc) (*Table, error) {
	if len(dims) == 0 || len(metrics) == 0 {
		return nil, fmt.Errorf("%w: at least one dimension and one metric required", ErrUnknownField)
	}
	switch fn {
	case AggSum, AggMean, AggCount, AggMax, AggMin:
	default:
		return nil, fmt.Errorf("%w: aggregation %q", ErrUnknownField, fn)
	}
	for _, d := range dims {
		if _, ok := dimValue(types.CallRecord{}, d); !ok {
			return nil, fmt.Errorf("%w: dimension %q", ErrUnknownField, d)
		}
	}
	for _, m := range metrics {
		if _, ok := metricValue(types.CallRecord{}, m); !ok {
			return nil, fmt.Errorf("%w: metric %q", ErrUnknownField, m)
		}
	}

	type group struct {
		keys   []string
		values [][]float64 // per metric
		count  int
	}
	groups := make(map[string]*group)

	for _, rec := range subset {
		keys := make([]string, len(dims))
		for i, d := range dims {
			keys[i], _ = dimValue(rec, d)
		}
		id := strings.Join(keys, "\x1f")
		g, ok := groups[id]
		if !ok {
			g = &group{keys: keys, values: make([][]float64, len(metrics))}
			groups[id] = g
		}
		for i, m := range metrics {
			v, _ := metricValue(rec, m)
			g.values[i] = append(g.values[i], v)
		}
		g.count++
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := &Table{Columns: append(append([]string{}, dims...), append(metrics, countColumn)...)}
	for _, id := range ids {
		g := groups[id]
		row := make([]any, 0, len(dims)+len(metrics)+1)
		for _, k := range g.keys {
			row = append(row, k)
		}
		for i := range metrics {
			row = append(row, round2(aggregate(fn, g.values[i])))
		}
		row = append(row, g.count)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func aggregate(fn AggFunc, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch fn {
	case AggCount:
		return float64(len(values))
	case AggSum:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	case AggMean:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	case AggMax:
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	default: // AggMin
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	}
}

// WriteCSV renders a table as the delimited export artifact offered for
// every aggregated report view.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			switch x := v.(type) {
			case string:
				cells[i] = x
			case float64:
				cells[i] = strconv.FormatFloat(x, 'f', -1, 64)
			case int:
				cells[i] = strconv.Itoa(x)
			default:
				cells[i] = fmt.Sprint(x)
			}
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
