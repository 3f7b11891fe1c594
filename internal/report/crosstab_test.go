package report_test

import (
	"bytes"
	"testing"

	"github.com/aellis6/base-reports/internal/report"
	"github.com/aellis6/base-reports/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crossTabSubset() []types.CallRecord {
	return []types.CallRecord{
		{Category: types.CategoryAutomation, Shift: types.ShiftPreload, HoldTime: 60},
		{Category: types.CategoryAutomation, Shift: types.ShiftPreload, HoldTime: 180},
		{Category: types.CategoryAutomation, Shift: types.ShiftNight, HoldTime: 300},
		{Category: types.CategoryOther, Shift: types.ShiftPreload, HoldTime: 30},
	}
}

func TestCrossTabMean(t *testing.T) {
	table, err := report.CrossTab(crossTabSubset(),
		[]string{report.DimCategory, report.DimShift},
		[]string{report.FieldHoldTime},
		report.AggMean)
	require.NoError(t, err)

	assert.Equal(t, []string{
		report.DimCategory, report.DimShift, report.FieldHoldTime, "Number of Calls",
	}, table.Columns)
	require.Len(t, table.Rows, 3)

	// Rows sorted by joined group key
	assert.Equal(t, []any{string(types.CategoryAutomation), string(types.ShiftNight), 300.0, 1}, table.Rows[0])
	assert.Equal(t, []any{string(types.CategoryAutomation), string(types.ShiftPreload), 120.0, 2}, table.Rows[1])
	assert.Equal(t, []any{string(types.CategoryOther), string(types.ShiftPreload), 30.0, 1}, table.Rows[2])
}

func TestCrossTabSum(t *testing.T) {
	table, err := report.CrossTab(crossTabSubset(),
		[]string{report.DimCategory},
		[]string{report.FieldHoldTime},
		report.AggSum)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []any{string(types.CategoryAutomation), 540.0, 3}, table.Rows[0])
	assert.Equal(t, []any{string(types.CategoryOther), 30.0, 1}, table.Rows[1])
}

func TestCrossTabValidation(t *testing.T) {
	subset := crossTabSubset()

	tests := map[string]struct {
		dims    []string
		metrics []string
		fn      report.AggFunc
	}{
		"NoDimensions":     {nil, []string{report.FieldHoldTime}, report.AggSum},
		"NoMetrics":        {[]string{report.DimShift}, nil, report.AggSum},
		"UnknownDimension": {[]string{"Bogus"}, []string{report.FieldHoldTime}, report.AggSum},
		"UnknownMetric":    {[]string{report.DimShift}, []string{"Bogus"}, report.AggSum},
		"UnknownAggregate": {[]string{report.DimShift}, []string{report.FieldHoldTime}, "median"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			table, err := report.CrossTab(subset, tt.dims, tt.metrics, tt.fn)
			assert.ErrorIs(t, err, report.ErrUnknownField)
			assert.Nil(t, table)
		})
	}
}

func TestCrossTabEmptySubset(t *testing.T) {
	table, err := report.CrossTab(nil,
		[]string{report.DimShift}, []string{report.FieldHoldTime}, report.AggSum)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Len(t, table.Columns, 3)
}

func TestWriteCSV(t *testing.T) {
	table, err := report.CrossTab(crossTabSubset(),
		[]string{report.DimCategory},
		[]string{report.FieldHoldTime},
		report.AggMax)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, table))

	expected := "Call Category,Hold Time (s),Number of Calls\n" +
		"Automation,300,3\n" +
		"Other,30,1\n"
	assert.Equal(t, expected, buf.String())
}
