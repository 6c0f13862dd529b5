package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/analytics"
)

func TestWriteCSVTimeSeries(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []analytics.DatePoint{
		{Date: "2024-01-01", WeeklySales: 100.5},
		{Date: "2024-01-08", WeeklySales: 200},
	})
	require.NoError(t, err)

	assert.Equal(t, "date,weekly_sales\n2024-01-01,100.5\n2024-01-08,200\n", buf.String())
}

func TestWriteCSVByDept(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []analytics.DeptPoint{{Dept: "Grocery", WeeklySales: 50}})
	require.NoError(t, err)

	assert.Equal(t, "dept,weekly_sales\nGrocery,50\n", buf.String())
}

func TestWriteCSVMoMPct(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []analytics.PctPoint{
		{YearMonth: "2024-01", Pct: 0},
		{YearMonth: "2024-02", Pct: -12.5},
	})
	require.NoError(t, err)

	assert.Equal(t, "year_month,pct\n2024-01,0\n2024-02,-12.5\n", buf.String())
}

func TestWriteCSVEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []analytics.AvgPoint{})
	require.NoError(t, err)

	assert.Equal(t, "date,value\n", buf.String())
}

func TestWriteCSVUnsupportedType(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, "not a view result")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "retailpulse_monthly.csv", FileName("monthly"))
}
