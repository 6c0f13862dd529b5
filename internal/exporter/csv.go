// Package exporter renders analytics view results as downloadable files
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"retailpulse/internal/analytics"
)

// formatValue renders a float the way the dashboard displays it, without
// trailing zero noise.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes a view result as CSV with a header row. The result must be
// one of the engine's output slices.
func WriteCSV(w io.Writer, result interface{}) error {
	cw := csv.NewWriter(w)

	switch points := result.(type) {
	case []analytics.DatePoint:
		cw.Write([]string{"date", "weekly_sales"})
		for _, p := range points {
			cw.Write([]string{p.Date, formatValue(p.WeeklySales)})
		}
	case []analytics.MonthPoint:
		cw.Write([]string{"year_month", "weekly_sales"})
		for _, p := range points {
			cw.Write([]string{p.YearMonth, formatValue(p.WeeklySales)})
		}
	case []analytics.DeptPoint:
		cw.Write([]string{"dept", "weekly_sales"})
		for _, p := range points {
			cw.Write([]string{p.Dept, formatValue(p.WeeklySales)})
		}
	case []analytics.AvgPoint:
		cw.Write([]string{"date", "value"})
		for _, p := range points {
			cw.Write([]string{p.Date, formatValue(p.Value)})
		}
	case []analytics.PctPoint:
		cw.Write([]string{"year_month", "pct"})
		for _, p := range points {
			cw.Write([]string{p.YearMonth, formatValue(p.Pct)})
		}
	default:
		return fmt.Errorf("unsupported export type %T", result)
	}

	cw.Flush()
	return cw.Error()
}

// FileName builds the download file name for a view export
func FileName(view string) string {
	return "retailpulse_" + view + ".csv"
}
