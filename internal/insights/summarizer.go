// Package insights derives headline dashboard figures and dataset profiles
// from the loaded sales table. Everything here is pure in-memory arithmetic
// over slices; results are deterministic for a given table.
package insights

import (
	"sort"
	"strconv"
	"strings"

	"retailpulse/internal/analytics"
	"retailpulse/pkg/contracts/domain"
)

// Summarize produces the headline figures block for the dashboard
func Summarize(table []domain.SalesRecord) domain.SalesSummary {
	summary := domain.SalesSummary{TotalOrders: len(table)}

	for _, rec := range table {
		summary.TotalSales += rec.WeeklySales
	}
	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalSales / float64(summary.TotalOrders)
	}

	// Top department by summed sales; ByDept is ascending by name so ties
	// resolve to the first department alphabetically.
	var best float64
	for i, pt := range analytics.ByDept(table) {
		if i == 0 || pt.WeeklySales > best {
			best = pt.WeeklySales
			summary.TopDept = pt.Dept
		}
	}

	return summary
}

// StorePerformance returns per-store sales totals, ascending by store id
func StorePerformance(table []domain.SalesRecord) domain.StorePerformance {
	sums := make(map[string]float64)
	ids := analytics.Stores(table)

	for _, rec := range table {
		sums[rec.Store.String()] += rec.WeeklySales
	}

	perf := domain.StorePerformance{
		Stores: make([]string, 0, len(ids)),
		Sales:  make([]float64, 0, len(ids)),
	}
	for _, id := range ids {
		perf.Stores = append(perf.Stores, id.String())
		perf.Sales = append(perf.Sales, sums[id.String()])
	}
	return perf
}

// DeptBreakdown returns per-department sales totals, ascending by name
func DeptBreakdown(table []domain.SalesRecord) domain.DeptBreakdown {
	points := analytics.ByDept(table)

	breakdown := domain.DeptBreakdown{
		Categories: make([]string, 0, len(points)),
		Sales:      make([]float64, 0, len(points)),
	}
	for _, pt := range points {
		breakdown.Categories = append(breakdown.Categories, pt.Dept)
		breakdown.Sales = append(breakdown.Sales, pt.WeeklySales)
	}
	return breakdown
}

// profileSampleSize is how many cell values each column profile carries
const profileSampleSize = 5

// ProfileDataset builds a column-by-column profile of raw tabular data for
// the dataset browsing endpoints. rows excludes the header.
func ProfileDataset(name string, headers []string, rows [][]string) domain.DatasetSummary {
	summary := domain.DatasetSummary{
		Name:        name,
		FileName:    name,
		Description: describeDataset(len(rows), len(headers)),
		FieldNames:  headers,
		FileType:    "csv",
		RowCount:    len(rows),
		ColumnCount: len(headers),
		Columns:     make([]domain.ColumnProfile, 0, len(headers)),
	}

	for i, header := range headers {
		summary.Columns = append(summary.Columns, profileColumn(header, i, rows))
	}
	return summary
}

func describeDataset(rows, cols int) string {
	return "Dataset with " + strconv.Itoa(rows) + " records and " + strconv.Itoa(cols) + " columns"
}

func profileColumn(header string, idx int, rows [][]string) domain.ColumnProfile {
	profile := domain.ColumnProfile{
		Column:  header,
		Samples: make([]string, 0, profileSampleSize),
	}

	unique := make(map[string]bool)
	for _, row := range rows {
		var val string
		if idx < len(row) {
			val = row[idx]
		}
		if val == "" {
			profile.NullCount++
			continue
		}
		unique[val] = true
		if len(profile.Samples) < profileSampleSize {
			profile.Samples = append(profile.Samples, val)
		}
	}
	profile.UniqueCount = len(unique)
	profile.DType = detectColumnType(header, profile.Samples)

	return profile
}

// detectColumnType classifies a column as number, date, or string using the
// same heuristics the dashboard relies on: mostly-parseable samples mean a
// number, a date-ish column name means a date, everything else is a string.
func detectColumnType(header string, samples []string) string {
	if len(samples) > 0 {
		numeric := 0
		for _, s := range samples {
			if _, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
				numeric++
			}
		}
		if float64(numeric) > float64(len(samples))*0.8 {
			return "number"
		}
	}

	lower := strings.ToLower(header)
	for _, kw := range []string{"date", "time", "year", "month"} {
		if strings.Contains(lower, kw) {
			return "date"
		}
	}
	return "string"
}

// TopStores returns the n best-performing stores by total sales, descending.
// Ties keep ascending store id order.
func TopStores(table []domain.SalesRecord, n int) domain.StorePerformance {
	perf := StorePerformance(table)

	type pair struct {
		store string
		sales float64
	}
	pairs := make([]pair, len(perf.Stores))
	for i := range perf.Stores {
		pairs[i] = pair{perf.Stores[i], perf.Sales[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].sales > pairs[j].sales })

	if n > 0 && n < len(pairs) {
		pairs = pairs[:n]
	}

	out := domain.StorePerformance{
		Stores: make([]string, len(pairs)),
		Sales:  make([]float64, len(pairs)),
	}
	for i, p := range pairs {
		out.Stores[i] = p.store
		out.Sales[i] = p.sales
	}
	return out
}
