package analytics

import (
	"fmt"
	"sort"
	"time"

	"retailpulse/pkg/contracts/domain"
)

// Output row shapes, one per view. Each serializes to a flat JSON object so
// the dashboard can feed them to its chart library unchanged.

// DatePoint is one time_series row
type DatePoint struct {
	Date        string  `json:"date"`
	WeeklySales float64 `json:"weekly_sales"`
}

// MonthPoint is one monthly row
type MonthPoint struct {
	YearMonth   string  `json:"year_month"`
	WeeklySales float64 `json:"weekly_sales"`
}

// DeptPoint is one by_dept row
type DeptPoint struct {
	Dept        string  `json:"dept"`
	WeeklySales float64 `json:"weekly_sales"`
}

// AvgPoint is one moving_avg row
type AvgPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// PctPoint is one mom_pct row
type PctPoint struct {
	YearMonth string  `json:"year_month"`
	Pct       float64 `json:"pct"`
}

// Compute filters the table per the request and dispatches to the named
// view. The table is never mutated; every view returns a freshly built,
// deterministically ordered slice.
func Compute(table []domain.SalesRecord, req ViewRequest) (interface{}, error) {
	rows := Filter(table, req.Store, req.Start, req.End)

	switch req.View {
	case ViewTimeSeries:
		return TimeSeries(rows), nil
	case ViewMonthly:
		return Monthly(rows), nil
	case ViewByDept:
		return ByDept(rows), nil
	case ViewMovingAvg:
		return MovingAvg(rows, req.Window), nil
	case ViewMoMPct:
		return MoMPct(rows), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, req.View)
	}
}

// Filter returns the order-preserving subset of table matching the store
// filter and the inclusive date bounds. With no constraints the table is
// returned unchanged.
func Filter(table []domain.SalesRecord, store string, start, end *time.Time) []domain.SalesRecord {
	if store == "" && start == nil && end == nil {
		return table
	}

	out := make([]domain.SalesRecord, 0, len(table))
	for _, rec := range table {
		if store != "" && !rec.Store.Matches(store) {
			continue
		}
		if start != nil && rec.Date.Before(*start) {
			continue
		}
		if end != nil && rec.Date.After(*end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// groupSum buckets weekly sales by the string produced by keyFn and returns
// the totals ascending by key. Keys are built so that lexical order equals
// the domain order (ISO dates, zero-padded months, plain dept names).
func groupSum(rows []domain.SalesRecord, keyFn func(domain.SalesRecord) string) ([]string, map[string]float64) {
	sums := make(map[string]float64)
	keys := make([]string, 0)
	for _, rec := range rows {
		k := keyFn(rec)
		if _, seen := sums[k]; !seen {
			keys = append(keys, k)
		}
		sums[k] += rec.WeeklySales
	}
	sort.Strings(keys)
	return keys, sums
}

// TimeSeries sums weekly sales per calendar date, ascending by date.
func TimeSeries(rows []domain.SalesRecord) []DatePoint {
	keys, sums := groupSum(rows, func(r domain.SalesRecord) string {
		return r.Date.Format("2006-01-02")
	})

	out := make([]DatePoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, DatePoint{Date: k, WeeklySales: sums[k]})
	}
	return out
}

// Monthly sums weekly sales per calendar month, ascending by month.
// Days collapse into their "YYYY-MM" bucket regardless of position.
func Monthly(rows []domain.SalesRecord) []MonthPoint {
	keys, sums := groupSum(rows, func(r domain.SalesRecord) string {
		return r.Date.Format("2006-01")
	})

	out := make([]MonthPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthPoint{YearMonth: k, WeeklySales: sums[k]})
	}
	return out
}

// ByDept sums weekly sales per department, ascending by department name.
// Departments with no rows after filtering are absent, not zero.
func ByDept(rows []domain.SalesRecord) []DeptPoint {
	keys, sums := groupSum(rows, func(r domain.SalesRecord) string {
		return r.Dept
	})

	out := make([]DeptPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, DeptPoint{Dept: k, WeeklySales: sums[k]})
	}
	return out
}

// MovingAvg computes a trailing mean over the per-date totals. The window
// shrinks near the start of the series, so the first point's average equals
// its own total and a window of 1 reproduces the raw totals.
func MovingAvg(rows []domain.SalesRecord, window int) []AvgPoint {
	if window < 1 {
		window = DefaultWindow
	}

	series := TimeSeries(rows)
	out := make([]AvgPoint, 0, len(series))
	for i, pt := range series {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		var sum float64
		for j := lo; j <= i; j++ {
			sum += series[j].WeeklySales
		}
		out = append(out, AvgPoint{
			Date:  pt.Date,
			Value: sum / float64(i-lo+1),
		})
	}
	return out
}

// MoMPct computes month-over-month percent change over the monthly totals.
// The first period has no predecessor and reports 0 by convention. When the
// previous month's total is exactly zero the ratio is undefined; the engine
// reports 0 there as well rather than emitting an unbounded value.
func MoMPct(rows []domain.SalesRecord) []PctPoint {
	months := Monthly(rows)
	out := make([]PctPoint, 0, len(months))
	for i, m := range months {
		var pct float64
		if i > 0 && months[i-1].WeeklySales != 0 {
			prev := months[i-1].WeeklySales
			pct = (m.WeeklySales - prev) / prev * 100
		}
		out = append(out, PctPoint{YearMonth: m.YearMonth, Pct: pct})
	}
	return out
}

// Stores returns the distinct store ids present in the table, ascending.
func Stores(table []domain.SalesRecord) []domain.StoreID {
	seen := make(map[string]bool)
	ids := make([]domain.StoreID, 0)
	for _, rec := range table {
		k := rec.Store.String()
		if !seen[k] {
			seen[k] = true
			ids = append(ids, rec.Store)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}
