package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/pkg/contracts/domain"
)

func rec(store int64, dept string, day int, sales float64) domain.SalesRecord {
	return domain.SalesRecord{
		Store:       domain.StoreID{Num: store, Numeric: true},
		Dept:        dept,
		Date:        time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		WeeklySales: sales,
	}
}

func TestSummarize(t *testing.T) {
	table := []domain.SalesRecord{
		rec(1, "Grocery", 1, 100),
		rec(1, "Toys", 8, 300),
		rec(2, "Grocery", 1, 150),
	}

	got := Summarize(table)

	assert.Equal(t, 550.0, got.TotalSales)
	assert.Equal(t, 3, got.TotalOrders)
	assert.InDelta(t, 183.333, got.AvgOrderValue, 0.001)
	assert.Equal(t, "Toys", got.TopDept)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)

	assert.Equal(t, 0.0, got.TotalSales)
	assert.Equal(t, 0, got.TotalOrders)
	assert.Equal(t, 0.0, got.AvgOrderValue)
	assert.Empty(t, got.TopDept)
}

func TestSummarizeTopDeptTieBreak(t *testing.T) {
	table := []domain.SalesRecord{
		rec(1, "Zebra", 1, 100),
		rec(1, "Apple", 1, 100),
	}

	// Equal totals resolve alphabetically.
	assert.Equal(t, "Apple", Summarize(table).TopDept)
}

func TestStorePerformance(t *testing.T) {
	table := []domain.SalesRecord{
		rec(2, "A", 1, 50),
		rec(1, "A", 1, 100),
		rec(1, "B", 8, 200),
	}

	got := StorePerformance(table)

	assert.Equal(t, []string{"1", "2"}, got.Stores)
	assert.Equal(t, []float64{300, 50}, got.Sales)
}

func TestDeptBreakdown(t *testing.T) {
	table := []domain.SalesRecord{
		rec(1, "Toys", 1, 40),
		rec(1, "Grocery", 1, 100),
		rec(2, "Toys", 8, 60),
	}

	got := DeptBreakdown(table)

	assert.Equal(t, []string{"Grocery", "Toys"}, got.Categories)
	assert.Equal(t, []float64{100, 100}, got.Sales)
}

func TestTopStores(t *testing.T) {
	table := []domain.SalesRecord{
		rec(1, "A", 1, 100),
		rec(2, "A", 1, 500),
		rec(3, "A", 1, 250),
	}

	got := TopStores(table, 2)

	assert.Equal(t, []string{"2", "3"}, got.Stores)
	assert.Equal(t, []float64{500, 250}, got.Sales)
}

func TestProfileDataset(t *testing.T) {
	headers := []string{"Store", "Date", "Weekly_Sales", "Dept"}
	rows := [][]string{
		{"1", "2024-01-01", "100.5", "Grocery"},
		{"2", "2024-01-08", "200", "Grocery"},
		{"1", "2024-01-15", "", "Toys"},
	}

	got := ProfileDataset("sales.csv", headers, rows)

	assert.Equal(t, "sales.csv", got.Name)
	assert.Equal(t, 3, got.RowCount)
	assert.Equal(t, 4, got.ColumnCount)
	require.Len(t, got.Columns, 4)

	byName := make(map[string]domain.ColumnProfile)
	for _, col := range got.Columns {
		byName[col.Column] = col
	}

	assert.Equal(t, "number", byName["Store"].DType)
	assert.Equal(t, "date", byName["Date"].DType)
	assert.Equal(t, "number", byName["Weekly_Sales"].DType)
	assert.Equal(t, "string", byName["Dept"].DType)

	assert.Equal(t, 1, byName["Weekly_Sales"].NullCount)
	assert.Equal(t, 2, byName["Weekly_Sales"].UniqueCount)
	assert.Equal(t, 2, byName["Dept"].UniqueCount)
	assert.Equal(t, []string{"1", "2", "1"}, byName["Store"].Samples)
}

func TestProfileDatasetShortRows(t *testing.T) {
	headers := []string{"a", "b"}
	rows := [][]string{{"x"}}

	got := ProfileDataset("ragged.csv", headers, rows)

	require.Len(t, got.Columns, 2)
	assert.Equal(t, 1, got.Columns[1].NullCount)
}
