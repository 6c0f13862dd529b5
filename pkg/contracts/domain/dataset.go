package domain

import "time"

// DatasetInfo describes one dataset file available to the dashboard
type DatasetInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// ColumnProfile describes one column of a loaded dataset.
// Mirrors the summary shape the dashboard's visualization layer expects.
type ColumnProfile struct {
	Column      string   `json:"column"`
	DType       string   `json:"dtype"`
	Samples     []string `json:"samples"`
	NullCount   int      `json:"null_count"`
	UniqueCount int      `json:"unique_count"`
}

// DatasetSummary is the profiling result for a whole dataset
type DatasetSummary struct {
	Name        string          `json:"name"`
	FileName    string          `json:"file_name"`
	Description string          `json:"dataset_description"`
	FieldNames  []string        `json:"field_names"`
	FileType    string          `json:"file_type"`
	RowCount    int             `json:"size"`
	ColumnCount int             `json:"column_count"`
	Columns     []ColumnProfile `json:"columns"`
}

// SalesSummary is the headline figures block for the dashboard
type SalesSummary struct {
	TotalSales    float64 `json:"totalSales"`
	TotalOrders   int     `json:"totalOrders"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	TopDept       string  `json:"topCategory"`
}

// StorePerformance holds per-store sales totals in parallel slices,
// the shape the dashboard's chart library consumes directly.
type StorePerformance struct {
	Stores []string  `json:"stores"`
	Sales  []float64 `json:"sales"`
}

// DeptBreakdown holds per-department sales totals in parallel slices
type DeptBreakdown struct {
	Categories []string  `json:"categories"`
	Sales      []float64 `json:"sales"`
}
