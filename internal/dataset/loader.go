package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"retailpulse/pkg/contracts/domain"
)

// Loader errors
var (
	ErrSourceNotFound = errors.New("dataset source not found")
	ErrMissingColumn  = errors.New("required column missing")
)

// maxRows caps how many records a single load materializes so a runaway
// source file cannot exhaust memory.
const maxRows = 1_000_000

// dateLayouts are tried in order when parsing the date column
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
}

// Loader reads a sales table from a CSV or Excel source file
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a loader for the given source path
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		path:   path,
		logger: logger.With(slog.String("component", "dataset_loader")),
	}
}

// Load reads and parses the source file into an immutable record table.
// Column names are normalized (whitespace trimmed, case-insensitive match)
// and the date column is parsed before the table is returned. Rows that
// cannot be parsed are skipped with a warning rather than failing the load.
func (l *Loader) Load() ([]domain.SalesRecord, error) {
	if _, err := os.Stat(l.path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, l.path)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".xlsx":
		rows, err = l.readExcel()
	default:
		rows, err = readRawCSV(l.path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrSourceNotFound, l.path)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	table := make([]domain.SalesRecord, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		rec, ok := l.parseRow(row, cols, i+2)
		if !ok {
			skipped++
			continue
		}
		table = append(table, rec)
		if len(table) >= maxRows {
			l.logger.Warn("row cap reached, truncating dataset",
				slog.String("path", l.path),
				slog.Int("max_rows", maxRows))
			break
		}
	}

	l.logger.Info("dataset loaded",
		slog.String("path", l.path),
		slog.Int("rows", len(table)),
		slog.Int("skipped", skipped))

	return table, nil
}

func (l *Loader) readExcel() ([][]string, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSourceNotFound)
	}

	// The table lives on the first sheet that actually has a header row
	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err == nil && len(rows) > 1 {
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: no sheet with data in %s", ErrSourceNotFound, l.path)
}

// columnIndex holds the resolved position of each recognized column.
// Dept is optional in some datasets; -1 marks it absent.
type columnIndex struct {
	store, dept, date, sales int
}

func mapColumns(header []string) (columnIndex, error) {
	cols := columnIndex{store: -1, dept: -1, date: -1, sales: -1}
	for i, raw := range header {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "store":
			cols.store = i
		case "dept", "department":
			cols.dept = i
		case "date":
			cols.date = i
		case "weekly_sales", "sales_amount", "sales":
			cols.sales = i
		}
	}

	for _, req := range []struct {
		name string
		idx  int
	}{
		{"Store", cols.store},
		{"Date", cols.date},
		{"Weekly_Sales", cols.sales},
	} {
		if req.idx < 0 {
			return cols, fmt.Errorf("%w: %s", ErrMissingColumn, req.name)
		}
	}
	return cols, nil
}

func (l *Loader) parseRow(row []string, cols columnIndex, line int) (domain.SalesRecord, bool) {
	need := cols.store
	if cols.date > need {
		need = cols.date
	}
	if cols.sales > need {
		need = cols.sales
	}
	if len(row) <= need {
		return domain.SalesRecord{}, false
	}

	date, err := parseDate(strings.TrimSpace(row[cols.date]))
	if err != nil {
		l.logger.Warn("skipping row with unparseable date",
			slog.Int("line", line),
			slog.String("value", row[cols.date]))
		return domain.SalesRecord{}, false
	}

	sales, err := strconv.ParseFloat(strings.TrimSpace(row[cols.sales]), 64)
	if err != nil {
		l.logger.Warn("skipping row with unparseable sales amount",
			slog.Int("line", line),
			slog.String("value", row[cols.sales]))
		return domain.SalesRecord{}, false
	}

	rec := domain.SalesRecord{
		Store:       domain.ParseStoreID(strings.TrimSpace(row[cols.store])),
		Date:        date,
		WeeklySales: sales,
	}
	if cols.dept >= 0 && cols.dept < len(row) {
		rec.Dept = strings.TrimSpace(row[cols.dept])
	}
	return rec, true
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
