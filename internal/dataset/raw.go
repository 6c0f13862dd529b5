package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRaw reads a tabular source file without interpreting its columns,
// returning the header row and the data rows. Used by the dataset browsing
// endpoints, which serve arbitrary files from the dataset directory rather
// than the one parsed sales table.
func ReadRaw(path string) ([]string, [][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readRawExcel(path)
	default:
		rows, err = readRawCSV(path)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s is empty", ErrSourceNotFound, path)
	}
	return rows[0], rows[1:], nil
}

func readRawCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readRawExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err == nil && len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: no sheet with data in %s", ErrSourceNotFound, path)
}
