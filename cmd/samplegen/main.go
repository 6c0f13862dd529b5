// Command samplegen generates sample sales datasets for local development.
// It writes a CSV and an equivalent Excel workbook into the dataset
// directory so every loader path can be exercised without real data.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

var depts = []string{
	"Grocery", "Electronics", "Clothing", "Home & Garden",
	"Toys", "Sports", "Beauty", "Automotive",
}

func main() {
	var (
		outDir = flag.String("out", "datasets", "output directory")
		stores = flag.Int("stores", 10, "number of stores")
		weeks  = flag.Int("weeks", 52, "number of weeks of history")
		seed   = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	if err := run(*outDir, *stores, *weeks, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(outDir string, stores, weeks int, seed int64) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rows := generate(stores, weeks, seed)

	var g errgroup.Group
	g.Go(func() error {
		return writeCSV(filepath.Join(outDir, "amazon_sales_dataset.csv"), rows)
	})
	g.Go(func() error {
		return writeExcel(filepath.Join(outDir, "amazon_sales_dataset.xlsx"), rows)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("wrote %d rows to %s\n", len(rows), outDir)
	return nil
}

// generate builds weekly per-store, per-department sales with a mild upward
// trend and seasonal noise. The seed makes output reproducible.
func generate(stores, weeks int, seed int64) [][]string {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	rows := make([][]string, 0, stores*weeks*len(depts))
	for s := 1; s <= stores; s++ {
		base := 5000 + rng.Float64()*20000
		for w := 0; w < weeks; w++ {
			date := start.AddDate(0, 0, 7*w).Format("2006-01-02")
			for _, dept := range depts {
				trend := 1 + float64(w)*0.002
				noise := 0.7 + rng.Float64()*0.6
				sales := base * trend * noise / float64(len(depts))

				rows = append(rows, []string{
					strconv.Itoa(s),
					dept,
					date,
					strconv.FormatFloat(sales, 'f', 2, 64),
				})
			}
		}
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Store", "Dept", "Date", "Weekly_Sales"}); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return nil
}

func writeExcel(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]string{"Store", "Dept", "Date", "Weekly_Sales"}); err != nil {
		return err
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row[0], row[1], row[2], row[3]}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
