package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"retailpulse/internal/analytics"
	"retailpulse/internal/dataset"
	"retailpulse/internal/insights"
	"retailpulse/pkg/contracts/domain"
)

// Pagination bounds for raw dataset reads
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// DatasetPage is one window of raw rows from a dataset file
type DatasetPage struct {
	Dataset string     `json:"dataset"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}

// DataService serves analytics queries and dataset browsing over the loaded
// sales table and the dataset directory.
type DataService struct {
	manager    *dataset.Manager
	datasetDir string
	logger     *slog.Logger
}

// NewDataService creates a data service backed by the given dataset manager
func NewDataService(manager *dataset.Manager, datasetDir string, logger *slog.Logger) *DataService {
	return &DataService{
		manager:    manager,
		datasetDir: datasetDir,
		logger:     logger.With(slog.String("service", "data")),
	}
}

// Query runs an analytics view over the sales table
func (s *DataService) Query(ctx context.Context, req analytics.ViewRequest) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.manager.Table()
	if err != nil {
		return nil, err
	}
	return analytics.Compute(table, req)
}

// Stores returns the distinct store identifiers in the sales table
func (s *DataService) Stores(ctx context.Context) ([]domain.StoreID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.manager.Table()
	if err != nil {
		return nil, err
	}
	return analytics.Stores(table), nil
}

// Summary returns the headline dashboard figures
func (s *DataService) Summary(ctx context.Context) (domain.SalesSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.SalesSummary{}, err
	}

	table, err := s.manager.Table()
	if err != nil {
		return domain.SalesSummary{}, err
	}
	return insights.Summarize(table), nil
}

// StorePerformance returns per-store sales totals
func (s *DataService) StorePerformance(ctx context.Context) (domain.StorePerformance, error) {
	if err := ctx.Err(); err != nil {
		return domain.StorePerformance{}, err
	}

	table, err := s.manager.Table()
	if err != nil {
		return domain.StorePerformance{}, err
	}
	return insights.StorePerformance(table), nil
}

// DeptBreakdown returns per-department sales totals
func (s *DataService) DeptBreakdown(ctx context.Context) (domain.DeptBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeptBreakdown{}, err
	}

	table, err := s.manager.Table()
	if err != nil {
		return domain.DeptBreakdown{}, err
	}
	return insights.DeptBreakdown(table), nil
}

// ListDatasets enumerates the tabular files in the dataset directory,
// ascending by name.
func (s *DataService) ListDatasets(ctx context.Context) ([]domain.DatasetInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.datasetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.DatasetInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	infos := make([]domain.DatasetInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !supportedDataset(entry.Name()) {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			s.logger.Warn("skipping unreadable dataset file",
				slog.String("name", entry.Name()),
				slog.String("error", err.Error()))
			continue
		}

		infos = append(infos, domain.DatasetInfo{
			Name:     entry.Name(),
			Path:     filepath.Join(s.datasetDir, entry.Name()),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// DatasetData reads one page of raw rows from the named dataset file
func (s *DataService) DatasetData(ctx context.Context, name string, limit, offset int) (DatasetPage, error) {
	if err := ctx.Err(); err != nil {
		return DatasetPage{}, err
	}

	path, err := s.resolveDataset(name)
	if err != nil {
		return DatasetPage{}, err
	}

	headers, rows, err := dataset.ReadRaw(path)
	if err != nil {
		return DatasetPage{}, err
	}

	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	page := DatasetPage{
		Dataset: name,
		Columns: headers,
		Rows:    [][]string{},
		Total:   len(rows),
		Limit:   limit,
		Offset:  offset,
	}
	if offset < len(rows) {
		end := offset + limit
		if end > len(rows) {
			end = len(rows)
		}
		page.Rows = rows[offset:end]
	}
	return page, nil
}

// ProfileDataset builds a column-by-column profile of the named dataset
func (s *DataService) ProfileDataset(ctx context.Context, name string) (domain.DatasetSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.DatasetSummary{}, err
	}

	path, err := s.resolveDataset(name)
	if err != nil {
		return domain.DatasetSummary{}, err
	}

	headers, rows, err := dataset.ReadRaw(path)
	if err != nil {
		return domain.DatasetSummary{}, err
	}
	return insights.ProfileDataset(name, headers, rows), nil
}

// resolveDataset validates the dataset name and returns its path inside the
// dataset directory. Names with separators or unsupported extensions are
// rejected before the filesystem is touched.
func (s *DataService) resolveDataset(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidDatasetName, name)
	}
	if !supportedDataset(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDatasetName, name)
	}

	path := filepath.Join(s.datasetDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
	}
	return path, nil
}

func supportedDataset(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}
