package dataset

import (
	"log/slog"
	"sync"

	"retailpulse/pkg/contracts/domain"
)

// Manager owns the process-wide sales table. The source is read at most
// once: concurrent first-use races on the lazy load are serialized behind
// sync.Once, and the table is treated as immutable after that.
type Manager struct {
	loader *Loader

	once  sync.Once
	table []domain.SalesRecord
	err   error
}

// NewManager creates a manager that loads from the given loader on first use
func NewManager(loader *Loader) *Manager {
	return &Manager{loader: loader}
}

// Table returns the loaded sales table, triggering the load on first call.
// A failed load is sticky: the source path is fixed for the process
// lifetime, so retrying cannot succeed.
func (m *Manager) Table() ([]domain.SalesRecord, error) {
	m.once.Do(func() {
		m.table, m.err = m.loader.Load()
	})
	return m.table, m.err
}

// Warm eagerly loads the table at startup so the first request does not pay
// the parse cost. Load failure is reported but not fatal; requests will
// surface the same error.
func (m *Manager) Warm(logger *slog.Logger) {
	if _, err := m.Table(); err != nil {
		logger.Warn("dataset warm-up failed",
			slog.String("error", err.Error()))
	}
}
