package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
)

// MemoryRepository is the in-memory Repository implementation. It keeps
// at most capacity runs, evicting the oldest when full.
type MemoryRepository struct {
	mu       sync.RWMutex
	runs     map[string]*Run
	order    []string // run IDs, oldest first
	capacity int
}

// DefaultCapacity bounds run history when the caller passes 0.
const DefaultCapacity = 100

// NewMemoryRepository creates a bounded in-memory run registry.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryRepository{
		runs:     make(map[string]*Run),
		capacity: capacity,
	}
}

// Compile-time check that MemoryRepository implements Repository
var _ Repository = (*MemoryRepository)(nil)

// SaveRun registers a finished run under a fresh UUID.
func (m *MemoryRepository) SaveRun(result *recon.ReconciliationResult) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.runs, oldest)
	}
	m.runs[run.ID] = run
	m.order = append(m.order, run.ID)

	return run, nil
}

// GetRun retrieves a run by ID, nil when unknown.
func (m *MemoryRepository) GetRun(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs[id], nil
}

// ListRuns returns up to limit runs, newest first.
func (m *MemoryRepository) ListRuns(limit int) ([]*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.order) {
		limit = len(m.order)
	}

	runs := make([]*Run, 0, limit)
	for i := len(m.order) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, m.runs[m.order[i]])
	}
	return runs, nil
}

// GetStats aggregates counters across every registered run.
func (m *MemoryRepository) GetStats() (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{TotalRuns: len(m.order)}

	var matchRateSum float64
	for _, id := range m.order {
		summary := m.runs[id].Result.Summary
		stats.TotalPairs += summary.MatchedPairs
		stats.TotalUnmatched += summary.UnmatchedLeft + summary.UnmatchedRight
		stats.DisputedPairs += summary.ByCategory[recon.CategoryDisputed]
		stats.ApprovedPairs += summary.ByCategory[recon.CategoryApproved]
		matchRateSum += summary.MatchRate
	}
	if stats.TotalRuns > 0 {
		stats.AverageMatchRate = matchRateSum / float64(stats.TotalRuns)
	}

	return stats, nil
}
