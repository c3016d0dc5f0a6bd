// Package store keeps a registry of recent reconciliation runs so the
// API can serve results after the reconcile call returns. Runs live for
// the lifetime of the process; durable storage is deliberately not
// provided here.
package store

import (
	"time"

	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
)

// Run is one registered reconciliation run.
type Run struct {
	ID        string                      `json:"id"`
	CreatedAt time.Time                   `json:"created_at"`
	Result    *recon.ReconciliationResult `json:"result"`
}

// Stats aggregates counters across every registered run.
type Stats struct {
	TotalRuns        int     `json:"total_runs"`
	TotalPairs       int     `json:"total_pairs"`
	TotalUnmatched   int     `json:"total_unmatched"`
	DisputedPairs    int     `json:"disputed_pairs"`
	ApprovedPairs    int     `json:"approved_pairs"`
	AverageMatchRate float64 `json:"average_match_rate"`
}

// Repository defines the run-registry interface. The interface exists so
// handler tests can swap in a stub and so a durable implementation could
// be added without touching the API layer.
type Repository interface {
	// SaveRun registers a finished run and returns it with its assigned ID.
	SaveRun(result *recon.ReconciliationResult) (*Run, error)

	// GetRun retrieves a run by ID. Returns nil when unknown.
	GetRun(id string) (*Run, error)

	// ListRuns returns up to limit recent runs, newest first.
	ListRuns(limit int) ([]*Run, error)

	// GetStats returns aggregate statistics across registered runs.
	GetStats() (*Stats, error)
}
