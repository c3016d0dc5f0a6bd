package dto

import (
	"time"

	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/store"
)

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// NewHealthResponse creates a healthy response stamped with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
}

// ReconcileResponse is the POST /api/reconcile body: the registered run
// ID plus the full engine result.
type ReconcileResponse struct {
	RunID     string                      `json:"run_id"`
	CreatedAt time.Time                   `json:"created_at"`
	Result    *recon.ReconciliationResult `json:"result"`
}

// RunSummaryResponse is one entry in the run listing; the full result is
// available via GET /api/runs/:id.
type RunSummaryResponse struct {
	RunID     string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Summary   recon.Summary `json:"summary"`
}

// RunListResponse is the GET /api/runs body.
type RunListResponse struct {
	Runs  []RunSummaryResponse `json:"runs"`
	Count int                  `json:"count"`
}

// ToRunSummary converts a stored run into its listing entry.
func ToRunSummary(run *store.Run) RunSummaryResponse {
	return RunSummaryResponse{
		RunID:     run.ID,
		CreatedAt: run.CreatedAt,
		Summary:   run.Result.Summary,
	}
}

// UnmatchedResponse is the GET /api/runs/:id/unmatched body.
type UnmatchedResponse struct {
	RunID   string               `json:"run_id"`
	Side    string               `json:"side"`
	Records []recon.LedgerRecord `json:"records"`
	Count   int                  `json:"count"`
}
