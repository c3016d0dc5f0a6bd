package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
)

// LedgerRecordRequest is one incoming ledger record. Callers are
// expected to send records already parsed into the canonical shape;
// the only leniency here is the date, which may arrive in a handful of
// common layouts and degrades to absent when unparsable.
type LedgerRecordRequest struct {
	SourceID         string            `json:"source_id" binding:"required"`
	PrimaryKey       string            `json:"primary_key"`
	SecondaryKey     string            `json:"secondary_key"`
	CounterpartyName string            `json:"counterparty_name"`
	Amount           decimal.Decimal   `json:"amount"`
	IssueDate        string            `json:"issue_date"`
	StatusFields     map[string]string `json:"status_fields"`
}

// ToRecord converts the request record into the engine's input type.
func (r LedgerRecordRequest) ToRecord() recon.LedgerRecord {
	rec := recon.LedgerRecord{
		SourceID:         r.SourceID,
		PrimaryKey:       r.PrimaryKey,
		SecondaryKey:     r.SecondaryKey,
		CounterpartyName: r.CounterpartyName,
		Amount:           r.Amount,
		StatusFields:     r.StatusFields,
	}
	if parsed, ok := recon.ParseDate(r.IssueDate); ok {
		rec.IssueDate = parsed
	}
	return rec
}

// MatchConfigRequest carries optional per-request engine overrides.
// Nil fields keep the server defaults.
type MatchConfigRequest struct {
	AmountTolerance   *float64 `json:"amount_tolerance"`
	DateToleranceDays *int     `json:"date_tolerance_days"`
	FuzzyThreshold    *float64 `json:"fuzzy_threshold"`
	Workers           *int     `json:"workers"`
}

// Apply overlays the request overrides onto base.
func (r *MatchConfigRequest) Apply(base recon.MatchConfig) recon.MatchConfig {
	if r == nil {
		return base
	}
	if r.AmountTolerance != nil {
		base.AmountTolerance = decimal.NewFromFloat(*r.AmountTolerance)
	}
	if r.DateToleranceDays != nil {
		base.DateToleranceDays = *r.DateToleranceDays
	}
	if r.FuzzyThreshold != nil {
		base.FuzzyThreshold = *r.FuzzyThreshold
	}
	if r.Workers != nil {
		base.Workers = *r.Workers
	}
	return base
}

// ReconcileRequest is the POST /api/reconcile body. Empty collections
// are valid input, so the sides carry no required binding.
type ReconcileRequest struct {
	Left   []LedgerRecordRequest `json:"left"`
	Right  []LedgerRecordRequest `json:"right"`
	Config *MatchConfigRequest   `json:"config"`
}

// Records converts both sides into engine inputs.
func (r ReconcileRequest) Records() (left, right []recon.LedgerRecord) {
	left = make([]recon.LedgerRecord, 0, len(r.Left))
	for _, rec := range r.Left {
		left = append(left, rec.ToRecord())
	}
	right = make([]recon.LedgerRecord, 0, len(r.Right))
	for _, rec := range r.Right {
		right = append(right, rec.ToRecord())
	}
	return left, right
}
