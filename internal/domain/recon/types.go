package recon

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchMethod identifies which matching phase produced a pair.
type MatchMethod string

const (
	MethodIdentifier          MatchMethod = "IDENTIFIER"
	MethodSecondaryIdentifier MatchMethod = "SECONDARY_IDENTIFIER"
	MethodFuzzy               MatchMethod = "FUZZY"
)

// Category is the business disposition assigned to a matched pair.
type Category string

const (
	CategoryApproved        Category = "APPROVED"
	CategoryPendingApproval Category = "PENDING_APPROVAL"
	CategoryDisputed        Category = "DISPUTED"
)

// LedgerRecord is one financial document from either side of the
// reconciliation. The engine never mutates it.
//
// Optional fields use their zero value as "absent": empty strings for
// identifiers and names, a zero time for IssueDate. Absent fields are
// simply unusable as matching criteria; they never fail a record outright.
type LedgerRecord struct {
	SourceID         string            `json:"source_id"`
	PrimaryKey       string            `json:"primary_key,omitempty"`
	SecondaryKey     string            `json:"secondary_key,omitempty"`
	CounterpartyName string            `json:"counterparty_name,omitempty"`
	Amount           decimal.Decimal   `json:"amount"`
	IssueDate        time.Time         `json:"issue_date,omitempty"`
	StatusFields     map[string]string `json:"status_fields,omitempty"`
}

// HasDate reports whether the record carries a usable issue date.
func (r LedgerRecord) HasDate() bool {
	return !r.IssueDate.IsZero()
}

// Discrepancy records a field-level disagreement between two matched
// records. Magnitude is the absolute amount difference in currency units
// for amount discrepancies, or the whole-day distance for date
// discrepancies.
type Discrepancy struct {
	Field      string  `json:"field"`
	LeftValue  string  `json:"left_value"`
	RightValue string  `json:"right_value"`
	Magnitude  float64 `json:"magnitude"`
}

// MatchPair is one successful pairing of a left and a right record.
// Records referenced by a pair are consumed and never re-paired.
type MatchPair struct {
	Left          LedgerRecord  `json:"left"`
	Right         LedgerRecord  `json:"right"`
	Method        MatchMethod   `json:"method"`
	Confidence    float64       `json:"confidence"`
	Discrepancies []Discrepancy `json:"discrepancies,omitempty"`
	Category      Category      `json:"category"`
}

// Clean reports whether the pair has no discrepancies.
func (p MatchPair) Clean() bool {
	return len(p.Discrepancies) == 0
}

// Summary holds the aggregate counters and derived ratios for a run.
// Ratios with a zero denominator are 0, never NaN.
type Summary struct {
	TotalLeft       int                 `json:"total_left"`
	TotalRight      int                 `json:"total_right"`
	MatchedPairs    int                 `json:"matched_pairs"`
	UnmatchedLeft   int                 `json:"unmatched_left"`
	UnmatchedRight  int                 `json:"unmatched_right"`
	ByMethod        map[MatchMethod]int `json:"by_method"`
	ByCategory      map[Category]int    `json:"by_category"`
	MatchedAmount   decimal.Decimal     `json:"matched_amount"`
	MatchRate       float64             `json:"match_rate"`
	ApprovalRate    float64             `json:"approval_rate"`
	DiscrepancyRate float64             `json:"discrepancy_rate"`
}

// ReconciliationResult is the full output of one engine invocation.
// Every input record appears in exactly one of Pairs, UnmatchedLeft or
// UnmatchedRight.
type ReconciliationResult struct {
	Pairs          []MatchPair    `json:"pairs"`
	UnmatchedLeft  []LedgerRecord `json:"unmatched_left"`
	UnmatchedRight []LedgerRecord `json:"unmatched_right"`
	Summary        Summary        `json:"summary"`
}
