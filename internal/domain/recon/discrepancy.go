package recon

import (
	"math"
	"time"
)

// Field names reported in discrepancies.
const (
	FieldAmount    = "amount"
	FieldIssueDate = "issue_date"
)

// detectDiscrepancies re-compares amount and date on a matched pair
// against the same tolerances Phase 3 scores with. The tolerances apply
// uniformly to every pair, not just fuzzy-matched ones: an exact
// invoice-number match with a $5 amount gap is still a discrepancy.
//
// Boundaries are inclusive: a difference exactly at tolerance is clean.
func detectDiscrepancies(left, right LedgerRecord, cfg MatchConfig) []Discrepancy {
	var found []Discrepancy

	leftAmount := NormalizeAmount(left.Amount)
	rightAmount := NormalizeAmount(right.Amount)
	if diff := leftAmount.Sub(rightAmount).Abs(); diff.GreaterThan(cfg.AmountTolerance) {
		found = append(found, Discrepancy{
			Field:      FieldAmount,
			LeftValue:  left.Amount.String(),
			RightValue: right.Amount.String(),
			Magnitude:  diff.InexactFloat64(),
		})
	}

	// A date missing on either side is unverifiable, not discrepant.
	if left.HasDate() && right.HasDate() {
		if days := dayDistance(left.IssueDate, right.IssueDate); days > float64(cfg.DateToleranceDays) {
			found = append(found, Discrepancy{
				Field:      FieldIssueDate,
				LeftValue:  left.IssueDate.Format(time.DateOnly),
				RightValue: right.IssueDate.Format(time.DateOnly),
				Magnitude:  math.Round(days),
			})
		}
	}

	return found
}
