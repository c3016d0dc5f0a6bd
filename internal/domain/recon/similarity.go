package recon

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// nameSimilarity is the token-set similarity between two counterparty
// names: |intersection| / |union| of their whitespace-split word sets.
// Returns 0 if either set is empty, 1 if the sets are identical.
func nameSimilarity(left, right string) float64 {
	a := tokenSet(left)
	b := tokenSet(right)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	return float64(intersection) / float64(union)
}

// amountProximity scores how close two amounts are: 1.0 when the
// absolute difference is within tolerance (boundary inclusive),
// otherwise decaying linearly as 1 - diff/max(left, right).
func amountProximity(left, right, tolerance decimal.Decimal) float64 {
	diff := left.Sub(right).Abs()
	if diff.LessThanOrEqual(tolerance) {
		return 1.0
	}

	larger := decimal.Max(left, right)
	if larger.IsZero() {
		return 0
	}

	score := 1.0 - diff.Div(larger).InexactFloat64()
	return math.Max(0, score)
}

// dateProximity scores how close two dates are: 1.0 within the day
// tolerance (boundary inclusive), otherwise ramping linearly to 0
// across a 30-day horizon.
func dateProximity(left, right time.Time, toleranceDays int) float64 {
	days := dayDistance(left, right)
	if days <= float64(toleranceDays) {
		return 1.0
	}
	return math.Max(0, 1.0-days/dateDecayHorizonDays)
}

// dayDistance is the absolute distance between two timestamps in days.
func dayDistance(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Hours() / 24)
}

// fuzzyScore computes the weighted similarity between two records.
// Factors where either side is missing the field are excluded from both
// numerator and denominator, so sparse records are scored on what they
// have rather than penalized for what they lack. Returns 0 when no
// factor is present on both sides.
func fuzzyScore(left, right LedgerRecord, cfg MatchConfig) float64 {
	var score, totalWeight float64

	if left.CounterpartyName != "" && right.CounterpartyName != "" {
		score += weightName * nameSimilarity(left.CounterpartyName, right.CounterpartyName)
		totalWeight += weightName
	}

	// Amounts are required fields; always scored.
	score += weightAmount * amountProximity(NormalizeAmount(left.Amount), NormalizeAmount(right.Amount), cfg.AmountTolerance)
	totalWeight += weightAmount

	if left.HasDate() && right.HasDate() {
		score += weightDate * dateProximity(left.IssueDate, right.IssueDate, cfg.DateToleranceDays)
		totalWeight += weightDate
	}

	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}
