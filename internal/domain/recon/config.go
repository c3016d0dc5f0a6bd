package recon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fuzzy-score factor weights. Each factor only contributes when both
// records carry the field; the score is renormalized over the weights
// actually present.
const (
	weightName   = 0.40
	weightAmount = 0.35
	weightDate   = 0.25
)

// Fixed confidences for the exact-identifier phases.
const (
	confidenceIdentifier          = 1.0
	confidenceSecondaryIdentifier = 0.9
)

// dateDecayHorizonDays is how far past the date tolerance the date
// proximity score ramps down to zero.
const dateDecayHorizonDays = 30

// MatchConfig holds the tunable knobs for a reconciliation run.
type MatchConfig struct {
	// AmountTolerance is the absolute amount difference still considered
	// equal, boundary inclusive. Default: 0.01 (1 cent).
	AmountTolerance decimal.Decimal
	// DateToleranceDays is the day distance still considered the same
	// date, boundary inclusive. Default: 3.
	DateToleranceDays int
	// FuzzyThreshold is the minimum weighted score for a Phase-3 match.
	// A candidate scoring exactly at the threshold is rejected.
	// Default: 0.8.
	FuzzyThreshold float64
	// Workers bounds the goroutines used to scan fuzzy candidates for a
	// single left record. 0 or 1 means sequential. Output is identical
	// either way.
	Workers int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() MatchConfig {
	return MatchConfig{
		AmountTolerance:   decimal.NewFromFloat(0.01),
		DateToleranceDays: 3,
		FuzzyThreshold:    0.8,
		Workers:           1,
	}
}

// Validate rejects configurations that would otherwise fail mid-run.
func (c MatchConfig) Validate() error {
	if c.AmountTolerance.IsNegative() {
		return fmt.Errorf("amount tolerance must not be negative, got %s", c.AmountTolerance)
	}
	if c.DateToleranceDays < 0 {
		return fmt.Errorf("date tolerance must not be negative, got %d", c.DateToleranceDays)
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy threshold must be in [0,1], got %g", c.FuzzyThreshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
