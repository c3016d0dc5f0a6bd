package cli

import (
	"flag"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/config"
)

// ReconcileFlags are the flags for the reconcile command.
type ReconcileFlags struct {
	LeftPath   string
	RightPath  string
	ConfigPath string

	// Engine overrides. Negative values (and zero workers) mean
	// "not set, use the config file value".
	Threshold       float64
	AmountTolerance float64
	DateTolerance   int
	Workers         int

	JSON    bool
	Verbose bool
}

// ParseReconcileFlags parses command line flags for the reconcile command.
func ParseReconcileFlags() *ReconcileFlags {
	flags := &ReconcileFlags{}
	flag.StringVar(&flags.LeftPath, "left", "", "Path to the left collection (JSON array of ledger records)")
	flag.StringVar(&flags.RightPath, "right", "", "Path to the right collection (JSON array of ledger records)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.Float64Var(&flags.Threshold, "threshold", -1, "Fuzzy match acceptance threshold (0..1)")
	flag.Float64Var(&flags.AmountTolerance, "amount-tolerance", -1, "Amount tolerance for discrepancy detection")
	flag.IntVar(&flags.DateTolerance, "date-tolerance", -1, "Date tolerance in days")
	flag.IntVar(&flags.Workers, "workers", 0, "Fuzzy-phase worker count (0 = config value)")
	flag.BoolVar(&flags.JSON, "json", false, "Emit the full result as JSON")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// MatchConfig builds the engine config from the loaded configuration,
// overlaid with any flags the user set.
func (f *ReconcileFlags) MatchConfig(cfg *config.Config) recon.MatchConfig {
	mc := matchConfigFrom(cfg.Engine)
	if f.Threshold >= 0 {
		mc.FuzzyThreshold = f.Threshold
	}
	if f.AmountTolerance >= 0 {
		mc.AmountTolerance = decimal.NewFromFloat(f.AmountTolerance)
	}
	if f.DateTolerance >= 0 {
		mc.DateToleranceDays = f.DateTolerance
	}
	if f.Workers > 0 {
		mc.Workers = f.Workers
	}
	return mc
}

// matchConfigFrom converts file/env engine settings into the engine's
// config type.
func matchConfigFrom(e config.EngineConfig) recon.MatchConfig {
	return recon.MatchConfig{
		AmountTolerance:   decimal.NewFromFloat(e.AmountTolerance),
		DateToleranceDays: e.DateToleranceDays,
		FuzzyThreshold:    e.FuzzyThreshold,
		Workers:           e.Workers,
	}
}
