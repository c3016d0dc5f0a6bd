package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgerlens/reconcile-backend/internal/api/dto"
	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/config"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/logging"
)

// RunReconcile loads the two collections, runs the matching engine and
// prints the result.
func RunReconcile(cfg *config.Config, flags *ReconcileFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "cli")

	if flags.LeftPath == "" || flags.RightPath == "" {
		return fmt.Errorf("both -left and -right are required")
	}

	left, err := loadRecords(flags.LeftPath)
	if err != nil {
		return fmt.Errorf("loading left collection: %w", err)
	}
	right, err := loadRecords(flags.RightPath)
	if err != nil {
		return fmt.Errorf("loading right collection: %w", err)
	}

	matchCfg := flags.MatchConfig(cfg)
	logger.Debug("engine config",
		"threshold", matchCfg.FuzzyThreshold,
		"amount_tolerance", matchCfg.AmountTolerance.String(),
		"date_tolerance_days", matchCfg.DateToleranceDays,
		"workers", matchCfg.Workers)

	result, err := recon.Reconcile(left, right, matchCfg)
	if err != nil {
		return err
	}

	logger.Info("reconciliation complete",
		"matched", result.Summary.MatchedPairs,
		"unmatched_left", result.Summary.UnmatchedLeft,
		"unmatched_right", result.Summary.UnmatchedRight)

	if flags.JSON {
		return PrintResultJSON(os.Stdout, result)
	}

	PrintHeader(flags.LeftPath, flags.RightPath)
	PrintResult(result, flags.Verbose)
	return nil
}

// loadRecords reads a JSON array of ledger records from a file. Records
// use the same shape as the HTTP API.
func loadRecords(path string) ([]recon.LedgerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var requests []dto.LedgerRecordRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	records := make([]recon.LedgerRecord, 0, len(requests))
	for i, r := range requests {
		if r.SourceID == "" {
			return nil, fmt.Errorf("%s: record %d has no source_id", path, i)
		}
		records = append(records, r.ToRecord())
	}
	return records, nil
}
