package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
)

// PrintHeader prints the command header
func PrintHeader(leftPath, rightPath string) {
	fmt.Printf("reconcile: %s vs %s\n\n", leftPath, rightPath)
}

// PrintResult prints a human-readable result summary. Verbose mode adds
// a per-pair breakdown with discrepancies.
func PrintResult(result *recon.ReconciliationResult, verbose bool) {
	s := result.Summary

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Records: left=%d right=%d | Matched: %d pairs (%.1f%%)\n",
		s.TotalLeft, s.TotalRight, s.MatchedPairs, s.MatchRate*100)
	fmt.Printf("Unmatched: left=%d right=%d\n", s.UnmatchedLeft, s.UnmatchedRight)

	if s.MatchedPairs > 0 {
		fmt.Printf("Matched amount: %s | Approval: %.1f%% | Discrepancies: %.1f%%\n",
			s.MatchedAmount.StringFixed(2), s.ApprovalRate*100, s.DiscrepancyRate*100)

		fmt.Print("By method:")
		for _, method := range []recon.MatchMethod{recon.MethodIdentifier, recon.MethodSecondaryIdentifier, recon.MethodFuzzy} {
			if n := s.ByMethod[method]; n > 0 {
				fmt.Printf(" %s=%d", method, n)
			}
		}
		fmt.Println()

		fmt.Print("By category:")
		for _, cat := range []recon.Category{recon.CategoryApproved, recon.CategoryPendingApproval, recon.CategoryDisputed} {
			if n := s.ByCategory[cat]; n > 0 {
				fmt.Printf(" %s=%d", cat, n)
			}
		}
		fmt.Println()
	}

	if verbose {
		printPairs(result.Pairs)
		printUnmatched("Unmatched left", result.UnmatchedLeft)
		printUnmatched("Unmatched right", result.UnmatchedRight)
	}
}

func printPairs(pairs []recon.MatchPair) {
	if len(pairs) == 0 {
		return
	}
	fmt.Println("\nPairs:")
	for _, pair := range pairs {
		fmt.Printf("  %s <-> %s  %s conf=%.2f %s\n",
			pair.Left.SourceID, pair.Right.SourceID,
			pair.Method, pair.Confidence, pair.Category)
		for _, d := range pair.Discrepancies {
			fmt.Printf("    ! %s: %s vs %s (magnitude %.2f)\n",
				d.Field, d.LeftValue, d.RightValue, d.Magnitude)
		}
	}
}

func printUnmatched(label string, records []recon.LedgerRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", label)
	for _, rec := range records {
		fmt.Printf("  - %s %s %s\n", rec.SourceID, rec.CounterpartyName, rec.Amount.StringFixed(2))
	}
}

// PrintResultJSON writes the full result as indented JSON
func PrintResultJSON(w io.Writer, result *recon.ReconciliationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
