package recon

import "github.com/shopspring/decimal"

// summarize computes the aggregate counters and ratios for a finished
// run. Ratios are count/total with total 0 defined as 0, so empty runs
// report zeroes instead of NaN.
func summarize(result *ReconciliationResult, totalLeft, totalRight int) Summary {
	s := Summary{
		TotalLeft:      totalLeft,
		TotalRight:     totalRight,
		MatchedPairs:   len(result.Pairs),
		UnmatchedLeft:  len(result.UnmatchedLeft),
		UnmatchedRight: len(result.UnmatchedRight),
		ByMethod:       make(map[MatchMethod]int),
		ByCategory:     make(map[Category]int),
		MatchedAmount:  decimal.Zero,
	}

	discrepant := 0
	for _, pair := range result.Pairs {
		s.ByMethod[pair.Method]++
		s.ByCategory[pair.Category]++
		s.MatchedAmount = s.MatchedAmount.Add(NormalizeAmount(pair.Left.Amount))
		if !pair.Clean() {
			discrepant++
		}
	}

	// Match rate is over the driving (left) side.
	s.MatchRate = ratio(s.MatchedPairs, totalLeft)
	s.ApprovalRate = ratio(s.ByCategory[CategoryApproved], s.MatchedPairs)
	s.DiscrepancyRate = ratio(discrepant, s.MatchedPairs)

	return s
}

func ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
