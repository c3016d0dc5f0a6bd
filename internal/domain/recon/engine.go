// Package recon pairs records across two independently produced
// financial ledgers, flags field-level discrepancies and buckets each
// pair by business disposition.
//
// Matching is greedy and priority-ordered: an exact primary-identifier
// pass, an exact secondary-identifier pass, then a weighted fuzzy pass
// over whatever remains. Once a record is consumed by a pair it is
// never re-paired. This reproduces the behavior of the upstream system
// rather than computing an optimal assignment.
//
// Example usage:
//
//	result, err := recon.Reconcile(payables, receivables, recon.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	for _, pair := range result.Pairs {
//		// pair.Method, pair.Confidence, pair.Category ...
//	}
package recon

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Reconcile pairs the left and right record collections under cfg.
//
// The result is deterministic for a given input order and
// configuration. Empty collections are well-defined and return an
// empty result. The only error path is an invalid configuration,
// rejected before any matching work starts.
func Reconcile(left, right []LedgerRecord, cfg MatchConfig) (*ReconciliationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid match config: %w", err)
	}

	m := &matcher{
		cfg:           cfg,
		left:          left,
		right:         right,
		leftConsumed:  make([]bool, len(left)),
		rightConsumed: make([]bool, len(right)),
		pairs:         make([]MatchPair, 0),
	}

	m.matchByKey(func(r LedgerRecord) string { return r.PrimaryKey }, MethodIdentifier, confidenceIdentifier)
	m.matchByKey(func(r LedgerRecord) string { return r.SecondaryKey }, MethodSecondaryIdentifier, confidenceSecondaryIdentifier)
	m.matchFuzzy()

	result := &ReconciliationResult{
		Pairs:          m.pairs,
		UnmatchedLeft:  collectLeftovers(left, m.leftConsumed),
		UnmatchedRight: collectLeftovers(right, m.rightConsumed),
	}

	for i := range result.Pairs {
		pair := &result.Pairs[i]
		pair.Discrepancies = detectDiscrepancies(pair.Left, pair.Right, cfg)
		pair.Category = categorize(*pair)
	}

	result.Summary = summarize(result, len(left), len(right))

	return result, nil
}

// matcher carries the mutable state of one reconciliation run: the two
// consumed sets and the pairs emitted so far. All mutation happens on
// the calling goroutine; Phase-3 workers only read.
type matcher struct {
	cfg   MatchConfig
	left  []LedgerRecord
	right []LedgerRecord

	leftConsumed  []bool
	rightConsumed []bool
	pairs         []MatchPair
}

// matchByKey runs one exact-identifier pass over the still-unconsumed
// left records. First match wins: the earliest unconsumed right record
// sharing the normalized key is taken, even if later candidates exist.
func (m *matcher) matchByKey(selector func(LedgerRecord) string, method MatchMethod, confidence float64) {
	idx := buildIndex(m.right, selector)

	for i, rec := range m.left {
		if m.leftConsumed[i] {
			continue
		}
		key := NormalizeKey(selector(rec))
		if key == "" {
			continue
		}
		j := idx.lookup(key, func(j int) bool { return m.rightConsumed[j] })
		if j < 0 {
			continue
		}
		m.consume(i, j, method, confidence)
	}
}

// matchFuzzy runs the weighted-similarity pass over everything left
// unconsumed after the identifier phases. For each left record the
// single highest-scoring right candidate strictly above the threshold
// is taken; ties break toward the earlier input position. O(n*m) in
// the remaining pool sizes.
func (m *matcher) matchFuzzy() {
	for i, rec := range m.left {
		if m.leftConsumed[i] {
			continue
		}

		best, score := m.bestCandidate(rec)
		if best < 0 || score <= m.cfg.FuzzyThreshold {
			continue
		}
		m.consume(i, best, MethodFuzzy, score)
	}
}

// bestCandidate scans the unconsumed right pool for the highest-scoring
// candidate. The scan is read-only, so it can fan out across workers;
// consumption stays with the caller.
func (m *matcher) bestCandidate(rec LedgerRecord) (int, float64) {
	workers := m.cfg.Workers
	if workers > 1 && len(m.right) >= workers*parallelScanMinChunk {
		return m.bestCandidateParallel(rec, workers)
	}
	return m.scanRange(rec, 0, len(m.right))
}

// parallelScanMinChunk is the smallest per-worker slice worth the
// goroutine overhead.
const parallelScanMinChunk = 64

// bestCandidateParallel partitions the right pool into contiguous
// chunks, scans them concurrently and reduces to the global best.
// The lowest-index tie-break makes the result identical to the
// sequential scan.
func (m *matcher) bestCandidateParallel(rec LedgerRecord, workers int) (int, float64) {
	if cpus := runtime.NumCPU(); workers > cpus {
		workers = cpus
	}

	type candidate struct {
		idx   int
		score float64
	}

	results := make([]candidate, workers)
	chunk := (len(m.right) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(m.right))
		g.Go(func() error {
			idx, score := m.scanRange(rec, lo, hi)
			results[w] = candidate{idx: idx, score: score}
			return nil
		})
	}
	_ = g.Wait()

	best, bestScore := -1, 0.0
	for _, c := range results {
		if c.idx < 0 {
			continue
		}
		if c.score > bestScore || (c.score == bestScore && (best < 0 || c.idx < best)) {
			best, bestScore = c.idx, c.score
		}
	}
	return best, bestScore
}

// scanRange scores rec against the unconsumed right records in
// [lo, hi) and returns the best index and its score, or -1.
// Strictly-greater comparison keeps the earliest candidate on ties.
func (m *matcher) scanRange(rec LedgerRecord, lo, hi int) (int, float64) {
	best, bestScore := -1, 0.0
	for j := lo; j < hi; j++ {
		if m.rightConsumed[j] {
			continue
		}
		score := fuzzyScore(rec, m.right[j], m.cfg)
		if score > bestScore {
			best, bestScore = j, score
		}
	}
	return best, bestScore
}

// consume emits a pair and marks both records consumed.
func (m *matcher) consume(i, j int, method MatchMethod, confidence float64) {
	m.leftConsumed[i] = true
	m.rightConsumed[j] = true
	m.pairs = append(m.pairs, MatchPair{
		Left:       m.left[i],
		Right:      m.right[j],
		Method:     method,
		Confidence: confidence,
	})
}

// collectLeftovers returns the records not consumed by any phase, in
// input order.
func collectLeftovers(records []LedgerRecord, consumed []bool) []LedgerRecord {
	leftovers := make([]LedgerRecord, 0)
	for i, rec := range records {
		if !consumed[i] {
			leftovers = append(leftovers, rec)
		}
	}
	return leftovers
}
