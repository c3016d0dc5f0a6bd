package recon

import (
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Helper to build test records
func record(sourceID string, amount float64) LedgerRecord {
	return LedgerRecord{
		SourceID: sourceID,
		Amount:   decimal.NewFromFloat(amount),
	}
}

func TestReconcile_PrimaryIdentifierMatch(t *testing.T) {
	// Arrange: scenario A - identical invoice on both sides
	left := []LedgerRecord{{
		SourceID:   "L1",
		PrimaryKey: "INV-1",
		Amount:     decimal.NewFromInt(100),
		IssueDate:  date(2024, 1, 1),
	}}
	right := []LedgerRecord{{
		SourceID:   "R1",
		PrimaryKey: "INV-1",
		Amount:     decimal.NewFromInt(100),
		IssueDate:  date(2024, 1, 1),
	}}

	// Act
	result, err := Reconcile(left, right, DefaultConfig())

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)

	pair := result.Pairs[0]
	assert.Equal(t, MethodIdentifier, pair.Method)
	assert.Equal(t, 1.0, pair.Confidence)
	assert.Empty(t, pair.Discrepancies)
	assert.NotEqual(t, CategoryDisputed, pair.Category)
	assert.Empty(t, result.UnmatchedLeft)
	assert.Empty(t, result.UnmatchedRight)
}

func TestReconcile_PrimaryKeyNormalization(t *testing.T) {
	left := []LedgerRecord{{SourceID: "L1", PrimaryKey: "  inv-1 ", Amount: decimal.NewFromInt(10)}}
	right := []LedgerRecord{{SourceID: "R1", PrimaryKey: "INV-1", Amount: decimal.NewFromInt(10)}}

	result, err := Reconcile(left, right, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, MethodIdentifier, result.Pairs[0].Method)
}

func TestReconcile_SecondaryIdentifierMatch(t *testing.T) {
	// Scenario B: shared PO number, amounts disagree by 5
	left := []LedgerRecord{{
		SourceID:     "L1",
		SecondaryKey: "PO-9",
		Amount:       decimal.NewFromInt(50),
	}}
	right := []LedgerRecord{{
		SourceID:     "R1",
		SecondaryKey: "PO-9",
		Amount:       decimal.NewFromInt(55),
	}}

	result, err := Reconcile(left, right, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)

	pair := result.Pairs[0]
	assert.Equal(t, MethodSecondaryIdentifier, pair.Method)
	assert.Equal(t, 0.9, pair.Confidence)
	require.Len(t, pair.Discrepancies, 1)
	assert.Equal(t, FieldAmount, pair.Discrepancies[0].Field)
	assert.InDelta(t, 5.0, pair.Discrepancies[0].Magnitude, 0.0001)
	assert.Equal(t, CategoryDisputed, pair.Category)
}

func TestReconcile_FuzzyMatch(t *testing.T) {
	// Scenario C: no shared identifiers, similar name + equal amount +
	// one day apart
	left := []LedgerRecord{{
		SourceID:         "L1",
		CounterpartyName: "Acme Corp",
		Amount:           decimal.NewFromInt(200),
		IssueDate:        date(2024, 3, 1),
	}}
	right := []LedgerRecord{{
		SourceID:         "R1",
		CounterpartyName: "Acme Corporation",
		Amount:           decimal.NewFromInt(200),
		IssueDate:        date(2024, 3, 2),
	}}

	result, err := Reconcile(left, right, DefaultConfig())
	require.NoError(t, err)

	// name: 1/3 Jaccard * 0.40, amount: 1.0 * 0.35, date: 1.0 * 0.25
	// => (0.1333 + 0.35 + 0.25) / 1.0 = 0.7333, below the 0.8 default
	require.Empty(t, result.Pairs)
	assert.Len(t, result.UnmatchedLeft, 1)
	assert.Len(t, result.UnmatchedRight, 1)

	// Lowering the threshold accepts the same candidate
	cfg := DefaultConfig()
	cfg.FuzzyThreshold = 0.7
	result, err = Reconcile(left, right, cfg)
	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, MethodFuzzy, result.Pairs[0].Method)
	assert.InDelta(t, 0.7333, result.Pairs[0].Confidence, 0.001)
}

func TestReconcile_FuzzyIdenticalNames(t *testing.T) {
	left := []LedgerRecord{{
		SourceID:         "L1",
		CounterpartyName: "Globex Corporation",
		Amount:           decimal.NewFromInt(300),
		IssueDate:        date(2024, 5, 10),
	}}
	right := []LedgerRecord{{
		SourceID:         "R1",
		CounterpartyName: "globex corporation",
		Amount:           decimal.NewFromInt(300),
		IssueDate:        date(2024, 5, 11),
	}}

	result, err := Reconcile(left, right, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	pair := result.Pairs[0]
	assert.Equal(t, MethodFuzzy, pair.Method)
	assert.InDelta(t, 1.0, pair.Confidence, 0.0001)
	assert.Empty(t, pair.Discrepancies)
}

func TestReconcile_ThresholdBoundaryIsStrict(t *testing.T) {
	// Identical everything scores exactly 1.0; a threshold of 1.0 must
	// reject it because acceptance requires strictly greater.
	left := []LedgerRecord{{
		SourceID:         "L1",
		CounterpartyName: "Initech",
		Amount:           decimal.NewFromInt(75),
		IssueDate:        date(2024, 2, 2),
	}}
	right := []LedgerRecord{{
		SourceID:         "R1",
		CounterpartyName: "Initech",
		Amount:           decimal.NewFromInt(75),
		IssueDate:        date(2024, 2, 2),
	}}

	cfg := DefaultConfig()
	cfg.FuzzyThreshold = 1.0

	result, err := Reconcile(left, right, cfg)

	require.NoError(t, err)
	assert.Empty(t, result.Pairs)
	assert.Len(t, result.UnmatchedLeft, 1)
	assert.Len(t, result.UnmatchedRight, 1)
}

func TestReconcile_DuplicatePrimaryKeys(t *testing.T) {
	// Scenario D: two left records share a key, one right record exists.
	// Exactly one pair forms; the second left record falls through.
	left := []LedgerRecord{
		{SourceID: "L1", PrimaryKey: "INV-7", Amount: decimal.NewFromInt(10)},
		{SourceID: "L2", PrimaryKey: "INV-7", Amount: decimal.NewFromInt(10)},
	}
	right := []LedgerRecord{
		{SourceID: "R1", PrimaryKey: "INV-7", Amount: decimal.NewFromInt(10)},
	}

	result, err := Reconcile(left, right, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "L1", result.Pairs[0].Left.SourceID)
	require.Len(t, result.UnmatchedLeft, 1)
	assert.Equal(t, "L2", result.UnmatchedLeft[0].SourceID)
	assert.Empty(t, result.UnmatchedRight)
}

func TestReconcile_PhaseOrdering(t *testing.T) {
	// A record matchable by primary key must be consumed in Phase 1 even
	// when a fuzzy candidate would score higher on other fields.
	left := []LedgerRecord{{
		SourceID:         "L1",
		PrimaryKey:       "INV-1",
		CounterpartyName: "Acme Corp",
		Amount:           decimal.NewFromInt(100),
	}}
	right := []LedgerRecord{
		{
			SourceID:         "R1",
			CounterpartyName: "Acme Corp",
			Amount:           decimal.NewFromInt(100),
			IssueDate:        date(2024, 1, 1),
		},
		{
			SourceID:   "R2",
			PrimaryKey: "INV-1",
			Amount:     decimal.NewFromInt(999),
		},
	}

	result, err := Reconcile(left, right, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, MethodIdentifier, result.Pairs[0].Method)
	assert.Equal(t, "R2", result.Pairs[0].Right.SourceID)
}

func TestReconcile_FirstMatchWins(t *testing.T) {
	// Two right candidates share the key; the earlier one is taken.
	left := []LedgerRecord{{SourceID: "L1", PrimaryKey: "INV-3", Amount: decimal.NewFromInt(20)}}
	right := []LedgerRecord{
		{SourceID: "R1", PrimaryKey: "INV-3", Amount: decimal.NewFromInt(20)},
		{SourceID: "R2", PrimaryKey: "INV-3", Amount: decimal.NewFromInt(20)},
	}

	result, err := Reconcile(left, right, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "R1", result.Pairs[0].Right.SourceID)
	require.Len(t, result.UnmatchedRight, 1)
	assert.Equal(t, "R2", result.UnmatchedRight[0].SourceID)
}

func TestReconcile_CoverageInvariant(t *testing.T) {
	left := []LedgerRecord{
		{SourceID: "L1", PrimaryKey: "INV-1", Amount: decimal.NewFromInt(100), IssueDate: date(2024, 1, 1)},
		{SourceID: "L2", SecondaryKey: "PO-2", Amount: decimal.NewFromInt(50)},
		{SourceID: "L3", CounterpartyName: "Stark Industries", Amount: decimal.NewFromInt(75), IssueDate: date(2024, 1, 5)},
		{SourceID: "L4", Amount: decimal.NewFromInt(1)},
	}
	right := []LedgerRecord{
		{SourceID: "R1", PrimaryKey: "INV-1", Amount: decimal.NewFromInt(100), IssueDate: date(2024, 1, 2)},
		{SourceID: "R2", SecondaryKey: "PO-2", Amount: decimal.NewFromInt(50)},
		{SourceID: "R3", CounterpartyName: "Stark Industries", Amount: decimal.NewFromInt(75), IssueDate: date(2024, 1, 6)},
		{SourceID: "R4", Amount: decimal.NewFromInt(100000)},
		{SourceID: "R5", Amount: decimal.NewFromInt(200000)},
	}

	result, err := Reconcile(left, right, DefaultConfig())
	require.NoError(t, err)

	// No record lost or duplicated
	assert.Equal(t,
		len(left)+len(right),
		len(result.Pairs)*2+len(result.UnmatchedLeft)+len(result.UnmatchedRight))

	// No source ID appears twice across pairs and leftovers
	seen := make(map[string]int)
	for _, pair := range result.Pairs {
		seen["L:"+pair.Left.SourceID]++
		seen["R:"+pair.Right.SourceID]++
	}
	for _, rec := range result.UnmatchedLeft {
		seen["L:"+rec.SourceID]++
	}
	for _, rec := range result.UnmatchedRight {
		seen["R:"+rec.SourceID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "record %s consumed %d times", id, count)
	}
}

func TestReconcile_Determinism(t *testing.T) {
	left := []LedgerRecord{
		{SourceID: "L1", PrimaryKey: "A", Amount: decimal.NewFromInt(10)},
		{SourceID: "L2", CounterpartyName: "Wayne Enterprises", Amount: decimal.NewFromInt(20), IssueDate: date(2024, 6, 1)},
		{SourceID: "L3", CounterpartyName: "Wayne Enterprises", Amount: decimal.NewFromInt(21), IssueDate: date(2024, 6, 2)},
	}
	right := []LedgerRecord{
		{SourceID: "R1", CounterpartyName: "Wayne Enterprises", Amount: decimal.NewFromInt(20), IssueDate: date(2024, 6, 1)},
		{SourceID: "R2", PrimaryKey: "A", Amount: decimal.NewFromInt(10)},
		{SourceID: "R3", CounterpartyName: "Wayne Enterprises", Amount: decimal.NewFromInt(21), IssueDate: date(2024, 6, 2)},
	}

	first, err := Reconcile(left, right, DefaultConfig())
	require.NoError(t, err)
	second, err := Reconcile(left, right, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReconcile_ParallelMatchesSequential(t *testing.T) {
	// A worker count above 1 must not change the output.
	var left, right []LedgerRecord
	names := []string{"Acme Trading Co", "Globex Ltd", "Initech Systems", "Umbrella Supply"}
	for i := 0; i < 300; i++ {
		name := names[i%len(names)]
		left = append(left, LedgerRecord{
			SourceID:         "L" + strconv.Itoa(i),
			CounterpartyName: name,
			Amount:           decimal.NewFromInt(int64(100 + i)),
			IssueDate:        date(2024, 1, 1+i%27),
		})
		right = append(right, LedgerRecord{
			SourceID:         "R" + strconv.Itoa(i),
			CounterpartyName: name,
			Amount:           decimal.NewFromInt(int64(100 + i)),
			IssueDate:        date(2024, 1, 1+i%27),
		})
	}

	sequential, err := Reconcile(left, right, DefaultConfig())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Workers = 4
	parallel, err := Reconcile(left, right, cfg)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	t.Run("both empty", func(t *testing.T) {
		result, err := Reconcile(nil, nil, DefaultConfig())
		require.NoError(t, err)
		assert.Empty(t, result.Pairs)
		assert.Empty(t, result.UnmatchedLeft)
		assert.Empty(t, result.UnmatchedRight)
		assert.Equal(t, 0.0, result.Summary.MatchRate)
	})

	t.Run("one side empty", func(t *testing.T) {
		left := []LedgerRecord{record("L1", 10)}
		result, err := Reconcile(left, nil, DefaultConfig())
		require.NoError(t, err)
		assert.Empty(t, result.Pairs)
		assert.Len(t, result.UnmatchedLeft, 1)
	})
}

func TestReconcile_InvalidConfig(t *testing.T) {
	left := []LedgerRecord{record("L1", 10)}
	right := []LedgerRecord{record("R1", 10)}

	t.Run("threshold above one", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.FuzzyThreshold = 1.5
		_, err := Reconcile(left, right, cfg)
		assert.Error(t, err)
	})

	t.Run("negative amount tolerance", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AmountTolerance = decimal.NewFromFloat(-0.5)
		_, err := Reconcile(left, right, cfg)
		assert.Error(t, err)
	})

	t.Run("negative date tolerance", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DateToleranceDays = -1
		_, err := Reconcile(left, right, cfg)
		assert.Error(t, err)
	})
}

func TestReconcile_FuzzyPicksHighestScore(t *testing.T) {
	left := []LedgerRecord{{
		SourceID:         "L1",
		CounterpartyName: "Acme Trading Company",
		Amount:           decimal.NewFromInt(500),
		IssueDate:        date(2024, 4, 10),
	}}
	right := []LedgerRecord{
		{
			SourceID:         "R1",
			CounterpartyName: "Acme Trading Company",
			Amount:           decimal.NewFromInt(480),
			IssueDate:        date(2024, 4, 10),
		},
		{
			SourceID:         "R2",
			CounterpartyName: "Acme Trading Company",
			Amount:           decimal.NewFromInt(500),
			IssueDate:        date(2024, 4, 11),
		},
	}

	result, err := Reconcile(left, right, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "R2", result.Pairs[0].Right.SourceID)
}
