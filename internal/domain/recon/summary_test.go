package recon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	left := []LedgerRecord{
		{SourceID: "L1", PrimaryKey: "INV-1", Amount: decimal.NewFromInt(100), StatusFields: map[string]string{"approval": "approved"}},
		{SourceID: "L2", PrimaryKey: "INV-2", Amount: decimal.NewFromInt(50)},
		{SourceID: "L3", Amount: decimal.NewFromInt(7)},
		{SourceID: "L4", Amount: decimal.NewFromInt(8)},
	}
	right := []LedgerRecord{
		{SourceID: "R1", PrimaryKey: "INV-1", Amount: decimal.NewFromInt(100)},
		{SourceID: "R2", PrimaryKey: "INV-2", Amount: decimal.NewFromInt(75)},
	}

	result, err := Reconcile(left, right, DefaultConfig())
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, 4, s.TotalLeft)
	assert.Equal(t, 2, s.TotalRight)
	assert.Equal(t, 2, s.MatchedPairs)
	assert.Equal(t, 2, s.UnmatchedLeft)
	assert.Equal(t, 0, s.UnmatchedRight)
	assert.Equal(t, 2, s.ByMethod[MethodIdentifier])
	assert.Equal(t, 1, s.ByCategory[CategoryApproved])
	assert.Equal(t, 1, s.ByCategory[CategoryDisputed])
	assert.True(t, s.MatchedAmount.Equal(decimal.NewFromInt(150)))

	assert.InDelta(t, 0.5, s.MatchRate, 0.0001)
	assert.InDelta(t, 0.5, s.ApprovalRate, 0.0001)
	assert.InDelta(t, 0.5, s.DiscrepancyRate, 0.0001)
}

func TestSummarize_ZeroTotalsYieldZeroRates(t *testing.T) {
	result, err := Reconcile(nil, nil, DefaultConfig())
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, 0.0, s.MatchRate)
	assert.Equal(t, 0.0, s.ApprovalRate)
	assert.Equal(t, 0.0, s.DiscrepancyRate)
	assert.Equal(t, 0, s.MatchedPairs)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, ratio(5, 0))
	assert.Equal(t, 0.5, ratio(1, 2))
	assert.Equal(t, 0.0, ratio(0, 10))
}
