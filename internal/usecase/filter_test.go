package usecase

import (
	"testing"

	"stock-screener-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.StockRecord {
	return []domain.StockRecord{
		{Symbol: "AAPL", Score: 85, CurrentPrice: 230, DollarVolume: 5e9, RSI14: fptr(45), ADR20: fptr(6), MA200: fptr(200), PerfectOrder: true, InvestmentDecision: domain.ActionBuy},
		{Symbol: "XOM", Score: 40, CurrentPrice: 110, DollarVolume: 1e9, RSI14: fptr(75), ADR20: fptr(2), MA200: fptr(115), InvestmentDecision: domain.ActionSell},
		{Symbol: "MSFT", Score: 70, CurrentPrice: 420, DollarVolume: 3e9, RSI14: fptr(55), ADR20: fptr(4), MA200: fptr(390), InvestmentDecision: domain.ActionHold},
		{Symbol: "NEWCO", Score: 55, CurrentPrice: 12, DollarVolume: 2e6, InvestmentDecision: domain.ActionHold},
	}
}

func TestScreenFilterEmptyPassesAllSorted(t *testing.T) {
	out := ScreenFilter{}.Apply(sampleRecords())

	require.Len(t, out, 4)
	assert.Equal(t, "AAPL", out[0].Symbol)
	assert.Equal(t, "MSFT", out[1].Symbol)
	assert.Equal(t, "NEWCO", out[2].Symbol)
	assert.Equal(t, "XOM", out[3].Symbol)
}

func TestScreenFilterByDecision(t *testing.T) {
	out := ScreenFilter{Decision: "BUY"}.Apply(sampleRecords())

	require.Len(t, out, 1)
	assert.Equal(t, "AAPL", out[0].Symbol)
}

func TestScreenFilterAboveMA200ExcludesMissingIndicator(t *testing.T) {
	// NEWCO has no MA200 at all, XOM trades below its MA200.
	out := ScreenFilter{AboveMA200: true}.Apply(sampleRecords())

	require.Len(t, out, 2)
	assert.Equal(t, "AAPL", out[0].Symbol)
	assert.Equal(t, "MSFT", out[1].Symbol)
}

func TestScreenFilterRSIRange(t *testing.T) {
	out := ScreenFilter{MinRSI: 40, MaxRSI: 60}.Apply(sampleRecords())

	require.Len(t, out, 2)
	for _, rec := range out {
		require.NotNil(t, rec.RSI14)
		assert.GreaterOrEqual(t, *rec.RSI14, 40.0)
		assert.LessOrEqual(t, *rec.RSI14, 60.0)
	}
}

func TestScreenFilterCombinedWithLimit(t *testing.T) {
	out := ScreenFilter{MinScore: 50, MinDollarVolume: 1e9, Limit: 1}.Apply(sampleRecords())

	require.Len(t, out, 1)
	assert.Equal(t, "AAPL", out[0].Symbol)
}

func TestPresetFiltersExist(t *testing.T) {
	for _, id := range []string{"short_term_momentum", "perfect_order", "buy_candidates"} {
		_, ok := PresetFilters[id]
		assert.True(t, ok, id)
	}
}

func TestScreenFilterPerfectOrderOnly(t *testing.T) {
	out := ScreenFilter{PerfectOrderOnly: true}.Apply(sampleRecords())

	require.Len(t, out, 1)
	assert.Equal(t, "AAPL", out[0].Symbol)
}
