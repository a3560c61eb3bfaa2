package usecase

import (
	"testing"

	"stock-screener-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePriceLevelsNilUnlessBuy(t *testing.T) {
	assert.Nil(t, CalculatePriceLevels(100, fptr(98), fptr(90), fptr(5), fptr(120), domain.ActionHold))
	assert.Nil(t, CalculatePriceLevels(100, fptr(98), fptr(90), fptr(5), fptr(120), domain.ActionSell))
}

func TestCalculatePriceLevelsWithAllInputs(t *testing.T) {
	levels := CalculatePriceLevels(100, fptr(98), fptr(90), fptr(5), fptr(120), domain.ActionBuy)
	require.NotNil(t, levels)

	assert.InDelta(t, 107.5, levels.ProfitTargets.Target1.Price, 1e-9)
	assert.InDelta(t, 115, levels.ProfitTargets.Target2.Price, 1e-9)
	assert.InDelta(t, 120, levels.ProfitTargets.Target3.Price, 1e-9)

	assert.InDelta(t, 98, levels.EntryPoints.Optimal.Price, 1e-9)
	assert.InDelta(t, 100, levels.EntryPoints.Acceptable.Price, 1e-9)
	assert.InDelta(t, 0, levels.EntryPoints.Acceptable.Delta, 1e-9)
	assert.InDelta(t, 90, levels.EntryPoints.StopLoss.Price, 1e-9)

	assert.InDelta(t, 7.5, levels.ProfitTargets.Target1.DeltaPercent, 1e-9)
	assert.InDelta(t, 10, levels.EntryPoints.StopLoss.DeltaPercent, 1e-9)
}

func TestCalculatePriceLevelsFallbacks(t *testing.T) {
	levels := CalculatePriceLevels(100, nil, nil, nil, nil, domain.ActionBuy)
	require.NotNil(t, levels)

	// Effective ADR falls back to 3% of price.
	assert.InDelta(t, 104.5, levels.ProfitTargets.Target1.Price, 1e-9)
	assert.InDelta(t, 109, levels.ProfitTargets.Target2.Price, 1e-9)
	assert.InDelta(t, 110, levels.ProfitTargets.Target3.Price, 1e-9)

	assert.InDelta(t, 98, levels.EntryPoints.Optimal.Price, 1e-9)
	assert.InDelta(t, 93, levels.EntryPoints.StopLoss.Price, 1e-9)
}
