package usecase

import (
	"testing"

	"stock-screener-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDetailedAnalysisMirrorsDecision(t *testing.T) {
	ind := domain.IndicatorSet{
		Price:        100,
		MA200:        fptr(90),
		PerfectOrder: true,
		RSI14:        fptr(40),
		ADR20:        fptr(7),
		VolumeAvg20:  fptr(1000),
		Volume:       1500,
	}
	decision := Decide(ind)
	levels := CalculatePriceLevels(ind.Price, ind.MA20, ind.MA200, ind.ADR20, nil, decision.Action)

	analysis := BuildDetailedAnalysis("AAPL", "Apple Inc.", ind, decision, levels)

	// All five rules landed on the buy side.
	assert.Len(t, analysis.Strengths, 5)
	assert.Empty(t, analysis.Concerns)
	assert.Equal(t, decision.BuyScore, analysis.Scoring.BuyScore)
	assert.Equal(t, decision.SellScore, analysis.Scoring.SellScore)
	assert.Len(t, analysis.Scoring.BuyDetails, 5)
	assert.Empty(t, analysis.Scoring.SellDetails)

	assert.Equal(t, "buyScore >= 70 AND sellScore < 30", analysis.DecisionCriteria.BuyThreshold)
	assert.Equal(t, "sellScore >= 40", analysis.DecisionCriteria.SellThreshold)
	assert.Equal(t, "buyScore: 100, sellScore: 0 → BUY", analysis.DecisionCriteria.ActualResult)

	assert.Nil(t, analysis.Characteristics)
	assert.NotNil(t, analysis.PriceLevels)
	assert.Equal(t, "Entry recommended with a stop near the 200-day MA", analysis.Recommendation.ForNewBuyers)
}

func TestBuildDetailedAnalysisDowntrend(t *testing.T) {
	ind := domain.IndicatorSet{
		Price: 80,
		MA200: fptr(90),
		RSI14: fptr(75),
	}
	decision := Decide(ind)
	require.Equal(t, domain.ActionSell, decision.Action)

	analysis := BuildDetailedAnalysis("XOM", "Exxon Mobil", ind, decision, nil)

	assert.Empty(t, analysis.Strengths)
	// Trend, perfect order, RSI and volume all land as concerns.
	assert.Len(t, analysis.Concerns, 4)
	assert.Len(t, analysis.Scoring.SellDetails, 3)
	assert.Nil(t, analysis.PriceLevels)
}

func TestClassifyProductLeveragedETF(t *testing.T) {
	c := classifyProduct("Direxion Daily Semiconductor Bull 3X Shares")

	require.NotNil(t, c)
	assert.Equal(t, "Leveraged ETF", c.Type)
	assert.NotEmpty(t, c.Warnings)
}

func TestClassifyProductOrdinaryStock(t *testing.T) {
	assert.Nil(t, classifyProduct("Apple Inc."))
}

func TestClassifyProductPlainETF(t *testing.T) {
	c := classifyProduct("Vanguard S&P 500 ETF")

	require.NotNil(t, c)
	assert.Equal(t, "ETF", c.Type)
	assert.Equal(t, []string{"Ordinary ETF with diversification benefits"}, c.Warnings)
}
