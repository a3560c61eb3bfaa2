package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSI_AllGains(t *testing.T) {
	// Strictly rising closes: avgLoss is 0, RSI is pinned at 100.
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	got := RSI(closes, 14)

	require.NotNil(t, got)
	assert.Equal(t, 100.0, *got)
}

func TestRSI_FlatSeries(t *testing.T) {
	// No movement at all still counts as zero loss.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50
	}

	got := RSI(closes, 14)

	require.NotNil(t, got)
	assert.Equal(t, 100.0, *got)
}

func TestRSI_BalancedGainsAndLosses(t *testing.T) {
	// Alternating +1/-1 over the window: avgGain == avgLoss, RSI == 50.
	closes := []float64{100}
	for i := 0; i < 14; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]+1)
		} else {
			closes = append(closes, closes[len(closes)-1]-1)
		}
	}

	got := RSI(closes, 14)

	require.NotNil(t, got)
	assert.InDelta(t, 50.0, *got, 1e-9)
}

func TestRSI_AllLosses(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	got := RSI(closes, 14)

	require.NotNil(t, got)
	assert.InDelta(t, 0.0, *got, 1e-9)
}

func TestRSI_RequiresPeriodPlusOne(t *testing.T) {
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = float64(i)
	}

	assert.Nil(t, RSI(closes, 14))
	assert.NotNil(t, RSI(append(closes, 14), 14))
}

func TestRSI_UsesTrailingWindowOnly(t *testing.T) {
	// A heavy loss outside the 14-delta window must not affect the result.
	closes := []float64{1000, 10}
	for i := 0; i < 14; i++ {
		closes = append(closes, closes[len(closes)-1]+1)
	}

	got := RSI(closes, 14)

	require.NotNil(t, got)
	assert.Equal(t, 100.0, *got)
}
