package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_TailWindow(t *testing.T) {
	// Only the last 3 values may contribute.
	values := []float64{100, 200, 10, 20, 30}

	got := SMA(values, 3)

	require.NotNil(t, got)
	assert.Equal(t, 20.0, *got)
}

func TestSMA_ExactLength(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4}, 4)

	require.NotNil(t, got)
	assert.Equal(t, 2.5, *got)
}

func TestSMA_InsufficientData(t *testing.T) {
	assert.Nil(t, SMA([]float64{1, 2, 3}, 4))
	assert.Nil(t, SMA(nil, 1))
	assert.Nil(t, SMA([]float64{1, 2}, 0))
}

func TestSMA_NegativeValuesAreLegitimate(t *testing.T) {
	// Zero and negative inputs must produce a real average, never be
	// confused with "missing".
	got := SMA([]float64{-2, 0, 2}, 3)

	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)
}

func TestAvgTail_MatchesSMA(t *testing.T) {
	volumes := []float64{1000, 2000, 3000, 4000}

	got := AvgTail(volumes, 2)

	require.NotNil(t, got)
	assert.Equal(t, 3500.0, *got)
}
