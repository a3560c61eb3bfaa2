package indicators

// RSI computes the Relative Strength Index over the trailing period.
//
// Day-over-day deltas are split into gains (positive changes) and losses
// (negated negative changes), each averaged with a plain arithmetic mean
// over the trailing period window. No Wilder smoothing: this screener
// recomputes from the full window on every run, so the simple average is
// the intended formula.
//
// Requires period+1 closes (period deltas); returns nil otherwise.
// When the average loss is exactly zero the RSI is 100 by definition.
func RSI(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	changes := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		changes[i-1] = closes[i] - closes[i-1]
	}

	sumGain := 0.0
	sumLoss := 0.0
	for _, c := range changes[len(changes)-period:] {
		if c > 0 {
			sumGain += c
		} else {
			sumLoss += -c
		}
	}

	avgGain := sumGain / float64(period)
	avgLoss := sumLoss / float64(period)

	if avgLoss == 0 {
		v := 100.0
		return &v
	}

	rs := avgGain / avgLoss
	v := 100 - (100 / (1 + rs))
	return &v
}
