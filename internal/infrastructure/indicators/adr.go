package indicators

// ADR computes the Average Daily Range as a percentage: the mean of
// (high-low)/close*100 over the trailing period bars. The close used to
// normalize each range is that bar's own close, not the latest price.
//
// The three slices must be index-aligned (same trading day at the same
// index). Returns nil when any of them is shorter than the period.
func ADR(highs, lows, closes []float64, period int) *float64 {
	if period <= 0 || len(highs) < period || len(lows) < period || len(closes) < period {
		return nil
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		h := highs[len(highs)-period+i]
		l := lows[len(lows)-period+i]
		c := closes[len(closes)-period+i]
		sum += (h - l) / c * 100
	}

	avg := sum / float64(period)
	return &avg
}
