package indicators

// SMA computes the simple moving average of the last period values.
// Returns nil when there is not enough data; callers must treat nil as
// "insufficient history", not as zero.
func SMA(values []float64, period int) *float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}

	avg := sum / float64(period)
	return &avg
}

// AvgTail averages the trailing period values. Same windowing as SMA;
// kept separate because it is applied to volumes, not closes.
func AvgTail(values []float64, period int) *float64 {
	return SMA(values, period)
}
