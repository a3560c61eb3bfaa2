package usecase

import (
	"stock-screener-backend/internal/domain"
	"stock-screener-backend/internal/infrastructure/indicators"
)

// BuildIndicatorSet derives the full indicator set from a daily price
// series and a live quote. Every indicator that lacks history comes back
// nil and stays nil through the downstream rules; nothing is defaulted
// here.
func BuildIndicatorSet(history []domain.PriceBar, quote *domain.Quote) domain.IndicatorSet {
	closes := make([]float64, len(history))
	highs := make([]float64, len(history))
	lows := make([]float64, len(history))
	volumes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close
		highs[i] = bar.High
		lows[i] = bar.Low
		volumes[i] = bar.Volume
	}

	ma10 := indicators.SMA(closes, 10)
	ma20 := indicators.SMA(closes, 20)
	ma50 := indicators.SMA(closes, 50)
	ma150 := indicators.SMA(closes, 150)
	ma200 := indicators.SMA(closes, 200)

	price := quote.Price
	volume := quote.Volume
	if volume == 0 && len(volumes) > 0 {
		volume = volumes[len(volumes)-1]
	}

	set := domain.IndicatorSet{
		Price:        price,
		MA10:         ma10,
		MA20:         ma20,
		MA50:         ma50,
		MA150:        ma150,
		MA200:        ma200,
		RSI14:        indicators.RSI(closes, 14),
		ADR20:        indicators.ADR(highs, lows, closes, 20),
		VolumeAvg20:  indicators.AvgTail(volumes, 20),
		Week52High:   quote.Week52High,
		Week52Low:    quote.Week52Low,
		PerfectOrder: indicators.PerfectOrder([]*float64{ma10, ma20, ma50, ma150, ma200}),
		Volume:       volume,
	}

	if ma10 != nil {
		d := (price - *ma10) / *ma10 * 100
		set.DistanceMA10 = &d
	}
	if ma200 != nil {
		d := (price - *ma200) / *ma200 * 100
		set.DistanceMA200 = &d
	}

	return set
}

// HistoricalWindow annotates the trailing window bars with the moving
// averages as of each bar, for charting.
func HistoricalWindow(history []domain.PriceBar, window int) []domain.HistoricalPoint {
	if window > len(history) {
		window = len(history)
	}

	closes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close
	}

	points := make([]domain.HistoricalPoint, 0, window)
	for i := len(history) - window; i < len(history); i++ {
		bar := history[i]
		upto := closes[:i+1]
		points = append(points, domain.HistoricalPoint{
			Date:   bar.Date.Format("2006-01-02"),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
			MA10:   indicators.SMA(upto, 10),
			MA20:   indicators.SMA(upto, 20),
			MA50:   indicators.SMA(upto, 50),
			MA200:  indicators.SMA(upto, 200),
		})
	}
	return points
}
