package usecase

import "stock-screener-backend/internal/domain"

// QualityScore computes the 0-100 attractiveness score used for ranking
// screened candidates. It is a sorting signal, independent of the
// directional BUY/HOLD/SELL decision; the two must not be merged.
//
// Weights:
//   Above 200-day MA          20
//   Perfect order             30
//   ADR band                  20 (ideal 5-15%) / 10 (near-band)
//   RSI band                  15 (healthy 30-70) / 8 (near-band)
//   Volume above average      15
//
// The bands are mutually exclusive, so the maximum attainable total is
// exactly 100 and no clamping is needed. Missing indicators skip their
// rule; they never count as zero values.
func QualityScore(ind domain.IndicatorSet) int {
	score := 0

	if ind.MA200 != nil && ind.Price > *ind.MA200 {
		score += 20
	}

	if ind.PerfectOrder {
		score += 30
	}

	if ind.ADR20 != nil {
		adr := *ind.ADR20
		if adr >= 5 && adr <= 15 {
			score += 20
		} else if (adr >= 3 && adr < 5) || (adr > 15 && adr <= 20) {
			score += 10
		}
	}

	if ind.RSI14 != nil {
		rsi := *ind.RSI14
		if rsi >= 30 && rsi <= 70 {
			score += 15
		} else if (rsi >= 20 && rsi < 30) || (rsi > 70 && rsi <= 80) {
			score += 8
		}
	}

	if ind.VolumeAvg20 != nil && ind.Volume >= *ind.VolumeAvg20 {
		score += 15
	}

	return score
}
