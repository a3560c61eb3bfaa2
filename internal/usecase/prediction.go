package usecase

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"stock-screener-backend/internal/domain"
)

// Pacer paces work between batch groups. The production implementation
// wraps golang.org/x/time/rate; tests inject a no-op.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PredictionUsecase blends the local rule-based score (70%) with an
// external predictor's score (30%). The external call is at-most-once per
// symbol with no retry; any failure degrades to the local score.
type PredictionUsecase struct {
	predictor domain.Predictor
	pacer     Pacer
	groupSize int
	log       zerolog.Logger
}

func NewPredictionUsecase(predictor domain.Predictor, pacer Pacer, log zerolog.Logger) *PredictionUsecase {
	return &PredictionUsecase{
		predictor: predictor,
		pacer:     pacer,
		groupSize: 5,
		log:       log.With().Str("component", "prediction").Logger(),
	}
}

// RuleBasedScore computes the local prediction score from technical
// indicators: base 50 with banded adjustments, clamped to [0,100].
//
// This heuristic intentionally differs from QualityScore - it rewards
// oversold RSI as a buying chance and penalizes stretched volatility -
// so the two must stay separate.
func RuleBasedScore(ind domain.IndicatorSet) int {
	score := 50

	// RSI: healthy range is a mild plus, oversold is a buying chance,
	// heavily overbought is a danger sign. The 70-80 band is neutral.
	rsi := 50.0
	if ind.RSI14 != nil {
		rsi = *ind.RSI14
	}
	switch {
	case rsi >= 30 && rsi <= 70:
		score += 15
	case rsi < 30:
		score += 25
	case rsi > 80:
		score -= 20
	}

	if ind.PerfectOrder {
		score += 20
	}

	// ADR: moderate volatility is attractive, extreme volatility is risk.
	adr := 5.0
	if ind.ADR20 != nil {
		adr = *ind.ADR20
	}
	if adr >= 3 && adr <= 8 {
		score += 15
	} else if adr > 10 {
		score -= 10
	}

	// Price position versus each moving average, weighted by period.
	if ind.MA200 != nil && ind.Price > *ind.MA200 {
		score += 10
	}
	if ind.MA50 != nil && ind.Price > *ind.MA50 {
		score += 5
	}
	if ind.MA20 != nil && ind.Price > *ind.MA20 {
		score += 3
	}
	if ind.MA10 != nil && ind.Price > *ind.MA10 {
		score += 2
	}

	// Volume surge.
	if ind.VolumeAvg20 != nil && *ind.VolumeAvg20 > 0 {
		ratio := ind.Volume / *ind.VolumeAvg20
		if ratio > 1.5 {
			score += 10
		} else if ratio > 1.2 {
			score += 5
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// LabelForScore maps a 0-100 score to its prediction label.
func LabelForScore(score int) domain.PredictionLabel {
	switch {
	case score >= 80:
		return domain.LabelStrongBuy
	case score >= 60:
		return domain.LabelBuy
	case score >= 40:
		return domain.LabelHold
	default:
		return domain.LabelSell
	}
}

// Predict produces the hybrid prediction for one symbol.
//
// Degradation ladder: unconfigured predictor falls back to the local
// score with confidence 0.7; a failed or malformed external call falls
// back with confidence 0.6. The blended score is always
// round(local*0.7 + external*0.3); confidence and reasoning pass through
// from the external leg unblended.
func (uc *PredictionUsecase) Predict(ctx context.Context, symbol string, ind domain.IndicatorSet) domain.AIPrediction {
	local := RuleBasedScore(ind)
	external := uc.externalPrediction(ctx, symbol, ind, local)

	final := int(math.Round(float64(local)*0.7 + float64(external.Score)*0.3))

	return domain.AIPrediction{
		Score:      final,
		Confidence: external.Confidence,
		Label:      LabelForScore(final),
		Reasoning:  external.Reasoning,
	}
}

func (uc *PredictionUsecase) externalPrediction(ctx context.Context, symbol string, ind domain.IndicatorSet, local int) domain.RawPrediction {
	if uc.predictor == nil || !uc.predictor.Configured() {
		return domain.RawPrediction{
			Score:      local,
			Confidence: 0.7,
			Label:      LabelForScore(local),
			Reasoning:  "Rule-based analysis only (external predictor not configured)",
		}
	}

	raw, err := uc.predictor.Predict(ctx, symbol, ind)
	if err != nil {
		uc.log.Warn().Err(err).Str("symbol", symbol).Msg("external predictor failed, using rule-based fallback")
		return domain.RawPrediction{
			Score:      local,
			Confidence: 0.6,
			Label:      LabelForScore(local),
			Reasoning:  "External predictor error, rule-based analysis used",
		}
	}

	return *raw
}

// SymbolIndicators pairs a symbol with its computed indicator set for
// batch prediction.
type SymbolIndicators struct {
	Symbol     string
	Indicators domain.IndicatorSet
}

// PredictBatch runs predictions in fixed-size groups, each group
// concurrent, pausing on the pacer between groups so the external
// predictor's rate limit is respected. Results are an unordered bag
// keyed by symbol; one symbol's failure never aborts the batch.
func (uc *PredictionUsecase) PredictBatch(ctx context.Context, stocks []SymbolIndicators) map[string]domain.AIPrediction {
	results := make(map[string]domain.AIPrediction, len(stocks))
	var mu sync.Mutex

	for start := 0; start < len(stocks); start += uc.groupSize {
		end := start + uc.groupSize
		if end > len(stocks) {
			end = len(stocks)
		}

		var wg sync.WaitGroup
		for _, stock := range stocks[start:end] {
			wg.Add(1)
			go func(s SymbolIndicators) {
				defer wg.Done()
				prediction := uc.Predict(ctx, s.Symbol, s.Indicators)
				mu.Lock()
				results[s.Symbol] = prediction
				mu.Unlock()
			}(stock)
		}
		wg.Wait()

		// Pace after the group completes, never before the first one.
		if end < len(stocks) && uc.pacer != nil {
			if err := uc.pacer.Wait(ctx); err != nil {
				uc.log.Warn().Err(err).Msg("batch pacing interrupted")
				return results
			}
		}
	}

	return results
}
