package usecase

import (
	"fmt"

	"stock-screener-backend/internal/domain"
)

// Decision rule thresholds. These literal constants are load-bearing for
// reproducibility: the same IndicatorSet must always map to the same
// action, confidence and reason list.
const (
	buyThreshold      = 70
	sellVetoLimit     = 30
	sellThreshold     = 40
	holdMinConfidence = 50
)

// Decide evaluates the rule-based investment decision for one symbol.
//
// Two independent accumulators are built - buyScore and sellScore - and
// every rule appends one reason string in fixed rule order (trend,
// alignment, RSI, ADR, volume) whether or not it moved a score. Missing
// indicators skip their rule's scoring but still emit an advisory reason
// where one is defined.
func Decide(ind domain.IndicatorSet) domain.Decision {
	reasons := []string{}
	buyScore := 0
	sellScore := 0

	// 1. 200-day trend, the heaviest rule.
	if ind.MA200 != nil {
		if ind.Price > *ind.MA200 {
			buyScore += 30
			reasons = append(reasons, "✅ Price above 200-day MA (long-term uptrend)")
		} else {
			sellScore += 40
			reasons = append(reasons, "❌ Price below 200-day MA (downtrend)")
		}
	} else {
		reasons = append(reasons, "⚠️ Not enough history for the 200-day MA")
	}

	// 2. Moving-average alignment.
	if ind.PerfectOrder {
		buyScore += 25
		reasons = append(reasons, "✅ Perfect order intact (strong uptrend)")
	} else {
		sellScore += 20
		reasons = append(reasons, "⚠️ Perfect order not established")
	}

	// 3. RSI. Boundary values 30/50/70 belong to the lower adjoining band.
	if ind.RSI14 != nil {
		rsi := *ind.RSI14
		switch {
		case rsi >= 30 && rsi <= 50:
			buyScore += 20
			reasons = append(reasons, fmt.Sprintf("✅ RSI in ideal range (%.1f) - room to run", rsi))
		case rsi > 50 && rsi <= 70:
			buyScore += 10
			reasons = append(reasons, fmt.Sprintf("⚠️ RSI elevated (%.1f) - caution", rsi))
		case rsi > 70:
			sellScore += 25
			reasons = append(reasons, fmt.Sprintf("❌ RSI overbought (%.1f)", rsi))
		default:
			sellScore += 15
			reasons = append(reasons, fmt.Sprintf("❌ RSI oversold (%.1f)", rsi))
		}
	}

	// 4. ADR. Out-of-band values score nothing but still get an advisory.
	if ind.ADR20 != nil {
		adr := *ind.ADR20
		switch {
		case adr >= 5 && adr <= 15:
			buyScore += 15
			reasons = append(reasons, fmt.Sprintf("✅ ADR in ideal range (%.1f%%) - tradable movement", adr))
		case adr < 5:
			reasons = append(reasons, fmt.Sprintf("⚠️ ADR low (%.1f%%) - little movement", adr))
		default:
			reasons = append(reasons, fmt.Sprintf("⚠️ ADR high (%.1f%%) - elevated volatility", adr))
		}
	}

	// 5. Volume.
	if ind.VolumeAvg20 != nil && ind.Volume >= *ind.VolumeAvg20 {
		buyScore += 10
		reasons = append(reasons, "✅ Volume above average (high liquidity)")
	} else {
		reasons = append(reasons, "⚠️ Volume below average (low liquidity)")
	}

	decision := domain.Decision{
		Reasons:   reasons,
		BuyScore:  buyScore,
		SellScore: sellScore,
	}

	// First match wins.
	switch {
	case buyScore >= buyThreshold && sellScore < sellVetoLimit:
		decision.Action = domain.ActionBuy
		decision.Confidence = buyScore
	case sellScore >= sellThreshold:
		decision.Action = domain.ActionSell
		decision.Confidence = sellScore
	default:
		decision.Action = domain.ActionHold
		decision.Confidence = buyScore
		if decision.Confidence < holdMinConfidence {
			decision.Confidence = holdMinConfidence
		}
	}

	return decision
}
