package usecase

import "stock-screener-backend/internal/domain"

// Fallback ratios used when an input level is unavailable.
const (
	fallbackADRRatio   = 0.03 // assume a 3% daily range
	fallbackTarget3    = 1.10 // +10% long-term target
	fallbackEntryRatio = 0.98 // 2% below market
	fallbackStopRatio  = 0.93 // 7% below market
)

// CalculatePriceLevels derives profit targets and entry/stop levels for a
// BUY decision. For HOLD and SELL it returns nil: callers must never show
// levels computed from a stale BUY.
func CalculatePriceLevels(price float64, ma20, ma200, adr, week52High *float64, action domain.Action) *domain.PriceLevels {
	if action != domain.ActionBuy {
		return nil
	}

	effectiveADR := price * fallbackADRRatio
	if adr != nil {
		effectiveADR = *adr
	}

	target1 := price + effectiveADR*1.5
	target2 := price + effectiveADR*3.0
	target3 := price * fallbackTarget3
	if week52High != nil {
		target3 = *week52High
	}

	optimalEntry := price * fallbackEntryRatio
	if ma20 != nil {
		optimalEntry = *ma20
	}

	stopLoss := price * fallbackStopRatio
	if ma200 != nil {
		stopLoss = *ma200
	}

	return &domain.PriceLevels{
		ProfitTargets: domain.ProfitTargets{
			Target1: level(target1, target1-price, price, "Short-term target (1-3 days)"),
			Target2: level(target2, target2-price, price, "Mid-term target (1-2 weeks)"),
			Target3: level(target3, target3-price, price, "Long-term target (52-week high or +10%)"),
		},
		EntryPoints: domain.EntryPoints{
			Optimal:    level(optimalEntry, price-optimalEntry, price, "Pullback entry near the 20-day MA"),
			Acceptable: level(price, 0, price, "Current market price (trend continuation)"),
			StopLoss:   level(stopLoss, price-stopLoss, price, "200-day MA (long-term trend inflection)"),
		},
	}
}

func level(price, delta, basis float64, description string) domain.PriceLevel {
	return domain.PriceLevel{
		Price:        price,
		Delta:        delta,
		DeltaPercent: delta / basis * 100,
		Description:  description,
	}
}
