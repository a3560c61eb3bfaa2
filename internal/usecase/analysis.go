package usecase

import (
	"fmt"
	"strings"

	"stock-screener-backend/internal/domain"
)

// BuildDetailedAnalysis expands a decision into the full investment
// report: itemized strengths and concerns per rule, the accumulator
// breakdown, the fixed decision criteria text, product-type warnings and
// action guidance. The rule evaluation mirrors Decide exactly; the report
// never re-decides, it only explains.
func BuildDetailedAnalysis(symbol, name string, ind domain.IndicatorSet, decision domain.Decision, levels *domain.PriceLevels) domain.DetailedAnalysis {
	var strengths, concerns []domain.AnalysisItem
	var buyDetails, sellDetails []string
	price := ind.Price

	// 1. 200-day trend.
	if ind.MA200 != nil {
		ma200 := *ind.MA200
		distance := (price - ma200) / ma200 * 100
		if price > ma200 {
			buyDetails = append(buyDetails, "Above 200-day MA: +30")
			strengths = append(strengths, domain.AnalysisItem{
				Title:       "Above 200-day MA (long-term uptrend)",
				Description: fmt.Sprintf("Price: $%.2f | 200-day MA: $%.2f | Distance: +%.1f%%", price, ma200, distance),
				Score:       30,
			})
		} else {
			sellDetails = append(sellDetails, "Below 200-day MA: +40")
			concerns = append(concerns, domain.AnalysisItem{
				Title:       "Price below 200-day MA (downtrend)",
				Description: fmt.Sprintf("Price: $%.2f | 200-day MA: $%.2f | Distance: %.1f%%", price, ma200, distance),
				Score:       40,
			})
		}
	} else {
		concerns = append(concerns, domain.AnalysisItem{
			Title:       "200-day MA unavailable",
			Description: "Not enough price history to judge the long-term trend",
			Score:       0,
		})
	}

	// 2. Perfect order.
	if ind.PerfectOrder {
		buyDetails = append(buyDetails, "Perfect order intact: +25")
		strengths = append(strengths, domain.AnalysisItem{
			Title:       "Perfect order intact (strong uptrend)",
			Description: "Moving averages stacked 10>20>50>150>200: short, medium and long-term trends all point up",
			Score:       25,
		})
	} else {
		sellDetails = append(sellDetails, "Perfect order broken: +20")
		concerns = append(concerns, domain.AnalysisItem{
			Title:       "Perfect order not established",
			Description: "Moving averages are not ideally stacked; the medium-term trend is unstable",
			Score:       20,
		})
	}

	// 3. RSI.
	if ind.RSI14 != nil {
		rsi := *ind.RSI14
		switch {
		case rsi >= 30 && rsi <= 50:
			buyDetails = append(buyDetails, fmt.Sprintf("RSI in ideal range (%.1f): +20", rsi))
			strengths = append(strengths, domain.AnalysisItem{
				Title:       fmt.Sprintf("RSI in ideal range (%.1f) - room to run", rsi),
				Description: "RSI sits in the ideal 30-50 band: not overbought, with upside left",
				Score:       20,
			})
		case rsi > 50 && rsi <= 70:
			buyDetails = append(buyDetails, fmt.Sprintf("RSI elevated (%.1f): +10", rsi))
			concerns = append(concerns, domain.AnalysisItem{
				Title:       fmt.Sprintf("RSI elevated (%.1f) - caution", rsi),
				Description: "RSI is on the high side; short-term upside may be limited and a pullback is possible",
				Score:       10,
			})
		case rsi > 70:
			sellDetails = append(sellDetails, fmt.Sprintf("RSI overbought (%.1f): +25", rsi))
			concerns = append(concerns, domain.AnalysisItem{
				Title:       fmt.Sprintf("RSI overbought (%.1f)", rsi),
				Description: "RSI above 70 marks the overbought zone; risk of a correction or profit-taking is high",
				Score:       25,
			})
		default:
			sellDetails = append(sellDetails, fmt.Sprintf("RSI oversold (%.1f): +15", rsi))
			concerns = append(concerns, domain.AnalysisItem{
				Title:       fmt.Sprintf("RSI oversold (%.1f)", rsi),
				Description: "RSI below 30 marks the oversold zone; a bounce is possible but so is a continued downtrend",
				Score:       15,
			})
		}
	}

	// 4. ADR.
	if ind.ADR20 != nil {
		adr := *ind.ADR20
		switch {
		case adr >= 5 && adr <= 15:
			buyDetails = append(buyDetails, fmt.Sprintf("ADR in ideal range (%.1f%%): +15", adr))
			strengths = append(strengths, domain.AnalysisItem{
				Title:       fmt.Sprintf("ADR in ideal range (%.1f%%) - tradable movement", adr),
				Description: "Volatility is moderate: enough movement to trade without extreme swings",
				Score:       15,
			})
		case adr < 5:
			concerns = append(concerns, domain.AnalysisItem{
				Title:       fmt.Sprintf("ADR low (%.1f%%) - little movement", adr),
				Description: "Low volatility: large moves are unlikely in the short term",
				Score:       0,
			})
		default:
			concerns = append(concerns, domain.AnalysisItem{
				Title:       fmt.Sprintf("ADR high (%.1f%%) - elevated volatility", adr),
				Description: "High volatility: big moves cut both ways, so risk tolerance is required",
				Score:       0,
			})
		}
	}

	// 5. Volume.
	volumeRatio := 0.0
	if ind.VolumeAvg20 != nil && *ind.VolumeAvg20 > 0 {
		volumeRatio = ind.Volume / *ind.VolumeAvg20
	}
	if ind.VolumeAvg20 != nil && ind.Volume >= *ind.VolumeAvg20 {
		buyDetails = append(buyDetails, "Volume above average: +10")
		strengths = append(strengths, domain.AnalysisItem{
			Title:       "Volume above average (high liquidity)",
			Description: fmt.Sprintf("Volume ratio %.2fx: active trading, easy to enter and exit", volumeRatio),
			Score:       10,
		})
	} else {
		concerns = append(concerns, domain.AnalysisItem{
			Title:       "Volume below average (low liquidity)",
			Description: fmt.Sprintf("Volume ratio %.2fx: trading is quiet and buying pressure may be weak", volumeRatio),
			Score:       0,
		})
	}

	return domain.DetailedAnalysis{
		Strengths: strengths,
		Concerns:  concerns,
		Scoring: domain.ScoringBreakdown{
			BuyScore:    decision.BuyScore,
			BuyDetails:  buyDetails,
			SellScore:   decision.SellScore,
			SellDetails: sellDetails,
		},
		DecisionCriteria: domain.DecisionCriteria{
			BuyThreshold:  "buyScore >= 70 AND sellScore < 30",
			SellThreshold: "sellScore >= 40",
			ActualResult:  fmt.Sprintf("buyScore: %d, sellScore: %d → %s", decision.BuyScore, decision.SellScore, decision.Action),
		},
		Characteristics: classifyProduct(name),
		PriceLevels:     levels,
		Recommendation:  buildRecommendation(decision.Action),
	}
}

// classifyProduct flags ETFs and leveraged products by name so the report
// can warn about decay and volatility. Returns nil for ordinary stocks.
func classifyProduct(name string) *domain.StockCharacteristics {
	etfKeywords := []string{"ETF", "SPDR", "iShares", "Vanguard", "Direxion", "ProShares", "3X", "2X", "Bull", "Bear"}
	leveragedKeywords := []string{"3X", "2X", "Bull", "Bear"}

	isETF := false
	for _, kw := range etfKeywords {
		if strings.Contains(name, kw) {
			isETF = true
			break
		}
	}
	if !isETF {
		return nil
	}

	isLeveraged := false
	for _, kw := range leveragedKeywords {
		if strings.Contains(name, kw) {
			isLeveraged = true
			break
		}
	}

	productType := "ETF"
	var warnings []string
	if isLeveraged {
		productType = "Leveraged ETF"
		warnings = append(warnings,
			"Daily moves of ±10-20% are possible with this product",
			"Built for short-term trading, not long-term holding",
			"Watch for value decay over time",
		)
	}
	if strings.Contains(name, "Semiconductor") || strings.Contains(name, "SOX") {
		warnings = append(warnings, "Semiconductor sector fund: tracks the whole sector's swings")
	}
	if len(warnings) == 0 {
		warnings = []string{"Ordinary ETF with diversification benefits"}
	}

	return &domain.StockCharacteristics{Type: productType, Warnings: warnings}
}

func buildRecommendation(action domain.Action) domain.Recommendation {
	switch action {
	case domain.ActionBuy:
		return domain.Recommendation{
			Summary: []string{
				"The long-term trend is healthy and technical indicators point to a buy",
				"Multiple signals align to the upside - a reasonable entry point",
			},
			ForHolders:   "Hold: the uptrend can be ridden while it lasts",
			ForNewBuyers: "Entry recommended with a stop near the 200-day MA",
			WaitingConditions: []string{
				"Consider taking profit if RSI moves above 70",
				"Consider cutting losses on a close below the 200-day MA",
			},
		}
	case domain.ActionSell:
		return domain.Recommendation{
			Summary: []string{
				"Multiple negative signals are active and risk is elevated",
				"A downtrend or correction phase is likely",
			},
			ForHolders:   "Consider selling or cutting losses; prioritize risk management",
			ForNewBuyers: "No new entries: wait for a trend-reversal signal",
			WaitingConditions: []string{
				"Wait for the price to recover above the 200-day MA",
				"Wait for the perfect order to re-establish",
			},
		}
	default:
		return domain.Recommendation{
			Summary: []string{
				"The long-term trend holds but medium-term momentum is weak",
				"Waiting for a clear entry signal is the prudent move",
			},
			ForHolders:   "Hold existing positions; no rush to sell, but avoid adding aggressively",
			ForNewBuyers: "Wait for the conditions below before entering",
			WaitingConditions: []string{
				"Perfect order established",
				"RSI back inside the 30-50 range",
				"Volume recovering above average",
			},
		}
	}
}
