package usecase

import (
	"sort"

	"stock-screener-backend/internal/domain"
)

// ScreenFilter narrows the latest screening results. Zero values mean
// "no constraint", so an empty filter passes everything through.
type ScreenFilter struct {
	MinScore         int     `json:"min_score"`
	MinDollarVolume  float64 `json:"min_dollar_volume"`
	MinRSI           float64 `json:"min_rsi"`
	MaxRSI           float64 `json:"max_rsi"`
	MinADR           float64 `json:"min_adr"`
	MaxADR           float64 `json:"max_adr"`
	AboveMA200       bool    `json:"above_ma_200"`
	PerfectOrderOnly bool    `json:"perfect_order_only"`
	Decision         string  `json:"decision"`
	Limit            int     `json:"limit"`
}

// PresetFilters are the built-in screening strategies addressable by id.
// Only the strategies expressible over the persisted screening columns are
// kept; path-dependent setups (gap fills, pullbacks) need intraday data
// this system does not store.
var PresetFilters = map[string]ScreenFilter{
	"short_term_momentum": {AboveMA200: true, MinADR: 4, MinDollarVolume: 60_000_000},
	"perfect_order":       {PerfectOrderOnly: true, MinADR: 4},
	"buy_candidates":      {Decision: "BUY"},
}

// Apply filters records and returns them ordered by score descending.
func (f ScreenFilter) Apply(records []domain.StockRecord) []domain.StockRecord {
	out := make([]domain.StockRecord, 0, len(records))
	for _, rec := range records {
		if !f.matches(rec) {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func (f ScreenFilter) matches(rec domain.StockRecord) bool {
	if rec.Score < f.MinScore {
		return false
	}
	if f.MinDollarVolume > 0 && rec.DollarVolume < f.MinDollarVolume {
		return false
	}
	if f.MinRSI > 0 && (rec.RSI14 == nil || *rec.RSI14 < f.MinRSI) {
		return false
	}
	if f.MaxRSI > 0 && (rec.RSI14 == nil || *rec.RSI14 > f.MaxRSI) {
		return false
	}
	if f.MinADR > 0 && (rec.ADR20 == nil || *rec.ADR20 < f.MinADR) {
		return false
	}
	if f.MaxADR > 0 && (rec.ADR20 == nil || *rec.ADR20 > f.MaxADR) {
		return false
	}
	if f.AboveMA200 && (rec.MA200 == nil || rec.CurrentPrice <= *rec.MA200) {
		return false
	}
	if f.PerfectOrderOnly && !rec.PerfectOrder {
		return false
	}
	if f.Decision != "" && string(rec.InvestmentDecision) != f.Decision {
		return false
	}
	return true
}
