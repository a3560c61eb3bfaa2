package domain

import "time"

// PriceBar represents one trading day of OHLCV data.
// Bars are ordered ascending by date with no duplicate dates.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote represents a live market quote for a symbol.
type Quote struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Exchange      string   `json:"exchange"`
	Price         float64  `json:"price"`
	Open          float64  `json:"open"`
	DayHigh       float64  `json:"dayHigh"`
	DayLow        float64  `json:"dayLow"`
	Volume        float64  `json:"volume"`
	ChangePercent float64  `json:"changePercent"`
	MarketCap     *float64 `json:"marketCap"`
	Week52High    *float64 `json:"week52High"`
	Week52Low     *float64 `json:"week52Low"`
}

// IndicatorSet holds the derived technical indicators for one symbol.
// Recomputed fresh on every request from a price series plus a live quote.
// Optional fields are nil when there is not enough history to compute them;
// a nil indicator means "insufficient data", never zero.
type IndicatorSet struct {
	Price         float64  `json:"price"`
	MA10          *float64 `json:"ma_10"`
	MA20          *float64 `json:"ma_20"`
	MA50          *float64 `json:"ma_50"`
	MA150         *float64 `json:"ma_150"`
	MA200         *float64 `json:"ma_200"`
	RSI14         *float64 `json:"rsi_14"`
	ADR20         *float64 `json:"adr_20"`
	VolumeAvg20   *float64 `json:"volume_avg_20"`
	Week52High    *float64 `json:"week_52_high"`
	Week52Low     *float64 `json:"week_52_low"`
	DistanceMA10  *float64 `json:"distance_ma_10"`
	DistanceMA200 *float64 `json:"distance_ma_200"`
	PerfectOrder  bool     `json:"perfect_order_bullish"`
	Volume        float64  `json:"volume"`
}

// Action is the discrete investment decision for a symbol.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionHold Action = "HOLD"
	ActionSell Action = "SELL"
)

// Decision is the output of the rule-based decision engine.
// Fully determined by the IndicatorSet: the same input always yields the
// same action, confidence and reason list.
type Decision struct {
	Action     Action   `json:"action"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
	BuyScore   int      `json:"buyScore"`
	SellScore  int      `json:"sellScore"`
}

// PriceLevel is a single derived price level with its distance from the
// current price and the fixed rationale text shown in reports.
type PriceLevel struct {
	Price        float64 `json:"price"`
	Delta        float64 `json:"delta"`
	DeltaPercent float64 `json:"deltaPercent"`
	Description  string  `json:"description"`
}

// ProfitTargets are the take-profit levels for current holders.
type ProfitTargets struct {
	Target1 PriceLevel `json:"target1"`
	Target2 PriceLevel `json:"target2"`
	Target3 PriceLevel `json:"target3"`
}

// EntryPoints are the entry and stop levels for new buyers.
type EntryPoints struct {
	Optimal    PriceLevel `json:"optimal"`
	Acceptable PriceLevel `json:"acceptable"`
	StopLoss   PriceLevel `json:"stopLoss"`
}

// PriceLevels is the full level plan. Produced only for BUY decisions;
// callers receive nil for HOLD and SELL.
type PriceLevels struct {
	ProfitTargets ProfitTargets `json:"profitTargets"`
	EntryPoints   EntryPoints   `json:"entryPoints"`
}

// PredictionLabel classifies an AI prediction score.
type PredictionLabel string

const (
	LabelStrongBuy PredictionLabel = "STRONG_BUY"
	LabelBuy       PredictionLabel = "BUY"
	LabelHold      PredictionLabel = "HOLD"
	LabelSell      PredictionLabel = "SELL"
)

// AIPrediction is the blended output of the hybrid predictor:
// 70% local rule-based score, 30% external predictor score.
type AIPrediction struct {
	Score      int             `json:"ai_score"`      // 0-100
	Confidence float64         `json:"ai_confidence"` // 0-1
	Label      PredictionLabel `json:"ai_prediction"`
	Reasoning  string          `json:"ai_reasoning"`
}

// RawPrediction is the response shape of the external predictor.
type RawPrediction struct {
	Score      int             `json:"score"`
	Confidence float64         `json:"confidence"`
	Label      PredictionLabel `json:"prediction"`
	Reasoning  string          `json:"reasoning"`
}

// StockRecord is the flat row persisted per (symbol, date).
// It carries the quote snapshot, every indicator column and the engine
// outputs, written with upsert-on-conflict semantics.
type StockRecord struct {
	Symbol             string    `json:"symbol"`
	Date               string    `json:"date"` // YYYY-MM-DD
	CurrentPrice       float64   `json:"current_price"`
	OpenPrice          float64   `json:"open_price"`
	HighPrice          float64   `json:"high_price"`
	LowPrice           float64   `json:"low_price"`
	Volume             float64   `json:"volume"`
	DollarVolume       float64   `json:"dollar_volume"`
	MarketCap          *float64  `json:"market_cap"`
	MA10               *float64  `json:"ma_10"`
	MA20               *float64  `json:"ma_20"`
	MA50               *float64  `json:"ma_50"`
	MA200              *float64  `json:"ma_200"`
	RSI14              *float64  `json:"rsi_14"`
	ADR20              *float64  `json:"adr_20"`
	VolumeAvg20        *float64  `json:"volume_avg_20"`
	PerfectOrder       bool      `json:"perfect_order_bullish"`
	Score              int       `json:"score"`
	InvestmentDecision Action    `json:"investment_decision"`
	AIScore            int       `json:"ai_score"`
	AIConfidence       float64   `json:"ai_confidence"`
	AIPrediction       string    `json:"ai_prediction"`
	AIReasoning        string    `json:"ai_reasoning"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// HistoricalPoint is one bar of the trailing chart window, annotated with
// the moving averages as of that bar.
type HistoricalPoint struct {
	Date   string   `json:"date"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume float64  `json:"volume"`
	MA10   *float64 `json:"ma_10"`
	MA20   *float64 `json:"ma_20"`
	MA50   *float64 `json:"ma_50"`
	MA200  *float64 `json:"ma_200"`
}

// AnalysisItem is one strength or concern in the detailed report.
type AnalysisItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// Recommendation is the action guidance section of the detailed report.
type Recommendation struct {
	Summary           []string `json:"summary"`
	ForHolders        string   `json:"forHolders"`
	ForNewBuyers      string   `json:"forNewBuyers"`
	WaitingConditions []string `json:"waitingConditions"`
}

// ScoringBreakdown itemizes how the buy and sell accumulators were built.
type ScoringBreakdown struct {
	BuyScore    int      `json:"buyScore"`
	BuyDetails  []string `json:"buyDetails"`
	SellScore   int      `json:"sellScore"`
	SellDetails []string `json:"sellDetails"`
}

// DecisionCriteria echoes the fixed decision thresholds and the actual
// accumulator values, for the report's "calculation basis" text.
type DecisionCriteria struct {
	BuyThreshold  string `json:"buyThreshold"`
	SellThreshold string `json:"sellThreshold"`
	ActualResult  string `json:"actualResult"`
}

// StockCharacteristics flags product types that need extra caution
// (leveraged ETFs, sector funds).
type StockCharacteristics struct {
	Type     string   `json:"type"`
	Warnings []string `json:"warnings"`
}

// DetailedAnalysis is the full investment report for one symbol.
type DetailedAnalysis struct {
	Strengths        []AnalysisItem        `json:"strengths"`
	Concerns         []AnalysisItem        `json:"concerns"`
	Scoring          ScoringBreakdown      `json:"scoring"`
	DecisionCriteria DecisionCriteria      `json:"decisionCriteria"`
	Characteristics  *StockCharacteristics `json:"stockCharacteristics,omitempty"`
	PriceLevels      *PriceLevels          `json:"priceLevels,omitempty"`
	Recommendation   Recommendation        `json:"recommendation"`
}

// StockAnalysis is the complete lookup payload for one symbol.
type StockAnalysis struct {
	Symbol       string            `json:"symbol"`
	Name         string            `json:"name"`
	Exchange     string            `json:"exchange"`
	MarketCap    *float64          `json:"market_cap"`
	CurrentPrice float64           `json:"current_price"`
	Indicators   IndicatorSet      `json:"technical_indicators"`
	Score        int               `json:"score"`
	Change1D     float64           `json:"change_1d"`
	VolumeRatio  float64           `json:"volume_ratio"`
	DollarVolume float64           `json:"dollar_volume"`
	Decision     Decision          `json:"investment_decision"`
	Analysis     DetailedAnalysis  `json:"detailed_analysis"`
	Prediction   *AIPrediction     `json:"ai_prediction,omitempty"`
	Historical   []HistoricalPoint `json:"historical_data"`
}
