package domain

import "context"

// StockRepository persists screened stock rows keyed by (symbol, date).
type StockRepository interface {
	UpsertRecord(ctx context.Context, rec *StockRecord) error
	LatestRecords(ctx context.Context) ([]StockRecord, error)
	ActiveSymbols(ctx context.Context) ([]string, error)
}

// ScreenCache holds the most recent screening cycle's results in memory
// for fast reads by the HTTP layer.
type ScreenCache interface {
	SaveRecords(records []StockRecord)
	GetRecords() []StockRecord
}

// MarketDataProvider supplies live quotes and daily OHLCV history.
type MarketDataProvider interface {
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
	GetDailyHistory(ctx context.Context, symbol string, days int) ([]PriceBar, error)
}

// Predictor is the opaque external scoring collaborator. Implementations
// must return an error for any transport failure, non-2xx response or
// unparsable body; the hybrid predictor degrades to its local score.
type Predictor interface {
	Predict(ctx context.Context, symbol string, indicators IndicatorSet) (*RawPrediction, error)
	Configured() bool
}

// BatchJobRecorder records batch refresh progress and outcome.
type BatchJobRecorder interface {
	StartJob(ctx context.Context, name string, total int) (int64, error)
	UpdateProgress(ctx context.Context, jobID int64, processed int) error
	FinishJob(ctx context.Context, jobID int64, status string, succeeded, failed int) error
	LogError(ctx context.Context, jobID int64, symbol, errType, message string) error
}
