package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stock-screener-backend/internal/domain"
	"stock-screener-backend/internal/infrastructure/fcm"
	"stock-screener-backend/internal/repository"

	"github.com/rs/zerolog"
)

// ScreenerUsecase orchestrates the full screening pipeline: fetch market
// data, compute indicators, run the scoring and decision engines, attach
// the hybrid prediction and persist the result.
type ScreenerUsecase struct {
	repo       domain.StockRepository
	cache      domain.ScreenCache
	market     domain.MarketDataProvider
	prediction *PredictionUsecase
	jobs       domain.BatchJobRecorder
	fcmClient  *fcm.Client
	tokenRepo  *repository.TokenRepository

	pacer     Pacer
	groupSize int
	log       zerolog.Logger

	notified map[string]time.Time
	mu       sync.RWMutex
}

func NewScreenerUsecase(
	repo domain.StockRepository,
	cache domain.ScreenCache,
	market domain.MarketDataProvider,
	prediction *PredictionUsecase,
	jobs domain.BatchJobRecorder,
	fcmClient *fcm.Client,
	tokenRepo *repository.TokenRepository,
	pacer Pacer,
	log zerolog.Logger,
) *ScreenerUsecase {
	return &ScreenerUsecase{
		repo:       repo,
		cache:      cache,
		market:     market,
		prediction: prediction,
		jobs:       jobs,
		fcmClient:  fcmClient,
		tokenRepo:  tokenRepo,
		pacer:      pacer,
		groupSize:  5,
		log:        log.With().Str("component", "screener").Logger(),
		notified:   make(map[string]time.Time),
	}
}

const historyDays = 365

// ProcessSymbol runs the complete pipeline for one symbol and persists
// the resulting row for today's date.
func (uc *ScreenerUsecase) ProcessSymbol(ctx context.Context, symbol string) (*domain.StockRecord, error) {
	quote, err := uc.market.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}

	history, err := uc.market.GetDailyHistory(ctx, symbol, historyDays)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("history %s: no price bars", symbol)
	}

	ind := BuildIndicatorSet(history, quote)
	score := QualityScore(ind)
	decision := Decide(ind)
	prediction := uc.prediction.Predict(ctx, symbol, ind)

	rec := &domain.StockRecord{
		Symbol:             symbol,
		Date:               time.Now().UTC().Format("2006-01-02"),
		CurrentPrice:       ind.Price,
		OpenPrice:          quote.Open,
		HighPrice:          quote.DayHigh,
		LowPrice:           quote.DayLow,
		Volume:             ind.Volume,
		DollarVolume:       ind.Price * ind.Volume,
		MarketCap:          quote.MarketCap,
		MA10:               ind.MA10,
		MA20:               ind.MA20,
		MA50:               ind.MA50,
		MA200:              ind.MA200,
		RSI14:              ind.RSI14,
		ADR20:              ind.ADR20,
		VolumeAvg20:        ind.VolumeAvg20,
		PerfectOrder:       ind.PerfectOrder,
		Score:              score,
		InvestmentDecision: decision.Action,
		AIScore:            prediction.Score,
		AIConfidence:       prediction.Confidence,
		AIPrediction:       string(prediction.Label),
		AIReasoning:        prediction.Reasoning,
		UpdatedAt:          time.Now().UTC(),
	}

	if err := uc.repo.UpsertRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist %s: %w", symbol, err)
	}
	return rec, nil
}

// BatchSummary reports the outcome of one full screening run.
type BatchSummary struct {
	JobID     int64         `json:"job_id"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"-"`
}

// RunBatch screens every active symbol in fixed-size concurrent groups,
// pacing between groups so the upstream data source is not hammered.
// Individual symbol failures are logged and counted, never fatal.
func (uc *ScreenerUsecase) RunBatch(ctx context.Context) (*BatchSummary, error) {
	start := time.Now()

	symbols, err := uc.repo.ActiveSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no active symbols configured")
	}

	jobID, err := uc.jobs.StartJob(ctx, "daily_screen", len(symbols))
	if err != nil {
		uc.log.Warn().Err(err).Msg("could not record batch job start")
	}

	uc.log.Info().Int("symbols", len(symbols)).Int64("job_id", jobID).Msg("starting screening run")

	var (
		mu      sync.Mutex
		records []domain.StockRecord
		failed  int
	)

	for groupStart := 0; groupStart < len(symbols); groupStart += uc.groupSize {
		groupEnd := groupStart + uc.groupSize
		if groupEnd > len(symbols) {
			groupEnd = len(symbols)
		}

		var wg sync.WaitGroup
		for _, symbol := range symbols[groupStart:groupEnd] {
			wg.Add(1)
			go func(sym string) {
				defer wg.Done()
				rec, err := uc.ProcessSymbol(ctx, sym)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed++
					uc.log.Warn().Err(err).Str("symbol", sym).Msg("symbol screen failed")
					if jobID != 0 {
						if lerr := uc.jobs.LogError(ctx, jobID, sym, "screen", err.Error()); lerr != nil {
							uc.log.Warn().Err(lerr).Msg("could not record symbol error")
						}
					}
					return
				}
				records = append(records, *rec)
			}(symbol)
		}
		wg.Wait()

		if jobID != 0 {
			if err := uc.jobs.UpdateProgress(ctx, jobID, groupEnd); err != nil {
				uc.log.Warn().Err(err).Msg("could not record batch progress")
			}
		}

		if groupEnd < len(symbols) && uc.pacer != nil {
			if err := uc.pacer.Wait(ctx); err != nil {
				uc.log.Warn().Err(err).Msg("screening run interrupted")
				break
			}
		}
	}

	// Goroutines append in completion order; restore the score ordering
	// the database reads use so both paths serve identical listings.
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].Symbol < records[j].Symbol
	})

	uc.cache.SaveRecords(records)
	uc.notifyBuyDecisions(ctx, records)

	status := "completed"
	if len(records) == 0 {
		status = "failed"
	}
	if jobID != 0 {
		if err := uc.jobs.FinishJob(ctx, jobID, status, len(records), failed); err != nil {
			uc.log.Warn().Err(err).Msg("could not record batch job finish")
		}
	}

	summary := &BatchSummary{
		JobID:     jobID,
		Total:     len(symbols),
		Succeeded: len(records),
		Failed:    failed,
		Elapsed:   time.Since(start),
	}
	uc.log.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Dur("elapsed", summary.Elapsed).
		Msg("screening run finished")
	return summary, nil
}

// Stocks returns the most recent screening results, preferring the
// in-memory cache and falling back to the database after a restart.
func (uc *ScreenerUsecase) Stocks(ctx context.Context) ([]domain.StockRecord, error) {
	if cached := uc.cache.GetRecords(); len(cached) > 0 {
		return cached, nil
	}

	records, err := uc.repo.LatestRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		uc.cache.SaveRecords(records)
	}
	return records, nil
}

// LookupStock builds the full on-demand analysis payload for one symbol:
// indicators, score, decision, price levels, detailed report, prediction
// and a trailing chart window. Nothing is persisted.
func (uc *ScreenerUsecase) LookupStock(ctx context.Context, symbol string) (*domain.StockAnalysis, error) {
	quote, err := uc.market.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}

	history, err := uc.market.GetDailyHistory(ctx, symbol, historyDays)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("history %s: no price bars", symbol)
	}

	ind := BuildIndicatorSet(history, quote)
	score := QualityScore(ind)
	decision := Decide(ind)
	levels := CalculatePriceLevels(ind.Price, ind.MA20, ind.MA200, ind.ADR20, ind.Week52High, decision.Action)
	analysis := BuildDetailedAnalysis(symbol, quote.Name, ind, decision, levels)
	prediction := uc.prediction.Predict(ctx, symbol, ind)

	volumeRatio := 0.0
	if ind.VolumeAvg20 != nil && *ind.VolumeAvg20 > 0 {
		volumeRatio = ind.Volume / *ind.VolumeAvg20
	}

	return &domain.StockAnalysis{
		Symbol:       symbol,
		Name:         quote.Name,
		Exchange:     quote.Exchange,
		MarketCap:    quote.MarketCap,
		CurrentPrice: ind.Price,
		Indicators:   ind,
		Score:        score,
		Change1D:     quote.ChangePercent,
		VolumeRatio:  volumeRatio,
		DollarVolume: ind.Price * ind.Volume,
		Decision:     decision,
		Analysis:     analysis,
		Prediction:   &prediction,
		Historical:   HistoricalWindow(history, 90),
	}, nil
}
