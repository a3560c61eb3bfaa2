package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"stock-screener-backend/internal/domain"
	"stock-screener-backend/internal/repository"
	"stock-screener-backend/internal/usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockRepo struct {
	mu      sync.Mutex
	symbols []string
	records []domain.StockRecord
}

func (f *fakeStockRepo) UpsertRecord(ctx context.Context, rec *domain.StockRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeStockRepo) LatestRecords(ctx context.Context) ([]domain.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.StockRecord(nil), f.records...), nil
}

func (f *fakeStockRepo) ActiveSymbols(ctx context.Context) ([]string, error) {
	return f.symbols, nil
}

type fakeMarket struct{}

func (fakeMarket) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	return &domain.Quote{
		Symbol:   symbol,
		Name:     symbol + " Inc.",
		Exchange: "NasdaqGS",
		Price:    230,
		Volume:   5000,
	}, nil
}

func (fakeMarket) GetDailyHistory(ctx context.Context, symbol string, days int) ([]domain.PriceBar, error) {
	bars := make([]domain.PriceBar, 250)
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 100 + float64(i)*0.5
		bars[i] = domain.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 0.5,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars, nil
}

type fakeJobs struct{}

func (fakeJobs) StartJob(ctx context.Context, name string, total int) (int64, error) { return 1, nil }
func (fakeJobs) UpdateProgress(ctx context.Context, jobID int64, processed int) error {
	return nil
}
func (fakeJobs) FinishJob(ctx context.Context, jobID int64, status string, succeeded, failed int) error {
	return nil
}
func (fakeJobs) LogError(ctx context.Context, jobID int64, symbol, errType, message string) error {
	return nil
}

type unconfiguredPredictor struct{}

func (unconfiguredPredictor) Predict(ctx context.Context, symbol string, ind domain.IndicatorSet) (*domain.RawPrediction, error) {
	return nil, nil
}
func (unconfiguredPredictor) Configured() bool { return false }

type noopPacer struct{}

func (noopPacer) Wait(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T, repo *fakeStockRepo, secret string) http.Handler {
	t.Helper()

	log := zerolog.Nop()
	predictionUC := usecase.NewPredictionUsecase(unconfiguredPredictor{}, noopPacer{}, log)
	screenerUC := usecase.NewScreenerUsecase(
		repo,
		repository.NewInMemoryScreenCache(),
		fakeMarket{},
		predictionUC,
		fakeJobs{},
		nil, nil,
		noopPacer{},
		log,
	)

	return NewRouter(RouterConfig{
		Screener:   NewScreenerHandler(screenerUC, log),
		Tokens:     NewTokenHandler(nil, log),
		CronSecret: secret,
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeStockRepo{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestStocksEndpoint(t *testing.T) {
	repo := &fakeStockRepo{records: []domain.StockRecord{
		{Symbol: "AAPL", Score: 85, InvestmentDecision: domain.ActionBuy},
		{Symbol: "XOM", Score: 40, InvestmentDecision: domain.ActionSell},
	}}
	router := newTestRouter(t, repo, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stocks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Success bool                 `json:"success"`
		Count   int                  `json:"count"`
		Stocks  []domain.StockRecord `json:"stocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, 2, payload.Count)
}

func TestScreenEndpointFilters(t *testing.T) {
	repo := &fakeStockRepo{records: []domain.StockRecord{
		{Symbol: "AAPL", Score: 85, InvestmentDecision: domain.ActionBuy},
		{Symbol: "XOM", Score: 40, InvestmentDecision: domain.ActionSell},
	}}
	router := newTestRouter(t, repo, "")

	body := strings.NewReader(`{"filters":{"decision":"BUY"}}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/screen", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Count  int                  `json:"count"`
		Stocks []domain.StockRecord `json:"stocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 1, payload.Count)
	assert.Equal(t, "AAPL", payload.Stocks[0].Symbol)
}

func TestScreenEndpointPreset(t *testing.T) {
	repo := &fakeStockRepo{records: []domain.StockRecord{
		{Symbol: "AAPL", Score: 85, InvestmentDecision: domain.ActionBuy},
		{Symbol: "XOM", Score: 40, InvestmentDecision: domain.ActionSell},
	}}
	router := newTestRouter(t, repo, "")

	body := strings.NewReader(`{"preset_id":"buy_candidates"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/screen", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AAPL")
	assert.NotContains(t, rec.Body.String(), "XOM")

	body = strings.NewReader(`{"preset_id":"nope"}`)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/screen", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStockLookupRequiresSymbol(t *testing.T) {
	router := newTestRouter(t, &fakeStockRepo{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stock-lookup", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStockLookupNormalizesSymbol(t *testing.T) {
	router := newTestRouter(t, &fakeStockRepo{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stock-lookup?symbol=aapl", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			Symbol string `json:"symbol"`
			Score  int    `json:"score"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, "AAPL", payload.Data.Symbol)
}

func TestProcessStockPersists(t *testing.T) {
	repo := &fakeStockRepo{}
	router := newTestRouter(t, repo, "")

	body := strings.NewReader(`{"symbol":"msft"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process-stock", body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.records, 1)
	assert.Equal(t, "MSFT", repo.records[0].Symbol)
}

func TestBatchAllRequiresSecret(t *testing.T) {
	repo := &fakeStockRepo{symbols: []string{"AAPL", "MSFT"}}
	router := newTestRouter(t, repo, "s3cret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/batch-all", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/batch-all", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBatchAllRunsWithSecret(t *testing.T) {
	repo := &fakeStockRepo{symbols: []string{"AAPL", "MSFT"}}
	router := newTestRouter(t, repo, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/batch-all", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Success   bool `json:"success"`
		Total     int  `json:"total"`
		Succeeded int  `json:"succeeded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, 2, payload.Total)
	assert.Equal(t, 2, payload.Succeeded)
	assert.Len(t, repo.records, 2)
}
