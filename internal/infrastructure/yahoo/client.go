package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stock-screener-backend/internal/domain"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches live quotes and daily OHLCV history from the Yahoo
// Finance JSON endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"quoteResponse"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	LongName                   string   `json:"longName"`
	ShortName                  string   `json:"shortName"`
	FullExchangeName           string   `json:"fullExchangeName"`
	RegularMarketPrice         float64  `json:"regularMarketPrice"`
	RegularMarketOpen          float64  `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64  `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64  `json:"regularMarketDayLow"`
	RegularMarketVolume        float64  `json:"regularMarketVolume"`
	RegularMarketChangePercent float64  `json:"regularMarketChangePercent"`
	MarketCap                  *float64 `json:"marketCap"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// GetQuote returns the live quote for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(symbol))

	var payload quoteResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo quote error: %s", payload.QuoteResponse.Error.Description)
	}
	if len(payload.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote: no data for %s", symbol)
	}

	r := payload.QuoteResponse.Result[0]
	if r.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo quote: no market price for %s", symbol)
	}

	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	if name == "" {
		name = symbol
	}

	return &domain.Quote{
		Symbol:        r.Symbol,
		Name:          name,
		Exchange:      r.FullExchangeName,
		Price:         r.RegularMarketPrice,
		Open:          r.RegularMarketOpen,
		DayHigh:       r.RegularMarketDayHigh,
		DayLow:        r.RegularMarketDayLow,
		Volume:        r.RegularMarketVolume,
		ChangePercent: r.RegularMarketChangePercent,
		MarketCap:     r.MarketCap,
		Week52High:    r.FiftyTwoWeekHigh,
		Week52Low:     r.FiftyTwoWeekLow,
	}, nil
}

// GetDailyHistory returns up to days of daily bars, oldest first. Bars
// with missing values (halted sessions) are skipped so the series stays
// index-aligned across open/high/low/close/volume.
func (c *Client) GetDailyHistory(ctx context.Context, symbol string, days int) ([]domain.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%dd&interval=1d", c.baseURL, url.PathEscape(symbol), days)

	var payload chartResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart: no data for %s", symbol)
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]domain.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Each array can be ragged independently in degraded payloads.
		if i >= len(quote.Close) || i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) {
			continue
		}
		if quote.Close[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Open[i] == nil {
			continue
		}
		volume := 0.0
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		bars = append(bars, domain.PriceBar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo chart: empty history for %s", symbol)
	}
	return bars, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "stock-screener-backend/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo API error: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
