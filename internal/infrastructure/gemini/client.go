package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-screener-backend/internal/domain"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	model          = "gemini-2.0-flash-exp"
)

// Client implements domain.Predictor against the Gemini generateContent
// API. The model is prompted to answer with a single JSON object carrying
// score, confidence, prediction and reasoning.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Configured reports whether an API key is present. Without one the
// hybrid predictor never calls out and uses its local-only fallback.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Predict asks the model to score the symbol from its indicators.
// Exactly one attempt: any transport error, non-2xx status or unparsable
// body is returned as an error for the caller's fallback path.
func (c *Client) Predict(ctx context.Context, symbol string, ind domain.IndicatorSet) (*domain.RawPrediction, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(symbol, ind)}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 200,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error: %d", resp.StatusCode)
	}

	var data generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: empty response")
	}

	raw, err := extractJSON(data.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}

	var prediction struct {
		Score      float64 `json:"score"`
		Confidence float64 `json:"confidence"`
		Prediction string  `json:"prediction"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &prediction); err != nil {
		return nil, fmt.Errorf("gemini: malformed prediction JSON: %w", err)
	}

	return &domain.RawPrediction{
		Score:      int(prediction.Score),
		Confidence: prediction.Confidence,
		Label:      domain.PredictionLabel(prediction.Prediction),
		Reasoning:  prediction.Reasoning,
	}, nil
}

func buildPrompt(symbol string, ind domain.IndicatorSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock analysis:\nSymbol: %s\nCurrent price: $%.2f\n\nTechnical indicators:\n", symbol, ind.Price)
	fmt.Fprintf(&b, "- RSI(14): %s\n", fmtOpt(ind.RSI14, "%.2f"))
	fmt.Fprintf(&b, "- ADR(20): %s%%\n", fmtOpt(ind.ADR20, "%.2f"))
	fmt.Fprintf(&b, "- Moving averages: MA10=$%s, MA20=$%s, MA50=$%s, MA200=$%s\n",
		fmtOpt(ind.MA10, "%.2f"), fmtOpt(ind.MA20, "%.2f"), fmtOpt(ind.MA50, "%.2f"), fmtOpt(ind.MA200, "%.2f"))
	fmt.Fprintf(&b, "- Perfect order: %v\n", ind.PerfectOrder)
	fmt.Fprintf(&b, "- Volume: %.0f\n", ind.Volume)
	fmt.Fprintf(&b, "- Average volume (20d): %s\n\n", fmtOpt(ind.VolumeAvg20, "%.0f"))
	b.WriteString(`Respond with a single JSON object and nothing else:
{
  "score": prediction score 0-100 (number),
  "confidence": confidence 0-1 (number),
  "prediction": one of "STRONG_BUY" | "BUY" | "HOLD" | "SELL",
  "reasoning": "short rationale, max 200 characters"
}`)
	return b.String()
}

func fmtOpt(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

// extractJSON pulls the outermost JSON object out of the model's text,
// tolerating markdown code fences around it.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("gemini: no JSON object in response")
	}
	return text[start : end+1], nil
}
