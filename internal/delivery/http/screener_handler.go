package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"stock-screener-backend/internal/usecase"

	"github.com/rs/zerolog"
)

// ScreenerHandler exposes the screening pipeline over HTTP.
type ScreenerHandler struct {
	screener *usecase.ScreenerUsecase
	log      zerolog.Logger
}

func NewScreenerHandler(screener *usecase.ScreenerUsecase, log zerolog.Logger) *ScreenerHandler {
	return &ScreenerHandler{
		screener: screener,
		log:      log.With().Str("component", "http").Logger(),
	}
}

// HandleStocks returns the latest screening results unfiltered.
// GET /api/stocks
func (h *ScreenerHandler) HandleStocks(w http.ResponseWriter, r *http.Request) {
	records, err := h.screener.Stocks(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("load stocks failed")
		writeError(w, http.StatusInternalServerError, "could not load screening results")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(records),
		"stocks":  records,
	})
}

type screenRequest struct {
	PresetID string                `json:"preset_id"`
	Filters  *usecase.ScreenFilter `json:"filters"`
}

// HandleScreen filters the latest screening results, either by a named
// preset strategy or by custom filters.
// POST /api/screen
func (h *ScreenerHandler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid filter body")
			return
		}
	}

	var filter usecase.ScreenFilter
	switch {
	case req.PresetID != "":
		preset, ok := usecase.PresetFilters[req.PresetID]
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown preset: "+req.PresetID)
			return
		}
		filter = preset
	case req.Filters != nil:
		filter = *req.Filters
	}

	records, err := h.screener.Stocks(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("load stocks failed")
		writeError(w, http.StatusInternalServerError, "could not load screening results")
		return
	}

	filtered := filter.Apply(records)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(filtered),
		"stocks":  filtered,
	})
}

// HandleStockLookup runs the full on-demand analysis for one symbol.
// GET /api/stock-lookup?symbol=AAPL
func (h *ScreenerHandler) HandleStockLookup(w http.ResponseWriter, r *http.Request) {
	symbol := normalizeSymbol(r.URL.Query().Get("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol query parameter is required")
		return
	}

	analysis, err := h.screener.LookupStock(r.Context(), symbol)
	if err != nil {
		h.log.Warn().Err(err).Str("symbol", symbol).Msg("stock lookup failed")
		writeError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    analysis,
	})
}

type processStockRequest struct {
	Symbol string `json:"symbol"`
}

// HandleProcessStock screens a single symbol and persists the result.
// POST /api/process-stock
func (h *ScreenerHandler) HandleProcessStock(w http.ResponseWriter, r *http.Request) {
	var req processStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	symbol := normalizeSymbol(req.Symbol)
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	rec, err := h.screener.ProcessSymbol(r.Context(), symbol)
	if err != nil {
		h.log.Warn().Err(err).Str("symbol", symbol).Msg("process stock failed")
		writeError(w, http.StatusBadGateway, "processing failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    rec,
	})
}

// HandleBatchAll triggers a full screening run. Protected by the cron
// secret so only the scheduler (or an operator) can start one.
// POST /api/batch-all
func (h *ScreenerHandler) HandleBatchAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.screener.RunBatch(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("batch run failed")
		writeError(w, http.StatusInternalServerError, "batch run failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"job_id":     summary.JobID,
		"total":      summary.Total,
		"succeeded":  summary.Succeeded,
		"failed":     summary.Failed,
		"elapsed_ms": summary.Elapsed.Milliseconds(),
	})
}

// HandleHealth is the liveness probe.
// GET /health
func (h *ScreenerHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
