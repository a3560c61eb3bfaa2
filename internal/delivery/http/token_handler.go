package http

import (
	"encoding/json"
	"net/http"

	"stock-screener-backend/internal/repository"

	"github.com/rs/zerolog"
)

// TokenHandler manages push notification device registrations.
type TokenHandler struct {
	tokenRepo *repository.TokenRepository
	log       zerolog.Logger
}

func NewTokenHandler(tokenRepo *repository.TokenRepository, log zerolog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenRepo: tokenRepo,
		log:       log.With().Str("component", "tokens").Logger(),
	}
}

type tokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// HandleRegisterToken registers a device for BUY alerts.
// POST /api/tokens/register
func (h *TokenHandler) HandleRegisterToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}
	if req.Platform == "" {
		req.Platform = "android"
	}

	if err := h.tokenRepo.RegisterToken(r.Context(), req.Token, req.Platform); err != nil {
		h.log.Error().Err(err).Msg("token registration failed")
		writeError(w, http.StatusInternalServerError, "could not register token")
		return
	}

	count, err := h.tokenRepo.TokenCount(r.Context())
	if err != nil {
		count = 0
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Success: true,
		Message: "Token registered successfully",
		Count:   count,
	})
}

// HandleUnregisterToken removes a device registration.
// POST /api/tokens/unregister
func (h *TokenHandler) HandleUnregisterToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.tokenRepo.UnregisterToken(r.Context(), req.Token); err != nil {
		h.log.Error().Err(err).Msg("token unregistration failed")
		writeError(w, http.StatusInternalServerError, "could not unregister token")
		return
	}

	count, err := h.tokenRepo.TokenCount(r.Context())
	if err != nil {
		count = 0
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Success: true,
		Message: "Token unregistered successfully",
		Count:   count,
	})
}

// HandleTokenCount reports how many devices are registered.
// GET /api/tokens/count
func (h *TokenHandler) HandleTokenCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.tokenRepo.TokenCount(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("token count failed")
		writeError(w, http.StatusInternalServerError, "could not count tokens")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Success: true,
		Message: "Token count retrieved",
		Count:   count,
	})
}
