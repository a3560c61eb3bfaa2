package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig wires the handlers and the shared secret that guards the
// batch trigger endpoint.
type RouterConfig struct {
	Screener   *ScreenerHandler
	Tokens     *TokenHandler
	CronSecret string
}

// NewRouter builds the API routing table.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", cfg.Screener.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stocks", cfg.Screener.HandleStocks)
		r.Post("/screen", cfg.Screener.HandleScreen)
		r.Get("/stock-lookup", cfg.Screener.HandleStockLookup)

		r.Post("/tokens/register", cfg.Tokens.HandleRegisterToken)
		r.Post("/tokens/unregister", cfg.Tokens.HandleUnregisterToken)
		r.Get("/tokens/count", cfg.Tokens.HandleTokenCount)

		r.Group(func(r chi.Router) {
			r.Use(requireBearer(cfg.CronSecret))
			r.Post("/process-stock", cfg.Screener.HandleProcessStock)
			r.Post("/batch-all", cfg.Screener.HandleBatchAll)
		})
	})

	return r
}

// requireBearer rejects requests whose Authorization header does not
// carry the expected bearer token. An empty secret disables the check,
// which is only acceptable for local development.
func requireBearer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
