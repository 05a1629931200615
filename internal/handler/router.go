package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/metrics"
)

// RouterConfig contains the handlers and middleware the router mounts.
type RouterConfig struct {
	AuthHandler    *AuthHandler
	APIKeyHandler  *APIKeyHandler
	TodoHandler    *TodoHandler
	HealthHandler  *HealthHandler
	KeyMiddleware  func(http.Handler) http.Handler
	MetricsEnabled bool
	Logger         zerolog.Logger
}

// NewRouter builds the API router. The to-do routes sit behind the API key
// middleware; registration, key management and health do not.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}

	r.Get("/health", cfg.HealthHandler.ServeHTTP)

	cfg.AuthHandler.RegisterRoutes(r)
	cfg.APIKeyHandler.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(cfg.KeyMiddleware)
		cfg.TodoHandler.RegisterRoutes(r)
	})

	return r
}

// requestLogger logs each request after it completes.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("remote_addr", r.RemoteAddr).
				Msg("request completed")
		})
	}
}
