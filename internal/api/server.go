package api

import (
	"net/http"
	"time"

	authapi "github.com/futig/scopeguard/internal/api/auth"
	dashboardapi "github.com/futig/scopeguard/internal/api/dashboard"
	"github.com/futig/scopeguard/internal/api/docs"
	"github.com/futig/scopeguard/internal/api/middleware"
	settingsapi "github.com/futig/scopeguard/internal/api/settings"
	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups the route handlers of the application
type Handlers struct {
	Auth      *authapi.Handler
	Dashboard *dashboardapi.Handler
	Settings  *settingsapi.Handler
	// Denied answers gated routes for sessions without identity
	Denied http.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	handlers Handlers,
	sessions *session.Manager,
	sessionCfg config.SessionConfig,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)               // Recover from panics
	r.Use(chimiddleware.RequestID)               // Add request ID
	r.Use(middleware.Logger(logger))             // Log requests
	r.Use(chimiddleware.Timeout(requestTimeout)) // Bound generation time

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	gate := middleware.RequireIdentity(handlers.Denied)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Sessions(sessions, sessionCfg))

		authapi.RegisterRoutes(r, handlers.Auth, gate)
		dashboardapi.RegisterRoutes(r, handlers.Dashboard, gate)
		settingsapi.RegisterRoutes(r, handlers.Settings, gate)
	})

	return r
}
