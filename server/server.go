// Package server assembles the HTTP router and runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/minilinkedin-go/apperror"
	"github.com/user/minilinkedin-go/auth"
	_ "github.com/user/minilinkedin-go/docs" // registers the OpenAPI spec served at /swagger
	"github.com/user/minilinkedin-go/logging"
	"github.com/user/minilinkedin-go/posts"
	"github.com/user/minilinkedin-go/users"
)

const (
	requestTimeout  = 60 * time.Second
	maxBodyBytes    = 10 << 20
	shutdownTimeout = 30 * time.Second
)

// Deps is everything NewRouter mounts.
type Deps struct {
	Logger      zerolog.Logger
	FrontendURL string
	Tokens      auth.TokenVerifier
	Auth        *auth.Handlers
	Posts       *posts.PostHandler
	Users       *users.UserHandlers
	// Now stamps health responses; nil means time.Now.
	Now func() time.Time
}

// NewRouter builds the application's router. All API routes live under /api.
func NewRouter(d Deps) http.Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(d.Logger))
	r.Use(logging.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.RequestSize(maxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	requireAuth := auth.JWTMiddleware(d.Tokens)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth(now))
		r.Route("/auth", func(r chi.Router) {
			d.Auth.RegisterRoutes(r, requireAuth)
		})
		r.Route("/posts", func(r chi.Router) {
			d.Posts.RegisterRoutes(r, requireAuth)
		})
		r.Route("/users", d.Users.RegisterRoutes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperror.WriteError(w, r, apperror.NewNotFoundError("Route not found", nil))
	})

	return r
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2024-03-01T12:00:00Z"`
}

// handleHealth godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} server.HealthResponse
// @Router /health [get]
func handleHealth(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apperror.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:    "OK",
			Timestamp: now().UTC().Format(time.RFC3339),
		})
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to 30 seconds.
func Run(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped gracefully")
	return nil
}
