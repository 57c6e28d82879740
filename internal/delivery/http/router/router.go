package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"filehub/internal/application/auth"
	"filehub/internal/delivery/http/handler"
	"filehub/internal/delivery/http/middleware"
	"filehub/internal/domain/user"
)

// Handlers holds all HTTP handlers. OAuth is nil when Google sign-in is
// not configured.
type Handlers struct {
	File   *handler.FileHandler
	Auth   *handler.AuthHandler
	OAuth  *handler.OAuthHandler
	User   *handler.UserHandler
	Health *handler.HealthHandler
}

// newRouter returns a chi router with the middleware stack shared by all routes
func newRouter(logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	// Outside Recoverer so recovered panics are counted as 500s
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	return r
}

// Setup configures all routes for the application
func Setup(handlers Handlers, authService auth.Service, logger *slog.Logger) http.Handler {
	r := newRouter(logger)

	authRequired := middleware.Auth(authService)

	r.Get("/healthz", handlers.Health.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.Auth.Register)
		r.Post("/login", handlers.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(authRequired)
			r.Post("/logout", handlers.Auth.Logout)
			r.Get("/me", handlers.Auth.Me)
		})

		if handlers.OAuth != nil {
			r.Get("/google", handlers.OAuth.GoogleLogin)
			r.Get("/google/callback", handlers.OAuth.GoogleCallback)
			r.Get("/google/status", handlers.OAuth.GoogleStatus)
		}
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Use(authRequired)
		r.Get("/profile", handlers.User.GetProfile)
		r.Put("/password", handlers.User.UpdatePassword)
	})

	r.Route("/api/files", func(r chi.Router) {
		r.Use(authRequired)
		r.Get("/", handlers.File.List)
		r.Get("/download", handlers.File.Download)
		r.Get("/preview", handlers.File.Preview)

		r.With(middleware.RequireCapability(user.Role.CanUpload)).Post("/upload", handlers.File.Upload)
		r.With(middleware.RequireCapability(user.Role.CanDelete)).Post("/delete", handlers.File.Delete)
	})

	return r
}
