package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/simple-admin/internal/http/features/audit"
	"github.com/tendant/simple-admin/internal/http/features/companies"
	"github.com/tendant/simple-admin/internal/http/features/users"
	"github.com/tendant/simple-admin/internal/http/middleware"
	"github.com/tendant/simple-admin/internal/httputil"
	"github.com/tendant/simple-admin/pkg/admin"
	"github.com/tendant/simple-admin/pkg/repository"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger             *slog.Logger
	CompanyService     *admin.CompanyService
	UserService        *admin.UserService
	AuditLogs          *repository.AuditLogsRepository
	JWTSecret          string
	JWTIssuer          string
	RateLimitPerMinute int
	MaxRequestBodySize int64
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Actor(cfg.JWTSecret, cfg.JWTIssuer))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeaders()))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimit := middleware.NoRateLimit()
	if cfg.RateLimitPerMinute > 0 {
		rateLimit = middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.RateLimitPerMinute,
			Window:   time.Minute,
			Logger:   cfg.Logger,
		})
	}

	companiesHandler := companies.NewHandler(cfg.Logger, cfg.CompanyService)
	usersHandler := users.NewHandler(cfg.Logger, cfg.UserService)
	auditHandler := audit.NewHandler(cfg.Logger, cfg.AuditLogs)

	r.Group(func(r chi.Router) {
		r.Use(rateLimit)

		r.Post("/v1/companies", companiesHandler.Create)
		r.Get("/v1/companies", companiesHandler.Search)
		r.Get("/v1/companies/{id}", companiesHandler.Get)
		r.Patch("/v1/companies/{id}", companiesHandler.Update)
		r.Post("/v1/companies/{id}/deactivate", companiesHandler.Deactivate)
		r.Post("/v1/companies/{id}/reactivate", companiesHandler.Reactivate)

		r.Post("/v1/users", usersHandler.Create)
		r.Get("/v1/users", usersHandler.Search)
		r.Get("/v1/users/{id}", usersHandler.Get)
		r.Patch("/v1/users/{id}", usersHandler.Update)

		r.Get("/v1/audit", auditHandler.List)
	})

	return r
}
