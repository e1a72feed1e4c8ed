package server

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hagiodex/hagiodex/internal/handler"
	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/middleware"
	"github.com/hagiodex/hagiodex/internal/service"
)

// defaultMaxBodySize applies when RouterConfig.MaxBodySize is unset.
const defaultMaxBodySize = 1 << 20

// RouterConfig carries everything the API router wires together.
type RouterConfig struct {
	Logger *slog.Logger

	Accounts  *service.AccountService
	Creatures *service.CreatureService
	Saints    *service.SaintService

	Authenticator middleware.Authenticator
	Health        handler.HealthChecker

	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer // nil leaves /metrics unmounted

	IsDevelopment   bool
	AllowedOrigins  []string
	MaxBodySize     int64
	AuthMinDuration time.Duration
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}

	h := handler.New()
	healthHandler := handler.NewHealthHandler(cfg.Health)
	accountHandler := handler.NewAccountHandler(cfg.Accounts, logger)
	creatureHandler := handler.NewCreatureHandler(cfg.Creatures, logger)
	saintHandler := handler.NewSaintHandler(cfg.Saints, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:        logger,
		Authenticator: cfg.Authenticator,
		Metrics:       cfg.Metrics,
		MinDuration:   cfg.AuthMinDuration,
	})

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(maxBody))

	r.Get("/", h.Welcome)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	if cfg.Gatherer != nil {
		r.Get("/metrics", handler.NewMetricsHandler(cfg.Gatherer).Metrics)
	}

	r.Post("/token", accountHandler.Login)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", accountHandler.Register)
		r.With(requireAuth).Get("/me", accountHandler.Me)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.PathID("id"))
			r.Use(requireAuth)
			r.Use(middleware.RequireSelf("id"))
			r.Patch("/", accountHandler.Update)
			r.Delete("/", accountHandler.Delete)
		})
	})

	// Catalog mutations are open to anonymous callers.
	r.Route("/creatures", func(r chi.Router) {
		r.Get("/", creatureHandler.List)
		r.Post("/", creatureHandler.Create)
		r.With(middleware.PathLookupKey("idOrName")).Get("/{idOrName}", creatureHandler.Get)
	})

	r.Route("/saints", func(r chi.Router) {
		r.Get("/", saintHandler.List)
		r.Post("/", saintHandler.Create)
		// One param name per segment: GET takes an id or a name, writes an id.
		r.With(middleware.PathLookupKey("id")).Get("/{id}", saintHandler.Get)
		r.With(middleware.PathID("id")).Patch("/{id}", saintHandler.Update)
		r.With(middleware.PathID("id")).Delete("/{id}", saintHandler.Delete)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
