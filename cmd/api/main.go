// Package main is the entrypoint for the Hagiodex API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hagiodex/hagiodex/internal/auth"
	"github.com/hagiodex/hagiodex/internal/config"
	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/repository"
	"github.com/hagiodex/hagiodex/internal/server"
	"github.com/hagiodex/hagiodex/internal/service"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.Options{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return errors.New(sanitizeError(err, cfg.DatabaseURL))
	}
	defer repo.Close()
	logger.Info("connected to database")

	if err := repo.EnsureSchema(ctx); err != nil {
		return errors.New("apply schema: " + sanitizeError(err, cfg.DatabaseURL))
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret.Bytes())
	if err != nil {
		return err
	}

	var (
		recorder metrics.Recorder = metrics.NewNoop()
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus()
		recorder = prom
		gatherer = prom.Gatherer()
	}

	accounts := service.NewAccountService(repo, issuer, cfg.AccessTokenTTL, recorder)
	creatures := service.NewCreatureService(repo, recorder)
	saints := service.NewSaintService(repo, recorder)

	r := server.NewRouter(server.RouterConfig{
		Logger:          logger,
		Accounts:        accounts,
		Creatures:       creatures,
		Saints:          saints,
		Authenticator:   auth.NewResolver(issuer, repo),
		Health:          repo,
		Metrics:         recorder,
		Gatherer:        gatherer,
		IsDevelopment:   cfg.IsDevelopment(),
		AllowedOrigins:  cfg.GetCORSAllowedOrigins(),
		MaxBodySize:     cfg.MaxRequestBodySize,
		AuthMinDuration: cfg.AuthMinDuration,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"metrics_enabled", cfg.MetricsEnabled,
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
