// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/mialtar/internal/admin"
	"github.com/carterperez-dev/mialtar/internal/auth"
	"github.com/carterperez-dev/mialtar/internal/config"
	"github.com/carterperez-dev/mialtar/internal/core"
	"github.com/carterperez-dev/mialtar/internal/feature"
	"github.com/carterperez-dev/mialtar/internal/health"
	"github.com/carterperez-dev/mialtar/internal/middleware"
	"github.com/carterperez-dev/mialtar/internal/migrations"
	"github.com/carterperez-dev/mialtar/internal/premium"
	"github.com/carterperez-dev/mialtar/internal/server"
	"github.com/carterperez-dev/mialtar/internal/share"
	"github.com/carterperez-dev/mialtar/internal/user"
	"github.com/carterperez-dev/mialtar/internal/wall"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.MigrationsPath != "" {
		if err := migrations.Run(db.DB.DB, cfg.Database.MigrationsPath); err != nil {
			return err
		}
		logger.Info("migrations applied", "path", cfg.Database.MigrationsPath)
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(auth.ServiceConfig{
		Repo:         authRepo,
		JWT:          jwtManager,
		UserProvider: userSvc,
		Redis:        redis.Client,
		Codes:        auth.NewRedisCodeStore(redis.Client),
		Notifier:     auth.NewLogNotifier(logger, cfg.App.FrontendBaseURL),
		OTP:          cfg.OTP,
	})
	authHandler := auth.NewHandler(authSvc)

	featureRepo := feature.NewRepository(db.DB)
	featureSvc := feature.NewService(featureRepo, userSvc)
	featureHandler := feature.NewHandler(featureSvc)

	premiumRepo := premium.NewRepository(db.DB)
	premiumSvc := premium.NewService(premiumRepo, cfg.Premium)
	premiumHandler := premium.NewHandler(premiumSvc)

	shareRepo := share.NewRepository(db.DB)
	shareSvc := share.NewService(shareRepo, cfg.App.FrontendBaseURL)
	shareHandler := share.NewHandler(shareSvc)

	wallRepo := wall.NewRepository(db.DB)
	wallSvc := wall.NewService(
		wallRepo,
		shareSvc,
		userSvc,
		cfg.Walls.FreeDraftLimit,
	)
	wallHandler := wall.NewHandler(wallSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Repo:       admin.NewRepository(db.DB),
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	tiered := middleware.TieredRateLimiter(redis.Client, middleware.DefaultTiers)
	authOnly := middleware.Authenticator(jwtManager)
	authenticator := func(next http.Handler) http.Handler {
		return authOnly(tiered(next))
	}
	optionalAuth := middleware.OptionalAuth(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		r.Post("/users", authHandler.Register)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		featureHandler.RegisterRoutes(r, authenticator, adminOnly)
		premiumHandler.RegisterRoutes(r, authenticator)
		premiumHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		shareHandler.RegisterRoutes(r, authenticator, optionalAuth)
		wallHandler.RegisterRoutes(r, authenticator)

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
