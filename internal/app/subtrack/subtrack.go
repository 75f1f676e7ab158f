package subtrack

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/subtrack-app/subtrack/internal/cache"
	"github.com/subtrack-app/subtrack/internal/config"
	"github.com/subtrack-app/subtrack/internal/exchange"
	"github.com/subtrack-app/subtrack/internal/migrations"
	"github.com/subtrack-app/subtrack/internal/session"
	authservice "github.com/subtrack-app/subtrack/internal/services/auth"
	backupservice "github.com/subtrack-app/subtrack/internal/services/backup"
	rateservice "github.com/subtrack-app/subtrack/internal/services/rate"
	subservice "github.com/subtrack-app/subtrack/internal/services/subscription"
	"github.com/subtrack-app/subtrack/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(cacheRedis, cfg.SecretKey, cfg.Session.TTL)
	rateClient := exchange.NewClient(cfg.ExchangeRateAPIURL)

	authService := authservice.NewAuthService(db)
	subscriptionService := subservice.NewSubscriptionService(db, logger)
	rateService := rateservice.NewRateService(rateClient, cacheRedis, logger)
	backupService := backupservice.NewBackupService(db, cfg.DataDir, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, sessions,
		authService, subscriptionService, rateService, backupService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
