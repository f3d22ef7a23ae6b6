package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/matchsync/external/apifootball"
	"github.com/pitchside/matchsync/external/webhook"
	"github.com/pitchside/matchsync/internal/config"
	"github.com/pitchside/matchsync/internal/infrastructure/repository/postgres"
	"github.com/pitchside/matchsync/internal/interfaces/httpapi"
	"github.com/pitchside/matchsync/internal/platform/cache"
	"github.com/pitchside/matchsync/internal/platform/logging"
	"github.com/pitchside/matchsync/internal/platform/resilience"
	"github.com/pitchside/matchsync/internal/usecase"
)

// App owns the wired service graph: the HTTP server for the internal API
// plus the background poller that keeps live matches syncing.
type App struct {
	Server *http.Server
	Poller *usecase.PollService

	cfg    config.Config
	db     *sqlx.DB
	logger *logging.Logger
	slog   *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	appLogger := logging.NewJSON(cfg.LogLevel)

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	uow := postgres.NewUnitOfWork(db)

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		Key:        cfg.APIFootballKey,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})

	syncSvc := usecase.NewMatchSyncService(provider, uow, appLogger)

	var notifier usecase.SyncNotifier
	if cfg.WebhookEnabled {
		notifier = webhook.NewDispatcher(webhook.DispatcherConfig{
			URL:     cfg.WebhookURL,
			Secret:  cfg.WebhookSecret,
			Timeout: cfg.WebhookTimeout,
			Retries: cfg.WebhookRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, appLogger)
	}

	results := cache.NewStore(cfg.ResultCacheTTL)
	poller := usecase.NewPollService(provider, syncSvc, notifier, results, usecase.PollConfig{
		DiscoveryInterval: cfg.PollDiscoveryInterval,
		SyncInterval:      cfg.PollSyncInterval,
		MaxWorkers:        cfg.PollMaxWorkers,
	}, appLogger)

	handler := httpapi.NewHandler(syncSvc, poller, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server: server,
		Poller: poller,
		cfg:    cfg,
		db:     db,
		logger: appLogger,
		slog:   logger,
	}, nil
}

// Start launches the background poller when polling is enabled. The HTTP
// server itself is started by the caller so it controls ListenAndServe.
func (a *App) Start(ctx context.Context) error {
	if !a.cfg.PollEnabled {
		a.slog.Info("match polling disabled", "reason", "POLL_ENABLED=false")
		return nil
	}
	if err := a.Poller.Start(ctx); err != nil {
		return fmt.Errorf("start poll service: %w", err)
	}
	a.slog.Info("match polling started",
		"discovery_interval", a.cfg.PollDiscoveryInterval.String(),
		"sync_interval", a.cfg.PollSyncInterval.String(),
		"max_workers", a.cfg.PollMaxWorkers,
	)
	return nil
}

// Close stops the poller, flushes the logger and closes the database pool.
func (a *App) Close() error {
	if a.cfg.PollEnabled {
		a.Poller.Stop()
	}
	a.logger.Sync()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
