package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boutique-datastore/internal/backend"
	"boutique-datastore/internal/config"
	"boutique-datastore/internal/service"
	"boutique-datastore/internal/snapshot"
	"boutique-datastore/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	cfg := config.MustLoad()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.App.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if cfg.App.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	logger.Info().
		Str("app", cfg.App.Name).
		Str("environment", cfg.App.Environment).
		Msg("starting datastore")

	// Initialize the backend data service based on config
	var svc backend.DataService
	switch cfg.Backend.Type {
	case "mysql":
		mysqlSvc, err := backend.NewMySQLService(cfg.Backend.MySQLDSN(), cfg.Cache.MemoTTL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize MySQL backend")
		}
		svc = mysqlSvc
	case "rest":
		svc = backend.NewRESTService(backend.RESTConfig{
			BaseURL: cfg.Backend.RESTBaseURL,
			APIKey:  cfg.Backend.RESTAPIKey,
			Timeout: cfg.Backend.RESTTimeout,
			MemoTTL: cfg.Cache.MemoTTL,
		}, logger)
		logger.Info().Str("url", cfg.Backend.RESTBaseURL).Msg("rest data service initialized")
	default: // sqlite
		sqliteSvc, err := backend.NewSQLiteService(cfg.Backend.SQLitePath, cfg.Cache.MemoTTL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize SQLite backend")
		}
		svc = sqliteSvc
	}
	defer svc.Close()

	// Initialize snapshot persistence based on config
	var snapshots snapshot.Store
	switch cfg.Snapshot.Type {
	case "redis":
		redisStore, err := snapshot.NewRedisStore(snapshot.RedisConfig{
			Addr:     cfg.Snapshot.RedisAddress(),
			Password: cfg.Snapshot.RedisPassword,
			DB:       cfg.Snapshot.RedisDB,
			Key:      cfg.Snapshot.RedisKey,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("redis snapshot store unavailable, falling back to file")
		} else {
			snapshots = redisStore
			logger.Info().Str("addr", cfg.Snapshot.RedisAddress()).Msg("redis snapshot store initialized")
		}
	}
	if snapshots == nil {
		fileStore, err := snapshot.NewFileStore(cfg.Snapshot.Path)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize snapshot store")
		}
		snapshots = fileStore
		logger.Info().Str("path", cfg.Snapshot.Path).Msg("file snapshot store initialized")
	}
	defer snapshots.Close()

	st := store.New(svc, snapshots, logger, store.Options{MaxAge: cfg.Cache.MaxAge})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := st.Restore(ctx); err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			logger.Info().Msg("no persisted snapshot, starting cold")
		} else {
			logger.Warn().Err(err).Msg("failed to restore snapshot, starting cold")
		}
	} else {
		logger.Info().
			Int("products", len(st.ProductList())).
			Int("orders", len(st.OrderList())).
			Msg("snapshot restored")
	}

	st.PreloadAll(ctx)
	cancel()

	if stats := st.Stats(); stats != nil {
		logger.Info().
			Int("orders", stats.TotalOrders).
			Int("products", stats.TotalProducts).
			Int("customers", stats.TotalCustomers).
			Float64("revenue", stats.TotalRevenue).
			Msg("cache warmed")
	}

	var refresher *service.Refresher
	if cfg.Refresh.Enabled {
		refresher = service.NewRefresher(st, service.RefresherConfig{
			Interval: cfg.Refresh.Interval,
			Timeout:  cfg.Refresh.Timeout,
		}, logger)
		refresher.Start()
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := st.Persist(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to persist final snapshot")
	}

	logger.Info().Msg("datastore stopped")
}
