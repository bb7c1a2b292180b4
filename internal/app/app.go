package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"usage-metrics/internal/aggregators"
	"usage-metrics/internal/events"
	internalhttp "usage-metrics/internal/http"
	"usage-metrics/internal/ingestors"
	"usage-metrics/internal/migrations"
	"usage-metrics/internal/queries"
	"usage-metrics/internal/shared/configs"
	"usage-metrics/internal/shared/filestorages"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/stores"
	"usage-metrics/internal/streams"
)

const storeConnectTimeout = 10 * time.Second

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	counterStore         stores.CounterStore
	metricUpdateQueue    *streams.PartitionedQueue[streams.MessageEnvelope]
	metricUpdateConsumer streams.MetricUpdateConsumer
	backgroundCtx        context.Context
	backgroundCancel     context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "usage-metrics").
		Logger()

	// Initialize blob store (dead letters)
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	deadLetterStore := stores.NewDeadLetterStore(fileStorage)

	// Initialize counter store
	counterStore, err := newCounterStore(config.Store, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize counter store: %w", err)
	}

	retryPolicy, err := ingestors.ParseRetryPolicy(config.Ingestion.RetryPolicy)
	if err != nil {
		_ = counterStore.Close()
		return nil, fmt.Errorf("failed to initialize retry policy: %w", err)
	}

	// Initialize ingestion service
	parser := events.NewMessageParser()
	updateAggregator := aggregators.NewUpdateAggregator(parser, aggregators.NewBucketKeyMapper(), appLogger)
	batchWriter := ingestors.NewBatchWriter(counterStore, config.Ingestion.WriteConcurrency, retryPolicy, appLogger)
	ingestionService := ingestors.NewIngestionService(updateAggregator, batchWriter)

	// Initialize query service
	queryService := queries.NewQueryService(counterStore, config.Query.MaxDateRangeDays)

	// Initialize stream queue
	metricUpdateQueue := streams.NewPartitionedQueue[streams.MessageEnvelope](config.Stream.Partitions, config.Stream.Buffer)
	metricUpdateProducer := streams.NewMetricUpdateProducer(metricUpdateQueue)
	metricUpdateConsumer := streams.NewMetricUpdateConsumer(metricUpdateQueue, ingestionService, deadLetterStore, streams.ConsumerOptions{
		BatchSize:     config.Stream.BatchSize,
		FlushInterval: config.Stream.FlushInterval,
		MaxAttempts:   config.Stream.MaxAttempts,
	}, appLogger)
	deadLetterService := streams.NewDeadLetterService(deadLetterStore, metricUpdateProducer)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(internalhttp.RouterDeps{
		IngestionService:  ingestionService,
		QueryService:      queryService,
		Parser:            parser,
		Producer:          metricUpdateProducer,
		DeadLetterService: deadLetterService,
		MaxBodyBytes:      int64(config.Server.MaxBodyBytes),
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:               config,
		appLogger:            appLogger,
		server:               server,
		counterStore:         counterStore,
		metricUpdateQueue:    metricUpdateQueue,
		metricUpdateConsumer: metricUpdateConsumer,
	}, nil
}

// newCounterStore opens the backend selected by store.driver and wraps it with metrics.
func newCounterStore(cfg configs.StoreConfig, logger loggers.Logger) (stores.CounterStore, error) {
	storeLogger := logger.With().Str(loggers.FieldStoreDriver, cfg.Driver).Logger()

	var store stores.CounterStore
	switch cfg.Driver {
	case stores.DriverMemory:
		store = stores.NewMemoryCounterStore(cfg.PageSize)
	case stores.DriverPostgres:
		db, err := stores.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(db, cfg.Postgres.AutoMigrate, storeLogger); err != nil {
			_ = db.Close()
			return nil, err
		}
		store = stores.NewPostgresCounterStore(db, cfg.PageSize)
	case stores.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
		defer cancel()
		client, err := stores.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		store = stores.NewRedisCounterStore(client, cfg.Redis.KeyPrefix, cfg.PageSize)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	storeLogger.Info().Int("page_size", cfg.PageSize).Msg("counter store ready")
	return stores.NewInstrumentedCounterStore(store, cfg.Driver), nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting usage-metrics service on port %d (log_level=%s, store_driver=%s, file_storage_root_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Store.Driver,
			app.config.FileStorage.RootDir)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.metricUpdateConsumer.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server, so nothing publishes anymore
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Stop consumers: drain buffered updates and flush pending batches
	app.metricUpdateConsumer.Stop()
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.metricUpdateQueue.Close()
	app.appLogger.Info().Msg("Background consumers stopped")

	// 3) Close counter store
	if err := app.counterStore.Close(); err != nil && !errors.Is(err, stores.ErrStoreClosed) {
		return fmt.Errorf("counter store close failed: %w", err)
	}
	app.appLogger.Info().Msg("Counter store closed")

	return nil
}
