package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"eiborservice/internal/config"
	"eiborservice/internal/events"
	"eiborservice/internal/extractor"
	"eiborservice/internal/repository"
	"eiborservice/internal/service"
	"eiborservice/internal/worker"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg    *config.Config
	logger *zap.SugaredLogger

	db       *sql.DB
	rdbCache *redis.Client
	rdbAsynq *redis.Client

	publisher     events.Publisher
	ingestService *service.IngestService
	ratesService  *service.RatesService

	asynqClient    *asynq.Client
	asynqServer    *asynq.Server
	asynqMux       *asynq.ServeMux
	scheduler      *asynq.Scheduler
	enqueuer       *worker.AsynqEnqueuer
	monitor        *asynqmon.HTTPHandler
	httpServer     *http.Server
}

// NewApp initializes every dependency needed by the serve command.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initCore(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initWorker(); err != nil {
		_ = app.close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// NewIngestApp initializes only what a single ingestion cycle needs.
func NewIngestApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initCore(); err != nil {
		_ = app.close()
		return nil, err
	}
	return app, nil
}

type resource struct {
	name  string
	close func() error
}

// resources lists what close must release, producers before connections.
func (app *App) resources() []resource {
	var rs []resource
	if app.publisher != nil {
		rs = append(rs, resource{"event publisher", app.publisher.Close})
	}
	if app.asynqClient != nil {
		rs = append(rs, resource{"asynq client", app.asynqClient.Close})
	}
	if app.rdbAsynq != nil {
		rs = append(rs, resource{"redis asynq", app.rdbAsynq.Close})
	}
	if app.rdbCache != nil {
		rs = append(rs, resource{"redis cache", app.rdbCache.Close})
	}
	if app.db != nil {
		rs = append(rs, resource{"db", app.db.Close})
	}
	return rs
}

// close releases every resource and joins the failures.
func (app *App) close() error {
	var errs []error
	for _, r := range app.resources() {
		if err := r.close(); err != nil {
			errs = append(errs, fmt.Errorf("%s close: %w", r.name, err))
		}
	}
	return errors.Join(errs...)
}

func (app *App) initStorage() error {
	ctx := context.Background()

	if err := repository.RunMigrations(app.cfg.Database.DSN, app.logger); err != nil {
		return fmt.Errorf("run DB migrations: %w", err)
	}

	db, err := repository.NewPostgresDB(ctx, &app.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to Postgres: %w", err)
	}
	app.db = db

	app.rdbCache = redis.NewClient(&redis.Options{
		Addr: app.cfg.Redis.CacheAddr,
	})
	if err := app.rdbCache.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to Redis (cache, %s): %w", app.cfg.Redis.CacheAddr, err)
	}
	app.logger.Infow("Connected to Redis cache", "addr", app.cfg.Redis.CacheAddr)

	return nil
}

// initCore wires the extractor, rate store, caches, event publisher and services.
func (app *App) initCore() error {
	datePolicy, err := service.ParseDatePolicy(app.cfg.Ingest.DatePolicy)
	if err != nil {
		return err
	}

	if app.cfg.Firecrawl.APIKey == "" {
		app.logger.Warnw("Firecrawl API key is not set; ingestion cycles will fail with a configuration error",
			"env", config.EnvPrefix+"_FIRECRAWL_API_KEY")
	}

	firecrawl := extractor.NewFirecrawlExtractor(app.cfg.Firecrawl.BaseURL, app.cfg.Firecrawl.APIKey, app.cfg.Firecrawl.Timeout)
	ext := extractor.NewCachedExtractor(firecrawl, app.rdbCache, time.Duration(app.cfg.Extractor.CacheTTLSec)*time.Second)

	app.publisher = newPublisher(app.cfg.Kafka, app.logger)

	rateRepo := repository.NewPostgresRateRepository(app.db)
	ratesCache := service.NewRatesCache(app.rdbCache, time.Duration(app.cfg.Cache.LatestTTLSec)*time.Second, app.logger)

	app.ingestService = service.NewIngestService(ext, rateRepo, ratesCache, app.publisher, app.logger, service.IngestOptions{
		Request:    extractor.DefaultRequest(app.cfg.Extractor.SourceURL, time.Duration(app.cfg.Extractor.WaitForMS)*time.Millisecond),
		DatePolicy: datePolicy,
	})
	app.ratesService = service.NewRatesService(rateRepo, ratesCache, app.logger)
	return nil
}

func newPublisher(cfg config.KafkaConfig, logger *zap.SugaredLogger) events.Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Infow("Kafka brokers not configured, rate update events are disabled")
		return events.NopPublisher{}
	}
	logger.Infow("Publishing rate update events", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return events.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
}

// initWorker sets up the asynq client, worker server and daily scheduler.
func (app *App) initWorker() error {
	redisOpt := asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr}
	taskTimeout := time.Duration(app.cfg.Worker.TimeoutSec) * time.Second
	uniqueTTL := time.Duration(app.cfg.Worker.UniqueTTLSec) * time.Second

	app.rdbAsynq = redis.NewClient(&redis.Options{Addr: app.cfg.Redis.AsynqAddr})
	app.asynqClient = asynq.NewClient(redisOpt)
	app.asynqServer = asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:              app.cfg.Worker.Concurrency,
			DelayedTaskCheckInterval: time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			TaskCheckInterval:        time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				app.logger.Errorw("Task failed", "type", task.Type(), "retry", retried, "max_retry", maxRetry, "error", err)
			}),
		},
	)
	app.logger.Infow("Asynq configured", "addr", app.cfg.Redis.AsynqAddr)

	app.enqueuer = worker.NewAsynqEnqueuer(app.asynqClient, app.cfg.Worker.MaxRetry, taskTimeout, uniqueTTL)

	app.asynqMux = asynq.NewServeMux()
	app.asynqMux.HandleFunc(service.TaskTypeIngestRates, worker.NewIngestHandler(app.ingestService, app.logger))

	if !app.cfg.Scheduler.Enabled {
		app.logger.Infow("Scheduled ingestion disabled")
		return nil
	}

	loc, err := time.LoadLocation(app.cfg.Scheduler.Location)
	if err != nil {
		return fmt.Errorf("load scheduler location %q: %w", app.cfg.Scheduler.Location, err)
	}
	app.scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: loc})
	entryID, err := worker.RegisterSchedule(app.scheduler, app.cfg.Scheduler.Cron,
		app.cfg.Worker.MaxRetry, taskTimeout, uniqueTTL)
	if err != nil {
		return err
	}
	app.logger.Infow("Scheduled daily ingestion",
		"cron", app.cfg.Scheduler.Cron, "location", loc.String(), "entry_id", entryID)
	return nil
}

// Run starts the HTTP server, Asynq worker and scheduler, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("Starting Asynq worker server")
		if err := app.asynqServer.Start(app.asynqMux); err != nil {
			return fmt.Errorf("asynq worker failed to start: %w", err)
		}

		<-ctx.Done()
		return nil
	})

	if app.scheduler != nil {
		g.Go(func() error {
			app.logger.Infow("Starting ingestion scheduler")
			if err := app.scheduler.Start(); err != nil {
				return fmt.Errorf("scheduler failed to start: %w", err)
			}

			<-ctx.Done()
			return nil
		})
	}

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Triggered by signal or by the first component failure.
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown tears down in order: HTTP server, scheduler, Asynq worker, then connections.
// In-flight ingestion tasks finish before the database closes.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if app.scheduler != nil {
		app.scheduler.Shutdown()
	}

	app.asynqServer.Shutdown()

	if app.monitor != nil {
		if err := app.monitor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynqmon close: %w", err))
		}
	}

	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
