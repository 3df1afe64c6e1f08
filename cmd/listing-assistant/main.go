// cmd/listing-assistant/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"listing-assistant/internal/assistant"
	"listing-assistant/internal/common/camunda"
	"listing-assistant/internal/common/config"
	"listing-assistant/internal/common/database"
	"listing-assistant/internal/common/genai"
	"listing-assistant/internal/common/lexicon"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/common/observability"
)

// retryWithBackoff runs operation until it succeeds or maxRetries is spent,
// doubling the delay between attempts.
func retryWithBackoff(ctx context.Context, operation func(context.Context) error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if i == maxRetries-1 {
			break
		}
		log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
			zap.Error(err),
			zap.Int("attempt", i+1),
			zap.Int("maxRetries", maxRetries),
			zap.Duration("nextRetryIn", delay),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console", "stderr")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting listing assistant",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer func() { _ = obs.Shutdown(context.Background()) }()

	var checks []assistant.ReadinessCheck

	// --- Redis (optional) ---
	var redis *database.RedisClient
	if cfg.Database.Redis.Enabled || cfg.Lexicon.Source == config.LexiconSourceRedis {
		redis = database.NewRedis(cfg.Database.Redis)
		if err := retryWithBackoff(ctx, redis.Ping, 5, time.Second, zapLog, "Redis connection"); err != nil {
			zapLog.Fatal("redis unavailable", zap.Error(err))
		}
		defer redis.Close()
		checks = append(checks, assistant.ReadinessCheck{Name: "redis", Ping: redis.Ping})
		zapLog.Info("Redis connected", zap.String("address", cfg.Database.Redis.Address))
	}

	// --- PostgreSQL catalog (optional) ---
	var catalog assistant.Catalog
	if cfg.Database.Postgres.Enabled {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			zapLog.Fatal("postgres open failed", zap.Error(err))
		}
		if err := retryWithBackoff(ctx, pg.Ping, 10, 2*time.Second, zapLog, "PostgreSQL connection"); err != nil {
			zapLog.Fatal("postgres unavailable", zap.Error(err))
		}
		defer pg.Close()
		catalog = database.NewCatalogStore(pg.DB)
		checks = append(checks, assistant.ReadinessCheck{Name: "postgres", Ping: pg.Ping})
		zapLog.Info("PostgreSQL connected", zap.String("host", cfg.Database.Postgres.Host))
	}

	// --- Lexicon ---
	lex := lexicon.NewCache(lexiconSource(cfg.Lexicon, redis))
	if _, err := lex.Get(ctx); err != nil {
		zapLog.Fatal("lexicon load failed", zap.String("source", lex.SourceName()), zap.Error(err))
	}
	zapLog.Info("lexicon loaded", zap.String("source", lex.SourceName()))

	gen := genai.NewClient(genai.FromAppConfig(cfg.APIs.GenAI), log)
	if !gen.Enabled() {
		zapLog.Warn("no generative API key configured, serving heuristic results in demo mode")
	}

	engine, err := assistant.NewEngine(cfg, assistant.Dependencies{
		Generator:     gen,
		Lexicon:       lex,
		Catalog:       catalog,
		Observability: obs,
	}, log)
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}

	// --- Zeebe workers (optional) ---
	if cfg.Camunda.Enabled {
		zb, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.UsePlaintext,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		if err != nil {
			zapLog.Fatal("zeebe client failed", zap.Error(err))
		}
		defer zb.Close()
		checks = append(checks, assistant.ReadinessCheck{Name: "zeebe", Ping: zb.HealthCheck})

		workers := startWorkers(cfg, zb, engine.JobWorkers(), zapLog)
		defer func() {
			for _, w := range workers {
				w.Close()
			}
		}()
	}

	// --- HTTP ---
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      assistant.NewRouter(engine, cfg.Server, checks, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	serveErr := make(chan error, 1)
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		zapLog.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP shutdown failed", zap.Error(err))
	}
	zapLog.Info("listing assistant stopped")
}

func lexiconSource(cfg config.LexiconConfig, redis *database.RedisClient) lexicon.Source {
	switch cfg.Source {
	case config.LexiconSourceFile:
		return lexicon.FileSource{Path: cfg.Path}
	case config.LexiconSourceRedis:
		return lexicon.RedisSource{Store: redis, Key: cfg.RedisKey, Fallback: lexicon.Embedded()}
	default:
		return lexicon.Embedded()
	}
}

func startWorkers(cfg *config.Config, zb *camunda.Client, jobWorkers []assistant.JobWorker, log *zap.Logger) []worker.JobWorker {
	started := make([]worker.JobWorker, 0, len(jobWorkers))
	for _, jw := range jobWorkers {
		if !config.IsWorkerEnabled(cfg, jw.Name) {
			log.Info("worker disabled", zap.String("taskType", jw.TaskType))
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, jw.Name)
		started = append(started, camunda.StartWorker(zb.Zeebe(), jw.TaskType, wcfg, jw.Handler))
		log.Info("worker started",
			zap.String("taskType", jw.TaskType),
			zap.Int("maxJobsActive", wcfg.MaxJobsActive),
			zap.Int("timeout_ms", wcfg.Timeout),
		)
	}
	log.Info("job workers registered", zap.Int("count", len(started)))
	return started
}
