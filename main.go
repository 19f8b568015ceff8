package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rental-analyzer/config"
	httpLayer "rental-analyzer/http"
	"rental-analyzer/logger"
	"rental-analyzer/repository"
	"rental-analyzer/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	cache, closeCache := newCache(cfg.Redis, log)
	defer closeCache()

	generator := newGenerator(cfg.Advisor, log)

	analysisService := service.NewAnalysisService(log)
	narrativeService := service.NewNarrativeService(
		generator,
		cache,
		time.Duration(cfg.Redis.TTL)*time.Second,
		log,
	)
	financingService := service.NewFinancingService(log)

	propertyHandler := httpLayer.NewPropertyHandler(analysisService, narrativeService, financingService, log)

	analysisLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.AnalysisPerMinute, time.Minute)
	defer analysisLimiter.Stop()
	narrativeLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.NarrativePerMinute, time.Minute)
	defer narrativeLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/property/defaults",
		http.HandlerFunc(propertyHandler.Defaults),
	)

	mux.Handle(
		"/property/analyze",
		httpLayer.RateLimitMiddleware(
			analysisLimiter,
			"analyze",
			http.HandlerFunc(propertyHandler.Analyze),
		),
	)

	mux.Handle(
		"/property/narrative",
		httpLayer.RateLimitMiddleware(
			narrativeLimiter,
			"narrative",
			http.HandlerFunc(propertyHandler.Narrative),
		),
	)

	mux.Handle(
		"/property/financing-scenarios",
		httpLayer.RateLimitMiddleware(
			analysisLimiter,
			"financing-scenarios",
			http.HandlerFunc(propertyHandler.FinancingScenarios),
		),
	)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", httpLayer.Health)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      httpLayer.RequestIDMiddleware(httpLayer.AccessLogMiddleware(log, mux)),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("server", cfg.Server.String()),
			zap.Bool("advisor_enabled", cfg.Advisor.Enabled()),
			zap.String("model", generator.Model()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("error starting server", zap.Error(err))
		return
	case <-quit:
		log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("error during server shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// newCache prefers Redis and falls back to the in-process cache when Redis
// is disabled or unreachable at startup.
func newCache(cfg config.RedisConfig, log *zap.Logger) (repository.CacheRepository, func()) {
	if !cfg.Enabled {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(repository.RedisOptions{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unreachable, using in-memory narrative cache",
			zap.String("address", cfg.Address),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	log.Info("narrative cache backed by redis", zap.String("address", cfg.Address))
	return redisCache, func() { _ = redisCache.Close() }
}

func newGenerator(cfg config.AdvisorConfig, log *zap.Logger) service.NarrativeGenerator {
	if !cfg.Enabled() {
		log.Warn("no advisor API key configured, narrative endpoint disabled",
			zap.String("provider", cfg.Provider),
		)
		return service.NewDisabledGenerator(cfg.Model)
	}

	var (
		generator service.NarrativeGenerator
		err       error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		generator, err = service.NewOpenAIProvider(service.OpenAIOptions{
			APIKey:      cfg.OpenAIAPIKey,
			URL:         cfg.OpenAIURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     config.GetDuration(cfg.Timeout),
		})
	default:
		generator, err = service.NewGeminiProvider(context.Background(), service.GeminiOptions{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     config.GetDuration(cfg.Timeout),
		})
	}
	if err != nil {
		log.Error("failed to initialize advisor, narrative endpoint disabled", zap.Error(err))
		return service.NewDisabledGenerator(cfg.Model)
	}
	return generator
}
