package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/wayfarer-ai/agent-core/internal/classify"
	"github.com/wayfarer-ai/agent-core/internal/config"
	"github.com/wayfarer-ai/agent-core/internal/ctxbuild"
	"github.com/wayfarer-ai/agent-core/internal/httpapi"
	"github.com/wayfarer-ai/agent-core/internal/llm"
	"github.com/wayfarer-ai/agent-core/internal/memory"
	"github.com/wayfarer-ai/agent-core/internal/metrics"
	"github.com/wayfarer-ai/agent-core/internal/orchestrator"
	"github.com/wayfarer-ai/agent-core/internal/persist/postgres"
	"github.com/wayfarer-ai/agent-core/internal/persist/rediscache"
	"github.com/wayfarer-ai/agent-core/internal/places"
	"github.com/wayfarer-ai/agent-core/internal/reasonact"
	"github.com/wayfarer-ai/agent-core/internal/router"
	"github.com/wayfarer-ai/agent-core/internal/tools"
	"github.com/wayfarer-ai/agent-core/internal/validate"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("no .env file found, reading configuration from process environment")
	}

	var cfg config.AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(fmt.Errorf("failed to process environment config: %w", err))
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Env()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	store, err := postgres.Open(ctx, postgres.Config{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to durable store")
	}
	defer store.Close()

	cache := rediscache.New(rdb)
	conversations := postgres.NewConversationRepo(store)
	preferences := postgres.NewPreferencesRepo(store)
	metricsStore := postgres.NewMetricsRepo(store)

	modelFactory, err := llm.NewFactory(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to create model factory")
	}

	placesClient := places.NewCachingClient(places.New(cfg.Places), cache, cfg.Memory.CacheTTLPlacesSec)
	registry, err := tools.NewRegistry(
		tools.NewSearchPlacesTool(placesClient),
		tools.NewCreateItineraryTool(placesClient),
	)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build tool registry")
	}

	validator := validate.New(cfg.Languages, preferences)
	memoryBuffer := memory.New(conversations, cache, cfg.Memory)
	extractor := ctxbuild.NewPlanContextExtractor(cfg.Languages.Cities)
	builder := ctxbuild.New(extractor, cfg.Memory.MaxTokens)
	classifier := classify.New(modelFactory, cache, cfg.Router.ClassifierModel, cfg.Router.DefaultMaxTokens, cfg.Memory.CacheTTLIntentSec)
	modelRouter := router.New(cfg.Router)

	semaphores := reasonact.Semaphores{
		Model: make(chan struct{}, cfg.Limits.MaxConcurrentModels),
		Tool:  make(chan struct{}, cfg.Limits.MaxConcurrentTools),
	}
	executor := reasonact.New(reasonact.Config{
		MaxIterations:    cfg.ReasonAct.MaxIterations,
		ModelCallTimeout: time.Duration(cfg.ReasonAct.ModelCallTimeoutMs) * time.Millisecond,
		ToolCallTimeout:  time.Duration(cfg.ReasonAct.ToolCallTimeoutMs) * time.Millisecond,
	}, semaphores)

	promMetrics := metrics.NewMetrics(cfg.MetricsNamespace)
	recorder := metrics.NewRecorder(promMetrics, metricsStore)

	pipeline, err := orchestrator.New(ctx, orchestrator.Deps{
		Config:        cfg,
		Validator:     validator,
		Memory:        memoryBuffer,
		Builder:       builder,
		Classifier:    classifier,
		Router:        modelRouter,
		Models:        modelFactory,
		Registry:      registry,
		Executor:      executor,
		Conversations: conversations,
		Recorder:      recorder,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build pipeline")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.New(pipeline, promMetrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logx.Info().Str("addr", cfg.HTTPAddr).Msg("agent core listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}
