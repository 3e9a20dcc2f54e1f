package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/llm-service/analyzer"
	"github.com/seo-optimizer/llm-service/api"
	"github.com/seo-optimizer/llm-service/config"
	"github.com/seo-optimizer/llm-service/generator"
	"github.com/seo-optimizer/llm-service/logging"
	"github.com/seo-optimizer/llm-service/middleware"
	"github.com/seo-optimizer/llm-service/stats"
)

// Months of usage counters kept on disk
const retainMonths = 12

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(os.Stderr, "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	seoAnalyzer := analyzer.New()
	if cfg.ScoringPolicyPath != "" {
		policy, err := analyzer.LoadPolicy(cfg.ScoringPolicyPath)
		if err != nil {
			logger.Error("failed to load scoring policy", "path", cfg.ScoringPolicyPath, "error", err)
			os.Exit(1)
		}
		if seoAnalyzer, err = analyzer.NewWithPolicy(policy); err != nil {
			logger.Error("invalid scoring policy", "path", cfg.ScoringPolicyPath, "error", err)
			os.Exit(1)
		}
	}

	// A nil interface, not a typed nil, keeps the generator on templates
	var provider generator.Provider
	if cfg.ProviderEnabled() {
		provider = generator.NewOpenAIProvider(generator.ProviderConfig{
			Endpoint: cfg.LLMEndpoint,
			APIKey:   cfg.OpenAIAPIKey,
			Model:    cfg.LLMModel,
			Timeout:  cfg.LLMTimeout,
		})
	} else {
		logger.Warn("OPENAI_API_KEY not set, generation will use fallback templates")
	}
	seoGenerator := generator.New(provider, generator.WithLogger(logger))

	storage, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open usage statistics", "data_dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	storage.Cleanup(retainMonths)

	server := api.NewServer(api.Config{
		Analyzer:        seoAnalyzer,
		Generator:       seoGenerator,
		Usage:           storage,
		Statistics:      logging.NewStatistics(cfg.DevMode),
		Metrics:         middleware.NewMetrics(),
		GenerationRate:  cfg.GenerationRate,
		GenerationBurst: cfg.GenerationBurst,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Drop old months once a day
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				storage.Cleanup(retainMonths)
			case <-stopCleanup:
				return
			}
		}
	}()

	go func() {
		logger.Info("LLM service starting",
			"port", cfg.Port,
			"gin_mode", cfg.GinMode,
			"provider_enabled", cfg.ProviderEnabled(),
			"model", cfg.LLMModel,
			"scoring_policy", seoAnalyzer.Policy().Version,
			"data_dir", cfg.DataDir,
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := storage.Shutdown(); err != nil {
		logger.Error("failed to flush usage statistics", "error", err)
	}

	logger.Info("server stopped")
}
