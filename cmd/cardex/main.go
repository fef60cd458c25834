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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/config"
	dbRedis "github.com/kailas-cloud/cardex/internal/db/redis"
	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/scoring"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
	logpkg "github.com/kailas-cloud/cardex/internal/logger"
	"github.com/kailas-cloud/cardex/internal/metrics"
	cardrepo "github.com/kailas-cloud/cardex/internal/repository/card"
	"github.com/kailas-cloud/cardex/internal/repository/querycache"
	chiTransport "github.com/kailas-cloud/cardex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cardex/internal/usecase/search"
	"github.com/kailas-cloud/cardex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cardex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("cache", cfg.Cache.Driver),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.Register()

	weights := card.DefaultWeights()
	cards := cardrepo.New(store, cardrepo.Config{
		IndexName:     cfg.Search.Index,
		KeyPrefix:     cfg.Search.KeyPrefix,
		Weights:       weights,
		MaxCandidates: cfg.Search.MaxCandidates,
		ScanBatch:     cfg.Search.ScanBatch,
		MaxScan:       cfg.Search.MaxScan,
	})
	if err := cards.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure card index", zap.String("index", cfg.Search.Index), zap.Error(err))
	}

	var cache searchuc.Cache
	switch cfg.Cache.Driver {
	case "memory":
		cache = querycache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL(), metrics.QueryCacheTotal)
	case "store":
		cache = querycache.NewStore(store, metrics.QueryCacheTotal, logger)
	}

	searchSvc, err := searchuc.New(cards, cache, searchConfig(cfg, weights), logger)
	if err != nil {
		logger.Fatal("Invalid search configuration", zap.Error(err))
	}
	healthSvc := healthuc.New(store, store, cfg.Search.Index)

	server := chiTransport.NewServer(searchSvc, healthSvc, cfg.Search.SuggestionLimit, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(chiTransport.BearerAuth(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// searchConfig maps the search and cache sections onto the engine configuration.
func searchConfig(cfg config.Config, weights card.Weights) searchuc.Config {
	shares := make([]searchuc.Share, len(cfg.Search.Strategies))
	for i, s := range cfg.Search.Strategies {
		shares[i] = searchuc.Share{Strategy: strategy.Name(s.Name), Share: s.Share}
	}

	var ttl time.Duration
	if cfg.Cache.Driver != "none" {
		ttl = cfg.Cache.TTL()
	}

	return searchuc.Config{
		Weights:       weights,
		Params:        scoring.Params{K1: cfg.Search.K1, AvgFieldLen: cfg.Search.AvgFieldLen},
		Hybrid:        shares,
		HybridDepth:   cfg.Search.HybridDepth,
		MaxCandidates: cfg.Search.MaxCandidates,
		MaxBrowse:     cfg.Search.MaxScan,
		Timeout:       cfg.Search.SearchTimeout(),
		BasicTimeout:  cfg.Search.BasicTimeout(),
		CacheTTL:      ttl,
	}
}
