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

	"nft_aggregator/internal/app/port"
	"nft_aggregator/internal/app/service"
	"nft_aggregator/internal/client"
	"nft_aggregator/internal/infrastructure/configloader"
	"nft_aggregator/internal/infrastructure/memorycache"
	"nft_aggregator/internal/infrastructure/rediscache"
	"nft_aggregator/internal/infrastructure/restapi"
	"nft_aggregator/internal/pkg/logger"
	"nft_aggregator/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const (
	defaultConfigPath = "config/config.yml"
	shutdownTimeout   = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env не обязателен, ключи API могут прийти из окружения
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load config %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger.InitSlog(zapLogger)

	logger.Info("NFT aggregator is starting", "config", configPath, "log_level", cfg.Logging.Level)

	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter()

	primary := client.NewTonAPIClient(upstreamOptions(cfg.TonAPI), zapLogger)
	var secondary port.UpstreamClient
	if cfg.IsSecondaryEnabled() {
		secondary = client.NewNFTScanClient(upstreamOptions(cfg.NFTScan), zapLogger)
	} else {
		logger.Warn("Secondary upstream disabled, responses will not fall back")
	}

	var nftService port.NFTDataService = service.NewAggregatorService(
		primary,
		secondary,
		zapLogger,
		cfg.Aggregator.OverviewConcurrency,
	)

	if cfg.Cache.Enabled {
		cache, closeCache, err := newResponseCache(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to initialize response cache", "error", err)
		}
		defer closeCache()
		nftService = service.NewCachingService(
			nftService,
			cache,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			zapLogger,
		)
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := restapi.NewNFTHandler(nftService, appLogger.With("component", "restapi"))
	router := restapi.SetupRouter(handler, appLogger.With("component", "http"), cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, stopping HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}

	cancel()
	logger.Info("NFT aggregator stopped")
}

func upstreamOptions(cfg configloader.UpstreamConfig) client.Options {
	opts := client.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.BurstLimit
		if burst <= 0 {
			burst = 1
		}
		opts.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return opts
}

// newResponseCache picks Redis when configured, the in-process cache otherwise.
func newResponseCache(ctx context.Context, cfg *configloader.Config) (port.ResponseCache, func(), error) {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	if !cfg.Cache.Redis.Enabled {
		logger.Info("Using in-memory response cache", "ttl", ttl)
		return memorycache.New(ttl, time.Duration(cfg.Cache.CleanupIntervalSeconds)*time.Second), func() {}, nil
	}

	rdb, err := rediscache.NewClient(ctx, rediscache.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using Redis response cache", "addr", cfg.Cache.Redis.Addr, "ttl", ttl)
	return rediscache.New(rdb, cfg.Cache.Redis.KeyPrefix), func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("Failed to close Redis client", "error", err)
		}
	}, nil
}
