package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gameapi/internal/catalog"
	"gameapi/internal/config"
	"gameapi/internal/game"
	"gameapi/internal/httpx"
	"gameapi/internal/platform/crypto"
	"gameapi/internal/platform/firstapi"
	"gameapi/internal/platform/logger"
	"gameapi/internal/platform/metrics"
	"gameapi/internal/platform/secondapi"
	"gameapi/internal/platform/upstream"
	"gameapi/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "error"}).Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	dbPool := mustOpenDB(log, cfg.DBDSN)
	defer dbPool.Close()

	registry := metrics.NewRegistry()
	aggregator := newCatalog(cfg, log, registry)

	userService := user.NewService(user.NewPostgresRepo(dbPool, cfg.DBQueryTimeout), crypto.NewPasswordHasher(), log.Named("user"))
	gameService := game.NewService(game.NewPostgresRepo(dbPool, cfg.DBQueryTimeout), log.Named("game"))

	rateLimiter := httpx.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst,
		httpx.WithTrustedProxies(cfg.TrustedProxies),
	)
	defer rateLimiter.Close()

	handler := newRouter(routerDeps{
		log:            log.Named("http"),
		db:             dbPool,
		metrics:        registry.Handler(),
		catalogHandler: catalog.NewHTTPHandler(catalog.NewService(aggregator), log.Named("catalog")),
		gameHandler:    game.NewHTTPHandler(gameService, log.Named("game")),
		userHandler:    user.NewHTTPHandler(userService, log.Named("user")),
		rateLimiter:    rateLimiter,
		allowedOrigins: cfg.CORSAllowedOrigins,
		enableHSTS:     cfg.EnableHSTS,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.Addr),
			zap.String("env", cfg.Env),
			zap.String("catalog_policy", string(aggregator.Policy())),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newCatalog builds both upstream clients and the federating aggregator.
// The clients share one ID generator.
func newCatalog(cfg config.Config, log *zap.Logger, observer catalog.FetchObserver) *catalog.Aggregator {
	ids := catalog.UUIDGenerator{}
	upstreamCfg := func(baseURL string) upstream.Config {
		return upstream.Config{
			BaseURL:   baseURL,
			UserAgent: cfg.ProviderUserAgent,
			Timeout:   cfg.ProviderTimeout,
			RPS:       cfg.ProviderRPS,
		}
	}

	first := firstapi.NewClient(upstreamCfg(cfg.FirstAPIURL),
		firstapi.WithIDGenerator(ids),
		firstapi.WithLogger(log.Named(firstapi.Name)),
	)
	second := secondapi.NewClient(upstreamCfg(cfg.SecondAPIURL),
		secondapi.WithIDGenerator(ids),
		secondapi.WithLogger(log.Named(secondapi.Name)),
	)

	return catalog.NewAggregator([]catalog.Provider{first, second},
		catalog.WithFailurePolicy(cfg.FailurePolicy),
		catalog.WithProviderTimeout(cfg.ProviderTimeout),
		catalog.WithAggregatorLogger(log.Named("catalog")),
		catalog.WithFetchObserver(observer),
	)
}

func mustOpenDB(log *zap.Logger, dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("cannot create db pool", zap.Error(err))
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal("cannot ping database", zap.String("dsn", redactDSN(dsn)), zap.Error(err))
	}
	log.Info("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
