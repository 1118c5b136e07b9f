// Command server runs the generation API: quota-guarded SEO metadata and
// learning Q&A backed by external text providers with a cached fallback
// pipeline.
//
// @title        App Backend API
// @version      1.0
// @description  Quota-guarded generation API for SEO metadata and learning answers.
// @BasePath     /api
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
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ymy1064-stack/App-backend/internal/cache"
	"github.com/ymy1064-stack/App-backend/internal/config"
	httpapi "github.com/ymy1064-stack/App-backend/internal/http"
	"github.com/ymy1064-stack/App-backend/internal/observability"
	"github.com/ymy1064-stack/App-backend/internal/quota"
	"github.com/ymy1064-stack/App-backend/internal/repo"
	"github.com/ymy1064-stack/App-backend/internal/sysutil"
)

var version = "dev"

func main() {
	// .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	usageStore, cacheStore := buildStores(cfg)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	svc := httpapi.BuildServices(cfg, usageStore, cacheStore)
	httpapi.RegisterRoutes(engine, cfg, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Bool("persistent", cfg.DBPath != "").
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// buildStores selects persistence. With DB_PATH set, counters and cached
// responses live in SQLite and survive restarts; otherwise both stay in
// process memory.
func buildStores(cfg config.Config) (quota.Store, cache.Store) {
	if cfg.DBPath == "" {
		return quota.NewMemStore(), cache.NewMemStore()
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	return repo.NewUsageStore(db), repo.NewCacheStore(db)
}
