// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the librarium catalog pages.
//
// # Startup Sequence
//
//  1. Load a local .env file, if any.
//  2. Initialize structured logger.
//  3. Load configuration from environment variables.
//  4. Load the message catalogs.
//  5. Connect to Redis for flash alerts, or fall back to process memory.
//  6. Wire page handlers against the catalog API.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taibuivan/librarium/internal/api"
	"github.com/taibuivan/librarium/internal/catalog/author"
	"github.com/taibuivan/librarium/internal/catalog/book"
	"github.com/taibuivan/librarium/internal/catalog/comment"
	"github.com/taibuivan/librarium/internal/catalog/genre"
	"github.com/taibuivan/librarium/internal/platform/apiclient"
	"github.com/taibuivan/librarium/internal/platform/config"
	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/internal/platform/flash"
	"github.com/taibuivan/librarium/internal/platform/i18n"
	"github.com/taibuivan/librarium/internal/platform/page"
	redisstore "github.com/taibuivan/librarium/internal/platform/redis"
)

func main() {
	// ── 1. Local environment ──────────────────────────────────────────────
	envErr := godotenv.Load()

	// ── 2. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Librarium] service_initializing", slog.String("version", constants.AppVersion))
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("dotenv_load_failed", slog.Any("error", envErr))
	}

	// ── 3. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("catalog_api", cfg.CatalogAPIURL),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 4. Message catalogs ───────────────────────────────────────────────
	locales, err := i18n.Default(cfg.DefaultLocale)
	must(log, err, "load message catalogs")

	// ── 5. Flash store ────────────────────────────────────────────────────
	var store flash.Store
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		store = flash.NewRedisStore(rdb, cfg.FlashTTL)
	} else {
		log.Warn("flash_store_in_memory", slog.String("reason", "REDIS_URL is not set"))
		store = flash.NewMemoryStore(cfg.FlashTTL)
	}
	messenger := flash.NewMessenger(store, cfg.FlashTTL, cfg.IsProduction())

	renderer, err := page.NewRenderer(messenger)
	must(log, err, "parse page templates")

	// ── 6. Catalog wiring ─────────────────────────────────────────────────
	client := apiclient.New(cfg.CatalogAPIURL, nil)

	authorService := author.NewService(author.NewAPIRepository(client), log)
	genreService := genre.NewService(genre.NewAPIRepository(client), log)
	commentService := comment.NewService(comment.NewAPIRepository(client), log)
	bookService := book.NewService(book.NewAPIRepository(client), commentService, genreService, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCatalog: client.Ping,
		CheckFlash:   messenger.Ping,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Authors:   author.NewHandler(authorService, renderer),
		Books:     book.NewHandler(bookService, renderer),
		Genres:    genre.NewHandler(genreService, renderer),
		Comments:  comment.NewHandler(commentService, renderer),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, locales, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
