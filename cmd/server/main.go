// @title tscat API
// @version 1.0
// @description Qt Linguist TS catalog service: import, validate, report and translate.
// @BasePath /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tscat/internal/config"
	"tscat/internal/db"
	"tscat/internal/handler"
	transport "tscat/internal/http"
	"tscat/internal/logger"
	"tscat/internal/repository"
	"tscat/internal/scheduler"
	"tscat/internal/service"
	"tscat/internal/service/ai"
	"tscat/internal/snowflake"
)

func main() {
	if err := run(); err != nil {
		logger.Error("server exited", "module", "server", "action", "start", "resource", "http", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	if err := snowflake.Init(cfg.NodeID); err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	catalogRepo := repository.NewCatalogRepository(dbConn)
	messageRepo := repository.NewMessageRepository(dbConn)
	suggestionRepo := repository.NewSuggestionRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)
	txRunner := repository.NewTxRunner(dbConn)

	rateLimiter := ai.NewRateLimiter(ai.DefaultRateLimit)
	settingsService := service.NewSettingsService(settingsRepo, rateLimiter)
	if current, err := settingsService.GetAISettings(context.Background()); err == nil {
		rateLimiter.SetLimit(current.RateLimit)
	}

	translateService := service.NewTranslateService(catalogRepo, messageRepo, cfg.CacheSize, cfg.CacheTTL)
	catalogService := service.NewCatalogService(catalogRepo, messageRepo, txRunner, translateService)
	messageService := service.NewMessageService(catalogRepo, messageRepo, txRunner, translateService)
	suggestService := service.NewSuggestService(catalogRepo, messageRepo, suggestionRepo, settingsService, rateLimiter, nil)
	syncService := service.NewSyncService(catalogService, service.NewImportTaskService(), cfg.SyncWorkers)

	router := transport.NewRouter(transport.Handlers{
		Catalogs:  handler.NewCatalogHandler(catalogService, suggestService),
		Messages:  handler.NewMessageHandler(messageService, suggestService),
		Translate: handler.NewTranslateHandler(translateService),
		Sync:      handler.NewSyncHandler(syncService, cfg.CatalogDir),
		Settings:  handler.NewSettingsHandler(settingsService),
	}, cfg.TranslateQPS)

	var sched *scheduler.Scheduler
	if cfg.CatalogDir != "" && cfg.SyncInterval > 0 {
		sched = scheduler.New(syncService, cfg.CatalogDir, cfg.SyncInterval)
		sched.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "module", "server", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "version", config.AppVersion)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "module", "server", "action", "stop", "resource", "http", "result", "ok", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	if sched != nil {
		sched.Stop()
	}
	syncService.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return router.Shutdown(ctx)
}
