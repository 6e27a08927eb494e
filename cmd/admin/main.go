package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/pzf-studio/MAshop-sub000/internal/application/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/config"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/logger"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/persistence"
	sigbus "github.com/pzf-studio/MAshop-sub000/internal/infrastructure/signal"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/store"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/handler"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting admin console",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store_dir", cfg.Store.Dir),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Shared state store
	fileStore, err := store.NewFileStore(cfg.Store.Dir, cfg.Store.QuotaBytes, log)
	if err != nil {
		log.Fatal("Failed to open state store", zap.Error(err))
	}

	// Signal bus and cross-process replication bridge
	bus := sigbus.NewBus(log)

	watcher, err := store.NewWatcher(cfg.Store.Dir, fileStore, log)
	if err != nil {
		log.Fatal("Failed to create store watcher", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		log.Fatal("Failed to start store watcher", zap.Error(err))
	}
	defer watcher.Stop()

	bridge := sigbus.NewBridge(watcher, bus, sigbus.KeyRoutes(), log)
	go bridge.Run(ctx)

	// Repositories and services
	catalogRepo := persistence.NewCatalogRepository(fileStore, bus, log)
	itemService := catalogapp.NewItemService(catalogRepo, log)
	sectionService := catalogapp.NewSectionService(catalogRepo, log)

	// HTTP surface
	engine := router.NewEngine(log, cfg.HTTP.CORSAllowOrigins)
	router.SetupAdmin(engine, router.AdminHandlers{
		System:   handler.NewSystemHandler(cfg.App.Name),
		Items:    handler.NewItemHandler(itemService),
		Sections: handler.NewSectionHandler(sectionService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
