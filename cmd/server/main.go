package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/plant-catalog/internal/config"
	"github.com/iliyamo/plant-catalog/internal/database"
	"github.com/iliyamo/plant-catalog/internal/handler"
	"github.com/iliyamo/plant-catalog/internal/middleware"
	"github.com/iliyamo/plant-catalog/internal/queue"
	"github.com/iliyamo/plant-catalog/internal/repository"
	"github.com/iliyamo/plant-catalog/internal/router"
	"github.com/iliyamo/plant-catalog/internal/service"
	"github.com/iliyamo/plant-catalog/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	zap.ReplaceGlobals(baseLogger)

	err = run(cfg, baseLogger)
	if err != nil {
		baseLogger.Error("server stopped with error", zap.Error(err))
	}
	_ = baseLogger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource of the process; all exits, including failures,
// go through its deferred cleanup so the database is always closed.
func run(cfg *config.Config, baseLogger *zap.Logger) error {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			baseLogger.Error("failed to close database", zap.Error(err))
		}
	}()
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A nil interface value keeps event publication off.
	var events handler.EventPublisher
	if cfg.Events.Enabled {
		events = service.NewEventPublisher(cfg.Events.URL, cfg.Events.Queue, logger.Named(baseLogger, "events"))
		baseLogger.Info("plant events enabled", zap.String("queue", cfg.Events.Queue))
	}
	var workers sync.WaitGroup
	if cfg.Events.ConsumerEnabled {
		consumer := &queue.Consumer{
			URL:    cfg.Events.URL,
			Queue:  cfg.Events.Queue,
			LogDir: cfg.Events.LogDir,
			Logger: logger.Named(baseLogger, "consumer"),
		}
		workers.Add(1)
		go func() {
			defer workers.Done()
			_ = consumer.Run(ctx)
		}()
	}

	plants := handler.NewPlantHandler(repository.NewPlantRepo(db), events, logger.Named(baseLogger, "handler.plants"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger.Named(baseLogger, "http")))
	router.RegisterRoutes(e)
	router.RegisterPlants(e, plants)

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		baseLogger.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var crash error
	select {
	case <-ctx.Done():
		baseLogger.Info("shutdown signal received")
	case crash = <-serveErr:
		baseLogger.Error("http server crashed", zap.Error(crash))
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	plants.Wait()
	workers.Wait()
	return crash
}
