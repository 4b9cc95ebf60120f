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

	"adboard/internal/config"
	"adboard/internal/db"
	"adboard/internal/images"
	"adboard/internal/logging"
	"adboard/internal/repository"
	"adboard/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", config.Development).Fatalf("Configuration error: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.Environment())
	if cfg.Environment().IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	gdb, err := db.Open(cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.Close(gdb)
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := repository.NewCategories(gdb, logger).Ensure(ctx, cfg.DefaultCategories...); err != nil {
		logger.Fatal(err)
	}

	store, err := images.New(cfg.UploadDir, "/uploads", logger)
	if err != nil {
		logger.Fatal(err)
	}
	router, err := web.New(cfg, gdb, store, logger).Router()
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
