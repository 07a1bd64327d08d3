package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-catalog/internal/adapters/storage"
	"pet-catalog/internal/domain/catalog"
	"pet-catalog/internal/domain/pets"
	"pet-catalog/internal/platform/config"
	"pet-catalog/internal/platform/logger"
	"pet-catalog/internal/router"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("invalid configuration", map[string]any{"error": err.Error()})
		return err
	}

	log := logger.NewFromConfig(cfg, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("open store", map[string]any{"error": err.Error()})
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("close store", map[string]any{"error": err.Error()})
		}
	}()

	petsSvc := pets.NewService(store, log)
	r := router.NewRouter(router.Options{
		Pets:    petsSvc,
		Catalog: catalog.NewService(petsSvc, log),
		Logger:  log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err.Error()})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", map[string]any{"error": err.Error()})
		return err
	}
	log.Info("server stopped", nil)
	return nil
}
