package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cocktailhaven/internal/catalog"
	"cocktailhaven/internal/config"
	"cocktailhaven/internal/httpserver"
	"cocktailhaven/internal/invoice"
	"cocktailhaven/internal/migrate"
	"cocktailhaven/internal/pricing"
	"cocktailhaven/internal/service/checkout"
	"cocktailhaven/internal/service/session"
	"cocktailhaven/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var provider store.Provider
	var ready httpserver.Pinger
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := store.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer pg.Close()
		if err := migrate.Apply(ctx, pg.Pool()); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		provider = pg
		ready = pg
	case config.BackendFile:
		fp, err := store.NewFileProvider(cfg.DataDir)
		if err != nil {
			logger.Fatal("init file store", zap.Error(err))
		}
		provider = fp
	}

	shared := provider.Namespace(store.SharedNamespace)
	prices, err := pricing.Load(ctx, shared)
	if err != nil {
		logger.Fatal("load price table", zap.Error(err))
	}

	sessions := session.New(shared, logger.Named("session"))
	cat := catalog.New(cfg.CatalogBaseURL, cfg.CatalogLocale, logger.Named("catalog"))

	renderer, err := invoice.New(cfg.InvoiceDir, logger.Named("invoice"))
	if err != nil {
		logger.Fatal("init invoice renderer", zap.Error(err))
	}

	engines := checkout.NewRegistry(func(email string) *checkout.Engine {
		return checkout.New(provider.Namespace(email), prices, renderer, sessions, logger.Named("checkout"))
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger.Named("http"), httpserver.Deps{
		Sessions: sessions,
		Catalog:  cat,
		Engines:  engines,
		Ready:    ready,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

func buildLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
