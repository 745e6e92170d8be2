package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"cocktailhaven/internal/config"
	"cocktailhaven/internal/seed"
	"cocktailhaven/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	provider, cleanup, err := openProvider(ctx, cfg)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer cleanup()

	if err := seed.Apply(ctx, provider, logger); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
	logger.Info("seed applied")
}

func openProvider(ctx context.Context, cfg *config.Config) (store.Provider, func(), error) {
	if cfg.StoreBackend == config.BackendPostgres {
		pg, err := store.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	fp, err := store.NewFileProvider(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return fp, func() {}, nil
}
