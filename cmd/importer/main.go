package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cocktailhaven/internal/config"
	"cocktailhaven/internal/importer"
	"cocktailhaven/internal/pricing"
	"cocktailhaven/internal/store"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to price-list CSV (idDrink,price)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	provider, cleanup, err := openProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer cleanup()

	shared := provider.Namespace(store.SharedNamespace)
	prices, err := pricing.Load(ctx, shared)
	if err != nil {
		log.Fatalf("load price table: %v", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, prices).Run()
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	raw, err := json.Marshal(prices.Snapshot())
	if err != nil {
		log.Fatalf("encode price table: %v", err)
	}
	if err := shared.Set(ctx, pricing.StoreKey, raw); err != nil {
		log.Fatalf("persist price table: %v", err)
	}

	fmt.Printf("Imported %d prices in %s\n", count, time.Since(start).Truncate(time.Millisecond))
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
