package main

import (
	"context"
	"log"

	"cocktailhaven/internal/config"
	"cocktailhaven/internal/migrate"
	"cocktailhaven/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != config.BackendPostgres {
		log.Fatalf("migrations require STORE_BACKEND=postgres, got %q", cfg.StoreBackend)
	}

	ctx := context.Background()
	pg, err := store.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pg.Close()

	if err := migrate.Apply(ctx, pg.Pool()); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	log.Println("migrations applied")
}
