package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cocktailhaven/internal/domain"
)

// PostgresProvider keeps blobs in a single kv_entries table keyed by
// (namespace, key).
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx pool, verifies connectivity, and returns a provider
// over it.
func Connect(ctx context.Context, dsn string) (*PostgresProvider, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresProvider{pool: pool}, nil
}

// NewPostgresProvider wraps an existing pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// Pool exposes the underlying pool for migrations and readiness probes.
func (p *PostgresProvider) Pool() *pgxpool.Pool {
	return p.pool
}

// Close releases the pool.
func (p *PostgresProvider) Close() {
	p.pool.Close()
}

// Ping checks database reachability.
func (p *PostgresProvider) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Namespace returns a Store scoped to ns.
func (p *PostgresProvider) Namespace(ns string) Store {
	return &postgresStore{pool: p.pool, ns: ns}
}

type postgresStore struct {
	pool *pgxpool.Pool
	ns   string
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT value
FROM kv_entries
WHERE namespace = $1 AND key = $2
`
	var value []byte
	if err := s.pool.QueryRow(ctx, q, s.ns, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`
	_, err := s.pool.Exec(ctx, q, s.ns, key, value)
	return err
}

func (s *postgresStore) Remove(ctx context.Context, key string) error {
	const q = `
DELETE FROM kv_entries
WHERE namespace = $1 AND key = $2
`
	_, err := s.pool.Exec(ctx, q, s.ns, key)
	return err
}
