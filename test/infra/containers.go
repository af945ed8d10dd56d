// Package infra provides the disposable Postgres used by store integration
// tests.
package infra

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/store"
)

type PGContainer struct {
	C *postgres.PostgresContainer
}

// StartPostgres16 starts a Postgres 16 container and returns a DSN. If
// INTEGRATION_PG_DSN is set, that database is reused instead of starting
// Docker.
func StartPostgres16(ctx context.Context) (*PGContainer, string, error) {
	if dsn := os.Getenv("INTEGRATION_PG_DSN"); dsn != "" {
		return &PGContainer{}, dsn, nil
	}

	pgC, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
	)
	if err != nil {
		return nil, "", err
	}

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgC.Terminate(ctx)
		return nil, "", err
	}
	return &PGContainer{C: pgC}, dsn, nil
}

func (p *PGContainer) Terminate(ctx context.Context) error {
	if p == nil || p.C == nil {
		return nil
	}
	return p.C.Terminate(ctx)
}

// ApplySchema connects a pool to the DSN and creates the store tables.
func ApplySchema(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, store.Schema); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
