//go:build integration

// Package dbtest starts a throwaway PostgreSQL container with the
// application schema applied, for the stores' integration tests.
package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/user/minilinkedin-go/db"
)

// Database is a migrated container and a pool connected to it.
type Database struct {
	Pool      *pgxpool.Pool
	DSN       string
	container *postgres.PostgresContainer
}

// Start runs postgres, applies the migrations and opens a pool.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testusername"),
		postgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("container connection string: %w", err)
	}

	if err := db.RunMigrations(dsn, db.Up, zerolog.Nop()); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("open pool: %w", err)
	}

	return &Database{Pool: pool, DSN: dsn, container: container}, nil
}

// Truncate empties every application table.
func (d *Database) Truncate(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, `TRUNCATE posts, users CASCADE`)
	return err
}

// Close releases the pool and removes the container.
func (d *Database) Close(ctx context.Context) {
	d.Pool.Close()
	_ = d.container.Terminate(ctx)
}
