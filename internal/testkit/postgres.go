package testkit

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver registration
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"eiborservice/internal/repository"
)

// PostgresModule is a running Postgres instance, containerized or external.
type PostgresModule struct {
	container testcontainers.Container
	dsn       string
}

// DSN returns the connection string.
func (p *PostgresModule) DSN() string { return p.dsn }

// Terminate stops the container, if one was started.
func (p *PostgresModule) Terminate(ctx context.Context) error {
	if p.container == nil {
		return nil
	}
	return p.container.Terminate(ctx)
}

// StartPostgres starts a Postgres container unless cfg.PGDSN points at an external one.
func StartPostgres(ctx context.Context, cfg *Config) (*PostgresModule, error) {
	if cfg.PGDSN != "" {
		return &PostgresModule{dsn: cfg.PGDSN}, nil
	}

	ctr, err := postgres.Run(ctx,
		cfg.PGImage,
		postgres.WithDatabase(databaseName()),
		postgres.WithUsername("eibor"),
		postgres.WithPassword("eibor"),
		testcontainers.WithWaitStrategyAndDeadline(cfg.StartupTimeout,
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}
	return &PostgresModule{container: ctr, dsn: dsn}, nil
}

// OpenMigrated applies the embedded schema to dsn and returns a pool connected to it.
func OpenMigrated(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := repository.RunMigrations(dsn, zap.NewNop().Sugar()); err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// databaseName returns a unique name such as "eibor_test_1a2b3c4d".
func databaseName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "eibor_test"
	}
	return "eibor_test_" + hex.EncodeToString(b)
}
