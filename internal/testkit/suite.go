package testkit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Suite owns the Postgres and Redis instances shared by one test binary,
// plus a migrated *sql.DB and a Redis client connected to them.
type Suite struct {
	mu    sync.Mutex
	cfg   Config
	pg    *PostgresModule
	redis *RedisModule
	db    *sql.DB
	rdb   *redis.Client
}

var (
	globalSuite *Suite
	globalOnce  sync.Once
)

// Global returns the process-wide Suite.
func Global() *Suite {
	globalOnce.Do(func() {
		globalSuite = &Suite{cfg: LoadConfig()}
	})
	return globalSuite
}

// Setup starts Postgres and Redis, applies migrations and connects clients.
func (s *Suite) Setup(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return errors.New("suite already set up")
	}
	defer func() {
		if err != nil {
			s.teardownLocked(ctx)
		}
	}()

	if s.pg, err = StartPostgres(ctx, &s.cfg); err != nil {
		return fmt.Errorf("setup postgres: %w", err)
	}
	if s.redis, err = StartRedis(ctx, &s.cfg); err != nil {
		return fmt.Errorf("setup redis: %w", err)
	}

	if s.db, err = OpenMigrated(ctx, s.pg.DSN()); err != nil {
		return fmt.Errorf("open test database: %w", err)
	}
	s.rdb = redis.NewClient(&redis.Options{Addr: s.redis.Addr()})
	if err = s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping test redis: %w", err)
	}
	return nil
}

// Shutdown closes clients and terminates containers unless
// EIBORSVC_TEST_KEEP_CONTAINERS is set.
func (s *Suite) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked(ctx)
}

func (s *Suite) teardownLocked(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Close()
		s.rdb = nil
	}
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}

	if s.cfg.KeepContainers {
		if s.pg != nil {
			fmt.Println("testkit: keeping postgres at", s.pg.DSN())
		}
		if s.redis != nil {
			fmt.Println("testkit: keeping redis at", s.redis.Addr())
		}
		s.pg, s.redis = nil, nil
		return
	}

	if s.redis != nil {
		if err := s.redis.Terminate(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "testkit: terminate redis:", err)
		}
		s.redis = nil
	}
	if s.pg != nil {
		if err := s.pg.Terminate(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "testkit: terminate postgres:", err)
		}
		s.pg = nil
	}
}

// DB returns the migrated test database.
func (s *Suite) DB() *sql.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// Redis returns a client for the test Redis.
func (s *Suite) Redis() *redis.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rdb
}

// RedisAddr returns host:port of the test Redis.
func (s *Suite) RedisAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.redis == nil {
		return ""
	}
	return s.redis.Addr()
}

// Reset empties the rate table and the Redis database.
func (s *Suite) Reset(t testing.TB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.DB().ExecContext(ctx, "TRUNCATE TABLE eibor_rates"); err != nil {
		t.Fatalf("truncate eibor_rates: %v", err)
	}
	if err := s.Redis().FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
}

// Run is meant for TestMain: it sets the suite up, runs the tests and exits
// with their status.
func (s *Suite) Run(m *testing.M) {
	ctx := context.Background()

	if err := s.Setup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "testkit: setup failed: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	s.Shutdown(ctx)
	os.Exit(code)
}

// Run calls Global().Run.
func Run(m *testing.M) {
	Global().Run(m)
}
