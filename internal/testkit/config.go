// Package testkit starts throwaway Postgres and Redis instances for integration tests.
package testkit

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "EIBORSVC_TEST_"

// Config selects container images or external instances for a test run.
type Config struct {
	PGImage        string
	RedisImage     string
	PGDSN          string        // external Postgres; no container is started
	RedisAddr      string        // external Redis; no container is started
	StartupTimeout time.Duration
	KeepContainers bool
}

// LoadConfig reads EIBORSVC_TEST_* environment variables.
func LoadConfig() Config {
	return Config{
		PGImage:        env("PG_IMAGE", "postgres:18.1-alpine"),
		RedisImage:     env("REDIS_IMAGE", "redis:8.4.0-alpine"),
		PGDSN:          env("PG_DSN", ""),
		RedisAddr:      env("REDIS_ADDR", ""),
		StartupTimeout: envDuration("STARTUP_TIMEOUT", 90*time.Second),
		KeepContainers: envBool("KEEP_CONTAINERS", false),
	}
}

func env(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return def
}

// envDuration accepts a Go duration ("2m") or plain seconds ("120").
func envDuration(key string, def time.Duration) time.Duration {
	v := env(key, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	fmt.Fprintf(os.Stderr, "testkit: ignoring %s%s=%q, using %v\n", envPrefix, key, v, def)
	return def
}

func envBool(key string, def bool) bool {
	v := env(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testkit: ignoring %s%s=%q, using %v\n", envPrefix, key, v, def)
		return def
	}
	return b
}
