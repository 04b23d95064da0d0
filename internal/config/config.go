// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. EIBORSVC_FIRECRAWL_API_KEY.
const EnvPrefix = "EIBORSVC"

// Config holds the complete application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Firecrawl FirecrawlConfig
	Extractor ExtractorConfig
	Ingest    IngestConfig
	Worker    WorkerConfig
	Scheduler SchedulerConfig
	Cache     CacheConfig
	Kafka     KafkaConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int  `mapstructure:"port"`
	ServeSwagger  bool `mapstructure:"serve_swagger"`
	ServeAsynqmon bool `mapstructure:"serve_asynqmon"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"sslmode"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec int    `mapstructure:"conn_max_lifetime_sec"`
	DSN                string
}

// RedisConfig holds connection settings for both Redis instances.
type RedisConfig struct {
	AsynqAddr string `mapstructure:"asynq_addr"` // Redis instance for Asynq task queue (required).
	CacheAddr string `mapstructure:"cache_addr"` // Redis instance for application cache (required).
}

// FirecrawlConfig holds settings for the Firecrawl extraction service.
type FirecrawlConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout_sec"`
}

// ExtractorConfig describes the page to extract rates from.
type ExtractorConfig struct {
	SourceURL   string `mapstructure:"source_url"`
	WaitForMS   int    `mapstructure:"wait_for_ms"`
	CacheTTLSec int    `mapstructure:"cache_ttl_sec"`
}

// IngestConfig holds ingestion job settings.
type IngestConfig struct {
	DatePolicy string `mapstructure:"date_policy"` // "fallback" or "strict"
}

// WorkerConfig holds background worker and task queue settings.
type WorkerConfig struct {
	Concurrency      int `mapstructure:"concurrency"`
	MaxRetry         int `mapstructure:"max_retry"`
	TimeoutSec       int `mapstructure:"timeout_sec"`
	CheckIntervalSec int `mapstructure:"check_interval_sec"`
	UniqueTTLSec     int `mapstructure:"unique_ttl_sec"`
}

// SchedulerConfig holds periodic ingestion settings.
type SchedulerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Cron     string `mapstructure:"cron"`
	Location string `mapstructure:"location"`
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	LatestTTLSec int `mapstructure:"latest_ttl_sec"`
}

// KafkaConfig holds rate-update event publishing settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
// A non-empty path selects an explicit config file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Config search paths
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("./internal/config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		// It's okay if no config file, we have defaults and env
		fmt.Fprintf(os.Stderr, "Config file not found: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Database.DSN = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Name, cfg.Database.SSLMode)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.serve_asynqmon", true)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "eibordb")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("redis.asynq_addr", "redis_asynq:6380")
	v.SetDefault("redis.cache_addr", "redis_cache:6381")
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev")
	v.SetDefault("firecrawl.api_key", "")
	v.SetDefault("firecrawl.timeout_sec", 60)
	v.SetDefault("extractor.source_url", "https://www.centralbank.ae/en/forex-eibor/eibor-rates/")
	v.SetDefault("extractor.wait_for_ms", 3000)
	v.SetDefault("extractor.cache_ttl_sec", 0)
	v.SetDefault("ingest.date_policy", "fallback")
	v.SetDefault("worker.concurrency", 1)
	v.SetDefault("worker.max_retry", 3)
	v.SetDefault("worker.timeout_sec", 120)
	v.SetDefault("worker.check_interval_sec", 5)
	v.SetDefault("worker.unique_ttl_sec", 600)
	v.SetDefault("scheduler.enabled", true)
	// CBUAE publishes fixings around midday Dubai time on business days
	v.SetDefault("scheduler.cron", "30 12 * * 1-5")
	v.SetDefault("scheduler.location", "Asia/Dubai")
	v.SetDefault("cache.latest_ttl_sec", 600)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "eibor.rates.updated")
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	if c.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if c.Database.Port <= 0 {
		errs = append(errs, fmt.Errorf("database.port must be positive, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	if c.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must be positive, got %d", c.Database.MaxOpenConns))
	}

	if c.Redis.AsynqAddr == "" {
		errs = append(errs, fmt.Errorf("redis.asynq_addr is required (set EIBORSVC_REDIS_ASYNQ_ADDR)"))
	}
	if c.Redis.CacheAddr == "" {
		errs = append(errs, fmt.Errorf("redis.cache_addr is required (set EIBORSVC_REDIS_CACHE_ADDR)"))
	}

	if c.Firecrawl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("firecrawl.timeout_sec must be positive, got %d", c.Firecrawl.Timeout))
	}
	if c.Extractor.SourceURL == "" {
		errs = append(errs, fmt.Errorf("extractor.source_url is required"))
	}
	if c.Extractor.WaitForMS < 0 {
		errs = append(errs, fmt.Errorf("extractor.wait_for_ms must be non-negative, got %d", c.Extractor.WaitForMS))
	}
	if c.Extractor.CacheTTLSec < 0 {
		errs = append(errs, fmt.Errorf("extractor.cache_ttl_sec must be non-negative, got %d", c.Extractor.CacheTTLSec))
	}

	switch strings.ToLower(c.Ingest.DatePolicy) {
	case "", "fallback", "strict":
	default:
		errs = append(errs, fmt.Errorf("ingest.date_policy must be fallback or strict, got %q", c.Ingest.DatePolicy))
	}

	if c.Worker.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("worker.concurrency must be positive, got %d", c.Worker.Concurrency))
	}
	if c.Worker.MaxRetry < 0 {
		errs = append(errs, fmt.Errorf("worker.max_retry must be non-negative, got %d", c.Worker.MaxRetry))
	}
	if c.Worker.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("worker.timeout_sec must be positive, got %d", c.Worker.TimeoutSec))
	}
	if c.Worker.CheckIntervalSec <= 0 {
		errs = append(errs, fmt.Errorf("worker.check_interval_sec must be positive, got %d", c.Worker.CheckIntervalSec))
	}
	if c.Worker.UniqueTTLSec < 0 {
		errs = append(errs, fmt.Errorf("worker.unique_ttl_sec must be non-negative, got %d", c.Worker.UniqueTTLSec))
	}

	if c.Scheduler.Enabled {
		if _, err := cron.ParseStandard(c.Scheduler.Cron); err != nil {
			errs = append(errs, fmt.Errorf("scheduler.cron %q is invalid: %w", c.Scheduler.Cron, err))
		}
	}

	if c.Cache.LatestTTLSec < 0 {
		errs = append(errs, fmt.Errorf("cache.latest_ttl_sec must be non-negative, got %d", c.Cache.LatestTTLSec))
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, fmt.Errorf("kafka.topic is required when kafka.brokers is set"))
	}

	return errors.Join(errs...)
}
