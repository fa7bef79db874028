package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIKey    = "super-secret-key"
	defaultJWTSecret = "local-dev-jwt-secret"
)

type Config struct {
	Env       string          `json:"env"`
	Http      HttpConfig      `json:"http"`
	Postgres  PostgresConfig  `json:"postgres"`
	Redis     RedisConfig     `json:"redis"`
	Auth      AuthConfig      `json:"auth"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Geofence  GeofenceConfig  `json:"geofence"`
	Sync      SyncConfig      `json:"sync"`
	Webhook   WebhookConfig   `json:"webhook"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns int32 `json:"max_conns"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

type AuthConfig struct {
	// JWTSecret signs agent bearer tokens (HS256); the subject is the agent id.
	JWTSecret string `json:"-"`
	JWTIssuer string `json:"jwt_issuer"`
	APIKey    string `json:"-"`
}

type RateLimitConfig struct {
	RPS   float64 `json:"rps"`
	Burst int     `json:"burst"`
}

type GeofenceConfig struct {
	AllowMissingReference bool `json:"allow_missing_reference"`
}

type SyncConfig struct {
	MaxBatchSize       int           `json:"max_batch_size"`
	MaxClockSkewFuture time.Duration `json:"max_clock_skew_future"`
	MaxEventAge        time.Duration `json:"max_event_age"`
	ReferenceCacheTTL  time.Duration `json:"reference_cache_ttl"`
}

type WebhookConfig struct {
	URL        string `json:"url"`
	Disabled   bool   `json:"disabled"`
	QueueKey   string `json:"queue_key"`
	MaxRetries int    `json:"max_retries"`
}

func Load(ctx context.Context) (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "pg-local"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			Database: getEnv("POSTGRES_DB", "agent_position"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:  getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns: int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
			JWTIssuer: getEnv("JWT_ISSUER", ""),
			APIKey:    getEnv("API_KEY", defaultAPIKey),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvInt("RATE_LIMIT_BURST", 20),
		},
		Geofence: GeofenceConfig{
			AllowMissingReference: getEnvBool("GEOFENCE_ALLOW_MISSING_REFERENCE", true),
		},
		Sync: SyncConfig{
			MaxBatchSize:       getEnvInt("SYNC_MAX_BATCH_SIZE", 100),
			MaxClockSkewFuture: getEnvDuration("SYNC_MAX_CLOCK_SKEW_FUTURE", 10*time.Minute),
			MaxEventAge:        getEnvDuration("SYNC_MAX_EVENT_AGE", 30*24*time.Hour),
			ReferenceCacheTTL:  getEnvDuration("REFERENCE_CACHE_TTL", 5*time.Minute),
		},
		Webhook: WebhookConfig{
			URL:        getEnv("WEBHOOK_URL", ""),
			Disabled:   getEnvBool("WEBHOOK_DISABLED", false),
			QueueKey:   getEnv("WEBHOOK_QUEUE_KEY", "validation_records:queue"),
			MaxRetries: getEnvInt("WEBHOOK_MAX_RETRIES", 3),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Webhook.Disabled || cfg.Webhook.URL == "" {
		stdLogger.Warn("Webhooks disabled")
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("allow_missing_reference", cfg.Geofence.AllowMissingReference),
		slog.String("webhook_url", cfg.Webhook.URL))

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}
	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	if c.Auth.APIKey == "" {
		return errors.New("API_KEY required")
	}
	if c.Env == "prod" && (c.Auth.JWTSecret == defaultJWTSecret || c.Auth.APIKey == defaultAPIKey) {
		return errors.New("JWT_SECRET and API_KEY must be set explicitly in prod")
	}
	if c.Sync.MaxBatchSize < 1 || c.Sync.MaxBatchSize > 1000 {
		return fmt.Errorf("SYNC_MAX_BATCH_SIZE must be in [1, 1000], got %d", c.Sync.MaxBatchSize)
	}
	if c.Sync.MaxClockSkewFuture < 0 || c.Sync.MaxEventAge <= 0 {
		return errors.New("SYNC_MAX_CLOCK_SKEW_FUTURE must be >= 0 and SYNC_MAX_EVENT_AGE > 0")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
