package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AgentConfig configures the field client.
type AgentConfig struct {
	Env         string
	ServerURL   string
	Token       string
	AgentID     string
	DBPath      string
	MetricsAddr string

	FlushInterval  time.Duration
	ProbeInterval  time.Duration
	RequestTimeout time.Duration
	BatchSize      int
	MaxAttempts    int

	AllowMissingReference bool
}

func LoadAgent() (*AgentConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &AgentConfig{
		Env:            getEnv("ENV", "local"),
		ServerURL:      getEnv("AGENT_SERVER_URL", "http://localhost:8080"),
		Token:          getEnv("AGENT_TOKEN", ""),
		AgentID:        getEnv("AGENT_ID", ""),
		DBPath:         getEnv("AGENT_DB_PATH", "./data/agent.db"),
		MetricsAddr:    getEnv("AGENT_METRICS_ADDR", ""),
		FlushInterval:  getEnvDuration("AGENT_FLUSH_INTERVAL", time.Minute),
		ProbeInterval:  getEnvDuration("AGENT_PROBE_INTERVAL", 15*time.Second),
		RequestTimeout: getEnvDuration("AGENT_REQUEST_TIMEOUT", 15*time.Second),
		BatchSize:      getEnvInt("AGENT_BATCH_SIZE", 100),
		MaxAttempts:    getEnvInt("AGENT_MAX_ATTEMPTS", 5),

		AllowMissingReference: getEnvBool("GEOFENCE_ALLOW_MISSING_REFERENCE", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AgentConfig) Validate() error {
	if c.AgentID == "" {
		return errors.New("AGENT_ID required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("AGENT_SERVER_URL must be an absolute http(s) URL, got %q", c.ServerURL)
	}
	if c.DBPath == "" {
		return errors.New("AGENT_DB_PATH required")
	}
	if c.BatchSize < 1 || c.BatchSize > 100 {
		return fmt.Errorf("AGENT_BATCH_SIZE must be in [1, 100], got %d", c.BatchSize)
	}
	if c.MaxAttempts < 1 {
		return errors.New("AGENT_MAX_ATTEMPTS must be positive")
	}
	if c.FlushInterval <= 0 || c.ProbeInterval <= 0 {
		return errors.New("AGENT_FLUSH_INTERVAL and AGENT_PROBE_INTERVAL must be positive")
	}
	return nil
}
