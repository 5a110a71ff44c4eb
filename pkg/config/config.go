// Package config reads process configuration from the environment, after
// loading a .env file when one is present.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mohtashimnawaz/satoshiflow/pkg/accrual"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage/dynamodb"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
	"github.com/shopspring/decimal"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

type Config struct {
	HTTPPort             string
	StorageBackend       string
	Tables               dynamodb.Tables
	SQSQueueURL          string
	WebsocketAPIEndpoint string
	TickInterval         time.Duration
	FeeRate              decimal.Decimal
	ReclaimTimeout       time.Duration
	LowBalancePercent    uint64
	LogLevel             slog.Level
}

// Load reads the configuration. A missing .env file is not an error; a
// malformed value is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		Tables: dynamodb.Tables{
			Streams:       os.Getenv("DYNAMODB_STREAMS_TABLE_NAME"),
			Milestones:    os.Getenv("DYNAMODB_MILESTONES_TABLE_NAME"),
			Notifications: os.Getenv("DYNAMODB_NOTIFICATIONS_TABLE_NAME"),
			Templates:     os.Getenv("DYNAMODB_TEMPLATES_TABLE_NAME"),
			Stats:         os.Getenv("DYNAMODB_STATS_TABLE_NAME"),
			Counters:      os.Getenv("DYNAMODB_COUNTERS_TABLE_NAME"),
			Connections:   os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
		},
		SQSQueueURL:          os.Getenv("SQS_QUEUE_URL"),
		WebsocketAPIEndpoint: os.Getenv("WEBSOCKET_API_ENDPOINT"),
	}

	var err error
	if cfg.TickInterval, err = getDuration("TICK_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.ReclaimTimeout, err = getDuration("RECLAIM_TIMEOUT", accrual.DefaultReclaimTimeout); err != nil {
		return nil, err
	}

	cfg.FeeRate = accrual.DefaultFeeRate
	if v, ok := os.LookupEnv("FEE_RATE"); ok {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FEE_RATE %q: %w", v, err)
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("FEE_RATE must be between 0 and 1, got %s", v)
		}
		cfg.FeeRate = rate
	}

	cfg.LowBalancePercent = 10
	if v, ok := os.LookupEnv("LOW_BALANCE_PERCENT"); ok {
		pct, err := strconv.ParseUint(v, 10, 64)
		if err != nil || pct > 100 {
			return nil, fmt.Errorf("invalid LOW_BALANCE_PERCENT %q", v)
		}
		cfg.LowBalancePercent = pct
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Validate checks that everything the selected backend needs is present.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
		return nil
	case BackendDynamoDB:
		return c.ValidateTables()
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
}

// ValidateTables reports the first missing DynamoDB table name.
func (c *Config) ValidateTables() error {
	t := c.Tables
	for env, name := range map[string]string{
		"DYNAMODB_STREAMS_TABLE_NAME":       t.Streams,
		"DYNAMODB_MILESTONES_TABLE_NAME":    t.Milestones,
		"DYNAMODB_NOTIFICATIONS_TABLE_NAME": t.Notifications,
		"DYNAMODB_TEMPLATES_TABLE_NAME":     t.Templates,
		"DYNAMODB_STATS_TABLE_NAME":         t.Stats,
		"DYNAMODB_COUNTERS_TABLE_NAME":      t.Counters,
		"DYNAMODB_CONNECTIONS_TABLE_NAME":   t.Connections,
	} {
		if name == "" {
			return fmt.Errorf("%s environment variable not set", env)
		}
	}
	return nil
}

// Engine returns the economic parameters for streams.New.
func (c *Config) Engine() streams.Config {
	return streams.Config{
		FeeRate:           c.FeeRate,
		ReclaimTimeout:    c.ReclaimTimeout,
		LowBalancePercent: c.LowBalancePercent,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
