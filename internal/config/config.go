// Package config defines the top-level configuration for marketdesk and
// provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by MDESK_* environment variables.
type Config struct {
	Exchange ExchangeConfig `toml:"exchange"`
	Feed     FeedConfig     `toml:"feed"`
	User     UserConfig     `toml:"user"`
	Server   ServerConfig   `toml:"server"`
	Redis    RedisConfig    `toml:"redis"`
	LogLevel string         `toml:"log_level"`
}

// ExchangeConfig holds the upstream exchange endpoints.
type ExchangeConfig struct {
	BaseURL        string   `toml:"base_url"`
	WsURL          string   `toml:"ws_url"`
	RequestTimeout duration `toml:"request_timeout"`
}

// FeedConfig holds polling cadences and view parameters.
type FeedConfig struct {
	TradePollInterval   duration `toml:"trade_poll_interval"`
	BalancePollInterval duration `toml:"balance_poll_interval"`
	DepthLevels         int      `toml:"depth_levels"`
	CandleInterval      duration `toml:"candle_interval"`
}

// UserConfig identifies the local trading user whose orders are highlighted.
type UserConfig struct {
	ID string `toml:"id"`
}

// UserID parses the configured user id, returning uuid.Nil when unset.
func (u UserConfig) UserID() (uuid.UUID, error) {
	if u.ID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(u.ID)
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// RedisConfig holds Redis connection parameters for the optional signal bus.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// duration is a wrapper around time.Duration that supports TOML string decoding
// (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Exchange: ExchangeConfig{
			BaseURL:        "http://localhost:3000",
			WsURL:          "ws://localhost:3000/ws",
			RequestTimeout: duration{10 * time.Second},
		},
		Feed: FeedConfig{
			TradePollInterval:   duration{2 * time.Second},
			BalancePollInterval: duration{5 * time.Second},
			DepthLevels:         20,
			CandleInterval:      duration{time.Minute},
		},
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Exchange endpoints
	if c.Exchange.BaseURL == "" {
		errs = append(errs, "exchange: base_url must not be empty")
	}
	if c.Exchange.WsURL == "" {
		errs = append(errs, "exchange: ws_url must not be empty")
	}
	if c.Exchange.RequestTimeout.Duration <= 0 {
		errs = append(errs, "exchange: request_timeout must be > 0")
	}

	// Feed cadences
	if c.Feed.TradePollInterval.Duration <= 0 {
		errs = append(errs, "feed: trade_poll_interval must be > 0")
	}
	if c.Feed.BalancePollInterval.Duration <= 0 {
		errs = append(errs, "feed: balance_poll_interval must be > 0")
	}
	if c.Feed.DepthLevels < 1 {
		errs = append(errs, "feed: depth_levels must be >= 1")
	}
	if c.Feed.CandleInterval.Duration <= 0 {
		errs = append(errs, "feed: candle_interval must be > 0")
	}

	// User
	if c.User.ID != "" {
		if _, err := uuid.Parse(c.User.ID); err != nil {
			errs = append(errs, fmt.Sprintf("user: id %q is not a valid UUID", c.User.ID))
		}
	}

	// Server
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when enabled")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
