package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MDESK_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known MDESK_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators point at a different exchange or user at deploy
// time without touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Exchange ──
	setStr(&cfg.Exchange.BaseURL, "MDESK_EXCHANGE_BASE_URL")
	setStr(&cfg.Exchange.WsURL, "MDESK_EXCHANGE_WS_URL")
	setDuration(&cfg.Exchange.RequestTimeout, "MDESK_EXCHANGE_REQUEST_TIMEOUT")

	// ── Feed ──
	setDuration(&cfg.Feed.TradePollInterval, "MDESK_FEED_TRADE_POLL_INTERVAL")
	setDuration(&cfg.Feed.BalancePollInterval, "MDESK_FEED_BALANCE_POLL_INTERVAL")
	setInt(&cfg.Feed.DepthLevels, "MDESK_FEED_DEPTH_LEVELS")
	setDuration(&cfg.Feed.CandleInterval, "MDESK_FEED_CANDLE_INTERVAL")

	// ── User ──
	setStr(&cfg.User.ID, "MDESK_USER_ID")

	// ── Server ──
	setInt(&cfg.Server.Port, "MDESK_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "MDESK_SERVER_CORS_ORIGINS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "MDESK_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "MDESK_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MDESK_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MDESK_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "MDESK_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "MDESK_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "MDESK_REDIS_TLS_ENABLED")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "MDESK_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
