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
// built-in defaults, applies FUNDWATCH_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known FUNDWATCH_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject the bot token and chat IDs at deploy time without
// writing them into the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Telegram ──
	setStr(&cfg.Telegram.Token, "FUNDWATCH_TELEGRAM_TOKEN")
	setStr(&cfg.Telegram.Token, "TELEGRAM_TOKEN") // compatibility alias
	setStringSlice(&cfg.Telegram.ChatIDs, "FUNDWATCH_TELEGRAM_CHAT_IDS")

	// ── MOEX ──
	setStr(&cfg.Moex.BaseURL, "FUNDWATCH_MOEX_BASE_URL")
	setDuration(&cfg.Moex.Timeout, "FUNDWATCH_MOEX_TIMEOUT")
	setDuration(&cfg.Moex.FetchPause, "FUNDWATCH_MOEX_FETCH_PAUSE")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "FUNDWATCH_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "FUNDWATCH_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "FUNDWATCH_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "FUNDWATCH_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "FUNDWATCH_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "FUNDWATCH_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "FUNDWATCH_REDIS_TLS_ENABLED")

	// ── Report ──
	setStr(&cfg.Report.Title, "FUNDWATCH_REPORT_TITLE")
	setStr(&cfg.Report.Timezone, "FUNDWATCH_REPORT_TIMEZONE")

	// ── Schedule ──
	setStr(&cfg.Schedule.Cron, "FUNDWATCH_SCHEDULE_CRON")

	// ── Top-level ──
	setStr(&cfg.Mode, "FUNDWATCH_MODE")
	setStr(&cfg.LogLevel, "FUNDWATCH_LOG_LEVEL")
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
