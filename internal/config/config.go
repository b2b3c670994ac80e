// Package config defines the top-level configuration for the fund watcher
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okorolev/fundwatch/internal/domain"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by FUNDWATCH_* environment
// variables.
type Config struct {
	Moex        MoexConfig         `toml:"moex"`
	Telegram    TelegramConfig     `toml:"telegram"`
	Redis       RedisConfig        `toml:"redis"`
	Report      ReportConfig       `toml:"report"`
	Schedule    ScheduleConfig     `toml:"schedule"`
	Instruments []InstrumentConfig `toml:"instruments"`
	Mode        string             `toml:"mode"`
	LogLevel    string             `toml:"log_level"`
}

// MoexConfig holds MOEX ISS endpoint parameters.
type MoexConfig struct {
	BaseURL string `toml:"base_url"`
	// Timeout bounds each quote request.
	Timeout duration `toml:"timeout"`
	// FetchPause is a courtesy pause between consecutive quote requests.
	FetchPause duration `toml:"fetch_pause"`
}

// TelegramConfig holds the notification channel credentials. ChatIDs may
// contain empty entries (unset optional recipients); those are skipped at
// wiring time.
type TelegramConfig struct {
	Token   string   `toml:"token"`
	ChatIDs []string `toml:"chat_ids"`
}

// RedisConfig holds connection parameters for the optional last-price cache.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// ReportConfig holds presentation parameters.
type ReportConfig struct {
	Title string `toml:"title"`
	// Timezone names the IANA zone used for the report header timestamp.
	Timezone string `toml:"timezone"`
}

// ScheduleConfig holds the cron expression used in serve mode.
type ScheduleConfig struct {
	Cron string `toml:"cron"`
}

// InstrumentConfig is one registry entry as written in the TOML file.
type InstrumentConfig struct {
	Ticker   string  `toml:"ticker"`
	Board    string  `toml:"board"`
	Name     string  `toml:"name"`
	BuyPrice float64 `toml:"buy_price"`
	Quantity float64 `toml:"quantity"`
}

// ToDomain converts the config entry into the domain registry type.
func (ic InstrumentConfig) ToDomain() domain.Instrument {
	return domain.Instrument{
		Ticker:   ic.Ticker,
		Board:    ic.Board,
		Name:     ic.Name,
		BuyPrice: ic.BuyPrice,
		Quantity: ic.Quantity,
	}
}

// Registry converts every configured instrument, preserving file order.
func (c *Config) Registry() []domain.Instrument {
	out := make([]domain.Instrument, 0, len(c.Instruments))
	for _, ic := range c.Instruments {
		out = append(out, ic.ToDomain())
	}
	return out
}

// Recipients returns the configured chat IDs with empty entries removed.
func (c *Config) Recipients() []string {
	out := make([]string, 0, len(c.Telegram.ChatIDs))
	for _, id := range c.Telegram.ChatIDs {
		if strings.TrimSpace(id) != "" {
			out = append(out, strings.TrimSpace(id))
		}
	}
	return out
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "10s", "1500ms").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings.
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
func Defaults() Config {
	return Config{
		Moex: MoexConfig{
			BaseURL:    "https://iss.moex.com",
			Timeout:    duration{10 * time.Second},
			FetchPause: duration{300 * time.Millisecond},
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   5,
			MaxRetries: 3,
		},
		Report: ReportConfig{
			Title:    "📊 Цены фондов",
			Timezone: "Europe/Moscow",
		},
		Schedule: ScheduleConfig{
			// Twice a day, Moscow business hours.
			Cron: "0 0 10,19 * * *",
		},
		Mode:     "once",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"once":  true,
	"serve": true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found. It must pass before the
// application touches the network.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: once, serve)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Telegram — the run is pointless without a token and at least one
	// recipient, so both are fatal here rather than at dispatch time.
	if strings.TrimSpace(c.Telegram.Token) == "" {
		errs = append(errs, "telegram: token must not be empty")
	}
	if len(c.Recipients()) == 0 {
		errs = append(errs, "telegram: at least one non-empty chat id is required")
	}

	// MOEX
	if c.Moex.BaseURL == "" {
		errs = append(errs, "moex: base_url must not be empty")
	}
	if c.Moex.Timeout.Duration <= 0 {
		errs = append(errs, "moex: timeout must be positive")
	}
	if c.Moex.FetchPause.Duration < 0 {
		errs = append(errs, "moex: fetch_pause must not be negative")
	}

	// Instruments
	if len(c.Instruments) == 0 {
		errs = append(errs, "instruments: at least one instrument is required")
	}
	for i, inst := range c.Instruments {
		if strings.TrimSpace(inst.Ticker) == "" {
			errs = append(errs, fmt.Sprintf("instruments[%d]: ticker must not be empty", i))
		}
		if strings.TrimSpace(inst.Board) == "" {
			errs = append(errs, fmt.Sprintf("instruments[%d] (%s): board must not be empty", i, inst.Ticker))
		}
		if inst.BuyPrice < 0 {
			errs = append(errs, fmt.Sprintf("instruments[%d] (%s): buy_price must not be negative", i, inst.Ticker))
		}
		if inst.Quantity < 0 {
			errs = append(errs, fmt.Sprintf("instruments[%d] (%s): quantity must not be negative", i, inst.Ticker))
		}
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

	// Schedule
	if strings.ToLower(c.Mode) == "serve" && strings.TrimSpace(c.Schedule.Cron) == "" {
		errs = append(errs, "schedule: cron must not be empty in serve mode")
	}

	// Report
	if c.Report.Timezone != "" {
		if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("report: unknown timezone %q", c.Report.Timezone))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
