package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/sim"
	"gopkg.in/yaml.v3"
)

// Config represents the complete simulator configuration
type Config struct {
	Account    AccountConfig     `json:"account" yaml:"account"`
	Simulation SimulationConfig  `json:"simulation" yaml:"simulation"`
	Trading    sim.TradingConfig `json:"trading" yaml:"trading"`
	Journal    JournalConfig     `json:"journal" yaml:"journal"`
	Server     ServerConfig      `json:"server" yaml:"server"`
	Log        LogConfig         `json:"log" yaml:"log"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID          string  `json:"id" yaml:"id"`
	Currency    string  `json:"currency" yaml:"currency"`
	SeedBalance float64 `json:"seed_balance" yaml:"seed_balance"`
	Mode        string  `json:"mode" yaml:"mode"`
}

// SimulationConfig controls the synthetic account walk
type SimulationConfig struct {
	HistoryLength int    `json:"history_length" yaml:"history_length"`
	TickInterval  string `json:"tick_interval" yaml:"tick_interval"` // e.g. "5s"
	Seed          int64  `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 means time based
	Metrics       string `json:"metrics" yaml:"metrics"`               // "sampled" or "cumulative"
}

// Interval converts the tick interval string to time.Duration
func (s SimulationConfig) Interval() (time.Duration, error) {
	if s.TickInterval == "" {
		return 0, fmt.Errorf("simulation.tick_interval is required")
	}
	return time.ParseDuration(s.TickInterval)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// Environment variables that override file values.
const (
	EnvAddr      = "TRADESIM_ADDR"
	EnvLogLevel  = "TRADESIM_LOG_LEVEL"
	EnvSeed      = "TRADESIM_SEED"
	EnvJournalDB = "TRADESIM_JOURNAL_DB"
)

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads path when it is set, otherwise starts from Default, then
// applies .env and environment overrides and validates the result.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s file: %w", envFile, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Simulation.Seed = seed
	}
	if v := os.Getenv(EnvJournalDB); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.SeedBalance <= 0 {
		return fmt.Errorf("account.seed_balance must be positive")
	}
	if _, err := account.ParseMode(c.Account.Mode); err != nil {
		return fmt.Errorf("account.mode: %w", err)
	}
	if c.Simulation.HistoryLength < 1 || c.Simulation.HistoryLength > account.HistoryCap {
		return fmt.Errorf("simulation.history_length must be between 1 and %d", account.HistoryCap)
	}
	d, err := c.Simulation.Interval()
	if err != nil {
		return fmt.Errorf("simulation.tick_interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("simulation.tick_interval must be positive")
	}
	if _, err := sim.ParseMetricsMode(c.Simulation.Metrics); err != nil {
		return fmt.Errorf("simulation.metrics: %w", err)
	}
	if err := c.Trading.Validate(); err != nil {
		return err
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:          "PAPER-001",
			Currency:    "USD",
			SeedBalance: 10000,
			Mode:        string(account.ModePaper),
		},
		Simulation: SimulationConfig{
			HistoryLength: account.HistoryCap,
			TickInterval:  "5s",
			Metrics:       string(sim.MetricsSampled),
		},
		Trading: sim.DefaultTradingConfig(),
		Journal: JournalConfig{
			Type: "none",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
