package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/tradesim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 10000.0, cfg.Account.SeedBalance)
	assert.Equal(t, 50, cfg.Simulation.HistoryLength)
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())

	d, err := cfg.Simulation.Interval()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"missing currency", func(c *Config) { c.Account.Currency = "" }, "account.currency is required"},
		{"negative balance", func(c *Config) { c.Account.SeedBalance = -1000 }, "account.seed_balance must be positive"},
		{"bad mode", func(c *Config) { c.Account.Mode = "demo" }, "account.mode"},
		{"negative history", func(c *Config) { c.Simulation.HistoryLength = -1 }, "simulation.history_length"},
		{"history over cap", func(c *Config) { c.Simulation.HistoryLength = 51 }, "simulation.history_length"},
		{"missing interval", func(c *Config) { c.Simulation.TickInterval = "" }, "simulation.tick_interval"},
		{"bad interval", func(c *Config) { c.Simulation.TickInterval = "soon" }, "simulation.tick_interval"},
		{"negative interval", func(c *Config) { c.Simulation.TickInterval = "-5s" }, "simulation.tick_interval must be positive"},
		{"bad metrics", func(c *Config) { c.Simulation.Metrics = "weekly" }, "simulation.metrics"},
		{"bad trading", func(c *Config) { c.Trading.MaxOpenPositions = 0 }, "max_open_positions"},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }, "trades_file and equity_file"},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }, "db_path required"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, "server.addr is required"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Simulation.Metrics = string(sim.MetricsCumulative)
			cfg.Trading.MaxOpenPositions = 7
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Account, loaded.Account)
			assert.Equal(t, cfg.Simulation, loaded.Simulation)
			assert.Equal(t, cfg.Trading, loaded.Trading)
			assert.Equal(t, cfg.Server.Addr, loaded.Server.Addr)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  seed_balance: 2500\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, cfg.Account.SeedBalance)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, "5s", cfg.Simulation.TickInterval)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  history_length: 500\n"), 0644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvLogLevel+"=debug\n"), 0644))

	t.Setenv(EnvAddr, ":9999")
	t.Setenv(EnvSeed, "7")
	t.Setenv(EnvJournalDB, filepath.Join(dir, "j.db"))
	t.Cleanup(func() { os.Unsetenv(EnvLogLevel) })

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, filepath.Join(dir, "j.db"), cfg.Journal.DBPath)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}

func TestLoadBadSeed(t *testing.T) {
	t.Setenv(EnvSeed, "abc")
	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSeed)
}

func TestIntervalParse(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"5s", "5s", false},
		{"1m", "1m0s", false},
		{"250ms", "250ms", false},
		{"", "", true},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := SimulationConfig{TickInterval: tt.in}.Interval()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}
