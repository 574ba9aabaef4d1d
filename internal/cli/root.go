package cli

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradesim/config"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// RootConfig holds the persistent flags and the configuration they
// resolve to.
type RootConfig struct {
	ConfigPath string
	EnvFile    string
	DBPath     string
	LogLevel   string
	LogFormat  string

	Config *config.Config
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "tradesim",
		Short: "tradesim — synthetic trading bot account simulator",
		Long: `tradesim simulates a trading bot account: an equity curve that walks
every tick, synthetic open positions and closed trades, and derived
performance metrics. Nothing is ever sent to an exchange.

It provides:
  - serve     HTTP dashboard API and websocket snapshot stream
  - simulate  headless ticks rendered as terminal tables
  - config    generate or validate configuration files
  - journal   query the optional SQLite tick journal`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.EnvFile, "env-file", ".env", "Dotenv file with TRADESIM_* overrides")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database (overrides journal.db_path)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&rc.LogFormat, "log-format", "", "Log format: text|json")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load()
	}

	cmd.AddCommand(
		newServeCmd(rc),
		newSimulateCmd(rc),
		newConfigCmd(rc),
		newJournalCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradesim (%s)\n", Version)
		},
	})

	return cmd
}

// load resolves the configuration (file, then .env and environment, then
// flags) and sets up logging.
func (rc *RootConfig) load() error {
	cfg, err := config.Load(rc.ConfigPath, rc.EnvFile)
	if err != nil {
		return err
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if rc.LogFormat != "" {
		cfg.Log.Format = rc.LogFormat
	}
	if rc.DBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = rc.DBPath
	}
	if err := setupLogging(cfg.Log); err != nil {
		return err
	}

	rc.Config = cfg
	return nil
}

func setupLogging(lc config.LogConfig) error {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch lc.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log format must be text or json (got %q)", lc.Format)
	}
	return nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
