package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradesim/config"
	"github.com/rustyeddy/tradesim/journal"
	"github.com/rustyeddy/tradesim/render"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query the tick journal",
		Long: `Query trade and equity rows from the SQLite tick journal.

The journal is an audit log only; it is never used to restore an account.

Subcommands:
  trade   - Show one trade by ID
  trades  - List trades closed in a recent window
  equity  - List equity rows in a recent window

Examples:
  tradesim journal trade 01HKZ3M4Q2W8T6X9Y0ABCDEF12 --db tradesim.sqlite
  tradesim journal trades --since 24h
  tradesim journal equity --since 1h`,
	}

	cmd.AddCommand(
		newJournalTradeCmd(rc),
		newJournalTradesCmd(rc),
		newJournalEquityCmd(rc),
	)
	return cmd
}

func openSQLite(cfg *config.Config) (*journal.SQLite, error) {
	if cfg.Journal.DBPath == "" {
		return nil, fmt.Errorf("no journal database: set --db, journal.db_path or %s", config.EnvJournalDB)
	}
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func newJournalTradeCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "trade <trade-id>",
		Short: "Get details of a specific trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openSQLite(rc.Config)
			if err != nil {
				return err
			}
			defer j.Close()

			rec, err := j.GetTrade(args[0])
			if err != nil {
				return fmt.Errorf("get trade: %w", err)
			}
			render.Trade(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func newJournalTradesCmd(rc *RootConfig) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List trades closed within --since of now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if since <= 0 {
				return fmt.Errorf("--since must be positive (got %s)", since)
			}
			j, err := openSQLite(rc.Config)
			if err != nil {
				return err
			}
			defer j.Close()

			end := time.Now()
			recs, err := j.ListTradesClosedBetween(end.Add(-since), end)
			if err != nil {
				return fmt.Errorf("query trades: %w", err)
			}
			render.TradeRecords(cmd.OutOrStdout(), recs)
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "Window to list")
	return cmd
}

func newJournalEquityCmd(rc *RootConfig) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "equity",
		Short: "List equity rows within --since of now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if since <= 0 {
				return fmt.Errorf("--since must be positive (got %s)", since)
			}
			j, err := openSQLite(rc.Config)
			if err != nil {
				return err
			}
			defer j.Close()

			end := time.Now()
			recs, err := j.ListEquityBetween(end.Add(-since), end)
			if err != nil {
				return fmt.Errorf("query equity: %w", err)
			}
			render.EquityRecords(cmd.OutOrStdout(), recs)
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", time.Hour, "Window to list")
	return cmd
}
