package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/bot"
	"github.com/rustyeddy/tradesim/config"
	"github.com/rustyeddy/tradesim/journal"
	"github.com/rustyeddy/tradesim/sim"
)

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		j, err := journal.NewCSV(jc.TradesFile, jc.EquityFile)
		if err != nil {
			return nil, err
		}
		return j, nil
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		if err != nil {
			return nil, err
		}
		return j, nil
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}

// newBot builds the engine, the initial snapshot and the journal from cfg.
func newBot(cfg *config.Config) (*bot.Bot, error) {
	metrics, err := sim.ParseMetricsMode(cfg.Simulation.Metrics)
	if err != nil {
		return nil, err
	}
	mode, err := account.ParseMode(cfg.Account.Mode)
	if err != nil {
		return nil, err
	}
	interval, err := cfg.Simulation.Interval()
	if err != nil {
		return nil, err
	}

	opts := []sim.Option{
		sim.WithMetricsMode(metrics),
		sim.WithTradingConfig(cfg.Trading),
	}
	if cfg.Simulation.Seed != 0 {
		opts = append(opts, sim.WithSeed(cfg.Simulation.Seed))
	}
	engine, err := sim.NewEngine(opts...)
	if err != nil {
		return nil, err
	}

	snap, err := engine.Initialize(decimal.NewFromFloat(cfg.Account.SeedBalance), cfg.Simulation.HistoryLength, interval)
	if err != nil {
		return nil, err
	}
	snap = sim.SetMode(snap, mode)

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	log.WithFields(log.Fields{
		"account": cfg.Account.ID,
		"seed":    snap.SeedBalance.StringFixed(2),
		"mode":    snap.Mode,
		"metrics": metrics,
		"journal": cfg.Journal.Type,
	}).Info("account initialized")

	return bot.New(engine, snap, j), nil
}
