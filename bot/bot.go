package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/journal"
	"github.com/rustyeddy/tradesim/sim"
)

// Bus topics. Snapshot handlers take an account.Snapshot, notice handlers
// take a Notice.
const (
	TopicSnapshot = "bot:snapshot"
	TopicNotice   = "bot:notice"
)

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a user-facing message raised by a control action.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Settings is what the settings dialog edits.
type Settings struct {
	Mode    account.Mode      `json:"mode"`
	Trading sim.TradingConfig `json:"trading"`
}

// Bot owns the live account. Writers (Step, Toggle, SetMode,
// UpdateSettings) are serialized; Snapshot reads never block.
type Bot struct {
	mu      sync.Mutex
	store   *account.Store
	engine  *sim.Engine
	journal journal.Journal
	bus     EventBus.Bus
}

// New wraps an engine and its initial snapshot. A nil journal disables
// journaling.
func New(engine *sim.Engine, initial account.Snapshot, j journal.Journal) *Bot {
	if j == nil {
		j = journal.Nop{}
	}
	return &Bot{
		store:   account.NewStore(initial),
		engine:  engine,
		journal: j,
		bus:     EventBus.New(),
	}
}

// Snapshot returns a private copy of the current account.
func (b *Bot) Snapshot() account.Snapshot {
	return b.store.Current()
}

// Subscribe registers fn on topic. Handlers run synchronously on the
// publishing goroutine while the writer lock is held, so they see events
// in commit order. They must not block, subscribe, or call Bot writers.
func (b *Bot) Subscribe(topic string, fn interface{}) error {
	if err := b.bus.Subscribe(topic, fn); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

func (b *Bot) Unsubscribe(topic string, fn interface{}) error {
	return b.bus.Unsubscribe(topic, fn)
}

// Step advances the account by one tick when it is running. The new
// snapshot is published and journaled; a journal failure is returned
// but the tick still stands.
func (b *Bot) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.store.Current()
	if !cur.Running {
		return nil
	}
	next := b.engine.Tick(cur)
	b.store.Replace(next)
	b.bus.Publish(TopicSnapshot, next)

	log.WithFields(log.Fields{
		"balance":   next.Balance.StringFixed(2),
		"positions": len(next.OpenPositions),
		"win_rate":  fmt.Sprintf("%.1f", next.Performance.WinRate),
	}).Debug("tick")

	if err := journal.RecordSnapshot(b.journal, next); err != nil {
		return fmt.Errorf("journal tick: %w", err)
	}
	return nil
}

// Toggle starts or stops the bot and returns the new snapshot.
func (b *Bot) Toggle() account.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := sim.ToggleRunning(b.store.Current())
	b.store.Replace(next)

	n := Notice{Level: NoticeWarning, Message: "Trading Bot Stopped"}
	if next.Running {
		n = Notice{Level: NoticeSuccess, Message: "Trading Bot Started"}
	}
	b.notify(n)
	b.bus.Publish(TopicSnapshot, next)
	return next
}

func (b *Bot) SetMode(mode account.Mode) (account.Snapshot, error) {
	if _, err := account.ParseMode(string(mode)); err != nil {
		return account.Snapshot{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := sim.SetMode(b.store.Current(), mode)
	b.store.Replace(next)

	log.WithField("mode", mode).Info("trading mode changed")
	b.bus.Publish(TopicSnapshot, next)
	return next, nil
}

func (b *Bot) Settings() Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Settings{
		Mode:    b.store.Current().Mode,
		Trading: b.engine.TradingConfig(),
	}
}

// UpdateSettings applies the mode and trading settings together. Nothing
// changes if either is invalid.
func (b *Bot) UpdateSettings(s Settings) (Settings, error) {
	if _, err := account.ParseMode(string(s.Mode)); err != nil {
		return Settings{}, err
	}
	if err := s.Trading.Validate(); err != nil {
		return Settings{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.engine.SetTradingConfig(s.Trading); err != nil {
		return Settings{}, err
	}
	next := sim.SetMode(b.store.Current(), s.Mode)
	b.store.Replace(next)

	log.WithFields(log.Fields{
		"mode":               s.Mode,
		"max_open_positions": s.Trading.MaxOpenPositions,
		"stop_loss_pct":      s.Trading.StopLossPct,
		"take_profit_pct":    s.Trading.TakeProfitPct,
	}).Info("settings updated")

	b.notify(Notice{Level: NoticeSuccess, Message: "Settings Saved"})
	b.bus.Publish(TopicSnapshot, next)
	return s, nil
}

// Close flushes and closes the journal.
func (b *Bot) Close() error {
	return b.journal.Close()
}

// notify logs n and publishes it. Callers hold b.mu.
func (b *Bot) notify(n Notice) {
	entry := log.WithField("level", n.Level)
	if n.Level == NoticeWarning {
		entry.Warn(n.Message)
	} else {
		entry.Info(n.Message)
	}
	b.bus.Publish(TopicNotice, n)
}
