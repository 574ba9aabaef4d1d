package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rustyeddy/tradesim/account"
	"github.com/shopspring/decimal"
)

// ErrInvalidConfiguration is returned when the engine or an initial
// snapshot is requested with out-of-range parameters. Values are never
// clamped.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Rand is the source of randomness the engine draws from. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type MetricsMode string

const (
	// MetricsSampled redraws trade counts and the Sharpe ratio every tick.
	MetricsSampled MetricsMode = "sampled"
	// MetricsCumulative folds each tick's closed trades into running
	// totals and computes Sharpe from the equity history.
	MetricsCumulative MetricsMode = "cumulative"
)

func ParseMetricsMode(s string) (MetricsMode, error) {
	switch MetricsMode(s) {
	case "", MetricsSampled:
		return MetricsSampled, nil
	case MetricsCumulative:
		return MetricsCumulative, nil
	}
	return "", fmt.Errorf("%w: unknown metrics mode %q", ErrInvalidConfiguration, s)
}

// Engine produces account snapshots. Every transition is a function of
// the previous snapshot and the engine's random source; the engine keeps
// no account state of its own.
//
// An Engine is not safe for concurrent use; callers serialize access.
type Engine struct {
	rnd     Rand
	now     func() time.Time
	metrics MetricsMode
	trading TradingConfig
}

type Option func(*Engine)

func WithRand(r Rand) Option { return func(e *Engine) { e.rnd = r } }

func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rnd = rand.New(rand.NewSource(seed)) }
}

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

func WithMetricsMode(m MetricsMode) Option { return func(e *Engine) { e.metrics = m } }

func WithTradingConfig(tc TradingConfig) Option { return func(e *Engine) { e.trading = tc } }

func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		now:     time.Now,
		metrics: MetricsSampled,
		trading: DefaultTradingConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if _, err := ParseMetricsMode(string(e.metrics)); err != nil {
		return nil, err
	}
	if err := e.trading.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) MetricsMode() MetricsMode { return e.metrics }

// TradingConfig returns the settings the engine was given. They are
// stored but not applied to synthesized positions.
func (e *Engine) TradingConfig() TradingConfig { return e.trading }

func (e *Engine) SetTradingConfig(tc TradingConfig) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	e.trading = tc
	return nil
}

// Initialize builds the first snapshot. The equity history is backfilled
// with historyLength points of an upward-biased random walk starting at
// seedBalance, spaced tickInterval apart and ending now.
func (e *Engine) Initialize(seedBalance decimal.Decimal, historyLength int, tickInterval time.Duration) (account.Snapshot, error) {
	if !seedBalance.IsPositive() {
		return account.Snapshot{}, fmt.Errorf("%w: seed balance must be positive (got %s)", ErrInvalidConfiguration, seedBalance)
	}
	if historyLength < 1 || historyLength > account.HistoryCap {
		return account.Snapshot{}, fmt.Errorf("%w: history length must be between 1 and %d (got %d)",
			ErrInvalidConfiguration, account.HistoryCap, historyLength)
	}
	if tickInterval <= 0 {
		return account.Snapshot{}, fmt.Errorf("%w: tick interval must be positive (got %s)", ErrInvalidConfiguration, tickInterval)
	}

	now := e.now()
	hist := make([]account.EquityPoint, 0, historyLength)
	bal := seedBalance
	for i := 0; i < historyLength; i++ {
		step := (e.rnd.Float64() - 0.45) * 100
		bal = bal.Add(decimal.NewFromFloat(step)).Round(2)
		hist = append(hist, account.EquityPoint{
			Time:    now.Add(-time.Duration(historyLength-1-i) * tickInterval),
			Balance: bal,
		})
	}

	snap := account.Snapshot{
		Mode:          account.ModePaper,
		Balance:       bal,
		SeedBalance:   seedBalance,
		EquityHistory: hist,
		OpenPositions: e.SynthesizePositions(),
		RecentTrades:  e.SynthesizeTrades(),
	}
	snap.Performance = e.DeriveMetrics(account.PerformanceMetrics{}, snap)
	return snap, nil
}

// Tick advances a running snapshot by one step. A snapshot that is not
// running is returned unchanged.
func (e *Engine) Tick(prev account.Snapshot) account.Snapshot {
	next := prev.Clone()
	if !prev.Running {
		return next
	}

	delta := (e.rnd.Float64() - 0.48) * 50
	bal := prev.Balance.Add(decimal.NewFromFloat(delta)).Round(2)

	hist := append(next.EquityHistory, account.EquityPoint{Time: e.now(), Balance: bal})
	if n := len(hist) - account.HistoryCap; n > 0 {
		hist = append([]account.EquityPoint(nil), hist[n:]...)
	}

	next.Balance = bal
	next.EquityHistory = hist
	next.OpenPositions = e.SynthesizePositions()
	next.RecentTrades = e.SynthesizeTrades()
	next.Performance = e.DeriveMetrics(prev.Performance, next)
	return next
}

// SetMode returns a copy of s with only the mode changed.
func SetMode(s account.Snapshot, mode account.Mode) account.Snapshot {
	out := s.Clone()
	out.Mode = mode
	return out
}

// ToggleRunning returns a copy of s with the running flag flipped.
func ToggleRunning(s account.Snapshot) account.Snapshot {
	out := s.Clone()
	out.Running = !s.Running
	return out
}
