// account/account.go
package account

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryCap is the maximum number of equity points a snapshot keeps.
const HistoryCap = 50

type Mode string

const (
	ModePaper Mode = "paper"
	ModeLive  Mode = "live"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePaper, ModeLive:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want paper or live)", s)
	}
}

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

type CloseReason string

const (
	TakeProfit CloseReason = "take_profit"
	StopLoss   CloseReason = "stop_loss"
	Manual     CloseReason = "manual"
	SignalExit CloseReason = "signal_exit"
)

// CloseReasons lists every reason a synthesized trade can close with.
var CloseReasons = []CloseReason{TakeProfit, StopLoss, Manual, SignalExit}

// Label is the human form shown on trade cards.
func (r CloseReason) Label() string {
	switch r {
	case TakeProfit:
		return "Take Profit"
	case StopLoss:
		return "Stop Loss"
	case Manual:
		return "Manual Close"
	case SignalExit:
		return "Signal Exit"
	}
	return string(r)
}

type EquityPoint struct {
	Time    time.Time       `json:"time"`
	Balance decimal.Decimal `json:"balance"`
}

// Position is a synthetic open exposure. Positions carry no identity
// between ticks.
type Position struct {
	Pair          string          `json:"pair"`
	Action        Side            `json:"action"`
	Strategy      string          `json:"strategy"`
	EntryPrice    decimal.Decimal `json:"entry_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
}

// ReturnPct is the unrealized P/L as a percentage of the entry price.
func (p Position) ReturnPct() decimal.Decimal {
	if p.EntryPrice.IsZero() {
		return decimal.Zero
	}
	return p.UnrealizedPnL.Div(p.EntryPrice).Mul(decimal.NewFromInt(100))
}

type Trade struct {
	Pair        string          `json:"pair"`
	Action      Side            `json:"action"`
	ClosedAgo   time.Duration   `json:"closed_ago"`
	RealizedPnL decimal.Decimal `json:"realized_pnl"`
	CloseReason CloseReason     `json:"close_reason"`
}

// ClosedAgoLabel renders the recency as whole hours, e.g. "3h ago".
func (t Trade) ClosedAgoLabel() string {
	return fmt.Sprintf("%dh ago", int(t.ClosedAgo/time.Hour))
}

// MarshalJSON adds closed_ago_label next to the raw duration.
func (t Trade) MarshalJSON() ([]byte, error) {
	type trade Trade
	return json.Marshal(struct {
		trade
		ClosedAgoLabel string `json:"closed_ago_label"`
	}{trade(t), t.ClosedAgoLabel()})
}

type PerformanceMetrics struct {
	TotalTrades   int             `json:"total_trades"`
	WinningTrades int             `json:"winning_trades"`
	TotalPnL      decimal.Decimal `json:"total_pnl"`
	WinRate       float64         `json:"win_rate"`
	SharpeRatio   float64         `json:"sharpe_ratio"`
	ReturnPct     float64         `json:"return_pct"`
}

// Snapshot is a point-in-time value of the simulated account. Snapshots
// are treated as immutable; every transition produces a new one.
type Snapshot struct {
	Running       bool               `json:"running"`
	Mode          Mode               `json:"mode"`
	Balance       decimal.Decimal    `json:"balance"`
	SeedBalance   decimal.Decimal    `json:"seed_balance"`
	EquityHistory []EquityPoint      `json:"equity_history"`
	OpenPositions []Position         `json:"open_positions"`
	RecentTrades  []Trade            `json:"recent_trades"`
	Performance   PerformanceMetrics `json:"performance"`
}

// Clone returns a deep copy. The copy shares no slice backing arrays with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.EquityHistory = make([]EquityPoint, len(s.EquityHistory))
	copy(out.EquityHistory, s.EquityHistory)
	out.OpenPositions = make([]Position, len(s.OpenPositions))
	copy(out.OpenPositions, s.OpenPositions)
	out.RecentTrades = make([]Trade, len(s.RecentTrades))
	copy(out.RecentTrades, s.RecentTrades)
	return out
}

// LastEquity returns the most recent equity point, if any.
func (s Snapshot) LastEquity() (EquityPoint, bool) {
	if len(s.EquityHistory) == 0 {
		return EquityPoint{}, false
	}
	return s.EquityHistory[len(s.EquityHistory)-1], true
}

// EquitySince returns the equity points no older than d before the latest
// point. A non-positive d returns the whole history.
func (s Snapshot) EquitySince(d time.Duration) []EquityPoint {
	last, ok := s.LastEquity()
	if !ok {
		return []EquityPoint{}
	}
	if d <= 0 {
		out := make([]EquityPoint, len(s.EquityHistory))
		copy(out, s.EquityHistory)
		return out
	}
	cutoff := last.Time.Add(-d)
	out := []EquityPoint{}
	for _, p := range s.EquityHistory {
		if !p.Time.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}
