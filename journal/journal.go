// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/internal/id"
)

// TradeRecord is one synthesized closed trade as it was reported by a tick.
type TradeRecord struct {
	TradeID    string
	Pair       string
	Side       string
	Mode       string
	CloseTime  time.Time
	RealizedPL float64
	Reason     string
}

// EquitySnapshot is the account summary written once per tick.
type EquitySnapshot struct {
	Time          time.Time
	Mode          string
	Balance       float64
	TotalPL       float64
	WinRate       float64
	TotalTrades   int
	OpenPositions int
}

// Journal is a write-only audit log of ticks. Nothing reads it back to
// restore an account.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Records converts a snapshot into the rows a tick produces. Trade close
// times are the equity timestamp minus each trade's recency.
func Records(s account.Snapshot) (EquitySnapshot, []TradeRecord) {
	var at time.Time
	if last, ok := s.LastEquity(); ok {
		at = last.Time
	}

	eq := EquitySnapshot{
		Time:          at,
		Mode:          string(s.Mode),
		Balance:       s.Balance.InexactFloat64(),
		TotalPL:       s.Performance.TotalPnL.InexactFloat64(),
		WinRate:       s.Performance.WinRate,
		TotalTrades:   s.Performance.TotalTrades,
		OpenPositions: len(s.OpenPositions),
	}

	trades := make([]TradeRecord, 0, len(s.RecentTrades))
	for _, t := range s.RecentTrades {
		closed := at.Add(-t.ClosedAgo)
		trades = append(trades, TradeRecord{
			TradeID:    id.At(closed),
			Pair:       t.Pair,
			Side:       string(t.Action),
			Mode:       string(s.Mode),
			CloseTime:  closed,
			RealizedPL: t.RealizedPnL.InexactFloat64(),
			Reason:     string(t.CloseReason),
		})
	}
	return eq, trades
}

// RecordSnapshot writes the equity row and every recent trade of s.
func RecordSnapshot(j Journal, s account.Snapshot) error {
	eq, trades := Records(s)
	if err := j.RecordEquity(eq); err != nil {
		return err
	}
	for _, t := range trades {
		if err := j.RecordTrade(t); err != nil {
			return err
		}
	}
	return nil
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error     { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }
