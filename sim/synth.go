package sim

import (
	"time"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/market"
	"github.com/shopspring/decimal"
)

// RecentTradeCount is how many closed trades every tick reports.
const RecentTradeCount = 5

// SynthesizePositions returns between 0 and 2 open positions with entry
// prices in [1000, 1500) and marks within 50 of the entry.
func (e *Engine) SynthesizePositions() []account.Position {
	n := e.rnd.Intn(3)
	out := make([]account.Position, 0, n)
	for i := 0; i < n; i++ {
		entry := decimal.NewFromFloat(1000 + e.rnd.Float64()*500).Round(2)
		current := entry.Add(decimal.NewFromFloat((e.rnd.Float64() - 0.5) * 100)).Round(2)
		out = append(out, account.Position{
			Pair:          pick(e.rnd, market.PositionPairs),
			Action:        e.side(),
			Strategy:      pick(e.rnd, market.StrategyNames),
			EntryPrice:    entry,
			CurrentPrice:  current,
			UnrealizedPnL: current.Sub(entry),
		})
	}
	return out
}

// SynthesizeTrades returns exactly RecentTradeCount closed trades. P/L is
// drawn from (U-0.3)*100, so roughly 70% of trades are winners.
func (e *Engine) SynthesizeTrades() []account.Trade {
	out := make([]account.Trade, 0, RecentTradeCount)
	for i := 0; i < RecentTradeCount; i++ {
		pnl := decimal.NewFromFloat((e.rnd.Float64() - 0.3) * 100).Round(2)
		out = append(out, account.Trade{
			Pair:        pick(e.rnd, market.TradePairs),
			Action:      e.side(),
			ClosedAgo:   time.Duration(e.rnd.Intn(12)+1) * time.Hour,
			RealizedPnL: pnl,
			CloseReason: account.CloseReasons[e.rnd.Intn(len(account.CloseReasons))],
		})
	}
	return out
}

func (e *Engine) side() account.Side {
	if e.rnd.Float64() > 0.5 {
		return account.Buy
	}
	return account.Sell
}

func pick(r Rand, xs []string) string {
	return xs[r.Intn(len(xs))]
}
