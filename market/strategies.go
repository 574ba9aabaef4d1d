package market

import "github.com/shopspring/decimal"

// Strategy names attached to synthesized positions.
var StrategyNames = []string{"RSI Mean Reversion", "MACD Trend Following", "MA Crossover"}

// StrategyCard is a row of the strategy catalog. The figures are fixed;
// nothing in the simulator evaluates strategies.
type StrategyCard struct {
	Name    string          `json:"name"`
	Active  bool            `json:"active"`
	Trades  int             `json:"trades"`
	WinRate float64         `json:"win_rate"`
	PnL     decimal.Decimal `json:"pnl"`
}

func Strategies() []StrategyCard {
	return []StrategyCard{
		{Name: "RSI Mean Reversion", Active: true, Trades: 15, WinRate: 66.7, PnL: decimal.RequireFromString("245.50")},
		{Name: "MACD Trend Following", Active: true, Trades: 12, WinRate: 58.3, PnL: decimal.RequireFromString("189.30")},
		{Name: "Bollinger Bands", Active: false, Trades: 0, WinRate: 0, PnL: decimal.Zero},
		{Name: "MA Crossover", Active: true, Trades: 8, WinRate: 75.0, PnL: decimal.RequireFromString("312.80")},
	}
}
