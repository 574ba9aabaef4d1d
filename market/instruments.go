// market/instruments.go
package market

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbols the simulator draws from when it synthesizes positions and
// closed trades.
var (
	PositionPairs = []string{"BTC/USDT", "ETH/USDT", "EUR/USD"}
	TradePairs    = []string{"BTC/USDT", "ETH/USDT", "SOL/USDT", "EUR/USD", "GBP/USD"}
)

type Kind string

const (
	Crypto Kind = "crypto"
	Forex  Kind = "forex"
)

// Quote is a market tile: last price and the 24h change in percent.
type Quote struct {
	Pair      string          `json:"pair"`
	Price     decimal.Decimal `json:"price"`
	ChangePct decimal.Decimal `json:"change_pct"`
}

func (q Quote) Up() bool { return !q.ChangePct.IsNegative() }

var quotes = map[Kind][]Quote{
	Crypto: {
		{Pair: "BTC/USDT", Price: decimal.RequireFromString("43250.50"), ChangePct: decimal.RequireFromString("2.45")},
		{Pair: "ETH/USDT", Price: decimal.RequireFromString("2280.75"), ChangePct: decimal.RequireFromString("-1.23")},
		{Pair: "SOL/USDT", Price: decimal.RequireFromString("98.45"), ChangePct: decimal.RequireFromString("5.67")},
	},
	Forex: {
		{Pair: "EUR/USD", Price: decimal.RequireFromString("1.0845"), ChangePct: decimal.RequireFromString("0.15")},
		{Pair: "GBP/USD", Price: decimal.RequireFromString("1.2730"), ChangePct: decimal.RequireFromString("-0.08")},
		{Pair: "USD/JPY", Price: decimal.RequireFromString("148.25"), ChangePct: decimal.RequireFromString("0.32")},
	},
}

// Quotes returns the tiles for a market. The empty kind means crypto.
func Quotes(kind string) ([]Quote, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))
	if k == "" {
		k = Crypto
	}
	qs, ok := quotes[k]
	if !ok {
		return nil, fmt.Errorf("unknown market: %s", kind)
	}
	out := make([]Quote, len(qs))
	copy(out, qs)
	return out, nil
}
