package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/journal"
	"github.com/rustyeddy/tradesim/market"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMoney(t *testing.T) {
	tests := []struct {
		in     string
		money  string
		signed string
	}{
		{"10245.3", "$10,245.30", "+$10,245.30"},
		{"0", "$0.00", "+$0.00"},
		{"-12.5", "-$12.50", "-$12.50"},
		{"1234567.891", "$1,234,567.89", "+$1,234,567.89"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.money, Money(dec(tt.in)))
			assert.Equal(t, tt.signed, SignedMoney(dec(tt.in)))
		})
	}
}

func TestSignedPct(t *testing.T) {
	assert.Equal(t, "+2.51%", SignedPct(2.5075))
	assert.Equal(t, "-0.40%", SignedPct(-0.4))
	assert.Equal(t, "+0.00%", SignedPct(0))
}

func TestPriceAndChange(t *testing.T) {
	assert.Equal(t, "$43,250.50", Price(dec("43250.50")))
	assert.Equal(t, "$1.0845", Price(dec("1.0845")))
	assert.Equal(t, "$148", Price(dec("148")))
	assert.Equal(t, "▲ 2.45%", Change(dec("2.45")))
	assert.Equal(t, "▼ 1.23%", Change(dec("-1.23")))
}

func snapshot() account.Snapshot {
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return account.Snapshot{
		Running:     true,
		Mode:        account.ModePaper,
		Balance:     dec("10250.75"),
		SeedBalance: dec("10000"),
		EquityHistory: []account.EquityPoint{
			{Time: t0, Balance: dec("10250.75")},
		},
		OpenPositions: []account.Position{{
			Pair: "BTC/USDT", Action: account.Buy, Strategy: "MA Crossover",
			EntryPrice: dec("1200"), CurrentPrice: dec("1224"), UnrealizedPnL: dec("24"),
		}},
		RecentTrades: []account.Trade{{
			Pair: "SOL/USDT", Action: account.Sell, ClosedAgo: 3 * time.Hour,
			RealizedPnL: dec("-12.5"), CloseReason: account.StopLoss,
		}},
		Performance: account.PerformanceMetrics{
			TotalTrades: 20, WinningTrades: 13, TotalPnL: dec("250.75"),
			WinRate: 65, SharpeRatio: 1.456, ReturnPct: 2.5075,
		},
	}
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	Dashboard(&buf, snapshot())
	out := buf.String()

	for _, want := range []string{
		"Active", "PAPER", "$10,250.75", "+$250.75", "+2.51%",
		"65.0% (13/20 trades)", "1.46",
		"BTC/USDT", "BUY", "MA Crossover", "$1,200.00", "+$24.00", "+2.00%",
		"SOL/USDT", "SELL", "3h ago", "-$12.50", "Stop Loss",
	} {
		assert.Contains(t, out, want)
	}
}

func TestDashboardEmpty(t *testing.T) {
	s := snapshot()
	s.Running = false
	s.OpenPositions = nil
	s.RecentTrades = nil

	var buf bytes.Buffer
	Dashboard(&buf, s)
	out := buf.String()
	assert.Contains(t, out, "Paused")
	assert.Contains(t, out, "No open positions")
	assert.Contains(t, out, "No recent trades")
}

func TestCatalogTables(t *testing.T) {
	var buf bytes.Buffer
	Strategies(&buf, market.Strategies())
	assert.Contains(t, buf.String(), "Bollinger Bands")
	assert.Contains(t, buf.String(), "+$312.80")

	buf.Reset()
	qs, err := market.Quotes("forex")
	assert.NoError(t, err)
	Markets(&buf, qs)
	assert.Contains(t, buf.String(), "$1.2730")
	assert.Contains(t, buf.String(), "▼ 0.08%")
}

func TestJournalTables(t *testing.T) {
	closed := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	TradeRecords(&buf, []journal.TradeRecord{{
		TradeID: "01HKZ", CloseTime: closed, Pair: "ETH/USDT", Side: "buy",
		Mode: "paper", RealizedPL: 41.2, Reason: "take_profit",
	}})
	out := buf.String()
	assert.Contains(t, out, "01HKZ")
	assert.Contains(t, out, "ETH/USDT")
	assert.Contains(t, out, "+$41.20")
	assert.Contains(t, out, "Take Profit")

	buf.Reset()
	EquityRecords(&buf, []journal.EquitySnapshot{{
		Time: closed, Mode: "live", Balance: 10250.75, TotalPL: -3.5, WinRate: 62.5, TotalTrades: 16,
	}})
	out = buf.String()
	assert.Contains(t, out, "LIVE")
	assert.Contains(t, out, "$10,250.75")
	assert.Contains(t, out, "-$3.50")
	assert.Contains(t, out, "62.5%")

	buf.Reset()
	TradeRecords(&buf, nil)
	assert.Contains(t, buf.String(), "No trades")

	buf.Reset()
	Trade(&buf, journal.TradeRecord{TradeID: "01HKZ", Reason: "manual", RealizedPL: 1})
	assert.Contains(t, buf.String(), "Manual Close")
}
