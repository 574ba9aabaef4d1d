package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/rustyeddy/tradesim/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memJournal struct {
	trades    []TradeRecord
	equity    []EquitySnapshot
	failTrade bool
}

func (m *memJournal) RecordTrade(r TradeRecord) error {
	if m.failTrade {
		return errors.New("disk full")
	}
	m.trades = append(m.trades, r)
	return nil
}

func (m *memJournal) RecordEquity(e EquitySnapshot) error {
	m.equity = append(m.equity, e)
	return nil
}

func (m *memJournal) Close() error { return nil }

func snapshot() account.Snapshot {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return account.Snapshot{
		Running:     true,
		Mode:        account.ModeLive,
		Balance:     decimal.RequireFromString("10050.25"),
		SeedBalance: decimal.NewFromInt(10000),
		EquityHistory: []account.EquityPoint{
			{Time: at, Balance: decimal.RequireFromString("10050.25")},
		},
		OpenPositions: []account.Position{{Pair: "BTC/USDT"}},
		RecentTrades: []account.Trade{
			{Pair: "ETH/USDT", Action: account.Buy, ClosedAgo: 2 * time.Hour, RealizedPnL: decimal.RequireFromString("12.34"), CloseReason: account.TakeProfit},
			{Pair: "GBP/USD", Action: account.Sell, ClosedAgo: time.Hour, RealizedPnL: decimal.RequireFromString("-5"), CloseReason: account.StopLoss},
		},
		Performance: account.PerformanceMetrics{
			TotalTrades: 20,
			TotalPnL:    decimal.RequireFromString("50.25"),
			WinRate:     65,
		},
	}
}

func TestRecords(t *testing.T) {
	s := snapshot()
	eq, trades := Records(s)

	at := s.EquityHistory[0].Time
	assert.True(t, eq.Time.Equal(at))
	assert.Equal(t, "live", eq.Mode)
	assert.InDelta(t, 10050.25, eq.Balance, 1e-9)
	assert.InDelta(t, 50.25, eq.TotalPL, 1e-9)
	assert.Equal(t, 20, eq.TotalTrades)
	assert.Equal(t, 1, eq.OpenPositions)

	require.Len(t, trades, 2)
	assert.True(t, trades[0].CloseTime.Equal(at.Add(-2*time.Hour)))
	assert.Equal(t, "buy", trades[0].Side)
	assert.Equal(t, "take_profit", trades[0].Reason)
	assert.InDelta(t, -5.0, trades[1].RealizedPL, 1e-9)
	assert.NotEqual(t, trades[0].TradeID, trades[1].TradeID)
}

func TestRecordSnapshot(t *testing.T) {
	m := &memJournal{}
	require.NoError(t, RecordSnapshot(m, snapshot()))
	assert.Len(t, m.equity, 1)
	assert.Len(t, m.trades, 2)

	failing := &memJournal{failTrade: true}
	assert.Error(t, RecordSnapshot(failing, snapshot()))
}

func TestRecordSnapshotSQLite(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	s := snapshot()
	require.NoError(t, RecordSnapshot(j, s))

	at := s.EquityHistory[0].Time
	trades, err := j.ListTradesClosedBetween(at.Add(-3*time.Hour), at)
	require.NoError(t, err)
	assert.Len(t, trades, 2)

	eq, err := j.ListEquityBetween(at, at.Add(time.Second))
	require.NoError(t, err)
	assert.Len(t, eq, 1)
}

func TestNop(t *testing.T) {
	var j Journal = Nop{}
	assert.NoError(t, RecordSnapshot(j, snapshot()))
	assert.NoError(t, j.Close())
}
