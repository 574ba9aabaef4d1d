package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/journal"
)

const stamp = "2006-01-02 15:04:05"

// TradeRecords writes journaled trades in local time.
func TradeRecords(w io.Writer, recs []journal.TradeRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No trades")
		return
	}
	table := newTable(w, "Trade ID", "Closed", "Pair", "Side", "Mode", "P/L", "Reason")
	for _, r := range recs {
		table.Append([]string{
			r.TradeID,
			r.CloseTime.Local().Format(stamp),
			r.Pair,
			strings.ToUpper(r.Side),
			strings.ToUpper(r.Mode),
			SignedMoney(decimal.NewFromFloat(r.RealizedPL)),
			account.CloseReason(r.Reason).Label(),
		})
	}
	table.Render()
}

func EquityRecords(w io.Writer, recs []journal.EquitySnapshot) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No equity rows")
		return
	}
	table := newTable(w, "Time", "Mode", "Balance", "Total P/L", "Win Rate", "Trades", "Open")
	for _, e := range recs {
		table.Append([]string{
			e.Time.Local().Format(stamp),
			strings.ToUpper(e.Mode),
			Money(decimal.NewFromFloat(e.Balance)),
			SignedMoney(decimal.NewFromFloat(e.TotalPL)),
			fmt.Sprintf("%.1f%%", e.WinRate),
			fmt.Sprintf("%d", e.TotalTrades),
			fmt.Sprintf("%d", e.OpenPositions),
		})
	}
	table.Render()
}

// Trade writes a single journaled trade as a key/value table.
func Trade(w io.Writer, r journal.TradeRecord) {
	table := newTable(w, "Field", "Value")
	table.AppendBulk([][]string{
		{"Trade ID", r.TradeID},
		{"Closed", r.CloseTime.Local().Format(time.RFC3339)},
		{"Pair", r.Pair},
		{"Side", strings.ToUpper(r.Side)},
		{"Mode", strings.ToUpper(r.Mode)},
		{"Realized P/L", SignedMoney(decimal.NewFromFloat(r.RealizedPL))},
		{"Reason", account.CloseReason(r.Reason).Label()},
	})
	table.Render()
}
