package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/market"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// Summary writes the status and performance cards.
func Summary(w io.Writer, s account.Snapshot) {
	status := "Paused"
	if s.Running {
		status = "Active"
	}
	p := s.Performance

	table := newTable(w, "Metric", "Value")
	table.AppendBulk([][]string{
		{"Status", status},
		{"Mode", strings.ToUpper(string(s.Mode))},
		{"Balance", Money(s.Balance)},
		{"Total P/L", SignedMoney(p.TotalPnL)},
		{"Return", SignedPct(p.ReturnPct)},
		{"Win Rate", fmt.Sprintf("%.1f%% (%d/%d trades)", p.WinRate, p.WinningTrades, p.TotalTrades)},
		{"Open Positions", fmt.Sprintf("%d", len(s.OpenPositions))},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", p.SharpeRatio)},
	})
	table.Render()
}

func Positions(w io.Writer, ps []account.Position) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "No open positions")
		return
	}
	table := newTable(w, "Pair", "Side", "Strategy", "Entry", "Current", "P/L", "Return")
	for _, pos := range ps {
		table.Append([]string{
			pos.Pair,
			strings.ToUpper(string(pos.Action)),
			pos.Strategy,
			Money(pos.EntryPrice),
			Money(pos.CurrentPrice),
			SignedMoney(pos.UnrealizedPnL),
			SignedPct(pos.ReturnPct().InexactFloat64()),
		})
	}
	table.Render()
}

func Trades(w io.Writer, ts []account.Trade) {
	if len(ts) == 0 {
		fmt.Fprintln(w, "No recent trades")
		return
	}
	table := newTable(w, "Pair", "Side", "Closed", "P/L", "Reason")
	for _, t := range ts {
		table.Append([]string{
			t.Pair,
			strings.ToUpper(string(t.Action)),
			t.ClosedAgoLabel(),
			SignedMoney(t.RealizedPnL),
			t.CloseReason.Label(),
		})
	}
	table.Render()
}

func Strategies(w io.Writer, cards []market.StrategyCard) {
	table := newTable(w, "Strategy", "Active", "Trades", "Win Rate", "P/L")
	for _, c := range cards {
		active := "no"
		if c.Active {
			active = "yes"
		}
		table.Append([]string{
			c.Name,
			active,
			fmt.Sprintf("%d", c.Trades),
			fmt.Sprintf("%.1f%%", c.WinRate),
			SignedMoney(c.PnL),
		})
	}
	table.Render()
}

func Markets(w io.Writer, qs []market.Quote) {
	table := newTable(w, "Pair", "Price", "24h")
	for _, q := range qs {
		table.Append([]string{q.Pair, Price(q.Price), Change(q.ChangePct)})
	}
	table.Render()
}

// Dashboard writes the full terminal view of s.
func Dashboard(w io.Writer, s account.Snapshot) {
	Summary(w, s)
	fmt.Fprintln(w, "\nOpen Positions:")
	Positions(w, s.OpenPositions)
	fmt.Fprintln(w, "\nRecent Trades:")
	Trades(w, s.RecentTrades)
}
