package sim

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/rustyeddy/tradesim/account"
	"github.com/shopspring/decimal"
)

// DeriveMetrics computes the performance block for s. TotalPnL is always
// s.Balance - s.SeedBalance.
//
// In cumulative mode the trades in s.RecentTrades are added to the totals
// in prev, the metrics of the snapshot s was derived from. The result
// depends only on its arguments; s.Performance is ignored.
func (e *Engine) DeriveMetrics(prev account.PerformanceMetrics, s account.Snapshot) account.PerformanceMetrics {
	var m account.PerformanceMetrics

	switch e.metrics {
	case MetricsCumulative:
		m.TotalTrades = prev.TotalTrades + len(s.RecentTrades)
		m.WinningTrades = prev.WinningTrades
		for _, t := range s.RecentTrades {
			if t.RealizedPnL.IsPositive() {
				m.WinningTrades++
			}
		}
		m.SharpeRatio = SharpeRatio(s.EquityHistory)
	default:
		m.TotalTrades = e.rnd.Intn(50) + 10
		m.WinningTrades = int(math.Floor(float64(m.TotalTrades) * (0.55 + e.rnd.Float64()*0.15)))
		m.SharpeRatio = 1.2 + e.rnd.Float64()*0.8
	}

	m.TotalPnL = s.Balance.Sub(s.SeedBalance)
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	}
	if s.SeedBalance.IsPositive() {
		m.ReturnPct = m.TotalPnL.Div(s.SeedBalance).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return m
}

// SharpeRatio is the mean per-point return of the equity series divided
// by its sample standard deviation. It is not annualized. Fewer than two
// returns, or a flat series, yields 0.
func SharpeRatio(hist []account.EquityPoint) float64 {
	if len(hist) < 3 {
		return 0
	}
	returns := make(stats.Float64Data, 0, len(hist)-1)
	for i := 1; i < len(hist); i++ {
		prev := hist[i-1].Balance
		if prev.IsZero() {
			continue
		}
		r := hist[i].Balance.Sub(prev).Div(prev).InexactFloat64()
		returns = append(returns, r)
	}
	if len(returns) < 2 {
		return 0
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return 0
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil || sd == 0 {
		return 0
	}
	return mean / sd
}
