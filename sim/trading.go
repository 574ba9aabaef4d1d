package sim

import "fmt"

// TradingConfig carries the risk settings from the dashboard's settings
// dialog. The engine validates and keeps them but does not yet apply them
// to synthesized positions.
type TradingConfig struct {
	MaxOpenPositions int     `json:"max_open_positions" yaml:"max_open_positions"`
	StopLossPct      float64 `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	TakeProfitPct    float64 `json:"take_profit_pct" yaml:"take_profit_pct"`
}

func DefaultTradingConfig() TradingConfig {
	return TradingConfig{
		MaxOpenPositions: 3,
		StopLossPct:      2,
		TakeProfitPct:    5,
	}
}

func (c TradingConfig) Validate() error {
	if c.MaxOpenPositions < 1 {
		return fmt.Errorf("%w: trading.max_open_positions must be at least 1", ErrInvalidConfiguration)
	}
	if c.StopLossPct <= 0 || c.StopLossPct >= 100 {
		return fmt.Errorf("%w: trading.stop_loss_pct must be between 0 and 100", ErrInvalidConfiguration)
	}
	if c.TakeProfitPct <= 0 {
		return fmt.Errorf("%w: trading.take_profit_pct must be positive", ErrInvalidConfiguration)
	}
	return nil
}
