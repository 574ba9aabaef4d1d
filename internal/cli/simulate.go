package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradesim/market"
	"github.com/rustyeddy/tradesim/render"
)

func newSimulateCmd(rc *RootConfig) *cobra.Command {
	var (
		ticks      int
		strategies bool
		markets    string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run ticks headless and print the dashboard",
		Long: `Initialize an account, run N ticks back to back and print the
resulting dashboard as tables. Ticks do not wait for the tick interval.

Examples:
  tradesim simulate --ticks 100
  TRADESIM_SEED=42 tradesim simulate --ticks 20 --strategies --markets crypto`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks < 0 {
				return fmt.Errorf("--ticks must not be negative (got %d)", ticks)
			}

			b, err := newBot(rc.Config)
			if err != nil {
				return err
			}
			defer b.Close()

			if ticks > 0 {
				b.Toggle()
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			for i := 0; i < ticks; i++ {
				if err := b.Step(ctx); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			render.Dashboard(out, b.Snapshot())

			if strategies {
				fmt.Fprintln(out, "\nStrategies:")
				render.Strategies(out, market.Strategies())
			}
			if markets != "" {
				qs, err := market.Quotes(markets)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nMarkets (%s):\n", markets)
				render.Markets(out, qs)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 10, "Number of ticks to run")
	cmd.Flags().BoolVar(&strategies, "strategies", false, "Also print the strategy catalog")
	cmd.Flags().StringVar(&markets, "markets", "", "Also print market tiles: crypto|forex")
	return cmd
}
