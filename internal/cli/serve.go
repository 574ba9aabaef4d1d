package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradesim/scheduler"
	"github.com/rustyeddy/tradesim/server"
)

func newServeCmd(rc *RootConfig) *cobra.Command {
	var (
		addr  string
		start bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulator with the dashboard API",
		Long: `Run the tick loop and serve the dashboard API and websocket stream.

The bot starts paused unless --start is given; use POST /api/bot/toggle
to start or stop it.

Example:
  tradesim serve --addr 127.0.0.1:8080 --start`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rc.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			interval, err := cfg.Simulation.Interval()
			if err != nil {
				return err
			}

			b, err := newBot(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := b.Close(); err != nil {
					log.WithError(err).Error("close journal")
				}
			}()

			if start {
				b.Toggle()
			}

			srv, err := server.New(b, server.Options{AllowedOrigins: cfg.Server.AllowedOrigins})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loop := &scheduler.Loop{
				Task: func(ctx context.Context, now time.Time) error {
					return b.Step(ctx)
				},
				Options: scheduler.Options{Interval: interval},
			}

			var wg sync.WaitGroup
			errCh := make(chan error, 2)

			wg.Add(2)
			go func() {
				defer wg.Done()
				if err := loop.Run(ctx); err != nil {
					errCh <- fmt.Errorf("tick loop: %w", err)
				}
				stop()
			}()
			go func() {
				defer wg.Done()
				if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
					errCh <- err
				}
				stop()
			}()

			log.WithFields(log.Fields{
				"addr":     cfg.Server.Addr,
				"interval": interval,
				"running":  b.Snapshot().Running,
			}).Info("tradesim serving")

			wg.Wait()
			close(errCh)

			log.Info("tradesim stopped")
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&start, "start", false, "Start the bot immediately")
	return cmd
}
