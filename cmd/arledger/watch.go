package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/livefire2015/ez-receivables/src/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload periodically and export section gauges on /metrics",
	Long: `Reloads the receivable list every engine.watch_interval, logs status
drift, and serves Prometheus metrics on metrics.addr until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("interval", 0, "Override engine.watch_interval")
	watchCmd.Flags().String("metrics-addr", "", "Override metrics.addr")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	interval := cfg.Engine.WatchInterval
	if v, _ := cmd.Flags().GetDuration("interval"); v > 0 {
		interval = v
	}
	addr := cfg.Metrics.Addr
	if v, _ := cmd.Flags().GetString("metrics-addr"); v != "" {
		addr = v
	}

	log := logger.WithComponent("watch")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			refresh(gctx, cmd, a)
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	return g.Wait()
}

// refresh reloads and publishes section gauges. Failures are logged and
// retried on the next tick.
func refresh(ctx context.Context, cmd *cobra.Command, a *app) {
	log := logger.WithComponent("watch")

	if err := a.load(ctx, cmd); err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("reload failed")
		}
		return
	}

	sections := a.engine.GetSections()
	for _, s := range sections {
		a.metrics.SetSection(s.Status, s.Count(), s.Total)
	}
	log.Info().
		Int("receivables", len(a.engine.Receivables())).
		Int("visible", len(a.engine.GetFilteredList())).
		Msg("ledger refreshed")
}
