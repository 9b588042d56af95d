package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/livefire2015/ez-receivables/src/client"
	"github.com/livefire2015/ez-receivables/src/config"
	"github.com/livefire2015/ez-receivables/src/logger"
	"github.com/livefire2015/ez-receivables/src/metrics"
	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/livefire2015/ez-receivables/src/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	cfg    *config.Config
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "arledger",
	Short: "Accounts-receivable ledger client",
	Long: `arledger works the receivables of a remote ledger service: it lists them
grouped by lifecycle status, records payments and interest, and runs bulk
receive and installment split batches over a selection.

Configuration is read from configs/config.yaml and ARLEDGER_* environment
variables, e.g. ARLEDGER_REMOTE__BASE_URL.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("status", "all", "Status filter: all, received, pending, overdue, partially_paid, installment_plan")
	flags.StringP("query", "q", "", "Match client name or notes")
	flags.String("date-field", string(models.DateFilterDueDate), "Date the range applies to: due_date or last_payment_date")
	flags.String("from", "", "Range start (YYYY-MM-DD)")
	flags.String("to", "", "Range end (YYYY-MM-DD)")
	flags.StringP("output", "o", "table", "Output format: table or json")
}

// app holds everything a command needs, built from the loaded config
type app struct {
	engine  *services.LedgerEngine
	metrics *metrics.Metrics
	reg     *prometheus.Registry
	journal *services.PostgresBatchJournal
	closers []func() error
}

func newApp(ctx context.Context) (*app, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("configuration unavailable: %w", cfgErr)
	}
	log := logger.WithComponent("arledger")
	cfg.LogSummary(log)

	a := &app{reg: prometheus.NewRegistry()}
	a.metrics = metrics.New(a.reg)

	var ledger services.LedgerClient
	httpClient, err := client.NewHTTPLedgerClient(cfg.ClientConfig(),
		client.WithCallObserver(a.metrics),
		client.WithLogger(logger.WithComponent("client")),
	)
	if err != nil {
		return nil, err
	}
	ledger = httpClient

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, cache will fall through")
		}
		ledger = client.NewCachedLedgerClient(ledger, rdb, cfg.Redis.TTL,
			client.WithCachePrefix(cfg.Redis.Prefix),
			client.WithCacheObserver(a.metrics),
			client.WithCacheLogger(logger.WithComponent("cache")),
		)
	}

	opts := []services.EngineOption{
		services.WithLogger(logger.WithComponent("engine")),
		services.WithObserver(a.metrics),
		services.WithSplitConcurrency(cfg.Engine.SplitConcurrency),
		services.WithRemoteFiltering(cfg.Engine.RemoteFiltering),
	}

	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		a.closers = append(a.closers, db.Close)

		a.journal = services.NewPostgresBatchJournal(db)
		if err := a.journal.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, services.WithJournal(a.journal))
	}

	a.engine = services.NewLedgerEngine(ledger, opts...)
	return a, nil
}

// Close releases connections in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log := logger.WithComponent("arledger")
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

// load fetches the list and applies the filter flags
func (a *app) load(ctx context.Context, cmd *cobra.Command) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	if cfg.Engine.RemoteFiltering {
		// SetFilter reloads with the filter forwarded
		return a.engine.SetFilter(ctx, filter)
	}
	if err := a.engine.Load(ctx); err != nil {
		return err
	}
	return a.engine.SetFilter(ctx, filter)
}

func filterFromFlags(cmd *cobra.Command) (models.ReceivableFilter, error) {
	flags := cmd.Flags()
	status, _ := flags.GetString("status")
	query, _ := flags.GetString("query")
	field, _ := flags.GetString("date-field")
	fromStr, _ := flags.GetString("from")
	toStr, _ := flags.GetString("to")

	filter := models.ReceivableFilter{
		Status:   status,
		Query:    query,
		DateMode: models.DateFilterMode(field),
	}
	if fromStr != "" {
		from, err := models.ParseDate(fromStr)
		if err != nil {
			return filter, fmt.Errorf("invalid --from: %w", err)
		}
		filter.From = &from
	}
	if toStr != "" {
		to, err := models.ParseDate(toStr)
		if err != nil {
			return filter, fmt.Errorf("invalid --to: %w", err)
		}
		filter.To = &to
	}
	return filter, nil
}

// selectTargets selects the given ids, or every visible receivable in the
// section named by --section when no ids are given
func selectTargets(cmd *cobra.Command, engine *services.LedgerEngine, ids []string) error {
	section, _ := cmd.Flags().GetString("section")
	if len(ids) == 0 && section == "" {
		return errors.New("pass receivable ids or --section")
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := engine.ToggleSelection(id); err != nil {
			return err
		}
	}
	if section != "" {
		status := models.ReceivableStatus("")
		if section != "all" {
			parsed, err := models.ParseStatus(section)
			if err != nil {
				return fmt.Errorf("invalid --section: %w", err)
			}
			status = parsed
		}
		engine.SelectAllVisible(status)
	}
	return nil
}

func outputJSON(cmd *cobra.Command) bool {
	out, _ := cmd.Flags().GetString("output")
	return strings.EqualFold(out, "json")
}
