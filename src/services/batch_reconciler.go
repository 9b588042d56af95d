package services

import (
	"context"
	"time"

	"github.com/livefire2015/ez-receivables/src/logger"
	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
)

// ReloadFunc refreshes the engine's list from the remote service
type ReloadFunc func(ctx context.Context) error

// BatchReconciler coordinates bulk mutations across many receivables.
// Each account mutation is an independent remote call; there is no
// cross-account atomicity. Per-account failures are recorded, never returned.
type BatchReconciler struct {
	payments     *PaymentService
	installments *InstallmentService
	journal      BatchJournal  // optional
	observer     BatchObserver // optional
	logger       zerolog.Logger
	now          func() time.Time

	receiveStrategy dispatchStrategy
	splitStrategy   dispatchStrategy
}

// NewBatchReconciler creates a reconciler. Bulk receive runs sequentially;
// bulk split runs concurrently with at most splitConcurrency calls in flight.
func NewBatchReconciler(
	payments *PaymentService,
	installments *InstallmentService,
	splitConcurrency int,
	log zerolog.Logger,
) *BatchReconciler {
	return &BatchReconciler{
		payments:        payments,
		installments:    installments,
		logger:          log,
		now:             time.Now,
		receiveStrategy: runSequential,
		splitStrategy:   runConcurrentAllSettled(splitConcurrency),
	}
}

// BatchRun is the input shared by both bulk operations
type BatchRun struct {
	Selection *Selection
	List      []models.Receivable // Last-loaded list the selection refers to
	Reload    ReloadFunc
}

// RunBulkReceive pays the full pending balance of every eligible selected
// receivable, one account at a time. Only an invalid config is returned as an
// error; everything else lands in the report.
func (b *BatchReconciler) RunBulkReceive(ctx context.Context, run BatchRun, cfg models.BulkReceiveConfig) (*models.BatchReport, error) {
	if err := validateRequest(models.ErrInvalidPayment, cfg); err != nil {
		return nil, err
	}

	report := models.NewBatchReport(models.BatchBulkReceive, b.now())
	eligible, ineligible := PartitionEligible(run.Selection.Resolve(run.List), report.StartedAt)
	report.Ineligible = ineligible

	tasks := make([]batchTask, 0, len(eligible))
	for _, r := range eligible {
		r := r
		req := FullPayment(&r, cfg)
		tasks = append(tasks, batchTask{
			receivable: r,
			amount:     req.Value,
			run: func(ctx context.Context) error {
				_, err := b.payments.Receive(ctx, &r, req)
				return err
			},
		})
	}

	return b.execute(ctx, report, run, tasks, b.receiveStrategy), nil
}

// RunBulkSplit splits every eligible selected receivable with the shared plan
// config. Plans use the balances of the last-loaded list, fixed when the batch
// starts. Calls are dispatched concurrently and all of them are awaited.
func (b *BatchReconciler) RunBulkSplit(ctx context.Context, run BatchRun, cfg models.InstallmentPlanConfig) (*models.BatchReport, error) {
	if err := ValidatePlanConfig(cfg); err != nil {
		return nil, err
	}

	report := models.NewBatchReport(models.BatchBulkSplit, b.now())
	eligible, ineligible := PartitionEligible(run.Selection.Resolve(run.List), report.StartedAt)
	report.Ineligible = ineligible

	tasks := make([]batchTask, 0, len(eligible))
	for _, r := range eligible {
		plan, planErr := BuildPlan(&r, cfg)
		tasks = append(tasks, batchTask{
			receivable: r,
			amount:     r.PendingAmount,
			run: func(ctx context.Context) error {
				if planErr != nil {
					return planErr
				}
				_, err := b.installments.Split(ctx, plan)
				return err
			},
		})
	}

	return b.execute(ctx, report, run, tasks, b.splitStrategy), nil
}

// execute dispatches the tasks, then reloads, clears the selection and
// records the report. The reload runs even when ctx is done.
func (b *BatchReconciler) execute(
	ctx context.Context,
	report *models.BatchReport,
	run BatchRun,
	tasks []batchTask,
	strategy dispatchStrategy,
) *models.BatchReport {
	log := logger.WithBatch(b.logger, report.ID.String(), string(report.Operation))
	log.Info().Int("eligible", len(tasks)).Int("ineligible", len(report.Ineligible)).Msg("batch started")

	report.Items = strategy(ctx, tasks)
	report.Tally()

	for _, item := range report.Items {
		if item.Result != models.ItemFailed {
			continue
		}
		event := log.Warn()
		if item.Ambiguous {
			event = log.Error()
		}
		event.Str("receivable_id", item.ReceivableID).
			Bool("ambiguous", item.Ambiguous).
			Str("error", item.Error).
			Msg("batch item failed")
	}

	reloadCtx := context.WithoutCancel(ctx)
	if run.Reload != nil {
		if err := run.Reload(reloadCtx); err != nil {
			report.ReloadError = err.Error()
			log.Error().Err(err).Msg("reload after batch failed")
		}
	}
	run.Selection.Clear()
	report.FinishedAt = b.now()

	if b.journal != nil {
		if err := b.journal.RecordBatch(reloadCtx, report); err != nil {
			log.Error().Err(err).Msg("failed to journal batch")
		}
	}
	if b.observer != nil {
		b.observer.ObserveBatch(report)
	}

	log.Info().
		Int("processed", report.Processed).
		Int("errored", report.Errored).
		Int("skipped", report.Skipped).
		Str("outcome", string(report.Outcome)).
		Str("total", report.Total.StringFixed(2)).
		Msg("batch finished")

	return report
}
