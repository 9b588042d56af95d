package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerEngine is the client-side orchestrator over the remote ledger. It
// owns the last-loaded list, the active filter and the selection.
// It is driven from a single control flow and is not safe for concurrent use.
type LedgerEngine struct {
	client       LedgerClient
	normalizer   *Normalizer
	payments     *PaymentService
	interest     *InterestService
	installments *InstallmentService
	reconciler   *BatchReconciler
	observer     BatchObserver
	logger       zerolog.Logger
	now          func() time.Time

	remoteFiltering bool

	filter    models.ReceivableFilter
	list      []models.Receivable
	selection *Selection
	loadedAt  time.Time
}

// EngineOption configures a LedgerEngine
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger           zerolog.Logger
	now              func() time.Time
	journal          BatchJournal
	observer         BatchObserver
	splitConcurrency int
	remoteFiltering  bool
}

// WithLogger sets the engine's logger
func WithLogger(l zerolog.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = l }
}

// WithClock overrides the engine's notion of today
func WithClock(now func() time.Time) EngineOption {
	return func(o *engineOptions) { o.now = now }
}

// WithJournal records every batch report in j
func WithJournal(j BatchJournal) EngineOption {
	return func(o *engineOptions) { o.journal = j }
}

// WithObserver reports batches and drift to obs
func WithObserver(obs BatchObserver) EngineOption {
	return func(o *engineOptions) { o.observer = obs }
}

// WithSplitConcurrency bounds the number of split calls in flight; 0 is unbounded
func WithSplitConcurrency(n int) EngineOption {
	return func(o *engineOptions) { o.splitConcurrency = n }
}

// WithRemoteFiltering forwards the text and date axes of the filter to the
// remote list call
func WithRemoteFiltering(enabled bool) EngineOption {
	return func(o *engineOptions) { o.remoteFiltering = enabled }
}

// NewLedgerEngine wires the engine's services around client
func NewLedgerEngine(client LedgerClient, opts ...EngineOption) *LedgerEngine {
	o := engineOptions{
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	normalizer := NewNormalizer(o.logger.With().Str("component", "normalizer").Logger())
	payments := NewPaymentService(client, normalizer, o.logger.With().Str("component", "payments").Logger())
	payments.now = o.now
	interest := NewInterestService(client, normalizer, o.logger.With().Str("component", "interest").Logger())
	interest.now = o.now
	installments := NewInstallmentService(client, normalizer, o.logger.With().Str("component", "installments").Logger())

	reconciler := NewBatchReconciler(payments, installments, o.splitConcurrency,
		o.logger.With().Str("component", "batch").Logger())
	reconciler.now = o.now
	reconciler.journal = o.journal
	reconciler.observer = o.observer

	return &LedgerEngine{
		client:          client,
		normalizer:      normalizer,
		payments:        payments,
		interest:        interest,
		installments:    installments,
		reconciler:      reconciler,
		observer:        o.observer,
		logger:          o.logger,
		now:             o.now,
		remoteFiltering: o.remoteFiltering,
		filter:          models.ReceivableFilter{Status: models.StatusFilterAll, DateMode: models.DateFilterDueDate},
		selection:       NewSelection(),
	}
}

// Load fetches the list from the remote service and replaces the local view.
// Selected ids that vanished are dropped silently.
func (e *LedgerEngine) Load(ctx context.Context) error {
	query := models.ReceivableFilter{Status: models.StatusFilterAll}
	if e.remoteFiltering {
		query = RemoteFilter(e.filter)
	}

	raws, err := e.client.ListReceivables(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to list receivables: %w", err)
	}

	today := e.now()
	result := e.normalizer.NormalizeAll(raws, today)
	e.list = result.Receivables
	e.loadedAt = today

	if err := e.selection.Prune(e.list); err != nil {
		var stale *models.StaleSelectionError
		if errors.As(err, &stale) {
			e.logger.Debug().Strs("receivable_ids", stale.IDs).Msg("dropped stale selection")
		}
	}

	if e.observer != nil {
		e.observer.ObserveDrift(len(result.Drifted))
	}

	e.logger.Debug().
		Int("loaded", len(e.list)).
		Int("rejected", len(result.Rejected)).
		Int("drifted", len(result.Drifted)).
		Msg("receivables loaded")

	return nil
}

// Reload is Load under the name batch operations use
func (e *LedgerEngine) Reload(ctx context.Context) error {
	return e.Load(ctx)
}

// Today returns the calendar day statuses are classified against
func (e *LedgerEngine) Today() time.Time {
	return models.CalendarDate(e.now())
}

// LoadedAt returns when the list was last loaded
func (e *LedgerEngine) LoadedAt() time.Time {
	return e.loadedAt
}

// SetFilter replaces the active filter. With remote filtering enabled the
// list is reloaded.
func (e *LedgerEngine) SetFilter(ctx context.Context, filter models.ReceivableFilter) error {
	if err := filter.Normalize(); err != nil {
		return err
	}
	e.filter = filter
	if e.remoteFiltering {
		return e.Load(ctx)
	}
	return nil
}

// Filter returns the active filter
func (e *LedgerEngine) Filter() models.ReceivableFilter {
	return e.filter
}

// Receivables returns the whole last-loaded list
func (e *LedgerEngine) Receivables() []models.Receivable {
	return e.list
}

// Get looks up a loaded receivable by id
func (e *LedgerEngine) Get(id string) (*models.Receivable, bool) {
	for i := range e.list {
		if e.list[i].ID == id {
			return &e.list[i], true
		}
	}
	return nil, false
}

// GetFilteredList returns the loaded receivables that pass the active filter
func (e *LedgerEngine) GetFilteredList() []models.Receivable {
	return ApplyFilter(e.list, e.filter, e.now())
}

// GetSections partitions the filtered list into lifecycle sections
func (e *LedgerEngine) GetSections() []Section {
	return PartitionSections(e.GetFilteredList(), e.now())
}

// ToggleSelection flips id in or out of the selection
func (e *LedgerEngine) ToggleSelection(id string) (bool, error) {
	if _, ok := e.Get(id); !ok {
		return false, fmt.Errorf("cannot select %s: %w", id, models.ErrReceivableNotFound)
	}
	return e.selection.Toggle(id), nil
}

// SelectAllVisible selects every receivable in the visible section with the
// given status. An empty status selects the whole filtered list.
func (e *LedgerEngine) SelectAllVisible(status models.ReceivableStatus) int {
	ids := e.visibleIDs(status)
	e.selection.Select(ids...)
	return len(ids)
}

// DeselectAllVisible deselects every receivable in the visible section with
// the given status. An empty status deselects the whole filtered list.
func (e *LedgerEngine) DeselectAllVisible(status models.ReceivableStatus) int {
	ids := e.visibleIDs(status)
	e.selection.Deselect(ids...)
	return len(ids)
}

func (e *LedgerEngine) visibleIDs(status models.ReceivableStatus) []string {
	if status == "" {
		visible := e.GetFilteredList()
		ids := make([]string, len(visible))
		for i := range visible {
			ids[i] = visible[i].ID
		}
		return ids
	}
	section, ok := FindSection(e.GetSections(), status)
	if !ok {
		return nil
	}
	return section.IDs()
}

// ClearSelection empties the selection
func (e *LedgerEngine) ClearSelection() {
	e.selection.Clear()
}

// Selection returns the selected ids
func (e *LedgerEngine) Selection() []string {
	return e.selection.IDs()
}

// SelectionTotal sums the selected receivables
func (e *LedgerEngine) SelectionTotal() decimal.Decimal {
	return e.selection.Total(e.list, e.now())
}

// PaymentSummary aggregates the payment history of the filtered list
func (e *LedgerEngine) PaymentSummary() models.PaymentSummary {
	return models.SummarizePayments(e.GetFilteredList())
}

// RunBulkReceive settles every eligible selected receivable in full
func (e *LedgerEngine) RunBulkReceive(ctx context.Context, cfg models.BulkReceiveConfig) (*models.BatchReport, error) {
	return e.reconciler.RunBulkReceive(ctx, e.batchRun(), cfg)
}

// RunBulkSplit splits every eligible selected receivable into installments
func (e *LedgerEngine) RunBulkSplit(ctx context.Context, cfg models.InstallmentPlanConfig) (*models.BatchReport, error) {
	return e.reconciler.RunBulkSplit(ctx, e.batchRun(), cfg)
}

func (e *LedgerEngine) batchRun() BatchRun {
	return BatchRun{
		Selection: e.selection,
		List:      e.list,
		Reload:    e.Reload,
	}
}

// ApplyManualInterest applies one-off interest to a receivable and replaces
// the local copy with the remote service's view
func (e *LedgerEngine) ApplyManualInterest(ctx context.Context, id string, req models.InterestRequest) (*models.Receivable, error) {
	if err := ValidateInterestRequest(req); err != nil {
		return nil, err
	}
	r, ok := e.Get(id)
	if !ok {
		return nil, fmt.Errorf("cannot apply interest to %s: %w", id, models.ErrReceivableNotFound)
	}

	updated, err := e.interest.Apply(ctx, r, req)
	if err != nil {
		return nil, err
	}
	e.replace(*updated)
	return updated, nil
}

// ReceivePayment records a single payment and replaces the local copy with
// the remote service's view
func (e *LedgerEngine) ReceivePayment(ctx context.Context, id string, req models.PaymentRequest) (*PaymentResult, error) {
	r, ok := e.Get(id)
	if !ok {
		return nil, fmt.Errorf("cannot receive payment for %s: %w", id, models.ErrReceivableNotFound)
	}

	result, err := e.payments.Receive(ctx, r, req)
	if err != nil {
		return nil, err
	}
	e.replace(result.Receivable)
	return result, nil
}

// PreviewSplit computes the plan a split would send, without calling out
func (e *LedgerEngine) PreviewSplit(id string, cfg models.InstallmentPlanConfig) (*models.InstallmentPlan, error) {
	r, ok := e.Get(id)
	if !ok {
		return nil, fmt.Errorf("cannot split %s: %w", id, models.ErrReceivableNotFound)
	}
	return BuildPlan(r, cfg)
}

func (e *LedgerEngine) replace(r models.Receivable) {
	for i := range e.list {
		if e.list[i].ID == r.ID {
			e.list[i] = r
			return
		}
	}
}
