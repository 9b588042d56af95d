package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchOperation names a bulk mutation
type BatchOperation string

const (
	BatchBulkReceive BatchOperation = "bulk_receive"
	BatchBulkSplit   BatchOperation = "bulk_split"
)

// BatchOutcome is the overall result reported to the user
type BatchOutcome string

const (
	BatchOutcomeNone      BatchOutcome = "none"                // Nothing eligible was selected
	BatchOutcomeSucceeded BatchOutcome = "all_succeeded"       // Every dispatched account succeeded
	BatchOutcomePartial   BatchOutcome = "partially_succeeded" // Some succeeded, some failed or were skipped
	BatchOutcomeAllFailed BatchOutcome = "all_failed"          // Nothing succeeded
	BatchOutcomeCancelled BatchOutcome = "cancelled"           // Cancelled before any account was dispatched
)

// ItemResult is the recorded outcome of one account in a batch
type ItemResult string

const (
	ItemSucceeded ItemResult = "succeeded"
	ItemFailed    ItemResult = "failed"
	ItemSkipped   ItemResult = "skipped" // Not dispatched because the batch was cancelled
)

// BatchItem is the outcome for one receivable
type BatchItem struct {
	ReceivableID  string          `json:"receivable_id"`
	ReferenceCode string          `json:"reference_code"`
	Amount        decimal.Decimal `json:"amount"` // Payment value or split amount
	Result        ItemResult      `json:"result"`
	Error         string          `json:"error,omitempty"`
	Ambiguous     bool            `json:"ambiguous,omitempty"` // Outcome unknown; re-fetch before retrying
	Duration      time.Duration   `json:"duration"`
}

// BatchReport is the aggregate result of a bulk operation. Batch operations
// never fail as a whole; every per-account failure is recorded here.
type BatchReport struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Operation  BatchOperation `json:"operation" db:"operation"`
	StartedAt  time.Time      `json:"started_at" db:"started_at"`
	FinishedAt time.Time      `json:"finished_at" db:"finished_at"`

	Processed int `json:"processed" db:"processed"`
	Errored   int `json:"errored" db:"errored"`
	Skipped   int `json:"skipped" db:"skipped"`

	// Selected receivables left out because they were not eligible
	Ineligible []string `json:"ineligible,omitempty"`

	Items       []BatchItem     `json:"items"`
	Total       decimal.Decimal `json:"total" db:"total"` // Sum of succeeded amounts
	Outcome     BatchOutcome    `json:"outcome" db:"outcome"`
	ReloadError string          `json:"reload_error,omitempty" db:"reload_error"`
}

// NewBatchReport starts a report for the given operation
func NewBatchReport(op BatchOperation, startedAt time.Time) *BatchReport {
	return &BatchReport{
		ID:        uuid.New(),
		Operation: op,
		StartedAt: startedAt,
		Total:     decimal.Zero,
	}
}

// Tally recomputes the counters, total and outcome from the items
func (r *BatchReport) Tally() {
	r.Processed, r.Errored, r.Skipped = 0, 0, 0
	r.Total = decimal.Zero

	for _, item := range r.Items {
		switch item.Result {
		case ItemSucceeded:
			r.Processed++
			r.Total = r.Total.Add(item.Amount)
		case ItemFailed:
			r.Errored++
		case ItemSkipped:
			r.Skipped++
		}
	}

	switch {
	case len(r.Items) == 0:
		r.Outcome = BatchOutcomeNone
	case r.Processed == len(r.Items):
		r.Outcome = BatchOutcomeSucceeded
	case r.Skipped == len(r.Items):
		r.Outcome = BatchOutcomeCancelled
	case r.Processed == 0:
		r.Outcome = BatchOutcomeAllFailed
	default:
		r.Outcome = BatchOutcomePartial
	}
}

// FailedIDs returns the ids of accounts whose mutation failed
func (r *BatchReport) FailedIDs() []string {
	var ids []string
	for _, item := range r.Items {
		if item.Result == ItemFailed {
			ids = append(ids, item.ReceivableID)
		}
	}
	return ids
}
