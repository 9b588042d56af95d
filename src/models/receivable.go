package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Receivable is one debt owed by a customer, as seen by the engine.
// Status is never stored here; it is classified on every read.
type Receivable struct {
	ID         string `json:"id"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`

	// Amounts
	OriginalAmount  decimal.Decimal `json:"original_amount"`  // Principal; changed only by interest or split
	PendingAmount   decimal.Decimal `json:"pending_amount"`   // Still owed, never negative
	InterestAccrued decimal.Decimal `json:"interest_accrued"` // Cumulative interest folded into pending

	// Calendar dates, local midnight
	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	// StoredStatus is what the remote service persisted. It is a hint only.
	StoredStatus ReceivableStatus `json:"stored_status"`

	Origin Origin `json:"origin"`
	Notes  string `json:"notes"` // Service orders carry general + item notes

	InterestConfig  *InterestConfig `json:"interest_config,omitempty"`
	Payments        []PaymentEntry  `json:"payments"`         // Sorted by date
	InterestHistory []InterestEntry `json:"interest_history"` // Sorted by date

	InterestApplications int        `json:"interest_applications"`
	LastInterestDate     *time.Time `json:"last_interest_date,omitempty"`

	// Set on children of an installment split
	ParentID string `json:"parent_id,omitempty"`
}

// Receivable validation errors
var (
	ErrMissingReceivableID = errors.New("receivable id is required")
	ErrNegativePending     = errors.New("pending amount cannot be negative")
	ErrNegativeOriginal    = errors.New("original amount cannot be negative")
)

// Validate checks the invariants the engine relies on
func (r *Receivable) Validate() error {
	if r.ID == "" {
		return ErrMissingReceivableID
	}
	if r.PendingAmount.IsNegative() {
		return ErrNegativePending
	}
	if r.OriginalAmount.IsNegative() {
		return ErrNegativeOriginal
	}
	return nil
}

// Status classifies the receivable for the given day
func (r *Receivable) Status(today time.Time) ReceivableStatus {
	return ClassifyStatus(r.StoredStatus, r.PendingAmount, r.DueDate, today)
}

// HasDrift reports whether the classified status disagrees with the stored one
func (r *Receivable) HasDrift(today time.Time) bool {
	return IsDrift(r.StoredStatus, r.Status(today))
}

// IsSettledRecord reports whether the receivable counts as received, either by
// classification or by its stored status
func (r *Receivable) IsSettledRecord(today time.Time) bool {
	return r.Status(today) == StatusPaid || r.StoredStatus == StatusPaid
}

// LastPaymentDate returns the latest payment date, or nil when nothing was paid
func (r *Receivable) LastPaymentDate() *time.Time {
	return LastPaymentDate(r.Payments)
}

// IsEligibleForBatch reports whether bulk operations may touch the receivable:
// something is still owed and it does not classify as paid
func (r *Receivable) IsEligibleForBatch(today time.Time) bool {
	return r.PendingAmount.IsPositive() && r.Status(today) != StatusPaid
}

// CollectedAmount is what a settled receivable actually brought in
func (r *Receivable) CollectedAmount() decimal.Decimal {
	return r.OriginalAmount.Add(r.InterestAccrued)
}

// SelectionAmount is the receivable's contribution to a selection total:
// collected amount when paid, pending amount otherwise
func (r *Receivable) SelectionAmount(today time.Time) decimal.Decimal {
	if r.Status(today) == StatusPaid {
		return r.CollectedAmount()
	}
	return r.PendingAmount
}

// TotalPaid sums the payment history
func (r *Receivable) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Payments {
		total = total.Add(p.Value)
	}
	return total
}

// ReferenceCode returns the human-readable reference for lists and receipts
func (r *Receivable) ReferenceCode() string {
	return r.Origin.ReferenceCode(r.ID)
}

// IsInstallment reports whether the receivable was created by a split
func (r *Receivable) IsInstallment() bool {
	return r.ParentID != ""
}

// SettlementDate is the date the paid section sorts by: the last payment,
// falling back to the issue date
func (r *Receivable) SettlementDate() time.Time {
	if last := r.LastPaymentDate(); last != nil {
		return *last
	}
	return r.IssueDate
}

// RawPayment is a payment entry as returned by the remote service
type RawPayment struct {
	Value  decimal.Decimal `json:"value"`
	Method string          `json:"method"`
	Date   string          `json:"date"`
	Notes  string          `json:"notes,omitempty"`
}

// RawInterestEntry is an interest history entry as returned by the remote service
type RawInterestEntry struct {
	Date                   string          `json:"date"`
	Type                   string          `json:"type"`
	Value                  decimal.Decimal `json:"value"`
	ResultingPendingAmount decimal.Decimal `json:"resulting_pending_amount"`
}

// RawInterestConfig is a recurring accrual policy as returned by the remote service
type RawInterestConfig struct {
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	StartDate string          `json:"start_date"`
	Frequency string          `json:"frequency"`
}

// RawReceivable is a ledger record exactly as the remote service returns it.
// Dates are strings and status may use any of the service's spellings.
type RawReceivable struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	ClientName      string          `json:"client_name"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	InterestAccrued decimal.Decimal `json:"interest_accrued"`
	IssueDate       string          `json:"issue_date"`
	DueDate         string          `json:"due_date"`
	Status          string          `json:"status"`

	// Structured origin references; legacy records leave them empty
	SaleID         string `json:"sale_id,omitempty"`
	ServiceOrderID string `json:"service_order_id,omitempty"`
	EnvelopmentID  string `json:"envelopment_id,omitempty"`

	Notes     string `json:"notes,omitempty"`
	ItemNotes string `json:"item_notes,omitempty"` // Service-order line-item notes

	InterestConfig       *RawInterestConfig `json:"interest_config,omitempty"`
	Payments             []RawPayment       `json:"payments,omitempty"`
	InterestHistory      []RawInterestEntry `json:"interest_history,omitempty"`
	InterestApplications int                `json:"interest_applications,omitempty"`
	LastInterestDate     string             `json:"last_interest_date,omitempty"`
	ParentID             string             `json:"parent_id,omitempty"`
}
