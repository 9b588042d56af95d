package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the lifecycle status of a receivable
type ReceivableStatus string

const (
	StatusPending         ReceivableStatus = "pending"          // Issued, not yet due
	StatusOverdue         ReceivableStatus = "overdue"          // Due date passed with balance left
	StatusPartiallyPaid   ReceivableStatus = "partially_paid"   // Some payment recorded, balance left
	StatusInstallmentPlan ReceivableStatus = "installment_plan" // Balance moved into child installments
	StatusPaid            ReceivableStatus = "paid"             // Settled
)

// PaidTolerance is the pending balance at or below which a receivable counts as settled
var PaidTolerance = decimal.NewFromFloat(0.01)

// SectionOrder is the display order of lifecycle sections
var SectionOrder = []ReceivableStatus{
	StatusOverdue,
	StatusPending,
	StatusPartiallyPaid,
	StatusInstallmentPlan,
	StatusPaid,
}

// statusAliases maps remote spellings onto the engine's statuses.
// Settlement spellings collapse into paid.
var statusAliases = map[string]ReceivableStatus{
	"pending":          StatusPending,
	"open":             StatusPending,
	"overdue":          StatusOverdue,
	"late":             StatusOverdue,
	"partially_paid":   StatusPartiallyPaid,
	"partial":          StatusPartiallyPaid,
	"installment_plan": StatusInstallmentPlan,
	"installments":     StatusInstallmentPlan,
	"paid":             StatusPaid,
	"received":         StatusPaid,
	"settled":          StatusPaid,
}

// ParseStatus converts a remote status string into a ReceivableStatus
func ParseStatus(s string) (ReceivableStatus, error) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown receivable status %q", s)
	}
	return status, nil
}

// IsValid reports whether s is one of the five lifecycle statuses
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusOverdue, StatusPartiallyPaid, StatusInstallmentPlan, StatusPaid:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition is expected
func (s ReceivableStatus) IsTerminal() bool {
	return s == StatusPaid
}

// IsSettled reports whether a pending amount is within the paid tolerance
func IsSettled(pending decimal.Decimal) bool {
	return pending.LessThanOrEqual(PaidTolerance)
}

// ClassifyStatus derives the displayed status of a receivable.
// It is evaluated on every read; the stored status is only a hint once the
// due date has passed:
//
//	pending <= 0.01        -> paid
//	dueDate before today   -> overdue (also overrides a stored paid with residue)
//	otherwise              -> stored status
func ClassifyStatus(stored ReceivableStatus, pending decimal.Decimal, dueDate, today time.Time) ReceivableStatus {
	if IsSettled(pending) {
		return StatusPaid
	}
	if !dueDate.IsZero() && BeforeDay(dueDate, today) {
		return StatusOverdue
	}
	if stored == "" {
		return StatusPending
	}
	return stored
}

// IsDrift reports whether a classification disagrees with the stored status
// in a way the lifecycle does not explain: a stored paid shown as anything
// else, or a stored open status shown as paid. A fully split parent shown as
// paid is expected.
func IsDrift(stored, classified ReceivableStatus) bool {
	if stored == "" || stored == classified {
		return false
	}
	if stored == StatusPaid {
		return true
	}
	return classified == StatusPaid && stored != StatusInstallmentPlan
}
