package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestType selects how an interest value is applied
type InterestType string

const (
	InterestTypePercent InterestType = "percent" // value is a percentage of the pending amount
	InterestTypeFixed   InterestType = "fixed"   // value is added as-is
)

// IsValid reports whether t is a known interest type
func (t InterestType) IsValid() bool {
	return t == InterestTypePercent || t == InterestTypeFixed
}

// InterestFrequency is the period of a recurring accrual policy
type InterestFrequency string

const (
	InterestDaily   InterestFrequency = "daily"
	InterestWeekly  InterestFrequency = "weekly"
	InterestMonthly InterestFrequency = "monthly"
)

// InterestConfig is a recurring accrual policy. The remote service enforces
// it; the engine only carries it for display.
type InterestConfig struct {
	Type      InterestType      `json:"type"`
	Value     decimal.Decimal   `json:"value"`
	StartDate time.Time         `json:"start_date"`
	Frequency InterestFrequency `json:"frequency"`
}

// InterestRequest is a one-off manual interest application
type InterestRequest struct {
	Type  InterestType    `json:"type" validate:"required,interest_type"`
	Value decimal.Decimal `json:"value"`
}

// InterestEntry is one line of a receivable's interest history
// This is an immutable audit entry
type InterestEntry struct {
	Date                   time.Time       `json:"date"`
	Type                   InterestType    `json:"type"`
	Value                  decimal.Decimal `json:"value"`
	ResultingPendingAmount decimal.Decimal `json:"resulting_pending_amount"`
}
