package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents the method used for payment
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"          // Cash at the counter
	PaymentMethodPix          PaymentMethod = "pix"           // Instant transfer
	PaymentMethodDebitCard    PaymentMethod = "debit_card"    // Debit card
	PaymentMethodCreditCard   PaymentMethod = "credit_card"   // Credit card
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer" // Wire or bank slip
	PaymentMethodCheck        PaymentMethod = "check"         // Paper check
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPix, PaymentMethodDebitCard, PaymentMethodCreditCard,
		PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentEntry is one payment recorded against a receivable
type PaymentEntry struct {
	Value  decimal.Decimal `json:"value"`
	Method PaymentMethod   `json:"method"`
	Date   time.Time       `json:"date"`
	Notes  string          `json:"notes,omitempty"`
}

// PaymentRequest is the payload of a recordPayment mutation
type PaymentRequest struct {
	Value  decimal.Decimal `json:"value"`
	Method PaymentMethod   `json:"method" validate:"required,payment_method"`
	Notes  string          `json:"notes,omitempty" validate:"max=500"`
}

// BulkReceiveConfig is chosen once for a whole bulk-receive batch.
// Each eligible account is paid in full with this method and notes.
type BulkReceiveConfig struct {
	Method PaymentMethod `json:"method" validate:"required,payment_method"`
	Notes  string        `json:"notes,omitempty" validate:"max=500"`
}

// SortPayments orders payments by date, oldest first
func SortPayments(payments []PaymentEntry) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})
}

// LastPaymentDate returns the latest payment date, or nil when there are none
func LastPaymentDate(payments []PaymentEntry) *time.Time {
	var last *time.Time
	for i := range payments {
		d := payments[i].Date
		if last == nil || d.After(*last) {
			last = &d
		}
	}
	return last
}

// PaymentSummary provides a summary view of payment activity over receivables
type PaymentSummary struct {
	Receivables       int                               `json:"receivables"`
	TotalPayments     int                               `json:"total_payments"`
	TotalAmount       decimal.Decimal                   `json:"total_amount"`
	LargestPayment    decimal.Decimal                   `json:"largest_payment"`
	AveragePayment    decimal.Decimal                   `json:"average_payment"`
	LastPaymentDate   *time.Time                        `json:"last_payment_date,omitempty"`
	LastPaymentAmount decimal.Decimal                   `json:"last_payment_amount"`
	ByMethod          map[PaymentMethod]decimal.Decimal `json:"by_method"`
}

// SummarizePayments aggregates the payment history of the given receivables
func SummarizePayments(receivables []Receivable) PaymentSummary {
	summary := PaymentSummary{
		Receivables: len(receivables),
		ByMethod:    make(map[PaymentMethod]decimal.Decimal),
	}

	for _, r := range receivables {
		for _, p := range r.Payments {
			summary.TotalPayments++
			summary.TotalAmount = summary.TotalAmount.Add(p.Value)
			summary.ByMethod[p.Method] = summary.ByMethod[p.Method].Add(p.Value)

			if p.Value.GreaterThan(summary.LargestPayment) {
				summary.LargestPayment = p.Value
			}

			if summary.LastPaymentDate == nil || p.Date.After(*summary.LastPaymentDate) {
				d := p.Date
				summary.LastPaymentDate = &d
				summary.LastPaymentAmount = p.Value
			}
		}
	}

	if summary.TotalPayments > 0 {
		summary.AveragePayment = summary.TotalAmount.Div(decimal.NewFromInt(int64(summary.TotalPayments))).Round(2)
	}

	return summary
}
