package models

import (
	"fmt"
	"strings"
	"time"
)

// DateFilterMode selects which date a range filter applies to
type DateFilterMode string

const (
	DateFilterDueDate         DateFilterMode = "due_date"          // Default
	DateFilterLastPaymentDate DateFilterMode = "last_payment_date" // Only receivables with a payment match
)

// StatusFilterAll disables the status axis
const StatusFilterAll = "all"

// statusFilterReceived matches both classified paid and stored settlements
const statusFilterReceived = "received"

// ReceivableFilter holds the three optional filter axes. All set axes are ANDed.
type ReceivableFilter struct {
	Status   string         `json:"status,omitempty"` // "all", "received" or a lifecycle status
	Query    string         `json:"q,omitempty"`
	DateMode DateFilterMode `json:"date_field,omitempty"`
	From     *time.Time     `json:"from,omitempty"`
	To       *time.Time     `json:"to,omitempty"`
}

// Normalize canonicalizes the filter in place: status aliases collapse,
// the date mode defaults to due date and the query is trimmed
func (f *ReceivableFilter) Normalize() error {
	f.Query = strings.TrimSpace(f.Query)

	status := strings.ToLower(strings.TrimSpace(f.Status))
	switch status {
	case "", StatusFilterAll:
		f.Status = StatusFilterAll
	case statusFilterReceived:
		f.Status = statusFilterReceived
	default:
		parsed, err := ParseStatus(status)
		if err != nil {
			return NewValidationError(ErrInvalidFilter, "status", f.Status, "is not a known status")
		}
		if parsed == StatusPaid {
			f.Status = statusFilterReceived
		} else {
			f.Status = string(parsed)
		}
	}

	switch f.DateMode {
	case "":
		f.DateMode = DateFilterDueDate
	case DateFilterDueDate, DateFilterLastPaymentDate:
	default:
		return NewValidationError(ErrInvalidFilter, "date_field", f.DateMode, "must be due_date or last_payment_date")
	}

	if f.From != nil && f.To != nil && BeforeDay(*f.To, *f.From) {
		return NewValidationError(ErrInvalidFilter, "to", FormatDate(*f.To), "is before from")
	}

	return nil
}

// HasDateRange reports whether either date bound is set
func (f *ReceivableFilter) HasDateRange() bool {
	return f.From != nil || f.To != nil
}

// MatchesStatus reports whether r passes the status axis on the given day
func (f *ReceivableFilter) MatchesStatus(r *Receivable, today time.Time) bool {
	switch f.Status {
	case "", StatusFilterAll:
		return true
	case statusFilterReceived:
		return r.IsSettledRecord(today)
	}
	return string(r.Status(today)) == f.Status
}

// MatchesQuery reports whether the client name or notes contain the query,
// ignoring case
func (f *ReceivableFilter) MatchesQuery(r *Receivable) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(r.ClientName), q) ||
		strings.Contains(strings.ToLower(r.Notes), q)
}

// MatchesDates reports whether r passes the date-range axis
func (f *ReceivableFilter) MatchesDates(r *Receivable) bool {
	if !f.HasDateRange() {
		return true
	}
	if f.DateMode == DateFilterLastPaymentDate {
		last := r.LastPaymentDate()
		if last == nil {
			return false
		}
		return WithinDays(*last, f.From, f.To)
	}
	if r.DueDate.IsZero() {
		return false
	}
	return WithinDays(r.DueDate, f.From, f.To)
}

// Matches applies every axis
func (f *ReceivableFilter) Matches(r *Receivable, today time.Time) bool {
	return f.MatchesStatus(r, today) && f.MatchesQuery(r) && f.MatchesDates(r)
}

// CacheKey is a stable string identifying the filter
func (f *ReceivableFilter) CacheKey() string {
	return fmt.Sprintf("status=%s|q=%s|field=%s|from=%s|to=%s",
		f.Status, strings.ToLower(f.Query), f.DateMode, formatBound(f.From), formatBound(f.To))
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(CalendarDate(*t))
}
