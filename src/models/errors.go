package models

import (
	"errors"
	"fmt"
)

// Validation and remote errors
var (
	ErrInvalidInterest    = errors.New("invalid interest request")
	ErrInvalidPlan        = errors.New("invalid installment plan")
	ErrInvalidPayment     = errors.New("invalid payment request")
	ErrInvalidFilter      = errors.New("invalid receivable filter")
	ErrReceivableNotFound = errors.New("receivable not found")
	ErrNotEligible        = errors.New("receivable is not eligible for this operation")
	ErrRemoteCall         = errors.New("remote ledger call failed")
	ErrStaleSelection     = errors.New("selected receivable no longer exists")
)

// ValidationError describes malformed local input rejected before any remote call
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error // One of the ErrInvalid* sentinels
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Message)
	}
	return fmt.Sprintf("%v: field '%s' %s (value: %v)", e.Err, e.Field, e.Message, e.Value)
}

// Unwrap returns the sentinel for errors.Is matching.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError wrapping kind
func NewValidationError(kind error, field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     kind,
	}
}

// IsValidationError reports whether err is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// RemoteCallError is a rejected or unreachable remote mutation or query
type RemoteCallError struct {
	Op           string // listReceivables, recordPayment, applyInterest, createInstallmentPlan
	ReceivableID string
	StatusCode   int // 0 when the service could not be reached
	Message      string
	Err          error
}

// Error implements the error interface.
func (e *RemoteCallError) Error() string {
	msg := fmt.Sprintf("remote %s failed", e.Op)
	if e.ReceivableID != "" {
		msg += fmt.Sprintf(" for receivable %s", e.ReceivableID)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the transport error, if any.
func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// Is matches ErrRemoteCall and, for 404 responses, ErrReceivableNotFound.
func (e *RemoteCallError) Is(target error) bool {
	if target == ErrRemoteCall {
		return true
	}
	return target == ErrReceivableNotFound && e.StatusCode == 404
}

// Ambiguous reports whether the outcome of the call is unknown, e.g. the
// request timed out or the connection dropped after it was sent. The account
// must be re-fetched before anything is retried.
func (e *RemoteCallError) Ambiguous() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// StaleSelectionError reports selected ids that vanished after a reload.
// It is never surfaced to users; the ids are dropped from the selection.
type StaleSelectionError struct {
	IDs []string
}

// Error implements the error interface.
func (e *StaleSelectionError) Error() string {
	return fmt.Sprintf("%v: %d id(s) dropped", ErrStaleSelection, len(e.IDs))
}

// Unwrap returns ErrStaleSelection.
func (e *StaleSelectionError) Unwrap() error {
	return ErrStaleSelection
}
