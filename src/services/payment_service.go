package services

import (
	"context"
	"fmt"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
)

// PaymentService records payments against receivables
type PaymentService struct {
	client     LedgerClient
	normalizer *Normalizer
	logger     zerolog.Logger
	now        func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(client LedgerClient, normalizer *Normalizer, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		client:     client,
		normalizer: normalizer,
		logger:     logger,
		now:        time.Now,
	}
}

// PaymentResult contains the result of a payment operation
type PaymentResult struct {
	Receivable     models.Receivable // Remote view after the payment
	PreviousStatus models.ReceivableStatus
	NewStatus      models.ReceivableStatus
}

// ValidatePayment rejects malformed payment input for a receivable
func ValidatePayment(r *models.Receivable, req models.PaymentRequest) error {
	if err := validateRequest(models.ErrInvalidPayment, req); err != nil {
		return err
	}
	if !req.Value.IsPositive() {
		return models.NewValidationError(models.ErrInvalidPayment, "value", req.Value.String(), "must be positive")
	}
	if req.Value.GreaterThan(r.PendingAmount) {
		return models.NewValidationError(models.ErrInvalidPayment, "value", req.Value.String(),
			fmt.Sprintf("exceeds pending amount %s", r.PendingAmount.StringFixed(2)))
	}
	return nil
}

// FullPayment builds the request that settles a receivable's whole balance
func FullPayment(r *models.Receivable, cfg models.BulkReceiveConfig) models.PaymentRequest {
	return models.PaymentRequest{
		Value:  r.PendingAmount,
		Method: cfg.Method,
		Notes:  cfg.Notes,
	}
}

// Receive records one payment. Remote failures propagate to the caller with
// no local state change; on an ambiguous failure the account must be
// re-fetched before anything is retried.
func (s *PaymentService) Receive(ctx context.Context, r *models.Receivable, req models.PaymentRequest) (*PaymentResult, error) {
	if err := ValidatePayment(r, req); err != nil {
		return nil, err
	}

	today := s.now()
	previous := r.Status(today)

	raw, err := s.client.RecordPayment(ctx, r.ID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	updated, err := s.normalizer.Normalize(*raw)
	if err != nil {
		return nil, unreadableResponse("recordPayment", r.ID, err)
	}

	result := &PaymentResult{
		Receivable:     updated,
		PreviousStatus: previous,
		NewStatus:      updated.Status(today),
	}

	s.logger.Info().
		Str("receivable_id", r.ID).
		Str("value", req.Value.StringFixed(2)).
		Str("method", string(req.Method)).
		Str("from_status", string(result.PreviousStatus)).
		Str("to_status", string(result.NewStatus)).
		Msg("payment recorded")

	return result, nil
}
