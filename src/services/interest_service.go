package services

import (
	"context"
	"fmt"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InterestService applies one-off manual interest to receivables.
// Recurring accrual from InterestConfig is enforced by the remote service.
type InterestService struct {
	client     LedgerClient
	normalizer *Normalizer
	logger     zerolog.Logger
	now        func() time.Time
}

// NewInterestService creates a new interest service
func NewInterestService(client LedgerClient, normalizer *Normalizer, logger zerolog.Logger) *InterestService {
	return &InterestService{
		client:     client,
		normalizer: normalizer,
		logger:     logger,
		now:        time.Now,
	}
}

// InterestApplication is the local result of applying interest
type InterestApplication struct {
	Receivable models.Receivable    // Updated copy
	Delta      decimal.Decimal      // Amount added to pending
	Entry      models.InterestEntry // Audit entry appended to the history
}

// ValidateInterestRequest rejects malformed interest input
func ValidateInterestRequest(req models.InterestRequest) error {
	if err := validateRequest(models.ErrInvalidInterest, req); err != nil {
		return err
	}
	if req.Value.IsNegative() {
		return models.NewValidationError(models.ErrInvalidInterest, "value", req.Value.String(), "cannot be negative")
	}
	return nil
}

// CalculateInterestDelta returns the amount one application adds to pending:
//
//	percent: pending * value / 100
//	fixed:   value
//
// The result is rounded to cents.
func CalculateInterestDelta(pending decimal.Decimal, req models.InterestRequest) (decimal.Decimal, error) {
	if err := ValidateInterestRequest(req); err != nil {
		return decimal.Zero, err
	}

	switch req.Type {
	case models.InterestTypePercent:
		return pending.Mul(req.Value).Div(decimal.NewFromInt(100)).Round(2), nil
	case models.InterestTypeFixed:
		return req.Value.Round(2), nil
	}
	return decimal.Zero, models.NewValidationError(models.ErrInvalidInterest, "type", req.Type, "must be percent or fixed")
}

// ApplyInterestLocally computes what one application does to a receivable.
// Each call compounds on the latest pending amount; nothing here is idempotent.
func ApplyInterestLocally(r models.Receivable, req models.InterestRequest, at time.Time) (*InterestApplication, error) {
	delta, err := CalculateInterestDelta(r.PendingAmount, req)
	if err != nil {
		return nil, err
	}

	r.PendingAmount = r.PendingAmount.Add(delta)
	r.InterestAccrued = r.InterestAccrued.Add(delta)

	entry := models.InterestEntry{
		Date:                   at,
		Type:                   req.Type,
		Value:                  req.Value,
		ResultingPendingAmount: r.PendingAmount,
	}

	history := make([]models.InterestEntry, len(r.InterestHistory), len(r.InterestHistory)+1)
	copy(history, r.InterestHistory)
	r.InterestHistory = append(history, entry)
	r.InterestApplications++
	r.LastInterestDate = &at

	return &InterestApplication{
		Receivable: r,
		Delta:      delta,
		Entry:      entry,
	}, nil
}

// Apply validates the request, computes the expected result and sends the
// mutation. The returned receivable is the remote service's view.
// Callers must not retry on an ambiguous RemoteCallError without reloading.
func (s *InterestService) Apply(ctx context.Context, r *models.Receivable, req models.InterestRequest) (*models.Receivable, error) {
	expected, err := ApplyInterestLocally(*r, req, s.now())
	if err != nil {
		return nil, err
	}

	raw, err := s.client.ApplyInterest(ctx, r.ID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to apply interest: %w", err)
	}

	updated, err := s.normalizer.Normalize(*raw)
	if err != nil {
		return nil, unreadableResponse("applyInterest", r.ID, err)
	}

	if !updated.PendingAmount.Equal(expected.Receivable.PendingAmount) {
		s.logger.Warn().
			Str("receivable_id", r.ID).
			Str("expected_pending", expected.Receivable.PendingAmount.StringFixed(2)).
			Str("remote_pending", updated.PendingAmount.StringFixed(2)).
			Msg("remote interest result differs from local calculation")
	}

	s.logger.Info().
		Str("receivable_id", r.ID).
		Str("type", string(req.Type)).
		Str("delta", expected.Delta.StringFixed(2)).
		Msg("interest applied")

	return &updated, nil
}
