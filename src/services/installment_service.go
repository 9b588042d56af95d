package services

import (
	"context"
	"fmt"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InstallmentService splits pending balances into installment plans
type InstallmentService struct {
	client     LedgerClient
	normalizer *Normalizer
	logger     zerolog.Logger
}

// NewInstallmentService creates a new installment service
func NewInstallmentService(client LedgerClient, normalizer *Normalizer, logger zerolog.Logger) *InstallmentService {
	return &InstallmentService{
		client:     client,
		normalizer: normalizer,
		logger:     logger,
	}
}

// SplitResult is the remote service's answer to a split, normalized
type SplitResult struct {
	Plan         *models.InstallmentPlan
	Parent       models.Receivable
	Installments []models.Receivable
}

// ValidatePlanConfig rejects malformed plan input
func ValidatePlanConfig(cfg models.InstallmentPlanConfig) error {
	if err := validateRequest(models.ErrInvalidPlan, cfg); err != nil {
		return err
	}
	if cfg.FirstDueDate.IsZero() {
		return models.NewValidationError(models.ErrInvalidPlan, "first_due_date", "", "must be a valid date")
	}
	return nil
}

// SplitAmounts divides total into n parts of floor(total/n) cents each; the
// last part absorbs the remainder so the parts always sum to total exactly
func SplitAmounts(total decimal.Decimal, n int) []decimal.Decimal {
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).RoundFloor(2)

	amounts := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		amounts[i] = base
	}
	amounts[n-1] = total.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))
	return amounts
}

// BuildPlan computes the intended installment plan for a receivable.
// The whole pending balance is split, leaving the parent at zero.
func BuildPlan(r *models.Receivable, cfg models.InstallmentPlanConfig) (*models.InstallmentPlan, error) {
	if err := ValidatePlanConfig(cfg); err != nil {
		return nil, err
	}
	if !r.PendingAmount.IsPositive() {
		return nil, models.NewValidationError(models.ErrInvalidPlan, "pending_amount", r.PendingAmount.String(), "must be positive to split")
	}

	cfg.FirstDueDate = models.CalendarDate(cfg.FirstDueDate)
	amounts := SplitAmounts(r.PendingAmount, cfg.NumInstallments)

	plan := &models.InstallmentPlan{
		ParentID:      r.ID,
		Config:        cfg,
		SplitAmount:   r.PendingAmount,
		ParentPending: decimal.Zero,
		Installments:  make([]models.Installment, 0, cfg.NumInstallments),
	}
	for i, amount := range amounts {
		plan.Installments = append(plan.Installments, models.Installment{
			Number:  i + 1,
			Amount:  amount,
			DueDate: models.AddDays(cfg.FirstDueDate, i*cfg.IntervalDays),
		})
	}

	return plan, nil
}

// Split sends a precomputed plan to the remote service. Nothing is
// committed locally; the caller reloads to see the result.
func (s *InstallmentService) Split(ctx context.Context, plan *models.InstallmentPlan) (*SplitResult, error) {
	raw, err := s.client.CreateInstallmentPlan(ctx, plan.ParentID, *plan)
	if err != nil {
		return nil, fmt.Errorf("failed to create installment plan: %w", err)
	}

	result := &SplitResult{Plan: plan}
	if result.Parent, err = s.normalizer.Normalize(raw.Parent); err != nil {
		return nil, unreadableResponse("createInstallmentPlan", plan.ParentID, err)
	}
	for _, child := range raw.Installments {
		c, err := s.normalizer.Normalize(child)
		if err != nil {
			return nil, unreadableResponse("createInstallmentPlan", plan.ParentID, err)
		}
		result.Installments = append(result.Installments, c)
	}

	s.logger.Info().
		Str("receivable_id", plan.ParentID).
		Int("installments", len(plan.Installments)).
		Str("amount", plan.SplitAmount.StringFixed(2)).
		Msg("installment plan created")

	return result, nil
}
