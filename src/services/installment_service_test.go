package services

import (
	"errors"
	"testing"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAmounts(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		n        int
		expected []string
	}{
		{"hundred in three", "100.00", 3, []string{"33.33", "33.33", "33.34"}},
		{"even split", "315.00", 3, []string{"105.00", "105.00", "105.00"}},
		{"one cent in two", "0.01", 2, []string{"0.00", "0.01"}},
		{"ten in seven", "10.00", 7, []string{"1.42", "1.42", "1.42", "1.42", "1.42", "1.42", "1.48"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAmounts(decimal.RequireFromString(tt.total), tt.n)
			require.Len(t, got, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want, got[i].StringFixed(2), "installment %d", i+1)
			}
		})
	}
}

func TestSplitAmountsSumExactly(t *testing.T) {
	for cents := int64(1); cents <= 5000; cents += 37 {
		total := decimal.New(cents, -2)
		for n := 2; n <= 13; n++ {
			sum := decimal.Zero
			for _, a := range SplitAmounts(total, n) {
				require.False(t, a.IsNegative(), "negative installment for %s/%d", total, n)
				sum = sum.Add(a)
			}
			require.True(t, sum.Equal(total), "%s split %d ways sums to %s", total, n, sum)
		}
	}
}

func TestBuildPlan(t *testing.T) {
	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	r := &models.Receivable{ID: "r1", PendingAmount: decimal.NewFromFloat(315.00)}

	plan, err := BuildPlan(r, models.InstallmentPlanConfig{
		NumInstallments: 3,
		IntervalDays:    30,
		FirstDueDate:    first,
		PaymentMethod:   models.PaymentMethodPix,
	})
	require.NoError(t, err)

	assert.Equal(t, "r1", plan.ParentID)
	assert.True(t, plan.ParentPending.IsZero())
	assert.True(t, plan.Total().Equal(r.PendingAmount))

	wantDates := []string{"2024-02-01", "2024-03-02", "2024-04-01"}
	require.Len(t, plan.Installments, 3)
	for i, inst := range plan.Installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, "105.00", inst.Amount.StringFixed(2))
		assert.Equal(t, wantDates[i], models.FormatDate(inst.DueDate))
	}

	children := plan.Children(&models.Receivable{ID: "r1", ClientName: "Ana"})
	require.Len(t, children, 3)
	for _, c := range children {
		assert.Equal(t, "r1", c.ParentID)
		assert.Equal(t, models.StatusPending, c.StoredStatus)
		assert.True(t, c.OriginalAmount.Equal(c.PendingAmount))
	}
}

func TestBuildPlanValidation(t *testing.T) {
	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	open := &models.Receivable{ID: "r1", PendingAmount: decimal.NewFromInt(100)}

	tests := []struct {
		name  string
		r     *models.Receivable
		cfg   models.InstallmentPlanConfig
		field string
	}{
		{"one installment", open, models.InstallmentPlanConfig{NumInstallments: 1, IntervalDays: 30, FirstDueDate: first}, "num_installments"},
		{"zero interval", open, models.InstallmentPlanConfig{NumInstallments: 2, IntervalDays: 0, FirstDueDate: first}, "interval_days"},
		{"missing first due date", open, models.InstallmentPlanConfig{NumInstallments: 2, IntervalDays: 30}, "first_due_date"},
		{"unknown method", open, models.InstallmentPlanConfig{NumInstallments: 2, IntervalDays: 30, FirstDueDate: first, PaymentMethod: "barter"}, "payment_method"},
		{"nothing pending", &models.Receivable{ID: "r2", PendingAmount: decimal.Zero}, models.InstallmentPlanConfig{NumInstallments: 2, IntervalDays: 30, FirstDueDate: first}, "pending_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPlan(tt.r, tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidPlan))

			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
