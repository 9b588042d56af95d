package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/livefire2015/ez-receivables/src/services/mocks"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateInterestDelta(t *testing.T) {
	tests := []struct {
		name     string
		pending  decimal.Decimal
		req      models.InterestRequest
		expected decimal.Decimal
		wantErr  bool
	}{
		{
			name:     "Percent of pending",
			pending:  decimal.NewFromFloat(100.00),
			req:      models.InterestRequest{Type: models.InterestTypePercent, Value: decimal.NewFromInt(10)},
			expected: decimal.NewFromFloat(10.00),
		},
		{
			name:     "Percent rounds to cents",
			pending:  decimal.NewFromFloat(33.33),
			req:      models.InterestRequest{Type: models.InterestTypePercent, Value: decimal.NewFromFloat(2.5)},
			expected: decimal.NewFromFloat(0.83), // 0.833250
		},
		{
			name:     "Fixed value",
			pending:  decimal.NewFromFloat(300.00),
			req:      models.InterestRequest{Type: models.InterestTypeFixed, Value: decimal.NewFromInt(15)},
			expected: decimal.NewFromFloat(15.00),
		},
		{
			name:     "Zero is allowed",
			pending:  decimal.NewFromFloat(50.00),
			req:      models.InterestRequest{Type: models.InterestTypeFixed, Value: decimal.Zero},
			expected: decimal.Zero,
		},
		{
			name:    "Negative value",
			pending: decimal.NewFromFloat(50.00),
			req:     models.InterestRequest{Type: models.InterestTypeFixed, Value: decimal.NewFromInt(-1)},
			wantErr: true,
		},
		{
			name:    "Unknown type",
			pending: decimal.NewFromFloat(50.00),
			req:     models.InterestRequest{Type: "compound", Value: decimal.NewFromInt(1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateInterestDelta(tt.pending, tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrInvalidInterest))
				assert.True(t, models.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestApplyInterestLocallyCompounds(t *testing.T) {
	at := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	r := models.Receivable{ID: "r1", PendingAmount: decimal.NewFromFloat(100.00)}
	req := models.InterestRequest{Type: models.InterestTypePercent, Value: decimal.NewFromInt(10)}

	first, err := ApplyInterestLocally(r, req, at)
	require.NoError(t, err)
	second, err := ApplyInterestLocally(first.Receivable, req, at)
	require.NoError(t, err)

	assert.Equal(t, "121.00", second.Receivable.PendingAmount.StringFixed(2))
	assert.Equal(t, "21.00", second.Receivable.InterestAccrued.StringFixed(2))
	assert.Equal(t, 2, second.Receivable.InterestApplications)
	require.Len(t, second.Receivable.InterestHistory, 2)
	assert.Equal(t, "110.00", second.Receivable.InterestHistory[0].ResultingPendingAmount.StringFixed(2))
	assert.Equal(t, "121.00", second.Receivable.InterestHistory[1].ResultingPendingAmount.StringFixed(2))
	require.NotNil(t, second.Receivable.LastInterestDate)
	assert.True(t, second.Receivable.LastInterestDate.Equal(at))

	// The input is left untouched
	assert.Empty(t, r.InterestHistory)
	assert.Equal(t, "100.00", r.PendingAmount.StringFixed(2))
}

func TestInterestServiceApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockLedgerClient(ctrl)
	svc := NewInterestService(client, NewNormalizer(zerolog.Nop()), zerolog.Nop())

	r := &models.Receivable{ID: "r1", PendingAmount: decimal.NewFromInt(300)}
	req := models.InterestRequest{Type: models.InterestTypeFixed, Value: decimal.NewFromInt(15)}

	t.Run("remote view is returned", func(t *testing.T) {
		client.EXPECT().
			ApplyInterest(gomock.Any(), "r1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, got models.InterestRequest) (*models.RawReceivable, error) {
				assert.Equal(t, models.InterestTypeFixed, got.Type)
				raw := rawReceivable("r1", 315, "2024-01-10", "pending")
				raw.InterestAccrued = decimal.NewFromInt(15)
				return &raw, nil
			})

		updated, err := svc.Apply(context.Background(), r, req)
		require.NoError(t, err)
		assert.Equal(t, "315.00", updated.PendingAmount.StringFixed(2))
	})

	t.Run("remote failure propagates", func(t *testing.T) {
		client.EXPECT().
			ApplyInterest(gomock.Any(), "r1", gomock.Any()).
			Return(nil, &models.RemoteCallError{Op: "applyInterest", ReceivableID: "r1", StatusCode: 502})

		_, err := svc.Apply(context.Background(), r, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrRemoteCall))

		var remoteErr *models.RemoteCallError
		require.True(t, errors.As(err, &remoteErr))
		assert.True(t, remoteErr.Ambiguous())
	})

	t.Run("invalid input never reaches the client", func(t *testing.T) {
		_, err := svc.Apply(context.Background(), r, models.InterestRequest{Type: models.InterestTypePercent, Value: decimal.NewFromInt(-5)})
		assert.True(t, errors.Is(err, models.ErrInvalidInterest))
	})
}
