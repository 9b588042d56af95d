package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	raw := models.RawReceivable{
		ID:              "r1",
		ClientName:      "Ana Souza",
		OriginalAmount:  decimal.NewFromInt(200),
		PendingAmount:   decimal.NewFromInt(120),
		IssueDate:       "2024-01-02T15:04:05Z",
		DueDate:         "2024-02-01",
		Status:          "partial",
		ServiceOrderID:  "881",
		Notes:           "Full repaint",
		ItemNotes:       "rear bumper",
		InterestHistory: []models.RawInterestEntry{{Date: "2024-01-20", Type: "fixed", Value: decimal.NewFromInt(5), ResultingPendingAmount: decimal.NewFromInt(125)}},
		Payments: []models.RawPayment{
			{Value: decimal.NewFromInt(50), Method: "pix", Date: "2024-01-15"},
			{Value: decimal.NewFromInt(30), Method: "voucher", Date: "2024-01-05"},
		},
	}

	r, err := n.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPartiallyPaid, r.StoredStatus)
	assert.Equal(t, "Full repaint\nrear bumper", r.Notes)
	assert.Equal(t, "OS-881", r.ReferenceCode())
	assert.Equal(t, "2024-01-02", models.FormatDate(r.IssueDate))

	require.Len(t, r.Payments, 2)
	assert.Equal(t, "2024-01-05", models.FormatDate(r.Payments[0].Date))
	assert.Equal(t, models.PaymentMethodOther, r.Payments[0].Method)
	assert.Equal(t, "2024-01-15", models.FormatDate(*r.LastPaymentDate()))

	assert.Equal(t, 1, r.InterestApplications)
	require.NotNil(t, r.LastInterestDate)
	assert.Equal(t, "2024-01-20", models.FormatDate(*r.LastInterestDate))
}

func TestNormalizeNotesOnlyJoinForServiceOrders(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	r, err := n.Normalize(models.RawReceivable{ID: "r1", SaleID: "12", Notes: "counter", ItemNotes: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "counter", r.Notes)
	assert.Equal(t, "PDV-12", r.ReferenceCode())

	r, err = n.Normalize(models.RawReceivable{ID: "r2", ServiceOrderID: "7", ItemNotes: "only items"})
	require.NoError(t, err)
	assert.Equal(t, "only items", r.Notes)
}

func TestNormalizeAllSkipsMalformedAndReportsDrift(t *testing.T) {
	var buf bytes.Buffer
	n := NewNormalizer(zerolog.New(&buf))
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

	raws := []models.RawReceivable{
		rawReceivable("ok", 10, "2024-04-01", "pending"),
		rawReceivable("bad-date", 10, "15/03/2024", "pending"),
		rawReceivable("drift", 10, "2024-03-01", "paid"),
		{ID: "negative", PendingAmount: decimal.NewFromInt(-1)},
	}

	result := n.NormalizeAll(raws, today)

	require.Len(t, result.Receivables, 2)
	assert.Equal(t, "ok", result.Receivables[0].ID)
	assert.Equal(t, "drift", result.Receivables[1].ID)
	assert.Equal(t, models.StatusOverdue, result.Receivables[1].Status(today))

	require.Len(t, result.Rejected, 2)
	assert.Equal(t, "bad-date", result.Rejected[0].ID)
	assert.ErrorIs(t, result.Rejected[1].Err, models.ErrNegativePending)

	assert.Equal(t, []string{"drift"}, result.Drifted)
	assert.Contains(t, buf.String(), "reconciliation drift")
}

func TestNormalizeUnknownStatusFallsBackToClassification(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

	r, err := n.Normalize(rawReceivable("r1", 10, "2024-04-01", "archived"))
	require.NoError(t, err)
	assert.Equal(t, models.ReceivableStatus(""), r.StoredStatus)
	assert.Equal(t, models.StatusPending, r.Status(today))
}
