package services

import (
	"testing"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidOn(id string, collected float64, paymentDate *time.Time, issue time.Time) models.Receivable {
	r := models.Receivable{
		ID:             id,
		OriginalAmount: decimal.NewFromFloat(collected),
		PendingAmount:  decimal.Zero,
		IssueDate:      issue,
		StoredStatus:   models.StatusPaid,
	}
	if paymentDate != nil {
		r.Payments = []models.PaymentEntry{{Value: r.OriginalAmount, Method: models.PaymentMethodCash, Date: *paymentDate}}
	}
	return r
}

func TestPartitionSections(t *testing.T) {
	future := testToday.AddDate(0, 1, 0)
	past := testToday.AddDate(0, -1, 0)
	feb10 := time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)
	mar01 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)

	list := []models.Receivable{
		testReceivable("p1", 10, future, models.StatusPending),
		paidOn("paid-old", 20, &feb10, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)),
		testReceivable("o1", 30, past, models.StatusPending),
		paidOn("paid-none", 5, nil, time.Date(2024, 2, 20, 0, 0, 0, 0, time.Local)),
		testReceivable("p2", 40, future, models.StatusPending),
		paidOn("paid-new", 7, &mar01, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)),
		testReceivable("ip", 50, future, models.StatusInstallmentPlan),
		testReceivable("pp", 60, future, models.StatusPartiallyPaid),
	}

	sections := PartitionSections(list, testToday)
	require.Len(t, sections, 5)

	order := make([]models.ReceivableStatus, len(sections))
	for i, s := range sections {
		order[i] = s.Status
	}
	assert.Equal(t, models.SectionOrder, order)

	pending, _ := FindSection(sections, models.StatusPending)
	assert.Equal(t, []string{"p1", "p2"}, pending.IDs())
	assert.Equal(t, "50.00", pending.Total.StringFixed(2))

	overdue, _ := FindSection(sections, models.StatusOverdue)
	assert.Equal(t, []string{"o1"}, overdue.IDs())

	paid, _ := FindSection(sections, models.StatusPaid)
	assert.Equal(t, []string{"paid-new", "paid-none", "paid-old"}, paid.IDs())
	assert.Equal(t, "32.00", paid.Total.StringFixed(2))

	ip, _ := FindSection(sections, models.StatusInstallmentPlan)
	assert.Equal(t, 1, ip.Count())
}
