package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSelectionAmount(t *testing.T) {
	today := day(2024, 3, 15)

	paid := &Receivable{
		ID:              "r-paid",
		OriginalAmount:  decimal.NewFromInt(50),
		InterestAccrued: decimal.NewFromInt(5),
		PendingAmount:   decimal.Zero,
		StoredStatus:    StatusPaid,
		DueDate:         day(2024, 3, 1),
	}
	pending := &Receivable{
		ID:             "r-pending",
		OriginalAmount: decimal.NewFromInt(30),
		PendingAmount:  decimal.NewFromInt(30),
		StoredStatus:   StatusPending,
		DueDate:        day(2024, 4, 1),
	}

	total := paid.SelectionAmount(today).Add(pending.SelectionAmount(today))
	if !total.Equal(decimal.NewFromInt(85)) {
		t.Errorf("selection total = %s, want 85", total)
	}
}

func TestIsEligibleForBatch(t *testing.T) {
	today := day(2024, 3, 15)

	tests := []struct {
		name     string
		r        Receivable
		expected bool
	}{
		{"open balance", Receivable{PendingAmount: decimal.NewFromInt(10), StoredStatus: StatusPending, DueDate: day(2024, 4, 1)}, true},
		{"overdue balance", Receivable{PendingAmount: decimal.NewFromInt(10), StoredStatus: StatusPaid, DueDate: day(2024, 3, 1)}, true},
		{"within tolerance", Receivable{PendingAmount: decimal.NewFromFloat(0.01), StoredStatus: StatusPending}, false},
		{"zero balance", Receivable{PendingAmount: decimal.Zero, StoredStatus: StatusInstallmentPlan}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEligibleForBatch(today); got != tt.expected {
				t.Errorf("IsEligibleForBatch() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLastPaymentAndSettlementDate(t *testing.T) {
	r := &Receivable{
		IssueDate: day(2024, 1, 1),
	}
	if r.LastPaymentDate() != nil {
		t.Fatal("expected no last payment date")
	}
	if !r.SettlementDate().Equal(day(2024, 1, 1)) {
		t.Errorf("settlement date should fall back to issue date, got %v", r.SettlementDate())
	}

	r.Payments = []PaymentEntry{
		{Value: decimal.NewFromInt(10), Method: PaymentMethodCash, Date: day(2024, 2, 10)},
		{Value: decimal.NewFromInt(10), Method: PaymentMethodPix, Date: day(2024, 2, 20)},
		{Value: decimal.NewFromInt(10), Method: PaymentMethodPix, Date: day(2024, 2, 15)},
	}
	last := r.LastPaymentDate()
	if last == nil || !last.Equal(day(2024, 2, 20)) {
		t.Errorf("LastPaymentDate() = %v, want 2024-02-20", last)
	}
	if !r.TotalPaid().Equal(decimal.NewFromInt(30)) {
		t.Errorf("TotalPaid() = %s, want 30", r.TotalPaid())
	}
}

func TestReceivableValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Receivable
		wantErr error
	}{
		{"valid", Receivable{ID: "a", PendingAmount: decimal.NewFromInt(1)}, nil},
		{"missing id", Receivable{}, ErrMissingReceivableID},
		{"negative pending", Receivable{ID: "a", PendingAmount: decimal.NewFromInt(-1)}, ErrNegativePending},
		{"negative original", Receivable{ID: "a", OriginalAmount: decimal.NewFromInt(-1)}, ErrNegativeOriginal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummarizePayments(t *testing.T) {
	receivables := []Receivable{
		{Payments: []PaymentEntry{
			{Value: decimal.NewFromInt(100), Method: PaymentMethodPix, Date: day(2024, 1, 5)},
			{Value: decimal.NewFromInt(50), Method: PaymentMethodCash, Date: day(2024, 1, 20)},
		}},
		{Payments: []PaymentEntry{
			{Value: decimal.NewFromInt(30), Method: PaymentMethodPix, Date: day(2024, 1, 10)},
		}},
		{},
	}

	summary := SummarizePayments(receivables)

	if summary.TotalPayments != 3 {
		t.Errorf("TotalPayments = %d, want 3", summary.TotalPayments)
	}
	if !summary.TotalAmount.Equal(decimal.NewFromInt(180)) {
		t.Errorf("TotalAmount = %s, want 180", summary.TotalAmount)
	}
	if !summary.AveragePayment.Equal(decimal.NewFromInt(60)) {
		t.Errorf("AveragePayment = %s, want 60", summary.AveragePayment)
	}
	if !summary.ByMethod[PaymentMethodPix].Equal(decimal.NewFromInt(130)) {
		t.Errorf("pix total = %s, want 130", summary.ByMethod[PaymentMethodPix])
	}
	if !summary.LastPaymentAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("LastPaymentAmount = %s, want 50", summary.LastPaymentAmount)
	}
}
