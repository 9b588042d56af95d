package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestClassifyStatus(t *testing.T) {
	today := day(2024, 3, 15)
	yesterday := day(2024, 3, 14)
	tomorrow := day(2024, 3, 16)

	tests := []struct {
		name     string
		stored   ReceivableStatus
		pending  decimal.Decimal
		dueDate  time.Time
		expected ReceivableStatus
	}{
		{"paid with residue past due is overdue", StatusPaid, decimal.NewFromFloat(10.00), yesterday, StatusOverdue},
		{"half a cent is paid", StatusPending, decimal.NewFromFloat(0.005), yesterday, StatusPaid},
		{"exactly the tolerance is paid", StatusPending, decimal.NewFromFloat(0.01), tomorrow, StatusPaid},
		{"two cents is not paid", StatusPending, decimal.NewFromFloat(0.02), tomorrow, StatusPending},
		{"pending past due is overdue", StatusPending, decimal.NewFromInt(100), yesterday, StatusOverdue},
		{"due today is not overdue", StatusPending, decimal.NewFromInt(100), today, StatusPending},
		{"partially paid keeps stored status", StatusPartiallyPaid, decimal.NewFromInt(40), tomorrow, StatusPartiallyPaid},
		{"installment plan with balance past due", StatusInstallmentPlan, decimal.NewFromInt(40), yesterday, StatusOverdue},
		{"installment plan with zero balance", StatusInstallmentPlan, decimal.Zero, yesterday, StatusPaid},
		{"missing stored status defaults to pending", "", decimal.NewFromInt(5), tomorrow, StatusPending},
		{"missing due date never overdue", StatusPending, decimal.NewFromInt(5), time.Time{}, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(tt.stored, tt.pending, tt.dueDate, today)
			if got != tt.expected {
				t.Errorf("ClassifyStatus() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestClassifyStatusIgnoresTimeOfDay(t *testing.T) {
	// Due late in the evening, checked early the same day
	due := time.Date(2024, 3, 15, 23, 30, 0, 0, time.Local)
	today := time.Date(2024, 3, 15, 0, 5, 0, 0, time.Local)

	if got := ClassifyStatus(StatusPending, decimal.NewFromInt(10), due, today); got != StatusPending {
		t.Errorf("expected pending on the due day, got %s", got)
	}

	nextMorning := time.Date(2024, 3, 16, 0, 1, 0, 0, time.Local)
	if got := ClassifyStatus(StatusPending, decimal.NewFromInt(10), due, nextMorning); got != StatusOverdue {
		t.Errorf("expected overdue the next day, got %s", got)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected ReceivableStatus
		wantErr  bool
	}{
		{"pending", StatusPending, false},
		{"  Overdue ", StatusOverdue, false},
		{"received", StatusPaid, false},
		{"settled", StatusPaid, false},
		{"partial", StatusPartiallyPaid, false},
		{"installments", StatusInstallmentPlan, false},
		{"cancelled", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseStatus(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsDrift(t *testing.T) {
	tests := []struct {
		name       string
		stored     ReceivableStatus
		classified ReceivableStatus
		expected   bool
	}{
		{"agreement", StatusPending, StatusPending, false},
		{"time-driven overdue", StatusPending, StatusOverdue, false},
		{"stored paid shown overdue", StatusPaid, StatusOverdue, true},
		{"stored pending shown paid", StatusPending, StatusPaid, true},
		{"no stored status", "", StatusPaid, false},
		{"fully split parent", StatusInstallmentPlan, StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDrift(tt.stored, tt.classified); got != tt.expected {
				t.Errorf("IsDrift(%s, %s) = %v, want %v", tt.stored, tt.classified, got, tt.expected)
			}
		})
	}
}
