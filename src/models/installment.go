package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentPlanConfig is the transient input of an installment split
type InstallmentPlanConfig struct {
	NumInstallments int           `json:"num_installments" validate:"gte=2"`
	IntervalDays    int           `json:"interval_days" validate:"gte=1"`
	FirstDueDate    time.Time     `json:"first_due_date"`
	PaymentMethod   PaymentMethod `json:"payment_method" validate:"omitempty,payment_method"`
	Notes           string        `json:"notes,omitempty" validate:"max=500"`
}

// Installment is one computed part of a plan
type Installment struct {
	Number  int             `json:"number"` // 1-based
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
}

// InstallmentPlan is the intended result of splitting one receivable.
// It is sent to the remote service, which remains authoritative.
type InstallmentPlan struct {
	ParentID      string                `json:"parent_id"`
	Config        InstallmentPlanConfig `json:"config"`
	SplitAmount   decimal.Decimal       `json:"split_amount"`
	ParentPending decimal.Decimal       `json:"parent_pending"` // Parent's pending after the split
	Installments  []Installment         `json:"installments"`
}

// Total returns the sum of all installment amounts
func (p *InstallmentPlan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range p.Installments {
		total = total.Add(inst.Amount)
	}
	return total
}

// Children builds the receivables the plan creates, one per installment
func (p *InstallmentPlan) Children(parent *Receivable) []Receivable {
	children := make([]Receivable, 0, len(p.Installments))
	for _, inst := range p.Installments {
		children = append(children, Receivable{
			ClientID:        parent.ClientID,
			ClientName:      parent.ClientName,
			OriginalAmount:  inst.Amount,
			PendingAmount:   inst.Amount,
			InterestAccrued: decimal.Zero,
			IssueDate:       parent.IssueDate,
			DueDate:         inst.DueDate,
			StoredStatus:    StatusPending,
			Origin:          parent.Origin,
			Notes:           p.Config.Notes,
			ParentID:        parent.ID,
		})
	}
	return children
}

// RawInstallmentPlanResult is the remote service's answer to a split:
// the updated parent and the children it created
type RawInstallmentPlanResult struct {
	Parent       RawReceivable   `json:"parent"`
	Installments []RawReceivable `json:"installments"`
}
