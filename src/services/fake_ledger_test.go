package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
)

// fakeLedger is an in-memory remote ledger that applies mutations the way
// the real service does
type fakeLedger struct {
	mu      sync.Mutex
	order   []string
	records map[string]*models.RawReceivable
	failFor map[string]error
	today   string

	listCalls int
	listErr   error

	// childDueDate, when set, replaces the due date of created installments
	childDueDate string
}

func newFakeLedger(today string, raws ...models.RawReceivable) *fakeLedger {
	f := &fakeLedger{
		records: make(map[string]*models.RawReceivable),
		failFor: make(map[string]error),
		today:   today,
	}
	for i := range raws {
		r := raws[i]
		f.order = append(f.order, r.ID)
		f.records[r.ID] = &r
	}
	return f
}

func (f *fakeLedger) ListReceivables(ctx context.Context, filter models.ReceivableFilter) ([]models.RawReceivable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	list := make([]models.RawReceivable, 0, len(f.order))
	for _, id := range f.order {
		list = append(list, *f.records[id])
	}
	return list, nil
}

func (f *fakeLedger) RecordPayment(ctx context.Context, id string, req models.PaymentRequest) (*models.RawReceivable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, err := f.lookup("recordPayment", id)
	if err != nil {
		return nil, err
	}
	r.PendingAmount = r.PendingAmount.Sub(req.Value)
	r.Payments = append(r.Payments, models.RawPayment{
		Value:  req.Value,
		Method: string(req.Method),
		Date:   f.today,
		Notes:  req.Notes,
	})
	if models.IsSettled(r.PendingAmount) {
		r.Status = string(models.StatusPaid)
	} else {
		r.Status = string(models.StatusPartiallyPaid)
	}
	out := *r
	return &out, nil
}

func (f *fakeLedger) ApplyInterest(ctx context.Context, id string, req models.InterestRequest) (*models.RawReceivable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, err := f.lookup("applyInterest", id)
	if err != nil {
		return nil, err
	}
	delta, err := CalculateInterestDelta(r.PendingAmount, req)
	if err != nil {
		return nil, err
	}
	r.PendingAmount = r.PendingAmount.Add(delta)
	r.InterestAccrued = r.InterestAccrued.Add(delta)
	r.InterestHistory = append(r.InterestHistory, models.RawInterestEntry{
		Date:                   f.today,
		Type:                   string(req.Type),
		Value:                  req.Value,
		ResultingPendingAmount: r.PendingAmount,
	})
	r.InterestApplications++
	r.LastInterestDate = f.today
	out := *r
	return &out, nil
}

func (f *fakeLedger) CreateInstallmentPlan(ctx context.Context, id string, plan models.InstallmentPlan) (*models.RawInstallmentPlanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parent, err := f.lookup("createInstallmentPlan", id)
	if err != nil {
		return nil, err
	}
	parent.PendingAmount = plan.ParentPending
	parent.Status = string(models.StatusInstallmentPlan)

	result := &models.RawInstallmentPlanResult{Parent: *parent}
	for _, inst := range plan.Installments {
		child := models.RawReceivable{
			ID:             fmt.Sprintf("%s-%d", id, inst.Number),
			ClientID:       parent.ClientID,
			ClientName:     parent.ClientName,
			OriginalAmount: inst.Amount,
			PendingAmount:  inst.Amount,
			IssueDate:      parent.IssueDate,
			DueDate:        models.FormatDate(inst.DueDate),
			Status:         string(models.StatusPending),
			Notes:          plan.Config.Notes,
			ParentID:       id,
		}
		if f.childDueDate != "" {
			child.DueDate = f.childDueDate
		}
		f.order = append(f.order, child.ID)
		f.records[child.ID] = &child
		result.Installments = append(result.Installments, child)
	}
	return result, nil
}

func (f *fakeLedger) lookup(op, id string) (*models.RawReceivable, error) {
	if err, ok := f.failFor[id]; ok {
		return nil, err
	}
	r, ok := f.records[id]
	if !ok {
		return nil, &models.RemoteCallError{Op: op, ReceivableID: id, StatusCode: 404, Message: "not found"}
	}
	return r, nil
}

func (f *fakeLedger) get(id string) models.RawReceivable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.records[id]
}

func rawReceivable(id string, pending float64, due, status string) models.RawReceivable {
	amount := decimal.NewFromFloat(pending)
	return models.RawReceivable{
		ID:             id,
		ClientID:       "c-" + id,
		ClientName:     "Client " + id,
		OriginalAmount: amount,
		PendingAmount:  amount,
		IssueDate:      "2023-12-01",
		DueDate:        due,
		Status:         status,
	}
}
