package services

import (
	"context"

	"github.com/livefire2015/ez-receivables/src/models"
)

// LedgerClient is the remote ledger service the engine drives.
// The service owns durable storage; every mutation returns its authoritative
// view of the account.
//
//go:generate mockgen -destination=mocks/mock_interface.go -package=mocks -source=interface.go
type LedgerClient interface {
	ListReceivables(ctx context.Context, filter models.ReceivableFilter) ([]models.RawReceivable, error)
	RecordPayment(ctx context.Context, id string, req models.PaymentRequest) (*models.RawReceivable, error)
	ApplyInterest(ctx context.Context, id string, req models.InterestRequest) (*models.RawReceivable, error)
	CreateInstallmentPlan(ctx context.Context, id string, plan models.InstallmentPlan) (*models.RawInstallmentPlanResult, error)
}

// BatchJournal keeps an audit trail of bulk operations
type BatchJournal interface {
	RecordBatch(ctx context.Context, report *models.BatchReport) error
}

// BatchObserver receives batch and drift events, e.g. for metrics
type BatchObserver interface {
	ObserveBatch(report *models.BatchReport)
	ObserveDrift(count int)
}
