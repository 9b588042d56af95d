package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
)

// Normalizer converts raw ledger records into the engine's view model
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer creates a new normalizer
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// unreadableResponse reports a mutation the remote service accepted but whose
// response could not be normalized. The account changed, so the outcome is
// ambiguous and it must be reloaded before any retry.
func unreadableResponse(op, id string, err error) error {
	return &models.RemoteCallError{Op: op, ReceivableID: id, Message: "normalize response", Err: err}
}

// RejectedRecord is a raw record the normalizer could not accept
type RejectedRecord struct {
	ID  string
	Err error
}

// NormalizeResult contains the outcome of normalizing a list
type NormalizeResult struct {
	Receivables []models.Receivable
	Rejected    []RejectedRecord
	Drifted     []string // ids whose classified status disagrees with the stored one
}

// NormalizeAll normalizes a remote list, preserving its order. Malformed
// records are logged and left out; status drift is logged as a warning.
func (n *Normalizer) NormalizeAll(raws []models.RawReceivable, today time.Time) NormalizeResult {
	result := NormalizeResult{
		Receivables: make([]models.Receivable, 0, len(raws)),
	}

	for _, raw := range raws {
		r, err := n.Normalize(raw)
		if err != nil {
			n.logger.Warn().Err(err).Str("receivable_id", raw.ID).Msg("skipping malformed receivable")
			result.Rejected = append(result.Rejected, RejectedRecord{ID: raw.ID, Err: err})
			continue
		}

		if r.HasDrift(today) {
			n.logger.Warn().
				Str("receivable_id", r.ID).
				Str("stored_status", string(r.StoredStatus)).
				Str("classified_status", string(r.Status(today))).
				Str("pending_amount", r.PendingAmount.StringFixed(2)).
				Msg("reconciliation drift: stored status disagrees with classification")
			result.Drifted = append(result.Drifted, r.ID)
		}

		result.Receivables = append(result.Receivables, r)
	}

	return result
}

// Normalize converts a single raw record
func (n *Normalizer) Normalize(raw models.RawReceivable) (models.Receivable, error) {
	r := models.Receivable{
		ID:                   raw.ID,
		ClientID:             raw.ClientID,
		ClientName:           raw.ClientName,
		OriginalAmount:       raw.OriginalAmount,
		PendingAmount:        raw.PendingAmount,
		InterestAccrued:      raw.InterestAccrued,
		InterestApplications: raw.InterestApplications,
		ParentID:             raw.ParentID,
	}

	var err error
	if r.IssueDate, err = models.ParseDate(raw.IssueDate); err != nil {
		return r, fmt.Errorf("failed to parse issue date: %w", err)
	}
	if r.DueDate, err = models.ParseDate(raw.DueDate); err != nil {
		return r, fmt.Errorf("failed to parse due date: %w", err)
	}

	if raw.Status != "" {
		status, err := models.ParseStatus(raw.Status)
		if err != nil {
			// An unknown spelling falls back to classification alone
			n.logger.Debug().Str("receivable_id", raw.ID).Str("status", raw.Status).Msg("unknown stored status")
		}
		r.StoredStatus = status
	}

	r.Origin = models.ResolveOrigin(raw.SaleID, raw.ServiceOrderID, raw.EnvelopmentID, raw.Notes)
	r.Notes = joinNotes(r.Origin, raw.Notes, raw.ItemNotes)

	if r.Payments, err = normalizePayments(raw.Payments); err != nil {
		return r, err
	}
	if r.InterestHistory, err = normalizeInterestHistory(raw.InterestHistory); err != nil {
		return r, err
	}

	if raw.InterestConfig != nil {
		cfg, err := normalizeInterestConfig(raw.InterestConfig)
		if err != nil {
			return r, err
		}
		r.InterestConfig = cfg
	}

	if raw.LastInterestDate != "" {
		d, err := models.ParseDate(raw.LastInterestDate)
		if err != nil {
			return r, fmt.Errorf("failed to parse last interest date: %w", err)
		}
		r.LastInterestDate = &d
	} else if len(r.InterestHistory) > 0 {
		d := r.InterestHistory[len(r.InterestHistory)-1].Date
		r.LastInterestDate = &d
	}
	if r.InterestApplications == 0 {
		r.InterestApplications = len(r.InterestHistory)
	}

	if err := r.Validate(); err != nil {
		return r, err
	}

	return r, nil
}

// joinNotes builds the searchable notes. Service orders carry the order's
// general notes followed by its line-item notes.
func joinNotes(origin models.Origin, notes, itemNotes string) string {
	if origin.Kind != models.OriginServiceOrder || itemNotes == "" {
		return notes
	}
	if notes == "" {
		return itemNotes
	}
	return notes + "\n" + itemNotes
}

func normalizePayments(raws []models.RawPayment) ([]models.PaymentEntry, error) {
	payments := make([]models.PaymentEntry, 0, len(raws))
	for _, p := range raws {
		date, err := models.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse payment date: %w", err)
		}
		method := models.PaymentMethod(p.Method)
		if !method.IsValid() {
			method = models.PaymentMethodOther
		}
		payments = append(payments, models.PaymentEntry{
			Value:  p.Value,
			Method: method,
			Date:   date,
			Notes:  p.Notes,
		})
	}
	models.SortPayments(payments)
	return payments, nil
}

func normalizeInterestHistory(raws []models.RawInterestEntry) ([]models.InterestEntry, error) {
	history := make([]models.InterestEntry, 0, len(raws))
	for _, e := range raws {
		date, err := models.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse interest date: %w", err)
		}
		history = append(history, models.InterestEntry{
			Date:                   date,
			Type:                   models.InterestType(e.Type),
			Value:                  e.Value,
			ResultingPendingAmount: e.ResultingPendingAmount,
		})
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})
	return history, nil
}

func normalizeInterestConfig(raw *models.RawInterestConfig) (*models.InterestConfig, error) {
	start, err := models.ParseDate(raw.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interest start date: %w", err)
	}
	return &models.InterestConfig{
		Type:      models.InterestType(raw.Type),
		Value:     raw.Value,
		StartDate: start,
		Frequency: models.InterestFrequency(raw.Frequency),
	}, nil
}
