package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/livefire2015/ez-receivables/src/models"
)

// PostgresBatchJournal keeps an append-only audit trail of batch reports
type PostgresBatchJournal struct {
	db *sql.DB
}

// NewPostgresBatchJournal creates a new journal on db
func NewPostgresBatchJournal(db *sql.DB) *PostgresBatchJournal {
	return &PostgresBatchJournal{db: db}
}

const batchJournalSchema = `
	CREATE TABLE IF NOT EXISTS receivable_batches (
		id            UUID PRIMARY KEY,
		operation     TEXT NOT NULL,
		started_at    TIMESTAMPTZ NOT NULL,
		finished_at   TIMESTAMPTZ NOT NULL,
		processed     INTEGER NOT NULL,
		errored       INTEGER NOT NULL,
		skipped       INTEGER NOT NULL,
		total         NUMERIC(14, 2) NOT NULL,
		outcome       TEXT NOT NULL,
		ineligible    TEXT[] NOT NULL DEFAULT '{}',
		reload_error  TEXT
	);

	CREATE TABLE IF NOT EXISTS receivable_batch_items (
		batch_id       UUID NOT NULL REFERENCES receivable_batches(id),
		position       INTEGER NOT NULL,
		receivable_id  TEXT NOT NULL,
		reference_code TEXT NOT NULL,
		amount         NUMERIC(14, 2) NOT NULL,
		result         TEXT NOT NULL,
		error          TEXT,
		ambiguous      BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (batch_id, position)
	);
`

// EnsureSchema creates the journal tables when missing
func (j *PostgresBatchJournal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, batchJournalSchema); err != nil {
		return fmt.Errorf("failed to create batch journal schema: %w", err)
	}
	return nil
}

// RecordBatch stores a report and its items in one transaction
func (j *PostgresBatchJournal) RecordBatch(ctx context.Context, report *models.BatchReport) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch journal transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receivable_batches (
			id, operation, started_at, finished_at, processed, errored,
			skipped, total, outcome, ineligible, reload_error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		report.ID,
		report.Operation,
		report.StartedAt,
		report.FinishedAt,
		report.Processed,
		report.Errored,
		report.Skipped,
		report.Total,
		report.Outcome,
		pq.Array(report.Ineligible),
		nullString(report.ReloadError),
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	for i, item := range report.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receivable_batch_items (
				batch_id, position, receivable_id, reference_code,
				amount, result, error, ambiguous
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			report.ID,
			i,
			item.ReceivableID,
			item.ReferenceCode,
			item.Amount,
			item.Result,
			nullString(item.Error),
			item.Ambiguous,
		)
		if err != nil {
			return fmt.Errorf("failed to insert batch item %s: %w", item.ReceivableID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch journal: %w", err)
	}
	return nil
}

// RecentBatches returns the latest reports, newest first, without items
func (j *PostgresBatchJournal) RecentBatches(ctx context.Context, limit int) ([]models.BatchReport, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, operation, started_at, finished_at, processed, errored,
		       skipped, total, outcome, ineligible, COALESCE(reload_error, '')
		FROM receivable_batches
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var reports []models.BatchReport
	for rows.Next() {
		var r models.BatchReport
		if err := rows.Scan(
			&r.ID,
			&r.Operation,
			&r.StartedAt,
			&r.FinishedAt,
			&r.Processed,
			&r.Errored,
			&r.Skipped,
			&r.Total,
			&r.Outcome,
			pq.Array(&r.Ineligible),
			&r.ReloadError,
		); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
