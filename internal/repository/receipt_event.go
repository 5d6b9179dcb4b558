package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

const receiptEventColumns = `id, invoice_id, payload, status, attempts, last_attempt, created_at`

type ReceiptEventRepository struct {
	db *sql.DB
}

func NewReceiptEventRepository(db *sql.DB) *ReceiptEventRepository {
	return &ReceiptEventRepository{db: db}
}

func (r *ReceiptEventRepository) Create(ctx context.Context, tx *sql.Tx, event *domain.ReceiptEvent) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO receipt_events (
			id, invoice_id, payload, status, attempts, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.InvoiceID, []byte(event.Payload), event.Status,
		event.Attempts, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *ReceiptEventRepository) GetPending(ctx context.Context, limit int) ([]domain.ReceiptEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+receiptEventColumns+` FROM receipt_events
		WHERE status = $1 ORDER BY created_at LIMIT $2`,
		domain.ReceiptEventStatusPending, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("GetPending: %w", err)
	}
	defer rows.Close()

	var events []domain.ReceiptEvent
	for rows.Next() {
		var e domain.ReceiptEvent
		var payload []byte
		err := rows.Scan(&e.ID, &e.InvoiceID, &payload, &e.Status, &e.Attempts, &e.LastAttempt, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("GetPending: scan: %w", err)
		}
		e.Payload = payload
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetPending: rows: %w", err)
	}
	return events, nil
}

func (r *ReceiptEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReceiptEventStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE receipt_events SET status = $1, attempts = attempts + 1, last_attempt = now()
		WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateStatus: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdateStatus: %w", domain.ErrNotFound)
	}
	return nil
}
