package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

const historyColumns = `id, invoice_id, cash_payment, card_payment, total_payment, save_time`

type PaymentHistoryRepository struct {
	db *sql.DB
}

func NewPaymentHistoryRepository(db *sql.DB) *PaymentHistoryRepository {
	return &PaymentHistoryRepository{db: db}
}

func (r *PaymentHistoryRepository) Create(ctx context.Context, tx *sql.Tx, entry *domain.PaymentHistoryEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO payment_history (
			id, invoice_id, cash_payment, card_payment, total_payment, save_time
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.InvoiceID, entry.CashPayment, entry.CardPayment,
		entry.TotalPayment, entry.SaveTime,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *PaymentHistoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentHistoryEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM payment_history WHERE id = $1`, id,
	)
	e, err := scanHistoryEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return e, nil
}

func (r *PaymentHistoryRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+historyColumns+` FROM payment_history
		WHERE invoice_id = $1 ORDER BY save_time`, invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByInvoiceID: %w", err)
	}
	defer rows.Close()

	var entries []domain.PaymentHistoryEntry
	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByInvoiceID: scan: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByInvoiceID: rows: %w", err)
	}
	return entries, nil
}

func (r *PaymentHistoryRepository) Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM payment_history WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// LatestTotals recomputes an invoice's settlement position from the ledger
// entries that survive, inside the caller's transaction. Each entry records
// the cumulative position at its save time, so the current totals are those
// of the latest surviving entry; an empty ledger means nothing settled.
func (r *PaymentHistoryRepository) LatestTotals(ctx context.Context, tx *sql.Tx, invoiceID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var cash, card decimal.Decimal
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(cash_payment, 0), COALESCE(card_payment, 0)
		FROM payment_history
		WHERE invoice_id = $1
		ORDER BY save_time DESC, id DESC
		LIMIT 1`, invoiceID,
	).Scan(&cash, &card)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("LatestTotals: %w", err)
	}
	return cash, card, nil
}

func scanHistoryEntry(s scanner) (*domain.PaymentHistoryEntry, error) {
	var e domain.PaymentHistoryEntry
	err := s.Scan(
		&e.ID, &e.InvoiceID, &e.CashPayment, &e.CardPayment,
		&e.TotalPayment, &e.SaveTime,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
