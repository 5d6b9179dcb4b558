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

const invoiceColumns = `id, customer_id, gross_total, discount_amount, net_amount,
	cash_pay, card_pay, balance, payment_type, created_at, updated_at`

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id,
	)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Invoice, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id,
	)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) UpdatePayment(ctx context.Context, tx *sql.Tx, id uuid.UUID, cashPay, cardPay, balance decimal.Decimal, paymentType domain.PaymentType) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET cash_pay = $1, card_pay = $2, balance = $3, payment_type = $4, updated_at = now()
		WHERE id = $5`,
		cashPay, cardPay, balance, paymentType, id,
	)
	if err != nil {
		return fmt.Errorf("UpdatePayment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdatePayment: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdatePayment: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
		WHERE customer_id = $1 ORDER BY created_at DESC`, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByCustomer: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByCustomer: scan: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByCustomer: rows: %w", err)
	}
	return invoices, nil
}

func scanInvoice(s scanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := s.Scan(
		&inv.ID, &inv.CustomerID, &inv.GrossTotal, &inv.DiscountAmount, &inv.NetAmount,
		&inv.CashPay, &inv.CardPay, &inv.Balance, &inv.PaymentType,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
