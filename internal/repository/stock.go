package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

type StockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// OpeningBalance is date-range-aware: with a start date it returns the
// product's recorded opening quantity plus the net of all movements strictly
// before that date; without one it returns the recorded opening quantity.
func (r *StockRepository) OpeningBalance(ctx context.Context, productID uuid.UUID, start *time.Time) (decimal.Decimal, error) {
	var opening decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT opening_balance FROM products WHERE id = $1`, productID,
	).Scan(&opening)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("OpeningBalance: %w", domain.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("OpeningBalance: %w", err)
	}

	if start == nil {
		return opening, nil
	}

	var prior decimal.Decimal
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN direction = 'in' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements
		WHERE product_id = $1 AND moved_at < $2`,
		productID, *start,
	).Scan(&prior)
	if err != nil {
		return decimal.Zero, fmt.Errorf("OpeningBalance: prior movements: %w", err)
	}

	return opening.Add(prior), nil
}

func (r *StockRepository) Events(ctx context.Context, productID uuid.UUID, direction domain.StockDirection, start, end *time.Time) ([]domain.StockRecord, error) {
	query := `SELECT moved_at, quantity FROM stock_movements
		WHERE product_id = $1 AND direction = $2`
	args := []any{productID, direction}

	if start != nil {
		args = append(args, *start)
		query += ` AND moved_at >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += ` AND moved_at <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY moved_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Events: %w", err)
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		var rec domain.StockRecord
		if err := rows.Scan(&rec.Date, &rec.Quantity); err != nil {
			return nil, fmt.Errorf("Events: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Events: rows: %w", err)
	}
	return records, nil
}
