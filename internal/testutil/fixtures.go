package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

func SeedOperator(t *testing.T, db *sql.DB, email, name string) *domain.Operator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	op := &domain.Operator{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Status:       domain.OperatorStatusActive,
	}
	_, err = db.Exec(
		`INSERT INTO operators (id, email, name, password_hash, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		op.ID, op.Email, op.Name, op.PasswordHash, op.Status,
	)
	if err != nil {
		t.Fatalf("seed operator: %v", err)
	}
	return op
}

func SeedCustomer(t *testing.T, db *sql.DB, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO customers (id, name) VALUES ($1, $2)`,
		id, name,
	)
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return id
}

// SeedInvoice creates an unpaid invoice. Net amount = gross - discount.
func SeedInvoice(t *testing.T, db *sql.DB, customerID uuid.UUID, gross, discount decimal.Decimal) *domain.Invoice {
	t.Helper()

	inv := &domain.Invoice{
		ID:             uuid.New(),
		CustomerID:     customerID,
		GrossTotal:     gross,
		DiscountAmount: discount,
		NetAmount:      gross.Sub(discount),
		CashPay:        decimal.Zero,
		CardPay:        decimal.Zero,
		Balance:        gross.Sub(discount).Neg(),
		PaymentType:    domain.PaymentTypeUnknown,
	}
	_, err := db.Exec(
		`INSERT INTO invoices (id, customer_id, gross_total, discount_amount, net_amount,
			cash_pay, card_pay, balance, payment_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.CustomerID, inv.GrossTotal, inv.DiscountAmount, inv.NetAmount,
		inv.CashPay, inv.CardPay, inv.Balance, inv.PaymentType,
	)
	if err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func SeedProduct(t *testing.T, db *sql.DB, name string, openingBalance decimal.Decimal) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO products (id, name, opening_balance) VALUES ($1, $2, $3)`,
		id, name, openingBalance,
	)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return id
}

func SeedStockMovement(t *testing.T, db *sql.DB, productID uuid.UUID, direction domain.StockDirection, quantity decimal.Decimal, movedAt time.Time) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO stock_movements (id, product_id, direction, quantity, moved_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), productID, direction, quantity, movedAt,
	)
	if err != nil {
		t.Fatalf("seed stock movement: %v", err)
	}
}

func GetInvoice(t *testing.T, db *sql.DB, id uuid.UUID) *domain.Invoice {
	t.Helper()

	var inv domain.Invoice
	err := db.QueryRow(
		`SELECT id, customer_id, gross_total, discount_amount, net_amount,
			cash_pay, card_pay, balance, payment_type, created_at, updated_at
		 FROM invoices WHERE id = $1`, id,
	).Scan(
		&inv.ID, &inv.CustomerID, &inv.GrossTotal, &inv.DiscountAmount, &inv.NetAmount,
		&inv.CashPay, &inv.CardPay, &inv.Balance, &inv.PaymentType,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	return &inv
}

func CountHistoryEntries(t *testing.T, db *sql.DB, invoiceID uuid.UUID) int {
	t.Helper()

	var n int
	if err := db.QueryRow(
		`SELECT COUNT(*) FROM payment_history WHERE invoice_id = $1`, invoiceID,
	).Scan(&n); err != nil {
		t.Fatalf("count history entries: %v", err)
	}
	return n
}

func CountReceiptEvents(t *testing.T, db *sql.DB, invoiceID uuid.UUID) int {
	t.Helper()

	var n int
	if err := db.QueryRow(
		`SELECT COUNT(*) FROM receipt_events WHERE invoice_id = $1`, invoiceID,
	).Scan(&n); err != nil {
		t.Fatalf("count receipt events: %v", err)
	}
	return n
}
