package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentHistoryEntry is one increment in an invoice's settlement ledger.
// Entries are owned by their invoice; the invoice's cash/card totals are a
// materialized view over the surviving entries.
type PaymentHistoryEntry struct {
	ID           uuid.UUID
	InvoiceID    uuid.UUID
	CashPayment  decimal.Decimal
	CardPayment  decimal.Decimal
	TotalPayment decimal.Decimal
	SaveTime     time.Time
}
