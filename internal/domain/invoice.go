package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeCash        PaymentType = "Cash Payment"
	PaymentTypeCard        PaymentType = "Card Payment"
	PaymentTypeCashAndCard PaymentType = "Cash and Card Payment"
	PaymentTypeUnknown     PaymentType = "Unknown"
)

// Invoice is a credit-sale record. CashPay and CardPay are cumulative
// settlement totals; Balance is the non-positive amount still owed and,
// together with PaymentType, is derived rather than entered.
type Invoice struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	GrossTotal     decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
	CashPay        decimal.Decimal
	CardPay        decimal.Decimal
	Balance        decimal.Decimal
	PaymentType    PaymentType
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
