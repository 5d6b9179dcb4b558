// Package reconcile tracks how much of a credit-sale invoice has been
// settled by cash and card payments, validates every increment against the
// invoice's financial ceilings, and derives the stored balance and
// payment-type classification.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

type PayField string

const (
	PayFieldCash PayField = "cash_pay"
	PayFieldCard PayField = "card_pay"
)

func (f PayField) IsValid() bool {
	return f == PayFieldCash || f == PayFieldCard
}

// InvoiceSnapshot is the slice of invoice state a validation needs. It is a
// plain value so the rules stay pure and callable before any write.
type InvoiceSnapshot struct {
	CashPay    decimal.Decimal
	CardPay    decimal.Decimal
	NetAmount  decimal.Decimal
	GrossTotal decimal.Decimal
}

// ValidateIncrement decides whether proposed is an admissible new value for
// field. floor is the value the field held when the edit session began;
// amounts already recorded cannot be retracted below it. The net ceiling is
// checked first since net <= gross makes it the binding constraint. On
// success the accepted value is returned unchanged; nothing is mutated.
func ValidateIncrement(field PayField, proposed decimal.Decimal, snap InvoiceSnapshot, floor decimal.Decimal) (decimal.Decimal, error) {
	if !field.IsValid() {
		return decimal.Zero, fmt.Errorf("ValidateIncrement: %q: %w", field, domain.ErrInvalidField)
	}
	if proposed.IsNegative() {
		return decimal.Zero, fmt.Errorf("ValidateIncrement: %w", domain.ErrInvalidAmount)
	}

	other := snap.CardPay
	if field == PayFieldCard {
		other = snap.CashPay
	}

	if proposed.Add(other).GreaterThan(snap.NetAmount) {
		return decimal.Zero, fmt.Errorf("ValidateIncrement: %s + %s: %w", proposed, other, domain.ErrExceedsNetAmount)
	}
	if proposed.LessThan(floor) {
		return decimal.Zero, fmt.Errorf("ValidateIncrement: %s < %s: %w", proposed, floor, domain.ErrBelowFloor)
	}
	if proposed.Add(other).GreaterThan(snap.GrossTotal) {
		return decimal.Zero, fmt.Errorf("ValidateIncrement: %s + %s: %w", proposed, other, domain.ErrExceedsGrossTotal)
	}

	return proposed, nil
}

// DeriveBalance computes the stored balance: -(net - (cash + card)), rounded
// to 2 decimal places. A fully paid invoice yields exactly zero.
func DeriveBalance(netAmount, cashPay, cardPay decimal.Decimal) decimal.Decimal {
	balance := cashPay.Add(cardPay).Sub(netAmount).Round(2)
	if balance.IsZero() {
		return decimal.Zero
	}
	return balance
}

// ClassifyPaymentType is a pure function of the sign of its inputs.
func ClassifyPaymentType(cashPay, cardPay decimal.Decimal) domain.PaymentType {
	switch {
	case cashPay.IsPositive() && cardPay.IsPositive():
		return domain.PaymentTypeCashAndCard
	case cashPay.IsPositive():
		return domain.PaymentTypeCash
	case cardPay.IsPositive():
		return domain.PaymentTypeCard
	default:
		return domain.PaymentTypeUnknown
	}
}
