package reconcile

import "github.com/shopspring/decimal"

// EditSession captures the floor values of both payment fields at the moment
// an operator opens the payment modal. The floors are immutable for the life
// of the session: further edits may raise a field but never walk back what
// was recorded when the session began.
type EditSession struct {
	cashFloor decimal.Decimal
	cardFloor decimal.Decimal
}

func NewEditSession(inv InvoiceSnapshot) EditSession {
	return EditSession{
		cashFloor: inv.CashPay,
		cardFloor: inv.CardPay,
	}
}

func (s EditSession) Floor(field PayField) decimal.Decimal {
	if field == PayFieldCard {
		return s.cardFloor
	}
	return s.cashFloor
}
