package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

// Totals are read-only sums over a filtered invoice set. LoanAmount is the
// outstanding credit across the set, not a per-invoice balance.
type Totals struct {
	NetAmount  decimal.Decimal
	CashAmount decimal.Decimal
	CardAmount decimal.Decimal
	LoanAmount decimal.Decimal
}

func Aggregate(invoices []domain.Invoice) Totals {
	t := Totals{
		NetAmount:  decimal.Zero,
		CashAmount: decimal.Zero,
		CardAmount: decimal.Zero,
		LoanAmount: decimal.Zero,
	}
	for _, inv := range invoices {
		t.NetAmount = t.NetAmount.Add(inv.NetAmount)
		t.CashAmount = t.CashAmount.Add(inv.CashPay)
		t.CardAmount = t.CardAmount.Add(inv.CardPay)
	}
	t.LoanAmount = t.NetAmount.Sub(t.CashAmount).Sub(t.CardAmount)
	return t
}
