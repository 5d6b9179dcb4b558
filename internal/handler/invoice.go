package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
	"github.com/seyram-dev/pos-backoffice/internal/reconcile"
)

type invoiceService interface {
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetLedger(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentHistoryEntry, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Invoice, reconcile.Totals, error)
}

type InvoiceHandler struct {
	invoices invoiceService
}

func NewInvoiceHandler(invoices invoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type invoiceDTO struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	CashPay        decimal.Decimal `json:"cash_pay"`
	CardPay        decimal.Decimal `json:"card_pay"`
	Balance        decimal.Decimal `json:"balance"`
	PaymentType    string          `json:"payment_type"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toInvoiceDTO(inv *domain.Invoice) invoiceDTO {
	return invoiceDTO{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		GrossTotal:     inv.GrossTotal,
		DiscountAmount: inv.DiscountAmount,
		NetAmount:      inv.NetAmount,
		CashPay:        inv.CashPay,
		CardPay:        inv.CardPay,
		Balance:        inv.Balance,
		PaymentType:    string(inv.PaymentType),
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

type ledgerEntryDTO struct {
	ID           uuid.UUID       `json:"id"`
	InvoiceID    uuid.UUID       `json:"invoice_id"`
	CashPayment  decimal.Decimal `json:"cash_payment"`
	CardPayment  decimal.Decimal `json:"card_payment"`
	TotalPayment decimal.Decimal `json:"total_payment"`
	SaveTime     time.Time       `json:"save_time"`
}

func toLedgerDTOs(entries []domain.PaymentHistoryEntry) []ledgerEntryDTO {
	dtos := make([]ledgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ledgerEntryDTO{
			ID:           e.ID,
			InvoiceID:    e.InvoiceID,
			CashPayment:  e.CashPayment,
			CardPayment:  e.CardPayment,
			TotalPayment: e.TotalPayment,
			SaveTime:     e.SaveTime,
		})
	}
	return dtos
}

type totalsDTO struct {
	TotalNetAmount  decimal.Decimal `json:"total_net_amount"`
	TotalCashAmount decimal.Decimal `json:"total_cash_amount"`
	TotalCardAmount decimal.Decimal `json:"total_card_amount"`
	TotalLoanAmount decimal.Decimal `json:"total_loan_amount"`
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	inv, err := h.invoices.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	entries, err := h.invoices.GetLedger(r.Context(), invoiceID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"invoice": toInvoiceDTO(inv),
		"ledger":  toLedgerDTOs(entries),
	})
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("customer_id")
	if raw == "" {
		RespondValidationError(w, []FieldError{{Field: "customer_id", Message: "required"}})
		return
	}
	customerID, err := uuid.Parse(raw)
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "customer_id", Message: "must be a UUID"}})
		return
	}

	invoices, totals, err := h.invoices.ListByCustomer(r.Context(), customerID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]invoiceDTO, 0, len(invoices))
	for i := range invoices {
		dtos = append(dtos, toInvoiceDTO(&invoices[i]))
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"invoices": dtos,
		"totals": totalsDTO{
			TotalNetAmount:  totals.NetAmount,
			TotalCashAmount: totals.CashAmount,
			TotalCardAmount: totals.CardAmount,
			TotalLoanAmount: totals.LoanAmount,
		},
	})
}
