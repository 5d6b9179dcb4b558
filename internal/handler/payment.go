package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
	"github.com/seyram-dev/pos-backoffice/internal/reconcile"
)

type paymentService interface {
	ApplyPayment(ctx context.Context, req reconcile.ApplyPaymentRequest) (*domain.Invoice, error)
	ReversePayment(ctx context.Context, entryID uuid.UUID) (*domain.Invoice, error)
}

type PaymentHandler struct {
	payments paymentService
}

func NewPaymentHandler(payments paymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// applyPaymentRequest carries the proposed cumulative values and the values
// each field held when the operator opened the payment modal. The floors let
// the engine reject any attempt to walk recorded payments back.
type applyPaymentRequest struct {
	CashPay   decimal.Decimal `json:"cash_pay"`
	CardPay   decimal.Decimal `json:"card_pay"`
	CashFloor decimal.Decimal `json:"cash_floor"`
	CardFloor decimal.Decimal `json:"card_floor"`
}

func (r applyPaymentRequest) Validate() []FieldError {
	var errs []FieldError
	if r.CashPay.IsNegative() {
		errs = append(errs, FieldError{Field: "cash_pay", Message: "must not be negative"})
	}
	if r.CardPay.IsNegative() {
		errs = append(errs, FieldError{Field: "card_pay", Message: "must not be negative"})
	}
	if r.CashFloor.IsNegative() {
		errs = append(errs, FieldError{Field: "cash_floor", Message: "must not be negative"})
	}
	if r.CardFloor.IsNegative() {
		errs = append(errs, FieldError{Field: "card_floor", Message: "must not be negative"})
	}
	return errs
}

func (h *PaymentHandler) Apply(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	var req applyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	session := reconcile.NewEditSession(reconcile.InvoiceSnapshot{
		CashPay: req.CashFloor,
		CardPay: req.CardFloor,
	})

	inv, err := h.payments.ApplyPayment(r.Context(), reconcile.ApplyPaymentRequest{
		InvoiceID: invoiceID,
		CashPay:   req.CashPay,
		CardPay:   req.CardPay,
		Session:   session,
	})
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toInvoiceDTO(inv))
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("entryID"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	inv, err := h.payments.ReversePayment(r.Context(), entryID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toInvoiceDTO(inv))
}
