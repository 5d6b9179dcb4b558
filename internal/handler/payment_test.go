package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
	"github.com/seyram-dev/pos-backoffice/internal/reconcile"
)

type mockPaymentService struct {
	applyFn   func(ctx context.Context, req reconcile.ApplyPaymentRequest) (*domain.Invoice, error)
	reverseFn func(ctx context.Context, entryID uuid.UUID) (*domain.Invoice, error)
}

func (m *mockPaymentService) ApplyPayment(ctx context.Context, req reconcile.ApplyPaymentRequest) (*domain.Invoice, error) {
	return m.applyFn(ctx, req)
}

func (m *mockPaymentService) ReversePayment(ctx context.Context, entryID uuid.UUID) (*domain.Invoice, error) {
	return m.reverseFn(ctx, entryID)
}

func sampleInvoice(id uuid.UUID) *domain.Invoice {
	now := time.Now().UTC()
	return &domain.Invoice{
		ID:          id,
		CustomerID:  uuid.New(),
		GrossTotal:  decimal.RequireFromString("120"),
		NetAmount:   decimal.RequireFromString("100"),
		CashPay:     decimal.RequireFromString("60"),
		CardPay:     decimal.Zero,
		Balance:     decimal.RequireFromString("-40"),
		PaymentType: domain.PaymentTypeCash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func applyRequest(t *testing.T, invoiceID string, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/payments", bytes.NewBufferString(body))
	req.SetPathValue("id", invoiceID)
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestPaymentHandler_Apply(t *testing.T) {
	invoiceID := uuid.New()

	var captured reconcile.ApplyPaymentRequest
	h := NewPaymentHandler(&mockPaymentService{
		applyFn: func(_ context.Context, req reconcile.ApplyPaymentRequest) (*domain.Invoice, error) {
			captured = req
			return sampleInvoice(invoiceID), nil
		},
	})

	rec := httptest.NewRecorder()
	h.Apply(rec, applyRequest(t, invoiceID.String(), `{"cash_pay":"60","card_pay":"0","cash_floor":"40","card_floor":"0"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, invoiceID.String(), data["id"])
	assert.Equal(t, "Cash Payment", data["payment_type"])

	assert.Equal(t, invoiceID, captured.InvoiceID)
	assert.True(t, captured.CashPay.Equal(decimal.RequireFromString("60")))
	assert.True(t, captured.Session.Floor(reconcile.PayFieldCash).Equal(decimal.RequireFromString("40")))
}

func TestPaymentHandler_Apply_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"exceeds net amount", domain.ErrExceedsNetAmount, http.StatusUnprocessableEntity, "EXCEEDS_NET_AMOUNT"},
		{"exceeds gross total", domain.ErrExceedsGrossTotal, http.StatusUnprocessableEntity, "EXCEEDS_GROSS_TOTAL"},
		{"below floor", domain.ErrBelowFloor, http.StatusUnprocessableEntity, "PAYMENT_BELOW_FLOOR"},
		{"invoice missing", domain.ErrNotFound, http.StatusNotFound, "RESOURCE_NOT_FOUND"},
		{"write failed", fmt.Errorf("ApplyPayment: %w: disk full", domain.ErrWriteFailed), http.StatusBadGateway, "WRITE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPaymentHandler(&mockPaymentService{
				applyFn: func(context.Context, reconcile.ApplyPaymentRequest) (*domain.Invoice, error) {
					return nil, fmt.Errorf("ApplyPayment: %w", tt.err)
				},
			})

			rec := httptest.NewRecorder()
			h.Apply(rec, applyRequest(t, uuid.NewString(), `{"cash_pay":"60","card_pay":"50","cash_floor":"0","card_floor":"0"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestPaymentHandler_Apply_InvalidBody(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{
		applyFn: func(context.Context, reconcile.ApplyPaymentRequest) (*domain.Invoice, error) {
			t.Fatal("service must not be called for a malformed body")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Apply(rec, applyRequest(t, uuid.NewString(), `{"cash_pay":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestPaymentHandler_Apply_NegativeFields(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{
		applyFn: func(context.Context, reconcile.ApplyPaymentRequest) (*domain.Invoice, error) {
			t.Fatal("service must not be called when validation fails")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Apply(rec, applyRequest(t, uuid.NewString(), `{"cash_pay":"-5","card_pay":"0","cash_floor":"0","card_floor":"0"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestPaymentHandler_Apply_BadInvoiceID(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{})

	rec := httptest.NewRecorder()
	h.Apply(rec, applyRequest(t, "not-a-uuid", `{}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandler_Delete(t *testing.T) {
	invoiceID := uuid.New()
	entryID := uuid.New()

	h := NewPaymentHandler(&mockPaymentService{
		reverseFn: func(_ context.Context, got uuid.UUID) (*domain.Invoice, error) {
			assert.Equal(t, entryID, got)
			return sampleInvoice(invoiceID), nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/payments/"+entryID.String(), nil)
	req.SetPathValue("entryID", entryID.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestPaymentHandler_Delete_NotFound(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{
		reverseFn: func(context.Context, uuid.UUID) (*domain.Invoice, error) {
			return nil, fmt.Errorf("ReversePayment: %w", domain.ErrNotFound)
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/payments/"+uuid.NewString(), nil)
	req.SetPathValue("entryID", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RESOURCE_NOT_FOUND", resp.Error.Code)
}
