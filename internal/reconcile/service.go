package reconcile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
	"github.com/seyram-dev/pos-backoffice/internal/logging"
)

type invoiceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Invoice, error)
	UpdatePayment(ctx context.Context, tx *sql.Tx, id uuid.UUID, cashPay, cardPay, balance decimal.Decimal, paymentType domain.PaymentType) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Invoice, error)
}

type historyRepo interface {
	Create(ctx context.Context, tx *sql.Tx, entry *domain.PaymentHistoryEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentHistoryEntry, error)
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentHistoryEntry, error)
	Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
	LatestTotals(ctx context.Context, tx *sql.Tx, invoiceID uuid.UUID) (cash, card decimal.Decimal, err error)
}

type receiptRepo interface {
	Create(ctx context.Context, tx *sql.Tx, event *domain.ReceiptEvent) error
}

type Service struct {
	invoices invoiceRepo
	history  historyRepo
	receipts receiptRepo
	db       *sql.DB
}

func NewService(invoices invoiceRepo, history historyRepo, receipts receiptRepo, db *sql.DB) *Service {
	return &Service{
		invoices: invoices,
		history:  history,
		receipts: receipts,
		db:       db,
	}
}

// ApplyPaymentRequest carries the proposed cumulative payment values together
// with the per-field floors captured when the edit session started.
type ApplyPaymentRequest struct {
	InvoiceID uuid.UUID
	CashPay   decimal.Decimal
	CardPay   decimal.Decimal
	Session   EditSession
}

// ApplyPayment is the only write path for payment state. It validates both
// fields against the invoice ceilings and the session floors, derives balance
// and payment type, then persists the invoice update, the ledger append, and
// the receipt event in one transaction. No success is reported unless every
// write committed.
func (s *Service) ApplyPayment(ctx context.Context, req ApplyPaymentRequest) (*domain.Invoice, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ApplyPayment: begin tx: %w", err)
	}
	defer tx.Rollback()

	inv, err := s.invoices.GetForUpdate(ctx, tx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("ApplyPayment: %w", err)
	}

	// Both fields are committed together, so each is checked against the
	// other's proposed value rather than its stored one.
	cashSnap := InvoiceSnapshot{
		CashPay:    inv.CashPay,
		CardPay:    req.CardPay,
		NetAmount:  inv.NetAmount,
		GrossTotal: inv.GrossTotal,
	}
	cash, err := ValidateIncrement(PayFieldCash, req.CashPay, cashSnap, req.Session.Floor(PayFieldCash))
	if err != nil {
		return nil, fmt.Errorf("ApplyPayment: %w", err)
	}

	cardSnap := InvoiceSnapshot{
		CashPay:    req.CashPay,
		CardPay:    inv.CardPay,
		NetAmount:  inv.NetAmount,
		GrossTotal: inv.GrossTotal,
	}
	card, err := ValidateIncrement(PayFieldCard, req.CardPay, cardSnap, req.Session.Floor(PayFieldCard))
	if err != nil {
		return nil, fmt.Errorf("ApplyPayment: %w", err)
	}

	balance := DeriveBalance(inv.NetAmount, cash, card)
	paymentType := ClassifyPaymentType(cash, card)

	if err := s.invoices.UpdatePayment(ctx, tx, inv.ID, cash, card, balance, paymentType); err != nil {
		return nil, fmt.Errorf("ApplyPayment: update invoice: %w: %w", domain.ErrWriteFailed, err)
	}

	now := time.Now().UTC()
	entry := &domain.PaymentHistoryEntry{
		ID:           uuid.New(),
		InvoiceID:    inv.ID,
		CashPayment:  cash,
		CardPayment:  card,
		TotalPayment: cash.Add(card),
		SaveTime:     now,
	}
	if err := s.history.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("ApplyPayment: append ledger: %w: %w", domain.ErrWriteFailed, err)
	}

	inv.CashPay = cash
	inv.CardPay = card
	inv.Balance = balance
	inv.PaymentType = paymentType
	inv.UpdatedAt = now

	if err := s.enqueueReceipt(ctx, tx, inv, now); err != nil {
		return nil, fmt.Errorf("ApplyPayment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ApplyPayment: commit: %w: %w", domain.ErrWriteFailed, err)
	}

	log.Info("payment applied",
		"invoice_id", inv.ID,
		"cash_pay", cash,
		"card_pay", card,
		"balance", balance,
		"payment_type", paymentType,
	)

	return inv, nil
}

// ReversePayment deletes a ledger entry and recomputes the owning invoice
// from the entries that remain, treating the ledger as source of truth.
// Recomputing from the surviving ledger, rather than subtracting the deleted
// amounts from the stored fields, keeps the invoice consistent even if the
// stored fields had ever drifted. Delete and recompute share one transaction
// so no reader can observe a ledger/invoice pair that disagrees.
func (s *Service) ReversePayment(ctx context.Context, entryID uuid.UUID) (*domain.Invoice, error) {
	log := logging.FromContext(ctx)

	entry, err := s.history.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("ReversePayment: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ReversePayment: begin tx: %w", err)
	}
	defer tx.Rollback()

	inv, err := s.invoices.GetForUpdate(ctx, tx, entry.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("ReversePayment: %w", err)
	}

	if err := s.history.Delete(ctx, tx, entryID); err != nil {
		return nil, fmt.Errorf("ReversePayment: delete entry: %w: %w", domain.ErrWriteFailed, err)
	}

	cash, card, err := s.history.LatestTotals(ctx, tx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("ReversePayment: recompute from ledger: %w", err)
	}

	balance := DeriveBalance(inv.NetAmount, cash, card)
	paymentType := ClassifyPaymentType(cash, card)

	if err := s.invoices.UpdatePayment(ctx, tx, inv.ID, cash, card, balance, paymentType); err != nil {
		return nil, fmt.Errorf("ReversePayment: update invoice: %w: %w", domain.ErrWriteFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ReversePayment: commit: %w: %w", domain.ErrWriteFailed, err)
	}

	inv.CashPay = cash
	inv.CardPay = card
	inv.Balance = balance
	inv.PaymentType = paymentType

	log.Info("payment reversed",
		"entry_id", entryID,
		"invoice_id", inv.ID,
		"cash_pay", cash,
		"card_pay", card,
	)

	return inv, nil
}

func (s *Service) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("GetInvoice: %w", err)
	}
	return inv, nil
}

func (s *Service) GetLedger(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentHistoryEntry, error) {
	entries, err := s.history.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("GetLedger: %w", err)
	}
	return entries, nil
}

// ListByCustomer returns a customer's invoices with the aggregate totals over
// that filtered set.
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Invoice, Totals, error) {
	invoices, err := s.invoices.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, Totals{}, fmt.Errorf("ListByCustomer: %w", err)
	}
	return invoices, Aggregate(invoices), nil
}

type receiptPayload struct {
	InvoiceID   string `json:"invoice_id"`
	CustomerID  string `json:"customer_id"`
	NetAmount   string `json:"net_amount"`
	CashPay     string `json:"cash_pay"`
	CardPay     string `json:"card_pay"`
	Balance     string `json:"balance"`
	PaymentType string `json:"payment_type"`
	AppliedAt   string `json:"applied_at"`
}

func (s *Service) enqueueReceipt(ctx context.Context, tx *sql.Tx, inv *domain.Invoice, now time.Time) error {
	payload, err := json.Marshal(receiptPayload{
		InvoiceID:   inv.ID.String(),
		CustomerID:  inv.CustomerID.String(),
		NetAmount:   inv.NetAmount.String(),
		CashPay:     inv.CashPay.String(),
		CardPay:     inv.CardPay.String(),
		Balance:     inv.Balance.String(),
		PaymentType: string(inv.PaymentType),
		AppliedAt:   now.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("enqueueReceipt: marshal: %w", err)
	}

	event := &domain.ReceiptEvent{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		Payload:   payload,
		Status:    domain.ReceiptEventStatusPending,
		CreatedAt: now,
	}
	if err := s.receipts.Create(ctx, tx, event); err != nil {
		return fmt.Errorf("enqueueReceipt: %w", err)
	}
	return nil
}
