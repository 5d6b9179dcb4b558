// Package receipts delivers committed payment events to the receipt
// renderer. Events are written in the same transaction as the payment they
// describe and drained here on an interval, so a renderer outage never
// blocks or loses a commit.
package receipts

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

type receiptEventRepo interface {
	GetPending(ctx context.Context, limit int) ([]domain.ReceiptEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReceiptEventStatus) error
}

type Dispatcher struct {
	events      receiptEventRepo
	client      *http.Client
	rendererURL string
	logger      *slog.Logger
	interval    time.Duration
}

func NewDispatcher(events receiptEventRepo, rendererURL string, logger *slog.Logger, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		events:      events,
		client:      &http.Client{Timeout: 10 * time.Second},
		rendererURL: rendererURL,
		logger:      logger,
		interval:    interval,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("receipt dispatcher started", "interval", d.interval, "renderer_url", d.rendererURL)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("receipt dispatcher stopped")
			return
		case <-ticker.C:
			d.poll(ctx)
		}
	}
}

func (d *Dispatcher) poll(ctx context.Context) {
	events, err := d.events.GetPending(ctx, 10)
	if err != nil {
		d.logger.Error("failed to fetch pending receipt events", "error", err)
		return
	}

	for _, event := range events {
		if err := d.dispatch(ctx, event); err != nil {
			d.logger.Error("failed to dispatch receipt event",
				"receipt_event_id", event.ID,
				"invoice_id", event.InvoiceID,
				"error", err,
			)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event domain.ReceiptEvent) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.rendererURL, bytes.NewReader(event.Payload))
	if err != nil {
		return fmt.Errorf("dispatch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Receipt-Event-ID", event.ID.String())

	resp, err := d.client.Do(req)
	if err != nil {
		// Left pending: the next poll retries it.
		return fmt.Errorf("dispatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		d.logger.Info("receipt dispatched", "receipt_event_id", event.ID, "invoice_id", event.InvoiceID)
		return d.events.UpdateStatus(ctx, event.ID, domain.ReceiptEventStatusDispatched)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		// The renderer rejected the payload; retrying cannot help.
		d.logger.Error("receipt rejected by renderer", "receipt_event_id", event.ID, "status", resp.StatusCode)
		return d.events.UpdateStatus(ctx, event.ID, domain.ReceiptEventStatusFailed)
	}

	return fmt.Errorf("dispatch: renderer returned %d", resp.StatusCode)
}
