package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ReceiptEventStatus string

const (
	ReceiptEventStatusPending    ReceiptEventStatus = "pending"
	ReceiptEventStatusDispatched ReceiptEventStatus = "dispatched"
	ReceiptEventStatusFailed     ReceiptEventStatus = "failed"
)

// ReceiptEvent is written in the same transaction as a payment commit and
// later delivered to the receipt renderer.
type ReceiptEvent struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Payload     json.RawMessage
	Status      ReceiptEventStatus
	Attempts    int
	LastAttempt *time.Time
	CreatedAt   time.Time
}
