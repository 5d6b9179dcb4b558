package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockDirection string

const (
	StockDirectionIn  StockDirection = "in"
	StockDirectionOut StockDirection = "out"
)

// StockRecord is a dated stock-in or stock-out row as fetched from the store.
// Quantity is always positive; the direction of the fetch determines the sign
// applied when the record is folded into a timeline.
type StockRecord struct {
	Date     time.Time
	Quantity decimal.Decimal
}

// StockEvent is a StockRecord tagged with its signed quantity change.
type StockEvent struct {
	Date           time.Time
	QuantityChange decimal.Decimal
}

// StockTimelinePoint is one step of a cumulative stock-quantity series.
type StockTimelinePoint struct {
	Date     time.Time
	Quantity decimal.Decimal
}
