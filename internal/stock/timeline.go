// Package stock builds cumulative stock-quantity timelines for a product
// from its dated in/out movements and a known opening balance.
package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

// BuildTimeline merges stock-in and stock-out records into one chronological
// sequence and folds them over opening, emitting a point per event.
//
// The anchor point carries opening unmodified: when start is supplied it
// dates the anchor; with no events and no start the anchor is stamped "now";
// otherwise the anchor shares the earliest event's date and that event then
// produces a visible step at the same date. Records at the same instant keep
// their relative input order (stock-ins first, then stock-outs, each in fetch
// order); no economic ordering between them is defined.
func BuildTimeline(opening decimal.Decimal, inRecords, outRecords []domain.StockRecord, start *time.Time) []domain.StockTimelinePoint {
	events := make([]domain.StockEvent, 0, len(inRecords)+len(outRecords))
	for _, r := range inRecords {
		events = append(events, domain.StockEvent{Date: r.Date, QuantityChange: r.Quantity})
	}
	for _, r := range outRecords {
		events = append(events, domain.StockEvent{Date: r.Date, QuantityChange: r.Quantity.Neg()})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	anchorDate := time.Now().UTC()
	switch {
	case start != nil:
		anchorDate = *start
	case len(events) > 0:
		anchorDate = events[0].Date
	}

	points := make([]domain.StockTimelinePoint, 0, len(events)+1)
	points = append(points, domain.StockTimelinePoint{Date: anchorDate, Quantity: opening})

	running := opening
	for _, e := range events {
		running = running.Add(e.QuantityChange)
		points = append(points, domain.StockTimelinePoint{Date: e.Date, Quantity: running})
	}

	return points
}
