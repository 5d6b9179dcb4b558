package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

type stockRepo interface {
	OpeningBalance(ctx context.Context, productID uuid.UUID, start *time.Time) (decimal.Decimal, error)
	Events(ctx context.Context, productID uuid.UUID, direction domain.StockDirection, start, end *time.Time) ([]domain.StockRecord, error)
}

type Service struct {
	stock stockRepo
}

func NewService(stock stockRepo) *Service {
	return &Service{stock: stock}
}

// Timeline fetches the opening balance and both movement directions for a
// product, optionally restricted to a date window, and builds the cumulative
// series. The opening balance is read fresh on every call since the store's
// endpoint is itself date-range-aware. Any failed fetch aborts the whole
// timeline; there is no partial fallback.
func (s *Service) Timeline(ctx context.Context, productID uuid.UUID, start, end *time.Time) ([]domain.StockTimelinePoint, error) {
	opening, err := s.stock.OpeningBalance(ctx, productID, start)
	if err != nil {
		return nil, fmt.Errorf("Timeline: opening balance: %w: %w", domain.ErrDataUnavailable, err)
	}

	inRecords, err := s.stock.Events(ctx, productID, domain.StockDirectionIn, start, end)
	if err != nil {
		return nil, fmt.Errorf("Timeline: stock-in events: %w: %w", domain.ErrDataUnavailable, err)
	}

	outRecords, err := s.stock.Events(ctx, productID, domain.StockDirectionOut, start, end)
	if err != nil {
		return nil, fmt.Errorf("Timeline: stock-out events: %w: %w", domain.ErrDataUnavailable, err)
	}

	return BuildTimeline(opening, inRecords, outRecords, start), nil
}
