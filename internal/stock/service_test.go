package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

type mockStockRepo struct {
	openingFn func(ctx context.Context, productID uuid.UUID, start *time.Time) (decimal.Decimal, error)
	eventsFn  func(ctx context.Context, productID uuid.UUID, direction domain.StockDirection, start, end *time.Time) ([]domain.StockRecord, error)
}

func (m *mockStockRepo) OpeningBalance(ctx context.Context, productID uuid.UUID, start *time.Time) (decimal.Decimal, error) {
	return m.openingFn(ctx, productID, start)
}

func (m *mockStockRepo) Events(ctx context.Context, productID uuid.UUID, direction domain.StockDirection, start, end *time.Time) ([]domain.StockRecord, error) {
	return m.eventsFn(ctx, productID, direction, start, end)
}

func TestTimeline_AssemblesBothDirections(t *testing.T) {
	repo := &mockStockRepo{
		openingFn: func(context.Context, uuid.UUID, *time.Time) (decimal.Decimal, error) {
			return dec("100"), nil
		},
		eventsFn: func(_ context.Context, _ uuid.UUID, direction domain.StockDirection, _, _ *time.Time) ([]domain.StockRecord, error) {
			if direction == domain.StockDirectionIn {
				return []domain.StockRecord{record("2024-01-05", "20")}, nil
			}
			return []domain.StockRecord{record("2024-01-03", "10")}, nil
		},
	}
	svc := NewService(repo)

	points, err := svc.Timeline(context.Background(), uuid.New(), nil, nil)

	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, points[2].Quantity.Equal(dec("110")))
}

func TestTimeline_OpeningBalanceFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	repo := &mockStockRepo{
		openingFn: func(context.Context, uuid.UUID, *time.Time) (decimal.Decimal, error) {
			return decimal.Zero, storeErr
		},
		eventsFn: func(context.Context, uuid.UUID, domain.StockDirection, *time.Time, *time.Time) ([]domain.StockRecord, error) {
			t.Fatal("events must not be fetched when the opening balance fails")
			return nil, nil
		},
	}
	svc := NewService(repo)

	points, err := svc.Timeline(context.Background(), uuid.New(), nil, nil)

	require.ErrorIs(t, err, domain.ErrDataUnavailable)
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, points)
}

func TestTimeline_EventFetchFailure(t *testing.T) {
	for _, failing := range []domain.StockDirection{domain.StockDirectionIn, domain.StockDirectionOut} {
		t.Run(string(failing), func(t *testing.T) {
			storeErr := errors.New("query timeout")
			repo := &mockStockRepo{
				openingFn: func(context.Context, uuid.UUID, *time.Time) (decimal.Decimal, error) {
					return dec("10"), nil
				},
				eventsFn: func(_ context.Context, _ uuid.UUID, direction domain.StockDirection, _, _ *time.Time) ([]domain.StockRecord, error) {
					if direction == failing {
						return nil, storeErr
					}
					return []domain.StockRecord{record("2024-01-02", "1")}, nil
				},
			}
			svc := NewService(repo)

			points, err := svc.Timeline(context.Background(), uuid.New(), nil, nil)

			require.ErrorIs(t, err, domain.ErrDataUnavailable)
			assert.Nil(t, points)
		})
	}
}

func TestTimeline_WindowForwardedToStore(t *testing.T) {
	start := day("2024-01-01")
	end := day("2024-02-01")

	repo := &mockStockRepo{
		openingFn: func(_ context.Context, _ uuid.UUID, gotStart *time.Time) (decimal.Decimal, error) {
			require.NotNil(t, gotStart)
			assert.Equal(t, start, *gotStart)
			return dec("7"), nil
		},
		eventsFn: func(_ context.Context, _ uuid.UUID, _ domain.StockDirection, gotStart, gotEnd *time.Time) ([]domain.StockRecord, error) {
			require.NotNil(t, gotStart)
			require.NotNil(t, gotEnd)
			assert.Equal(t, start, *gotStart)
			assert.Equal(t, end, *gotEnd)
			return nil, nil
		},
	}
	svc := NewService(repo)

	points, err := svc.Timeline(context.Background(), uuid.New(), &start, &end)

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, start, points[0].Date)
}
