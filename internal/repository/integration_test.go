package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
	"github.com/seyram-dev/pos-backoffice/internal/repository"
	"github.com/seyram-dev/pos-backoffice/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStockRepository_OpeningBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewStockRepository(db)
	ctx := context.Background()

	productID := testutil.SeedProduct(t, db, "50kg rice bag", dec("100"))
	testutil.SeedStockMovement(t, db, productID, domain.StockDirectionIn, dec("20"), day("2024-01-05"))
	testutil.SeedStockMovement(t, db, productID, domain.StockDirectionOut, dec("10"), day("2024-01-03"))

	t.Run("without start returns recorded opening", func(t *testing.T) {
		opening, err := repo.OpeningBalance(ctx, productID, nil)
		require.NoError(t, err)
		assert.True(t, opening.Equal(dec("100")))
	})

	t.Run("with start nets movements strictly before it", func(t *testing.T) {
		start := day("2024-01-04")
		opening, err := repo.OpeningBalance(ctx, productID, &start)
		require.NoError(t, err)
		assert.True(t, opening.Equal(dec("90")))
	})

	t.Run("movement on the start date is excluded", func(t *testing.T) {
		start := day("2024-01-03")
		opening, err := repo.OpeningBalance(ctx, productID, &start)
		require.NoError(t, err)
		assert.True(t, opening.Equal(dec("100")))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := repo.OpeningBalance(ctx, uuid.New(), nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStockRepository_Events(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewStockRepository(db)
	ctx := context.Background()

	productID := testutil.SeedProduct(t, db, "cooking oil 5L", dec("0"))
	testutil.SeedStockMovement(t, db, productID, domain.StockDirectionIn, dec("30"), day("2024-01-10"))
	testutil.SeedStockMovement(t, db, productID, domain.StockDirectionIn, dec("5"), day("2024-01-02"))
	testutil.SeedStockMovement(t, db, productID, domain.StockDirectionOut, dec("12"), day("2024-01-06"))

	t.Run("ordered by date per direction", func(t *testing.T) {
		records, err := repo.Events(ctx, productID, domain.StockDirectionIn, nil, nil)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, records[0].Quantity.Equal(dec("5")))
		assert.True(t, records[1].Quantity.Equal(dec("30")))
	})

	t.Run("window is inclusive on both ends", func(t *testing.T) {
		start := day("2024-01-02")
		end := day("2024-01-06")

		ins, err := repo.Events(ctx, productID, domain.StockDirectionIn, &start, &end)
		require.NoError(t, err)
		require.Len(t, ins, 1)
		assert.True(t, ins[0].Quantity.Equal(dec("5")))

		outs, err := repo.Events(ctx, productID, domain.StockDirectionOut, &start, &end)
		require.NoError(t, err)
		require.Len(t, outs, 1)
		assert.True(t, outs[0].Quantity.Equal(dec("12")))
	})

	t.Run("no movements yields empty", func(t *testing.T) {
		records, err := repo.Events(ctx, uuid.New(), domain.StockDirectionIn, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestOperatorRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOperatorRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedOperator(t, db, "seyram@backoffice.local", "Seyram Dotse")

	t.Run("found", func(t *testing.T) {
		op, err := repo.GetByEmail(ctx, "seyram@backoffice.local")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, op.ID)
		assert.Equal(t, domain.OperatorStatusActive, op.Status)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@backoffice.local")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
