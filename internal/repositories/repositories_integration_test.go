//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/database"
	"resto-backend/internal/db"
	"resto-backend/internal/models"
	"resto-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// newTestPool starts a throwaway PostgreSQL, migrates it and returns a pool.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("resto_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.NewMigrator(dsn, zap.NewNop()).Up())

	pool, err := db.Connect(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestRepositories(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	bills := NewBillRepository(pool)
	tables := NewTableRepository(pool)
	menu := NewMenuItemRepository(pool)

	now := time.Date(2024, 3, 5, 13, 0, 0, 0, timeutil.Local)

	dosa := models.MenuItem{ID: uuid.New(), Name: "Masala Dosa", Category: "South Indian", Price: "80.00", IsAvailable: true, CreatedAt: now, UpdatedAt: now}
	lassi := models.MenuItem{ID: uuid.New(), Name: "Mango Lassi", Category: "Beverages", Price: "70.00", IsAvailable: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, menu.CreateMenuItem(ctx, &dosa))
	require.NoError(t, menu.CreateMenuItem(ctx, &lassi))

	table := models.Table{ID: uuid.New(), Name: "T1", Section: "Patio", Status: models.TableBlank, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, tables.CreateTable(ctx, &table))

	cash := "cash"
	bill := models.Bill{
		ID: uuid.New(), CreatedAt: now, TotalAmount: "230.00", PaymentType: &cash,
		TableID: &table.ID, TableName: &table.Name, Section: &table.Section,
	}
	bill.Items = []models.BillItem{
		{ID: uuid.New(), BillID: bill.ID, MenuItemID: lassi.ID, Quantity: 1, Price: "70.00"},
		{ID: uuid.New(), BillID: bill.ID, MenuItemID: dosa.ID, Quantity: 2, Price: "80.00"},
	}
	require.NoError(t, bills.CreateBill(ctx, &bill))

	t.Run("range queries are inclusive of the day end", func(t *testing.T) {
		day := timeutil.StartOfDay(now)
		got, err := bills.ListBillsBetween(ctx, day, timeutil.EndOfDay(day))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].TotalAmount.Decimal().Equal(bill.TotalAmount.Decimal()))

		lines, err := bills.ListItemsBetween(ctx, day, timeutil.EndOfDay(day))
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "Mango Lassi", lines[0].MenuItemName, "lines keep bill order")
		assert.Equal(t, "Masala Dosa", lines[1].MenuItemName)

		next := day.AddDate(0, 0, 1)
		got, err = bills.ListBillsBetween(ctx, next, timeutil.EndOfDay(next))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("menu item in use cannot be deleted", func(t *testing.T) {
		err := menu.DeleteMenuItem(ctx, dosa.ID)
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("update missing table is not found", func(t *testing.T) {
		missing := models.Table{ID: uuid.New(), Name: "X", Section: "Y", Status: models.TableBlank, UpdatedAt: now}
		err := tables.UpdateTable(ctx, &missing)
		var nf *apperr.NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("clearing a table keeps the bill", func(t *testing.T) {
		n, err := bills.ClearTableReference(ctx, table.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		require.NoError(t, tables.DeleteTable(ctx, table.ID))

		got, err := bills.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		assert.Nil(t, got.TableID)
		assert.Nil(t, got.TableName)
		assert.Nil(t, got.Section)
		assert.Len(t, got.Items, 2)

		err = tables.DeleteTable(ctx, table.ID)
		var nf *apperr.NotFoundError
		assert.True(t, errors.As(err, &nf))
	})
}
