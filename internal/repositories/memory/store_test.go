package memory

import (
	"context"
	"testing"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillRangeQueries(t *testing.T) {
	ctx := context.Background()
	s := New()

	dosa := models.MenuItem{ID: uuid.New(), Name: "Masala Dosa", Category: "South Indian", Price: "80"}
	require.NoError(t, s.CreateMenuItem(ctx, &dosa))

	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for i, h := range []int{9, 13, 30} {
		b := models.Bill{
			ID:          uuid.New(),
			CreatedAt:   base.Add(time.Duration(h) * time.Hour),
			TotalAmount: "80",
			Items:       []models.BillItem{{ID: uuid.New(), MenuItemID: dosa.ID, Quantity: i + 1, Price: "80"}},
		}
		require.NoError(t, s.CreateBill(ctx, &b))
	}

	end := base.Add(24*time.Hour - time.Millisecond)
	bills, err := s.ListBillsBetween(ctx, base, end)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.True(t, bills[0].CreatedAt.After(bills[1].CreatedAt), "newest first")

	items, err := s.ListItemsBetween(ctx, base, end)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity, "oldest bill first")
	assert.Equal(t, "Masala Dosa", items[0].MenuItemName)
}

func TestCreateBillRejectsUnknownMenuItem(t *testing.T) {
	s := New()
	b := models.Bill{ID: uuid.New(), Items: []models.BillItem{{MenuItemID: uuid.New(), Quantity: 1}}}

	var validation *apperr.ValidationError
	assert.ErrorAs(t, s.CreateBill(context.Background(), &b), &validation)
}

func TestClearTableReferenceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()

	table := models.Table{ID: uuid.New(), Name: "T1", Section: "Garden"}
	require.NoError(t, s.CreateTable(ctx, &table))

	name, section := "T1", "Garden"
	b := models.Bill{ID: uuid.New(), TotalAmount: "100", TableID: &table.ID, TableName: &name, Section: &section}
	require.NoError(t, s.CreateBill(ctx, &b))

	n, err := s.ClearTableReference(ctx, table.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.ClearTableReference(ctx, table.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := s.GetBill(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TableID)
	assert.Nil(t, got.TableName)
	assert.Nil(t, got.Section)
	assert.Equal(t, models.Amount("100"), got.TotalAmount)
}

func TestTableNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, s.UpdateTable(ctx, &models.Table{ID: uuid.New()}), &notFound)
	assert.ErrorAs(t, s.DeleteTable(ctx, uuid.New()), &notFound)
	_, err := s.GetTable(ctx, uuid.New())
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteMenuItemInUse(t *testing.T) {
	ctx := context.Background()
	s := New()

	item := models.MenuItem{ID: uuid.New(), Name: "Tea", Category: "Beverage", Price: "20"}
	require.NoError(t, s.CreateMenuItem(ctx, &item))
	b := models.Bill{ID: uuid.New(), TotalAmount: "20", Items: []models.BillItem{{ID: uuid.New(), MenuItemID: item.ID, Quantity: 1, Price: "20"}}}
	require.NoError(t, s.CreateBill(ctx, &b))

	var validation *apperr.ValidationError
	assert.ErrorAs(t, s.DeleteMenuItem(ctx, item.ID), &validation)
}
