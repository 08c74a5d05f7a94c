package services

import (
	"context"
	"testing"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/models"
	"resto-backend/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	flaky := &flakyStore{Store: store, failures: 1, err: errConnectTimeout}
	timer := newInstantTimer()
	svc := NewMenuService(flaky, testGateway(timer), nil, fixedClock(at(2024, 3, 1, 9, 0)))

	item, err := svc.Create(ctx, &models.MenuItemRequest{Name: "Idli", Category: "South Indian", Price: "40"})
	require.NoError(t, err)
	assert.Equal(t, models.Amount("40.00"), item.Price)
	assert.True(t, item.IsAvailable)

	off := false
	updated, err := svc.Update(ctx, item.ID, &models.MenuItemRequest{Name: "Idli", Category: "South Indian", Price: "45.5", IsAvailable: &off})
	require.NoError(t, err)
	assert.Equal(t, models.Amount("45.50"), updated.Price)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, []time.Duration{2 * time.Second}, timer.Waits())

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsAvailable)

	require.NoError(t, svc.Delete(ctx, item.ID))
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, svc.Delete(ctx, item.ID), &notFound)
}

func TestMenuRejectsBadPrice(t *testing.T) {
	svc := NewMenuService(memory.New(), testGateway(newInstantTimer()), nil, nil)

	for _, price := range []models.Amount{"abc", "-5"} {
		_, err := svc.Create(context.Background(), &models.MenuItemRequest{Name: "X", Category: "Y", Price: price})
		var validation *apperr.ValidationError
		assert.ErrorAs(t, err, &validation, string(price))
	}
}
