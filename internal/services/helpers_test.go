package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"resto-backend/internal/models"
	"resto-backend/internal/repositories/memory"
	"resto-backend/internal/retry"
	"resto-backend/internal/timeutil"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) timeutil.Clock {
	return func() time.Time { return t }
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, timeutil.Local)
}

// instantTimer fires immediately and records the waits it was asked for.
type instantTimer struct {
	mu    sync.Mutex
	waits []time.Duration
	c     chan time.Time
}

func newInstantTimer() *instantTimer {
	return &instantTimer{c: make(chan time.Time, 1)}
}

func (f *instantTimer) Start(d time.Duration) {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.mu.Unlock()
	f.c <- time.Time{}
}

func (f *instantTimer) Stop()               {}
func (f *instantTimer) C() <-chan time.Time { return f.c }

func (f *instantTimer) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.waits...)
}

func testGateway(timer *instantTimer) *retry.Gateway {
	return retry.New(retry.DefaultPolicy(), nil, retry.WithTimer(func() backoff.Timer { return timer }))
}

func seedMenuItem(t *testing.T, s *memory.Store, name, category, price string) models.MenuItem {
	t.Helper()
	m := models.MenuItem{ID: uuid.New(), Name: name, Category: category, Price: models.Amount(price), IsAvailable: true}
	require.NoError(t, s.CreateMenuItem(context.Background(), &m))
	return m
}

type line struct {
	item models.MenuItem
	qty  int
}

// seedBill stores a bill whose total is the sum of its lines, or amount when
// no lines are given.
func seedBill(t *testing.T, s *memory.Store, when time.Time, amount string, lines ...line) models.Bill {
	t.Helper()
	b := models.Bill{ID: uuid.New(), CreatedAt: when, TotalAmount: models.Amount(amount)}
	for _, l := range lines {
		b.Items = append(b.Items, models.BillItem{
			ID: uuid.New(), BillID: b.ID, MenuItemID: l.item.ID, Quantity: l.qty, Price: l.item.Price,
		})
	}
	require.NoError(t, s.CreateBill(context.Background(), &b))
	return b
}

type recordingNotifier struct {
	events []models.TableEvent
}

func (r *recordingNotifier) Publish(ev models.TableEvent) {
	r.events = append(r.events, ev)
}

var errConnectTimeout = errors.New("TypeError: fetch failed (Connect Timeout Error)")

// flakyStore fails the first n calls of the wrapped mutations with err.
type flakyStore struct {
	*memory.Store
	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

func (f *flakyStore) fail() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return f.err
	}
	return nil
}

func (f *flakyStore) UpdateTable(ctx context.Context, t *models.Table) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.Store.UpdateTable(ctx, t)
}

func (f *flakyStore) DeleteTable(ctx context.Context, id uuid.UUID) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.Store.DeleteTable(ctx, id)
}

func (f *flakyStore) UpdateMenuItem(ctx context.Context, m *models.MenuItem) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.Store.UpdateMenuItem(ctx, m)
}

// failingRange fails bill range queries that start at failStart.
type failingRange struct {
	*memory.Store
	failStart time.Time
}

func (f *failingRange) ListBillsBetween(ctx context.Context, start, end time.Time) ([]models.Bill, error) {
	if start.Equal(f.failStart) {
		return nil, errors.New("fetch failed")
	}
	return f.Store.ListBillsBetween(ctx, start, end)
}
