package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"resto-backend/internal/apperr"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer fires immediately and records every wait it was asked for.
type fakeTimer struct {
	waits []time.Duration
	c     chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{c: make(chan time.Time, 1)}
}

func (f *fakeTimer) Start(d time.Duration) {
	f.waits = append(f.waits, d)
	f.c <- time.Time{}
}

func (f *fakeTimer) Stop()               {}
func (f *fakeTimer) C() <-chan time.Time { return f.c }

func (f *fakeTimer) total() (d time.Duration) {
	for _, w := range f.waits {
		d += w
	}
	return d
}

func newTestGateway(timer *fakeTimer) *Gateway {
	return New(DefaultPolicy(), nil, WithTimer(func() backoff.Timer { return timer }))
}

func TestGatewaySucceedsAfterTransientFailures(t *testing.T) {
	timer := newFakeTimer()
	g := newTestGateway(timer)

	calls := 0
	err := g.Do(context.Background(), "tables.update", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("TypeError: fetch failed (Connect Timeout Error)")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, timer.waits)
	assert.GreaterOrEqual(t, timer.total(), 6*time.Second)
}

func TestGatewayNonTransientFailsImmediately(t *testing.T) {
	timer := newFakeTimer()
	g := newTestGateway(timer)

	calls := 0
	violation := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	err := g.Do(context.Background(), "tables.update", func(context.Context) error {
		calls++
		return violation
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, timer.waits)
	assert.ErrorIs(t, err, violation)
}

func TestGatewayExhaustion(t *testing.T) {
	timer := newFakeTimer()
	g := newTestGateway(timer)

	calls := 0
	err := g.Do(context.Background(), "tables.delete", func(context.Context) error {
		calls++
		return &apperr.TransientConnectivityError{Err: errors.New("dial tcp: i/o timeout")}
	})

	var unavailable *apperr.StoreUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "tables.delete", unavailable.Op)
	assert.Equal(t, 3, calls)
	assert.Len(t, timer.waits, 2)
	assert.Contains(t, err.Error(), "failed after multiple attempts")
}

func TestGatewayNotFoundIsNotRetried(t *testing.T) {
	timer := newFakeTimer()
	g := newTestGateway(timer)

	calls := 0
	err := g.Do(context.Background(), "tables.update", func(context.Context) error {
		calls++
		return apperr.NotFound("Table", "t1")
	})

	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, calls)
}

func TestGatewayStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := New(Policy{MaxAttempts: 3, BaseDelay: time.Hour}, nil)

	calls := 0
	err := g.Do(ctx, "tables.update", func(context.Context) error {
		calls++
		cancel()
		return errors.New("connection refused")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRunReturnsValue(t *testing.T) {
	timer := newFakeTimer()
	g := newTestGateway(timer)

	calls := 0
	got, err := Run(context.Background(), g, "menu.update", func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", syscall.ECONNRESET
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, []time.Duration{2 * time.Second}, timer.waits)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "deadline" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connect timeout message", errors.New("Connect Timeout Error"), true},
		{"undici code", errors.New("UND_ERR_CONNECT_TIMEOUT"), true},
		{"fetch failed", fmt.Errorf("update table: %w", errors.New("fetch failed")), true},
		{"typed transient", &apperr.TransientConnectivityError{Err: errors.New("x")}, true},
		{"net timeout", timeoutErr{}, true},
		{"connection refused errno", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"constraint violation", &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}, false},
		{"plain message", errors.New("constraint violation"), false},
		{"canceled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
