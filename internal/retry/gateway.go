// Package retry wraps store mutations in a bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Policy bounds the retry loop. The wait before attempt n+1 is 2^n × BaseDelay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Gateway runs one mutation at a time through the policy. Attempts are
// strictly sequential and each wait elapses fully before the next attempt.
type Gateway struct {
	policy   Policy
	logger   *zap.Logger
	newTimer func() backoff.Timer
}

type Option func(*Gateway)

// WithTimer replaces the wall-clock timer used between attempts.
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(g *Gateway) { g.newTimer = newTimer }
}

func New(policy Policy, logger *zap.Logger, opts ...Option) *Gateway {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{policy: policy, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) schedule(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 2 * g.policy.BaseDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Hour
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(g.policy.MaxAttempts-1)), ctx)
}

// Do runs fn until it succeeds, fails with a non-transient error, or the
// attempts run out. Exhaustion yields *apperr.StoreUnavailableError.
func (g *Gateway) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		metrics.StoreRetriesTotal.WithLabelValues(op).Inc()
		g.logger.Warn("store mutation failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.policy.MaxAttempts),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	var timer backoff.Timer
	if g.newTimer != nil {
		timer = g.newTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, g.schedule(ctx), notify, timer)
	if err != nil && IsTransient(err) {
		metrics.StoreUnavailableTotal.WithLabelValues(op).Inc()
		g.logger.Error("store mutation abandoned",
			zap.String("operation", op),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return &apperr.StoreUnavailableError{Op: op, Err: err}
	}
	return err
}

// Run is Do for mutations that return a value.
func Run[T any](ctx context.Context, g *Gateway, op string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := g.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
