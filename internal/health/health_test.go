package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func TestCheckBasic(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "healthy", NewHealthChecker(up, nil).CheckBasic(ctx).Status)

	st := NewHealthChecker(down, nil).CheckBasic(ctx)
	assert.Equal(t, "unhealthy", st.Status)
	assert.Equal(t, "connection refused", st.Database.Error)
	assert.Nil(t, st.Cache)
}

func TestCacheDoesNotAffectReadiness(t *testing.T) {
	st := NewHealthChecker(up, down).CheckBasic(context.Background())
	assert.Equal(t, "healthy", st.Status)
	require.NotNil(t, st.Cache)
	assert.Equal(t, "unhealthy", st.Cache.Status)
}

func TestCheckDetailed(t *testing.T) {
	st := NewHealthChecker(up, nil).CheckDetailed(context.Background())
	assert.Equal(t, "healthy", st.Status)
	assert.Positive(t, st.System.Goroutines)
	assert.NotEmpty(t, st.System.Uptime)
}
