package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBoundaries(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 4, 5, 0, Local)

	start := StartOfDay(ts)
	end := EndOfDay(ts)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, Local), start)
	assert.Equal(t, 999*time.Millisecond, time.Duration(end.Nanosecond()))
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 14, end.Day())
}

func TestDateKeyUsesBusinessZone(t *testing.T) {
	// 20:00 UTC is already the next day in IST.
	utc := time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-01", DateKey(utc))
}

func TestSetLocation(t *testing.T) {
	prev := Local
	t.Cleanup(func() { Local = prev })

	require.NoError(t, SetLocation("UTC"))
	assert.Equal(t, "UTC", Local.String())

	assert.Error(t, SetLocation("Mars/Olympus"))
	assert.Equal(t, "UTC", Local.String())

	require.NoError(t, SetLocation(""))
	assert.Equal(t, "UTC", Local.String())
}
