package period

import (
	"testing"
	"time"

	"resto-backend/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = time.FixedZone("IST", 5*60*60+30*60)

func TestMonth(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		lastDay int
	}{
		{"january", "2025-01", 31},
		{"february non-leap", "2025-02", 28},
		{"february leap", "2024-02", 29},
		{"april", "2025-04", 30},
		{"december rolls year", "2025-12", 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := FromMonthToken(tt.token, loc)
			require.NoError(t, err)

			assert.Equal(t, 1, r.Start.Day())
			assert.Equal(t, 0, r.Start.Hour())
			assert.Equal(t, tt.lastDay, r.End.Day())
			assert.Equal(t, r.Start.Month(), r.End.Month())
			assert.Equal(t, 23, r.End.Hour())
			assert.Equal(t, 59, r.End.Minute())
			assert.Equal(t, 59, r.End.Second())
			assert.Equal(t, int(999*time.Millisecond), r.End.Nanosecond())
			assert.Equal(t, tt.lastDay, r.Days())
			assert.Equal(t, tt.token, r.MonthToken())
		})
	}
}

func TestParseMonthRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "2025", "2025-xx", "abcd-01", "2025-13", "2025-00", "2025-01-01"} {
		t.Run(token, func(t *testing.T) {
			_, err := FromMonthToken(token, loc)
			require.Error(t, err)

			var verr *apperr.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLastDays(t *testing.T) {
	now := time.Date(2025, 3, 3, 14, 30, 0, 0, loc)

	r := LastDays(now, 7)

	assert.Equal(t, time.Date(2025, 2, 25, 0, 0, 0, 0, loc), r.Start)
	assert.Equal(t, 3, r.End.Day())
	assert.Equal(t, 23, r.End.Hour())
	assert.Equal(t, 7, r.Days())
	assert.True(t, r.Contains(now))
}

func TestLastDaysSingleDay(t *testing.T) {
	now := time.Date(2025, 3, 3, 14, 30, 0, 0, loc)

	r := LastDays(now, 1)
	assert.Equal(t, 1, r.Days())

	assert.Equal(t, 1, LastDays(now, 0).Days())
}

func TestPreviousMonth(t *testing.T) {
	t.Run("mid year", func(t *testing.T) {
		r := PreviousMonth(Month(2025, time.March, loc))
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), r.Start)
		assert.Equal(t, 28, r.End.Day())
	})

	t.Run("january wraps to december", func(t *testing.T) {
		r := PreviousMonth(Month(2025, time.January, loc))
		assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, loc), r.Start)
		assert.Equal(t, 31, r.End.Day())
	})

	t.Run("trailing window starting mid month", func(t *testing.T) {
		window := LastDays(time.Date(2025, 3, 31, 9, 0, 0, 0, loc), 30)
		r := PreviousMonth(window)
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), r.Start)
	})
}

func TestDay(t *testing.T) {
	r, err := Day("2025-10-05", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 5, 0, 0, 0, 0, loc), r.Start)
	assert.Equal(t, 1, r.Days())

	_, err = Day("05/10/2025", loc)
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestMonthOrLastDays(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, loc)

	r, err := MonthOrLastDays("", now, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, r.Days())

	r, err = MonthOrLastDays("2025-01", now, 30)
	require.NoError(t, err)
	assert.Equal(t, 31, r.Days())
}
