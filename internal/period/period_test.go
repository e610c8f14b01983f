package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		offset    int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "wednesday maps to its monday",
			ref:       time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC),
			offset:    0,
			wantStart: date(2025, 3, 10),
			wantEnd:   date(2025, 3, 16),
		},
		{
			name:      "monday is its own start",
			ref:       date(2025, 3, 10),
			offset:    0,
			wantStart: date(2025, 3, 10),
			wantEnd:   date(2025, 3, 16),
		},
		{
			name:      "sunday belongs to the preceding monday",
			ref:       date(2025, 3, 16),
			offset:    0,
			wantStart: date(2025, 3, 10),
			wantEnd:   date(2025, 3, 16),
		},
		{
			name:      "previous week",
			ref:       date(2025, 3, 12),
			offset:    -1,
			wantStart: date(2025, 3, 3),
			wantEnd:   date(2025, 3, 9),
		},
		{
			name:      "offset crosses a month boundary",
			ref:       date(2025, 3, 3),
			offset:    -1,
			wantStart: date(2025, 2, 24),
			wantEnd:   date(2025, 3, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.ref, tt.offset)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestWeekLabel(t *testing.T) {
	start, end := date(2025, 2, 24), date(2025, 3, 2)
	assert.Equal(t, "Minggu Ini", WeekLabel(0, start, end))
	assert.Equal(t, "Minggu Lalu", WeekLabel(-1, start, end))
	assert.Equal(t, "24 Feb - 02 Mar 2025", WeekLabel(-2, start, end))
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "07:00", want: 420},
		{raw: "07:15:30", want: 435},
		{raw: "  08:45 ", want: 525},
		{raw: "2025-03-12 07:12:00", want: 432},
		{raw: "2025-03-12T07:12:00", want: 432},
		{raw: "00:00", want: 0},
		{raw: "23:59", want: 1439},
		{raw: "", wantErr: true},
		{raw: "7:00", wantErr: true},
		{raw: "25:00", wantErr: true},
		{raw: "12:61", wantErr: true},
		{raw: "not-a-time", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ClockMinutes(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "07:05", NormalizeClock("07:05:59"))
	assert.Equal(t, "13:30", NormalizeClock("2025-03-12 13:30:00"))
	assert.Equal(t, "", NormalizeClock("bogus"))
}

func TestIsCurrentPeriod(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 3, 12, h, m, 0, 0, time.UTC)
	}

	assert.True(t, IsCurrentPeriod(at(8, 20), "08:00", "08:45"))
	assert.True(t, IsCurrentPeriod(at(8, 0), "08:00", "08:45"))
	assert.True(t, IsCurrentPeriod(at(8, 45), "08:00", "08:45"))
	assert.False(t, IsCurrentPeriod(at(7, 59), "08:00", "08:45"))
	assert.False(t, IsCurrentPeriod(at(8, 46), "08:00", "08:45"))
	assert.False(t, IsCurrentPeriod(at(8, 20), "bad", "08:45"))
}

func TestLateMinutes(t *testing.T) {
	got, err := LateMinutes("07:00", "07:12")
	require.NoError(t, err)
	assert.Equal(t, 12, got)

	got, err = LateMinutes("07:00", "06:55")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = LateMinutes("07:00", "07:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = LateMinutes("07:00", "later")
	require.Error(t, err)
}

func TestMinutesSinceStart(t *testing.T) {
	now := time.Date(2025, 3, 12, 8, 20, 0, 0, time.UTC)

	got, err := MinutesSinceStart(now, "08:00")
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	got, err = MinutesSinceStart(now, "09:00")
	require.NoError(t, err)
	assert.Equal(t, -40, got)
}

func TestDatesBetween(t *testing.T) {
	dates := DatesBetween(date(2025, 3, 10), date(2025, 3, 16))
	require.Len(t, dates, 7)
	assert.Equal(t, date(2025, 3, 10), dates[0])
	assert.Equal(t, date(2025, 3, 16), dates[6])

	assert.Nil(t, DatesBetween(date(2025, 3, 16), date(2025, 3, 10)))
	assert.Len(t, DatesBetween(date(2025, 3, 10), date(2025, 3, 10)), 1)
}
