package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"excel serial with decimal", "45658.0", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"excel serial integer", "45658", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"day-monthname-year", "15-Jan-2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"day-monthname-2digit-year", "15-Jan-25", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"full month name", "3-September-2025", time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)},
		{"sept abbreviation", "3-Sept-2025", time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)},
		{"iso", "2025-01-15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"iso single digit", "2025-1-5", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"iso embedded in timestamp", "2025-01-15 00:00:00", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"dd-mm-yyyy", "15-01-2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"dd/mm/yyyy", "15/01/2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"dotted", "15.01.2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "  ", "not a date", "9999", "--"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestExcelSerialRoundTrip(t *testing.T) {
	for _, serial := range []float64{1, 59, 61, 367, 45658, 47000} {
		date := ExcelSerialToDate(serial)
		assert.Equal(t, serial, DateToExcelSerial(date), "serial %v", serial)
	}
}

func TestWeekKeyBuckets(t *testing.T) {
	tests := []struct {
		day  int
		week int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {21, 3}, {22, 4}, {28, 4}, {29, 5}, {31, 5},
	}
	for _, tc := range tests {
		_, _, week := WeekKey(time.Date(2025, 1, tc.day, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tc.week, week, "day %d", tc.day)
	}
}

func TestFormatWeekKeySortable(t *testing.T) {
	assert.Equal(t, "2025-01-W03", FormatWeekKey(2025, 1, 3))
	assert.Less(t, FormatWeekKey(2025, 9, 5), FormatWeekKey(2025, 10, 1))
}

func TestTimeToHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"09:00", 9.0},
		{"09:30", 9.5},
		{"09:30:30", 9.5 + 30.0/3600.0},
		{"9.30", 9.5},
		{"0.5", 12.0}, // Excel fractional day
		{"0.375", 9.0},
		{"", 0.0},
		{"bogus", 0.0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, timeToHours(tc.in), 1e-9, "input %q", tc.in)
	}
}

func TestDurationHoursOvernight(t *testing.T) {
	assert.InDelta(t, 8.0, durationHours("22:00", "06:00"), 1e-9)
	assert.InDelta(t, 9.0, durationHours("09:00", "18:00"), 1e-9)
	assert.Zero(t, durationHours("", "18:00"))
	assert.Zero(t, durationHours("09:00", ""))
}
