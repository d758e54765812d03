package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdesk/internal/domains/schedule/recurrence"
)

func TestExpandWeekly(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	count := 3

	windows, err := recurrence.Expand(start, end, recurrence.FrequencyWeekly, &count, nil)
	require.NoError(t, err)
	require.Len(t, windows, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), windows[0].End)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), windows[1].Start)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC), windows[1].End)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), windows[2].Start)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), windows[2].End)
}

func TestExpandDailyUntilEndDate(t *testing.T) {
	start := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	until := time.Date(2024, 3, 13, 23, 59, 59, 0, time.UTC)

	windows, err := recurrence.Expand(start, end, recurrence.FrequencyDaily, nil, &until)
	require.NoError(t, err)
	require.Len(t, windows, 4)

	assert.Equal(t, time.Date(2024, 3, 13, 14, 0, 0, 0, time.UTC), windows[3].Start)
}

func TestExpandMonthlyNormalizesOverflow(t *testing.T) {
	start := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 11, 0, 0, 0, time.UTC)
	count := 2

	windows, err := recurrence.Expand(start, end, recurrence.FrequencyMonthly, &count, nil)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	// 2024 is a leap year, Jan 31 + 1 month normalizes to Mar 2.
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), windows[1].Start)
}

func TestExpandCountAndEndDateWhicheverFirst(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 8, 45, 0, 0, time.UTC)
	count := 10
	until := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	windows, err := recurrence.Expand(start, end, recurrence.FrequencyDaily, &count, &until)
	require.NoError(t, err)
	assert.Len(t, windows, 3)
}

func TestExpandRequiresTermination(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	_, err := recurrence.Expand(start, end, recurrence.FrequencyDaily, nil, nil)
	assert.ErrorIs(t, err, recurrence.ErrNoTermination)
}

func TestExpandUnknownFrequency(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	count := 2

	_, err := recurrence.Expand(start, end, recurrence.Frequency("YEARLY"), &count, nil)
	assert.ErrorIs(t, err, recurrence.ErrUnknownFrequency)
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "DAILY"},
		{value: "WEEKLY"},
		{value: "MONTHLY"},
		{value: "daily", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			_, err := recurrence.ParseFrequency(test.value)
			if test.wantErr {
				assert.ErrorIs(t, err, recurrence.ErrUnknownFrequency)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
