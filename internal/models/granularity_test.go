package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGranularity_Prefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "H", GranularityHourly.Prefix())
	assert.Equal(t, "D", GranularityDaily.Prefix())
}

func TestGranularity_Invalid(t *testing.T) {
	t.Parallel()

	invalid := Granularity("weekly")
	testTime := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)

	assert.False(t, invalid.Valid())
	assert.Panics(t, func() { invalid.Prefix() }, "Prefix should panic on invalid Granularity")
	assert.Panics(t, func() { invalid.Layout() }, "Layout should panic on invalid Granularity")
	assert.Panics(t, func() { invalid.Truncate(testTime) }, "Truncate should panic on invalid Granularity")
}

func TestGranularity_Bucket(t *testing.T) {
	t.Parallel()

	testTime := time.Date(2024, 1, 15, 14, 37, 12, 999, time.UTC)

	tests := []struct {
		name        string
		granularity Granularity
		input       time.Time
		bucket      string
		sortKey     string
	}{
		{
			name:        "hourly truncates to hour",
			granularity: GranularityHourly,
			input:       testTime,
			bucket:      "2024-01-15T14",
			sortKey:     "H#2024-01-15T14",
		},
		{
			name:        "daily truncates to day",
			granularity: GranularityDaily,
			input:       testTime,
			bucket:      "2024-01-15",
			sortKey:     "D#2024-01-15",
		},
		{
			name:        "hourly converts to UTC",
			granularity: GranularityHourly,
			input:       time.Date(2024, 1, 15, 21, 5, 0, 0, time.FixedZone("EST", -5*3600)),
			bucket:      "2024-01-16T02",
			sortKey:     "H#2024-01-16T02",
		},
		{
			name:        "daily converts to UTC before truncating",
			granularity: GranularityDaily,
			input:       time.Date(2024, 1, 15, 21, 5, 0, 0, time.FixedZone("EST", -5*3600)),
			bucket:      "2024-01-16",
			sortKey:     "D#2024-01-16",
		},
		{
			name:        "hourly at midnight",
			granularity: GranularityHourly,
			input:       time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			bucket:      "2024-02-29T00",
			sortKey:     "H#2024-02-29T00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.bucket, tt.granularity.Bucket(tt.input))
			assert.Equal(t, tt.sortKey, tt.granularity.SortKey(tt.input))
		})
	}
}

func TestGranularity_Truncate(t *testing.T) {
	t.Parallel()

	input := time.Date(2024, 1, 15, 14, 37, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC), GranularityHourly.Truncate(input))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), GranularityDaily.Truncate(input))
}
