package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"zero", time.Time{}, "Recently"},
		{"seconds", now.Add(-30 * time.Second), "Just now"},
		{"future", now.Add(time.Hour), "Just now"},
		{"minutes", now.Add(-20 * time.Minute), "20m ago"},
		{"hours", now.Add(-5 * time.Hour), "5h ago"},
		{"days", now.Add(-50 * time.Hour), "2d ago"},
		{"weeks", now.Add(-15 * 24 * time.Hour), "2w ago"},
		{"same year", now.Add(-40 * 24 * time.Hour), "Feb 8"},
		{"previous year", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), "Dec 1, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelative(tt.at, now))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "10 MB", FormatBytes(10485760))
	assert.Equal(t, "0 B", FormatBytes(-1))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(10, 0))
	assert.Equal(t, 50, Percentage(5242880, 10485760))
	assert.Equal(t, 33, Percentage(1, 3))
}
