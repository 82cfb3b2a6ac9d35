package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatRelative renders t relative to now in the short form used by the carousel.
// Example: 3 hours before now -> "3h ago", 40 days before now -> "Feb 8"
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "Recently"
	}

	diff := now.Sub(t)
	hours := int(math.Floor(diff.Hours()))
	days := int(math.Floor(float64(hours) / 24))

	switch {
	case hours < 1:
		minutes := int(math.Floor(diff.Minutes()))
		if minutes < 1 {
			return "Just now"
		}
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	}

	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

// FormatBytes converts a byte count into a SI string.
// Example: 10485760 -> "10 MB"
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Percentage returns used/total as a rounded integer percentage.
func Percentage(used, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(used) / float64(total) * 100))
}
