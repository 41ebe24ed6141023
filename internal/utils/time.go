package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a completion time as "Xm Ys" for leaderboards.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d.Round(time.Second).Seconds())
	minutes := total / 60
	seconds := total % 60

	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// Deadline derives the server-side cutoff for a timed attempt.
func Deadline(startedAt time.Time, durationMinutes *int) *time.Time {
	if durationMinutes == nil || *durationMinutes <= 0 {
		return nil
	}
	deadline := startedAt.Add(time.Duration(*durationMinutes) * time.Minute)
	return &deadline
}
