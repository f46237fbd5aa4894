// Package timeutil formats session durations and timestamps for the
// terminal's analytics commands.
package timeutil

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as whole hours, minutes and seconds,
// for example "1h 3m 9s". Negative durations clamp to zero.
func FormatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// Clock renders a local time of day in 12-hour form, e.g. "3:04:05 PM".
func Clock(t time.Time) string {
	return t.Format("3:04:05 PM")
}
