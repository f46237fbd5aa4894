package timeutil

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0h 0m 0s"},
		{5 * time.Second, "0h 0m 5s"},
		{61 * time.Second, "0h 1m 1s"},
		{3661 * time.Second, "1h 1m 1s"},
		{25 * time.Hour, "25h 0m 0s"},
		{-time.Second, "0h 0m 0s"},
	}
	for _, tc := range cases {
		if got := FormatElapsed(tc.in); got != tc.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 15, 4, 5, 0, time.Local)
	if got := Clock(at); got != "3:04:05 PM" {
		t.Fatalf("Clock = %q", got)
	}
}
