//go:build linux

package linux

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/ardnew/softcec/follower/hal"
)

// monotonicNow reads CLOCK_MONOTONIC, the clock the CEC framework stamps
// messages with.
func monotonicNow() (hal.Timestamp, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	return hal.Timestamp(ts.Nano()), nil
}

// WallClock converts an adapter timestamp to wall-clock time by offsetting
// it from the current monotonic reading. A zero timestamp stays the zero
// time.
func WallClock(ts hal.Timestamp) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	now := time.Now()
	mono, err := monotonicNow()
	if err != nil {
		return time.Time{}
	}
	return now.Add(-time.Duration(int64(mono) - int64(ts)))
}

// FormatWallClock renders ts as local wall-clock time with microseconds.
func FormatWallClock(ts hal.Timestamp) string {
	t := WallClock(ts)
	if t.IsZero() {
		return "0"
	}
	return t.Format("2006-01-02 15:04:05.000000")
}
