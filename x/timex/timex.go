package timex

import (
	"time"

	"github.com/benbjohnson/clock"
)

// EpochMs returns c's wall time as Unix milliseconds.
func EpochMs(c clock.Clock) int64 { return c.Now().UnixMilli() }

// PeriodFromHz returns the period of freqHz. freqHz==0 is coerced to 1 to
// avoid division by zero.
func PeriodFromHz(freqHz uint32) time.Duration {
	if freqHz == 0 {
		freqHz = 1
	}
	return time.Second / time.Duration(freqHz)
}

// Ms converts a millisecond count from config into a Duration; negative
// counts become 0.
func Ms(ms int) time.Duration {
	if ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
