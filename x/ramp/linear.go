// Package ramp steps a level linearly towards a target on caller-supplied
// timing, so the same ramp runs against a real or a mock clock.
package ramp

import (
	"time"

	"github.com/benbjohnson/clock"

	"nimbus-go/x/mathx"
)

// Step applies a new level in [0..top].
type Step func(level uint16)

// Tick waits for d and reports whether to continue; false cancels the ramp
// where it stands.
type Tick func(d time.Duration) bool

// Linear moves from cur to to in steps increments spread over d, calling
// set whenever the integer level changes. The final level is always
// applied unless tick cancels. steps == 0 or d <= 0 jumps straight to to.
func Linear(cur, to, top uint16, d time.Duration, steps uint16, tick Tick, set Step) {
	to = mathx.Min(to, top)
	if steps == 0 || d <= 0 {
		set(to)
		return
	}
	stepDur := d / time.Duration(steps)
	if stepDur < time.Millisecond {
		stepDur = time.Millisecond
	}

	// Bresenham-style accumulator keeps the integer steps evenly spaced.
	delta := int32(to) - int32(cur)
	n := int32(steps)
	acc := int32(0)
	level := int32(cur)
	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += delta
		if inc := acc / n; inc != 0 {
			acc -= inc * n
			level = mathx.Clamp(level+inc, 0, int32(top))
			set(uint16(level))
		}
	}
	if !tick(stepDur) {
		return
	}
	set(to)
}

// ClockTick sleeps on c and stops once done is closed.
func ClockTick(c clock.Clock, done <-chan struct{}) Tick {
	return func(d time.Duration) bool {
		t := c.Timer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return true
		case <-done:
			return false
		}
	}
}
