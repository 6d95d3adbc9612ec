package ramp

import (
	"testing"
	"time"
)

func instant(time.Duration) bool { return true }

func TestLinearReachesTarget(t *testing.T) {
	var got []uint16
	Linear(0, 100, 100, time.Second, 10, instant, func(l uint16) { got = append(got, l) })
	if len(got) != 10 {
		t.Fatalf("steps=%d want 10 (%v)", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("not monotonic: %v", got)
		}
	}
	if got[len(got)-1] != 100 {
		t.Fatalf("final=%d", got[len(got)-1])
	}
}

func TestLinearDownAndClampedTarget(t *testing.T) {
	var last uint16
	Linear(80, 20, 100, time.Second, 4, instant, func(l uint16) { last = l })
	if last != 20 {
		t.Fatalf("final=%d want 20", last)
	}
	Linear(0, 500, 100, 0, 4, instant, func(l uint16) { last = l })
	if last != 100 {
		t.Fatalf("clamped=%d want 100", last)
	}
}

func TestLinearCancel(t *testing.T) {
	calls := 0
	var levels []uint16
	tick := func(time.Duration) bool {
		calls++
		return calls < 3
	}
	Linear(0, 100, 100, time.Second, 10, tick, func(l uint16) { levels = append(levels, l) })
	if len(levels) != 2 {
		t.Fatalf("levels after cancel=%v", levels)
	}
	if levels[len(levels)-1] == 100 {
		t.Fatal("cancelled ramp must not jump to target")
	}
}
