package timex

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestEpochMsFollowsClock(t *testing.T) {
	c := clock.NewMock()
	c.Set(time.UnixMilli(1_700_000_000_123))
	if got := EpochMs(c); got != 1_700_000_000_123 {
		t.Fatalf("EpochMs=%d", got)
	}
	c.Add(2 * time.Millisecond)
	if got := EpochMs(c); got != 1_700_000_000_125 {
		t.Fatalf("after Add: %d", got)
	}
}

func TestPeriodFromHz(t *testing.T) {
	if got := PeriodFromHz(1000); got != time.Millisecond {
		t.Fatalf("1kHz=%v", got)
	}
	if got := PeriodFromHz(0); got != time.Second {
		t.Fatalf("0Hz=%v", got)
	}
	if Ms(-5) != 0 || Ms(250) != 250*time.Millisecond {
		t.Fatal("Ms")
	}
}
