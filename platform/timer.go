package platform

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"nimbus-go/errcode"
	"nimbus-go/hal/interval"
	"nimbus-go/registry"
	"nimbus-go/value"
)

// Timer is an interval driver running one goroutine per callback off a
// clock ticker. Callbacks receive an Empty Value.
type Timer struct {
	clk    clock.Clock
	mu     sync.Mutex
	next   interval.ID
	active map[interval.ID]chan struct{}
}

func NewTimer(c clock.Clock) *Timer {
	return &Timer{clk: c, active: make(map[interval.ID]chan struct{})}
}

func (t *Timer) Init(registry.Instance) error { return nil }

func (t *Timer) AddCallbackInterval(_ registry.Instance, period time.Duration, cb value.Callback) (interval.ID, error) {
	t.mu.Lock()
	t.next++
	id := t.next
	stop := make(chan struct{})
	t.active[id] = stop
	t.mu.Unlock()

	tk := t.clk.Ticker(period)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				var v value.Value
				cb(&v)
			}
		}
	}()
	return id, nil
}

func (t *Timer) RemoveInterval(_ registry.Instance, id interval.ID) error {
	t.mu.Lock()
	stop, ok := t.active[id]
	delete(t.active, id)
	t.mu.Unlock()
	if !ok {
		return errcode.NotFound
	}
	close(stop)
	return nil
}

// Active returns the number of running intervals.
func (t *Timer) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// Close stops every interval.
func (t *Timer) Close() {
	t.mu.Lock()
	active := t.active
	t.active = make(map[interval.ID]chan struct{})
	t.mu.Unlock()
	for _, stop := range active {
		close(stop)
	}
}

// RTC is a datetime driver that keeps an offset from a clock.
type RTC struct {
	clk    clock.Clock
	mu     sync.Mutex
	offset time.Duration
}

func NewRTC(c clock.Clock) *RTC { return &RTC{clk: c} }

func (r *RTC) Init(registry.Instance) error { return nil }

func (r *RTC) GetDateTime(registry.Instance) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clk.Now().Add(r.offset), nil
}

func (r *RTC) SetDateTime(_ registry.Instance, t time.Time) error {
	r.mu.Lock()
	r.offset = t.Sub(r.clk.Now())
	r.mu.Unlock()
	return nil
}
