//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"nimbus-go/errcode"
	"nimbus-go/hal/uart"
	"nimbus-go/registry"
	"nimbus-go/x/shmring"
	"nimbus-go/x/strx"
)

const DefaultLoopbackBytes = 1024

// Loopback is a UART whose TX is wired to its RX through a ring. Without a
// receive callback bytes wait for Read; with one a pump goroutine hands
// them over as they arrive.
type Loopback struct {
	mu   sync.Mutex
	cfg  uart.Config
	ring *shmring.Ring
	stop chan struct{}
}

// NewLoopback parses arg as the ring size in bytes; "" selects
// DefaultLoopbackBytes.
func NewLoopback(arg string) (*Loopback, error) {
	size := DefaultLoopbackBytes
	if arg != "" {
		n, err := strx.Uints(arg, ',')
		if err != nil || len(n) != 1 || n[0] == 0 {
			return nil, errcode.InvalidInput
		}
		size = int(n[0])
	}
	return &Loopback{ring: shmring.New(size), cfg: uart.DefaultConfig}, nil
}

func (l *Loopback) Init(registry.Instance) error { return nil }

// DeInit stops the pump; buffered bytes stay readable.
func (l *Loopback) DeInit(registry.Instance) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopPump()
	return nil
}

func (l *Loopback) SetConfiguration(_ registry.Instance, cfg uart.Config) error {
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
	return nil
}

func (l *Loopback) Config() uart.Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// WriteBlocking waits for ring space while a pump is draining it; without
// one a full ring fails with errcode.OutOfMemory after a partial write.
func (l *Loopback) WriteBlocking(_ registry.Instance, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n := l.ring.TryWriteFrom(p[total:])
		total += n
		if n > 0 {
			continue
		}
		l.mu.Lock()
		stop := l.stop
		l.mu.Unlock()
		if stop == nil {
			return total, errcode.OutOfMemory
		}
		select {
		case <-l.ring.Writable():
		case <-stop:
			return total, errcode.Uninitialized
		}
	}
	return total, nil
}

func (l *Loopback) Read(_ registry.Instance, dst []byte) (int, error) {
	l.mu.Lock()
	pumping := l.stop != nil
	l.mu.Unlock()
	if pumping {
		return 0, errcode.Busy
	}
	return l.ring.TryReadInto(dst), nil
}

// RegisterRxCallback starts the pump, or stops it when fn is nil.
func (l *Loopback) RegisterRxCallback(_ registry.Instance, fn uart.RxFunc) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopPump()
	if fn == nil {
		return nil
	}
	l.stop = make(chan struct{})
	go l.pump(fn, l.stop)
	return nil
}

// stopPump is called with mu held.
func (l *Loopback) stopPump() {
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
}

func (l *Loopback) pump(fn uart.RxFunc, stop <-chan struct{}) {
	buf := make([]byte, 64)
	for {
		for {
			n := l.ring.TryReadInto(buf)
			if n == 0 {
				break
			}
			fn(buf[:n])
		}
		select {
		case <-stop:
			return
		case <-l.ring.Readable():
		}
	}
}
