//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"nimbus-go/hal/spi"
)

// SPIBus implements drivers.SPI. Reads return queued reply bytes, then
// 0xFF; every written byte is recorded per chip-select.
type SPIBus struct {
	mu      sync.Mutex
	cfg     spi.Config
	active  int64 // selected cs, -1 when idle
	written map[uint32][]byte
	reply   []byte
}

func NewSPIBus() *SPIBus {
	return &SPIBus{active: -1, written: make(map[uint32][]byte)}
}

// Reply queues bytes the next reads will clock in.
func (b *SPIBus) Reply(p ...byte) {
	b.mu.Lock()
	b.reply = append(b.reply, p...)
	b.mu.Unlock()
}

// Written returns a copy of everything sent while cs was selected.
func (b *SPIBus) Written(cs uint32) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.written[cs]...)
}

func (b *SPIBus) Config() spi.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg
}

func (b *SPIBus) Tx(w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active >= 0 {
		cs := uint32(b.active)
		b.written[cs] = append(b.written[cs], w...)
	}
	for i := range r {
		if len(b.reply) > 0 {
			r[i], b.reply = b.reply[0], b.reply[1:]
		} else {
			r[i] = 0xFF
		}
	}
	return nil
}

func (b *SPIBus) Transfer(c byte) (byte, error) {
	var in [1]byte
	err := b.Tx([]byte{c}, in[:])
	return in[0], err
}

func (b *SPIBus) selectCS(cs uint32, active bool) {
	b.mu.Lock()
	if active {
		b.active = int64(cs)
	} else {
		b.active = -1
	}
	b.mu.Unlock()
}

func (b *SPIBus) configure(cfg spi.Config) error {
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	return nil
}
