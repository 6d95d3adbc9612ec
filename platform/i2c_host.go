//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"nimbus-go/errcode"
	"nimbus-go/hal/i2c"
)

// RegisterFile is an emulated I²C target with 256 byte registers and an
// auto-incrementing pointer: the first written byte selects a register,
// further bytes are stored from there, reads continue from the pointer.
type RegisterFile struct {
	regs [256]byte
	ptr  byte
}

// I2CBus implements drivers.I2C over attached register files. A transfer
// to an address with nothing attached fails with errcode.NotFound.
type I2CBus struct {
	mu   sync.Mutex
	cfg  i2c.Config
	devs map[uint16]*RegisterFile
	txs  int
}

func NewI2CBus() *I2CBus { return &I2CBus{devs: make(map[uint16]*RegisterFile)} }

// Attach puts a register file at addr, replacing any previous one.
func (b *I2CBus) Attach(addr uint16) {
	b.mu.Lock()
	b.devs[addr] = &RegisterFile{}
	b.mu.Unlock()
}

// Poke and Peek access a register file directly, bypassing the bus.
func (b *I2CBus) Poke(addr uint16, reg byte, data ...byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d := b.devs[addr]; d != nil {
		for i, c := range data {
			d.regs[reg+byte(i)] = c
		}
	}
}

func (b *I2CBus) Peek(addr uint16, reg byte) byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d := b.devs[addr]; d != nil {
		return d.regs[reg]
	}
	return 0
}

// Transfers returns the number of Tx calls that reached a device.
func (b *I2CBus) Transfers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txs
}

func (b *I2CBus) Config() i2c.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg
}

func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.devs[addr]
	if d == nil {
		return &errcode.E{C: errcode.NotFound, Op: "i2c", Msg: "no ack"}
	}
	b.txs++
	if len(w) > 0 {
		d.ptr = w[0]
		for _, c := range w[1:] {
			d.regs[d.ptr] = c
			d.ptr++
		}
	}
	for i := range r {
		r[i] = d.regs[d.ptr]
		d.ptr++
	}
	return nil
}

func (b *I2CBus) configure(cfg i2c.Config) error {
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	return nil
}
