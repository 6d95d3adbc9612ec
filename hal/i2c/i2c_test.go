package i2c

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
)

// memBus is a tinygo-style bus backed by one register file per address.
type memBus struct {
	regs map[uint16][]byte
	txs  int
}

func (m *memBus) Tx(addr uint16, w, r []byte) error {
	m.txs++
	file, ok := m.regs[addr]
	if !ok {
		return errors.New("nack")
	}
	if len(w) == 0 {
		return nil
	}
	reg := int(w[0])
	copy(file[reg:], w[1:])
	copy(r, file[reg:])
	return nil
}

func setup(t *testing.T) (*I2C, *memBus) {
	t.Helper()
	bus := &memBus{regs: map[uint16][]byte{0x38: make([]byte, 16)}}
	c := New(DefaultCapacity)
	h, err := c.AddDriverInstance(FromBus(bus, nil), "i2c0", nil)
	require.NoError(t, err)
	require.NoError(t, c.Init(h))
	return c, bus
}

func TestWriteThenReadRegister(t *testing.T) {
	c, _ := setup(t)
	require.NoError(t, c.MasterWrite(0, 0x38, []byte{0x02}, []byte{0xAA, 0xBB}, 0))

	got := make([]byte, 2)
	require.NoError(t, c.MasterRead(0, 0x38, []byte{0x02}, got, 0))
	assert.Equal(t, []byte{0xAA, 0xBB}, got)
}

func TestBusViewRunsThroughDispatch(t *testing.T) {
	c, bus := setup(t)
	view := c.Bus(0)
	require.NoError(t, view.Tx(0x38, []byte{0x05, 0x11}, nil))
	got := make([]byte, 1)
	require.NoError(t, view.Tx(0x38, []byte{0x05}, got))
	assert.Equal(t, byte(0x11), got[0])

	before := bus.txs
	assert.ErrorIs(t, c.Bus(3).Tx(0x38, []byte{0}, nil), errcode.Invalid)
	assert.Equal(t, before, bus.txs)
}

func TestConfigureHook(t *testing.T) {
	var seen []uint32
	bus := &memBus{regs: map[uint16][]byte{}}
	c := New(1)
	h, _ := c.AddDriverInstance(FromBus(bus, func(cfg Config) error {
		seen = append(seen, cfg.FrequencyHz)
		return nil
	}), "i2c0", nil)
	assert.ErrorIs(t, c.SetConfiguration(h, Config{FrequencyHz: 400000}), errcode.Uninitialized)
	require.NoError(t, c.Init(h))
	require.NoError(t, c.SetConfiguration(h, Config{FrequencyHz: 400000}))
	assert.Equal(t, []uint32{0, 400000}, seen)
	assert.ErrorIs(t, c.MasterWrite(h, 0x10, nil, []byte{1}, 0), errcode.Fail)
}
