// Package i2c dispatches controller-mode transfers to registered I²C
// drivers and bridges them to the tinygo drivers.I2C contract in both
// directions: FromBus turns any tinygo bus into a Driver, and Bus exposes a
// registered instance to tinygo sensor drivers.
package i2c

import (
	"time"

	"tinygo.org/x/drivers"

	"nimbus-go/errcode"
	"nimbus-go/registry"
)

const (
	DefaultCapacity = 1
	DefaultTimeout  = 100 * time.Millisecond
)

type Config struct {
	FrequencyHz uint32 // 0 selects 100 kHz
}

// Driver performs controller-mode transfers. cmd is written first (usually a
// register address), then data is written or dst filled. timeout 0 means the
// driver default.
type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	SetConfiguration(in registry.Instance, cfg Config) error
	MasterWrite(in registry.Instance, addr uint16, cmd, data []byte, timeout time.Duration) error
	MasterRead(in registry.Instance, addr uint16, cmd, dst []byte, timeout time.Duration) error
}

type I2C struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *I2C {
	return &I2C{reg: registry.New[Driver]("i2c", capacity)}
}

func (c *I2C) Registry() *registry.Registry[Driver] { return c.reg }

func (c *I2C) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return c.reg.Add(d, name, arg)
}

func (c *I2C) Init(h registry.Handle) error {
	return c.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (c *I2C) DeInit(h registry.Handle) error {
	return c.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (c *I2C) SetConfiguration(h registry.Handle, cfg Config) error {
	return c.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.SetConfiguration(in, cfg)
	})
}

func (c *I2C) MasterWrite(h registry.Handle, addr uint16, cmd, data []byte, timeout time.Duration) error {
	return c.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.MasterWrite(in, addr, cmd, data, timeout)
	})
}

func (c *I2C) MasterRead(h registry.Handle, addr uint16, cmd, dst []byte, timeout time.Duration) error {
	return c.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.MasterRead(in, addr, cmd, dst, timeout)
	})
}

// Bus returns a drivers.I2C view of handle h. Every Tx goes through
// dispatch, so the handle checks still apply.
func (c *I2C) Bus(h registry.Handle) drivers.I2C {
	return &busView{c: c, h: h}
}

type busView struct {
	c *I2C
	h registry.Handle
}

func (b *busView) Tx(addr uint16, w, r []byte) error {
	if len(r) == 0 {
		return b.c.MasterWrite(b.h, addr, nil, w, DefaultTimeout)
	}
	return b.c.MasterRead(b.h, addr, w, r, DefaultTimeout)
}

// FromBus adapts a tinygo bus into a Driver. configure may be nil when the
// bus is configured elsewhere.
func FromBus(bus drivers.I2C, configure func(Config) error) Driver {
	return &busDriver{bus: bus, configure: configure}
}

type busDriver struct {
	bus       drivers.I2C
	configure func(Config) error
}

func (d *busDriver) Init(registry.Instance) error {
	if d.configure == nil {
		return nil
	}
	return d.configure(Config{})
}

func (d *busDriver) DeInit(registry.Instance) error { return nil }

func (d *busDriver) SetConfiguration(_ registry.Instance, cfg Config) error {
	if d.configure == nil {
		return nil
	}
	return d.configure(cfg)
}

func (d *busDriver) MasterWrite(_ registry.Instance, addr uint16, cmd, data []byte, _ time.Duration) error {
	w := data
	if len(cmd) > 0 {
		w = make([]byte, 0, len(cmd)+len(data))
		w = append(append(w, cmd...), data...)
	}
	return busErr(d.bus.Tx(addr, w, nil))
}

func (d *busDriver) MasterRead(_ registry.Instance, addr uint16, cmd, dst []byte, _ time.Duration) error {
	return busErr(d.bus.Tx(addr, cmd, dst))
}

// busErr tags raw bus errors with a code; a NACK from a tinygo bus
// surfaces as errcode.Fail.
func busErr(err error) error {
	if err == nil {
		return nil
	}
	return errcode.Wrap(errcode.MapDriverErr(err), "i2c", err)
}
