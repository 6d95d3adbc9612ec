// Package spi dispatches chip-select framed transfers to registered SPI
// drivers.
package spi

import (
	"time"

	"tinygo.org/x/drivers"

	"nimbus-go/errcode"
	"nimbus-go/registry"
)

const DefaultCapacity = 1

type Mode uint8

const (
	Mode0 Mode = iota
	Mode1
	Mode2
	Mode3
)

type Config struct {
	FrequencyHz uint32
	Mode        Mode
	LSBFirst    bool
}

// Driver frames every transfer with chip-select pin cs asserted.
type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	SetConfiguration(in registry.Instance, cfg Config) error
	MasterWrite(in registry.Instance, cs uint32, cmd, data []byte, timeout time.Duration) error
	MasterRead(in registry.Instance, cs uint32, cmd, dst []byte, timeout time.Duration) error
}

type SPI struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *SPI {
	return &SPI{reg: registry.New[Driver]("spi", capacity)}
}

func (s *SPI) Registry() *registry.Registry[Driver] { return s.reg }

func (s *SPI) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return s.reg.Add(d, name, arg)
}

func (s *SPI) Init(h registry.Handle) error {
	return s.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (s *SPI) DeInit(h registry.Handle) error {
	return s.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (s *SPI) SetConfiguration(h registry.Handle, cfg Config) error {
	return s.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.SetConfiguration(in, cfg)
	})
}

func (s *SPI) MasterWrite(h registry.Handle, cs uint32, cmd, data []byte, timeout time.Duration) error {
	return s.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.MasterWrite(in, cs, cmd, data, timeout)
	})
}

func (s *SPI) MasterRead(h registry.Handle, cs uint32, cmd, dst []byte, timeout time.Duration) error {
	return s.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.MasterRead(in, cs, cmd, dst, timeout)
	})
}

// Select drives a chip-select line; true asserts it (active low on the
// wire is the implementation's business).
type Select func(cs uint32, active bool)

// FromBus adapts a tinygo bus plus a chip-select function into a Driver.
func FromBus(bus drivers.SPI, sel Select, configure func(Config) error) Driver {
	return &busDriver{bus: bus, sel: sel, configure: configure}
}

type busDriver struct {
	bus       drivers.SPI
	sel       Select
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

func (d *busDriver) frame(cs uint32, fn func() error) error {
	if d.sel != nil {
		d.sel(cs, true)
		defer d.sel(cs, false)
	}
	if err := fn(); err != nil {
		return errcode.Wrap(errcode.MapDriverErr(err), "spi", err)
	}
	return nil
}

func (d *busDriver) MasterWrite(_ registry.Instance, cs uint32, cmd, data []byte, _ time.Duration) error {
	return d.frame(cs, func() error {
		if len(cmd) > 0 {
			if err := d.bus.Tx(cmd, nil); err != nil {
				return err
			}
		}
		return d.bus.Tx(data, nil)
	})
}

func (d *busDriver) MasterRead(_ registry.Instance, cs uint32, cmd, dst []byte, _ time.Duration) error {
	return d.frame(cs, func() error {
		if len(cmd) > 0 {
			if err := d.bus.Tx(cmd, nil); err != nil {
				return err
			}
		}
		return d.bus.Tx(nil, dst)
	})
}
