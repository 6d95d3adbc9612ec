// Package gpio dispatches pin configuration, level access and edge
// interrupts to registered GPIO drivers.
package gpio

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

const DefaultCapacity = 1

type Mode uint8

const (
	Input Mode = iota
	Output
	OutputOpenDrain
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type Config struct {
	Mode    Mode
	Pull    Pull
	Initial bool // output level applied on configuration
}

type Trigger uint8

const (
	TriggerRising Trigger = iota + 1
	TriggerFalling
	TriggerBoth
)

// InterruptFunc runs in the driver's interrupt context. It must not block;
// publish to the bus and return.
type InterruptFunc func(pin uint32, level bool)

type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	SetPinConfiguration(in registry.Instance, pin uint32, cfg Config) error
	SetPinState(in registry.Instance, pin uint32, high bool) error
	GetPinState(in registry.Instance, pin uint32) (bool, error)
	// RegisterInterrupt with a nil fn clears the pin's interrupt.
	RegisterInterrupt(in registry.Instance, pin uint32, trig Trigger, fn InterruptFunc) error
}

// Toggler is implemented by drivers that can invert a pin in one step.
type Toggler interface {
	Toggle(in registry.Instance, pin uint32) error
}

type GPIO struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *GPIO {
	return &GPIO{reg: registry.New[Driver]("gpio", capacity)}
}

func (g *GPIO) Registry() *registry.Registry[Driver] { return g.reg }

func (g *GPIO) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return g.reg.Add(d, name, arg)
}

func (g *GPIO) Init(h registry.Handle) error {
	return g.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (g *GPIO) DeInit(h registry.Handle) error {
	return g.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (g *GPIO) SetPinConfiguration(h registry.Handle, pin uint32, cfg Config) error {
	return g.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.SetPinConfiguration(in, pin, cfg)
	})
}

func (g *GPIO) SetPinState(h registry.Handle, pin uint32, high bool) error {
	return g.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.SetPinState(in, pin, high)
	})
}

func (g *GPIO) GetPinState(h registry.Handle, pin uint32) (high bool, err error) {
	err = g.reg.DoInit(h, func(d Driver, in registry.Instance) (e error) {
		high, e = d.GetPinState(in, pin)
		return e
	})
	return high, err
}

// Toggle inverts pin, natively when the driver supports it and by
// read-modify-write otherwise.
func (g *GPIO) Toggle(h registry.Handle, pin uint32) error {
	return g.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		if t, ok := d.(Toggler); ok {
			return t.Toggle(in, pin)
		}
		high, err := d.GetPinState(in, pin)
		if err != nil {
			return err
		}
		return d.SetPinState(in, pin, !high)
	})
}

func (g *GPIO) RegisterInterrupt(h registry.Handle, pin uint32, trig Trigger, fn InterruptFunc) error {
	return g.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.RegisterInterrupt(in, pin, trig, fn)
	})
}

// GetPinValue stores the pin level in out as a Bool.
func (g *GPIO) GetPinValue(h registry.Handle, pin uint32, out *value.Value) error {
	if out == nil {
		return errcode.NoInput
	}
	high, err := g.GetPinState(h, pin)
	if err != nil {
		return err
	}
	return out.SetBool(high)
}

// SetPinValue drives pin from any Value that converts to Bool.
func (g *GPIO) SetPinValue(h registry.Handle, pin uint32, v *value.Value) error {
	if v == nil {
		return errcode.NoInput
	}
	high, err := v.AsBool()
	if err != nil {
		return err
	}
	return g.SetPinState(h, pin, high)
}
