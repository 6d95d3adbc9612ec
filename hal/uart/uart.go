// Package uart dispatches serial I/O to registered UART drivers.
package uart

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

const DefaultCapacity = 1

type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

type Config struct {
	Baud        uint32
	DataBits    uint8
	StopBits    uint8
	Parity      Parity
	FlowControl bool
}

// DefaultConfig is 115200 8N1.
var DefaultConfig = Config{Baud: 115200, DataBits: 8, StopBits: 1}

// RxFunc receives bytes as they arrive. It runs in the driver's receive
// context and must not retain data after returning.
type RxFunc func(data []byte)

type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	SetConfiguration(in registry.Instance, cfg Config) error
	WriteBlocking(in registry.Instance, p []byte) (int, error)
	// Read copies buffered receive data into dst without blocking.
	Read(in registry.Instance, dst []byte) (int, error)
	RegisterRxCallback(in registry.Instance, fn RxFunc) error
}

type UART struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *UART {
	return &UART{reg: registry.New[Driver]("uart", capacity)}
}

func (u *UART) Registry() *registry.Registry[Driver] { return u.reg }

func (u *UART) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return u.reg.Add(d, name, arg)
}

func (u *UART) Init(h registry.Handle) error {
	return u.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (u *UART) DeInit(h registry.Handle) error {
	return u.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (u *UART) SetConfiguration(h registry.Handle, cfg Config) error {
	if cfg.Baud == 0 {
		return errcode.InvalidInput
	}
	return u.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.SetConfiguration(in, cfg)
	})
}

func (u *UART) WriteBlocking(h registry.Handle, p []byte) (n int, err error) {
	err = u.reg.DoInit(h, func(d Driver, in registry.Instance) (e error) {
		n, e = d.WriteBlocking(in, p)
		return e
	})
	return n, err
}

// WriteValue sends the text form of strings and the raw payload of every
// other non-list Value.
func (u *UART) WriteValue(h registry.Handle, v *value.Value) (int, error) {
	if v == nil {
		return 0, errcode.NoInput
	}
	switch v.Type() {
	case value.List, value.Void:
		return 0, errcode.InvalidInput
	case value.String:
		s, _ := v.AsString()
		return u.WriteBlocking(h, []byte(s))
	default:
		return u.WriteBlocking(h, v.Bytes())
	}
}

func (u *UART) Read(h registry.Handle, dst []byte) (n int, err error) {
	err = u.reg.DoInit(h, func(d Driver, in registry.Instance) (e error) {
		n, e = d.Read(in, dst)
		return e
	})
	return n, err
}

func (u *UART) RegisterRxCallback(h registry.Handle, fn RxFunc) error {
	return u.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.RegisterRxCallback(in, fn)
	})
}
