// Package cloud dispatches event upload and command delivery to registered
// cloud transport drivers.
package cloud

import (
	"time"

	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

const (
	DefaultCapacity = 1
	DefaultTimeout  = 5 * time.Second
)

type Config struct {
	Endpoint string
	DeviceID string
	Token    string
}

type Driver interface {
	Init(in registry.Instance) error
	SetConfiguration(in registry.Instance, cfg Config) error
	// SendEvent uploads v under name. v is borrowed for the call.
	SendEvent(in registry.Instance, name string, v *value.Value, timeout time.Duration) error
	RegisterCommandCallback(in registry.Instance, name string, cb value.Callback) error
}

type Cloud struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *Cloud {
	return &Cloud{reg: registry.New[Driver]("cloud", capacity)}
}

func (c *Cloud) Registry() *registry.Registry[Driver] { return c.reg }

func (c *Cloud) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return c.reg.Add(d, name, arg)
}

func (c *Cloud) Init(h registry.Handle) error {
	return c.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (c *Cloud) SetConfiguration(h registry.Handle, cfg Config) error {
	if cfg.Endpoint == "" {
		return errcode.InvalidInput
	}
	return c.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.SetConfiguration(in, cfg)
	})
}

// SendEvent uploads v; timeout 0 selects DefaultTimeout.
func (c *Cloud) SendEvent(h registry.Handle, name string, v *value.Value, timeout time.Duration) error {
	if v == nil {
		return errcode.NoInput
	}
	if name == "" {
		return errcode.InvalidInput
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return c.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.SendEvent(in, name, v, timeout)
	})
}

func (c *Cloud) RegisterCommandCallback(h registry.Handle, name string, cb value.Callback) error {
	if cb == nil {
		return errcode.NoInput
	}
	return c.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.RegisterCommandCallback(in, name, cb)
	})
}
