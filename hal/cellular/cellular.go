// Package cellular dispatches modem connection control to registered
// cellular drivers.
package cellular

import "nimbus-go/registry"

const DefaultCapacity = 1

type Status uint8

const (
	Disconnected Status = iota
	Connecting
	Connected
)

func (s Status) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return "disconnected"
}

type Driver interface {
	Init(in registry.Instance) error
	Connect(in registry.Instance) error
	Disconnect(in registry.Instance) error
	GetConnectionStatus(in registry.Instance) (Status, error)
}

type Cellular struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *Cellular {
	return &Cellular{reg: registry.New[Driver]("cellular", capacity)}
}

func (c *Cellular) Registry() *registry.Registry[Driver] { return c.reg }

func (c *Cellular) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return c.reg.Add(d, name, arg)
}

func (c *Cellular) Init(h registry.Handle) error {
	return c.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (c *Cellular) Connect(h registry.Handle) error {
	return c.reg.Do(h, func(d Driver, in registry.Instance) error { return d.Connect(in) })
}

func (c *Cellular) Disconnect(h registry.Handle) error {
	return c.reg.Do(h, func(d Driver, in registry.Instance) error { return d.Disconnect(in) })
}

func (c *Cellular) GetConnectionStatus(h registry.Handle) (s Status, err error) {
	err = c.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		s, e = d.GetConnectionStatus(in)
		return e
	})
	return s, err
}
