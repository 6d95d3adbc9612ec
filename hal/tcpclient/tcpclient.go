// Package tcpclient dispatches outbound TCP connections to registered
// network-stack drivers.
package tcpclient

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
)

const DefaultCapacity = 1

type Status uint8

const (
	Disconnected Status = iota
	Connected
)

// RxFunc receives inbound bytes in the driver's network context.
type RxFunc func(data []byte)

type Driver interface {
	Init(in registry.Instance) error
	Connect(in registry.Instance, host string, port uint16) error
	Disconnect(in registry.Instance) error
	WriteBytes(in registry.Instance, p []byte) (int, error)
	RegisterRxCallback(in registry.Instance, fn RxFunc) error
	GetConnectionStatus(in registry.Instance) (Status, error)
}

type Client struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *Client {
	return &Client{reg: registry.New[Driver]("tcpclient", capacity)}
}

func (c *Client) Registry() *registry.Registry[Driver] { return c.reg }

func (c *Client) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return c.reg.Add(d, name, arg)
}

func (c *Client) Init(h registry.Handle) error {
	return c.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (c *Client) Connect(h registry.Handle, host string, port uint16) error {
	if host == "" || port == 0 {
		return errcode.InvalidInput
	}
	return c.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.Connect(in, host, port)
	})
}

func (c *Client) Disconnect(h registry.Handle) error {
	return c.reg.Do(h, func(d Driver, in registry.Instance) error { return d.Disconnect(in) })
}

func (c *Client) WriteBytes(h registry.Handle, p []byte) (n int, err error) {
	err = c.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		n, e = d.WriteBytes(in, p)
		return e
	})
	return n, err
}

func (c *Client) RegisterRxCallback(h registry.Handle, fn RxFunc) error {
	return c.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.RegisterRxCallback(in, fn)
	})
}

func (c *Client) GetConnectionStatus(h registry.Handle) (s Status, err error) {
	err = c.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		s, e = d.GetConnectionStatus(in)
		return e
	})
	return s, err
}
