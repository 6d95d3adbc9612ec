// Package wifi dispatches station configuration and connection control to
// registered Wi-Fi drivers.
package wifi

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
)

const DefaultCapacity = 1

type Security uint8

const (
	Open Security = iota
	WPA2
	WPA3
)

type Config struct {
	SSID     string
	Password string
	Security Security
}

type Status uint8

const (
	Disconnected Status = iota
	Connecting
	Connected
)

type Driver interface {
	Init(in registry.Instance) error
	SetConfiguration(in registry.Instance, cfg Config) error
	Connect(in registry.Instance) error
	Disconnect(in registry.Instance) error
	GetConnectionStatus(in registry.Instance) (Status, error)
}

type WiFi struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *WiFi {
	return &WiFi{reg: registry.New[Driver]("wifi", capacity)}
}

func (w *WiFi) Registry() *registry.Registry[Driver] { return w.reg }

func (w *WiFi) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return w.reg.Add(d, name, arg)
}

func (w *WiFi) Init(h registry.Handle) error {
	return w.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

// SetConfiguration rejects SSIDs outside 1..32 bytes and secured networks
// without an 8..63 byte passphrase.
func (w *WiFi) SetConfiguration(h registry.Handle, cfg Config) error {
	if len(cfg.SSID) == 0 || len(cfg.SSID) > 32 {
		return errcode.InvalidInput
	}
	if cfg.Security != Open && (len(cfg.Password) < 8 || len(cfg.Password) > 63) {
		return errcode.InvalidInput
	}
	return w.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.SetConfiguration(in, cfg)
	})
}

func (w *WiFi) Connect(h registry.Handle) error {
	return w.reg.Do(h, func(d Driver, in registry.Instance) error { return d.Connect(in) })
}

func (w *WiFi) Disconnect(h registry.Handle) error {
	return w.reg.Do(h, func(d Driver, in registry.Instance) error { return d.Disconnect(in) })
}

func (w *WiFi) GetConnectionStatus(h registry.Handle) (s Status, err error) {
	err = w.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		s, e = d.GetConnectionStatus(in)
		return e
	})
	return s, err
}
