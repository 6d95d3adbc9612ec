// Package interval dispatches periodic callbacks to registered timer
// drivers.
package interval

import (
	"time"

	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

const DefaultCapacity = 1

// ID names one periodic callback within a driver instance.
type ID uint32

// Driver invokes cb every period with an empty Value until the interval is
// removed. cb runs in the driver's timer context.
type Driver interface {
	Init(in registry.Instance) error
	AddCallbackInterval(in registry.Instance, period time.Duration, cb value.Callback) (ID, error)
	RemoveInterval(in registry.Instance, id ID) error
}

type Interval struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *Interval {
	return &Interval{reg: registry.New[Driver]("interval", capacity)}
}

func (i *Interval) Registry() *registry.Registry[Driver] { return i.reg }

func (i *Interval) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return i.reg.Add(d, name, arg)
}

func (i *Interval) Init(h registry.Handle) error {
	return i.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (i *Interval) AddCallbackInterval(h registry.Handle, period time.Duration, cb value.Callback) (id ID, err error) {
	if period <= 0 {
		return 0, errcode.InvalidInput
	}
	if cb == nil {
		return 0, errcode.NoInput
	}
	err = i.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		id, e = d.AddCallbackInterval(in, period, cb)
		return e
	})
	return id, err
}

func (i *Interval) RemoveInterval(h registry.Handle, id ID) error {
	return i.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.RemoveInterval(in, id)
	})
}
