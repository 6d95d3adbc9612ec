// Package datetime dispatches wall-clock access to registered RTC drivers.
package datetime

import (
	"time"

	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

const DefaultCapacity = 1

type Driver interface {
	Init(in registry.Instance) error
	GetDateTime(in registry.Instance) (time.Time, error)
	SetDateTime(in registry.Instance, t time.Time) error
}

type DateTime struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *DateTime {
	return &DateTime{reg: registry.New[Driver]("datetime", capacity)}
}

func (dt *DateTime) Registry() *registry.Registry[Driver] { return dt.reg }

func (dt *DateTime) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return dt.reg.Add(d, name, arg)
}

func (dt *DateTime) Init(h registry.Handle) error {
	return dt.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (dt *DateTime) GetDateTime(h registry.Handle) (t time.Time, err error) {
	err = dt.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		t, e = d.GetDateTime(in)
		return e
	})
	return t.UTC(), err
}

func (dt *DateTime) SetDateTime(h registry.Handle, t time.Time) error {
	return dt.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.SetDateTime(in, t.UTC())
	})
}

// GetEpoch returns seconds since 1970 in the RTC's 32-bit range.
func (dt *DateTime) GetEpoch(h registry.Handle) (uint32, error) {
	t, err := dt.GetDateTime(h)
	if err != nil {
		return 0, err
	}
	sec := t.Unix()
	if sec < 0 || sec > int64(^uint32(0)) {
		return 0, errcode.InvalidInput
	}
	return uint32(sec), nil
}

func (dt *DateTime) SetEpoch(h registry.Handle, sec uint32) error {
	return dt.SetDateTime(h, time.Unix(int64(sec), 0))
}

// GetISO8601 stores the current time in out as an RFC 3339 String.
func (dt *DateTime) GetISO8601(h registry.Handle, out *value.Value) error {
	if out == nil {
		return errcode.NoInput
	}
	t, err := dt.GetDateTime(h)
	if err != nil {
		return err
	}
	return out.SetString(t.Format(time.RFC3339))
}
