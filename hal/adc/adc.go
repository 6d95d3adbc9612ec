// Package adc dispatches analog reads to registered ADC drivers.
package adc

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

// DefaultCapacity is the number of ADC instances a board gets when its
// config does not say otherwise.
const DefaultCapacity = 1

type Reference uint8

const (
	RefInternal Reference = iota
	RefVDD
	RefExternal
)

type Config struct {
	ResolutionBits uint8
	Reference      Reference
	// ReferenceMV is only used with RefExternal.
	ReferenceMV uint32
}

// Driver is one ADC backend. Read returns the average of samples
// conversions on pin in millivolts.
type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	SetConfiguration(in registry.Instance, cfg Config) error
	Read(in registry.Instance, pin uint32, samples int) (int32, error)
}

type ADC struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *ADC {
	return &ADC{reg: registry.New[Driver]("adc", capacity)}
}

func (a *ADC) Registry() *registry.Registry[Driver] { return a.reg }

func (a *ADC) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return a.reg.Add(d, name, arg)
}

func (a *ADC) Init(h registry.Handle) error {
	return a.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (a *ADC) DeInit(h registry.Handle) error {
	return a.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (a *ADC) SetConfiguration(h registry.Handle, cfg Config) error {
	return a.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.SetConfiguration(in, cfg)
	})
}

// Read averages samples conversions; samples < 1 reads once.
func (a *ADC) Read(h registry.Handle, pin uint32, samples int) (mv int32, err error) {
	if samples < 1 {
		samples = 1
	}
	err = a.reg.DoInit(h, func(d Driver, in registry.Instance) (e error) {
		mv, e = d.Read(in, pin, samples)
		return e
	})
	return mv, err
}

// ReadValue stores the reading in out as an Int of millivolts.
func (a *ADC) ReadValue(h registry.Handle, pin uint32, samples int, out *value.Value) error {
	if out == nil {
		return errcode.NoInput
	}
	mv, err := a.Read(h, pin, samples)
	if err != nil {
		return err
	}
	return out.SetInt(mv)
}
