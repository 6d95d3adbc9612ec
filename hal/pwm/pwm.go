// Package pwm dispatches pulse-width output to registered PWM drivers.
package pwm

import (
	"time"

	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/x/ramp"
)

const DefaultCapacity = 1

// Config duty is a percentage, 0..100.
type Config struct {
	FrequencyHz uint32
	DutyPercent uint8
}

type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	SetPinConfiguration(in registry.Instance, pin uint32, cfg Config) error
}

type PWM struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *PWM {
	return &PWM{reg: registry.New[Driver]("pwm", capacity)}
}

func (p *PWM) Registry() *registry.Registry[Driver] { return p.reg }

func (p *PWM) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return p.reg.Add(d, name, arg)
}

func (p *PWM) Init(h registry.Handle) error {
	return p.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (p *PWM) DeInit(h registry.Handle) error {
	return p.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (p *PWM) SetPinConfiguration(h registry.Handle, pin uint32, cfg Config) error {
	if cfg.DutyPercent > 100 || cfg.FrequencyHz == 0 {
		return errcode.InvalidInput
	}
	return p.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.SetPinConfiguration(in, pin, cfg)
	})
}

// Ramp moves pin's duty linearly from one percentage to another over d.
// tick paces the steps (see ramp.ClockTick); the first driver error stops
// the ramp and is returned.
func (p *PWM) Ramp(h registry.Handle, pin, freqHz uint32, from, to uint8, d time.Duration, steps uint16, tick ramp.Tick) error {
	if from > 100 || to > 100 || freqHz == 0 {
		return errcode.InvalidInput
	}
	if _, inst, err := p.reg.Get(h); err != nil {
		return err
	} else if !inst.Initialized {
		return errcode.Uninitialized
	}
	var err error
	guarded := func(step time.Duration) bool { return err == nil && tick(step) }
	ramp.Linear(uint16(from), uint16(to), 100, d, steps, guarded, func(level uint16) {
		if err == nil {
			err = p.SetPinConfiguration(h, pin, Config{FrequencyHz: freqHz, DutyPercent: uint8(level)})
		}
	})
	return err
}
