//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"
	"time"

	"nimbus-go/hal/pwm"
	"nimbus-go/registry"
	"nimbus-go/x/timex"
)

// PWMState is what a pin was last configured to.
type PWMState struct {
	pwm.Config
	Period time.Duration
	// High is the on-time of one period.
	High time.Duration
}

// PWM records pin configurations and the history of duties applied.
type PWM struct {
	mu      sync.Mutex
	pins    map[uint32]PWMState
	history map[uint32][]uint8
}

func NewPWM() *PWM {
	return &PWM{pins: make(map[uint32]PWMState), history: make(map[uint32][]uint8)}
}

func (p *PWM) Init(registry.Instance) error { return nil }

// DeInit forgets every pin, as a reset would.
func (p *PWM) DeInit(registry.Instance) error {
	p.mu.Lock()
	p.pins = make(map[uint32]PWMState)
	p.mu.Unlock()
	return nil
}

func (p *PWM) SetPinConfiguration(_ registry.Instance, pin uint32, cfg pwm.Config) error {
	period := timex.PeriodFromHz(cfg.FrequencyHz)
	p.mu.Lock()
	p.pins[pin] = PWMState{
		Config: cfg,
		Period: period,
		High:   period * time.Duration(cfg.DutyPercent) / 100,
	}
	p.history[pin] = append(p.history[pin], cfg.DutyPercent)
	p.mu.Unlock()
	return nil
}

func (p *PWM) State(pin uint32) (PWMState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.pins[pin]
	return s, ok
}

// History returns every duty applied to pin, oldest first.
func (p *PWM) History(pin uint32) []uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint8(nil), p.history[pin]...)
}
