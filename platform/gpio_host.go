//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"nimbus-go/errcode"
	"nimbus-go/hal/gpio"
	"nimbus-go/registry"
)

// FakePin is one emulated line. Drive changes it from outside, as a wire
// would, and fires the registered interrupt on a matching edge.
type FakePin struct {
	mu     sync.RWMutex
	number uint32
	level  bool
	out    bool
	trig   gpio.Trigger
	irq    gpio.InterruptFunc
}

func (p *FakePin) Number() uint32 { return p.number }

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// Output reports whether the pin is configured as an output.
func (p *FakePin) Output() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.out
}

// Drive sets the line level; the interrupt, if any, runs on the caller's
// goroutine after the pin lock is released.
func (p *FakePin) Drive(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	fn := p.irq
	want := fn != nil && edgeWanted(p.trig, old, level)
	p.mu.Unlock()
	if want {
		fn(p.number, level)
	}
}

func edgeWanted(trig gpio.Trigger, old, level bool) bool {
	switch {
	case !old && level:
		return trig == gpio.TriggerRising || trig == gpio.TriggerBoth
	case old && !level:
		return trig == gpio.TriggerFalling || trig == gpio.TriggerBoth
	}
	return false
}

// GPIO hands out stable *FakePin instances per number.
type GPIO struct {
	mu   sync.Mutex
	pins map[uint32]*FakePin
}

func NewGPIO() *GPIO { return &GPIO{pins: make(map[uint32]*FakePin)} }

// Pin returns pin n, creating it on first use.
func (g *GPIO) Pin(n uint32) *FakePin {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pins[n]
	if !ok {
		p = &FakePin{number: n}
		g.pins[n] = p
	}
	return p
}

func (g *GPIO) Init(registry.Instance) error { return nil }

// DeInit detaches every interrupt.
func (g *GPIO) DeInit(registry.Instance) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.pins {
		p.mu.Lock()
		p.irq, p.trig = nil, 0
		p.mu.Unlock()
	}
	return nil
}

func (g *GPIO) SetPinConfiguration(_ registry.Instance, pin uint32, cfg gpio.Config) error {
	p := g.Pin(pin)
	p.mu.Lock()
	defer p.mu.Unlock()
	switch cfg.Mode {
	case gpio.Output, gpio.OutputOpenDrain:
		p.out = true
		p.level = cfg.Initial
	case gpio.Input:
		p.out = false
		switch cfg.Pull {
		case gpio.PullUp:
			p.level = true
		case gpio.PullDown:
			p.level = false
		}
	default:
		return errcode.InvalidInput
	}
	return nil
}

func (g *GPIO) SetPinState(_ registry.Instance, pin uint32, high bool) error {
	p := g.Pin(pin)
	if !p.Output() {
		return errcode.InvalidInput
	}
	p.Drive(high)
	return nil
}

func (g *GPIO) GetPinState(_ registry.Instance, pin uint32) (bool, error) {
	return g.Pin(pin).Get(), nil
}

func (g *GPIO) Toggle(in registry.Instance, pin uint32) error {
	p := g.Pin(pin)
	return g.SetPinState(in, pin, !p.Get())
}

func (g *GPIO) RegisterInterrupt(_ registry.Instance, pin uint32, trig gpio.Trigger, fn gpio.InterruptFunc) error {
	if fn != nil && (trig < gpio.TriggerRising || trig > gpio.TriggerBoth) {
		return errcode.InvalidInput
	}
	p := g.Pin(pin)
	p.mu.Lock()
	p.trig, p.irq = trig, fn
	if fn == nil {
		p.trig = 0
	}
	p.mu.Unlock()
	return nil
}
