//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"nimbus-go/errcode"
	"nimbus-go/hal/adc"
	"nimbus-go/registry"
	"nimbus-go/x/mathx"
)

// ADC holds one 16-bit sample per pin. Tests set samples; reads convert
// them like the hardware path does.
type ADC struct {
	mu  sync.Mutex
	cfg adc.Config
	raw map[uint32]uint16
}

func NewADC() *ADC { return &ADC{raw: make(map[uint32]uint16)} }

// SetRaw sets pin's left-justified 16-bit sample.
func (a *ADC) SetRaw(pin uint32, raw uint16) {
	a.mu.Lock()
	a.raw[pin] = raw
	a.mu.Unlock()
}

// SetMillivolts sets pin to the sample that reads back as mv at the current
// reference.
func (a *ADC) SetMillivolts(pin uint32, mv uint32) {
	a.mu.Lock()
	a.raw[pin] = uint16(mathx.Rescale(mv, referenceMV(a.cfg), 0xFFFF))
	a.mu.Unlock()
}

func (a *ADC) Init(registry.Instance) error {
	a.mu.Lock()
	a.cfg = adc.Config{ResolutionBits: defaultADCBits}
	a.mu.Unlock()
	return nil
}

func (a *ADC) DeInit(registry.Instance) error { return nil }

func (a *ADC) SetConfiguration(_ registry.Instance, cfg adc.Config) error {
	if !validADC(cfg) {
		return errcode.InvalidInput
	}
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	return nil
}

func (a *ADC) Read(_ registry.Instance, pin uint32, samples int) (int32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var sum int64
	for i := 0; i < samples; i++ {
		sum += int64(millivolts(a.raw[pin], a.cfg))
	}
	return int32(sum / int64(samples)), nil
}
