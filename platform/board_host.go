//go:build !(rp2040 || rp2350)

package platform

import (
	"github.com/benbjohnson/clock"

	"nimbus-go/config"
	"nimbus-go/hal"
	"nimbus-go/hal/adc"
	"nimbus-go/hal/block"
	"nimbus-go/hal/datetime"
	"nimbus-go/hal/filesystem"
	"nimbus-go/hal/gpio"
	"nimbus-go/hal/i2c"
	"nimbus-go/hal/interval"
	"nimbus-go/hal/pwm"
	"nimbus-go/hal/spi"
	"nimbus-go/hal/uart"
	"nimbus-go/registry"
)

// Board keeps every fake it built, keyed by instance name, so tests can
// drive the far side of a driver.
type Board struct {
	Clock clock.Clock
	ADC   map[string]*ADC
	GPIO  map[string]*GPIO
	I2C   map[string]*I2CBus
	SPI   map[string]*SPIBus
	UART  map[string]*Loopback
	TTY   map[string]*SerialPort
	PWM   map[string]*PWM
	Timer map[string]*Timer
	RTC   map[string]*RTC
	Block map[string]*RAMBlock
	FS    map[string]*RAMFS

	closed bool
}

// NewBoard returns an empty host board; timers and clocks run off c.
func NewBoard(c clock.Clock) *Board {
	return &Board{
		Clock: c,
		ADC:   map[string]*ADC{},
		GPIO:  map[string]*GPIO{},
		I2C:   map[string]*I2CBus{},
		SPI:   map[string]*SPIBus{},
		UART:  map[string]*Loopback{},
		TTY:   map[string]*SerialPort{},
		PWM:   map[string]*PWM{},
		Timer: map[string]*Timer{},
		RTC:   map[string]*RTC{},
		Block: map[string]*RAMBlock{},
		FS:    map[string]*RAMFS{},
	}
}

// Close stops every timer goroutine and UART pump.
func (b *Board) Close() {
	b.closed = true
	for _, t := range b.Timer {
		t.Close()
	}
	for _, l := range b.UART {
		_ = l.DeInit(registry.Instance{})
	}
	for _, p := range b.TTY {
		_ = p.DeInit(registry.Instance{})
	}
}

// Closed reports whether Close has run.
func (b *Board) Closed() bool { return b.closed }

func (b *Board) builder(family string) (builder, bool) {
	switch family {
	case "adc":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			d := NewADC()
			b.ADC[in.Name] = d
			return register[adc.Driver](h.ADC.AddDriverInstance, h.ADC.Init, d, in)
		}, true
	case "gpio":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			d := NewGPIO()
			b.GPIO[in.Name] = d
			return register[gpio.Driver](h.GPIO.AddDriverInstance, h.GPIO.Init, d, in)
		}, true
	case "i2c":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			bus := NewI2CBus()
			b.I2C[in.Name] = bus
			return register(h.I2C.AddDriverInstance, h.I2C.Init, i2c.FromBus(bus, bus.configure), in)
		}, true
	case "spi":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			bus := NewSPIBus()
			b.SPI[in.Name] = bus
			return register(h.SPI.AddDriverInstance, h.SPI.Init, spi.FromBus(bus, bus.selectCS, bus.configure), in)
		}, true
	case "uart":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			if isDevice(in.Arg) {
				p := NewSerialPort(in.Arg)
				b.TTY[in.Name] = p
				return register[uart.Driver](h.UART.AddDriverInstance, h.UART.Init, p, in)
			}
			d, err := NewLoopback(in.Arg)
			if err != nil {
				return 0, err
			}
			b.UART[in.Name] = d
			return register[uart.Driver](h.UART.AddDriverInstance, h.UART.Init, d, in)
		}, true
	case "pwm":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			d := NewPWM()
			b.PWM[in.Name] = d
			return register[pwm.Driver](h.PWM.AddDriverInstance, h.PWM.Init, d, in)
		}, true
	case "interval":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			d := NewTimer(b.Clock)
			b.Timer[in.Name] = d
			return register[interval.Driver](h.Interval.AddDriverInstance, h.Interval.Init, d, in)
		}, true
	case "datetime":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			d := NewRTC(b.Clock)
			b.RTC[in.Name] = d
			return register[datetime.Driver](h.DateTime.AddDriverInstance, h.DateTime.Init, d, in)
		}, true
	case "block":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			d, err := NewRAMBlock(in.Arg)
			if err != nil {
				return 0, err
			}
			b.Block[in.Name] = d
			return register[block.Driver](h.Block.AddDriverInstance, h.Block.Init, d, in)
		}, true
	case "filesystem":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			d, err := NewRAMFS(in.Arg)
			if err != nil {
				return 0, err
			}
			b.FS[in.Name] = d
			return register[filesystem.Driver](h.Filesystem.AddDriverInstance, h.Filesystem.Init, d, in)
		}, true
	}
	return nil, false
}
