//go:build rp2040 || rp2350

package platform

import (
	"context"
	"machine"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"nimbus-go/config"
	"nimbus-go/errcode"
	"nimbus-go/hal"
	"nimbus-go/hal/adc"
	"nimbus-go/hal/datetime"
	"nimbus-go/hal/gpio"
	"nimbus-go/hal/i2c"
	"nimbus-go/hal/interval"
	"nimbus-go/hal/pwm"
	"nimbus-go/hal/spi"
	"nimbus-go/hal/uart"
	"nimbus-go/registry"
	"nimbus-go/x/strx"
	"nimbus-go/x/timex"
)

// Board maps families onto RP2 peripherals. Instance args carry pins:
// i2c "sda,scl", spi "sck,sdo,sdi", uart "tx,rx".
type Board struct {
	Clock clock.Clock
}

func NewBoard(c clock.Clock) *Board { return &Board{Clock: c} }

func (b *Board) Close() {}

func pins(arg string, n int) ([]machine.Pin, error) {
	nums, err := strx.Uints(arg, ',')
	if err != nil || len(nums) != n {
		return nil, errcode.InvalidInput
	}
	out := make([]machine.Pin, n)
	for i, v := range nums {
		if v > 29 {
			return nil, errcode.UnknownPin
		}
		out[i] = machine.Pin(v)
	}
	return out, nil
}

func (b *Board) builder(family string) (builder, bool) {
	switch family {
	case "adc":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			return register[adc.Driver](h.ADC.AddDriverInstance, h.ADC.Init, &rp2ADC{}, in)
		}, true
	case "gpio":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			return register[gpio.Driver](h.GPIO.AddDriverInstance, h.GPIO.Init, rp2GPIO{}, in)
		}, true
	case "i2c":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			p, err := pins(in.Arg, 2)
			if err != nil {
				return 0, err
			}
			hw := machine.I2C0
			if in.Name == "i2c1" {
				hw = machine.I2C1
			}
			configure := func(cfg i2c.Config) error {
				hz := cfg.FrequencyHz
				if hz == 0 {
					hz = 400 * machine.KHz
				}
				return hw.Configure(machine.I2CConfig{Frequency: hz, SDA: p[0], SCL: p[1]})
			}
			return register(h.I2C.AddDriverInstance, h.I2C.Init, i2c.FromBus(hw, configure), in)
		}, true
	case "spi":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			p, err := pins(in.Arg, 3)
			if err != nil {
				return 0, err
			}
			hw := machine.SPI0
			if in.Name == "spi1" {
				hw = machine.SPI1
			}
			configure := func(cfg spi.Config) error {
				hz := cfg.FrequencyHz
				if hz == 0 {
					hz = 1 * machine.MHz
				}
				return hw.Configure(machine.SPIConfig{
					Frequency: hz, SCK: p[0], SDO: p[1], SDI: p[2],
					Mode: uint8(cfg.Mode), LSBFirst: cfg.LSBFirst,
				})
			}
			sel := func(cs uint32, active bool) {
				pin := machine.Pin(cs)
				pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
				pin.Set(!active)
			}
			return register(h.SPI.AddDriverInstance, h.SPI.Init, spi.FromBus(hw, sel, configure), in)
		}, true
	case "uart":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			p, err := pins(in.Arg, 2)
			if err != nil {
				return 0, err
			}
			hw := uartx.UART0
			if in.Name == "uart1" {
				hw = uartx.UART1
			}
			return register[uart.Driver](h.UART.AddDriverInstance, h.UART.Init, &rp2UART{u: hw, tx: p[0], rx: p[1]}, in)
		}, true
	case "pwm":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			return register[pwm.Driver](h.PWM.AddDriverInstance, h.PWM.Init, rp2PWM{}, in)
		}, true
	case "interval":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			return register[interval.Driver](h.Interval.AddDriverInstance, h.Interval.Init, NewTimer(b.Clock), in)
		}, true
	case "datetime":
		return func(h *hal.HAL, in config.Instance) (registry.Handle, error) {
			return register[datetime.Driver](h.DateTime.AddDriverInstance, h.DateTime.Init, NewRTC(b.Clock), in)
		}, true
	}
	return nil, false
}

// ---- ADC ----

type rp2ADC struct {
	mu  sync.Mutex
	cfg adc.Config
}

func (a *rp2ADC) Init(registry.Instance) error {
	machine.InitADC()
	a.mu.Lock()
	a.cfg = adc.Config{ResolutionBits: defaultADCBits}
	a.mu.Unlock()
	return nil
}

func (a *rp2ADC) DeInit(registry.Instance) error { return nil }

func (a *rp2ADC) SetConfiguration(_ registry.Instance, cfg adc.Config) error {
	if !validADC(cfg) {
		return errcode.InvalidInput
	}
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	return nil
}

func (a *rp2ADC) Read(_ registry.Instance, pin uint32, samples int) (int32, error) {
	if pin < 26 || pin > 29 {
		return 0, errcode.UnknownPin
	}
	ch := machine.ADC{Pin: machine.Pin(pin)}
	ch.Configure(machine.ADCConfig{})
	a.mu.Lock()
	cfg := a.cfg
	a.mu.Unlock()
	var sum int64
	for i := 0; i < samples; i++ {
		sum += int64(millivolts(ch.Get(), cfg))
	}
	return int32(sum / int64(samples)), nil
}

// ---- GPIO ----

type rp2GPIO struct{}

func checkPin(pin uint32) error {
	if pin > 29 {
		return errcode.UnknownPin
	}
	return nil
}

func (rp2GPIO) Init(registry.Instance) error   { return nil }
func (rp2GPIO) DeInit(registry.Instance) error { return nil }

func (rp2GPIO) SetPinConfiguration(_ registry.Instance, pin uint32, cfg gpio.Config) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	p := machine.Pin(pin)
	switch cfg.Mode {
	case gpio.Output, gpio.OutputOpenDrain:
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Set(cfg.Initial)
	case gpio.Input:
		mode := machine.PinInput
		switch cfg.Pull {
		case gpio.PullUp:
			mode = machine.PinInputPullup
		case gpio.PullDown:
			mode = machine.PinInputPulldown
		}
		p.Configure(machine.PinConfig{Mode: mode})
	default:
		return errcode.InvalidInput
	}
	return nil
}

func (rp2GPIO) SetPinState(_ registry.Instance, pin uint32, high bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	machine.Pin(pin).Set(high)
	return nil
}

func (rp2GPIO) GetPinState(_ registry.Instance, pin uint32) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	return machine.Pin(pin).Get(), nil
}

func (rp2GPIO) RegisterInterrupt(_ registry.Instance, pin uint32, trig gpio.Trigger, fn gpio.InterruptFunc) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	p := machine.Pin(pin)
	if fn == nil {
		var none machine.PinChange
		return p.SetInterrupt(none, nil)
	}
	var change machine.PinChange
	switch trig {
	case gpio.TriggerRising:
		change = machine.PinRising
	case gpio.TriggerFalling:
		change = machine.PinFalling
	case gpio.TriggerBoth:
		change = machine.PinToggle
	default:
		return errcode.InvalidInput
	}
	return p.SetInterrupt(change, func(p machine.Pin) { fn(pin, p.Get()) })
}

// ---- PWM ----

// pwmCtrl is the subset of machine's per-slice PWM type used here.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmSlice(pin uint32) pwmCtrl {
	switch (pin >> 1) & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type rp2PWM struct{}

func (rp2PWM) Init(registry.Instance) error   { return nil }
func (rp2PWM) DeInit(registry.Instance) error { return nil }

// SetPinConfiguration reprograms the whole slice period; both channels of
// a slice share one frequency.
func (rp2PWM) SetPinConfiguration(_ registry.Instance, pin uint32, cfg pwm.Config) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	ctrl := pwmSlice(pin)
	period := uint64(timex.PeriodFromHz(cfg.FrequencyHz))
	if err := ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
		return err
	}
	ch, err := ctrl.Channel(machine.Pin(pin))
	if err != nil {
		return err
	}
	ctrl.Set(ch, ctrl.Top()*uint32(cfg.DutyPercent)/100)
	return nil
}

// ---- UART ----

type rp2UART struct {
	u      *uartx.UART
	tx, rx machine.Pin
	mu     sync.Mutex
	cancel context.CancelFunc
}

func (d *rp2UART) Init(registry.Instance) error {
	return d.u.Configure(uartx.UARTConfig{BaudRate: uart.DefaultConfig.Baud, TX: d.tx, RX: d.rx})
}

func (d *rp2UART) DeInit(in registry.Instance) error { return d.RegisterRxCallback(in, nil) }

func (d *rp2UART) SetConfiguration(_ registry.Instance, cfg uart.Config) error {
	d.u.SetBaudRate(cfg.Baud)
	par := uartx.ParityNone
	switch cfg.Parity {
	case uart.ParityEven:
		par = uartx.ParityEven
	case uart.ParityOdd:
		par = uartx.ParityOdd
	}
	return d.u.SetFormat(cfg.DataBits, cfg.StopBits, par)
}

func (d *rp2UART) WriteBlocking(_ registry.Instance, p []byte) (int, error) {
	return d.u.Write(p)
}

// Read polls with a short deadline; an empty receive buffer is not an
// error.
func (d *rp2UART) Read(_ registry.Instance, dst []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	n, err := d.u.RecvSomeContext(ctx, dst)
	if n == 0 && ctx.Err() != nil {
		return 0, nil
	}
	return n, err
}

func (d *rp2UART) RegisterRxCallback(_ registry.Instance, fn uart.RxFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if fn == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	go func() {
		buf := make([]byte, 64)
		for ctx.Err() == nil {
			if n, _ := d.u.RecvSomeContext(ctx, buf); n > 0 {
				fn(buf[:n])
			}
		}
	}()
	return nil
}
