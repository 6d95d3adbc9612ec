// Package app assembles the runtime: bus, HAL, board drivers and the
// ability engine, plus the demo chain that lights an LED while an analog
// input sits above a threshold.
package app

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"nimbus-go/ability"
	"nimbus-go/bus"
	"nimbus-go/config"
	"nimbus-go/errcode"
	"nimbus-go/hal"
	"nimbus-go/hal/adc"
	"nimbus-go/hal/gpio"
	"nimbus-go/hal/interval"
	"nimbus-go/platform"
	"nimbus-go/registry"
	"nimbus-go/value"
	"nimbus-go/x/logx"
	"nimbus-go/x/timex"
)

// Topics the demo chain uses besides the ability outputs.
var (
	TickTopic      = bus.T("demo", "tick")
	ThresholdTopic = bus.T("config", "demo", "threshold_mv")
)

const abilityCapacity = 4

type App struct {
	cfg    *config.Config
	log    logx.Logger
	clk    clock.Clock
	Bus    *bus.Bus
	HAL    *hal.HAL
	Board  *platform.Board
	Engine *ability.Engine

	tickH  registry.Handle
	tickID interval.ID
}

// New builds every layer from cfg. Drivers are registered and initialised
// but nothing runs until Run or Step.
func New(cfg *config.Config, log logx.Logger, clk clock.Clock) (*App, error) {
	return build(cfg, log, clk, platform.NewBoard(clk))
}

// build assembles the app on board b. b is closed on every failure.
func build(cfg *config.Config, log logx.Logger, clk clock.Clock, b *platform.Board) (*App, error) {
	a := &App{
		cfg:   cfg,
		log:   log,
		clk:   clk,
		Bus:   bus.New(cfg.BusDepth),
		HAL:   hal.New(cfg),
		Board: b,
	}
	if err := platform.Provide(cfg, a.HAL, a.Board, log); err != nil {
		a.Board.Close()
		return nil, err
	}
	for _, s := range a.HAL.Stats() {
		if s.Len > 0 {
			log.Debugw("family", "name", s.Family, "instances", s.Len, "capacity", s.Cap)
		}
	}
	if err := cfg.Publish(a.Bus); err != nil {
		a.Board.Close()
		return nil, errors.Wrap(err, "app: publish config")
	}
	a.Engine = ability.New(a.Bus, abilityCapacity, log)
	if err := a.wireDemo(); err != nil {
		a.Close()
		return nil, errors.WithMessage(err, "app: demo")
	}
	return a, nil
}

// Step delivers everything pending on the bus.
func (a *App) Step() int { return a.Bus.Drain() }

// Run ticks the bus every cfg.TickMS until ctx ends, then closes the app.
func (a *App) Run(ctx context.Context) error {
	tk := a.clk.Ticker(timex.Ms(a.cfg.TickMS))
	defer tk.Stop()
	a.log.Infow("running", "board", a.cfg.Board, "tick_ms", a.cfg.TickMS)
	for {
		select {
		case <-ctx.Done():
			a.Close()
			a.log.Infow("stopped")
			return nil
		case <-tk.C:
			a.Step()
		}
	}
}

// Close stops the demo interval, the engine and board goroutines.
func (a *App) Close() {
	if a.tickID != 0 {
		_ = a.HAL.Interval.RemoveInterval(a.tickH, a.tickID)
		a.tickID = 0
	}
	if a.Engine != nil {
		a.Engine.Close()
	}
	a.Board.Close()
}

// firstHandle resolves the first instance cfg lists for family.
func (a *App) firstHandle(family string, reg interface {
	Lookup(string) (registry.Handle, bool)
}) (registry.Handle, bool) {
	ins := a.cfg.Instances(family)
	if len(ins) == 0 {
		return 0, false
	}
	return reg.Lookup(ins[0].Name)
}

// wireDemo links interval -> sample -> threshold -> led. The demo is
// skipped when the board lacks an ADC, GPIO or interval instance.
func (a *App) wireDemo() error {
	d := a.cfg.Demo
	if d.IntervalMS == 0 {
		return nil
	}
	adcH, ok1 := a.firstHandle("adc", a.HAL.ADC.Registry())
	gpioH, ok2 := a.firstHandle("gpio", a.HAL.GPIO.Registry())
	tickH, ok3 := a.firstHandle("interval", a.HAL.Interval.Registry())
	if !ok1 || !ok2 || !ok3 {
		a.log.Warnw("demo disabled: board lacks adc, gpio or interval")
		return nil
	}
	if err := a.HAL.ADC.SetConfiguration(adcH, adc.Config{ResolutionBits: 12}); err != nil {
		return err
	}
	if err := a.HAL.GPIO.SetPinConfiguration(gpioH, d.LEDPin, gpio.Config{Mode: gpio.Output}); err != nil {
		return err
	}

	sample, err := a.Engine.Register("sample", ability.Func(func(_ *value.Value, out *value.Value) error {
		var mv value.Value
		defer mv.Free()
		if err := a.HAL.ADC.ReadValue(adcH, d.ADCPin, 4, &mv); err != nil {
			return err
		}
		return out.SetConverted(value.Float, &mv)
	}))
	if err != nil {
		return err
	}
	threshold, err := a.Engine.Register("threshold", ability.Func(a.compareThreshold))
	if err != nil {
		return err
	}
	led, err := a.Engine.Register("led", ability.Func(func(v *value.Value, _ *value.Value) error {
		return a.HAL.GPIO.SetPinValue(gpioH, d.LEDPin, v)
	}))
	if err != nil {
		return err
	}
	links := []struct {
		trigger bus.Topic
		h       registry.Handle
	}{
		{TickTopic, sample},
		{ability.OutTopic("sample"), threshold},
		{ability.OutTopic("threshold"), led},
	}
	for _, l := range links {
		if _, err := a.Engine.Link(l.trigger, l.h); err != nil {
			return err
		}
	}

	id, err := a.HAL.Interval.AddCallbackInterval(tickH, timex.Ms(d.IntervalMS), func(v *value.Value) {
		if err := a.Bus.Publish(TickTopic, v, false); err != nil {
			a.log.Debugw("tick dropped", "err", err)
		}
	})
	if err != nil {
		return err
	}
	a.tickH, a.tickID = tickH, id
	a.log.Infow("demo wired", "adc_pin", d.ADCPin, "led_pin", d.LEDPin,
		"threshold_mv", d.ThresholdMV, "interval_ms", d.IntervalMS)
	return nil
}

// compareThreshold reads the retained threshold so a later config publish
// takes effect without rewiring.
func (a *App) compareThreshold(v *value.Value, out *value.Value) error {
	limit, ok := a.Bus.Retained(ThresholdTopic)
	if !ok {
		return errcode.Uninitialized
	}
	defer limit.Free()
	var lf value.Value
	defer lf.Free()
	if err := lf.SetConverted(value.Float, &limit); err != nil {
		return err
	}
	above, err := value.Compare(v, &lf, value.GreaterThan)
	if err != nil {
		return err
	}
	return out.SetBool(above)
}
