// Package config loads the board description: log level, loop pacing, bus
// depth, per-family registry capacities and the driver instances the
// platform registers at boot. Documents are TOML; every board has an
// embedded default.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"nimbus-go/bus"
	"nimbus-go/value"
	"nimbus-go/x/strx"
)

// Families lists every HAL family a document may configure.
var Families = []string{
	"adc", "ble", "block", "cellular", "cloud", "datetime", "filesystem",
	"gpio", "i2c", "interval", "nfc", "pwm", "spi", "tcpclient",
	"tcpserver", "uart", "wifi",
}

const (
	DefaultBoard    = "host"
	DefaultLogLevel = "info"
	DefaultTickMS   = 10
	DefaultBusDepth = 32
)

// Instance is one driver the platform registers in a family.
type Instance struct {
	Name string `toml:"name"`
	// Arg is handed to the driver untouched; its meaning is per platform
	// (a pin number, a bus id, a file path).
	Arg string `toml:"arg"`
}

type Family struct {
	Capacity  int        `toml:"capacity"`
	Instances []Instance `toml:"instances"`
}

// Demo wires the sample ability chain in main.
type Demo struct {
	ADCPin      uint32  `toml:"adc_pin"`
	LEDPin      uint32  `toml:"led_pin"`
	ThresholdMV float64 `toml:"threshold_mv"`
	IntervalMS  int     `toml:"interval_ms"`
}

type Config struct {
	Board    string            `toml:"board"`
	LogLevel string            `toml:"log_level"`
	TickMS   int               `toml:"tick_ms"`
	BusDepth int               `toml:"bus_depth"`
	Family   map[string]Family `toml:"family"`
	Demo     Demo              `toml:"demo"`
}

// Capacity returns the registry capacity for family, never less than 1.
func (c *Config) Capacity(family string) int {
	if f, ok := c.Family[family]; ok && f.Capacity > 0 {
		return f.Capacity
	}
	return 1
}

// Instances returns the instances configured for family.
func (c *Config) Instances(family string) []Instance {
	return c.Family[family].Instances
}

// Parse decodes and validates a TOML document. Unknown keys are errors so a
// typo cannot silently fall back to a default.
func Parse(raw []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(raw), &c)
	if err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := c.normalise(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return c, nil
}

// Default parses the embedded document for board ("" selects
// DefaultBoard).
func Default(board string) (*Config, error) {
	board = strx.Coalesce(board, DefaultBoard)
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return nil, errors.Errorf("config: no embedded config for board %q", board)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "embedded %s", board)
	}
	return c, nil
}

func (c *Config) normalise() error {
	c.Board = strx.Coalesce(c.Board, DefaultBoard)
	c.LogLevel = strx.Coalesce(strings.ToLower(c.LogLevel), DefaultLogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("config: log_level %q", c.LogLevel)
	}
	if c.TickMS < 0 || c.BusDepth < 0 {
		return errors.New("config: tick_ms and bus_depth must not be negative")
	}
	if c.TickMS == 0 {
		c.TickMS = DefaultTickMS
	}
	if c.BusDepth == 0 {
		c.BusDepth = DefaultBusDepth
	}
	if c.Family == nil {
		c.Family = map[string]Family{}
	}
	var errs error
	for name := range c.Family {
		if !known(name) {
			errs = multierr.Append(errs, errors.Errorf("config: unknown family %q", name))
		}
	}
	// Families order keeps the combined message stable.
	for _, name := range Families {
		f, ok := c.Family[name]
		if !ok {
			continue
		}
		if err := f.normalise(name); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		c.Family[name] = f
	}
	if errs != nil {
		return errs
	}
	if c.Demo.IntervalMS < 0 {
		return errors.New("config: demo.interval_ms must not be negative")
	}
	return nil
}

func (f *Family) normalise(name string) error {
	if f.Capacity < 0 {
		return errors.Errorf("config: family %s: negative capacity", name)
	}
	if f.Capacity == 0 {
		f.Capacity = max(1, len(f.Instances))
	}
	if len(f.Instances) > f.Capacity {
		return errors.Errorf("config: family %s: %d instances exceed capacity %d",
			name, len(f.Instances), f.Capacity)
	}
	for i, in := range f.Instances {
		if in.Name == "" {
			return errors.Errorf("config: family %s: instance %d has no name", name, i)
		}
	}
	return nil
}

func known(family string) bool {
	for _, f := range Families {
		if f == family {
			return true
		}
	}
	return false
}

// Publish announces the settings as retained Values under config/, one
// topic per key, so abilities can read them from the bus.
func (c *Config) Publish(b *bus.Bus) error {
	type entry struct {
		topic bus.Topic
		set   func(v *value.Value) error
	}
	root := bus.T("config")
	entries := []entry{
		{root.Append("board"), func(v *value.Value) error { return v.SetString(c.Board) }},
		{root.Append("log_level"), func(v *value.Value) error { return v.SetString(c.LogLevel) }},
		{root.Append("tick_ms"), func(v *value.Value) error { return v.SetInt(int32(c.TickMS)) }},
		{root.Append("demo", "threshold_mv"), func(v *value.Value) error { return v.SetDouble(c.Demo.ThresholdMV) }},
	}
	names := make([]string, 0, len(c.Family))
	for name := range c.Family {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		capacity := int32(c.Family[name].Capacity)
		entries = append(entries, entry{
			root.Append("family", name, "capacity"),
			func(v *value.Value) error { return v.SetInt(capacity) },
		})
	}

	var v value.Value
	defer v.Free()
	for _, e := range entries {
		if err := e.set(&v); err != nil {
			return errors.Wrapf(err, "config: publish %s", e.topic)
		}
		if err := b.Publish(e.topic, &v, true); err != nil {
			return errors.Wrapf(err, "config: publish %s", e.topic)
		}
	}
	return nil
}
