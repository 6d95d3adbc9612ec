package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"nimbus-go/bus"
	"nimbus-go/errcode"
)

func TestEmbeddedDefaults(t *testing.T) {
	for _, board := range []string{"", "host", "pico"} {
		c, err := Default(board)
		require.NoError(t, err, board)
		assert.NotEmpty(t, c.Instances("gpio"), board)
		assert.Equal(t, 2, c.Capacity("i2c"), board)
		assert.Greater(t, c.Demo.ThresholdMV, 0.0)
	}
	_, err := Default("esp32")
	assert.ErrorContains(t, err, `no embedded config for board "esp32"`)
}

func TestParseFillsDefaults(t *testing.T) {
	c, err := Parse([]byte(`
[family.uart]
instances = [{ name = "a" }, { name = "b" }]
`))
	require.NoError(t, err)
	assert.Equal(t, DefaultBoard, c.Board)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.Equal(t, DefaultTickMS, c.TickMS)
	assert.Equal(t, DefaultBusDepth, c.BusDepth)
	assert.Equal(t, 2, c.Capacity("uart"))
	assert.Equal(t, 1, c.Capacity("nfc"))
	assert.Equal(t, "b", c.Instances("uart")[1].Name)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "tick = 5",
		"unknown family":   "[family.lora]\ncapacity = 1",
		"negative":         "[family.adc]\ncapacity = -1",
		"over capacity":    "[family.adc]\ncapacity = 1\ninstances = [{ name = \"a\" }, { name = \"b\" }]",
		"unnamed instance": "[family.adc]\ninstances = [{ arg = \"3\" }]",
		"log level":        `log_level = "chatty"`,
		"negative tick":    "tick_ms = -1",
		"bad toml":         "board = ",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadWrapsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.toml")
	require.NoError(t, os.WriteFile(path, []byte("board = \"bench\"\nlog_level = \"DEBUG\"\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bench", c.Board)
	assert.Equal(t, "debug", c.LogLevel)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "missing.toml")

	require.NoError(t, os.WriteFile(path, []byte("nope = 1"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "board.toml")
}

func TestEmbeddedLookupOverride(t *testing.T) {
	old := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(board string) ([]byte, bool) {
		return []byte(`board = "` + board + `"`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = old })

	c, err := Default("bench")
	require.NoError(t, err)
	assert.Equal(t, "bench", c.Board)
}

func TestPublishRetained(t *testing.T) {
	c, err := Default("host")
	require.NoError(t, err)
	b := bus.New(64)
	require.NoError(t, c.Publish(b))

	v, ok := b.Retained(bus.Parse("config/board"))
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "host", s)

	v, ok = b.Retained(bus.Parse("config/family/i2c/capacity"))
	require.True(t, ok)
	n, _ := v.AsInt()
	assert.Equal(t, int32(2), n)

	small := bus.New(1)
	err = c.Publish(small)
	assert.ErrorIs(t, err, errcode.OutOfMemory)
}

func TestParseReportsEveryFamilyError(t *testing.T) {
	_, err := Parse([]byte("[family.adc]\ncapacity = -1\n\n[family.gpio]\ncapacity = 1\ninstances = [{ name = \"a\" }, { name = \"b\" }]\n"))
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], "adc")
	assert.ErrorContains(t, errs[1], "gpio")
}
