package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (config.board, or the -board flag)
// Val: raw TOML for that board
// -----------------------------------------------------------------------------

// EmbeddedConfigLookup allows overriding how board defaults are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

const cfgHost = `
board     = "host"
log_level = "info"
tick_ms   = 10
bus_depth = 32

[family.adc]
capacity  = 1
instances = [{ name = "adc0" }]

[family.gpio]
capacity  = 1
instances = [{ name = "gpio0" }]

[family.i2c]
capacity  = 2
instances = [{ name = "i2c0" }, { name = "i2c1" }]

[family.spi]
instances = [{ name = "spi0" }]

[family.uart]
instances = [{ name = "uart0", arg = "4096" }]

[family.pwm]
instances = [{ name = "pwm0" }]

[family.interval]
instances = [{ name = "timer0" }]

[family.datetime]
instances = [{ name = "rtc0" }]

[family.block]
instances = [{ name = "flash0", arg = "256x4096" }]

[family.filesystem]
instances = [{ name = "ramfs" }]

[demo]
adc_pin      = 26
led_pin      = 25
threshold_mv = 1650.0
interval_ms  = 500
`

const cfgPico = `
board     = "pico"
log_level = "info"
tick_ms   = 5
bus_depth = 16

[family.adc]
instances = [{ name = "adc0" }]

[family.gpio]
instances = [{ name = "gpio0" }]

[family.i2c]
capacity  = 2
instances = [{ name = "i2c0", arg = "4,5" }, { name = "i2c1", arg = "2,3" }]

[family.spi]
instances = [{ name = "spi0", arg = "18,19,16" }]

[family.uart]
instances = [{ name = "uart0", arg = "0,1" }]

[family.pwm]
instances = [{ name = "pwm0" }]

[family.interval]
instances = [{ name = "timer0" }]

[family.datetime]
instances = [{ name = "rtc0" }]

[demo]
adc_pin      = 26
led_pin      = 25
threshold_mv = 1650.0
interval_ms  = 250
`

var embeddedConfigs = map[string][]byte{
	"host": []byte(cfgHost),
	"pico": []byte(cfgPico),
}
