// Package hal bundles one registry-backed family per peripheral class.
// Families are sized once at boot from the board config and never grow.
package hal

import (
	"nimbus-go/config"
	"nimbus-go/hal/adc"
	"nimbus-go/hal/ble"
	"nimbus-go/hal/block"
	"nimbus-go/hal/cellular"
	"nimbus-go/hal/cloud"
	"nimbus-go/hal/datetime"
	"nimbus-go/hal/filesystem"
	"nimbus-go/hal/gpio"
	"nimbus-go/hal/i2c"
	"nimbus-go/hal/interval"
	"nimbus-go/hal/nfc"
	"nimbus-go/hal/pwm"
	"nimbus-go/hal/spi"
	"nimbus-go/hal/tcpclient"
	"nimbus-go/hal/tcpserver"
	"nimbus-go/hal/uart"
	"nimbus-go/hal/wifi"
)

type HAL struct {
	ADC        *adc.ADC
	BLE        *ble.BLE
	Block      *block.Block
	Cellular   *cellular.Cellular
	Cloud      *cloud.Cloud
	DateTime   *datetime.DateTime
	Filesystem *filesystem.Filesystem
	GPIO       *gpio.GPIO
	I2C        *i2c.I2C
	Interval   *interval.Interval
	NFC        *nfc.NFC
	PWM        *pwm.PWM
	SPI        *spi.SPI
	TCPClient  *tcpclient.Client
	TCPServer  *tcpserver.Server
	UART       *uart.UART
	WiFi       *wifi.WiFi
}

// Stats is the occupancy of one family registry.
type Stats struct {
	Family string
	Len    int
	Cap    int
}

type sized interface {
	Family() string
	Len() int
	Cap() int
}

// New sizes every family from cfg. A nil cfg, or a family cfg leaves out,
// gets that family's DefaultCapacity.
func New(cfg *config.Config) *HAL {
	capOf := func(name string, def int) int {
		if cfg != nil {
			if f, ok := cfg.Family[name]; ok && f.Capacity > 0 {
				return f.Capacity
			}
		}
		return def
	}
	return &HAL{
		ADC:        adc.New(capOf("adc", adc.DefaultCapacity)),
		BLE:        ble.New(capOf("ble", ble.DefaultCapacity)),
		Block:      block.New(capOf("block", block.DefaultCapacity)),
		Cellular:   cellular.New(capOf("cellular", cellular.DefaultCapacity)),
		Cloud:      cloud.New(capOf("cloud", cloud.DefaultCapacity)),
		DateTime:   datetime.New(capOf("datetime", datetime.DefaultCapacity)),
		Filesystem: filesystem.New(capOf("filesystem", filesystem.DefaultCapacity)),
		GPIO:       gpio.New(capOf("gpio", gpio.DefaultCapacity)),
		I2C:        i2c.New(capOf("i2c", i2c.DefaultCapacity)),
		Interval:   interval.New(capOf("interval", interval.DefaultCapacity)),
		NFC:        nfc.New(capOf("nfc", nfc.DefaultCapacity)),
		PWM:        pwm.New(capOf("pwm", pwm.DefaultCapacity)),
		SPI:        spi.New(capOf("spi", spi.DefaultCapacity)),
		TCPClient:  tcpclient.New(capOf("tcpclient", tcpclient.DefaultCapacity)),
		TCPServer:  tcpserver.New(capOf("tcpserver", tcpserver.DefaultCapacity)),
		UART:       uart.New(capOf("uart", uart.DefaultCapacity)),
		WiFi:       wifi.New(capOf("wifi", wifi.DefaultCapacity)),
	}
}

// Stats reports every family in config.Families order.
func (h *HAL) Stats() []Stats {
	regs := []sized{
		h.ADC.Registry(), h.BLE.Registry(), h.Block.Registry(),
		h.Cellular.Registry(), h.Cloud.Registry(), h.DateTime.Registry(),
		h.Filesystem.Registry(), h.GPIO.Registry(), h.I2C.Registry(),
		h.Interval.Registry(), h.NFC.Registry(), h.PWM.Registry(),
		h.SPI.Registry(), h.TCPClient.Registry(), h.TCPServer.Registry(),
		h.UART.Registry(), h.WiFi.Registry(),
	}
	out := make([]Stats, len(regs))
	for i, r := range regs {
		out[i] = Stats{Family: r.Family(), Len: r.Len(), Cap: r.Cap()}
	}
	return out
}
