//go:build !(rp2040 || rp2350)

package platform

import (
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarm/serial"

	"nimbus-go/config"
	"nimbus-go/errcode"
	"nimbus-go/hal"
	"nimbus-go/hal/uart"
	"nimbus-go/registry"
	"nimbus-go/x/logx"
)

func TestIsDevice(t *testing.T) {
	assert.True(t, isDevice("/dev/ttyUSB0"))
	assert.True(t, isDevice("com3"))
	assert.False(t, isDevice("4096"))
	assert.False(t, isDevice(""))
}

func TestSerialConfigMapping(t *testing.T) {
	c, err := serialConfig("/dev/ttyACM0", uart.Config{Baud: 9600, DataBits: 7, StopBits: 2, Parity: uart.ParityEven})
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", c.Name)
	assert.Equal(t, 9600, c.Baud)
	assert.Equal(t, byte(7), c.Size)
	assert.Equal(t, serial.Stop2, c.StopBits)
	assert.Equal(t, serial.ParityEven, c.Parity)
	assert.Equal(t, serialReadTimeout, c.ReadTimeout)

	_, err = serialConfig("x", uart.Config{Baud: 9600, StopBits: 3})
	assert.ErrorIs(t, err, errcode.InvalidInput)
	_, err = serialConfig("x", uart.Config{Baud: 9600, FlowControl: true})
	assert.ErrorIs(t, err, errcode.NotSupported)
}

func TestSerialPortClosedState(t *testing.T) {
	p := NewSerialPort("/dev/nimbus-none")
	_, err := p.WriteBlocking(registry.Instance{}, []byte("x"))
	assert.ErrorIs(t, err, errcode.Uninitialized)
	assert.ErrorIs(t, p.RegisterRxCallback(registry.Instance{}, func([]byte) {}), errcode.Uninitialized)
	assert.NoError(t, p.DeInit(registry.Instance{}))
}

func TestProvideMissingDevice(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[family.uart]
instances = [{ name = "tty0", arg = "/dev/nimbus-does-not-exist" }]
`))
	require.NoError(t, err)
	b := NewBoard(clock.NewMock())
	defer b.Close()
	err = Provide(cfg, hal.New(cfg), b, logx.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, errcode.NotFound)
	assert.Contains(t, err.Error(), "uart/tty0")
	assert.Contains(t, b.TTY, "tty0")
}
