//go:build !(rp2040 || rp2350)

package platform

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"

	"nimbus-go/errcode"
	"nimbus-go/hal/uart"
	"nimbus-go/registry"
)

// serialReadTimeout bounds each Read. termios counts in tenths of a
// second, so anything shorter rounds up to 100ms.
const serialReadTimeout = 100 * time.Millisecond

// isDevice reports whether a uart arg names a host serial device rather
// than a loopback ring size.
func isDevice(arg string) bool {
	return strings.HasPrefix(arg, "/") || strings.HasPrefix(strings.ToUpper(arg), "COM")
}

// SerialPort drives a host tty such as a USB serial adapter. The port is
// opened on Init and reopened on every SetConfiguration.
type SerialPort struct {
	name string

	mu   sync.Mutex
	cfg  uart.Config
	port *serial.Port
	stop chan struct{}
	done chan struct{}
}

func NewSerialPort(name string) *SerialPort {
	return &SerialPort{name: name, cfg: uart.DefaultConfig}
}

func serialConfig(name string, cfg uart.Config) (*serial.Config, error) {
	c := &serial.Config{
		Name:        name,
		Baud:        int(cfg.Baud),
		ReadTimeout: serialReadTimeout,
		Size:        cfg.DataBits,
	}
	switch cfg.Parity {
	case uart.ParityNone:
		c.Parity = serial.ParityNone
	case uart.ParityEven:
		c.Parity = serial.ParityEven
	case uart.ParityOdd:
		c.Parity = serial.ParityOdd
	default:
		return nil, errcode.InvalidInput
	}
	switch cfg.StopBits {
	case 0, 1:
		c.StopBits = serial.Stop1
	case 2:
		c.StopBits = serial.Stop2
	default:
		return nil, errcode.InvalidInput
	}
	if cfg.FlowControl {
		return nil, errcode.NotSupported
	}
	return c, nil
}

// open is called with mu held.
func (s *SerialPort) open(cfg uart.Config) error {
	sc, err := serialConfig(s.name, cfg)
	if err != nil {
		return err
	}
	p, err := serial.OpenPort(sc)
	if err != nil {
		return errcode.Wrap(errcode.NotFound, "uart", errors.Wrapf(err, "open %s", s.name))
	}
	if s.port != nil {
		_ = s.port.Close()
	}
	s.port, s.cfg = p, cfg
	return nil
}

func (s *SerialPort) Init(registry.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open(s.cfg)
}

func (s *SerialPort) DeInit(registry.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPump()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *SerialPort) SetConfiguration(_ registry.Instance, cfg uart.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return errcode.Busy
	}
	return s.open(cfg)
}

func (s *SerialPort) current() (*serial.Port, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil, errcode.Uninitialized
	}
	return s.port, nil
}

func (s *SerialPort) WriteBlocking(_ registry.Instance, p []byte) (int, error) {
	port, err := s.current()
	if err != nil {
		return 0, err
	}
	n, err := port.Write(p)
	if err != nil {
		return n, errcode.Wrap(errcode.MapDriverErr(err), "uart", err)
	}
	return n, nil
}

// Read waits at most serialReadTimeout; a quiet line is not an error.
func (s *SerialPort) Read(_ registry.Instance, dst []byte) (int, error) {
	s.mu.Lock()
	pumping := s.stop != nil
	s.mu.Unlock()
	if pumping {
		return 0, errcode.Busy
	}
	port, err := s.current()
	if err != nil {
		return 0, err
	}
	return quiet(port.Read(dst))
}

func quiet(n int, err error) (int, error) {
	if err == io.EOF {
		return n, nil
	}
	if err != nil {
		return n, errcode.Wrap(errcode.MapDriverErr(err), "uart", err)
	}
	return n, nil
}

func (s *SerialPort) RegisterRxCallback(_ registry.Instance, fn uart.RxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPump()
	if fn == nil {
		return nil
	}
	if s.port == nil {
		return errcode.Uninitialized
	}
	s.stop, s.done = make(chan struct{}), make(chan struct{})
	go s.pump(s.port, fn, s.stop, s.done)
	return nil
}

// stopPump is called with mu held. It waits out at most one read timeout.
func (s *SerialPort) stopPump() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

func (s *SerialPort) pump(port *serial.Port, fn uart.RxFunc, stop, done chan struct{}) {
	defer close(done)
	buf := make([]byte, 64)
	for {
		select {
		case <-stop:
			return
		default:
		}
		n, err := quiet(port.Read(buf))
		if n > 0 {
			fn(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
