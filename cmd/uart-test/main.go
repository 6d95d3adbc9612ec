// Command uart-test exercises the first configured UART through the HAL as
// a loopback: a smoke round trip, an FNV-1a integrity pass and a timed
// throughput run with the receive callback attached. On hardware, wire TX
// to RX first.
package main

import (
	"bytes"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"nimbus-go/config"
	"nimbus-go/hal"
	"nimbus-go/platform"
	"nimbus-go/registry"
	"nimbus-go/x/logx"
)

func main() {
	println("[uart] boot …")
	time.Sleep(bootDelay)

	cfg, err := config.Default(board)
	if err != nil {
		println("[uart] FAIL: config:", err.Error())
		return
	}
	log, err := logx.New(cfg.LogLevel)
	if err != nil {
		println("[uart] FAIL: logger:", err.Error())
		return
	}
	defer func() { _ = log.Sync() }()

	h := hal.New(cfg)
	b := platform.NewBoard(clock.New())
	defer b.Close()
	if err := platform.Provide(cfg, h, b, log); err != nil {
		println("[uart] FAIL: provide:", err.Error())
		return
	}
	ins := cfg.Instances("uart")
	if len(ins) == 0 {
		println("[uart] FAIL: no uart configured for board", cfg.Board)
		return
	}
	u, ok := h.UART.Registry().Lookup(ins[0].Name)
	if !ok {
		println("[uart] FAIL: lookup", ins[0].Name)
		return
	}
	println("[uart] using", ins[0].Name, "handle=", int(u))

	println("[uart] smoke: send 'hello-uart' and verify")
	if smoke(h, u, []byte("hello-uart"), 3*time.Second) {
		println("[uart] smoke: PASS")
	} else {
		println("[uart] smoke: FAIL")
	}

	println("[uart] integrity: 4096 bytes, chunk 64")
	if integrity(h, u, 4096, 64, 5*time.Second) {
		println("[uart] integrity: PASS")
	} else {
		println("[uart] integrity: FAIL")
	}

	println("[uart] throughput: 2s, chunk 256, rx callback")
	throughput(h, u, 2*time.Second, 256)
}

// smoke writes msg and polls until it shows up in the receive stream.
func smoke(h *hal.HAL, u registry.Handle, msg []byte, timeout time.Duration) bool {
	if _, err := h.UART.WriteBlocking(u, msg); err != nil {
		println("[uart] smoke: write:", err.Error())
		return false
	}
	var got []byte
	tmp := make([]byte, 128)
	for deadline := time.Now().Add(timeout); time.Now().Before(deadline); {
		n, err := h.UART.Read(u, tmp)
		if err != nil {
			println("[uart] smoke: read:", err.Error())
			return false
		}
		got = append(got, tmp[:n]...)
		if bytes.Contains(got, msg) {
			return true
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
	println("[uart] smoke: not found; got bytes=", len(got))
	return false
}

const (
	fnvOffset = uint32(2166136261)
	fnvPrime  = uint32(16777619)
)

func fnv(h uint32, p []byte) uint32 {
	for _, c := range p {
		h ^= uint32(c)
		h *= fnvPrime
	}
	return h
}

// integrity interleaves chunked writes with drains so the ring never
// fills, then compares hashes of both directions.
func integrity(h *hal.HAL, u registry.Handle, total, chunk int, timeout time.Duration) bool {
	gen := patGen{s: 0xA5}
	txHash, rxHash := fnvOffset, fnvOffset
	out := make([]byte, chunk)
	tmp := make([]byte, 128)
	written, received := 0, 0

	for deadline := time.Now().Add(timeout); (written < total || received < total) && time.Now().Before(deadline); {
		if written < total {
			n := chunk
			if n > total-written {
				n = total - written
			}
			gen.fill(out[:n])
			w, err := h.UART.WriteBlocking(u, out[:n])
			if err != nil {
				println("[uart] integrity: write:", err.Error())
				return false
			}
			txHash = fnv(txHash, out[:w])
			written += w
		}
		for {
			n, err := h.UART.Read(u, tmp)
			if err != nil {
				println("[uart] integrity: read:", err.Error())
				return false
			}
			if n == 0 {
				break
			}
			rxHash = fnv(rxHash, tmp[:n])
			received += n
		}
		if written >= total && received < total {
			time.Sleep(time.Millisecond)
		}
	}

	println("[uart] integrity: written=", written, " received=", received)
	println("[uart] integrity: txHash=", txHash, " rxHash=", rxHash)
	return written == total && received == total && txHash == rxHash
}

// throughput writes as fast as the driver accepts while the receive
// callback counts bytes, then reports rates.
func throughput(h *hal.HAL, u registry.Handle, d time.Duration, chunk int) {
	var received atomic.Int64
	if err := h.UART.RegisterRxCallback(u, func(p []byte) { received.Add(int64(len(p))) }); err != nil {
		println("[uart] throughput: rx callback:", err.Error())
		return
	}
	defer func() { _ = h.UART.RegisterRxCallback(u, nil) }()

	gen := patGen{s: 0x42}
	out := make([]byte, chunk)
	gen.fill(out)

	start := time.Now()
	written := 0
	for time.Since(start) < d {
		out[0] ^= gen.next()
		n, err := h.UART.WriteBlocking(u, out)
		written += n
		if err != nil {
			println("[uart] throughput: write:", err.Error())
			break
		}
	}
	// grace period for the tail still in flight
	time.Sleep(300 * time.Millisecond)

	elapsed := time.Since(start)
	rx := received.Load()
	println("[uart] throughput: TX bytes=", written, " (~", int64(written)*int64(time.Second)/int64(elapsed), " B/s)")
	println("[uart] throughput: RX bytes=", rx, " (~", rx*int64(time.Second)/int64(elapsed), " B/s)")
}

// patGen is a deterministic xorshift8 byte stream.
type patGen struct{ s byte }

func (g *patGen) next() byte {
	x := g.s
	x ^= x << 3
	x ^= x >> 5
	x ^= x << 1
	g.s = x
	return x
}

func (g *patGen) fill(dst []byte) {
	for i := range dst {
		dst[i] = g.next()
	}
}
