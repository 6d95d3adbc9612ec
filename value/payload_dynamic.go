//go:build nimbus_dynamic

package value

import "nimbus-go/errcode"

// MaxStaticSize is zero when payloads are heap backed.
const MaxStaticSize = 0

// Dynamic reports whether payloads live on the heap.
const Dynamic = true

// maxDynamicSize bounds a single heap payload. Requests above it fail the
// way an exhausted heap would on target.
const maxDynamicSize = 1 << 20

// payload owns a heap block sized exactly to the stored bytes.
type payload struct {
	buf []byte
}

func (p *payload) limit() int { return maxDynamicSize }

func (p *payload) alloc(n int) ([]byte, error) {
	if n < 0 || n > maxDynamicSize {
		return nil, errcode.OutOfMemory
	}
	p.buf = make([]byte, n)
	return p.buf, nil
}

func (p *payload) bytes(n int) []byte { return p.buf[:n] }

func (p *payload) release() { p.buf = nil }
