//go:build !nimbus_dynamic

package value

import "nimbus-go/errcode"

// MaxStaticSize is the inline payload capacity of every Value in the
// static build. Stores larger than this fail with errcode.OutOfMemory.
const MaxStaticSize = 64

// Dynamic reports whether payloads live on the heap.
const Dynamic = false

// payload is an inline fixed buffer; a Value never allocates for scalars,
// strings or binaries in this mode.
type payload struct {
	buf [MaxStaticSize]byte
}

func (p *payload) limit() int { return MaxStaticSize }

func (p *payload) alloc(n int) ([]byte, error) {
	if n < 0 || n > MaxStaticSize {
		return nil, errcode.OutOfMemory
	}
	return p.buf[:n], nil
}

func (p *payload) bytes(n int) []byte { return p.buf[:n] }

func (p *payload) release() { p.buf = [MaxStaticSize]byte{} }
