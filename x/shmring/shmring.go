// Package shmring is a single-producer single-consumer byte ring. The
// producer may run in interrupt context; neither side blocks.
package shmring

import "sync/atomic"

// Ring indices are monotonic; their difference is the fill level.
type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32
	wr   atomic.Uint32

	readable chan struct{} // empty -> non-empty edge
	writable chan struct{} // full -> non-full edge
}

// New returns a ring of size bytes. size is rounded up to a power of two,
// minimum 2.
func New(size int) *Ring {
	n := 2
	for n < size {
		n <<= 1
	}
	return &Ring{
		buf:      make([]byte, n),
		mask:     uint32(n - 1),
		readable: make(chan struct{}, 1),
		writable: make(chan struct{}, 1),
	}
}

func (r *Ring) Cap() int { return len(r.buf) }

func (r *Ring) Available() int { return int(r.wr.Load() - r.rd.Load()) }

func (r *Ring) Space() int { return len(r.buf) - r.Available() }

// TryWriteFrom copies as much of src as fits and returns the count.
func (r *Ring) TryWriteFrom(src []byte) int {
	rd := r.rd.Load()
	wr := r.wr.Load()
	used := wr - rd
	n := len(r.buf) - int(used)
	if n > len(src) {
		n = len(src)
	}
	if n <= 0 {
		return 0
	}
	i := wr & r.mask
	first := copy(r.buf[i:], src[:n])
	copy(r.buf, src[first:n])
	r.wr.Store(wr + uint32(n))
	if used == 0 {
		signal(r.readable)
	}
	return n
}

// TryReadInto copies up to len(dst) pending bytes and returns the count.
func (r *Ring) TryReadInto(dst []byte) int {
	rd := r.rd.Load()
	wr := r.wr.Load()
	n := int(wr - rd)
	if n > len(dst) {
		n = len(dst)
	}
	if n <= 0 {
		return 0
	}
	i := rd & r.mask
	first := copy(dst[:n], r.buf[i:])
	copy(dst[first:n], r.buf)
	r.rd.Store(rd + uint32(n))
	if int(wr-rd) == len(r.buf) {
		signal(r.writable)
	}
	return n
}

func (r *Ring) Readable() <-chan struct{} { return r.readable }
func (r *Ring) Writable() <-chan struct{} { return r.writable }

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
