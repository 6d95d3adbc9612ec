package platform

import (
	"sync"

	"nimbus-go/errcode"
	"nimbus-go/hal/block"
	"nimbus-go/registry"
	"nimbus-go/x/strx"
)

const (
	DefaultBlockCount = 16
	DefaultBlockSize  = 4096
)

// RAMBlock emulates NOR flash in memory: erase sets a block to 0xFF and
// programming can only clear bits.
type RAMBlock struct {
	mu    sync.Mutex
	info  block.DeviceInfo
	mem   []byte
	syncs int
}

// NewRAMBlock parses arg as "<blocks>x<block size>"; "" selects the
// defaults.
func NewRAMBlock(arg string) (*RAMBlock, error) {
	count, size := uint32(DefaultBlockCount), uint32(DefaultBlockSize)
	if arg != "" {
		dims, err := strx.Uints(arg, 'x')
		if err != nil || len(dims) != 2 || dims[0] == 0 || dims[1] == 0 {
			return nil, errcode.InvalidInput
		}
		count, size = dims[0], dims[1]
	}
	return &RAMBlock{info: block.DeviceInfo{
		ReadSize:    1,
		ProgramSize: 1,
		BlockSize:   size,
		BlockCount:  count,
	}}, nil
}

func (b *RAMBlock) Init(registry.Instance) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mem == nil {
		b.mem = make([]byte, b.info.Size())
		for i := range b.mem {
			b.mem[i] = 0xFF
		}
	}
	return nil
}

func (b *RAMBlock) DeInit(registry.Instance) error { return nil }

func (b *RAMBlock) span(blk, off uint32, n int) ([]byte, error) {
	if err := block.CheckRange(b.info, blk, off, n); err != nil {
		return nil, err
	}
	start := uint64(blk)*uint64(b.info.BlockSize) + uint64(off)
	return b.mem[start : start+uint64(n)], nil
}

func (b *RAMBlock) Read(_ registry.Instance, blk, off uint32, dst []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	src, err := b.span(blk, off, len(dst))
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

func (b *RAMBlock) Program(_ registry.Instance, blk, off uint32, src []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dst, err := b.span(blk, off, len(src))
	if err != nil {
		return err
	}
	for i, c := range src {
		dst[i] &= c
	}
	return nil
}

func (b *RAMBlock) Erase(_ registry.Instance, blk uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dst, err := b.span(blk, 0, int(b.info.BlockSize))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = 0xFF
	}
	return nil
}

func (b *RAMBlock) Sync(registry.Instance) error {
	b.mu.Lock()
	b.syncs++
	b.mu.Unlock()
	return nil
}

func (b *RAMBlock) GetDeviceInfo(registry.Instance) (block.DeviceInfo, error) {
	return b.info, nil
}

// Syncs returns how many times Sync was called.
func (b *RAMBlock) Syncs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncs
}
