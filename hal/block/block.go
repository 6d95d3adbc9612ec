// Package block dispatches raw erase-block storage access to registered
// block-device drivers.
package block

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
)

const DefaultCapacity = 1

// DeviceInfo describes the geometry of a block device.
type DeviceInfo struct {
	ReadSize    uint32 // minimum read unit
	ProgramSize uint32 // minimum program unit
	BlockSize   uint32 // erase unit
	BlockCount  uint32
}

// Size returns the device capacity in bytes.
func (d DeviceInfo) Size() uint64 { return uint64(d.BlockSize) * uint64(d.BlockCount) }

type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	Read(in registry.Instance, block, off uint32, dst []byte) error
	Program(in registry.Instance, block, off uint32, src []byte) error
	Erase(in registry.Instance, block uint32) error
	Sync(in registry.Instance) error
	GetDeviceInfo(in registry.Instance) (DeviceInfo, error)
}

type Block struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *Block {
	return &Block{reg: registry.New[Driver]("block", capacity)}
}

func (b *Block) Registry() *registry.Registry[Driver] { return b.reg }

func (b *Block) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return b.reg.Add(d, name, arg)
}

func (b *Block) Init(h registry.Handle) error {
	return b.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (b *Block) DeInit(h registry.Handle) error {
	return b.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (b *Block) Read(h registry.Handle, block, off uint32, dst []byte) error {
	return b.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.Read(in, block, off, dst)
	})
}

func (b *Block) Program(h registry.Handle, block, off uint32, src []byte) error {
	return b.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.Program(in, block, off, src)
	})
}

func (b *Block) Erase(h registry.Handle, block uint32) error {
	return b.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.Erase(in, block)
	})
}

func (b *Block) Sync(h registry.Handle) error {
	return b.reg.DoInit(h, func(d Driver, in registry.Instance) error { return d.Sync(in) })
}

func (b *Block) GetDeviceInfo(h registry.Handle) (info DeviceInfo, err error) {
	err = b.reg.DoInit(h, func(d Driver, in registry.Instance) (e error) {
		info, e = d.GetDeviceInfo(in)
		return e
	})
	return info, err
}

// CheckRange validates an access of n bytes at (block, off) against info.
// Drivers share it so every backend rejects the same accesses.
func CheckRange(info DeviceInfo, block, off uint32, n int) error {
	if block >= info.BlockCount || n < 0 {
		return errcode.InvalidInput
	}
	if uint64(off)+uint64(n) > uint64(info.BlockSize) {
		return errcode.InvalidInput
	}
	return nil
}
