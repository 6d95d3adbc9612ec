// Package registry implements the fixed-capacity driver-instance table
// every HAL family dispatches through.
//
// A Registry holds up to Cap() drivers of one interface type. Add hands out
// handles 0, 1, 2... in registration order; a handle is never reused and
// there is no removal. Every other call validates the handle first and
// fails with errcode.Invalid, without touching any driver, when it is out
// of range.
package registry

import (
	"sync"

	"nimbus-go/errcode"
)

// Handle indexes a registered instance.
type Handle uint32

// Instance is the per-slot bookkeeping kept next to each driver.
type Instance struct {
	Name        string
	Initialized bool
	Arg         any // opaque, passed back to the driver on every call
	Index       Handle
}

type slot[D any] struct {
	drv  D
	inst Instance
}

// Registry is safe for concurrent use. Driver calls run outside the lock,
// so a driver may call back into its own registry.
type Registry[D any] struct {
	family string

	mu    sync.RWMutex
	slots []slot[D]
}

// New returns an empty registry for family with room for capacity
// instances. capacity < 1 is coerced to 1.
func New[D any](family string, capacity int) *Registry[D] {
	if capacity < 1 {
		capacity = 1
	}
	return &Registry[D]{
		family: family,
		slots:  make([]slot[D], 0, capacity),
	}
}

func (r *Registry[D]) Family() string { return r.family }

// Cap returns the fixed capacity.
func (r *Registry[D]) Cap() int { return cap(r.slots) }

// Len returns the number of registered instances.
func (r *Registry[D]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// Add registers drv and returns its handle. A full registry returns
// errcode.OutOfMemory and is left unchanged.
func (r *Registry[D]) Add(drv D, name string, arg any) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slots) == cap(r.slots) {
		return 0, errcode.OutOfMemory
	}
	h := Handle(len(r.slots))
	r.slots = append(r.slots, slot[D]{
		drv:  drv,
		inst: Instance{Name: name, Arg: arg, Index: h},
	})
	return h, nil
}

// Get returns the driver and a snapshot of the instance at h.
func (r *Registry[D]) Get(h Handle) (D, Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(h) >= len(r.slots) {
		var zero D
		return zero, Instance{}, errcode.Invalid
	}
	s := r.slots[h]
	return s.drv, s.inst, nil
}

// Lookup finds the first instance registered under name.
func (r *Registry[D]) Lookup(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.slots {
		if r.slots[i].inst.Name == name {
			return Handle(i), true
		}
	}
	return 0, false
}

// Do forwards one call to the driver at h. The driver's error is returned
// as is.
func (r *Registry[D]) Do(h Handle, fn func(D, Instance) error) error {
	drv, inst, err := r.Get(h)
	if err != nil {
		return err
	}
	return fn(drv, inst)
}

// DoInit is Do for operations that need a prior successful Init; it fails
// with errcode.Uninitialized otherwise.
func (r *Registry[D]) DoInit(h Handle, fn func(D, Instance) error) error {
	drv, inst, err := r.Get(h)
	if err != nil {
		return err
	}
	if !inst.Initialized {
		return errcode.Uninitialized
	}
	return fn(drv, inst)
}

// Init forwards to fn and marks h initialized when it succeeds.
func (r *Registry[D]) Init(h Handle, fn func(D, Instance) error) error {
	if err := r.Do(h, fn); err != nil {
		return err
	}
	r.setInitialized(h, true)
	return nil
}

// DeInit forwards to fn and clears the initialized mark when it succeeds.
func (r *Registry[D]) DeInit(h Handle, fn func(D, Instance) error) error {
	if err := r.DoInit(h, fn); err != nil {
		return err
	}
	r.setInitialized(h, false)
	return nil
}

func (r *Registry[D]) setInitialized(h Handle, on bool) {
	r.mu.Lock()
	r.slots[h].inst.Initialized = on
	r.mu.Unlock()
}

// Each visits a snapshot of every instance in handle order.
func (r *Registry[D]) Each(fn func(Instance)) {
	r.mu.RLock()
	insts := make([]Instance, len(r.slots))
	for i := range r.slots {
		insts[i] = r.slots[i].inst
	}
	r.mu.RUnlock()
	for _, in := range insts {
		fn(in)
	}
}
