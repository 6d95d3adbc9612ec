// Package filesystem dispatches file access to registered filesystem
// drivers. WriteFileRetry and ReadFileRetry add bounded retries on top of
// dispatch; dispatch itself never retries.
package filesystem

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
)

const (
	DefaultCapacity = 1
	DefaultAttempts = 3
)

type Driver interface {
	Init(in registry.Instance) error
	DeInit(in registry.Instance) error
	Mount(in registry.Instance) error
	Unmount(in registry.Instance) error
	// Format erases the filesystem; the driver may require it unmounted.
	Format(in registry.Instance) error
	WriteFile(in registry.Instance, path string, data []byte) error
	ReadFile(in registry.Instance, path string, dst []byte) (int, error)
	Remove(in registry.Instance, path string) error
	Size(in registry.Instance, path string) (int, error)
}

type Filesystem struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *Filesystem {
	return &Filesystem{reg: registry.New[Driver]("filesystem", capacity)}
}

func (f *Filesystem) Registry() *registry.Registry[Driver] { return f.reg }

func (f *Filesystem) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return f.reg.Add(d, name, arg)
}

func (f *Filesystem) Init(h registry.Handle) error {
	return f.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (f *Filesystem) DeInit(h registry.Handle) error {
	return f.reg.DeInit(h, func(d Driver, in registry.Instance) error { return d.DeInit(in) })
}

func (f *Filesystem) Mount(h registry.Handle) error {
	return f.reg.DoInit(h, func(d Driver, in registry.Instance) error { return d.Mount(in) })
}

func (f *Filesystem) Unmount(h registry.Handle) error {
	return f.reg.DoInit(h, func(d Driver, in registry.Instance) error { return d.Unmount(in) })
}

func (f *Filesystem) Format(h registry.Handle) error {
	return f.reg.DoInit(h, func(d Driver, in registry.Instance) error { return d.Format(in) })
}

func (f *Filesystem) WriteFile(h registry.Handle, path string, data []byte) error {
	if path == "" {
		return errcode.InvalidInput
	}
	return f.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.WriteFile(in, path, data)
	})
}

func (f *Filesystem) ReadFile(h registry.Handle, path string, dst []byte) (n int, err error) {
	if path == "" {
		return 0, errcode.InvalidInput
	}
	err = f.reg.DoInit(h, func(d Driver, in registry.Instance) (e error) {
		n, e = d.ReadFile(in, path, dst)
		return e
	})
	return n, err
}

func (f *Filesystem) Remove(h registry.Handle, path string) error {
	return f.reg.DoInit(h, func(d Driver, in registry.Instance) error {
		return d.Remove(in, path)
	})
}

func (f *Filesystem) Size(h registry.Handle, path string) (n int, err error) {
	err = f.reg.DoInit(h, func(d Driver, in registry.Instance) (e error) {
		n, e = d.Size(in, path)
		return e
	})
	return n, err
}

// permanent reports failures a retry cannot fix.
func permanent(err error) bool {
	switch errcode.Of(err) {
	case errcode.Invalid, errcode.Uninitialized, errcode.InvalidInput,
		errcode.NoInput, errcode.NotFound, errcode.OutOfMemory, errcode.NotMounted:
		return true
	}
	return false
}

func retry(attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || permanent(err) {
			return err
		}
	}
	return err
}

// WriteFileRetry calls WriteFile up to attempts times (DefaultAttempts when
// attempts < 1), stopping early on success or a permanent failure.
func (f *Filesystem) WriteFileRetry(h registry.Handle, path string, data []byte, attempts int) error {
	return retry(attempts, func() error { return f.WriteFile(h, path, data) })
}

// ReadFileRetry is the ReadFile counterpart of WriteFileRetry.
func (f *Filesystem) ReadFileRetry(h registry.Handle, path string, dst []byte, attempts int) (n int, err error) {
	err = retry(attempts, func() (e error) {
		n, e = f.ReadFile(h, path, dst)
		return e
	})
	return n, err
}
