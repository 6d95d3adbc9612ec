package platform

import (
	"sync"

	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/x/strx"
)

const DefaultRAMFSBytes = 64 << 10

// RAMFS is a flat in-memory filesystem with a byte quota. It must be
// mounted before use and unmounted before Format.
type RAMFS struct {
	mu      sync.Mutex
	quota   int
	used    int
	mounted bool
	files   map[string][]byte
	faults  int
}

// NewRAMFS parses arg as the quota in bytes; "" selects DefaultRAMFSBytes.
func NewRAMFS(arg string) (*RAMFS, error) {
	quota := DefaultRAMFSBytes
	if arg != "" {
		n, err := strx.Uints(arg, ',')
		if err != nil || len(n) != 1 || n[0] == 0 {
			return nil, errcode.InvalidInput
		}
		quota = int(n[0])
	}
	return &RAMFS{quota: quota, files: make(map[string][]byte)}, nil
}

// FailNext makes the next n file operations fail with errcode.Busy.
func (f *RAMFS) FailNext(n int) {
	f.mu.Lock()
	f.faults = n
	f.mu.Unlock()
}

func (f *RAMFS) Init(registry.Instance) error   { return nil }
func (f *RAMFS) DeInit(registry.Instance) error { return f.Unmount(registry.Instance{}) }

func (f *RAMFS) Mount(registry.Instance) error {
	f.mu.Lock()
	f.mounted = true
	f.mu.Unlock()
	return nil
}

func (f *RAMFS) Unmount(registry.Instance) error {
	f.mu.Lock()
	f.mounted = false
	f.mu.Unlock()
	return nil
}

func (f *RAMFS) Format(registry.Instance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mounted {
		return errcode.Busy
	}
	f.files = make(map[string][]byte)
	f.used = 0
	return nil
}

// ready checks mount state and consumes one injected fault. Caller holds mu.
func (f *RAMFS) ready() error {
	if !f.mounted {
		return errcode.NotMounted
	}
	if f.faults > 0 {
		f.faults--
		return errcode.Busy
	}
	return nil
}

func (f *RAMFS) WriteFile(_ registry.Instance, path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(); err != nil {
		return err
	}
	used := f.used - len(f.files[path]) + len(data)
	if used > f.quota {
		return errcode.OutOfMemory
	}
	f.files[path] = append([]byte(nil), data...)
	f.used = used
	return nil
}

func (f *RAMFS) ReadFile(_ registry.Instance, path string, dst []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(); err != nil {
		return 0, err
	}
	data, ok := f.files[path]
	if !ok {
		return 0, errcode.NotFound
	}
	if len(data) > len(dst) {
		return 0, errcode.OutOfMemory
	}
	return copy(dst, data), nil
}

func (f *RAMFS) Remove(_ registry.Instance, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(); err != nil {
		return err
	}
	data, ok := f.files[path]
	if !ok {
		return errcode.NotFound
	}
	f.used -= len(data)
	delete(f.files, path)
	return nil
}

func (f *RAMFS) Size(_ registry.Instance, path string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(); err != nil {
		return 0, err
	}
	data, ok := f.files[path]
	if !ok {
		return 0, errcode.NotFound
	}
	return len(data), nil
}
