// Package ble dispatches advertising and GATT server operations to
// registered Bluetooth LE peripheral drivers.
package ble

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

const (
	DefaultCapacity = 1
	// MaxAdvertisingLen is the legacy advertising PDU payload limit.
	MaxAdvertisingLen = 31
)

type (
	ServiceHandle uint16
	CharHandle    uint16
)

// Property is a bit set of characteristic properties.
type Property uint8

const (
	PropRead Property = 1 << iota
	PropWrite
	PropWriteNoResponse
	PropNotify
	PropIndicate
)

type Event uint8

const (
	EventWritten Event = iota
	EventSubscribed
	EventUnsubscribed
	EventConnected
	EventDisconnected
)

type AdvertisingData struct {
	LocalName        string
	ServiceUUIDs     []string
	ManufacturerData []byte
}

// Len returns the encoded size of a, counting the two-byte header of every
// AD structure.
func (a AdvertisingData) Len() int {
	n := 3 // flags
	if a.LocalName != "" {
		n += 2 + len(a.LocalName)
	}
	var n16, n128 int
	for _, u := range a.ServiceUUIDs {
		if len(u) == 4 {
			n16++
		} else {
			n128++
		}
	}
	if n16 > 0 {
		n += 2 + 2*n16
	}
	if n128 > 0 {
		n += 2 + 16*n128
	}
	if len(a.ManufacturerData) > 0 {
		n += 2 + len(a.ManufacturerData)
	}
	return n
}

type Driver interface {
	Init(in registry.Instance) error
	SetEnabled(in registry.Instance, on bool) error
	SetAdvertisingData(in registry.Instance, adv AdvertisingData) error
	AdvertisingStart(in registry.Instance) error
	AdvertisingStop(in registry.Instance) error
	GattsAddService(in registry.Instance, uuid string) (ServiceHandle, error)
	GattsAddCharacteristic(in registry.Instance, svc ServiceHandle, uuid string, props Property, maxLen int) (CharHandle, error)
	GattsCharacteristicSetValue(in registry.Instance, ch CharHandle, data []byte) error
	// The Value passed to cb carries the written bytes as Binary.
	RegisterCharacteristicCallback(in registry.Instance, ch CharHandle, ev Event, cb value.Callback) error
}

type BLE struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *BLE {
	return &BLE{reg: registry.New[Driver]("ble", capacity)}
}

func (b *BLE) Registry() *registry.Registry[Driver] { return b.reg }

func (b *BLE) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return b.reg.Add(d, name, arg)
}

func (b *BLE) Init(h registry.Handle) error {
	return b.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (b *BLE) SetEnabled(h registry.Handle, on bool) error {
	return b.reg.Do(h, func(d Driver, in registry.Instance) error { return d.SetEnabled(in, on) })
}

func (b *BLE) SetAdvertisingData(h registry.Handle, adv AdvertisingData) error {
	for _, u := range adv.ServiceUUIDs {
		if !ValidUUID(u) {
			return errcode.InvalidInput
		}
	}
	if adv.Len() > MaxAdvertisingLen {
		return errcode.OutOfMemory
	}
	return b.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.SetAdvertisingData(in, adv)
	})
}

func (b *BLE) AdvertisingStart(h registry.Handle) error {
	return b.reg.Do(h, func(d Driver, in registry.Instance) error { return d.AdvertisingStart(in) })
}

func (b *BLE) AdvertisingStop(h registry.Handle) error {
	return b.reg.Do(h, func(d Driver, in registry.Instance) error { return d.AdvertisingStop(in) })
}

func (b *BLE) GattsAddService(h registry.Handle, uuid string) (svc ServiceHandle, err error) {
	if !ValidUUID(uuid) {
		return 0, errcode.InvalidInput
	}
	err = b.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		svc, e = d.GattsAddService(in, uuid)
		return e
	})
	return svc, err
}

func (b *BLE) GattsAddCharacteristic(h registry.Handle, svc ServiceHandle, uuid string, props Property, maxLen int) (ch CharHandle, err error) {
	if !ValidUUID(uuid) || maxLen < 1 {
		return 0, errcode.InvalidInput
	}
	err = b.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		ch, e = d.GattsAddCharacteristic(in, svc, uuid, props, maxLen)
		return e
	})
	return ch, err
}

// GattsCharacteristicSetValue publishes v on ch: the text of a String, the
// raw payload of any other scalar, vector or binary Value.
func (b *BLE) GattsCharacteristicSetValue(h registry.Handle, ch CharHandle, v *value.Value) error {
	if v == nil {
		return errcode.NoInput
	}
	var data []byte
	switch v.Type() {
	case value.List:
		return errcode.InvalidInput
	case value.String:
		s, _ := v.AsString()
		data = []byte(s)
	default:
		data = v.Bytes()
	}
	return b.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.GattsCharacteristicSetValue(in, ch, data)
	})
}

func (b *BLE) RegisterCharacteristicCallback(h registry.Handle, ch CharHandle, ev Event, cb value.Callback) error {
	if cb == nil {
		return errcode.NoInput
	}
	return b.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.RegisterCharacteristicCallback(in, ch, ev, cb)
	})
}

// ValidUUID accepts a 16-bit UUID ("180F") or a 128-bit one in canonical
// 8-4-4-4-12 form.
func ValidUUID(s string) bool {
	switch len(s) {
	case 4:
		return allHex(s)
	case 36:
		for _, i := range []int{8, 13, 18, 23} {
			if s[i] != '-' {
				return false
			}
		}
		return allHex(s[0:8]) && allHex(s[9:13]) && allHex(s[14:18]) && allHex(s[19:23]) && allHex(s[24:])
	}
	return false
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
