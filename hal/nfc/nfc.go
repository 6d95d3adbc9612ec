// Package nfc dispatches NDEF message storage to registered NFC tag
// drivers.
package nfc

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

const (
	DefaultCapacity = 1
	MaxRecords      = 8
)

type RecordType uint8

const (
	RecordText RecordType = iota
	RecordURI
	RecordMIME
)

type Record struct {
	Type    RecordType
	Lang    string // text records only; "en" when empty
	MIME    string // MIME records only
	Payload []byte
}

func TextRecord(s string) Record  { return Record{Type: RecordText, Lang: "en", Payload: []byte(s)} }
func URIRecord(uri string) Record { return Record{Type: RecordURI, Payload: []byte(uri)} }

type Driver interface {
	Init(in registry.Instance) error
	SetMessage(in registry.Instance, records []Record) error
	GetNumStoredRecords(in registry.Instance) (int, error)
	GetRecord(in registry.Instance, i int) (Record, error)
	// cb receives the record count of each message written by a reader, as
	// an Int.
	RegisterMessageReceivedCallback(in registry.Instance, cb value.Callback) error
}

type NFC struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *NFC {
	return &NFC{reg: registry.New[Driver]("nfc", capacity)}
}

func (n *NFC) Registry() *registry.Registry[Driver] { return n.reg }

func (n *NFC) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return n.reg.Add(d, name, arg)
}

func (n *NFC) Init(h registry.Handle) error {
	return n.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (n *NFC) SetMessage(h registry.Handle, records []Record) error {
	if len(records) > MaxRecords {
		return errcode.OutOfMemory
	}
	return n.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.SetMessage(in, records)
	})
}

// SetMessageValue stores the text form of v as a single text record.
func (n *NFC) SetMessageValue(h registry.Handle, v *value.Value) error {
	if v == nil {
		return errcode.NoInput
	}
	s, err := v.AsString()
	if err != nil {
		return err
	}
	return n.SetMessage(h, []Record{TextRecord(s)})
}

func (n *NFC) GetNumStoredRecords(h registry.Handle) (count int, err error) {
	err = n.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		count, e = d.GetNumStoredRecords(in)
		return e
	})
	return count, err
}

func (n *NFC) GetRecord(h registry.Handle, i int) (r Record, err error) {
	if i < 0 {
		return Record{}, errcode.InvalidInput
	}
	err = n.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		r, e = d.GetRecord(in, i)
		return e
	})
	return r, err
}

func (n *NFC) RegisterMessageReceivedCallback(h registry.Handle, cb value.Callback) error {
	if cb == nil {
		return errcode.NoInput
	}
	return n.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.RegisterMessageReceivedCallback(in, cb)
	})
}
