// Package tcpserver dispatches listening sockets to registered
// network-stack drivers.
package tcpserver

import (
	"nimbus-go/errcode"
	"nimbus-go/registry"
)

const DefaultCapacity = 1

// ConnID names one accepted connection within a server instance.
type ConnID uint32

type RxFunc func(conn ConnID, data []byte)

type Driver interface {
	Init(in registry.Instance) error
	Start(in registry.Instance, port uint16) error
	Stop(in registry.Instance) error
	WriteBytes(in registry.Instance, conn ConnID, p []byte) (int, error)
	RegisterRxCallback(in registry.Instance, fn RxFunc) error
}

type Server struct {
	reg *registry.Registry[Driver]
}

func New(capacity int) *Server {
	return &Server{reg: registry.New[Driver]("tcpserver", capacity)}
}

func (s *Server) Registry() *registry.Registry[Driver] { return s.reg }

func (s *Server) AddDriverInstance(d Driver, name string, arg any) (registry.Handle, error) {
	return s.reg.Add(d, name, arg)
}

func (s *Server) Init(h registry.Handle) error {
	return s.reg.Init(h, func(d Driver, in registry.Instance) error { return d.Init(in) })
}

func (s *Server) Start(h registry.Handle, port uint16) error {
	if port == 0 {
		return errcode.InvalidInput
	}
	return s.reg.Do(h, func(d Driver, in registry.Instance) error { return d.Start(in, port) })
}

func (s *Server) Stop(h registry.Handle) error {
	return s.reg.Do(h, func(d Driver, in registry.Instance) error { return d.Stop(in) })
}

func (s *Server) WriteBytes(h registry.Handle, conn ConnID, p []byte) (n int, err error) {
	err = s.reg.Do(h, func(d Driver, in registry.Instance) (e error) {
		n, e = d.WriteBytes(in, conn, p)
		return e
	})
	return n, err
}

func (s *Server) RegisterRxCallback(h registry.Handle, fn RxFunc) error {
	return s.reg.Do(h, func(d Driver, in registry.Instance) error {
		return d.RegisterRxCallback(in, fn)
	})
}
