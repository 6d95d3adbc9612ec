// Package ability runs application units on the value bus. An ability takes
// one input Value and may fill an output Value; the engine publishes a
// non-empty output, retained, on ability/<name>/out. Abilities run on the
// goroutine that ticks the bus and never concurrently with each other.
package ability

import (
	"nimbus-go/bus"
	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
	"nimbus-go/x/logx"
)

// Ability is one application unit. out starts Empty; leaving it Empty
// publishes nothing.
type Ability interface {
	Run(in registry.Instance, v *value.Value, out *value.Value) error
}

// Func adapts a plain function to Ability.
type Func func(v *value.Value, out *value.Value) error

func (f Func) Run(_ registry.Instance, v *value.Value, out *value.Value) error { return f(v, out) }

// Root prefixes every topic the engine owns.
var Root = bus.T("ability")

// InTopic is where Execute queues direct runs of name.
func InTopic(name string) bus.Topic { return Root.Append(name, "in") }

// OutTopic carries the last output of name.
func OutTopic(name string) bus.Topic { return Root.Append(name, "out") }

type Engine struct {
	reg  *registry.Registry[Ability]
	bus  *bus.Bus
	conn *bus.Connection
	log  logx.Logger
}

func New(b *bus.Bus, capacity int, log logx.Logger) *Engine {
	return &Engine{
		reg:  registry.New[Ability]("ability", capacity),
		bus:  b,
		conn: b.NewConnection("ability"),
		log:  log.Named("ability"),
	}
}

func (e *Engine) Registry() *registry.Registry[Ability] { return e.reg }

// Register adds a and subscribes it to its own input topic. Names must be
// non-empty, unique and free of topic wildcards.
func (e *Engine) Register(name string, a Ability) (registry.Handle, error) {
	if a == nil {
		return 0, errcode.NoInput
	}
	if !validName(name) {
		return 0, errcode.InvalidInput
	}
	if _, dup := e.reg.Lookup(name); dup {
		return 0, errcode.InvalidInput
	}
	h, err := e.reg.Add(a, name, nil)
	if err != nil {
		return 0, err
	}
	e.conn.Subscribe(InTopic(name), func(_ bus.Topic, v *value.Value) { e.run(h, v) })
	e.log.Debugw("registered", "name", name, "handle", h)
	return h, nil
}

// Link runs h on every message matching trigger. Unsubscribe the result to
// unlink.
func (e *Engine) Link(trigger bus.Topic, h registry.Handle) (*bus.Subscription, error) {
	_, in, err := e.reg.Get(h)
	if err != nil {
		return nil, err
	}
	if len(trigger) == 0 {
		return nil, errcode.InvalidInput
	}
	e.log.Debugw("linked", "name", in.Name, "trigger", trigger.String())
	return e.conn.Subscribe(trigger, func(_ bus.Topic, v *value.Value) { e.run(h, v) }), nil
}

// Execute queues one run of h with a copy of v. A nil v runs with an Empty
// input.
func (e *Engine) Execute(h registry.Handle, v *value.Value) error {
	_, in, err := e.reg.Get(h)
	if err != nil {
		return err
	}
	var empty value.Value
	if v == nil {
		v = &empty
	}
	return e.conn.Publish(InTopic(in.Name), v, false)
}

// Close unsubscribes every ability.
func (e *Engine) Close() { e.conn.Disconnect() }

func (e *Engine) run(h registry.Handle, v *value.Value) {
	var out value.Value
	defer out.Free()
	var name string
	err := e.reg.Do(h, func(a Ability, in registry.Instance) error {
		name = in.Name
		return a.Run(in, v, &out)
	})
	if err != nil {
		e.log.Warnw("run failed", "name", name, "handle", h, "err", err)
		return
	}
	if out.IsEmpty() {
		return
	}
	if err := e.bus.Publish(OutTopic(name), &out, true); err != nil {
		e.log.Warnw("output dropped", "name", name, "err", err)
	}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '/', '+', '#':
			return false
		}
	}
	return true
}
