// Package bus is a cooperative topic-trie pub/sub carrying Values.
//
// Publish may be called from any goroutine, including driver interrupt and
// timer contexts: it deep-copies the Value into a fixed-capacity queue and
// returns. Handlers only ever run inside Tick or Drain, on the goroutine
// driving the main loop.
//
// Topics are token slices. In subscriptions "+" matches exactly one token
// and a trailing "#" matches zero or more.
package bus

import (
	"strings"
	"sync"

	"nimbus-go/errcode"
	"nimbus-go/value"
)

const (
	SingleWild = "+"
	MultiWild  = "#"

	// DefaultCapacity is the pending-queue depth when New gets <= 0.
	DefaultCapacity = 16
)

// Topic is a sequence of tokens.
type Topic []string

// T builds a topic from tokens.
func T(tokens ...string) Topic { return Topic(tokens) }

// Parse splits a slash-separated topic, "a/b/c".
func Parse(s string) Topic {
	if s == "" {
		return nil
	}
	return Topic(strings.Split(s, "/"))
}

func (t Topic) String() string { return strings.Join(t, "/") }

// Append returns a new topic extended by tokens; t is not modified.
func (t Topic) Append(tokens ...string) Topic {
	out := make(Topic, 0, len(t)+len(tokens))
	return append(append(out, t...), tokens...)
}

func (t Topic) wild() bool {
	for _, tok := range t {
		if tok == SingleWild || tok == MultiWild {
			return true
		}
	}
	return false
}

// Handler receives the concrete topic and a Value borrowed for the call.
type Handler func(topic Topic, v *value.Value)

type Subscription struct {
	topic Topic
	fn    Handler
	bus   *Bus
	conn  *Connection
}

func (s *Subscription) Topic() Topic { return s.topic }

func (s *Subscription) Unsubscribe() {
	if s.conn != nil {
		s.conn.Unsubscribe(s)
		return
	}
	s.bus.unsubscribe(s)
}

type message struct {
	topic Topic
	val   value.Value
}

type node struct {
	children map[string]*node
	subs     []*Subscription
	retained *value.Value
}

type Bus struct {
	mu    sync.Mutex
	root  *node
	queue []message // ring
	head  int
	n     int
}

// New creates a bus whose pending queue holds capacity messages.
func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{
		root:  &node{},
		queue: make([]message, capacity),
	}
}

// Pending returns the number of queued, undelivered messages.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

// Publish queues a deep copy of v for delivery on topic. A retained publish
// also replaces the topic's retained Value at once; publishing an Empty
// Value retained clears it. Errors: errcode.InvalidInput for an empty or
// wildcard topic, errcode.OutOfMemory when the queue is full (the retained
// slot is left as it was).
func (b *Bus) Publish(topic Topic, v *value.Value, retained bool) error {
	if len(topic) == 0 || topic.wild() {
		return errcode.InvalidInput
	}
	var msg message
	if v != nil {
		if err := msg.val.SetCopy(v); err != nil {
			return err
		}
	}
	msg.topic = topic.Append()

	var keep *value.Value
	if retained && !msg.val.IsEmpty() {
		keep = new(value.Value)
		if err := keep.SetCopy(&msg.val); err != nil {
			msg.val.Free()
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.n == len(b.queue) {
		msg.val.Free()
		if keep != nil {
			keep.Free()
		}
		return errcode.OutOfMemory
	}
	b.queue[(b.head+b.n)%len(b.queue)] = msg
	b.n++
	if retained {
		n := b.walk(topic, true)
		if n.retained != nil {
			n.retained.Free()
		}
		n.retained = keep
	}
	return nil
}

// walk returns the node for topic, creating the path when create is set.
// Caller holds mu.
func (b *Bus) walk(topic Topic, create bool) *node {
	n := b.root
	for _, tok := range topic {
		child, ok := n.children[tok]
		if !ok {
			if !create {
				return nil
			}
			if n.children == nil {
				n.children = make(map[string]*node)
			}
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	return n
}

// Tick delivers the oldest pending message and reports whether there was
// one.
func (b *Bus) Tick() bool {
	b.mu.Lock()
	if b.n == 0 {
		b.mu.Unlock()
		return false
	}
	msg := b.queue[b.head]
	b.queue[b.head] = message{}
	b.head = (b.head + 1) % len(b.queue)
	b.n--
	subs := match(b.root, msg.topic, nil)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(msg.topic, &msg.val)
	}
	msg.val.Free()
	return true
}

// Drain delivers every message pending at the time of the call. Messages
// published by handlers wait for the next Tick or Drain. It returns the
// number delivered.
func (b *Bus) Drain() int {
	n := b.Pending()
	for i := 0; i < n; i++ {
		if !b.Tick() {
			return i
		}
	}
	return n
}

// Retained returns a copy of topic's retained Value. The caller owns it.
func (b *Bus) Retained(topic Topic) (value.Value, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.walk(topic, false)
	if n == nil || n.retained == nil {
		return value.Value{}, false
	}
	var out value.Value
	if err := out.SetCopy(n.retained); err != nil {
		return value.Value{}, false
	}
	return out, true
}

// Subscribe registers fn for topic and delivers every matching retained
// Value to it before returning, so call it from the main loop.
func (b *Bus) Subscribe(topic Topic, fn Handler) *Subscription {
	return b.subscribe(topic, fn, nil)
}

func (b *Bus) subscribe(topic Topic, fn Handler, conn *Connection) *Subscription {
	sub := &Subscription{topic: topic.Append(), fn: fn, bus: b, conn: conn}

	type hit struct {
		topic Topic
		val   value.Value
	}
	var hits []hit

	b.mu.Lock()
	n := b.walk(sub.topic, true)
	n.subs = append(n.subs, sub)
	eachRetained(b.root, sub.topic, nil, func(t Topic, v *value.Value) {
		h := hit{topic: t}
		if h.val.SetCopy(v) == nil {
			hits = append(hits, h)
		}
	})
	b.mu.Unlock()

	for i := range hits {
		fn(hits[i].topic, &hits[i].val)
		hits[i].val.Free()
	}
	return sub
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	stack := make([]*node, 0, len(sub.topic))
	for _, tok := range sub.topic {
		child, ok := n.children[tok]
		if !ok {
			return
		}
		stack = append(stack, n)
		n = child
	}
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}

	// Prune empty nodes.
	for i := len(sub.topic) - 1; i >= 0; i-- {
		parent := stack[i]
		key := sub.topic[i]
		child := parent.children[key]
		if len(child.subs) == 0 && len(child.children) == 0 && child.retained == nil {
			delete(parent.children, key)
		} else {
			break
		}
	}
}

// match collects subscriptions whose pattern matches the concrete topic.
func match(n *node, topic Topic, out []*Subscription) []*Subscription {
	if h, ok := n.children[MultiWild]; ok {
		out = append(out, h.subs...)
	}
	if len(topic) == 0 {
		return append(out, n.subs...)
	}
	if c, ok := n.children[topic[0]]; ok {
		out = match(c, topic[1:], out)
	}
	if c, ok := n.children[SingleWild]; ok {
		out = match(c, topic[1:], out)
	}
	return out
}

// eachRetained visits retained Values on concrete topics matching pattern.
func eachRetained(n *node, pattern, path Topic, fn func(Topic, *value.Value)) {
	if len(pattern) == 0 {
		if n.retained != nil {
			fn(path.Append(), n.retained)
		}
		return
	}
	switch pattern[0] {
	case MultiWild:
		if n.retained != nil {
			fn(path.Append(), n.retained)
		}
		for tok, c := range n.children {
			if tok != SingleWild && tok != MultiWild {
				eachRetained(c, pattern, append(path, tok), fn)
			}
		}
	case SingleWild:
		for tok, c := range n.children {
			if tok != SingleWild && tok != MultiWild {
				eachRetained(c, pattern[1:], append(path, tok), fn)
			}
		}
	default:
		if c, ok := n.children[pattern[0]]; ok {
			eachRetained(c, pattern[1:], append(path, pattern[0]), fn)
		}
	}
}

// Connection groups the subscriptions of one client so they can be dropped
// together.
type Connection struct {
	bus  *Bus
	id   string
	mu   sync.Mutex
	subs []*Subscription
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) ID() string { return c.id }

func (c *Connection) Publish(topic Topic, v *value.Value, retained bool) error {
	return c.bus.Publish(topic, v, retained)
}

func (c *Connection) Subscribe(topic Topic, fn Handler) *Subscription {
	sub := c.bus.subscribe(topic, fn, c)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
}

// Disconnect drops every subscription made through c.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()
	for _, sub := range subs {
		c.bus.unsubscribe(sub)
	}
}
