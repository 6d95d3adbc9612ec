package value

import "nimbus-go/errcode"

// node owns exactly one Value.
type node struct {
	val  Value
	next *node
}

// list is a singly-linked chain with both ends tracked; count always equals
// the number of reachable nodes.
type list struct {
	head, tail *node
	count      int
}

func (l *list) pushBack(v Value) {
	n := &node{val: v}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.count++
}

func (l *list) pushFront(v Value) {
	n := &node{val: v, next: l.head}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.count++
}

func (l *list) popFront() Value {
	n := l.head
	l.head = n.next
	if l.head == nil {
		l.tail = nil
	}
	l.count--
	return n.val
}

// popBack walks to the predecessor of tail; the chain is singly linked.
func (l *list) popBack() Value {
	n := l.tail
	if l.head == n {
		l.head, l.tail = nil, nil
		l.count--
		return n.val
	}
	prev := l.head
	for prev.next != n {
		prev = prev.next
	}
	prev.next = nil
	l.tail = prev
	l.count--
	return n.val
}

func (l *list) at(i int) *Value {
	n := l.head
	for ; i > 0; i-- {
		n = n.next
	}
	return &n.val
}

// each visits children in order until fn returns false.
func (l *list) each(fn func(i int, v *Value) bool) {
	if l == nil {
		return
	}
	i := 0
	for n := l.head; n != nil; n = n.next {
		if !fn(i, &n.val) {
			return
		}
		i++
	}
}

func (l *list) free() {
	for n := l.head; n != nil; {
		next := n.next
		n.val.Free()
		n.next = nil
		n = next
	}
	l.head, l.tail = nil, nil
	l.count = 0
}

// SetList makes v an empty List.
func (v *Value) SetList() {
	v.Free()
	v.typ = List
	v.l = &list{}
}

// child returns an owned deep copy of x ready to be linked into v.
func (v *Value) child(x *Value) (Value, error) {
	if v.typ != List {
		return Value{}, errcode.InvalidInput
	}
	if x == nil {
		return Value{}, errcode.NoInput
	}
	var c Value
	if err := c.copyFrom(x); err != nil {
		c.Free()
		return Value{}, err
	}
	return c, nil
}

// PushBack appends a deep copy of x. The caller keeps ownership of x.
func (v *Value) PushBack(x *Value) error {
	c, err := v.child(x)
	if err != nil {
		return err
	}
	v.l.pushBack(c)
	return nil
}

// PushFront prepends a deep copy of x. The caller keeps ownership of x.
func (v *Value) PushFront(x *Value) error {
	c, err := v.child(x)
	if err != nil {
		return err
	}
	v.l.pushFront(c)
	return nil
}

// PopBack removes the last element and returns it. The returned Value is
// owned by the caller, who must Free it.
func (v *Value) PopBack() (Value, error) {
	if v.typ != List || v.l.count == 0 {
		return Value{}, errcode.InvalidInput
	}
	return v.l.popBack(), nil
}

// PopFront removes the first element and returns it. The returned Value is
// owned by the caller, who must Free it.
func (v *Value) PopFront() (Value, error) {
	if v.typ != List || v.l.count == 0 {
		return Value{}, errcode.InvalidInput
	}
	return v.l.popFront(), nil
}

// Len returns the number of elements of a List.
func (v *Value) Len() (int, error) {
	if v.typ != List {
		return 0, errcode.InvalidInput
	}
	return v.l.count, nil
}

// Index returns element i, still owned by the list. The pointer stays valid
// until that element is popped or the list is freed.
func (v *Value) Index(i int) (*Value, error) {
	if v.typ != List {
		return nil, errcode.InvalidInput
	}
	if i < 0 || i >= v.l.count {
		return nil, errcode.InvalidInput
	}
	return v.l.at(i), nil
}

// Each visits the elements of a List in order until fn returns false.
func (v *Value) Each(fn func(i int, x *Value) bool) error {
	if v.typ != List {
		return errcode.InvalidInput
	}
	v.l.each(fn)
	return nil
}
