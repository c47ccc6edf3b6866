package textq

import "deedles.dev/textq/internal/list"

// A Queue is a double-ended queue of text values. Its identity is its
// sentinel node, which is allocated independently of any element, so
// a Queue must not be copied after creation.
//
// A Queue must be created with [New] and should be given back with
// [Queue.Free] once it is no longer needed, which releases every
// element still in it. After Free, the Queue behaves like a nil one.
type Queue struct {
	_ noCopy

	head  *list.Node[Element]
	alloc Allocator
}

// New returns a new, empty Queue. It returns [ErrAllocation] if the
// configured Allocator refuses to provide the sentinel.
func New(opts ...Option) (*Queue, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !o.alloc.Alloc(sentinelSize) {
		return nil, ErrAllocation
	}

	return &Queue{
		head:  new(list.Node[Element]).Init(),
		alloc: o.alloc,
	}, nil
}

func (q *Queue) valid() bool {
	return q != nil && q.head != nil
}

func (q *Queue) empty() bool {
	return !q.valid() || q.head.Empty()
}

// Free releases every element in q and then q's sentinel. It does
// nothing if q is nil or has already been freed.
func (q *Queue) Free() {
	if !q.valid() {
		return
	}

	for n := range q.head.Nodes() {
		n.Owner().destroy()
	}

	q.head = nil
	q.alloc.Free(sentinelSize)
}

// InsertHead inserts a copy of s at the head of q. Text after the
// first NUL byte in s, if any, is not stored. If the insertion fails,
// q is left unchanged.
func (q *Queue) InsertHead(s string) error {
	if !q.valid() {
		return ErrNilQueue
	}

	e, err := newElement(q.alloc, s)
	if err != nil {
		return err
	}
	q.head.Add(&e.link)
	return nil
}

// InsertTail is like [Queue.InsertHead] but inserts at the tail.
func (q *Queue) InsertTail(s string) error {
	if !q.valid() {
		return ErrNilQueue
	}

	e, err := newElement(q.alloc, s)
	if err != nil {
		return err
	}
	q.head.AddTail(&e.link)
	return nil
}

// RemoveHead unlinks the element at the head of q and returns it. The
// element is not released; the caller owns it and is responsible for
// calling [Element.Release]. If buf is not empty, as much of the
// element's text as fits is copied into it followed by a NUL byte.
//
// RemoveHead returns nil if q is nil or empty.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if q.empty() {
		return nil
	}
	return q.remove(q.head.Next(), buf)
}

// RemoveTail is like [Queue.RemoveHead] but removes from the tail.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if q.empty() {
		return nil
	}
	return q.remove(q.head.Prev(), buf)
}

func (q *Queue) remove(n *list.Node[Element], buf []byte) *Element {
	e := n.Owner()
	e.copyOut(buf)
	n.Del()
	return e
}

// Size returns the number of elements in q. It walks the whole queue
// to count them.
func (q *Queue) Size() int {
	if q.empty() {
		return 0
	}
	return q.head.Len()
}
