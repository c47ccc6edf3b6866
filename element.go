package textq

import (
	"strings"
	"unsafe"

	"deedles.dev/textq/internal/list"
)

var (
	elementSize  = int(unsafe.Sizeof(Element{}))
	sentinelSize = int(unsafe.Sizeof(list.Node[Element]{}))
)

// Element is a single value stored in a Queue. It owns a
// NUL-terminated copy of the text it was created with.
//
// An Element is either linked into exactly one Queue, in which case
// the Queue owns it, or it has been removed with [Queue.RemoveHead] or
// [Queue.RemoveTail] and belongs to the caller until it is released.
type Element struct {
	link  list.Node[Element]
	value []byte
	alloc Allocator
}

func newElement(a Allocator, s string) (*Element, error) {
	s = cstring(s)

	if !a.Alloc(elementSize) {
		return nil, ErrAllocation
	}
	if !a.Alloc(len(s) + 1) {
		a.Free(elementSize)
		return nil, ErrAllocation
	}

	e := Element{
		value: make([]byte, len(s)+1),
		alloc: a,
	}
	copy(e.value, s)
	e.link.Bind(&e)
	return &e, nil
}

// cstring cuts s at its first NUL, if it has one.
func cstring(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// Value returns the text stored in e. A released Element has no text.
func (e *Element) Value() string {
	return string(e.text())
}

func (e *Element) text() []byte {
	if len(e.value) == 0 {
		return nil
	}
	return e.value[:len(e.value)-1]
}

// copyOut copies as much of e's text as fits into buf while leaving
// room for a terminating NUL, then writes the NUL. An empty buf is
// left untouched.
func (e *Element) copyOut(buf []byte) {
	if len(buf) == 0 {
		return
	}
	n := copy(buf[:len(buf)-1], e.text())
	buf[n] = 0
}

// Release gives e's storage back to the allocator it came from. It
// must only be called on an Element the caller owns, that is one
// returned by a removal that has not been released yet. Releasing an
// Element that is still in a Queue, or releasing it twice, panics.
// Releasing nil does nothing.
func (e *Element) Release() {
	if e == nil {
		return
	}
	if e.link.Linked() {
		panic("textq: release of an element that is still in a queue")
	}
	if e.value == nil {
		panic("textq: element released twice")
	}

	e.alloc.Free(len(e.value))
	e.alloc.Free(elementSize)
	e.value = nil
}

// destroy unlinks e and releases it.
func (e *Element) destroy() {
	e.link.Del()
	e.Release()
}
