package textq

import (
	"bytes"

	"deedles.dev/textq/internal/list"
)

// DeleteMid deletes the element at index len/2, counting from zero at
// the head. For an even number of elements that is the later of the
// two middle ones, so in a queue of six elements the fourth one is
// deleted. It returns false if q is nil or empty.
func (q *Queue) DeleteMid() bool {
	if q.empty() {
		return false
	}

	q.head.Middle().Owner().destroy()
	return true
}

// DeleteDup deletes every element whose value appears more than once
// in q, leaving only the values that were unique. The survivors keep
// their order. q must already be sorted in ascending order; the result
// is unspecified otherwise.
//
// DeleteDup returns false only if q is nil.
func (q *Queue) DeleteDup() bool {
	if !q.valid() {
		return false
	}
	if q.head.Empty() || q.head.Singular() {
		return true
	}

	var dups list.Node[Element]
	dups.Init()
	defer func() {
		for n := range dups.Nodes() {
			n.Owner().destroy()
		}
	}()

	h := q.head
	for cur := h.Next(); cur != h; {
		next := cur.Next()
		switch {
		case next != h && equal(cur, next):
			dups.MoveTail(next)
		case !dups.Empty() && equal(dups.Prev(), cur):
			dups.MoveTail(cur)
			cur = next
		default:
			cur = next
		}
	}

	return true
}

func equal(a, b *list.Node[Element]) bool {
	return bytes.Equal(a.Owner().text(), b.Owner().text())
}

// Swap exchanges every two adjacent elements of q: the first with the
// second, the third with the fourth and so on. If q has an odd number
// of elements, the last one stays where it is. Only links are changed.
func (q *Queue) Swap() {
	if q.empty() {
		return
	}

	h := q.head
	for cur := h.Next(); cur != h && cur.Next() != h; cur = cur.Next() {
		next := cur.Next()
		next.Del()
		cur.Prev().Add(next)
	}
}

// Reverse reverses the order of the elements of q in place.
func (q *Queue) Reverse() {
	if q.empty() {
		return
	}
	q.head.Reverse()
}
