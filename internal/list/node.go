// Package list implements an intrusive, circular, doubly-linked list
// anchored by a sentinel node.
//
// A list is identified by its sentinel, a [Node] with no owner. Every
// other node is embedded in the value that owns it and is bound to
// that value with [Node.Bind], so the owner can be recovered from the
// node without any extra allocation. An empty list is a sentinel whose
// links point back at itself.
package list

import "iter"

// Node is a link of a circular list. The zero value is unlinked; call
// [Node.Init] to turn it into an empty list's sentinel.
type Node[T any] struct {
	prev, next *Node[T]
	owner      *T
}

// Init makes n an empty list by pointing both of its links at itself.
func (n *Node[T]) Init() *Node[T] {
	n.prev = n
	n.next = n
	return n
}

// Bind records v as the value that embeds n.
func (n *Node[T]) Bind(v *T) {
	n.owner = v
}

// Owner returns the value n is embedded in, or nil for a sentinel.
func (n *Node[T]) Owner() *T {
	return n.owner
}

// Next returns the node after n. For a sentinel that is the first
// node of its list, or n itself if the list is empty.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the node before n. For a sentinel that is the last node
// of its list, or n itself if the list is empty.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// Linked reports whether n is currently part of a list.
func (n *Node[T]) Linked() bool {
	return n.next != nil
}

// Empty reports whether the list anchored at n has no nodes.
func (n *Node[T]) Empty() bool {
	return n.next == n
}

// Singular reports whether the list anchored at n has exactly one
// node.
func (n *Node[T]) Singular() bool {
	return !n.Empty() && n.next == n.prev
}

func link[T any](e, prev, next *Node[T]) {
	next.prev = e
	e.next = next
	e.prev = prev
	prev.next = e
}

// Add links e directly after n. If n is a sentinel, e becomes the
// first node of the list.
func (n *Node[T]) Add(e *Node[T]) {
	link(e, n, n.next)
}

// AddTail links e directly before n. If n is a sentinel, e becomes the
// last node of the list.
func (n *Node[T]) AddTail(e *Node[T]) {
	link(e, n.prev, n)
}

// Del unlinks n from whatever list it is in and clears its links.
func (n *Node[T]) Del() {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}

// MoveTail unlinks e from its current list and appends it to the list
// anchored at n.
func (n *Node[T]) MoveTail(e *Node[T]) {
	e.Del()
	n.AddTail(e)
}

// SpliceTail moves every node of the list anchored at l, in order, to
// the end of the list anchored at n. l is left empty.
func (n *Node[T]) SpliceTail(l *Node[T]) {
	if l.Empty() {
		return
	}

	first, last := l.next, l.prev
	tail := n.prev

	tail.next = first
	first.prev = tail
	last.next = n
	n.prev = last

	l.Init()
}

// CutPosition moves the nodes of n from its first node up to and
// including at into the list anchored at into, which must be empty.
// If at is n itself, nothing is moved.
func (n *Node[T]) CutPosition(into, at *Node[T]) {
	if n.Empty() || at == n {
		return
	}

	first := n.next
	rest := at.next

	into.next = first
	first.prev = into
	into.prev = at
	at.next = into

	n.next = rest
	rest.prev = n
}

// Middle returns the node at index len/2 of the list anchored at n,
// which is the upper of the two middle nodes when the length is even.
// It walks the list once with a slow and a fast cursor. For an empty
// list it returns n.
func (n *Node[T]) Middle() *Node[T] {
	slow := n.next
	for fast := n.next; fast != n && fast.next != n; fast = fast.next.next {
		slow = slow.next
	}
	return slow
}

// Reverse reverses the order of the list anchored at n by exchanging
// the links of every node in the cycle, n included.
func (n *Node[T]) Reverse() {
	cur := n
	for {
		next := cur.next
		cur.next, cur.prev = cur.prev, next
		cur = next
		if cur == n {
			return
		}
	}
}

// Len counts the nodes of the list anchored at n.
func (n *Node[T]) Len() int {
	var c int
	for cur := n.next; cur != n; cur = cur.next {
		c++
	}
	return c
}

// Nodes returns an iterator over the nodes of the list anchored at n,
// first to last. It is safe to unlink the currently-yielded node
// during iteration.
func (n *Node[T]) Nodes() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for cur := n.next; cur != n; {
			next := cur.next
			if !yield(cur) {
				return
			}
			cur = next
		}
	}
}

// Backward is like [Node.Nodes] but runs from the last node to the
// first.
func (n *Node[T]) Backward() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for cur := n.prev; cur != n; {
			prev := cur.prev
			if !yield(cur) {
				return
			}
			cur = prev
		}
	}
}
