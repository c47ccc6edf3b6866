//go:build go1.23

package textq

import "iter"

// All returns an iterator over the values of q from head to tail. q
// must not be modified while iterating.
func (q *Queue) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if q.empty() {
			return
		}
		for n := range q.head.Nodes() {
			if !yield(n.Owner().Value()) {
				return
			}
		}
	}
}

// Backward is like [Queue.All] but runs from tail to head.
func (q *Queue) Backward() iter.Seq[string] {
	return func(yield func(string) bool) {
		if q.empty() {
			return
		}
		for n := range q.head.Backward() {
			if !yield(n.Owner().Value()) {
				return
			}
		}
	}
}
