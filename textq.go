// Package textq implements a double-ended queue of text values on top
// of an intrusive, circular, doubly-linked list with a sentinel, along
// with a handful of structural algorithms over that list: deleting the
// middle element, removing duplicated values, swapping adjacent pairs,
// reversing and stable sorting.
//
// A Queue is not safe for concurrent use. All operations accept a nil
// or freed *Queue and treat it as an absent queue, returning a neutral
// result without side effects.
package textq

import "errors"

var (
	// ErrNilQueue is returned by operations that were given a nil or
	// already freed queue.
	ErrNilQueue = errors.New("textq: nil queue")

	// ErrAllocation is returned when the queue's Allocator refuses to
	// provide storage.
	ErrAllocation = errors.New("textq: allocation failed")
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
