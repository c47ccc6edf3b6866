package textq

import (
	"bytes"
	"errors"
	"fmt"
)

// maxCheckNodes bounds the walk done by Check so that a list whose
// cycle no longer passes through the sentinel cannot hang it.
const maxCheckNodes = 1 << 24

// Check verifies the structure of q. It returns nil if every node's
// neighbours point back at it, the cycle returns to the sentinel, the
// sentinel holds no element, and every element holds a properly
// terminated value. Otherwise it returns an error describing the first
// problem found. It returns [ErrNilQueue] for a nil or freed q.
func (q *Queue) Check() error {
	if !q.valid() {
		return ErrNilQueue
	}

	h := q.head
	if h.Owner() != nil {
		return errors.New("sentinel carries an element")
	}

	n := h
	for i := 0; ; i++ {
		if i > maxCheckNodes {
			return fmt.Errorf("no return to sentinel after %d nodes", maxCheckNodes)
		}

		next, prev := n.Next(), n.Prev()
		if next == nil || prev == nil {
			return fmt.Errorf("node %d: missing link", i)
		}
		if next.Prev() != n {
			return fmt.Errorf("node %d: next node does not link back", i)
		}
		if prev.Next() != n {
			return fmt.Errorf("node %d: previous node does not link forward", i)
		}

		if n != h {
			e := n.Owner()
			if e == nil {
				return fmt.Errorf("node %d: sentinel found inside the list", i)
			}
			if len(e.value) == 0 || bytes.IndexByte(e.value, 0) != len(e.value)-1 {
				return fmt.Errorf("node %d: value is not NUL-terminated", i)
			}
		}

		n = next
		if n == h {
			return nil
		}
	}
}
