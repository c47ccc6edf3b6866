package textq

import (
	"bytes"

	"deedles.dev/textq/internal/list"
)

// Sort sorts the elements of q into ascending byte-wise order of their
// values. The sort is stable: elements with equal values keep their
// relative order. It only relinks existing elements.
func (q *Queue) Sort() {
	if q.empty() || q.head.Singular() {
		return
	}
	mergeSort(q.head)
}

// mergeSort sorts the list anchored at h. The first half of the list
// is cut off into a temporary list, both halves are sorted, and the
// merged result is spliced back under h.
func mergeSort(h *list.Node[Element]) {
	if h.Empty() || h.Singular() {
		return
	}

	var left, sorted list.Node[Element]
	left.Init()
	sorted.Init()

	h.CutPosition(&left, h.Middle().Prev())
	mergeSort(&left)
	mergeSort(h)

	merge(&left, h, &sorted)
	h.SpliceTail(&sorted)
}

// merge moves the nodes of the sorted lists a and b onto the tail of
// out in sorted order, leaving both a and b empty. On ties the node
// from a goes first.
func merge(a, b, out *list.Node[Element]) {
	for !a.Empty() && !b.Empty() {
		n := b.Next()
		if compare(a.Next(), b.Next()) <= 0 {
			n = a.Next()
		}
		out.MoveTail(n)
	}

	if a.Empty() {
		out.SpliceTail(b)
	} else {
		out.SpliceTail(a)
	}
}

func compare(a, b *list.Node[Element]) int {
	return bytes.Compare(a.Owner().text(), b.Owner().text())
}
