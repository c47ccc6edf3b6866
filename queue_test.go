package textq_test

import (
	"slices"
	"strings"
	"testing"

	"deedles.dev/textq"
	"deedles.dev/textq/internal/alloc"
	"github.com/stretchr/testify/require"
)

func newQueue(t *testing.T, vals ...string) *textq.Queue {
	t.Helper()
	q, err := textq.New()
	require.NoError(t, err)
	t.Cleanup(q.Free)

	for _, v := range vals {
		require.NoError(t, q.InsertTail(v))
	}
	requireValid(t, q)
	return q
}

func requireValid(t *testing.T, q *textq.Queue) {
	t.Helper()
	require.NoError(t, q.Check())
}

func requireValues(t *testing.T, q *textq.Queue, want ...string) {
	t.Helper()
	requireValid(t, q)
	require.Equal(t, len(want), q.Size())
	got := slices.Collect(q.All())
	if len(want) == 0 {
		require.Empty(t, got)
		return
	}
	require.Equal(t, want, got)
}

func TestNewIsEmpty(t *testing.T) {
	q := newQueue(t)
	require.Zero(t, q.Size())
	require.Nil(t, q.RemoveHead(nil))
	require.Nil(t, q.RemoveTail(nil))
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	q := newQueue(t, "x", "y")

	require.NoError(t, q.InsertHead("hello"))
	require.Equal(t, 3, q.Size())

	buf := make([]byte, 32)
	e := q.RemoveHead(buf)
	require.NotNil(t, e)
	defer e.Release()

	require.Equal(t, "hello", e.Value())
	require.Equal(t, "hello\x00", string(buf[:6]))
	requireValues(t, q, "x", "y")
}

func TestFIFOAndLIFO(t *testing.T) {
	fifo := newQueue(t, "a", "b", "c")
	lifo := newQueue(t)
	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, lifo.InsertHead(v))
	}

	drain := func(q *textq.Queue) (out []string) {
		for {
			e := q.RemoveHead(nil)
			if e == nil {
				return out
			}
			out = append(out, e.Value())
			e.Release()
			requireValid(t, q)
		}
	}

	require.Equal(t, []string{"a", "b", "c"}, drain(fifo))
	require.Equal(t, []string{"c", "b", "a"}, drain(lifo))
}

func TestRemoveTail(t *testing.T) {
	q := newQueue(t, "a", "b", "c")

	e := q.RemoveTail(nil)
	require.Equal(t, "c", e.Value())
	e.Release()
	requireValues(t, q, "a", "b")
}

func TestInsertCopiesText(t *testing.T) {
	q := newQueue(t)

	b := []byte("mutable")
	require.NoError(t, q.InsertTail(string(b)))
	b[0] = 'M'
	require.NoError(t, q.InsertTail("cut\x00off"))

	requireValues(t, q, "mutable", "cut")
}

func TestCopyOutTruncation(t *testing.T) {
	tests := []struct {
		name string
		cap  int
		want string
	}{
		{"Exact", 9, "abcdefgh"},
		{"Larger", 20, "abcdefgh"},
		{"Smaller", 4, "abc"},
		{"TerminatorOnly", 1, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			q := newQueue(t, "abcdefgh")

			buf := make([]byte, test.cap+1)
			for i := range buf {
				buf[i] = '#'
			}
			e := q.RemoveHead(buf[:test.cap])
			require.NotNil(t, e)
			defer e.Release()

			n := len(test.want)
			require.Equal(t, test.want, string(buf[:n]))
			require.Zero(t, buf[n])
			require.Equal(t, byte('#'), buf[test.cap], "wrote past the end of the buffer")
			require.Equal(t, "abcdefgh", e.Value())
		})
	}
}

func TestRemoveIntoEmptyBuffer(t *testing.T) {
	q := newQueue(t, "abc")
	e := q.RemoveTail([]byte{})
	require.Equal(t, "abc", e.Value())
	e.Release()
}

func TestNilQueue(t *testing.T) {
	var q *textq.Queue

	require.ErrorIs(t, q.InsertHead("a"), textq.ErrNilQueue)
	require.ErrorIs(t, q.InsertTail("a"), textq.ErrNilQueue)
	require.Nil(t, q.RemoveHead(make([]byte, 4)))
	require.Nil(t, q.RemoveTail(nil))
	require.Zero(t, q.Size())
	require.False(t, q.DeleteMid())
	require.False(t, q.DeleteDup())
	require.ErrorIs(t, q.Check(), textq.ErrNilQueue)
	require.Empty(t, slices.Collect(q.All()))

	require.NotPanics(t, func() {
		q.Swap()
		q.Reverse()
		q.Sort()
		q.Free()
	})
}

func TestFreedQueueIsAbsent(t *testing.T) {
	tr := alloc.NewTracker(0, 1)
	q, err := textq.New(textq.WithAllocator(tr))
	require.NoError(t, err)
	require.NoError(t, q.InsertTail("a"))
	require.NoError(t, q.InsertTail("bb"))

	q.Free()
	blocks, bytes := tr.Live()
	require.Zero(t, blocks)
	require.Zero(t, bytes)

	require.ErrorIs(t, q.InsertTail("c"), textq.ErrNilQueue)
	require.Zero(t, q.Size())
	require.NotPanics(t, q.Free)
}

func TestNewAllocationFailure(t *testing.T) {
	tr := alloc.NewTracker(1, 1)
	q, err := textq.New(textq.WithAllocator(tr))
	require.ErrorIs(t, err, textq.ErrAllocation)
	require.Nil(t, q)
}

func TestInsertAllocationFailure(t *testing.T) {
	tr := alloc.NewTracker(0, 1)
	q, err := textq.New(textq.WithAllocator(tr))
	require.NoError(t, err)
	defer q.Free()

	require.NoError(t, q.InsertTail("keep"))
	blocks, bytes := tr.Live()

	tr.SetFailRate(1)
	require.ErrorIs(t, q.InsertHead("lost"), textq.ErrAllocation)
	require.ErrorIs(t, q.InsertTail("lost"), textq.ErrAllocation)
	requireValues(t, q, "keep")

	b, n := tr.Live()
	require.Equal(t, blocks, b)
	require.Equal(t, bytes, n)
}

// refuseNth refuses exactly the nth allocation it is asked for.
type refuseNth struct {
	*alloc.Tracker
	n, count int
}

func (r *refuseNth) Alloc(size int) bool {
	r.count++
	if r.count == r.n {
		return false
	}
	return r.Tracker.Alloc(size)
}

func TestInsertBufferAllocationFailure(t *testing.T) {
	// Allocation 1 is the sentinel, 2 the element, 3 its text.
	a := &refuseNth{Tracker: alloc.NewTracker(0, 1), n: 3}
	q, err := textq.New(textq.WithAllocator(a))
	require.NoError(t, err)

	require.ErrorIs(t, q.InsertTail("abc"), textq.ErrAllocation)
	requireValues(t, q)

	blocks, _ := a.Live()
	require.Equal(t, 1, blocks, "partial element was not given back")

	q.Free()
	blocks, _ = a.Live()
	require.Zero(t, blocks)
}

func TestReleaseContract(t *testing.T) {
	tr := alloc.NewTracker(0, 1)
	q, err := textq.New(textq.WithAllocator(tr))
	require.NoError(t, err)
	defer q.Free()

	require.NoError(t, q.InsertTail("a"))
	e := q.RemoveHead(nil)
	e.Release()
	require.Panics(t, e.Release)
	require.Empty(t, e.Value())

	var nilElem *textq.Element
	require.NotPanics(t, nilElem.Release)
}

func TestFreeReleasesEverything(t *testing.T) {
	tr := alloc.NewTracker(0, 1)
	q, err := textq.New(textq.WithAllocator(tr))
	require.NoError(t, err)

	for i := range 100 {
		require.NoError(t, q.InsertTail(strings.Repeat("x", i)))
	}
	e := q.RemoveHead(nil)

	q.Free()
	blocks, _ := tr.Live()
	require.Equal(t, 2, blocks, "removed element should still be live")

	e.Release()
	blocks, bytes := tr.Live()
	require.Zero(t, blocks)
	require.Zero(t, bytes)
}

func TestBackward(t *testing.T) {
	q := newQueue(t, "a", "b", "c")
	require.Equal(t, []string{"c", "b", "a"}, slices.Collect(q.Backward()))

	var first []string
	for v := range q.All() {
		first = append(first, v)
		break
	}
	require.Equal(t, []string{"a"}, first)
}
