package alloc_test

import (
	"testing"

	"deedles.dev/textq/internal/alloc"
	"github.com/stretchr/testify/require"
)

func TestTrackerAccounting(t *testing.T) {
	tr := alloc.NewTracker(0, 1)
	require.True(t, tr.Alloc(16))
	require.True(t, tr.Alloc(4))

	blocks, bytes := tr.Live()
	require.Equal(t, 2, blocks)
	require.Equal(t, 20, bytes)

	tr.Free(4)
	tr.Free(16)
	blocks, bytes = tr.Live()
	require.Zero(t, blocks)
	require.Zero(t, bytes)

	s := tr.Stats()
	require.Equal(t, uint64(2), s.Allocs)
	require.Equal(t, uint64(2), s.Frees)
	require.Zero(t, s.Failures)
}

func TestTrackerDoubleFree(t *testing.T) {
	tr := alloc.NewTracker(0, 1)
	require.True(t, tr.Alloc(8))
	tr.Free(8)
	require.Panics(t, func() { tr.Free(8) })
}

func TestTrackerFailRate(t *testing.T) {
	tr := alloc.NewTracker(1, 1)
	for range 10 {
		require.False(t, tr.Alloc(1))
	}
	require.Equal(t, uint64(10), tr.Stats().Failures)

	blocks, _ := tr.Live()
	require.Zero(t, blocks)

	tr.SetFailRate(-3)
	require.Zero(t, tr.FailRate())
	require.True(t, tr.Alloc(1))

	tr.SetFailRate(7)
	require.Equal(t, 1.0, tr.FailRate())
}

func TestTrackerDeterministic(t *testing.T) {
	run := func() []bool {
		tr := alloc.NewTracker(0.5, 42)
		out := make([]bool, 64)
		for i := range out {
			out[i] = tr.Alloc(1)
		}
		return out
	}
	require.Equal(t, run(), run())
}
