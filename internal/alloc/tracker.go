// Package alloc provides an allocation tracker that can stand in for
// the default allocator of a queue. It keeps count of live blocks so
// that leaks and double frees can be detected, and it can refuse
// allocations at random to exercise failure paths.
package alloc

import (
	"fmt"
	"math/rand/v2"
)

// Stats is a snapshot of a Tracker's counters.
type Stats struct {
	Allocs     uint64
	Frees      uint64
	Failures   uint64
	LiveBlocks int
	LiveBytes  int
}

// Tracker counts allocations and frees. A Tracker is not safe for
// concurrent use.
type Tracker struct {
	failRate float64
	rng      *rand.Rand

	allocs, frees, failures uint64
	blocks, bytes           int
}

// NewTracker returns a Tracker that refuses each allocation with
// probability failRate, drawing from a generator seeded with seed.
func NewTracker(failRate float64, seed uint64) *Tracker {
	t := &Tracker{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	t.SetFailRate(failRate)
	return t
}

// SetFailRate changes the probability of refusing an allocation. It
// is clamped to [0, 1].
func (t *Tracker) SetFailRate(p float64) {
	t.failRate = min(max(p, 0), 1)
}

// FailRate returns the current probability of refusing an allocation.
func (t *Tracker) FailRate() float64 {
	return t.failRate
}

// Alloc records a new block of size bytes, or refuses it with the
// configured probability. A refused allocation is counted as a failure
// and leaves no live block behind.
func (t *Tracker) Alloc(size int) bool {
	if t.failRate > 0 && t.rng.Float64() < t.failRate {
		t.failures++
		return false
	}

	t.allocs++
	t.blocks++
	t.bytes += size
	return true
}

// Free gives back a block of size bytes. It panics if there is no live
// block to give back, which means something was freed twice.
func (t *Tracker) Free(size int) {
	if t.blocks == 0 || t.bytes < size {
		panic(fmt.Errorf("alloc: free of %d bytes with %d live blocks (%d bytes)", size, t.blocks, t.bytes))
	}

	t.frees++
	t.blocks--
	t.bytes -= size
}

// Live returns the number of blocks and bytes that have been allocated
// but not freed.
func (t *Tracker) Live() (blocks, bytes int) {
	return t.blocks, t.bytes
}

// Stats returns a snapshot of t's counters.
func (t *Tracker) Stats() Stats {
	return Stats{
		Allocs:     t.allocs,
		Frees:      t.frees,
		Failures:   t.failures,
		LiveBlocks: t.blocks,
		LiveBytes:  t.bytes,
	}
}
