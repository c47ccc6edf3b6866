package textq

// An Allocator accounts for the storage a Queue uses. Alloc is asked
// before every allocation of size bytes and may refuse it, in which
// case the operation that needed the storage fails with
// [ErrAllocation]. Free is called once for every successful Alloc when
// the storage is given back.
//
// The zero configuration uses an Allocator that never refuses.
type Allocator interface {
	Alloc(size int) bool
	Free(size int)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(int) bool { return true }
func (heapAllocator) Free(int)       {}

// Option configures a Queue created by [New].
type Option func(*options)

type options struct {
	alloc Allocator
}

func defaultOptions() options {
	return options{
		alloc: heapAllocator{},
	}
}

// WithAllocator makes the Queue and all of its elements account their
// storage with a. A nil a is ignored.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}
