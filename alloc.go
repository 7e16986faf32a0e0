// alloc.go
//
// Allocation back-ends for owned byte storage.
// Every String, Buffer and long SSO obtains its bytes through an Allocator
// and returns them through the same interface exactly once. The package
// never allocates owned storage any other way, which lets callers swap in a
// budgeted or recycling allocator to observe and bound memory use.

package bytestr

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Allocator supplies and releases owned byte storage.
//
// Alloc returns a slice whose length is exactly n. Realloc returns a slice of
// length n whose first min(len(b), n) bytes equal those of b; it may return a
// different backing array, in which case b must no longer be used. Free
// releases the block; callers pass the full block (b[:cap(b)]).
//
// Failures are reported with an error wrapping ErrAllocFailed; an Allocator
// must never panic on a size it cannot serve.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Realloc(b []byte, n int) ([]byte, error)
	Free(b []byte)
}

// heapAllocator serves blocks straight from the Go heap.
type heapAllocator struct{}

// HeapAllocator returns the default Allocator, backed by the Go heap.
// Free is a no-op; released blocks are reclaimed by the garbage collector.
func HeapAllocator() Allocator { return heapAllocator{} }

func (heapAllocator) Alloc(n int) (b []byte, err error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrAllocFailed, n)
	}
	// make panics with a runtime error for lengths the runtime cannot
	// represent; surface that as an ordinary failure.
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: size %d: %v", ErrAllocFailed, n, r)
		}
	}()
	return make([]byte, n), nil
}

func (h heapAllocator) Realloc(b []byte, n int) ([]byte, error) {
	if n <= cap(b) && n > 0 {
		return b[:n], nil
	}
	nb, err := h.Alloc(n)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	return nb, nil
}

func (heapAllocator) Free([]byte) {}

// LimitAllocator caps the number of bytes outstanding from an underlying
// Allocator. Once a request would push usage past the limit it fails with
// ErrAllocFailed, which makes allocator exhaustion reproducible.
//
// A LimitAllocator is safe for concurrent use.
type LimitAllocator struct {
	base Allocator

	mu    sync.Mutex
	limit int
	inUse int
}

// NewLimitAllocator returns an allocator that forwards to base (the heap when
// base is nil) while keeping at most limit bytes outstanding.
func NewLimitAllocator(base Allocator, limit int) *LimitAllocator {
	if base == nil {
		base = HeapAllocator()
	}
	return &LimitAllocator{base: base, limit: limit}
}

// InUse reports the number of bytes currently allocated and not yet freed.
func (l *LimitAllocator) InUse() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inUse
}

func (l *LimitAllocator) Alloc(n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > l.limit-l.inUse {
		Logger().Debug("allocation over budget",
			zap.Int("size", n), zap.Int("in_use", l.inUse), zap.Int("limit", l.limit))
		return nil, fmt.Errorf("%w: %d bytes exceeds remaining budget %d", ErrAllocFailed, n, l.limit-l.inUse)
	}
	b, err := l.base.Alloc(n)
	if err != nil {
		return nil, err
	}
	l.inUse += cap(b)
	return b, nil
}

func (l *LimitAllocator) Realloc(b []byte, n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	old := cap(b)
	if n-old > l.limit-l.inUse {
		Logger().Debug("reallocation over budget",
			zap.Int("size", n), zap.Int("in_use", l.inUse), zap.Int("limit", l.limit))
		return nil, fmt.Errorf("%w: growing to %d bytes exceeds remaining budget %d", ErrAllocFailed, n, l.limit-l.inUse)
	}
	nb, err := l.base.Realloc(b, n)
	if err != nil {
		return nil, err
	}
	l.inUse += cap(nb) - old
	return nb, nil
}

func (l *LimitAllocator) Free(b []byte) {
	if b == nil {
		return
	}
	l.mu.Lock()
	l.inUse -= cap(b)
	l.mu.Unlock()
	l.base.Free(b)
}
