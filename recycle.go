// recycle.go
//
// Block recycling for workloads that repeatedly create and destroy strings
// and buffers of the same sizes.
// The allocator keeps *block size* → *freed blocks of that size* so that a
// later Alloc of the same size reuses memory instead of asking the base
// allocator. Size classes are held in a bounded LRU: when too many distinct
// sizes are in play the least-recently-used class is dropped and its blocks
// are handed back to the base allocator.
//
// Freed blocks are zeroed before they are parked so that no payload leaks into
// a later owner.

package bytestr

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	// DefaultRecycleClasses is the number of distinct block sizes kept.
	DefaultRecycleClasses = 64

	// DefaultRecyclePerClass is the number of blocks kept per size.
	DefaultRecyclePerClass = 16
)

// RecyclingAllocator reuses freed blocks of identical size.
// It is safe for concurrent use.
type RecyclingAllocator struct {
	base     Allocator
	perClass int

	// mu serializes the get-modify-put sequences on classes.
	mu sync.Mutex

	// classes maps a block size to its parked blocks.
	classes *lru.Cache[int, [][]byte]

	hits, misses uint64
}

// NewRecyclingAllocator returns an allocator that parks freed blocks for
// reuse, keeping at most classes sizes and perClass blocks per size.
// Non-positive limits select the defaults. A nil base uses the heap.
func NewRecyclingAllocator(base Allocator, classes, perClass int) (*RecyclingAllocator, error) {
	if base == nil {
		base = HeapAllocator()
	}
	if classes <= 0 {
		classes = DefaultRecycleClasses
	}
	if perClass <= 0 {
		perClass = DefaultRecyclePerClass
	}
	r := &RecyclingAllocator{base: base, perClass: perClass}
	cache, err := lru.NewWithEvict[int, [][]byte](classes, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create recycling classes: %w", err)
	}
	r.classes = cache
	return r, nil
}

// onEvict returns the blocks of a dropped size class to the base allocator.
// It runs under r.mu, from within classes.Add.
func (r *RecyclingAllocator) onEvict(size int, blocks [][]byte) {
	Logger().Debug("recycling class evicted", zap.Int("size", size), zap.Int("blocks", len(blocks)))
	for _, b := range blocks {
		r.base.Free(b)
	}
}

func (r *RecyclingAllocator) Alloc(n int) ([]byte, error) {
	r.mu.Lock()
	if blocks, ok := r.classes.Get(n); ok && len(blocks) > 0 {
		b := blocks[len(blocks)-1]
		blocks[len(blocks)-1] = nil
		r.classes.Add(n, blocks[:len(blocks)-1])
		r.hits++
		r.mu.Unlock()
		return b[:n], nil
	}
	r.misses++
	r.mu.Unlock()
	return r.base.Alloc(n)
}

// Realloc always moves to a block of exactly n bytes so that the old block
// can be parked under its own size.
func (r *RecyclingAllocator) Realloc(b []byte, n int) ([]byte, error) {
	nb, err := r.Alloc(n)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	r.Free(b)
	return nb, nil
}

func (r *RecyclingAllocator) Free(b []byte) {
	if b == nil {
		return
	}
	b = b[:cap(b)]
	clear(b)

	r.mu.Lock()
	defer r.mu.Unlock()

	blocks, _ := r.classes.Get(len(b))
	if len(blocks) >= r.perClass {
		r.base.Free(b)
		return
	}
	r.classes.Add(len(b), append(blocks, b))
}

// Stats returns how many Alloc calls were served from parked blocks and how
// many fell through to the base allocator.
func (r *RecyclingAllocator) Stats() (hits, misses uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits, r.misses
}

// Parked returns the number of blocks currently held for reuse.
func (r *RecyclingAllocator) Parked() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, size := range r.classes.Keys() {
		blocks, _ := r.classes.Peek(size)
		total += len(blocks)
	}
	return total
}
