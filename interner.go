// interner.go
//
// Byte-sequence interning with a bounded working set.
// The Interner maps *byte contents* → *one canonical owned String* so that
// repeated keys, identifiers, or header names share a single copy. Callers
// receive Spans into the canonical copy instead of fresh allocations.
//
// The implementation files strings under their 64-bit FarmHash fingerprint in
// an adaptive replacement cache (ARC) that balances recency and frequency.
// Fingerprint collisions are resolved by comparing bytes within a short
// per-fingerprint chain. Canonical copies always come from the Go heap rather
// than the configured Allocator: an evicted entry is reclaimed by the garbage
// collector once no Span refers to it, so eviction never invalidates a Span
// that was already handed out.

package bytestr

import (
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/arc/v2"
)

// DefaultInternerSize is the number of fingerprints an Interner created with
// a non-positive size keeps.
const DefaultInternerSize = 4096

// Interner canonicalizes byte sequences. It is safe for concurrent use.
type Interner struct {
	// mu serializes the lookup-then-insert sequence; the ARC cache guards
	// only its own state.
	mu sync.Mutex

	// cache maps a fingerprint to every canonical String sharing it.
	cache *arc.ARCCache[uint64, []String]

	// hits and misses count Intern calls that found or created an entry.
	hits, misses uint64
}

// NewInterner returns an Interner that tracks up to size distinct
// fingerprints before evicting.
func NewInterner(size int) (*Interner, error) {
	if size <= 0 {
		size = DefaultInternerSize
	}
	cache, err := arc.NewARC[uint64, []String](size)
	if err != nil {
		return nil, fmt.Errorf("create interner cache: %w", err)
	}
	return &Interner{cache: cache}, nil
}

// Intern returns a Span over the canonical copy of p, creating that copy on
// first sight. Interning equal bytes twice yields spans over the same memory
// for as long as the entry stays cached.
func (in *Interner) Intern(p []byte) (Span, error) {
	if p == nil {
		return Span{}, ErrNilBytes
	}
	fp := fingerprint(p)

	in.mu.Lock()
	defer in.mu.Unlock()

	chain, _ := in.cache.Get(fp)
	for _, s := range chain {
		if bytesEqual(s.b, p) {
			in.hits++
			return s.Span(), nil
		}
	}

	s, err := newStringUnchecked(p, HeapAllocator())
	if err != nil {
		return Span{}, err
	}
	in.misses++
	in.cache.Add(fp, append(chain[:len(chain):len(chain)], s))
	return s.Span(), nil
}

// InternChars interns the bytes of s.
func (in *Interner) InternChars(s string) (Span, error) { return in.Intern(strtob(s)) }

// InternSpan interns the bytes viewed by sp.
func (in *Interner) InternSpan(sp Span) (Span, error) {
	if !sp.IsValid() {
		return Span{}, ErrInvalid
	}
	return in.Intern(sp.b)
}

// Contains reports whether bytes equal to p are currently interned. It does
// not affect the cache's recency or frequency bookkeeping.
func (in *Interner) Contains(p []byte) bool {
	if p == nil {
		return false
	}
	in.mu.Lock()
	defer in.mu.Unlock()

	chain, _ := in.cache.Peek(fingerprint(p))
	for _, s := range chain {
		if bytesEqual(s.b, p) {
			return true
		}
	}
	return false
}

// Len returns the number of fingerprints currently cached.
func (in *Interner) Len() int { return in.cache.Len() }

// Stats returns how many Intern calls reused an entry and how many created one.
func (in *Interner) Stats() (hits, misses uint64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.hits, in.misses
}

// Purge drops every entry. Spans already handed out remain readable.
func (in *Interner) Purge() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.cache.Purge()
}
