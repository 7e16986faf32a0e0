package bytestr

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// config holds the package-wide collaborators. A *config is immutable once
// published; Configure swaps in a fresh copy.
type config struct {
	// alloc supplies and releases every owned allocation.
	alloc Allocator

	// log receives debug events about growth and allocation failures.
	log *zap.Logger
}

// Option configures the package during Configure.
type Option func(*config)

var active atomic.Pointer[config]

func init() {
	active.Store(&config{alloc: HeapAllocator(), log: zap.NewNop()})
}

// WithAllocator returns an Option that routes all future allocations through a.
// A nil allocator restores the Go heap allocator.
//
// Values created under the previous allocator are still released through
// whichever allocator is active when they are destroyed, so swap allocators
// only while no owned values are outstanding.
func WithAllocator(a Allocator) Option {
	return func(c *config) {
		if a == nil {
			a = HeapAllocator()
		}
		c.alloc = a
	}
}

// WithLogger returns an Option that sends debug events to l.
// A nil logger silences logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.log = l
	}
}

// Configure applies opts on top of the current configuration and returns a
// function that restores the configuration that was active before the call.
//
// Example:
//
//	restore := bytestr.Configure(
//	    bytestr.WithAllocator(bytestr.NewLimitAllocator(nil, 1<<20)),
//	    bytestr.WithLogger(logger),
//	)
//	defer restore()
func Configure(opts ...Option) (restore func()) {
	prev := active.Load()
	next := *prev
	for _, opt := range opts {
		opt(&next)
	}
	active.Store(&next)
	return func() { active.Store(prev) }
}

func allocator() Allocator { return active.Load().alloc }

// Logger returns the logger currently used by the package.
func Logger() *zap.Logger { return active.Load().log }
