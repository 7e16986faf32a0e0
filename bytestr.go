// Package bytestr provides a small set of byte-string value types that
// cooperate without copying more than they have to.
//
// The package offers five types:
//   - Span, a non-owning view into bytes owned by someone else.
//   - String, an immutable, NUL-terminated byte sequence that owns its
//     allocation.
//   - Short, a fixed-capacity string stored entirely inline (ShortMax bytes).
//   - SSO, a small-string-optimized value that holds a Short when the payload
//     fits and a String otherwise.
//   - Buffer, the only mutable type: a growable byte buffer that can be
//     finalized into a String or an SSO without copying.
//
// IMPLEMENTATION:
// Every type encodes "no value" in-band. A Span, String or Buffer is invalid
// when its backing slice is nil; a Short is invalid when its length byte
// holds a sentinel larger than ShortMax. The SSO derives its kind from the
// validity of its two halves instead of storing a tag, so the three states
// (Short, Long, Invalid) can never disagree with the payload.
//
// Constructors and conversions never panic on bad input. They return the
// invalid form of the target type together with one of the sentinel errors
// below. Owned allocations come from the configured Allocator and must be
// released exactly once with Destroy; Move hands ownership to a new value and
// leaves the source invalid, so destroying a moved-from value is a no-op.
//
// None of the value types are safe for concurrent mutation. Share them across
// goroutines only behind external synchronization.
package bytestr

import (
	"bytes"
	"errors"
)

var (
	ErrNilBytes     = errors.New("bytestr: nil byte source")
	ErrInvalid      = errors.New("bytestr: invalid value")
	ErrTooLong      = errors.New("bytestr: length exceeds short string capacity")
	ErrOutOfRange   = errors.New("bytestr: index or length out of range")
	ErrOverflow     = errors.New("bytestr: length arithmetic overflows")
	ErrAllocFailed  = errors.New("bytestr: allocation failed")
	ErrZeroCapacity = errors.New("bytestr: buffer capacity must be positive")
	ErrNoGrowth     = errors.New("bytestr: new capacity does not exceed current capacity")
	ErrUnterminated = errors.New("bytestr: C string is not NUL-terminated")
)

// emptyBytes backs the shared empty String. It is never handed to an
// Allocator.
var emptyBytes [1]byte

// isEmptySingleton reports whether b points at emptyBytes.
func isEmptySingleton(b []byte) bool {
	return cap(b) > 0 && &b[:1][0] == &emptyBytes[0]
}

// emptyView returns a valid zero-length slice that does not alias any
// allocation a caller could free.
func emptyView() []byte { return emptyBytes[:0:0] }

// bytesEqual compares two payloads of equal length.
func bytesEqual(a, b []byte) bool { return bytes.Equal(a, b) }

// cstrLen returns the number of bytes before the first NUL in p.
func cstrLen(p []byte) (int, error) {
	if p == nil {
		return 0, ErrNilBytes
	}
	n := bytes.IndexByte(p, 0)
	if n < 0 {
		return 0, ErrUnterminated
	}
	return n, nil
}
