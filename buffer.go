// buffer.go
//
// Growable byte buffer and its finalization into immutable strings.
// A Buffer owns one allocation from the configured Allocator and grows it
// geometrically (×1.5, half rounded up) whenever an append or insert needs
// more room, so a run of single-byte appends costs amortized O(1) per byte.
// Capacity never shrinks. Finalize hands the allocation to a String without
// copying; FinalizeSSO copies payloads that fit inline and releases the
// allocation instead.
//
// State machine: a Buffer is valid from NewBuffer until Finalize, Move or
// Destroy, after which it is invalid for good. Failed operations leave the
// Buffer exactly as it was.

package bytestr

import (
	"fmt"

	"go.uber.org/zap"
)

// minBufferCap is the smallest capacity BufferFromSpan allocates.
const minBufferCap = 8

// Buffer is a mutable, growable byte sequence that owns its allocation.
// The content is not NUL-terminated. The zero value is invalid; create
// buffers with NewBuffer or one of the BufferFrom constructors.
type Buffer struct {
	// mem is the whole allocation; len(mem) is the capacity.
	mem []byte

	// n is the number of bytes in use, n <= len(mem).
	n int
}

// NewBuffer returns an empty Buffer able to hold capacity bytes before it has
// to grow. capacity must be positive.
func NewBuffer(capacity int) (Buffer, error) {
	if capacity <= 0 {
		return Buffer{}, ErrZeroCapacity
	}
	mem, err := allocator().Alloc(capacity)
	if err != nil {
		Logger().Debug("buffer allocation failed", zap.Int("capacity", capacity), zap.Error(err))
		return Buffer{}, err
	}
	return Buffer{mem: mem}, nil
}

// BufferFromSpan returns a Buffer holding a copy of the bytes viewed by sp,
// with room for at least minBufferCap bytes.
func BufferFromSpan(sp Span) (Buffer, error) {
	if !sp.IsValid() {
		return Buffer{}, ErrInvalid
	}
	b, err := NewBuffer(max(minBufferCap, len(sp.b)))
	if err != nil {
		return Buffer{}, err
	}
	copy(b.mem, sp.b)
	b.n = len(sp.b)
	return b, nil
}

// BufferFromChars returns a Buffer holding a copy of s.
func BufferFromChars(s string) (Buffer, error) { return BufferFromSpan(SpanFromChars(s)) }

// BufferFromString returns a Buffer holding a copy of s's payload.
func BufferFromString(s String) (Buffer, error) { return BufferFromSpan(s.Span()) }

// BufferFromShort returns a Buffer holding a copy of s's payload.
func BufferFromShort(s Short) (Buffer, error) { return BufferFromSpan(s.Span()) }

// BufferFromSSO returns a Buffer holding a copy of s's payload.
func BufferFromSSO(s SSO) (Buffer, error) { return BufferFromSpan(s.Span()) }

// IsValid reports whether b owns an allocation.
func (b Buffer) IsValid() bool { return b.mem != nil }

// Len returns the number of bytes in use.
func (b Buffer) Len() int { return b.n }

// Cap returns the allocation size.
func (b Buffer) Cap() int { return len(b.mem) }

// Bytes returns the bytes in use, or nil for an invalid buffer. The slice is
// only good until the next mutating call.
func (b Buffer) Bytes() []byte {
	if !b.IsValid() {
		return nil
	}
	return b.mem[:b.n:b.n]
}

// Span returns a view of the bytes in use. Like Bytes, it is only good until
// the next mutating call.
func (b Buffer) Span() Span { return Span{b: b.Bytes()} }

// String returns a copy of the bytes in use as a Go string.
func (b Buffer) String() string { return string(b.Bytes()) }

// Equal reports whether both buffers are valid and hold identical bytes.
// Capacities are not compared.
func (b Buffer) Equal(o Buffer) bool {
	return b.n == o.n &&
		b.IsValid() && o.IsValid() &&
		bytesEqual(b.mem[:b.n], o.mem[:o.n])
}

// Append adds p to the end of b, growing b if necessary. p may view b's own
// contents.
// It fails with ErrInvalid for an invalid buffer and ErrNilBytes for nil p.
func (b *Buffer) Append(p []byte) error {
	if !b.IsValid() {
		return ErrInvalid
	}
	if p == nil {
		return ErrNilBytes
	}
	off, aliased := offsetIn(p, b.mem)
	if err := b.reserve(len(p)); err != nil {
		return err
	}
	// Growth may have released the old block.
	if aliased {
		p = b.mem[off : off+len(p)]
	}
	copy(b.mem[b.n:], p)
	b.n += len(p)
	return nil
}

// AppendChars appends the bytes of s.
func (b *Buffer) AppendChars(s string) error { return b.Append(strtob(s)) }

// AppendSpan appends the bytes viewed by sp.
func (b *Buffer) AppendSpan(sp Span) error { return b.Append(sp.b) }

// AppendString appends the payload of s.
func (b *Buffer) AppendString(s String) error { return b.Append(s.b) }

// AppendShort appends the payload of s.
func (b *Buffer) AppendShort(s Short) error { return b.Append(s.Bytes()) }

// AppendSSO appends the payload of s.
func (b *Buffer) AppendSSO(s SSO) error { return b.Append(s.Bytes()) }

// Insert opens a gap of len(p) bytes at idx and copies p into it.
// idx may equal Len, which appends. p may view b's own contents, including
// bytes at or after idx.
func (b *Buffer) Insert(idx int, p []byte) error {
	if !b.IsValid() {
		return ErrInvalid
	}
	if p == nil {
		return ErrNilBytes
	}
	if idx < 0 || idx > b.n {
		return ErrOutOfRange
	}
	k := len(p)
	off, aliased := offsetIn(p, b.mem)
	if err := b.reserve(k); err != nil {
		return err
	}
	moveBytes(b.mem[idx+k:], b.mem[idx:b.n])

	switch {
	case !aliased || off+k <= idx:
		if aliased {
			p = b.mem[off : off+k]
		}
		copy(b.mem[idx:idx+k], p)
	case off >= idx:
		// The whole source moved with the tail.
		copy(b.mem[idx:idx+k], b.mem[off+k:off+2*k])
	default:
		// The source straddles idx: its head stayed put, its tail moved.
		head := idx - off
		copy(b.mem[idx:idx+head], b.mem[off:idx])
		copy(b.mem[idx+head:idx+k], b.mem[idx+k:idx+k+(k-head)])
	}
	b.n += k
	return nil
}

// InsertChars inserts the bytes of s at idx.
func (b *Buffer) InsertChars(idx int, s string) error { return b.Insert(idx, strtob(s)) }

// InsertSpan inserts the bytes viewed by sp at idx.
func (b *Buffer) InsertSpan(idx int, sp Span) error { return b.Insert(idx, sp.b) }

// InsertString inserts the payload of s at idx.
func (b *Buffer) InsertString(idx int, s String) error { return b.Insert(idx, s.b) }

// InsertShort inserts the payload of s at idx.
func (b *Buffer) InsertShort(idx int, s Short) error { return b.Insert(idx, s.Bytes()) }

// InsertSSO inserts the payload of s at idx.
func (b *Buffer) InsertSSO(idx int, s SSO) error { return b.Insert(idx, s.Bytes()) }

// ExpandTo grows the allocation to exactly newCap bytes. It only ever grows:
// a newCap that does not exceed Cap fails with ErrNoGrowth.
func (b *Buffer) ExpandTo(newCap int) error {
	if !b.IsValid() {
		return ErrInvalid
	}
	if newCap <= len(b.mem) {
		return ErrNoGrowth
	}
	mem, err := allocator().Realloc(b.mem, newCap)
	if err != nil {
		Logger().Debug("buffer growth failed",
			zap.Int("cap", len(b.mem)), zap.Int("new_cap", newCap), zap.Error(err))
		return fmt.Errorf("expand buffer to %d bytes: %w", newCap, err)
	}
	Logger().Debug("buffer grown", zap.Int("cap", len(b.mem)), zap.Int("new_cap", newCap))
	b.mem = mem
	return nil
}

// ExpandBy grows the allocation by add bytes. Zero is a successful no-op.
func (b *Buffer) ExpandBy(add int) error {
	if !b.IsValid() {
		return ErrInvalid
	}
	if add < 0 {
		return ErrOutOfRange
	}
	if add == 0 {
		return nil
	}
	newCap, ok := addChecked(len(b.mem), add)
	if !ok {
		return ErrOverflow
	}
	return b.ExpandTo(newCap)
}

// reserve makes room for add more bytes, growing geometrically when the
// current allocation is too small.
func (b *Buffer) reserve(add int) error {
	need, ok := addChecked(b.n, add)
	if !ok {
		return ErrOverflow
	}
	if need <= len(b.mem) {
		return nil
	}
	return b.ExpandTo(growCapacity(len(b.mem), need))
}

// Finalize converts b into a String that takes over b's allocation, and
// leaves b invalid. The allocation grows first when there is no room for the
// NUL terminator; if that fails, b is left unchanged.
// An empty buffer yields the shared empty String and its allocation is
// released.
func (b *Buffer) Finalize() (String, error) {
	if !b.IsValid() {
		return String{}, ErrInvalid
	}
	if b.n == 0 {
		b.Destroy()
		return Empty(), nil
	}
	if err := b.reserve(1); err != nil {
		return String{}, err
	}
	b.mem[b.n] = 0
	s := String{b: b.mem[:b.n]}
	b.Invalidate()
	return s, nil
}

// FinalizeSSO converts b into an SSO and leaves b invalid. Payloads of at
// most ShortMax bytes are copied inline and b's allocation is released;
// longer ones take over the allocation as Finalize does.
func (b *Buffer) FinalizeSSO() (SSO, error) {
	if !b.IsValid() {
		return invalidSSO(), ErrInvalid
	}
	if b.n <= ShortMax {
		var s SSO
		s.short.set(b.mem[:b.n])
		b.Destroy()
		return s, nil
	}
	long, err := b.Finalize()
	if err != nil {
		return invalidSSO(), err
	}
	return ssoFromLong(long), nil
}

// Invalidate forgets b's allocation without releasing it.
func (b *Buffer) Invalidate() {
	b.mem = nil
	b.n = 0
}

// Move returns b and leaves b invalid.
func (b *Buffer) Move() Buffer {
	m := *b
	b.Invalidate()
	return m
}

// Destroy releases b's allocation and invalidates b. Destroying an invalid
// buffer is a no-op.
func (b *Buffer) Destroy() {
	if !b.IsValid() {
		return
	}
	allocator().Free(b.mem[:cap(b.mem)])
	b.Invalidate()
}
