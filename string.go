package bytestr

// String is an immutable byte sequence that owns its allocation.
//
// The allocation always holds one byte more than the payload and that byte is
// NUL, so CBytes can hand the payload to code expecting a C string. All empty
// Strings share one static allocation that Destroy never releases.
//
// The zero value is invalid. Copying a String by assignment aliases the
// allocation; use Clone for an independent copy and Move to transfer
// ownership.
type String struct {
	// b is the payload; b[:len(b)+1] includes the terminator and b[:cap(b)]
	// is the full allocation returned to the Allocator on Destroy.
	b []byte
}

// Empty returns the shared empty String. It needs no allocation and
// destroying it is a no-op.
func Empty() String { return String{b: emptyBytes[:0:1]} }

// NewString copies p into a new NUL-terminated allocation.
//
// NewString fails with ErrNilBytes when p is nil, even if the caller meant an
// empty string; pass a non-nil empty slice for that. Empty input returns the
// shared empty String without allocating.
func NewString(p []byte) (String, error) {
	if p == nil {
		return String{}, ErrNilBytes
	}
	return newStringUnchecked(p, allocator())
}

// newStringUnchecked copies p, which must be non-nil, into memory from a.
func newStringUnchecked(p []byte, a Allocator) (String, error) {
	if len(p) == 0 {
		return Empty(), nil
	}
	n, ok := addChecked(len(p), 1)
	if !ok {
		return String{}, ErrOverflow
	}
	mem, err := a.Alloc(n)
	if err != nil {
		return String{}, err
	}
	copy(mem, p)
	mem[len(p)] = 0
	return String{b: mem[:len(p)]}, nil
}

// StringFromChars copies the bytes of s.
func StringFromChars(s string) (String, error) { return NewString(strtob(s)) }

// StringFromCString copies the bytes of p up to the first NUL.
func StringFromCString(p []byte) (String, error) {
	sp, err := SpanFromCString(p)
	if err != nil {
		return String{}, err
	}
	return StringFromSpan(sp)
}

// StringFromSpan copies the bytes viewed by sp.
func StringFromSpan(sp Span) (String, error) {
	if !sp.IsValid() {
		return String{}, ErrInvalid
	}
	return newStringUnchecked(sp.b, allocator())
}

// StringFromShort copies the inline bytes of s into an owned allocation.
func StringFromShort(s Short) (String, error) {
	if !s.IsValid() {
		return String{}, ErrInvalid
	}
	return newStringUnchecked(s.b[:s.n], allocator())
}

// StringFromSSO copies the payload of s into a new owned allocation; s keeps
// its own storage.
func StringFromSSO(s SSO) (String, error) {
	p := s.Bytes()
	if p == nil {
		return String{}, ErrInvalid
	}
	return newStringUnchecked(p, allocator())
}

// Clone returns an independent copy of s.
func (s String) Clone() (String, error) {
	if !s.IsValid() {
		return String{}, ErrInvalid
	}
	return newStringUnchecked(s.b, allocator())
}

// IsValid reports whether s holds a payload.
func (s String) IsValid() bool { return s.b != nil }

// Len returns the payload length; 0 for an invalid String.
func (s String) Len() int { return len(s.b) }

// Bytes returns the payload without its terminator, or nil when s is invalid.
// The result must not be modified.
func (s String) Bytes() []byte { return s.b }

// CBytes returns the payload followed by its NUL terminator, or nil when s is
// invalid. The result must not be modified.
func (s String) CBytes() []byte {
	if !s.IsValid() {
		return nil
	}
	return s.b[:len(s.b)+1]
}

// String returns a copy of the payload as a Go string.
func (s String) String() string { return string(s.b) }

// UnsafeString returns the payload as a Go string that shares s's memory.
// The result must not be used after s is destroyed.
func (s String) UnsafeString() string { return btostr(s.b) }

// Span returns a view of the payload; invalid when s is invalid.
func (s String) Span() Span { return Span{b: s.b} }

// Subspan views length bytes of s starting at start; see Span.Subspan.
func (s String) Subspan(start, length int) (Span, error) {
	return s.Span().Subspan(start, length)
}

// Substr copies length bytes of s starting at start into a new String.
func (s String) Substr(start, length int) (String, error) {
	return s.Span().Substr(start, length)
}

// Equal reports whether both Strings are valid and hold identical bytes.
func (s String) Equal(o String) bool {
	return len(s.b) == len(o.b) &&
		s.IsValid() && o.IsValid() &&
		bytesEqual(s.b, o.b)
}

// Invalidate forgets s's allocation without releasing it.
func (s *String) Invalidate() { s.b = nil }

// Move returns s and leaves s invalid, transferring ownership of the
// allocation to the result. Moving an invalid String yields an invalid String.
func (s *String) Move() String {
	m := *s
	s.Invalidate()
	return m
}

// Destroy releases s's allocation and invalidates s. Destroying an invalid
// String, or the shared empty String, releases nothing.
func (s *String) Destroy() {
	if !s.IsValid() {
		return
	}
	if !isEmptySingleton(s.b) {
		allocator().Free(s.b[:cap(s.b)])
	}
	s.Invalidate()
}

// MoveToSSO transfers s into an SSO and leaves s invalid. Payloads longer
// than ShortMax keep their allocation; shorter ones are copied inline and the
// allocation is released.
func (s *String) MoveToSSO() SSO {
	if !s.IsValid() {
		s.Invalidate()
		return invalidSSO()
	}
	if len(s.b) > ShortMax {
		return ssoFromLong(s.Move())
	}
	var out SSO
	out.short.set(s.b)
	s.Destroy()
	return out
}
