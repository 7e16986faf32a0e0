package bytestr

import "math"

// ShortMax is the longest payload a Short can hold. It matches the 24-byte
// footprint of a slice header on 64-bit platforms, less one byte for the NUL
// terminator.
const ShortMax = 23

// shortInvalid is the length sentinel of an invalid Short. Any value above
// ShortMax would do; the maximum keeps it far from real lengths.
const shortInvalid = math.MaxUint8

// Short is a string of at most ShortMax bytes stored by value. It never
// allocates.
//
// Validity is a function of the length alone: a Short is valid when its
// length is at most ShortMax. The zero value is a valid empty Short.
// When valid, the byte after the payload is always NUL.
type Short struct {
	n uint8
	b [ShortMax + 1]byte
}

// invalidShort returns a Short carrying the invalid length sentinel.
func invalidShort() Short { return Short{n: shortInvalid} }

// set overwrites s with p, which must be at most ShortMax bytes.
func (s *Short) set(p []byte) {
	copy(s.b[:], p)
	s.n = uint8(len(p))
	s.b[s.n] = 0
}

// NewShort copies p inline. It fails with ErrNilBytes when p is nil and with
// ErrTooLong when p is longer than ShortMax; it never truncates.
func NewShort(p []byte) (Short, error) {
	if p == nil {
		return invalidShort(), ErrNilBytes
	}
	if len(p) > ShortMax {
		return invalidShort(), ErrTooLong
	}
	var s Short
	s.set(p)
	return s, nil
}

// ShortFromChars copies the bytes of s inline.
func ShortFromChars(s string) (Short, error) { return NewShort(strtob(s)) }

// ShortFromCString copies the bytes of p up to the first NUL inline.
func ShortFromCString(p []byte) (Short, error) {
	sp, err := SpanFromCString(p)
	if err != nil {
		return invalidShort(), err
	}
	return ShortFromSpan(sp)
}

// ShortFromSpan copies the bytes viewed by sp inline.
func ShortFromSpan(sp Span) (Short, error) {
	if !sp.IsValid() {
		return invalidShort(), ErrInvalid
	}
	return NewShort(sp.b)
}

// ShortFromString copies the payload of s inline.
func ShortFromString(s String) (Short, error) {
	if !s.IsValid() {
		return invalidShort(), ErrInvalid
	}
	return NewShort(s.b)
}

// ShortFromSSO returns the inline half of s. It fails unless s is a Short
// SSO, even when a Long payload would fit.
func ShortFromSSO(s SSO) (Short, error) {
	if s.Kind() != SSOShort {
		return invalidShort(), ErrInvalid
	}
	return s.short, nil
}

// IsValid reports whether s's length is within ShortMax.
func (s Short) IsValid() bool { return s.n <= ShortMax }

// Len returns the payload length; 0 for an invalid Short.
func (s Short) Len() int {
	if !s.IsValid() {
		return 0
	}
	return int(s.n)
}

// Bytes returns the inline payload, or nil when s is invalid. The result
// aliases s and must not be modified.
func (s *Short) Bytes() []byte {
	if !s.IsValid() {
		return nil
	}
	return s.b[:s.n:s.n]
}

// CBytes returns the inline payload followed by its NUL terminator, or nil
// when s is invalid.
func (s *Short) CBytes() []byte {
	if !s.IsValid() {
		return nil
	}
	return s.b[: s.n+1 : s.n+1]
}

// Span returns a view of the inline payload. The view aliases s, so s must
// outlive it.
func (s *Short) Span() Span { return Span{b: s.Bytes()} }

// String returns a copy of the payload as a Go string.
func (s Short) String() string { return string(s.Bytes()) }

// Equal reports whether both Shorts are valid and hold identical bytes.
func (s Short) Equal(o Short) bool {
	return s.n == o.n &&
		s.IsValid() && // o is valid too: lengths match
		bytesEqual(s.b[:s.n], o.b[:o.n])
}

// Invalidate sets s's length to the invalid sentinel.
func (s *Short) Invalidate() { s.n = shortInvalid }
