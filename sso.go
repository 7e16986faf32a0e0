package bytestr

import "fmt"

// SSOKind classifies the payload an SSO currently holds.
type SSOKind uint8

const (
	// SSOShort means the payload is stored inline.
	SSOShort SSOKind = iota

	// SSOLong means the payload lives in an owned allocation.
	SSOLong

	// SSOInvalid means the SSO holds no payload.
	SSOInvalid
)

var ssoKindNames = [...]string{
	SSOShort:   "short",
	SSOLong:    "long",
	SSOInvalid: "invalid",
}

func (k SSOKind) String() string {
	if int(k) < len(ssoKindNames) {
		return ssoKindNames[k]
	}
	return fmt.Sprintf("SSOKind(%d)", k)
}

// SSO is a small-string-optimized string: payloads of up to ShortMax bytes
// are kept inline in a Short, longer ones in an owned String.
//
// The kind is never stored. It is derived from the two halves, inline first:
// the SSO is Short when the inline half is valid, Long when only the owned
// half is valid, and Invalid when neither is. Every constructor keeps at most
// one half valid, so the three kinds are mutually exclusive.
//
// The zero value is a valid empty Short SSO. A Long SSO owns its allocation
// and must be destroyed; Destroy on a Short or Invalid SSO is a no-op.
type SSO struct {
	short Short
	long  String
}

func invalidSSO() SSO {
	return SSO{short: invalidShort()}
}

func ssoFromLong(s String) SSO {
	return SSO{short: invalidShort(), long: s}
}

// NewSSO copies p, inline when it is at most ShortMax bytes long and into an
// owned allocation otherwise. It fails with ErrNilBytes when p is nil.
func NewSSO(p []byte) (SSO, error) {
	if p == nil {
		return invalidSSO(), ErrNilBytes
	}
	if len(p) <= ShortMax {
		var s SSO
		s.short.set(p)
		return s, nil
	}
	long, err := newStringUnchecked(p, allocator())
	if err != nil {
		return invalidSSO(), err
	}
	return ssoFromLong(long), nil
}

// SSOFromChars copies the bytes of s.
func SSOFromChars(s string) (SSO, error) { return NewSSO(strtob(s)) }

// SSOFromCString copies the bytes of p up to the first NUL.
func SSOFromCString(p []byte) (SSO, error) {
	sp, err := SpanFromCString(p)
	if err != nil {
		return invalidSSO(), err
	}
	return SSOFromSpan(sp)
}

// SSOFromSpan copies the bytes viewed by sp.
func SSOFromSpan(sp Span) (SSO, error) {
	if !sp.IsValid() {
		return invalidSSO(), ErrInvalid
	}
	return NewSSO(sp.b)
}

// SSOFromString copies the payload of s; s keeps its allocation. Use
// (*String).MoveToSSO to transfer the allocation instead.
func SSOFromString(s String) (SSO, error) {
	if !s.IsValid() {
		return invalidSSO(), ErrInvalid
	}
	return NewSSO(s.b)
}

// SSOFromShort wraps a valid Short without copying it into the heap.
func SSOFromShort(s Short) (SSO, error) {
	if !s.IsValid() {
		return invalidSSO(), ErrInvalid
	}
	return SSO{short: s}, nil
}

// Kind classifies s by testing the inline half first and the owned half
// second.
func (s SSO) Kind() SSOKind {
	switch {
	case s.short.IsValid():
		return SSOShort
	case s.long.IsValid():
		return SSOLong
	default:
		return SSOInvalid
	}
}

// IsValid reports whether s holds a payload of either kind.
func (s SSO) IsValid() bool { return s.Kind() != SSOInvalid }

// Len returns the payload length; 0 for an invalid SSO.
func (s SSO) Len() int {
	switch s.Kind() {
	case SSOShort:
		return s.short.Len()
	case SSOLong:
		return s.long.Len()
	default:
		return 0
	}
}

// Bytes returns the inline bytes of a Short SSO, the owned bytes of a Long
// one, and nil for an invalid one. For a Short SSO the result aliases s.
func (s *SSO) Bytes() []byte {
	switch s.Kind() {
	case SSOShort:
		return s.short.Bytes()
	case SSOLong:
		return s.long.Bytes()
	default:
		return nil
	}
}

// CBytes is Bytes followed by the NUL terminator.
func (s *SSO) CBytes() []byte {
	switch s.Kind() {
	case SSOShort:
		return s.short.CBytes()
	case SSOLong:
		return s.long.CBytes()
	default:
		return nil
	}
}

// Span returns a view of the payload. For a Short SSO the view aliases s.
func (s *SSO) Span() Span { return Span{b: s.Bytes()} }

// String returns a copy of the payload as a Go string.
func (s SSO) String() string { return string(s.Bytes()) }

// Equal reports whether both values are valid and hold identical bytes,
// regardless of kind.
func (s SSO) Equal(o SSO) bool {
	a, b := s.Bytes(), o.Bytes()
	return len(a) == len(b) &&
		a != nil && b != nil &&
		bytesEqual(a, b)
}

// Clone returns an independent copy of s with the same kind.
func (s SSO) Clone() (SSO, error) {
	switch s.Kind() {
	case SSOShort:
		return s, nil
	case SSOLong:
		long, err := s.long.Clone()
		if err != nil {
			return invalidSSO(), err
		}
		return ssoFromLong(long), nil
	default:
		return invalidSSO(), ErrInvalid
	}
}

// Invalidate marks both halves invalid without releasing anything.
func (s *SSO) Invalidate() {
	s.short.Invalidate()
	s.long.Invalidate()
}

// Move returns s and leaves s invalid.
func (s *SSO) Move() SSO {
	m := *s
	s.Invalidate()
	return m
}

// Destroy releases the allocation of a Long SSO and invalidates s.
func (s *SSO) Destroy() {
	if s.Kind() == SSOLong {
		s.long.Destroy()
	}
	s.Invalidate()
}

// MoveToString transfers s into a String and leaves s invalid. A Long SSO
// hands over its allocation; a Short one is copied into a new allocation. On
// failure s is left untouched.
func (s *SSO) MoveToString() (String, error) {
	switch s.Kind() {
	case SSOLong:
		return s.Move().long, nil
	case SSOShort:
		out, err := newStringUnchecked(s.short.Bytes(), allocator())
		if err != nil {
			return String{}, err
		}
		s.Invalidate()
		return out, nil
	default:
		return String{}, ErrInvalid
	}
}
