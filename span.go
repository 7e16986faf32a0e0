package bytestr

// Span is a non-owning view of bytes that belong to someone else.
//
// A Span is valid when it refers to an array, even an empty range of one;
// the zero value is invalid. The referenced bytes may change underneath a
// Span but the Span itself never does. Spans are read-only by contract:
// callers must not write through Bytes.
type Span struct {
	b []byte
}

// NewSpan returns a view of p. It fails only when p is nil; a non-nil empty
// slice yields a valid empty span.
func NewSpan(p []byte) (Span, error) {
	if p == nil {
		return Span{}, ErrNilBytes
	}
	return Span{b: p}, nil
}

// SpanFromChars returns a view of the bytes of s without copying.
func SpanFromChars(s string) Span { return Span{b: strtob(s)} }

// SpanFromCString returns a view of the bytes of p up to, but excluding, the
// first NUL.
func SpanFromCString(p []byte) (Span, error) {
	n, err := cstrLen(p)
	if err != nil {
		return Span{}, err
	}
	return Span{b: p[:n:n]}, nil
}

// IsValid reports whether sp refers to any bytes at all.
func (sp Span) IsValid() bool { return sp.b != nil }

// Len returns the number of bytes in the view; 0 for an invalid span.
func (sp Span) Len() int { return len(sp.b) }

// Bytes returns the viewed bytes, or nil for an invalid span.
func (sp Span) Bytes() []byte { return sp.b }

// String returns a copy of the viewed bytes as a Go string.
func (sp Span) String() string { return string(sp.b) }

// Invalidate turns sp into the invalid span.
func (sp *Span) Invalidate() { sp.b = nil }

// Equal reports whether both spans are valid and view identical bytes.
func (sp Span) Equal(o Span) bool {
	return len(sp.b) == len(o.b) &&
		sp.IsValid() && o.IsValid() &&
		bytesEqual(sp.b, o.b)
}

// Subspan returns the view of length bytes starting at start.
//
// Subspan fails with ErrInvalid for an invalid span and with ErrOutOfRange
// when the range does not lie inside sp. The check never forms start+length,
// so it cannot overflow.
func (sp Span) Subspan(start, length int) (Span, error) {
	if !sp.IsValid() {
		return Span{}, ErrInvalid
	}
	n := len(sp.b)
	if start < 0 || length < 0 ||
		start > n ||
		length > n ||
		start > n-length {
		return Span{}, ErrOutOfRange
	}
	return Span{b: sp.b[start : start+length : start+length]}, nil
}

// Substr returns an owned copy of the range Subspan would view.
func (sp Span) Substr(start, length int) (String, error) {
	sub, err := sp.Subspan(start, length)
	if err != nil {
		return String{}, err
	}
	return StringFromSpan(sub)
}
