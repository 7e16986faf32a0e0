package bytestr

import (
	farm "github.com/dgryski/go-farm"
)

// Hash64 returns the 64-bit FarmHash of the viewed bytes, or 0 for an invalid
// span.
//
// The value is stable for identical bytes regardless of which type holds
// them, so a Span, String, Short, SSO or Buffer with equal payloads hash
// alike. It is meant for in-memory tables and must not be persisted.
func (sp Span) Hash64() uint64 {
	if !sp.IsValid() {
		return 0
	}
	return farm.Hash64(sp.b)
}

// Hash64 returns the FarmHash of s's payload; see Span.Hash64.
func (s String) Hash64() uint64 { return s.Span().Hash64() }

// Hash64 returns the FarmHash of s's payload; see Span.Hash64.
func (s Short) Hash64() uint64 { return s.Span().Hash64() }

// Hash64 returns the FarmHash of s's payload; see Span.Hash64.
func (s SSO) Hash64() uint64 { return s.Span().Hash64() }

// Hash64 returns the FarmHash of the bytes in use; see Span.Hash64.
func (b Buffer) Hash64() uint64 { return b.Span().Hash64() }

// fingerprint is the key the Interner files byte sequences under.
func fingerprint(p []byte) uint64 { return farm.Fingerprint64(p) }
