package bytestr

import "unsafe"

// memmove is the runtime's overlap-safe copy.
//
//go:linkname memmove runtime.memmove
//go:noescape
func memmove(to, from unsafe.Pointer, n uintptr)

// moveBytes copies len(src) bytes into dst, which must be at least as long.
// The ranges may overlap.
func moveBytes(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	memmove(unsafe.Pointer(unsafe.SliceData(dst)), unsafe.Pointer(unsafe.SliceData(src)), uintptr(len(src)))
}

// strtob returns a read-only view of s without copying. Empty input yields a
// valid, non-nil zero-length view.
func strtob(s string) []byte {
	if len(s) == 0 {
		return emptyView()
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// btostr returns a string sharing b's memory (safe as long as b isn't
// mutated afterwards).
func btostr(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// offsetIn reports the offset of p's first byte within mem's backing array,
// and whether p starts inside it at all.
func offsetIn(p, mem []byte) (int, bool) {
	if len(p) == 0 || cap(mem) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	if ptr < base || ptr >= base+uintptr(cap(mem)) {
		return 0, false
	}
	return int(ptr - base), true
}
