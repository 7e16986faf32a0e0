package bytestr

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// LoadBuffer memory-maps the file at path and copies its contents into a new
// Buffer allocated from the configured Allocator. The mapping is released
// before LoadBuffer returns, so the Buffer does not depend on the file.
//
// An empty file yields a valid, empty Buffer of minimum capacity.
func LoadBuffer(path string) (Buffer, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer r.Close()

	size := r.Len()
	b, err := NewBuffer(max(minBufferCap, size))
	if err != nil {
		return Buffer{}, err
	}
	if size > 0 {
		if _, err := r.ReadAt(b.mem[:size], 0); err != nil {
			b.Destroy()
			return Buffer{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	b.n = size
	return b, nil
}

// LoadString reads the file at path into a String. The String takes over the
// allocation LoadBuffer made, so the file contents are copied exactly once.
func LoadString(path string) (String, error) {
	b, err := LoadBuffer(path)
	if err != nil {
		return String{}, err
	}
	s, err := b.Finalize()
	if err != nil {
		b.Destroy()
		return String{}, err
	}
	return s, nil
}

// LoadSSO reads the file at path into an SSO, inline when the contents fit.
func LoadSSO(path string) (SSO, error) {
	b, err := LoadBuffer(path)
	if err != nil {
		return invalidSSO(), err
	}
	s, err := b.FinalizeSSO()
	if err != nil {
		b.Destroy()
		return invalidSSO(), err
	}
	return s, nil
}
