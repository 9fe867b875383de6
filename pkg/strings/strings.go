// Package strings provides zero-copy string utilities with pooled builders
// for repool's hot paths.
package strings

import (
	"fmt"
	"unsafe"

	"github.com/repool/repool/pkg/pool"
)

// BytesToString converts a byte slice to a string without allocation.
// WARNING: The returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes converts a string to a byte slice without allocation.
// WARNING: The returned byte slice shares memory with the string.
// Do not modify the returned slice.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Clone creates a copy of a string, for when the caller must own the memory.
func Clone(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, len(s))
	copy(b, StringToBytes(s))
	return BytesToString(b)
}

// Builder accumulates bytes and produces strings with zero-copy conversion.
// It implements Reset, so instances rented from a pool are emptied
// automatically on return while keeping their grown capacity.
type Builder struct {
	buf []byte
}

// NewBuilder creates a builder with the given initial capacity.
func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, StringToBytes(s)...)
}

// WriteBytes appends bytes to the builder.
func (b *Builder) WriteBytes(data []byte) {
	b.buf = append(b.buf, data...)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns the built string using zero-copy conversion. The result is
// only valid until the builder is reset or reused; Clone it to keep it.
func (b *Builder) String() string {
	return BytesToString(b.buf)
}

// Len returns the length of the built string.
func (b *Builder) Len() int { return len(b.buf) }

// Reset empties the builder, keeping capacity.
func (b *Builder) Reset() { b.buf = b.buf[:0] }

// Sprintf formats into a pooled builder and returns an owned string. The
// builders live in the process-wide pool, so repeated formatting reuses the
// same grown buffers.
func Sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	r := pool.SharedRent[Builder]()
	defer r.Release()

	fmt.Fprintf(r.Value(), format, args...)
	return Clone(r.Value().String())
}
