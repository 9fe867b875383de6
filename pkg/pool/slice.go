package pool

import (
	"reflect"
	"unsafe"
)

// GetSlice borrows a []T of exactly length elements, constructing a fresh
// zeroed slice when none is pooled. Slices of different lengths are never
// interchangeable: a request for length 5 is served only from the length-5
// bucket.
//
// Lengths <= 0 degrade to plain allocation; empty slices share a runtime
// backing pointer and have no usable identity to pool under.
func GetSlice[T any](p *Pool, length int) []T {
	if length <= 0 {
		return make([]T, 0)
	}
	if b := p.sliceBucket(reflect.TypeFor[T](), length); b != nil {
		if item, ok := b.take(); ok {
			p.counters.reused.Add(1)
			return item.([]T)
		}
	}
	p.counters.allocated.Add(1)
	return make([]T, length)
}

// ReturnSlice hands s back to p. Unless preserve is set, every element is
// zeroed first; slice clearing is uniform and needs no per-type resolution.
// Double-return detection matches the item path. Returning to a closed pool
// is a safe no-op.
func ReturnSlice[T any](p *Pool, s []T, preserve bool) {
	if len(s) == 0 || p.closed.Load() {
		return
	}
	if !preserve {
		clear(s)
	}
	t := reflect.TypeFor[T]()
	b := p.sliceBucket(t, len(s))
	if b == nil {
		return
	}
	if !b.put(unsafe.SliceData(s), s) {
		p.reportCorruption(&CorruptionError{Kind: DoubleReturn, Type: t, Length: len(s)})
		return
	}
	p.counters.returned.Add(1)
}

// RentedSlice is the scoped ownership handle for a borrowed slice. Same
// single-owner contract as Rented.
type RentedSlice[T any] struct {
	pool     *Pool
	s        []T
	preserve bool
	version  int64
}

// RentSlice borrows a []T of exactly length elements wrapped in a
// release-once handle. When preserve is set the slice re-enters the pool
// with its contents intact instead of being zeroed.
func RentSlice[T any](p *Pool, length int, preserve bool) RentedSlice[T] {
	r := RentedSlice[T]{pool: p, s: GetSlice[T](p, length), preserve: preserve}
	if length > 0 && p.checksOn() {
		r.version = p.register(unsafe.SliceData(r.s), reflect.TypeFor[T](), length)
	}
	return r
}

// Slice returns the borrowed slice. It must not be used after Release; a
// released handle yields nil.
func (r *RentedSlice[T]) Slice() []T { return r.s }

// Release returns the slice to the pool exactly once.
func (r *RentedSlice[T]) Release() {
	s := r.s
	if s == nil {
		return
	}
	r.s = nil
	if len(s) == 0 {
		return
	}
	p := r.pool
	if p.checksOn() && !p.confirmRelease(unsafe.SliceData(s), r.version, reflect.TypeFor[T](), len(s)) {
		return
	}
	ReturnSlice(p, s, r.preserve)
}
