package pool

import "reflect"

// Get borrows an instance of T from p, reusing a previously returned one
// when the bucket for T is non-empty and constructing a zero-valued instance
// otherwise. Get never fails; a closed pool always constructs fresh.
//
// Go methods cannot carry their own type parameters, so the generic
// operations are package functions taking the pool as first argument.
func Get[T any](p *Pool) *T {
	if b := p.itemBucket(reflect.TypeFor[T]()); b != nil {
		if item, ok := b.take(); ok {
			p.counters.reused.Add(1)
			return item.(*T)
		}
	}
	p.counters.allocated.Add(1)
	return new(T)
}

// Return hands item back to p, making it available for future Get calls.
// Unless skipReset is set, the resolved reset action for T runs first (see
// Resetter). Returning the same instance twice without an intervening borrow
// is a double-return: in checked mode it fails loudly, otherwise the
// duplicate is dropped and counted in Stats.
//
// Returning to a closed pool is a safe no-op.
func Return[T any](p *Pool, item *T, skipReset bool) {
	if item == nil || p.closed.Load() {
		return
	}
	t := reflect.TypeFor[T]()
	if !skipReset {
		p.resetItem(t, item)
	}
	b := p.itemBucket(t)
	if b == nil {
		return
	}
	if !b.put(item, item) {
		p.reportCorruption(&CorruptionError{Kind: DoubleReturn, Type: t, Length: -1})
		return
	}
	p.counters.returned.Add(1)
}

// RentOption configures a single Rent call.
type RentOption[T any] func(*Rented[T])

// WithReset attaches an explicit reset action to the handle, invoked at
// release before the instance re-enters the pool. It is additive: the
// type-resolved auto-reset still runs unless PreserveState is also given.
func WithReset[T any](fn func(*T)) RentOption[T] {
	return func(r *Rented[T]) { r.reset = fn }
}

// PreserveState skips the auto-reset at release, so the instance re-enters
// the pool with its contents intact.
func PreserveState[T any]() RentOption[T] {
	return func(r *Rented[T]) { r.skipReset = true }
}

// Rented is a scoped ownership handle for a borrowed instance. Its release
// returns the instance to the pool exactly once. The handle carries a
// single-owner contract: it is not safe for concurrent use and must not be
// copied across goroutines. In checked mode the pool catches a stale copy
// being released after the instance was re-borrowed elsewhere.
type Rented[T any] struct {
	pool      *Pool
	item      *T
	reset     func(*T)
	skipReset bool
	version   int64
}

// Rent borrows an instance of T wrapped in a release-once handle. This is
// the preferred API: pairing the borrow with a deferred Release removes the
// most common leak and double-return mistakes of the direct Get/Return pair.
//
//	r := pool.Rent[bytes.Buffer](p)
//	defer r.Release()
//	use(r.Value())
func Rent[T any](p *Pool, opts ...RentOption[T]) Rented[T] {
	r := Rented[T]{pool: p, item: Get[T](p)}
	for _, opt := range opts {
		opt(&r)
	}
	if p.checksOn() {
		r.version = p.register(r.item, reflect.TypeFor[T](), -1)
	}
	return r
}

// Value returns the borrowed instance. It must not be used after Release;
// a released handle yields nil.
func (r *Rented[T]) Value() *T { return r.item }

// Release returns the instance to the pool. The handle neuters itself, so
// calling Release twice on the same handle is a no-op; releasing a stale
// copy of the handle is the hazard checked mode exists to catch.
func (r *Rented[T]) Release() {
	item := r.item
	if item == nil {
		return
	}
	r.item = nil
	p := r.pool
	if p.checksOn() && !p.confirmRelease(item, r.version, reflect.TypeFor[T](), -1) {
		// The instance has been re-borrowed by someone else; it is not
		// ours to return.
		return
	}
	if r.reset != nil {
		p.runReset(func() { r.reset(item) })
	}
	Return(p, item, r.skipReset)
}
