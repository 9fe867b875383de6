package pool

import (
	"sync"
	"sync/atomic"
)

// The process-wide pool is an explicit service with defined init and
// teardown rather than ambient mutable state: Shared lazily constructs one
// default instance, InitShared replaces it with a configured one, and
// CloseShared tears it down. The Shared* functions below are a thin façade
// over that single instance for call sites that cannot carry a Pool
// reference.
var (
	sharedMu sync.Mutex
	shared   atomic.Pointer[Pool]
)

// Shared returns the process-wide pool, constructing a default one on first
// use.
func Shared() *Pool {
	if p := shared.Load(); p != nil {
		return p
	}
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if p := shared.Load(); p != nil {
		return p
	}
	p := New()
	shared.Store(p)
	return p
}

// InitShared installs a freshly configured process-wide pool, closing any
// previous one. Intended for program startup, before the façade functions
// are in use.
func InitShared(opts ...Option) *Pool {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if old := shared.Load(); old != nil {
		old.Close()
	}
	p := New(opts...)
	shared.Store(p)
	return p
}

// CloseShared tears down the process-wide pool. In-flight releases against
// the old instance degrade to no-ops; a subsequent Shared call constructs a
// new pool.
func CloseShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if old := shared.Load(); old != nil {
		old.Close()
		shared.Store(nil)
	}
}

// SharedGet borrows an instance of T from the process-wide pool.
func SharedGet[T any]() *T { return Get[T](Shared()) }

// SharedPut returns item to the process-wide pool WITHOUT running any reset
// action.
//
// This is the legacy direct-return path: long-standing callers return
// pre-cleaned instances and rely on nothing else touching them, so its
// default must stay reset-free. SharedReturn is the newer path and resets by
// default. The conflicting defaults are intentional back-compat behavior; do
// not unify them.
func SharedPut[T any](item *T) { Return(Shared(), item, true) }

// SharedReturn returns item to the process-wide pool, running the resolved
// reset action unless skipReset is set. Note the deliberate asymmetry with
// SharedPut, which never resets.
func SharedReturn[T any](item *T, skipReset bool) { Return(Shared(), item, skipReset) }

// SharedRent borrows from the process-wide pool wrapped in a release-once
// handle.
func SharedRent[T any](opts ...RentOption[T]) Rented[T] { return Rent(Shared(), opts...) }

// SharedGetSlice borrows a []T of exactly length elements from the
// process-wide pool.
func SharedGetSlice[T any](length int) []T { return GetSlice[T](Shared(), length) }

// SharedPutSlice returns s to the process-wide pool with its contents
// intact. Legacy path; see SharedPut for why it never clears.
func SharedPutSlice[T any](s []T) { ReturnSlice(Shared(), s, true) }

// SharedReturnSlice returns s to the process-wide pool, zeroing it unless
// preserve is set.
func SharedReturnSlice[T any](s []T, preserve bool) { ReturnSlice(Shared(), s, preserve) }

// SharedRentSlice borrows a slice from the process-wide pool wrapped in a
// release-once handle.
func SharedRentSlice[T any](length int, preserve bool) RentedSlice[T] {
	return RentSlice[T](Shared(), length, preserve)
}
