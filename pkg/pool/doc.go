// Package pool implements a typed object and slice pooling system that lets
// performance-sensitive code borrow mutable containers instead of allocating
// fresh ones, while making ownership bugs (double-return, use-after-return)
// structurally detectable.
//
// # Architecture
//
// A Pool owns one bucket per concrete type, plus one bucket per
// (element type, exact length) pair for slices. A bucket is an arena of slots
// with a free-list of available indices; an identity index over the arena is
// what makes returning the same instance twice a detectable event instead of
// a silent duplicate.
//
// Core Types:
//
//   - Pool: independently instantiable owner of all bucket state
//   - Rented[T] / RentedSlice[T]: scoped ownership handles (preferred API)
//   - BufferPool: size-classed byte buffers layered over the slice pool
//
// # Borrowing
//
// The direct API mirrors sync.Pool:
//
//	p := pool.New()
//	buf := pool.Get[bytes.Buffer](p)
//	buf.WriteString("hello")
//	pool.Return(p, buf, false) // reset before it re-enters the pool
//
// The preferred API wraps the borrow in a handle that returns the instance
// exactly once when released:
//
//	r := pool.Rent[bytes.Buffer](p)
//	defer r.Release()
//	r.Value().WriteString("hello")
//
// Slices are keyed by exact length; a pooled []int of length 5 is never
// handed out for a request of length 6:
//
//	rs := pool.RentSlice[int](p, 5, false)
//	defer rs.Release()
//	rs.Slice()[0] = 10
//
// # Reset resolution
//
// Before an instance re-enters its bucket the pool resolves, once per
// concrete type, how to reset it to an empty state: types implementing
// Resetter opt in at compile time; unowned types are probed once by
// reflection for a conventional niladic Reset or Clear method; types with
// neither are pooled as-is. A panicking reset implementation is swallowed so
// one buggy type cannot corrupt the pool's bookkeeping.
//
// # Checked mode
//
// With checks enabled (the poolcheck build tag, or WithChecks), every rented
// instance is tracked under a monotonically increasing version. Releasing a
// stale handle for an instance that has since been re-borrowed fails loudly
// as use-after-return, distinct from a plain double-return. In normal builds
// both conditions are tolerated silently and only surface in Stats.
//
// # Shared pool
//
// A lazily constructed process-wide Pool is exposed through the Shared*
// functions for call sites that cannot carry a Pool reference. Note the
// intentional asymmetry between SharedPut (never resets) and SharedReturn
// (resets by default); see static.go.
package pool
