// Package repool provides a typed object and slice pooling system with
// identity-aware buckets, automatic state reset, and optional corruption
// checking for debugging pool misuse.
//
// Unlike sync.Pool, repool tracks the identity of every pooled instance,
// which lets it detect double returns structurally, key slice buckets by
// exact length, and (in checked mode) catch use-after-return through stale
// rent guards.
//
// # Architecture
//
// The system is layered:
//
// 1. Buckets: per-type (and per-length, for slices) arenas with a free list
// and an identity index. A bucket rejects a return of an instance it already
// holds.
//
// 2. Reset resolution: returned items are restored to a blank state before
// reuse. Types implement the Resetter interface for the fast path; a
// reflective probe finds niladic Reset or Clear methods otherwise, with the
// decision cached per type.
//
// 3. Rent guards: Rent and RentSlice pair the borrow with a Release handle
// that returns exactly once. In checked mode every outstanding loan carries
// a version that stale guard copies fail to match.
//
// 4. Shared pool: a lazily created process-wide pool behind the Shared*
// functions, with explicit InitShared and CloseShared lifecycle control.
//
// # Quick Start
//
//	import "github.com/repool/repool/pkg/pool"
//
//	type Record struct{ Fields map[string]string }
//
//	func (r *Record) Reset() { clear(r.Fields) }
//
//	p := pool.New()
//	defer p.Close()
//
//	rented := pool.Rent[Record](p)
//	rec := rented.Value()
//	// ... use rec ...
//	rented.Release()
//
// # Key Packages
//
//	pkg/pool     - Core pooling: buckets, reset resolution, rent guards,
//	               checked mode, shared pool, size-classed byte buffers
//	pkg/strings  - Zero-copy string conversions, pooled Builder, interning
//	pkg/json     - JSON codec with pooled encode staging
//	pkg/errors   - Structured error handling with stack capture
//	pkg/logger   - Structured logging built on zap
//	pkg/metrics  - Prometheus export of pool statistics
//	pkg/config   - Configuration loading and validation
//
// # Checked Mode
//
// Build with the poolcheck tag (or call SetChecks / pool.WithChecks) to
// enable the live object tracker. In checked mode double returns,
// use-after-return through stale guards, and re-registrations are reported
// through the corruption handler, which panics by default. Corruption
// counters advance even when checks are off, so production statistics still
// surface misuse.
package repool
