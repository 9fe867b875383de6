package pool

import (
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Pool owns the reusable-instance storage for any number of concrete types.
// Item buckets are keyed by type; slice buckets are keyed by element type and
// exact length. Each bucket carries its own lock, so contention is scoped to
// same-type (and same-length) traffic only.
//
// A Pool is safe for concurrent use. The zero value is not usable; construct
// with New.
type Pool struct {
	mu     sync.RWMutex
	items  map[reflect.Type]*bucket
	slices map[reflect.Type]map[int]*bucket

	// resets caches the per-type reset decision for the life of the pool.
	resets sync.Map // reflect.Type -> *resetAction

	// live tracks currently rented instances in checked mode.
	live    sync.Map // identity -> int64 version
	version atomic.Int64

	closed atomic.Bool
	checks atomic.Bool

	onCorruption atomic.Pointer[CorruptionHandler]

	log *zap.Logger

	counters struct {
		allocated       atomic.Int64
		reused          atomic.Int64
		returned        atomic.Int64
		doubleReturns   atomic.Int64
		useAfterReturns atomic.Int64
		reRegistrations atomic.Int64
		resetFailures   atomic.Int64
	}
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithLogger attaches a structured logger used for corruption reports in
// checked mode. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// WithChecks overrides the build-tag default for ownership checking on this
// pool. See SetChecks.
func WithChecks(enabled bool) Option {
	return func(p *Pool) { p.checks.Store(enabled) }
}

// WithCorruptionHandler installs a handler invoked instead of panicking when
// checked mode detects a double-return or use-after-return.
func WithCorruptionHandler(h CorruptionHandler) Option {
	return func(p *Pool) { p.onCorruption.Store(&h) }
}

// New creates an empty pool. Callers that want isolation from the shared
// pool (separate buckets, separate statistics) construct their own.
func New(opts ...Option) *Pool {
	p := &Pool{
		items:  make(map[reflect.Type]*bucket),
		slices: make(map[reflect.Type]map[int]*bucket),
		log:    zap.NewNop(),
	}
	p.checks.Store(checksDefault)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close tears the pool down. It is idempotent, and every operation on a
// closed pool degrades to a safe no-op: borrows construct fresh instances
// without touching internal state, returns are swallowed. Teardown commonly
// races with in-flight guard releases, so none of this may crash.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	p.mu.Lock()
	p.items = make(map[reflect.Type]*bucket)
	p.slices = make(map[reflect.Type]map[int]*bucket)
	p.mu.Unlock()
	p.live.Range(func(k, _ any) bool {
		p.live.Delete(k)
		return true
	})
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool { return p.closed.Load() }

// itemBucket returns the bucket for t, creating it on first use.
// Returns nil once the pool is closed.
func (p *Pool) itemBucket(t reflect.Type) *bucket {
	if p.closed.Load() {
		return nil
	}
	p.mu.RLock()
	b := p.items[t]
	p.mu.RUnlock()
	if b != nil {
		return b
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		return nil
	}
	if b = p.items[t]; b == nil {
		b = newBucket()
		p.items[t] = b
	}
	return b
}

// sliceBucket returns the bucket for slices of element type t with exactly
// length elements. Lengths are never interchangeable.
func (p *Pool) sliceBucket(t reflect.Type, length int) *bucket {
	if p.closed.Load() {
		return nil
	}
	p.mu.RLock()
	byLen := p.slices[t]
	b := byLen[length]
	p.mu.RUnlock()
	if b != nil {
		return b
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		return nil
	}
	byLen = p.slices[t]
	if byLen == nil {
		byLen = make(map[int]*bucket)
		p.slices[t] = byLen
	}
	if b = byLen[length]; b == nil {
		b = newBucket()
		byLen[length] = b
	}
	return b
}
