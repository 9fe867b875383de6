package pool

// Stats is a point-in-time snapshot of a pool's counters. Corruption
// counters advance in every build, so a test harness can observe
// double-return and use-after-return even when checked mode is off.
type Stats struct {
	// Allocated is the number of instances constructed because no pooled
	// one was available.
	Allocated int64
	// Reused is the number of borrows served from a bucket.
	Reused int64
	// Returned is the number of returns accepted into a bucket.
	Returned int64
	// Live is the number of outstanding borrows.
	Live int64
	// DoubleReturns counts rejected duplicate returns.
	DoubleReturns int64
	// UseAfterReturns counts stale-handle releases detected in checked mode.
	UseAfterReturns int64
	// ReRegistrations counts pool-internal tracker collisions.
	ReRegistrations int64
	// ResetFailures counts reset actions that panicked and were contained.
	ResetFailures int64
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	allocated := p.counters.allocated.Load()
	reused := p.counters.reused.Load()
	returned := p.counters.returned.Load()
	return Stats{
		Allocated:       allocated,
		Reused:          reused,
		Returned:        returned,
		Live:            allocated + reused - returned,
		DoubleReturns:   p.counters.doubleReturns.Load(),
		UseAfterReturns: p.counters.useAfterReturns.Load(),
		ReRegistrations: p.counters.reRegistrations.Load(),
		ResetFailures:   p.counters.resetFailures.Load(),
	}
}
