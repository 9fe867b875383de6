package pool

import "reflect"

// Resetter is the compile-time opt-in for auto-reset: a pooled type that
// implements it has Reset called before each return to the pool, restoring
// the instance to its empty state. Absence of the interface is not an error;
// it simply disables auto-reset for that type.
type Resetter interface {
	Reset()
}

// resetAction is the cached per-type decision. A nil fn means the type has
// no reset operation and is pooled as-is.
type resetAction struct {
	fn func(any)
}

var noReset = &resetAction{}

// resetItem runs the resolved reset action for item's type, if any. A panic
// inside a reset implementation is swallowed here so a buggy Reset cannot
// corrupt the pool's own bookkeeping; it surfaces only as a counter.
func (p *Pool) resetItem(t reflect.Type, item any) {
	act := p.resolveReset(t, item)
	if act == nil {
		return
	}
	p.runReset(func() { act(item) })
}

// runReset invokes fn with panic containment, counting failures.
func (p *Pool) runReset(fn func()) {
	defer func() {
		if recover() != nil {
			p.counters.resetFailures.Add(1)
		}
	}()
	fn()
}

// resolveReset returns the cached reset action for t, probing on first use.
// The decision is made once per concrete type and reused for the life of the
// pool.
func (p *Pool) resolveReset(t reflect.Type, item any) func(any) {
	if cached, ok := p.resets.Load(t); ok {
		return cached.(*resetAction).fn
	}
	act, _ := p.resets.LoadOrStore(t, buildReset(item))
	return act.(*resetAction).fn
}

// buildReset probes item's concrete type for a reset capability. The
// Resetter assertion covers owned types; the reflective probe covers
// heterogeneous or unowned types that expose a conventional public niladic
// Reset or Clear method without implementing the interface explicitly.
func buildReset(item any) *resetAction {
	if _, ok := item.(Resetter); ok {
		return &resetAction{fn: func(v any) { v.(Resetter).Reset() }}
	}
	t := reflect.TypeOf(item)
	for _, name := range [...]string{"Reset", "Clear"} {
		m, ok := t.MethodByName(name)
		if !ok {
			continue
		}
		// Receiver only, nothing returned.
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 0 {
			continue
		}
		idx := m.Index
		return &resetAction{fn: func(v any) {
			reflect.ValueOf(v).Method(idx).Call(nil)
		}}
	}
	return noReset
}
