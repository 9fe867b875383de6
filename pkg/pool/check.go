package pool

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// CorruptionKind classifies an ownership violation detected by the pool.
type CorruptionKind int

const (
	// DoubleReturn: the same instance was returned twice without an
	// intervening borrow.
	DoubleReturn CorruptionKind = iota
	// UseAfterReturn: a stale handle was released for an instance that has
	// since been re-borrowed and is owned by someone else.
	UseAfterReturn
	// ReRegistration: a freshly borrowed instance was unexpectedly already
	// tracked as live. This indicates pool-internal corruption, not a
	// caller mistake.
	ReRegistration
)

func (k CorruptionKind) String() string {
	switch k {
	case DoubleReturn:
		return "double-return"
	case UseAfterReturn:
		return "use-after-return"
	case ReRegistration:
		return "re-registration"
	default:
		return fmt.Sprintf("corruption(%d)", int(k))
	}
}

// CorruptionError describes a detected ownership violation. In checked mode
// the default behavior is to panic with this error; a CorruptionHandler can
// intercept it instead.
type CorruptionError struct {
	Kind CorruptionKind
	// Type is the pooled type (the element type for slices).
	Type reflect.Type
	// Length is the slice length for slice pooling, -1 for item pooling.
	Length int
	// Version is what the live tracker holds; Expected is what the
	// releasing handle was issued. They differ only for use-after-return.
	Version  int64
	Expected int64
}

func (e *CorruptionError) Error() string {
	if e.Kind == UseAfterReturn {
		return fmt.Sprintf("pool: %s of %s (held version %d, releasing version %d)",
			e.Kind, e.typeName(), e.Version, e.Expected)
	}
	return fmt.Sprintf("pool: %s of %s", e.Kind, e.typeName())
}

func (e *CorruptionError) typeName() string {
	name := "<unknown>"
	if e.Type != nil {
		name = e.Type.String()
	}
	if e.Length >= 0 {
		return fmt.Sprintf("[]%s len %d", name, e.Length)
	}
	return name
}

// CorruptionHandler receives corruption reports in checked mode in place of
// the default panic. Handlers must be safe for concurrent use.
type CorruptionHandler func(*CorruptionError)

// SetChecks toggles ownership checking at runtime. The initial value comes
// from the poolcheck build tag (see WithChecks for per-pool construction).
func (p *Pool) SetChecks(enabled bool) { p.checks.Store(enabled) }

// ChecksEnabled reports whether ownership checking is active.
func (p *Pool) ChecksEnabled() bool { return p.checksOn() }

func (p *Pool) checksOn() bool { return p.checks.Load() }

// SetCorruptionHandler replaces the handler invoked on detected corruption
// in checked mode. Passing nil restores the default panic.
func (p *Pool) SetCorruptionHandler(h CorruptionHandler) {
	p.onCorruption.Store(&h)
}

// reportCorruption counts the event unconditionally and, in checked mode,
// escalates it. Outside checked mode corruption is tolerated silently: the
// duplicate insert has already been dropped, so the pool stays consistent
// and only Stats betrays that anything happened.
func (p *Pool) reportCorruption(err *CorruptionError) {
	switch err.Kind {
	case DoubleReturn:
		p.counters.doubleReturns.Add(1)
	case UseAfterReturn:
		p.counters.useAfterReturns.Add(1)
	case ReRegistration:
		p.counters.reRegistrations.Add(1)
	}
	if !p.checksOn() {
		return
	}
	if h := p.onCorruption.Load(); h != nil && *h != nil {
		(*h)(err)
		return
	}
	p.log.Error("pool corruption detected",
		zap.String("kind", err.Kind.String()),
		zap.String("type", err.typeName()),
	)
	panic(err)
}

// issueVersion returns the next guard version. Zero is the reserved "no
// version" sentinel and is skipped on wraparound.
func (p *Pool) issueVersion() int64 {
	v := p.version.Add(1)
	if v == 0 {
		v = p.version.Add(1)
	}
	return v
}

// register records key as live under a fresh version. A key that is already
// tracked means two outstanding handles would exist for one instance, which
// can only come from pool-internal corruption; it is reported distinctly
// from double-return and the entry is overwritten so the newest handle wins.
func (p *Pool) register(key any, t reflect.Type, length int) int64 {
	v := p.issueVersion()
	if _, loaded := p.live.LoadOrStore(key, v); loaded {
		p.reportCorruption(&CorruptionError{
			Kind:     ReRegistration,
			Type:     t,
			Length:   length,
			Expected: v,
		})
		p.live.Store(key, v)
	}
	return v
}

// confirmRelease validates a handle against the live tracker before its
// instance may re-enter a bucket. The return value says whether the release
// may proceed.
//
// An absent entry is ambiguous with an already-flagged double-return, so it
// is not re-asserted here; the bucket insert downstream makes the final
// call. A version mismatch means the instance was re-borrowed since this
// handle was issued: that is use-after-return, reported distinctly, and the
// release must not proceed because the instance belongs to the newer owner.
func (p *Pool) confirmRelease(key any, expected int64, t reflect.Type, length int) bool {
	cur, ok := p.live.Load(key)
	if !ok {
		return true
	}
	if v := cur.(int64); v != expected {
		p.reportCorruption(&CorruptionError{
			Kind:     UseAfterReturn,
			Type:     t,
			Length:   length,
			Version:  v,
			Expected: expected,
		})
		return false
	}
	p.live.Delete(key)
	return true
}
