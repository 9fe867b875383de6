package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/pool"
)

// capture collects corruption reports instead of panicking.
type capture struct {
	events []*pool.CorruptionError
}

func (c *capture) handler() pool.CorruptionHandler {
	return func(e *pool.CorruptionError) { c.events = append(c.events, e) }
}

func checkedPool(c *capture) *pool.Pool {
	return pool.New(pool.WithChecks(true), pool.WithCorruptionHandler(c.handler()))
}

func TestDoubleReturnDetected(t *testing.T) {
	var c capture
	p := checkedPool(&c)
	defer p.Close()

	v := pool.Get[plain](p)
	pool.Return(p, v, false)
	pool.Return(p, v, false)

	require.Len(t, c.events, 1)
	assert.Equal(t, pool.DoubleReturn, c.events[0].Kind)
	assert.Equal(t, int64(1), p.Stats().DoubleReturns)

	// The duplicate was dropped: only one instance is available.
	a := pool.Get[plain](p)
	b := pool.Get[plain](p)
	assert.Same(t, v, a)
	assert.NotSame(t, a, b)
}

func TestDoubleReturnSliceDetected(t *testing.T) {
	var c capture
	p := checkedPool(&c)
	defer p.Close()

	s := pool.GetSlice[int](p, 4)
	pool.ReturnSlice(p, s, false)
	pool.ReturnSlice(p, s, false)

	require.Len(t, c.events, 1)
	assert.Equal(t, pool.DoubleReturn, c.events[0].Kind)
	assert.Equal(t, 4, c.events[0].Length)
}

func TestDoubleReturnSilentWhenUnchecked(t *testing.T) {
	p := pool.New(pool.WithChecks(false))
	defer p.Close()

	v := pool.Get[plain](p)
	pool.Return(p, v, false)
	require.NotPanics(t, func() { pool.Return(p, v, false) })

	// Still observable through the counters.
	assert.Equal(t, int64(1), p.Stats().DoubleReturns)
}

func TestUseAfterReturnDetected(t *testing.T) {
	var c capture
	p := checkedPool(&c)
	defer p.Close()

	guardA := pool.Rent[intList](p)
	x := guardA.Value()
	stale := guardA // retained stale copy of the handle
	guardA.Release()

	// X is re-borrowed under a new version and now owned by guard B.
	guardB := pool.Rent[intList](p)
	require.Same(t, x, guardB.Value())

	// Releasing the stale handle must surface as use-after-return,
	// distinct from a plain double-return, and must not steal the
	// instance from guard B.
	stale.Release()
	require.Len(t, c.events, 1)
	assert.Equal(t, pool.UseAfterReturn, c.events[0].Kind)
	assert.NotEqual(t, c.events[0].Version, c.events[0].Expected)
	assert.Equal(t, int64(1), p.Stats().UseAfterReturns)

	// Guard B's release stays clean.
	guardB.Release()
	require.Len(t, c.events, 1)
}

func TestUseAfterReturnSliceDetected(t *testing.T) {
	var c capture
	p := checkedPool(&c)
	defer p.Close()

	guardA := pool.RentSlice[byte](p, 8, false)
	stale := guardA
	guardA.Release()

	guardB := pool.RentSlice[byte](p, 8, false)
	stale.Release()

	require.Len(t, c.events, 1)
	assert.Equal(t, pool.UseAfterReturn, c.events[0].Kind)
	guardB.Release()
	require.Len(t, c.events, 1)
}

func TestReRegistrationDetected(t *testing.T) {
	var c capture
	p := checkedPool(&c)
	defer p.Close()

	guard := pool.Rent[plain](p)
	x := guard.Value()

	// The instance re-enters the pool behind the guard's back, so its
	// tracker entry is still live when the next borrow registers it.
	pool.Return(p, x, false)

	again := pool.Rent[plain](p)
	require.Same(t, x, again.Value())

	require.Len(t, c.events, 1)
	assert.Equal(t, pool.ReRegistration, c.events[0].Kind)
	assert.Equal(t, int64(1), p.Stats().ReRegistrations)

	// The newest handle owns the instance; its release stays clean.
	again.Release()
	require.Len(t, c.events, 1)
}

func TestDefaultHandlerPanicsWithCorruptionError(t *testing.T) {
	p := pool.New(pool.WithChecks(true))
	defer p.Close()

	v := pool.Get[plain](p)
	pool.Return(p, v, false)

	defer func() {
		r := recover()
		require.NotNil(t, r, "checked mode without a handler must panic")
		err, ok := r.(*pool.CorruptionError)
		require.True(t, ok, "panic value is the corruption error")
		assert.Equal(t, pool.DoubleReturn, err.Kind)
	}()
	pool.Return(p, v, false)
}

func TestSetChecksToggle(t *testing.T) {
	p := pool.New()
	defer p.Close()

	p.SetChecks(true)
	require.True(t, p.ChecksEnabled())
	p.SetChecks(false)
	require.False(t, p.ChecksEnabled())
}

func TestCorruptionErrorMessages(t *testing.T) {
	var c capture
	p := checkedPool(&c)
	defer p.Close()

	v := pool.Get[plain](p)
	pool.Return(p, v, false)
	pool.Return(p, v, false)

	require.Len(t, c.events, 1)
	assert.Contains(t, c.events[0].Error(), "double-return")
	assert.Contains(t, c.events[0].Error(), "plain")
}
