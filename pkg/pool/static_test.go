package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/pool"
)

// Each test installs a fresh shared pool so global state never leaks between
// tests.

func TestSharedPutNeverResets(t *testing.T) {
	pool.InitShared()
	defer pool.CloseShared()

	l := pool.SharedGet[intList]()
	l.Add(1, 2, 3)

	// Legacy path: contents must survive untouched.
	pool.SharedPut(l)

	got := pool.SharedGet[intList]()
	require.Same(t, l, got)
	assert.Equal(t, 3, got.Count(), "SharedPut must not reset, by design")
}

func TestSharedReturnResetsByDefault(t *testing.T) {
	pool.InitShared()
	defer pool.CloseShared()

	l := pool.SharedGet[intList]()
	l.Add(1, 2, 3)

	pool.SharedReturn(l, false)

	got := pool.SharedGet[intList]()
	require.Same(t, l, got)
	assert.Equal(t, 0, got.Count(), "SharedReturn resets unless told not to")
}

func TestSharedPutSliceKeepsContents(t *testing.T) {
	pool.InitShared()
	defer pool.CloseShared()

	s := pool.SharedGetSlice[int](3)
	s[0] = 11
	pool.SharedPutSlice(s)

	got := pool.SharedGetSlice[int](3)
	assert.Equal(t, 11, got[0])

	pool.SharedReturnSlice(got, false)
	got = pool.SharedGetSlice[int](3)
	assert.Equal(t, 0, got[0])
}

func TestSharedRentRoundTrip(t *testing.T) {
	pool.InitShared()
	defer pool.CloseShared()

	r := pool.SharedRent[intList]()
	r.Value().Add(4)
	first := r.Value()
	r.Release()

	r2 := pool.SharedRent[intList]()
	defer r2.Release()
	require.Same(t, first, r2.Value())
	assert.Equal(t, 0, r2.Value().Count())

	rs := pool.SharedRentSlice[byte](16, false)
	require.Len(t, rs.Slice(), 16)
	rs.Release()
}

func TestSharedLifecycle(t *testing.T) {
	p := pool.InitShared(pool.WithChecks(false))
	require.Same(t, p, pool.Shared())

	pool.CloseShared()
	require.True(t, p.Closed())

	// A new shared pool is constructed lazily after teardown.
	next := pool.Shared()
	require.NotSame(t, p, next)
	require.False(t, next.Closed())
	pool.CloseShared()
}

func TestInitSharedClosesPrevious(t *testing.T) {
	first := pool.InitShared()
	second := pool.InitShared()
	defer pool.CloseShared()

	require.True(t, first.Closed())
	require.False(t, second.Closed())
	require.Same(t, second, pool.Shared())
}
