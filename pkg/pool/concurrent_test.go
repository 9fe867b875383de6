package pool_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/pool"
	"github.com/repool/repool/pkg/testutil"
)

func hammer(p *pool.Pool, workers, iterations int) {
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				r := pool.Rent[intList](p)
				r.Value().Add(i)
				r.Release()

				s := pool.GetSlice[int](p, 32)
				s[0] = i
				pool.ReturnSlice(p, s, false)
			}
		}()
	}
	wg.Wait()
}

func TestConcurrentBorrowReturn(t *testing.T) {
	p := pool.New(pool.WithLogger(testutil.TestLogger(t)))
	defer p.Close()

	hammer(p, 8, 1000)

	testutil.AssertEventually(t, func() bool {
		return p.Stats().Live == 0
	}, time.Second, "every borrow must be matched by a return")

	s := p.Stats()
	require.Zero(t, s.DoubleReturns)
	require.Equal(t, s.Allocated+s.Reused, s.Returned)
}

func TestConcurrentCheckedModeNoFalsePositives(t *testing.T) {
	p := pool.New(
		pool.WithLogger(testutil.TestLogger(t)),
		pool.WithChecks(true),
		pool.WithCorruptionHandler(func(e *pool.CorruptionError) {
			t.Errorf("false positive corruption: %v", e)
		}),
	)
	defer p.Close()

	hammer(p, 4, 500)

	s := p.Stats()
	require.Zero(t, s.UseAfterReturns)
	require.Zero(t, s.ReRegistrations)
}
