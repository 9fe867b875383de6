package pool

import (
	"reflect"
	"testing"
)

func TestBucketTakePutCycle(t *testing.T) {
	b := newBucket()

	if _, ok := b.take(); ok {
		t.Fatal("take on an empty bucket must report empty")
	}

	x := new(int)
	if !b.put(x, x) {
		t.Fatal("first put must be accepted")
	}
	if b.size() != 1 {
		t.Fatalf("expected size 1, got %d", b.size())
	}

	got, ok := b.take()
	if !ok || got.(*int) != x {
		t.Fatal("take must hand back the inserted item")
	}

	// The slot stays in the arena while lent, so re-inserting is legal...
	if !b.put(x, x) {
		t.Fatal("put after take must be accepted")
	}
	// ...but inserting again without an intervening take is a double-return.
	if b.put(x, x) {
		t.Fatal("duplicate put must be rejected")
	}
	if b.size() != 1 {
		t.Fatalf("rejected put must not grow the bucket, size %d", b.size())
	}
}

func TestBucketFreeListReusesSlots(t *testing.T) {
	b := newBucket()
	x, y := new(int), new(int)
	b.put(x, x)
	b.put(y, y)

	b.take()
	b.take()
	if len(b.slots) != 2 {
		t.Fatalf("arena keeps its slots, got %d", len(b.slots))
	}

	b.put(x, x)
	b.put(y, y)
	if len(b.slots) != 2 {
		t.Fatalf("re-inserting known items must reuse slots, got %d", len(b.slots))
	}
}

func TestIssueVersionSkipsZero(t *testing.T) {
	p := New()
	defer p.Close()

	p.version.Store(-1)
	if v := p.issueVersion(); v != 1 {
		t.Fatalf("wraparound must skip the reserved zero version, got %d", v)
	}
	if v := p.issueVersion(); v != 2 {
		t.Fatalf("counter must keep increasing, got %d", v)
	}
}

func TestResolveResetCachesDecision(t *testing.T) {
	p := New()
	defer p.Close()

	type bare struct{ n int }
	v := &bare{n: 1}
	key := reflect.TypeOf(v).Elem()

	p.resetItem(key, v)
	p.resetItem(key, v)

	count := 0
	p.resets.Range(func(_, _ any) bool { count++; return true })
	if count != 1 {
		t.Fatalf("expected a single cache entry, got %d", count)
	}
	if v.n != 1 {
		t.Fatal("a type without a reset operation must be left untouched")
	}
}
