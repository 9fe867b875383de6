package pool

import "sync"

// bucket holds the available instances for one type (or one type+length pair
// for slices). It is an arena of slots plus a free-list of indices; the
// identity index maps an instance's pointer identity to its arena slot, which
// is what turns a double-return into a detectable signal rather than a silent
// duplicate.
//
// A bucket is owned by exactly one Pool and guarded by its own mutex.
type bucket struct {
	mu    sync.Mutex
	slots []any
	avail []bool
	free  []int
	index map[any]int
}

func newBucket() *bucket {
	return &bucket{index: make(map[any]int)}
}

// take removes and returns one available instance. The instance's slot stays
// in the arena, marked lent, so a later double-return of it is recognized.
func (b *bucket) take() (item any, ok bool) {
	b.mu.Lock()
	n := len(b.free)
	if n == 0 {
		b.mu.Unlock()
		return nil, false
	}
	idx := b.free[n-1]
	b.free = b.free[:n-1]
	b.avail[idx] = false
	item = b.slots[idx]
	b.mu.Unlock()
	return item, true
}

// put makes item available for borrowing, keyed by its pointer identity.
// Returns false when the item is already sitting in the arena as available,
// i.e. the caller returned the same instance twice.
func (b *bucket) put(key, item any) bool {
	b.mu.Lock()
	if idx, seen := b.index[key]; seen {
		if b.avail[idx] {
			b.mu.Unlock()
			return false
		}
		b.slots[idx] = item
		b.avail[idx] = true
		b.free = append(b.free, idx)
		b.mu.Unlock()
		return true
	}
	idx := len(b.slots)
	b.slots = append(b.slots, item)
	b.avail = append(b.avail, true)
	b.free = append(b.free, idx)
	b.index[key] = idx
	b.mu.Unlock()
	return true
}

// size reports how many instances are currently available.
func (b *bucket) size() int {
	b.mu.Lock()
	n := len(b.free)
	b.mu.Unlock()
	return n
}
