package strings

import (
	"sync"
	"sync/atomic"
)

// InternPool deduplicates frequently repeated strings (field names, labels,
// type names) so all users share one backing allocation. Read-mostly after
// warm-up.
type InternPool struct {
	mu      sync.RWMutex
	strings map[string]string
	maxSize int
	size    int64
	hits    int64
	misses  int64
}

// NewInternPool creates an intern pool bounded to maxSize distinct entries;
// beyond the bound, inputs pass through un-interned.
func NewInternPool(maxSize int) *InternPool {
	return &InternPool{
		strings: make(map[string]string, 256),
		maxSize: maxSize,
	}
}

var globalInternPool = NewInternPool(10000)

// Intern returns the canonical copy of s.
func (p *InternPool) Intern(s string) string {
	p.mu.RLock()
	if interned, ok := p.strings[s]; ok {
		p.mu.RUnlock()
		atomic.AddInt64(&p.hits, 1)
		return interned
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if interned, ok := p.strings[s]; ok {
		atomic.AddInt64(&p.hits, 1)
		return interned
	}

	if atomic.LoadInt64(&p.size) >= int64(p.maxSize) {
		atomic.AddInt64(&p.misses, 1)
		return s
	}

	p.strings[s] = s
	atomic.AddInt64(&p.size, 1)
	atomic.AddInt64(&p.misses, 1)
	return s
}

// InternBytes interns a byte slice as a string.
func (p *InternPool) InternBytes(b []byte) string {
	return p.Intern(string(b))
}

// Stats returns intern pool statistics.
func (p *InternPool) Stats() (size, hits, misses int64) {
	return atomic.LoadInt64(&p.size),
		atomic.LoadInt64(&p.hits),
		atomic.LoadInt64(&p.misses)
}

// Intern interns a string using the global pool.
func Intern(s string) string {
	return globalInternPool.Intern(s)
}

// InternBytes interns a byte slice as a string using the global pool.
func InternBytes(b []byte) string {
	return globalInternPool.InternBytes(b)
}
