package pool

// BufferPool manages byte buffers with size-classed buckets layered over the
// exact-length slice pool. Get returns the smallest class that fits,
// re-sliced to the requested size; Put recovers the class length from the
// buffer's capacity. Requests beyond the largest class are allocated
// directly and never pooled.
type BufferPool struct {
	pool  *Pool
	sizes []int
}

// Power-of-4-ish classes from 512B to 16MB cover common I/O buffer sizes.
var bufferClasses = []int{
	512,
	1024,
	4096,
	16384,
	65536,
	262144,
	1048576,
	4194304,
	16777216,
}

// NewBufferPool creates a buffer pool drawing from p.
func NewBufferPool(p *Pool) *BufferPool {
	return &BufferPool{pool: p, sizes: bufferClasses}
}

// Get returns a buffer of length size whose capacity is the containing size
// class. Oversized requests fall back to direct allocation.
func (bp *BufferPool) Get(size int) []byte {
	for _, class := range bp.sizes {
		if class >= size {
			buf := GetSlice[byte](bp.pool, class)
			return buf[:size]
		}
	}
	return make([]byte, size)
}

// Put returns a buffer obtained from Get. Buffers whose capacity matches no
// size class are left to the garbage collector. Contents are zeroed on the
// way back in.
func (bp *BufferPool) Put(buf []byte) {
	class := cap(buf)
	for _, s := range bp.sizes {
		if s == class {
			ReturnSlice(bp.pool, buf[:class], false)
			return
		}
	}
}
