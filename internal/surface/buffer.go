package surface

import "sync"

// Buffer is a fixed-capacity circular byte buffer holding the most recent
// raw PTY output for a surface. Old data is overwritten once the capacity
// is reached.
type Buffer struct {
	mu    sync.Mutex
	data  []byte
	start int
	size  int
}

// NewBuffer creates a buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Write appends p, overwriting the oldest bytes when full. Always succeeds.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(p)
	capacity := len(b.data)

	if n >= capacity {
		// Only the tail fits.
		copy(b.data, p[n-capacity:])
		b.start = 0
		b.size = capacity
		return n, nil
	}

	for _, c := range p {
		idx := (b.start + b.size) % capacity
		b.data[idx] = c
		if b.size < capacity {
			b.size++
		} else {
			b.start = (b.start + 1) % capacity
		}
	}
	return n, nil
}

// Bytes returns a copy of the buffered data in write order.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]byte, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.data[(b.start+i)%len(b.data)]
	}
	return out
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Reset discards all buffered data.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start = 0
	b.size = 0
}
