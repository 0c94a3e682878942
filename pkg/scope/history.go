package scope

import (
	"sync"

	"github.com/itohio/gosine/pkg/wave"
)

// History keeps the most recent emitted samples in a fixed size ring.
// It is safe for concurrent use.
type History struct {
	mu    sync.RWMutex
	ring  []uint8
	next  int
	count int
	total uint64
}

// NewHistory creates a history holding up to size samples.
func NewHistory(size int) *History {
	if size <= 0 {
		size = 200
	}
	return &History{ring: make([]uint8, size)}
}

// Push records a generated point. It matches the stream callback signature.
func (h *History) Push(pt wave.Point) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ring[h.next] = pt.Value
	h.next = (h.next + 1) % len(h.ring)
	if h.count < len(h.ring) {
		h.count++
	}
	h.total++
}

// Values copies the retained samples into dst, oldest first.
func (h *History) Values(dst []float64) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dst = dst[:0]
	start := (h.next - h.count + len(h.ring)) % len(h.ring)
	for i := range h.count {
		dst = append(dst, float64(h.ring[(start+i)%len(h.ring)]))
	}
	return dst
}

// Total returns the number of samples pushed since creation.
func (h *History) Total() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}
