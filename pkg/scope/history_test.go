package scope

import (
	"sync"
	"testing"

	"github.com/itohio/gosine/pkg/wave"
	"github.com/stretchr/testify/assert"
)

func TestHistory_PartialFill(t *testing.T) {
	h := NewHistory(4)
	assert.Empty(t, h.Values(nil))

	h.Push(wave.Point{Value: 1})
	h.Push(wave.Point{Value: 2})
	assert.Equal(t, []float64{1, 2}, h.Values(nil))
	assert.Equal(t, uint64(2), h.Total())
}

func TestHistory_Wraps(t *testing.T) {
	h := NewHistory(3)
	for v := range uint8(5) {
		h.Push(wave.Point{Value: v})
	}
	assert.Equal(t, []float64{2, 3, 4}, h.Values(nil))
	assert.Equal(t, uint64(5), h.Total())

	// Reuses dst
	dst := make([]float64, 0, 8)
	got := h.Values(dst)
	assert.Equal(t, cap(dst), cap(got))
}

func TestHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	for range 500 {
		h.Push(wave.Point{Value: 7})
	}
	assert.Len(t, h.Values(nil), 200)
}

func TestHistory_Concurrent(t *testing.T) {
	h := NewHistory(16)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 1000 {
			h.Push(wave.Point{Value: 1})
		}
	}()
	go func() {
		defer wg.Done()
		var buf []float64
		for range 1000 {
			buf = h.Values(buf)
		}
	}()
	wg.Wait()

	assert.Equal(t, uint64(1000), h.Total())
}
