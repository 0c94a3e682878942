package link

import (
	"context"
	"sync"
	"time"

	"github.com/itohio/gosine/pkg/config"
)

// Mock is an in-memory sink that behaves like a UART transmit buffer.
// Writes fail with ErrBufferFull once the buffer holds cfg.BufferSize bytes,
// and a background goroutine empties it every cfg.DrainInterval.
type Mock struct {
	cfg *config.MockConfig

	mu      sync.Mutex
	buf     []byte
	written uint64
	drained uint64
	open    bool
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMock creates a mocked sink. A nil config gives an unbounded buffer that
// is never drained automatically.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{}
	}

	return &Mock{
		cfg: cfg,
	}
}

// Open starts the drain goroutine if one is configured.
func (m *Mock) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return ErrAlreadyOpen
	}

	m.open = true
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.done = make(chan struct{})

	if m.cfg.DrainInterval > 0 {
		go m.drainLoop(m.ctx, m.done)
	} else {
		close(m.done)
	}

	return nil
}

// Close stops the drain goroutine and waits for it to exit.
func (m *Mock) Close() error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return nil
	}
	m.open = false
	m.cancel()
	done := m.done
	m.mu.Unlock()

	<-done

	return nil
}

// IsOpen returns whether the sink is open.
func (m *Mock) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// WriteByte appends b to the transmit buffer.
func (m *Mock) WriteByte(b byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrNotOpen
	}
	if m.cfg.BufferSize > 0 && len(m.buf) >= m.cfg.BufferSize {
		return ErrBufferFull
	}

	m.buf = append(m.buf, b)
	m.written++

	return nil
}

// Bytes returns a copy of the bytes currently buffered.
func (m *Mock) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]byte, len(m.buf))
	copy(result, m.buf)
	return result
}

// Drain returns the buffered bytes and empties the buffer.
func (m *Mock) Drain() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := m.buf
	m.buf = nil
	m.drained += uint64(len(result))
	return result
}

// Written returns the number of bytes accepted since creation.
func (m *Mock) Written() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.written
}

// Drained returns the number of bytes removed by Drain.
func (m *Mock) Drained() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drained
}

func (m *Mock) drainLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.cfg.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Drain()
		}
	}
}
