package link

import (
	"testing"
	"time"

	"github.com/itohio/gosine/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMock_GracefulShutdown tests that Close stops the drain goroutine and
// that the sink can be reopened afterwards.
func TestMock_GracefulShutdown(t *testing.T) {
	m := NewMock(&config.MockConfig{BufferSize: 16, DrainInterval: time.Millisecond})
	require.NoError(t, m.Open())

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		m.Close()
	}()

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return within timeout")
	}

	assert.False(t, m.IsOpen())
	assert.ErrorIs(t, m.WriteByte(1), ErrNotOpen)

	// Closing again is a no-op
	assert.NoError(t, m.Close())

	require.NoError(t, m.Open())
	assert.NoError(t, m.WriteByte(1))
	assert.NoError(t, m.Close())
}
