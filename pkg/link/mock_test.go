package link

import (
	"testing"
	"time"

	"github.com/itohio/gosine/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMock_NilConfig(t *testing.T) {
	m := NewMock(nil)
	assert.NotNil(t, m)
	assert.NotNil(t, m.cfg)
	assert.Equal(t, 0, m.cfg.BufferSize)
	assert.False(t, m.IsOpen())
}

func TestMock_WriteByte(t *testing.T) {
	m := NewMock(nil)
	assert.ErrorIs(t, m.WriteByte(1), ErrNotOpen)

	require.NoError(t, m.Open())
	defer m.Close()

	for _, b := range []byte{0xAA, 0x01, 100, 100} {
		require.NoError(t, m.WriteByte(b))
	}
	assert.Equal(t, []byte{0xAA, 0x01, 100, 100}, m.Bytes())
	assert.Equal(t, uint64(4), m.Written())
}

func TestMock_OpenTwice(t *testing.T) {
	m := NewMock(nil)
	require.NoError(t, m.Open())
	defer m.Close()
	assert.ErrorIs(t, m.Open(), ErrAlreadyOpen)
}

func TestMock_BufferFull(t *testing.T) {
	m := NewMock(&config.MockConfig{BufferSize: 3})
	require.NoError(t, m.Open())
	defer m.Close()

	require.NoError(t, m.WriteByte(1))
	require.NoError(t, m.WriteByte(2))
	require.NoError(t, m.WriteByte(3))
	assert.ErrorIs(t, m.WriteByte(4), ErrBufferFull)
	assert.Equal(t, uint64(3), m.Written())

	assert.Equal(t, []byte{1, 2, 3}, m.Drain())
	assert.Equal(t, uint64(3), m.Drained())
	assert.Empty(t, m.Bytes())
	assert.NoError(t, m.WriteByte(4))
}

func TestMock_DrainLoop(t *testing.T) {
	m := NewMock(&config.MockConfig{BufferSize: 4, DrainInterval: time.Millisecond})
	require.NoError(t, m.Open())
	defer m.Close()

	for _, b := range []byte{1, 2, 3, 4} {
		require.NoError(t, m.WriteByte(b))
	}

	assert.Eventually(t, func() bool {
		return len(m.Bytes()) == 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, uint64(4), m.Drained())
}
