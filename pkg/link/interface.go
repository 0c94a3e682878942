package link

import (
	"errors"
	"io"
)

var (
	// ErrNotOpen is returned when writing to or using a closed sink.
	ErrNotOpen = errors.New("not open")
	// ErrAlreadyOpen is returned by Open on a sink that is already open.
	ErrAlreadyOpen = errors.New("already open")
	// ErrBufferFull is returned when the transmit buffer cannot take another byte.
	ErrBufferFull = errors.New("transmit buffer full")
	// ErrShortWrite is returned when the port accepted no bytes.
	ErrShortWrite = errors.New("short write")
)

// Sink is a byte-oriented output (real or mocked).
type Sink interface {
	io.ByteWriter
	// Open configures the output once before streaming begins.
	Open() error
	Close() error
	IsOpen() bool
}

// Ensure Serial implements Sink.
var _ Sink = (*Serial)(nil)

// Ensure Mock implements Sink.
var _ Sink = (*Mock)(nil)
