// Package frame implements the 4-byte sample packet.
//
// Wire format:
//
//	offset 0: start marker 0xAA
//	offset 1: payload length, always 1
//	offset 2: sample
//	offset 3: checksum (XOR of the payload, i.e. the sample itself)
package frame

import (
	"io"
)

const (
	// Start marks the beginning of every packet.
	Start byte = 0xAA
	// Length is the payload length of every packet.
	Length byte = 1
	// Size is the total packet size in bytes.
	Size = 4
)

// Packet is one encoded sample.
type Packet [Size]byte

// New frames a single sample.
func New(sample byte) Packet {
	return Packet{Start, Length, sample, Checksum([]byte{sample})}
}

// Checksum returns the XOR of data. Receivers verify payloads with this rule.
func Checksum(data []byte) byte {
	var cs byte
	for _, b := range data {
		cs ^= b
	}
	return cs
}

// Start returns the start marker byte.
func (p Packet) Start() byte { return p[0] }

// Len returns the payload length byte.
func (p Packet) Len() byte { return p[1] }

// Payload returns the sample byte.
func (p Packet) Payload() byte { return p[2] }

// Checksum returns the checksum byte.
func (p Packet) Checksum() byte { return p[3] }

// Valid reports whether the packet has the fixed header and a matching checksum.
func (p Packet) Valid() bool {
	return p[0] == Start && p[1] == Length && p[3] == Checksum(p[2:3])
}

// Bytes returns the packet as a slice.
func (p Packet) Bytes() []byte {
	return p[:]
}

// WriteTo writes the packet one byte at a time, in order, and stops at the
// first failed write.
func (p Packet) WriteTo(w io.Writer) (n int64, err error) {
	for i := range p {
		var m int
		m, err = w.Write(p[i : i+1])
		n += int64(m)
		if err != nil {
			return
		}
		if m != 1 {
			return n, io.ErrShortWrite
		}
	}
	return
}

// Emit writes every byte of the packet in order without stopping on
// failures. It returns the number of bytes that could not be written.
func (p Packet) Emit(w io.ByteWriter) (failed int) {
	for _, b := range p {
		if err := w.WriteByte(b); err != nil {
			failed++
		}
	}
	return failed
}
