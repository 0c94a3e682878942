package link

import (
	"fmt"
	"log"
	"sync"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the link speed expected by the serial plotter.
	DefaultBaudRate = 921600
	// DefaultDataBits is the byte size on the wire.
	DefaultDataBits = 8
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial writes bytes to a serial port.
type Serial struct {
	port     string
	baudRate int

	conn serial.Port
	buf  [1]byte
	mu   sync.Mutex
	open bool
}

// NewSerial creates a serial sink for the given port. A zero baud rate selects
// DefaultBaudRate.
func NewSerial(port string, baudRate int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Name returns the port name.
func (s *Serial) Name() string {
	return s.port
}

// BaudRate returns the configured baud rate.
func (s *Serial) BaudRate() int {
	return s.baudRate
}

// Open opens the port and sets the baud rate. Parity and stop bits are left
// at platform defaults.
func (s *Serial) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrAlreadyOpen
	}

	mode := &serial.Mode{
		BaudRate: s.baudRate,
		DataBits: DefaultDataBits,
	}

	port, err := serial.Open(s.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	s.conn = port
	s.open = true

	return nil
}

// Close closes the port.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		s.conn = nil
	}

	s.open = false

	return nil
}

// IsOpen returns whether the port is currently open.
func (s *Serial) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// WriteByte writes a single byte to the port.
func (s *Serial) WriteByte(b byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNotOpen
	}

	s.buf[0] = b
	n, err := s.conn.Write(s.buf[:])
	if err != nil {
		return fmt.Errorf("failed to write to %s: %w", s.port, err)
	}
	if n == 0 {
		return ErrShortWrite
	}

	return nil
}
