//go:build tinygo

package main

const (
	// Waveform configuration
	AMPLITUDE = 100  // Peak amplitude; samples span 0..2*AMPLITUDE
	FREQUENCY = 1000 // Logical frequency in Hz (16 samples per cycle)

	// Serial configuration
	// One packet is 4 bytes. UART 8N1 is 10 bits/byte, so 921600 baud carries
	// 23,040 packets/sec, above the 16,000 packets/sec a 1 kHz logical wave implies.
	UART_BAUD_RATE = 921600
)
