//go:build tinygo

//go:generate tinygo flash -target=bluepill

package main

import (
	"machine"

	"github.com/itohio/gosine/pkg/frame"
	"github.com/itohio/gosine/pkg/wave"
)

var (
	uart = machine.UART0
	gen  = wave.NewGenerator32(AMPLITUDE, FREQUENCY)
)

func main() {
	// Configure UART once; parity and stop bits stay at board defaults
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	// Main loop: one packet per iteration, write failures are ignored
	for {
		frame.New(gen.Next()).Emit(uart)
	}
}
