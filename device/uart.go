package device

import (
	"io"
)

// UART register offsets.
const (
	UART_SEND    = 0 // Write a byte to Output.
	UART_RECEIVE = 1 // Read a byte from Input.
	UART_STATUS  = 2 // Status bits.
	UART_SIZE    = 3
)

// UART status bits.
const (
	UART_STATUS_TX_READY = 1 << 0 // Output can accept a byte.
	UART_STATUS_RX_AVAIL = 1 << 1 // A received byte is waiting.
)

// Uart is a memory-mapped serial port. Received bytes come from Input,
// sent bytes go to Output.
type Uart struct {
	Input  io.Reader
	Output io.Writer

	hasInput  bool
	lastInput byte
	lastSent  byte
}

var _ Device = (*Uart)(nil)

// fill reads ahead one byte of input, returning true if a byte is waiting.
func (ua *Uart) fill() bool {
	if ua.hasInput {
		return true
	}

	if ua.Input == nil {
		return false
	}

	var one [1]byte
	n, _ := ua.Input.Read(one[:])
	if n == 1 {
		ua.lastInput = one[0]
		ua.hasInput = true
	}

	return ua.hasInput
}

// Read reads a UART register. Reading UART_RECEIVE consumes the waiting
// byte.
func (ua *Uart) Read(offset uint32) (value uint32) {
	switch offset {
	case UART_SEND:
		value = uint32(ua.lastSent)
	case UART_RECEIVE:
		if ua.fill() {
			value = uint32(ua.lastInput)
			ua.hasInput = false
		}
	case UART_STATUS:
		if ua.Output != nil {
			value |= UART_STATUS_TX_READY
		}
		if ua.fill() {
			value |= UART_STATUS_RX_AVAIL
		}
	}
	return
}

// Write writes a UART register. Only UART_SEND is writable.
func (ua *Uart) Write(offset uint32, value uint32) (ok bool) {
	return ua.send(offset, value) == nil
}

func (ua *Uart) send(offset uint32, value uint32) (err error) {
	if offset != UART_SEND {
		return ErrReadOnly
	}

	if ua.Output == nil {
		return ErrUartNoOutput
	}

	ua.lastSent = byte(value)
	_, err = ua.Output.Write([]byte{ua.lastSent})
	return
}
