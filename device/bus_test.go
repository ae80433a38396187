package device

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	bus := &Bus{
		Eprom: &Eprom{Data: []uint32{0xc000_0000, 0x7300_0005}},
		Uart:  &Uart{Output: output},
		Sram:  NewSram(16),
	}

	assert.Equal(uint32(0x7300_0005), bus.Read(ARENA_EPROM|1))
	assert.Equal(uint32(UART_STATUS_TX_READY), bus.Read(ARENA_UART|UART_STATUS))

	assert.True(bus.Write(ARENA_SRAM|3, 42))
	assert.Equal(uint32(42), bus.Read(ARENA_SRAM|3))
	assert.Equal(uint32(42), bus.Sram.Data[3])

	assert.True(bus.Write(ARENA_UART|UART_SEND, 'A'))
	assert.Equal("A", output.String())

	err := bus.Store(ARENA_EPROM|1, 0)
	assert.True(errors.Is(err, ErrReadOnly))
	var access *ErrAccess
	if assert.True(errors.As(err, &access)) {
		assert.Equal("eprom", access.Device)
		assert.Equal(uint32(1), access.Address)
	}

	err = bus.Store(ARENA_SRAM|16, 0)
	assert.True(errors.Is(err, ErrOutOfRange))

	// The 0b11 arena is the upper half of the RAM.
	err = bus.Store(0xc000_0000, 0)
	assert.True(errors.Is(err, ErrOutOfRange))
	assert.Equal("sram", Arena(0xc000_0000))
}

func TestBus_Empty(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	assert.Equal(uint32(0), bus.Read(ARENA_SRAM))
	assert.Equal(uint32(0), bus.Read(ARENA_UART))
	assert.Equal(uint32(0), bus.Read(ARENA_EPROM))
	assert.False(bus.Write(ARENA_SRAM, 1))
	assert.True(errors.Is(bus.Store(ARENA_UART, 1), ErrUartNoOutput))
}
