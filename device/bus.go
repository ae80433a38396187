package device

// Arenas selected by the two high address bits.
const (
	ARENA_MASK  = 0xc_000_0000 // Mask of the arena address bits.
	ARENA_EPROM = 0x0_000_0000 // Program EPROM.
	ARENA_UART  = 0x4_000_0000 // Memory-mapped UART.
	ARENA_SRAM  = 0x8_000_0000 // Static RAM, through 0xffff_ffff.
)

// Bus maps the OS variant address space onto its devices.
type Bus struct {
	Eprom *Eprom
	Uart  *Uart
	Sram  *Sram
}

var _ Device = (*Bus)(nil)

// Arena returns the name of the device at addr.
func Arena(addr uint32) string {
	switch addr & ARENA_MASK {
	case ARENA_EPROM:
		return "eprom"
	case ARENA_UART:
		return "uart"
	default:
		return "sram"
	}
}

// Read returns the word at the absolute address. Unmapped words read as
// zero.
func (bus *Bus) Read(addr uint32) (value uint32) {
	switch addr & ARENA_MASK {
	case ARENA_EPROM:
		if bus.Eprom != nil {
			value = bus.Eprom.Read(addr &^ ARENA_MASK)
		}
	case ARENA_UART:
		if bus.Uart != nil {
			value = bus.Uart.Read(addr &^ ARENA_MASK)
		}
	default:
		if bus.Sram != nil {
			value = bus.Sram.Read(addr &^ ARENA_SRAM)
		}
	}
	return
}

// Write stores a word at the absolute address.
func (bus *Bus) Write(addr uint32, value uint32) (ok bool) {
	return bus.Store(addr, value) == nil
}

// Store stores a word at the absolute address, and explains why a
// rejected write failed.
func (bus *Bus) Store(addr uint32, value uint32) (err error) {
	switch addr & ARENA_MASK {
	case ARENA_EPROM:
		err = ErrReadOnly
	case ARENA_UART:
		err = ErrUartNoOutput
		if bus.Uart != nil {
			err = bus.Uart.send(addr&^ARENA_MASK, value)
		}
	default:
		err = ErrOutOfRange
		if bus.Sram != nil && bus.Sram.Write(addr&^ARENA_SRAM, value) {
			err = nil
		}
	}

	if err != nil {
		err = &ErrAccess{Device: Arena(addr), Address: addr, Err: err}
	}

	return
}
