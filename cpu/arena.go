package cpu

import (
	"github.com/ezrec/reti/device"
)

// OS variant address layout at reset.
const (
	SEGMENT_MASK = 0xffc0_0000 // Segment bits of DS used by direct addresses.
	CODE_BASE    = device.ARENA_EPROM
	DATA_BASE    = device.ARENA_SRAM
	EPROM_LIMIT  = 1 << 20 // Largest EPROM image, in words.
)
