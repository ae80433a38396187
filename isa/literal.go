package isa

import (
	"strconv"
	"strings"
)

// Radix is the display radix used when formatting operands.
type Radix int

//go:generate go tool stringer -linecomment -type=Radix
const (
	RADIX_DECIMAL = Radix(0) // dec
	RADIX_HEX     = Radix(1) // hex
	RADIX_BINARY  = Radix(2) // bin
)

// ParseRadix parses the name of a display radix.
func ParseRadix(name string) (radix Radix, ok bool) {
	switch strings.ToLower(name) {
	case "dec", "decimal", "10":
		return RADIX_DECIMAL, true
	case "hex", "hexadecimal", "16":
		return RADIX_HEX, true
	case "bin", "binary", "2":
		return RADIX_BINARY, true
	}
	return
}

// ParseNumber parses a decimal, 0x hexadecimal, 0b binary or 0o octal
// literal with an optional sign.
func ParseNumber(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		// Permit the unsigned 64-bit range for masks like 0xffffffff_ffffffff.
		var u64 uint64
		u64, err = strconv.ParseUint(word, 0, 64)
		if err != nil {
			err = ErrNumber(word)
			return
		}
		value = int64(u64)
	}
	return
}

// FormatUnsigned formats an unsigned value in the radix.
func (radix Radix) FormatUnsigned(value uint64) string {
	switch radix {
	case RADIX_HEX:
		return "0x" + strconv.FormatUint(value, 16)
	case RADIX_BINARY:
		return "0b" + strconv.FormatUint(value, 2)
	default:
		return strconv.FormatUint(value, 10)
	}
}

// FormatSigned formats a signed value in the radix, keeping the sign in
// front of the prefix so the text parses back with ParseNumber.
func (radix Radix) FormatSigned(value int64) string {
	if value < 0 {
		return "-" + radix.FormatUnsigned(uint64(-value))
	}
	return radix.FormatUnsigned(uint64(value))
}
