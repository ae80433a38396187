package device

import (
	"github.com/sirupsen/logrus"
)

// SRAM_SIZE is the default number of words of static RAM.
const SRAM_SIZE = 1 << 16

// Sram is a flat array of read/write words.
type Sram struct {
	Data []uint32
}

var _ Device = (*Sram)(nil)

// NewSram creates a zeroed static RAM of size words.
func NewSram(size int) *Sram {
	return &Sram{Data: make([]uint32, size)}
}

// Size returns the number of words.
func (sr *Sram) Size() int {
	return len(sr.Data)
}

// Read returns the word at offset. Unmapped words read as zero.
func (sr *Sram) Read(offset uint32) (value uint32) {
	if uint64(offset) < uint64(len(sr.Data)) {
		value = sr.Data[offset]
	}
	return
}

// Write stores a word. Writes past the end are dropped.
func (sr *Sram) Write(offset uint32, value uint32) (ok bool) {
	if uint64(offset) >= uint64(len(sr.Data)) {
		logrus.WithFields(logrus.Fields{
			"offset": offset,
			"size":   len(sr.Data),
		}).Debug("sram write dropped")
		return false
	}
	sr.Data[offset] = value
	return true
}

// Load copies words into the RAM starting at offset, and returns the
// number of words copied.
func (sr *Sram) Load(offset uint32, data []uint32) (count int) {
	if uint64(offset) >= uint64(len(sr.Data)) {
		return 0
	}
	return copy(sr.Data[offset:], data)
}

// Reset zeroes the RAM.
func (sr *Sram) Reset() {
	clear(sr.Data)
}
