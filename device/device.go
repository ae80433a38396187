package device

// Device is a word addressed memory device. Offsets are relative to the
// start of the device.
type Device interface {
	// Read returns the word at the offset, or zero if the offset is unmapped.
	Read(offset uint32) (value uint32)
	// Write stores the word at the offset, and returns false if the write
	// was rejected.
	Write(offset uint32, value uint32) (ok bool)
}
