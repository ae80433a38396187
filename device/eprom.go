package device

// Eprom is a read-only array of words.
type Eprom struct {
	Data []uint32
}

var _ Device = (*Eprom)(nil)

// Read returns the word at offset. Unmapped words read as zero.
func (ep *Eprom) Read(offset uint32) (value uint32) {
	if uint64(offset) < uint64(len(ep.Data)) {
		value = ep.Data[offset]
	}
	return
}

// Write is always rejected.
func (ep *Eprom) Write(offset uint32, value uint32) (ok bool) {
	return false
}
