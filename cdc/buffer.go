package cdc

// TransferBuffer stages at most one packet of data in either direction.
// It never grows beyond MaxPacketSize.
type TransferBuffer struct {
	buf [MaxPacketSize]byte
	n   int
}

// Reset empties the buffer.
func (b *TransferBuffer) Reset() {
	b.n = 0
}

// Len returns the number of staged bytes.
func (b *TransferBuffer) Len() int {
	return b.n
}

// Free returns the remaining capacity.
func (b *TransferBuffer) Free() int {
	return MaxPacketSize - b.n
}

// Append stages one byte. It returns false when the buffer is full.
func (b *TransferBuffer) Append(c byte) bool {
	if b.n >= MaxPacketSize {
		return false
	}
	b.buf[b.n] = c
	b.n++
	return true
}

// Space returns the whole backing array for a device to fill, e.g. by a
// bulk OUT read. Call Commit with the count actually written.
func (b *TransferBuffer) Space() []byte {
	return b.buf[:]
}

// Commit sets the staged length after a direct fill through Space.
// Counts outside [0, MaxPacketSize] are clamped.
func (b *TransferBuffer) Commit(n int) {
	switch {
	case n < 0:
		n = 0
	case n > MaxPacketSize:
		n = MaxPacketSize
	}
	b.n = n
}

// Bytes returns the staged data.
func (b *TransferBuffer) Bytes() []byte {
	return b.buf[:b.n]
}
