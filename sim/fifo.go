package sim

// Fifo is a circular byte buffer
type Fifo struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifo creates a Fifo holding up to capacity-1 bytes
func NewFifo(capacity int) *Fifo {
	return &Fifo{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data and returns how many bytes fit
func (f *Fifo) Write(data []byte) int {
	written := 0
	for _, b := range data {
		nextWrite := (f.write + 1) % f.size
		if nextWrite == f.read {
			// Buffer full
			break
		}
		f.buf[f.write] = b
		f.write = nextWrite
		written++
	}
	return written
}

// Read reads up to len(data) bytes
func (f *Fifo) Read(data []byte) int {
	read := 0
	for i := range data {
		if f.read == f.write {
			break
		}
		data[i] = f.buf[f.read]
		f.read = (f.read + 1) % f.size
		read++
	}
	return read
}

// Pop removes and returns the oldest byte, or 0 when empty
func (f *Fifo) Pop() byte {
	if f.read == f.write {
		return 0
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % f.size
	return b
}

// Available returns the number of bytes available for reading
func (f *Fifo) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes available for writing
func (f *Fifo) Free() int {
	return f.size - f.Available() - 1
}

// Reset clears the buffer
func (f *Fifo) Reset() {
	f.read = 0
	f.write = 0
}
