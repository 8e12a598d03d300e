package probe

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultSizes straddle the 64-byte packet boundary.
var DefaultSizes = []int{1, 10, 63, 64, 65, 128, 256}

// Result is the outcome of one loopback transfer.
type Result struct {
	Size     int
	Received int
	Mismatch int // Offset of the first wrong byte, -1 when none
	Elapsed  time.Duration
}

// OK reports whether every byte came back in order.
func (r Result) OK() bool {
	return r.Received == r.Size && r.Mismatch < 0
}

func (r Result) String() string {
	switch {
	case r.OK():
		return fmt.Sprintf("%4d bytes ok (%v)", r.Size, r.Elapsed.Round(time.Microsecond))
	case r.Mismatch >= 0:
		return fmt.Sprintf("%4d bytes MISMATCH at offset %d", r.Size, r.Mismatch)
	default:
		return fmt.Sprintf("%4d bytes SHORT, got %d", r.Size, r.Received)
	}
}

// Pattern returns the test payload for a transfer of size n.
// Consecutive sizes produce different payloads so stale bytes are caught.
func Pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*31 + n)
	}
	return p
}

// Loopback runs one transfer per size. Each waits up to timeout for its echo.
// Transport errors abort the run; short or corrupted echoes are reported in
// the results.
func Loopback(port io.ReadWriter, sizes []int, timeout time.Duration) ([]Result, error) {
	results := make([]Result, 0, len(sizes))
	for _, size := range sizes {
		r, err := loopbackOne(port, size, timeout)
		if err != nil {
			return results, fmt.Errorf("loopback %d bytes: %w", size, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func loopbackOne(port io.ReadWriter, size int, timeout time.Duration) (Result, error) {
	want := Pattern(size)
	start := time.Now()

	if _, err := port.Write(want); err != nil {
		return Result{}, err
	}

	got := make([]byte, 0, size)
	buf := make([]byte, 256)
	deadline := start.Add(timeout)
	for len(got) < size && time.Now().Before(deadline) {
		n, err := port.Read(buf)
		got = append(got, buf[:n]...)
		// Serial ports report a read timeout as EOF
		if err != nil && !errors.Is(err, io.EOF) {
			return Result{}, err
		}
	}

	r := Result{
		Size:     size,
		Received: len(got),
		Mismatch: -1,
		Elapsed:  time.Since(start),
	}
	for i := 0; i < len(got) && i < size; i++ {
		if got[i] != want[i] {
			r.Mismatch = i
			break
		}
	}
	if r.Mismatch < 0 && len(got) > size {
		r.Mismatch = size
	}
	return r, nil
}
