package cdc

// LineCoding is the serial line configuration negotiated by the host.
type LineCoding struct {
	DTERate    uint32 // Baud rate
	CharFormat uint8  // Stop bits: 0=1, 1=1.5, 2=2
	ParityType uint8  // 0=None, 1=Odd, 2=Even, 3=Mark, 4=Space
	DataBits   uint8  // 5, 6, 7, 8 or 16
}

// LineCodingSize is the length of the SET_LINE_CODING payload.
const LineCodingSize = 7

// Stop bit values.
const (
	StopBits1   = 0
	StopBits1_5 = 1
	StopBits2   = 2
)

// Parity values.
const (
	ParityNone  = 0
	ParityOdd   = 1
	ParityEven  = 2
	ParityMark  = 3
	ParitySpace = 4
)

// DefaultLineCoding is 115200 8N1.
var DefaultLineCoding = LineCoding{
	DTERate:    115200,
	CharFormat: StopBits1,
	ParityType: ParityNone,
	DataBits:   8,
}

var (
	parityLetters = [...]byte{'N', 'O', 'E', 'M', 'S'}
	stopNames     = [...]string{"1", "1.5", "2"}
)

// ParseLineCoding decodes a little-endian SET_LINE_CODING payload.
// Returns false if data is too short.
func ParseLineCoding(data []byte, out *LineCoding) bool {
	if len(data) < LineCodingSize {
		return false
	}
	out.DTERate = uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	out.CharFormat = data[4]
	out.ParityType = data[5]
	out.DataBits = data[6]
	return true
}

// MarshalTo writes the payload form of lc into buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (lc *LineCoding) MarshalTo(buf []byte) int {
	if len(buf) < LineCodingSize {
		return 0
	}
	buf[0] = byte(lc.DTERate)
	buf[1] = byte(lc.DTERate >> 8)
	buf[2] = byte(lc.DTERate >> 16)
	buf[3] = byte(lc.DTERate >> 24)
	buf[4] = lc.CharFormat
	buf[5] = lc.ParityType
	buf[6] = lc.DataBits
	return LineCodingSize
}

// ParityLetter returns the conventional single letter for the parity type,
// or '?' when out of range.
func (lc LineCoding) ParityLetter() byte {
	if int(lc.ParityType) < len(parityLetters) {
		return parityLetters[lc.ParityType]
	}
	return '?'
}

// StopBits returns the stop bit count as text, or "?" when out of range.
func (lc LineCoding) StopBits() string {
	if int(lc.CharFormat) < len(stopNames) {
		return stopNames[lc.CharFormat]
	}
	return "?"
}

// Frame returns the data/parity/stop shorthand, e.g. "8N1".
func (lc LineCoding) Frame() string {
	b := make([]byte, 0, 8)
	b = appendUint(b, uint32(lc.DataBits))
	b = append(b, lc.ParityLetter())
	b = append(b, lc.StopBits()...)
	return string(b)
}

// String returns e.g. "9600 8N1".
func (lc LineCoding) String() string {
	b := make([]byte, 0, 20)
	b = appendUint(b, lc.DTERate)
	b = append(b, ' ')
	b = append(b, lc.Frame()...)
	return string(b)
}

// appendUint formats n without fmt so the package stays small under TinyGo.
func appendUint(b []byte, n uint32) []byte {
	if n == 0 {
		return append(b, '0')
	}
	var tmp [10]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, tmp[i:]...)
}
