package core

// DelayTimer paces bit-level timing at the mid-bit sampling point.
type DelayTimer interface {
	SetPeriod(period uint32)
	Start()
	Stop()
}
